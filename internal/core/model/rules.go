package model

import "strings"

// Site types and security tiers. A data center is always Restricted.
const (
	SiteHeadquarters = "Headquarters"
	SiteOffice       = "Office"
	SiteDataCenter   = "Data Center"
	SiteWarehouse    = "Warehouse"
	SiteLab          = "Lab"
	SiteBranch       = "Branch"

	TierStandard   = "Standard"
	TierElevated   = "Elevated"
	TierRestricted = "Restricted"
)

// SystemAppliance is the system type that never runs a web framework.
const SystemAppliance = "Appliance"

var webFrameworks = map[string]bool{
	"django": true, "flask": true, "fastapi": true, "rails": true, "spring boot": true,
	"express": true, "react": true, "angular": true, "vue": true, "next.js": true,
	"asp.net": true, "laravel": true, "gin": true,
}

// IsWebFramework reports whether tech names a web application framework.
func IsWebFramework(tech string) bool {
	return webFrameworks[strings.ToLower(strings.TrimSpace(tech))]
}

// Vulnerability and work-item statuses.
const (
	StatusOpen          = "Open"
	StatusInProgress    = "In Progress"
	StatusPatched       = "Patched"
	StatusMitigated     = "Mitigated"
	StatusRiskAccepted  = "Risk Accepted"
	StatusResolved      = "Resolved"
	StatusInvestigating = "Investigating"
	StatusContained     = "Contained"
)

// OpenVulnerability reports whether a vulnerability status still counts
// against the affected system.
func OpenVulnerability(status string) bool {
	return status == StatusOpen || status == StatusInProgress
}

// Control effectiveness ratings and the MITIGATED_BY weight each implies.
const (
	Effective          = "Effective"
	PartiallyEffective = "Partially Effective"
	Ineffective        = "Ineffective"
)

var EffectivenessWeight = map[string]float64{
	Effective:          0.9,
	PartiallyEffective: 0.6,
	Ineffective:        0.2,
}

// Employment types.
const (
	Employee   = "Employee"
	Contractor = "Contractor"
)

// AuditRatingFor derives the rating an audit with the given number of
// findings must carry.
func AuditRatingFor(findings int) string {
	switch {
	case findings == 0:
		return "Satisfactory"
	case findings <= 3:
		return "Needs Improvement"
	default:
		return "Unsatisfactory"
	}
}
