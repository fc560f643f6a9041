package model

// Attribute keys read outside the generator that writes them.
const (
	AttrInherentLikelihood = "inherent_likelihood"
	AttrInherentImpact     = "inherent_impact"
	AttrInherentRiskLevel  = "inherent_risk_level"
	AttrResidualRiskLevel  = "residual_risk_level"
	AttrRiskCategory       = "category"

	AttrSiteType     = "site_type"
	AttrSecurityTier = "security_tier"
	AttrGeographyID  = "geography_id"

	AttrSystemType   = "system_type"
	AttrTechnologies = "technologies"
	AttrHosting      = "hosting"
	AttrCriticality  = "criticality"

	AttrClassification     = "classification"
	AttrEncryptedInTransit = "encrypted_in_transit"
	AttrContainsPII        = "contains_pii"
	AttrSourceSystemID     = "source_system_id"
	AttrTargetSystemID     = "target_system_id"
	AttrDataAssetID        = "data_asset_id"
	AttrDomainID           = "domain_id"

	AttrSeverity       = "severity"
	AttrCVSS           = "cvss_score"
	AttrPatchAvailable = "patch_available"
	AttrStatus         = "status"

	AttrEmploymentType = "employment_type"
	AttrClearance      = "clearance_level"

	AttrDepartmentID   = "department_id"
	AttrCostCenterID   = "cost_center_id"
	AttrVendorID       = "vendor_id"
	AttrMarketID       = "market_id"
	AttrInitiativeID   = "initiative_id"
	AttrEffectiveness  = "effectiveness"
	AttrIsManagement   = "is_management"
	AttrVendorRisk     = "risk_rating"
	AttrStartDate      = "start_date"
	AttrEndDate        = "end_date"
	AttrFindingsCount  = "findings_count"
	AttrAuditRating    = "rating"
	AttrTeamType       = "team_type"
	AttrCapabilityTier = "level"

	// Mirror fields written by the weaver after all passes.
	AttrFilledByPersons   = "filled_by_persons"
	AttrHeadcountFilled   = "headcount_filled"
	AttrHoldsRoles        = "holds_roles"
	AttrLocatedAt         = "located_at"
	AttrManagerID         = "manager_id"
	AttrHeadcount         = "headcount"
	AttrOccupantCount     = "occupant_count"
	AttrVulnerabilityIDs  = "vulnerability_ids"
	AttrOpenVulnerability = "open_vulnerability_count"
	AttrMitigatesRisks    = "mitigates_risks"
)

// AttributeSpec lists the attribute keys an entity variant may carry.
// Required keys must be present at the ingest boundary; keys in neither list
// are unknown and are quarantined or rejected there.
type AttributeSpec struct {
	Required []string
	Optional []string
}

// Known reports whether key is declared for the variant.
func (s AttributeSpec) Known(key string) bool {
	return containsString(s.Required, key) || containsString(s.Optional, key)
}

var attributeSpecs = map[EntityType]AttributeSpec{
	EntityPerson: {
		Required: []string{"employee_id", AttrEmploymentType},
		Optional: []string{"first_name", "last_name", "email", "hire_date", "seniority_years", AttrClearance,
			AttrDepartmentID, AttrManagerID, AttrHoldsRoles, AttrLocatedAt},
	},
	EntityDepartment: {
		Required: []string{"code"},
		Optional: []string{"function", "budget", AttrCostCenterID, AttrHeadcount, "head_id"},
	},
	EntityTeam: {
		Required: []string{AttrTeamType},
		Optional: []string{AttrDepartmentID, "on_call"},
	},
	EntityRole: {
		Required: []string{"title", "level"},
		Optional: []string{AttrDepartmentID, "headcount_budget", AttrIsManagement, AttrFilledByPersons, AttrHeadcountFilled},
	},
	EntitySite: {
		Required: []string{AttrSiteType, AttrSecurityTier},
		Optional: []string{"city", "country", "capacity", AttrGeographyID, AttrOccupantCount},
	},
	EntityGeography: {
		Required: []string{"region_code"},
		Optional: []string{"timezone", "country_count"},
	},
	EntityCostCenter: {
		Required: []string{"code"},
		Optional: []string{"annual_budget", "currency", "fiscal_year"},
	},
	EntitySystem: {
		Required: []string{AttrSystemType, AttrCriticality},
		Optional: []string{AttrTechnologies, "environment", "lifecycle", AttrHosting, AttrVulnerabilityIDs, AttrOpenVulnerability},
	},
	EntityNetwork: {
		Required: []string{"cidr", "zone"},
		Optional: []string{"segmentation"},
	},
	EntityIntegration: {
		Required: []string{"protocol"},
		Optional: []string{AttrSourceSystemID, AttrTargetSystemID, "frequency", "authentication", "source_system", "target_system"},
	},
	EntityDataAsset: {
		Required: []string{AttrClassification},
		Optional: []string{AttrContainsPII, "format", "record_count", "retention_years", AttrDomainID},
	},
	EntityDataDomain: {
		Required: []string{"domain_code"},
		Optional: []string{"steward_function"},
	},
	EntityDataFlow: {
		Required: []string{AttrClassification, AttrEncryptedInTransit},
		Optional: []string{"protocol", "frequency", AttrSourceSystemID, AttrTargetSystemID, AttrDataAssetID, AttrDomainID,
			"source_system", "target_system"},
	},
	EntityPolicy: {
		Required: []string{"policy_area"},
		Optional: []string{"version_label", "review_cycle_months", AttrStatus, "last_reviewed"},
	},
	EntityControl: {
		Required: []string{"control_id", "control_type"},
		Optional: []string{"automation", AttrEffectiveness, "framework", "test_frequency", AttrMitigatesRisks},
	},
	EntityRegulation: {
		Required: []string{"short_code", "jurisdiction"},
		Optional: []string{"regulator", AttrRiskCategory, "effective_year"},
	},
	EntityRisk: {
		Required: []string{"risk_id", AttrRiskCategory},
		Optional: []string{AttrInherentLikelihood, AttrInherentImpact, AttrInherentRiskLevel, AttrResidualRiskLevel, "treatment", AttrStatus},
	},
	EntityAudit: {
		Required: []string{"audit_type", AttrStatus},
		Optional: []string{AttrFindingsCount, AttrStartDate, "lead_auditor", AttrAuditRating},
	},
	EntityThreat: {
		Required: []string{"threat_actor_type"},
		Optional: []string{"motivation", "capability", "attack_vector", "mitre_technique"},
	},
	EntityVulnerability: {
		Required: []string{"cve_id", AttrSeverity},
		Optional: []string{AttrCVSS, AttrPatchAvailable, AttrStatus, "discovered_date", "affected_component"},
	},
	EntityIncident: {
		Required: []string{"incident_id", AttrSeverity},
		Optional: []string{AttrStatus, "detected_at", "resolved_at", AttrRiskCategory},
	},
	EntityVendor: {
		Required: []string{"vendor_tier"},
		Optional: []string{"service_category", "country", AttrVendorRisk, "annual_spend", "soc2_certified"},
	},
	EntityContract: {
		Required: []string{"contract_number"},
		Optional: []string{AttrVendorID, AttrStartDate, AttrEndDate, "value", "auto_renew", AttrStatus},
	},
	EntityBusinessCapability: {
		Required: []string{AttrCapabilityTier},
		Optional: []string{"maturity", "strategic_importance"},
	},
	EntityProcess: {
		Required: []string{"process_type"},
		Optional: []string{"frequency", "automation_level", "sla_hours", AttrDepartmentID},
	},
	EntityProduct: {
		Required: []string{"product_line"},
		Optional: []string{"lifecycle_stage", "launch_year", "annual_revenue"},
	},
	EntityCustomer: {
		Required: []string{"segment"},
		Optional: []string{AttrMarketID, "annual_revenue", "account_count", "satisfaction_score"},
	},
	EntityMarket: {
		Required: []string{"region"},
		Optional: []string{"market_size", "growth_rate", AttrGeographyID},
	},
	EntityProject: {
		Required: []string{"project_code", AttrStatus},
		Optional: []string{"budget", AttrStartDate, AttrEndDate, "methodology", AttrInitiativeID, AttrCostCenterID},
	},
	EntityInitiative: {
		Required: []string{"theme", AttrStatus},
		Optional: []string{"budget", AttrStartDate, "target_date"},
	},
}

// SpecFor returns the attribute spec of t.
func SpecFor(t EntityType) (AttributeSpec, bool) {
	s, ok := attributeSpecs[t]
	return s, ok
}
