package model

// Risk levels on their total order Low < Medium < High < Critical.
const (
	LevelLow      = "Low"
	LevelMedium   = "Medium"
	LevelHigh     = "High"
	LevelCritical = "Critical"
)

// RiskLevels lists the risk levels from lowest to highest.
var RiskLevels = []string{LevelLow, LevelMedium, LevelHigh, LevelCritical}

// LevelRank returns the position of level on the risk order, or -1.
func LevelRank(level string) int {
	for i, l := range RiskLevels {
		if l == level {
			return i
		}
	}
	return -1
}

// riskMatrix is indexed [likelihood-1][impact-1] on 1..5 scales.
var riskMatrix = [5][5]string{
	{LevelLow, LevelLow, LevelLow, LevelMedium, LevelMedium},
	{LevelLow, LevelLow, LevelMedium, LevelMedium, LevelHigh},
	{LevelLow, LevelMedium, LevelMedium, LevelHigh, LevelHigh},
	{LevelMedium, LevelMedium, LevelHigh, LevelHigh, LevelCritical},
	{LevelMedium, LevelHigh, LevelHigh, LevelCritical, LevelCritical},
}

// RiskMatrix looks up the risk level for likelihood and impact on 1..5
// scales. ok is false when either input is out of range.
func RiskMatrix(likelihood, impact int) (level string, ok bool) {
	if likelihood < 1 || likelihood > 5 || impact < 1 || impact > 5 {
		return "", false
	}
	return riskMatrix[likelihood-1][impact-1], true
}

// Data classifications from least to most sensitive.
const (
	ClassPublic       = "Public"
	ClassInternal     = "Internal"
	ClassConfidential = "Confidential"
	ClassRestricted   = "Restricted"
)

var Classifications = []string{ClassPublic, ClassInternal, ClassConfidential, ClassRestricted}

// ClassificationRank returns the sensitivity rank of c, or -1.
func ClassificationRank(c string) int {
	for i, l := range Classifications {
		if l == c {
			return i
		}
	}
	return -1
}

// Sensitive reports whether c requires encryption in transit.
func Sensitive(c string) bool {
	return ClassificationRank(c) >= ClassificationRank(ClassConfidential)
}

// SeverityWeight maps a vulnerability severity to its AFFECTS edge weight.
var SeverityWeight = map[string]float64{
	LevelCritical: 1.0,
	LevelHigh:     0.8,
	LevelMedium:   0.5,
	LevelLow:      0.2,
}

// SeverityForCVSS bands a CVSS base score into a severity level.
func SeverityForCVSS(score float64) string {
	switch {
	case score >= 9.0:
		return LevelCritical
	case score >= 7.0:
		return LevelHigh
	case score >= 4.0:
		return LevelMedium
	default:
		return LevelLow
	}
}
