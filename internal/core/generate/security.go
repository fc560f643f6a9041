package generate

import (
	"fmt"
	"math"
	"strings"

	"github.com/agenthands/orggraph/internal/core/model"
)

func threatGenerator() Generator {
	return Generator{
		Type:  model.EntityThreat,
		Count: scaled(0, 100, 5, 200),
		build: func(c *Context, n int) []model.Entity {
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				actor := c.Choice(threatActors)
				vector := attackVectors[c.IntN(len(attackVectors))]
				capability := []string{model.LevelLow, model.LevelMedium, model.LevelHigh}[c.IntN(3)]
				if actor == "Nation State" {
					capability = model.LevelHigh
				}
				out = append(out, c.NewEntity(model.EntityThreat, fmt.Sprintf("%s %s campaign %d", actor, vector.name, i+1),
					fmt.Sprintf("%s actor using %s (%s) with %s capability.", actor, vector.name, vector.technique, strings.ToLower(capability)),
					tags("threat", strings.ToLower(strings.ReplaceAll(actor, " ", "-"))),
					model.Attributes{
						"threat_actor_type": model.String(actor),
						"motivation":        model.String(c.Choice(motivations)),
						"capability":        model.String(capability),
						"attack_vector":     model.String(vector.name),
						"mitre_technique":   model.String(vector.technique),
					}))
			}
			return out
		},
	}
}

// vulnerabilityStatus skews patched-available findings towards Patched and
// never reports Patched without a patch.
func vulnerabilityStatus(c *Context, patchAvailable bool) string {
	if patchAvailable {
		return []string{model.StatusPatched, model.StatusInProgress, model.StatusOpen}[c.Weighted([]float64{0.6, 0.2, 0.2})]
	}
	return []string{model.StatusOpen, model.StatusMitigated, model.StatusRiskAccepted}[c.Weighted([]float64{0.6, 0.25, 0.15})]
}

func vulnerabilityGenerator() Generator {
	return Generator{
		Type:  model.EntityVulnerability,
		Count: scaled(0, 10, 8, 2000),
		build: func(c *Context, n int) []model.Entity {
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				cvss := math.Round((0.1+c.Float()*9.9)*10) / 10
				severity := model.SeverityForCVSS(cvss)
				patch := c.Chance(0.7)
				status := vulnerabilityStatus(c, patch)
				component := c.Choice(components)
				cve := fmt.Sprintf("CVE-%d-%05d", c.AsOf().Year()-c.Between(0, 3), 1000+i)

				out = append(out, c.NewEntity(model.EntityVulnerability, fmt.Sprintf("%s in %s", cve, component),
					fmt.Sprintf("%s severity flaw in %s scored %.1f; status %s.", severity, component, cvss, strings.ToLower(status)),
					tags("vulnerability", strings.ToLower(severity)),
					model.Attributes{
						"cve_id":                 model.String(cve),
						model.AttrSeverity:       model.String(severity),
						model.AttrCVSS:           model.Number(cvss),
						model.AttrPatchAvailable: model.Bool(patch),
						model.AttrStatus:         model.String(status),
						"discovered_date":        model.String(c.DaysBefore(1, 400)),
						"affected_component":     model.String(component),
					}))
			}
			return out
		},
	}
}

func incidentGenerator() Generator {
	return Generator{
		Type:  model.EntityIncident,
		Count: scaled(0, 80, 2, 250),
		build: func(c *Context, n int) []model.Entity {
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				severity := model.RiskLevels[c.Weighted([]float64{0.35, 0.35, 0.2, 0.1})]
				status := []string{model.StatusResolved, model.StatusContained, model.StatusInvestigating}[c.Weighted([]float64{0.6, 0.25, 0.15})]
				category := c.Choice(riskCategories)
				days := c.Between(1, 365)
				detected := c.AsOf().AddDate(0, 0, -days)
				attrs := model.Attributes{
					"incident_id":          model.String(fmt.Sprintf("INC-%05d", i+1)),
					model.AttrSeverity:     model.String(severity),
					model.AttrStatus:       model.String(status),
					"detected_at":          model.String(detected.Format("2006-01-02")),
					model.AttrRiskCategory: model.String(category),
				}
				if status == model.StatusResolved {
					attrs["resolved_at"] = model.String(detected.AddDate(0, 0, c.Between(0, days)).Format("2006-01-02"))
				}
				out = append(out, c.NewEntity(model.EntityIncident, fmt.Sprintf("%s incident INC-%05d", category, i+1),
					fmt.Sprintf("%s severity %s incident detected on %s, now %s.", severity, strings.ToLower(category),
						detected.Format("2006-01-02"), strings.ToLower(status)),
					tags("incident", strings.ToLower(severity)),
					attrs))
			}
			return out
		},
	}
}
