package generate

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agenthands/orggraph/internal/core/model"
)

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func regulationGenerator() Generator {
	return Generator{
		Type: model.EntityRegulation,
		Count: func(p Profile) int {
			return len(regulationsByIndustry[p.industry()])
		},
		build: func(c *Context, n int) []model.Entity {
			list := regulationsByIndustry[c.Profile.industry()]
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				r := list[i%len(list)]
				out = append(out, c.NewEntity(model.EntityRegulation, r.name+round(i, len(list)),
					fmt.Sprintf("%s obligations in %s enforced by %s since %d.", r.category, r.jurisdiction, r.regulator, r.year),
					tags("regulation", strings.ToLower(r.code)),
					model.Attributes{
						"short_code":           model.String(r.code),
						"jurisdiction":         model.String(r.jurisdiction),
						"regulator":            model.String(r.regulator),
						model.AttrRiskCategory: model.String(r.category),
						"effective_year":       model.Int(r.year),
					}))
			}
			return out
		},
	}
}

func policyGenerator() Generator {
	return Generator{
		Type:  model.EntityPolicy,
		Count: scaled(6, 200, 6, 120),
		build: func(c *Context, n int) []model.Entity {
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				area := policyAreas[i%len(policyAreas)]
				status := []string{"Approved", "Under Review", "Draft"}[c.Weighted([]float64{0.7, 0.2, 0.1})]
				cycle := []int{12, 24}[c.IntN(2)]
				out = append(out, c.NewEntity(model.EntityPolicy, area+" Policy"+round(i, len(policyAreas)),
					fmt.Sprintf("Sets the %s requirements staff and systems must follow, reviewed every %d months.", strings.ToLower(area), cycle),
					tags("policy"),
					model.Attributes{
						"policy_area":         model.String(area),
						"version_label":       model.String(fmt.Sprintf("v%d.%d", c.Between(1, 5), c.Between(0, 9))),
						"review_cycle_months": model.Int(cycle),
						model.AttrStatus:      model.String(status),
						"last_reviewed":       model.String(c.DaysBefore(30, 700)),
					}))
			}
			return out
		},
	}
}

func controlGenerator() Generator {
	effectiveness := []string{model.Effective, model.PartiallyEffective, model.Ineffective}
	return Generator{
		Type:  model.EntityControl,
		Count: scaled(0, 15, 10, 1500),
		build: func(c *Context, n int) []model.Entity {
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				theme := controlThemes[i%len(controlThemes)]
				controlType := c.Choice([]string{"Preventive", "Detective", "Corrective"})
				eff := effectiveness[c.Weighted([]float64{0.6, 0.3, 0.1})]
				out = append(out, c.NewEntity(model.EntityControl, c.Title(theme)+round(i, len(controlThemes)),
					fmt.Sprintf("%s control enforcing %s, currently rated %s.", controlType, theme, strings.ToLower(eff)),
					tags("control", strings.ToLower(controlType)),
					model.Attributes{
						"control_id":            model.String(fmt.Sprintf("CTL-%04d", i+1)),
						"control_type":          model.String(controlType),
						"automation":            model.String(c.Choice([]string{"Manual", "Semi-automated", "Automated"})),
						model.AttrEffectiveness: model.String(eff),
						"framework":             model.String(c.Choice(controlFrameworks)),
						"test_frequency":        model.String(c.Choice([]string{"Monthly", "Quarterly", "Annual"})),
					}))
			}
			return out
		},
	}
}

// residualLevel re-draws a residual level and clamps it to the inherent one.
func residualLevel(c *Context, inherent string) string {
	residual := model.RiskLevels[c.IntN(len(model.RiskLevels))]
	if model.LevelRank(residual) > model.LevelRank(inherent) {
		return inherent
	}
	return residual
}

func riskGenerator() Generator {
	return Generator{
		Type:  model.EntityRisk,
		Count: scaled(0, 20, 8, 1000),
		build: func(c *Context, n int) []model.Entity {
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				category := riskCategories[i%len(riskCategories)]
				scenario := c.Choice(riskScenarios[category])
				likelihood := c.Between(1, 5)
				impact := c.Between(1, 5)
				inherent, _ := model.RiskMatrix(likelihood, impact)
				residual := residualLevel(c, inherent)

				out = append(out, c.NewEntity(model.EntityRisk, capitalize(scenario),
					fmt.Sprintf("%s risk of %s; inherent %s, residual %s after controls.", category, scenario,
						strings.ToLower(inherent), strings.ToLower(residual)),
					tags("risk", strings.ToLower(strings.ReplaceAll(category, " ", "-"))),
					model.Attributes{
						"risk_id":                    model.String(fmt.Sprintf("RSK-%04d", i+1)),
						model.AttrRiskCategory:       model.String(category),
						model.AttrInherentLikelihood: model.Int(likelihood),
						model.AttrInherentImpact:     model.Int(impact),
						model.AttrInherentRiskLevel:  model.String(inherent),
						model.AttrResidualRiskLevel:  model.String(residual),
						"treatment":                  model.String(c.Choice([]string{"Mitigate", "Accept", "Transfer", "Avoid"})),
						model.AttrStatus:             model.String([]string{"Open", "Monitoring", "Closed"}[c.Weighted([]float64{0.5, 0.35, 0.15})]),
					}))
			}
			return out
		},
	}
}

func auditGenerator() Generator {
	return Generator{
		Type:  model.EntityAudit,
		Count: scaled(0, 200, 2, 100),
		build: func(c *Context, n int) []model.Entity {
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				auditType := c.Choice([]string{"Internal", "External", "Regulatory", "SOC 2 Type II"})
				status := []string{"Completed", "In Progress", "Planned"}[c.Weighted([]float64{0.5, 0.25, 0.25})]
				attrs := model.Attributes{
					"audit_type":     model.String(auditType),
					model.AttrStatus: model.String(status),
					"lead_auditor":   model.String(c.Choice(firstNames) + " " + c.Choice(lastNames)),
				}
				findings := 0
				switch status {
				case "Completed":
					findings = c.Between(0, 8)
					attrs[model.AttrAuditRating] = model.String(model.AuditRatingFor(findings))
					attrs[model.AttrStartDate] = model.String(c.DaysBefore(60, 400))
				case "In Progress":
					findings = c.Between(0, 3)
					attrs[model.AttrStartDate] = model.String(c.DaysBefore(5, 60))
				default:
					attrs[model.AttrStartDate] = model.String(c.DaysAfter(10, 120))
				}
				attrs[model.AttrFindingsCount] = model.Int(findings)

				out = append(out, c.NewEntity(model.EntityAudit, fmt.Sprintf("%s Audit %d-%02d", auditType, c.AsOf().Year(), i+1),
					fmt.Sprintf("%s audit, %s, with %d findings recorded so far.", auditType, strings.ToLower(status), findings),
					tags("audit", strings.ToLower(strings.ReplaceAll(status, " ", "-"))),
					attrs))
			}
			return out
		},
	}
}
