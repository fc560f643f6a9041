package generate

import (
	"fmt"
	"strings"

	"github.com/agenthands/orggraph/internal/core/model"
)

func capabilityGenerator() Generator {
	return Generator{
		Type:  model.EntityBusinessCapability,
		Count: scaled(6, 1000, 6, len(capabilityNames)),
		build: func(c *Context, n int) []model.Entity {
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				name := capabilityNames[i%len(capabilityNames)]
				level := []string{"L1", "L2", "L3"}[c.Weighted([]float64{0.3, 0.5, 0.2})]
				maturity := c.Choice(capabilityMaturity)
				importance := model.RiskLevels[c.IntN(len(model.RiskLevels))]
				out = append(out, c.NewEntity(model.EntityBusinessCapability, c.Title(name)+round(i, len(capabilityNames)),
					fmt.Sprintf("%s capability for %s at %s maturity.", level, name, strings.ToLower(maturity)),
					tags("capability", strings.ToLower(level)),
					model.Attributes{
						model.AttrCapabilityTier: model.String(level),
						"maturity":               model.String(maturity),
						"strategic_importance":   model.String(importance),
					}))
			}
			return out
		},
	}
}

func processGenerator() Generator {
	return Generator{
		Type:  model.EntityProcess,
		Count: scaled(0, 50, 6, 400),
		build: func(c *Context, n int) []model.Entity {
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				verb := c.Choice(processVerbs)
				object := c.Choice(processObjects)
				processType := []string{"Core", "Support", "Management"}[c.Weighted([]float64{0.4, 0.4, 0.2})]
				attrs := model.Attributes{
					"process_type":     model.String(processType),
					"frequency":        model.String(c.Choice(frequencies)),
					"automation_level": model.String(c.Choice([]string{"Manual", "Partially Automated", "Fully Automated"})),
					"sla_hours":        model.Int([]int{4, 8, 24, 48, 72}[c.IntN(5)]),
				}
				owner := "shared services"
				if d, ok := c.Pick(model.EntityDepartment); ok {
					attrs[model.AttrDepartmentID] = model.String(d.ID)
					owner = d.Name
				}
				out = append(out, c.NewEntity(model.EntityProcess, fmt.Sprintf("%s %s %d", capitalize(verb), object, i+1),
					fmt.Sprintf("%s process run by %s to %s %s.", processType, owner, verb, object),
					tags("process", strings.ToLower(processType)),
					attrs))
			}
			return out
		},
	}
}

func marketGenerator() Generator {
	return Generator{
		Type:  model.EntityMarket,
		Count: scaled(2, 3000, 2, 10),
		build: func(c *Context, n int) []model.Entity {
			geos := c.Entities(model.EntityGeography)
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				regionName := regions[i%len(regions)].name
				attrs := model.Attributes{
					"market_size": model.Int(c.Between(50, 5000) * 1_000_000),
					"growth_rate": model.Number(c.FloatBetween(-0.02, 0.18)),
				}
				if len(geos) > 0 {
					g := geos[i%len(geos)]
					attrs[model.AttrGeographyID] = model.String(g.ID)
					regionName = g.Name
				}
				attrs["region"] = model.String(regionName)
				segment := segments[i%len(segments)]
				out = append(out, c.NewEntity(model.EntityMarket, fmt.Sprintf("%s %s Market", regionName, segment),
					fmt.Sprintf("Addressable %s demand across %s.", strings.ToLower(segment), regionName),
					tags("market"),
					attrs))
			}
			return out
		},
	}
}

func customerGenerator() Generator {
	return Generator{
		Type:  model.EntityCustomer,
		Count: scaled(0, 100, 3, 200),
		build: func(c *Context, n int) []model.Entity {
			size := len(customerPrefixes) * len(customerSuffixes)
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				k := i % size
				name := customerPrefixes[k%len(customerPrefixes)] + " " + customerSuffixes[k/len(customerPrefixes)] + round(i, size)
				segment := c.Choice(segments)
				accounts := c.Between(1, 40)
				attrs := model.Attributes{
					"segment":            model.String(segment),
					"annual_revenue":     model.Int(c.Between(1, 900) * 100_000),
					"account_count":      model.Int(accounts),
					"satisfaction_score": model.Number(c.FloatBetween(2.5, 5)),
				}
				if m, ok := c.Pick(model.EntityMarket); ok {
					attrs[model.AttrMarketID] = model.String(m.ID)
				}
				out = append(out, c.NewEntity(model.EntityCustomer, name,
					fmt.Sprintf("%s account %s buying across %d contracts.", segment, name, accounts),
					tags("customer", strings.ToLower(segment)),
					attrs))
			}
			return out
		},
	}
}

func productGenerator() Generator {
	return Generator{
		Type:  model.EntityProduct,
		Count: scaled(0, 150, 2, 150),
		build: func(c *Context, n int) []model.Entity {
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				line := c.Choice(productLines)
				noun := productNouns[i%len(productNouns)]
				stage := lifecycleStages[c.Weighted([]float64{0.15, 0.35, 0.4, 0.1})]
				launch := c.AsOf().Year() - c.Between(0, 12)
				out = append(out, c.NewEntity(model.EntityProduct, fmt.Sprintf("%s %s%s", c.Title(noun), line, round(i, len(productNouns))),
					fmt.Sprintf("%s offering launched in %d, now in %s.", line, launch, strings.ToLower(stage)),
					tags("product"),
					model.Attributes{
						"product_line":    model.String(line),
						"lifecycle_stage": model.String(stage),
						"launch_year":     model.Int(launch),
						"annual_revenue":  model.Int(c.Between(1, 400) * 250_000),
					}))
			}
			return out
		},
	}
}

func initiativeGenerator() Generator {
	return Generator{
		Type:  model.EntityInitiative,
		Count: scaled(0, 500, 2, 40),
		build: func(c *Context, n int) []model.Entity {
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				theme := initiativeThemes[i%len(initiativeThemes)]
				status := []string{"Proposed", "Active", "Completed"}[c.Weighted([]float64{0.2, 0.6, 0.2})]
				out = append(out, c.NewEntity(model.EntityInitiative, fmt.Sprintf("%s Program%s", theme, round(i, len(initiativeThemes))),
					fmt.Sprintf("Multi-year %s program, currently %s.", strings.ToLower(theme), strings.ToLower(status)),
					tags("initiative"),
					model.Attributes{
						"theme":             model.String(theme),
						model.AttrStatus:    model.String(status),
						"budget":            model.Int(c.Between(10, 400) * 100_000),
						model.AttrStartDate: model.String(c.DaysBefore(30, 900)),
						"target_date":       model.String(c.DaysAfter(90, 1100)),
					}))
			}
			return out
		},
	}
}

func projectGenerator() Generator {
	return Generator{
		Type:  model.EntityProject,
		Count: scaled(0, 40, 3, 500),
		build: func(c *Context, n int) []model.Entity {
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				code := fmt.Sprintf("PRJ-%04d", i+1)
				status := []string{"Planned", "Active", "On Hold", "Completed"}[c.Weighted([]float64{0.2, 0.5, 0.1, 0.2})]
				start := c.AsOf().AddDate(0, 0, -c.Between(0, 700))
				end := start.AddDate(0, c.Between(2, 24), 0)
				purpose := c.Choice(systemPrefixes)
				attrs := model.Attributes{
					"project_code":      model.String(code),
					model.AttrStatus:    model.String(status),
					"budget":            model.Int(c.Between(5, 300) * 20_000),
					model.AttrStartDate: model.String(start.Format("2006-01-02")),
					model.AttrEndDate:   model.String(end.Format("2006-01-02")),
					"methodology":       model.String(c.Choice(methodologies)),
				}
				parent := "standalone"
				if program, ok := c.Pick(model.EntityInitiative); ok {
					attrs[model.AttrInitiativeID] = model.String(program.ID)
					parent = program.Name
				}
				if cc, ok := c.Pick(model.EntityCostCenter); ok {
					attrs[model.AttrCostCenterID] = model.String(cc.ID)
				}
				out = append(out, c.NewEntity(model.EntityProject, fmt.Sprintf("%s %s modernization", code, c.Title(purpose)),
					fmt.Sprintf("%s project modernizing %s capabilities under %s.", status, purpose, parent),
					tags("project", strings.ToLower(strings.ReplaceAll(status, " ", "-"))),
					attrs))
			}
			return out
		},
	}
}
