package generate

import (
	"fmt"
	"strings"

	"github.com/agenthands/orggraph/internal/core/model"
)

// round returns the suffix distinguishing the k-th reuse of a name pool.
func round(i, size int) string {
	if k := i / size; k > 0 {
		return fmt.Sprintf(" %d", k+1)
	}
	return ""
}

func regionByCode(code string) (region, bool) {
	for _, r := range regions {
		if r.code == code {
			return r, true
		}
	}
	return region{}, false
}

func abbreviate(s string) string {
	s = strings.ToUpper(strings.ReplaceAll(s, " ", ""))
	if len(s) > 3 {
		s = s[:3]
	}
	return s
}

func geographyGenerator() Generator {
	return Generator{
		Type:  model.EntityGeography,
		Count: scaled(2, 2000, 2, len(regions)),
		build: func(c *Context, n int) []model.Entity {
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				r := regions[i%len(regions)]
				out = append(out, c.NewEntity(model.EntityGeography, r.name+round(i, len(regions)),
					fmt.Sprintf("Operating region spanning %d countries, coordinated from the %s time zone.", r.countryCount, r.timezone),
					tags("geography", strings.ToLower(r.code)),
					model.Attributes{
						"region_code":   model.String(r.code),
						"timezone":      model.String(r.timezone),
						"country_count": model.Int(r.countryCount),
					}))
			}
			return out
		},
	}
}

func siteGenerator() Generator {
	return Generator{
		Type:  model.EntitySite,
		Count: scaled(1, 250, 2, 60),
		build: func(c *Context, n int) []model.Entity {
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				var siteType string
				switch i {
				case 0:
					siteType = model.SiteHeadquarters
				case 1:
					siteType = model.SiteDataCenter
				default:
					siteType = siteTypes[c.Weighted([]float64{0.45, 0.15, 0.1, 0.1, 0.2})]
				}

				attrs := model.Attributes{
					model.AttrSiteType:     model.String(siteType),
					model.AttrSecurityTier: model.String(securityTier(c, siteType)),
				}
				r := regions[i%len(regions)]
				if geo, ok := c.Pick(model.EntityGeography); ok {
					attrs[model.AttrGeographyID] = model.String(geo.ID)
					if gr, ok := regionByCode(geo.Attributes.Str("region_code")); ok {
						r = gr
					}
				}
				ct := r.cities[c.IntN(len(r.cities))]
				attrs["city"] = model.String(ct.name)
				attrs["country"] = model.String(ct.country)
				attrs["capacity"] = model.Int(siteCapacity(c, siteType))

				out = append(out, c.NewEntity(model.EntitySite, fmt.Sprintf("%s %s %d", ct.name, siteType, i+1),
					fmt.Sprintf("%s in %s, %s, with a %s physical security tier.", siteType, ct.name, ct.country,
						strings.ToLower(attrs.Str(model.AttrSecurityTier))),
					tags("site", strings.ToLower(strings.ReplaceAll(siteType, " ", "-"))),
					attrs))
			}
			return out
		},
	}
}

func securityTier(c *Context, siteType string) string {
	switch siteType {
	case model.SiteDataCenter:
		return model.TierRestricted
	case model.SiteHeadquarters:
		return model.TierElevated
	case model.SiteLab:
		return []string{model.TierElevated, model.TierRestricted}[c.IntN(2)]
	default:
		return []string{model.TierStandard, model.TierElevated}[c.Weighted([]float64{0.8, 0.2})]
	}
}

func siteCapacity(c *Context, siteType string) int {
	switch siteType {
	case model.SiteHeadquarters:
		return c.Between(800, 5000)
	case model.SiteDataCenter:
		return c.Between(10, 80)
	case model.SiteWarehouse:
		return c.Between(40, 300)
	default:
		return c.Between(30, 1200)
	}
}

func costCenterGenerator() Generator {
	return Generator{
		Type:  model.EntityCostCenter,
		Count: scaled(0, 100, 3, 120),
		build: func(c *Context, n int) []model.Entity {
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				fn := functions[i%len(functions)]
				code := fmt.Sprintf("CC-%04d", 1000+10*i)
				budget := c.Between(2, 400) * 25_000
				out = append(out, c.NewEntity(model.EntityCostCenter, fmt.Sprintf("%s Cost Center%s", fn, round(i, len(functions))),
					fmt.Sprintf("Budget pool %s funding %s spend for fiscal year %d.", code, strings.ToLower(fn), c.AsOf().Year()),
					tags("finance"),
					model.Attributes{
						"code":          model.String(code),
						"annual_budget": model.Int(budget),
						"currency":      model.String("USD"),
						"fiscal_year":   model.Int(c.AsOf().Year()),
					}))
			}
			return out
		},
	}
}

func departmentGenerator() Generator {
	return Generator{
		Type:  model.EntityDepartment,
		Count: scaled(4, 400, 4, 40),
		build: func(c *Context, n int) []model.Entity {
			centers := c.Entities(model.EntityCostCenter)
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				fn := functions[i%len(functions)]
				name := fn
				if k := i / len(functions); k > 0 {
					name = departmentQualifiers[(k-1)%len(departmentQualifiers)] + " " + fn
				}
				attrs := model.Attributes{
					"code":     model.String(fmt.Sprintf("%s-%02d", abbreviate(fn), i+1)),
					"function": model.String(fn),
					"budget":   model.Int(c.Between(4, 200) * 50_000),
				}
				if len(centers) > 0 {
					attrs[model.AttrCostCenterID] = model.String(centers[i%len(centers)].ID)
				}
				out = append(out, c.NewEntity(model.EntityDepartment, name,
					fmt.Sprintf("The %s department owns the %s function and its operating budget.", name, strings.ToLower(fn)),
					tags("department", strings.ToLower(abbreviate(fn))),
					attrs))
			}
			return out
		},
	}
}

func teamGenerator() Generator {
	return Generator{
		Type:  model.EntityTeam,
		Count: scaled(0, 12, 3, 1500),
		build: func(c *Context, n int) []model.Entity {
			depts := c.Entities(model.EntityDepartment)
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				noun := teamNouns[c.IntN(len(teamNouns))]
				teamType := teamTypes[c.IntN(len(teamTypes))]
				attrs := model.Attributes{}
				owner := "the wider organization"
				if len(depts) > 0 {
					d := depts[i%len(depts)]
					attrs[model.AttrDepartmentID] = model.String(d.ID)
					owner = d.Name
					if d.Attributes.Str("function") == "Security" {
						teamType = []string{"Security", "Incident Response"}[c.IntN(2)]
					}
				}
				if noun == "incident response" {
					teamType = "Incident Response"
				}
				attrs[model.AttrTeamType] = model.String(teamType)
				attrs["on_call"] = model.Bool(teamType == "Operations" || teamType == "Platform" || teamType == "Incident Response")

				name := c.Title(noun + " " + teamSuffixes[c.IntN(len(teamSuffixes))])
				out = append(out, c.NewEntity(model.EntityTeam, fmt.Sprintf("%s %d", name, i+1),
					fmt.Sprintf("%s team working on %s for %s.", teamType, noun, owner),
					tags("team", strings.ToLower(strings.ReplaceAll(teamType, " ", "-"))),
					attrs))
			}
			return out
		},
	}
}

func roleGenerator() Generator {
	levelWeights := []float64{0.2, 0.3, 0.25, 0.12, 0.09, 0.04}
	return Generator{
		Type:  model.EntityRole,
		Count: scaled(0, 8, 6, 2500),
		build: func(c *Context, n int) []model.Entity {
			depts := c.Entities(model.EntityDepartment)
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				fn := functions[i%len(functions)]
				attrs := model.Attributes{}
				if len(depts) > 0 {
					d := depts[i%len(depts)]
					fn = d.Attributes.Str("function")
					attrs[model.AttrDepartmentID] = model.String(d.ID)
				}
				level := roleLevels[c.Weighted(levelWeights)]
				base := c.Choice(functionTitles[fn])
				var title string
				switch level {
				case "Manager":
					title = fn + " Manager"
				case "Director":
					title = "Director of " + fn
				case "Mid":
					title = c.Title(base)
				default:
					title = level + " " + c.Title(base)
				}
				management := level == "Manager" || level == "Director"
				attrs["title"] = model.String(title)
				attrs["level"] = model.String(level)
				attrs[model.AttrIsManagement] = model.Bool(management)
				attrs["headcount_budget"] = model.Int(c.Between(1, 12))

				out = append(out, c.NewEntity(model.EntityRole, title,
					fmt.Sprintf("%s-level position in %s responsible for %s duties.", level, fn, strings.ToLower(base)),
					tags("role", strings.ToLower(level)),
					attrs))
			}
			return out
		},
	}
}

func personGenerator() Generator {
	return Generator{
		Type: model.EntityPerson,
		Count: func(p Profile) int {
			if p.Scale < 1 {
				return 1
			}
			return p.Scale
		},
		build: func(c *Context, n int) []model.Entity {
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				first := firstNames[c.IntN(len(firstNames))]
				last := lastNames[c.IntN(len(lastNames))]
				employment := model.Employee
				if c.Chance(c.Profile.ContractorFraction) {
					employment = model.Contractor
				}
				var clearance string
				if employment == model.Contractor {
					clearance = []string{model.ClassPublic, model.ClassInternal}[c.Weighted([]float64{0.4, 0.6})]
				} else {
					clearance = []string{model.ClassInternal, model.ClassConfidential, model.ClassRestricted}[c.Weighted([]float64{0.5, 0.35, 0.15})]
				}
				days := c.Between(30, 15*365)
				hired := c.AsOf().AddDate(0, 0, -days)

				out = append(out, c.NewEntity(model.EntityPerson, first+" "+last,
					fmt.Sprintf("%s hired in %d with %s clearance.", employment, hired.Year(), strings.ToLower(clearance)),
					tags("person", strings.ToLower(employment)),
					model.Attributes{
						"employee_id":            model.String(fmt.Sprintf("E%06d", i+1)),
						"first_name":             model.String(first),
						"last_name":              model.String(last),
						"email":                  model.String(fmt.Sprintf("%s.%s%d@orggraph.example", strings.ToLower(first), strings.ToLower(last), i+1)),
						"hire_date":              model.String(hired.Format("2006-01-02")),
						"seniority_years":        model.Int(days / 365),
						model.AttrEmploymentType: model.String(employment),
						model.AttrClearance:      model.String(clearance),
					}))
			}
			return out
		},
	}
}
