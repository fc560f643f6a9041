package generate

import (
	"fmt"
	"strings"
	"time"

	"github.com/agenthands/orggraph/internal/core/model"
)

func vendorGenerator() Generator {
	return Generator{
		Type:  model.EntityVendor,
		Count: scaled(0, 60, 4, 400),
		build: func(c *Context, n int) []model.Entity {
			size := len(vendorPrefixes) * len(vendorSuffixes)
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				k := i % size
				name := vendorPrefixes[k%len(vendorPrefixes)] + " " + vendorSuffixes[k/len(vendorPrefixes)] + round(i, size)
				tier := []string{"Tier 1", "Tier 2", "Tier 3"}[c.Weighted([]float64{0.2, 0.4, 0.4})]
				service := c.Choice(serviceCategories)
				r := regions[c.IntN(len(regions))]
				rating := model.RiskLevels[c.Weighted([]float64{0.35, 0.4, 0.2, 0.05})]
				out = append(out, c.NewEntity(model.EntityVendor, name,
					fmt.Sprintf("%s supplier of %s services based in %s, rated %s risk.", tier, strings.ToLower(service),
						r.cities[0].country, strings.ToLower(rating)),
					tags("vendor", strings.ToLower(strings.ReplaceAll(tier, " ", "-"))),
					model.Attributes{
						"vendor_tier":        model.String(tier),
						"service_category":   model.String(service),
						"country":            model.String(r.cities[0].country),
						model.AttrVendorRisk: model.String(rating),
						"annual_spend":       model.Int(c.Between(1, 500) * 10_000),
						"soc2_certified":     model.Bool(c.Chance(0.55)),
					}))
			}
			return out
		},
	}
}

func contractGenerator() Generator {
	return Generator{
		Type:  model.EntityContract,
		Count: scaled(0, 45, 4, 500),
		build: func(c *Context, n int) []model.Entity {
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				start := c.AsOf().AddDate(0, 0, -c.Between(30, 1500))
				end := start.AddDate(c.Between(1, 5), 0, 0)
				var status string
				switch {
				case end.Before(c.AsOf()):
					status = "Expired"
				case end.Sub(c.AsOf()) < 90*24*time.Hour:
					status = "Pending Renewal"
				default:
					status = "Active"
				}
				number := fmt.Sprintf("CTR-%05d", i+1)
				counterparty := "Unassigned Supplier"
				attrs := model.Attributes{
					"contract_number":   model.String(number),
					model.AttrStartDate: model.String(start.Format(time.DateOnly)),
					model.AttrEndDate:   model.String(end.Format(time.DateOnly)),
					"value":             model.Int(c.Between(5, 2000) * 5_000),
					"auto_renew":        model.Bool(c.Chance(0.4)),
					model.AttrStatus:    model.String(status),
				}
				if v, ok := c.Pick(model.EntityVendor); ok {
					attrs[model.AttrVendorID] = model.String(v.ID)
					counterparty = v.Name
				}
				out = append(out, c.NewEntity(model.EntityContract, fmt.Sprintf("%s agreement %s", counterparty, number),
					fmt.Sprintf("Agreement with %s running %s to %s, currently %s.", counterparty,
						start.Format(time.DateOnly), end.Format(time.DateOnly), strings.ToLower(status)),
					tags("contract"),
					attrs))
			}
			return out
		},
	}
}
