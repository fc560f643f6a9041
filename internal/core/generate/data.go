package generate

import (
	"fmt"
	"strings"

	"github.com/agenthands/orggraph/internal/core/model"
)

func dataDomainGenerator() Generator {
	return Generator{
		Type:  model.EntityDataDomain,
		Count: scaled(3, 2000, 4, len(dataDomains)),
		build: func(c *Context, n int) []model.Entity {
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				name := dataDomains[i%len(dataDomains)]
				steward := functions[c.IntN(len(functions))]
				out = append(out, c.NewEntity(model.EntityDataDomain, name+" Data"+round(i, len(dataDomains)),
					fmt.Sprintf("Business data domain for %s information, stewarded by %s.", strings.ToLower(name), steward),
					tags("data-domain"),
					model.Attributes{
						"domain_code":      model.String("DD-" + abbreviate(name)),
						"steward_function": model.String(steward),
					}))
			}
			return out
		},
	}
}

// classificationFor draws a classification consistent with PII content:
// assets holding personal data are never below Confidential.
func classificationFor(c *Context, pii bool) string {
	if pii {
		return []string{model.ClassConfidential, model.ClassRestricted}[c.Weighted([]float64{0.65, 0.35})]
	}
	return model.Classifications[c.Weighted([]float64{0.2, 0.45, 0.25, 0.1})]
}

func dataAssetGenerator() Generator {
	return Generator{
		Type:  model.EntityDataAsset,
		Count: scaled(0, 20, 5, 1000),
		build: func(c *Context, n int) []model.Entity {
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				domainName := dataDomains[c.IntN(len(dataDomains))]
				attrs := model.Attributes{}
				if d, ok := c.Pick(model.EntityDataDomain); ok {
					domainName = strings.Fields(d.Name)[0]
					attrs[model.AttrDomainID] = model.String(d.ID)
				}
				pii := c.Chance(0.15)
				if piiDomains[domainName] {
					pii = c.Chance(0.8)
				}
				class := classificationFor(c, pii)
				noun := assetNouns[c.IntN(len(assetNouns))]
				attrs[model.AttrClassification] = model.String(class)
				attrs[model.AttrContainsPII] = model.Bool(pii)
				attrs["format"] = model.String(c.Choice(assetFormats))
				attrs["record_count"] = model.Int(c.Between(1, 5000) * 1000)
				attrs["retention_years"] = model.Int(c.Between(1, 10))

				out = append(out, c.NewEntity(model.EntityDataAsset, fmt.Sprintf("%s %s %d", domainName, c.Title(noun), i+1),
					fmt.Sprintf("%s %s dataset classified %s.", domainName, noun, strings.ToLower(class)),
					tags("data-asset", strings.ToLower(class)),
					attrs))
			}
			return out
		},
	}
}

func dataFlowGenerator() Generator {
	return Generator{
		Type:  model.EntityDataFlow,
		Count: scaled(0, 25, 4, 800),
		build: func(c *Context, n int) []model.Entity {
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				srcID, srcName, tgtID, tgtName := endpoints(c)
				attrs := model.Attributes{}
				setEndpoints(attrs, srcID, srcName, tgtID, tgtName)

				class := classificationFor(c, false)
				if asset, ok := c.Pick(model.EntityDataAsset); ok {
					attrs[model.AttrDataAssetID] = model.String(asset.ID)
					if ac := asset.Attributes.Str(model.AttrClassification); ac != "" {
						class = ac
					}
					if dom := asset.Attributes.Str(model.AttrDomainID); dom != "" {
						attrs[model.AttrDomainID] = model.String(dom)
					}
				}
				encrypted := model.Sensitive(class) || c.Chance(0.6)
				protocol := c.Choice([]string{"HTTPS", "SFTP", "Kafka", "JDBC", "AMQP"})
				attrs[model.AttrClassification] = model.String(class)
				attrs[model.AttrEncryptedInTransit] = model.Bool(encrypted)
				attrs["protocol"] = model.String(protocol)
				attrs["frequency"] = model.String(c.Choice(frequencies))

				out = append(out, c.NewEntity(model.EntityDataFlow, fmt.Sprintf("%s feed to %s", srcName, tgtName),
					fmt.Sprintf("%s data moving from %s to %s over %s.", class, srcName, tgtName, protocol),
					tags("data-flow", strings.ToLower(class)),
					attrs))
			}
			return out
		},
	}
}
