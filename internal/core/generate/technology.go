package generate

import (
	"fmt"
	"strings"

	"github.com/agenthands/orggraph/internal/core/model"
)

// Placeholder endpoint names used when no systems exist yet.
const (
	placeholderSource = "External Partner Gateway"
	placeholderTarget = "Legacy Mainframe"
)

func networkGenerator() Generator {
	return Generator{
		Type:  model.EntityNetwork,
		Count: scaled(2, 500, 3, 50),
		build: func(c *Context, n int) []model.Entity {
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				zone := networkZones[i%len(networkZones)]
				if i >= len(networkZones) {
					zone = c.Choice(networkZones)
				}
				cidr := fmt.Sprintf("10.%d.%d.0/%d", i/16, (i%16)*16, 20)
				out = append(out, c.NewEntity(model.EntityNetwork, fmt.Sprintf("%s Network %d", zone, i+1),
					fmt.Sprintf("%s zone segment addressed as %s.", zone, cidr),
					tags("network", strings.ToLower(zone)),
					model.Attributes{
						"cidr":         model.String(cidr),
						"zone":         model.String(zone),
						"segmentation": model.String(c.Choice([]string{"VLAN", "Microsegmented", "Flat", "Zero Trust"})),
					}))
			}
			return out
		},
	}
}

func systemGenerator() Generator {
	typeWeights := []float64{0.4, 0.15, 0.12, 0.1, 0.13, 0.1}
	return Generator{
		Type:  model.EntitySystem,
		Count: scaled(0, 15, 5, 1500),
		build: func(c *Context, n int) []model.Entity {
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				systemType := systemTypes[c.Weighted(typeWeights)]
				kind := systemKinds[systemType]
				var techs []string
				for _, j := range c.Sample(len(kind.technologies), c.Between(2, 4)) {
					techs = append(techs, kind.technologies[j])
				}
				criticality := model.RiskLevels[c.Weighted([]float64{0.2, 0.35, 0.3, 0.15})]
				prefix := systemPrefixes[i%len(systemPrefixes)]
				name := c.Title(prefix+" "+c.Choice(kind.suffixes)) + round(i, len(systemPrefixes))

				out = append(out, c.NewEntity(model.EntitySystem, name,
					fmt.Sprintf("%s system for %s workloads built with %s.", systemType, prefix, strings.Join(techs, ", ")),
					tags("system", strings.ToLower(systemType), strings.ToLower(criticality)),
					model.Attributes{
						model.AttrSystemType:   model.String(systemType),
						model.AttrCriticality:  model.String(criticality),
						model.AttrTechnologies: model.Strings(techs...),
						model.AttrHosting:      model.String(c.Choice(kind.hosting)),
						"environment":          model.String([]string{"Production", "Staging"}[c.Weighted([]float64{0.8, 0.2})]),
						"lifecycle":            model.String([]string{"Active", "Pilot", "Sunset"}[c.Weighted([]float64{0.8, 0.1, 0.1})]),
					}))
			}
			return out
		},
	}
}

// endpoints picks two distinct systems, falling back to placeholder names
// when fewer than two exist. The ids are empty for placeholders.
func endpoints(c *Context) (srcID, srcName, tgtID, tgtName string) {
	systems := c.Entities(model.EntitySystem)
	if len(systems) < 2 {
		return "", placeholderSource, "", placeholderTarget
	}
	pair := c.Sample(len(systems), 2)
	src, tgt := systems[pair[0]], systems[pair[1]]
	return src.ID, src.Name, tgt.ID, tgt.Name
}

func setEndpoints(attrs model.Attributes, srcID, srcName, tgtID, tgtName string) {
	attrs["source_system"] = model.String(srcName)
	attrs["target_system"] = model.String(tgtName)
	if srcID != "" {
		attrs[model.AttrSourceSystemID] = model.String(srcID)
	}
	if tgtID != "" {
		attrs[model.AttrTargetSystemID] = model.String(tgtID)
	}
}

func integrationGenerator() Generator {
	return Generator{
		Type:  model.EntityIntegration,
		Count: scaled(0, 40, 2, 500),
		build: func(c *Context, n int) []model.Entity {
			out := make([]model.Entity, 0, n)
			for i := 0; i < n; i++ {
				srcID, srcName, tgtID, tgtName := endpoints(c)
				protocol := c.Choice(protocols)
				attrs := model.Attributes{
					"protocol":       model.String(protocol),
					"frequency":      model.String(c.Choice(frequencies)),
					"authentication": model.String(c.Choice([]string{"OAuth2", "mTLS", "API Key", "SAML", "Service Account"})),
				}
				setEndpoints(attrs, srcID, srcName, tgtID, tgtName)
				out = append(out, c.NewEntity(model.EntityIntegration, fmt.Sprintf("%s to %s", srcName, tgtName),
					fmt.Sprintf("%s integration moving records from %s into %s.", protocol, srcName, tgtName),
					tags("integration", strings.ToLower(protocol)),
					attrs))
			}
			return out
		},
	}
}
