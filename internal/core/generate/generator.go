package generate

import (
	"fmt"

	"github.com/agenthands/orggraph/internal/core/model"
)

// Generator produces the entities of one variant.
type Generator struct {
	Type model.EntityType
	// Count maps the profile to the number of entities to produce.
	Count func(p Profile) int
	build func(c *Context, n int) []model.Entity
}

// Generate produces count entities and records them in c.
func (g Generator) Generate(c *Context, count int) []model.Entity {
	out := g.build(c, count)
	c.Add(out...)
	return out
}

// Run generates the profile-derived count for g.
func (g Generator) Run(c *Context) []model.Entity {
	return g.Generate(c, g.Count(c.Profile))
}

// Registry is the immutable, dependency-ordered set of generators.
type Registry struct {
	gens  []Generator
	index map[model.EntityType]int
}

// NewRegistry checks that every entity variant has exactly one generator.
// gens must already be in dependency order.
func NewRegistry(gens ...Generator) (*Registry, error) {
	r := &Registry{index: make(map[model.EntityType]int, len(gens))}
	for i, g := range gens {
		if !g.Type.Valid() {
			return nil, fmt.Errorf("generator %d: unknown entity type %q", i, g.Type)
		}
		if _, dup := r.index[g.Type]; dup {
			return nil, fmt.Errorf("generator %d: duplicate generator for %s", i, g.Type)
		}
		r.index[g.Type] = i
		r.gens = append(r.gens, g)
	}
	for _, t := range model.EntityTypes {
		if _, ok := r.index[t]; !ok {
			return nil, fmt.Errorf("no generator for %s", t)
		}
	}
	return r, nil
}

// Generators returns the generators in dependency order.
func (r *Registry) Generators() []Generator {
	return append([]Generator(nil), r.gens...)
}

// Lookup returns the generator of t.
func (r *Registry) Lookup(t model.EntityType) (Generator, bool) {
	i, ok := r.index[t]
	if !ok {
		return Generator{}, false
	}
	return r.gens[i], true
}

// Counts returns the planned count per variant for p, in dependency order.
func (r *Registry) Counts(p Profile) []Planned {
	out := make([]Planned, len(r.gens))
	for i, g := range r.gens {
		out[i] = Planned{Type: g.Type, Count: g.Count(p)}
	}
	return out
}

// Planned is one row of a generation plan.
type Planned struct {
	Type  model.EntityType `json:"entity_type"`
	Count int              `json:"count"`
}

// DefaultRegistry returns the built-in generators in dependency order.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(
		geographyGenerator(),
		siteGenerator(),
		costCenterGenerator(),
		departmentGenerator(),
		teamGenerator(),
		roleGenerator(),
		personGenerator(),
		networkGenerator(),
		systemGenerator(),
		integrationGenerator(),
		dataDomainGenerator(),
		dataAssetGenerator(),
		dataFlowGenerator(),
		regulationGenerator(),
		policyGenerator(),
		controlGenerator(),
		riskGenerator(),
		auditGenerator(),
		threatGenerator(),
		vulnerabilityGenerator(),
		incidentGenerator(),
		vendorGenerator(),
		contractGenerator(),
		capabilityGenerator(),
		processGenerator(),
		marketGenerator(),
		customerGenerator(),
		productGenerator(),
		initiativeGenerator(),
		projectGenerator(),
	)
	if err != nil {
		panic(err)
	}
	return r
}

// scaled returns a Count func of clamp(base + scale/per, lo, hi).
func scaled(base, per, lo, hi int) func(Profile) int {
	return func(p Profile) int {
		return clamp(base+p.Scale/per, lo, hi)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func tags(items ...string) []string { return items }
