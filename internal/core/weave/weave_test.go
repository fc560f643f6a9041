package weave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/orggraph/internal/core/generate"
	"github.com/agenthands/orggraph/internal/core/graph"
	"github.com/agenthands/orggraph/internal/core/model"
	"github.com/agenthands/orggraph/internal/core/schema"
)

// populate generates every variant into a fresh store without weaving.
func populate(t *testing.T, p generate.Profile, reg *schema.Registry) (*generate.Context, *graph.Store) {
	t.Helper()
	c := generate.NewContext(p)
	asOf := c.AsOf()
	s := graph.New(reg, graph.WithClock(func() time.Time { return asOf }))
	for _, g := range generate.DefaultRegistry().Generators() {
		res := s.BulkAddEntities(g.Run(c))
		require.NoError(t, res.Err())
	}
	return c, s
}

func woven(t *testing.T, scale int, seed uint64) (*generate.Context, *graph.Store, *Weaver) {
	t.Helper()
	c, s := populate(t, generate.DefaultProfile(scale, seed), schema.Default())
	w := New(c, s)
	require.NoError(t, w.RunAll(context.Background()))
	return c, s, w
}

func relationshipsOf(s *graph.Store, rt model.RelationshipType) []model.Relationship {
	var out []model.Relationship
	s.EachRelationship(func(r model.Relationship) bool {
		if r.Type == rt {
			out = append(out, r)
		}
		return true
	})
	return out
}

func TestPasses_FixedOrder(t *testing.T) {
	var names []string
	for _, p := range Passes() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{
		"organization", "management", "technology", "data", "ownership",
		"governance", "security", "supply", "business", "mirror",
	}, names)
}

func TestWeave_EmitsEveryConstrainedVariant(t *testing.T) {
	_, s, w := woven(t, 300, 42)
	counts := w.Counts()
	for _, rt := range schema.Default().Types() {
		assert.Greater(t, counts[rt], 0, "no %s relationships", rt)
	}
	assert.Equal(t, len(w.Created()), s.RelationshipCount())

	s.EachRelationship(func(r model.Relationship) bool {
		assert.True(t, r.Weight >= 0 && r.Weight <= 1)
		assert.True(t, r.Confidence >= 0.6 && r.Confidence <= 1, "%s confidence %v", r.Type, r.Confidence)
		assert.NotEqual(t, r.SourceID, r.TargetID)
		return true
	})
}

func TestWeave_Deterministic(t *testing.T) {
	_, a, _ := woven(t, 150, 7)
	_, b, _ := woven(t, 150, 7)
	assert.Equal(t, a.Export(), b.Export())

	_, other, _ := woven(t, 150, 8)
	assert.NotEqual(t, a.Export().Relationships[0].ID, other.Export().Relationships[0].ID)
}

func TestManagement_Acyclic(t *testing.T) {
	for _, scale := range []int{10, 100, 2000, 20000} {
		t.Run(fmt.Sprintf("scale=%d", scale), func(t *testing.T) {
			if scale > 2000 && testing.Short() {
				t.Skip("large scale")
			}
			c, s, _ := woven(t, scale, 42)

			manager := map[string]string{}
			for _, r := range relationshipsOf(s, model.RelReportsTo) {
				_, dup := manager[r.SourceID]
				require.False(t, dup, "%s reports to two managers", r.SourceID)
				manager[r.SourceID] = r.TargetID
			}

			roots := 0
			for _, p := range c.Entities(model.EntityPerson) {
				seen := map[string]bool{}
				for id := p.ID; id != ""; id = manager[id] {
					require.False(t, seen[id], "cycle through %s", id)
					seen[id] = true
				}
				if _, ok := manager[p.ID]; !ok {
					roots++
				}
			}
			assert.Equal(t, 1, roots, "exactly one chief executive")
		})
	}
}

func TestOrganization_OneDepartmentPerPerson(t *testing.T) {
	c, s, _ := woven(t, 500, 3)
	for _, p := range c.Entities(model.EntityPerson) {
		works := s.GetRelationships(p.ID, graph.Out, model.RelWorksIn)
		require.Len(t, works, 1)
		roles := s.GetRelationships(p.ID, graph.Out, model.RelHasRole)
		require.Len(t, roles, 1)

		role, err := s.GetEntity(roles[0].TargetID)
		require.NoError(t, err)
		assert.Equal(t, works[0].TargetID, role.Attributes.Str(model.AttrDepartmentID), "role outside the person's department")
	}
	for _, d := range c.Entities(model.EntityDepartment) {
		assert.NotEmpty(t, s.GetRelationships(d.ID, graph.In, model.RelWorksIn), "department %s has no staff", d.Name)
	}
}

func TestMirror_Consistent(t *testing.T) {
	c, s, _ := woven(t, 400, 11)

	for _, r := range s.ListEntities(graph.ListFilter{Type: model.EntityRole}) {
		filled, ok := r.Attributes.Get(model.AttrFilledByPersons).AsStrings()
		require.True(t, ok)
		n, ok := r.Attributes.Num(model.AttrHeadcountFilled)
		require.True(t, ok)
		assert.Equal(t, len(filled), int(n))
		assert.Len(t, s.GetRelationships(r.ID, graph.In, model.RelHasRole), len(filled))
	}

	total := 0
	for _, d := range s.ListEntities(graph.ListFilter{Type: model.EntityDepartment}) {
		n, _ := d.Attributes.Num(model.AttrHeadcount)
		total += int(n)
		head := d.Attributes.Str("head_id")
		require.NotEmpty(t, head)
		person, err := s.GetEntity(head)
		require.NoError(t, err)
		assert.Equal(t, d.ID, person.Attributes.Str(model.AttrDepartmentID))
	}
	assert.Equal(t, c.Count(model.EntityPerson), total)

	for _, p := range s.ListEntities(graph.ListFilter{Type: model.EntityPerson}) {
		reports := s.GetRelationships(p.ID, graph.Out, model.RelReportsTo)
		if len(reports) == 1 {
			assert.Equal(t, reports[0].TargetID, p.Attributes.Str(model.AttrManagerID))
		} else {
			assert.False(t, p.Attributes.Has(model.AttrManagerID))
		}
		located := s.GetRelationships(p.ID, graph.Out, model.RelLocatedAt)
		require.Len(t, located, 1)
		assert.Equal(t, located[0].TargetID, p.Attributes.Str(model.AttrLocatedAt))
	}

	for _, sys := range s.ListEntities(graph.ListFilter{Type: model.EntitySystem}) {
		ids, _ := sys.Attributes.Get(model.AttrVulnerabilityIDs).AsStrings()
		open := 0
		for _, id := range ids {
			v, err := s.GetEntity(id)
			require.NoError(t, err)
			if model.OpenVulnerability(v.Attributes.Str(model.AttrStatus)) {
				open++
			}
		}
		n, _ := sys.Attributes.Num(model.AttrOpenVulnerability)
		assert.Equal(t, open, int(n))
	}
}

func TestData_EndpointsFollowAttributes(t *testing.T) {
	_, s, _ := woven(t, 300, 5)
	for _, r := range relationshipsOf(s, model.RelFlowsFrom) {
		flow, err := s.GetEntity(r.SourceID)
		require.NoError(t, err)
		assert.Equal(t, flow.Attributes.Str(model.AttrSourceSystemID), r.TargetID)
		assert.Equal(t, 1.0, r.Confidence)
	}
	for _, r := range relationshipsOf(s, model.RelFlowsTo) {
		flow, err := s.GetEntity(r.SourceID)
		require.NoError(t, err)
		assert.Equal(t, flow.Attributes.Str(model.AttrTargetSystemID), r.TargetID)
	}
}

func TestTechnology_DependenciesPointBackwards(t *testing.T) {
	c, s, _ := woven(t, 600, 9)
	order := map[string]int{}
	for i, sys := range c.Entities(model.EntitySystem) {
		order[sys.ID] = i
	}
	deps := relationshipsOf(s, model.RelDependsOn)
	require.NotEmpty(t, deps)
	for _, r := range deps {
		assert.Less(t, order[r.TargetID], order[r.SourceID])
	}
}

func TestWeights_FromFixedTables(t *testing.T) {
	_, s, _ := woven(t, 300, 13)
	for _, r := range relationshipsOf(s, model.RelAffects) {
		v, err := s.GetEntity(r.SourceID)
		require.NoError(t, err)
		assert.Equal(t, model.SeverityWeight[v.Attributes.Str(model.AttrSeverity)], r.Weight)
	}
	for _, r := range relationshipsOf(s, model.RelMitigatedBy) {
		ctl, err := s.GetEntity(r.TargetID)
		require.NoError(t, err)
		assert.Equal(t, model.EffectivenessWeight[ctl.Attributes.Str(model.AttrEffectiveness)], r.Weight)
	}
}

func TestSecurity_HandledByResponders(t *testing.T) {
	_, s, _ := woven(t, 1000, 21)
	for _, r := range relationshipsOf(s, model.RelHandledBy) {
		team, err := s.GetEntity(r.TargetID)
		require.NoError(t, err)
		assert.Contains(t, []string{"Security", "Incident Response"}, team.Attributes.Str(model.AttrTeamType))
	}
}

func TestWeave_EmptyDependenciesSkip(t *testing.T) {
	c := generate.NewContext(generate.DefaultProfile(5, 1))
	s := graph.New(schema.Default())
	persons, _ := generate.DefaultRegistry().Lookup(model.EntityPerson)
	require.NoError(t, s.BulkAddEntities(persons.Run(c)).Err())

	w := New(c, s)
	for _, p := range Passes() {
		n, err := w.Run(p)
		require.NoError(t, err, p.Name)
		assert.Zero(t, n, p.Name)
	}
	assert.Zero(t, s.RelationshipCount())

	for _, p := range s.ListEntities(graph.ListFilter{Type: model.EntityPerson}) {
		roles, ok := p.Attributes.Get(model.AttrHoldsRoles).AsStrings()
		assert.True(t, ok)
		assert.Empty(t, roles)
	}
}

func TestWeave_SchemaViolationSurfaces(t *testing.T) {
	reg := schema.New(map[model.RelationshipType]schema.Constraint{
		model.RelWorksIn: {Sources: []model.EntityType{model.EntityTeam}, Targets: []model.EntityType{model.EntityDepartment}},
	})
	c, s := populate(t, generate.DefaultProfile(20, 1), reg)

	w := New(c, s)
	_, err := w.Run(Passes()[0])
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrSchemaViolation)
	assert.Contains(t, err.Error(), "weave organization")
}

func TestRunAll_Cancelled(t *testing.T) {
	c, s := populate(t, generate.DefaultProfile(20, 1), schema.Default())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(c, s).RunAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, s.RelationshipCount())
}
