package quality

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/orggraph/internal/core/generate"
	"github.com/agenthands/orggraph/internal/core/graph"
	"github.com/agenthands/orggraph/internal/core/model"
	"github.com/agenthands/orggraph/internal/core/schema"
	"github.com/agenthands/orggraph/internal/core/weave"
)

func generated(t *testing.T, scale int) *graph.Store {
	t.Helper()
	c := generate.NewContext(generate.DefaultProfile(scale, 42))
	s := graph.New(schema.Default())
	for _, g := range generate.DefaultRegistry().Generators() {
		require.NoError(t, s.BulkAddEntities(g.Run(c)).Err())
	}
	require.NoError(t, weave.New(c, s).RunAll(context.Background()))
	return s
}

func add(t *testing.T, s *graph.Store, typ model.EntityType, name, desc string, attrs model.Attributes) {
	t.Helper()
	_, err := s.AddEntity(model.Entity{Type: typ, Name: name, Description: desc, Attributes: attrs})
	require.NoError(t, err)
}

const prose = "A perfectly ordinary description of this record."

func TestScore_GeneratedGraphIsClean(t *testing.T) {
	rep := NewScorer().Score(generated(t, 300))

	require.Len(t, rep.Checks, 5)
	assert.Equal(t, []string{CheckRiskMath, CheckDescriptions, CheckCoherence, CheckCrossField, CheckEncryption},
		[]string{rep.Checks[0].Name, rep.Checks[1].Name, rep.Checks[2].Name, rep.Checks[3].Name, rep.Checks[4].Name})
	assert.Empty(t, rep.Warnings)
	assert.Zero(t, rep.Violations)
	assert.Equal(t, 1.0, rep.Overall)
	for _, c := range rep.Checks {
		assert.Greater(t, c.Total, 0, "%s applied to nothing", c.Name)
	}
}

func TestScore_Pure(t *testing.T) {
	s := generated(t, 100)
	add(t, s, model.EntityRisk, "Broken risk", "lorem ipsum dolor sit amet, consectetur", model.Attributes{
		model.AttrInherentLikelihood: model.Int(5),
		model.AttrInherentImpact:     model.Int(5),
		model.AttrInherentRiskLevel:  model.String(model.LevelLow),
	})
	before := s.Export()

	sc := NewScorer()
	a, b := sc.Score(s), sc.Score(s)
	assert.Equal(t, a, b)
	assert.Equal(t, before, s.Export(), "scoring mutated the store")
	assert.Less(t, a.Overall, 1.0)
}

func TestScore_EmptyStore(t *testing.T) {
	rep := NewScorer().Score(graph.New(schema.Default()))
	assert.Equal(t, 1.0, rep.Overall)
	assert.NotNil(t, rep.Warnings)
	for _, c := range rep.Checks {
		assert.Zero(t, c.Total)
		assert.Equal(t, 1.0, c.Score)
	}
}

func TestScore_DetectsViolations(t *testing.T) {
	s := graph.New(schema.Default())
	add(t, s, model.EntityRisk, "Mispriced risk", prose, model.Attributes{
		model.AttrInherentLikelihood: model.Int(5),
		model.AttrInherentImpact:     model.Int(5),
		model.AttrInherentRiskLevel:  model.String(model.LevelLow),
		model.AttrResidualRiskLevel:  model.String(model.LevelHigh),
	})
	add(t, s, model.EntityPolicy, "Lazy policy", "Lorem ipsum dolor sit amet placeholder", nil)
	add(t, s, model.EntitySystem, "Edge firewall", prose, model.Attributes{
		model.AttrSystemType:   model.String(model.SystemAppliance),
		model.AttrTechnologies: model.Strings("Linux", "Django"),
	})
	add(t, s, model.EntitySite, "North DC", prose, model.Attributes{
		model.AttrSiteType:     model.String(model.SiteDataCenter),
		model.AttrSecurityTier: model.String(model.TierStandard),
	})
	add(t, s, model.EntityDataFlow, "Payroll feed", prose, model.Attributes{
		model.AttrClassification:     model.String(model.ClassRestricted),
		model.AttrEncryptedInTransit: model.Bool(false),
	})
	add(t, s, model.EntityVulnerability, "CVE-2024-00001", prose, model.Attributes{
		model.AttrCVSS:           model.Number(9.8),
		model.AttrSeverity:       model.String(model.LevelLow),
		model.AttrPatchAvailable: model.Bool(false),
		model.AttrStatus:         model.String(model.StatusPatched),
	})
	add(t, s, model.EntityRole, "Analyst", prose, model.Attributes{
		model.AttrFilledByPersons: model.Strings("p1", "p2"),
		model.AttrHeadcountFilled: model.Int(3),
	})

	rep := NewScorer().Score(s)
	scores := map[string]CheckResult{}
	for _, c := range rep.Checks {
		scores[c.Name] = c
	}

	assert.Equal(t, CheckResult{Name: CheckRiskMath, Score: 0, Passed: 0, Total: 1}, scores[CheckRiskMath])
	assert.Equal(t, 6, scores[CheckDescriptions].Passed)
	assert.Equal(t, 7, scores[CheckDescriptions].Total)
	assert.Equal(t, 0, scores[CheckCoherence].Passed)
	assert.Equal(t, 3, scores[CheckCoherence].Total)
	assert.Equal(t, 0, scores[CheckCrossField].Passed)
	assert.Equal(t, 3, scores[CheckCrossField].Total)
	assert.Equal(t, 0.0, scores[CheckEncryption].Score)

	assert.Equal(t, 9, rep.Violations)
	require.Len(t, rep.Warnings, 9)
	assert.Contains(t, rep.Warnings[0], "matrix gives \"Critical\"")
	assert.Contains(t, rep.Warnings[1], "placeholder")
	assert.Contains(t, rep.Warnings[2], "Django")
	assert.InDelta(t, (0+6.0/7+0+0+0)/5, rep.Overall, 1e-9)
}

func TestScore_WarningsBounded(t *testing.T) {
	s := graph.New(schema.Default())
	for i := 0; i < 150; i++ {
		add(t, s, model.EntityProduct, fmt.Sprintf("Product %d", i), "TBD", nil)
	}
	rep := NewScorer().Score(s)
	assert.Len(t, rep.Warnings, DefaultMaxWarnings)
	assert.Equal(t, 150, rep.Violations)
	assert.Contains(t, rep.Warnings[0], "Product 0")

	sc := NewScorer()
	sc.MaxWarnings = 5
	assert.Len(t, sc.Score(s).Warnings, 5)
}

func TestDescriptions(t *testing.T) {
	cases := map[string]bool{
		prose:                                   true,
		"Too short":                             false,
		"Lorem ipsum dolor sit amet.":           false,
		"Owner: TBD pending a reorg..":          false,
		"N/A for now, nothing to say.":          false,
		"Handles invoices for the APAC region.": true,
	}
	for desc, ok := range cases {
		tl := &tally{limit: 10}
		descriptions(tl, model.Entity{Type: model.EntityProcess, Name: "x", Description: desc})
		assert.Equal(t, ok, tl.failed == 0, desc)
	}

	tl := &tally{limit: 10}
	descriptions(tl, model.Entity{Type: model.EntityProcess, Name: "Invoice handling for APAC", Description: "invoice handling for APAC"})
	assert.Equal(t, 1, tl.failed)
}
