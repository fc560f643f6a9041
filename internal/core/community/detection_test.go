package community

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/orggraph/internal/core/graph"
	"github.com/agenthands/orggraph/internal/core/model"
	"github.com/agenthands/orggraph/internal/core/schema"
)

func TestDetect(t *testing.T) {
	ents := nodes("1", "2", "3", "4")
	// 4 is isolated and filtered as a singleton.
	rels := link([2]string{"1", "2"}, [2]string{"2", "3"})

	communities, err := NewSimpleDetector().Detect(ents, rels)
	require.NoError(t, err)
	require.Len(t, communities, 1)
	assert.ElementsMatch(t, []string{"1", "2", "3"}, memberIDs(communities[0]))
}

func TestDetect_MultipleCommunities(t *testing.T) {
	communities, err := NewSimpleDetector().Detect(
		nodes("1", "2", "3", "4"),
		link([2]string{"1", "2"}, [2]string{"3", "4"}),
	)
	require.NoError(t, err)
	assert.Len(t, communities, 2)
}

func TestDetect_KeepsSingletonsWhenAsked(t *testing.T) {
	d := &SimpleDetector{MinSize: 1}
	communities, err := d.Detect(nodes("1", "2", "3"), link([2]string{"1", "2"}))
	require.NoError(t, err)
	require.Len(t, communities, 2)
	assert.Equal(t, []string{"3"}, memberIDs(communities[1]))
}

func TestDetectStore(t *testing.T) {
	s := graph.New(schema.Default())
	for _, e := range []model.Entity{
		{ID: "p1", Type: model.EntityPerson, Name: "Ada"},
		{ID: "p2", Type: model.EntityPerson, Name: "Grace"},
		{ID: "d1", Type: model.EntityDepartment, Name: "Engineering"},
		{ID: "v1", Type: model.EntityVendor, Name: "Acme"},
	} {
		_, err := s.AddEntity(e)
		require.NoError(t, err)
	}
	for _, r := range []model.Relationship{
		{ID: "r1", Type: model.RelWorksIn, SourceID: "p1", TargetID: "d1", Weight: 1, Confidence: 1},
		{ID: "r2", Type: model.RelWorksIn, SourceID: "p2", TargetID: "d1", Weight: 1, Confidence: 1},
	} {
		_, err := s.AddRelationship(r)
		require.NoError(t, err)
	}

	summaries, err := DetectStore(NewSimpleDetector(), s)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 3, summaries[0].Size)
	assert.Equal(t, 2, summaries[0].CountByType[model.EntityPerson])
	assert.Equal(t, 1, summaries[0].CountByType[model.EntityDepartment])
	assert.NotContains(t, summaries[0].MemberIDs, "v1")
}
