package community

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/orggraph/internal/core/model"
)

func nodes(ids ...string) []model.Entity {
	out := make([]model.Entity, len(ids))
	for i, id := range ids {
		out[i] = model.Entity{ID: id, Type: model.EntityPerson, Name: "n" + id}
	}
	return out
}

func link(pairs ...[2]string) []model.Relationship {
	out := make([]model.Relationship, len(pairs))
	for i, p := range pairs {
		out[i] = model.Relationship{ID: p[0] + "-" + p[1], Type: model.RelRelatedTo, SourceID: p[0], TargetID: p[1]}
	}
	return out
}

func memberIDs(c []model.Entity) []string {
	out := make([]string, len(c))
	for i, e := range c {
		out[i] = e.ID
	}
	return out
}

func TestLPA_DisconnectedComponents(t *testing.T) {
	// [1-2-3-1] and [4-5-6-4], no relationship between them.
	rels := link(
		[2]string{"1", "2"}, [2]string{"2", "3"}, [2]string{"3", "1"},
		[2]string{"4", "5"}, [2]string{"5", "6"}, [2]string{"6", "4"},
	)

	communities, err := NewLabelPropagationDetector().Detect(nodes("1", "2", "3", "4", "5", "6"), rels)
	require.NoError(t, err)
	require.Len(t, communities, 2)
	assert.Equal(t, []string{"1", "2", "3"}, memberIDs(communities[0]))
	assert.Equal(t, []string{"4", "5", "6"}, memberIDs(communities[1]))
}

func TestLPA_BridgeNode(t *testing.T) {
	// Two triangles joined by 3-4. Intra-triangle ties outweigh the bridge.
	rels := link(
		[2]string{"1", "2"}, [2]string{"2", "3"}, [2]string{"3", "1"},
		[2]string{"3", "4"},
		[2]string{"4", "5"}, [2]string{"5", "6"}, [2]string{"6", "4"},
	)

	communities, err := NewLabelPropagationDetector().Detect(nodes("1", "2", "3", "4", "5", "6"), rels)
	require.NoError(t, err)
	require.Len(t, communities, 2)
	assert.Equal(t, []string{"1", "2", "3"}, memberIDs(communities[0]))
	assert.Equal(t, []string{"4", "5", "6"}, memberIDs(communities[1]))
}

func TestLPA_LargeClique(t *testing.T) {
	ents := nodes("1", "2", "3", "4", "5")
	var rels []model.Relationship
	for i := range ents {
		for j := i + 1; j < len(ents); j++ {
			rels = append(rels, link([2]string{ents[i].ID, ents[j].ID})...)
		}
	}

	communities, err := NewLabelPropagationDetector().Detect(ents, rels)
	require.NoError(t, err)
	require.Len(t, communities, 1)
	assert.Len(t, communities[0], 5)
}

func TestLPA_Deterministic(t *testing.T) {
	ents := nodes("a", "b", "c", "d", "e", "f", "g")
	rels := link(
		[2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "d"},
		[2]string{"d", "e"}, [2]string{"e", "f"}, [2]string{"f", "g"},
	)
	d := NewLabelPropagationDetector()
	first, err := d.Detect(ents, rels)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := d.Detect(ents, rels)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestLPA_Empty(t *testing.T) {
	communities, err := NewLabelPropagationDetector().Detect(nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, communities)
}
