package community

import (
	"github.com/agenthands/orggraph/internal/core/graph"
	"github.com/agenthands/orggraph/internal/core/model"
)

type CommunityDetector interface {
	Detect(entities []model.Entity, rels []model.Relationship) ([][]model.Entity, error)
}

// Summary is one detected community as reported over the API.
type Summary struct {
	Size        int                      `json:"size"`
	CountByType map[model.EntityType]int `json:"count_by_type"`
	MemberIDs   []string                 `json:"member_ids"`
}

// DetectStore runs d over the whole store and summarizes each community.
func DetectStore(d CommunityDetector, s *graph.Store) ([]Summary, error) {
	doc := s.Export()
	communities, err := d.Detect(doc.Entities, doc.Relationships)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(communities))
	for _, c := range communities {
		sum := Summary{Size: len(c), CountByType: make(map[model.EntityType]int), MemberIDs: make([]string, len(c))}
		for i, e := range c {
			sum.CountByType[e.Type]++
			sum.MemberIDs[i] = e.ID
		}
		out = append(out, sum)
	}
	return out, nil
}

// SimpleDetector reports weakly connected components as communities.
type SimpleDetector struct {
	MinSize int
}

func NewSimpleDetector() *SimpleDetector {
	return &SimpleDetector{MinSize: 2}
}

func (d *SimpleDetector) Detect(entities []model.Entity, rels []model.Relationship) ([][]model.Entity, error) {
	byID := make(map[string]model.Entity, len(entities))
	adj := make(map[string][]string)

	for _, e := range entities {
		byID[e.ID] = e
	}
	for _, r := range rels {
		// Only relationships inside the given entity set count.
		if _, ok := byID[r.SourceID]; !ok {
			continue
		}
		if _, ok := byID[r.TargetID]; !ok {
			continue
		}
		adj[r.SourceID] = append(adj[r.SourceID], r.TargetID)
		adj[r.TargetID] = append(adj[r.TargetID], r.SourceID)
	}

	visited := make(map[string]bool)
	var communities [][]model.Entity
	for _, e := range entities {
		if visited[e.ID] {
			continue
		}
		var component []string
		d.walk(e.ID, adj, visited, &component)
		community := make([]model.Entity, 0, len(component))
		for _, id := range component {
			community = append(community, byID[id])
		}
		communities = append(communities, community)
	}
	return filterSize(communities, d.MinSize), nil
}

// walk is an iterative DFS.
func (d *SimpleDetector) walk(start string, adj map[string][]string, visited map[string]bool, component *[]string) {
	stack := []string{start}
	visited[start] = true
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		*component = append(*component, u)
		for _, v := range adj[u] {
			if !visited[v] {
				visited[v] = true
				stack = append(stack, v)
			}
		}
	}
}
