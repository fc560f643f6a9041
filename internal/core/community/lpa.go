package community

import (
	"sort"

	"github.com/agenthands/orggraph/internal/core/model"
)

// LabelPropagationDetector implements community detection using the Label
// Propagation Algorithm (LPA) over the undirected projection of the graph.
type LabelPropagationDetector struct {
	MaxIterations int
	// MinSize drops communities smaller than this. Values below 2 keep
	// singletons.
	MinSize int
}

func NewLabelPropagationDetector() *LabelPropagationDetector {
	return &LabelPropagationDetector{
		MaxIterations: 20,
		MinSize:       2,
	}
}

func (d *LabelPropagationDetector) Detect(entities []model.Entity, rels []model.Relationship) ([][]model.Entity, error) {
	if len(entities) == 0 {
		return nil, nil
	}

	// Parallel relationships count as a stronger connection.
	adj := make(map[string]map[string]int, len(entities))
	byID := make(map[string]model.Entity, len(entities))
	for _, e := range entities {
		byID[e.ID] = e
		adj[e.ID] = make(map[string]int)
	}
	for _, r := range rels {
		if _, ok := byID[r.SourceID]; !ok {
			continue
		}
		if _, ok := byID[r.TargetID]; !ok {
			continue
		}
		adj[r.SourceID][r.TargetID]++
		adj[r.TargetID][r.SourceID]++
	}

	labels := make(map[string]string, len(entities))
	for _, e := range entities {
		labels[e.ID] = e.ID
	}

	for iter := 0; iter < d.MaxIterations; iter++ {
		changed := 0
		for _, e := range entities {
			neighbors := adj[e.ID]
			if len(neighbors) == 0 {
				continue
			}

			counts := make(map[string]int)
			maxCount := 0
			for v, weight := range neighbors {
				label := labels[v]
				counts[label] += weight
				if counts[label] > maxCount {
					maxCount = counts[label]
				}
			}

			// Ties go to the lexicographically largest label so the result
			// does not depend on map order.
			var candidates []string
			for label, count := range counts {
				if count == maxCount {
					candidates = append(candidates, label)
				}
			}
			sort.Strings(candidates)
			best := candidates[len(candidates)-1]

			if labels[e.ID] != best {
				labels[e.ID] = best
				changed++
			}
		}
		if changed == 0 {
			break
		}
	}

	// Group by label, ordering communities by their first member in input
	// order and members in input order.
	index := make(map[string]int)
	var communities [][]model.Entity
	for _, e := range entities {
		label := labels[e.ID]
		i, ok := index[label]
		if !ok {
			i = len(communities)
			index[label] = i
			communities = append(communities, nil)
		}
		communities[i] = append(communities[i], e)
	}
	return filterSize(communities, d.MinSize), nil
}

func filterSize(communities [][]model.Entity, minSize int) [][]model.Entity {
	out := communities[:0]
	for _, c := range communities {
		if len(c) >= minSize {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
