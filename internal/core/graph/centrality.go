package graph

import (
	"math"
	"sort"

	"github.com/agenthands/orggraph/internal/core/model"
)

const (
	pageRankDamping   = 0.85
	pageRankTolerance = 1e-6
	pageRankMaxIter   = 100
)

// indexed is a dense snapshot of the entity order used by the ranking
// algorithms.
type indexed struct {
	ids []string
	pos map[string]int
}

func (s *Store) index() indexed {
	ids := s.entityOrder.list()
	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	return indexed{ids: ids, pos: pos}
}

// rank sorts scores descending with ties in insertion order and keeps the
// first topN (all when topN <= 0).
func (s *Store) rank(ix indexed, scores []float64, topN int) []model.Ranked {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })
	if topN > 0 && topN < len(order) {
		order = order[:topN]
	}
	out := make([]model.Ranked, len(order))
	for i, idx := range order {
		id := ix.ids[idx]
		out[i] = model.Ranked{ID: id, Name: s.entities[id].Name, Score: scores[idx]}
	}
	return out
}

// DegreeCentrality ranks entities by incident relationship count divided by
// n-1. Parallel relationships each count.
func (s *Store) DegreeCentrality(topN int) []model.Ranked {
	ix := s.index()
	n := len(ix.ids)
	scores := make([]float64, n)
	for i, id := range ix.ids {
		if n <= 1 {
			scores[i] = 1
			continue
		}
		a := s.adj[id]
		scores[i] = float64(a.out.len()+a.in.len()) / float64(n-1)
	}
	return s.rank(ix, scores, topN)
}

// BetweennessCentrality ranks entities by normalized shortest-path
// betweenness over the undirected simple projection (Brandes' algorithm).
func (s *Store) BetweennessCentrality(topN int) []model.Ranked {
	ix := s.index()
	n := len(ix.ids)
	neighbors := make([][]int, n)
	for i, id := range ix.ids {
		for _, other := range s.undirectedNeighbors(id) {
			neighbors[i] = append(neighbors[i], ix.pos[other])
		}
	}

	cb := make([]float64, n)
	stack := make([]int, 0, n)
	preds := make([][]int, n)
	sigma := make([]float64, n)
	dist := make([]int, n)
	delta := make([]float64, n)
	queue := make([]int, 0, n)

	for src := 0; src < n; src++ {
		stack = stack[:0]
		queue = queue[:0]
		for i := 0; i < n; i++ {
			preds[i] = preds[i][:0]
			sigma[i] = 0
			dist[i] = -1
			delta[i] = 0
		}
		sigma[src] = 1
		dist[src] = 0
		queue = append(queue, src)
		for head := 0; head < len(queue); head++ {
			v := queue[head]
			stack = append(stack, v)
			for _, w := range neighbors[v] {
				if dist[w] < 0 {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					preds[w] = append(preds[w], v)
				}
			}
		}
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range preds[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != src {
				cb[w] += delta[w]
			}
		}
	}

	// Each unordered pair was counted from both ends; the undirected
	// normalization 2/((n-1)(n-2)) folds that halving in.
	if n > 2 {
		scale := 1 / float64((n-1)*(n-2))
		for i := range cb {
			cb[i] *= scale
		}
	} else {
		for i := range cb {
			cb[i] /= 2
		}
	}
	return s.rank(ix, cb, topN)
}

// PageRank ranks entities by PageRank over the directed relationship graph
// (damping 0.85, power iteration until the L1 change drops below n*1e-6 or
// 100 iterations). Dangling mass is spread uniformly.
func (s *Store) PageRank(topN int) []model.Ranked {
	ix := s.index()
	n := len(ix.ids)
	if n == 0 {
		return nil
	}

	outDeg := make([]float64, n)
	inbound := make([][]int, n)
	for i, id := range ix.ids {
		a := s.adj[id]
		outDeg[i] = float64(a.out.len())
		a.in.each(func(rid string) bool {
			inbound[i] = append(inbound[i], ix.pos[s.relationships[rid].SourceID])
			return true
		})
	}

	x := make([]float64, n)
	for i := range x {
		x[i] = 1 / float64(n)
	}
	next := make([]float64, n)
	for iter := 0; iter < pageRankMaxIter; iter++ {
		dangling := 0.0
		for i := range x {
			if outDeg[i] == 0 {
				dangling += x[i]
			}
		}
		base := (1-pageRankDamping)/float64(n) + pageRankDamping*dangling/float64(n)
		for v := 0; v < n; v++ {
			sum := 0.0
			for _, u := range inbound[v] {
				sum += x[u] / outDeg[u]
			}
			next[v] = base + pageRankDamping*sum
		}
		errSum := 0.0
		for i := range x {
			errSum += math.Abs(next[i] - x[i])
		}
		x, next = next, x
		if errSum < float64(n)*pageRankTolerance {
			break
		}
	}
	return s.rank(ix, x, topN)
}
