package graph

import "github.com/agenthands/orggraph/internal/core/model"

// undirectedNeighbors lists the distinct neighbors of id over both
// directions, outgoing first, each in relationship insertion order.
func (s *Store) undirectedNeighbors(id string) []string {
	a, ok := s.adj[id]
	if !ok {
		return nil
	}
	seen := make(map[string]bool, a.out.len()+a.in.len())
	out := make([]string, 0, a.out.len()+a.in.len())
	collect := func(rid string) bool {
		other := s.relationships[rid].Other(id)
		if !seen[other] {
			seen[other] = true
			out = append(out, other)
		}
		return true
	}
	a.out.each(collect)
	a.in.each(collect)
	return out
}

// ShortestPath returns the ids on a shortest unweighted path from source to
// target over the undirected projection, both endpoints included. A node's
// path to itself is just that node. ok is false when either id is absent or
// target is unreachable.
func (s *Store) ShortestPath(source, target string) (path []string, ok bool) {
	if !s.HasEntity(source) || !s.HasEntity(target) {
		return nil, false
	}
	if source == target {
		return []string{source}, true
	}

	parent := map[string]string{source: ""}
	frontier := []string{source}
	for len(frontier) > 0 {
		var next []string
		for _, id := range frontier {
			for _, n := range s.undirectedNeighbors(id) {
				if _, seen := parent[n]; seen {
					continue
				}
				parent[n] = id
				if n == target {
					return unwind(parent, target), true
				}
				next = append(next, n)
			}
		}
		frontier = next
	}
	return nil, false
}

func unwind(parent map[string]string, target string) []string {
	var rev []string
	for id := target; id != ""; id = parent[id] {
		rev = append(rev, id)
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// BlastRadius groups the entities reachable from id within maxDepth hops by
// their hop distance. The origin is excluded and every entity appears at
// the first depth it is reached. Depths with no entities are omitted.
func (s *Store) BlastRadius(id string, maxDepth int) (map[int][]model.Entity, error) {
	if !s.HasEntity(id) {
		return nil, entityNotFound(id)
	}
	out := make(map[int][]model.Entity)
	visited := map[string]bool{id: true}
	frontier := []string{id}
	for depth := 1; depth <= maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, cur := range frontier {
			for _, n := range s.undirectedNeighbors(cur) {
				if visited[n] {
					continue
				}
				visited[n] = true
				next = append(next, n)
				out[depth] = append(out[depth], s.entities[n].Clone())
			}
		}
		frontier = next
	}
	return out, nil
}

// components returns the weakly connected components in insertion order of
// their first member.
func (s *Store) components() [][]string {
	visited := make(map[string]bool, len(s.entities))
	var comps [][]string
	s.entityOrder.each(func(start string) bool {
		if visited[start] {
			return true
		}
		visited[start] = true
		comp := []string{start}
		for i := 0; i < len(comp); i++ {
			for _, n := range s.undirectedNeighbors(comp[i]) {
				if !visited[n] {
					visited[n] = true
					comp = append(comp, n)
				}
			}
		}
		comps = append(comps, comp)
		return true
	})
	return comps
}
