package graph

import "github.com/agenthands/orggraph/internal/core/model"

// Statistics summarizes the store.
type Statistics struct {
	EntityCount             int                            `json:"entity_count"`
	RelationshipCount       int                            `json:"relationship_count"`
	CountsByType            map[model.EntityType]int       `json:"counts_by_type"`
	RelationshipCountByType map[model.RelationshipType]int `json:"relationship_counts_by_type"`
	Density                 float64                        `json:"density"`
	IsWeaklyConnected       bool                           `json:"is_weakly_connected"`
	Components              int                            `json:"components"`
}

// Statistics computes counts, directed density m/(n(n-1)) and weak
// connectivity. An empty store is not connected.
func (s *Store) Statistics() Statistics {
	st := Statistics{
		EntityCount:             len(s.entities),
		RelationshipCount:       len(s.relationships),
		CountsByType:            make(map[model.EntityType]int),
		RelationshipCountByType: make(map[model.RelationshipType]int),
	}
	for t, set := range s.byType {
		if set.len() > 0 {
			st.CountsByType[t] = set.len()
		}
	}
	for _, r := range s.relationships {
		st.RelationshipCountByType[r.Type]++
	}
	n := st.EntityCount
	if n > 1 {
		st.Density = float64(st.RelationshipCount) / float64(n*(n-1))
	}
	if n > 0 {
		st.Components = len(s.components())
		st.IsWeaklyConnected = st.Components == 1
	}
	return st
}

// Subgraph returns a new store with the same registry holding the given
// entities and every relationship whose endpoints are both among them.
// Unknown ids are ignored; insertion order follows this store.
func (s *Store) Subgraph(ids []string) *Store {
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		if s.HasEntity(id) {
			keep[id] = true
		}
	}
	sub := New(s.registry, WithClock(s.clock))
	s.entityOrder.each(func(id string) bool {
		if keep[id] {
			e := s.entities[id].Clone()
			sub.entities[id] = &e
			sub.entityOrder.add(id)
			set, ok := sub.byType[e.Type]
			if !ok {
				set = newIDSet()
				sub.byType[e.Type] = set
			}
			set.add(id)
			sub.adj[id] = newAdjacency()
		}
		return true
	})
	s.relOrder.each(func(rid string) bool {
		r := s.relationships[rid]
		if keep[r.SourceID] && keep[r.TargetID] {
			cp := r.Clone()
			sub.relationships[rid] = &cp
			sub.relOrder.add(rid)
			sub.adj[cp.SourceID].out.add(rid)
			sub.adj[cp.TargetID].in.add(rid)
		}
		return true
	})
	return sub
}
