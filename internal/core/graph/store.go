// Package graph is the in-memory typed property graph of the organization.
//
// # Ownership
//
// The Store owns every record inserted into it. Inputs are copied on insert
// and outputs are copies, so callers never alias stored records.
//
// # Thread safety
//
// Store is a single-writer structure and provides no locking. Read
// operations may run concurrently with each other but never with a
// mutation; callers that share a store across goroutines serialize access
// themselves (see internal/server).
package graph

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/agenthands/orggraph/internal/core/model"
	"github.com/agenthands/orggraph/internal/core/schema"
)

// Direction selects which incident relationships of an entity to follow.
type Direction string

const (
	Out  Direction = "out"
	In   Direction = "in"
	Both Direction = "both"
)

// ParseDirection maps "", "both", "in" and "out" to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case "", Both:
		return Both, true
	case In:
		return In, true
	case Out:
		return Out, true
	}
	return "", false
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the timestamp source used for defaults and updates.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.SetClock(clock) }
}

// Store holds entities, relationships and the adjacency index between them.
type Store struct {
	registry *schema.Registry
	clock    func() time.Time

	entities      map[string]*model.Entity
	entityOrder   *idSet
	byType        map[model.EntityType]*idSet
	relationships map[string]*model.Relationship
	relOrder      *idSet
	adj           map[string]*adjacency
}

// New returns an empty store validating relationships against reg. A nil
// registry constrains nothing.
func New(reg *schema.Registry, opts ...Option) *Store {
	if reg == nil {
		reg = schema.New(nil)
	}
	s := &Store{
		registry:      reg,
		entities:      make(map[string]*model.Entity),
		entityOrder:   newIDSet(),
		byType:        make(map[model.EntityType]*idSet),
		relationships: make(map[string]*model.Relationship),
		relOrder:      newIDSet(),
		adj:           make(map[string]*adjacency),
	}
	s.SetClock(nil)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the schema registry the store validates against.
func (s *Store) Registry() *schema.Registry { return s.registry }

// SetClock replaces the timestamp source; nil restores the wall clock.
func (s *Store) SetClock(clock func() time.Time) {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC().Round(0) }
	}
	s.clock = clock
}

// AddEntity inserts e and returns its id. An empty id is replaced by a
// fresh UUID; zero timestamps and version are defaulted.
func (s *Store) AddEntity(e model.Entity) (string, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if !e.Type.Valid() {
		return "", &InvalidError{Kind: "entity", ID: e.ID, Reason: "unknown entity type " + string(e.Type)}
	}
	if _, exists := s.entities[e.ID]; exists {
		return "", &ConflictError{Kind: "entity", ID: e.ID}
	}

	stored := e.Clone()
	now := s.clock()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = stored.CreatedAt
	}
	if stored.Version == 0 {
		stored.Version = 1
	}

	s.entities[stored.ID] = &stored
	s.entityOrder.add(stored.ID)
	set, ok := s.byType[stored.Type]
	if !ok {
		set = newIDSet()
		s.byType[stored.Type] = set
	}
	set.add(stored.ID)
	s.adj[stored.ID] = newAdjacency()
	return stored.ID, nil
}

// GetEntity returns a copy of the entity with the given id.
func (s *Store) GetEntity(id string) (model.Entity, error) {
	e, ok := s.entities[id]
	if !ok {
		return model.Entity{}, entityNotFound(id)
	}
	return e.Clone(), nil
}

// HasEntity reports whether id is stored.
func (s *Store) HasEntity(id string) bool {
	_, ok := s.entities[id]
	return ok
}

// EntityType returns the variant of id without copying the entity.
func (s *Store) EntityType(id string) (model.EntityType, bool) {
	e, ok := s.entities[id]
	if !ok {
		return "", false
	}
	return e.Type, true
}

// UpdateEntity merges patch into the entity, bumps its version and sets
// UpdatedAt from the store clock. The variant never changes.
func (s *Store) UpdateEntity(id string, patch model.EntityPatch) (model.Entity, error) {
	e, ok := s.entities[id]
	if !ok {
		return model.Entity{}, entityNotFound(id)
	}
	patch.Apply(e)
	e.Version++
	e.UpdatedAt = s.clock()
	return e.Clone(), nil
}

// RemoveEntity deletes the entity and every relationship incident to it.
// It returns false when id is absent.
func (s *Store) RemoveEntity(id string) bool {
	e, ok := s.entities[id]
	if !ok {
		return false
	}
	a := s.adj[id]
	for _, rid := range a.out.list() {
		s.removeRelationship(rid)
	}
	for _, rid := range a.in.list() {
		s.removeRelationship(rid)
	}
	delete(s.adj, id)
	delete(s.entities, id)
	s.entityOrder.remove(id)
	if set, ok := s.byType[e.Type]; ok {
		set.remove(id)
	}
	return true
}

// ListFilter narrows ListEntities. Match is exact equality on attribute keys.
// Limit <= 0 means no limit.
type ListFilter struct {
	Type   model.EntityType
	Match  model.Attributes
	Limit  int
	Offset int
}

// ListEntities returns matching entities in insertion order.
func (s *Store) ListEntities(f ListFilter) []model.Entity {
	var ids *idSet
	if f.Type != "" {
		set, ok := s.byType[f.Type]
		if !ok {
			return nil
		}
		ids = set
	} else {
		ids = s.entityOrder
	}

	var out []model.Entity
	skipped := 0
	ids.each(func(id string) bool {
		e := s.entities[id]
		if !matches(e, f.Match) {
			return true
		}
		if skipped < f.Offset {
			skipped++
			return true
		}
		out = append(out, e.Clone())
		return f.Limit <= 0 || len(out) < f.Limit
	})
	return out
}

func matches(e *model.Entity, want model.Attributes) bool {
	for k, v := range want {
		got, ok := e.Attributes[k]
		if !ok || !got.Equal(v) {
			return false
		}
	}
	return true
}

// EachEntity visits every entity (a copy) in insertion order until fn
// returns false.
func (s *Store) EachEntity(fn func(model.Entity) bool) {
	s.entityOrder.each(func(id string) bool {
		return fn(s.entities[id].Clone())
	})
}

// AddRelationship checks that both endpoints exist, validates their variants
// against the registry and inserts r. An empty id is replaced by a fresh UUID.
func (s *Store) AddRelationship(r model.Relationship) (string, error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if !r.Type.Valid() {
		return "", &InvalidError{Kind: "relationship", ID: r.ID, Reason: "unknown relationship type " + string(r.Type)}
	}
	if _, exists := s.relationships[r.ID]; exists {
		return "", &ConflictError{Kind: "relationship", ID: r.ID}
	}
	src, ok := s.entities[r.SourceID]
	if !ok {
		return "", &NotFoundError{Kind: "entity", ID: r.SourceID, Role: "source"}
	}
	tgt, ok := s.entities[r.TargetID]
	if !ok {
		return "", &NotFoundError{Kind: "entity", ID: r.TargetID, Role: "target"}
	}
	if r.SourceID == r.TargetID {
		return "", &InvalidError{Kind: "relationship", ID: r.ID, Reason: "self-loop on " + r.SourceID}
	}
	if !unit(r.Weight) || !unit(r.Confidence) {
		return "", &InvalidError{Kind: "relationship", ID: r.ID, Reason: "weight and confidence must be within [0,1]"}
	}
	if err := s.registry.Validate(r.Type, src.Type, tgt.Type); err != nil {
		return "", err
	}

	stored := r.Clone()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.clock()
	}
	s.relationships[stored.ID] = &stored
	s.relOrder.add(stored.ID)
	s.adj[stored.SourceID].out.add(stored.ID)
	s.adj[stored.TargetID].in.add(stored.ID)
	return stored.ID, nil
}

func unit(f float64) bool { return !math.IsNaN(f) && f >= 0 && f <= 1 }

// GetRelationship returns a copy of the relationship with the given id.
func (s *Store) GetRelationship(id string) (model.Relationship, error) {
	r, ok := s.relationships[id]
	if !ok {
		return model.Relationship{}, relationshipNotFound(id)
	}
	return r.Clone(), nil
}

// RemoveRelationship deletes the relationship; false when absent.
func (s *Store) RemoveRelationship(id string) bool {
	return s.removeRelationship(id)
}

func (s *Store) removeRelationship(id string) bool {
	r, ok := s.relationships[id]
	if !ok {
		return false
	}
	if a, ok := s.adj[r.SourceID]; ok {
		a.out.remove(id)
	}
	if a, ok := s.adj[r.TargetID]; ok {
		a.in.remove(id)
	}
	delete(s.relationships, id)
	s.relOrder.remove(id)
	return true
}

// EachRelationship visits every relationship (a copy) in insertion order
// until fn returns false.
func (s *Store) EachRelationship(fn func(model.Relationship) bool) {
	s.relOrder.each(func(id string) bool {
		return fn(s.relationships[id].Clone())
	})
}

// GetRelationships returns relationships incident to entityID in the given
// direction, optionally restricted to one variant. Outgoing relationships
// come first for Both. Unknown ids yield no relationships.
func (s *Store) GetRelationships(entityID string, dir Direction, rt model.RelationshipType) []model.Relationship {
	var out []model.Relationship
	s.incident(entityID, dir, func(r *model.Relationship) bool {
		if rt == "" || r.Type == rt {
			out = append(out, r.Clone())
		}
		return true
	})
	return out
}

// incident visits stored relationships without copying them.
func (s *Store) incident(entityID string, dir Direction, fn func(*model.Relationship) bool) {
	a, ok := s.adj[entityID]
	if !ok {
		return
	}
	stop := false
	visit := func(rid string) bool {
		if !fn(s.relationships[rid]) {
			stop = true
			return false
		}
		return true
	}
	if dir == Out || dir == Both {
		a.out.each(visit)
	}
	if !stop && (dir == In || dir == Both) {
		a.in.each(visit)
	}
}

// Neighbors returns the distinct entities adjacent to entityID, optionally
// filtered by relationship variant and neighbor variant, in relationship
// order.
func (s *Store) Neighbors(entityID string, dir Direction, rt model.RelationshipType, targetType model.EntityType) []model.Entity {
	seen := make(map[string]bool)
	var out []model.Entity
	s.incident(entityID, dir, func(r *model.Relationship) bool {
		if rt != "" && r.Type != rt {
			return true
		}
		other := r.Other(entityID)
		if seen[other] {
			return true
		}
		e := s.entities[other]
		if targetType != "" && e.Type != targetType {
			return true
		}
		seen[other] = true
		out = append(out, e.Clone())
		return true
	})
	return out
}

// EntityCount returns the number of stored entities.
func (s *Store) EntityCount() int { return len(s.entities) }

// RelationshipCount returns the number of stored relationships.
func (s *Store) RelationshipCount() int { return len(s.relationships) }
