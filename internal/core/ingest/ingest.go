// Package ingest validates exchange documents before they reach a store, so
// that a bulk load either commits completely or not at all.
package ingest

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/agenthands/orggraph/internal/core/graph"
	"github.com/agenthands/orggraph/internal/core/model"
)

// ErrValidation marks records missing required content.
var ErrValidation = errors.New("ingest: invalid record")

// ValidationError describes one rejected record. Err is the category the
// rejection falls under (ErrValidation or one of the graph sentinels) and is
// what errors.Is matches.
type ValidationError struct {
	Kind   string `json:"kind"`
	Index  int    `json:"index"`
	ID     string `json:"id,omitempty"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

func (e *ValidationError) Error() string {
	id := e.ID
	if id == "" {
		id = "-"
	}
	return fmt.Sprintf("%s %d (%s): %s: %s", e.Kind, e.Index, id, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Quarantined is an attribute set aside because its key is not declared for
// the entity's variant.
type Quarantined struct {
	EntityID string      `json:"entity_id"`
	Key      string      `json:"key"`
	Value    model.Value `json:"value"`
}

// Policy tunes validation.
type Policy struct {
	// StrictKeys rejects entities carrying undeclared attribute keys instead
	// of quarantining the keys.
	StrictKeys bool `toml:"strict_keys" json:"strict_keys"`
}

// Report is the outcome of Validate or Commit.
type Report struct {
	Entities      int                `json:"entities"`
	Relationships int                `json:"relationships"`
	Errors        []*ValidationError `json:"errors,omitempty"`
	Quarantined   []Quarantined      `json:"quarantined,omitempty"`
}

// OK reports whether the document passed validation.
func (r Report) OK() bool { return len(r.Errors) == 0 }

// Err joins the validation errors, or returns nil.
func (r Report) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

func (r *Report) reject(kind string, index int, id, field string, err error, format string, args ...any) {
	r.Errors = append(r.Errors, &ValidationError{
		Kind:   kind,
		Index:  index,
		ID:     id,
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
		Err:    err,
	})
}

// Validate checks doc against s without modifying s. Endpoints may refer to
// entities in doc or already in s. With a nil store only the document itself
// is checked and schema constraints are skipped. The returned document has
// quarantined keys stripped and is what Commit loads.
func Validate(doc model.Document, s *graph.Store, p Policy) (model.Document, Report) {
	rep := Report{Entities: len(doc.Entities), Relationships: len(doc.Relationships)}
	clean := model.Document{
		Entities:      make([]model.Entity, len(doc.Entities)),
		Relationships: doc.Relationships,
	}

	types := make(map[string]model.EntityType, len(doc.Entities))
	for i, e := range doc.Entities {
		clean.Entities[i] = validateEntity(&rep, i, e, s, types, p)
	}

	rels := make(map[string]bool, len(doc.Relationships))
	for i, r := range doc.Relationships {
		validateRelationship(&rep, i, r, s, types, rels)
	}
	return clean, rep
}

func validateEntity(rep *Report, i int, e model.Entity, s *graph.Store, seen map[string]model.EntityType, p Policy) model.Entity {
	const kind = "entity"
	if !e.Type.Valid() {
		rep.reject(kind, i, e.ID, "entity_type", graph.ErrInvalid, "unknown entity type %q", e.Type)
		return e
	}
	if strings.TrimSpace(e.Name) == "" {
		rep.reject(kind, i, e.ID, "name", ErrValidation, "name is empty")
	}
	if e.ID != "" {
		if _, dup := seen[e.ID]; dup {
			rep.reject(kind, i, e.ID, "id", graph.ErrConflict, "id repeated within the document")
		} else if s != nil && s.HasEntity(e.ID) {
			rep.reject(kind, i, e.ID, "id", graph.ErrConflict, "id already in the store")
		}
		seen[e.ID] = e.Type
	}

	spec, ok := model.SpecFor(e.Type)
	if !ok {
		return e
	}
	for _, key := range spec.Required {
		if !e.Attributes.Has(key) {
			rep.reject(kind, i, e.ID, "attributes."+key, ErrValidation, "required by %s", e.Type)
		}
	}

	var unknown []string
	for key := range e.Attributes {
		if !spec.Known(key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return e
	}
	sort.Strings(unknown)
	if p.StrictKeys {
		for _, key := range unknown {
			rep.reject(kind, i, e.ID, "attributes."+key, ErrValidation, "not declared for %s", e.Type)
		}
		return e
	}
	e = e.Clone()
	for _, key := range unknown {
		rep.Quarantined = append(rep.Quarantined, Quarantined{EntityID: e.ID, Key: key, Value: e.Attributes[key]})
		delete(e.Attributes, key)
	}
	if len(e.Attributes) == 0 {
		e.Attributes = nil
	}
	return e
}

func validateRelationship(rep *Report, i int, r model.Relationship, s *graph.Store, types map[string]model.EntityType, seen map[string]bool) {
	const kind = "relationship"
	if !r.Type.Valid() {
		rep.reject(kind, i, r.ID, "relationship_type", graph.ErrInvalid, "unknown relationship type %q", r.Type)
		return
	}
	if r.ID != "" {
		if seen[r.ID] {
			rep.reject(kind, i, r.ID, "id", graph.ErrConflict, "id repeated within the document")
		} else if s != nil {
			if _, err := s.GetRelationship(r.ID); err == nil {
				rep.reject(kind, i, r.ID, "id", graph.ErrConflict, "id already in the store")
			}
		}
		seen[r.ID] = true
	}
	if !unit(r.Weight) {
		rep.reject(kind, i, r.ID, "weight", graph.ErrInvalid, "%v is outside [0,1]", r.Weight)
	}
	if !unit(r.Confidence) {
		rep.reject(kind, i, r.ID, "confidence", graph.ErrInvalid, "%v is outside [0,1]", r.Confidence)
	}
	if r.SourceID != "" && r.SourceID == r.TargetID {
		rep.reject(kind, i, r.ID, "target_id", graph.ErrInvalid, "self-loop on %s", r.SourceID)
		return
	}

	src, okSrc := lookup(r.SourceID, s, types)
	if !okSrc {
		rep.reject(kind, i, r.ID, "source_id", graph.ErrNotFound, "entity %q is neither in the document nor the store", r.SourceID)
	}
	tgt, okTgt := lookup(r.TargetID, s, types)
	if !okTgt {
		rep.reject(kind, i, r.ID, "target_id", graph.ErrNotFound, "entity %q is neither in the document nor the store", r.TargetID)
	}
	if !okSrc || !okTgt || s == nil {
		return
	}
	if err := s.Registry().Validate(r.Type, src, tgt); err != nil {
		rep.reject(kind, i, r.ID, "relationship_type", err, "%v", err)
	}
}

func lookup(id string, s *graph.Store, types map[string]model.EntityType) (model.EntityType, bool) {
	if id == "" {
		return "", false
	}
	if t, ok := types[id]; ok {
		return t, t.Valid()
	}
	if s != nil {
		return s.EntityType(id)
	}
	return "", false
}

func unit(f float64) bool { return !math.IsNaN(f) && f >= 0 && f <= 1 }

// Commit validates doc and, only when it is clean, bulk-inserts its entities
// and then its relationships. On a validation failure s is untouched.
func Commit(doc model.Document, s *graph.Store, p Policy) (Report, error) {
	clean, rep := Validate(doc, s, p)
	if !rep.OK() {
		return rep, rep.Err()
	}
	ents, rels := s.Load(clean)
	if err := errors.Join(ents.Err(), rels.Err()); err != nil {
		return rep, fmt.Errorf("ingest: commit after clean validation: %w", err)
	}
	return rep, nil
}
