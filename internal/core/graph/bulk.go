package graph

import (
	"fmt"

	"github.com/agenthands/orggraph/internal/core/model"
)

// ItemError is the rejection of one item of a bulk call.
type ItemError struct {
	Index int   `json:"index"`
	Err   error `json:"-"`
}

func (e ItemError) Error() string { return fmt.Sprintf("item %d: %v", e.Index, e.Err) }

func (e ItemError) Unwrap() error { return e.Err }

// BulkResult holds the outcome of a bulk insert. IDs is positional: rejected
// items leave an empty string at their index and an entry in Errors.
type BulkResult struct {
	IDs    []string
	Errors []ItemError
}

// OK reports whether every item was inserted.
func (r BulkResult) OK() bool { return len(r.Errors) == 0 }

// Inserted counts successfully inserted items.
func (r BulkResult) Inserted() int { return len(r.IDs) - len(r.Errors) }

// Err returns the first item error, or nil.
func (r BulkResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors[0]
}

// BulkAddEntities inserts each entity with the same checks as AddEntity.
// It is best-effort: a rejected item does not undo earlier inserts.
func (s *Store) BulkAddEntities(items []model.Entity) BulkResult {
	res := BulkResult{IDs: make([]string, len(items))}
	for i, e := range items {
		id, err := s.AddEntity(e)
		if err != nil {
			res.Errors = append(res.Errors, ItemError{Index: i, Err: err})
			continue
		}
		res.IDs[i] = id
	}
	return res
}

// BulkAddRelationships inserts each relationship with the same checks as
// AddRelationship, best-effort like BulkAddEntities.
func (s *Store) BulkAddRelationships(items []model.Relationship) BulkResult {
	res := BulkResult{IDs: make([]string, len(items))}
	for i, r := range items {
		id, err := s.AddRelationship(r)
		if err != nil {
			res.Errors = append(res.Errors, ItemError{Index: i, Err: err})
			continue
		}
		res.IDs[i] = id
	}
	return res
}

// Export returns the store contents as a Document in insertion order.
func (s *Store) Export() model.Document {
	doc := model.Document{
		Entities:      make([]model.Entity, 0, len(s.entities)),
		Relationships: make([]model.Relationship, 0, len(s.relationships)),
	}
	s.EachEntity(func(e model.Entity) bool {
		doc.Entities = append(doc.Entities, e)
		return true
	})
	s.EachRelationship(func(r model.Relationship) bool {
		doc.Relationships = append(doc.Relationships, r)
		return true
	})
	return doc
}

// Load bulk-adds the document's entities, then its relationships.
func (s *Store) Load(doc model.Document) (entities, relationships BulkResult) {
	entities = s.BulkAddEntities(doc.Entities)
	relationships = s.BulkAddRelationships(doc.Relationships)
	return entities, relationships
}
