package graph

import (
	"errors"
	"fmt"

	"github.com/agenthands/orggraph/internal/core/schema"
)

// Sentinel errors for store operations. Typed errors below match them via
// errors.Is so callers can tell the failure categories apart.
var (
	// ErrNotFound is returned when an entity or relationship id is absent,
	// including relationship endpoints.
	ErrNotFound = errors.New("graph: not found")

	// ErrConflict is returned when an insert reuses an existing id.
	ErrConflict = errors.New("graph: id already exists")

	// ErrSchemaViolation is returned when relationship endpoints fall outside
	// the registry's domain or range for the relationship variant.
	ErrSchemaViolation = schema.ErrViolation

	// ErrInvalid is returned for records the store cannot accept at all:
	// unknown variant tags, self-loops, weights outside [0,1].
	ErrInvalid = errors.New("graph: invalid record")
)

// NotFoundError names the missing record. Role is "source" or "target" when
// the missing id is a relationship endpoint.
type NotFoundError struct {
	Kind string
	ID   string
	Role string
}

func (e *NotFoundError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("graph: %s entity %q not found", e.Role, e.ID)
	}
	return fmt.Sprintf("graph: %s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConflictError names the reused id.
type ConflictError struct {
	Kind string
	ID   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("graph: %s id %q already exists", e.Kind, e.ID)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// InvalidError describes why a record was rejected.
type InvalidError struct {
	Kind   string
	ID     string
	Reason string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("graph: invalid %s %q: %s", e.Kind, e.ID, e.Reason)
}

func (e *InvalidError) Is(target error) bool { return target == ErrInvalid }

func entityNotFound(id string) error { return &NotFoundError{Kind: "entity", ID: id} }

func relationshipNotFound(id string) error { return &NotFoundError{Kind: "relationship", ID: id} }
