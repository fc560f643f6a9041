// Package schema declares which entity variants may appear at each end of a
// relationship variant.
//
// A Registry is immutable once built and is shared by pointer between the
// graph store and the generation engine. Relationship variants without an
// entry are unconstrained.
package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agenthands/orggraph/internal/core/model"
)

// ErrViolation is matched by every *Violation.
var ErrViolation = errors.New("schema violation")

// Side names the endpoint of a relationship that failed validation.
type Side string

const (
	SideSource Side = "source"
	SideTarget Side = "target"
)

// Violation reports an endpoint variant outside the declared domain or range.
type Violation struct {
	Relationship model.RelationshipType
	Side         Side
	Got          model.EntityType
	Allowed      []model.EntityType
}

func (v *Violation) Error() string {
	names := make([]string, len(v.Allowed))
	for i, t := range v.Allowed {
		names[i] = string(t)
	}
	return fmt.Sprintf("schema violation: %s %s must be one of [%s], got %s",
		v.Relationship, v.Side, strings.Join(names, ", "), v.Got)
}

func (v *Violation) Is(target error) bool { return target == ErrViolation }

// Constraint is the domain (Sources) and range (Targets) of a relationship variant.
type Constraint struct {
	Sources []model.EntityType `json:"sources"`
	Targets []model.EntityType `json:"targets"`
}

func (c Constraint) allowsSource(t model.EntityType) bool { return contains(c.Sources, t) }
func (c Constraint) allowsTarget(t model.EntityType) bool { return contains(c.Targets, t) }

func (c Constraint) clone() Constraint {
	return Constraint{
		Sources: append([]model.EntityType(nil), c.Sources...),
		Targets: append([]model.EntityType(nil), c.Targets...),
	}
}

// Registry is a read-only table of relationship constraints.
type Registry struct {
	constraints map[model.RelationshipType]Constraint
}

// New builds a registry from the given table. The table is copied.
func New(table map[model.RelationshipType]Constraint) *Registry {
	r := &Registry{constraints: make(map[model.RelationshipType]Constraint, len(table))}
	for rt, c := range table {
		r.constraints[rt] = c.clone()
	}
	return r
}

// Allowed returns the constraint declared for rt, if any.
func (r *Registry) Allowed(rt model.RelationshipType) (Constraint, bool) {
	c, ok := r.constraints[rt]
	if !ok {
		return Constraint{}, false
	}
	return c.clone(), true
}

// Validate checks src and tgt against the constraint for rt. Variants with
// no constraint always pass. The source side is checked first.
func (r *Registry) Validate(rt model.RelationshipType, src, tgt model.EntityType) error {
	c, ok := r.constraints[rt]
	if !ok {
		return nil
	}
	if !c.allowsSource(src) {
		return &Violation{Relationship: rt, Side: SideSource, Got: src, Allowed: c.clone().Sources}
	}
	if !c.allowsTarget(tgt) {
		return &Violation{Relationship: rt, Side: SideTarget, Got: tgt, Allowed: c.clone().Targets}
	}
	return nil
}

// Types returns the constrained relationship variants, sorted.
func (r *Registry) Types() []model.RelationshipType {
	out := make([]model.RelationshipType, 0, len(r.constraints))
	for rt := range r.constraints {
		out = append(out, rt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func contains(list []model.EntityType, t model.EntityType) bool {
	for _, item := range list {
		if item == t {
			return true
		}
	}
	return false
}
