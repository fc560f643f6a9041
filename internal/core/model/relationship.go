package model

import "time"

// Relationship is a typed, directed, weighted edge between two entities.
// Relationships are never mutated in place; updates remove and recreate.
type Relationship struct {
	ID         string           `json:"id" yaml:"id" msgpack:"id"`
	Type       RelationshipType `json:"relationship_type" yaml:"relationship_type" msgpack:"relationship_type"`
	SourceID   string           `json:"source_id" yaml:"source_id" msgpack:"source_id"`
	TargetID   string           `json:"target_id" yaml:"target_id" msgpack:"target_id"`
	Weight     float64          `json:"weight" yaml:"weight" msgpack:"weight"`
	Confidence float64          `json:"confidence" yaml:"confidence" msgpack:"confidence"`
	Properties Attributes       `json:"properties,omitempty" yaml:"properties,omitempty" msgpack:"properties,omitempty"`
	CreatedAt  time.Time        `json:"created_at" yaml:"created_at" msgpack:"created_at"`
}

// Clone returns a deep copy of r.
func (r Relationship) Clone() Relationship {
	cp := r
	cp.Properties = r.Properties.Clone()
	return cp
}

// Other returns the endpoint of r that is not id.
func (r Relationship) Other(id string) string {
	if r.SourceID == id {
		return r.TargetID
	}
	return r.SourceID
}
