package model

import "time"

// Attributes is the open, variant-specific attribute bag of an entity or the
// property bag of a relationship.
type Attributes map[string]Value

// Get returns the value stored under key, or null.
func (a Attributes) Get(key string) Value {
	if a == nil {
		return Null()
	}
	return a[key]
}

// Has reports whether key is set to a non-null value.
func (a Attributes) Has(key string) bool {
	v, ok := a[key]
	return ok && !v.IsNull()
}

// Str returns the string under key, or "" when absent or not a string.
func (a Attributes) Str(key string) string {
	s, _ := a.Get(key).AsString()
	return s
}

// Num returns the number under key and whether it was present.
func (a Attributes) Num(key string) (float64, bool) {
	return a.Get(key).AsNumber()
}

// Flag returns the bool under key and whether it was present.
func (a Attributes) Flag(key string) (bool, bool) {
	return a.Get(key).AsBool()
}

// Clone returns a shallow copy; Values are immutable so sharing them is safe.
func (a Attributes) Clone() Attributes {
	if len(a) == 0 {
		return nil
	}
	cp := make(Attributes, len(a))
	for k, v := range a {
		cp[k] = v
	}
	return cp
}

// Entity is a typed node of the organization graph.
type Entity struct {
	ID          string     `json:"id" yaml:"id" msgpack:"id"`
	Type        EntityType `json:"entity_type" yaml:"entity_type" msgpack:"entity_type"`
	Name        string     `json:"name" yaml:"name" msgpack:"name"`
	Description string     `json:"description" yaml:"description" msgpack:"description"`
	Tags        []string   `json:"tags,omitempty" yaml:"tags,omitempty" msgpack:"tags,omitempty"`
	Attributes  Attributes `json:"attributes,omitempty" yaml:"attributes,omitempty" msgpack:"attributes,omitempty"`
	CreatedAt   time.Time  `json:"created_at" yaml:"created_at" msgpack:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" yaml:"updated_at" msgpack:"updated_at"`
	Version     int64      `json:"version" yaml:"version" msgpack:"version"`
}

// Clone returns a deep copy of e.
func (e Entity) Clone() Entity {
	cp := e
	if len(e.Tags) > 0 {
		cp.Tags = append([]string(nil), e.Tags...)
	} else {
		cp.Tags = nil
	}
	cp.Attributes = e.Attributes.Clone()
	return cp
}

// EntityPatch describes a partial update. Nil fields are left untouched.
// Attribute entries are merged key by key; a null Value deletes the key.
type EntityPatch struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	ReplaceTags bool       `json:"replace_tags,omitempty"`
	Attributes  Attributes `json:"attributes,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p EntityPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && !p.ReplaceTags && len(p.Tags) == 0 && len(p.Attributes) == 0
}

// Apply merges p into e. Tags are appended (skipping duplicates) unless
// ReplaceTags is set.
func (p EntityPatch) Apply(e *Entity) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.ReplaceTags {
		e.Tags = append([]string(nil), p.Tags...)
	} else {
		for _, t := range p.Tags {
			if !containsString(e.Tags, t) {
				e.Tags = append(e.Tags, t)
			}
		}
	}
	if len(e.Tags) == 0 {
		e.Tags = nil
	}
	if len(p.Attributes) > 0 {
		if e.Attributes == nil {
			e.Attributes = make(Attributes, len(p.Attributes))
		}
		for _, k := range sortedKeys(p.Attributes) {
			v := p.Attributes[k]
			if v.IsNull() {
				delete(e.Attributes, k)
				continue
			}
			e.Attributes[k] = v
		}
		if len(e.Attributes) == 0 {
			e.Attributes = nil
		}
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
