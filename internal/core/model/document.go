package model

// Document is the exchanged graph representation: entities followed by the
// relationships between them, both in store insertion order. Loading a
// document means bulk-adding the entities, then the relationships.
type Document struct {
	Entities      []Entity       `json:"entities" yaml:"entities" msgpack:"entities"`
	Relationships []Relationship `json:"relationships" yaml:"relationships" msgpack:"relationships"`
}

// Ranked is one entry of a centrality ranking.
type Ranked struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}
