package weave

import (
	"context"
	"fmt"

	"github.com/agenthands/orggraph/internal/core/generate"
	"github.com/agenthands/orggraph/internal/core/graph"
	"github.com/agenthands/orggraph/internal/core/model"
)

// Pass is one step of relationship weaving.
type Pass struct {
	Name string
	run  func(w *Weaver) error
}

// Passes returns the weaving passes in their fixed order. The mirror pass is
// always last.
func Passes() []Pass {
	return []Pass{
		{"organization", (*Weaver).organization},
		{"management", (*Weaver).management},
		{"technology", (*Weaver).technology},
		{"data", (*Weaver).data},
		{"ownership", (*Weaver).ownership},
		{"governance", (*Weaver).governance},
		{"security", (*Weaver).security},
		{"supply", (*Weaver).supply},
		{"business", (*Weaver).business},
		{"mirror", (*Weaver).mirror},
	}
}

// Weaver emits relationships between the entities of one generation run.
// The entities must already be in the store. Every relationship goes through
// Store.AddRelationship, so a schema mismatch fails the pass that caused it.
type Weaver struct {
	gen   *generate.Context
	store *graph.Store

	created []model.Relationship
	counts  map[model.RelationshipType]int

	// organization state shared with later passes
	deptOf  map[string]int // person id -> index into departments
	members [][]string     // per department, person ids in assignment order
	siteOf  []int          // per department, index into sites (-1 when none)
	heads   []string       // department heads in department order
}

// New returns a weaver over the entities of c already loaded into s.
func New(c *generate.Context, s *graph.Store) *Weaver {
	return &Weaver{
		gen:    c,
		store:  s,
		counts: make(map[model.RelationshipType]int),
		deptOf: make(map[string]int),
	}
}

// Run executes p and returns how many relationships it emitted.
func (w *Weaver) Run(p Pass) (int, error) {
	before := len(w.created)
	if err := p.run(w); err != nil {
		return len(w.created) - before, fmt.Errorf("weave %s: %w", p.Name, err)
	}
	return len(w.created) - before, nil
}

// RunAll executes every pass in order, checking ctx between passes.
func (w *Weaver) RunAll(ctx context.Context) error {
	for _, p := range Passes() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := w.Run(p); err != nil {
			return err
		}
	}
	return nil
}

// Created returns the relationships emitted so far in emission order.
func (w *Weaver) Created() []model.Relationship { return w.created }

// Counts returns the number of emitted relationships per variant.
func (w *Weaver) Counts() map[model.RelationshipType]int {
	out := make(map[model.RelationshipType]int, len(w.counts))
	for k, v := range w.counts {
		out[k] = v
	}
	return out
}

func (w *Weaver) emit(rt model.RelationshipType, src, tgt string, weight, confidence float64, props model.Attributes) error {
	r := model.Relationship{
		ID:         w.gen.NewID(),
		Type:       rt,
		SourceID:   src,
		TargetID:   tgt,
		Weight:     weight,
		Confidence: confidence,
		Properties: props,
		CreatedAt:  w.gen.AsOf(),
	}
	if _, err := w.store.AddRelationship(r); err != nil {
		return fmt.Errorf("%s %s->%s: %w", rt, src, tgt, err)
	}
	w.created = append(w.created, r)
	w.counts[rt]++
	return nil
}

// derived emits a relationship read off a stored attribute.
func (w *Weaver) derived(rt model.RelationshipType, src, tgt string, props model.Attributes) error {
	return w.emit(rt, src, tgt, 1, 1, props)
}

// sampled emits a relationship drawn at random, with a drawn weight and a
// confidence in [0.6, 0.95].
func (w *Weaver) sampled(rt model.RelationshipType, src, tgt string, props model.Attributes) error {
	weight := w.gen.FloatBetween(0.3, 1)
	confidence := w.gen.FloatBetween(0.6, 0.95)
	return w.emit(rt, src, tgt, weight, confidence, props)
}

// weighted emits a sampled relationship with a fixed weight.
func (w *Weaver) weighted(rt model.RelationshipType, src, tgt string, weight float64, props model.Attributes) error {
	return w.emit(rt, src, tgt, weight, w.gen.FloatBetween(0.6, 0.95), props)
}

func (w *Weaver) entities(t model.EntityType) []model.Entity { return w.gen.Entities(t) }

// ref emits a derived relationship from src to the id stored under key,
// skipping it when the attribute is absent or names an entity of another
// variant.
func (w *Weaver) ref(rt model.RelationshipType, src model.Entity, key string, want model.EntityType) error {
	id := src.Attributes.Str(key)
	if id == "" {
		return nil
	}
	if t, ok := w.gen.TypeOf(id); !ok || t != want {
		return nil
	}
	return w.derived(rt, src.ID, id, nil)
}

// backRef is ref in the other direction: the entity named under key on
// tgt becomes the source.
func (w *Weaver) backRef(rt model.RelationshipType, tgt model.Entity, key string, want model.EntityType) error {
	id := tgt.Attributes.Str(key)
	if id == "" {
		return nil
	}
	if t, ok := w.gen.TypeOf(id); !ok || t != want {
		return nil
	}
	return w.derived(rt, id, tgt.ID, nil)
}

// pick draws between lo and hi distinct entities of t.
func (w *Weaver) pick(t model.EntityType, lo, hi int) []model.Entity {
	return w.gen.PickN(t, w.gen.Between(lo, hi))
}

// pickAcross draws up to k distinct entities from the concatenation of the
// listed variants.
func (w *Weaver) pickAcross(k int, types ...model.EntityType) []model.Entity {
	var pool []model.Entity
	for _, t := range types {
		pool = append(pool, w.entities(t)...)
	}
	idx := w.gen.Sample(len(pool), k)
	out := make([]model.Entity, len(idx))
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}

// groupBy indexes entities by the id stored under key, keeping input order
// within each group.
func groupBy(entities []model.Entity, key string) map[string][]model.Entity {
	out := make(map[string][]model.Entity)
	for _, e := range entities {
		if id := e.Attributes.Str(key); id != "" {
			out[id] = append(out[id], e)
		}
	}
	return out
}

func filter(entities []model.Entity, keep func(model.Entity) bool) []model.Entity {
	var out []model.Entity
	for _, e := range entities {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// each runs fn over es, stopping at the first error.
func each(es []model.Entity, fn func(e model.Entity) error) error {
	for _, e := range es {
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}
