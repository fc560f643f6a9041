package generate

import (
	"hash/fnv"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agenthands/orggraph/internal/core/model"
)

// Context carries the seeded random source and the entities produced so far
// in one generation run. It is single-goroutine state and is discarded once
// weaving completes.
type Context struct {
	Profile Profile

	rng    *rand.Rand
	ids    *rand.Rand
	asOf   time.Time
	title  cases.Caser
	byType map[model.EntityType][]model.Entity
	byID   map[string]model.EntityType
}

// NewContext seeds a context from p. The same profile always yields the
// same sequence of draws and ids.
func NewContext(p Profile) *Context {
	h := fnv.New64a()
	h.Write([]byte(p.fingerprint()))
	salt := h.Sum64()
	return &Context{
		Profile: p,
		rng:     rand.New(rand.NewPCG(p.Seed, salt)),
		ids:     rand.New(rand.NewPCG(p.Seed^0x9e3779b97f4a7c15, salt^0xda942042e4dd58b5)),
		asOf:    p.asOf(),
		title:   cases.Title(language.English, cases.NoLower),
		byType:  make(map[model.EntityType][]model.Entity),
		byID:    make(map[string]model.EntityType),
	}
}

// idReader adapts the id stream to io.Reader for uuid.NewRandomFromReader.
type idReader struct{ rng *rand.Rand }

func (r idReader) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := r.rng.Uint64()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}
	return len(p), nil
}

// NewID returns the next version-4 UUID of the id stream.
func (c *Context) NewID() string {
	return uuid.Must(uuid.NewRandomFromReader(idReader{c.ids})).String()
}

// AsOf is the reference instant of the run; every generated timestamp is
// derived from it.
func (c *Context) AsOf() time.Time { return c.asOf }

// Rand exposes the run's random source to weaving passes.
func (c *Context) Rand() *rand.Rand { return c.rng }

// Entities returns the entities of t in generation order. The slice is
// shared and must not be modified.
func (c *Context) Entities(t model.EntityType) []model.Entity { return c.byType[t] }

// Count returns how many entities of t were generated.
func (c *Context) Count(t model.EntityType) int { return len(c.byType[t]) }

// TypeOf returns the variant of a generated entity id.
func (c *Context) TypeOf(id string) (model.EntityType, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// Add records generated entities under their variants.
func (c *Context) Add(entities ...model.Entity) {
	for _, e := range entities {
		c.byType[e.Type] = append(c.byType[e.Type], e)
		c.byID[e.ID] = e.Type
	}
}

// NewEntity builds an entity stamped with a fresh id and the run's
// reference time.
func (c *Context) NewEntity(t model.EntityType, name, description string, tags []string, attrs model.Attributes) model.Entity {
	e := model.Entity{
		ID:          c.NewID(),
		Type:        t,
		Name:        name,
		Description: description,
		Tags:        tags,
		Attributes:  attrs,
		CreatedAt:   c.asOf,
		UpdatedAt:   c.asOf,
		Version:     1,
	}
	return e.Clone()
}

// Title title-cases s.
func (c *Context) Title(s string) string { return c.title.String(s) }

// IntN returns a draw in [0,n).
func (c *Context) IntN(n int) int { return c.rng.IntN(n) }

// Between returns a draw in [lo,hi].
func (c *Context) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + c.rng.IntN(hi-lo+1)
}

// Float returns a draw in [0,1).
func (c *Context) Float() float64 { return c.rng.Float64() }

// FloatBetween returns a draw in [lo,hi) rounded to two decimals.
func (c *Context) FloatBetween(lo, hi float64) float64 {
	return round2(lo + c.rng.Float64()*(hi-lo))
}

// Chance reports true with probability p.
func (c *Context) Chance(p float64) bool { return c.rng.Float64() < p }

// Choice returns a uniformly drawn element of items.
func (c *Context) Choice(items []string) string { return items[c.rng.IntN(len(items))] }

// Weighted returns an index drawn proportionally to weights. Non-positive
// totals fall back to a uniform draw.
func (c *Context) Weighted(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return c.rng.IntN(len(weights))
	}
	x := c.rng.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if x < w {
			return i
		}
		x -= w
	}
	return len(weights) - 1
}

// Pick returns a uniformly drawn entity of t; ok is false when none exist.
func (c *Context) Pick(t model.EntityType) (model.Entity, bool) {
	list := c.byType[t]
	if len(list) == 0 {
		return model.Entity{}, false
	}
	return list[c.rng.IntN(len(list))], true
}

// PickN returns up to k distinct entities of t in draw order.
func (c *Context) PickN(t model.EntityType, k int) []model.Entity {
	list := c.byType[t]
	idx := c.Sample(len(list), k)
	out := make([]model.Entity, len(idx))
	for i, j := range idx {
		out[i] = list[j]
	}
	return out
}

// Sample draws min(k,n) distinct indices from [0,n) without replacement.
func (c *Context) Sample(n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	if k*4 <= n {
		seen := make(map[int]bool, k)
		out := make([]int, 0, k)
		for len(out) < k {
			i := c.rng.IntN(n)
			if !seen[i] {
				seen[i] = true
				out = append(out, i)
			}
		}
		return out
	}
	perm := c.rng.Perm(n)
	return perm[:k]
}

// DaysBefore returns the reference date minus a draw of [lo,hi] days,
// formatted as an ISO date.
func (c *Context) DaysBefore(lo, hi int) string {
	return c.asOf.AddDate(0, 0, -c.Between(lo, hi)).Format(time.DateOnly)
}

// DaysAfter returns the reference date plus a draw of [lo,hi] days.
func (c *Context) DaysAfter(lo, hi int) string {
	return c.asOf.AddDate(0, 0, c.Between(lo, hi)).Format(time.DateOnly)
}

func round2(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}
