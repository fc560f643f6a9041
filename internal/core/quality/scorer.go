// Package quality scores a generated graph against the business rules a
// coherent organization must satisfy. It only reads the store.
package quality

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/agenthands/orggraph/internal/core/graph"
	"github.com/agenthands/orggraph/internal/core/model"
)

// DefaultMaxWarnings bounds Report.Warnings.
const DefaultMaxWarnings = 100

// Check names, in report order.
const (
	CheckRiskMath     = "risk_math"
	CheckDescriptions = "descriptions"
	CheckCoherence    = "attribute_coherence"
	CheckCrossField   = "cross_field"
	CheckEncryption   = "encryption"
)

// CheckResult is the outcome of one check. Score is Passed/Total, or 1 when
// nothing was applicable.
type CheckResult struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Passed int     `json:"passed"`
	Total  int     `json:"total"`
}

// Report is the scorer's output. Overall is the unweighted mean of the check
// scores. Warnings lists violations check by check, each check in store
// insertion order, truncated to the scorer's limit; Violations counts all of
// them.
type Report struct {
	Overall    float64       `json:"overall"`
	Checks     []CheckResult `json:"checks"`
	Warnings   []string      `json:"warnings"`
	Violations int           `json:"violations"`
}

// Check returns the result of the named check.
func (r Report) Check(name string) (CheckResult, bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return CheckResult{}, false
}

// tally accumulates one check's verdicts.
type tally struct {
	limit    int
	passed   int
	total    int
	failed   int
	warnings []string
}

func (t *tally) pass() { t.passed++; t.total++ }

func (t *tally) fail(e model.Entity, format string, args ...any) {
	t.total++
	t.failed++
	if len(t.warnings) < t.limit {
		t.warnings = append(t.warnings, fmt.Sprintf("%s %q (%s): %s", e.Type, e.Name, e.ID, fmt.Sprintf(format, args...)))
	}
}

// expect records a pass when ok holds and a warning otherwise.
func (t *tally) expect(ok bool, e model.Entity, format string, args ...any) {
	if ok {
		t.pass()
		return
	}
	t.fail(e, format, args...)
}

func (t *tally) score() float64 {
	if t.total == 0 {
		return 1
	}
	return float64(t.passed) / float64(t.total)
}

type check struct {
	name  string
	visit func(t *tally, e model.Entity)
}

// Scorer runs the checks over a store.
type Scorer struct {
	MaxWarnings int
	checks      []check
}

// NewScorer returns a scorer with the five built-in checks.
func NewScorer() *Scorer {
	return &Scorer{
		MaxWarnings: DefaultMaxWarnings,
		checks: []check{
			{CheckRiskMath, riskMath},
			{CheckDescriptions, descriptions},
			{CheckCoherence, coherence},
			{CheckCrossField, crossField},
			{CheckEncryption, encryption},
		},
	}
}

// Score evaluates s. The checks run concurrently over the read-only store;
// the report is assembled in fixed check order, so the same graph always
// yields the same report. s must not be mutated while Score runs.
func (sc *Scorer) Score(s *graph.Store) Report {
	limit := sc.MaxWarnings
	if limit <= 0 {
		limit = DefaultMaxWarnings
	}
	tallies := make([]*tally, len(sc.checks))

	var g errgroup.Group
	for i, c := range sc.checks {
		tallies[i] = &tally{limit: limit}
		g.Go(func() error {
			s.EachEntity(func(e model.Entity) bool {
				c.visit(tallies[i], e)
				return true
			})
			return nil
		})
	}
	_ = g.Wait()

	rep := Report{Checks: make([]CheckResult, len(sc.checks)), Warnings: []string{}}
	sum := 0.0
	for i, c := range sc.checks {
		t := tallies[i]
		rep.Checks[i] = CheckResult{Name: c.name, Score: t.score(), Passed: t.passed, Total: t.total}
		sum += t.score()
		rep.Violations += t.failed
		for _, w := range t.warnings {
			if len(rep.Warnings) < limit {
				rep.Warnings = append(rep.Warnings, w)
			}
		}
	}
	if len(sc.checks) > 0 {
		rep.Overall = sum / float64(len(sc.checks))
	}
	return rep
}
