// Package core drives a full generation run: entity generators in dependency
// order, the relationship weaver, then the quality scorer.
package core

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agenthands/orggraph/internal/core/generate"
	"github.com/agenthands/orggraph/internal/core/graph"
	"github.com/agenthands/orggraph/internal/core/model"
	"github.com/agenthands/orggraph/internal/core/quality"
	"github.com/agenthands/orggraph/internal/core/schema"
	"github.com/agenthands/orggraph/internal/core/weave"
	"github.com/agenthands/orggraph/internal/logger"
)

// TracerName names the tracer generation spans are recorded under.
const TracerName = "orggraph/generate"

// Stages of a run, as reported to Step callbacks.
const (
	StageGenerate = "generate"
	StageWeave    = "weave"
	StageScore    = "score"
)

// Step is reported after each generator, weaving pass and the scoring.
type Step struct {
	Stage   string
	Name    string
	Count   int
	Elapsed time.Duration
}

// Result is a finished run.
type Result struct {
	Profile       generate.Profile               `json:"profile"`
	Store         *graph.Store                   `json:"-"`
	Entities      map[model.EntityType]int       `json:"entities"`
	Relationships map[model.RelationshipType]int `json:"relationships"`
	Quality       quality.Report                 `json:"quality"`
	Elapsed       time.Duration                  `json:"elapsed"`
}

type Engine struct {
	Schema     *schema.Registry
	Generators *generate.Registry
	Scorer     *quality.Scorer
	Log        *logger.Logger
	Tracer     trace.Tracer
	// OnStep, when set, is called synchronously after every step.
	OnStep func(Step)
}

// NewEngine returns an engine with the built-in schema, generators and
// checks, tracing through the global tracer provider.
func NewEngine(log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{
		Schema:     schema.Default(),
		Generators: generate.DefaultRegistry(),
		Scorer:     quality.NewScorer(),
		Log:        log,
		Tracer:     otel.Tracer(TracerName),
	}
}

// Generate runs the pipeline for p into a fresh store. Cancellation is
// honoured between steps only, so a returned store never holds a partially
// applied pass; on cancellation no store is returned at all.
func (e *Engine) Generate(ctx context.Context, p generate.Profile) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("generate: invalid profile: %w", err)
	}
	start := time.Now()
	ctx, span := e.Tracer.Start(ctx, "generate", trace.WithAttributes(
		attribute.Int("orggraph.scale", p.Scale),
		attribute.Int64("orggraph.seed", int64(p.Seed)),
		attribute.String("orggraph.industry", p.Industry),
	))
	defer span.End()

	res, err := e.run(ctx, p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	res.Elapsed = time.Since(start)
	e.Log.Info("generation finished",
		"scale", p.Scale,
		"seed", p.Seed,
		"entities", res.Store.EntityCount(),
		"relationships", res.Store.RelationshipCount(),
		"quality", res.Quality.Overall,
		"violations", res.Quality.Violations,
		"elapsed", res.Elapsed,
	)
	return res, nil
}

func (e *Engine) run(ctx context.Context, p generate.Profile) (*Result, error) {
	gen := generate.NewContext(p)
	asOf := gen.AsOf()
	store := graph.New(e.Schema, graph.WithClock(func() time.Time { return asOf }))
	res := &Result{
		Profile:       p,
		Store:         store,
		Entities:      make(map[model.EntityType]int),
		Relationships: make(map[model.RelationshipType]int),
	}

	for _, g := range e.Generators.Generators() {
		err := e.step(ctx, StageGenerate, string(g.Type), func() (int, error) {
			bulk := store.BulkAddEntities(g.Run(gen))
			if err := bulk.Err(); err != nil {
				return bulk.Inserted(), fmt.Errorf("generate %s: %w", g.Type, err)
			}
			return bulk.Inserted(), nil
		})
		if err != nil {
			return nil, err
		}
		res.Entities[g.Type] = gen.Count(g.Type)
	}

	w := weave.New(gen, store)
	for _, pass := range weave.Passes() {
		if err := e.step(ctx, StageWeave, pass.Name, func() (int, error) { return w.Run(pass) }); err != nil {
			return nil, err
		}
	}
	res.Relationships = w.Counts()

	err := e.step(ctx, StageScore, "quality", func() (int, error) {
		res.Quality = e.Scorer.Score(store)
		return res.Quality.Violations, nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// step runs fn inside its own span once ctx is confirmed live.
func (e *Engine) step(ctx context.Context, stage, name string, fn func() (int, error)) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s %s: %w", stage, name, err)
	}
	_, span := e.Tracer.Start(ctx, stage+" "+name, trace.WithAttributes(
		attribute.String("orggraph.stage", stage),
		attribute.String("orggraph.step", name),
	))
	defer span.End()

	start := time.Now()
	n, err := fn()
	span.SetAttributes(attribute.Int("orggraph.count", n))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	elapsed := time.Since(start)
	e.Log.Debug("step done", "stage", stage, "step", name, "count", n, "elapsed", elapsed)
	if e.OnStep != nil {
		e.OnStep(Step{Stage: stage, Name: name, Count: n, Elapsed: elapsed})
	}
	return nil
}
