package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/agenthands/orggraph/internal/core/generate"
	"github.com/agenthands/orggraph/internal/core/model"
	"github.com/agenthands/orggraph/internal/core/weave"
	"github.com/agenthands/orggraph/internal/logger"
)

func TestEngine_Generate(t *testing.T) {
	res, err := NewEngine(nil).Generate(context.Background(), generate.DefaultProfile(60, 7))
	require.NoError(t, err)

	total := 0
	for _, n := range res.Entities {
		total += n
	}
	assert.Equal(t, res.Store.EntityCount(), total)
	assert.Equal(t, 60, res.Entities[model.EntityPerson])

	rels := 0
	for _, n := range res.Relationships {
		rels += n
	}
	assert.Equal(t, res.Store.RelationshipCount(), rels)
	assert.Positive(t, rels)

	assert.Equal(t, 1.0, res.Quality.Overall)
	assert.Empty(t, res.Quality.Warnings)
}

func TestEngine_Deterministic(t *testing.T) {
	p := generate.DefaultProfile(100, 42)
	a, err := NewEngine(nil).Generate(context.Background(), p)
	require.NoError(t, err)
	b, err := NewEngine(nil).Generate(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, a.Store.Export(), b.Store.Export())
	assert.Equal(t, a.Quality, b.Quality)
}

func TestEngine_InvalidProfile(t *testing.T) {
	_, err := NewEngine(nil).Generate(context.Background(), generate.DefaultProfile(0, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid profile")
}

func TestEngine_CancelsAtStepBoundary(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var steps []Step
	e := NewEngine(nil)
	e.OnStep = func(s Step) {
		steps = append(steps, s)
		if s.Stage == StageWeave && s.Name == "management" {
			cancel()
		}
	}

	res, err := e.Generate(ctx, generate.DefaultProfile(30, 3))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "weave technology")

	last := steps[len(steps)-1]
	assert.Equal(t, "management", last.Name)
	assert.Len(t, steps, len(generate.DefaultRegistry().Generators())+2)
}

func TestEngine_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewEngine(nil).Generate(ctx, generate.DefaultProfile(10, 1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_Traced(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))

	e := NewEngine(nil)
	e.Tracer = tp.Tracer(TracerName)
	_, err := e.Generate(context.Background(), generate.DefaultProfile(20, 5))
	require.NoError(t, err)

	spans := rec.Ended()
	gens := len(generate.DefaultRegistry().Generators())
	require.Len(t, spans, 1+gens+len(weave.Passes())+1)

	root := spans[len(spans)-1]
	assert.Equal(t, "generate", root.Name())
	names := make(map[string]bool)
	for _, s := range spans[:len(spans)-1] {
		names[s.Name()] = true
		assert.Equal(t, root.SpanContext().SpanID(), s.Parent().SpanID(), s.Name())
	}
	assert.True(t, names["generate Person"])
	assert.True(t, names["weave mirror"])
	assert.True(t, names["score quality"])
}

func TestEngine_Logs(t *testing.T) {
	zc, logs := observer.New(zap.DebugLevel)
	e := NewEngine(&logger.Logger{SugaredLogger: zap.New(zc).Sugar()})

	_, err := e.Generate(context.Background(), generate.DefaultProfile(10, 9))
	require.NoError(t, err)

	assert.Equal(t, len(generate.DefaultRegistry().Generators())+len(weave.Passes())+1,
		logs.FilterMessage("step done").Len())
	done := logs.FilterMessage("generation finished").All()
	require.Len(t, done, 1)
	assert.EqualValues(t, 10, done[0].ContextMap()["scale"])
}
