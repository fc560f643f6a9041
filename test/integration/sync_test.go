//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/orggraph/internal/assistant"
	"github.com/agenthands/orggraph/internal/config"
	"github.com/agenthands/orggraph/internal/core"
	"github.com/agenthands/orggraph/internal/core/generate"
	"github.com/agenthands/orggraph/internal/core/graph"
	"github.com/agenthands/orggraph/internal/driver"
	"github.com/agenthands/orggraph/internal/llm"
	"github.com/agenthands/orggraph/internal/logger"
)

func environment(t *testing.T) *config.Config {
	t.Helper()
	_ = godotenv.Load("../../.env")
	cfg := config.Default()
	require.NoError(t, cfg.ApplyEnv(os.Getenv))
	return cfg
}

func count(t *testing.T, d driver.GraphDriver, query string) int64 {
	t.Helper()
	res, err := d.ExecuteQuery(context.Background(), query, nil)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	n, ok := res.Records[0].Get("n")
	require.True(t, ok)
	return n.(int64)
}

func TestMemgraphSync(t *testing.T) {
	if os.Getenv("MEMGRAPH_URI") == "" {
		t.Skip("Skipping integration test: MEMGRAPH_URI not set")
	}
	cfg := environment(t)
	ctx := context.Background()

	d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, logger.Nop())
	require.NoError(t, err)
	defer d.Close(ctx)

	res, err := core.NewEngine(nil).Generate(ctx, generate.DefaultProfile(200, 42))
	require.NoError(t, err)

	sy := driver.NewSyncer(d, nil)
	sy.Purge = true
	rep, err := sy.Sync(ctx, res.Store)
	require.NoError(t, err)
	assert.Equal(t, res.Store.EntityCount(), rep.Entities)

	entities := "MATCH (n:" + driver.EntityLabel + ") RETURN count(n) AS n"
	edges := "MATCH ()-[r:" + driver.RelationshipLabel + "]->() RETURN count(r) AS n"
	assert.EqualValues(t, res.Store.EntityCount(), count(t, d, entities))
	assert.EqualValues(t, res.Store.RelationshipCount(), count(t, d, edges))

	// MERGE on id makes a second sync a no-op.
	sy.Purge = false
	_, err = sy.Sync(ctx, res.Store)
	require.NoError(t, err)
	assert.EqualValues(t, res.Store.EntityCount(), count(t, d, entities))
	assert.EqualValues(t, res.Store.RelationshipCount(), count(t, d, edges))
}

type storeView struct{ s *graph.Store }

func (v storeView) Read(fn func(*graph.Store)) { fn(v.s) }

func TestAssistantLive(t *testing.T) {
	if os.Getenv("LLM_PROVIDER") == "" {
		t.Skip("Skipping integration test: LLM_PROVIDER not set")
	}
	cfg := environment(t)
	ctx := context.Background()

	client, embedder, err := llm.NewClient(ctx, cfg.LLM)
	require.NoError(t, err)

	res, err := core.NewEngine(nil).Generate(ctx, generate.DefaultProfile(100, 42))
	require.NoError(t, err)

	a := assistant.New(client, nil)
	a.Embedder = embedder
	ans, err := a.Ask(ctx, storeView{res.Store}, "Which systems are the most critical to the organization?")
	require.NoError(t, err)
	assert.NotEmpty(t, ans.Answer)
	assert.NotEmpty(t, ans.Facts)
}
