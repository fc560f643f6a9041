package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/orggraph/internal/core/generate"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orggraph.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault_IsUsable(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Generation.Validate())
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 500, cfg.Memgraph.BatchSize)
	assert.Equal(t, generate.DefaultAsOf, cfg.Generation.AsOf)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
[llm]
provider = "openai"
model = "gpt-4o-mini"

[generation]
scale = 2000
seed = 7
industry = "healthcare"
as_of = 2024-06-30T00:00:00Z

[generation.department_fractions]
Engineering = 0.5

[ingest]
strict_keys = true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "http://localhost:11434", cfg.LLM.BaseURL, "untouched keys keep their defaults")
	assert.Equal(t, 2000, cfg.Generation.Scale)
	assert.Equal(t, uint64(7), cfg.Generation.Seed)
	assert.Equal(t, generate.IndustryHealthcare, cfg.Generation.Industry)
	assert.True(t, cfg.Generation.AsOf.Equal(time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, map[string]float64{"Engineering": 0.5}, cfg.Generation.DepartmentFractions)
	assert.True(t, cfg.Ingest.StrictKeys)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoad_ShippedFile(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", DefaultPath))
	require.NoError(t, err)
	assert.Equal(t, Default().Generation.DepartmentFractions, cfg.Generation.DepartmentFractions)
	require.NoError(t, cfg.Generation.Validate())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = Load(writeFile(t, "[server\nport = 1"))
	assert.ErrorContains(t, err, "failed to parse TOML")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PORT":           "9090",
		"MEMGRAPH_URI":   "bolt://graph:7687",
		"LLM_PROVIDER":   "claude",
		"LLM_API_KEY":    "secret",
		"LOG_MODE":       "prod",
		"ORGGRAPH_TRACE": "stdout",
		"ORGGRAPH_SCALE": "120",
		"ORGGRAPH_SEED":  "99",
		"ORGGRAPH_AS_OF": "2023-03-01",
		"CORS_ORIGINS":   "https://a.example, https://b.example,",
	}
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "bolt://graph:7687", cfg.Memgraph.URI)
	assert.Equal(t, "claude", cfg.LLM.Provider)
	assert.Equal(t, "secret", cfg.LLM.APIKey)
	assert.Equal(t, "prod", cfg.Log.Mode)
	assert.Equal(t, "stdout", cfg.Telemetry.Exporter)
	assert.Equal(t, 120, cfg.Generation.Scale)
	assert.Equal(t, uint64(99), cfg.Generation.Seed)
	assert.Equal(t, 2023, cfg.Generation.AsOf.Year())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestApplyEnv_BadNumbers(t *testing.T) {
	err := Default().ApplyEnv(func(k string) string {
		if k == "ORGGRAPH_SCALE" {
			return "lots"
		}
		return ""
	})
	assert.ErrorContains(t, err, "ORGGRAPH_SCALE")
}

func TestFromEnvironment_ExplicitPath(t *testing.T) {
	t.Setenv("ORGGRAPH_CONFIG", writeFile(t, "[server]\nport = \"7000\"\n"))
	t.Setenv("PORT", "")
	cfg, err := FromEnvironment()
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Server.Port)

	t.Setenv("ORGGRAPH_CONFIG", filepath.Join(t.TempDir(), "nope.toml"))
	_, err = FromEnvironment()
	assert.Error(t, err)
}
