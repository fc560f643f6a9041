package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/agenthands/orggraph/internal/core/generate"
	"github.com/agenthands/orggraph/internal/core/ingest"
	"github.com/agenthands/orggraph/internal/telemetry"
)

// DefaultPath is read when ORGGRAPH_CONFIG is unset.
const DefaultPath = "config/orggraph.toml"

type ServerConfig struct {
	Port        string   `toml:"port"`
	GinMode     string   `toml:"gin_mode"`
	CORSOrigins []string `toml:"cors_origins"`
	// MaxScale caps POST /generate.
	MaxScale int `toml:"max_scale"`
	// GenerateOnStart populates the store from [generation] at startup.
	GenerateOnStart bool `toml:"generate_on_start"`
}

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	EmbeddingModel string `toml:"embedding_model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	MaxTokens      int    `toml:"max_tokens"`
}

type MemgraphConfig struct {
	URI       string `toml:"uri"`
	User      string `toml:"user"`
	Password  string `toml:"password"`
	BatchSize int    `toml:"batch_size"`
}

type LogConfig struct {
	Mode string `toml:"mode"`
}

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Memgraph   MemgraphConfig   `toml:"memgraph"`
	LLM        LLMConfig        `toml:"llm"`
	Generation generate.Profile `toml:"generation"`
	Ingest     ingest.Policy    `toml:"ingest"`
	Log        LogConfig        `toml:"log"`
	Telemetry  telemetry.Config `toml:"telemetry"`
}

// Default returns a configuration that runs without any file or
// environment: local Memgraph, Ollama, a 500-person technology company.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			GinMode:         "release",
			CORSOrigins:     []string{"*"},
			MaxScale:        50000,
			GenerateOnStart: true,
		},
		Memgraph: MemgraphConfig{
			URI:       "bolt://localhost:7687",
			BatchSize: 500,
		},
		LLM: LLMConfig{
			Provider:  "ollama",
			Model:     "gpt-oss:latest",
			BaseURL:   "http://localhost:11434",
			MaxTokens: 1000,
		},
		Generation: generate.DefaultProfile(500, 42),
		Log:        LogConfig{Mode: "dev"},
		Telemetry:  telemetry.Config{Exporter: telemetry.ExporterNone, ServiceName: "orggraph"},
	}
}

// Load reads a TOML file over Default, so the file only needs the keys it
// changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	// a department_fractions table replaces the defaults instead of merging
	var probe struct {
		Generation struct {
			DepartmentFractions map[string]float64 `toml:"department_fractions"`
		} `toml:"generation"`
	}
	if err := toml.Unmarshal(data, &probe); err == nil && probe.Generation.DepartmentFractions != nil {
		cfg.Generation.DepartmentFractions = nil
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return cfg, nil
}

// FromEnvironment loads .env if present, then the file named by
// ORGGRAPH_CONFIG (DefaultPath when unset; a missing default file falls back
// to Default), then applies environment overrides.
func FromEnvironment() (*Config, error) {
	_ = godotenv.Load()

	path := os.Getenv("ORGGRAPH_CONFIG")
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg, err := Load(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = Default()
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Server.Port, "PORT")
	set(&c.Server.GinMode, "GIN_MODE")
	set(&c.Memgraph.URI, "MEMGRAPH_URI")
	set(&c.Memgraph.User, "MEMGRAPH_USER")
	set(&c.Memgraph.Password, "MEMGRAPH_PASSWORD")
	set(&c.LLM.Provider, "LLM_PROVIDER")
	set(&c.LLM.Model, "LLM_MODEL")
	set(&c.LLM.EmbeddingModel, "LLM_EMBEDDING_MODEL")
	set(&c.LLM.APIKey, "LLM_API_KEY")
	set(&c.LLM.BaseURL, "LLM_BASE_URL")
	set(&c.Log.Mode, "LOG_MODE")
	set(&c.Telemetry.Exporter, "ORGGRAPH_TRACE")
	set(&c.Generation.Industry, "ORGGRAPH_INDUSTRY")

	if v := getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.CORSOrigins = origins
	}
	if v := getenv("ORGGRAPH_SCALE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ORGGRAPH_SCALE: %w", err)
		}
		c.Generation.Scale = n
	}
	if v := getenv("ORGGRAPH_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("ORGGRAPH_SEED: %w", err)
		}
		c.Generation.Seed = n
	}
	if v := getenv("ORGGRAPH_AS_OF"); v != "" {
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return fmt.Errorf("ORGGRAPH_AS_OF: %w", err)
		}
		c.Generation.AsOf = t
	}
	return nil
}
