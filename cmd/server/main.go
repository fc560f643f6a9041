package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/orggraph/internal/assistant"
	"github.com/agenthands/orggraph/internal/config"
	"github.com/agenthands/orggraph/internal/core"
	"github.com/agenthands/orggraph/internal/driver"
	"github.com/agenthands/orggraph/internal/llm"
	"github.com/agenthands/orggraph/internal/logger"
	"github.com/agenthands/orggraph/internal/server"
	"github.com/agenthands/orggraph/internal/telemetry"
)

func main() {
	cfg, err := config.FromEnvironment()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	lg, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, nil)
	if err != nil {
		lg.Fatal("telemetry setup failed", "error", err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	opts := server.Options{Config: cfg, Log: lg, Engine: core.NewEngine(lg)}

	if client, embedder, err := llm.NewClient(ctx, cfg.LLM); err != nil {
		lg.Warn("assistant disabled", "provider", cfg.LLM.Provider, "error", err)
	} else {
		a := assistant.New(client, lg)
		a.Embedder = embedder
		opts.Assistant = a
	}

	if d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, lg); err != nil {
		lg.Warn("graph database sync disabled", "uri", cfg.Memgraph.URI, "error", err)
	} else {
		defer d.Close(context.Background())
		sy := driver.NewSyncer(d, lg)
		sy.BatchSize = cfg.Memgraph.BatchSize
		opts.Syncer = sy
	}

	if cfg.Server.GenerateOnStart {
		res, err := opts.Engine.Generate(ctx, cfg.Generation)
		if err != nil {
			lg.Fatal("initial generation failed", "error", err)
		}
		opts.Store = res.Store
	}

	gin.SetMode(cfg.Server.GinMode)
	srv := server.NewServer(opts)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("starting server", "port", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server stopped", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		lg.Error("shutdown failed", "error", err)
	}
	lg.Info("server stopped")
}
