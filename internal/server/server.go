package server

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/agenthands/orggraph/internal/assistant"
	"github.com/agenthands/orggraph/internal/config"
	"github.com/agenthands/orggraph/internal/core"
	"github.com/agenthands/orggraph/internal/core/graph"
	"github.com/agenthands/orggraph/internal/core/ingest"
	"github.com/agenthands/orggraph/internal/driver"
	"github.com/agenthands/orggraph/internal/logger"
)

// Server serves one in-memory store. Handlers that mutate hold the write
// lock; everything else holds the read lock, so reads run concurrently and
// never overlap a mutation.
type Server struct {
	mu    sync.RWMutex
	store *graph.Store

	cfg       *config.Config
	engine    *core.Engine
	assistant *assistant.Assistant
	syncer    *driver.Syncer
	log       *logger.Logger
}

// Options wires optional collaborators. A nil Assistant or Syncer makes the
// matching routes answer 503.
type Options struct {
	Config    *config.Config
	Log       *logger.Logger
	Engine    *core.Engine
	Assistant *assistant.Assistant
	Syncer    *driver.Syncer
	Store     *graph.Store
}

func NewServer(opts Options) *Server {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	if opts.Engine == nil {
		opts.Engine = core.NewEngine(opts.Log)
	}
	if opts.Store == nil {
		opts.Store = graph.New(opts.Engine.Schema)
	}
	return &Server{
		store:     opts.Store,
		cfg:       opts.Config,
		engine:    opts.Engine,
		assistant: opts.Assistant,
		syncer:    opts.Syncer,
		log:       opts.Log,
	}
}

// Read runs fn under the read lock.
func (s *Server) Read(fn func(st *graph.Store)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.store)
}

func (s *Server) write(fn func(st *graph.Store)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.store)
}

// replace swaps in a new store.
func (s *Server) replace(st *graph.Store) {
	s.mu.Lock()
	s.store = st
	s.mu.Unlock()
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(otelgin.Middleware(s.cfg.Telemetry.ServiceName))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  s.cfg.Server.CORSOrigins,
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Disposition"},
	}))

	r.GET("/health", s.Health)
	r.GET("/schema", s.Schema)

	r.GET("/entities", s.ListEntities)
	r.POST("/entities", s.AddEntity)
	r.GET("/entities/:id", s.GetEntity)
	r.PATCH("/entities/:id", s.UpdateEntity)
	r.DELETE("/entities/:id", s.RemoveEntity)
	r.GET("/entities/:id/relationships", s.GetRelationships)
	r.GET("/entities/:id/neighbors", s.Neighbors)
	r.GET("/entities/:id/blast-radius", s.BlastRadius)

	r.POST("/relationships", s.AddRelationship)
	r.GET("/relationships/:id", s.GetRelationship)
	r.DELETE("/relationships/:id", s.RemoveRelationship)

	r.GET("/paths", s.ShortestPath)
	r.GET("/stats", s.Statistics)
	r.GET("/centrality/:measure", s.Centrality)
	r.POST("/subgraph", s.Subgraph)

	r.POST("/generate", s.Generate)
	r.POST("/import", s.Import)
	r.GET("/export", s.Export)
	r.GET("/quality", s.Quality)
	r.GET("/communities", s.Communities)
	r.POST("/assistant/ask", s.Ask)
	r.POST("/sync", s.Sync)

	return r
}

// statusFor maps the error taxonomy onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, graph.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, graph.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, graph.ErrSchemaViolation),
		errors.Is(err, graph.ErrInvalid),
		errors.Is(err, ingest.ErrValidation):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
