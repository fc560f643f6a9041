package server

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/orggraph/internal/assistant"
	"github.com/agenthands/orggraph/internal/codec"
	"github.com/agenthands/orggraph/internal/core/community"
	"github.com/agenthands/orggraph/internal/core/graph"
	"github.com/agenthands/orggraph/internal/core/ingest"
	"github.com/agenthands/orggraph/internal/core/model"
	"github.com/agenthands/orggraph/internal/core/quality"
	"github.com/agenthands/orggraph/internal/driver"
)

// Generate replaces the served store with a freshly generated one. The body
// overrides fields of the configured generation profile; an empty body
// generates with the configuration as is.
func (s *Server) Generate(c *gin.Context) {
	p := s.cfg.Generation
	p.DepartmentFractions = maps.Clone(p.DepartmentFractions)
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&p); err != nil {
			badRequest(c, "invalid profile: "+err.Error())
			return
		}
	}
	if limit := s.cfg.Server.MaxScale; limit > 0 && p.Scale > limit {
		badRequest(c, fmt.Sprintf("scale %d exceeds the limit of %d", p.Scale, limit))
		return
	}

	res, err := s.engine.Generate(c.Request.Context(), p)
	if err != nil {
		if c.Request.Context().Err() != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		badRequest(c, err.Error())
		return
	}
	s.replace(res.Store)
	c.JSON(http.StatusOK, res)
}

func requestFormat(c *gin.Context) (codec.Format, error) {
	if f := c.Query("format"); f != "" {
		return codec.ParseFormat(f)
	}
	ct := c.ContentType()
	switch {
	case strings.Contains(ct, "yaml"):
		return codec.YAML, nil
	case strings.Contains(ct, "msgpack"):
		return codec.MsgPack, nil
	}
	return codec.JSON, nil
}

// Import validates a document and commits it in full, or not at all. With
// ?replace=true the document becomes the whole graph.
func (s *Server) Import(c *gin.Context) {
	f, err := requestFormat(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	doc, err := codec.Decode(c.Request.Body, f)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	replace := c.Query("replace") == "true"
	var rep ingest.Report
	if replace {
		fresh := graph.New(s.engine.Schema)
		rep, err = ingest.Commit(doc, fresh, s.cfg.Ingest)
		if err == nil {
			s.replace(fresh)
		}
	} else {
		s.write(func(st *graph.Store) { rep, err = ingest.Commit(doc, st, s.cfg.Ingest) })
	}
	if err != nil {
		status := statusFor(err)
		if !rep.OK() {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": "import rejected", "report": rep})
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (s *Server) Export(c *gin.Context) {
	f := codec.JSON
	if v := c.Query("format"); v != "" {
		var err error
		if f, err = codec.ParseFormat(v); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	var doc model.Document
	s.Read(func(st *graph.Store) { doc = st.Export() })

	var buf bytes.Buffer
	if err := codec.Encode(&buf, f, doc); err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="orggraph.%s"`, f))
	c.Data(http.StatusOK, f.ContentType(), buf.Bytes())
}

func (s *Server) Quality(c *gin.Context) {
	var rep quality.Report
	s.Read(func(st *graph.Store) { rep = s.engine.Scorer.Score(st) })
	c.JSON(http.StatusOK, rep)
}

func (s *Server) Communities(c *gin.Context) {
	minSize, err := intQuery(c, "min_size", 2)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	var d community.CommunityDetector
	switch c.DefaultQuery("algorithm", "lpa") {
	case "lpa":
		lpa := community.NewLabelPropagationDetector()
		lpa.MinSize = minSize
		d = lpa
	case "components":
		cc := community.NewSimpleDetector()
		cc.MinSize = minSize
		d = cc
	default:
		badRequest(c, "algorithm must be lpa or components")
		return
	}

	describe, err := intQuery(c, "describe", 0)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if describe > 0 && s.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant is not configured"})
		return
	}

	var found []community.Summary
	s.Read(func(st *graph.Store) { found, err = community.DetectStore(d, st) })
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]describedCommunity, len(found))
	for i, cs := range found {
		out[i].Summary = cs
		if i >= describe {
			continue
		}
		label, err := s.assistant.DescribeCommunity(c.Request.Context(), s, cs)
		if err != nil {
			s.log.Warn("community description failed", "size", cs.Size, "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		out[i].Label = &label
	}
	c.JSON(http.StatusOK, gin.H{"communities": out, "count": len(out)})
}

// describedCommunity carries a model-written label for the first
// ?describe= communities.
type describedCommunity struct {
	community.Summary
	Label *assistant.CommunityLabel `json:"label,omitempty"`
}

type askRequest struct {
	Question string `json:"question" binding:"required"`
}

func (s *Server) Ask(c *gin.Context) {
	if s.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant is not configured"})
		return
	}
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}
	ans, err := s.assistant.Ask(c.Request.Context(), s, req.Question)
	if err != nil {
		if errors.Is(err, assistant.ErrEmptyQuestion) {
			badRequest(c, err.Error())
			return
		}
		s.log.Error("assistant failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ans)
}

// Sync mirrors the store into the configured graph database. Writers wait
// until the sync finishes.
func (s *Server) Sync(c *gin.Context) {
	if s.syncer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "graph database sync is not configured"})
		return
	}
	var (
		rep driver.SyncReport
		err error
	)
	s.Read(func(st *graph.Store) { rep, err = s.syncer.Sync(c.Request.Context(), st) })
	if err != nil {
		s.log.Error("sync failed", "error", err, "entities", rep.Entities, "relationships", rep.Relationships)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "report": rep})
		return
	}
	c.JSON(http.StatusOK, rep)
}
