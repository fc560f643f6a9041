package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/orggraph/internal/core/graph"
	"github.com/agenthands/orggraph/internal/core/model"
)

const (
	defaultListLimit  = 100
	defaultTopN       = 10
	defaultBlastDepth = 2
	maxBlastDepth     = 6
)

func intQuery(c *gin.Context, key string, def int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return n, nil
}

func (s *Server) Health(c *gin.Context) {
	var entities, relationships int
	s.Read(func(st *graph.Store) {
		entities, relationships = st.EntityCount(), st.RelationshipCount()
	})
	c.JSON(http.StatusOK, gin.H{"status": "ok", "entities": entities, "relationships": relationships})
}

func (s *Server) Schema(c *gin.Context) {
	reg := s.engine.Schema
	out := make(map[model.RelationshipType]any, len(reg.Types()))
	for _, rt := range reg.Types() {
		con, _ := reg.Allowed(rt)
		out[rt] = con
	}
	c.JSON(http.StatusOK, gin.H{
		"entity_types":       model.EntityTypes,
		"relationship_types": model.RelationshipTypes,
		"constraints":        out,
	})
}

// ListEntities filters by ?type=, exact attribute matches given as
// ?attr.<key>=<value> (string comparison), ?limit= and ?offset=.
func (s *Server) ListEntities(c *gin.Context) {
	var f graph.ListFilter
	if t := c.Query("type"); t != "" {
		et, err := model.ParseEntityType(t)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		f.Type = et
	}
	var err error
	if f.Limit, err = intQuery(c, "limit", defaultListLimit); err != nil {
		badRequest(c, err.Error())
		return
	}
	if f.Offset, err = intQuery(c, "offset", 0); err != nil {
		badRequest(c, err.Error())
		return
	}
	for key, vals := range c.Request.URL.Query() {
		if attr, ok := strings.CutPrefix(key, "attr."); ok && len(vals) > 0 {
			if f.Match == nil {
				f.Match = make(model.Attributes)
			}
			f.Match[attr] = model.String(vals[0])
		}
	}

	var out []model.Entity
	s.Read(func(st *graph.Store) { out = st.ListEntities(f) })
	if out == nil {
		out = []model.Entity{}
	}
	c.JSON(http.StatusOK, gin.H{"entities": out, "count": len(out)})
}

func (s *Server) AddEntity(c *gin.Context) {
	var e model.Entity
	if err := c.ShouldBindJSON(&e); err != nil {
		badRequest(c, "invalid entity: "+err.Error())
		return
	}
	var (
		id  string
		err error
	)
	s.write(func(st *graph.Store) { id, err = st.AddEntity(e) })
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) GetEntity(c *gin.Context) {
	var (
		e   model.Entity
		err error
	)
	s.Read(func(st *graph.Store) { e, err = st.GetEntity(c.Param("id")) })
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (s *Server) UpdateEntity(c *gin.Context) {
	var patch model.EntityPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "invalid patch: "+err.Error())
		return
	}
	var (
		e   model.Entity
		err error
	)
	s.write(func(st *graph.Store) { e, err = st.UpdateEntity(c.Param("id"), patch) })
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (s *Server) RemoveEntity(c *gin.Context) {
	var removed bool
	s.write(func(st *graph.Store) { removed = st.RemoveEntity(c.Param("id")) })
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "entity " + c.Param("id") + " not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) AddRelationship(c *gin.Context) {
	var r model.Relationship
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, "invalid relationship: "+err.Error())
		return
	}
	var (
		id  string
		err error
	)
	s.write(func(st *graph.Store) { id, err = st.AddRelationship(r) })
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) GetRelationship(c *gin.Context) {
	var (
		r   model.Relationship
		err error
	)
	s.Read(func(st *graph.Store) { r, err = st.GetRelationship(c.Param("id")) })
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) RemoveRelationship(c *gin.Context) {
	var removed bool
	s.write(func(st *graph.Store) { removed = st.RemoveRelationship(c.Param("id")) })
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "relationship " + c.Param("id") + " not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// traversalArgs reads ?direction=, ?type= and ?target_type=.
func traversalArgs(c *gin.Context) (graph.Direction, model.RelationshipType, model.EntityType, error) {
	dir, ok := graph.ParseDirection(c.Query("direction"))
	if !ok {
		return "", "", "", fmt.Errorf("direction must be in, out or both")
	}
	var rt model.RelationshipType
	if v := c.Query("type"); v != "" {
		t, err := model.ParseRelationshipType(v)
		if err != nil {
			return "", "", "", err
		}
		rt = t
	}
	var et model.EntityType
	if v := c.Query("target_type"); v != "" {
		t, err := model.ParseEntityType(v)
		if err != nil {
			return "", "", "", err
		}
		et = t
	}
	return dir, rt, et, nil
}

func (s *Server) GetRelationships(c *gin.Context) {
	dir, rt, _, err := traversalArgs(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	id := c.Param("id")
	var (
		out   []model.Relationship
		found bool
	)
	s.Read(func(st *graph.Store) {
		if found = st.HasEntity(id); found {
			out = st.GetRelationships(id, dir, rt)
		}
	})
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "entity " + id + " not found"})
		return
	}
	if out == nil {
		out = []model.Relationship{}
	}
	c.JSON(http.StatusOK, gin.H{"relationships": out})
}

func (s *Server) Neighbors(c *gin.Context) {
	dir, rt, et, err := traversalArgs(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	id := c.Param("id")
	var (
		out   []model.Entity
		found bool
	)
	s.Read(func(st *graph.Store) {
		if found = st.HasEntity(id); found {
			out = st.Neighbors(id, dir, rt, et)
		}
	})
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "entity " + id + " not found"})
		return
	}
	if out == nil {
		out = []model.Entity{}
	}
	c.JSON(http.StatusOK, gin.H{"neighbors": out})
}

func (s *Server) BlastRadius(c *gin.Context) {
	depth, err := intQuery(c, "depth", defaultBlastDepth)
	if err != nil || depth > maxBlastDepth {
		badRequest(c, fmt.Sprintf("depth must be between 0 and %d", maxBlastDepth))
		return
	}
	var levels map[int][]model.Entity
	s.Read(func(st *graph.Store) { levels, err = st.BlastRadius(c.Param("id"), depth) })
	if err != nil {
		s.fail(c, err)
		return
	}
	byDepth := make(map[string][]model.Entity, len(levels))
	total := 0
	for d, es := range levels {
		byDepth[strconv.Itoa(d)] = es
		total += len(es)
	}
	c.JSON(http.StatusOK, gin.H{"origin": c.Param("id"), "depths": byDepth, "total": total})
}

func (s *Server) ShortestPath(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		badRequest(c, "from and to are required")
		return
	}
	var (
		path []string
		ok   bool
	)
	s.Read(func(st *graph.Store) { path, ok = st.ShortestPath(from, to) })
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no path from " + from + " to " + to})
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": path, "length": len(path) - 1})
}

func (s *Server) Statistics(c *gin.Context) {
	var st graph.Statistics
	s.Read(func(g *graph.Store) { st = g.Statistics() })
	c.JSON(http.StatusOK, st)
}

func (s *Server) Centrality(c *gin.Context) {
	top, err := intQuery(c, "top", defaultTopN)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	var rank func(st *graph.Store, n int) []model.Ranked
	switch c.Param("measure") {
	case "degree":
		rank = (*graph.Store).DegreeCentrality
	case "betweenness":
		rank = (*graph.Store).BetweennessCentrality
	case "pagerank":
		rank = (*graph.Store).PageRank
	default:
		badRequest(c, "measure must be degree, betweenness or pagerank")
		return
	}
	var out []model.Ranked
	s.Read(func(st *graph.Store) { out = rank(st, top) })
	if out == nil {
		out = []model.Ranked{}
	}
	c.JSON(http.StatusOK, gin.H{"measure": c.Param("measure"), "ranking": out})
}

type subgraphRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

func (s *Server) Subgraph(c *gin.Context) {
	var req subgraphRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}
	var doc model.Document
	s.Read(func(st *graph.Store) { doc = st.Subgraph(req.IDs).Export() })
	c.JSON(http.StatusOK, doc)
}
