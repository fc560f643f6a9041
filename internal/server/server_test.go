package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/orggraph/internal/assistant"
	"github.com/agenthands/orggraph/internal/codec"
	"github.com/agenthands/orggraph/internal/config"
	"github.com/agenthands/orggraph/internal/core/model"
	"github.com/agenthands/orggraph/internal/core/quality"
	"github.com/agenthands/orggraph/internal/driver"
)

func init() { gin.SetMode(gin.TestMode) }

type MockLLM struct{ Response string }

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	return m.Response, nil
}

type MockDriver struct{ Queries int }

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.Queries++
	return neo4j.EagerResult{}, nil
}
func (m *MockDriver) BuildIndices(ctx context.Context) error { return nil }
func (m *MockDriver) Close(ctx context.Context) error        { return nil }

func newTestServer(t *testing.T, opts Options) (*Server, *gin.Engine) {
	t.Helper()
	if opts.Config == nil {
		opts.Config = config.Default()
		opts.Config.Server.MaxScale = 1000
	}
	s := NewServer(opts)
	return s, s.SetupRouter()
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	switch b := body.(type) {
	case nil:
		rd = bytes.NewReader(nil)
	case []byte:
		rd = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func seed(t *testing.T, r http.Handler) {
	t.Helper()
	for _, e := range []model.Entity{
		{ID: "d1", Type: model.EntityDepartment, Name: "Engineering", Attributes: model.Attributes{"code": model.String("ENG")}},
		{ID: "p1", Type: model.EntityPerson, Name: "Ada", Attributes: model.Attributes{"employment_type": model.String("Employee")}},
		{ID: "p2", Type: model.EntityPerson, Name: "Grace"},
	} {
		w := do(t, r, http.MethodPost, "/entities", e)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	for _, rel := range []model.Relationship{
		{ID: "r1", Type: model.RelWorksIn, SourceID: "p1", TargetID: "d1", Weight: 1, Confidence: 1},
		{ID: "r2", Type: model.RelReportsTo, SourceID: "p2", TargetID: "p1", Weight: 1, Confidence: 1},
	} {
		w := do(t, r, http.MethodPost, "/relationships", rel)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
}

func TestEntityCRUD(t *testing.T) {
	_, r := newTestServer(t, Options{})
	seed(t, r)

	w := do(t, r, http.MethodGet, "/entities/p1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ada", decode[model.Entity](t, w).Name)

	w = do(t, r, http.MethodPost, "/entities", model.Entity{ID: "p1", Type: model.EntityPerson, Name: "Dup"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPost, "/entities", model.Entity{Type: "Spaceship", Name: "x"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, r, http.MethodPost, "/entities", []byte("{"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPatch, "/entities/p1", map[string]any{"name": "Ada L.", "attributes": map[string]any{"title": "CTO"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[model.Entity](t, w)
	assert.Equal(t, "Ada L.", updated.Name)
	assert.Equal(t, int64(2), updated.Version)
	assert.Equal(t, "CTO", updated.Attributes.Str("title"))

	w = do(t, r, http.MethodPatch, "/entities/ghost", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodDelete, "/entities/p1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, r, http.MethodDelete, "/entities/p1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/relationships/r2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "removal cascades to relationships")
}

func TestRelationships(t *testing.T) {
	_, r := newTestServer(t, Options{})
	seed(t, r)

	w := do(t, r, http.MethodPost, "/relationships", model.Relationship{Type: model.RelWorksIn, SourceID: "p1", TargetID: "p2", Weight: 1, Confidence: 1})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "target")

	w = do(t, r, http.MethodPost, "/relationships", model.Relationship{Type: model.RelWorksIn, SourceID: "p1", TargetID: "ghost", Weight: 1, Confidence: 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/entities/p1/relationships?direction=in", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rels := decode[map[string][]model.Relationship](t, w)["relationships"]
	require.Len(t, rels, 1)
	assert.Equal(t, "r2", rels[0].ID)

	w = do(t, r, http.MethodGet, "/entities/p1/neighbors?target_type=Department", nil)
	require.Equal(t, http.StatusOK, w.Code)
	ns := decode[map[string][]model.Entity](t, w)["neighbors"]
	require.Len(t, ns, 1)
	assert.Equal(t, "d1", ns[0].ID)

	w = do(t, r, http.MethodGet, "/entities/p1/neighbors?direction=sideways", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, r, http.MethodGet, "/entities/ghost/relationships", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodDelete, "/relationships/r1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestTraversalRoutes(t *testing.T) {
	_, r := newTestServer(t, Options{})
	seed(t, r)

	w := do(t, r, http.MethodGet, "/paths?from=p2&to=d1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	path := decode[struct {
		Path   []string `json:"path"`
		Length int      `json:"length"`
	}](t, w)
	assert.Equal(t, []string{"p2", "p1", "d1"}, path.Path)
	assert.Equal(t, 2, path.Length)

	w = do(t, r, http.MethodGet, "/entities/p2/blast-radius?depth=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	br := decode[struct {
		Depths map[string][]model.Entity `json:"depths"`
		Total  int                       `json:"total"`
	}](t, w)
	assert.Equal(t, 1, br.Total)
	assert.Equal(t, "p1", br.Depths["1"][0].ID)

	w = do(t, r, http.MethodGet, "/entities/p2/blast-radius?depth=99", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/centrality/degree?top=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	ranking := decode[map[string]any](t, w)["ranking"].([]any)
	assert.Len(t, ranking, 1)
	assert.Equal(t, "p1", ranking[0].(map[string]any)["id"])

	w = do(t, r, http.MethodGet, "/centrality/closeness", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"entity_count":3`)

	w = do(t, r, http.MethodPost, "/subgraph", map[string]any{"ids": []string{"p1", "p2"}})
	require.Equal(t, http.StatusOK, w.Code)
	doc := decode[model.Document](t, w)
	assert.Len(t, doc.Entities, 2)
	assert.Len(t, doc.Relationships, 1)
}

func TestListEntities(t *testing.T) {
	_, r := newTestServer(t, Options{})
	seed(t, r)

	w := do(t, r, http.MethodGet, "/entities?type=Person", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2.0, decode[map[string]any](t, w)["count"])

	w = do(t, r, http.MethodGet, "/entities?attr.code=ENG", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, decode[map[string]any](t, w)["count"])

	w = do(t, r, http.MethodGet, "/entities?limit=1&offset=1", nil)
	ents := decode[map[string][]model.Entity](t, w)["entities"]
	require.Len(t, ents, 1)
	assert.Equal(t, "p1", ents[0].ID)

	w = do(t, r, http.MethodGet, "/entities?type=Alien", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, r, http.MethodGet, "/entities?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateQualityExport(t *testing.T) {
	_, r := newTestServer(t, Options{})

	w := do(t, r, http.MethodPost, "/generate", map[string]any{"scale": 40, "seed": 3})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[struct {
		Entities map[string]int `json:"entities"`
		Quality  quality.Report `json:"quality"`
	}](t, w)
	assert.Equal(t, 40, res.Entities["Person"])
	assert.Equal(t, 1.0, res.Quality.Overall)

	w = do(t, r, http.MethodGet, "/quality", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, res.Quality, decode[quality.Report](t, w))

	w = do(t, r, http.MethodGet, "/export?format=yaml", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/yaml", w.Header().Get("Content-Type"))
	doc, err := codec.Decode(w.Body, codec.YAML)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Relationships)

	w = do(t, r, http.MethodGet, "/export?format=csv", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/generate", map[string]any{"scale": 5000})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, r, http.MethodPost, "/generate", map[string]any{"scale": 10, "contractor_fraction": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/communities", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Greater(t, decode[map[string]any](t, w)["count"], 0.0)
	w = do(t, r, http.MethodGet, "/communities?algorithm=components&min_size=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodGet, "/communities?algorithm=louvain", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImport(t *testing.T) {
	_, r := newTestServer(t, Options{})
	seed(t, r)

	good := model.Document{
		Entities: []model.Entity{{ID: "d2", Type: model.EntityDepartment, Name: "Legal", Attributes: model.Attributes{"code": model.String("LEG")}}},
		Relationships: []model.Relationship{
			{ID: "r9", Type: model.RelWorksIn, SourceID: "p2", TargetID: "d2", Weight: 1, Confidence: 1},
		},
	}
	w := do(t, r, http.MethodPost, "/import", good)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	bad := model.Document{Relationships: []model.Relationship{
		{ID: "r10", Type: model.RelWorksIn, SourceID: "p2", TargetID: "nowhere", Weight: 1, Confidence: 1},
	}}
	w = do(t, r, http.MethodPost, "/import", bad)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "target_id")

	w = do(t, r, http.MethodGet, "/health", nil)
	assert.Contains(t, w.Body.String(), `"entities":4`)
	assert.Contains(t, w.Body.String(), `"relationships":3`)

	w = do(t, r, http.MethodPost, "/import?replace=true", good)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, "p2 is absent from a fresh store")

	w = do(t, r, http.MethodPost, "/import?format=xml", good)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssistantAndSync(t *testing.T) {
	_, r := newTestServer(t, Options{})
	w := do(t, r, http.MethodPost, "/assistant/ask", map[string]string{"question": "hi"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	w = do(t, r, http.MethodPost, "/sync", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	w = do(t, r, http.MethodGet, "/communities?describe=1", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	md := &MockDriver{}
	_, r = newTestServer(t, Options{
		Assistant: assistant.New(&MockLLM{Response: "Ada runs Engineering."}, nil),
		Syncer:    driver.NewSyncer(md, nil),
	})
	seed(t, r)

	w = do(t, r, http.MethodPost, "/assistant/ask", map[string]string{"question": "Who is in Engineering?"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	ans := decode[assistant.Answer](t, w)
	assert.Equal(t, "Ada runs Engineering.", ans.Answer)
	assert.Equal(t, []string{"d1"}, ans.Entities)

	w = do(t, r, http.MethodPost, "/assistant/ask", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/communities?algorithm=components&min_size=1&describe=1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	comms := decode[struct {
		Communities []struct {
			Size  int                       `json:"size"`
			Label *assistant.CommunityLabel `json:"label"`
		} `json:"communities"`
	}](t, w)
	require.NotEmpty(t, comms.Communities)
	require.NotNil(t, comms.Communities[0].Label)
	assert.Equal(t, "Ada runs Engineering.", comms.Communities[0].Label.Name)
	for _, c := range comms.Communities[1:] {
		assert.Nil(t, c.Label)
	}

	w = do(t, r, http.MethodPost, "/sync", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, driver.SyncReport{Entities: 3, Relationships: 2, Batches: 2}, decode[driver.SyncReport](t, w))
	assert.Equal(t, 2, md.Queries)
}

func TestSchemaRoute(t *testing.T) {
	_, r := newTestServer(t, Options{})
	w := do(t, r, http.MethodGet, "/schema", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Len(t, body["entity_types"], len(model.EntityTypes))
	assert.Contains(t, body["constraints"], "WORKS_IN")
}
