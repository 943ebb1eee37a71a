package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/algo"
	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/model"
	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/provider"
)

var campusCenter = model.Point{Lat: 13.0087, Lng: 80.0034}

var testLandmarks = []model.Landmark{
	{Name: "Hut Cafe", Lat: 13.0084, Lng: 80.0036},
	{Name: "Library", Lat: 13.0090, Lng: 80.0055},
	{Name: "Ground", Lat: 13.0085, Lng: 80.0044},
	{Name: "Annex", Lat: 13.0100, Lng: 80.0100},
}

// campusGraph hut - ground - lib with a long direct hut - lib path,
// plus an unconnected annex node
func campusGraph(t *testing.T) *algo.Graph {
	t.Helper()
	g := algo.NewGraph()
	g.AddNode(model.Node{ID: "hut", Lat: 13.0084, Lng: 80.0036})
	g.AddNode(model.Node{ID: "ground", Lat: 13.0085, Lng: 80.0044})
	g.AddNode(model.Node{ID: "lib", Lat: 13.0090, Lng: 80.0055})
	g.AddNode(model.Node{ID: "annex", Name: "Annex Block", Lat: 13.0100, Lng: 80.0100, Type: "landmark"})
	require.NoError(t, g.AddUndirectedEdge(model.Edge{From: "hut", To: "ground", Dist: 90}))
	require.NoError(t, g.AddUndirectedEdge(model.Edge{From: "ground", To: "lib", Dist: 130}))
	require.NoError(t, g.AddUndirectedEdge(model.Edge{From: "hut", To: "lib", Dist: 400}))
	return g
}

func newTestRouter(t *testing.T, p provider.GraphProvider, refresh bool) (*gin.Engine, *Navigator) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	n := NewNavigator(p, testLandmarks, Options{Center: campusCenter, Radius: 500})
	if refresh {
		_, err := n.Refresh(context.Background())
		require.NoError(t, err)
	}

	r := gin.New()
	r.Use(CORS())
	n.Register(r.Group("/api"))
	return r, n
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	r.ServeHTTP(w, req)
	return w
}

func routeURL(from, to string) string {
	q := url.Values{"from": {from}, "to": {to}}
	return "/api/route?" + q.Encode()
}

func TestFindRoute(t *testing.T) {
	r, _ := newTestRouter(t, provider.Static{Graph: campusGraph(t)}, true)

	w := do(r, http.MethodGet, routeURL("Hut Cafe", "Library"), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var view model.MapView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.NotNil(t, view.Route)
	assert.Equal(t, []string{"hut", "ground", "lib"}, view.Route.Path)
	assert.Equal(t, 220.0, view.Route.Distance)
	assert.False(t, view.Placeholder)
	assert.Equal(t, 18, view.Zoom)
	assert.Equal(t, model.Point{Lat: 13.0084, Lng: 80.0036}, view.Center)
	assert.Equal(t, []model.Point{
		{Lat: 13.0084, Lng: 80.0036},
		{Lat: 13.0085, Lng: 80.0044},
		{Lat: 13.0090, Lng: 80.0055},
	}, view.Polyline)
	require.Len(t, view.Markers, 2)
	assert.Equal(t, "Hut Cafe (Start)", view.Markers[0].Label)
	assert.Equal(t, "start", view.Markers[0].Role)
	assert.Equal(t, "Library (End)", view.Markers[1].Label)
}

func TestFindRoute_PostBody(t *testing.T) {
	r, _ := newTestRouter(t, provider.Static{Graph: campusGraph(t)}, true)

	w := do(r, http.MethodPost, "/api/route", `{"from": "Library", "to": "Ground"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var view model.MapView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, []string{"lib", "ground"}, view.Route.Path)
}

func TestFindRoute_SameLandmark(t *testing.T) {
	r, _ := newTestRouter(t, provider.Static{Graph: campusGraph(t)}, true)

	w := do(r, http.MethodGet, routeURL("Ground", "Ground"), "")
	require.Equal(t, http.StatusOK, w.Code)

	var view model.MapView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, []string{"ground"}, view.Route.Path)
	assert.Len(t, view.Polyline, 1)
}

func TestFindRoute_FallbackLine(t *testing.T) {
	r, _ := newTestRouter(t, provider.Static{Graph: campusGraph(t)}, true)

	w := do(r, http.MethodGet, routeURL("Hut Cafe", "Annex"), "")
	require.Equal(t, http.StatusOK, w.Code)

	var view model.MapView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.True(t, view.Route.Fallback)
	assert.Equal(t, []string{"hut", "annex"}, view.Route.Path)
	assert.Len(t, view.Polyline, 2)
	assert.NotEmpty(t, view.Message)
}

func TestFindRoute_UnknownLandmark(t *testing.T) {
	r, _ := newTestRouter(t, provider.Static{Graph: campusGraph(t)}, true)

	w := do(r, http.MethodGet, routeURL("Hut Cafe", "Swimming Pool"), "")
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "Swimming Pool")
	require.NotNil(t, resp.View)
	assert.True(t, resp.View.Placeholder)
	assert.Equal(t, 16, resp.View.Zoom)
	assert.Equal(t, campusCenter, resp.View.Center)
}

func TestFindRoute_BadRequest(t *testing.T) {
	r, _ := newTestRouter(t, provider.Static{Graph: campusGraph(t)}, true)

	w := do(r, http.MethodGet, "/api/route?from=Library", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/route", `{"from": 1`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFindRoute_NoGraphYet(t *testing.T) {
	r, _ := newTestRouter(t, provider.Static{Graph: campusGraph(t)}, false)

	w := do(r, http.MethodGet, routeURL("Hut Cafe", "Library"), "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.View)
	assert.True(t, resp.View.Placeholder)
}

func TestGetLandmarks(t *testing.T) {
	r, _ := newTestRouter(t, provider.Static{Graph: campusGraph(t)}, true)

	w := do(r, http.MethodGet, "/api/landmarks", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count     int            `json:"count"`
		Landmarks []LandmarkInfo `json:"landmarks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.Count)
	names := make([]string, 0, len(resp.Landmarks))
	for _, lm := range resp.Landmarks {
		names = append(names, lm.Name)
	}
	assert.Equal(t, []string{"Hut Cafe", "Library", "Ground", "Annex"}, names)
	assert.Equal(t, "lib", resp.Landmarks[1].NodeID)
}

func TestNodes(t *testing.T) {
	r, _ := newTestRouter(t, provider.Static{Graph: campusGraph(t)}, true)

	w := do(r, http.MethodGet, "/api/nodes/annex", "")
	require.Equal(t, http.StatusOK, w.Code)
	var node NodeInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &node))
	assert.Equal(t, "Annex Block", node.Name)
	assert.Equal(t, "landmark", node.Type)

	w = do(r, http.MethodGet, "/api/nodes/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/api/nodes/nearest?lat=13.0089&lng=80.0054", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &node))
	assert.Equal(t, "lib", node.ID)

	w = do(r, http.MethodGet, "/api/nodes/nearest?lat=north", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAndSearchNodes(t *testing.T) {
	r, _ := newTestRouter(t, provider.Static{Graph: campusGraph(t)}, true)

	w := do(r, http.MethodGet, "/api/nodes", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Count int        `json:"count"`
		Nodes []NodeInfo `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 4, list.Count)
	assert.Equal(t, "hut", list.Nodes[0].ID)

	w = do(r, http.MethodGet, "/api/nodes/search?q=ANNEX", "")
	require.Equal(t, http.StatusOK, w.Code)
	var found struct {
		Count   int        `json:"count"`
		Results []NodeInfo `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	require.Equal(t, 1, found.Count)
	assert.Equal(t, "annex", found.Results[0].ID)

	w = do(r, http.MethodGet, "/api/nodes/search", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshGraph(t *testing.T) {
	p := &swappable{graph: campusGraph(t)}
	r, n := newTestRouter(t, p, true)
	first := n.Session()

	// the new graph moves Library onto a fresh node
	g := campusGraph(t)
	g.AddNode(model.Node{ID: "lib2", Lat: 13.0090, Lng: 80.0055})
	g.AddNode(model.Node{ID: "lib", Lat: 13.0200, Lng: 80.0200})
	p.graph = g

	w := do(r, http.MethodPost, "/api/graph/refresh", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotSame(t, first, n.Session())

	lm, err := n.Session().Catalog.Lookup("Library")
	require.NoError(t, err)
	assert.Equal(t, "lib2", lm.NodeID)
	// the old session is untouched
	old, err := first.Catalog.Lookup("Library")
	require.NoError(t, err)
	assert.Equal(t, "lib", old.NodeID)
}

func TestRefreshGraph_FailureKeepsSession(t *testing.T) {
	p := &swappable{graph: campusGraph(t)}
	r, n := newTestRouter(t, p, true)
	before := n.Session()

	p.err = errors.New("overpass down")
	w := do(r, http.MethodPost, "/api/graph/refresh", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Same(t, before, n.Session())

	p.err = nil
	p.graph = algo.NewGraph()
	_, err := n.Refresh(context.Background())
	assert.ErrorIs(t, err, algo.ErrEmptyGraph)
	assert.Same(t, before, n.Session())
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestRouter(t, provider.Static{Graph: campusGraph(t)}, true)

	w := do(r, http.MethodOptions, "/api/route", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRenderRoute_UnknownNode(t *testing.T) {
	g := campusGraph(t)
	src := model.ResolvedLandmark{Landmark: model.Landmark{Name: "Hut Cafe"}, NodeID: "hut"}
	dst := model.ResolvedLandmark{Landmark: model.Landmark{Name: "Library"}, NodeID: "lib"}

	_, err := RenderRoute(g, model.Route{Path: []string{"hut", "ghost", "lib"}}, src, dst, 18)
	assert.ErrorIs(t, err, algo.ErrUnknownNode)
}

func TestRenderRoute_LandmarkNodeMissing(t *testing.T) {
	g := campusGraph(t)
	src := model.ResolvedLandmark{Landmark: model.Landmark{Name: "Hut Cafe"}, NodeID: "hut"}
	dst := model.ResolvedLandmark{Landmark: model.Landmark{Name: "Gone"}, NodeID: "ghost"}

	var err error
	require.NotPanics(t, func() {
		_, err = RenderRoute(g, model.Route{Path: []string{"hut"}}, src, dst, 18)
	})
	assert.ErrorIs(t, err, algo.ErrUnknownNode)
	assert.Contains(t, err.Error(), "ghost")
}

type swappable struct {
	graph *algo.Graph
	err   error
}

func (s *swappable) FetchGraph(ctx context.Context, center model.Point, radius float64) (*algo.Graph, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.graph, nil
}
