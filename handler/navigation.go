package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/algo"
	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/model"
)

// RouteRequest route between two catalog landmarks
type RouteRequest struct {
	From string `json:"from" form:"from" binding:"required"` // source landmark name
	To   string `json:"to" form:"to" binding:"required"`     // destination landmark name
}

// LandmarkInfo a catalog entry as listed to clients
type LandmarkInfo struct {
	Name   string  `json:"name"`
	NodeID string  `json:"node_id"`
	Lat    float64 `json:"lat"` // snapped node position
	Lng    float64 `json:"lng"`
}

// NodeInfo a graph node
type NodeInfo struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Type string  `json:"type"`
}

// ErrorResponse error body; View is a placeholder map the client can still draw
type ErrorResponse struct {
	Error string         `json:"error"`
	View  *model.MapView `json:"view,omitempty"`
}

// Register mounts the navigation API on r
func (n *Navigator) Register(r gin.IRouter) {
	r.GET("/landmarks", n.GetLandmarks)
	r.GET("/route", n.FindRoute)
	r.POST("/route", n.FindRoute)
	r.GET("/nodes", n.GetNodes)
	r.GET("/nodes/search", n.SearchNodes)
	r.GET("/nodes/nearest", n.NearestNode)
	r.GET("/nodes/:id", n.GetNodeByID)
	r.POST("/graph/refresh", n.RefreshGraph)
}

// GetLandmarks lists the catalog in display order
func (n *Navigator) GetLandmarks(c *gin.Context) {
	s := n.Session()
	if s == nil {
		n.fail(c, ErrNoGraph)
		return
	}

	landmarks := make([]LandmarkInfo, 0, s.Catalog.Len())
	for _, e := range s.Catalog.Entries {
		node := s.Graph.Nodes[e.NodeID]
		landmarks = append(landmarks, LandmarkInfo{Name: e.Name, NodeID: e.NodeID, Lat: node.Lat, Lng: node.Lng})
	}

	c.JSON(http.StatusOK, gin.H{
		"count":     len(landmarks),
		"landmarks": landmarks,
	})
}

// FindRoute routes between two landmarks, from the query string or a JSON body
func (n *Navigator) FindRoute(c *gin.Context) {
	var req RouteRequest
	var err error
	if c.Request.Method == http.MethodPost {
		err = c.ShouldBindJSON(&req)
	} else {
		err = c.ShouldBindQuery(&req)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return
	}

	view, err := n.Navigate(req.From, req.To)
	if err != nil {
		n.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// NearestNode snaps ?lat=&lng= to the nearest graph node
func (n *Navigator) NearestNode(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "lat and lng must be numbers"})
		return
	}

	s := n.Session()
	if s == nil {
		n.fail(c, ErrNoGraph)
		return
	}

	id, err := s.Graph.Resolve(model.Point{Lat: lat, Lng: lng})
	if err != nil {
		n.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, nodeInfo(s.Graph.Nodes[id]))
}

// GetNodes lists every graph node
func (n *Navigator) GetNodes(c *gin.Context) {
	s := n.Session()
	if s == nil {
		n.fail(c, ErrNoGraph)
		return
	}

	nodes := make([]NodeInfo, 0, s.Graph.NodeCount())
	for i := range s.Graph.NodeList {
		nodes = append(nodes, nodeInfo(&s.Graph.NodeList[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(nodes),
		"nodes": nodes,
	})
}

// SearchNodes finds nodes whose name or id contains ?q=, ignoring case
func (n *Navigator) SearchNodes(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("q")))
	if query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing search query"})
		return
	}

	s := n.Session()
	if s == nil {
		n.fail(c, ErrNoGraph)
		return
	}

	results := make([]NodeInfo, 0)
	for i := range s.Graph.NodeList {
		node := &s.Graph.NodeList[i]
		if strings.Contains(strings.ToLower(node.Name), query) || strings.Contains(strings.ToLower(node.ID), query) {
			results = append(results, nodeInfo(node))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}

// GetNodeByID returns one graph node
func (n *Navigator) GetNodeByID(c *gin.Context) {
	s := n.Session()
	if s == nil {
		n.fail(c, ErrNoGraph)
		return
	}

	node := s.Graph.Nodes[c.Param("id")]
	if node == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "node not found"})
		return
	}

	c.JSON(http.StatusOK, nodeInfo(node))
}

// RefreshGraph refetches the graph and re-resolves the landmarks
func (n *Navigator) RefreshGraph(c *gin.Context) {
	s, err := n.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"nodes":      s.Graph.NodeCount(),
		"edges":      s.Graph.EdgeCount(),
		"landmarks":  s.Catalog.Len(),
		"fetched_at": s.FetchedAt,
	})
}

// fail maps an error kind to a status and attaches a placeholder map
func (n *Navigator) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, algo.ErrUnknownLandmark), errors.Is(err, algo.ErrUnknownNode):
		status = http.StatusNotFound
	case errors.Is(err, ErrNoGraph), errors.Is(err, algo.ErrEmptyGraph):
		status = http.StatusServiceUnavailable
	}

	view := n.Placeholder("placeholder map of the campus")
	c.JSON(status, ErrorResponse{Error: err.Error(), View: &view})
}

func nodeInfo(node *model.Node) NodeInfo {
	return NodeInfo{
		ID:   node.ID,
		Name: node.Name,
		Lat:  node.Lat,
		Lng:  node.Lng,
		Type: node.Type,
	}
}

// CORS allows browser map front ends on other origins
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
