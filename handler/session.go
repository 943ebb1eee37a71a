package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/algo"
	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/model"
	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/provider"
)

// ErrNoGraph is returned while no graph has been loaded yet.
var ErrNoGraph = errors.New("handler: map data not loaded")

// Session a graph together with the landmark catalog resolved against it
type Session struct {
	Graph     *algo.Graph
	Catalog   *algo.Catalog
	FetchedAt time.Time
}

// NewSession resolves the landmarks against g
func NewSession(g *algo.Graph, landmarks []model.Landmark) (*Session, error) {
	catalog, err := g.ResolveAll(landmarks)
	if err != nil {
		return nil, err
	}
	return &Session{Graph: g, Catalog: catalog, FetchedAt: time.Now()}, nil
}

// Options campus settings for the navigator
type Options struct {
	Center       model.Point
	Radius       float64
	Zoom         int
	FetchTimeout time.Duration
}

// Navigator owns the current session and answers route requests against it.
// A refresh builds a new session and swaps it in; requests keep the session
// they started with.
type Navigator struct {
	provider  provider.GraphProvider
	landmarks []model.Landmark
	opts      Options

	mu      sync.RWMutex
	session *Session
}

// NewNavigator creates a navigator; call Refresh to load the first graph
func NewNavigator(p provider.GraphProvider, landmarks []model.Landmark, opts Options) *Navigator {
	if opts.Zoom == 0 {
		opts.Zoom = 18
	}
	return &Navigator{provider: p, landmarks: landmarks, opts: opts}
}

// Session the current session, or nil before the first successful refresh
func (n *Navigator) Session() *Session {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.session
}

// Refresh fetches a new graph and re-resolves the landmarks.
// On failure the previous session stays in place.
func (n *Navigator) Refresh(ctx context.Context) (*Session, error) {
	if n.opts.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.opts.FetchTimeout)
		defer cancel()
	}

	g, err := n.provider.FetchGraph(ctx, n.opts.Center, n.opts.Radius)
	if err != nil {
		return nil, fmt.Errorf("fetch graph: %w", err)
	}

	s, err := NewSession(g, n.landmarks)
	if err != nil {
		return nil, err
	}

	n.mu.Lock()
	n.session = s
	n.mu.Unlock()

	log.Printf("graph loaded: %d nodes, %d edges, %d landmarks", g.NodeCount(), g.EdgeCount(), s.Catalog.Len())
	return s, nil
}

// Navigate computes the route between two landmarks and renders it
func (n *Navigator) Navigate(sourceName, destinationName string) (model.MapView, error) {
	s := n.Session()
	if s == nil {
		return model.MapView{}, ErrNoGraph
	}

	src, err := s.Catalog.Lookup(sourceName)
	if err != nil {
		return model.MapView{}, err
	}
	dst, err := s.Catalog.Lookup(destinationName)
	if err != nil {
		return model.MapView{}, err
	}

	route, err := s.Graph.ComputeRoute(src.NodeID, dst.NodeID)
	if err != nil {
		return model.MapView{}, err
	}

	return RenderRoute(s.Graph, route, src, dst, n.opts.Zoom)
}

// Placeholder the map shown when no route can be drawn
func (n *Navigator) Placeholder(message string) model.MapView {
	return PlaceholderView(n.opts.Center, message)
}

// RenderRoute builds the map view for a route: polyline, start and end
// markers, centered on the source node
func RenderRoute(g *algo.Graph, route model.Route, src, dst model.ResolvedLandmark, zoom int) (model.MapView, error) {
	coords, err := g.ToCoordinates(route)
	if err != nil {
		return model.MapView{}, err
	}

	for _, id := range []string{src.NodeID, dst.NodeID} {
		if !g.HasNode(id) {
			return model.MapView{}, fmt.Errorf("%w: landmark node %q", algo.ErrUnknownNode, id)
		}
	}

	start := g.Nodes[src.NodeID].Point()
	end := g.Nodes[dst.NodeID].Point()
	view := model.MapView{
		Center: start,
		Zoom:   zoom,
		Markers: []model.Marker{
			{Point: start, Label: src.Name + " (Start)", Role: "start"},
			{Point: end, Label: dst.Name + " (End)", Role: "end"},
		},
		Polyline: coords,
		Route:    &route,
	}
	if route.Fallback {
		view.Message = "no walking path found, showing a straight line"
	}

	return view, nil
}

// PlaceholderView an empty campus map
func PlaceholderView(center model.Point, message string) model.MapView {
	return model.MapView{
		Center:      center,
		Zoom:        16,
		Placeholder: true,
		Message:     message,
	}
}
