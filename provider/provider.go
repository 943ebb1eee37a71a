// Package provider supplies the walking graph the navigator routes on.
package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/algo"
	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/model"
	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/osmgraph"
)

// GraphProvider returns the walking graph of the area within radius meters of center.
// The graph must already be limited to pedestrian edges.
type GraphProvider interface {
	FetchGraph(ctx context.Context, center model.Point, radius float64) (*algo.Graph, error)
}

// FileProvider reads the graph from a map data JSON file or an OSM XML extract
type FileProvider struct {
	Path string
}

// FetchGraph loads the file and trims it to the radius
func (p FileProvider) FetchGraph(ctx context.Context, center model.Point, radius float64) (*algo.Graph, error) {
	var (
		g   *algo.Graph
		err error
	)

	switch strings.ToLower(filepath.Ext(p.Path)) {
	case ".osm", ".xml":
		g, err = loadOSM(ctx, p.Path)
	default:
		g, err = algo.LoadFromJSON(p.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("file provider %s: %w", p.Path, err)
	}

	return g.Within(center, radius), nil
}

func loadOSM(ctx context.Context, path string) (*algo.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return osmgraph.Parse(ctx, f)
}

// Static always returns the same graph
type Static struct {
	Graph *algo.Graph
	Err   error
}

// FetchGraph returns the fixed graph or error
func (s Static) FetchGraph(ctx context.Context, _ model.Point, _ float64) (*algo.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Graph, nil
}
