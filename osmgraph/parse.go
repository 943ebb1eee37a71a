// Package osmgraph builds walking graphs from OpenStreetMap data.
package osmgraph

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"

	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/algo"
	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/model"
	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/utils"
)

// highway values a pedestrian cannot use
var excludedHighways = map[string]bool{
	"abandoned":     true,
	"bus_guideway":  true,
	"construction":  true,
	"motorway":      true,
	"motorway_link": true,
	"no":            true,
	"planned":       true,
	"platform":      true,
	"proposed":      true,
	"raceway":       true,
	"razed":         true,
	"trunk":         true,
	"trunk_link":    true,
}

// Walkable reports whether a way's tags describe something one can walk along
func Walkable(tags osm.Tags) bool {
	highway := tags.Find("highway")
	if highway == "" || excludedHighways[highway] {
		return false
	}
	if tags.Find("area") == "yes" {
		return false
	}

	foot := tags.Find("foot")
	if foot == "no" {
		return false
	}
	if foot == "yes" || foot == "designated" || foot == "permissive" {
		return true
	}

	switch tags.Find("access") {
	case "no", "private":
		return false
	}
	return tags.Find("service") != "private"
}

// NodeID formats an OSM node id as a graph node id
func NodeID(id osm.NodeID) string {
	return strconv.FormatInt(int64(id), 10)
}

// Parse reads OSM XML and builds the walking graph of its walkable ways.
// Only nodes referenced by a walkable way become graph nodes; every pair of
// consecutive way nodes becomes a two-way edge whose length is the haversine
// distance between them.
func Parse(ctx context.Context, r io.Reader) (*algo.Graph, error) {
	scanner := osmxml.New(ctx, r)
	defer scanner.Close()

	nodes := make(map[osm.NodeID]*osm.Node)
	var ways []*osm.Way
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			nodes[o.ID] = o
		case *osm.Way:
			if Walkable(o.Tags) {
				ways = append(ways, o)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan osm xml: %w", err)
	}

	g := algo.NewGraph()
	for _, way := range ways {
		var prev string
		for _, wn := range way.Nodes {
			n, ok := nodes[wn.ID]
			if !ok {
				// way leaves the extract; start a new run after the gap
				prev = ""
				continue
			}
			id := NodeID(n.ID)
			if !g.HasNode(id) {
				g.AddNode(model.Node{
					ID:   id,
					Name: n.Tags.Find("name"),
					Lat:  n.Lat,
					Lng:  n.Lon,
					Type: nodeType(n.Tags),
				})
			}
			if prev != "" && prev != id {
				edge := model.Edge{
					From:  prev,
					To:    id,
					Dist:  utils.HaversineDistance(g.Nodes[prev].Point(), g.Nodes[id].Point()),
					Modes: []string{model.ModeWalk},
					Desc:  wayDesc(way.Tags),
				}
				if err := g.AddUndirectedEdge(edge); err != nil {
					return nil, fmt.Errorf("way %d: %w", way.ID, err)
				}
			}
			prev = id
		}
	}

	return g, nil
}

func nodeType(tags osm.Tags) string {
	if v := tags.Find("highway"); v != "" {
		return v
	}
	if tags.Find("amenity") != "" || tags.Find("name") != "" {
		return "landmark"
	}
	return "path"
}

func wayDesc(tags osm.Tags) string {
	if name := tags.Find("name"); name != "" {
		return name
	}
	return tags.Find("highway")
}
