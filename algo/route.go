package algo

import (
	"fmt"
	"strings"

	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/model"
	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/utils"
)

// ComputeRoute shortest walking route between two nodes.
//
// When no path exists the route is the straight line [source, destination]
// with Fallback set; it does not follow any edge. A route from a node to
// itself is the single element [source].
func (g *Graph) ComputeRoute(sourceID, destinationID string) (model.Route, error) {
	if !g.HasNode(sourceID) {
		return model.Route{}, fmt.Errorf("%w: source %q", ErrUnknownNode, sourceID)
	}
	if !g.HasNode(destinationID) {
		return model.Route{}, fmt.Errorf("%w: destination %q", ErrUnknownNode, destinationID)
	}

	if sourceID == destinationID {
		return model.Route{Path: []string{sourceID}, Segments: []model.Segment{}}, nil
	}

	if !g.Reachable(sourceID, destinationID) {
		return g.fallbackRoute(sourceID, destinationID), nil
	}

	path, _, ok := g.Dijkstra(sourceID, destinationID)
	if !ok {
		return g.fallbackRoute(sourceID, destinationID), nil
	}

	route := model.Route{Path: path, Segments: make([]model.Segment, 0, len(path)-1)}
	for i := 0; i < len(path)-1; i++ {
		edge := g.Edge(path[i], path[i+1])
		seg := model.Segment{
			FromID:   path[i],
			ToID:     path[i+1],
			Distance: edge.Dist,
			Time:     model.EstimateWalkTime(edge.Dist),
			Desc:     edge.Desc,
		}
		route.Segments = append(route.Segments, seg)
		route.Distance += seg.Distance
		route.EstimatedTime += seg.Time
	}

	return route, nil
}

func (g *Graph) fallbackRoute(sourceID, destinationID string) model.Route {
	dist := utils.HaversineDistance(g.Nodes[sourceID].Point(), g.Nodes[destinationID].Point())
	return model.Route{
		Path: []string{sourceID, destinationID},
		Segments: []model.Segment{{
			FromID:   sourceID,
			ToID:     destinationID,
			Distance: dist,
			Time:     model.EstimateWalkTime(dist),
			Desc:     "straight line",
		}},
		Distance:      dist,
		EstimatedTime: model.EstimateWalkTime(dist),
		Fallback:      true,
	}
}

// ToCoordinates maps every node of the route to its coordinate
func (g *Graph) ToCoordinates(route model.Route) ([]model.Point, error) {
	points := make([]model.Point, 0, len(route.Path))
	for _, id := range route.Path {
		node, ok := g.Nodes[id]
		if !ok {
			return nil, fmt.Errorf("%w: route node %q", ErrUnknownNode, id)
		}
		points = append(points, node.Point())
	}
	return points, nil
}

// FormatRoute renders a route as readable text
func (g *Graph) FormatRoute(route model.Route) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Distance: %.2f m (%.2f km)\n", route.Distance, route.Distance/1000)
	fmt.Fprintf(&b, "Walking time: %.0f s (%.1f min)\n", route.EstimatedTime, route.EstimatedTime/60)
	if route.Fallback {
		b.WriteString("No walking path found, showing a straight line\n")
	}
	b.WriteString("Path:\n")

	for i, nodeID := range route.Path {
		name := nodeID
		if node := g.Nodes[nodeID]; node != nil && node.Name != "" {
			name = node.Name
		}
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, name, nodeID)
	}

	return b.String()
}
