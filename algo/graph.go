package algo

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/model"
	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/utils"
)

// Graph walking graph used for routing.
// Once built it is read-only and may be shared between goroutines.
type Graph struct {
	Nodes    map[string]*model.Node   // ID -> Node
	AdjList  map[string][]*model.Edge // ID -> outgoing edges, in insertion order
	NodeList []model.Node             // nodes in insertion order

	index map[string]int // ID -> position in NodeList
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		Nodes:   make(map[string]*model.Node),
		AdjList: make(map[string][]*model.Edge),
		index:   make(map[string]int),
	}
}

// AddNode inserts a node. Re-adding an existing id updates its attributes
// but keeps its original position.
func (g *Graph) AddNode(node model.Node) {
	n := node
	g.Nodes[node.ID] = &n
	if i, ok := g.index[node.ID]; ok {
		g.NodeList[i] = node
		return
	}
	g.index[node.ID] = len(g.NodeList)
	g.NodeList = append(g.NodeList, node)
}

// position insertion index of a node, used to keep traversal order stable
func (g *Graph) position(id string) int {
	return g.index[id]
}

// AddEdge inserts a directed edge. Both endpoints must already exist.
// Dist is stored as given; zero-length edges are legal.
func (g *Graph) AddEdge(edge model.Edge) error {
	if !g.HasNode(edge.From) {
		return fmt.Errorf("%w: edge source %q", ErrUnknownNode, edge.From)
	}
	if !g.HasNode(edge.To) {
		return fmt.Errorf("%w: edge target %q", ErrUnknownNode, edge.To)
	}
	if edge.Dist < 0 || math.IsNaN(edge.Dist) || math.IsInf(edge.Dist, 0) {
		return fmt.Errorf("%w: %s -> %s dist=%v", ErrNegativeWeight, edge.From, edge.To, edge.Dist)
	}
	e := edge
	g.AdjList[e.From] = append(g.AdjList[e.From], &e)
	return nil
}

// AddUndirectedEdge inserts the edge and its reverse. The reverse is skipped
// only when an identical-length reverse entry is already present, so both
// directions always see the same cheapest length.
func (g *Graph) AddUndirectedEdge(edge model.Edge) error {
	if err := g.AddEdge(edge); err != nil {
		return err
	}
	for _, existing := range g.AdjList[edge.To] {
		if existing.To == edge.From && existing.Dist == edge.Dist {
			return nil
		}
	}
	reverse := edge
	reverse.ID = 0
	reverse.From, reverse.To = edge.To, edge.From
	return g.AddEdge(reverse)
}

// HasNode reports whether id is in the graph
func (g *Graph) HasNode(id string) bool {
	_, ok := g.Nodes[id]
	return ok
}

// NodeCount number of nodes
func (g *Graph) NodeCount() int {
	return len(g.NodeList)
}

// EdgeCount number of directed adjacency entries
func (g *Graph) EdgeCount() int {
	n := 0
	for _, edges := range g.AdjList {
		n += len(edges)
	}
	return n
}

// GetNeighbors outgoing edges of a node, in insertion order
func (g *Graph) GetNeighbors(nodeID string) []*model.Edge {
	return g.AdjList[nodeID]
}

// Edge returns the cheapest edge from -> to, or nil
func (g *Graph) Edge(from, to string) *model.Edge {
	var best *model.Edge
	for _, e := range g.AdjList[from] {
		if e.To == to && (best == nil || e.Dist < best.Dist) {
			best = e
		}
	}
	return best
}

// FromMapData builds a graph from decoded map data.
// Edges are two-way unless marked OneWay; edges that cannot be walked are skipped.
func FromMapData(data model.MapData) (*Graph, error) {
	g := NewGraph()
	for _, node := range data.Nodes {
		g.AddNode(node)
	}

	for _, edge := range data.Edges {
		if !model.AllowsWalking(edge.Modes) {
			continue
		}
		var err error
		if edge.OneWay {
			err = g.AddEdge(edge)
		} else {
			err = g.AddUndirectedEdge(edge)
		}
		if err != nil {
			return nil, err
		}
	}

	return g, nil
}

// LoadFromJSON loads a graph from a map data JSON file
func LoadFromJSON(filepath string) (*Graph, error) {
	file, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("read map data: %w", err)
	}

	var data model.MapData
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, fmt.Errorf("decode map data: %w", err)
	}

	return FromMapData(data)
}

// Within returns the subgraph of nodes at most radius meters from center,
// keeping the edges whose endpoints both survive. Order is preserved.
func (g *Graph) Within(center model.Point, radius float64) *Graph {
	sub := NewGraph()
	for _, node := range g.NodeList {
		if utils.HaversineDistance(center, node.Point()) <= radius {
			sub.AddNode(node)
		}
	}

	for _, node := range sub.NodeList {
		for _, edge := range g.AdjList[node.ID] {
			if sub.HasNode(edge.To) {
				e := *edge
				sub.AdjList[node.ID] = append(sub.AdjList[node.ID], &e)
			}
		}
	}

	return sub
}
