package algo

import (
	"fmt"

	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/model"
	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/utils"
)

// Resolve returns the id of the node nearest to target.
// Distance is haversine; on a tie the node inserted first wins.
func (g *Graph) Resolve(target model.Point) (string, error) {
	if len(g.NodeList) == 0 {
		return "", ErrEmptyGraph
	}

	nearest := g.NodeList[0].ID
	minDist := utils.HaversineDistance(target, g.NodeList[0].Point())
	for _, node := range g.NodeList[1:] {
		if dist := utils.HaversineDistance(target, node.Point()); dist < minDist {
			minDist = dist
			nearest = node.ID
		}
	}

	return nearest, nil
}

// FindNearestNode returns the node nearest to (lat, lng), or nil for an empty graph
func (g *Graph) FindNearestNode(lat, lng float64) *model.Node {
	id, err := g.Resolve(model.Point{Lat: lat, Lng: lng})
	if err != nil {
		return nil
	}
	return g.Nodes[id]
}

// Catalog landmarks snapped to one graph, in display order
type Catalog struct {
	Entries []model.ResolvedLandmark
	byName  map[string]int
}

// ResolveAll snaps every landmark to its nearest node.
// The result is tied to g and must be rebuilt when the graph changes.
func (g *Graph) ResolveAll(landmarks []model.Landmark) (*Catalog, error) {
	c := &Catalog{
		Entries: make([]model.ResolvedLandmark, 0, len(landmarks)),
		byName:  make(map[string]int, len(landmarks)),
	}

	for _, lm := range landmarks {
		if _, dup := c.byName[lm.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLandmark, lm.Name)
		}
		id, err := g.Resolve(lm.Point())
		if err != nil {
			return nil, fmt.Errorf("resolve landmark %q: %w", lm.Name, err)
		}
		c.byName[lm.Name] = len(c.Entries)
		c.Entries = append(c.Entries, model.ResolvedLandmark{Landmark: lm, NodeID: id})
	}

	return c, nil
}

// Lookup finds a resolved landmark by name
func (c *Catalog) Lookup(name string) (model.ResolvedLandmark, error) {
	i, ok := c.byName[name]
	if !ok {
		return model.ResolvedLandmark{}, fmt.Errorf("%w: %q", ErrUnknownLandmark, name)
	}
	return c.Entries[i], nil
}

// Names landmark names in display order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		names[i] = e.Name
	}
	return names
}

// Len number of landmarks
func (c *Catalog) Len() int {
	return len(c.Entries)
}

// NodeIDs landmark name -> node id
func (c *Catalog) NodeIDs() map[string]string {
	ids := make(map[string]string, len(c.Entries))
	for _, e := range c.Entries {
		ids[e.Name] = e.NodeID
	}
	return ids
}
