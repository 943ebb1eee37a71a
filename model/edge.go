package model

import "github.com/lib/pq"

// Edge a connection between two nodes
type Edge struct {
	ID     uint           `json:"-" gorm:"primaryKey"`
	From   string         `json:"from" gorm:"index"`
	To     string         `json:"to" gorm:"index"`
	Dist   float64        `json:"dist"`                     // length in meters, taken as given (0 is a legal length)
	Modes  pq.StringArray `json:"modes" gorm:"type:text[]"` // e.g. ["walk"], ["walk", "bike"]
	OneWay bool           `json:"oneway,omitempty"`         // only From -> To is traversable
	Desc   string         `json:"desc,omitempty"`
}

// MapData the layout of a map data JSON file
type MapData struct {
	Meta  map[string]interface{} `json:"meta"`
	Nodes []Node                 `json:"nodes"`
	Edges []Edge                 `json:"edges"`
}

// ModeWalk the only travel mode the navigator routes on
const ModeWalk = "walk"

// SpeedWalk average walking speed (m/s), about 5 km/h
const SpeedWalk = 1.4

// AllowsWalking reports whether an edge with no modes or with "walk" can be used on foot
func AllowsWalking(modes []string) bool {
	if len(modes) == 0 {
		return true
	}
	for _, m := range modes {
		if m == ModeWalk {
			return true
		}
	}
	return false
}

// EstimateWalkTime walking time (seconds) for a distance in meters
func EstimateWalkTime(distance float64) float64 {
	return distance / SpeedWalk
}
