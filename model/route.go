package model

// Segment one hop of a route
type Segment struct {
	FromID   string  `json:"from_id"`
	ToID     string  `json:"to_id"`
	Distance float64 `json:"distance"` // meters
	Time     float64 `json:"time"`     // estimated walking time (seconds)
	Desc     string  `json:"desc,omitempty"`
}

// Route an ordered node sequence from source to destination
type Route struct {
	Path          []string  `json:"path"`
	Segments      []Segment `json:"segments"`
	Distance      float64   `json:"distance"`       // total meters
	EstimatedTime float64   `json:"estimated_time"` // total seconds
	Fallback      bool      `json:"fallback"`       // straight line, no real path exists
}

// Source first node of the route
func (r Route) Source() string {
	if len(r.Path) == 0 {
		return ""
	}
	return r.Path[0]
}

// Destination last node of the route
func (r Route) Destination() string {
	if len(r.Path) == 0 {
		return ""
	}
	return r.Path[len(r.Path)-1]
}

// Marker a labelled pin on the map
type Marker struct {
	Point
	Label string `json:"label"`
	Role  string `json:"role"` // "start" or "end"
}

// MapView everything a map renderer needs to draw a route
type MapView struct {
	Center      Point    `json:"center"`
	Zoom        int      `json:"zoom"`
	Markers     []Marker `json:"markers,omitempty"`
	Polyline    []Point  `json:"polyline,omitempty"`
	Route       *Route   `json:"route,omitempty"`
	Placeholder bool     `json:"placeholder"`
	Message     string   `json:"message,omitempty"`
}
