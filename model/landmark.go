package model

// Landmark a named point of interest, defined by configuration
type Landmark struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"` // geocoded when Lat/Lng are both zero
}

// Point returns the landmark's target coordinate
func (l Landmark) Point() Point {
	return Point{Lat: l.Lat, Lng: l.Lng}
}

// HasCoordinate reports whether the landmark carries a usable coordinate
func (l Landmark) HasCoordinate() bool {
	return l.Lat != 0 || l.Lng != 0
}

// ResolvedLandmark a landmark snapped to its nearest graph node
type ResolvedLandmark struct {
	Landmark
	NodeID string `json:"node_id"`
}
