package model

// Point a WGS84 coordinate
type Point struct {
	Lat float64 `json:"lat"` // latitude
	Lng float64 `json:"lng"` // longitude
}

// Node a point on the walking graph (intersection, path vertex, landmark)
type Node struct {
	ID   string  `json:"id" gorm:"primaryKey"`
	Name string  `json:"name" gorm:"index"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Type string  `json:"type" gorm:"index"` // e.g. "junction", "crossing", "landmark"
}

// Point returns the node's coordinate
func (n Node) Point() Point {
	return Point{Lat: n.Lat, Lng: n.Lng}
}
