package utils

import (
	"math"

	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/model"
)

// EarthRadius WGS84 semi-major axis (meters)
const EarthRadius = 6378137.0

// DegreesToRadians converts degrees to radians
func DegreesToRadians(d float64) float64 {
	return d * math.Pi / 180.0
}

// HaversineDistance great-circle distance between two points in meters.
// Used for edge lengths, nearest-node snapping and the straight-line fallback.
func HaversineDistance(p1, p2 model.Point) float64 {
	lat1 := DegreesToRadians(p1.Lat)
	lat2 := DegreesToRadians(p2.Lat)
	dLat := lat2 - lat1
	dLng := DegreesToRadians(p2.Lng - p1.Lng)

	// a = sin²(Δlat/2) + cos(lat1) * cos(lat2) * sin²(Δlng/2)
	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	a := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng

	return 2 * EarthRadius * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
