// Package geocode fills in landmark coordinates from postal addresses.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"log"

	maps "googlemaps.github.io/maps"

	"github.com/C-Sakthi-Maheswari/Happy-Folks-CampUS-Sync/model"
)

// ErrNoResult is returned when the geocoder knows no place for an address.
var ErrNoResult = errors.New("geocode: no result")

// ErrNoGeocoder is returned when a landmark needs geocoding but none is configured.
var ErrNoGeocoder = errors.New("geocode: landmark has no coordinate and no geocoder is configured")

// Geocoder turns an address into a coordinate
type Geocoder interface {
	Geocode(ctx context.Context, address string) (model.Point, error)
}

// Google geocodes with the Google Maps Geocoding API
type Google struct {
	client *maps.Client
	region string
}

// NewGoogle creates a geocoder. Extra client options (base URL, HTTP client)
// are passed through to the maps client.
func NewGoogle(apiKey, region string, opts ...maps.ClientOption) (*Google, error) {
	opts = append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("geocode: new client: %w", err)
	}
	return &Google{client: client, region: region}, nil
}

// Geocode returns the location of the first result
func (g *Google) Geocode(ctx context.Context, address string) (model.Point, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: address,
		Region:  g.region,
	})
	if err != nil {
		return model.Point{}, fmt.Errorf("geocode %q: %w", address, err)
	}
	if len(results) == 0 {
		return model.Point{}, fmt.Errorf("%w: %q", ErrNoResult, address)
	}

	loc := results[0].Geometry.Location
	return model.Point{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// FillCoordinates returns a copy of landmarks where every entry without a
// coordinate has been geocoded from its address. geo may be nil when all
// landmarks already carry coordinates.
func FillCoordinates(ctx context.Context, geo Geocoder, landmarks []model.Landmark) ([]model.Landmark, error) {
	out := make([]model.Landmark, len(landmarks))
	copy(out, landmarks)

	for i := range out {
		if out[i].HasCoordinate() {
			continue
		}
		if geo == nil {
			return nil, fmt.Errorf("%w: %q", ErrNoGeocoder, out[i].Name)
		}
		p, err := geo.Geocode(ctx, out[i].Address)
		if err != nil {
			return nil, fmt.Errorf("landmark %q: %w", out[i].Name, err)
		}
		out[i].Lat, out[i].Lng = p.Lat, p.Lng
		log.Printf("geocode: %s -> (%.6f, %.6f)", out[i].Name, p.Lat, p.Lng)
	}

	return out, nil
}
