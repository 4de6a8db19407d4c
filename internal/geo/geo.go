// Package geo resolves postal codes to coordinates and computes distances.
package geo

import (
	"context"
	"errors"
	"math"
)

// Point is a WGS84 coordinate pair.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Geocoder converts postal codes to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, postalCode string) (Point, error)
}

// ErrPostalCodeNotFound is returned when a postal code cannot be resolved.
var ErrPostalCodeNotFound = errors.New("postal code not found")

// StaticGeocoder resolves from a fixed table. Used for local runs and tests;
// production deployments inject a live resolver.
type StaticGeocoder map[string]Point

// Resolve looks up the postal code in the table.
func (g StaticGeocoder) Resolve(_ context.Context, postalCode string) (Point, error) {
	p, ok := g[postalCode]
	if !ok {
		return Point{}, ErrPostalCodeNotFound
	}
	return p, nil
}

const earthRadiusMiles = 3958.8

// Distance returns the great-circle distance between two points in miles.
func Distance(a, b Point) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := lat2 - lat1
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusMiles * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
