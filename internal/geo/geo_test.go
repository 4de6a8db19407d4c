package geo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-user-go/events/internal/geo"
)

func TestStaticGeocoder_Resolve(t *testing.T) {
	g := geo.StaticGeocoder{
		"60601": {Latitude: 41.8858, Longitude: -87.6229},
	}

	pt, err := g.Resolve(context.Background(), "60601")
	require.NoError(t, err)
	assert.InDelta(t, 41.8858, pt.Latitude, 1e-9)
	assert.InDelta(t, -87.6229, pt.Longitude, 1e-9)

	_, err = g.Resolve(context.Background(), "99999")
	assert.True(t, errors.Is(err, geo.ErrPostalCodeNotFound))
}

func TestDistance(t *testing.T) {
	// Chicago Loop to O'Hare is roughly 15 miles great-circle.
	loop := geo.Point{Latitude: 41.8786, Longitude: -87.6251}
	ohare := geo.Point{Latitude: 41.9742, Longitude: -87.9073}

	d := geo.Distance(loop, ohare)
	assert.InDelta(t, 15.5, d, 1.5)
}

func TestDistance_SamePoint(t *testing.T) {
	p := geo.Point{Latitude: 41.8786, Longitude: -87.6251}
	assert.InDelta(t, 0, geo.Distance(p, p), 1e-6)
}

func TestDistance_Symmetric(t *testing.T) {
	a := geo.Point{Latitude: 41.8786, Longitude: -87.6251}
	b := geo.Point{Latitude: 40.7506, Longitude: -73.9972}
	assert.InDelta(t, geo.Distance(a, b), geo.Distance(b, a), 1e-9)
}
