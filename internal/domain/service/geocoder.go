package service

import (
	"context"

	"lifeline/internal/errors"
)

// ErrNoGeocodingResult is returned when the provider finds no match for the
// address. Callers treat it as "no coordinates", not as a failure.
var ErrNoGeocodingResult = errors.New("no geocoding result for address")

// Coordinates is a WGS84 position.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Geocoder resolves a free-text address to coordinates using an external
// HTTP provider. Only the first candidate is ever used.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Coordinates, error)
}
