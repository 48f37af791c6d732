package service

import (
	"context"

	"github.com/templui/tripjournal/internal/model"
)

// Geocoder resolves coordinates to places. Lookup reports failures, Country
// swallows them and returns nil.
type Geocoder interface {
	Lookup(ctx context.Context, lat, lng float64) (*model.Location, error)
	Country(ctx context.Context, lat, lng float64) *string
}
