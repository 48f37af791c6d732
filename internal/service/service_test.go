package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/templui/tripjournal/internal/model"
	"github.com/templui/tripjournal/internal/repository/repotest"
)

type fakeGeocoder struct {
	location *model.Location
	err      error
	calls    int
}

func (g *fakeGeocoder) Lookup(ctx context.Context, lat, lng float64) (*model.Location, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.location, nil
}

func (g *fakeGeocoder) Country(ctx context.Context, lat, lng float64) *string {
	loc, err := g.Lookup(ctx, lat, lng)
	if err != nil {
		return nil
	}
	return loc.Country
}

func country(name string) *model.Location {
	return &model.Location{Country: &name}
}

func tripInput(t *testing.T, body string) *model.TripInput {
	t.Helper()
	in := &model.TripInput{}
	require.NoError(t, json.Unmarshal([]byte(body), in))
	return in
}

func newTripService(store *repotest.Store, geo Geocoder) *TripService {
	return NewTripService(store.Transactor(), store.Users(), store.Trips(), store.Gallery(), geo)
}
