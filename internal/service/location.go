package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/templui/tripjournal/internal/model"
	"github.com/templui/tripjournal/internal/repository"
	"github.com/templui/tripjournal/internal/validation"
)

const DefaultBackfillDelay = 100 * time.Millisecond

type LocationService struct {
	users    repository.UserRepository
	trips    repository.TripRepository
	geocoder Geocoder
	delay    time.Duration
}

// NewLocationService builds the service. delay is the pause between two
// upstream lookups during a backfill.
func NewLocationService(users repository.UserRepository, trips repository.TripRepository, geocoder Geocoder, delay time.Duration) *LocationService {
	return &LocationService{
		users:    users,
		trips:    trips,
		geocoder: geocoder,
		delay:    delay,
	}
}

// ReverseGeocode passes a lookup through to the geocoder. Upstream failures
// are returned to the caller.
func (s *LocationService) ReverseGeocode(ctx context.Context, in model.LocationInput) (*model.Location, error) {
	lat, lng, err := validation.ValidateLocation(in)
	if err != nil {
		return nil, err
	}

	loc, err := s.geocoder.Lookup(ctx, lat, lng)
	if err != nil {
		return nil, fmt.Errorf("failed to reverse geocode: %w", err)
	}

	return loc, nil
}

// BackfillCountries looks up a country for each of the caller's trips that
// has coordinates but no country. A failing trip is logged and skipped. When
// ctx ends mid-run the trips updated so far are still reported.
func (s *LocationService) BackfillCountries(ctx context.Context, uid string) (*model.BackfillResult, error) {
	_, err := s.users.ByFirebaseUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	trips, err := s.trips.MissingCountry(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to load trips without country: %w", err)
	}

	updated := []model.CountryUpdate{}
	for i, trip := range trips {
		if i > 0 {
			err = sleep(ctx, s.delay)
			if err != nil {
				slog.Warn("country backfill interrupted", "error", err, "uid", uid, "candidates", len(trips), "updated", len(updated))
				break
			}
		}

		coords := trip.Coords()
		if coords == nil {
			continue
		}

		loc, err := s.geocoder.Lookup(ctx, coords.Lat, coords.Lng)
		if err != nil {
			slog.Warn("country lookup failed", "error", err, "trip_id", trip.ID)
			continue
		}
		if loc.Country == nil {
			continue
		}

		err = s.trips.SetCountry(ctx, trip.ID, *loc.Country)
		if err != nil {
			slog.Error("failed to set trip country", "error", err, "trip_id", trip.ID)
			continue
		}

		updated = append(updated, model.CountryUpdate{ID: trip.ID, Country: *loc.Country})
	}

	slog.Info("country backfill finished", "uid", uid, "candidates", len(trips), "updated", len(updated))

	return &model.BackfillResult{
		Message:      fmt.Sprintf("Updated %d trips with country data", len(updated)),
		UpdatedTrips: updated,
	}, nil
}

// sleep waits for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
