package service

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/templui/tripjournal/internal/db"
	"github.com/templui/tripjournal/internal/model"
	"github.com/templui/tripjournal/internal/repository"
	"github.com/templui/tripjournal/internal/validation"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// TripService owns the trip aggregate: a trip row plus its ordered gallery.
// Creates and updates write both inside one transaction.
type TripService struct {
	tx       db.Transactor
	users    repository.UserRepository
	trips    repository.TripRepository
	gallery  repository.GalleryRepository
	geocoder Geocoder
}

func NewTripService(
	tx db.Transactor,
	users repository.UserRepository,
	trips repository.TripRepository,
	gallery repository.GalleryRepository,
	geocoder Geocoder,
) *TripService {
	return &TripService{
		tx:       tx,
		users:    users,
		trips:    trips,
		gallery:  gallery,
		geocoder: geocoder,
	}
}

// List returns a page of the caller's trips, newest first, each with its gallery
func (s *TripService) List(ctx context.Context, uid string, filter model.TripFilter) ([]*model.TripDetail, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = DefaultPageSize
	}
	if filter.Limit > MaxPageSize {
		filter.Limit = MaxPageSize
	}
	filter.Search = validation.Normalize(filter.Search)
	filter.Country = validation.Normalize(filter.Country)

	trips, err := s.trips.List(ctx, uid, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}

	ids := make([]int64, len(trips))
	for i, t := range trips {
		ids[i] = t.ID
	}

	galleries, err := s.gallery.ByTrips(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load galleries: %w", err)
	}

	details := make([]*model.TripDetail, len(trips))
	for i, t := range trips {
		details[i] = model.NewTripDetail(t, galleries[t.ID])
	}

	return details, nil
}

func (s *TripService) Trip(ctx context.Context, id int64, uid string) (*model.TripDetail, error) {
	trip, err := s.trips.ByID(ctx, id, uid)
	if err != nil {
		return nil, err
	}

	gallery, err := s.gallery.ByTrip(ctx, trip.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load gallery: %w", err)
	}

	return model.NewTripDetail(trip, gallery), nil
}

// Create validates the input, resolves the owner and a missing country, then
// inserts the trip and its gallery atomically
func (s *TripService) Create(ctx context.Context, uid string, in *model.TripInput) (*model.TripDetail, error) {
	title, destination, err := validation.ValidateTripCreate(in)
	if err != nil {
		return nil, err
	}

	user, err := s.users.ByFirebaseUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	lat, lng := in.ResolvedCoordinates()

	country := validation.NormalizeOptional(in.Country)
	if country == nil && lat != nil && lng != nil {
		country = s.geocoder.Country(ctx, *lat, *lng)
	}

	trip := &model.Trip{
		UserID:         user.ID,
		Title:          title,
		Destination:    destination,
		Country:        country,
		Latitude:       lat,
		Longitude:      lng,
		StartDate:      dateOrNil(in.StartDate),
		EndDate:        dateOrNil(in.EndDate),
		Description:    in.Description,
		Notes:          in.Notes,
		Tags:           stringArray(in.Tags),
		Images:         stringArray(in.Images),
		IsPublic:       in.IsPublic != nil && *in.IsPublic,
		CoverImage:     in.CoverImage,
		CoverImagePath: in.CoverImagePath,
	}
	if trip.Tags == nil {
		trip.Tags = pq.StringArray{}
	}
	if trip.Images == nil {
		trip.Images = pq.StringArray{}
	}

	var gallery []*model.GalleryImage
	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := s.trips.WithTx(tx).Create(ctx, trip)
		if err != nil {
			return fmt.Errorf("failed to create trip: %w", err)
		}

		gallery, err = insertGallery(ctx, s.gallery.WithTx(tx), trip.ID, in.GalleryImages.Value)
		return err
	})
	if err != nil {
		return nil, err
	}

	trip.UserName = user.DisplayName
	return model.NewTripDetail(trip, gallery), nil
}

// Update applies a coalesce patch to a trip the caller owns. A gallery_images
// key in the input, even [] or null, replaces the whole gallery; without it
// the stored gallery is returned untouched.
func (s *TripService) Update(ctx context.Context, id int64, uid string, in *model.TripInput) (*model.TripDetail, error) {
	err := validation.ValidateTripUpdate(in)
	if err != nil {
		return nil, err
	}

	lat, lng := in.ResolvedCoordinates()
	update := &model.TripUpdate{
		Title:          validation.NormalizeOptional(in.Title),
		Destination:    validation.NormalizeOptional(in.Destination),
		Country:        validation.NormalizeOptional(in.Country),
		Latitude:       lat,
		Longitude:      lng,
		StartDate:      dateOrNil(in.StartDate),
		EndDate:        dateOrNil(in.EndDate),
		Description:    in.Description,
		Notes:          in.Notes,
		Tags:           stringArray(in.Tags),
		Images:         stringArray(in.Images),
		IsPublic:       in.IsPublic,
		CoverImage:     in.CoverImage,
		CoverImagePath: in.CoverImagePath,
	}

	var trip *model.Trip
	var gallery []*model.GalleryImage
	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		trip, err = s.trips.WithTx(tx).Update(ctx, id, uid, update)
		if err != nil {
			return err
		}

		galleryRepo := s.gallery.WithTx(tx)
		if !in.GalleryImages.Set {
			gallery, err = galleryRepo.ByTrip(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to load gallery: %w", err)
			}
			return nil
		}

		err = galleryRepo.DeleteByTrip(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to clear gallery: %w", err)
		}

		gallery, err = insertGallery(ctx, galleryRepo, id, in.GalleryImages.Value)
		return err
	})
	if err != nil {
		return nil, err
	}

	return model.NewTripDetail(trip, gallery), nil
}

// Delete removes a trip the caller owns. Its gallery rows and comments go
// with it through the foreign keys.
func (s *TripService) Delete(ctx context.Context, id int64, uid string) error {
	return s.trips.Delete(ctx, id, uid)
}

// insertGallery writes images in input order. Each row's order_index is the
// explicit value when given, its zero-based position otherwise.
func insertGallery(ctx context.Context, repo repository.GalleryRepository, tripID int64, images []model.GalleryImageInput) ([]*model.GalleryImage, error) {
	inserted := make([]*model.GalleryImage, 0, len(images))
	for i, in := range images {
		img := in.ToImage(tripID, i)
		err := repo.Insert(ctx, img)
		if err != nil {
			return nil, fmt.Errorf("failed to insert gallery image %d: %w", i, err)
		}
		inserted = append(inserted, img)
	}
	return inserted, nil
}

func dateOrNil(d *model.Date) *model.Date {
	if d == nil || d.IsZero() {
		return nil
	}
	return d
}

func stringArray(values *[]string) pq.StringArray {
	if values == nil {
		return nil
	}
	if *values == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(*values)
}
