package repotest

import (
	"context"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/templui/tripjournal/internal/model"
	"github.com/templui/tripjournal/internal/repository"
)

type tripRepository struct {
	s *Store
}

func (s *Store) Trips() repository.TripRepository {
	return &tripRepository{s}
}

func (r *tripRepository) WithTx(tx *sqlx.Tx) repository.TripRepository {
	return r
}

func (r *tripRepository) withUserName(t *model.Trip) *model.Trip {
	c := *t
	if u, ok := r.s.users[t.UserID]; ok {
		c.UserName = u.DisplayName
	}
	return &c
}

func containsFold(s *string, sub string) bool {
	return s != nil && strings.Contains(strings.ToLower(*s), strings.ToLower(sub))
}

func (r *tripRepository) List(ctx context.Context, uid string, filter model.TripFilter) ([]*model.Trip, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var trips []*model.Trip
	for _, t := range r.s.trips {
		if !r.s.owns(t, uid) {
			continue
		}
		if filter.Search != "" && !containsFold(&t.Title, filter.Search) && !containsFold(&t.Destination, filter.Search) {
			continue
		}
		if filter.Country != "" && !containsFold(t.Country, filter.Country) {
			continue
		}
		trips = append(trips, r.withUserName(t))
	}

	slices.SortFunc(trips, func(a, b *model.Trip) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(b.ID - a.ID)
	})

	start := min(filter.Offset(), len(trips))
	end := min(start+filter.Limit, len(trips))
	return trips[start:end], nil
}

func (r *tripRepository) ByID(ctx context.Context, id int64, uid string) (*model.Trip, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.trips[id]
	if !ok || !r.s.owns(t, uid) {
		return nil, repository.ErrTripNotFound
	}
	return r.withUserName(t), nil
}

func (r *tripRepository) Create(ctx context.Context, trip *model.Trip) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.fail("trips.Create"); err != nil {
		return err
	}

	now := r.s.tick()
	trip.ID = r.s.id()
	trip.CreatedAt = now
	trip.UpdatedAt = now

	c := *trip
	r.s.trips[c.ID] = &c
	return nil
}

func (r *tripRepository) Update(ctx context.Context, id int64, uid string, u *model.TripUpdate) (*model.Trip, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.fail("trips.Update"); err != nil {
		return nil, err
	}

	stored, ok := r.s.trips[id]
	if !ok || !r.s.owns(stored, uid) {
		return nil, repository.ErrTripNotFound
	}

	t := *stored
	coalesce(&t.Title, u.Title)
	coalesce(&t.Destination, u.Destination)
	coalescePtr(&t.Country, u.Country)
	coalescePtr(&t.Latitude, u.Latitude)
	coalescePtr(&t.Longitude, u.Longitude)
	coalescePtr(&t.StartDate, u.StartDate)
	coalescePtr(&t.EndDate, u.EndDate)
	coalescePtr(&t.Description, u.Description)
	coalescePtr(&t.Notes, u.Notes)
	coalescePtr(&t.CoverImage, u.CoverImage)
	coalescePtr(&t.CoverImagePath, u.CoverImagePath)
	coalesce(&t.IsPublic, u.IsPublic)
	if u.Tags != nil {
		t.Tags = u.Tags
	}
	if u.Images != nil {
		t.Images = u.Images
	}
	t.UpdatedAt = r.s.tick()

	r.s.trips[id] = &t
	c := t
	return &c, nil
}

func coalesce[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func coalescePtr[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}

// Delete also removes the trip's gallery rows and comments, as the foreign
// keys do in PostgreSQL
func (r *tripRepository) Delete(ctx context.Context, id int64, uid string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.trips[id]
	if !ok || !r.s.owns(t, uid) {
		return repository.ErrTripNotFound
	}

	delete(r.s.trips, id)
	for gid, g := range r.s.gallery {
		if g.TripID == id {
			delete(r.s.gallery, gid)
		}
	}
	for cid, c := range r.s.comments {
		if c.TripID == id {
			delete(r.s.comments, cid)
		}
	}
	return nil
}

func (r *tripRepository) CheckOwner(ctx context.Context, id int64, uid string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.trips[id]
	if !ok || !r.s.owns(t, uid) {
		return repository.ErrTripNotFound
	}
	return nil
}

func (r *tripRepository) Exists(ctx context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	_, ok := r.s.trips[id]
	return ok, nil
}

func (r *tripRepository) MissingCountry(ctx context.Context, uid string) ([]*model.Trip, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var trips []*model.Trip
	for _, t := range r.s.trips {
		if r.s.owns(t, uid) && t.Country == nil && t.Latitude != nil && t.Longitude != nil {
			c := *t
			trips = append(trips, &c)
		}
	}
	slices.SortFunc(trips, func(a, b *model.Trip) int { return int(a.ID - b.ID) })
	return trips, nil
}

func (r *tripRepository) SetCountry(ctx context.Context, id int64, country string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.fail("trips.SetCountry"); err != nil {
		return err
	}

	t, ok := r.s.trips[id]
	if !ok {
		return repository.ErrTripNotFound
	}
	t.Country = &country
	t.UpdatedAt = r.s.tick()
	return nil
}
