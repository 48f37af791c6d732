package repotest

import (
	"cmp"
	"context"
	"slices"

	"github.com/jmoiron/sqlx"
	"github.com/templui/tripjournal/internal/model"
	"github.com/templui/tripjournal/internal/repository"
)

type galleryRepository struct {
	s *Store
}

func (s *Store) Gallery() repository.GalleryRepository {
	return &galleryRepository{s}
}

func (r *galleryRepository) WithTx(tx *sqlx.Tx) repository.GalleryRepository {
	return r
}

func sortGallery(images []*model.GalleryImage) {
	slices.SortFunc(images, func(a, b *model.GalleryImage) int {
		return cmp.Or(
			cmp.Compare(a.OrderIndex, b.OrderIndex),
			a.UploadedAt.Compare(b.UploadedAt),
			cmp.Compare(a.ID, b.ID),
		)
	})
}

func (r *galleryRepository) ByTrip(ctx context.Context, tripID int64) ([]*model.GalleryImage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	images := []*model.GalleryImage{}
	for _, g := range r.s.gallery {
		if g.TripID == tripID {
			c := *g
			images = append(images, &c)
		}
	}
	sortGallery(images)
	return images, nil
}

func (r *galleryRepository) ByTrips(ctx context.Context, tripIDs []int64) (map[int64][]*model.GalleryImage, error) {
	out := make(map[int64][]*model.GalleryImage, len(tripIDs))
	for _, id := range tripIDs {
		images, _ := r.ByTrip(ctx, id)
		if len(images) > 0 {
			out[id] = images
		}
	}
	return out, nil
}

func (r *galleryRepository) Insert(ctx context.Context, image *model.GalleryImage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.fail("gallery.Insert"); err != nil {
		return err
	}

	image.ID = r.s.id()
	image.UploadedAt = r.s.tick()
	c := *image
	r.s.gallery[c.ID] = &c
	return nil
}

func (r *galleryRepository) DeleteByTrip(ctx context.Context, tripID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.fail("gallery.DeleteByTrip"); err != nil {
		return err
	}

	for id, g := range r.s.gallery {
		if g.TripID == tripID {
			delete(r.s.gallery, id)
		}
	}
	return nil
}

func (r *galleryRepository) owned(tripID, imageID int64, uid string) (*model.GalleryImage, bool) {
	g, ok := r.s.gallery[imageID]
	if !ok || g.TripID != tripID {
		return nil, false
	}
	t, ok := r.s.trips[tripID]
	if !ok || !r.s.owns(t, uid) {
		return nil, false
	}
	return g, true
}

func (r *galleryRepository) DeleteOwned(ctx context.Context, tripID, imageID int64, uid string) (*model.GalleryImage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	g, ok := r.owned(tripID, imageID, uid)
	if !ok {
		return nil, repository.ErrGalleryImageNotFound
	}
	delete(r.s.gallery, imageID)
	c := *g
	return &c, nil
}

func (r *galleryRepository) UpdateOrder(ctx context.Context, tripID, imageID int64, uid string, orderIndex int) (*model.GalleryImage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	g, ok := r.owned(tripID, imageID, uid)
	if !ok {
		return nil, repository.ErrGalleryImageNotFound
	}
	g.OrderIndex = orderIndex
	c := *g
	return &c, nil
}
