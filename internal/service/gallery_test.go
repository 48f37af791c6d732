package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/tripjournal/internal/model"
	"github.com/templui/tripjournal/internal/repository"
	"github.com/templui/tripjournal/internal/repository/repotest"
	"github.com/templui/tripjournal/internal/storage"
	"github.com/templui/tripjournal/internal/validation"
)

type fakeStorage struct {
	deleted   []string
	deleteErr error
}

func (s *fakeStorage) PresignUpload(ctx context.Context, path, contentType string) (*storage.PresignedUpload, error) {
	return &storage.PresignedUpload{URL: "https://s3.test/" + path + "?sig", ExpiresAt: time.Now().Add(time.Minute)}, nil
}

func (s *fakeStorage) Delete(ctx context.Context, path string) error {
	s.deleted = append(s.deleted, path)
	return s.deleteErr
}

func (s *fakeStorage) URL(path string) string {
	return "https://cdn.test/" + path
}

func TestGalleryAdd(t *testing.T) {
	store := repotest.NewStore()
	store.AddUser("alice", "")
	store.AddUser("bob", "")
	trip := seedTrip(t, newTripService(store, &fakeGeocoder{}), "alice")
	svc := NewGalleryService(store.Trips(), store.Gallery(), nil)
	ctx := context.Background()

	img, err := svc.Add(ctx, trip.ID, "alice", model.GalleryImageInput{URL: "u", Path: "p", Filename: "f.jpg"})
	require.NoError(t, err)
	assert.Equal(t, 0, img.OrderIndex)
	assert.Equal(t, "f.jpg", img.OriginalName)

	_, err = svc.Add(ctx, trip.ID, "bob", model.GalleryImageInput{URL: "u", Path: "p", Filename: "f.jpg"})
	assert.ErrorIs(t, err, repository.ErrTripNotFound)

	_, err = svc.Add(ctx, trip.ID, "alice", model.GalleryImageInput{URL: "u", Filename: "f.jpg"})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "URL, path, and filename are required", verr.Message)
}

func TestGalleryDelete(t *testing.T) {
	store := repotest.NewStore()
	store.AddUser("alice", "")
	store.AddUser("bob", "")
	trip := seedTrip(t, newTripService(store, &fakeGeocoder{}), "alice")
	objects := &fakeStorage{deleteErr: errors.New("bucket gone")}
	svc := NewGalleryService(store.Trips(), store.Gallery(), objects)
	ctx := context.Background()

	imageID := trip.GalleryImages[0].ID

	err := svc.Delete(ctx, trip.ID, imageID, "bob")
	assert.ErrorIs(t, err, repository.ErrGalleryImageNotFound)
	assert.Empty(t, objects.deleted)

	err = svc.Delete(ctx, trip.ID, imageID, "alice")
	require.NoError(t, err, "object deletion is best effort")
	assert.Equal(t, []string{"p1"}, objects.deleted)
	assert.NotContains(t, store.GalleryIDs(trip.ID), imageID)
}

func TestGalleryReorder(t *testing.T) {
	store := repotest.NewStore()
	store.AddUser("alice", "")
	trip := seedTrip(t, newTripService(store, &fakeGeocoder{}), "alice")
	svc := NewGalleryService(store.Trips(), store.Gallery(), nil)
	ctx := context.Background()

	_, err := svc.Reorder(ctx, trip.ID, trip.GalleryImages[0].ID, "alice", model.GalleryOrderInput{})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Order index is required", verr.Message)

	img, err := svc.Reorder(ctx, trip.ID, trip.GalleryImages[0].ID, "alice", model.GalleryOrderInput{OrderIndex: ptr(7)})
	require.NoError(t, err)
	assert.Equal(t, 7, img.OrderIndex)
	assert.Equal(t, trip.GalleryImages[1].ID, store.GalleryIDs(trip.ID)[0])

	_, err = svc.Reorder(ctx, trip.ID+100, trip.GalleryImages[0].ID, "alice", model.GalleryOrderInput{OrderIndex: ptr(1)})
	assert.ErrorIs(t, err, repository.ErrGalleryImageNotFound)
}

func TestGalleryUploadURL(t *testing.T) {
	store := repotest.NewStore()
	store.AddUser("alice", "")
	store.AddUser("bob", "")
	trip := seedTrip(t, newTripService(store, &fakeGeocoder{}), "alice")
	ctx := context.Background()
	in := model.UploadURLInput{Filename: "Beach.JPG", ContentType: "image/jpeg"}

	_, err := NewGalleryService(store.Trips(), store.Gallery(), nil).UploadURL(ctx, trip.ID, "alice", in)
	assert.ErrorIs(t, err, ErrStorageDisabled)

	svc := NewGalleryService(store.Trips(), store.Gallery(), &fakeStorage{})

	upload, err := svc.UploadURL(ctx, trip.ID, "alice", in)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(upload.Path, "trips/"), upload.Path)
	assert.True(t, strings.HasSuffix(upload.Path, ".jpg"), upload.Path)
	assert.Equal(t, "https://cdn.test/"+upload.Path, upload.URL)
	assert.Contains(t, upload.UploadURL, upload.Path)

	_, err = svc.UploadURL(ctx, trip.ID, "bob", in)
	assert.ErrorIs(t, err, repository.ErrTripNotFound)

	_, err = svc.UploadURL(ctx, trip.ID, "alice", model.UploadURLInput{Filename: "notes.pdf", ContentType: "application/pdf"})
	var verr *validation.Error
	assert.ErrorAs(t, err, &verr)
}
