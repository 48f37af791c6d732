package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/templui/tripjournal/internal/model"
	"github.com/templui/tripjournal/internal/repository"
	"github.com/templui/tripjournal/internal/storage"
	"github.com/templui/tripjournal/internal/validation"
)

var ErrStorageDisabled = errors.New("object storage is not configured")

// GalleryService edits single gallery images of a trip the caller owns
type GalleryService struct {
	trips   repository.TripRepository
	gallery repository.GalleryRepository
	storage storage.Storage // nil when object storage is not configured
}

func NewGalleryService(trips repository.TripRepository, gallery repository.GalleryRepository, storage storage.Storage) *GalleryService {
	return &GalleryService{
		trips:   trips,
		gallery: gallery,
		storage: storage,
	}
}

// Add appends one image. Without an explicit order_index it sorts first (0).
func (s *GalleryService) Add(ctx context.Context, tripID int64, uid string, in model.GalleryImageInput) (*model.GalleryImage, error) {
	err := validation.ValidateGalleryImage(in)
	if err != nil {
		return nil, err
	}

	err = s.trips.CheckOwner(ctx, tripID, uid)
	if err != nil {
		return nil, err
	}

	img := in.ToImage(tripID, 0)
	err = s.gallery.Insert(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("failed to add gallery image: %w", err)
	}

	return img, nil
}

// Delete removes the image row, then its stored object on a best-effort basis
func (s *GalleryService) Delete(ctx context.Context, tripID, imageID int64, uid string) error {
	img, err := s.gallery.DeleteOwned(ctx, tripID, imageID, uid)
	if err != nil {
		return err
	}

	if s.storage != nil && img.Path != "" {
		err = s.storage.Delete(ctx, img.Path)
		if err != nil {
			slog.Error("failed to delete gallery object", "error", err, "trip_id", tripID, "image_id", imageID, "path", img.Path)
		}
	}

	return nil
}

func (s *GalleryService) Reorder(ctx context.Context, tripID, imageID int64, uid string, in model.GalleryOrderInput) (*model.GalleryImage, error) {
	orderIndex, err := validation.ValidateOrderIndex(in)
	if err != nil {
		return nil, err
	}

	return s.gallery.UpdateOrder(ctx, tripID, imageID, uid, orderIndex)
}

// UploadURL presigns a direct upload for a new image of the trip. The
// returned path and url go into a later gallery add or trip update.
func (s *GalleryService) UploadURL(ctx context.Context, tripID int64, uid string, in model.UploadURLInput) (*model.UploadURL, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}

	err := validation.ValidateUpload(in.Filename, in.ContentType, validation.ImageConstraints)
	if err != nil {
		return nil, err
	}

	err = s.trips.CheckOwner(ctx, tripID, uid)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(in.Filename))
	path := fmt.Sprintf("trips/%d/gallery/%s%s", tripID, uuid.New().String(), ext)

	upload, err := s.storage.PresignUpload(ctx, path, in.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &model.UploadURL{
		UploadURL: upload.URL,
		Path:      path,
		URL:       s.storage.URL(path),
		ExpiresAt: upload.ExpiresAt,
	}, nil
}
