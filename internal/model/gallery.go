package model

import (
	"time"
)

type GalleryImage struct {
	ID           int64     `db:"id" json:"id"`
	TripID       int64     `db:"trip_id" json:"trip_id"`
	URL          string    `db:"url" json:"url"`
	Path         string    `db:"path" json:"path"`
	Filename     string    `db:"filename" json:"filename"`
	OriginalName string    `db:"original_name" json:"original_name"`
	OrderIndex   int       `db:"order_index" json:"order_index"`
	UploadedAt   time.Time `db:"uploaded_at" json:"uploaded_at"`
}

type GalleryImageInput struct {
	URL          string `json:"url"`
	Path         string `json:"path"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	OrderIndex   *int   `json:"order_index"`
}

// ToImage builds the row for position i of a submitted gallery.
// An explicit order_index wins over the position.
func (in GalleryImageInput) ToImage(tripID int64, position int) *GalleryImage {
	originalName := in.OriginalName
	if originalName == "" {
		originalName = in.Filename
	}

	orderIndex := position
	if in.OrderIndex != nil {
		orderIndex = *in.OrderIndex
	}

	return &GalleryImage{
		TripID:       tripID,
		URL:          in.URL,
		Path:         in.Path,
		Filename:     in.Filename,
		OriginalName: originalName,
		OrderIndex:   orderIndex,
	}
}

type GalleryOrderInput struct {
	OrderIndex *int `json:"order_index"`
}

type UploadURLInput struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// UploadURL is a presigned direct-to-storage upload target for a gallery image.
type UploadURL struct {
	UploadURL string    `json:"upload_url"`
	Path      string    `json:"path"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
