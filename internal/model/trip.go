package model

import (
	"time"

	"github.com/lib/pq"
)

type Trip struct {
	ID             int64          `db:"id" json:"id"`
	UserID         int64          `db:"user_id" json:"user_id"`
	Title          string         `db:"title" json:"title"`
	Destination    string         `db:"destination" json:"destination"`
	Country        *string        `db:"country" json:"country"`
	Latitude       *float64       `db:"latitude" json:"latitude"`
	Longitude      *float64       `db:"longitude" json:"longitude"`
	StartDate      *Date          `db:"start_date" json:"start_date"`
	EndDate        *Date          `db:"end_date" json:"end_date"`
	Description    *string        `db:"description" json:"description"`
	Notes          *string        `db:"notes" json:"notes"`
	Tags           pq.StringArray `db:"tags" json:"tags"`
	Images         pq.StringArray `db:"images" json:"images"`
	IsPublic       bool           `db:"is_public" json:"is_public"`
	LikesCount     int            `db:"likes_count" json:"likes_count"`
	CoverImage     *string        `db:"cover_image" json:"cover_image"`
	CoverImagePath *string        `db:"cover_image_path" json:"cover_image_path"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`

	// Joined from users on read queries only
	UserName *string `db:"user_name" json:"user_name,omitempty"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Coords returns the coordinate view, or nil unless both latitude and longitude are set.
func (t *Trip) Coords() *Coordinates {
	if t.Latitude == nil || t.Longitude == nil {
		return nil
	}
	return &Coordinates{Lat: *t.Latitude, Lng: *t.Longitude}
}

// TripDetail is the API shape of a trip: the row plus its derived
// coordinates and ordered gallery.
type TripDetail struct {
	*Trip
	Coordinates   *Coordinates    `json:"coordinates"`
	GalleryImages []*GalleryImage `json:"gallery_images"`
}

func NewTripDetail(trip *Trip, gallery []*GalleryImage) *TripDetail {
	if trip.Tags == nil {
		trip.Tags = pq.StringArray{}
	}
	if trip.Images == nil {
		trip.Images = pq.StringArray{}
	}
	if gallery == nil {
		gallery = []*GalleryImage{}
	}
	return &TripDetail{
		Trip:          trip,
		Coordinates:   trip.Coords(),
		GalleryImages: gallery,
	}
}

type CoordinatesInput struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// TripInput is the request body for both create and update. On update every
// nil field keeps its stored value; GalleryImages replaces the whole gallery
// whenever the key is present.
type TripInput struct {
	Title          *string                       `json:"title"`
	Destination    *string                       `json:"destination"`
	Country        *string                       `json:"country"`
	Coordinates    *CoordinatesInput             `json:"coordinates"`
	Latitude       *float64                      `json:"latitude"`
	Longitude      *float64                      `json:"longitude"`
	StartDate      *Date                         `json:"start_date"`
	EndDate        *Date                         `json:"end_date"`
	Description    *string                       `json:"description"`
	Notes          *string                       `json:"notes"`
	Tags           *[]string                     `json:"tags"`
	Images         *[]string                     `json:"images"`
	IsPublic       *bool                         `json:"is_public"`
	CoverImage     *string                       `json:"cover_image"`
	CoverImagePath *string                       `json:"cover_image_path"`
	GalleryImages  Optional[[]GalleryImageInput] `json:"gallery_images"`
}

// ResolvedCoordinates picks each component from the coordinates object when
// present there, otherwise from the scalar latitude/longitude fields.
func (in *TripInput) ResolvedCoordinates() (lat, lng *float64) {
	lat, lng = in.Latitude, in.Longitude
	if in.Coordinates != nil {
		if in.Coordinates.Lat != nil {
			lat = in.Coordinates.Lat
		}
		if in.Coordinates.Lng != nil {
			lng = in.Coordinates.Lng
		}
	}
	return lat, lng
}

// TripUpdate is the normalized coalesce patch written by the repository.
type TripUpdate struct {
	Title          *string
	Destination    *string
	Country        *string
	Latitude       *float64
	Longitude      *float64
	StartDate      *Date
	EndDate        *Date
	Description    *string
	Notes          *string
	Tags           pq.StringArray
	Images         pq.StringArray
	IsPublic       *bool
	CoverImage     *string
	CoverImagePath *string
}

type TripFilter struct {
	Page    int
	Limit   int
	Search  string
	Country string
}

func (f TripFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}
