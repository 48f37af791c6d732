package validation

import (
	"fmt"
	"strings"

	"github.com/templui/tripjournal/internal/model"
)

// ValidateTripCreate checks a create request before anything touches the
// store and returns the normalized title and destination.
func ValidateTripCreate(in *model.TripInput) (title, destination string, err error) {
	if in.Title != nil {
		title = Normalize(*in.Title)
	}
	if title == "" {
		return "", "", newError("title", "Title is required")
	}

	if in.Destination != nil {
		destination = Normalize(*in.Destination)
	}
	if destination == "" {
		return "", "", newError("destination", "Destination is required")
	}

	err = validateGallery(in.GalleryImages.Value)
	if err != nil {
		return "", "", err
	}

	return title, destination, nil
}

// ValidateTripUpdate checks the fields a partial update supplies. Omitted
// fields are not validated since they keep their stored values.
func ValidateTripUpdate(in *model.TripInput) error {
	if in.Title != nil && Normalize(*in.Title) == "" {
		return newError("title", "Title cannot be empty")
	}

	if in.Destination != nil && Normalize(*in.Destination) == "" {
		return newError("destination", "Destination cannot be empty")
	}

	return validateGallery(in.GalleryImages.Value)
}

// ValidateGalleryImage checks a single gallery descriptor
func ValidateGalleryImage(in model.GalleryImageInput) error {
	if blank(in.URL) || blank(in.Path) || blank(in.Filename) {
		return newError("gallery_image", "URL, path, and filename are required")
	}
	return nil
}

func validateGallery(images []model.GalleryImageInput) error {
	for i, img := range images {
		if ValidateGalleryImage(img) != nil {
			return newError(
				fmt.Sprintf("gallery_images[%d]", i),
				fmt.Sprintf("Gallery image %d: URL, path, and filename are required", i+1),
			)
		}
	}
	return nil
}

// ValidateOrderIndex requires an explicit order_index
func ValidateOrderIndex(in model.GalleryOrderInput) (int, error) {
	if in.OrderIndex == nil {
		return 0, newError("order_index", "Order index is required")
	}
	return *in.OrderIndex, nil
}

// ValidateLocation requires both coordinates of a reverse-geocoding request
func ValidateLocation(in model.LocationInput) (lat, lng float64, err error) {
	if in.Latitude == nil || in.Longitude == nil {
		return 0, 0, newError("coordinates", "Latitude and longitude are required")
	}
	return *in.Latitude, *in.Longitude, nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
