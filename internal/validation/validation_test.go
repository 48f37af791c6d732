package validation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/tripjournal/internal/model"
)

func tripInput(t *testing.T, body string) *model.TripInput {
	t.Helper()
	in := &model.TripInput{}
	require.NoError(t, json.Unmarshal([]byte(body), in))
	return in
}

func requireMessage(t *testing.T, err error, message string) {
	t.Helper()
	var verr *Error
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	assert.Equal(t, message, verr.Message)
}

func TestValidateTripCreate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing title", `{"destination": "Kyoto"}`, "Title is required"},
		{"blank title", `{"title": " \t", "destination": "Kyoto"}`, "Title is required"},
		{"missing destination", `{"title": "Kyoto"}`, "Destination is required"},
		{
			"second gallery image incomplete",
			`{"title": "a", "destination": "b", "gallery_images": [
				{"url": "u", "path": "p", "filename": "f"},
				{"url": "u", "path": "", "filename": "f"}
			]}`,
			"Gallery image 2: URL, path, and filename are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ValidateTripCreate(tripInput(t, tt.body))
			requireMessage(t, err, tt.message)
		})
	}

	title, destination, err := ValidateTripCreate(tripInput(t, `{"title": "  Kyoto  ", "destination": "Kyoto, Japan"}`))
	require.NoError(t, err)
	assert.Equal(t, "Kyoto", title)
	assert.Equal(t, "Kyoto, Japan", destination)
}

func TestValidateTripUpdate(t *testing.T) {
	require.NoError(t, ValidateTripUpdate(tripInput(t, `{}`)))
	require.NoError(t, ValidateTripUpdate(tripInput(t, `{"notes": ""}`)))

	requireMessage(t, ValidateTripUpdate(tripInput(t, `{"title": ""}`)), "Title cannot be empty")
	requireMessage(t, ValidateTripUpdate(tripInput(t, `{"destination": "  "}`)), "Destination cannot be empty")
	requireMessage(t,
		ValidateTripUpdate(tripInput(t, `{"gallery_images": [{"url": "u"}]}`)),
		"Gallery image 1: URL, path, and filename are required",
	)
}

func TestValidateOrderIndex(t *testing.T) {
	_, err := ValidateOrderIndex(model.GalleryOrderInput{})
	requireMessage(t, err, "Order index is required")

	zero := 0
	idx, err := ValidateOrderIndex(model.GalleryOrderInput{OrderIndex: &zero})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestValidateLocation(t *testing.T) {
	lat, zero := 35.0, 0.0

	_, _, err := ValidateLocation(model.LocationInput{Latitude: &lat})
	requireMessage(t, err, "Latitude and longitude are required")

	gotLat, gotLng, err := ValidateLocation(model.LocationInput{Latitude: &lat, Longitude: &zero})
	require.NoError(t, err)
	assert.Equal(t, 35.0, gotLat)
	assert.Equal(t, 0.0, gotLng)
}

func TestValidateComment(t *testing.T) {
	_, err := ValidateComment(" \n ")
	requireMessage(t, err, "Comment content is required")

	content, err := ValidateComment("  Great trip!  ")
	require.NoError(t, err)
	assert.Equal(t, "Great trip!", content)
}

func TestValidateDisplayName(t *testing.T) {
	require.NoError(t, ValidateDisplayName(nil))

	ok := strings.Repeat("é", 100)
	require.NoError(t, ValidateDisplayName(&ok))

	long := strings.Repeat("a", 101)
	requireMessage(t, ValidateDisplayName(&long), "Display name is too long (max 100 characters)")
}

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		message     string
	}{
		{"ok", "beach.JPG", "image/jpeg", ""},
		{"content type params", "beach.png", "image/png; charset=binary", ""},
		{"no filename", " ", "image/jpeg", "Filename is required"},
		{"pdf", "ticket.pdf", "application/pdf", "Unsupported content type"},
		{"mismatched extension", "beach.exe", "image/png", "Unsupported file extension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.filename, tt.contentType, ImageConstraints)
			if tt.message == "" {
				require.NoError(t, err)
				return
			}
			requireMessage(t, err, tt.message)
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "Zürich", Normalize("  Zürich "))
	assert.Nil(t, NormalizeOptional(nil))

	blank := "   "
	assert.Nil(t, NormalizeOptional(&blank))

	country := " Japan "
	got := NormalizeOptional(&country)
	require.NotNil(t, got)
	assert.Equal(t, "Japan", *got)
}
