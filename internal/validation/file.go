package validation

import (
	"path/filepath"
	"strings"
)

// FileConstraints defines which uploads may be presigned
type FileConstraints struct {
	AllowedMimeTypes  map[string]bool
	AllowedExtensions map[string]bool
}

// ImageConstraints defines validation rules for gallery and cover images
var ImageConstraints = FileConstraints{
	AllowedMimeTypes: map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
		"image/gif":  true,
		"image/heic": true,
	},
	AllowedExtensions: map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
		".gif":  true,
		".heic": true,
	},
}

// ValidateUpload checks the declared name and content type of a direct upload.
// The bytes never pass through this service, so only the declaration is checked.
func ValidateUpload(filename, contentType string, constraints FileConstraints) error {
	if blank(filename) {
		return newError("filename", "Filename is required")
	}

	mimeType := strings.ToLower(strings.TrimSpace(contentType))
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	if !constraints.AllowedMimeTypes[mimeType] {
		return newError("content_type", "Unsupported content type")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !constraints.AllowedExtensions[ext] {
		return newError("filename", "Unsupported file extension")
	}

	return nil
}
