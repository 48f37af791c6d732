package handler

import (
	"errors"
	"net/http"

	"github.com/templui/tripjournal/internal/ctxkeys"
	"github.com/templui/tripjournal/internal/model"
	"github.com/templui/tripjournal/internal/service"
)

type GalleryHandler struct {
	galleryService *service.GalleryService
}

func NewGalleryHandler(galleryService *service.GalleryService) *GalleryHandler {
	return &GalleryHandler{
		galleryService: galleryService,
	}
}

func (h *GalleryHandler) Add(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	tripID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var in model.GalleryImageInput
	if !decodeJSON(w, r, &in) {
		return
	}

	img, err := h.galleryService.Add(r.Context(), tripID, identity.UID, in)
	if err != nil {
		respondError(w, r, err, "Trip not found or unauthorized", "Failed to add gallery image")
		return
	}

	writeJSON(w, http.StatusCreated, img)
}

func (h *GalleryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	tripID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	imageID, ok := pathID(w, r, "imageId")
	if !ok {
		return
	}

	err := h.galleryService.Delete(r.Context(), tripID, imageID, identity.UID)
	if err != nil {
		respondError(w, r, err, "Gallery image not found or unauthorized", "Failed to delete gallery image")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Gallery image deleted successfully"})
}

func (h *GalleryHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	tripID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	imageID, ok := pathID(w, r, "imageId")
	if !ok {
		return
	}

	var in model.GalleryOrderInput
	if !decodeJSON(w, r, &in) {
		return
	}

	img, err := h.galleryService.Reorder(r.Context(), tripID, imageID, identity.UID, in)
	if err != nil {
		respondError(w, r, err, "Gallery image not found or unauthorized", "Failed to update gallery image order")
		return
	}

	writeJSON(w, http.StatusOK, img)
}

func (h *GalleryHandler) UploadURL(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	tripID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var in model.UploadURLInput
	if !decodeJSON(w, r, &in) {
		return
	}

	upload, err := h.galleryService.UploadURL(r.Context(), tripID, identity.UID, in)
	if errors.Is(err, service.ErrStorageDisabled) {
		writeError(w, http.StatusNotImplemented, "Image uploads are not configured")
		return
	}
	if err != nil {
		respondError(w, r, err, "Trip not found or unauthorized", "Failed to create upload URL")
		return
	}

	writeJSON(w, http.StatusOK, upload)
}
