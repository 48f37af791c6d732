package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/tripjournal/internal/model"
)

func createTrip(t *testing.T, h *harness, uid string) int64 {
	t.Helper()
	rec := h.do(t, http.MethodPost, "/trips", uid, kyoto)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[model.TripDetail](t, rec).ID
}

func TestGalleryEndpoints(t *testing.T) {
	h := newHarness(t)
	h.store.AddUser("alice", "Alice")
	h.store.AddUser("bob", "Bob")
	tripID := createTrip(t, h, "alice")
	base := fmt.Sprintf("/trips/%d/gallery", tripID)

	rec := h.do(t, http.MethodPost, base, "alice", `{"url": "https://cdn.test/c.jpg", "path": "trips/c.jpg", "filename": "c.jpg"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	img := decode[model.GalleryImage](t, rec)
	assert.Equal(t, 0, img.OrderIndex)
	assert.Equal(t, tripID, img.TripID)

	rec = h.do(t, http.MethodPost, base, "alice", `{"url": "https://cdn.test/c.jpg", "filename": "c.jpg"}`)
	assertError(t, rec, http.StatusBadRequest, "URL, path, and filename are required")

	rec = h.do(t, http.MethodPost, base, "bob", `{"url": "u", "path": "p", "filename": "f"}`)
	assertError(t, rec, http.StatusNotFound, "Trip not found or unauthorized")

	imagePath := fmt.Sprintf("%s/%d", base, img.ID)

	rec = h.do(t, http.MethodPut, imagePath+"/order", "alice", `{}`)
	assertError(t, rec, http.StatusBadRequest, "Order index is required")

	rec = h.do(t, http.MethodPut, imagePath+"/order", "bob", `{"order_index": 5}`)
	assertError(t, rec, http.StatusNotFound, "Gallery image not found or unauthorized")

	rec = h.do(t, http.MethodPut, imagePath+"/order", "alice", `{"order_index": 5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, decode[model.GalleryImage](t, rec).OrderIndex)

	rec = h.do(t, http.MethodDelete, imagePath, "bob", "")
	assertError(t, rec, http.StatusNotFound, "Gallery image not found or unauthorized")

	rec = h.do(t, http.MethodDelete, imagePath, "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Gallery image deleted successfully", decode[messageResponse](t, rec).Message)
	assert.NotContains(t, h.store.GalleryIDs(tripID), img.ID)
}

func TestGalleryUploadURLWithoutStorage(t *testing.T) {
	h := newHarness(t)
	h.store.AddUser("alice", "Alice")
	tripID := createTrip(t, h, "alice")

	rec := h.do(t, http.MethodPost, fmt.Sprintf("/trips/%d/gallery/upload-url", tripID), "alice",
		`{"filename": "beach.jpg", "content_type": "image/jpeg"}`)
	assertError(t, rec, http.StatusNotImplemented, "Image uploads are not configured")
}
