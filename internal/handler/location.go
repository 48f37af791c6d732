package handler

import (
	"net/http"

	"github.com/templui/tripjournal/internal/ctxkeys"
	"github.com/templui/tripjournal/internal/model"
	"github.com/templui/tripjournal/internal/service"
)

type LocationHandler struct {
	locationService *service.LocationService
}

func NewLocationHandler(locationService *service.LocationService) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
	}
}

func (h *LocationHandler) ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	var in model.LocationInput
	if !decodeJSON(w, r, &in) {
		return
	}

	loc, err := h.locationService.ReverseGeocode(r.Context(), in)
	if err != nil {
		respondError(w, r, err, "Location not found", "Failed to get location details")
		return
	}

	writeJSON(w, http.StatusOK, loc)
}

func (h *LocationHandler) UpdateCountries(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	result, err := h.locationService.BackfillCountries(r.Context(), identity.UID)
	if err != nil {
		respondError(w, r, err, "User not found", "Failed to update countries")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
