package handler

import (
	"net/http"
	"strconv"

	"github.com/templui/tripjournal/internal/ctxkeys"
	"github.com/templui/tripjournal/internal/model"
	"github.com/templui/tripjournal/internal/service"
)

type TripHandler struct {
	tripService *service.TripService
}

func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{
		tripService: tripService,
	}
}

func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())
	query := r.URL.Query()

	// Non-numeric values fall back to the defaults
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	trips, err := h.tripService.List(r.Context(), identity.UID, model.TripFilter{
		Page:    page,
		Limit:   limit,
		Search:  query.Get("search"),
		Country: query.Get("country"),
	})
	if err != nil {
		respondError(w, r, err, "Trip not found", "Failed to fetch trips")
		return
	}

	writeJSON(w, http.StatusOK, trips)
}

func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	trip, err := h.tripService.Trip(r.Context(), id, identity.UID)
	if err != nil {
		respondError(w, r, err, "Trip not found", "Failed to fetch trip")
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	var in model.TripInput
	if !decodeJSON(w, r, &in) {
		return
	}

	trip, err := h.tripService.Create(r.Context(), identity.UID, &in)
	if err != nil {
		respondError(w, r, err, "User not found", "Failed to create trip")
		return
	}

	writeJSON(w, http.StatusCreated, trip)
}

func (h *TripHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var in model.TripInput
	if !decodeJSON(w, r, &in) {
		return
	}

	trip, err := h.tripService.Update(r.Context(), id, identity.UID, &in)
	if err != nil {
		respondError(w, r, err, "Trip not found or unauthorized", "Failed to update trip")
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

func (h *TripHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	err := h.tripService.Delete(r.Context(), id, identity.UID)
	if err != nil {
		respondError(w, r, err, "Trip not found or unauthorized", "Failed to delete trip")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Trip deleted successfully"})
}
