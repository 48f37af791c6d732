package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/tripjournal/internal/model"
)

func TestReverseGeocode(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/trips/reverse-geocode", "alice", `{"latitude": 35.0116}`)
	assertError(t, rec, http.StatusBadRequest, "Latitude and longitude are required")

	rec = h.do(t, http.MethodPost, "/trips/reverse-geocode", "alice", `{"latitude": 35.0116, "longitude": 135.7681}`)
	require.Equal(t, http.StatusOK, rec.Code)
	loc := decode[model.Location](t, rec)
	require.NotNil(t, loc.Country)
	assert.Equal(t, "Japan", *loc.Country)
	assert.Nil(t, loc.City)

	h.geocoder.err = errors.New("upstream 503")
	rec = h.do(t, http.MethodPost, "/trips/reverse-geocode", "alice", `{"latitude": 35.0116, "longitude": 135.7681}`)
	assertError(t, rec, http.StatusInternalServerError, "Failed to get location details")
}

func TestUpdateCountries(t *testing.T) {
	h := newHarness(t)
	h.store.AddUser("alice", "Alice")

	rec := h.do(t, http.MethodPost, "/trips/update-countries", "bob", "")
	assertError(t, rec, http.StatusNotFound, "User not found")

	// Created while the geocoder is down, so the country stays empty
	h.geocoder.err = errors.New("upstream down")
	tripID := createTrip(t, h, "alice")
	require.Nil(t, h.store.Trip(tripID).Country)
	h.geocoder.err = nil

	rec = h.do(t, http.MethodPost, "/trips/update-countries", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decode[model.BackfillResult](t, rec)
	assert.Equal(t, "Updated 1 trips with country data", result.Message)
	assert.Equal(t, []model.CountryUpdate{{ID: tripID, Country: "Japan"}}, result.UpdatedTrips)

	rec = h.do(t, http.MethodPost, "/trips/update-countries", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	result = decode[model.BackfillResult](t, rec)
	assert.Equal(t, "Updated 0 trips with country data", result.Message)
	assert.Empty(t, result.UpdatedTrips)
}
