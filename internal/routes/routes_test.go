package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/tripjournal/internal/app"
	"github.com/templui/tripjournal/internal/config"
	"github.com/templui/tripjournal/internal/identity"
	"github.com/templui/tripjournal/internal/model"
	"github.com/templui/tripjournal/internal/ratelimit"
	"github.com/templui/tripjournal/internal/repository/repotest"
	"github.com/templui/tripjournal/internal/service"
)

type nopGeocoder struct{}

func (nopGeocoder) Lookup(ctx context.Context, lat, lng float64) (*model.Location, error) {
	return &model.Location{}, nil
}

func (nopGeocoder) Country(ctx context.Context, lat, lng float64) *string {
	return nil
}

func newTestApp(t *testing.T, limit int) (*app.App, *identity.HMACVerifier) {
	t.Helper()

	store := repotest.NewStore()
	store.AddUser("alice", "Alice")

	verifier := identity.NewHMACVerifier("routes-secret")
	limiter := ratelimit.NewMemoryLimiter(limit, time.Minute)
	t.Cleanup(limiter.Close)

	return &app.App{
		Cfg:             &config.Config{CORSAllowedOrigins: "https://trips.example"},
		Verifier:        verifier,
		Limiter:         limiter,
		TripService:     service.NewTripService(store.Transactor(), store.Users(), store.Trips(), store.Gallery(), nopGeocoder{}),
		GalleryService:  service.NewGalleryService(store.Trips(), store.Gallery(), nil),
		CommentService:  service.NewCommentService(store.Comments(), store.Trips(), store.Users()),
		UserService:     service.NewUserService(store.Users()),
		LocationService: service.NewLocationService(store.Users(), store.Trips(), nopGeocoder{}, 0),
	}, verifier
}

func TestSetupRoutes(t *testing.T) {
	a, verifier := newTestApp(t, 100)
	handler := SetupRoutes(a)

	token, err := verifier.Sign(&model.Identity{UID: "alice"}, time.Hour)
	require.NoError(t, err)

	t.Run("unknown route", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nowhere", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Route not found"}`, rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("public comments", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/comments/trips/1", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("protected without token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/stats", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("protected with token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/trips", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/trips", nil)
		req.Header.Set("Origin", "https://trips.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://trips.example", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestGeocodingRoutesAreRateLimited(t *testing.T) {
	a, verifier := newTestApp(t, 1)
	handler := SetupRoutes(a)

	token, err := verifier.Sign(&model.Identity{UID: "alice"}, time.Hour)
	require.NoError(t, err)

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/trips/update-countries", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}
