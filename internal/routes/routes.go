package routes

import (
	"net/http"

	"github.com/templui/tripjournal/internal/app"
	"github.com/templui/tripjournal/internal/handler"
	"github.com/templui/tripjournal/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	trip := handler.NewTripHandler(app.TripService)
	gallery := handler.NewGalleryHandler(app.GalleryService)
	location := handler.NewLocationHandler(app.LocationService)
	comment := handler.NewCommentHandler(app.CommentService)
	user := handler.NewUserHandler(app.UserService)
	auth := handler.NewAuthHandler()
	health := handler.NewHealthHandler(app.DB)

	requireAuth := middleware.RequireAuth(app.Verifier)
	rateLimit := middleware.RateLimit(app.Limiter)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /comments/trips/{tripId}", comment.List)

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	// Auth
	mux.HandleFunc("POST /auth/verify", requireAuth(auth.Verify))

	// Trips
	mux.HandleFunc("GET /trips", requireAuth(trip.List))
	mux.HandleFunc("GET /trips/{id}", requireAuth(trip.Get))
	mux.HandleFunc("POST /trips", requireAuth(trip.Create))
	mux.HandleFunc("PUT /trips/{id}", requireAuth(trip.Update))
	mux.HandleFunc("DELETE /trips/{id}", requireAuth(trip.Delete))

	// Gallery
	mux.HandleFunc("POST /trips/{id}/gallery", requireAuth(gallery.Add))
	mux.HandleFunc("POST /trips/{id}/gallery/upload-url", requireAuth(gallery.UploadURL))
	mux.HandleFunc("DELETE /trips/{id}/gallery/{imageId}", requireAuth(gallery.Delete))
	mux.HandleFunc("PUT /trips/{id}/gallery/{imageId}/order", requireAuth(gallery.Reorder))

	// Geocoding (rate limited, upstream is a shared free tier)
	mux.HandleFunc("POST /trips/reverse-geocode", requireAuth(rateLimit(location.ReverseGeocode)))
	mux.HandleFunc("POST /trips/update-countries", requireAuth(rateLimit(location.UpdateCountries)))

	// Comments
	mux.HandleFunc("POST /comments/trips/{tripId}", requireAuth(comment.Create))
	mux.HandleFunc("DELETE /comments/{id}", requireAuth(comment.Delete))

	// Users
	mux.HandleFunc("GET /users/profile", requireAuth(user.Profile))
	mux.HandleFunc("PUT /users/profile", requireAuth(user.UpdateProfile))
	mux.HandleFunc("GET /users/stats", requireAuth(user.Stats))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", handler.NotFound)

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.RequestLogging,
		middleware.Recover,
		middleware.CORS(middleware.ParseOrigins(app.Cfg.CORSAllowedOrigins)),
	)
}
