package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/templui/tripjournal/internal/config"
	"github.com/templui/tripjournal/internal/db"
	"github.com/templui/tripjournal/internal/geocode"
	"github.com/templui/tripjournal/internal/identity"
	"github.com/templui/tripjournal/internal/ratelimit"
	"github.com/templui/tripjournal/internal/repository"
	"github.com/templui/tripjournal/internal/service"
	"github.com/templui/tripjournal/internal/storage"
)

type App struct {
	Cfg      *config.Config
	DB       *sqlx.DB
	Redis    *redis.Client
	Verifier identity.Verifier
	Limiter  ratelimit.Limiter

	TripService     *service.TripService
	GalleryService  *service.GalleryService
	CommentService  *service.CommentService
	UserService     *service.UserService
	LocationService *service.LocationService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(ctx, cfg.DatabaseURL, db.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	a := &App{Cfg: cfg, DB: database}

	if cfg.RunMigrations {
		err = db.RunMigrations(ctx, database.DB)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Identity
	a.Verifier, err = newVerifier(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	// Rate limiting: shared through Redis when configured
	if cfg.RedisURL != "" {
		a.Redis, err = db.InitRedis(ctx, cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		a.Limiter = ratelimit.NewRedisLimiter(a.Redis, "ratelimit", cfg.RateLimitRequests, cfg.RateLimitWindow)
	} else {
		a.Limiter = ratelimit.NewMemoryLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	}

	// Storage is optional
	var fileStorage storage.Storage
	if cfg.StorageEnabled() {
		s3Storage, err := storage.NewS3Storage(ctx, storage.S3Config{
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			Endpoint:      cfg.S3Endpoint,
			PublicURL:     cfg.S3PublicURL,
			PresignExpiry: cfg.S3PresignExpiry,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		fileStorage = s3Storage
	} else {
		slog.Info("object storage disabled, gallery upload URLs unavailable")
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	tripRepository := repository.NewTripRepository(database)
	galleryRepository := repository.NewGalleryRepository(database)
	commentRepository := repository.NewCommentRepository(database)

	geocoder := geocode.NewClient(cfg.GeocodeBaseURL, cfg.GeocodeTimeout)

	// Services
	a.TripService = service.NewTripService(
		db.NewTransactor(database),
		userRepository,
		tripRepository,
		galleryRepository,
		geocoder,
	)
	a.GalleryService = service.NewGalleryService(tripRepository, galleryRepository, fileStorage)
	a.CommentService = service.NewCommentService(commentRepository, tripRepository, userRepository)
	a.UserService = service.NewUserService(userRepository)
	a.LocationService = service.NewLocationService(userRepository, tripRepository, geocoder, cfg.GeocodeBackfillDelay)

	return a, nil
}

func newVerifier(cfg *config.Config) (identity.Verifier, error) {
	switch cfg.AuthMode {
	case config.AuthModeFirebase:
		return identity.NewFirebaseVerifier(cfg.FirebaseProjectID, identity.GoogleCertsURL), nil
	case config.AuthModeHMAC:
		slog.Warn("using HMAC token verification, not for production")
		return identity.NewHMACVerifier(cfg.JWTSecret), nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.AuthMode)
	}
}

func (a *App) Close() error {
	var errs []error

	if closer, ok := a.Limiter.(interface{ Close() }); ok {
		closer.Close()
	}
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}

	return errors.Join(errs...)
}
