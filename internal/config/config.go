package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	AuthModeFirebase = "firebase"
	AuthModeHMAC     = "hmac"
)

type Config struct {
	// Application
	AppEnv string
	Port   string

	// Database
	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	RunMigrations     bool

	// Identity
	AuthMode          string // "firebase" or "hmac"
	FirebaseProjectID string
	JWTSecret         string

	// Geocoding
	GeocodeBaseURL       string
	GeocodeTimeout       time.Duration
	GeocodeBackfillDelay time.Duration

	// Observability (optional)
	SentryDSN string

	// Rate limiting (Redis optional, in-memory otherwise)
	RedisURL          string
	RateLimitRequests int
	RateLimitWindow   time.Duration

	CORSAllowedOrigins string

	// Storage (S3-compatible, enabled when S3_BUCKET is set)
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string // Optional: for MinIO, R2 and friends
	S3PublicURL     string // Optional: CDN or public bucket base URL
	S3PresignExpiry time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		AppEnv: envRequired("APP_ENV"), // Required: 'development', 'production' or 'test'
		Port:   envString("PORT", "8080"),

		DatabaseURL:       envRequired("DATABASE_URL"),
		DBMaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: envDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		RunMigrations:     envBool("RUN_MIGRATIONS", true),

		AuthMode:          envString("AUTH_MODE", AuthModeFirebase),
		FirebaseProjectID: envString("FIREBASE_PROJECT_ID", ""),
		JWTSecret:         envString("JWT_SECRET", ""),

		GeocodeBaseURL:       envString("GEOCODE_BASE_URL", "https://api.bigdatacloud.net/data/reverse-geocode-client"),
		GeocodeTimeout:       envDuration("GEOCODE_TIMEOUT", 10*time.Second),
		GeocodeBackfillDelay: envDuration("GEOCODE_BACKFILL_DELAY", 100*time.Millisecond),

		SentryDSN: envString("SENTRY_DSN", ""),

		RedisURL:          envString("REDIS_URL", ""),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 30),
		RateLimitWindow:   envDuration("RATE_LIMIT_WINDOW", time.Minute),

		CORSAllowedOrigins: envString("CORS_ALLOWED_ORIGINS", "*"),

		S3Region:        envString("S3_REGION", "us-east-1"),
		S3Bucket:        envString("S3_BUCKET", ""),
		S3AccessKey:     envString("S3_ACCESS_KEY", ""),
		S3SecretKey:     envString("S3_SECRET_KEY", ""),
		S3Endpoint:      envString("S3_ENDPOINT", ""),
		S3PublicURL:     envString("S3_PUBLIC_URL", ""),
		S3PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", 15*time.Minute),
	}

	err = cfg.Validate()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	return cfg
}

// Validate checks the settings that depend on each other
func (c *Config) Validate() error {
	switch c.AuthMode {
	case AuthModeFirebase:
		if c.FirebaseProjectID == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID is required when AUTH_MODE=%s", AuthModeFirebase)
		}
	case AuthModeHMAC:
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_MODE=%s", AuthModeHMAC)
		}
		if c.IsProduction() {
			return fmt.Errorf("AUTH_MODE=%s is not allowed in production", AuthModeHMAC)
		}
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.AuthMode)
	}
	if c.RateLimitRequests < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.RateLimitRequests)
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.RateLimitWindow)
	}
	return nil
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return i
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) StorageEnabled() bool {
	return c.S3Bucket != ""
}
