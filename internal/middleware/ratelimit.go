package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/templui/tripjournal/internal/ctxkeys"
	"github.com/templui/tripjournal/internal/ratelimit"
)

// RateLimit guards a route with limiter, keyed by the authenticated caller
// when there is one and by client IP otherwise. Limiter errors let the
// request through.
func RateLimit(limiter ratelimit.Limiter) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			key := rateKey(r)

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				slog.Error("rate limiter failed", "error", err, "key", key)
				next(w, r)
				return
			}

			if !allowed {
				slog.Warn("rate limit exceeded",
					"key", key,
					"path", r.URL.Path,
				)
				writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
				return
			}

			next(w, r)
		}
	}
}

func rateKey(r *http.Request) string {
	route := r.Pattern
	if route == "" {
		route = r.Method + " " + r.URL.Path
	}
	if id := ctxkeys.Identity(r.Context()); id != nil {
		return "user:" + id.UID + ":" + route
	}
	return "ip:" + getClientIP(r) + ":" + route
}

// getClientIP extracts real client IP from request
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header (proxy/load balancer)
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return strings.TrimSpace(xri)
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}

	return ip
}
