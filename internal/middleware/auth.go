package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/templui/tripjournal/internal/ctxkeys"
	"github.com/templui/tripjournal/internal/identity"
)

// RequireAuth verifies the bearer token and puts the caller's identity into
// the request context. Requests without a valid token get 401.
func RequireAuth(verifier identity.Verifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "Access token required")
				return
			}

			id, err := verifier.Verify(r.Context(), token)
			if err != nil {
				slog.Debug("token verification failed", "error", err, "request_id", ctxkeys.RequestID(r.Context()))
				writeError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			next(w, r.WithContext(ctxkeys.WithIdentity(r.Context(), id)))
		}
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
