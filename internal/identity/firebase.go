package identity

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/templui/tripjournal/internal/model"
	"golang.org/x/sync/singleflight"
)

const (
	GoogleCertsURL    = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"
	firebaseIssuerFmt = "https://securetoken.google.com/%s"
	defaultCertsTTL   = time.Hour

	// minRefreshInterval bounds how often an unknown kid can trigger a fetch
	minRefreshInterval = time.Minute
)

var errUnknownKey = errors.New("unknown signing key")

// FirebaseVerifier validates Firebase ID tokens against Google's published
// signing certificates. Certificates are cached for as long as the
// Cache-Control max-age of the certificate response allows. Concurrent
// refreshes share one fetch.
type FirebaseVerifier struct {
	projectID  string
	certsURL   string
	httpClient *http.Client
	now        func() time.Time

	group   singleflight.Group
	mu      sync.RWMutex
	keys    map[string]*rsa.PublicKey
	expires time.Time
	fetched time.Time
}

func NewFirebaseVerifier(projectID, certsURL string) *FirebaseVerifier {
	if certsURL == "" {
		certsURL = GoogleCertsURL
	}
	return &FirebaseVerifier{
		projectID:  projectID,
		certsURL:   certsURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, tokenString string) (*model.Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		kid, _ := token.Header["kid"].(string)
		return v.key(ctx, kid)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.projectID),
		jwt.WithIssuer(fmt.Sprintf(firebaseIssuerFmt, v.projectID)),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return claims.identity()
}

// key returns the public key for kid. A stale cache is always refreshed; an
// unknown kid only refreshes when the last fetch is older than
// minRefreshInterval.
func (v *FirebaseVerifier) key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key, ok := v.keys[kid]
	fresh := v.now().Before(v.expires)
	recent := v.fetchedRecently()
	v.mu.RUnlock()

	if ok && fresh {
		return key, nil
	}
	if fresh && recent {
		return nil, errUnknownKey
	}

	_, err, _ := v.group.Do("certs", func() (any, error) {
		v.mu.RLock()
		skip := v.now().Before(v.expires) && v.fetchedRecently()
		v.mu.RUnlock()
		if skip {
			return nil, nil
		}
		return nil, v.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	key, ok = v.keys[kid]
	if !ok {
		return nil, errUnknownKey
	}
	return key, nil
}

// fetchedRecently must be called with v.mu held
func (v *FirebaseVerifier) fetchedRecently() bool {
	return !v.fetched.IsZero() && v.now().Sub(v.fetched) < minRefreshInterval
}

func (v *FirebaseVerifier) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch signing certificates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("signing certificates returned status %d", resp.StatusCode)
	}

	var certs map[string]string
	err = json.NewDecoder(resp.Body).Decode(&certs)
	if err != nil {
		return fmt.Errorf("failed to decode signing certificates: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, pem := range certs {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
		if err != nil {
			slog.Warn("skipping unparseable signing certificate", "kid", kid, "error", err)
			continue
		}
		keys[kid] = key
	}

	now := v.now()

	v.mu.Lock()
	v.keys = keys
	v.fetched = now
	v.expires = now.Add(maxAge(resp.Header.Get("Cache-Control")))
	v.mu.Unlock()

	return nil
}

// maxAge extracts max-age from a Cache-Control header
func maxAge(cacheControl string) time.Duration {
	for _, directive := range strings.Split(cacheControl, ",") {
		name, value, found := strings.Cut(strings.TrimSpace(directive), "=")
		if !found || !strings.EqualFold(name, "max-age") {
			continue
		}
		seconds, err := strconv.Atoi(value)
		if err != nil || seconds <= 0 {
			break
		}
		return time.Duration(seconds) * time.Second
	}
	return defaultCertsTTL
}
