package identity

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/tripjournal/internal/model"
)

const testProject = "trip-journal-test"

func newSigningCert(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "securetoken.system.gserviceaccount.com"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	return key, string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}))
}

func signFirebaseToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	s, err := token.SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":   "firebase-uid",
		"aud":   testProject,
		"iss":   "https://securetoken.google.com/" + testProject,
		"iat":   now.Add(-time.Minute).Unix(),
		"exp":   now.Add(time.Hour).Unix(),
		"email": "traveler@example.com",
		"name":  "Traveler",
	}
}

func TestFirebaseVerifier(t *testing.T) {
	key, cert := newSigningCert(t)

	var fetches atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		w.Header().Set("Cache-Control", "public, max-age=3600, must-revalidate")
		json.NewEncoder(w).Encode(map[string]string{"kid-1": cert})
	}))
	defer srv.Close()

	v := NewFirebaseVerifier(testProject, srv.URL)
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		got, err := v.Verify(ctx, signFirebaseToken(t, key, "kid-1", validClaims()))
		require.NoError(t, err)
		assert.Equal(t, "firebase-uid", got.UID)
		assert.Equal(t, "traveler@example.com", got.Email)
		assert.Equal(t, "Traveler", got.Name)
	})

	t.Run("certificates are cached", func(t *testing.T) {
		before := fetches.Load()
		_, err := v.Verify(ctx, signFirebaseToken(t, key, "kid-1", validClaims()))
		require.NoError(t, err)
		assert.Equal(t, before, fetches.Load())
	})

	tests := []struct {
		name   string
		kid    string
		mutate func(jwt.MapClaims)
	}{
		{name: "wrong audience", kid: "kid-1", mutate: func(c jwt.MapClaims) { c["aud"] = "other-project" }},
		{name: "wrong issuer", kid: "kid-1", mutate: func(c jwt.MapClaims) { c["iss"] = "https://example.com" }},
		{name: "expired", kid: "kid-1", mutate: func(c jwt.MapClaims) { c["exp"] = time.Now().Add(-time.Minute).Unix() }},
		{name: "unknown kid", kid: "kid-2", mutate: func(c jwt.MapClaims) {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := validClaims()
			tt.mutate(claims)

			_, err := v.Verify(ctx, signFirebaseToken(t, key, tt.kid, claims))
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	t.Run("other signing key", func(t *testing.T) {
		otherKey, _ := newSigningCert(t)
		_, err := v.Verify(ctx, signFirebaseToken(t, otherKey, "kid-1", validClaims()))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("hmac token rejected", func(t *testing.T) {
		token, err := NewHMACVerifier("secret").Sign(&model.Identity{UID: "firebase-uid"}, time.Hour)
		require.NoError(t, err)

		_, err = v.Verify(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestFirebaseVerifierUnknownKidFetchLimit(t *testing.T) {
	key, cert := newSigningCert(t)

	var fetches atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		json.NewEncoder(w).Encode(map[string]string{"kid-1": cert})
	}))
	defer srv.Close()

	v := NewFirebaseVerifier(testProject, srv.URL)
	now := time.Now()
	v.now = func() time.Time { return now }
	ctx := context.Background()

	tokens := make([]string, 50)
	for i := range tokens {
		tokens[i] = signFirebaseToken(t, key, "bogus-"+strconv.Itoa(i), validClaims())
	}

	var wg sync.WaitGroup
	for _, token := range tokens {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := v.Verify(ctx, token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		}()
	}
	wg.Wait()

	for i := range 50 {
		_, err := v.Verify(ctx, signFirebaseToken(t, key, "bogus-seq-"+strconv.Itoa(i), validClaims()))
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
	assert.Equal(t, int32(1), fetches.Load(), "unknown kids within the refresh interval share one fetch")

	got, err := v.Verify(ctx, signFirebaseToken(t, key, "kid-1", validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "firebase-uid", got.UID)
	assert.Equal(t, int32(1), fetches.Load())

	now = now.Add(minRefreshInterval + time.Second)
	_, err = v.Verify(ctx, signFirebaseToken(t, key, "rotated-kid", validClaims()))
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Equal(t, int32(2), fetches.Load(), "an unknown kid refreshes once the interval has passed")
}

func TestMaxAge(t *testing.T) {
	assert.Equal(t, 19*time.Second, maxAge("public, max-age=19, must-revalidate"))
	assert.Equal(t, defaultCertsTTL, maxAge("no-cache"))
	assert.Equal(t, defaultCertsTTL, maxAge("max-age=abc"))
}
