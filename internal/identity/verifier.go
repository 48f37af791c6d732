package identity

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/templui/tripjournal/internal/model"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Verifier turns a bearer token into the identity it was issued for
type Verifier interface {
	Verify(ctx context.Context, token string) (*model.Identity, error)
}

// Claims are the ID-token claims the API relies on. The subject is the
// identity-subject id.
type Claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) identity() (*model.Identity, error) {
	if c.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &model.Identity{
		UID:   c.Subject,
		Email: c.Email,
		Name:  c.Name,
	}, nil
}
