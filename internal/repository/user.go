package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/tripjournal/internal/model"
)

type UserRepository interface {
	ByFirebaseUID(ctx context.Context, uid string) (*model.User, error)
	EnsureExists(ctx context.Context, identity *model.Identity) (*model.User, error)
	UpdateProfile(ctx context.Context, uid string, update *model.ProfileUpdate) (*model.User, error)
	Stats(ctx context.Context, uid string) (*model.UserStats, error)
}

type userRepository struct {
	db sqlx.ExtContext
}

func NewUserRepository(db sqlx.ExtContext) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) ByFirebaseUID(ctx context.Context, uid string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE firebase_uid = $1`

	err := sqlx.GetContext(ctx, r.db, user, query, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// EnsureExists inserts the identity's user row unless one exists already,
// then returns the stored row. Concurrent first requests converge on one row.
func (r *userRepository) EnsureExists(ctx context.Context, identity *model.Identity) (*model.User, error) {
	query := `INSERT INTO users (firebase_uid, email, display_name)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (firebase_uid) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query, identity.UID, nullable(identity.Email), nullable(identity.DisplayNameOrEmail()))
	if err != nil {
		return nil, err
	}

	return r.ByFirebaseUID(ctx, identity.UID)
}

func (r *userRepository) UpdateProfile(ctx context.Context, uid string, update *model.ProfileUpdate) (*model.User, error) {
	user := &model.User{}
	query := `UPDATE users SET
	              display_name = COALESCE($1, display_name),
	              profile_image_url = COALESCE($2, profile_image_url),
	              is_public = COALESCE($3, is_public),
	              updated_at = now()
	          WHERE firebase_uid = $4
	          RETURNING *`

	err := sqlx.GetContext(ctx, r.db, user, query, update.DisplayName, update.ProfileImageURL, update.IsPublic, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Stats aggregates over the user's trips. An unknown user has all-zero stats.
func (r *userRepository) Stats(ctx context.Context, uid string) (*model.UserStats, error) {
	stats := &model.UserStats{}
	query := `SELECT
	              COUNT(t.id) AS total_trips,
	              COUNT(DISTINCT t.country) AS countries_visited,
	              COALESCE(SUM(t.likes_count), 0) AS total_likes
	          FROM trips t
	          WHERE ` + ownerClause("t", 1)

	err := sqlx.GetContext(ctx, r.db, stats, query, uid)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// nullable maps the empty string to SQL NULL
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
