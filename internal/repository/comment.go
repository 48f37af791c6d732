package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/templui/tripjournal/internal/model"
)

type CommentRepository interface {
	ByTrip(ctx context.Context, tripID int64) ([]*model.Comment, error)
	Create(ctx context.Context, comment *model.Comment) error
	DeleteOwned(ctx context.Context, id int64, uid string) error
}

type commentRepository struct {
	db sqlx.ExtContext
}

func NewCommentRepository(db sqlx.ExtContext) CommentRepository {
	return &commentRepository{db: db}
}

// ByTrip returns the trip's comments newest first, with commenter details
func (r *commentRepository) ByTrip(ctx context.Context, tripID int64) ([]*model.Comment, error) {
	comments := []*model.Comment{}
	query := `SELECT c.*, u.display_name AS user_name, u.profile_image_url
	          FROM comments c
	          JOIN users u ON u.id = c.user_id
	          WHERE c.trip_id = $1
	          ORDER BY c.created_at DESC, c.id DESC`

	err := sqlx.SelectContext(ctx, r.db, &comments, query, tripID)
	if err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	query := `INSERT INTO comments (trip_id, user_id, content)
	          VALUES ($1, $2, $3)
	          RETURNING *`

	return sqlx.GetContext(ctx, r.db, comment, query, comment.TripID, comment.UserID, comment.Content)
}

// DeleteOwned removes a comment written by uid
func (r *commentRepository) DeleteOwned(ctx context.Context, id int64, uid string) error {
	query := `DELETE FROM comments c
	          WHERE c.id = $1 AND c.user_id = (SELECT id FROM users WHERE firebase_uid = $2)`

	result, err := r.db.ExecContext(ctx, query, id, uid)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCommentNotFound
	}

	return nil
}
