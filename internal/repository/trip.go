package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/templui/tripjournal/internal/model"
)

type TripRepository interface {
	WithTx(tx *sqlx.Tx) TripRepository
	List(ctx context.Context, uid string, filter model.TripFilter) ([]*model.Trip, error)
	ByID(ctx context.Context, id int64, uid string) (*model.Trip, error)
	Create(ctx context.Context, trip *model.Trip) error
	Update(ctx context.Context, id int64, uid string, update *model.TripUpdate) (*model.Trip, error)
	Delete(ctx context.Context, id int64, uid string) error
	CheckOwner(ctx context.Context, id int64, uid string) error
	Exists(ctx context.Context, id int64) (bool, error)
	MissingCountry(ctx context.Context, uid string) ([]*model.Trip, error)
	SetCountry(ctx context.Context, id int64, country string) error
}

type tripRepository struct {
	db sqlx.ExtContext
}

func NewTripRepository(db sqlx.ExtContext) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) WithTx(tx *sqlx.Tx) TripRepository {
	return &tripRepository{db: tx}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern matches s as a literal substring in a LIKE ... ESCAPE '\' clause
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

const tripSelect = `SELECT t.*, u.display_name AS user_name
	FROM trips t
	JOIN users u ON u.id = t.user_id`

func (r *tripRepository) List(ctx context.Context, uid string, filter model.TripFilter) ([]*model.Trip, error) {
	var trips []*model.Trip

	conditions := []string{"u.firebase_uid = $1"}
	args := []any{uid}

	if filter.Search != "" {
		args = append(args, likePattern(filter.Search))
		conditions = append(conditions, fmt.Sprintf(`(t.title ILIKE $%d ESCAPE '\' OR t.destination ILIKE $%d ESCAPE '\')`, len(args), len(args)))
	}
	if filter.Country != "" {
		args = append(args, likePattern(filter.Country))
		conditions = append(conditions, fmt.Sprintf(`t.country ILIKE $%d ESCAPE '\'`, len(args)))
	}

	args = append(args, filter.Limit, filter.Offset())
	query := fmt.Sprintf(`%s
	          WHERE %s
	          ORDER BY t.created_at DESC, t.id DESC
	          LIMIT $%d OFFSET $%d`,
		tripSelect, strings.Join(conditions, " AND "), len(args)-1, len(args))

	err := sqlx.SelectContext(ctx, r.db, &trips, query, args...)
	if err != nil {
		return nil, err
	}

	return trips, nil
}

func (r *tripRepository) ByID(ctx context.Context, id int64, uid string) (*model.Trip, error) {
	trip := &model.Trip{}
	query := tripSelect + ` WHERE t.id = $1 AND u.firebase_uid = $2`

	err := sqlx.GetContext(ctx, r.db, trip, query, id, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTripNotFound
	}
	if err != nil {
		return nil, err
	}

	return trip, nil
}

// Create inserts the trip and fills in the generated columns
func (r *tripRepository) Create(ctx context.Context, trip *model.Trip) error {
	query := `INSERT INTO trips (
	              user_id, title, destination, country, latitude, longitude,
	              start_date, end_date, description, notes, tags, images,
	              is_public, cover_image, cover_image_path
	          ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	          RETURNING *`

	return sqlx.GetContext(ctx, r.db, trip, query,
		trip.UserID,
		trip.Title,
		trip.Destination,
		trip.Country,
		trip.Latitude,
		trip.Longitude,
		trip.StartDate,
		trip.EndDate,
		trip.Description,
		trip.Notes,
		trip.Tags,
		trip.Images,
		trip.IsPublic,
		trip.CoverImage,
		trip.CoverImagePath,
	)
}

// Update applies a coalesce patch to a trip owned by uid. Nil fields keep
// their stored value.
func (r *tripRepository) Update(ctx context.Context, id int64, uid string, update *model.TripUpdate) (*model.Trip, error) {
	trip := &model.Trip{}
	query := `UPDATE trips t SET
	              title = COALESCE($1, title),
	              destination = COALESCE($2, destination),
	              country = COALESCE($3, country),
	              latitude = COALESCE($4, latitude),
	              longitude = COALESCE($5, longitude),
	              start_date = COALESCE($6, start_date),
	              end_date = COALESCE($7, end_date),
	              description = COALESCE($8, description),
	              notes = COALESCE($9, notes),
	              tags = COALESCE($10, tags),
	              images = COALESCE($11, images),
	              is_public = COALESCE($12, is_public),
	              cover_image = COALESCE($13, cover_image),
	              cover_image_path = COALESCE($14, cover_image_path),
	              updated_at = now()
	          WHERE t.id = $15 AND ` + ownerClause("t", 16) + `
	          RETURNING *`

	err := sqlx.GetContext(ctx, r.db, trip, query,
		update.Title,
		update.Destination,
		update.Country,
		update.Latitude,
		update.Longitude,
		update.StartDate,
		update.EndDate,
		update.Description,
		update.Notes,
		update.Tags,
		update.Images,
		update.IsPublic,
		update.CoverImage,
		update.CoverImagePath,
		id,
		uid,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTripNotFound
	}
	if err != nil {
		return nil, err
	}

	return trip, nil
}

func (r *tripRepository) Delete(ctx context.Context, id int64, uid string) error {
	query := `DELETE FROM trips t WHERE t.id = $1 AND ` + ownerClause("t", 2)

	result, err := r.db.ExecContext(ctx, query, id, uid)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrTripNotFound
	}

	return nil
}

func (r *tripRepository) CheckOwner(ctx context.Context, id int64, uid string) error {
	var found int64
	query := `SELECT t.id FROM trips t WHERE t.id = $1 AND ` + ownerClause("t", 2)

	err := sqlx.GetContext(ctx, r.db, &found, query, id, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTripNotFound
	}

	return err
}

func (r *tripRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM trips WHERE id = $1)`

	err := sqlx.GetContext(ctx, r.db, &exists, query, id)
	return exists, err
}

// MissingCountry returns the user's trips with coordinates but no country
func (r *tripRepository) MissingCountry(ctx context.Context, uid string) ([]*model.Trip, error) {
	var trips []*model.Trip
	query := `SELECT t.* FROM trips t
	          WHERE ` + ownerClause("t", 1) + `
	            AND t.country IS NULL
	            AND t.latitude IS NOT NULL
	            AND t.longitude IS NOT NULL
	          ORDER BY t.id`

	err := sqlx.SelectContext(ctx, r.db, &trips, query, uid)
	if err != nil {
		return nil, err
	}

	return trips, nil
}

func (r *tripRepository) SetCountry(ctx context.Context, id int64, country string) error {
	query := `UPDATE trips SET country = $1, updated_at = now() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, country, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrTripNotFound
	}

	return nil
}
