package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/templui/tripjournal/internal/model"
)

type GalleryRepository interface {
	WithTx(tx *sqlx.Tx) GalleryRepository
	ByTrip(ctx context.Context, tripID int64) ([]*model.GalleryImage, error)
	ByTrips(ctx context.Context, tripIDs []int64) (map[int64][]*model.GalleryImage, error)
	Insert(ctx context.Context, image *model.GalleryImage) error
	DeleteByTrip(ctx context.Context, tripID int64) error
	DeleteOwned(ctx context.Context, tripID, imageID int64, uid string) (*model.GalleryImage, error)
	UpdateOrder(ctx context.Context, tripID, imageID int64, uid string, orderIndex int) (*model.GalleryImage, error)
}

type galleryRepository struct {
	db sqlx.ExtContext
}

func NewGalleryRepository(db sqlx.ExtContext) GalleryRepository {
	return &galleryRepository{db: db}
}

func (r *galleryRepository) WithTx(tx *sqlx.Tx) GalleryRepository {
	return &galleryRepository{db: tx}
}

const galleryOrder = `ORDER BY order_index ASC, uploaded_at ASC, id ASC`

func (r *galleryRepository) ByTrip(ctx context.Context, tripID int64) ([]*model.GalleryImage, error) {
	images := []*model.GalleryImage{}
	query := `SELECT * FROM trip_gallery_images WHERE trip_id = $1 ` + galleryOrder

	err := sqlx.SelectContext(ctx, r.db, &images, query, tripID)
	if err != nil {
		return nil, err
	}

	return images, nil
}

// ByTrips loads the galleries of several trips in one query, keyed by trip id
func (r *galleryRepository) ByTrips(ctx context.Context, tripIDs []int64) (map[int64][]*model.GalleryImage, error) {
	galleries := make(map[int64][]*model.GalleryImage, len(tripIDs))
	if len(tripIDs) == 0 {
		return galleries, nil
	}

	var images []*model.GalleryImage
	query := `SELECT * FROM trip_gallery_images WHERE trip_id = ANY($1) ` + galleryOrder

	err := sqlx.SelectContext(ctx, r.db, &images, query, pq.Array(tripIDs))
	if err != nil {
		return nil, err
	}

	for _, img := range images {
		galleries[img.TripID] = append(galleries[img.TripID], img)
	}

	return galleries, nil
}

// Insert stores the image and fills in its id and upload time
func (r *galleryRepository) Insert(ctx context.Context, image *model.GalleryImage) error {
	query := `INSERT INTO trip_gallery_images (trip_id, url, path, filename, original_name, order_index)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING *`

	return sqlx.GetContext(ctx, r.db, image, query,
		image.TripID,
		image.URL,
		image.Path,
		image.Filename,
		image.OriginalName,
		image.OrderIndex,
	)
}

func (r *galleryRepository) DeleteByTrip(ctx context.Context, tripID int64) error {
	query := `DELETE FROM trip_gallery_images WHERE trip_id = $1`

	_, err := r.db.ExecContext(ctx, query, tripID)
	return err
}

func (r *galleryRepository) DeleteOwned(ctx context.Context, tripID, imageID int64, uid string) (*model.GalleryImage, error) {
	image := &model.GalleryImage{}
	query := `DELETE FROM trip_gallery_images g
	          USING trips t
	          WHERE g.id = $1 AND g.trip_id = $2 AND t.id = g.trip_id AND ` + ownerClause("t", 3) + `
	          RETURNING g.*`

	err := sqlx.GetContext(ctx, r.db, image, query, imageID, tripID, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGalleryImageNotFound
	}
	if err != nil {
		return nil, err
	}

	return image, nil
}

func (r *galleryRepository) UpdateOrder(ctx context.Context, tripID, imageID int64, uid string, orderIndex int) (*model.GalleryImage, error) {
	image := &model.GalleryImage{}
	query := `UPDATE trip_gallery_images g SET order_index = $1
	          FROM trips t
	          WHERE g.id = $2 AND g.trip_id = $3 AND t.id = g.trip_id AND ` + ownerClause("t", 4) + `
	          RETURNING g.*`

	err := sqlx.GetContext(ctx, r.db, image, query, orderIndex, imageID, tripID, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGalleryImageNotFound
	}
	if err != nil {
		return nil, err
	}

	return image, nil
}
