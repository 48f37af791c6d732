package model

import (
	"time"
)

type Comment struct {
	ID        int64     `db:"id" json:"id"`
	TripID    int64     `db:"trip_id" json:"trip_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Joined from users when listing
	UserName        *string `db:"user_name" json:"user_name,omitempty"`
	ProfileImageURL *string `db:"profile_image_url" json:"profile_image_url,omitempty"`
}

type CommentInput struct {
	Content string `json:"content"`
}
