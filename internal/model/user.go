package model

import (
	"time"
)

type User struct {
	ID              int64     `db:"id" json:"id"`
	FirebaseUID     string    `db:"firebase_uid" json:"firebase_uid"`
	Email           *string   `db:"email" json:"email"`
	DisplayName     *string   `db:"display_name" json:"display_name"`
	ProfileImageURL *string   `db:"profile_image_url" json:"profile_image_url"`
	IsPublic        bool      `db:"is_public" json:"is_public"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Identity is the verified principal behind a bearer token.
// UID is the identity provider's subject id.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// DisplayNameOrEmail returns the name claim, falling back to the email claim.
func (i *Identity) DisplayNameOrEmail() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Email
}
