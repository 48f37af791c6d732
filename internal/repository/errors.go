package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by every lookup that matched no row. Rows owned by
// someone else are reported the same way as missing rows.
var ErrNotFound = errors.New("not found")

var (
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrTripNotFound         = fmt.Errorf("trip %w", ErrNotFound)
	ErrGalleryImageNotFound = fmt.Errorf("gallery image %w", ErrNotFound)
	ErrCommentNotFound      = fmt.Errorf("comment %w", ErrNotFound)
)

// ownerClause restricts a trips query to rows owned by the identity in $n
func ownerClause(alias string, n int) string {
	return fmt.Sprintf("%s.user_id = (SELECT id FROM users WHERE firebase_uid = $%d)", alias, n)
}
