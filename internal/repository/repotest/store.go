// Package repotest provides in-memory repositories for service and handler
// tests. A Store mimics the PostgreSQL schema closely enough for ownership,
// ordering, coalesce and rollback behaviour to be observable.
package repotest

import (
	"context"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/tripjournal/internal/model"
)

type Store struct {
	mu       sync.Mutex
	users    map[int64]*model.User
	trips    map[int64]*model.Trip
	gallery  map[int64]*model.GalleryImage
	comments map[int64]*model.Comment
	nextID   int64
	clock    time.Time

	// FailOn, when set, is consulted before every write with the operation
	// name (e.g. "gallery.Insert"); a non-nil result fails the write.
	FailOn func(op string) error
}

func NewStore() *Store {
	return &Store{
		users:    map[int64]*model.User{},
		trips:    map[int64]*model.Trip{},
		gallery:  map[int64]*model.GalleryImage{},
		comments: map[int64]*model.Comment{},
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// tick returns a strictly increasing timestamp
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *Store) fail(op string) error {
	if s.FailOn == nil {
		return nil
	}
	return s.FailOn(op)
}

func (s *Store) userByUID(uid string) *model.User {
	for _, u := range s.users {
		if u.FirebaseUID == uid {
			return u
		}
	}
	return nil
}

func (s *Store) owns(trip *model.Trip, uid string) bool {
	u := s.userByUID(uid)
	return u != nil && trip.UserID == u.ID
}

// AddUser inserts a user row directly
func (s *Store) AddUser(uid, displayName string) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.tick()
	u := &model.User{ID: s.id(), FirebaseUID: uid, CreatedAt: now, UpdatedAt: now}
	if displayName != "" {
		u.DisplayName = &displayName
	}
	s.users[u.ID] = u
	c := *u
	return &c
}

// GalleryIDs returns the ids of a trip's gallery rows in display order
func (s *Store) GalleryIDs(tripID int64) []int64 {
	images, _ := (&galleryRepository{s}).ByTrip(context.Background(), tripID)
	ids := make([]int64, len(images))
	for i, img := range images {
		ids[i] = img.ID
	}
	return ids
}

// Trip returns a copy of the stored trip row, or nil
func (s *Store) Trip(id int64) *model.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trips[id]
	if !ok {
		return nil
	}
	c := *t
	return &c
}

func (s *Store) CommentExists(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.comments[id]
	return ok
}

// Counts returns the number of trip, gallery and comment rows
func (s *Store) Counts() (trips, gallery, comments int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.trips), len(s.gallery), len(s.comments)
}

type snapshot struct {
	users    map[int64]*model.User
	trips    map[int64]*model.Trip
	gallery  map[int64]*model.GalleryImage
	comments map[int64]*model.Comment
	nextID   int64
}

func cloneMap[T any](m map[int64]*T) map[int64]*T {
	out := make(map[int64]*T, len(m))
	for k, v := range m {
		c := *v
		out[k] = &c
	}
	return out
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return snapshot{
		users:    cloneMap(s.users),
		trips:    cloneMap(s.trips),
		gallery:  cloneMap(s.gallery),
		comments: cloneMap(s.comments),
		nextID:   s.nextID,
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = snap.users
	s.trips = snap.trips
	s.gallery = snap.gallery
	s.comments = snap.comments
	s.nextID = snap.nextID
}

// Transactor restores the store to its state before WithTx when fn fails
type Transactor struct {
	store *Store
}

func (s *Store) Transactor() *Transactor {
	return &Transactor{store: s}
}

func (t *Transactor) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	snap := t.store.snapshot()
	err := fn(nil)
	if err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}
