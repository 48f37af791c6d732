package repotest

import (
	"context"

	"github.com/templui/tripjournal/internal/model"
	"github.com/templui/tripjournal/internal/repository"
)

type userRepository struct {
	s *Store
}

func (s *Store) Users() repository.UserRepository {
	return &userRepository{s}
}

func (r *userRepository) ByFirebaseUID(ctx context.Context, uid string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u := r.s.userByUID(uid)
	if u == nil {
		return nil, repository.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (r *userRepository) EnsureExists(ctx context.Context, identity *model.Identity) (*model.User, error) {
	r.s.mu.Lock()
	if r.s.userByUID(identity.UID) == nil {
		now := r.s.tick()
		u := &model.User{ID: r.s.id(), FirebaseUID: identity.UID, CreatedAt: now, UpdatedAt: now}
		if identity.Email != "" {
			email := identity.Email
			u.Email = &email
		}
		if name := identity.DisplayNameOrEmail(); name != "" {
			u.DisplayName = &name
		}
		r.s.users[u.ID] = u
	}
	r.s.mu.Unlock()

	return r.ByFirebaseUID(ctx, identity.UID)
}

func (r *userRepository) UpdateProfile(ctx context.Context, uid string, update *model.ProfileUpdate) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.fail("users.UpdateProfile"); err != nil {
		return nil, err
	}

	u := r.s.userByUID(uid)
	if u == nil {
		return nil, repository.ErrUserNotFound
	}
	if update.DisplayName != nil {
		u.DisplayName = update.DisplayName
	}
	if update.ProfileImageURL != nil {
		u.ProfileImageURL = update.ProfileImageURL
	}
	if update.IsPublic != nil {
		u.IsPublic = *update.IsPublic
	}
	u.UpdatedAt = r.s.tick()

	c := *u
	return &c, nil
}

func (r *userRepository) Stats(ctx context.Context, uid string) (*model.UserStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stats := &model.UserStats{}
	u := r.s.userByUID(uid)
	if u == nil {
		return stats, nil
	}

	countries := map[string]bool{}
	for _, t := range r.s.trips {
		if t.UserID != u.ID {
			continue
		}
		stats.TotalTrips++
		stats.TotalLikes += int64(t.LikesCount)
		if t.Country != nil {
			countries[*t.Country] = true
		}
	}
	stats.CountriesVisited = int64(len(countries))

	return stats, nil
}
