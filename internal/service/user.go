package service

import (
	"context"
	"fmt"

	"github.com/templui/tripjournal/internal/model"
	"github.com/templui/tripjournal/internal/repository"
	"github.com/templui/tripjournal/internal/validation"
)

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Profile returns the caller's user row, creating it on first use
func (s *UserService) Profile(ctx context.Context, identity *model.Identity) (*model.User, error) {
	user, err := s.users.EnsureExists(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, uid string, update model.ProfileUpdate) (*model.User, error) {
	err := validation.ValidateDisplayName(update.DisplayName)
	if err != nil {
		return nil, err
	}

	update.DisplayName = validation.NormalizeOptional(update.DisplayName)

	return s.users.UpdateProfile(ctx, uid, &update)
}

func (s *UserService) Stats(ctx context.Context, uid string) (*model.UserStats, error) {
	stats, err := s.users.Stats(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	return stats, nil
}
