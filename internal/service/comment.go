package service

import (
	"context"
	"fmt"

	"github.com/templui/tripjournal/internal/model"
	"github.com/templui/tripjournal/internal/repository"
	"github.com/templui/tripjournal/internal/validation"
)

type CommentService struct {
	comments repository.CommentRepository
	trips    repository.TripRepository
	users    repository.UserRepository
}

func NewCommentService(comments repository.CommentRepository, trips repository.TripRepository, users repository.UserRepository) *CommentService {
	return &CommentService{
		comments: comments,
		trips:    trips,
		users:    users,
	}
}

func (s *CommentService) ByTrip(ctx context.Context, tripID int64) ([]*model.Comment, error) {
	comments, err := s.comments.ByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (s *CommentService) Create(ctx context.Context, tripID int64, uid string, in model.CommentInput) (*model.Comment, error) {
	content, err := validation.ValidateComment(in.Content)
	if err != nil {
		return nil, err
	}

	user, err := s.users.ByFirebaseUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	exists, err := s.trips.Exists(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to check trip: %w", err)
	}
	if !exists {
		return nil, repository.ErrTripNotFound
	}

	comment := &model.Comment{
		TripID:  tripID,
		UserID:  user.ID,
		Content: content,
	}

	err = s.comments.Create(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	comment.UserName = user.DisplayName
	comment.ProfileImageURL = user.ProfileImageURL
	return comment, nil
}

// Delete removes a comment written by the caller. Anyone else's comment
// reports not found.
func (s *CommentService) Delete(ctx context.Context, id int64, uid string) error {
	return s.comments.DeleteOwned(ctx, id, uid)
}
