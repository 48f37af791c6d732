package repotest

import (
	"context"
	"slices"

	"github.com/templui/tripjournal/internal/model"
	"github.com/templui/tripjournal/internal/repository"
)

type commentRepository struct {
	s *Store
}

func (s *Store) Comments() repository.CommentRepository {
	return &commentRepository{s}
}

func (r *commentRepository) ByTrip(ctx context.Context, tripID int64) ([]*model.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	comments := []*model.Comment{}
	for _, c := range r.s.comments {
		if c.TripID != tripID {
			continue
		}
		cc := *c
		if u, ok := r.s.users[c.UserID]; ok {
			cc.UserName = u.DisplayName
			cc.ProfileImageURL = u.ProfileImageURL
		}
		comments = append(comments, &cc)
	}

	slices.SortFunc(comments, func(a, b *model.Comment) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(b.ID - a.ID)
	})
	return comments, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.fail("comments.Create"); err != nil {
		return err
	}

	comment.ID = r.s.id()
	comment.CreatedAt = r.s.tick()
	c := *comment
	r.s.comments[c.ID] = &c
	return nil
}

func (r *commentRepository) DeleteOwned(ctx context.Context, id int64, uid string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.comments[id]
	u := r.s.userByUID(uid)
	if !ok || u == nil || c.UserID != u.ID {
		return repository.ErrCommentNotFound
	}
	delete(r.s.comments, id)
	return nil
}
