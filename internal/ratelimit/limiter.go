package ratelimit

import "context"

// Limiter decides whether one more request under key fits the budget
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
