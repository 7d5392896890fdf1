package usecase

import (
	"context"
	"time"
)

// MatchCache is the read-through cache surface for per-job match lists.
// Implementations may silently no-op when the backing store is down.
type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
