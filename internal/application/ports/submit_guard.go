package ports

import (
	"context"
	"time"
)

// SubmitGuard rejects repeated submissions of the same key inside a window.
type SubmitGuard interface {
	Acquire(ctx context.Context, key string, window time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
