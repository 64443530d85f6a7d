package memory

import (
	"context"
	"sync"
	"time"

	"github.com/yuzvak/herbal-storefront/internal/pkg/clock"
)

type SubmitGuard struct {
	mu      sync.Mutex
	clock   clock.Clock
	holders map[string]time.Time
}

func NewSubmitGuard(c clock.Clock) *SubmitGuard {
	return &SubmitGuard{
		clock:   c,
		holders: make(map[string]time.Time),
	}
}

func (g *SubmitGuard) Acquire(ctx context.Context, key string, window time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	if until, ok := g.holders[key]; ok && now.Before(until) {
		return false, nil
	}

	g.holders[key] = now.Add(window)
	g.sweep(now)
	return true, nil
}

func (g *SubmitGuard) Release(ctx context.Context, key string) error {
	g.mu.Lock()
	delete(g.holders, key)
	g.mu.Unlock()
	return nil
}

func (g *SubmitGuard) sweep(now time.Time) {
	for key, until := range g.holders {
		if !now.Before(until) {
			delete(g.holders, key)
		}
	}
}
