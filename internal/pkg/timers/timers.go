// Package timers owns fire-and-forget callbacks so they can be cancelled
// together when their owner goes away.
package timers

import (
	"sync"
	"time"

	"github.com/yuzvak/herbal-storefront/internal/pkg/clock"
)

type CancelFunc func() bool

type Group struct {
	clock  clock.Clock
	mu     sync.Mutex
	nextID uint64
	timers map[uint64]clock.Timer
	closed bool
}

func NewGroup(c clock.Clock) *Group {
	return &Group{
		clock:  c,
		timers: make(map[uint64]clock.Timer),
	}
}

// Schedule runs f after d unless the returned cancel func or Close runs first.
// Scheduling on a closed group is a no-op.
func (g *Group) Schedule(d time.Duration, f func()) CancelFunc {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return func() bool { return false }
	}

	g.nextID++
	id := g.nextID
	g.timers[id] = g.clock.AfterFunc(d, func() {
		g.mu.Lock()
		_, live := g.timers[id]
		delete(g.timers, id)
		g.mu.Unlock()

		if live {
			f()
		}
	})

	return func() bool {
		return g.cancel(id)
	}
}

func (g *Group) cancel(id uint64) bool {
	g.mu.Lock()
	t, ok := g.timers[id]
	delete(g.timers, id)
	g.mu.Unlock()

	if !ok {
		return false
	}
	return t.Stop()
}

func (g *Group) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.timers)
}

// Close cancels every pending timer and rejects new ones.
func (g *Group) Close() {
	g.mu.Lock()
	pending := g.timers
	g.timers = make(map[uint64]clock.Timer)
	g.closed = true
	g.mu.Unlock()

	for _, t := range pending {
		t.Stop()
	}
}
