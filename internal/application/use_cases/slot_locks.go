package use_cases

import "sync"

// slotLocks serialises work per cart slot and forgets idle slots.
type slotLocks struct {
	mu    sync.Mutex
	slots map[string]*slotLock
}

type slotLock struct {
	mu   sync.Mutex
	refs int
}

func newSlotLocks() *slotLocks {
	return &slotLocks{slots: make(map[string]*slotLock)}
}

func (l *slotLocks) lock(key string) func() {
	l.mu.Lock()
	sl, ok := l.slots[key]
	if !ok {
		sl = &slotLock{}
		l.slots[key] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()

	return func() {
		sl.mu.Unlock()

		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.slots, key)
		}
		l.mu.Unlock()
	}
}

func (l *slotLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
