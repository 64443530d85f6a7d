package view

import (
	"sync"
	"time"

	"github.com/yuzvak/herbal-storefront/internal/pkg/timers"
)

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

const DefaultToastDismiss = 3 * time.Second

type Toast struct {
	ID           uint64        `json:"id"`
	Kind         ToastKind     `json:"kind"`
	Message      string        `json:"message"`
	DismissAfter time.Duration `json:"-"`
	DismissMs    int64         `json:"dismiss_after_ms"`
}

func SuccessToast(msg string) Toast {
	return Toast{Kind: ToastSuccess, Message: msg}
}

func ErrorToast(msg string) Toast {
	return Toast{Kind: ToastError, Message: msg}
}

// ToastBoard keeps the visible toasts of every session and dismisses each one
// after its timeout. Close cancels all pending dismissals.
type ToastBoard struct {
	timers  *timers.Group
	dismiss time.Duration

	mu       sync.Mutex
	nextID   uint64
	sessions map[string][]Toast
}

func NewToastBoard(group *timers.Group, dismiss time.Duration) *ToastBoard {
	if dismiss <= 0 {
		dismiss = DefaultToastDismiss
	}
	return &ToastBoard{
		timers:   group,
		dismiss:  dismiss,
		sessions: make(map[string][]Toast),
	}
}

func (b *ToastBoard) Push(sessionID string, t Toast) Toast {
	if t.DismissAfter <= 0 {
		t.DismissAfter = b.dismiss
	}
	t.DismissMs = t.DismissAfter.Milliseconds()

	b.mu.Lock()
	b.nextID++
	t.ID = b.nextID
	b.sessions[sessionID] = append(b.sessions[sessionID], t)
	b.mu.Unlock()

	id := t.ID
	b.timers.Schedule(t.DismissAfter, func() {
		b.remove(sessionID, id)
	})
	return t
}

func (b *ToastBoard) Active(sessionID string) []Toast {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Toast, len(b.sessions[sessionID]))
	copy(out, b.sessions[sessionID])
	return out
}

func (b *ToastBoard) Close() {
	b.timers.Close()
}

func (b *ToastBoard) remove(sessionID string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	toasts := b.sessions[sessionID]
	for i, t := range toasts {
		if t.ID == id {
			toasts = append(toasts[:i:i], toasts[i+1:]...)
			break
		}
	}

	if len(toasts) == 0 {
		delete(b.sessions, sessionID)
		return
	}
	b.sessions[sessionID] = toasts
}
