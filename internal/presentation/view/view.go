package view

import "sync"

// Navigation asks the page to open a deep link. Messaging links open in a
// new context; tel: and mailto: replace the current location.
type Navigation struct {
	URL        string `json:"url"`
	Channel    string `json:"channel"`
	NewContext bool   `json:"new_context"`
}

type View interface {
	Render(vm CartViewModel)
	Toast(t Toast)
	Navigate(nav Navigation)
}

// Recorder is a View that keeps what it was told so a handler can return it
// in one response. Toasts are also posted to the session's board when one is set.
type Recorder struct {
	board     *ToastBoard
	sessionID string

	mu         sync.Mutex
	cart       *CartViewModel
	toasts     []Toast
	navigation *Navigation
}

func NewRecorder(board *ToastBoard, sessionID string) *Recorder {
	return &Recorder{board: board, sessionID: sessionID}
}

func (r *Recorder) Render(vm CartViewModel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cart = &vm
}

func (r *Recorder) Toast(t Toast) {
	if r.board != nil {
		t = r.board.Push(r.sessionID, t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

func (r *Recorder) Navigate(nav Navigation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.navigation = &nav
}

// Frame is the recorded state, shaped for a JSON body.
type Frame struct {
	Cart       *CartViewModel `json:"cart,omitempty"`
	Toasts     []Toast        `json:"toasts,omitempty"`
	Navigation *Navigation    `json:"navigation,omitempty"`
}

func (r *Recorder) Frame() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()

	f := Frame{Cart: r.cart, Navigation: r.navigation}
	if len(r.toasts) > 0 {
		f.Toasts = make([]Toast, len(r.toasts))
		copy(f.Toasts, r.toasts)
	}
	return f
}
