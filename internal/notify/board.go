// Package notify holds the transient notification policy shared by presentation layers:
// at most one toast is visible, a newer toast supersedes an older one, and a toast only
// disappears when its own dismissal fires.
package notify

import (
	"sync"
	"time"

	"flashquiz/internal/domain"
)

// DefaultDuration mirrors a short snackbar.
const DefaultDuration = 2 * time.Second

// Toast is a single transient notification.
type Toast struct {
	ID      uint64
	Kind    domain.Feedback
	Message string
}

// Board tracks the currently visible toast.
type Board struct {
	mu       sync.Mutex
	duration time.Duration
	seq      uint64
	current  *Toast
}

func NewBoard(duration time.Duration) *Board {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Board{duration: duration}
}

// Duration is how long a toast stays visible before auto-dismissal.
func (b *Board) Duration() time.Duration {
	return b.duration
}

// Show replaces the visible toast and returns the new one.
func (b *Board) Show(kind domain.Feedback) Toast {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	t := Toast{ID: b.seq, Kind: kind, Message: kind.Message()}
	b.current = &t
	return t
}

// Dismiss hides the toast with the given id. It reports false when that toast
// was already superseded or dismissed.
func (b *Board) Dismiss(id uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil || b.current.ID != id {
		return false
	}
	b.current = nil
	return true
}

// Current returns the visible toast, if any.
func (b *Board) Current() (Toast, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return Toast{}, false
	}
	return *b.current, true
}
