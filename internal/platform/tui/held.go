package tui

import (
	"time"

	"github.com/vovakirdan/arena2d/internal/core"
)

// DefaultHoldWindow is how long a movement key counts as held after its
// last press. Terminals only report presses and auto-repeats, never
// releases, so a key is released by letting the window lapse.
const DefaultHoldWindow = 300 * time.Millisecond

// heldKeys tracks movement keys from repeated press events.
type heldKeys struct {
	window time.Duration
	last   map[core.Action]time.Time
}

func newHeldKeys(window time.Duration) *heldKeys {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &heldKeys{
		window: window,
		last:   make(map[core.Action]time.Time),
	}
}

// press records a movement key. Pressing a direction releases its opposite.
func (h *heldKeys) press(a core.Action, now time.Time) {
	if !a.IsMovement() {
		return
	}
	delete(h.last, a.Opposite())
	h.last[a] = now
}

// apply marks every key still inside its window as held in the frame and
// forgets the ones that lapsed.
func (h *heldKeys) apply(frame *core.InputFrame, now time.Time) {
	for a, t := range h.last {
		if now.Sub(t) > h.window {
			delete(h.last, a)
			continue
		}
		frame.Set(a)
	}
}

// reset releases every key.
func (h *heldKeys) reset() {
	clear(h.last)
}
