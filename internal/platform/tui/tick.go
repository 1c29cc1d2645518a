// Package tui runs arenas in a terminal with Bubble Tea: the play loop with
// held-key input, the arena picker, the stored runs browser and the SSH
// server that serves all of them.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives one simulation step. It carries the wall time it fired at
// so the model can measure frame length.
type TickMsg time.Time

// tickCmd schedules the next tick at rate per second, 60 when unset.
func tickCmd(rate int) tea.Cmd {
	if rate <= 0 {
		rate = 60
	}
	return tea.Tick(time.Second/time.Duration(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
