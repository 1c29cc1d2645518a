// Package registry maps arena IDs to game factories. Arenas come from the
// loaded configuration, so they are registered at startup rather than in
// package init functions.
package registry

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/arena2d/internal/core"
)

// ErrUnknown is returned when an ID has no registered factory.
var ErrUnknown = errors.New("registry: unknown game")

// Game is a playable arena. Implementations know nothing about the
// terminal: the platform maps keys to actions, owns the clock and shows
// the screen buffer.
type Game interface {
	// ID names the game on the command line and in stored runs.
	ID() string

	// Title is shown in menus.
	Title() string

	// Reset spawns the level afresh. It runs once at start and on every
	// respawn.
	Reset(cfg core.RuntimeConfig)

	// Step advances by dt seconds of wall time. Movement actions in the
	// frame are held keys; the rest fire once.
	Step(in core.InputFrame, dt float64) core.StepResult

	// Render draws into a cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// Summarizer is implemented by games whose runs can be stored.
type Summarizer interface {
	Summary() core.RunSummary
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a fresh game.
type Factory func() Game

type entry struct {
	title string
	build Factory
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register adds a factory under id. Registering the same id twice is a
// programming error and panics.
func Register(id string, f Factory) {
	title := f().Title()

	mu.Lock()
	defer mu.Unlock()
	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{title: title, build: f}
}

// Unregister removes id. Unknown IDs are ignored.
func Unregister(id string) {
	mu.Lock()
	delete(entries, id)
	mu.Unlock()
}

// List returns every registered game ordered by ID.
func List() []GameInfo {
	mu.RLock()
	out := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		out = append(out, GameInfo{ID: id, Title: e.title})
	}
	mu.RUnlock()

	slices.SortFunc(out, func(a, b GameInfo) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Create builds a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknown, id)
	}
	return e.build(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}
