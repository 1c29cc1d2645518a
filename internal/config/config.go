// Package config provides YAML-based arena configuration loading: physics
// tuning, render scale and the level layouts the arenas are built from.
package config

import (
	"errors"
	"fmt"
)

// ErrUnknownLevel is returned when a level id is not present in the config.
var ErrUnknownLevel = errors.New("config: unknown level")

// ArenaConfig contains all configuration for the arena.
type ArenaConfig struct {
	Physics PhysicsConfig `yaml:"physics"`
	Render  RenderConfig  `yaml:"render"`
	Levels  []Level       `yaml:"levels"`
}

// PhysicsConfig defines the motion parameters of the player.
type PhysicsConfig struct {
	Speed              float64 `yaml:"speed"`                // Acceleration toward the held direction
	Damping            float64 `yaml:"damping"`              // Linear velocity damping
	MaxSlideIterations int     `yaml:"max_slide_iterations"` // Sub-steps per frame
	MaxDT              float64 `yaml:"max_dt"`               // Longest frame in seconds
	FixedStep          bool    `yaml:"fixed_step"`           // Use 1/fps instead of measured frame time
}

// RenderConfig defines how world meters map to terminal cells.
type RenderConfig struct {
	CellsPerMeterX float64 `yaml:"cells_per_meter_x"`
	CellsPerMeterY float64 `yaml:"cells_per_meter_y"`
	Debug          bool    `yaml:"debug"` // Start with the debug overlay shown
}

// Level is one arena layout. Bodies are spawned in order; that order also
// breaks ties between simultaneous contacts.
type Level struct {
	ID     string     `yaml:"id"`
	Title  string     `yaml:"title"`
	Bodies []BodySpec `yaml:"bodies"`
}

// BodySpec describes one body of a level.
type BodySpec struct {
	Kind     string  `yaml:"kind"` // "player", "wall", "pillar" or "crate"
	Name     string  `yaml:"name,omitempty"`
	Position Vec     `yaml:"position"`
	Box      Vec     `yaml:"box,omitempty"`
	Radius   float64 `yaml:"radius,omitempty"`
	Ghost    bool    `yaml:"ghost,omitempty"` // Drawn but never collides
}

// Vec is a point or extent in meters.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Body kinds.
const (
	KindPlayer = "player"
	KindWall   = "wall"
	KindPillar = "pillar"
	KindCrate  = "crate"
)

// Collides reports whether the body takes part in collision.
func (b BodySpec) Collides() bool {
	return !b.Ghost
}

// Level returns the level with the given id.
func (c ArenaConfig) Level(id string) (Level, error) {
	for _, l := range c.Levels {
		if l.ID == id {
			return l, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %q", ErrUnknownLevel, id)
}

// LevelIDs returns the ids of all levels in config order.
func (c ArenaConfig) LevelIDs() []string {
	ids := make([]string, 0, len(c.Levels))
	for _, l := range c.Levels {
		ids = append(ids, l.ID)
	}
	return ids
}

// Player returns the index of the player body, or -1.
func (l Level) Player() int {
	for i, b := range l.Bodies {
		if b.Kind == KindPlayer {
			return i
		}
	}
	return -1
}
