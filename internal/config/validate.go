package config

import (
	"errors"
	"fmt"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks the config for values the arena cannot run with.
func (c ArenaConfig) Validate() error {
	p := c.Physics
	switch {
	case p.Speed <= 0:
		return fmt.Errorf("%w: physics.speed must be positive, got %v", ErrInvalid, p.Speed)
	case p.Damping < 0:
		return fmt.Errorf("%w: physics.damping must not be negative, got %v", ErrInvalid, p.Damping)
	case p.MaxSlideIterations < 1 || p.MaxSlideIterations > 16:
		return fmt.Errorf("%w: physics.max_slide_iterations must be in [1, 16], got %d", ErrInvalid, p.MaxSlideIterations)
	case p.MaxDT <= 0:
		return fmt.Errorf("%w: physics.max_dt must be positive, got %v", ErrInvalid, p.MaxDT)
	}

	if c.Render.CellsPerMeterX <= 0 || c.Render.CellsPerMeterY <= 0 {
		return fmt.Errorf("%w: render cells per meter must be positive", ErrInvalid)
	}

	if len(c.Levels) == 0 {
		return fmt.Errorf("%w: no levels", ErrInvalid)
	}

	seen := make(map[string]bool, len(c.Levels))
	for _, l := range c.Levels {
		if l.ID == "" {
			return fmt.Errorf("%w: level without id", ErrInvalid)
		}
		if seen[l.ID] {
			return fmt.Errorf("%w: duplicate level %q", ErrInvalid, l.ID)
		}
		seen[l.ID] = true
		if err := l.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a single level layout.
func (l Level) Validate() error {
	players := 0
	for i, b := range l.Bodies {
		switch b.Kind {
		case KindPlayer:
			players++
		case KindWall, KindPillar, KindCrate:
		default:
			return fmt.Errorf("%w: level %q body %d: unknown kind %q", ErrInvalid, l.ID, i, b.Kind)
		}
		if b.Box.X < 0 || b.Box.Y < 0 || b.Radius < 0 {
			return fmt.Errorf("%w: level %q body %d: negative extent", ErrInvalid, l.ID, i)
		}
	}
	if players != 1 {
		return fmt.Errorf("%w: level %q needs exactly one player, has %d", ErrInvalid, l.ID, players)
	}
	return nil
}
