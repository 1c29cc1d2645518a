package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Frames per second requested from the platform
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// FrameTime returns the nominal frame length in seconds.
func (c RuntimeConfig) FrameTime() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Paused     bool
	Debug      bool    // debug overlay shown
	Ticks      int     // simulated frames
	Distance   float64 // meters travelled
	Contacts   int
	Rejections int
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State   GameState
	Touched bool // the player ended the frame on a surface
}

// RunSummary describes a run for persistence.
type RunSummary struct {
	GameID      string
	Fingerprint string // layout hash of the level
	Ticks       int
	Elapsed     float64 // simulated seconds
	Distance    float64
	Contacts    int
	Rejections  int
}
