// Package arena implements the playable arenas: one player body steered by
// the held direction keys through a level of static obstacles.
package arena

import (
	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/arena2d/internal/config"
	"github.com/vovakirdan/arena2d/internal/core"
	"github.com/vovakirdan/arena2d/internal/registry"
	"github.com/vovakirdan/arena2d/internal/world"
)

// Game implements one arena level.
type Game struct {
	level   config.Level
	physics config.PhysicsConfig
	render  config.RenderConfig
	logger  *log.Logger

	world   *world.World
	err     error // spawn failure, shown instead of the level
	runtime core.RuntimeConfig

	paused  bool
	debug   bool
	touched bool
	held    []core.Action
	fps     fpsMeter
}

// Option configures a Game.
type Option func(*Game)

// WithLogger passes a logger down to the world for collision diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		g.logger = l
	}
}

// New creates a game for the given level. Call Reset before stepping.
func New(level config.Level, cfg config.ArenaConfig, opts ...Option) *Game {
	g := &Game{
		level:   level,
		physics: cfg.Physics,
		render:  cfg.Render,
		debug:   cfg.Render.Debug,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the level id.
func (g *Game) ID() string {
	return g.level.ID
}

// Title returns the level title, falling back to the id.
func (g *Game) Title() string {
	if g.level.Title == "" {
		return g.level.ID
	}
	return g.level.Title
}

// Reset respawns the level. A level that fails validation leaves the game
// without a world; Err reports why.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.paused = false
	g.touched = false
	g.held = nil
	g.fps = fpsMeter{}

	g.world, g.err = world.New(g.level, g.physics, world.WithLogger(g.logger))
	if g.err != nil && g.logger != nil {
		g.logger.Error("failed to spawn level", "level", g.level.ID, "err", g.err)
	}
}

// Err returns the error from the last Reset, if any.
func (g *Game) Err() error {
	return g.err
}

// World returns the simulation, or nil when the level failed to spawn.
func (g *Game) World() *world.World {
	return g.world
}

// Step advances the arena by dt seconds.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	if in.Has(core.ActionDebug) {
		g.debug = !g.debug
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if in.Has(core.ActionRestart) {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	g.fps.add(dt)
	g.held = in.Held()

	if g.world == nil || g.paused {
		return core.StepResult{State: g.State(), Touched: g.touched}
	}

	dt = core.ClampF(dt, 0, g.physics.MaxDT)
	res := g.world.Step(dt, Direction(in))
	g.touched = res.Hits > 0 || res.Rejected

	return core.StepResult{State: g.State(), Touched: g.touched}
}

// Direction converts the held movement actions into a unit vector with y
// pointing up. Opposing keys cancel; no keys gives the zero vector.
func Direction(in core.InputFrame) r2.Vec {
	var d r2.Vec
	if in.Has(core.ActionRight) {
		d.X++
	}
	if in.Has(core.ActionLeft) {
		d.X--
	}
	if in.Has(core.ActionUp) {
		d.Y++
	}
	if in.Has(core.ActionDown) {
		d.Y--
	}
	if d == (r2.Vec{}) {
		return d
	}
	return r2.Unit(d)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Paused: g.paused,
		Debug:  g.debug,
	}
	if g.world == nil {
		return st
	}
	s := g.world.Stats()
	st.Ticks = s.Ticks
	st.Distance = s.Distance
	st.Contacts = s.Contacts
	st.Rejections = s.Rejections
	return st
}

// Summary describes the run so far for persistence.
func (g *Game) Summary() core.RunSummary {
	sum := core.RunSummary{
		GameID:      g.level.ID,
		Fingerprint: g.level.FingerprintHex(),
	}
	if g.world == nil {
		return sum
	}
	s := g.world.Stats()
	sum.Ticks = s.Ticks
	sum.Elapsed = s.Elapsed
	sum.Distance = s.Distance
	sum.Contacts = s.Contacts
	sum.Rejections = s.Rejections
	return sum
}

// lastNormal returns the most recent contact normal, if the last frame had one.
func (g *Game) lastNormal() (r2.Vec, bool) {
	if g.world == nil {
		return r2.Vec{}, false
	}
	return g.world.Last().LastNormal()
}

// Register adds one game per configured level to the registry.
func Register(cfg config.ArenaConfig, opts ...Option) {
	for _, level := range cfg.Levels {
		registry.Register(level.ID, func() registry.Game {
			return New(level, cfg, opts...)
		})
	}
}

var (
	_ registry.Game       = (*Game)(nil)
	_ registry.Summarizer = (*Game)(nil)
)
