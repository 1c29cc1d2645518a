package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arena2d/internal/core"
	"github.com/vovakirdan/arena2d/internal/registry"
	"github.com/vovakirdan/arena2d/internal/storage"
)

// Options configure how games are played.
type Options struct {
	Store      *storage.Store // nil disables run history
	Logger     *log.Logger
	FixedStep  bool          // step by 1/fps instead of measured wall time
	HoldWindow time.Duration // zero uses DefaultHoldWindow
}

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for playing one arena.
type Model struct {
	game     registry.Game
	screen   *core.Screen
	opts     Options
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	held     *heldKeys
	pending  core.InputFrame // one-shot actions since the last tick
	now      func() time.Time
	lastTick time.Time
	state    core.GameState

	lastRun    string // id of the most recently stored run
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH-1),
		opts:    opts,
		config:  cfg,
		keys:    DefaultKeyMap(),
		help:    h,
		held:    newHeldKeys(opts.HoldWindow),
		pending: core.NewInputFrame(),
		now:     time.Now,
	}
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height-1)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input. Directions are held, everything
// else is queued for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch a := m.keys.Action(msg); {
	case a == core.ActionQuit:
		m.saveRun()
		m.quitting = true
		return m, tea.Quit

	case a == core.ActionBack:
		m.saveRun()
		m.backToMenu = true
		return m, tea.Quit

	case a.IsMovement():
		m.held.press(a, m.now())

	case a != core.ActionNone:
		m.pending.Set(a)
	}

	return m, nil
}

// handleTick steps the game by the time since the previous tick, or by
// the nominal frame time in fixed-step mode.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := m.config.FrameTime()
	if !m.opts.FixedStep && !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick).Seconds()
	}
	m.lastTick = now

	frame := core.NewInputFrame()
	for a, on := range m.pending.Actions {
		if on {
			frame.Set(a)
		}
	}
	m.held.apply(&frame, now)
	m.pending.Clear()

	if frame.Has(core.ActionRestart) {
		m.saveRun()
		m.held.reset()
	}

	result := m.game.Step(frame, dt)
	m.state = result.State

	return m, tickCmd(m.config.TickRate)
}

// saveRun stores the current run once it has simulated anything.
// Failures are logged; play continues regardless.
func (m *Model) saveRun() {
	if m.opts.Store == nil {
		return
	}
	s, ok := m.game.(registry.Summarizer)
	if !ok {
		return
	}
	sum := s.Summary()
	if sum.Ticks == 0 {
		return
	}

	id, err := m.opts.Store.SaveRun(sum)
	if err != nil {
		if m.opts.Logger != nil {
			m.opts.Logger.Warn("could not save run", "arena", sum.GameID, "error", err)
		}
		return
	}
	m.lastRun = id
	if m.opts.Logger != nil {
		m.opts.Logger.Debug("run saved", "id", id, "arena", sum.GameID, "distance", sum.Distance)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arena", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the arena and the key help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + footerStyle.Render(m.help.View(m.keys))
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// LastRun returns the id of the most recently stored run, if any.
func (m Model) LastRun() string {
	return m.lastRun
}

// Run plays a single game until the user quits or goes back.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
