package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arena2d/internal/core"
	"github.com/vovakirdan/arena2d/internal/registry"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewRuns
)

// SessionModel manages the full session flow: menu -> arena or runs -> menu.
// It is the top-level model for SSH sessions and the local menu command.
type SessionModel struct {
	opts     Options
	config   core.RuntimeConfig
	username string
	view     sessionView
	menu     MenuModel
	game     *Model
	runs     RunsModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg core.RuntimeConfig, opts Options, username string) SessionModel {
	return SessionModel{
		opts:     opts,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(opts.Store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active view.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewRuns:
		return m.updateRuns(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.game = nil
	m.menu = NewMenuModel(m.opts.Store, m.config)
	return m, m.menu.Init()
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsRuns() {
		m.view = viewRuns
		m.runs = NewRunsModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		return m, m.runs.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		game, err := registry.Create(selected.GameID)
		if err != nil {
			// Shouldn't happen since the menu only lists registered arenas
			return m.toMenu()
		}

		if m.opts.Logger != nil {
			m.opts.Logger.Info("arena started", "user", m.username, "arena", selected.GameID)
		}
		gm := NewModel(game, m.config, m.opts)
		m.game = &gm
		m.view = viewGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates while an arena is running.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gm, ok := newModel.(Model); ok {
		m.game = &gm
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.toMenu()
	}
	return m, cmd
}

// updateRuns handles updates while browsing the run history.
func (m SessionModel) updateRuns(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.runs.Update(msg)
	if rm, ok := newModel.(RunsModel); ok {
		m.runs = rm
	}

	if m.runs.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.runs.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.game.View()
	case viewRuns:
		return m.runs.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewSessionModel(cfg, opts, "local"),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
