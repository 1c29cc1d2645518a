package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arena2d/internal/registry"
	"github.com/vovakirdan/arena2d/internal/storage"
)

// Run history layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the arena sidebar
	sidebarWidth       = 20  // Width of the arena sidebar
	maxRuns            = 100 // Max runs to load per arena
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// RunsKeyMap defines the key bindings for the run history.
type RunsKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextArena key.Binding
	PrevArena key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextArena, k.PrevArena, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextArena, k.PrevArena},
		{k.Back, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextArena: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next arena"),
		),
		PrevArena: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev arena"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for browsing stored runs.
type RunsModel struct {
	arenas    []registry.GameInfo
	cursor    int
	store     *storage.Store
	runs      []storage.Run
	stats     *storage.ArenaStats
	table     table.Model
	help      help.Model
	keys      RunsKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewRunsModel creates a run history model starting at the first arena.
func NewRunsModel(store *storage.Store, width, height int) RunsModel {
	h := help.New()
	h.Width = width

	m := RunsModel{
		arenas: registry.List(),
		store:  store,
		keys:   DefaultRunsKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()

	if len(m.arenas) > 0 {
		m.load(m.arenas[0].ID)
	}
	return m
}

func (m RunsModel) wide() bool {
	return m.width >= minWidthForSidebar
}

// createTable sizes the run table to the current window.
func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Distance", Width: 10},
		{Title: "Time", Width: 8},
		{Title: "Hits", Width: 6},
		{Title: "Stops", Width: 6},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches the runs and totals of one arena.
func (m *RunsModel) load(arenaID string) {
	m.runs, m.stats = nil, nil
	if m.store != nil {
		if runs, err := m.store.RecentRuns(arenaID, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.ArenaStats(arenaID); err == nil {
			m.stats = stats
		}
	}
	m.updateRows()
}

func (m *RunsModel) updateRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.2fm", r.Distance),
			fmt.Sprintf("%.1fs", r.Elapsed),
			fmt.Sprintf("%d", r.Contacts),
			fmt.Sprintf("%d", r.Rejections),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *RunsModel) step(delta int) {
	if len(m.arenas) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.arenas)) % len(m.arenas)
	m.load(m.arenas[m.cursor].ID)
}

// Init initializes the model.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run history.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextArena):
			m.step(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevArena):
			m.step(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run history.
func (m RunsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "RUNS"
	if len(m.arenas) > 0 {
		title = "RUNS - " + m.arenas[m.cursor].Title
	}
	b.WriteString(centerText(activeStyle.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render(m.summary()), m.width))
	b.WriteString("\n\n")

	content := panelStyle.Render(m.tableContent())
	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", content))
	} else {
		b.WriteString(centerText(m.tabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(content)
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// summary is the one-line total for the current arena.
func (m RunsModel) summary() string {
	if m.stats == nil || m.stats.Runs == 0 {
		return "no runs"
	}
	s := m.stats
	return fmt.Sprintf("%d runs  best %.2fm  avg %.2fm  %.0fs played  %d hits  %d stops",
		s.Runs, s.BestDistance, s.AvgDistance(), s.TotalTime, s.Contacts, s.Rejections)
}

func (m RunsModel) sidebar() string {
	var sb strings.Builder
	sb.WriteString("Arenas\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, a := range m.arenas {
		if i == m.cursor {
			sb.WriteString(activeStyle.Render("> " + a.Title))
		} else {
			sb.WriteString("  " + a.Title)
		}
		sb.WriteString("\n")
	}
	return panelStyle.Width(sidebarWidth).Render(sb.String())
}

func (m RunsModel) tabs() string {
	if len(m.arenas) == 0 {
		return ""
	}
	return fmt.Sprintf("< %s >", m.arenas[m.cursor].Title)
}

func (m RunsModel) tableContent() string {
	if len(m.runs) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("No runs recorded yet.\nPlay this arena to start a history!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RunsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunsModel) IsQuitting() bool {
	return m.quitting
}
