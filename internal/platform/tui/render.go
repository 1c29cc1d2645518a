package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arena2d/internal/core"
)

// colorStyles maps semantic colors to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorGrid:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	core.ColorWall:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorPillar:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorCrate:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGhost:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Faint(true),
	core.ColorPlayer:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorContact: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorOverlay: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorTitle:   lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true),
	core.ColorWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one style run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Leave room for the escape codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color into one styled run
		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			// Unknown colors render unstyled
			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
