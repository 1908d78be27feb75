package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vovakirdan/skyflap/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:    lipgloss.NewStyle(),
	core.ColorSky:        lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
	core.ColorCloud:      lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	core.ColorGround:     lipgloss.NewStyle().Foreground(lipgloss.Color("137")),
	core.ColorGrass:      lipgloss.NewStyle().Foreground(lipgloss.Color("70")),
	core.ColorBird:       lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	core.ColorWindowLit:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
	core.ColorWindowDark: lipgloss.NewStyle().Foreground(lipgloss.Color("237")),
	core.ColorBrick:      lipgloss.NewStyle().Foreground(lipgloss.Color("131")),
	core.ColorSienna:     lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	core.ColorSlate:      lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
	core.ColorUmber:      lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
	core.ColorSand:       lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
	core.ColorSteel:      lipgloss.NewStyle().Foreground(lipgloss.Color("67")),
	core.ColorTaupe:      lipgloss.NewStyle().Foreground(lipgloss.Color("138")),
	core.ColorBark:       lipgloss.NewStyle().Foreground(lipgloss.Color("95")),
	core.ColorTitle:      lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorGold:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	core.ColorMuted:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
