package components

import (
	"strings"

	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left and
// the current parameter source on the right.
func RenderStatusBar(width int, hints, source string) string {
	t := theme.Active

	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	sourceStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	fill := lipgloss.NewStyle().Background(t.Surface)

	left := hintStyle.Render(" " + hints)
	right := ""
	if source != "" {
		right = sourceStyle.Render(source + " ")
	}

	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + fill.Render(strings.Repeat(" ", padding)) + right
}
