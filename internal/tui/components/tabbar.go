package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab is one entry of the dashboard tab bar.
type Tab struct {
	Name string
	Key  rune
}

// Tabs defines all available tabs in display order.
var Tabs = []Tab{
	{Name: "Projection", Key: '1'},
	{Name: "Cohort", Key: '2'},
	{Name: "Sensitivity", Key: '3'},
	{Name: "Scenarios", Key: '4'},
}

const tabGap = 2

func tabLabel(tab Tab) string {
	return fmt.Sprintf("%c %s", tab.Key, tab.Name)
}

// TabVisualWidth returns the rendered width of tab i, without the gap.
func TabVisualWidth(i int) int {
	if i < 0 || i >= len(Tabs) {
		return 0
	}
	return lipgloss.Width(tabLabel(Tabs[i]))
}

// TabAtX maps a column of the tab bar to a tab index, or -1 when x falls
// on padding between tabs.
func TabAtX(x int) int {
	pos := 1 // leading space
	for i := range Tabs {
		w := TabVisualWidth(i)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + tabGap
	}
	return -1
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.AccentDim).
		Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Background)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background)
	fill := lipgloss.NewStyle().Background(t.Background)

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		if i == activeIdx {
			parts[i] = activeStyle.Render(tabLabel(tab))
			continue
		}
		parts[i] = keyStyle.Render(string(tab.Key)) + nameStyle.Render(" "+tab.Name)
	}

	bar := fill.Render(" ") + strings.Join(parts, fill.Render(strings.Repeat(" ", tabGap)))
	if pad := width - lipgloss.Width(bar); pad > 0 {
		bar += fill.Render(strings.Repeat(" ", pad))
	}
	return bar
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
