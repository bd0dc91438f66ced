package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderScenariosTab(cw, h int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if a.store == nil {
		return components.ContentCard("Scenarios",
			mutedStyle.Render("No scenario store is configured. Check [store] in the config file."), cw)
	}

	widths := []int{cw}
	if !a.isCompactLayout() {
		widths = []int{cw / 2, cw - cw/2}
	}

	list := components.ContentCard(
		fmt.Sprintf("Saved Scenarios (%d)", len(a.scen.names)),
		a.renderScenarioList(components.CardInnerWidth(widths[0]), h-6),
		widths[0],
	)
	current := components.ContentCard("Current Inputs", a.renderCurrent(), widths[len(widths)-1])

	if len(widths) == 1 {
		return list + "\n" + current
	}
	return components.CardRow([]string{list, current})
}

func (a App) renderScenarioList(innerW, rows int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(t.Loss).Background(t.Surface)
	okStyle := lipgloss.NewStyle().Foreground(t.Profit).Background(t.Surface)

	var b strings.Builder
	switch {
	case a.scen.loading:
		b.WriteString(a.spinner.View())
		b.WriteString(mutedStyle.Render(" Loading scenarios..."))
		b.WriteString("\n")
	case len(a.scen.names) == 0:
		b.WriteString(mutedStyle.Render("No saved scenarios yet. Press s to save the current inputs."))
		b.WriteString("\n")
	default:
		rows = max(3, rows)
		start := 0
		if a.scen.cursor >= rows {
			start = a.scen.cursor - rows + 1
		}
		end := min(len(a.scen.names), start+rows)
		for i := start; i < end; i++ {
			name := truncStr(a.scen.names[i], innerW-2)
			if i == a.scen.cursor {
				b.WriteString(selStyle.Render(fmt.Sprintf("▸ %-*s", innerW-2, name)))
			} else {
				b.WriteString(rowStyle.Render("  " + name))
			}
			b.WriteString("\n")
		}
	}

	if a.scen.naming {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Save as: "))
		b.WriteString(a.scen.input.View())
		b.WriteString("\n")
	}
	switch {
	case a.scen.err != nil:
		b.WriteString("\n")
		b.WriteString(errStyle.Render(truncStr(a.scen.err.Error(), innerW)))
	case a.scen.status != "":
		b.WriteString("\n")
		b.WriteString(okStyle.Render(a.scen.status))
	}
	return b.String()
}

func (a App) renderCurrent() string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	b.WriteString(a.renderInputs())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%-14s", "Trend")))
	b.WriteString(projectionSparkline(a.records))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%-14s", "Break-even")))
	b.WriteString(mutedStyle.Render(cli.FormatMonth(a.summary.BreakEvenMonth)))
	return b.String()
}
