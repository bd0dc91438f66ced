package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderSensitivityTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	b.WriteString(lipgloss.PlaceHorizontal(cw, lipgloss.Left,
		pillStyle.Render(" Varying ")+accentStyle.Render(a.varied().Label())+
			pillStyle.Render(" by ±")+accentStyle.Render(fmt.Sprintf("%.0f%%", a.variation*100))+
			pillStyle.Render("  [v] next parameter  [+/-] range "),
		lipgloss.WithWhitespaceBackground(t.Surface)))
	b.WriteString("\n")

	widths := []int{cw}
	if !a.isCompactLayout() {
		widths = components.LayoutRow(cw, 2)
	}

	profits := make([]float64, len(a.sweep))
	labels := make([]string, len(a.sweep))
	for i, p := range a.sweep {
		profits[i] = p.FinalCumulativeProfit
		labels[i] = cli.FormatChange(p.ChangePercent)
	}
	chart := components.ContentCard("Final Profit by Change",
		components.SignedBarChart(profits, labels, components.CardInnerWidth(widths[0]), 8), widths[0])
	table := components.ContentCard("Sweep", a.renderSweepTable(), widths[len(widths)-1])

	if len(widths) == 1 {
		b.WriteString(chart + "\n" + table)
	} else {
		b.WriteString(components.CardRow([]string{chart, table}))
	}
	b.WriteString("\n")

	b.WriteString(components.ContentCard("Tornado: what moves final profit most",
		a.renderTornado(components.CardInnerWidth(cw)), cw))
	return b.String()
}

func (a App) renderSweepTable() string {
	t := theme.Active
	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	cellStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	baseStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf("%-8s %-13s %14s", "Change", "Break-even", "Final profit")))
	b.WriteString("\n")
	for _, p := range a.sweep {
		style := cellStyle
		if p.ChangePercent == 0 {
			style = baseStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%-8s %-13s ",
			cli.FormatChange(p.ChangePercent), cli.FormatMonth(p.BreakEvenMonth))))
		b.WriteString(lipgloss.NewStyle().
			Foreground(t.Signed(p.FinalCumulativeProfit)).
			Background(t.Surface).
			Render(fmt.Sprintf("%14s", a.compactMoney(p.FinalCumulativeProfit))))
		b.WriteString("\n")
	}
	return b.String()
}

// renderTornado draws one spread bar per parameter around the unperturbed
// final profit, widest first.
func (a App) renderTornado(innerW int) string {
	t := theme.Active
	if len(a.tornado) == 0 {
		return ""
	}
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	loss := lipgloss.NewStyle().Foreground(t.Loss).Background(t.Surface)
	gain := lipgloss.NewStyle().Foreground(t.Profit).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	base := a.summary.FinalCumulativeProfit
	maxSpread := 0.0
	for _, r := range a.tornado {
		maxSpread = max(maxSpread, r.HighProfit-base, base-r.LowProfit)
	}

	const nameW = 16
	rangeW := 24
	half := max(4, (innerW-nameW-rangeW-3)/2)

	var b strings.Builder
	for _, r := range a.tornado {
		left, right := 0, 0
		if maxSpread > 0 {
			left = int((base - r.LowProfit) / maxSpread * float64(half))
			right = int((r.HighProfit - base) / maxSpread * float64(half))
		}
		left = max(0, min(left, half))
		right = max(0, min(right, half))

		marker := nameStyle
		if r.Parameter == a.varied() {
			marker = marker.Foreground(t.Accent).Bold(true)
		}
		b.WriteString(marker.Render(fmt.Sprintf("%-*s", nameW, r.Parameter.Label())))
		b.WriteString(blank.Render(strings.Repeat(" ", half-left)))
		b.WriteString(loss.Render(strings.Repeat("█", left)))
		b.WriteString(dimStyle.Render("│"))
		b.WriteString(gain.Render(strings.Repeat("█", right)))
		b.WriteString(blank.Render(strings.Repeat(" ", half-right+1)))
		b.WriteString(dimStyle.Render(fmt.Sprintf("%s … %s",
			a.compactMoney(r.LowProfit), a.compactMoney(r.HighProfit))))
		b.WriteString("\n")
	}
	return b.String()
}
