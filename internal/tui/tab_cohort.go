package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderCohortTab(cw int) string {
	t := theme.Active
	c := a.cohort
	s := a.cohortSummary
	var b strings.Builder

	ltv := cli.FormatInfinite(s.LTV)
	if !math.IsInf(s.LTV, 0) {
		ltv = a.money(s.LTV)
	}
	payback := "never"
	if s.CACPaybackMonths > 0 {
		payback = fmt.Sprintf("%d months", s.CACPaybackMonths)
	}
	if a.cac <= 0 {
		payback = "no CAC set"
	}

	metrics := []components.Metric{
		{Label: "Lifetime value", Value: ltv,
			Delta: fmt.Sprintf("%s churn/mo", cli.FormatPercent(c.ChurnRate))},
		{Label: "CAC payback", Value: payback, Delta: "CAC " + a.money(a.cac)},
		{Label: "Customers left", Value: cli.FormatNumber(int64(s.FinalCustomers)),
			Delta: fmt.Sprintf("of %s", cli.FormatNumber(int64(c.InitialCustomers)))},
		{Label: "Cohort margin", Value: a.compactMoney(s.FinalCumulativeMargin),
			Tone: components.ToneFor(s.FinalCumulativeMargin)},
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	if len(a.cohortRecords) == 0 {
		b.WriteString(components.ContentCard("Cohort", "No months to project.", cw))
		return b.String()
	}

	customers := make([]float64, len(a.cohortRecords))
	margin := make([]float64, len(a.cohortRecords))
	for i, r := range a.cohortRecords {
		customers[i] = float64(r.Customers)
		margin[i] = r.CumulativeMargin
	}
	labels := monthLabels(len(a.cohortRecords))

	chartH := 10
	widths := []int{cw}
	if !a.isCompactLayout() {
		widths = components.LayoutRow(cw, 2)
	} else {
		chartH = 7
	}
	cards := []string{
		components.ContentCard("Active Customers",
			components.BarChart(customers, labels, t.Series, components.CardInnerWidth(widths[0]), chartH), widths[0]),
		components.ContentCard("Cumulative Margin",
			components.SignedBarChart(margin, labels, components.CardInnerWidth(widths[len(widths)-1]), chartH),
			widths[len(widths)-1]),
	}
	if len(widths) == 1 {
		b.WriteString(strings.Join(cards, "\n"))
	} else {
		b.WriteString(components.CardRow(cards))
	}
	b.WriteString("\n")

	b.WriteString(components.ContentCard("Unit Economics", a.renderUnitEconomics(components.CardInnerWidth(cw)), cw))
	return b.String()
}

// renderUnitEconomics shows the LTV:CAC ratio and how much of the cohort's
// acquisition spend its margin has recovered by the end of the window.
func (a App) renderUnitEconomics(innerW int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if a.cac <= 0 {
		return mutedStyle.Render("Set an acquisition cost (e) to see LTV:CAC and payback progress.")
	}

	const labelW = 16
	barW := max(10, innerW-labelW-10)

	ratio := a.cohortSummary.LTV / a.cac
	spend := a.cac * float64(a.cohort.InitialCustomers)
	recovered := 0.0
	if spend > 0 {
		recovered = a.cohortSummary.FinalCumulativeMargin / spend
	}

	var b strings.Builder
	b.WriteString(components.RatioBar("LTV:CAC", ratio, labelW, barW))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%-*s", labelW, "CAC recovered")))
	b.WriteString(mutedStyle.Render(" "))
	b.WriteString(components.ProgressBar(recovered, barW, components.ColorForRatio(recovered*components.HealthyLTVRatio)))
	return b.String()
}
