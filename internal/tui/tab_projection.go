package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) money(v float64) string {
	return cli.FormatMoney(v, a.cfg.General.CurrencyLabel)
}

func (a App) compactMoney(v float64) string {
	return cli.FormatCompactMoney(v, a.cfg.General.CurrencyLabel)
}

func (a App) renderProjectionTab(cw int) string {
	s := a.summary
	var b strings.Builder

	beUnits := "n/a"
	if s.BreakEvenUnitsOK {
		beUnits = cli.FormatNumber(int64(math.Ceil(s.BreakEvenUnits))) + " units/mo"
	}
	metrics := []components.Metric{
		{Label: "Break-even", Value: cli.FormatMonth(s.BreakEvenMonth), Delta: beUnits},
		{Label: "Final profit", Value: a.compactMoney(s.FinalCumulativeProfit),
			Tone: components.ToneFor(s.FinalCumulativeProfit)},
		{Label: "Total revenue", Value: a.compactMoney(s.TotalRevenue),
			Delta: "var. costs " + a.compactMoney(s.TotalVariableCosts)},
		{Label: "Peak units", Value: cli.FormatNumber(int64(s.PeakUnits)),
			Delta: fmt.Sprintf("%s growth/mo", cli.FormatPercent(a.params.MonthlyGrowthRate))},
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	if len(a.records) == 0 {
		b.WriteString(components.ContentCard("Projection", "No months to project.", cw))
		return b.String()
	}

	cumulative := make([]float64, len(a.records))
	monthly := make([]float64, len(a.records))
	for i, r := range a.records {
		cumulative[i] = r.CumulativeProfit
		monthly[i] = r.Profit
	}
	labels := monthLabels(len(a.records))

	if a.isCompactLayout() {
		chartH := 7
		b.WriteString(components.ContentCard("Cumulative Profit",
			components.SignedBarChart(cumulative, labels, components.CardInnerWidth(cw), chartH), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Monthly Profit",
			components.SignedBarChart(monthly, labels, components.CardInnerWidth(cw), chartH), cw))
	} else {
		chartH := 10
		halves := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			components.ContentCard("Cumulative Profit",
				components.SignedBarChart(cumulative, labels, components.CardInnerWidth(halves[0]), chartH), halves[0]),
			components.ContentCard("Monthly Profit",
				components.SignedBarChart(monthly, labels, components.CardInnerWidth(halves[1]), chartH), halves[1]),
		}))
	}
	b.WriteString("\n")

	if a.isCompactLayout() {
		table := a.renderMonthlyTable(components.CardInnerWidth(cw))
		b.WriteString(components.ContentCard("Monthly Breakdown", table, cw))
		return b.String()
	}
	widths := []int{cw / 3, cw - cw/3}
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Inputs", a.renderInputs(), widths[0]),
		components.ContentCard("Monthly Breakdown", a.renderMonthlyTable(components.CardInnerWidth(widths[1])), widths[1]),
	}))
	return b.String()
}

func (a App) renderInputs() string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	p := a.params
	rows := [][2]string{
		{"Fixed costs", a.money(p.FixedCosts) + "/mo"},
		{"Price", a.money(p.Price)},
		{"Variable cost", a.money(p.VariableCost)},
		{"Unit margin", a.money(p.UnitMargin())},
		{"Initial units", cli.FormatNumber(int64(p.InitialUnits))},
		{"Growth", cli.FormatPercent(p.MonthlyGrowthRate) + "/mo"},
		{"Window", cli.FormatMonths(p.Months)},
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-14s", r[0])))
		b.WriteString(valueStyle.Render(r[1]))
		b.WriteString("\n")
	}
	return b.String()
}

// renderMonthlyTable lists the projection one month per row; the break-even
// month is highlighted.
func (a App) renderMonthlyTable(innerW int) string {
	t := theme.Active
	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	cellStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	markStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	colW := max(10, (innerW-6)/5)
	row := func(month string, cells ...string) string {
		var b strings.Builder
		fmt.Fprintf(&b, "%5s ", month)
		for _, c := range cells {
			fmt.Fprintf(&b, "%*s", colW, truncStr(c, colW-1))
		}
		return b.String()
	}

	var b strings.Builder
	b.WriteString(headStyle.Render(row("Month", "Units", "Revenue", "Var. costs", "Profit", "Cumulative")))
	b.WriteString("\n")
	for _, r := range a.records {
		line := row(fmt.Sprint(r.Month),
			cli.FormatNumber(int64(r.Units)),
			a.compactMoney(r.Revenue),
			a.compactMoney(r.VariableCosts),
			a.compactMoney(r.Profit),
			a.compactMoney(r.CumulativeProfit))
		style := cellStyle
		if r.Month == a.summary.BreakEvenMonth {
			style = markStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// projectionSparkline is the one-line cumulative profit trend used by the
// Scenarios tab preview.
func projectionSparkline(records []model.MonthlyRecord) string {
	if len(records) == 0 {
		return ""
	}
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = r.CumulativeProfit
	}
	return components.Sparkline(values, theme.Active.Signed(values[len(values)-1]))
}
