package components

import (
	"fmt"
	"math"

	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// HealthyLTVRatio is the LTV:CAC ratio at which a cohort is considered healthy.
const HealthyLTVRatio = 3.0

// ColorForRatio returns red/orange/yellow/green for an LTV:CAC ratio.
func ColorForRatio(ratio float64) lipgloss.Color {
	t := theme.Active
	switch {
	case ratio >= HealthyLTVRatio:
		return t.Profit
	case ratio >= 2:
		return t.Caution
	case ratio >= 1:
		return t.Warning
	default:
		return t.Loss
	}
}

// ProgressBar renders a solid bar filled to pct (clamped to [0,1]) followed
// by the percentage.
func ProgressBar(pct float64, width int, color lipgloss.Color) string {
	t := theme.Active
	pct = max(0, min(pct, 1))

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")
	return bar.ViewAs(pct) + space + pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}

// RatioBar renders a labelled bar showing ratio against HealthyLTVRatio.
// An infinite ratio fills the bar.
func RatioBar(label string, ratio float64, labelW, barWidth int) string {
	t := theme.Active
	color := ColorForRatio(ratio)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	value := fmt.Sprintf("%.1fx", ratio)
	if math.IsInf(ratio, 1) {
		value = "∞"
	}
	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) + space +
		bar.ViewAs(max(0, min(ratio/HealthyLTVRatio, 1))) + space +
		valueStyle.Render(value)
}
