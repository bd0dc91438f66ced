package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var eighths = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline scaled between the series minimum
// and maximum, so negative values are drawn too.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active
	blocks := eighths[1:]

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := 0
		if span > 0 {
			idx = int((v - lo) / span * float64(len(blocks)-1))
		}
		idx = max(0, min(idx, len(blocks)-1))
		buf.WriteRune(blocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// fitBars picks a bar width for n bars within chartW columns, sampling the
// series down when bars would get narrower than two cells.
func fitBars(values []float64, labels []string, chartW int) ([]float64, []string, int, int) {
	n := len(values)
	gap := 1
	if n <= 1 {
		gap = 0
	}
	barW := chartW
	if n > 1 {
		barW = (chartW - (n - 1)) / n
	}
	if barW < 2 && n > 1 {
		keep := max(2, (chartW+1)/3)
		sampled := make([]float64, keep)
		var sampledLabels []string
		if len(labels) == n {
			sampledLabels = make([]string, keep)
		}
		for i := range sampled {
			src := i * (n - 1) / (keep - 1)
			sampled[i] = values[src]
			if sampledLabels != nil {
				sampledLabels[i] = labels[src]
			}
		}
		values, labels, barW = sampled, sampledLabels, 2
	}
	return values, labels, min(barW, 6), gap
}

// BarChart renders a vertical bar chart of non-negative values with a
// labelled Y axis. Negative values are drawn as empty bars; use
// SignedBarChart for series that cross zero.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	ceiling, rows, ticks := yScale(peak, height)

	yLabelW := max(4, len(formatChartLabel(ceiling))+1)
	values, labels, barW, gap := fitBars(values, labels, max(5, width-yLabelW-1))
	n := len(values)

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := rows; row >= 1; row-- {
		top := ceiling * float64(row) / float64(rows)
		bottom := ceiling * float64(row-1) / float64(rows)

		barColor := t.Accent
		if float64(row)/float64(rows) > 0.5 {
			barColor = color
		}
		barStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", yLabelW, ticks[row])))
		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(blank.Render(strings.Repeat(" ", gap)))
			}
			b.WriteString(barStyle.Render(strings.Repeat(string(cellFill(v, bottom, top)), barW)))
		}
		b.WriteString("\n")
	}

	axisLen := n*barW + max(0, n-1)*gap
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└%s", yLabelW, "0", strings.Repeat("─", axisLen))))
	b.WriteString(xAxisLabels(labels, n, barW, gap, yLabelW))
	return b.String()
}

// SignedBarChart renders bars that grow up from a zero axis for positive
// values and down from it for negative ones. Positive bars use the theme's
// green, negative bars its red.
func SignedBarChart(values []float64, labels []string, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active
	if width < 15 || height < 4 {
		return Sparkline(values, t.Accent)
	}

	posPeak, negPeak := 0.0, 0.0
	for _, v := range values {
		posPeak = math.Max(posPeak, v)
		negPeak = math.Max(negPeak, -v)
	}
	if posPeak == 0 && negPeak == 0 {
		posPeak = 1
	}

	// Split rows between the two halves in proportion to their extent.
	above := int(math.Round(float64(height) * posPeak / (posPeak + negPeak)))
	switch {
	case posPeak > 0 && above == 0:
		above = 1
	case negPeak > 0 && above == height:
		above = height - 1
	}
	below := height - above

	posTop := niceCeil(posPeak)
	negBottom := niceCeil(negPeak)

	topLabel, bottomLabel := "", ""
	if posPeak > 0 {
		topLabel = formatChartLabel(posTop)
	}
	if negPeak > 0 {
		bottomLabel = formatChartLabel(-negBottom)
	}
	yLabelW := max(4, len(topLabel)+1, len(bottomLabel)+1)

	values, labels, barW, gap := fitBars(values, labels, max(5, width-yLabelW-1))
	n := len(values)

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	profit := lipgloss.NewStyle().Foreground(t.Profit).Background(t.Surface)
	loss := lipgloss.NewStyle().Foreground(t.Loss).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	writeRow := func(label string, cell func(v float64) (rune, lipgloss.Style)) {
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", yLabelW, label)))
		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(blank.Render(strings.Repeat(" ", gap)))
			}
			r, style := cell(v)
			b.WriteString(style.Render(strings.Repeat(string(r), barW)))
		}
		b.WriteString("\n")
	}

	for row := above; row >= 1; row-- {
		bottom := posTop * float64(row-1) / float64(above)
		top := posTop * float64(row) / float64(above)
		label := ""
		if row == above {
			label = topLabel
		}
		writeRow(label, func(v float64) (rune, lipgloss.Style) {
			return cellFill(v, bottom, top), profit
		})
	}

	axisLen := n*barW + max(0, n-1)*gap
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s┼%s", yLabelW, "0", strings.Repeat("─", axisLen))))
	b.WriteString("\n")

	for row := 1; row <= below; row++ {
		upper := -negBottom * float64(row-1) / float64(below)
		lower := -negBottom * float64(row) / float64(below)
		label := ""
		if row == below {
			label = bottomLabel
		}
		writeRow(label, func(v float64) (rune, lipgloss.Style) {
			switch {
			case v <= lower:
				return '█', loss
			case v < upper && (upper-v)/(upper-lower) >= 0.5:
				return '▀', loss
			default:
				return ' ', blank
			}
		})
	}

	out := strings.TrimSuffix(b.String(), "\n")
	return out + xAxisLabels(labels, n, barW, gap, yLabelW)
}

// cellFill returns the block glyph for value v in the row spanning
// (bottom, top].
func cellFill(v, bottom, top float64) rune {
	switch {
	case v >= top:
		return '█'
	case v > bottom:
		idx := int((v - bottom) / (top - bottom) * 8)
		return eighths[max(1, min(idx, 8))]
	default:
		return ' '
	}
}

// yScale picks a rounded ceiling above peak and the labels for each tick row.
func yScale(peak float64, height int) (float64, int, map[int]string) {
	if peak <= 0 {
		peak = 1
	}
	step := chartTickStep(peak)
	maxIntervals := max(2, height/2)
	for int(math.Ceil(peak/step)) > maxIntervals {
		step *= 2
	}
	ceiling := math.Ceil(peak/step) * step
	intervals := max(1, int(math.Round(ceiling/step)))
	perTick := max(2, height/intervals)

	ticks := make(map[int]string, intervals)
	for i := 1; i <= intervals; i++ {
		ticks[i*perTick] = formatChartLabel(step * float64(i))
	}
	return ceiling, perTick * intervals, ticks
}

// niceCeil rounds v up to the next tick boundary.
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 0
	}
	step := chartTickStep(v)
	return math.Ceil(v/step) * step
}

// xAxisLabels renders the label row under the axis, skipping labels that
// would collide and always keeping the last one when it fits.
func xAxisLabels(labels []string, n, barW, gap, indent int) string {
	axisLen := n*barW + max(0, n-1)*gap
	if len(labels) != n || n == 0 || axisLen == 0 {
		return ""
	}
	t := theme.Active

	buf := []byte(strings.Repeat(" ", axisLen))
	step := max(1, (n*8)/(axisLen+1))
	lastEnd := -1
	for i := 0; i < n; i += step {
		pos := i * (barW + gap)
		lbl := labels[i]
		end := pos + len(lbl)
		if pos <= lastEnd {
			continue
		}
		if end > axisLen {
			end = axisLen
			if end-pos < 3 {
				continue
			}
			lbl = lbl[:end-pos]
		}
		copy(buf[pos:end], lbl)
		lastEnd = end + 1
	}
	if n > 1 {
		lbl := labels[n-1]
		pos := (n - 1) * (barW + gap)
		end := pos + len(lbl)
		if end > axisLen {
			pos, end = axisLen-len(lbl), axisLen
		}
		if pos >= 0 && pos > lastEnd {
			copy(buf[pos:end], lbl)
		}
	}

	blank := lipgloss.NewStyle().Background(t.Surface)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	return "\n" + blank.Render(strings.Repeat(" ", indent+1)) +
		labelStyle.Render(strings.TrimRight(string(buf), " "))
}

// chartTickStep computes a round tick interval targeting about five ticks.
func chartTickStep(peak float64) float64 {
	if peak <= 0 {
		return 1
	}
	rough := peak / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	if v < 0 {
		return "-" + formatChartLabel(-v)
	}
	scaled := func(div float64, suffix string) string {
		if v == math.Trunc(v/div)*div {
			return fmt.Sprintf("%.0f%s", v/div, suffix)
		}
		return fmt.Sprintf("%.1f%s", v/div, suffix)
	}
	switch {
	case v >= 1e9:
		return scaled(1e9, "B")
	case v >= 1e6:
		return scaled(1e6, "M")
	case v >= 1e3:
		return scaled(1e3, "k")
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
