package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func plain(s string) string {
	return ansi.Strip(s)
}

func TestSparklineHandlesNegatives(t *testing.T) {
	assert.Equal(t, "▁▄█", plain(Sparkline([]float64{-10, 0, 10}, lipgloss.Color("2"))))
	assert.Equal(t, "▁▁", plain(Sparkline([]float64{5, 5}, lipgloss.Color("2"))))
	assert.Equal(t, "", Sparkline(nil, lipgloss.Color("2")))
}

func TestBarChartShape(t *testing.T) {
	out := plain(BarChart([]float64{1, 2, 3, 4}, []string{"m1", "m2", "m3", "m4"}, lipgloss.Color("4"), 40, 8))
	lines := strings.Split(out, "\n")

	assert.Contains(t, lines[len(lines)-2], "└")
	assert.Contains(t, lines[len(lines)-1], "m1")
	assert.Contains(t, lines[len(lines)-1], "m4")
}

func TestBarChartFallsBackToSparkline(t *testing.T) {
	out := plain(BarChart([]float64{1, 2}, nil, lipgloss.Color("4"), 10, 8))
	assert.Equal(t, "▁█", out)
}

func TestSignedBarChartDrawsBothSides(t *testing.T) {
	out := plain(SignedBarChart([]float64{-500, -100, 200, 600}, nil, 40, 8))
	lines := strings.Split(out, "\n")

	axis := -1
	for i, l := range lines {
		if strings.Contains(l, "┼") {
			axis = i
		}
	}
	if assert.Greater(t, axis, 0) {
		assert.Contains(t, strings.Join(lines[:axis], "\n"), "█")
		assert.Contains(t, strings.Join(lines[axis+1:], "\n"), "█")
	}
	assert.Len(t, lines, 9)
}

func TestSignedBarChartAllPositiveHasNoLowerHalf(t *testing.T) {
	lines := strings.Split(plain(SignedBarChart([]float64{1, 2, 3}, nil, 40, 6)), "\n")
	assert.Contains(t, lines[len(lines)-1], "┼")
}

func TestFormatChartLabel(t *testing.T) {
	assert.Equal(t, "2k", formatChartLabel(2000))
	assert.Equal(t, "1.5M", formatChartLabel(1_500_000))
	assert.Equal(t, "-20k", formatChartLabel(-20000))
	assert.Equal(t, "0.50", formatChartLabel(0.5))
}

func TestTabAtX(t *testing.T) {
	assert.Equal(t, -1, TabAtX(0))
	assert.Equal(t, 0, TabAtX(1))
	second := 1 + TabVisualWidth(0) + tabGap
	assert.Equal(t, 1, TabAtX(second))
	assert.Equal(t, -1, TabAtX(second-1))
	assert.Equal(t, 2, TabIdxByKey('3'))
	assert.Equal(t, -1, TabIdxByKey('x'))
}
