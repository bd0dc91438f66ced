package cli

import (
	"math"
	"testing"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{1234.5, "$1,234.50"},
		{-1234.5, "-$1,234.50"},
		{999.999, "$1,000.00"},
		{1234567.891, "$1,234,567.89"},
		{math.Inf(1), "∞"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in, "$"); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{950, "950"},
		{1234, "1.2K"},
		{-2_500_000, "-2.5M"},
		{3_100_000_000, "3.1B"},
	}
	for _, tt := range tests {
		if got := FormatCompact(tt.in); got != tt.want {
			t.Errorf("FormatCompact(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := FormatCompactMoney(-1500, "€"); got != "-€1.5K" {
		t.Errorf("FormatCompactMoney(-1500) = %q, want -€1.5K", got)
	}
}

func TestFormatMonth(t *testing.T) {
	if got := FormatMonth(0); got != "not reached" {
		t.Errorf("FormatMonth(0) = %q", got)
	}
	if got := FormatMonth(5); got != "month 5" {
		t.Errorf("FormatMonth(5) = %q", got)
	}
}

func TestFormatMonths(t *testing.T) {
	tests := map[int]string{0: "0m", 7: "7m", 12: "1y", 15: "1y 3m", 30: "2y 6m"}
	for in, want := range tests {
		if got := FormatMonths(in); got != want {
			t.Errorf("FormatMonths(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[int64]string{0: "0", 999: "999", 1000: "1,000", -1234567: "-1,234,567"}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatChangeAndDelta(t *testing.T) {
	if got := FormatChange(10); got != "+10%" {
		t.Errorf("FormatChange(10) = %q", got)
	}
	if got := FormatChange(-20); got != "-20%" {
		t.Errorf("FormatChange(-20) = %q", got)
	}
	if got := FormatDelta(100, 150, "$"); got != "-$50.00" {
		t.Errorf("FormatDelta(100, 150) = %q", got)
	}
	if got := FormatDelta(150, 100, "$"); got != "+$50.00" {
		t.Errorf("FormatDelta(150, 100) = %q", got)
	}
}
