// Package theme defines color themes for the runway TUI dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps the dashboard's color roles to concrete colors.
type Theme struct {
	Name string

	Background   lipgloss.Color
	Surface      lipgloss.Color // cards and panels
	SurfaceHover lipgloss.Color // active tab, selected row
	Border       lipgloss.Color
	BorderAccent lipgloss.Color // focused card

	TextDim     lipgloss.Color // hints
	TextMuted   lipgloss.Color // labels
	TextPrimary lipgloss.Color

	Accent       lipgloss.Color
	AccentBright lipgloss.Color
	AccentDim    lipgloss.Color

	Profit    lipgloss.Color // money at or above zero
	Loss      lipgloss.Color // money below zero
	Warning   lipgloss.Color // weak but not failing ratios
	Caution   lipgloss.Color
	Series    lipgloss.Color // neutral chart series (customers, units)
	SeriesAlt lipgloss.Color
}

// palette lists a theme's colors in a fixed order:
// background, surface, hover, border, focus border,
// dim, muted, primary text,
// accent, bright accent, dim accent,
// profit, loss, warning, caution, series, alternate series.
type palette [17]string

func build(name string, p palette) Theme {
	c := func(i int) lipgloss.Color { return lipgloss.Color(p[i]) }
	return Theme{
		Name:         name,
		Background:   c(0),
		Surface:      c(1),
		SurfaceHover: c(2),
		Border:       c(3),
		BorderAccent: c(4),
		TextDim:      c(5),
		TextMuted:    c(6),
		TextPrimary:  c(7),
		Accent:       c(8),
		AccentBright: c(9),
		AccentDim:    c(10),
		Profit:       c(11),
		Loss:         c(12),
		Warning:      c(13),
		Caution:      c(14),
		Series:       c(15),
		SeriesAlt:    c(16),
	}
}

var (
	// FlexokiDark is the default: warm, paper-inspired dark.
	FlexokiDark = build("flexoki-dark", palette{
		"#100F0F", "#1C1B1A", "#282726", "#403E3C", "#3AA99F",
		"#575653", "#878580", "#FFFCF0",
		"#3AA99F", "#5BC8BE", "#1A3533",
		"#879A39", "#D14D41", "#DA702C", "#D0A215", "#4385BE", "#24837B",
	})

	// CatppuccinMocha is soft pastels on a purple-grey base.
	CatppuccinMocha = build("catppuccin-mocha", palette{
		"#1E1E2E", "#313244", "#45475A", "#585B70", "#89B4FA",
		"#6C7086", "#A6ADC8", "#CDD6F4",
		"#89B4FA", "#B4D0FB", "#293147",
		"#A6E3A1", "#F38BA8", "#FAB387", "#F9E2AF", "#89B4FA", "#94E2D5",
	})

	// TokyoNight is cool blues and purples.
	TokyoNight = build("tokyo-night", palette{
		"#1A1B26", "#24283B", "#343A52", "#565F89", "#7AA2F7",
		"#565F89", "#A9B1D6", "#C0CAF5",
		"#7AA2F7", "#A9C1FF", "#252B3F",
		"#9ECE6A", "#F7768E", "#FF9E64", "#E0AF68", "#7AA2F7", "#7DCFFF",
	})

	// Terminal sticks to the ANSI 16 colors.
	Terminal = build("terminal", palette{
		"0", "0", "8", "8", "6",
		"8", "7", "15",
		"6", "14", "0",
		"2", "1", "3", "3", "4", "6",
	})
)

// All available themes, in display order.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// Active is the currently selected theme.
var Active = FlexokiDark

// Signed picks the color for a money amount.
func (t Theme) Signed(v float64) lipgloss.Color {
	if v < 0 {
		return t.Loss
	}
	return t.Profit
}

// Names returns the theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
