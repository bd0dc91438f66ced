// Package tui provides the interactive bubbletea dashboard for runway.
package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/store"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5

	variationStep = 0.05
	minVariation  = 0.05
	maxVariation  = 1.0
)

const (
	tabProjection = iota
	tabCohort
	tabSensitivity
	tabScenarios
)

// Options seeds a dashboard session.
type Options struct {
	Config config.Config
	// Store backs the Scenarios tab; nil disables it.
	Store     store.Store
	Params    model.Params
	Source    string
	Cohort    model.CohortParams
	CAC       float64
	Variation float64
}

// App is the root bubbletea model.
type App struct {
	cfg   config.Config
	store store.Store

	params    model.Params
	source    string
	presets   []config.Preset
	presetIdx int // -1 when params did not come from a preset

	cohort    model.CohortParams
	cac       float64
	variation float64
	paramIdx  int // index into engine.Parameters

	records       []model.MonthlyRecord
	summary       model.ProjectionSummary
	cohortRecords []model.CohortRecord
	cohortSummary model.CohortSummary
	sweep         []model.SensitivityPoint
	tornado       []engine.TornadoRow

	scen scenarioState

	form     *huh.Form
	formVals *paramValues

	width     int
	height    int
	activeTab int
	showHelp  bool
	spinner   spinner.Model
}

// NewApp creates a dashboard for the given starting inputs.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	variation := opts.Variation
	if variation <= 0 {
		variation = engine.DefaultVariation
	}

	a := App{
		cfg:       opts.Config,
		store:     opts.Store,
		params:    opts.Params,
		source:    opts.Source,
		presets:   config.Presets(opts.Config),
		presetIdx: -1,
		cohort:    opts.Cohort,
		cac:       opts.CAC,
		variation: variation,
		spinner:   sp,
		scen:      newScenarioState(),
	}
	a.scen.loading = opts.Store != nil
	for i, p := range a.presets {
		if opts.Source == presetSource(p.Name) {
			a.presetIdx = i
		}
	}
	a.recompute()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.store == nil {
		return tea.EnableMouseCellMotion
	}
	return tea.Batch(tea.EnableMouseCellMotion, a.spinner.Tick, listScenariosCmd(a.store))
}

func presetSource(name string) string {
	return "preset " + name
}

// recompute reruns every engine view over the current inputs.
func (a *App) recompute() {
	a.records = engine.Project(a.params)
	a.summary = engine.Summarize(a.params, a.records)
	a.cohortRecords = engine.CohortProject(a.cohort)
	a.cohortSummary = engine.SummarizeCohort(a.cohort, a.cac, a.cohortRecords)
	a.sweep = engine.SensitivityFor(a.params, a.varied(), a.variation)
	a.tornado = engine.Tornado(a.params, a.variation)
}

func (a App) varied() engine.Parameter {
	return engine.Parameters[a.paramIdx]
}

func (a *App) cyclePreset(step int) {
	n := len(a.presets)
	if n == 0 {
		return
	}
	switch {
	case a.presetIdx >= 0:
		a.presetIdx = ((a.presetIdx+step)%n + n) % n
	case step < 0:
		a.presetIdx = n - 1
	default:
		a.presetIdx = 0
	}
	p := a.presets[a.presetIdx]
	a.params = p.Params
	a.source = presetSource(p.Name)
	a.recompute()
}

func (a *App) cycleParameter(step int) {
	n := len(engine.Parameters)
	a.paramIdx = ((a.paramIdx+step)%n + n) % n
	a.sweep = engine.SensitivityFor(a.params, a.varied(), a.variation)
}

func (a *App) stepVariation(delta float64) {
	v := max(minVariation, min(a.variation+delta, maxVariation))
	// Snap to the step grid so repeated presses do not drift.
	a.variation = float64(int(v/variationStep+0.5)) * variationStep
	a.recompute()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(formWidth(msg.Width))
		}
		return a, nil

	case spinner.TickMsg:
		if !a.scen.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case scenariosListedMsg, scenarioLoadedMsg, scenarioSavedMsg, scenarioDeletedMsg:
		return a.handleScenarioMsg(msg)

	case tea.MouseMsg:
		return a.handleMouse(msg), nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Forward anything else (cursor blinks, etc.) to whichever input is open.
	if a.form != nil {
		return a.updateForm(msg)
	}
	if a.scen.naming {
		return a.updateNaming(msg)
	}
	return a, nil
}

func (a App) handleMouse(msg tea.MouseMsg) App {
	if a.form != nil || a.showHelp || a.scen.naming {
		return a
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabScenarios {
			a.scen.move(-1)
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabScenarios {
			a.scen.move(1)
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := components.TabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if a.form != nil {
		return a.updateForm(msg)
	}
	if a.scen.naming {
		return a.updateNaming(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	if a.activeTab == tabSensitivity {
		switch key {
		case "V":
			a.cycleParameter(-1)
			return a, nil
		case "+", "=":
			a.stepVariation(variationStep)
			return a, nil
		case "-", "_":
			a.stepVariation(-variationStep)
			return a, nil
		}
	}
	if a.activeTab == tabScenarios {
		if next, cmd, handled := a.updateScenarioKeys(key); handled {
			return next, cmd
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "e":
		return a.openForm()
	case "p":
		a.cyclePreset(1)
	case "P":
		a.cyclePreset(-1)
	case "v":
		a.cycleParameter(1)
	case "right", "l", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	case "left", "h", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	default:
		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  runway needs at least %d columns.\n",
		a.width, minTerminalWidth)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.SeriesAlt).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"1 2 3 4", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move in scenario list"},
		}},
		{"Inputs", [][2]string{
			{"e", "Edit parameters"},
			{"p P", "Next / Previous preset"},
			{"v V", "Next / Previous varied parameter"},
			{"+ -", "Widen / Narrow variation"},
		}},
		{"Scenarios", [][2]string{
			{"Enter", "Load scenario"},
			{"s", "Save current inputs"},
			{"d", "Delete scenario"},
			{"r", "Reload list"},
		}},
		{"General", [][2]string{
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind[0])),
				descStyle.Render(bind[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusHints() string {
	switch {
	case a.activeTab == tabSensitivity:
		return "[v]ary  [+/-]range  [e]dit  [p]reset  [?]help  [q]uit"
	case a.activeTab == tabScenarios && a.store != nil:
		return "[enter]load  [s]ave  [d]elete  [r]eload  [?]help  [q]uit"
	default:
		return "[e]dit  [p]reset  [?]help  [q]uit"
	}
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.statusHints(), a.source)
	contentH := max(minContentHeight, h-lipgloss.Height(header)-lipgloss.Height(statusBar))

	var content string
	switch a.activeTab {
	case tabProjection:
		content = a.renderProjectionTab(cw)
	case tabCohort:
		content = a.renderCohortTab(cw)
	case tabSensitivity:
		content = a.renderSensitivityTab(cw)
	case tabScenarios:
		content = a.renderScenariosTab(cw, contentH)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color
// so gaps between cards are not left unstyled.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// monthLabels returns "m1".."mN" labels for chart X axes.
func monthLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("m%d", i+1)
	}
	return labels
}
