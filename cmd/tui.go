package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/store"
	"github.com/theirongolddev/runway/internal/tui"
	"github.com/theirongolddev/runway/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, in, err := loadInputs(cmd)
	if err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	// Scenarios are optional: the dashboard still works without a store.
	st, err := store.Open(cmd.Context(), cfg)
	if err != nil {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Scenario store unavailable: %v\n", err)
		}
		st = nil
	} else {
		defer func() { _ = st.Close() }()
	}

	app := tui.NewApp(tui.Options{
		Config: cfg,
		Store:  st,
		Params: in.params,
		Source: in.source,
		Cohort: model.DefaultCohort(in.params.Months),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
