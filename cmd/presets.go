package cmd

import (
	"fmt"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/engine"

	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List persona presets",
	RunE:  runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	label := cfg.General.CurrencyLabel

	rows := make([][]string, 0)
	for _, p := range config.Presets(cfg) {
		name := p.Name
		if config.NormalizePresetName(cfg.General.DefaultPreset) == p.Name {
			name += " *"
		}
		s := engine.Summarize(p.Params, engine.Project(p.Params))
		rows = append(rows, []string{
			name,
			cli.FormatCompactMoney(p.Params.FixedCosts, label),
			cli.FormatMoney(p.Params.UnitMargin(), label),
			cli.FormatPercent(p.Params.MonthlyGrowthRate),
			cli.FormatMonth(s.BreakEvenMonth),
			p.Description,
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PRESETS  %s window", cli.FormatMonths(config.Months(cfg)))))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Name", "Fixed", "Margin", "Growth", "Break-even", "Description"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Println("  * default. Use one with: runway --preset NAME")
	fmt.Println()
	return nil
}
