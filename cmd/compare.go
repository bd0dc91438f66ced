package cmd

import (
	"fmt"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"

	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare A B",
	Short: "Compare two presets or saved scenarios side by side",
	Long:  "Each argument names a preset or, failing that, a saved scenario.",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	label := cfg.General.CurrencyLabel

	a, err := resolveNamed(cmd, cfg, args[0])
	if err != nil {
		return err
	}
	b, err := resolveNamed(cmd, cfg, args[1])
	if err != nil {
		return err
	}

	sa := engine.Summarize(a, engine.Project(a))
	sb := engine.Summarize(b, engine.Project(b))

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("COMPARE  %s vs %s", args[0], args[1])))
	fmt.Println()

	pa, pb := renderParams(a, label), renderParams(b, label)
	rows := make([][]string, 0, len(pa)+12)
	for i := range pa {
		rows = append(rows, []string{pa[i][0], pa[i][1], pb[i][1], ""})
	}
	rows = append(rows, []string{"---"})

	money := func(name string, x, y float64) []string {
		return []string{name, cli.FormatMoney(x, label), cli.FormatMoney(y, label), cli.FormatDelta(y, x, label)}
	}
	rows = append(rows,
		[]string{"Break-even month", cli.FormatMonth(sa.BreakEvenMonth), cli.FormatMonth(sb.BreakEvenMonth), ""},
		[]string{"Peak units", cli.FormatNumber(int64(sa.PeakUnits)), cli.FormatNumber(int64(sb.PeakUnits)),
			cli.FormatNumber(int64(sb.PeakUnits - sa.PeakUnits))},
		money("Total revenue", sa.TotalRevenue, sb.TotalRevenue),
		money("Total profit", sa.TotalProfit, sb.TotalProfit),
		money("Final cumulative", sa.FinalCumulativeProfit, sb.FinalCumulativeProfit),
	)

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", args[0], args[1], "B - A"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

// resolveNamed looks name up as a preset first, then as a saved scenario.
func resolveNamed(cmd *cobra.Command, cfg config.Config, name string) (model.Params, error) {
	if p, ok := config.LookupPreset(cfg, name); name != "" && ok {
		return p.Params, nil
	}
	p, err := loadScenario(cmd.Context(), cfg, name)
	if err != nil {
		return model.Params{}, fmt.Errorf("%q is neither a preset nor a loadable scenario: %w", name, err)
	}
	return p, nil
}
