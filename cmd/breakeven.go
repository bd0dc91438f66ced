package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/engine"

	"github.com/spf13/cobra"
)

var breakevenCmd = &cobra.Command{
	Use:   "breakeven",
	Short: "Break-even volume and the month cumulative profit turns positive",
	RunE:  runBreakeven,
}

func init() {
	rootCmd.AddCommand(breakevenCmd)
}

func runBreakeven(cmd *cobra.Command, _ []string) error {
	cfg, in, err := loadInputs(cmd)
	if err != nil {
		return err
	}
	label := cfg.General.CurrencyLabel
	p := in.params

	fmt.Println()
	fmt.Println(cli.RenderTitle("BREAK-EVEN"))
	fmt.Println()

	volume := ""
	units, err := engine.BreakEvenUnits(p.FixedCosts, p.Price, p.VariableCost)
	switch {
	case errors.Is(err, engine.ErrInvalidMargin):
		volume = "never (price does not cover variable cost)"
	case err != nil:
		return err
	default:
		volume = fmt.Sprintf("%.1f units / month", units)
	}

	records := engine.Project(p)
	month := engine.BreakEvenMonth(records)
	monthStr := cli.FormatMonth(month)
	if month == 0 && p.Months > 0 {
		monthStr = fmt.Sprintf("not within %s", cli.FormatMonths(p.Months))
	}

	rows := [][]string{
		{"Unit margin", cli.FormatMoney(p.UnitMargin(), label)},
		{"Fixed costs / month", cli.FormatMoney(p.FixedCosts, label)},
		{"---"},
		{"Break-even volume", volume},
		{"Break-even month", monthStr},
		{"Final cumulative", cli.FormatMoney(engine.FinalCumulativeProfit(records), label)},
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
