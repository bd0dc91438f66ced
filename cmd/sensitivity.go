package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/export"
	"github.com/theirongolddev/runway/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagSensParam     string
	flagSensVariation float64
	flagSensCSV       string
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity",
	Short: "Sweep one parameter and show how break-even and profit move",
	RunE:  runSensitivity,
}

func init() {
	sensitivityCmd.Flags().StringVar(&flagSensParam, "param", engine.ParamPrice.String(),
		"Parameter to vary: price, variable_cost, initial_units, monthly_growth_rate, fixed_costs")
	sensitivityCmd.Flags().Float64Var(&flagSensVariation, "variation", engine.DefaultVariation, "Largest relative change; values above 1 are percent, so 0.2 and 20 both mean 20%")
	sensitivityCmd.Flags().StringVar(&flagSensCSV, "csv", "", "Also write the sweep to a CSV file")
	rootCmd.AddCommand(sensitivityCmd)
}

func runSensitivity(cmd *cobra.Command, _ []string) error {
	param, err := engine.ParseParameter(flagSensParam)
	if err != nil {
		return err
	}
	cfg, in, err := loadInputs(cmd)
	if err != nil {
		return err
	}
	label := cfg.General.CurrencyLabel
	variation := model.NormalizeRate(flagSensVariation)

	points := engine.SensitivityFor(in.params, param, variation)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SENSITIVITY  %s ±%.0f%%", param.Label(), variation*100)))
	fmt.Println()

	rows := make([][]string, 0, len(points))
	profits := make([]float64, 0, len(points))
	for _, pt := range points {
		rows = append(rows, []string{
			cli.FormatChange(pt.ChangePercent),
			cli.FormatMonth(pt.BreakEvenMonth),
			cli.FormatMoney(pt.FinalCumulativeProfit, label),
		})
		profits = append(profits, pt.FinalCumulativeProfit)
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Change", "Break-even", "Final profit"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Printf("  Final profit  %s\n", cli.RenderSparkline(profits))
	fmt.Println()

	if flagSensCSV != "" {
		err := export.WriteFile(flagSensCSV, func(w io.Writer) error {
			return export.WriteSensitivity(w, param, points)
		})
		if err != nil {
			return err
		}
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Wrote sweep to %s\n", flagSensCSV)
		}
	}
	return nil
}
