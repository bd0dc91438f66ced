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
	flagTornadoVariation float64
	flagTornadoCSV       string
)

var tornadoCmd = &cobra.Command{
	Use:   "tornado",
	Short: "Rank every parameter by how far it swings final profit",
	RunE:  runTornado,
}

func init() {
	tornadoCmd.Flags().Float64Var(&flagTornadoVariation, "variation", engine.DefaultVariation, "Largest relative change; values above 1 are percent, so 0.2 and 20 both mean 20%")
	tornadoCmd.Flags().StringVar(&flagTornadoCSV, "csv", "", "Also write the tornado rows to a CSV file")
	rootCmd.AddCommand(tornadoCmd)
}

func runTornado(cmd *cobra.Command, _ []string) error {
	cfg, in, err := loadInputs(cmd)
	if err != nil {
		return err
	}
	label := cfg.General.CurrencyLabel
	variation := model.NormalizeRate(flagTornadoVariation)

	rows := engine.Tornado(in.params, variation)
	base := engine.FinalCumulativeProfit(engine.Project(in.params))

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TORNADO  ±%.0f%%", variation*100)))
	fmt.Println()
	fmt.Printf("  Base final profit: %s\n\n", cli.FormatMoney(base, label))

	maxSpread := 0.0
	for _, r := range rows {
		maxSpread = max(maxSpread, r.HighProfit-base, base-r.LowProfit)
	}

	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			r.Parameter.Label(),
			cli.FormatMoney(r.LowProfit, label),
			cli.FormatMoney(r.HighProfit, label),
			cli.FormatMoney(r.Spread, label),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Parameter", "Low", "High", "Spread"},
		Rows:    tableRows,
	}))
	fmt.Println()

	for _, r := range rows {
		fmt.Printf("  %-16s %s\n", r.Parameter.Label(),
			cli.RenderSpreadBar(r.LowProfit, r.HighProfit, base, maxSpread, 40))
	}
	fmt.Println()

	if flagTornadoCSV != "" {
		err := export.WriteFile(flagTornadoCSV, func(w io.Writer) error {
			return export.WriteTornado(w, rows)
		})
		if err != nil {
			return err
		}
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Wrote tornado to %s\n", flagTornadoCSV)
		}
	}
	return nil
}
