package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/export"
	"github.com/theirongolddev/runway/internal/report"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	flagReportWorkers int
	flagReportCSV     string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Project every saved scenario and rank them",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().IntVarP(&flagReportWorkers, "workers", "w", report.DefaultWorkers, "Scenarios evaluated in parallel")
	reportCmd.Flags().StringVar(&flagReportCSV, "csv", "", "Also write the report to a CSV file")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	label := cfg.General.CurrencyLabel

	var bar *progressbar.ProgressBar
	progressFn := func(_, total int) {
		if bar == nil {
			return
		}
		bar.ChangeMax(total)
		_ = bar.Add(1)
	}
	if !flagQuiet {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("  Projecting scenarios"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	rows, err := report.Evaluate(cmd.Context(), st, flagReportWorkers, progressFn)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		fmt.Println("\n  No saved scenarios to report on.")
		fmt.Println("  Save one with: runway scenario save NAME")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("REPORT  %d scenarios", len(rows))))
	fmt.Println()

	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			r.Name,
			cli.FormatMonth(r.Summary.BreakEvenMonth),
			cli.FormatCompactMoney(r.Summary.TotalRevenue, label),
			cli.FormatCompactMoney(r.Summary.FinalCumulativeProfit, label),
			cli.FormatNumber(int64(r.Summary.PeakUnits)),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Scenario", "Break-even", "Revenue", "Final profit", "Peak units"},
		Rows:    tableRows,
	}))
	fmt.Println()

	if flagReportCSV != "" {
		err := export.WriteFile(flagReportCSV, func(w io.Writer) error {
			return export.WriteReport(w, rows)
		})
		if err != nil {
			return err
		}
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Wrote %d scenarios to %s\n", len(rows), flagReportCSV)
		}
	}
	return nil
}
