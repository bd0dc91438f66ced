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

var flagProjectCSV string

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Month-by-month profit projection",
	RunE:  runProject,
}

func init() {
	projectCmd.Flags().StringVar(&flagProjectCSV, "csv", "", "Also write the monthly records to a CSV file")
	rootCmd.Flags().StringVar(&flagProjectCSV, "csv", "", "Also write the monthly records to a CSV file")
	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, _ []string) error {
	cfg, in, err := loadInputs(cmd)
	if err != nil {
		return err
	}
	label := cfg.General.CurrencyLabel

	records := engine.Project(in.params)
	summary := engine.Summarize(in.params, records)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PROJECTION  %s", cli.FormatMonths(in.params.Months))))
	fmt.Println()

	rows := renderParams(in.params, label)
	rows = append(rows, []string{"---"})
	rows = append(rows, summaryRows(summary, label)...)
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if len(records) == 0 {
		fmt.Println("\n  No months to project.")
		return nil
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(monthlyTable(records, label)))

	fmt.Println()
	fmt.Printf("  Cumulative  %s\n", cli.RenderSparkline(cumulative(records)))
	fmt.Println()

	if flagProjectCSV != "" {
		err := export.WriteFile(flagProjectCSV, func(w io.Writer) error {
			return export.WriteProjection(w, records)
		})
		if err != nil {
			return err
		}
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Wrote %d months to %s\n", len(records), flagProjectCSV)
		}
	}
	return nil
}

func summaryRows(s model.ProjectionSummary, label string) [][]string {
	units := "n/a (price <= variable cost)"
	if s.BreakEvenUnitsOK {
		units = fmt.Sprintf("%.1f units / month", s.BreakEvenUnits)
	}
	return [][]string{
		{"Break-even volume", units},
		{"Break-even month", cli.FormatMonth(s.BreakEvenMonth)},
		{"Peak units", cli.FormatNumber(int64(s.PeakUnits))},
		{"Total revenue", cli.FormatMoney(s.TotalRevenue, label)},
		{"Total variable costs", cli.FormatMoney(s.TotalVariableCosts, label)},
		{"Total profit", cli.FormatMoney(s.TotalProfit, label)},
		{"Final cumulative", cli.FormatMoney(s.FinalCumulativeProfit, label)},
	}
}

func monthlyTable(records []model.MonthlyRecord, label string) cli.Table {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.Month),
			cli.FormatNumber(int64(r.Units)),
			cli.FormatMoney(r.Revenue, label),
			cli.FormatMoney(r.VariableCosts, label),
			cli.FormatMoney(r.Profit, label),
			cli.FormatMoney(r.CumulativeProfit, label),
		})
	}
	return cli.Table{
		Title:   "Monthly",
		Headers: []string{"Month", "Units", "Revenue", "Variable", "Profit", "Cumulative"},
		Rows:    rows,
	}
}

func cumulative(records []model.MonthlyRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.CumulativeProfit
	}
	return out
}
