package cmd

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/export"
	"github.com/theirongolddev/runway/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagCohortCustomers int
	flagCohortMargin    float64
	flagCohortChurn     float64
	flagCohortCAC       float64
	flagCohortCSV       string
)

var cohortCmd = &cobra.Command{
	Use:   "cohort",
	Short: "Customer cohort decay, lifetime value and CAC payback",
	RunE:  runCohort,
}

func init() {
	def := model.DefaultCohort(0)
	cohortCmd.Flags().IntVar(&flagCohortCustomers, "customers", def.InitialCustomers, "Customers acquired at month 0")
	cohortCmd.Flags().Float64Var(&flagCohortMargin, "margin", def.MarginPerCustomer, "Gross margin per active customer per month")
	cohortCmd.Flags().Float64Var(&flagCohortChurn, "churn", def.ChurnRate, "Monthly churn rate; values above 1 are percent, so 0.1 and 10 both mean 10%")
	cohortCmd.Flags().Float64Var(&flagCohortCAC, "cac", 0, "Acquisition cost per customer")
	cohortCmd.Flags().StringVar(&flagCohortCSV, "csv", "", "Also write the cohort records to a CSV file")
	rootCmd.AddCommand(cohortCmd)
}

func runCohort(cmd *cobra.Command, _ []string) error {
	if err := checkFinite(cmd); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	label := cfg.General.CurrencyLabel

	months := config.Months(cfg)
	if cmd.Flags().Changed("months") {
		months = flagMonths
	}
	p := model.CohortParams{
		InitialCustomers:  flagCohortCustomers,
		MarginPerCustomer: flagCohortMargin,
		ChurnRate:         model.NormalizeRate(flagCohortChurn),
		Months:            months,
	}
	if p.InitialCustomers < 0 || p.Months < 0 {
		return fmt.Errorf("customers and months must not be negative")
	}

	records := engine.CohortProject(p)
	summary := engine.SummarizeCohort(p, flagCohortCAC, records)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("COHORT  %s customers", cli.FormatNumber(int64(p.InitialCustomers)))))
	fmt.Println()

	ltv := cli.FormatInfinite(summary.LTV)
	if !math.IsInf(summary.LTV, 0) {
		ltv = cli.FormatMoney(summary.LTV, label)
	}
	payback := "never"
	switch {
	case flagCohortCAC <= 0:
		payback = "n/a (no CAC set)"
	case summary.CACPaybackMonths > 0:
		payback = fmt.Sprintf("%d months", summary.CACPaybackMonths)
	}

	rows := [][]string{
		{"Margin / customer", cli.FormatMoney(p.MarginPerCustomer, label)},
		{"Monthly churn", cli.FormatPercent(p.ChurnRate)},
		{"Window", cli.FormatMonths(p.Months)},
		{"---"},
		{"Lifetime value", ltv},
		{"CAC payback", payback},
		{"Customers left", cli.FormatNumber(int64(summary.FinalCustomers))},
		{"Cohort margin", cli.FormatMoney(summary.FinalCumulativeMargin, label)},
	}
	if flagCohortCAC > 0 {
		rows = append(rows, []string{"LTV:CAC", fmt.Sprintf("%.1fx", summary.LTV/flagCohortCAC)})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if len(records) == 0 {
		fmt.Println("\n  No months to project.")
		return nil
	}

	tableRows := make([][]string, 0, len(records))
	for _, r := range records {
		tableRows = append(tableRows, []string{
			fmt.Sprintf("%d", r.Month),
			cli.FormatNumber(int64(r.Customers)),
			cli.FormatMoney(r.MonthlyMargin, label),
			cli.FormatMoney(r.CumulativeMargin, label),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Monthly",
		Headers: []string{"Month", "Customers", "Margin", "Cumulative"},
		Rows:    tableRows,
	}))
	fmt.Println()

	if flagCohortCSV != "" {
		err := export.WriteFile(flagCohortCSV, func(w io.Writer) error {
			return export.WriteCohort(w, records)
		})
		if err != nil {
			return err
		}
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Wrote %d months to %s\n", len(records), flagCohortCSV)
		}
	}
	return nil
}
