package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/store"

	"github.com/spf13/cobra"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Manage saved scenarios",
}

var scenarioSaveCmd = &cobra.Command{
	Use:   "save NAME",
	Short: "Save the current inputs (preset, scenario and flags) under NAME",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioSave,
}

var scenarioLoadCmd = &cobra.Command{
	Use:   "load NAME",
	Short: "Show a saved scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioLoad,
}

var scenarioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved scenarios",
	Args:  cobra.NoArgs,
	RunE:  runScenarioList,
}

var scenarioDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a saved scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioDelete,
}

func init() {
	scenarioCmd.AddCommand(scenarioSaveCmd, scenarioLoadCmd, scenarioListCmd, scenarioDeleteCmd)
	rootCmd.AddCommand(scenarioCmd)
}

func openStore(cmd *cobra.Command) (config.Config, store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, err
	}
	st, err := store.Open(cmd.Context(), cfg)
	if err != nil {
		return cfg, nil, fmt.Errorf("opening %s scenario store: %w", config.StoreBackend(cfg), err)
	}
	return cfg, st, nil
}

func runScenarioSave(cmd *cobra.Command, args []string) error {
	cfg, in, err := loadInputs(cmd)
	if err != nil {
		return err
	}
	if err := store.Validate(args[0], in.params); err != nil {
		return err
	}
	st, err := store.Open(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("opening scenario store: %w", err)
	}
	defer func() { _ = st.Close() }()

	if err := st.Save(cmd.Context(), args[0], in.params); err != nil {
		return err
	}
	fmt.Printf("  Saved %q (%s) to the %s store\n", args[0], in.source, config.StoreBackend(cfg))
	return nil
}

func runScenarioLoad(cmd *cobra.Command, args []string) error {
	cfg, st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	p, err := st.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SCENARIO  " + args[0]))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Input", "Value"},
		Rows:    renderParams(p, cfg.General.CurrencyLabel),
	}))
	fmt.Println()
	fmt.Printf("  Project it with: runway --scenario %s\n\n", args[0])
	return nil
}

func runScenarioList(cmd *cobra.Command, _ []string) error {
	cfg, st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	names, err := st.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("\n  No saved scenarios.")
		fmt.Println("  Save one with: runway scenario save NAME")
		return nil
	}

	label := cfg.General.CurrencyLabel
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		p, err := st.Load(cmd.Context(), name)
		if err != nil {
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Skipping %q: %v\n", name, err)
			}
			continue
		}
		rows = append(rows, []string{
			name,
			cli.FormatCompactMoney(p.FixedCosts, label),
			cli.FormatMoney(p.Price, label),
			cli.FormatMoney(p.VariableCost, label),
			cli.FormatNumber(int64(p.InitialUnits)),
			cli.FormatPercent(p.MonthlyGrowthRate),
			fmt.Sprintf("%d", p.Months),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Scenarios (%s)", config.StoreBackend(cfg)),
		Headers: []string{"Name", "Fixed", "Price", "Variable", "Units", "Growth", "Months"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runScenarioDelete(cmd *cobra.Command, args []string) error {
	_, st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	existed, err := st.Delete(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !existed {
		return fmt.Errorf("no saved scenario named %q: %w", args[0], store.ErrNotFound)
	}
	fmt.Printf("  Deleted %q\n", args[0])
	return nil
}
