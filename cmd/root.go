package cmd

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagQuiet        bool
	flagPreset       string
	flagScenario     string
	flagFixedCosts   float64
	flagPrice        float64
	flagVariableCost float64
	flagInitialUnits int
	flagGrowth       float64
	flagMonths       int
)

// Version is stamped by main.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "runway",
	Short: "Startup profitability simulator",
	Long:  "Project monthly profit, break-even, cohort value and sensitivity for a small business model.",
	RunE:  runProject,
}

// Execute is the main entry point called from main.go.
func Execute() {
	rootCmd.Version = Version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	pf.StringVarP(&flagPreset, "preset", "P", "", "Start from a persona preset (see `runway presets`)")
	pf.StringVarP(&flagScenario, "scenario", "s", "", "Start from a saved scenario")
	pf.Float64Var(&flagFixedCosts, "fixed-costs", 0, "Fixed costs per month")
	pf.Float64Var(&flagPrice, "price", 0, "Price per unit")
	pf.Float64Var(&flagVariableCost, "variable-cost", 0, "Variable cost per unit")
	pf.IntVar(&flagInitialUnits, "initial-units", 0, "Units sold in month 1")
	pf.Float64Var(&flagGrowth, "growth", 0, "Monthly growth rate; values above 1 are percent, so 0.05 and 5 both mean 5%")
	pf.IntVar(&flagMonths, "months", 0, "Months to project")
}

// inputs is the resolved projection input plus where it came from.
type inputs struct {
	params model.Params
	source string
}

// resolveParams builds the projection input: the preset (or the configured
// default) first, then a saved scenario, then any explicitly set flags.
func resolveParams(cmd *cobra.Command, cfg config.Config) (inputs, error) {
	preset, ok := config.LookupPreset(cfg, flagPreset)
	if !ok {
		return inputs{}, fmt.Errorf("unknown preset %q (see `runway presets`)", flagPreset)
	}
	in := inputs{params: preset.Params, source: "preset " + preset.Name}

	if flagScenario != "" {
		p, err := loadScenario(cmd.Context(), cfg, flagScenario)
		if err != nil {
			return inputs{}, err
		}
		in = inputs{params: p, source: "scenario " + flagScenario}
	}

	return applyParamFlags(cmd, in), nil
}

func applyParamFlags(cmd *cobra.Command, in inputs) inputs {
	flags := cmd.Flags()
	changed := false
	if flags.Changed("fixed-costs") {
		in.params.FixedCosts = flagFixedCosts
		changed = true
	}
	if flags.Changed("price") {
		in.params.Price = flagPrice
		changed = true
	}
	if flags.Changed("variable-cost") {
		in.params.VariableCost = flagVariableCost
		changed = true
	}
	if flags.Changed("initial-units") {
		in.params.InitialUnits = flagInitialUnits
		changed = true
	}
	if flags.Changed("growth") {
		in.params.MonthlyGrowthRate = model.NormalizeRate(flagGrowth)
		changed = true
	}
	if flags.Changed("months") {
		in.params.Months = flagMonths
		changed = true
	}
	if changed {
		in.source += " + flags"
	}
	return in
}

func loadScenario(ctx context.Context, cfg config.Config, name string) (model.Params, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(ctx, cfg)
	if err != nil {
		return model.Params{}, fmt.Errorf("opening scenario store: %w", err)
	}
	defer func() { _ = st.Close() }()

	p, err := st.Load(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return model.Params{}, fmt.Errorf("no saved scenario named %q (see `runway scenario list`)", name)
	}
	return p, err
}

// floatFlags lists every float flag a command may carry.
var floatFlags = []string{
	"fixed-costs", "price", "variable-cost", "growth",
	"margin", "churn", "cac", "variation",
}

// checkFinite rejects Inf and NaN in any float flag the user set.
func checkFinite(cmd *cobra.Command) error {
	for _, name := range floatFlags {
		if !cmd.Flags().Changed(name) {
			continue
		}
		v, err := cmd.Flags().GetFloat64(name)
		if err != nil {
			continue
		}
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Errorf("--%s must be a finite number", name)
		}
	}
	return nil
}

// loadInputs is the shared config + params path used by the model commands.
func loadInputs(cmd *cobra.Command) (config.Config, inputs, error) {
	if err := checkFinite(cmd); err != nil {
		return config.Config{}, inputs{}, err
	}
	cfg, err := config.Load()
	if err != nil {
		return cfg, inputs{}, err
	}
	in, err := resolveParams(cmd, cfg)
	if err != nil {
		return cfg, inputs{}, err
	}
	if err := store.Validate(in.source, in.params); err != nil {
		return cfg, inputs{}, err
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Using %s\n", in.source)
	}
	return cfg, in, nil
}

func renderParams(p model.Params, label string) [][]string {
	return [][]string{
		{"Fixed costs / month", cli.FormatMoney(p.FixedCosts, label)},
		{"Price / unit", cli.FormatMoney(p.Price, label)},
		{"Variable cost / unit", cli.FormatMoney(p.VariableCost, label)},
		{"Unit margin", cli.FormatMoney(p.UnitMargin(), label)},
		{"Initial units", cli.FormatNumber(int64(p.InitialUnits))},
		{"Monthly growth", cli.FormatPercent(p.MonthlyGrowthRate)},
		{"Months", cli.FormatMonths(p.Months)},
	}
}
