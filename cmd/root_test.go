package cmd

import (
	"testing"

	"github.com/theirongolddev/runway/internal/config"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{}
	c.Flags().Float64Var(&flagPrice, "price", 0, "")
	c.Flags().Float64Var(&flagGrowth, "growth", 0, "")
	c.Flags().IntVar(&flagMonths, "months", 0, "")
	require.NoError(t, c.ParseFlags(args))
	return c
}

func TestResolveParams_PresetThenFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	flagPreset, flagScenario = "saas", ""
	t.Cleanup(func() { flagPreset = "" })

	in, err := resolveParams(paramCommand(t), cfg)
	require.NoError(t, err)
	want, _ := config.LookupPreset(cfg, "saas")
	assert.Equal(t, want.Params, in.params)
	assert.Equal(t, "preset saas", in.source)

	in, err = resolveParams(paramCommand(t, "--price", "80", "--growth", "5", "--months", "24"), cfg)
	require.NoError(t, err)
	assert.InDelta(t, 80.0, in.params.Price, 1e-9)
	assert.InDelta(t, 0.05, in.params.MonthlyGrowthRate, 1e-12, "percent growth is normalized")
	assert.Equal(t, 24, in.params.Months)
	assert.Equal(t, want.Params.FixedCosts, in.params.FixedCosts, "unset flags keep the preset value")
	assert.Equal(t, "preset saas + flags", in.source)
}

func TestResolveParams_UnknownPreset(t *testing.T) {
	flagPreset, flagScenario = "nope", ""
	t.Cleanup(func() { flagPreset = "" })

	_, err := resolveParams(paramCommand(t), config.DefaultConfig())
	assert.ErrorContains(t, err, `unknown preset "nope"`)
}

func TestCheckFinite(t *testing.T) {
	assert.NoError(t, checkFinite(paramCommand(t, "--price", "12.5")))
	assert.ErrorContains(t, checkFinite(paramCommand(t, "--price", "Inf")), "--price")
	assert.ErrorContains(t, checkFinite(paramCommand(t, "--growth", "NaN")), "--growth")
}

func TestGrowthHelpExplainsPercent(t *testing.T) {
	f := rootCmd.PersistentFlags().Lookup("growth")
	require.NotNil(t, f)
	assert.Contains(t, f.Usage, "above 1 are percent")
	assert.Contains(t, sensitivityCmd.Flags().Lookup("variation").Usage, "above 1 are percent")
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "user:****@tcp(db:3306)/runway", maskDSN("user:secret@tcp(db:3306)/runway"))
	assert.Equal(t, "mysql://user:****@db/runway", maskDSN("mysql://user:secret@db/runway"))
	assert.Equal(t, "tcp(db:3306)/runway", maskDSN("tcp(db:3306)/runway"))
}
