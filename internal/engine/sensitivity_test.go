package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/runway/internal/model"
)

func sweepParams() model.Params {
	return model.Params{
		FixedCosts:        10000,
		Price:             50,
		VariableCost:      20,
		InitialUnits:      200,
		MonthlyGrowthRate: 0.05,
		Months:            12,
	}
}

func TestParseParameter(t *testing.T) {
	tests := []struct {
		name string
		want Parameter
	}{
		{"price", ParamPrice},
		{"variable_cost", ParamVariableCost},
		{"initial_units", ParamInitialUnits},
		{"monthly_growth_rate", ParamMonthlyGrowthRate},
		{"fixed_costs", ParamFixedCosts},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseParameter(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, name := range []string{"months", "initial_sales", "monthly_growth", "Price", ""} {
		_, err := ParseParameter(name)
		assert.True(t, errors.Is(err, ErrUnknownParameter), name)
	}
}

func TestParameterString_RoundTrips(t *testing.T) {
	for _, p := range Parameters {
		got, err := ParseParameter(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestParameterApply(t *testing.T) {
	base := model.Params{FixedCosts: 100, Price: 10, VariableCost: 4, InitialUnits: 7, MonthlyGrowthRate: 0.1, Months: 6}

	assert.InDelta(t, 15.0, ParamPrice.Apply(base, 0.5).Price, 1e-9)
	assert.InDelta(t, 2.0, ParamVariableCost.Apply(base, -0.5).VariableCost, 1e-9)
	assert.InDelta(t, 0.15, ParamMonthlyGrowthRate.Apply(base, 0.5).MonthlyGrowthRate, 1e-9)
	assert.InDelta(t, 150.0, ParamFixedCosts.Apply(base, 0.5).FixedCosts, 1e-9)
	assert.Equal(t, 10, ParamInitialUnits.Apply(base, 0.5).InitialUnits)
	assert.Equal(t, 3, ParamInitialUnits.Apply(base, -0.5).InitialUnits)
	assert.Equal(t, math.MaxInt, ParamInitialUnits.Apply(model.Params{InitialUnits: math.MaxInt}, 0.5).InitialUnits)

	// only the targeted field moves
	scaled := ParamPrice.Apply(base, 0.5)
	scaled.Price = base.Price
	assert.Equal(t, base, scaled)
}

func TestChangeFractions(t *testing.T) {
	assert.Equal(t, [5]float64{-0.2, -0.1, 0, 0.1, 0.2}, ChangeFractions(0.2))
}

func TestSensitivity_FivePointsInOrder(t *testing.T) {
	points, err := Sensitivity(sweepParams(), "price", 0.2)
	require.NoError(t, err)
	require.Len(t, points, 5)

	want := []int{-20, -10, 0, 10, 20}
	for i, p := range points {
		assert.Equal(t, want[i], p.ChangePercent)
	}

	base := Project(sweepParams())
	assert.Equal(t, BreakEvenMonth(base), points[2].BreakEvenMonth)
	assert.Equal(t, FinalCumulativeProfit(base), points[2].FinalCumulativeProfit)
}

func TestSensitivity_VariableCostMonotone(t *testing.T) {
	points, err := Sensitivity(sweepParams(), "variable_cost", 0.1)
	require.NoError(t, err)

	var lower, higher *model.SensitivityPoint
	for i := range points {
		switch points[i].ChangePercent {
		case -10:
			lower = &points[i]
		case 10:
			higher = &points[i]
		}
	}
	require.NotNil(t, lower)
	require.NotNil(t, higher)
	assert.Greater(t, lower.FinalCumulativeProfit, higher.FinalCumulativeProfit)
}

func TestSensitivity_UnknownParameter(t *testing.T) {
	points, err := Sensitivity(sweepParams(), "discount", 0.1)
	if !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("err = %v, want ErrUnknownParameter", err)
	}
	assert.Nil(t, points)
}

func TestSensitivity_ZeroMonths(t *testing.T) {
	p := sweepParams()
	p.Months = 0
	points, err := Sensitivity(p, "fixed_costs", 0.3)
	require.NoError(t, err)
	require.Len(t, points, 5)
	for _, pt := range points {
		assert.Zero(t, pt.BreakEvenMonth)
		assert.Zero(t, pt.FinalCumulativeProfit)
	}
}

func TestSensitivity_Idempotent(t *testing.T) {
	a, err := Sensitivity(sweepParams(), "monthly_growth_rate", 0.25)
	require.NoError(t, err)
	b, err := Sensitivity(sweepParams(), "monthly_growth_rate", 0.25)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTornado(t *testing.T) {
	rows := Tornado(sweepParams(), 0.1)
	require.Len(t, rows, len(Parameters))

	seen := map[Parameter]bool{}
	for i, r := range rows {
		seen[r.Parameter] = true
		assert.Equal(t, r.Parameter.String(), r.Name)
		assert.InDelta(t, r.HighProfit-r.LowProfit, r.Spread, 1e-9)
		assert.Len(t, r.Points, 5)
		if i > 0 {
			assert.GreaterOrEqual(t, rows[i-1].Spread, r.Spread)
		}
	}
	assert.Len(t, seen, len(Parameters))

	for _, r := range rows {
		if r.Parameter == ParamFixedCosts {
			assert.InDelta(t, 2000.0, r.Spread, 1e-6)
		}
	}
}

func BenchmarkSensitivity(b *testing.B) {
	p := sweepParams()
	p.Months = 60
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Sensitivity(p, "price", 0.2); err != nil {
			b.Fatal(err)
		}
	}
}
