package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/runway/internal/model"
)

func baseParams() model.Params {
	return model.Params{
		FixedCosts:        1000,
		Price:             10,
		VariableCost:      5,
		InitialUnits:      20,
		MonthlyGrowthRate: 0.5,
		Months:            12,
	}
}

func TestProject_CumulativeInvariant(t *testing.T) {
	p := baseParams()
	records := Project(p)
	require.Len(t, records, p.Months)

	prev := -p.FixedCosts
	for i, r := range records {
		assert.Equal(t, i+1, r.Month)
		assert.InDelta(t, float64(r.Units)*p.Price, r.Revenue, 1e-9)
		assert.InDelta(t, float64(r.Units)*p.VariableCost, r.VariableCosts, 1e-9)
		assert.InDelta(t, r.Revenue-r.VariableCosts, r.Profit, 1e-9)
		assert.InDelta(t, prev+r.Profit, r.CumulativeProfit, 1e-9, "month %d", r.Month)
		prev = r.CumulativeProfit
	}
}

func TestProject_TruncatesUnitsEachStep(t *testing.T) {
	records := Project(baseParams())
	want := []int{20, 30, 45, 67, 100, 150, 225, 337, 505, 757, 1135, 1702}

	got := make([]int, len(records))
	for i, r := range records {
		got[i] = r.Units
	}
	assert.Equal(t, want, got)
}

func TestProject_DeclineReachesZeroAndStays(t *testing.T) {
	p := model.Params{Price: 10, VariableCost: 4, InitialUnits: 3, MonthlyGrowthRate: -0.5, Months: 6}
	records := Project(p)
	require.Len(t, records, 6)

	want := []int{3, 1, 0, 0, 0, 0}
	for i, r := range records {
		if r.Units != want[i] {
			t.Errorf("month %d units = %d, want %d", r.Month, r.Units, want[i])
		}
	}
	assert.Equal(t, 0.0, records[5].Profit)
}

func TestProject_LongGrowthSaturates(t *testing.T) {
	p := baseParams()
	p.Months = 120
	records := Project(p)
	require.Len(t, records, 120)

	prev := 0
	for _, r := range records {
		if r.Units < 0 || r.Units < prev {
			t.Fatalf("month %d units = %d after %d", r.Month, r.Units, prev)
		}
		prev = r.Units
	}
	assert.Equal(t, math.MaxInt, records[119].Units)
	assert.Greater(t, records[119].CumulativeProfit, 0.0)
}

func TestTruncInt(t *testing.T) {
	assert.Equal(t, 2, truncInt(2.9))
	assert.Equal(t, -2, truncInt(-2.9))
	assert.Equal(t, -50, truncInt(-0.5*100))
	assert.Equal(t, math.MaxInt, truncInt(1e30))
	assert.Equal(t, math.MinInt, truncInt(-1e30))
	assert.Equal(t, math.MaxInt, truncInt(math.Inf(1)))
	assert.Equal(t, 0, truncInt(math.NaN()))
}

func TestProject_ZeroMonthsIsEmpty(t *testing.T) {
	for _, months := range []int{0, -3} {
		p := baseParams()
		p.Months = months
		records := Project(p)
		assert.NotNil(t, records)
		assert.Empty(t, records)
		assert.Equal(t, 0, BreakEvenMonth(records))
		assert.Equal(t, 0.0, FinalCumulativeProfit(records))
	}
}

func TestProject_Idempotent(t *testing.T) {
	p := baseParams()
	p.MonthlyGrowthRate = 0.037
	assert.Equal(t, Project(p), Project(p))
}

func TestBreakEvenUnits(t *testing.T) {
	units, err := BreakEvenUnits(1000, 10, 5)
	require.NoError(t, err)
	assert.Equal(t, 200.0, units)

	tests := []struct {
		name         string
		price, vcost float64
	}{
		{"zero margin", 5, 5},
		{"negative margin", 4, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BreakEvenUnits(100, tt.price, tt.vcost)
			if !errors.Is(err, ErrInvalidMargin) {
				t.Fatalf("err = %v, want ErrInvalidMargin", err)
			}
		})
	}
}

func TestBreakEvenMonth(t *testing.T) {
	month := BreakEvenMonth(Project(baseParams()))
	assert.Equal(t, 5, month)
	assert.GreaterOrEqual(t, month, 0)
	assert.LessOrEqual(t, month, 12)

	// zero cumulative profit counts as break-even
	records := []model.MonthlyRecord{
		{Month: 1, CumulativeProfit: -10},
		{Month: 2, CumulativeProfit: 0},
		{Month: 3, CumulativeProfit: 5},
	}
	assert.Equal(t, 2, BreakEvenMonth(records))

	never := baseParams()
	never.Price = 5
	assert.Equal(t, 0, BreakEvenMonth(Project(never)))
}

func TestSummarize(t *testing.T) {
	p := baseParams()
	records := Project(p)
	s := Summarize(p, records)

	assert.Equal(t, 5, s.BreakEvenMonth)
	assert.True(t, s.BreakEvenUnitsOK)
	assert.Equal(t, 200.0, s.BreakEvenUnits)
	assert.Equal(t, 1702, s.PeakUnits)
	assert.InDelta(t, records[len(records)-1].CumulativeProfit, s.FinalCumulativeProfit, 1e-9)
	assert.InDelta(t, s.TotalRevenue-s.TotalVariableCosts, s.TotalProfit, 1e-9)
	assert.InDelta(t, s.TotalProfit-p.FixedCosts, s.FinalCumulativeProfit, 1e-9)

	p.VariableCost = p.Price
	s = Summarize(p, Project(p))
	assert.False(t, s.BreakEvenUnitsOK)
	assert.Zero(t, s.BreakEvenUnits)
}

func BenchmarkProject(b *testing.B) {
	p := baseParams()
	p.Months = 120
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Project(p)
	}
}
