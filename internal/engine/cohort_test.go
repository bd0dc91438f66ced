package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/runway/internal/model"
)

func TestCohortProject(t *testing.T) {
	records := CohortProject(model.CohortParams{
		InitialCustomers:  100,
		MarginPerCustomer: 5,
		ChurnRate:         0.1,
		Months:            3,
	})
	require.Len(t, records, 3)

	wantCustomers := []int{100, 90, 81}
	wantMargin := []float64{500, 450, 405}
	wantCumulative := []float64{500, 950, 1355}
	for i, r := range records {
		assert.Equal(t, i+1, r.Month)
		assert.Equal(t, wantCustomers[i], r.Customers)
		assert.InDelta(t, wantMargin[i], r.MonthlyMargin, 1e-9)
		assert.InDelta(t, wantCumulative[i], r.CumulativeMargin, 1e-9)
	}
}

func TestCohortProject_CarriesRealCustomers(t *testing.T) {
	records := CohortProject(model.CohortParams{
		InitialCustomers:  3,
		MarginPerCustomer: 2,
		ChurnRate:         0.5,
		Months:            3,
	})
	require.Len(t, records, 3)

	// emitted counts truncate, margins use the fractional cohort
	assert.Equal(t, []int{3, 1, 0}, []int{records[0].Customers, records[1].Customers, records[2].Customers})
	assert.InDelta(t, 3.0, records[1].MonthlyMargin, 1e-9)
	assert.InDelta(t, 1.5, records[2].MonthlyMargin, 1e-9)
	assert.InDelta(t, 10.5, records[2].CumulativeMargin, 1e-9)
}

func TestCohortProject_NegativeChurnGrows(t *testing.T) {
	records := CohortProject(model.CohortParams{
		InitialCustomers:  100,
		MarginPerCustomer: 1,
		ChurnRate:         -0.5,
		Months:            3,
	})
	require.Len(t, records, 3)

	assert.Equal(t, []int{100, 150, 225}, []int{records[0].Customers, records[1].Customers, records[2].Customers})
	assert.InDelta(t, 225.0, records[2].MonthlyMargin, 1e-9)
	assert.InDelta(t, 475.0, records[2].CumulativeMargin, 1e-9)
}

func TestCohortProject_ChurnAboveOneGoesNegative(t *testing.T) {
	records := CohortProject(model.CohortParams{
		InitialCustomers:  100,
		MarginPerCustomer: 1,
		ChurnRate:         1.5,
		Months:            3,
	})
	require.Len(t, records, 3)

	// customers alternate sign: 100, -50, 25
	assert.Equal(t, []int{100, -50, 25}, []int{records[0].Customers, records[1].Customers, records[2].Customers})
	assert.InDelta(t, -50.0, records[1].MonthlyMargin, 1e-9)
	assert.InDelta(t, 75.0, records[2].CumulativeMargin, 1e-9)

	// emitted counts truncate toward zero, not down
	small := CohortProject(model.CohortParams{InitialCustomers: 3, MarginPerCustomer: 2, ChurnRate: 1.5, Months: 3})
	assert.Equal(t, []int{3, -1, 0}, []int{small[0].Customers, small[1].Customers, small[2].Customers})
	assert.InDelta(t, -3.0, small[1].MonthlyMargin, 1e-9)
	assert.InDelta(t, 1.5, small[2].MonthlyMargin, 1e-9)
}

func TestCohortProject_ZeroMonthsIsEmpty(t *testing.T) {
	records := CohortProject(model.CohortParams{InitialCustomers: 10, MarginPerCustomer: 1, ChurnRate: 0.1})
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestCohortProject_Idempotent(t *testing.T) {
	p := model.CohortParams{InitialCustomers: 137, MarginPerCustomer: 7.3, ChurnRate: 0.071, Months: 24}
	assert.Equal(t, CohortProject(p), CohortProject(p))
}

func TestLTV(t *testing.T) {
	assert.Equal(t, 50.0, LTV(10, 0.2))

	for _, churn := range []float64{0, -0.1} {
		if got := LTV(10, churn); !math.IsInf(got, 1) {
			t.Errorf("LTV(10, %v) = %v, want +Inf", churn, got)
		}
	}
}

func TestCACPaybackMonths(t *testing.T) {
	tests := []struct {
		cac, margin float64
		want        int
	}{
		{200, 10, 20},
		{201, 10, 21},
		{0, 10, 0},
		{200, 0, 0},
		{200, -5, 0},
	}
	for _, tt := range tests {
		if got := CACPaybackMonths(tt.cac, tt.margin); got != tt.want {
			t.Errorf("CACPaybackMonths(%v, %v) = %d, want %d", tt.cac, tt.margin, got, tt.want)
		}
	}
}

func TestSummarizeCohort(t *testing.T) {
	p := model.CohortParams{InitialCustomers: 100, MarginPerCustomer: 5, ChurnRate: 0.1, Months: 3}
	s := SummarizeCohort(p, 50, CohortProject(p))

	assert.Equal(t, 50.0, s.LTV)
	assert.Equal(t, 10, s.CACPaybackMonths)
	assert.Equal(t, 81, s.FinalCustomers)
	assert.InDelta(t, 1355, s.FinalCumulativeMargin, 1e-9)

	empty := SummarizeCohort(model.CohortParams{MarginPerCustomer: 5}, 50, nil)
	assert.True(t, math.IsInf(empty.LTV, 1))
	assert.Zero(t, empty.FinalCustomers)
}
