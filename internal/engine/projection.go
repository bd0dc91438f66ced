// Package engine implements the runway simulation core: the monthly
// projection, cohort decay, break-even derivations, and sensitivity sweeps.
//
// Every function is pure. Callers may invoke them concurrently without
// coordination.
package engine

import (
	"fmt"

	"github.com/theirongolddev/runway/internal/model"
)

// Project steps the business month by month.
//
// Fixed costs are charged once, before month 1. Units compound on the
// previous month's integer count and are truncated toward zero each step,
// so a shrinking business can reach 0 units and stay there. Counts saturate
// at math.MaxInt instead of wrapping.
func Project(p model.Params) []model.MonthlyRecord {
	if p.Months <= 0 {
		return []model.MonthlyRecord{}
	}

	records := make([]model.MonthlyRecord, 0, p.Months)
	cumulative := -p.FixedCosts
	units := p.InitialUnits

	for m := 1; m <= p.Months; m++ {
		revenue := float64(units) * p.Price
		variable := float64(units) * p.VariableCost
		profit := revenue - variable
		cumulative += profit

		records = append(records, model.MonthlyRecord{
			Month:            m,
			Units:            units,
			Revenue:          revenue,
			VariableCosts:    variable,
			Profit:           profit,
			CumulativeProfit: cumulative,
		})

		units = truncInt(float64(units) * (1 + p.MonthlyGrowthRate))
	}

	return records
}

// BreakEvenUnits returns the one-time unit volume at which revenue covers
// fixed plus variable cost. It fails with ErrInvalidMargin when price does
// not exceed variable cost.
func BreakEvenUnits(fixedCosts, price, variableCost float64) (float64, error) {
	margin := price - variableCost
	if margin <= 0 {
		return 0, fmt.Errorf("break-even units (price %.2f, variable cost %.2f): %w",
			price, variableCost, ErrInvalidMargin)
	}
	return fixedCosts / margin, nil
}

// BreakEvenMonth returns the month of the first record whose cumulative
// profit is non-negative, or 0 if no such record exists.
func BreakEvenMonth(records []model.MonthlyRecord) int {
	for _, r := range records {
		if r.CumulativeProfit >= 0 {
			return r.Month
		}
	}
	return 0
}

// FinalCumulativeProfit returns the last record's cumulative profit, or 0
// for an empty projection.
func FinalCumulativeProfit(records []model.MonthlyRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	return records[len(records)-1].CumulativeProfit
}

// Summarize reduces a projection to its headline numbers. An invalid margin
// is reported through BreakEvenUnitsOK rather than as an error.
func Summarize(p model.Params, records []model.MonthlyRecord) model.ProjectionSummary {
	s := model.ProjectionSummary{
		BreakEvenMonth:        BreakEvenMonth(records),
		FinalCumulativeProfit: FinalCumulativeProfit(records),
	}

	if units, err := BreakEvenUnits(p.FixedCosts, p.Price, p.VariableCost); err == nil {
		s.BreakEvenUnits = units
		s.BreakEvenUnitsOK = true
	}

	for _, r := range records {
		s.TotalRevenue += r.Revenue
		s.TotalVariableCosts += r.VariableCosts
		s.TotalProfit += r.Profit
		if r.Units > s.PeakUnits {
			s.PeakUnits = r.Units
		}
	}

	return s
}
