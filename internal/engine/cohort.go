package engine

import (
	"math"

	"github.com/theirongolddev/runway/internal/model"
)

// CohortProject decays a single acquisition cohort under monthly churn.
//
// The customer count is carried as a real value between months; only the
// emitted Customers field is truncated. Churn outside [0,1] is accepted and
// produces growing or negative cohorts.
func CohortProject(p model.CohortParams) []model.CohortRecord {
	if p.Months <= 0 {
		return []model.CohortRecord{}
	}

	records := make([]model.CohortRecord, 0, p.Months)
	customers := float64(p.InitialCustomers)
	cumulative := 0.0

	for m := 1; m <= p.Months; m++ {
		margin := customers * p.MarginPerCustomer
		cumulative += margin

		records = append(records, model.CohortRecord{
			Month:            m,
			Customers:        truncInt(customers),
			MonthlyMargin:    margin,
			CumulativeMargin: cumulative,
		})

		customers *= 1 - p.ChurnRate
	}

	return records
}

// LTV estimates customer lifetime value as margin over churn. A non-positive
// churn rate means customers never leave, so the value is +Inf.
func LTV(marginPerCustomer, churnRate float64) float64 {
	if churnRate <= 0 {
		return math.Inf(1)
	}
	return marginPerCustomer / churnRate
}

// CACPaybackMonths returns the whole months of margin needed to recover the
// acquisition cost, or 0 when the margin is not positive.
func CACPaybackMonths(cac, marginPerCustomer float64) int {
	if marginPerCustomer <= 0 {
		return 0
	}
	return int(math.Ceil(cac / marginPerCustomer))
}

// SummarizeCohort reduces a cohort run to LTV, payback, and final totals.
func SummarizeCohort(p model.CohortParams, cac float64, records []model.CohortRecord) model.CohortSummary {
	s := model.CohortSummary{
		LTV:              LTV(p.MarginPerCustomer, p.ChurnRate),
		CACPaybackMonths: CACPaybackMonths(cac, p.MarginPerCustomer),
	}
	if n := len(records); n > 0 {
		s.FinalCustomers = records[n-1].Customers
		s.FinalCumulativeMargin = records[n-1].CumulativeMargin
	}
	return s
}
