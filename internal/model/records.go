package model

// MonthlyRecord is one simulated month of a projection.
type MonthlyRecord struct {
	Month            int     `json:"month"`
	Units            int     `json:"units"`
	Revenue          float64 `json:"revenue"`
	VariableCosts    float64 `json:"variable_costs"`
	Profit           float64 `json:"profit"`
	CumulativeProfit float64 `json:"cumulative_profit"`
}

// CohortRecord is one simulated month of a customer cohort.
type CohortRecord struct {
	Month            int     `json:"month"`
	Customers        int     `json:"customers"`
	MonthlyMargin    float64 `json:"monthly_margin"`
	CumulativeMargin float64 `json:"cumulative_margin"`
}

// SensitivityPoint is one perturbed run of a sensitivity sweep.
// BreakEvenMonth is 0 when break-even is not reached within the window.
type SensitivityPoint struct {
	ChangePercent         int     `json:"change_percent"`
	BreakEvenMonth        int     `json:"break_even_month"`
	FinalCumulativeProfit float64 `json:"final_cumulative_profit"`
}

// ProjectionSummary holds the headline numbers derived from a projection.
type ProjectionSummary struct {
	BreakEvenMonth        int     `json:"break_even_month"`
	BreakEvenUnits        float64 `json:"break_even_units"`
	BreakEvenUnitsOK      bool    `json:"break_even_units_ok"`
	FinalCumulativeProfit float64 `json:"final_cumulative_profit"`
	TotalRevenue          float64 `json:"total_revenue"`
	TotalVariableCosts    float64 `json:"total_variable_costs"`
	TotalProfit           float64 `json:"total_profit"`
	PeakUnits             int     `json:"peak_units"`
}

// CohortSummary holds the headline numbers derived from a cohort run.
// LTV is +Inf when the cohort never churns; CACPaybackMonths is 0 when
// the margin never recovers acquisition cost.
type CohortSummary struct {
	LTV                   float64 `json:"ltv"`
	CACPaybackMonths      int     `json:"cac_payback_months"`
	FinalCustomers        int     `json:"final_customers"`
	FinalCumulativeMargin float64 `json:"final_cumulative_margin"`
}
