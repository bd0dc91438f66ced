// Package model defines the value types shared by the runway engine and its collaborators.
package model

// Params holds the six inputs of a monthly projection.
type Params struct {
	FixedCosts        float64 `json:"fixed_costs" toml:"fixed_costs"`
	Price             float64 `json:"price" toml:"price"`
	VariableCost      float64 `json:"variable_cost" toml:"variable_cost"`
	InitialUnits      int     `json:"initial_units" toml:"initial_units" validate:"gte=0"`
	MonthlyGrowthRate float64 `json:"monthly_growth_rate" toml:"monthly_growth_rate"`
	Months            int     `json:"months" toml:"months" validate:"gte=0"`
}

// UnitMargin is the per-unit contribution margin.
func (p Params) UnitMargin() float64 {
	return p.Price - p.VariableCost
}

// CohortParams holds the inputs of a single-cohort churn projection.
type CohortParams struct {
	InitialCustomers  int     `json:"initial_customers"`
	MarginPerCustomer float64 `json:"margin_per_customer"`
	ChurnRate         float64 `json:"churn_rate"`
	Months            int     `json:"months"`
}

// DefaultCohort is a 100-customer cohort at 5.0 monthly margin and 10%
// monthly churn over the given window.
func DefaultCohort(months int) CohortParams {
	return CohortParams{
		InitialCustomers:  100,
		MarginPerCustomer: 5.0,
		ChurnRate:         0.1,
		Months:            months,
	}
}

// NormalizeRate accepts a rate given either as a fraction or as a
// percentage. Values above 1 are read as percentages, so 8 and 0.08 both
// mean eight percent.
func NormalizeRate(v float64) float64 {
	if v > 1 {
		return v / 100
	}
	return v
}
