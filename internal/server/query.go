package server

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"
)

// MaxMonths bounds the projection window a single request may ask for.
const MaxMonths = 1200

var errBadRequest = errors.New("bad request")

// sweepAliases maps the older sensitivity parameter spellings onto the
// engine's names.
var sweepAliases = map[string]string{
	"initial_sales":  "initial_units",
	"monthly_growth": "monthly_growth_rate",
}

func sweepParameter(name string) string {
	if canonical, ok := sweepAliases[name]; ok {
		return canonical
	}
	return name
}

// query reads typed values from the URL query, accepting several names per
// value. The first parse failure sticks.
type query struct {
	c   *gin.Context
	err error
}

func (q *query) lookup(names []string) (string, string, bool) {
	for _, n := range names {
		if v, ok := q.c.GetQuery(n); ok && v != "" {
			return n, v, true
		}
	}
	return "", "", false
}

func (q *query) float(def float64, names ...string) float64 {
	name, raw, ok := q.lookup(names)
	if !ok || q.err != nil {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		q.err = fmt.Errorf("%w: %s must be a number, got %q", errBadRequest, name, raw)
		return def
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		q.err = fmt.Errorf("%w: %s must be finite, got %q", errBadRequest, name, raw)
		return def
	}
	return v
}

func (q *query) int(def int, names ...string) int {
	name, raw, ok := q.lookup(names)
	if !ok || q.err != nil {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		q.err = fmt.Errorf("%w: %s must be an integer, got %q", errBadRequest, name, raw)
		return def
	}
	return v
}

func (q *query) str(def string, names ...string) string {
	if _, raw, ok := q.lookup(names); ok {
		return raw
	}
	return def
}

// projectionParams resolves the base preset (query "preset" or the
// configured default) and overlays any explicit query values.
func projectionParams(c *gin.Context, cfg config.Config) (model.Params, error) {
	q := &query{c: c}

	name := q.str("", "preset")
	preset, ok := config.LookupPreset(cfg, name)
	if !ok {
		return model.Params{}, fmt.Errorf("%w: unknown preset %q", errBadRequest, name)
	}
	base := preset.Params

	p := model.Params{
		FixedCosts:        q.float(base.FixedCosts, "fixed_costs"),
		Price:             q.float(base.Price, "price"),
		VariableCost:      q.float(base.VariableCost, "variable_cost"),
		InitialUnits:      q.int(base.InitialUnits, "initial_units", "initial_sales"),
		MonthlyGrowthRate: q.float(base.MonthlyGrowthRate, "monthly_growth_rate", "monthly_growth"),
		Months:            q.int(base.Months, "months"),
	}
	if q.err != nil {
		return model.Params{}, q.err
	}
	if err := checkWindow(p.Months); err != nil {
		return model.Params{}, err
	}
	if p.InitialUnits < 0 {
		return model.Params{}, fmt.Errorf("%w: initial units must not be negative", errBadRequest)
	}
	return p, nil
}

// cohortParams reads cohort inputs, defaulting to a 100-customer cohort at
// $5 margin and 10% churn.
func cohortParams(c *gin.Context, cfg config.Config) (model.CohortParams, float64, error) {
	q := &query{c: c}
	base := model.DefaultCohort(config.Months(cfg))
	p := model.CohortParams{
		InitialCustomers:  q.int(base.InitialCustomers, "initial_customers"),
		MarginPerCustomer: q.float(base.MarginPerCustomer, "margin_per_customer", "monthly_margin"),
		ChurnRate:         q.float(base.ChurnRate, "churn_rate", "monthly_churn"),
		Months:            q.int(base.Months, "months"),
	}
	cac := q.float(0, "cac")
	if q.err != nil {
		return model.CohortParams{}, 0, q.err
	}
	if err := checkWindow(p.Months); err != nil {
		return model.CohortParams{}, 0, err
	}
	return p, cac, nil
}

func checkWindow(months int) error {
	if months > MaxMonths {
		return fmt.Errorf("%w: months must be at most %d", errBadRequest, MaxMonths)
	}
	return nil
}
