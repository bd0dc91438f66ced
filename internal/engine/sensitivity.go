package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/theirongolddev/runway/internal/model"
)

// DefaultVariation is the sweep range used when the caller gives none.
const DefaultVariation = 0.2

// Parameter names a projection input that a sensitivity sweep can vary.
type Parameter int

const (
	ParamPrice Parameter = iota
	ParamVariableCost
	ParamInitialUnits
	ParamMonthlyGrowthRate
	ParamFixedCosts
)

// Parameters lists every sweepable parameter in display order.
var Parameters = []Parameter{
	ParamPrice,
	ParamVariableCost,
	ParamInitialUnits,
	ParamMonthlyGrowthRate,
	ParamFixedCosts,
}

var paramNames = map[Parameter]string{
	ParamPrice:             "price",
	ParamVariableCost:      "variable_cost",
	ParamInitialUnits:      "initial_units",
	ParamMonthlyGrowthRate: "monthly_growth_rate",
	ParamFixedCosts:        "fixed_costs",
}

// String returns the wire name of the parameter.
func (p Parameter) String() string {
	if name, ok := paramNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Parameter(%d)", int(p))
}

// Label returns a human-readable name for tables and charts.
func (p Parameter) Label() string {
	switch p {
	case ParamPrice:
		return "Price"
	case ParamVariableCost:
		return "Variable cost"
	case ParamInitialUnits:
		return "Initial units"
	case ParamMonthlyGrowthRate:
		return "Monthly growth"
	case ParamFixedCosts:
		return "Fixed costs"
	}
	return p.String()
}

// ParseParameter resolves one of the five wire names to a Parameter.
func ParseParameter(name string) (Parameter, error) {
	for p, n := range paramNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("parameter %q: %w", name, ErrUnknownParameter)
}

// Apply returns a copy of params with this parameter scaled by (1 + change).
// Integer-valued inputs are truncated toward zero after scaling.
func (p Parameter) Apply(params model.Params, change float64) model.Params {
	factor := 1 + change
	switch p {
	case ParamPrice:
		params.Price *= factor
	case ParamVariableCost:
		params.VariableCost *= factor
	case ParamInitialUnits:
		params.InitialUnits = truncInt(float64(params.InitialUnits) * factor)
	case ParamMonthlyGrowthRate:
		params.MonthlyGrowthRate *= factor
	case ParamFixedCosts:
		params.FixedCosts *= factor
	}
	return params
}

// ChangeFractions returns the five relative perturbations of a sweep, in
// output order.
func ChangeFractions(v float64) [5]float64 {
	return [5]float64{-v, -v / 2, 0, v / 2, v}
}

// Sensitivity sweeps the named parameter across ±variation. An unknown name
// fails before any projection runs.
func Sensitivity(base model.Params, name string, variation float64) ([]model.SensitivityPoint, error) {
	param, err := ParseParameter(name)
	if err != nil {
		return nil, err
	}
	return SensitivityFor(base, param, variation), nil
}

// SensitivityFor sweeps an already-parsed parameter. Each of the five runs
// is an independent projection over its own copy of base.
func SensitivityFor(base model.Params, param Parameter, variation float64) []model.SensitivityPoint {
	fractions := ChangeFractions(variation)
	points := make([]model.SensitivityPoint, 0, len(fractions))
	for _, change := range fractions {
		records := Project(param.Apply(base, change))
		points = append(points, model.SensitivityPoint{
			ChangePercent:         int(math.Round(change * 100)),
			BreakEvenMonth:        BreakEvenMonth(records),
			FinalCumulativeProfit: FinalCumulativeProfit(records),
		})
	}
	return points
}

// TornadoRow is the outcome spread of one parameter's sweep.
type TornadoRow struct {
	Parameter  Parameter                `json:"-"`
	Name       string                   `json:"parameter"`
	LowProfit  float64                  `json:"low_profit"`
	HighProfit float64                  `json:"high_profit"`
	Spread     float64                  `json:"spread"`
	Points     []model.SensitivityPoint `json:"points"`
}

// Tornado sweeps every parameter and orders them by how far the final
// cumulative profit moves, widest first.
func Tornado(base model.Params, variation float64) []TornadoRow {
	rows := lo.Map(Parameters, func(p Parameter, _ int) TornadoRow {
		points := SensitivityFor(base, p, variation)
		profits := lo.Map(points, func(sp model.SensitivityPoint, _ int) float64 {
			return sp.FinalCumulativeProfit
		})
		low, high := lo.Min(profits), lo.Max(profits)
		return TornadoRow{
			Parameter:  p,
			Name:       p.String(),
			LowProfit:  low,
			HighProfit: high,
			Spread:     high - low,
			Points:     points,
		}
	})

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Spread > rows[j].Spread
	})
	return rows
}
