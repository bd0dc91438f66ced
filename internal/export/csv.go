// Package export writes simulation results as CSV.
package export

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/report"
)

// ProjectionCSV is one projection month as written to CSV.
type ProjectionCSV struct {
	Month            int    `csv:"month"`
	Units            int    `csv:"units"`
	Revenue          string `csv:"revenue"`
	VariableCosts    string `csv:"variable_costs"`
	Profit           string `csv:"profit"`
	CumulativeProfit string `csv:"cumulative_profit"`
}

// CohortCSV is one cohort month as written to CSV.
type CohortCSV struct {
	Month            int    `csv:"month"`
	Customers        int    `csv:"customers"`
	MonthlyMargin    string `csv:"monthly_margin"`
	CumulativeMargin string `csv:"cumulative_margin"`
}

// SensitivityCSV is one sweep point as written to CSV.
type SensitivityCSV struct {
	Parameter             string `csv:"parameter"`
	ChangePercent         int    `csv:"change_percent"`
	BreakEvenMonth        int    `csv:"break_even_month"`
	FinalCumulativeProfit string `csv:"final_cumulative_profit"`
}

// ReportCSV is one evaluated scenario as written to CSV.
type ReportCSV struct {
	Name                  string `csv:"name"`
	FixedCosts            string `csv:"fixed_costs"`
	Price                 string `csv:"price"`
	VariableCost          string `csv:"variable_cost"`
	InitialUnits          int    `csv:"initial_units"`
	MonthlyGrowthRate     string `csv:"monthly_growth_rate"`
	Months                int    `csv:"months"`
	BreakEvenMonth        int    `csv:"break_even_month"`
	BreakEvenUnits        string `csv:"break_even_units"`
	FinalCumulativeProfit string `csv:"final_cumulative_profit"`
	TotalRevenue          string `csv:"total_revenue"`
}

// Money renders v with exactly two decimal places. Non-finite values are
// written as inf, -inf, or nan.
func Money(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

func rate(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Money(v)
	}
	return decimal.NewFromFloat(v).StringFixed(4)
}

// WriteProjection writes projection records with a header row.
func WriteProjection(w io.Writer, records []model.MonthlyRecord) error {
	rows := lo.Map(records, func(r model.MonthlyRecord, _ int) ProjectionCSV {
		return ProjectionCSV{
			Month:            r.Month,
			Units:            r.Units,
			Revenue:          Money(r.Revenue),
			VariableCosts:    Money(r.VariableCosts),
			Profit:           Money(r.Profit),
			CumulativeProfit: Money(r.CumulativeProfit),
		}
	})
	return marshal(rows, w)
}

// WriteCohort writes cohort records with a header row.
func WriteCohort(w io.Writer, records []model.CohortRecord) error {
	rows := lo.Map(records, func(r model.CohortRecord, _ int) CohortCSV {
		return CohortCSV{
			Month:            r.Month,
			Customers:        r.Customers,
			MonthlyMargin:    Money(r.MonthlyMargin),
			CumulativeMargin: Money(r.CumulativeMargin),
		}
	})
	return marshal(rows, w)
}

// WriteSensitivity writes a sweep of param with a header row.
func WriteSensitivity(w io.Writer, param engine.Parameter, points []model.SensitivityPoint) error {
	rows := lo.Map(points, func(p model.SensitivityPoint, _ int) SensitivityCSV {
		return SensitivityCSV{
			Parameter:             param.String(),
			ChangePercent:         p.ChangePercent,
			BreakEvenMonth:        p.BreakEvenMonth,
			FinalCumulativeProfit: Money(p.FinalCumulativeProfit),
		}
	})
	return marshal(rows, w)
}

// WriteTornado writes every point of every sweep, widest spread first.
func WriteTornado(w io.Writer, rows []engine.TornadoRow) error {
	out := lo.FlatMap(rows, func(r engine.TornadoRow, _ int) []SensitivityCSV {
		return lo.Map(r.Points, func(p model.SensitivityPoint, _ int) SensitivityCSV {
			return SensitivityCSV{
				Parameter:             r.Name,
				ChangePercent:         p.ChangePercent,
				BreakEvenMonth:        p.BreakEvenMonth,
				FinalCumulativeProfit: Money(p.FinalCumulativeProfit),
			}
		})
	})
	return marshal(out, w)
}

// WriteReport writes one row per evaluated scenario. Break-even units are
// left blank when the margin is not positive.
func WriteReport(w io.Writer, rows []report.Row) error {
	out := lo.Map(rows, func(r report.Row, _ int) ReportCSV {
		row := ReportCSV{
			Name:                  r.Name,
			FixedCosts:            Money(r.Params.FixedCosts),
			Price:                 Money(r.Params.Price),
			VariableCost:          Money(r.Params.VariableCost),
			InitialUnits:          r.Params.InitialUnits,
			MonthlyGrowthRate:     rate(r.Params.MonthlyGrowthRate),
			Months:                r.Params.Months,
			BreakEvenMonth:        r.Summary.BreakEvenMonth,
			FinalCumulativeProfit: Money(r.Summary.FinalCumulativeProfit),
			TotalRevenue:          Money(r.Summary.TotalRevenue),
		}
		if r.Summary.BreakEvenUnitsOK {
			row.BreakEvenUnits = Money(r.Summary.BreakEvenUnits)
		}
		return row
	})
	return marshal(out, w)
}

// WriteFile creates path and hands it to write.
func WriteFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func marshal(rows any, w io.Writer) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("marshal csv: %w", err)
	}
	return nil
}
