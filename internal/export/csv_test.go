package export

import (
	"bytes"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/report"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{1234.5, "1234.50"},
		{-900, "-900.00"},
		{2.345, "2.35"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "nan"},
	}
	for _, tt := range tests {
		if got := Money(tt.in); got != tt.want {
			t.Errorf("Money(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteProjection(t *testing.T) {
	records := engine.Project(model.Params{
		FixedCosts: 1000, Price: 10, VariableCost: 5,
		InitialUnits: 20, MonthlyGrowthRate: 0.5, Months: 2,
	})

	var buf bytes.Buffer
	require.NoError(t, WriteProjection(&buf, records))

	want := "month,units,revenue,variable_costs,profit,cumulative_profit\n" +
		"1,20,200.00,100.00,100.00,-900.00\n" +
		"2,30,300.00,150.00,150.00,-750.00\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteProjection_EmptyStillHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProjection(&buf, []model.MonthlyRecord{}))
	assert.Equal(t, "month,units,revenue,variable_costs,profit,cumulative_profit\n", buf.String())
}

func TestWriteCohort(t *testing.T) {
	records := engine.CohortProject(model.CohortParams{
		InitialCustomers: 100, MarginPerCustomer: 5, ChurnRate: 0.1, Months: 2,
	})

	var buf bytes.Buffer
	require.NoError(t, WriteCohort(&buf, records))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "month,customers,monthly_margin,cumulative_margin", lines[0])
	assert.Equal(t, "1,100,500.00,500.00", lines[1])
	assert.Equal(t, "2,90,450.00,950.00", lines[2])
}

func TestWriteSensitivity(t *testing.T) {
	points := []model.SensitivityPoint{
		{ChangePercent: -10, BreakEvenMonth: 4, FinalCumulativeProfit: 1500},
		{ChangePercent: 10, BreakEvenMonth: 0, FinalCumulativeProfit: -20.5},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSensitivity(&buf, engine.ParamPrice, points))

	want := "parameter,change_percent,break_even_month,final_cumulative_profit\n" +
		"price,-10,4,1500.00\n" +
		"price,10,0,-20.50\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTornado(t *testing.T) {
	rows := engine.Tornado(model.Params{
		FixedCosts: 10000, Price: 50, VariableCost: 20,
		InitialUnits: 200, MonthlyGrowthRate: 0.05, Months: 12,
	}, 0.2)

	var buf bytes.Buffer
	require.NoError(t, WriteTornado(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1+5*len(engine.Parameters))
	assert.True(t, strings.HasPrefix(lines[1], rows[0].Name+","))
}

func TestWriteReport(t *testing.T) {
	rows := []report.Row{
		{
			Name:   "saas",
			Params: model.Params{FixedCosts: 8000, Price: 100, VariableCost: 10, InitialUnits: 50, MonthlyGrowthRate: 0.08, Months: 12},
			Summary: model.ProjectionSummary{
				BreakEvenMonth: 2, BreakEvenUnits: 88.888, BreakEvenUnitsOK: true,
				FinalCumulativeProfit: 77000, TotalRevenue: 95000,
			},
		},
		{
			Name:    "flat",
			Params:  model.Params{Price: 5, VariableCost: 5, Months: 3},
			Summary: model.ProjectionSummary{},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,fixed_costs,price,variable_cost,initial_units,monthly_growth_rate,months,break_even_month,break_even_units,final_cumulative_profit,total_revenue", lines[0])
	assert.Equal(t, "saas,8000.00,100.00,10.00,50,0.0800,12,2,88.89,77000.00,95000.00", lines[1])
	assert.Equal(t, "flat,0.00,5.00,5.00,0,0.0000,3,0,,0.00,0.00", lines[2])
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	err := WriteFile(path, func(w io.Writer) error {
		return WriteProjection(w, nil)
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "month,units"))
}
