package tui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// paramValues holds the text the edit form binds to. Rates accept either a
// fraction or a percentage ("0.05", "5", "5%").
type paramValues struct {
	fixedCosts   string
	price        string
	variableCost string
	initialUnits string
	growth       string
	months       string

	customers string
	margin    string
	churn     string
	cac       string
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func newParamValues(p model.Params, c model.CohortParams, cac float64) *paramValues {
	return &paramValues{
		fixedCosts:   formatFloat(p.FixedCosts),
		price:        formatFloat(p.Price),
		variableCost: formatFloat(p.VariableCost),
		initialUnits: strconv.Itoa(p.InitialUnits),
		growth:       formatFloat(p.MonthlyGrowthRate),
		months:       strconv.Itoa(p.Months),
		customers:    strconv.Itoa(c.InitialCustomers),
		margin:       formatFloat(c.MarginPerCustomer),
		churn:        formatFloat(c.ChurnRate),
		cac:          formatFloat(cac),
	}
}

var errNotNumber = errors.New("not a number")

func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, errNotNumber
	}
	return v, nil
}

func parseRate(s string) (float64, error) {
	v, err := parseAmount(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil {
		return 0, err
	}
	return model.NormalizeRate(v), nil
}

func parseCount(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errNotNumber
	}
	if v < 0 {
		return 0, errors.New("must not be negative")
	}
	return v, nil
}

func validateAmount(s string) error {
	_, err := parseAmount(s)
	return err
}

func validateRate(s string) error {
	_, err := parseRate(s)
	return err
}

func validateCount(s string) error {
	_, err := parseCount(s)
	return err
}

func validateMonths(s string) error {
	n, err := parseCount(s)
	if err != nil {
		return err
	}
	if n > maxFormMonths {
		return fmt.Errorf("at most %d months", maxFormMonths)
	}
	return nil
}

const maxFormMonths = 1200

// apply parses the form into engine inputs. Every field was validated by
// the form, so a parse failure here means the form was bypassed.
func (v *paramValues) apply() (model.Params, model.CohortParams, float64, error) {
	var errs []error
	amount := func(s string) float64 {
		f, err := parseAmount(s)
		errs = append(errs, err)
		return f
	}
	rate := func(s string) float64 {
		f, err := parseRate(s)
		errs = append(errs, err)
		return f
	}
	count := func(s string) int {
		n, err := parseCount(s)
		errs = append(errs, err)
		return n
	}

	p := model.Params{
		FixedCosts:        amount(v.fixedCosts),
		Price:             amount(v.price),
		VariableCost:      amount(v.variableCost),
		InitialUnits:      count(v.initialUnits),
		MonthlyGrowthRate: rate(v.growth),
		Months:            count(v.months),
	}
	c := model.CohortParams{
		InitialCustomers:  count(v.customers),
		MarginPerCustomer: amount(v.margin),
		ChurnRate:         rate(v.churn),
		Months:            p.Months,
	}
	cac := amount(v.cac)
	if err := errors.Join(errs...); err != nil {
		return model.Params{}, model.CohortParams{}, 0, fmt.Errorf("parsing inputs: %w", err)
	}
	return p, c, cac, nil
}

func newParamForm(v *paramValues) *huh.Form {
	input := func(title string, value *string, validate func(string) error) *huh.Input {
		return huh.NewInput().Title(title).Value(value).Validate(validate)
	}
	return huh.NewForm(
		huh.NewGroup(
			input("Fixed costs per month", &v.fixedCosts, validateAmount),
			input("Price per unit", &v.price, validateAmount),
			input("Variable cost per unit", &v.variableCost, validateAmount),
			input("Units sold in month 1", &v.initialUnits, validateCount),
			input("Monthly growth (0.05 or 5%)", &v.growth, validateRate),
			input("Months to project", &v.months, validateMonths),
		).Title("Projection"),
		huh.NewGroup(
			input("Customers in cohort", &v.customers, validateCount),
			input("Margin per customer per month", &v.margin, validateAmount),
			input("Monthly churn (0.1 or 10%)", &v.churn, validateRate),
			input("Acquisition cost per customer", &v.cac, validateAmount),
		).Title("Cohort"),
	).WithShowHelp(true)
}

func formWidth(termWidth int) int {
	return max(40, min(termWidth-8, 72))
}

func (a App) openForm() (tea.Model, tea.Cmd) {
	a.formVals = newParamValues(a.params, a.cohort, a.cac)
	a.form = newParamForm(a.formVals).WithWidth(formWidth(a.width))
	return a, a.form.Init()
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		a.form, a.formVals = nil, nil
		return a, nil
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		if p, c, cac, err := a.formVals.apply(); err == nil {
			a.params, a.cohort, a.cac = p, c, cac
			a.source = "custom"
			a.presetIdx = -1
			a.recompute()
		}
		a.form, a.formVals = nil, nil
		return a, nil
	case huh.StateAborted:
		a.form, a.formVals = nil, nil
		return a, nil
	}
	return a, cmd
}

func (a App) viewForm() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2).
		Render(a.form.View())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}
