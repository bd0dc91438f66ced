package server

import (
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/store"
)

func success(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"status": "success", "data": data})
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"status": "error", "message": message})
}

// failErr maps domain errors onto status codes.
func (s *Server) failErr(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, engine.ErrInvalidMargin),
		errors.Is(err, engine.ErrUnknownParameter),
		errors.Is(err, store.ErrInvalidScenario):
		status = http.StatusBadRequest
	}
	_ = c.Error(err)
	fail(c, status, err.Error())
}

func (s *Server) requireStore(c *gin.Context) {
	if s.store == nil {
		fail(c, http.StatusServiceUnavailable, "scenario store is not configured")
		return
	}
	c.Next()
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "runway API",
		"version": s.cfg.Version,
	})
}

type projectResponse struct {
	Params                model.Params            `json:"params"`
	Results               []model.MonthlyRecord   `json:"results"`
	BreakEvenMonth        int                     `json:"break_even_month"`
	FinalCumulativeProfit float64                 `json:"final_cumulative_profit"`
	Summary               model.ProjectionSummary `json:"summary"`
}

func (s *Server) handleProject(c *gin.Context) {
	p, err := projectionParams(c, s.cfg.App)
	if err != nil {
		s.failErr(c, err)
		return
	}

	records := engine.Project(p)
	summary := engine.Summarize(p, records)
	success(c, http.StatusOK, projectResponse{
		Params:                p,
		Results:               records,
		BreakEvenMonth:        summary.BreakEvenMonth,
		FinalCumulativeProfit: summary.FinalCumulativeProfit,
		Summary:               summary,
	})
}

// cohortSummaryJSON carries LTV as null when churn is non-positive, since
// JSON has no infinity.
type cohortSummaryJSON struct {
	LTV                   *float64 `json:"ltv"`
	LTVUnbounded          bool     `json:"ltv_unbounded"`
	CACPaybackMonths      int      `json:"cac_payback_months"`
	FinalCustomers        int      `json:"final_customers"`
	FinalCumulativeMargin float64  `json:"final_cumulative_margin"`
}

type cohortResponse struct {
	Params                model.CohortParams   `json:"params"`
	Results               []model.CohortRecord `json:"results"`
	FinalCumulativeMargin float64              `json:"final_cumulative_margin"`
	Summary               cohortSummaryJSON    `json:"summary"`
}

func (s *Server) handleCohort(c *gin.Context) {
	p, cac, err := cohortParams(c, s.cfg.App)
	if err != nil {
		s.failErr(c, err)
		return
	}

	records := engine.CohortProject(p)
	sum := engine.SummarizeCohort(p, cac, records)
	out := cohortSummaryJSON{
		CACPaybackMonths:      sum.CACPaybackMonths,
		FinalCustomers:        sum.FinalCustomers,
		FinalCumulativeMargin: sum.FinalCumulativeMargin,
	}
	if math.IsInf(sum.LTV, 0) {
		out.LTVUnbounded = true
	} else {
		ltv := sum.LTV
		out.LTV = &ltv
	}

	success(c, http.StatusOK, cohortResponse{
		Params:                p,
		Results:               records,
		FinalCumulativeMargin: sum.FinalCumulativeMargin,
		Summary:               out,
	})
}

func (s *Server) handleSensitivity(c *gin.Context) {
	p, err := projectionParams(c, s.cfg.App)
	if err != nil {
		s.failErr(c, err)
		return
	}
	q := &query{c: c}
	name := q.str("price", "parameter")
	variation := q.float(engine.DefaultVariation, "variation")
	if q.err != nil {
		s.failErr(c, q.err)
		return
	}

	param, err := engine.ParseParameter(sweepParameter(name))
	if err != nil {
		s.failErr(c, err)
		return
	}

	success(c, http.StatusOK, gin.H{
		"parameter":       param.String(),
		"variation_range": variation,
		"results":         engine.SensitivityFor(p, param, variation),
	})
}

func (s *Server) handleTornado(c *gin.Context) {
	p, err := projectionParams(c, s.cfg.App)
	if err != nil {
		s.failErr(c, err)
		return
	}
	q := &query{c: c}
	variation := q.float(engine.DefaultVariation, "variation")
	if q.err != nil {
		s.failErr(c, q.err)
		return
	}

	success(c, http.StatusOK, gin.H{
		"variation_range": variation,
		"rows":            engine.Tornado(p, variation),
	})
}

func (s *Server) handlePresets(c *gin.Context) {
	presets := config.Presets(s.cfg.App)
	success(c, http.StatusOK, gin.H{
		"presets": presets,
		"count":   len(presets),
	})
}

func (s *Server) handleListScenarios(c *gin.Context) {
	names, err := s.store.List(c.Request.Context())
	if err != nil {
		s.failErr(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{
		"scenarios": names,
		"count":     len(names),
	})
}

// saveRequest accepts both the canonical field names and the older
// initial_sales / monthly_growth spellings.
type saveRequest struct {
	Name              string   `json:"name" binding:"required"`
	Preset            string   `json:"preset"`
	FixedCosts        *float64 `json:"fixed_costs"`
	Price             *float64 `json:"price"`
	VariableCost      *float64 `json:"variable_cost"`
	InitialUnits      *int     `json:"initial_units"`
	InitialSales      *int     `json:"initial_sales"`
	MonthlyGrowthRate *float64 `json:"monthly_growth_rate"`
	MonthlyGrowth     *float64 `json:"monthly_growth"`
	Months            *int     `json:"months"`
}

func (r saveRequest) params(base model.Params) model.Params {
	p := base
	if r.FixedCosts != nil {
		p.FixedCosts = *r.FixedCosts
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.VariableCost != nil {
		p.VariableCost = *r.VariableCost
	}
	switch {
	case r.InitialUnits != nil:
		p.InitialUnits = *r.InitialUnits
	case r.InitialSales != nil:
		p.InitialUnits = *r.InitialSales
	}
	switch {
	case r.MonthlyGrowthRate != nil:
		p.MonthlyGrowthRate = *r.MonthlyGrowthRate
	case r.MonthlyGrowth != nil:
		p.MonthlyGrowthRate = *r.MonthlyGrowth
	}
	if r.Months != nil {
		p.Months = *r.Months
	}
	return p
}

func (s *Server) handleSaveScenario(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "missing scenario name or malformed body")
		return
	}

	preset, ok := config.LookupPreset(s.cfg.App, req.Preset)
	if !ok {
		s.failErr(c, fmt.Errorf("%w: unknown preset %q", errBadRequest, req.Preset))
		return
	}

	p := req.params(preset.Params)
	if err := checkWindow(p.Months); err != nil {
		s.failErr(c, err)
		return
	}
	if err := s.store.Save(c.Request.Context(), req.Name, p); err != nil {
		s.failErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("Scenario %q saved successfully", req.Name),
		"data":    gin.H{"name": req.Name, "params": p},
	})
}

func (s *Server) handleLoadScenario(c *gin.Context) {
	name := c.Param("name")
	p, err := s.store.Load(c.Request.Context(), name)
	if err != nil {
		s.failErr(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{
		"name":   name,
		"params": p,
	})
}

func (s *Server) handleDeleteScenario(c *gin.Context) {
	name := c.Param("name")
	deleted, err := s.store.Delete(c.Request.Context(), name)
	if err != nil {
		s.failErr(c, err)
		return
	}
	if !deleted {
		fail(c, http.StatusNotFound, fmt.Sprintf("Scenario %q not found", name))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("Scenario %q deleted successfully", name),
	})
}
