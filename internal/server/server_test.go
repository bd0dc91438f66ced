package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.OpenSQLite(filepath.Join(t.TempDir(), "scenarios.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	return New(Config{Version: "test", App: config.DefaultConfig()}, st, nil)
}

func do(t *testing.T, s *Server, method, target string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rdr *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec, env := do(t, s, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", env.Status)
	assert.Contains(t, rec.Body.String(), `"version":"test"`)
}

func TestProject_Defaults(t *testing.T) {
	s := newTestServer(t)
	rec, env := do(t, s, http.MethodGet, "/api/project", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", env.Status)

	var data projectResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data.Results, 12)
	assert.Equal(t, 10000.0, data.Params.FixedCosts)
	assert.Equal(t, 200, data.Results[0].Units)
	assert.Equal(t, data.Summary.BreakEvenMonth, data.BreakEvenMonth)
}

func TestProject_AliasesAndOverrides(t *testing.T) {
	s := newTestServer(t)
	rec, env := do(t, s, http.MethodGet,
		"/api/project?fixed_costs=1000&price=10&variable_cost=5&initial_sales=20&monthly_growth=0.5&months=12", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data projectResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 5, data.BreakEvenMonth)
	assert.Equal(t, 20, data.Params.InitialUnits)
	assert.Equal(t, 0.5, data.Params.MonthlyGrowthRate)
}

func TestProject_Preset(t *testing.T) {
	s := newTestServer(t)
	rec, env := do(t, s, http.MethodGet, "/api/project?preset=saas&months=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data projectResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 8000.0, data.Params.FixedCosts)
	assert.Len(t, data.Results, 3)

	rec, env = do(t, s, http.MethodGet, "/api/project?preset=spaceport", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", env.Status)
}

func TestProject_BadInput(t *testing.T) {
	s := newTestServer(t)
	for _, target := range []string{
		"/api/project?price=abc",
		"/api/project?months=1.5",
		"/api/project?months=99999",
		"/api/project?initial_units=-4",
		"/api/project?price=Inf",
		"/api/project?price=NaN",
		"/api/project?monthly_growth=-Inf",
		"/api/sensitivity?variation=NaN",
	} {
		rec, env := do(t, s, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, "error", env.Status, target)
		assert.NotEmpty(t, env.Message, target)
	}
}

func TestProject_ZeroMonths(t *testing.T) {
	s := newTestServer(t)
	rec, env := do(t, s, http.MethodGet, "/api/project?months=0", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data projectResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Empty(t, data.Results)
	assert.Equal(t, 0, data.BreakEvenMonth)
	assert.Equal(t, 0.0, data.FinalCumulativeProfit)
}

func TestCohort(t *testing.T) {
	s := newTestServer(t)
	rec, env := do(t, s, http.MethodGet, "/api/cohort?initial_customers=100&monthly_margin=10&monthly_churn=0.2&months=6&cac=200", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data cohortResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data.Results, 6)
	require.NotNil(t, data.Summary.LTV)
	assert.Equal(t, 50.0, *data.Summary.LTV)
	assert.Equal(t, 20, data.Summary.CACPaybackMonths)

	rec, env = do(t, s, http.MethodGet, "/api/cohort?monthly_churn=0", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Nil(t, data.Summary.LTV)
	assert.True(t, data.Summary.LTVUnbounded)
}

func TestSensitivity(t *testing.T) {
	s := newTestServer(t)
	rec, env := do(t, s, http.MethodGet, "/api/sensitivity?parameter=initial_sales&variation=0.2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Parameter string  `json:"parameter"`
		Variation float64 `json:"variation_range"`
		Results   []struct {
			ChangePercent int `json:"change_percent"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "initial_units", data.Parameter)
	require.Len(t, data.Results, 5)
	assert.Equal(t, -20, data.Results[0].ChangePercent)
	assert.Equal(t, 20, data.Results[4].ChangePercent)

	rec, env = do(t, s, http.MethodGet, "/api/sensitivity?parameter=discount", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Message, "discount")
}

func TestTornadoAndPresets(t *testing.T) {
	s := newTestServer(t)
	rec, _ := do(t, s, http.MethodGet, "/api/tornado?variation=0.1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := do(t, s, http.MethodGet, "/api/presets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var data struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, len(config.DefaultPresets), data.Count)
}

func TestScenarioLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec, env := do(t, s, http.MethodPost, "/api/scenarios", map[string]any{
		"name":           "launch",
		"fixed_costs":    5000,
		"price":          40,
		"variable_cost":  15,
		"initial_sales":  120,
		"monthly_growth": 0.07,
		"months":         18,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "success", env.Status)

	rec, env = do(t, s, http.MethodGet, "/api/scenarios", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"scenarios":["launch"],"count":1}`, string(env.Data))

	rec, env = do(t, s, http.MethodGet, "/api/scenarios/launch", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var loaded struct {
		Params struct {
			InitialUnits int     `json:"initial_units"`
			Growth       float64 `json:"monthly_growth_rate"`
			Months       int     `json:"months"`
		} `json:"params"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &loaded))
	assert.Equal(t, 120, loaded.Params.InitialUnits)
	assert.Equal(t, 0.07, loaded.Params.Growth)
	assert.Equal(t, 18, loaded.Params.Months)

	rec, _ = do(t, s, http.MethodDelete, "/api/scenarios/launch", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = do(t, s, http.MethodDelete, "/api/scenarios/launch", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "error", env.Status)

	rec, _ = do(t, s, http.MethodGet, "/api/scenarios/launch", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSaveScenario_Rejects(t *testing.T) {
	s := newTestServer(t)

	rec, _ := do(t, s, http.MethodPost, "/api/scenarios", map[string]any{"price": 10})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, s, http.MethodPost, "/api/scenarios", map[string]any{"name": "neg", "initial_units": -5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, s, http.MethodPost, "/api/scenarios", map[string]any{"name": "x", "preset": "nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScenarios_NoStore(t *testing.T) {
	s := New(Config{App: config.DefaultConfig()}, nil, nil)
	rec, env := do(t, s, http.MethodGet, "/api/scenarios", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "error", env.Status)
}

func TestNoRoute(t *testing.T) {
	s := newTestServer(t)
	rec, env := do(t, s, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "error", env.Status)
}

func TestRun_StopsOnCancel(t *testing.T) {
	s := New(Config{Addr: "127.0.0.1:0", App: config.DefaultConfig()}, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()
	assert.NoError(t, <-done)
}

func TestNewLogger(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error"} {
		log, err := NewLogger(lvl)
		require.NoError(t, err, lvl)
		assert.NotNil(t, log)
	}
	_, err := NewLogger("chatty")
	assert.Error(t, err)
}
