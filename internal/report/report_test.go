package report

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/store"
)

func TestEvaluate(t *testing.T) {
	ctx := context.Background()
	s, err := store.OpenSQLite(filepath.Join(t.TempDir(), "scenarios.db"))
	require.NoError(t, err)
	defer s.Close()

	for i := 0; i < 20; i++ {
		p := model.Params{
			FixedCosts:        float64(1000 * i),
			Price:             50,
			VariableCost:      20,
			InitialUnits:      10 + i,
			MonthlyGrowthRate: 0.05,
			Months:            12,
		}
		require.NoError(t, s.Save(ctx, fmt.Sprintf("scenario-%02d", i), p))
	}

	var mu sync.Mutex
	var calls []int
	rows, err := Evaluate(ctx, s, 4, func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 20, total)
		calls = append(calls, done)
	})
	require.NoError(t, err)
	require.Len(t, rows, 20)
	assert.Len(t, calls, 20)

	for i, r := range rows {
		assert.Equal(t, fmt.Sprintf("scenario-%02d", i), r.Name)
		want := engine.Summarize(r.Params, engine.Project(r.Params))
		assert.Equal(t, want, r.Summary)
	}
}

func TestEvaluate_Empty(t *testing.T) {
	s, err := store.OpenSQLite(filepath.Join(t.TempDir(), "scenarios.db"))
	require.NoError(t, err)
	defer s.Close()

	rows, err := Evaluate(context.Background(), s, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

type brokenStore struct {
	store.Store
}

func (brokenStore) List(context.Context) ([]string, error) {
	return []string{"a", "b"}, nil
}

func (brokenStore) Load(_ context.Context, name string) (model.Params, error) {
	if name == "b" {
		return model.Params{}, store.ErrNotFound
	}
	return model.Params{Months: 1}, nil
}

func TestEvaluate_LoadFailure(t *testing.T) {
	_, err := Evaluate(context.Background(), brokenStore{}, 2, nil)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
