// Package report evaluates every saved scenario in one batch.
package report

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"

	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/store"
)

// DefaultWorkers bounds concurrent scenario evaluation.
const DefaultWorkers = 8

// ProgressFunc is called after each scenario finishes, possibly from
// several goroutines at once.
type ProgressFunc func(done, total int)

// Row is the evaluated outcome of one saved scenario.
type Row struct {
	Name    string                  `json:"name"`
	Params  model.Params            `json:"params"`
	Summary model.ProjectionSummary `json:"summary"`
}

// Evaluate loads and projects every scenario in s. Rows come back sorted by
// name. The first load failure cancels the remaining work.
func Evaluate(ctx context.Context, s store.Store, workers int, progressFn ProgressFunc) ([]Row, error) {
	names, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing scenarios: %w", err)
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}

	total := len(names)
	var done atomic.Int64

	p := pool.NewWithResults[Row]().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(workers)

	for _, name := range names {
		p.Go(func(ctx context.Context) (Row, error) {
			params, err := s.Load(ctx, name)
			if err != nil {
				return Row{}, fmt.Errorf("scenario %q: %w", name, err)
			}
			records := engine.Project(params)
			row := Row{
				Name:    name,
				Params:  params,
				Summary: engine.Summarize(params, records),
			}
			n := done.Add(1)
			if progressFn != nil {
				progressFn(int(n), total)
			}
			return row, nil
		})
	}

	rows, err := p.Wait()
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows, nil
}
