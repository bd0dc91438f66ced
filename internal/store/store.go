// Package store persists named projection scenarios.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"
)

var (
	// ErrNotFound is returned when a named scenario does not exist.
	ErrNotFound = errors.New("scenario not found")
	// ErrInvalidScenario is returned when a scenario fails validation.
	ErrInvalidScenario = errors.New("invalid scenario")
)

// Store saves and retrieves scenarios by name.
type Store interface {
	// Save creates or replaces the named scenario.
	Save(ctx context.Context, name string, p model.Params) error
	// Load returns the named scenario, or an error wrapping ErrNotFound.
	Load(ctx context.Context, name string) (model.Params, error)
	// List returns all scenario names in ascending order.
	List(ctx context.Context) ([]string, error)
	// Delete removes the named scenario and reports whether it existed.
	Delete(ctx context.Context, name string) (bool, error)
	Close() error
}

// Scenario is a named parameter set as it crosses the store boundary.
type Scenario struct {
	Name   string       `validate:"required,max=128,excludesall=/\\"`
	Params model.Params
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a scenario before it is written and after it is read back.
func Validate(name string, p model.Params) error {
	s := Scenario{Name: strings.TrimSpace(name), Params: p}
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidScenario, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	return nil
}

// Open returns the store backend selected by cfg.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	switch backend := config.StoreBackend(cfg); backend {
	case config.BackendSQLite:
		return OpenSQLite(config.SQLitePath(cfg))
	case config.BackendMySQL:
		dsn := config.StoreDSN(cfg)
		if dsn == "" {
			return nil, fmt.Errorf("mysql store: no dsn configured (set store.dsn or RUNWAY_STORE_DSN)")
		}
		return OpenMySQL(ctx, dsn)
	case config.BackendRedis:
		return OpenRedis(ctx, config.RedisAddr(cfg), cfg.Store.RedisPrefix)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

var (
	_ Store = (*SQLStore)(nil)
	_ Store = (*RedisStore)(nil)
)
