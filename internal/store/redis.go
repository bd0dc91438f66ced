package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/theirongolddev/runway/internal/model"
)

// RedisStore keeps one hash per scenario plus a set of known names.
type RedisStore struct {
	client *redis.Client
	prefix string
}

type redisScenario struct {
	FixedCosts        float64 `redis:"fixed_costs"`
	Price             float64 `redis:"price"`
	VariableCost      float64 `redis:"variable_cost"`
	InitialUnits      int     `redis:"initial_units"`
	MonthlyGrowthRate float64 `redis:"monthly_growth_rate"`
	Months            int     `redis:"months"`
	SavedAt           string  `redis:"saved_at"`
}

// OpenRedis connects to the Redis server at addr. Keys are namespaced with
// prefix.
func OpenRedis(ctx context.Context, addr, prefix string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connecting to redis store at %s: %w", addr, err)
	}
	return &RedisStore{client: rdb, prefix: prefix}, nil
}

func (r *RedisStore) namesKey() string {
	return r.prefix + "scenarios"
}

func (r *RedisStore) scenarioKey(name string) string {
	return r.prefix + "scenario:" + name
}

// Close closes the client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

// Save creates or replaces the named scenario.
func (r *RedisStore) Save(ctx context.Context, name string, p model.Params) error {
	name = strings.TrimSpace(name)
	if err := Validate(name, p); err != nil {
		return err
	}

	rec := redisScenario{
		FixedCosts:        p.FixedCosts,
		Price:             p.Price,
		VariableCost:      p.VariableCost,
		InitialUnits:      p.InitialUnits,
		MonthlyGrowthRate: p.MonthlyGrowthRate,
		Months:            p.Months,
		SavedAt:           time.Now().UTC().Format(time.RFC3339),
	}
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		key := r.scenarioKey(name)
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, rec)
		pipe.SAdd(ctx, r.namesKey(), name)
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving scenario %q: %w", name, err)
	}
	return nil
}

// Load returns the named scenario.
func (r *RedisStore) Load(ctx context.Context, name string) (model.Params, error) {
	name = strings.TrimSpace(name)

	res := r.client.HGetAll(ctx, r.scenarioKey(name))
	fields, err := res.Result()
	if err != nil {
		return model.Params{}, fmt.Errorf("loading scenario %q: %w", name, err)
	}
	if len(fields) == 0 {
		return model.Params{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	var rec redisScenario
	if err := res.Scan(&rec); err != nil {
		return model.Params{}, fmt.Errorf("%w: decoding %q: %v", ErrInvalidScenario, name, err)
	}

	p := model.Params{
		FixedCosts:        rec.FixedCosts,
		Price:             rec.Price,
		VariableCost:      rec.VariableCost,
		InitialUnits:      rec.InitialUnits,
		MonthlyGrowthRate: rec.MonthlyGrowthRate,
		Months:            rec.Months,
	}
	if err := Validate(name, p); err != nil {
		return model.Params{}, err
	}
	return p, nil
}

// List returns all scenario names in ascending order.
func (r *RedisStore) List(ctx context.Context) ([]string, error) {
	names, err := r.client.SMembers(ctx, r.namesKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("listing scenarios: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the named scenario and reports whether it existed.
func (r *RedisStore) Delete(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)

	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, r.scenarioKey(name))
		pipe.SRem(ctx, r.namesKey(), name)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("deleting scenario %q: %w", name, err)
	}
	return del.Val() > 0, nil
}
