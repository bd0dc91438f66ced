package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/theirongolddev/runway/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// SQLStore keeps scenarios in a single flat table, on SQLite or MySQL.
type SQLStore struct {
	db     *sql.DB
	upsert string
}

// OpenSQLite opens or creates the scenario database at the given path.
func OpenSQLite(dbPath string) (*SQLStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQLite); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLStore{db: db, upsert: "INSERT OR REPLACE"}, nil
}

// OpenMySQL connects to a MySQL or MariaDB server. The dsn may be a native
// driver DSN or a mysql:// / mariadb:// URL.
func OpenMySQL(ctx context.Context, dsn string) (*SQLStore, error) {
	native, err := toMySQLDSN(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", native)
	if err != nil {
		return nil, fmt.Errorf("opening mysql store: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to mysql store: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaMySQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLStore{db: db, upsert: "REPLACE"}, nil
}

func toMySQLDSN(dsn string) (string, error) {
	if !strings.HasPrefix(dsn, "mysql://") && !strings.HasPrefix(dsn, "mariadb://") {
		if _, err := mysql.ParseDSN(dsn); err != nil {
			return "", fmt.Errorf("parse dsn: %w", err)
		}
		return dsn, nil
	}

	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}

	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Passwd, _ = u.User.Password()
	}
	if cfg.User == "" || cfg.Addr == "" || cfg.DBName == "" {
		return "", fmt.Errorf("parse dsn: user, host and database are required")
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.InterpolateParams = true

	return cfg.FormatDSN(), nil
}

// Close closes the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Save creates or replaces the named scenario.
func (s *SQLStore) Save(ctx context.Context, name string, p model.Params) error {
	name = strings.TrimSpace(name)
	if err := Validate(name, p); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, s.upsert+` INTO scenarios (
		name, fixed_costs, price, variable_cost, initial_units,
		monthly_growth_rate, months, saved_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		name, p.FixedCosts, p.Price, p.VariableCost, p.InitialUnits,
		p.MonthlyGrowthRate, p.Months, now,
	)
	if err != nil {
		return fmt.Errorf("saving scenario %q: %w", name, err)
	}
	return nil
}

// Load returns the named scenario.
func (s *SQLStore) Load(ctx context.Context, name string) (model.Params, error) {
	name = strings.TrimSpace(name)

	var p model.Params
	err := s.db.QueryRowContext(ctx, `SELECT
		fixed_costs, price, variable_cost, initial_units, monthly_growth_rate, months
		FROM scenarios WHERE name = ?`, name,
	).Scan(&p.FixedCosts, &p.Price, &p.VariableCost, &p.InitialUnits, &p.MonthlyGrowthRate, &p.Months)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Params{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return model.Params{}, fmt.Errorf("loading scenario %q: %w", name, err)
	}

	if err := Validate(name, p); err != nil {
		return model.Params{}, err
	}
	return p, nil
}

// List returns all scenario names in ascending order.
func (s *SQLStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM scenarios ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing scenarios: %w", err)
	}
	defer func() { _ = rows.Close() }()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes the named scenario and reports whether it existed.
func (s *SQLStore) Delete(ctx context.Context, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM scenarios WHERE name = ?", strings.TrimSpace(name))
	if err != nil {
		return false, fmt.Errorf("deleting scenario %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
