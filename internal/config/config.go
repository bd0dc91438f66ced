// Package config loads and saves runway's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendMySQL  = "mysql"
	BackendRedis  = "redis"
)

// Config holds all runway configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Store      StoreConfig      `toml:"store"`
	Server     ServerConfig     `toml:"server"`
	Appearance AppearanceConfig `toml:"appearance"`
	Presets    PresetOverrides  `toml:"presets"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultMonths int    `toml:"default_months"`
	DefaultPreset string `toml:"default_preset"`
	CurrencyLabel string `toml:"currency_label"`
}

// StoreConfig selects and addresses the scenario store.
type StoreConfig struct {
	Backend     string `toml:"backend"`
	Path        string `toml:"path,omitempty"`
	DSN         string `toml:"dsn,omitempty"`
	RedisAddr   string `toml:"redis_addr,omitempty"`
	RedisPrefix string `toml:"redis_prefix,omitempty"`
}

// ServerConfig holds REST API settings.
type ServerConfig struct {
	Addr     string `toml:"addr"`
	LogLevel string `toml:"log_level"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// PresetOverrides allows user-defined or adjusted persona presets.
type PresetOverrides struct {
	Overrides map[string]PresetOverride `toml:"overrides,omitempty"`
}

// PresetOverride replaces individual fields of a built-in preset, or defines
// a new one when the name is not built in.
type PresetOverride struct {
	Description       string   `toml:"description,omitempty"`
	FixedCosts        *float64 `toml:"fixed_costs,omitempty"`
	Price             *float64 `toml:"price,omitempty"`
	VariableCost      *float64 `toml:"variable_cost,omitempty"`
	InitialUnits      *int     `toml:"initial_units,omitempty"`
	MonthlyGrowthRate *float64 `toml:"monthly_growth_rate,omitempty"`
	Months            *int     `toml:"months,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultMonths: 12,
			DefaultPreset: DefaultPresetName,
			CurrencyLabel: "$",
		},
		Store: StoreConfig{
			Backend:     BackendSQLite,
			RedisAddr:   "localhost:6379",
			RedisPrefix: "runway:",
		},
		Server: ServerConfig{
			Addr:     "127.0.0.1:5000",
			LogLevel: "info",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "runway")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "runway")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory holding the scenario db.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "runway")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "runway")
}

// Load reads the config file, returning defaults if it doesn't exist.
// A .env file in the working directory is loaded first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// StoreBackend returns the backend from env var or config, in that order.
func StoreBackend(cfg Config) string {
	if b := os.Getenv("RUNWAY_STORE_BACKEND"); b != "" {
		return b
	}
	if cfg.Store.Backend == "" {
		return BackendSQLite
	}
	return cfg.Store.Backend
}

// StoreDSN returns the MySQL DSN from env var or config, in that order.
func StoreDSN(cfg Config) string {
	if dsn := os.Getenv("RUNWAY_STORE_DSN"); dsn != "" {
		return dsn
	}
	return cfg.Store.DSN
}

// RedisAddr returns the Redis address from env var or config, in that order.
func RedisAddr(cfg Config) string {
	if addr := os.Getenv("RUNWAY_REDIS_ADDR"); addr != "" {
		return addr
	}
	return cfg.Store.RedisAddr
}

// SQLitePath returns the scenario database path, defaulting under DataDir.
func SQLitePath(cfg Config) string {
	if cfg.Store.Path != "" {
		return cfg.Store.Path
	}
	return filepath.Join(DataDir(), "scenarios.db")
}

// Months returns the configured default projection length.
func Months(cfg Config) int {
	if cfg.General.DefaultMonths > 0 {
		return cfg.General.DefaultMonths
	}
	return 12
}
