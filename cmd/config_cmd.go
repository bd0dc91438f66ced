// Package cmd implements the runway CLI commands.
package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/theirongolddev/runway/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Default months: %d\n", config.Months(cfg))
	fmt.Printf("    Default preset: %s\n", cfg.General.DefaultPreset)
	fmt.Printf("    Currency label: %s\n", cfg.General.CurrencyLabel)
	fmt.Println()

	fmt.Println("  [Store]")
	backend := config.StoreBackend(cfg)
	fmt.Printf("    Backend: %s\n", backend)
	switch backend {
	case config.BackendSQLite:
		fmt.Printf("    Path:    %s\n", config.SQLitePath(cfg))
	case config.BackendMySQL:
		if config.StoreDSN(cfg) != "" {
			fmt.Printf("    DSN:     %s\n", maskDSN(config.StoreDSN(cfg)))
		} else {
			fmt.Println("    DSN:     not configured")
		}
	case config.BackendRedis:
		fmt.Printf("    Address: %s\n", config.RedisAddr(cfg))
		fmt.Printf("    Prefix:  %s\n", cfg.Store.RedisPrefix)
	}
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:   %s\n", cfg.Server.Addr)
	fmt.Printf("    Log level: %s\n", cfg.Server.LogLevel)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	if len(cfg.Presets.Overrides) > 0 {
		names := make([]string, 0, len(cfg.Presets.Overrides))
		for name := range cfg.Presets.Overrides {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Println("  [Presets]")
		for _, name := range names {
			fmt.Printf("    Override: %s\n", name)
		}
		fmt.Println()
	}

	fmt.Println("  Run `runway setup` to reconfigure.")
	return nil
}

// maskDSN hides the password in user:pass@host style DSNs.
func maskDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	if at < 0 {
		return dsn
	}
	start := 0
	if i := strings.Index(dsn[:at], "://"); i >= 0 {
		start = i + len("://")
	}
	colon := strings.Index(dsn[start:at], ":")
	if colon < 0 {
		return dsn
	}
	return dsn[:start+colon+1] + "****" + dsn[at:]
}
