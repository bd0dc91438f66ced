package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/server"
	"github.com/theirongolddev/runway/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagServeAddr     string
	flagServeLogLevel string
	flagServeNoStore  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulator as a JSON REST API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.Flags().StringVar(&flagServeLogLevel, "log-level", "", "debug, info, warn or error (default from config)")
	serveCmd.Flags().BoolVar(&flagServeNoStore, "no-store", false, "Serve without the scenario endpoints")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if flagServeAddr != "" {
		addr = flagServeAddr
	}
	level := cfg.Server.LogLevel
	if flagServeLogLevel != "" {
		level = flagServeLogLevel
	}
	if level == "" {
		level = "info"
	}

	log, err := server.NewLogger(level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var st store.Store
	if !flagServeNoStore {
		st, err = store.Open(ctx, cfg)
		if err != nil {
			return fmt.Errorf("opening %s scenario store: %w", config.StoreBackend(cfg), err)
		}
		defer func() { _ = st.Close() }()
		log.Infow("scenario store ready", "backend", config.StoreBackend(cfg))
	}

	srv := server.New(server.Config{Addr: addr, Version: Version, App: cfg}, st, log)

	fmt.Printf("  runway API listening on http://%s/api\n", addr)
	fmt.Printf("  Stop with Ctrl+C\n")

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
