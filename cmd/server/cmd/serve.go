package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/eventease/server/internal/api"
	"github.com/eventease/server/internal/config"
	"github.com/eventease/server/internal/domain/attendance"
	"github.com/eventease/server/internal/domain/auth"
	"github.com/eventease/server/internal/domain/events"
	"github.com/eventease/server/internal/domain/sessions"
	"github.com/eventease/server/internal/domain/themes"
	"github.com/eventease/server/internal/domain/users"
	"github.com/eventease/server/internal/metrics"
	"github.com/eventease/server/internal/notify"
	"github.com/eventease/server/internal/perf"
)

var (
	// Server flags (override config/env)
	serverHost string
	serverPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the EventEase HTTP server",
	Long: `Start the EventEase HTTP server and begin accepting API requests.

The server will:
- Load configuration from environment variables (or --config file if provided)
- Seed the in-memory event catalog on first access
- Start the HTTP server and the background session sweeper
- Handle graceful shutdown on SIGINT/SIGTERM

Examples:
  # Start with default configuration (from env vars)
  server serve

  # Start on a specific host and port
  server serve --host 127.0.0.1 --port 9090

  # Start with debug logging
  server serve --log-level debug

  # Start with a config file
  server serve --config /etc/eventease/config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host address (default: 0.0.0.0)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (default: 8080)")
}

func runServer() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	logger := config.NewLogger(cfg.Logging)
	logger.Info().Msg("starting EventEase server")

	metrics.Init(Version, GitCommit, BuildDate)
	logger.Info().Str("version", Version).Msg("metrics initialized")

	bus := notify.NewBus(logger)
	catalog := events.NewStore(logger)
	accounts := auth.NewService(logger)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, "eventease")
	directory := users.NewDirectory(logger)
	manager := sessions.NewManager(bus, cfg.Sessions.IdleTimeout, logger)
	ledger := attendance.NewLedger(catalog, bus, logger)
	themeStore := themes.NewStore(themes.Mode(cfg.Theme.Default), bus, logger)
	monitor := perf.NewMonitor(logger)

	wireSessionMetrics(bus)

	// Seed the catalog up front so the first request does not pay for it.
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 5*time.Second)
	perf.Preload(warmCtx, monitor, func(ctx context.Context) {
		catalog.List(ctx)
	})
	warmCancel()

	router, routerCleanup := api.NewRouter(cfg, logger, api.Dependencies{
		Catalog:   catalog,
		Accounts:  accounts,
		Tokens:    tokens,
		Directory: directory,
		Sessions:  manager,
		Ledger:    ledger,
		Themes:    themeStore,
		Perf:      monitor,
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
	})
	defer routerCleanup()

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB max header size
	}

	sweeper := sessions.NewSweeper(manager, cfg.Sessions.SweepInterval, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return sweeper.Run(ctx)
	})

	g.Go(func() error {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server error")
		return err
	}

	logger.Info().Msg("server stopped")
	return nil
}

// wireSessionMetrics keeps the session gauges in step with the store via the
// notification bus, so the domain packages never import metrics.
func wireSessionMetrics(bus *notify.Bus) {
	bus.Subscribe(notify.TopicSessionCreated, func(any) {
		metrics.ActiveSessions.Inc()
	})
	bus.Subscribe(notify.TopicSessionEnded, func(payload any) {
		metrics.ActiveSessions.Dec()
		if notice, ok := payload.(sessions.EndNotice); ok {
			metrics.SessionsEnded.WithLabelValues(notice.Cause).Inc()
		}
	})
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}

	// Flags beat the file and the environment.
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	return cfg, nil
}
