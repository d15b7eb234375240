// Package app provides the application initialization and runtime logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/patrol/internal/advisor"
	"github.com/katalvlaran/patrol/internal/mapwatch"
	"github.com/katalvlaran/patrol/internal/mcpserver"
	"github.com/katalvlaran/patrol/internal/metrics"
	"github.com/katalvlaran/patrol/planner"
)

func (a *application) setup(opts []Option) (*slog.Logger, error) {
	for _, opt := range opts {
		opt(a)
	}
	if a.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if a.logOut == nil {
		a.logOut = os.Stdout
	}

	logger := slog.New(slog.NewJSONHandler(a.logOut, &slog.HandlerOptions{
		Level: a.config.App.LogLevel,
	}))
	slog.SetDefault(logger)

	return logger, nil
}

// NewRouter builds the HTTP surface: health probes, the advisor API under
// /api and Prometheus metrics.
func NewRouter(p *planner.Planner, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if p.Registry().Len() == 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"no zones"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/api", advisor.NewRouter(p))
	r.Handle("/metrics", m.Handler())

	return r
}

// Run starts the advisor HTTP service with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}
	logger, err := app.setup(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("map_path", cfg.Map.Path),
		slog.String("zones_path", cfg.Zones.Path),
		slog.Int("step_budget", cfg.Planner.StepBudget),
		slog.String("log_level", cfg.App.LogLevel.String()))

	m := metrics.New()
	p, err := BuildPlanner(cfg, logger, m)
	if err != nil {
		return fmt.Errorf("init planner: %w", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           NewRouter(p, m),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gCtx := errgroup.WithContext(ctx)

	if cfg.Map.Watch {
		g.Go(func() error {
			return mapwatch.Watch(gCtx, cfg.Map.Path, logger, p.SetGrid)
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		// Stopping the server must also stop the watcher.
		defer cancel()
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP serves the planner as MCP tools on stdin/stdout. Logs go to stderr
// unless redirected, since stdout carries the protocol.
func RunMCP(ctx context.Context, opts ...Option) error {
	app := &application{logOut: os.Stderr}
	logger, err := app.setup(opts)
	if err != nil {
		return err
	}

	p, err := BuildPlanner(app.config, logger, nil)
	if err != nil {
		return fmt.Errorf("init planner: %w", err)
	}

	version := app.version
	if version == "" {
		version = "dev"
	}
	srv := mcpserver.New(p, version)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gCtx := errgroup.WithContext(ctx)
	if app.config.Map.Watch {
		g.Go(func() error {
			return mapwatch.Watch(gCtx, app.config.Map.Path, logger, p.SetGrid)
		})
	}
	g.Go(func() error {
		defer cancel()
		logger.Info("MCP server starting on stdio")
		return srv.ServeStdio()
	})

	return g.Wait()
}
