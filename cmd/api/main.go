// Package main is the entry point for the roadmap planner API server.
// It wires the store, services, and HTTP router together and owns the
// process lifecycle. No business logic belongs here.
package main

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
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/pkordes/roadmap-planner/internal/config"
	"github.com/pkordes/roadmap-planner/internal/handler"
	"github.com/pkordes/roadmap-planner/internal/metrics"
	"github.com/pkordes/roadmap-planner/internal/middleware"
	"github.com/pkordes/roadmap-planner/internal/repo"
	"github.com/pkordes/roadmap-planner/internal/service"
	"github.com/pkordes/roadmap-planner/migrations"
	"github.com/pkordes/roadmap-planner/openapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The JSON logger is not configured yet.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// stores bundles the repositories and whatever has to be closed with them.
type stores struct {
	initiatives repo.InitiativeRepo
	teams       repo.TeamRepo
	close       func() error
}

// openStores returns the Postgres-backed stores when a database URL is
// configured, and fresh in-memory stores otherwise.
func openStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (stores, error) {
	if !cfg.UsesPostgres() {
		logger.Info("using in-memory store")
		return stores{
			initiatives: repo.NewMemoryInitiativeRepo(),
			teams:       repo.NewMemoryTeamRepo(),
			close:       func() error { return nil },
		}, nil
	}

	// New does not open connections; the ping does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return stores{}, fmt.Errorf("create database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return stores{}, fmt.Errorf("connect to database: %w", err)
	}

	// goose drives database/sql, so share the pool through the stdlib adapter.
	sqlDB := stdlib.OpenDBFromPool(pool)
	applied, err := migrations.Up(ctx, sqlDB)
	if err != nil {
		pool.Close()
		return stores{}, multierr.Append(err, sqlDB.Close())
	}
	logger.Info("database connection established", "migrations_applied", applied)

	return stores{
		initiatives: repo.NewInitiativeRepo(pool),
		teams:       repo.NewTeamRepo(pool),
		close: func() error {
			err := sqlDB.Close()
			pool.Close()
			return err
		},
	}, nil
}

// countOf adapts a store listing into a metrics.CountFunc.
func countOf[T any](list func(context.Context) ([]T, error)) metrics.CountFunc {
	return func(ctx context.Context) (int, error) {
		items, err := list(ctx)
		return len(items), err
	}
}

func newRouter(cfg config.Config, logger *slog.Logger, s stores) http.Handler {
	server := handler.NewServer(handler.Deps{
		Initiatives: service.NewInitiativeService(s.initiatives),
		Teams:       service.NewTeamService(s.teams, s.initiatives, logger),
		Board:       service.NewBoardService(s.initiatives, s.teams),
		Export:      service.NewExportService(s.initiatives, s.teams, nil),
		OpenAPISpec: openapi.Spec,
		Logger:      logger,
	})

	// Middleware order: RequestID, RealIP, logging and metrics (so they see
	// the final status), CORS, body limit, then Recoverer closest to handlers.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(middleware.NewMetrics())
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Use(chimiddleware.Recoverer)
	r.Mount("/", server.Routes())
	return r
}

func run(cfg config.Config, logger *slog.Logger) (err error) {
	ctx := context.Background()

	s, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, s.close())
	}()

	if cfg.SeedData {
		nTeams, nInitiatives, err := repo.Seed(ctx, s.initiatives, s.teams)
		if err != nil {
			return fmt.Errorf("seed store: %w", err)
		}
		logger.Info("seed data loaded", "teams", nTeams, "initiatives", nInitiatives)
	}
	if err := metrics.RegisterStoreGauges(prometheus.DefaultRegisterer,
		countOf(s.initiatives.List), countOf(s.teams.List)); err != nil {
		return fmt.Errorf("register store gauges: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, logger, s),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "postgres", cfg.UsesPostgres())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case sig := <-stop:
		logger.Info("shutting down server", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
