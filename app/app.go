// Package app wires configuration, storage, the event bus and the modules
// into one HTTP service.
package app

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Black-And-White-Club/golf-stats/app/eventbus"
	"github.com/Black-And-White-Club/golf-stats/app/modules/course"
	"github.com/Black-And-White-Club/golf-stats/app/modules/round"
	"github.com/Black-And-White-Club/golf-stats/app/shared/attr"
	"github.com/Black-And-White-Club/golf-stats/app/shared/middleware"
	"github.com/Black-And-White-Club/golf-stats/app/shared/observability"
	"github.com/Black-And-White-Club/golf-stats/config"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 10 * time.Second

// App holds the running service.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	DB            *bun.DB
	EventBus      *eventbus.Bus
	Router        chi.Router
	CourseModule  *course.Module
	RoundModule   *round.Module

	logger *slog.Logger
	server *http.Server
	wg     sync.WaitGroup
}

// Initialize builds the application from cfg. The database is optional when
// courses come from a fixture file.
func Initialize(ctx context.Context, cfg *config.Config, obs observability.Observability) (*App, error) {
	logger := obs.Logger
	a := &App{Config: cfg, Observability: obs, logger: logger}

	if cfg.Postgres.DSN != "" {
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
		a.DB = bun.NewDB(sqldb, pgdialect.New())
		if err := a.DB.PingContext(ctx); err != nil {
			_ = a.DB.Close()
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		logger.InfoContext(ctx, "Connected to postgres")
	}

	bus, err := eventbus.New(ctx, cfg.NATS.URL, logger)
	if err != nil {
		a.closeDB()
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}
	a.EventBus = bus

	a.Router = newRouter(cfg, obs)

	a.CourseModule, err = course.NewCourseModule(ctx, cfg, obs, a.Router, a.DB)
	if err != nil {
		a.closeInfra()
		return nil, fmt.Errorf("failed to initialize course module: %w", err)
	}

	a.RoundModule, err = round.NewRoundModule(ctx, cfg, obs, a.Router, a.DB, a.CourseModule.CourseService, bus)
	if err != nil {
		a.closeInfra()
		return nil, fmt.Errorf("failed to initialize round module: %w", err)
	}

	a.Router.Get("/healthz", a.handleHealth)

	a.server = &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           a.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return a, nil
}

func newRouter(cfg *config.Config, obs observability.Observability) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Correlation)
	r.Use(middleware.CORS(cfg.HTTP.AllowedOrigins))
	r.Use(middleware.RateLimit(middleware.NewIPRateLimiter(rate.Limit(cfg.HTTP.RateLimit), cfg.HTTP.RateBurst)))

	if obs.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))
	}
	return r
}

// Handler returns the HTTP handler of the service.
func (a *App) Handler() http.Handler {
	return a.Router
}

// Run serves HTTP and runs the modules until ctx is canceled, then shuts
// everything down.
func (a *App) Run(ctx context.Context) error {
	a.wg.Add(1)
	go a.RoundModule.Run(ctx, &a.wg)

	errCh := make(chan error, 1)
	go func() {
		a.logger.InfoContext(ctx, "HTTP server listening", attr.String("address", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		a.logger.Info("Shutdown requested")
	case serveErr = <-errCh:
		if serveErr != nil {
			a.logger.Error("HTTP server failed", attr.Error(serveErr))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return errors.Join(serveErr, a.Close(shutdownCtx))
}

// Close stops the HTTP server, the modules and the infrastructure.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shut down http server: %w", err))
		}
	}
	if a.RoundModule != nil {
		if err := a.RoundModule.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.wg.Wait()
	a.closeInfra()
	a.logger.Info("Application shut down")
	return errors.Join(errs...)
}

func (a *App) closeInfra() {
	if a.EventBus != nil {
		if err := a.EventBus.Close(); err != nil {
			a.logger.Warn("Failed to close event bus", attr.Error(err))
		}
	}
	a.closeDB()
}

func (a *App) closeDB() {
	if a.DB == nil {
		return
	}
	if err := a.DB.Close(); err != nil {
		a.logger.Warn("Failed to close database", attr.Error(err))
	}
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "database": "disabled", "queue": "disabled"}
	code := http.StatusOK

	if a.DB != nil {
		status["database"] = "ok"
		if err := a.DB.PingContext(r.Context()); err != nil {
			status["database"] = "unavailable"
			status["status"] = "degraded"
			code = http.StatusServiceUnavailable
		}
	}
	if a.RoundModule != nil && a.RoundModule.QueueService != nil {
		status["queue"] = "ok"
		if err := a.RoundModule.QueueService.HealthCheck(r.Context()); err != nil {
			status["queue"] = "unavailable"
			status["status"] = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(status)
}
