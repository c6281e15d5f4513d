package course

import (
	"context"
	"fmt"

	courseservice "github.com/Black-And-White-Club/golf-stats/app/modules/course/application"
	coursefixtures "github.com/Black-And-White-Club/golf-stats/app/modules/course/infrastructure/fixtures"
	coursehandlers "github.com/Black-And-White-Club/golf-stats/app/modules/course/infrastructure/handlers"
	coursedb "github.com/Black-And-White-Club/golf-stats/app/modules/course/infrastructure/repositories"
	"github.com/Black-And-White-Club/golf-stats/app/shared/metrics"
	"github.com/Black-And-White-Club/golf-stats/app/shared/observability"
	"github.com/Black-And-White-Club/golf-stats/config"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// MetricsNamespace prefixes every exported metric.
const MetricsNamespace = "golfstats"

// Module represents the course module.
type Module struct {
	CourseService courseservice.Service
	Repository    coursedb.Repository
	observability observability.Observability
}

// NewCourseModule creates and initializes a new course module. With a
// database the Postgres repository backs the service, otherwise the YAML
// fixture named in the config does.
func NewCourseModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	httpRouter chi.Router,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "course.NewCourseModule initializing")

	// 1. Initialize Repository
	var repo coursedb.Repository
	if db != nil {
		repo = coursedb.NewRepository(db)
	} else {
		provider, err := coursefixtures.LoadProvider(cfg.Courses.FixturePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load course fixtures: %w", err)
		}
		repo = provider
		logger.InfoContext(ctx, "Serving courses from fixture file", "path", cfg.Courses.FixturePath)
	}

	// 2. Initialize Metrics
	var courseMetrics metrics.CourseMetrics = metrics.NewNoop()
	if obs.Registry != nil {
		courseMetrics = metrics.NewCourseMetrics(obs.Registry, MetricsNamespace)
	}

	// 3. Initialize Service
	service := courseservice.NewCourseService(repo, logger, courseMetrics, tracer, db)

	// 4. Register HTTP routes
	if httpRouter != nil {
		coursehandlers.Routes(httpRouter, coursehandlers.NewCourseHandlers(service, logger, tracer))
	}

	return &Module{
		CourseService: service,
		Repository:    repo,
		observability: obs,
	}, nil
}
