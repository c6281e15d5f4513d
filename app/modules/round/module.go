package round

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Black-And-White-Club/golf-stats/app/eventbus"
	courseservice "github.com/Black-And-White-Club/golf-stats/app/modules/course/application"
	roundservice "github.com/Black-And-White-Club/golf-stats/app/modules/round/application"
	roundhandlers "github.com/Black-And-White-Club/golf-stats/app/modules/round/infrastructure/handlers"
	roundqueue "github.com/Black-And-White-Club/golf-stats/app/modules/round/infrastructure/queue"
	rounddb "github.com/Black-And-White-Club/golf-stats/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/golf-stats/app/shared/attr"
	"github.com/Black-And-White-Club/golf-stats/app/shared/metrics"
	"github.com/Black-And-White-Club/golf-stats/app/shared/observability"
	"github.com/Black-And-White-Club/golf-stats/config"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// MetricsNamespace prefixes every exported metric.
const MetricsNamespace = "golfstats"

// Module represents the round module.
type Module struct {
	RoundService roundservice.Service
	Repository   rounddb.Repository
	// QueueService is nil when round.completed events are published directly.
	QueueService roundqueue.QueueService
	// IdleTimeout is how long a live round may go untouched before Run drops
	// it. Zero disables the sweep.
	IdleTimeout time.Duration
	logger      *slog.Logger
	cancelFunc  context.CancelFunc
}

// minSweepInterval bounds how often Run scans for idle rounds.
const minSweepInterval = time.Minute

// NewRoundModule creates and initializes a new round module. Saved rounds go
// to Postgres when db is set and to memory otherwise. Completed rounds are
// announced through the River queue when it is enabled, else straight on bus.
func NewRoundModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	httpRouter chi.Router,
	db *bun.DB,
	courseService courseservice.Service,
	bus eventbus.EventBus,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "round.NewRoundModule initializing")

	// 1. Initialize Repository
	var repo rounddb.Repository
	if db != nil {
		repo = rounddb.NewRepository(db)
	} else {
		repo = rounddb.NewMemoryRepository()
		logger.WarnContext(ctx, "No database configured, saved rounds are kept in memory")
	}

	// 2. Initialize Metrics
	var roundMetrics metrics.RoundMetrics = metrics.NewNoop()
	if obs.Registry != nil {
		roundMetrics = metrics.NewRoundMetrics(obs.Registry, MetricsNamespace)
	}

	// 3. Initialize Notifier
	var (
		notifier roundservice.Notifier
		queue    roundqueue.QueueService
	)
	switch {
	case bus == nil:
		logger.WarnContext(ctx, "No event bus configured, round.completed events are disabled")
	case cfg.Queue.Enabled && db != nil:
		q, err := roundqueue.NewService(ctx, db, logger, cfg.Postgres.DSN, roundMetrics, bus)
		if err != nil {
			return nil, fmt.Errorf("failed to create round queue service: %w", err)
		}
		queue = q
		notifier = roundservice.NewEventNotifier(q.EnqueueRoundCompleted)
	default:
		notifier = roundservice.NewEventNotifier(func(ctx context.Context, payload eventbus.RoundCompletedPayload) error {
			return bus.PublishJSON(ctx, eventbus.TopicRoundCompleted, payload)
		})
	}

	// 4. Initialize Service
	service := roundservice.NewRoundService(courseService, repo, notifier, nil, logger, roundMetrics, tracer, db)

	// 5. Register HTTP routes
	if httpRouter != nil {
		roundhandlers.Routes(httpRouter, roundhandlers.NewRoundHandlers(service, logger, tracer))
	}

	return &Module{
		RoundService: service,
		Repository:   repo,
		QueueService: queue,
		IdleTimeout:  cfg.Rounds.IdleTimeout,
		logger:       logger,
	}, nil
}

// Run starts the job queue, if any, then sweeps idle rounds until ctx is
// canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	if wg != nil {
		defer wg.Done()
	}

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if m.QueueService != nil {
		if err := m.QueueService.Start(ctx); err != nil {
			m.logger.ErrorContext(ctx, "Failed to start round queue", attr.Error(err))
		}
	}

	m.sweepIdleRounds(ctx, sweepInterval(m.IdleTimeout))
	m.logger.Info("Round module goroutine stopped")
}

// sweepIdleRounds evicts idle rounds every interval until ctx is canceled.
func (m *Module) sweepIdleRounds(ctx context.Context, interval time.Duration) {
	if m.IdleTimeout <= 0 || m.RoundService == nil {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.RoundService.EvictIdle(ctx, m.IdleTimeout)
		}
	}
}

func sweepInterval(idle time.Duration) time.Duration {
	if interval := idle / 4; interval > minSweepInterval {
		return interval
	}
	return minSweepInterval
}

// Close stops the job queue, then cancels Run.
func (m *Module) Close(ctx context.Context) error {
	m.logger.Info("Stopping round module")

	if m.cancelFunc != nil {
		defer m.cancelFunc()
	}
	if m.QueueService != nil {
		if err := m.QueueService.Stop(ctx); err != nil {
			return fmt.Errorf("failed to stop round queue: %w", err)
		}
	}

	m.logger.Info("Round module stopped")
	return nil
}
