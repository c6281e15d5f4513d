package roundqueue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/golf-stats/app/eventbus"
	"github.com/Black-And-White-Club/golf-stats/app/shared/attr"
	"github.com/riverqueue/river"
)

// Publisher is the part of the event bus the worker needs.
type Publisher interface {
	PublishJSON(ctx context.Context, topic string, payload any) error
}

// RoundCompletedWorker publishes queued round.completed events.
type RoundCompletedWorker struct {
	river.WorkerDefaults[RoundCompletedJob]
	logger    *slog.Logger
	publisher Publisher
}

// NewRoundCompletedWorker creates the worker.
func NewRoundCompletedWorker(logger *slog.Logger, publisher Publisher) *RoundCompletedWorker {
	return &RoundCompletedWorker{logger: logger, publisher: publisher}
}

// Work publishes the job payload. Errors are retried by River.
func (w *RoundCompletedWorker) Work(ctx context.Context, job *river.Job[RoundCompletedJob]) error {
	w.logger.InfoContext(ctx, "Processing round completed job",
		attr.Int64("job_id", job.ID),
		attr.String("round_id", job.Args.Payload.RoundID),
		attr.Int("attempt", job.Attempt),
	)

	if err := w.publisher.PublishJSON(ctx, eventbus.TopicRoundCompleted, job.Args.Payload); err != nil {
		w.logger.ErrorContext(ctx, "Failed to publish round completed event",
			attr.Int64("job_id", job.ID),
			attr.String("round_id", job.Args.Payload.RoundID),
			attr.Error(err),
		)
		return fmt.Errorf("failed to publish round completed event: %w", err)
	}
	return nil
}
