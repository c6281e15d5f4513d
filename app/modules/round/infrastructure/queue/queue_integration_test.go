//go:build integration

package roundqueue_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Black-And-White-Club/golf-stats/app/eventbus"
	roundqueue "github.com/Black-And-White-Club/golf-stats/app/modules/round/infrastructure/queue"
	"github.com/Black-And-White-Club/golf-stats/app/shared/metrics"
	"github.com/Black-And-White-Club/golf-stats/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundCompletedJobIsPublished(t *testing.T) {
	pg := testutils.NewPostgres(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus, err := eventbus.New(ctx, "", logger)
	require.NoError(t, err)
	defer bus.Close()

	messages, err := bus.Subscribe(ctx, eventbus.TopicRoundCompleted)
	require.NoError(t, err)

	svc, err := roundqueue.NewService(ctx, pg.DB, logger, pg.DSN, metrics.NewNoop(), bus)
	require.NoError(t, err)
	require.NoError(t, svc.HealthCheck(ctx))

	payload := eventbus.RoundCompletedPayload{RoundID: "r-queue", PlayerID: "p1", HolesPlayed: 9, TotalScore: 47}
	require.NoError(t, svc.EnqueueRoundCompleted(ctx, payload))
	require.NoError(t, svc.EnqueueRoundCompleted(ctx, payload))

	jobs, err := svc.GetRoundJobs(ctx, "r-queue")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "round_completed", jobs[0].Kind)

	require.NoError(t, svc.Start(ctx))
	defer func() { _ = svc.Stop(context.Background()) }()

	select {
	case msg := <-messages:
		var got eventbus.RoundCompletedPayload
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		msg.Ack()
		assert.Equal(t, "r-queue", got.RoundID)
		assert.Equal(t, 47, got.TotalScore)
	case <-ctx.Done():
		t.Fatal("round.completed was not published by the worker")
	}
}
