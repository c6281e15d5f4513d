package roundqueue

import (
	"github.com/Black-And-White-Club/golf-stats/app/eventbus"
)

// RoundCompletedJob publishes a round.completed event for a saved round.
type RoundCompletedJob struct {
	Payload eventbus.RoundCompletedPayload `json:"payload"`
}

// Kind returns the job type identifier for River.
func (RoundCompletedJob) Kind() string { return "round_completed" }

// JobInfo represents information about a queued job.
type JobInfo struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	RoundID     string `json:"round_id"`
	State       string `json:"state"`
	CreatedAt   string `json:"created_at"`
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"max_attempts"`
}
