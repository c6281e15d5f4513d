package roundservice

import (
	"context"
	"encoding/json"
	"time"

	rounddomain "github.com/Black-And-White-Club/golf-stats/app/modules/round/domain"
	scoringdomain "github.com/Black-And-White-Club/golf-stats/app/modules/scoring/domain"
	"github.com/google/uuid"
)

// Service drives live rounds and the saved-round history.
type Service interface {
	// StartRound selects course, loop and tee, configures the player and
	// loads the first hole.
	StartRound(ctx context.Context, req StartRoundRequest) (rounddomain.View, error)
	// GetRound returns the read model of a live round.
	GetRound(ctx context.Context, roundID uuid.UUID) (rounddomain.View, error)
	// AddShot records a shot on the current hole.
	AddShot(ctx context.Context, roundID uuid.UUID, shot ShotInput) (rounddomain.View, error)
	// AddPenalty records 1 or 2 penalty strokes on the current hole.
	AddPenalty(ctx context.Context, roundID uuid.UUID, strokes int) (rounddomain.View, error)
	// UndoLastShot removes the newest shot of the current hole.
	UndoLastShot(ctx context.Context, roundID uuid.UUID) (rounddomain.View, error)
	// DeleteShot removes a shot by number and renumbers the rest.
	DeleteShot(ctx context.Context, roundID uuid.UUID, shotNumber int) (rounddomain.View, error)
	// FinishHole scores the current hole and moves on, saving the round
	// after its last hole.
	FinishHole(ctx context.Context, roundID uuid.UUID, in FinishHoleInput) (FinishHoleResult, error)
	// RefreshHole reloads the data of the hole in play.
	RefreshHole(ctx context.Context, roundID uuid.UUID) (rounddomain.View, error)
	// Scorecard totals the finished holes of a live or saved round.
	Scorecard(ctx context.Context, roundID uuid.UUID) (scoringdomain.Scorecard, error)
	// ResetRound abandons a live round.
	ResetRound(ctx context.Context, roundID uuid.UUID) error
	// EvictIdle drops live rounds untouched for longer than maxIdle.
	EvictIdle(ctx context.Context, maxIdle time.Duration) int

	// ListSavedRounds returns a player's saved rounds, newest first.
	ListSavedRounds(ctx context.Context, playerID string) ([]rounddomain.Round, error)
	// GetSavedRound returns a saved round.
	GetSavedRound(ctx context.Context, roundID uuid.UUID) (*rounddomain.Round, error)
	// DeleteSavedRound removes a saved round.
	DeleteSavedRound(ctx context.Context, roundID uuid.UUID) error
	// PlayerStats aggregates a player's saved rounds.
	PlayerStats(ctx context.Context, playerID string) (rounddomain.Stats, error)
}

// StartRoundRequest carries the selections and settings of a new round.
type StartRoundRequest struct {
	PlayerID      string   `json:"player_id"`
	CourseID      string   `json:"course_id"`
	LoopID        string   `json:"loop_id"`
	TeeColor      string   `json:"tee_color"`
	Gender        string   `json:"gender"`
	HandicapIndex *float64 `json:"handicap_index"`
	Date          string   `json:"date"`
	StartTime     string   `json:"start_time"`
	Temperature   *float64 `json:"temperature"`
}

// ShotInput is a shot as entered by the player. Manual is free text: the
// played distance, the number of putts for the putter or penalty strokes.
type ShotInput struct {
	Club   string `json:"club"`
	Manual string `json:"manual"`
	Lie    string `json:"lie"`
}

// FinishHoleInput overrides the automatic putt count and score. Nil keeps
// the automatic value.
type FinishHoleInput struct {
	Putts *int `json:"putts"`
	Score *int `json:"score"`
}

// UnmarshalJSON accepts numbers or free text for both overrides. Text
// without a leading integer, like other non-numeric values, leaves the
// override unset.
func (in *FinishHoleInput) UnmarshalJSON(data []byte) error {
	var raw struct {
		Putts json.RawMessage `json:"putts"`
		Score json.RawMessage `json:"score"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	in.Putts = parseOverride(raw.Putts)
	in.Score = parseOverride(raw.Score)
	return nil
}

func parseOverride(raw json.RawMessage) *int {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	switch v := v.(type) {
	case float64:
		n := int(v)
		return &n
	case string:
		if n, ok := rounddomain.ParseManualInput(v); ok {
			return &n
		}
	}
	return nil
}

// FinishHoleResult is the finished hole and the round after it.
type FinishHoleResult struct {
	Hole      rounddomain.HoleResult `json:"hole"`
	Completed bool                   `json:"completed"`
	Saved     bool                   `json:"saved"`
	View      rounddomain.View       `json:"round"`
}

// Notifier announces completed rounds.
type Notifier interface {
	RoundCompleted(ctx context.Context, round rounddomain.Round) error
}
