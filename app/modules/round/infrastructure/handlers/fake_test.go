package roundhandlers

import (
	"context"
	"time"

	roundservice "github.com/Black-And-White-Club/golf-stats/app/modules/round/application"
	rounddomain "github.com/Black-And-White-Club/golf-stats/app/modules/round/domain"
	scoringdomain "github.com/Black-And-White-Club/golf-stats/app/modules/scoring/domain"
	"github.com/google/uuid"
)

// FakeService is a programmable fake for roundservice.Service.
type FakeService struct {
	trace []string

	StartRoundFunc       func(ctx context.Context, req roundservice.StartRoundRequest) (rounddomain.View, error)
	GetRoundFunc         func(ctx context.Context, roundID uuid.UUID) (rounddomain.View, error)
	AddShotFunc          func(ctx context.Context, roundID uuid.UUID, shot roundservice.ShotInput) (rounddomain.View, error)
	AddPenaltyFunc       func(ctx context.Context, roundID uuid.UUID, strokes int) (rounddomain.View, error)
	UndoLastShotFunc     func(ctx context.Context, roundID uuid.UUID) (rounddomain.View, error)
	DeleteShotFunc       func(ctx context.Context, roundID uuid.UUID, shotNumber int) (rounddomain.View, error)
	FinishHoleFunc       func(ctx context.Context, roundID uuid.UUID, in roundservice.FinishHoleInput) (roundservice.FinishHoleResult, error)
	RefreshHoleFunc      func(ctx context.Context, roundID uuid.UUID) (rounddomain.View, error)
	ScorecardFunc        func(ctx context.Context, roundID uuid.UUID) (scoringdomain.Scorecard, error)
	ResetRoundFunc       func(ctx context.Context, roundID uuid.UUID) error
	EvictIdleFunc        func(ctx context.Context, maxIdle time.Duration) int
	ListSavedRoundsFunc  func(ctx context.Context, playerID string) ([]rounddomain.Round, error)
	GetSavedRoundFunc    func(ctx context.Context, roundID uuid.UUID) (*rounddomain.Round, error)
	DeleteSavedRoundFunc func(ctx context.Context, roundID uuid.UUID) error
	PlayerStatsFunc      func(ctx context.Context, playerID string) (rounddomain.Stats, error)
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeService) StartRound(ctx context.Context, req roundservice.StartRoundRequest) (rounddomain.View, error) {
	f.record("StartRound")
	if f.StartRoundFunc != nil {
		return f.StartRoundFunc(ctx, req)
	}
	return rounddomain.View{}, nil
}

func (f *FakeService) GetRound(ctx context.Context, roundID uuid.UUID) (rounddomain.View, error) {
	f.record("GetRound")
	if f.GetRoundFunc != nil {
		return f.GetRoundFunc(ctx, roundID)
	}
	return rounddomain.View{}, roundservice.ErrRoundNotFound
}

func (f *FakeService) AddShot(ctx context.Context, roundID uuid.UUID, shot roundservice.ShotInput) (rounddomain.View, error) {
	f.record("AddShot")
	if f.AddShotFunc != nil {
		return f.AddShotFunc(ctx, roundID, shot)
	}
	return rounddomain.View{RoundID: roundID}, nil
}

func (f *FakeService) AddPenalty(ctx context.Context, roundID uuid.UUID, strokes int) (rounddomain.View, error) {
	f.record("AddPenalty")
	if f.AddPenaltyFunc != nil {
		return f.AddPenaltyFunc(ctx, roundID, strokes)
	}
	return rounddomain.View{RoundID: roundID}, nil
}

func (f *FakeService) UndoLastShot(ctx context.Context, roundID uuid.UUID) (rounddomain.View, error) {
	f.record("UndoLastShot")
	if f.UndoLastShotFunc != nil {
		return f.UndoLastShotFunc(ctx, roundID)
	}
	return rounddomain.View{RoundID: roundID}, nil
}

func (f *FakeService) DeleteShot(ctx context.Context, roundID uuid.UUID, shotNumber int) (rounddomain.View, error) {
	f.record("DeleteShot")
	if f.DeleteShotFunc != nil {
		return f.DeleteShotFunc(ctx, roundID, shotNumber)
	}
	return rounddomain.View{RoundID: roundID}, nil
}

func (f *FakeService) FinishHole(ctx context.Context, roundID uuid.UUID, in roundservice.FinishHoleInput) (roundservice.FinishHoleResult, error) {
	f.record("FinishHole")
	if f.FinishHoleFunc != nil {
		return f.FinishHoleFunc(ctx, roundID, in)
	}
	return roundservice.FinishHoleResult{}, nil
}

func (f *FakeService) RefreshHole(ctx context.Context, roundID uuid.UUID) (rounddomain.View, error) {
	f.record("RefreshHole")
	if f.RefreshHoleFunc != nil {
		return f.RefreshHoleFunc(ctx, roundID)
	}
	return rounddomain.View{RoundID: roundID}, nil
}

func (f *FakeService) Scorecard(ctx context.Context, roundID uuid.UUID) (scoringdomain.Scorecard, error) {
	f.record("Scorecard")
	if f.ScorecardFunc != nil {
		return f.ScorecardFunc(ctx, roundID)
	}
	return scoringdomain.Scorecard{}, nil
}

func (f *FakeService) ResetRound(ctx context.Context, roundID uuid.UUID) error {
	f.record("ResetRound")
	if f.ResetRoundFunc != nil {
		return f.ResetRoundFunc(ctx, roundID)
	}
	return nil
}

func (f *FakeService) EvictIdle(ctx context.Context, maxIdle time.Duration) int {
	f.record("EvictIdle")
	if f.EvictIdleFunc != nil {
		return f.EvictIdleFunc(ctx, maxIdle)
	}
	return 0
}

func (f *FakeService) ListSavedRounds(ctx context.Context, playerID string) ([]rounddomain.Round, error) {
	f.record("ListSavedRounds")
	if f.ListSavedRoundsFunc != nil {
		return f.ListSavedRoundsFunc(ctx, playerID)
	}
	return []rounddomain.Round{}, nil
}

func (f *FakeService) GetSavedRound(ctx context.Context, roundID uuid.UUID) (*rounddomain.Round, error) {
	f.record("GetSavedRound")
	if f.GetSavedRoundFunc != nil {
		return f.GetSavedRoundFunc(ctx, roundID)
	}
	return nil, roundservice.ErrRoundNotFound
}

func (f *FakeService) DeleteSavedRound(ctx context.Context, roundID uuid.UUID) error {
	f.record("DeleteSavedRound")
	if f.DeleteSavedRoundFunc != nil {
		return f.DeleteSavedRoundFunc(ctx, roundID)
	}
	return nil
}

func (f *FakeService) PlayerStats(ctx context.Context, playerID string) (rounddomain.Stats, error) {
	f.record("PlayerStats")
	if f.PlayerStatsFunc != nil {
		return f.PlayerStatsFunc(ctx, playerID)
	}
	return rounddomain.Stats{Clubs: []rounddomain.ClubStats{}}, nil
}

var _ roundservice.Service = (*FakeService)(nil)
