package roundservice

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	courseservice "github.com/Black-And-White-Club/golf-stats/app/modules/course/application"
	coursedomain "github.com/Black-And-White-Club/golf-stats/app/modules/course/domain"
	rounddomain "github.com/Black-And-White-Club/golf-stats/app/modules/round/domain"
	rounddb "github.com/Black-And-White-Club/golf-stats/app/modules/round/infrastructure/repositories"
	scoringdomain "github.com/Black-And-White-Club/golf-stats/app/modules/scoring/domain"
	"github.com/Black-And-White-Club/golf-stats/app/shared/attr"
	"github.com/Black-And-White-Club/golf-stats/app/shared/metrics"
	"github.com/Black-And-White-Club/golf-stats/app/shared/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// liveRound is a registered session. mu guards the session, saving and
// saved. lastUsed is the unix nano time of the latest lookup.
type liveRound struct {
	mu       sync.Mutex
	session  *rounddomain.Session
	saving   bool
	saved    bool
	lastUsed atomic.Int64
}

// holeFetch is everything needed to resolve a requested hole without
// holding the session lock.
type holeFetch struct {
	req    rounddomain.HoleRequest
	course coursedomain.Course
	loop   coursedomain.Loop
	tee    string
}

// RoundService implements the Service interface.
type RoundService struct {
	courses  courseservice.Service
	repo     rounddb.Repository
	notifier Notifier
	parser   *TeeTimeParser
	clock    Clock
	logger   *slog.Logger
	metrics  metrics.RoundMetrics
	tracer   trace.Tracer
	db       *bun.DB

	mu     sync.RWMutex
	rounds map[uuid.UUID]*liveRound
}

// NewRoundService creates a new RoundService. notifier may be nil.
func NewRoundService(
	courses courseservice.Service,
	repo rounddb.Repository,
	notifier Notifier,
	clock Clock,
	logger *slog.Logger,
	metrics metrics.RoundMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *RoundService {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = RealClock{}
	}
	if metrics == nil {
		metrics = metricsNoop()
	}
	return &RoundService{
		courses:  courses,
		repo:     repo,
		notifier: notifier,
		parser:   NewTeeTimeParser(logger),
		clock:    clock,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		db:       db,
		rounds:   make(map[uuid.UUID]*liveRound),
	}
}

var _ Service = (*RoundService)(nil)

func metricsNoop() metrics.RoundMetrics { return metrics.NewNoop() }

// StartRound resolves the course and loop, looks up rating and stroke
// indexes, starts a session and loads the first hole.
func (s *RoundService) StartRound(ctx context.Context, req StartRoundRequest) (rounddomain.View, error) {
	result, err := withTelemetry(s, ctx, "StartRound", req.CourseID, func(ctx context.Context) (results.OperationResult[rounddomain.View, error], error) {
		if req.PlayerID == "" {
			return results.FailureResult[rounddomain.View, error](ErrPlayerRequired), nil
		}

		course, err := s.courses.GetCourse(ctx, req.CourseID)
		if errors.Is(err, courseservice.ErrCourseNotFound) {
			return results.FailureResult[rounddomain.View, error](ErrCourseNotFound), nil
		}
		if err != nil {
			return results.OperationResult[rounddomain.View, error]{}, err
		}

		loop, ok := course.Loop(req.LoopID)
		if !ok {
			return results.FailureResult[rounddomain.View, error](ErrLoopNotFound), nil
		}

		gender := scoringdomain.ParseGender(req.Gender)
		scoring := rounddomain.Scoring{
			StrokeIndexes: s.courses.StrokeIndexTable(ctx, *course, loop),
		}
		if cr := s.courses.CourseRating(ctx, *course, loop, req.TeeColor, gender); cr != nil {
			rating := cr.Rating()
			scoring.Rating = &rating
		}

		now := s.clock.Now()
		teeTime := s.parser.Parse(req.Date, req.StartTime, now)
		settings := rounddomain.Settings{
			PlayerID:      req.PlayerID,
			Date:          teeTime.Format(dateLayout),
			StartTime:     teeTime.Format(timeLayout),
			Temperature:   req.Temperature,
			Gender:        gender,
			HandicapIndex: req.HandicapIndex,
		}

		session := rounddomain.NewSession(uuid.New(), s.clock.Now)
		holeReq, err := session.StartRound(*course, loop.ID, req.TeeColor, settings, scoring)
		if err != nil {
			return results.FailureResult[rounddomain.View, error](err), nil
		}

		live := &liveRound{session: session}
		live.lastUsed.Store(now.UnixNano())
		fetch := fetchFor(session, holeReq)

		s.mu.Lock()
		s.rounds[session.ID()] = live
		s.mu.Unlock()

		s.logger.InfoContext(ctx, "Round started",
			attr.ExtractCorrelationID(ctx),
			attr.RoundID("round_id", session.ID()),
			attr.String("player_id", req.PlayerID),
			attr.String("course", course.Name),
			attr.String("loop", loop.Name),
			attr.String("tee", req.TeeColor),
			attr.Bool("stableford", scoring.Rating != nil && req.HandicapIndex != nil),
		)

		return results.SuccessResult[rounddomain.View, error](s.load(ctx, live, fetch)), nil
	})
	return unwrap(result, err)
}

// GetRound returns the read model of a live round. A round that has been
// saved and released is served from history.
func (s *RoundService) GetRound(ctx context.Context, roundID uuid.UUID) (rounddomain.View, error) {
	live, ok := s.lookup(roundID)
	if !ok {
		if round, found := s.findSaved(ctx, roundID); found {
			return rounddomain.CompletedView(*round), nil
		}
		return rounddomain.View{}, ErrRoundNotFound
	}
	live.mu.Lock()
	defer live.mu.Unlock()
	return live.session.View(), nil
}

// AddShot records a shot on the current hole.
func (s *RoundService) AddShot(ctx context.Context, roundID uuid.UUID, shot ShotInput) (rounddomain.View, error) {
	result, err := withTelemetry(s, ctx, "AddShot", roundID.String(), func(ctx context.Context) (results.OperationResult[rounddomain.View, error], error) {
		return s.mutate(ctx, roundID, func(session *rounddomain.Session) error {
			added, err := session.AddShot(shot.Club, shot.Manual, shot.Lie)
			if err != nil {
				return err
			}
			s.metrics.RecordShot(ctx, added.Club)
			return nil
		})
	})
	return unwrap(result, err)
}

// AddPenalty records penalty strokes on the current hole.
func (s *RoundService) AddPenalty(ctx context.Context, roundID uuid.UUID, strokes int) (rounddomain.View, error) {
	result, err := withTelemetry(s, ctx, "AddPenalty", roundID.String(), func(ctx context.Context) (results.OperationResult[rounddomain.View, error], error) {
		return s.mutate(ctx, roundID, func(session *rounddomain.Session) error {
			added, err := session.AddPenalty(strokes)
			if err != nil {
				return err
			}
			s.metrics.RecordShot(ctx, added.Club)
			return nil
		})
	})
	return unwrap(result, err)
}

// UndoLastShot removes the newest shot. An empty ledger is not an error.
func (s *RoundService) UndoLastShot(ctx context.Context, roundID uuid.UUID) (rounddomain.View, error) {
	result, err := withTelemetry(s, ctx, "UndoLastShot", roundID.String(), func(ctx context.Context) (results.OperationResult[rounddomain.View, error], error) {
		return s.mutate(ctx, roundID, func(session *rounddomain.Session) error {
			_, err := session.UndoLastShot()
			return err
		})
	})
	return unwrap(result, err)
}

// DeleteShot removes a shot by number.
func (s *RoundService) DeleteShot(ctx context.Context, roundID uuid.UUID, shotNumber int) (rounddomain.View, error) {
	result, err := withTelemetry(s, ctx, "DeleteShot", roundID.String(), func(ctx context.Context) (results.OperationResult[rounddomain.View, error], error) {
		return s.mutate(ctx, roundID, func(session *rounddomain.Session) error {
			return session.DeleteShot(shotNumber)
		})
	})
	return unwrap(result, err)
}

// FinishHole scores the current hole. Unless it was the last hole the next
// one is loaded; after the last hole the round is saved and announced. A
// completed round whose save failed is saved again by the next call.
func (s *RoundService) FinishHole(ctx context.Context, roundID uuid.UUID, in FinishHoleInput) (FinishHoleResult, error) {
	result, err := withTelemetry(s, ctx, "FinishHole", roundID.String(), func(ctx context.Context) (results.OperationResult[FinishHoleResult, error], error) {
		live, ok := s.lookup(roundID)
		if !ok {
			return results.FailureResult[FinishHoleResult, error](s.missing(ctx, roundID)), nil
		}

		live.mu.Lock()
		if live.saving {
			live.mu.Unlock()
			return results.FailureResult[FinishHoleResult, error](ErrSaveInProgress), nil
		}
		if live.session.State() == rounddomain.StateCompleted && !live.saved {
			live.saving = true
			round := live.session.Round()
			live.mu.Unlock()
			return s.complete(ctx, live, FinishHoleResult{Completed: true}, round)
		}

		outcome, err := live.session.FinishHole(in.Putts, in.Score)
		if err != nil {
			live.mu.Unlock()
			return results.FailureResult[FinishHoleResult, error](err), nil
		}
		s.metrics.RecordHoleCompleted(ctx, outcome.Result.Score, outcome.Result.StablefordPoints)

		res := FinishHoleResult{Hole: outcome.Result, Completed: outcome.Completed}
		if outcome.Next != nil {
			fetch := fetchFor(live.session, *outcome.Next)
			live.mu.Unlock()
			res.View = s.load(ctx, live, fetch)
			return results.SuccessResult[FinishHoleResult, error](res), nil
		}

		live.saving = true
		round := live.session.Round()
		live.mu.Unlock()
		s.metrics.RecordRoundCompleted(ctx, len(round.Holes))
		return s.complete(ctx, live, res, round)
	})
	return unwrap(result, err)
}

// RefreshHole reissues the load of the hole in play. Any load still in
// flight becomes stale.
func (s *RoundService) RefreshHole(ctx context.Context, roundID uuid.UUID) (rounddomain.View, error) {
	result, err := withTelemetry(s, ctx, "RefreshHole", roundID.String(), func(ctx context.Context) (results.OperationResult[rounddomain.View, error], error) {
		live, ok := s.lookup(roundID)
		if !ok {
			return results.FailureResult[rounddomain.View, error](s.missing(ctx, roundID)), nil
		}

		live.mu.Lock()
		req, err := live.session.RequestHole()
		if err != nil {
			live.mu.Unlock()
			return results.FailureResult[rounddomain.View, error](err), nil
		}
		fetch := fetchFor(live.session, req)
		live.mu.Unlock()

		return results.SuccessResult[rounddomain.View, error](s.load(ctx, live, fetch)), nil
	})
	return unwrap(result, err)
}

// Scorecard totals the finished holes of a live round, or of a saved one.
func (s *RoundService) Scorecard(ctx context.Context, roundID uuid.UUID) (scoringdomain.Scorecard, error) {
	live, ok := s.lookup(roundID)
	if !ok {
		if round, found := s.findSaved(ctx, roundID); found {
			return round.Scorecard(), nil
		}
		return scoringdomain.Scorecard{}, ErrRoundNotFound
	}
	live.mu.Lock()
	round := live.session.Round()
	live.mu.Unlock()
	return round.Scorecard(), nil
}

// ResetRound abandons a live round and forgets it.
func (s *RoundService) ResetRound(ctx context.Context, roundID uuid.UUID) error {
	s.mu.Lock()
	live, ok := s.rounds[roundID]
	delete(s.rounds, roundID)
	s.mu.Unlock()
	if !ok {
		return ErrRoundNotFound
	}

	live.mu.Lock()
	live.session.Reset()
	live.mu.Unlock()

	s.logger.InfoContext(ctx, "Round reset",
		attr.ExtractCorrelationID(ctx),
		attr.RoundID("round_id", roundID),
	)
	return nil
}

// ListSavedRounds returns a player's saved rounds, newest first.
func (s *RoundService) ListSavedRounds(ctx context.Context, playerID string) ([]rounddomain.Round, error) {
	result, err := withTelemetry(s, ctx, "ListSavedRounds", playerID, func(ctx context.Context) (results.OperationResult[[]rounddomain.Round, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]rounddomain.Round, error], error) {
			rounds, err := s.repo.ListRounds(ctx, db, playerID)
			if err != nil {
				return results.OperationResult[[]rounddomain.Round, error]{}, err
			}
			return results.SuccessResult[[]rounddomain.Round, error](rounds), nil
		})
	})
	return unwrap(result, err)
}

// GetSavedRound returns a saved round.
func (s *RoundService) GetSavedRound(ctx context.Context, roundID uuid.UUID) (*rounddomain.Round, error) {
	result, err := withTelemetry(s, ctx, "GetSavedRound", roundID.String(), func(ctx context.Context) (results.OperationResult[*rounddomain.Round, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*rounddomain.Round, error], error) {
			round, err := s.repo.GetRound(ctx, db, roundID)
			if errors.Is(err, rounddb.ErrNotFound) {
				return results.FailureResult[*rounddomain.Round, error](ErrRoundNotFound), nil
			}
			if err != nil {
				return results.OperationResult[*rounddomain.Round, error]{}, err
			}
			return results.SuccessResult[*rounddomain.Round, error](round), nil
		})
	})
	return unwrap(result, err)
}

// DeleteSavedRound removes a saved round.
func (s *RoundService) DeleteSavedRound(ctx context.Context, roundID uuid.UUID) error {
	result, err := withTelemetry(s, ctx, "DeleteSavedRound", roundID.String(), func(ctx context.Context) (results.OperationResult[bool, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
			err := s.repo.DeleteRound(ctx, db, roundID)
			if errors.Is(err, rounddb.ErrNotFound) {
				return results.FailureResult[bool, error](ErrRoundNotFound), nil
			}
			if err != nil {
				return results.OperationResult[bool, error]{}, err
			}
			return results.SuccessResult[bool, error](true), nil
		})
	})
	_, err = unwrap(result, err)
	return err
}

// PlayerStats aggregates a player's saved rounds.
func (s *RoundService) PlayerStats(ctx context.Context, playerID string) (rounddomain.Stats, error) {
	rounds, err := s.ListSavedRounds(ctx, playerID)
	if err != nil {
		return rounddomain.Stats{}, err
	}
	return rounddomain.ComputeStats(rounds), nil
}

func (s *RoundService) lookup(id uuid.UUID) (*liveRound, bool) {
	s.mu.RLock()
	live, ok := s.rounds[id]
	s.mu.RUnlock()
	if ok {
		live.lastUsed.Store(s.clock.Now().UnixNano())
	}
	return live, ok
}

// findSaved reads a round from history. Lookup errors count as a miss.
func (s *RoundService) findSaved(ctx context.Context, id uuid.UUID) (*rounddomain.Round, bool) {
	result, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*rounddomain.Round, error], error) {
		round, err := s.repo.GetRound(ctx, db, id)
		if err != nil {
			return results.OperationResult[*rounddomain.Round, error]{}, err
		}
		return results.SuccessResult[*rounddomain.Round, error](round), nil
	})
	if err != nil || !result.IsSuccess() || *result.Success == nil {
		return nil, false
	}
	return *result.Success, true
}

// missing is the failure for a command on a round that is not live: saved
// rounds are completed, anything else is unknown.
func (s *RoundService) missing(ctx context.Context, id uuid.UUID) error {
	if _, found := s.findSaved(ctx, id); found {
		return rounddomain.ErrRoundCompleted
	}
	return ErrRoundNotFound
}

// forget drops a round from the live registry.
func (s *RoundService) forget(id uuid.UUID) {
	s.mu.Lock()
	delete(s.rounds, id)
	s.mu.Unlock()
}

// EvictIdle drops live rounds not used for longer than maxIdle and returns
// how many were dropped.
func (s *RoundService) EvictIdle(ctx context.Context, maxIdle time.Duration) int {
	cutoff := s.clock.Now().Add(-maxIdle).UnixNano()

	s.mu.Lock()
	evicted := 0
	for id, live := range s.rounds {
		if live.lastUsed.Load() < cutoff {
			delete(s.rounds, id)
			evicted++
		}
	}
	remaining := len(s.rounds)
	s.mu.Unlock()

	if evicted > 0 {
		s.logger.InfoContext(ctx, "Evicted idle rounds",
			attr.Int("evicted", evicted),
			attr.Int("live", remaining),
			attr.Duration("max_idle", maxIdle),
		)
	}
	return evicted
}

// mutate applies fn to a live round under its lock. Errors from fn are
// domain failures.
func (s *RoundService) mutate(ctx context.Context, id uuid.UUID, fn func(*rounddomain.Session) error) (results.OperationResult[rounddomain.View, error], error) {
	live, ok := s.lookup(id)
	if !ok {
		return results.FailureResult[rounddomain.View, error](s.missing(ctx, id)), nil
	}
	live.mu.Lock()
	defer live.mu.Unlock()
	if err := fn(live.session); err != nil {
		return results.FailureResult[rounddomain.View, error](err), nil
	}
	return results.SuccessResult[rounddomain.View, error](live.session.View()), nil
}

// fetchFor captures the lookup inputs of req. Callers hold the round lock.
func fetchFor(session *rounddomain.Session, req rounddomain.HoleRequest) holeFetch {
	round := session.Round()
	return holeFetch{req: req, course: session.Course(), loop: round.Loop, tee: round.TeeColor}
}

// load resolves a hole outside the round lock and applies it. Responses
// overtaken by a newer request are dropped.
func (s *RoundService) load(ctx context.Context, live *liveRound, f holeFetch) rounddomain.View {
	info := s.courses.ResolveHole(ctx, f.course, f.loop, f.tee, f.req.HoleNumber)

	live.mu.Lock()
	defer live.mu.Unlock()
	if err := live.session.ApplyHoleInfo(f.req, info); err != nil {
		if errors.Is(err, rounddomain.ErrStaleHoleData) {
			s.metrics.RecordStaleHoleData(ctx)
			s.logger.InfoContext(ctx, "Discarded stale hole data",
				attr.ExtractCorrelationID(ctx),
				attr.RoundID("round_id", live.session.ID()),
				attr.Int("hole", f.req.HoleNumber),
				attr.Int64("token", int64(f.req.Token)),
			)
		}
	}
	return live.session.View()
}

// complete saves a finished round, releases it from the live registry and
// announces it. Callers set live.saving first. A failed save is an
// infrastructure error and leaves the round live for another attempt; a
// failed announcement is only logged.
func (s *RoundService) complete(ctx context.Context, live *liveRound, res FinishHoleResult, round rounddomain.Round) (results.OperationResult[FinishHoleResult, error], error) {
	saveResult, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
		if err := s.repo.SaveRound(ctx, db, round); err != nil {
			return results.OperationResult[bool, error]{}, err
		}
		return results.SuccessResult[bool, error](true), nil
	})
	if err != nil {
		live.mu.Lock()
		live.saving = false
		live.mu.Unlock()
		return results.OperationResult[FinishHoleResult, error]{}, err
	}
	res.Saved = saveResult.IsSuccess()

	live.mu.Lock()
	live.saving = false
	live.saved = true
	res.View = live.session.View()
	live.mu.Unlock()
	s.forget(round.ID)

	s.logger.InfoContext(ctx, "Round completed",
		attr.ExtractCorrelationID(ctx),
		attr.RoundID("round_id", round.ID),
		attr.String("player_id", round.PlayerID),
		attr.Int("holes", len(round.Holes)),
		attr.Int("total_score", round.TotalScore()),
	)

	if s.notifier != nil {
		if err := s.notifier.RoundCompleted(ctx, round); err != nil {
			s.logger.WarnContext(ctx, "Failed to announce completed round",
				attr.ExtractCorrelationID(ctx),
				attr.RoundID("round_id", round.ID),
				attr.Error(err),
			)
		}
	}
	return results.SuccessResult[FinishHoleResult, error](res), nil
}
