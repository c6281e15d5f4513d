package roundservice

import (
	"context"
	"sync"

	courseservice "github.com/Black-And-White-Club/golf-stats/app/modules/course/application"
	coursedomain "github.com/Black-And-White-Club/golf-stats/app/modules/course/domain"
	rounddomain "github.com/Black-And-White-Club/golf-stats/app/modules/round/domain"
	rounddb "github.com/Black-And-White-Club/golf-stats/app/modules/round/infrastructure/repositories"
	scoringdomain "github.com/Black-And-White-Club/golf-stats/app/modules/scoring/domain"
	"github.com/Black-And-White-Club/golf-stats/app/shared/metrics"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Course Service
// ------------------------

type FakeCourseService struct {
	mu    sync.Mutex
	trace []string

	GetCourseFunc        func(ctx context.Context, courseID string) (*coursedomain.Course, error)
	ResolveHoleFunc      func(ctx context.Context, course coursedomain.Course, loop coursedomain.Loop, teeColor string, holeNumber int) coursedomain.HoleInfo
	CourseRatingFunc     func(ctx context.Context, course coursedomain.Course, loop coursedomain.Loop, teeColor string, gender scoringdomain.Gender) *coursedomain.CourseRating
	StrokeIndexTableFunc func(ctx context.Context, course coursedomain.Course, loop coursedomain.Loop) []scoringdomain.StrokeIndexEntry
}

func NewFakeCourseService() *FakeCourseService {
	return &FakeCourseService{trace: []string{}}
}

func (f *FakeCourseService) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeCourseService) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeCourseService) GetCourse(ctx context.Context, courseID string) (*coursedomain.Course, error) {
	f.record("GetCourse")
	if f.GetCourseFunc != nil {
		return f.GetCourseFunc(ctx, courseID)
	}
	return nil, courseservice.ErrCourseNotFound
}

func (f *FakeCourseService) SearchCourses(ctx context.Context, query string) ([]coursedomain.CourseSummary, error) {
	f.record("SearchCourses")
	return []coursedomain.CourseSummary{}, nil
}

func (f *FakeCourseService) ListCoursesNear(ctx context.Context, origin coursedomain.Coordinate) ([]coursedomain.CourseSummary, error) {
	f.record("ListCoursesNear")
	return []coursedomain.CourseSummary{}, nil
}

func (f *FakeCourseService) AvailableTees(ctx context.Context, courseID, loopID string) ([]string, error) {
	f.record("AvailableTees")
	return []string{}, nil
}

func (f *FakeCourseService) ResolveHole(ctx context.Context, course coursedomain.Course, loop coursedomain.Loop, teeColor string, holeNumber int) coursedomain.HoleInfo {
	f.record("ResolveHole")
	if f.ResolveHoleFunc != nil {
		return f.ResolveHoleFunc(ctx, course, loop, teeColor, holeNumber)
	}
	return coursedomain.FallbackHoleInfo(holeNumber)
}

func (f *FakeCourseService) CourseRating(ctx context.Context, course coursedomain.Course, loop coursedomain.Loop, teeColor string, gender scoringdomain.Gender) *coursedomain.CourseRating {
	f.record("CourseRating")
	if f.CourseRatingFunc != nil {
		return f.CourseRatingFunc(ctx, course, loop, teeColor, gender)
	}
	return nil
}

func (f *FakeCourseService) StrokeIndexTable(ctx context.Context, course coursedomain.Course, loop coursedomain.Loop) []scoringdomain.StrokeIndexEntry {
	f.record("StrokeIndexTable")
	if f.StrokeIndexTableFunc != nil {
		return f.StrokeIndexTableFunc(ctx, course, loop)
	}
	return []scoringdomain.StrokeIndexEntry{}
}

var _ courseservice.Service = (*FakeCourseService)(nil)

// ------------------------
// Fake Round Repo
// ------------------------

type FakeRoundRepo struct {
	mu    sync.Mutex
	trace []string

	SaveRoundFunc   func(ctx context.Context, db bun.IDB, round rounddomain.Round) error
	GetRoundFunc    func(ctx context.Context, db bun.IDB, id uuid.UUID) (*rounddomain.Round, error)
	ListRoundsFunc  func(ctx context.Context, db bun.IDB, playerID string) ([]rounddomain.Round, error)
	DeleteRoundFunc func(ctx context.Context, db bun.IDB, id uuid.UUID) error
}

func NewFakeRoundRepo() *FakeRoundRepo {
	return &FakeRoundRepo{trace: []string{}}
}

func (f *FakeRoundRepo) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeRoundRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRoundRepo) SaveRound(ctx context.Context, db bun.IDB, round rounddomain.Round) error {
	f.record("SaveRound")
	if f.SaveRoundFunc != nil {
		return f.SaveRoundFunc(ctx, db, round)
	}
	return nil
}

func (f *FakeRoundRepo) GetRound(ctx context.Context, db bun.IDB, id uuid.UUID) (*rounddomain.Round, error) {
	f.record("GetRound")
	if f.GetRoundFunc != nil {
		return f.GetRoundFunc(ctx, db, id)
	}
	return nil, rounddb.ErrNotFound
}

func (f *FakeRoundRepo) ListRounds(ctx context.Context, db bun.IDB, playerID string) ([]rounddomain.Round, error) {
	f.record("ListRounds")
	if f.ListRoundsFunc != nil {
		return f.ListRoundsFunc(ctx, db, playerID)
	}
	return []rounddomain.Round{}, nil
}

func (f *FakeRoundRepo) DeleteRound(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	f.record("DeleteRound")
	if f.DeleteRoundFunc != nil {
		return f.DeleteRoundFunc(ctx, db, id)
	}
	return rounddb.ErrNotFound
}

var _ rounddb.Repository = (*FakeRoundRepo)(nil)

// ------------------------
// Fake Notifier
// ------------------------

type FakeNotifier struct {
	Rounds []rounddomain.Round
	Err    error
}

func (f *FakeNotifier) RoundCompleted(_ context.Context, round rounddomain.Round) error {
	f.Rounds = append(f.Rounds, round)
	return f.Err
}

var _ Notifier = (*FakeNotifier)(nil)

// ------------------------
// Recording Metrics
// ------------------------

type recordingMetrics struct {
	*metrics.Noop
	mu     sync.Mutex
	shots  []string
	holes  int
	rounds int
	stale  int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{Noop: metrics.NewNoop()}
}

func (m *recordingMetrics) RecordShot(_ context.Context, club string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shots = append(m.shots, club)
}

func (m *recordingMetrics) RecordHoleCompleted(context.Context, int, *int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holes++
}

func (m *recordingMetrics) RecordRoundCompleted(context.Context, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds++
}

func (m *recordingMetrics) RecordStaleHoleData(context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stale++
}

func (m *recordingMetrics) staleCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stale
}

var _ metrics.RoundMetrics = (*recordingMetrics)(nil)
