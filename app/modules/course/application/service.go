package courseservice

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	coursedomain "github.com/Black-And-White-Club/golf-stats/app/modules/course/domain"
	coursedb "github.com/Black-And-White-Club/golf-stats/app/modules/course/infrastructure/repositories"
	scoringdomain "github.com/Black-And-White-Club/golf-stats/app/modules/scoring/domain"
	"github.com/Black-And-White-Club/golf-stats/app/shared/attr"
	"github.com/Black-And-White-Club/golf-stats/app/shared/metrics"
	"github.com/Black-And-White-Club/golf-stats/app/shared/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

const (
	// MinQueryLength is the shortest query SearchCourses will run.
	MinQueryLength = 2
	// SearchLimit caps SearchCourses results.
	SearchLimit = 20
)

// Fallback reasons recorded when a hole resolves to synthetic data.
const (
	reasonLookupError = "lookup_error"
	reasonMissingHole = "missing_hole"
)

// CourseService implements the Service interface.
type CourseService struct {
	repo    coursedb.Repository
	logger  *slog.Logger
	metrics metrics.CourseMetrics
	tracer  trace.Tracer
	db      *bun.DB
}

// NewCourseService creates a new CourseService.
func NewCourseService(
	repo coursedb.Repository,
	logger *slog.Logger,
	metrics metrics.CourseMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *CourseService {
	return &CourseService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		db:      db,
	}
}

var _ Service = (*CourseService)(nil)

// GetCourse returns a course by id.
func (s *CourseService) GetCourse(ctx context.Context, courseID string) (*coursedomain.Course, error) {
	result, err := withTelemetry(s, ctx, "GetCourse", courseID, func(ctx context.Context) (results.OperationResult[*coursedomain.Course, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*coursedomain.Course, error], error) {
			course, err := s.repo.GetCourse(ctx, db, courseID)
			if errors.Is(err, coursedb.ErrNotFound) {
				return results.FailureResult[*coursedomain.Course, error](ErrCourseNotFound), nil
			}
			if err != nil {
				return results.OperationResult[*coursedomain.Course, error]{}, err
			}
			return results.SuccessResult[*coursedomain.Course, error](course), nil
		})
	})
	return unwrap(result, err)
}

// SearchCourses matches the query against course names and cities.
func (s *CourseService) SearchCourses(ctx context.Context, query string) ([]coursedomain.CourseSummary, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinQueryLength {
		return []coursedomain.CourseSummary{}, nil
	}

	result, err := withTelemetry(s, ctx, "SearchCourses", query, func(ctx context.Context) (results.OperationResult[[]coursedomain.CourseSummary, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]coursedomain.CourseSummary, error], error) {
			courses, err := s.repo.SearchCourses(ctx, db, query, SearchLimit)
			if err != nil {
				return results.OperationResult[[]coursedomain.CourseSummary, error]{}, err
			}
			summaries := make([]coursedomain.CourseSummary, 0, len(courses))
			for _, c := range courses {
				summaries = append(summaries, coursedomain.CourseSummary{Course: c})
			}
			return results.SuccessResult[[]coursedomain.CourseSummary, error](summaries), nil
		})
	})
	return unwrap(result, err)
}

// ListCoursesNear returns the courses closest to origin, nearest first.
func (s *CourseService) ListCoursesNear(ctx context.Context, origin coursedomain.Coordinate) ([]coursedomain.CourseSummary, error) {
	result, err := withTelemetry(s, ctx, "ListCoursesNear", "", func(ctx context.Context) (results.OperationResult[[]coursedomain.CourseSummary, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]coursedomain.CourseSummary, error], error) {
			courses, err := s.repo.ListCourses(ctx, db)
			if err != nil {
				return results.OperationResult[[]coursedomain.CourseSummary, error]{}, err
			}
			nearest := coursedomain.NearestCourses(courses, origin, coursedomain.NearbyLimit)
			return results.SuccessResult[[]coursedomain.CourseSummary, error](nearest), nil
		})
	})
	return unwrap(result, err)
}

// AvailableTees lists the tees with a positive distance on hole 1 of the loop.
// Loops without stored holes fall back to the course's configured tee colours.
func (s *CourseService) AvailableTees(ctx context.Context, courseID, loopID string) ([]string, error) {
	result, err := withTelemetry(s, ctx, "AvailableTees", courseID+"/"+loopID, func(ctx context.Context) (results.OperationResult[[]string, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]string, error], error) {
			course, err := s.repo.GetCourse(ctx, db, courseID)
			if errors.Is(err, coursedb.ErrNotFound) {
				return results.FailureResult[[]string, error](ErrCourseNotFound), nil
			}
			if err != nil {
				return results.OperationResult[[]string, error]{}, err
			}

			loop, ok := course.Loop(loopID)
			if !ok {
				return results.FailureResult[[]string, error](ErrLoopNotFound), nil
			}

			hole, err := s.repo.GetHole(ctx, db, coursedomain.HoleKey{
				CourseName: course.Name,
				LoopID:     coursedomain.FirstSubLoop(loop),
				HoleNumber: 1,
			})
			if err != nil && !errors.Is(err, coursedb.ErrNotFound) {
				return results.OperationResult[[]string, error]{}, err
			}

			var tees []string
			if hole != nil {
				tees = coursedomain.AvailableTees(hole.Distances)
			}
			if len(tees) == 0 {
				tees = coursedomain.SortTeeNames(course.TeeColors)
			}
			return results.SuccessResult[[]string, error](tees), nil
		})
	})
	return unwrap(result, err)
}

// ResolveHole returns play data for holeNumber of loop. Lookup failures and
// missing rows resolve to the synthetic fallback hole.
func (s *CourseService) ResolveHole(ctx context.Context, course coursedomain.Course, loop coursedomain.Loop, teeColor string, holeNumber int) coursedomain.HoleInfo {
	var combo []coursedomain.ComboHole
	if loop.IsCombo() && loop.ComboID != "" {
		rows, err := s.repo.GetComboStrokeIndex(ctx, s.idb(), loop.ComboID)
		if err != nil {
			s.logger.WarnContext(ctx, "Combination table lookup failed",
				attr.ExtractCorrelationID(ctx),
				attr.String("combo_id", loop.ComboID),
				attr.Error(err),
			)
		}
		combo = rows
	}

	source := coursedomain.ResolveHoleSource(loop, combo, holeNumber)
	record, err := s.repo.GetHole(ctx, s.idb(), coursedomain.HoleKey{
		CourseName: course.Name,
		LoopID:     source.LoopID,
		HoleNumber: source.HoleNumber,
	})
	switch {
	case errors.Is(err, coursedb.ErrNotFound):
		s.recordFallback(ctx, reasonMissingHole, course, source)
		return coursedomain.FallbackHoleInfo(holeNumber)
	case err != nil:
		s.logger.ErrorContext(ctx, "Hole lookup failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("course", course.Name),
			attr.String("loop_id", source.LoopID),
			attr.Int("hole", source.HoleNumber),
			attr.Error(err),
		)
		s.recordFallback(ctx, reasonLookupError, course, source)
		return coursedomain.FallbackHoleInfo(holeNumber)
	}

	return coursedomain.BuildHoleInfo(holeNumber, record, teeColor)
}

func (s *CourseService) recordFallback(ctx context.Context, reason string, course coursedomain.Course, source coursedomain.HoleSource) {
	s.logger.InfoContext(ctx, "Using fallback hole data",
		attr.ExtractCorrelationID(ctx),
		attr.String("reason", reason),
		attr.String("course", course.Name),
		attr.String("loop_id", source.LoopID),
		attr.Int("hole", source.HoleNumber),
	)
	if s.metrics != nil {
		s.metrics.RecordHoleFallback(ctx, reason)
	}
}

// CourseRating returns the rating for the loop, tee and gender, or nil.
func (s *CourseService) CourseRating(ctx context.Context, course coursedomain.Course, loop coursedomain.Loop, teeColor string, gender scoringdomain.Gender) *coursedomain.CourseRating {
	key := coursedomain.RatingKey{
		CourseName: course.Name,
		TeeColor:   strings.ToLower(strings.TrimSpace(teeColor)),
		Gender:     gender,
	}
	if loop.IsCombo() && loop.ComboID != "" {
		key.ComboID = loop.ComboID
	} else {
		key.LoopID = loop.Key()
	}

	rating, err := s.repo.GetCourseRating(ctx, s.idb(), key)
	if err != nil {
		if !errors.Is(err, coursedb.ErrNotFound) {
			s.logger.ErrorContext(ctx, "Course rating lookup failed",
				attr.ExtractCorrelationID(ctx),
				attr.String("course", course.Name),
				attr.String("loop_id", loop.Key()),
				attr.Error(err),
			)
		}
		return nil
	}
	return rating
}

// StrokeIndexTable returns par and stroke indexes for every hole of the loop.
// Combination entries take their par from the backing hole.
func (s *CourseService) StrokeIndexTable(ctx context.Context, course coursedomain.Course, loop coursedomain.Loop) []scoringdomain.StrokeIndexEntry {
	if loop.IsCombo() && loop.ComboID != "" {
		combo, err := s.repo.GetComboStrokeIndex(ctx, s.idb(), loop.ComboID)
		if err != nil {
			s.logger.ErrorContext(ctx, "Combination table lookup failed",
				attr.ExtractCorrelationID(ctx),
				attr.String("combo_id", loop.ComboID),
				attr.Error(err),
			)
			return []scoringdomain.StrokeIndexEntry{}
		}

		table := make([]scoringdomain.StrokeIndexEntry, 0, len(combo))
		for _, c := range combo {
			par := coursedomain.DefaultPar
			source := coursedomain.ResolveHoleSource(loop, combo, c.HoleNumber)
			hole, err := s.repo.GetHole(ctx, s.idb(), coursedomain.HoleKey{
				CourseName: course.Name,
				LoopID:     source.LoopID,
				HoleNumber: source.HoleNumber,
			})
			switch {
			case err == nil && hole.Par > 0:
				par = hole.Par
			case c.Par > 0:
				par = c.Par
			}
			table = append(table, scoringdomain.StrokeIndexEntry{
				HoleNumber:        c.HoleNumber,
				Par:               par,
				StrokeIndexMen:    c.StrokeIndexMen,
				StrokeIndexLadies: c.StrokeIndexLadies,
			})
		}
		return table
	}

	holes, err := s.repo.ListLoopHoles(ctx, s.idb(), course.Name, loop.Key())
	if err != nil {
		s.logger.ErrorContext(ctx, "Loop hole lookup failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("course", course.Name),
			attr.String("loop_id", loop.Key()),
			attr.Error(err),
		)
		return []scoringdomain.StrokeIndexEntry{}
	}

	table := make([]scoringdomain.StrokeIndexEntry, 0, len(holes))
	for _, h := range holes {
		par := h.Par
		if par <= 0 {
			par = coursedomain.DefaultPar
		}
		table = append(table, scoringdomain.StrokeIndexEntry{
			HoleNumber:        h.HoleNumber,
			Par:               par,
			StrokeIndexMen:    h.StrokeIndexMen,
			StrokeIndexLadies: h.StrokeIndexLadies,
		})
	}
	return table
}

func (s *CourseService) idb() bun.IDB {
	if s.db == nil {
		return nil
	}
	return s.db
}
