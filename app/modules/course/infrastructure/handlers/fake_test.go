package coursehandlers

import (
	"context"

	courseservice "github.com/Black-And-White-Club/golf-stats/app/modules/course/application"
	coursedomain "github.com/Black-And-White-Club/golf-stats/app/modules/course/domain"
	scoringdomain "github.com/Black-And-White-Club/golf-stats/app/modules/scoring/domain"
)

// FakeService is a programmable fake for courseservice.Service.
type FakeService struct {
	trace []string

	GetCourseFunc        func(ctx context.Context, courseID string) (*coursedomain.Course, error)
	SearchCoursesFunc    func(ctx context.Context, query string) ([]coursedomain.CourseSummary, error)
	ListCoursesNearFunc  func(ctx context.Context, origin coursedomain.Coordinate) ([]coursedomain.CourseSummary, error)
	AvailableTeesFunc    func(ctx context.Context, courseID, loopID string) ([]string, error)
	ResolveHoleFunc      func(ctx context.Context, course coursedomain.Course, loop coursedomain.Loop, teeColor string, holeNumber int) coursedomain.HoleInfo
	CourseRatingFunc     func(ctx context.Context, course coursedomain.Course, loop coursedomain.Loop, teeColor string, gender scoringdomain.Gender) *coursedomain.CourseRating
	StrokeIndexTableFunc func(ctx context.Context, course coursedomain.Course, loop coursedomain.Loop) []scoringdomain.StrokeIndexEntry
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeService) GetCourse(ctx context.Context, courseID string) (*coursedomain.Course, error) {
	f.record("GetCourse")
	if f.GetCourseFunc != nil {
		return f.GetCourseFunc(ctx, courseID)
	}
	return nil, courseservice.ErrCourseNotFound
}

func (f *FakeService) SearchCourses(ctx context.Context, query string) ([]coursedomain.CourseSummary, error) {
	f.record("SearchCourses")
	if f.SearchCoursesFunc != nil {
		return f.SearchCoursesFunc(ctx, query)
	}
	return []coursedomain.CourseSummary{}, nil
}

func (f *FakeService) ListCoursesNear(ctx context.Context, origin coursedomain.Coordinate) ([]coursedomain.CourseSummary, error) {
	f.record("ListCoursesNear")
	if f.ListCoursesNearFunc != nil {
		return f.ListCoursesNearFunc(ctx, origin)
	}
	return []coursedomain.CourseSummary{}, nil
}

func (f *FakeService) AvailableTees(ctx context.Context, courseID, loopID string) ([]string, error) {
	f.record("AvailableTees")
	if f.AvailableTeesFunc != nil {
		return f.AvailableTeesFunc(ctx, courseID, loopID)
	}
	return []string{}, nil
}

func (f *FakeService) ResolveHole(ctx context.Context, course coursedomain.Course, loop coursedomain.Loop, teeColor string, holeNumber int) coursedomain.HoleInfo {
	f.record("ResolveHole")
	if f.ResolveHoleFunc != nil {
		return f.ResolveHoleFunc(ctx, course, loop, teeColor, holeNumber)
	}
	return coursedomain.FallbackHoleInfo(holeNumber)
}

func (f *FakeService) CourseRating(ctx context.Context, course coursedomain.Course, loop coursedomain.Loop, teeColor string, gender scoringdomain.Gender) *coursedomain.CourseRating {
	f.record("CourseRating")
	if f.CourseRatingFunc != nil {
		return f.CourseRatingFunc(ctx, course, loop, teeColor, gender)
	}
	return nil
}

func (f *FakeService) StrokeIndexTable(ctx context.Context, course coursedomain.Course, loop coursedomain.Loop) []scoringdomain.StrokeIndexEntry {
	f.record("StrokeIndexTable")
	if f.StrokeIndexTableFunc != nil {
		return f.StrokeIndexTableFunc(ctx, course, loop)
	}
	return []scoringdomain.StrokeIndexEntry{}
}

var _ courseservice.Service = (*FakeService)(nil)
