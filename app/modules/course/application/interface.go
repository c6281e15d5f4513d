package courseservice

import (
	"context"

	coursedomain "github.com/Black-And-White-Club/golf-stats/app/modules/course/domain"
	scoringdomain "github.com/Black-And-White-Club/golf-stats/app/modules/scoring/domain"
)

// Service defines the interface for the CourseService.
type Service interface {
	// GetCourse returns a course by id.
	GetCourse(ctx context.Context, courseID string) (*coursedomain.Course, error)

	// SearchCourses matches name or city. Queries shorter than two characters return nothing.
	SearchCourses(ctx context.Context, query string) ([]coursedomain.CourseSummary, error)

	// ListCoursesNear returns the closest courses to origin.
	ListCoursesNear(ctx context.Context, origin coursedomain.Coordinate) ([]coursedomain.CourseSummary, error)

	// AvailableTees lists the tee colours playable on a loop.
	AvailableTees(ctx context.Context, courseID, loopID string) ([]string, error)

	HoleResolver
}

// HoleResolver is the part of the service a round needs while playing.
// None of its methods fail: missing data resolves to fallbacks.
type HoleResolver interface {
	// ResolveHole returns play data for a hole of loop.
	ResolveHole(ctx context.Context, course coursedomain.Course, loop coursedomain.Loop, teeColor string, holeNumber int) coursedomain.HoleInfo

	// CourseRating returns the rating for the loop, or nil when unknown.
	CourseRating(ctx context.Context, course coursedomain.Course, loop coursedomain.Loop, teeColor string, gender scoringdomain.Gender) *coursedomain.CourseRating

	// StrokeIndexTable returns per-hole par and stroke index for the loop.
	StrokeIndexTable(ctx context.Context, course coursedomain.Course, loop coursedomain.Loop) []scoringdomain.StrokeIndexEntry
}
