package coursedb

import (
	"context"

	coursedomain "github.com/Black-And-White-Club/golf-stats/app/modules/course/domain"
	"github.com/uptrace/bun"
)

// Repository is the course data provider. Implementations return ErrNotFound
// for missing single rows and empty slices for empty listings.
type Repository interface {
	// GetCourse retrieves a course by id.
	GetCourse(ctx context.Context, db bun.IDB, courseID string) (*coursedomain.Course, error)

	// ListCourses returns every course ordered by name.
	ListCourses(ctx context.Context, db bun.IDB) ([]coursedomain.Course, error)

	// SearchCourses matches name or city case-insensitively.
	SearchCourses(ctx context.Context, db bun.IDB, query string, limit int) ([]coursedomain.Course, error)

	// GetHole retrieves one stored hole of a loop.
	GetHole(ctx context.Context, db bun.IDB, key coursedomain.HoleKey) (*coursedomain.HoleRecord, error)

	// ListLoopHoles returns the stored holes of a loop ordered by hole number.
	ListLoopHoles(ctx context.Context, db bun.IDB, courseName, loopID string) ([]coursedomain.HoleRecord, error)

	// GetCourseRating retrieves the rating for a loop or combination.
	GetCourseRating(ctx context.Context, db bun.IDB, key coursedomain.RatingKey) (*coursedomain.CourseRating, error)

	// GetComboStrokeIndex returns the combination table ordered by hole number.
	GetComboStrokeIndex(ctx context.Context, db bun.IDB, comboID string) ([]coursedomain.ComboHole, error)

	// UpsertCourse creates or replaces a course.
	UpsertCourse(ctx context.Context, db bun.IDB, course coursedomain.Course) error

	// UpsertHole creates or replaces a stored hole.
	UpsertHole(ctx context.Context, db bun.IDB, hole coursedomain.HoleRecord) error

	// SaveCourseRating stores a rating row.
	SaveCourseRating(ctx context.Context, db bun.IDB, rating coursedomain.CourseRating) error

	// ReplaceComboStrokeIndex swaps the combination table of comboID for holes.
	ReplaceComboStrokeIndex(ctx context.Context, db bun.IDB, comboID string, holes []coursedomain.ComboHole) error
}
