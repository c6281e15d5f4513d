package courseservice

import (
	"context"

	coursedomain "github.com/Black-And-White-Club/golf-stats/app/modules/course/domain"
	coursedb "github.com/Black-And-White-Club/golf-stats/app/modules/course/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Course Repo
// ------------------------

type FakeCourseRepo struct {
	trace []string

	GetCourseFunc               func(ctx context.Context, db bun.IDB, courseID string) (*coursedomain.Course, error)
	ListCoursesFunc             func(ctx context.Context, db bun.IDB) ([]coursedomain.Course, error)
	SearchCoursesFunc           func(ctx context.Context, db bun.IDB, query string, limit int) ([]coursedomain.Course, error)
	GetHoleFunc                 func(ctx context.Context, db bun.IDB, key coursedomain.HoleKey) (*coursedomain.HoleRecord, error)
	ListLoopHolesFunc           func(ctx context.Context, db bun.IDB, courseName, loopID string) ([]coursedomain.HoleRecord, error)
	GetCourseRatingFunc         func(ctx context.Context, db bun.IDB, key coursedomain.RatingKey) (*coursedomain.CourseRating, error)
	GetComboStrokeIndexFunc     func(ctx context.Context, db bun.IDB, comboID string) ([]coursedomain.ComboHole, error)
	UpsertCourseFunc            func(ctx context.Context, db bun.IDB, course coursedomain.Course) error
	UpsertHoleFunc              func(ctx context.Context, db bun.IDB, hole coursedomain.HoleRecord) error
	SaveCourseRatingFunc        func(ctx context.Context, db bun.IDB, rating coursedomain.CourseRating) error
	ReplaceComboStrokeIndexFunc func(ctx context.Context, db bun.IDB, comboID string, holes []coursedomain.ComboHole) error
}

func NewFakeCourseRepo() *FakeCourseRepo {
	return &FakeCourseRepo{
		trace: []string{},
	}
}

func (f *FakeCourseRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeCourseRepo) GetCourse(ctx context.Context, db bun.IDB, courseID string) (*coursedomain.Course, error) {
	f.record("GetCourse")
	if f.GetCourseFunc != nil {
		return f.GetCourseFunc(ctx, db, courseID)
	}
	return nil, coursedb.ErrNotFound
}

func (f *FakeCourseRepo) ListCourses(ctx context.Context, db bun.IDB) ([]coursedomain.Course, error) {
	f.record("ListCourses")
	if f.ListCoursesFunc != nil {
		return f.ListCoursesFunc(ctx, db)
	}
	return []coursedomain.Course{}, nil
}

func (f *FakeCourseRepo) SearchCourses(ctx context.Context, db bun.IDB, query string, limit int) ([]coursedomain.Course, error) {
	f.record("SearchCourses")
	if f.SearchCoursesFunc != nil {
		return f.SearchCoursesFunc(ctx, db, query, limit)
	}
	return []coursedomain.Course{}, nil
}

func (f *FakeCourseRepo) GetHole(ctx context.Context, db bun.IDB, key coursedomain.HoleKey) (*coursedomain.HoleRecord, error) {
	f.record("GetHole")
	if f.GetHoleFunc != nil {
		return f.GetHoleFunc(ctx, db, key)
	}
	return nil, coursedb.ErrNotFound
}

func (f *FakeCourseRepo) ListLoopHoles(ctx context.Context, db bun.IDB, courseName, loopID string) ([]coursedomain.HoleRecord, error) {
	f.record("ListLoopHoles")
	if f.ListLoopHolesFunc != nil {
		return f.ListLoopHolesFunc(ctx, db, courseName, loopID)
	}
	return []coursedomain.HoleRecord{}, nil
}

func (f *FakeCourseRepo) GetCourseRating(ctx context.Context, db bun.IDB, key coursedomain.RatingKey) (*coursedomain.CourseRating, error) {
	f.record("GetCourseRating")
	if f.GetCourseRatingFunc != nil {
		return f.GetCourseRatingFunc(ctx, db, key)
	}
	return nil, coursedb.ErrNotFound
}

func (f *FakeCourseRepo) GetComboStrokeIndex(ctx context.Context, db bun.IDB, comboID string) ([]coursedomain.ComboHole, error) {
	f.record("GetComboStrokeIndex")
	if f.GetComboStrokeIndexFunc != nil {
		return f.GetComboStrokeIndexFunc(ctx, db, comboID)
	}
	return []coursedomain.ComboHole{}, nil
}

func (f *FakeCourseRepo) UpsertCourse(ctx context.Context, db bun.IDB, course coursedomain.Course) error {
	f.record("UpsertCourse")
	if f.UpsertCourseFunc != nil {
		return f.UpsertCourseFunc(ctx, db, course)
	}
	return nil
}

func (f *FakeCourseRepo) UpsertHole(ctx context.Context, db bun.IDB, hole coursedomain.HoleRecord) error {
	f.record("UpsertHole")
	if f.UpsertHoleFunc != nil {
		return f.UpsertHoleFunc(ctx, db, hole)
	}
	return nil
}

func (f *FakeCourseRepo) SaveCourseRating(ctx context.Context, db bun.IDB, rating coursedomain.CourseRating) error {
	f.record("SaveCourseRating")
	if f.SaveCourseRatingFunc != nil {
		return f.SaveCourseRatingFunc(ctx, db, rating)
	}
	return nil
}

func (f *FakeCourseRepo) ReplaceComboStrokeIndex(ctx context.Context, db bun.IDB, comboID string, holes []coursedomain.ComboHole) error {
	f.record("ReplaceComboStrokeIndex")
	if f.ReplaceComboStrokeIndexFunc != nil {
		return f.ReplaceComboStrokeIndexFunc(ctx, db, comboID, holes)
	}
	return nil
}

// --- Accessors for assertions ---

func (f *FakeCourseRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ coursedb.Repository = (*FakeCourseRepo)(nil)
