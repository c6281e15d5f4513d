package coursedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	coursedomain "github.com/Black-And-White-Club/golf-stats/app/modules/course/domain"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new course repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// GetCourse retrieves a course by id.
func (r *Impl) GetCourse(ctx context.Context, db bun.IDB, courseID string) (*coursedomain.Course, error) {
	db = r.resolveDB(db)
	row := new(Course)
	err := db.NewSelect().
		Model(row).
		Where("gc.id = ?", courseID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	course := row.ToDomain()
	return &course, nil
}

// ListCourses returns every course ordered by name.
func (r *Impl) ListCourses(ctx context.Context, db bun.IDB) ([]coursedomain.Course, error) {
	db = r.resolveDB(db)
	var rows []Course
	if err := db.NewSelect().Model(&rows).Order("gc.name ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return coursesToDomain(rows), nil
}

// SearchCourses matches name or city case-insensitively.
func (r *Impl) SearchCourses(ctx context.Context, db bun.IDB, query string, limit int) ([]coursedomain.Course, error) {
	db = r.resolveDB(db)
	pattern := containsPattern(strings.TrimSpace(query))

	var rows []Course
	err := db.NewSelect().
		Model(&rows).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("gc.name ILIKE ?", pattern).WhereOr("gc.city ILIKE ?", pattern)
		}).
		Order("gc.name ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search courses: %w", err)
	}
	return coursesToDomain(rows), nil
}

// otherCourseSlug is CourseSlug of golf_courses row "other" in SQL.
const otherCourseSlug = `regexp_replace(lower(btrim(other.name)), '\s+', '-', 'g')`

// excludeOtherCourses drops rows whose course id column carries the slug of a
// registered course other than courseName. See coursedomain.OwnedByOtherCourse.
func excludeOtherCourses(q *bun.SelectQuery, column, courseName string) *bun.SelectQuery {
	own := coursedomain.CourseSlug(courseName)
	return q.Where(
		"(starts_with(lower("+column+"), ?) OR NOT EXISTS ("+
			"SELECT 1 FROM golf_courses AS other WHERE "+otherCourseSlug+" <> ? AND "+
			"(lower("+column+") = "+otherCourseSlug+" OR starts_with(lower("+column+"), "+otherCourseSlug+" || '-'))))",
		own, own,
	)
}

// GetHole retrieves one stored hole. It tries the loop-specific course id first
// and then any course id containing the first word of the course name that no
// other course owns.
func (r *Impl) GetHole(ctx context.Context, db bun.IDB, key coursedomain.HoleKey) (*coursedomain.HoleRecord, error) {
	db = r.resolveDB(db)
	loopID := coursedomain.LoopKey(key.LoopID)

	row := new(Hole)
	err := db.NewSelect().
		Model(row).
		Where("gh.course_id = ?", coursedomain.HoleCourseID(key.CourseName, loopID)).
		Where("gh.loop_id = ?", loopID).
		Where("gh.hole_number = ?", key.HoleNumber).
		Limit(1).
		Scan(ctx)
	if err == nil {
		hole := row.ToDomain()
		return &hole, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get hole: %w", err)
	}

	stem := coursedomain.CourseNameStem(key.CourseName)
	if stem == "" {
		return nil, ErrNotFound
	}

	row = new(Hole)
	q := db.NewSelect().
		Model(row).
		Where("gh.course_id ILIKE ?", containsPattern(stem)).
		Where("gh.loop_id = ?", loopID).
		Where("gh.hole_number = ?", key.HoleNumber)
	err = excludeOtherCourses(q, "gh.course_id", key.CourseName).
		Order("gh.id ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get hole by course name: %w", err)
	}
	hole := row.ToDomain()
	return &hole, nil
}

// ListLoopHoles returns the stored holes of a loop ordered by hole number.
// Rows under the loop-specific course id win; the course-name fallback is only
// used when there are none, keeping one row per hole number.
func (r *Impl) ListLoopHoles(ctx context.Context, db bun.IDB, courseName, loopID string) ([]coursedomain.HoleRecord, error) {
	db = r.resolveDB(db)
	loopID = coursedomain.LoopKey(loopID)

	var rows []Hole
	err := db.NewSelect().
		Model(&rows).
		Where("gh.course_id = ?", coursedomain.HoleCourseID(courseName, loopID)).
		Where("gh.loop_id = ?", loopID).
		Order("gh.hole_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list loop holes: %w", err)
	}

	if stem := coursedomain.CourseNameStem(courseName); len(rows) == 0 && stem != "" {
		q := db.NewSelect().
			Model(&rows).
			Where("gh.course_id ILIKE ?", containsPattern(stem)).
			Where("gh.loop_id = ?", loopID)
		err = excludeOtherCourses(q, "gh.course_id", courseName).
			Order("gh.hole_number ASC", "gh.id ASC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list loop holes by course name: %w", err)
		}
	}

	out := make([]coursedomain.HoleRecord, 0, len(rows))
	for i := range rows {
		if n := len(out); n > 0 && out[n-1].HoleNumber == rows[i].HoleNumber {
			continue
		}
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// GetCourseRating retrieves the rating for a combination by combo id, or for a
// single loop by course id and loop id with no combo id. A single loop falls
// back to the course-name match used for holes.
func (r *Impl) GetCourseRating(ctx context.Context, db bun.IDB, key coursedomain.RatingKey) (*coursedomain.CourseRating, error) {
	db = r.resolveDB(db)
	tee := strings.ToLower(key.TeeColor)

	if key.ComboID != "" {
		row := new(CourseRating)
		err := db.NewSelect().
			Model(row).
			Where("cr.gender = ?", string(key.Gender)).
			Where("cr.tee_color = ?", tee).
			Where("cr.combo_id = ?", key.ComboID).
			Order("cr.id ASC").
			Limit(1).
			Scan(ctx)
		return scanRating(row, err)
	}

	loopID := coursedomain.LoopKey(key.LoopID)
	row := new(CourseRating)
	err := db.NewSelect().
		Model(row).
		Where("cr.gender = ?", string(key.Gender)).
		Where("cr.tee_color = ?", tee).
		Where("cr.course_id = ?", coursedomain.HoleCourseID(key.CourseName, loopID)).
		Where("cr.loop_id = ?", loopID).
		Where("cr.combo_id IS NULL").
		Order("cr.id ASC").
		Limit(1).
		Scan(ctx)
	if !errors.Is(err, sql.ErrNoRows) {
		return scanRating(row, err)
	}

	stem := coursedomain.CourseNameStem(key.CourseName)
	if stem == "" {
		return nil, ErrNotFound
	}
	row = new(CourseRating)
	q := db.NewSelect().
		Model(row).
		Where("cr.gender = ?", string(key.Gender)).
		Where("cr.tee_color = ?", tee).
		Where("cr.course_id ILIKE ?", containsPattern(stem)).
		Where("cr.loop_id = ?", loopID).
		Where("cr.combo_id IS NULL")
	err = excludeOtherCourses(q, "cr.course_id", key.CourseName).
		Order("cr.id ASC").
		Limit(1).
		Scan(ctx)
	return scanRating(row, err)
}

func scanRating(row *CourseRating, err error) (*coursedomain.CourseRating, error) {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get course rating: %w", err)
	}
	rating := row.ToDomain()
	return &rating, nil
}

// GetComboStrokeIndex returns the combination table ordered by hole number.
func (r *Impl) GetComboStrokeIndex(ctx context.Context, db bun.IDB, comboID string) ([]coursedomain.ComboHole, error) {
	db = r.resolveDB(db)
	var rows []ComboStrokeIndex
	err := db.NewSelect().
		Model(&rows).
		Where("csi.combo_id = ?", comboID).
		Order("csi.hole_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get combo stroke index: %w", err)
	}

	out := make([]coursedomain.ComboHole, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// UpsertCourse creates or replaces a course.
func (r *Impl) UpsertCourse(ctx context.Context, db bun.IDB, course coursedomain.Course) error {
	db = r.resolveDB(db)
	row := CourseFromDomain(course)
	row.UpdatedAt = time.Now()
	_, err := db.NewInsert().
		Model(row).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("city = EXCLUDED.city").
		Set("latitude = EXCLUDED.latitude").
		Set("longitude = EXCLUDED.longitude").
		Set("loops = EXCLUDED.loops").
		Set("tee_colors = EXCLUDED.tee_colors").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert course: %w", err)
	}
	return nil
}

// UpsertHole creates or replaces a stored hole.
func (r *Impl) UpsertHole(ctx context.Context, db bun.IDB, hole coursedomain.HoleRecord) error {
	db = r.resolveDB(db)
	row := HoleFromDomain(hole)
	q := db.NewInsert().
		Model(row).
		On("CONFLICT (course_id, loop_id, hole_number) DO UPDATE")
	for _, col := range []string{
		"par", "stroke_index_men", "stroke_index_ladies", "distances", "hazards",
		"latitude", "longitude", "green_front_lat", "green_front_lng", "green_back_lat", "green_back_lng",
		"green_left_lat", "green_left_lng", "green_right_lat", "green_right_lng",
		"photo_url", "hole_strategy", "strategy_is_ai_generated",
	} {
		q = q.Set(col + " = EXCLUDED." + col)
	}
	if _, err := q.Exec(ctx); err != nil {
		return fmt.Errorf("failed to upsert hole: %w", err)
	}
	return nil
}

// SaveCourseRating stores a rating row.
func (r *Impl) SaveCourseRating(ctx context.Context, db bun.IDB, rating coursedomain.CourseRating) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(RatingFromDomain(rating)).Exec(ctx); err != nil {
		return fmt.Errorf("failed to save course rating: %w", err)
	}
	return nil
}

// ReplaceComboStrokeIndex swaps the combination table of comboID for holes.
func (r *Impl) ReplaceComboStrokeIndex(ctx context.Context, db bun.IDB, comboID string, holes []coursedomain.ComboHole) error {
	db = r.resolveDB(db)
	if _, err := db.NewDelete().
		Model((*ComboStrokeIndex)(nil)).
		Where("combo_id = ?", comboID).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear combo stroke index: %w", err)
	}
	if len(holes) == 0 {
		return nil
	}

	rows := make([]*ComboStrokeIndex, 0, len(holes))
	for _, h := range holes {
		h.ComboID = comboID
		rows = append(rows, ComboFromDomain(h))
	}
	if _, err := db.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert combo stroke index: %w", err)
	}
	return nil
}

func coursesToDomain(rows []Course) []coursedomain.Course {
	out := make([]coursedomain.Course, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out
}
