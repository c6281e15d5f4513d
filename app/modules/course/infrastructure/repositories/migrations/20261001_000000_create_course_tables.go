package coursemigrations

import (
	"context"
	"fmt"

	coursedb "github.com/Black-And-White-Club/golf-stats/app/modules/course/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating course tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			models := []any{
				(*coursedb.Course)(nil),
				(*coursedb.Hole)(nil),
				(*coursedb.CourseRating)(nil),
				(*coursedb.ComboStrokeIndex)(nil),
			}
			for _, m := range models {
				if _, err := tx.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
					return fmt.Errorf("failed to create table for %T: %w", m, err)
				}
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE UNIQUE INDEX IF NOT EXISTS idx_golf_holes_course_loop_hole
					ON golf_holes(course_id, loop_id, hole_number);
				CREATE INDEX IF NOT EXISTS idx_golf_holes_loop_hole
					ON golf_holes(loop_id, hole_number);
				CREATE INDEX IF NOT EXISTS idx_course_ratings_combo
					ON course_ratings(combo_id, gender, tee_color);
				CREATE INDEX IF NOT EXISTS idx_course_ratings_loop
					ON course_ratings(loop_id, gender, tee_color) WHERE combo_id IS NULL;
				CREATE INDEX IF NOT EXISTS idx_combo_stroke_index_combo
					ON combo_stroke_index(combo_id, hole_number);
				CREATE INDEX IF NOT EXISTS idx_golf_courses_name
					ON golf_courses(lower(name));
			`); err != nil {
				return fmt.Errorf("failed to create course indexes: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping course tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			for _, m := range []any{
				(*coursedb.ComboStrokeIndex)(nil),
				(*coursedb.CourseRating)(nil),
				(*coursedb.Hole)(nil),
				(*coursedb.Course)(nil),
			} {
				if _, err := tx.NewDropTable().Model(m).IfExists().Cascade().Exec(ctx); err != nil {
					return fmt.Errorf("failed to drop table for %T: %w", m, err)
				}
			}
			return nil
		})
	})
}
