//go:build integration

package coursedb_test

import (
	"context"
	"testing"

	coursedomain "github.com/Black-And-White-Club/golf-stats/app/modules/course/domain"
	coursefixtures "github.com/Black-And-White-Club/golf-stats/app/modules/course/infrastructure/fixtures"
	coursedb "github.com/Black-And-White-Club/golf-stats/app/modules/course/infrastructure/repositories"
	scoringdomain "github.com/Black-And-White-Club/golf-stats/app/modules/scoring/domain"
	"github.com/Black-And-White-Club/golf-stats/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseRepositoryIntegration(t *testing.T) {
	pg := testutils.NewPostgres(t)
	ctx := context.Background()
	repo := coursedb.NewRepository(pg.DB)

	fixture, err := coursefixtures.Load("../fixtures/testdata/courses.yaml")
	require.NoError(t, err)
	require.NoError(t, coursefixtures.Seed(ctx, repo, pg.DB, fixture))

	t.Run("course round trip", func(t *testing.T) {
		c, err := repo.GetCourse(ctx, nil, "de-haar")
		require.NoError(t, err)
		assert.Equal(t, "Golfbaan De Haar", c.Name)
		require.Len(t, c.Loops, 3)
		assert.True(t, c.Loops[2].IsFull)

		_, err = repo.GetCourse(ctx, nil, "nope")
		assert.ErrorIs(t, err, coursedb.ErrNotFound)
	})

	t.Run("search by name or city", func(t *testing.T) {
		byName, err := repo.SearchCourses(ctx, nil, "haar", 20)
		require.NoError(t, err)
		require.Len(t, byName, 1)

		byCity, err := repo.SearchCourses(ctx, nil, "ZANDVOORT", 20)
		require.NoError(t, err)
		require.Len(t, byCity, 1)
		assert.Equal(t, "kennemer", byCity[0].ID)
	})

	t.Run("hole lookup falls back to the course name stem", func(t *testing.T) {
		exact, err := repo.GetHole(ctx, nil, coursedomain.HoleKey{CourseName: "Golfbaan De Haar", LoopID: "oranje", HoleNumber: 1})
		require.NoError(t, err)
		assert.Equal(t, 331, exact.Distances["geel"])
		assert.Len(t, exact.Hazards, 1)

		require.NoError(t, repo.UpsertHole(ctx, nil, coursedomain.HoleRecord{
			CourseID: "golfbaan-utrecht-oud-oranje", LoopID: "oranje", HoleNumber: 2, Par: 5,
			StrokeIndexMen: 4, StrokeIndexLadies: 4, Distances: map[string]int{"geel": 470},
		}))
		loose, err := repo.GetHole(ctx, nil, coursedomain.HoleKey{CourseName: "Golfbaan Utrecht", LoopID: "Oranje", HoleNumber: 2})
		require.NoError(t, err)
		assert.Equal(t, 5, loose.Par)

		// Rows stored under another registered course never match loosely.
		_, err = repo.GetHole(ctx, nil, coursedomain.HoleKey{CourseName: "Golfbaan Utrecht", LoopID: "Oranje", HoleNumber: 3})
		assert.ErrorIs(t, err, coursedb.ErrNotFound)

		_, err = repo.GetHole(ctx, nil, coursedomain.HoleKey{CourseName: "Onbekend", LoopID: "oranje", HoleNumber: 1})
		assert.ErrorIs(t, err, coursedb.ErrNotFound)
	})

	t.Run("ratings and combination table", func(t *testing.T) {
		loop, err := repo.GetCourseRating(ctx, nil, coursedomain.RatingKey{
			CourseName: "Golfbaan De Haar", LoopID: "oranje", TeeColor: "Geel", Gender: scoringdomain.GenderLadies,
		})
		require.NoError(t, err)
		assert.Equal(t, 36.9, loop.CourseRating)

		combo, err := repo.GetCourseRating(ctx, nil, coursedomain.RatingKey{
			ComboID: "haar-ob", TeeColor: "geel", Gender: scoringdomain.GenderMen,
		})
		require.NoError(t, err)
		assert.Equal(t, 18, combo.Holes)

		require.NoError(t, repo.UpsertCourse(ctx, nil, coursedomain.Course{
			ID: "zeewolde", Name: "Golfbaan Zeewolde", City: "Zeewolde",
			Loops:     []coursedomain.Loop{{ID: "oranje", Name: "Oranje", Holes: []int{1}}},
			TeeColors: []string{"geel"},
		}))
		require.NoError(t, repo.UpsertHole(ctx, nil, coursedomain.HoleRecord{
			CourseID: "golfbaan-zeewolde-oranje", LoopID: "oranje", HoleNumber: 1, Par: 4,
			StrokeIndexMen: 17, StrokeIndexLadies: 17, Distances: map[string]int{"geel": 300},
		}))
		_, err = repo.GetCourseRating(ctx, nil, coursedomain.RatingKey{
			CourseName: "Golfbaan Zeewolde", LoopID: "oranje", TeeColor: "geel", Gender: scoringdomain.GenderMen,
		})
		assert.ErrorIs(t, err, coursedb.ErrNotFound)
		zeeHoles, err := repo.ListLoopHoles(ctx, nil, "Golfbaan Zeewolde", "oranje")
		require.NoError(t, err)
		require.Len(t, zeeHoles, 1)
		assert.Equal(t, 17, zeeHoles[0].StrokeIndexMen)

		table, err := repo.GetComboStrokeIndex(ctx, nil, "haar-ob")
		require.NoError(t, err)
		require.Len(t, table, 18)
		assert.Equal(t, "Blauw", table[9].SourceLoop)
	})

	t.Run("generated course", func(t *testing.T) {
		gen := testutils.NewTestDataGenerator(11)
		course := gen.GenerateCourse("Rood")
		require.NoError(t, repo.UpsertCourse(ctx, nil, course))
		for _, h := range gen.GenerateHoles(course, course.Loops[0]) {
			require.NoError(t, repo.UpsertHole(ctx, nil, h))
		}

		holes, err := repo.ListLoopHoles(ctx, nil, course.Name, "rood")
		require.NoError(t, err)
		assert.Len(t, holes, 9)
	})
}
