package coursefixtures

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	coursedomain "github.com/Black-And-White-Club/golf-stats/app/modules/course/domain"
	coursedb "github.com/Black-And-White-Club/golf-stats/app/modules/course/infrastructure/repositories"
	scoringdomain "github.com/Black-And-White-Club/golf-stats/app/modules/scoring/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := LoadProvider(filepath.Join("testdata", "courses.yaml"))
	require.NoError(t, err)
	return p
}

func TestLoadProvider(t *testing.T) {
	p := loadTestProvider(t)
	ctx := context.Background()

	course, err := p.GetCourse(ctx, nil, "de-haar")
	require.NoError(t, err)
	assert.Equal(t, "Golfbaan De Haar", course.Name)
	require.Len(t, course.Loops, 3)

	combo, ok := course.Loop("oranje-blauw")
	require.True(t, ok)
	assert.True(t, combo.IsCombo())
	assert.Equal(t, "haar-ob", combo.ComboID)
	assert.Len(t, combo.Holes, 18)

	_, err = p.GetCourse(ctx, nil, "nope")
	assert.ErrorIs(t, err, coursedb.ErrNotFound)
}

func TestLoadErrors(t *testing.T) {
	_, err := LoadProvider(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read course fixture")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("courses: {"), 0o600))
	_, err = LoadProvider(bad)
	assert.ErrorContains(t, err, "unmarshal course fixture")
}

func TestProviderSearch(t *testing.T) {
	p := loadTestProvider(t)
	ctx := context.Background()

	byCity, err := p.SearchCourses(ctx, nil, "zandv", 20)
	require.NoError(t, err)
	require.Len(t, byCity, 1)
	assert.Equal(t, "kennemer", byCity[0].ID)

	byName, err := p.SearchCourses(ctx, nil, "HAAR", 20)
	require.NoError(t, err)
	require.Len(t, byName, 1)

	all, err := p.ListCourses(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "Golfbaan De Haar", all[0].Name)
	assert.Equal(t, "Kennemer Golf", all[1].Name)

	limited, err := p.SearchCourses(ctx, nil, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestProviderHoles(t *testing.T) {
	p := loadTestProvider(t)
	ctx := context.Background()

	hole, err := p.GetHole(ctx, nil, coursedomain.HoleKey{CourseName: "Golfbaan De Haar", LoopID: "Oranje", HoleNumber: 1})
	require.NoError(t, err)
	assert.Equal(t, 4, hole.Par)
	assert.Equal(t, 331, hole.Distances["geel"])
	require.NotNil(t, hole.Green.Center)
	assert.Equal(t, 52.1221, hole.Green.Center.Lat)
	assert.Nil(t, hole.Green.Left)

	// Rows of another registered course never match on the first word.
	_, err = p.GetHole(ctx, nil, coursedomain.HoleKey{CourseName: "Golfbaan Haarzuilens", LoopID: "blauw", HoleNumber: 2})
	assert.ErrorIs(t, err, coursedb.ErrNotFound)

	_, err = p.GetHole(ctx, nil, coursedomain.HoleKey{CourseName: "Kennemer Golf", LoopID: "a", HoleNumber: 1})
	assert.ErrorIs(t, err, coursedb.ErrNotFound)

	holes, err := p.ListLoopHoles(ctx, nil, "Golfbaan De Haar", "blauw")
	require.NoError(t, err)
	require.Len(t, holes, 9)
	for i, h := range holes {
		assert.Equal(t, i+1, h.HoleNumber)
		assert.Equal(t, 2*(i+1), h.StrokeIndexMen)
	}
}

func TestProviderRatings(t *testing.T) {
	p := loadTestProvider(t)
	ctx := context.Background()

	loop, err := p.GetCourseRating(ctx, nil, coursedomain.RatingKey{
		CourseName: "Golfbaan De Haar", LoopID: "oranje", TeeColor: "Geel", Gender: scoringdomain.GenderLadies,
	})
	require.NoError(t, err)
	assert.Equal(t, 36.9, loop.CourseRating)
	assert.Equal(t, 9, loop.Holes)

	combo, err := p.GetCourseRating(ctx, nil, coursedomain.RatingKey{
		ComboID: "haar-ob", TeeColor: "geel", Gender: scoringdomain.GenderMen,
	})
	require.NoError(t, err)
	assert.Equal(t, 18, combo.Holes)

	_, err = p.GetCourseRating(ctx, nil, coursedomain.RatingKey{
		ComboID: "haar-ob", TeeColor: "rood", Gender: scoringdomain.GenderMen,
	})
	assert.ErrorIs(t, err, coursedb.ErrNotFound)

	table, err := p.GetComboStrokeIndex(ctx, nil, "haar-ob")
	require.NoError(t, err)
	require.Len(t, table, 18)
	assert.Equal(t, "Blauw", table[12].SourceLoop)
}

func TestProviderCoursesSharingFirstWord(t *testing.T) {
	ctx := context.Background()
	p := NewProvider(&Fixture{
		Courses: []coursedomain.Course{
			{ID: "de-haar", Name: "Golfbaan De Haar"},
			{ID: "zeewolde", Name: "Golfbaan Zeewolde"},
			{ID: "utrecht", Name: "Golfbaan Utrecht"},
		},
		Holes: []coursedomain.HoleRecord{
			{CourseID: "golfbaan-de-haar-oranje", LoopID: "oranje", HoleNumber: 1, Par: 4, StrokeIndexMen: 1},
			{CourseID: "golfbaan-de-haar-oranje", LoopID: "oranje", HoleNumber: 2, Par: 3, StrokeIndexMen: 9},
			{CourseID: "golfbaan-zeewolde-oranje", LoopID: "oranje", HoleNumber: 1, Par: 4, StrokeIndexMen: 17},
			{CourseID: "golfbaan-utrecht-oud-oranje", LoopID: "oranje", HoleNumber: 1, Par: 5, StrokeIndexMen: 5},
		},
		Ratings: []coursedomain.CourseRating{
			{CourseID: "golfbaan-de-haar-oranje", LoopID: "oranje", TeeColor: "geel", Gender: scoringdomain.GenderMen,
				CourseRating: 70, SlopeRating: 140, Par: 36, Holes: 9},
			{CourseID: "golfbaan-utrecht-oud-oranje", LoopID: "oranje", TeeColor: "geel", Gender: scoringdomain.GenderMen,
				CourseRating: 35, SlopeRating: 120, Par: 36, Holes: 9},
		},
	})

	zee, err := p.ListLoopHoles(ctx, nil, "Golfbaan Zeewolde", "oranje")
	require.NoError(t, err)
	require.Len(t, zee, 1)
	assert.Equal(t, 17, zee[0].StrokeIndexMen)

	haar, err := p.ListLoopHoles(ctx, nil, "Golfbaan De Haar", "oranje")
	require.NoError(t, err)
	require.Len(t, haar, 2)
	assert.Equal(t, 1, haar[0].StrokeIndexMen)

	_, err = p.GetHole(ctx, nil, coursedomain.HoleKey{CourseName: "Golfbaan Zeewolde", LoopID: "oranje", HoleNumber: 2})
	assert.ErrorIs(t, err, coursedb.ErrNotFound)

	_, err = p.GetCourseRating(ctx, nil, coursedomain.RatingKey{
		CourseName: "Golfbaan Zeewolde", LoopID: "oranje", TeeColor: "geel", Gender: scoringdomain.GenderMen,
	})
	assert.ErrorIs(t, err, coursedb.ErrNotFound)

	// Rows under an id no registered course owns still match on the first word.
	utrecht, err := p.GetCourseRating(ctx, nil, coursedomain.RatingKey{
		CourseName: "Golfbaan Utrecht", LoopID: "oranje", TeeColor: "geel", Gender: scoringdomain.GenderMen,
	})
	require.NoError(t, err)
	assert.Equal(t, 120, utrecht.SlopeRating)

	utrechtHoles, err := p.ListLoopHoles(ctx, nil, "Golfbaan Utrecht", "oranje")
	require.NoError(t, err)
	require.Len(t, utrechtHoles, 1)
	assert.Equal(t, 5, utrechtHoles[0].Par)
}

func TestSeed(t *testing.T) {
	f, err := Load(filepath.Join("testdata", "courses.yaml"))
	require.NoError(t, err)

	target := NewProvider(nil)
	require.NoError(t, Seed(context.Background(), target, nil, f))

	courses, err := target.ListCourses(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, courses, 2)

	table, err := target.GetComboStrokeIndex(context.Background(), nil, "haar-ob")
	require.NoError(t, err)
	assert.Len(t, table, 18)

	holes, err := target.ListLoopHoles(context.Background(), nil, "Golfbaan De Haar", "oranje")
	require.NoError(t, err)
	assert.Len(t, holes, 9)
}
