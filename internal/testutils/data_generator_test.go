package testutils

import (
	"testing"
	"time"

	coursedomain "github.com/Black-And-White-Club/golf-stats/app/modules/course/domain"
	rounddomain "github.com/Black-And-White-Club/golf-stats/app/modules/round/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorIsReproducible(t *testing.T) {
	a := NewTestDataGenerator(42).GenerateCourse("Oranje", "Blauw")
	b := NewTestDataGenerator(42).GenerateCourse("Oranje", "Blauw")
	assert.Equal(t, a, b)
	require.Len(t, a.Loops, 2)
	assert.Equal(t, "blauw", a.Loops[1].ID)
}

func TestGenerateHoles(t *testing.T) {
	g := NewTestDataGenerator(7)
	course := g.GenerateCourse()
	holes := g.GenerateHoles(course, course.Loops[0])

	require.Len(t, holes, 9)
	for _, h := range holes {
		assert.Equal(t, coursedomain.HoleCourseID(course.Name, "oranje"), h.CourseID)
		assert.Greater(t, h.Distances["wit"], h.Distances["geel"])
		assert.Greater(t, h.Distances["geel"], h.Distances["rood"])
		assert.Positive(t, h.Distances["rood"])
	}
	assert.Equal(t, 17, holes[8].StrokeIndexMen)
}

func TestGenerateRoundTallies(t *testing.T) {
	g := NewTestDataGenerator(3)
	r := g.GenerateRound("speler-1", 9, time.Date(2026, 6, 14, 15, 0, 0, 0, time.UTC))

	require.Len(t, r.Holes, 9)
	for _, h := range r.Holes {
		tally := rounddomain.TallyShots(h.Shots)
		assert.Equal(t, h.Score, tally.Score())
		assert.Equal(t, h.Putts, tally.Putts)
	}
	assert.Equal(t, "2026-06-14", r.Date)
	assert.Equal(t, "11:00", r.StartTime)
}
