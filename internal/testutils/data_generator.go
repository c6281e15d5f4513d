package testutils

import (
	"fmt"
	"strings"
	"time"

	coursedomain "github.com/Black-And-White-Club/golf-stats/app/modules/course/domain"
	rounddomain "github.com/Black-And-White-Club/golf-stats/app/modules/round/domain"
	scoringdomain "github.com/Black-And-White-Club/golf-stats/app/modules/scoring/domain"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

var parsByLength = []int{3, 4, 4, 5, 4, 3, 4, 5, 4}

// TestDataGenerator builds reproducible courses and rounds.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a generator with an optional seed.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	s := time.Now().UnixNano()
	if len(seed) > 0 {
		s = seed[0]
	}
	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed the generator was created with.
func (g *TestDataGenerator) Seed() int64 { return g.seed }

// GenerateCourse returns a course with one nine-hole loop per name.
func (g *TestDataGenerator) GenerateCourse(loopNames ...string) coursedomain.Course {
	if len(loopNames) == 0 {
		loopNames = []string{"Oranje"}
	}
	name := "Golfclub " + g.faker.City()
	c := coursedomain.Course{
		ID:        strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		Name:      name,
		City:      g.faker.City(),
		Location:  coursedomain.Coordinate{Lat: g.faker.Float64Range(50.8, 53.4), Lng: g.faker.Float64Range(3.4, 7.1)},
		TeeColors: []string{"wit", "geel", "rood"},
	}
	for _, ln := range loopNames {
		c.Loops = append(c.Loops, coursedomain.Loop{
			ID:    coursedomain.LoopKey(ln),
			Name:  ln,
			Holes: []int{1, 2, 3, 4, 5, 6, 7, 8, 9},
		})
	}
	return c
}

// GenerateHoles returns stored holes for every hole of loop, keyed the way
// the Postgres provider looks them up.
func (g *TestDataGenerator) GenerateHoles(course coursedomain.Course, loop coursedomain.Loop) []coursedomain.HoleRecord {
	loopID := coursedomain.LoopKey(loop.ID)
	out := make([]coursedomain.HoleRecord, 0, len(loop.Holes))
	for i, n := range loop.Holes {
		par := parsByLength[i%len(parsByLength)]
		yellow := g.distanceFor(par)
		out = append(out, coursedomain.HoleRecord{
			CourseID:          coursedomain.HoleCourseID(course.Name, loopID),
			LoopID:            loopID,
			HoleNumber:        n,
			Par:               par,
			StrokeIndexMen:    2*i + 1,
			StrokeIndexLadies: 2*i + 1,
			Distances:         map[string]int{"wit": yellow + 25, "geel": yellow, "rood": yellow - 40},
		})
	}
	return out
}

func (g *TestDataGenerator) distanceFor(par int) int {
	switch par {
	case 3:
		return g.faker.IntRange(110, 190)
	case 5:
		return g.faker.IntRange(430, 520)
	default:
		return g.faker.IntRange(290, 400)
	}
}

// GenerateRating returns a nine-hole men's rating for loop on the yellow tee.
func (g *TestDataGenerator) GenerateRating(course coursedomain.Course, loop coursedomain.Loop) coursedomain.CourseRating {
	loopID := coursedomain.LoopKey(loop.ID)
	return coursedomain.CourseRating{
		CourseID:     coursedomain.HoleCourseID(course.Name, loopID),
		LoopID:       loopID,
		TeeColor:     "geel",
		Gender:       scoringdomain.GenderMen,
		CourseRating: float64(g.faker.IntRange(340, 370)) / 10,
		SlopeRating:  g.faker.IntRange(113, 140),
		Par:          36,
		Holes:        9,
	}
}

// GenerateRound returns a completed round of holes for playerID on a
// course without rating.
func (g *TestDataGenerator) GenerateRound(playerID string, holes int, completedAt time.Time) rounddomain.Round {
	r := rounddomain.Round{
		ID:         uuid.New(),
		PlayerID:   playerID,
		CourseID:   fmt.Sprintf("course-%d", g.faker.IntRange(1, 99)),
		CourseName: "Golfclub " + g.faker.City(),
		Loop:       coursedomain.Loop{ID: "oranje", Name: "Oranje"},
		TeeColor:   "geel",
		Gender:     scoringdomain.GenderMen,
		Date:       completedAt.Format("2006-01-02"),
		StartTime:  completedAt.Add(-4 * time.Hour).Format("15:04"),
		Holes:      []rounddomain.HoleResult{},
	}
	completed := completedAt.UTC()
	r.CompletedAt = &completed

	for n := 1; n <= holes; n++ {
		par := parsByLength[(n-1)%len(parsByLength)]
		putts := g.faker.IntRange(1, 3)
		strokes := par - 2 + g.faker.IntRange(0, 3)
		shots := []rounddomain.Shot{{Number: 1, Club: "Driver", DistancePlayed: g.faker.IntRange(150, 240), Lie: rounddomain.LieFairway}}
		for i := 2; i <= strokes; i++ {
			shots = append(shots, rounddomain.Shot{Number: i, Club: "Ijzer 7", DistancePlayed: g.faker.IntRange(90, 150), Lie: rounddomain.LieFairway})
		}
		shots = append(shots, rounddomain.Shot{Number: len(shots) + 1, Club: rounddomain.ClubPutter, Lie: rounddomain.LieGreen, Putts: putts})

		r.Holes = append(r.Holes, rounddomain.HoleResult{
			HoleNumber:  n,
			Par:         par,
			StrokeIndex: n,
			Shots:       shots,
			Putts:       putts,
			Score:       strokes + putts,
			TotalShots:  strokes + putts,
		})
	}
	return r
}
