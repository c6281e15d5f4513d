package scoringdomain

import (
	"math"
	"strings"
)

// StandardSlope is the slope rating of a course of average difficulty.
const StandardSlope = 113

// MaxStrokeIndex is the highest stroke index a hole can carry. Nine-hole loops
// often keep their 1..18 ranking from the full course.
const MaxStrokeIndex = 18

// Gender selects which stroke index column and rating apply to the player.
type Gender string

const (
	GenderMen    Gender = "men"
	GenderLadies Gender = "ladies"
)

// ParseGender accepts the common spellings and defaults to men.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ladies", "lady", "women", "woman", "female", "f", "w", "vrouw", "dames":
		return GenderLadies
	default:
		return GenderMen
	}
}

// Rating is the course rating data needed to derive a playing handicap.
type Rating struct {
	CourseRating float64 `json:"course_rating"`
	SlopeRating  int     `json:"slope_rating"`
	Par          int     `json:"par"`
	// Holes is 18 for a full-round rating. Any other value is treated as a 9-hole rating.
	Holes int `json:"holes"`
}

// StrokeIndexEntry is one hole's difficulty ranking.
type StrokeIndexEntry struct {
	HoleNumber        int `json:"hole_number"`
	Par               int `json:"par"`
	StrokeIndexMen    int `json:"stroke_index_men"`
	StrokeIndexLadies int `json:"stroke_index_ladies"`
}

// PlayingHandicap converts a handicap index into strokes for the rated course:
// round(hcp * slope / 113 + (courseRating - par)).
// Halves round away from zero. ok is false when either input is missing.
func PlayingHandicap(handicapIndex *float64, rating *Rating) (int, bool) {
	if handicapIndex == nil || rating == nil {
		return 0, false
	}
	raw := *handicapIndex*float64(rating.SlopeRating)/StandardSlope + (rating.CourseRating - float64(rating.Par))
	return int(math.Round(raw)), true
}

// ExtraStrokes returns the handicap strokes received on a hole of the given stroke index.
// 18-hole ratings grant a stroke at SI and SI+18; other ratings at SI, SI+9 and SI+18.
// Negative playing handicaps receive nothing.
func ExtraStrokes(playingHandicap, strokeIndex, ratingHoles int) int {
	thresholds := []int{strokeIndex, strokeIndex + 9, strokeIndex + 18}
	if ratingHoles == 18 {
		thresholds = []int{strokeIndex, strokeIndex + 18}
	}

	extra := 0
	for _, t := range thresholds {
		if playingHandicap >= t {
			extra++
		}
	}
	return extra
}

// PointsForDiff maps par minus net score onto Stableford points, capped at 5.
func PointsForDiff(diff int) int {
	switch {
	case diff >= 3:
		return 5
	case diff == 2:
		return 4
	case diff == 1:
		return 3
	case diff == 0:
		return 2
	case diff == -1:
		return 1
	default:
		return 0
	}
}

// StablefordForHole returns the points for one hole, or ok=false when the hole
// cannot be scored: missing rating or handicap, a stroke index outside 1..18,
// or a gross score below 1.
func StablefordForHole(grossScore, par, strokeIndex int, rating *Rating, handicapIndex *float64) (int, bool) {
	ph, ok := PlayingHandicap(handicapIndex, rating)
	if !ok {
		return 0, false
	}
	if grossScore < 1 || strokeIndex < 1 || strokeIndex > MaxStrokeIndex {
		return 0, false
	}

	net := grossScore - ExtraStrokes(ph, strokeIndex, rating.Holes)
	return PointsForDiff(par - net), true
}

// StrokeIndex looks up the stroke index of holeNumber for the given gender.
// It returns 0 when the hole is not in the table.
func StrokeIndex(table []StrokeIndexEntry, holeNumber int, gender Gender) int {
	for _, e := range table {
		if e.HoleNumber != holeNumber {
			continue
		}
		if gender == GenderLadies {
			return e.StrokeIndexLadies
		}
		return e.StrokeIndexMen
	}
	return 0
}
