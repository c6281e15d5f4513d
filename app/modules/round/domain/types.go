package rounddomain

import (
	"strings"
	"time"

	coursedomain "github.com/Black-And-White-Club/golf-stats/app/modules/course/domain"
	scoringdomain "github.com/Black-And-White-Club/golf-stats/app/modules/scoring/domain"
	"github.com/google/uuid"
)

// Lie is where the ball lay before a shot.
type Lie string

const (
	LieFairway Lie = "fairway"
	LieRough   Lie = "rough"
	LieBunker  Lie = "bunker"
	LieFringe  Lie = "fringe"
	LieGreen   Lie = "green"
	LiePenalty Lie = "penalty"
)

// ParseLie validates a lie name.
func ParseLie(s string) (Lie, bool) {
	switch l := Lie(strings.ToLower(strings.TrimSpace(s))); l {
	case LieFairway, LieRough, LieBunker, LieFringe, LieGreen, LiePenalty:
		return l, true
	default:
		return "", false
	}
}

const (
	// ClubPutter records putts instead of a played distance.
	ClubPutter = "Putter"
	// ClubPenalty records penalty strokes.
	ClubPenalty = "Strafslag"
)

// AllClubs is the bag in display order.
var AllClubs = []string{
	"Driver", "Houten 3", "Houten 5", "Houten 7",
	"Hybride 3", "Hybride 4",
	"Ijzer 1", "Ijzer 2", "Ijzer 3", "Ijzer 4", "Ijzer 5",
	"Ijzer 6", "Ijzer 7", "Ijzer 8", "Ijzer 9",
	"PW", "GW", "SW", "AW", "LW", ClubPutter,
}

// IsPutter reports whether club is the putter.
func IsPutter(club string) bool {
	return strings.EqualFold(strings.TrimSpace(club), ClubPutter)
}

// IsPenalty reports whether club is the penalty pseudo-club.
func IsPenalty(club string) bool {
	c := strings.TrimSpace(club)
	return strings.EqualFold(c, ClubPenalty) || strings.EqualFold(c, "Penalty")
}

// Shot is one entry of a hole's ledger. Putter entries carry Putts and
// penalty entries carry PenaltyStrokes; neither moves the ball.
type Shot struct {
	Number          int    `json:"shot_number"`
	Club            string `json:"club"`
	DistanceToGreen int    `json:"distance_to_green"`
	DistancePlayed  int    `json:"distance_played"`
	Lie             Lie    `json:"lie"`
	Putts           int    `json:"putts,omitempty"`
	PenaltyStrokes  int    `json:"penalty_strokes,omitempty"`
}

// IsPutt reports whether the shot is a putter entry.
func (s Shot) IsPutt() bool { return IsPutter(s.Club) }

// IsPenalty reports whether the shot is a penalty entry.
func (s Shot) IsPenalty() bool { return IsPenalty(s.Club) }

// LedgerTotals are the automatic counts of a shot ledger.
type LedgerTotals struct {
	StrokesPlayed int
	Putts         int
	Penalties     int
}

// Score is strokes played plus putts plus penalty strokes.
func (t LedgerTotals) Score() int { return t.StrokesPlayed + t.Putts + t.Penalties }

// TallyShots counts a ledger.
func TallyShots(shots []Shot) LedgerTotals {
	var t LedgerTotals
	for _, s := range shots {
		switch {
		case s.IsPutt():
			t.Putts += max(s.Putts, 1)
		case s.IsPenalty():
			t.Penalties += s.PenaltyStrokes
		default:
			t.StrokesPlayed++
		}
	}
	return t
}

// HoleResult is a finished hole.
type HoleResult struct {
	HoleNumber       int    `json:"hole_number"`
	Par              int    `json:"par"`
	StrokeIndex      int    `json:"stroke_index"`
	Shots            []Shot `json:"shots"`
	Putts            int    `json:"putts"`
	Penalties        int    `json:"penalties"`
	Score            int    `json:"score"`
	TotalShots       int    `json:"total_shots"`
	StablefordPoints *int   `json:"stableford_points,omitempty"`
}

// Round is a played round, in progress or saved.
type Round struct {
	ID            uuid.UUID             `json:"id"`
	PlayerID      string                `json:"player_id"`
	CourseID      string                `json:"course_id"`
	CourseName    string                `json:"course_name"`
	Loop          coursedomain.Loop     `json:"loop"`
	TeeColor      string                `json:"tee_color"`
	Gender        scoringdomain.Gender  `json:"gender"`
	HandicapIndex *float64              `json:"handicap_index,omitempty"`
	Rating        *scoringdomain.Rating `json:"rating,omitempty"`
	Date          string                `json:"date"`
	StartTime     string                `json:"start_time"`
	Temperature   *float64              `json:"temperature,omitempty"`
	Holes         []HoleResult          `json:"holes"`
	CompletedAt   *time.Time            `json:"completed_at,omitempty"`
}

// HoleScores converts the finished holes for scorecard building.
func (r Round) HoleScores() []scoringdomain.HoleScore {
	out := make([]scoringdomain.HoleScore, 0, len(r.Holes))
	for _, h := range r.Holes {
		out = append(out, scoringdomain.HoleScore{
			HoleNumber: h.HoleNumber,
			Gross:      h.Score,
			Putts:      h.Putts,
			Penalties:  h.Penalties,
			Shots:      h.TotalShots,
		})
	}
	return out
}

// StrokeIndexes rebuilds the par and stroke index table from the finished holes.
func (r Round) StrokeIndexes() []scoringdomain.StrokeIndexEntry {
	out := make([]scoringdomain.StrokeIndexEntry, 0, len(r.Holes))
	for _, h := range r.Holes {
		e := scoringdomain.StrokeIndexEntry{HoleNumber: h.HoleNumber, Par: h.Par}
		if r.Gender == scoringdomain.GenderLadies {
			e.StrokeIndexLadies = h.StrokeIndex
		} else {
			e.StrokeIndexMen = h.StrokeIndex
		}
		out = append(out, e)
	}
	return out
}

// Scorecard totals the finished holes.
func (r Round) Scorecard() scoringdomain.Scorecard {
	return scoringdomain.BuildScorecard(r.HoleScores(), scoringdomain.ScorecardInput{
		StrokeIndexes: r.StrokeIndexes(),
		Rating:        r.Rating,
		HandicapIndex: r.HandicapIndex,
		Gender:        r.Gender,
	})
}

// TotalScore sums the hole scores.
func (r Round) TotalScore() int {
	total := 0
	for _, h := range r.Holes {
		total += h.Score
	}
	return total
}
