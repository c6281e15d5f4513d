package rounddb

import (
	"time"

	coursedomain "github.com/Black-And-White-Club/golf-stats/app/modules/course/domain"
	rounddomain "github.com/Black-And-White-Club/golf-stats/app/modules/round/domain"
	scoringdomain "github.com/Black-And-White-Club/golf-stats/app/modules/scoring/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SavedRound is a row of saved_rounds. Hole results are kept as JSONB.
type SavedRound struct {
	bun.BaseModel `bun:"table:saved_rounds,alias:sr"`

	ID            uuid.UUID                `bun:"id,pk,type:uuid"`
	PlayerID      string                   `bun:"player_id,notnull"`
	CourseID      string                   `bun:"course_id"`
	CourseName    string                   `bun:"course_name,notnull"`
	Loop          coursedomain.Loop        `bun:"loop,type:jsonb"`
	TeeColor      string                   `bun:"tee_color"`
	Gender        string                   `bun:"gender"`
	HandicapIndex *float64                 `bun:"handicap_index"`
	Rating        *scoringdomain.Rating    `bun:"rating,type:jsonb"`
	Date          string                   `bun:"date"`
	StartTime     string                   `bun:"start_time"`
	Temperature   *float64                 `bun:"temperature"`
	Holes         []rounddomain.HoleResult `bun:"holes,type:jsonb"`
	TotalScore    int                      `bun:"total_score"`
	HolesPlayed   int                      `bun:"holes_played"`
	CompletedAt   time.Time                `bun:"completed_at,nullzero,notnull,default:current_timestamp"`
	CreatedAt     time.Time                `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// FromDomain builds the row for a round.
func FromDomain(r rounddomain.Round) *SavedRound {
	row := &SavedRound{
		ID:            r.ID,
		PlayerID:      r.PlayerID,
		CourseID:      r.CourseID,
		CourseName:    r.CourseName,
		Loop:          r.Loop,
		TeeColor:      r.TeeColor,
		Gender:        string(r.Gender),
		HandicapIndex: r.HandicapIndex,
		Rating:        r.Rating,
		Date:          r.Date,
		StartTime:     r.StartTime,
		Temperature:   r.Temperature,
		Holes:         r.Holes,
		TotalScore:    r.TotalScore(),
		HolesPlayed:   len(r.Holes),
	}
	if r.CompletedAt != nil {
		row.CompletedAt = r.CompletedAt.UTC()
	}
	if row.Holes == nil {
		row.Holes = []rounddomain.HoleResult{}
	}
	return row
}

// ToDomain converts the row back into a round.
func (s *SavedRound) ToDomain() rounddomain.Round {
	completedAt := s.CompletedAt
	holes := s.Holes
	if holes == nil {
		holes = []rounddomain.HoleResult{}
	}
	return rounddomain.Round{
		ID:            s.ID,
		PlayerID:      s.PlayerID,
		CourseID:      s.CourseID,
		CourseName:    s.CourseName,
		Loop:          s.Loop,
		TeeColor:      s.TeeColor,
		Gender:        scoringdomain.ParseGender(s.Gender),
		HandicapIndex: s.HandicapIndex,
		Rating:        s.Rating,
		Date:          s.Date,
		StartTime:     s.StartTime,
		Temperature:   s.Temperature,
		Holes:         holes,
		CompletedAt:   &completedAt,
	}
}
