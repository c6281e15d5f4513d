package rounddb

import (
	"testing"
	"time"

	rounddomain "github.com/Black-And-White-Club/golf-stats/app/modules/round/domain"
	scoringdomain "github.com/Black-And-White-Club/golf-stats/app/modules/scoring/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDomainDerivesTotals(t *testing.T) {
	completed := time.Date(2026, 6, 14, 14, 5, 0, 0, time.FixedZone("CEST", 2*60*60))
	round := rounddomain.Round{
		ID:          uuid.New(),
		PlayerID:    "p1",
		CourseName:  "De Batouwe",
		Gender:      scoringdomain.GenderLadies,
		Holes:       []rounddomain.HoleResult{{HoleNumber: 1, Score: 5}, {HoleNumber: 2, Score: 4}},
		CompletedAt: &completed,
	}

	row := FromDomain(round)
	assert.Equal(t, 9, row.TotalScore)
	assert.Equal(t, 2, row.HolesPlayed)
	assert.Equal(t, "ladies", row.Gender)
	assert.Equal(t, time.UTC, row.CompletedAt.Location())

	back := row.ToDomain()
	require.NotNil(t, back.CompletedAt)
	assert.True(t, completed.Equal(*back.CompletedAt))
	assert.Equal(t, scoringdomain.GenderLadies, back.Gender)
	assert.Equal(t, round.Holes, back.Holes)
}

func TestToDomainNeverReturnsNilHoles(t *testing.T) {
	row := &SavedRound{ID: uuid.New(), Gender: "men"}
	assert.NotNil(t, row.ToDomain().Holes)
	assert.NotNil(t, FromDomain(rounddomain.Round{}).Holes)
}
