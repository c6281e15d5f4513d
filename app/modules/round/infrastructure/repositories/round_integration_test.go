//go:build integration

package rounddb_test

import (
	"context"
	"testing"
	"time"

	rounddb "github.com/Black-And-White-Club/golf-stats/app/modules/round/infrastructure/repositories"
	scoringdomain "github.com/Black-And-White-Club/golf-stats/app/modules/scoring/domain"
	"github.com/Black-And-White-Club/golf-stats/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func TestRoundRepositoryIntegration(t *testing.T) {
	pg := testutils.NewPostgres(t)
	ctx := context.Background()
	repo := rounddb.NewRepository(pg.DB)
	gen := testutils.NewTestDataGenerator(5)

	day := time.Date(2026, 6, 14, 15, 0, 0, 0, time.UTC)
	older := gen.GenerateRound("speler-1", 9, day)
	newer := gen.GenerateRound("speler-1", 9, day.Add(24*time.Hour))
	other := gen.GenerateRound("speler-2", 18, day)

	hcp := 12.3
	newer.HandicapIndex = &hcp
	newer.Rating = &scoringdomain.Rating{CourseRating: 35.4, SlopeRating: 128, Par: 36, Holes: 9}

	require.NoError(t, repo.SaveRound(ctx, nil, older))
	require.NoError(t, pg.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return repo.SaveRound(ctx, tx, newer)
	}))
	require.NoError(t, repo.SaveRound(ctx, nil, other))

	t.Run("get round", func(t *testing.T) {
		got, err := repo.GetRound(ctx, nil, newer.ID)
		require.NoError(t, err)
		assert.Equal(t, newer.TotalScore(), got.TotalScore())
		require.Len(t, got.Holes, 9)
		assert.Equal(t, newer.Holes[0].Shots, got.Holes[0].Shots)
		require.NotNil(t, got.Rating)
		assert.Equal(t, 128, got.Rating.SlopeRating)
		require.NotNil(t, got.HandicapIndex)
		assert.Equal(t, 12.3, *got.HandicapIndex)
		assert.Equal(t, newer.Scorecard(), got.Scorecard())
	})

	t.Run("list newest first", func(t *testing.T) {
		rounds, err := repo.ListRounds(ctx, nil, "speler-1")
		require.NoError(t, err)
		require.Len(t, rounds, 2)
		assert.Equal(t, newer.ID, rounds[0].ID)
		assert.Equal(t, older.ID, rounds[1].ID)

		none, err := repo.ListRounds(ctx, nil, "niemand")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("save replaces", func(t *testing.T) {
		edited := older
		edited.TeeColor = "rood"
		require.NoError(t, repo.SaveRound(ctx, nil, edited))
		got, err := repo.GetRound(ctx, nil, older.ID)
		require.NoError(t, err)
		assert.Equal(t, "rood", got.TeeColor)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteRound(ctx, nil, other.ID))
		_, err := repo.GetRound(ctx, nil, other.ID)
		assert.ErrorIs(t, err, rounddb.ErrNotFound)
		assert.ErrorIs(t, repo.DeleteRound(ctx, nil, uuid.New()), rounddb.ErrNotFound)
	})
}
