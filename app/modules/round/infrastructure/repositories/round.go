package rounddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	rounddomain "github.com/Black-And-White-Club/golf-stats/app/modules/round/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new saved-round repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// SaveRound creates or replaces a saved round.
func (r *Impl) SaveRound(ctx context.Context, db bun.IDB, round rounddomain.Round) error {
	db = r.resolveDB(db)
	q := db.NewInsert().
		Model(FromDomain(round)).
		On("CONFLICT (id) DO UPDATE")
	for _, col := range []string{
		"player_id", "course_id", "course_name", "loop", "tee_color", "gender",
		"handicap_index", "rating", "date", "start_time", "temperature", "holes",
		"total_score", "holes_played", "completed_at",
	} {
		q = q.Set(col + " = EXCLUDED." + col)
	}
	if _, err := q.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save round: %w", err)
	}
	return nil
}

// GetRound retrieves a saved round by id.
func (r *Impl) GetRound(ctx context.Context, db bun.IDB, id uuid.UUID) (*rounddomain.Round, error) {
	db = r.resolveDB(db)
	row := new(SavedRound)
	err := db.NewSelect().
		Model(row).
		Where("sr.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	round := row.ToDomain()
	return &round, nil
}

// ListRounds returns a player's rounds, newest first.
func (r *Impl) ListRounds(ctx context.Context, db bun.IDB, playerID string) ([]rounddomain.Round, error) {
	db = r.resolveDB(db)
	var rows []SavedRound
	err := db.NewSelect().
		Model(&rows).
		Where("sr.player_id = ?", playerID).
		Order("sr.completed_at DESC", "sr.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}

	rounds := make([]rounddomain.Round, 0, len(rows))
	for i := range rows {
		rounds = append(rounds, rows[i].ToDomain())
	}
	return rounds, nil
}

// DeleteRound removes a saved round.
func (r *Impl) DeleteRound(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*SavedRound)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete round: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
