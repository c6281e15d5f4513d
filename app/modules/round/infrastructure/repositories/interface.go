package rounddb

import (
	"context"

	rounddomain "github.com/Black-And-White-Club/golf-stats/app/modules/round/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository stores completed rounds.
type Repository interface {
	// SaveRound creates or replaces a saved round.
	SaveRound(ctx context.Context, db bun.IDB, round rounddomain.Round) error

	// GetRound retrieves a saved round by id.
	GetRound(ctx context.Context, db bun.IDB, id uuid.UUID) (*rounddomain.Round, error)

	// ListRounds returns a player's rounds, newest first.
	ListRounds(ctx context.Context, db bun.IDB, playerID string) ([]rounddomain.Round, error)

	// DeleteRound removes a saved round. Missing rounds return ErrNotFound.
	DeleteRound(ctx context.Context, db bun.IDB, id uuid.UUID) error
}
