package roundmigrations

import (
	"context"
	"fmt"

	rounddb "github.com/Black-And-White-Club/golf-stats/app/modules/round/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating saved_rounds table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.NewCreateTable().Model((*rounddb.SavedRound)(nil)).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create saved_rounds table: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_saved_rounds_player_completed
					ON saved_rounds(player_id, completed_at DESC);
			`); err != nil {
				return fmt.Errorf("failed to create saved_rounds indexes: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping saved_rounds table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			_, err := tx.NewDropTable().Model((*rounddb.SavedRound)(nil)).IfExists().Exec(ctx)
			return err
		})
	})
}
