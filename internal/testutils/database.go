package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	coursemigrations "github.com/Black-And-White-Club/golf-stats/app/modules/course/infrastructure/repositories/migrations"
	roundmigrations "github.com/Black-And-White-Club/golf-stats/app/modules/round/infrastructure/repositories/migrations"
)

// appTables are truncated between tests.
var appTables = []string{"golf_courses", "golf_holes", "course_ratings", "combo_stroke_index", "saved_rounds"}

// NewBunDB opens a bun database on dsn.
func NewBunDB(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// RunMigrations applies the River schema and every module migration.
func RunMigrations(ctx context.Context, db *bun.DB, dsn string) error {
	if err := migrate.NewMigrator(db, coursemigrations.Migrations).Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migration tables: %w", err)
	}

	if err := runRiverMigrations(ctx, dsn); err != nil {
		return err
	}

	ordered := []struct {
		name       string
		migrations *migrate.Migrations
	}{
		{"course", coursemigrations.Migrations},
		{"round", roundmigrations.Migrations},
	}
	for _, mod := range ordered {
		if _, err := migrate.NewMigrator(db, mod.migrations).Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", mod.name, err)
		}
	}
	return nil
}

func runRiverMigrations(ctx context.Context, dsn string) error {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool for River migrations: %w", err)
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("failed to create River migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		return fmt.Errorf("failed to run River migrations: %w", err)
	}
	return nil
}

// CleanupDatabase truncates the application tables and the River job table.
func CleanupDatabase(ctx context.Context, db *bun.DB) error {
	query := fmt.Sprintf("TRUNCATE TABLE %s CASCADE", strings.Join(appTables, ", "))
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	if _, err := db.ExecContext(ctx, "DELETE FROM river_job"); err != nil {
		if !strings.Contains(err.Error(), "does not exist") {
			return fmt.Errorf("failed to cleanup river jobs: %w", err)
		}
	}
	return nil
}

// Postgres is a migrated database for one test package.
type Postgres struct {
	DB  *bun.DB
	DSN string
}

// NewPostgres starts a container, migrates it and registers cleanup on t.
func NewPostgres(t *testing.T) *Postgres {
	t.Helper()
	ctx := context.Background()

	container, dsn, err := SetupPostgresContainer(ctx)
	if err != nil {
		t.Fatalf("postgres: %v", err)
	}
	db := NewBunDB(dsn)
	t.Cleanup(func() {
		_ = db.Close()
		_ = container.Terminate(context.Background())
	})

	if err := RunMigrations(ctx, db, dsn); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return &Postgres{DB: db, DSN: dsn}
}

// Reset truncates every table.
func (p *Postgres) Reset(t *testing.T) {
	t.Helper()
	if err := CleanupDatabase(context.Background(), p.DB); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
}
