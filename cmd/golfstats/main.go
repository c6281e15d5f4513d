package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/golf-stats/app"
	coursefixtures "github.com/Black-And-White-Club/golf-stats/app/modules/course/infrastructure/fixtures"
	coursedb "github.com/Black-And-White-Club/golf-stats/app/modules/course/infrastructure/repositories"
	"github.com/Black-And-White-Club/golf-stats/app/shared/attr"
	"github.com/Black-And-White-Club/golf-stats/app/shared/observability"
	"github.com/Black-And-White-Club/golf-stats/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "golfstats",
		Usage: "golf round tracker with Stableford scoring",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the configuration file", EnvVars: []string{"CONFIG_PATH"}},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:      "seed",
				Usage:     "load a course fixture file into Postgres",
				ArgsUsage: "<fixture.yaml>",
				Action:    seed,
			},
		},
		DefaultCommand: "serve",
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(c *cli.Context) error {
	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	obs := observability.New(config.ToObsConfig(cfg))

	application, err := app.Initialize(ctx, cfg, obs)
	if err != nil {
		obs.Logger.Error("Failed to initialize application", attr.Error(err))
		return err
	}
	return application.Run(ctx)
}

func seed(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("fixture path is required")
	}

	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if cfg.Postgres.DSN == "" {
		return fmt.Errorf("postgres dsn is not configured")
	}

	fixture, err := coursefixtures.Load(path)
	if err != nil {
		return err
	}

	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(pgdb, pgdialect.New())
	defer db.Close()

	repo := coursedb.NewRepository(db)
	err = db.RunInTx(c.Context, nil, func(ctx context.Context, tx bun.Tx) error {
		return coursefixtures.Seed(ctx, repo, tx, fixture)
	})
	if err != nil {
		return fmt.Errorf("failed to seed courses: %w", err)
	}
	fmt.Printf("Seeded %d courses, %d holes, %d ratings from %s\n",
		len(fixture.Courses), len(fixture.Holes), len(fixture.Ratings), path)
	return nil
}
