package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"picturebooks/internal/config"
	"picturebooks/internal/logger"
	"picturebooks/internal/platform/postgres"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	config.LoadEnvFiles()
	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	if err := newRootCmd(cfg, log).Execute(); err != nil {
		log.Error().Err(err).Msg("migrate failed")
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, log zerolog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply or inspect picturebooks schema migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	withDB := func(fn func(db *sql.DB, dir string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			pool, err := postgres.Open(cmd.Context(), cfg.DB.DSN, cfg.DB.MaxConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			db := stdlib.OpenDBFromPool(pool)
			defer db.Close()

			fsys, dir := migrationSource()
			goose.SetBaseFS(fsys)
			if err := goose.SetDialect("postgres"); err != nil {
				return err
			}
			return fn(db, dir)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: withDB(func(db *sql.DB, dir string) error {
				if err := goose.Up(db, dir); err != nil {
					return fmt.Errorf("apply migrations: %w", err)
				}
				log.Info().Msg("migrations applied successfully")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			RunE: withDB(func(db *sql.DB, dir string) error {
				if err := goose.Down(db, dir); err != nil {
					return fmt.Errorf("roll back migration: %w", err)
				}
				log.Info().Msg("migration rolled back successfully")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print migration status",
			RunE: withDB(func(db *sql.DB, dir string) error {
				return goose.Status(db, dir)
			}),
		},
		&cobra.Command{
			Use:   "create NAME",
			Short: "Create a new SQL migration in MIGRATIONS_DIR (default db/migrations)",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				dir := cfg.MigrationsDir
				if dir == "" {
					dir = "db/migrations"
				}
				if err := goose.Create(nil, dir, args[0], "sql"); err != nil {
					return fmt.Errorf("create migration: %w", err)
				}
				log.Info().Str("name", args[0]).Msg("migration created")
				return nil
			},
		},
	)
	root.SetContext(context.Background())
	return root
}
