package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/templui/tripjournal/internal/db"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}

	cmd.AddCommand(
		migrateStepCmd("up", "Apply all pending migrations", db.RunMigrations),
		migrateStepCmd("down", "Roll back the most recent migration", db.MigrateDown),
		migrateStepCmd("status", "Show applied and pending migrations", db.MigrationStatus),
	)
	return cmd
}

type migrateFunc func(ctx context.Context, conn *sql.DB) error

func migrateStepCmd(use, short string, run migrateFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			database, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer database.Close()

			err = run(ctx, database.DB)
			if err != nil {
				return fmt.Errorf("migrate %s: %w", use, err)
			}

			fmt.Printf("==> Migrate %s done\n", cases.Title(language.English).String(use))
			return nil
		},
	}
}

// openDB connects using DATABASE_URL from the environment or .env
func openDB(ctx context.Context) (*sqlx.DB, error) {
	_ = godotenv.Load()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	return db.Init(ctx, url, db.PoolConfig{MaxOpenConns: 2})
}
