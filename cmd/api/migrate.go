package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"
	"github.com/pressly/goose"
	"github.com/spf13/cobra"

	"github.com/limbo/dayslide/pkg/config"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Apply goose migrations to the Postgres state store",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status"},
	RunE:      runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg := config.New()
	direction := "up"
	if len(args) == 1 {
		direction = args[0]
	}
	dir := cfg.GetStringOr("MIGRATIONS_DIR", "./migrations")

	db, err := sql.Open("postgres", pgConfig(cfg).ConnString()+"?sslmode=disable")
	if err != nil {
		return fmt.Errorf("opening postgres: %w", err)
	}
	defer db.Close()
	if err = db.PingContext(cmd.Context()); err != nil {
		return fmt.Errorf("pinging postgres: %w", err)
	}
	if err = goose.SetDialect("postgres"); err != nil {
		return err
	}

	slog.Info("running migrations", slog.String("direction", direction), slog.String("dir", dir))
	switch direction {
	case "up":
		err = goose.Up(db, dir)
	case "down":
		err = goose.Down(db, dir)
	case "status":
		err = goose.Status(db, dir)
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}
	return nil
}
