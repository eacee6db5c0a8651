package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db"
)

func main() {
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load("configs/.env"); err != nil {
			log.Warn().Err(err).Msg("could not load .env file")
		}
	}

	var timeout time.Duration
	root := &cobra.Command{
		Use:          "migrator",
		Short:        "Apply or inspect the trivia schema migrations",
		SilenceUsage: true,
	}
	root.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall migration timeout")

	for _, c := range []struct {
		name, short, done string
	}{
		{db.CommandUp, "Apply all pending migrations", "migrations applied successfully"},
		{db.CommandDown, "Roll back the most recent migration", "migration rolled back successfully"},
		{db.CommandStatus, "Print the migration status", ""},
	} {
		c := c
		root.AddCommand(&cobra.Command{
			Use:   c.name,
			Short: c.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
				defer cancel()
				if err := run(ctx, c.name); err != nil {
					return err
				}
				if c.done != "" {
					log.Info().Msg(c.done)
				}
				return nil
			},
		})
	}

	if err := root.ExecuteContext(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}

func run(ctx context.Context, command string) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	conn, err := db.Open(ctx, cfg.Postgres.DSN())
	if err != nil {
		return err
	}
	defer conn.Close()

	log.Info().
		Str("host", cfg.Postgres.Host).
		Int("port", cfg.Postgres.Port).
		Str("database", cfg.Postgres.Database).
		Msg("connected to database")

	return db.Migrate(ctx, conn, command)
}
