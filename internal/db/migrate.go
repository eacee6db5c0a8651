package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/gokatarajesh/trivia-api/db/migrations"
)

// Migration commands understood by Migrate.
const (
	CommandUp     = "up"
	CommandDown   = "down"
	CommandStatus = "status"
)

// Open returns a database/sql handle over the pgx driver, as goose requires.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return conn, nil
}

// Migrate runs a goose command against the embedded migrations.
func Migrate(ctx context.Context, conn *sql.DB, command string) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetTableName("goose_db_version")
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case CommandUp:
		return goose.UpContext(ctx, conn, ".")
	case CommandDown:
		return goose.DownContext(ctx, conn, ".")
	case CommandStatus:
		return goose.StatusContext(ctx, conn, ".")
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
}
