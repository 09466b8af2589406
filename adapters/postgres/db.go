package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"trngaudit/adapters/db/migrations"
	"trngaudit/internal"
	"trngaudit/internal/config"
	"trngaudit/internal/errors"
)

// Open connects to the ledger database and applies pending migrations
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *internal.Logger) (*sqlx.DB, error) {
	db, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := migrations.NewMigrator(db, logger).Up(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Connect opens and pings the ledger database without touching the schema.
// Drivers: "postgres" (lib/pq) and "sqlite3" (go-sqlite3).
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, cfg.Driver, cfg.URL)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to ledger database", err)
	}

	if cfg.Driver == "sqlite3" {
		// a single connection keeps ":memory:" databases coherent
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}
	return db, nil
}
