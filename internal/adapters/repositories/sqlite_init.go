package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var sqliteSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS runs (
		run_id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		metric TEXT NOT NULL,
		city_count INTEGER NOT NULL,
		pop_size INTEGER NOT NULL,
		mutation_rate REAL NOT NULL,
		elitism INTEGER NOT NULL,
		distance REAL NOT NULL,
		generations INTEGER NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		stop_reason TEXT NOT NULL,
		route TEXT NOT NULL,
		created_at_ms INTEGER NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS distance_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        distance_meters INTEGER NOT NULL,
        duration_seconds INTEGER NOT NULL,
        PRIMARY KEY (origin, destination)
    );
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_runs_created_at
    ON runs(created_at_ms);
	`,
}

var postgresSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS runs (
		run_id BIGSERIAL PRIMARY KEY,
		source TEXT NOT NULL,
		metric TEXT NOT NULL,
		city_count INTEGER NOT NULL,
		pop_size INTEGER NOT NULL,
		mutation_rate DOUBLE PRECISION NOT NULL,
		elitism INTEGER NOT NULL,
		distance DOUBLE PRECISION NOT NULL,
		generations INTEGER NOT NULL,
		elapsed_ms BIGINT NOT NULL,
		stop_reason TEXT NOT NULL,
		route TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS distance_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        distance_meters INTEGER NOT NULL,
        duration_seconds INTEGER NOT NULL,
        PRIMARY KEY (origin, destination)
    );
	`,
	`
	CREATE TABLE IF NOT EXISTS cities (
		dataset TEXT NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (dataset, position)
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_runs_created_at
    ON runs(created_at);
	`,
}

// Initialize the SQLite database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if err := execSchema(ctx, db, sqliteSchema); err != nil {
		return fmt.Errorf("init sqlite schema: %w", err)
	}
	return nil
}

// Initialize the postgres database schema.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	if err := execSchema(ctx, db, postgresSchema); err != nil {
		return fmt.Errorf("init postgres schema: %w", err)
	}
	return nil
}

func execSchema(ctx context.Context, db *sql.DB, statements []string) error {
	if db == nil {
		return errors.New("DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}
