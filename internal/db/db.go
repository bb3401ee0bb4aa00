package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

func (db *DB) Close() {
	db.pool.Close()
}

// RunMigrations creates the settlement history tables.
func (db *DB) RunMigrations(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS settlements (
			id UUID PRIMARY KEY,
			owner_id TEXT,
			total NUMERIC NOT NULL,
			equal_share NUMERIC NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_settlements_owner_created ON settlements(owner_id, created_at DESC);

		CREATE TABLE IF NOT EXISTS settlement_balances (
			settlement_id UUID NOT NULL REFERENCES settlements(id) ON DELETE CASCADE,
			position INT NOT NULL,
			name TEXT NOT NULL,
			amount NUMERIC NOT NULL,
			PRIMARY KEY (settlement_id, position)
		);

		CREATE TABLE IF NOT EXISTS settlement_transactions (
			settlement_id UUID NOT NULL REFERENCES settlements(id) ON DELETE CASCADE,
			position INT NOT NULL,
			payer TEXT NOT NULL,
			receiver TEXT NOT NULL,
			amount NUMERIC NOT NULL,
			PRIMARY KEY (settlement_id, position)
		);
	`)
	return err
}
