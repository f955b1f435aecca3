package db

import (
	"context"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS reports (
		id BIGSERIAL PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		type TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		image_url TEXT,
		sent BOOLEAN NOT NULL DEFAULT FALSE,
		is_visible BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reports_visible_created
		ON reports (is_visible, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS counters (
		id INT PRIMARY KEY,
		total INT NOT NULL DEFAULT 0 CHECK (total >= 0),
		resolved INT NOT NULL DEFAULT 0 CHECK (resolved >= 0)
	)`,
	// the aggregate record is a single row with id 1
	`INSERT INTO counters (id, total, resolved) VALUES (1, 0, 0)
		ON CONFLICT (id) DO NOTHING`,
}

// Migrate creates the schema and seeds the singleton counters row.
// Statements are idempotent so running at every startup is safe.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
