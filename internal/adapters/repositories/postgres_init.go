package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the plan archive schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPlansQuery := `
	CREATE TABLE IF NOT EXISTS trip_plans (
		plan_id UUID PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		start_address TEXT NOT NULL,
		end_address TEXT NOT NULL,
		total_stops INTEGER NOT NULL,
		fits_in_window BOOLEAN NOT NULL,
		notes JSONB NOT NULL DEFAULT '[]'::jsonb,
		csv TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_trip_plans_created_at
	ON trip_plans(created_at);
	`

	statements := []string{
		createPlansQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
