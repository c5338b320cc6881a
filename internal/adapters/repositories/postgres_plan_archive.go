package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"trip-planner-service/internal/ports"

	"github.com/google/uuid"
)

// Postgres-backed implementation of the PlanArchive port.
type PostgresPlanArchive struct {
	DB  *sql.DB
	now func() time.Time
}

func NewPostgresPlanArchive(db *sql.DB) *PostgresPlanArchive {
	return &PostgresPlanArchive{DB: db, now: time.Now}
}

// NewPlanID returns a fresh archive id.
func NewPlanID() string {
	return uuid.NewString()
}

func (a *PostgresPlanArchive) Save(ctx context.Context, plan ports.ArchivedPlan) error {
	if _, err := uuid.Parse(plan.ID); err != nil {
		return fmt.Errorf("save plan: invalid id %q: %w", plan.ID, err)
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = a.now()
	}

	notes := plan.Notes
	if notes == nil {
		notes = []string{}
	}
	notesJSON, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("save plan %s: encode notes: %w", plan.ID, err)
	}

	query := `
	INSERT INTO trip_plans (
		plan_id,
		created_at,
		start_address,
		end_address,
		total_stops,
		fits_in_window,
		notes,
		csv
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	if _, err := a.DB.ExecContext(ctx, query,
		plan.ID,
		plan.CreatedAt.UTC(),
		plan.StartAddress,
		plan.EndAddress,
		plan.TotalStops,
		plan.FitsInWindow,
		string(notesJSON),
		plan.CSV,
	); err != nil {
		return fmt.Errorf("save plan %s: %w", plan.ID, err)
	}

	return nil
}

func (a *PostgresPlanArchive) Get(ctx context.Context, id string) (ports.ArchivedPlan, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ports.ArchivedPlan{}, ports.ErrPlanNotFound
	}

	query := `
	SELECT plan_id, created_at, start_address, end_address, total_stops, fits_in_window, notes, csv
	FROM trip_plans
	WHERE plan_id = $1;
	`

	var (
		plan      ports.ArchivedPlan
		notesJSON []byte
	)
	err := a.DB.QueryRowContext(ctx, query, id).Scan(
		&plan.ID,
		&plan.CreatedAt,
		&plan.StartAddress,
		&plan.EndAddress,
		&plan.TotalStops,
		&plan.FitsInWindow,
		&notesJSON,
		&plan.CSV,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.ArchivedPlan{}, ports.ErrPlanNotFound
	}
	if err != nil {
		return ports.ArchivedPlan{}, fmt.Errorf("get plan %s: %w", id, err)
	}

	if err := json.Unmarshal(notesJSON, &plan.Notes); err != nil {
		return ports.ArchivedPlan{}, fmt.Errorf("get plan %s: decode notes: %w", id, err)
	}

	return plan, nil
}

// DeleteBefore removes plans created before cutoff and reports how many went.
func (a *PostgresPlanArchive) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := a.DB.ExecContext(ctx, `DELETE FROM trip_plans WHERE created_at < $1;`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete plans before %s: %w", cutoff.Format(time.RFC3339), err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete plans before %s: rows affected: %w", cutoff.Format(time.RFC3339), err)
	}
	return n, nil
}
