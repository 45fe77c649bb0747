package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/lucasmendes/plantao/pkg/db"
)

// insertScheduleRun records a generation run inside the batch transaction
func insertScheduleRun(ctx context.Context, ex execer, run *db.ScheduleRun) error {
	createdAt, err := time.Parse(time.RFC3339, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("invalid created_at timestamp: %w", err)
	}

	_, err = ex.Exec(ctx, `
		INSERT INTO schedule_run (id, domain, start_date, weeks, created_by, created_at)
		VALUES ($1, $2, $3::date, $4, $5, $6)
	`, run.ID, run.Domain, run.StartDate, run.Weeks, nullable(run.CreatedBy), createdAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert schedule run: %w", err)
	}
	return nil
}

// GetScheduleRuns retrieves all schedule run records, newest first
func (d *DB) GetScheduleRuns(ctx context.Context) ([]db.ScheduleRun, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, domain, to_char(start_date, 'YYYY-MM-DD'), weeks, created_by, created_at
		FROM schedule_run
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule runs: %w", err)
	}
	defer rows.Close()

	var runs []db.ScheduleRun
	for rows.Next() {
		var r db.ScheduleRun
		var createdBy *string
		var createdAt time.Time
		if err := rows.Scan(&r.ID, &r.Domain, &r.StartDate, &r.Weeks, &createdBy, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan schedule run: %w", err)
		}
		if createdBy != nil {
			r.CreatedBy = *createdBy
		}
		r.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule runs: %w", err)
	}

	return runs, nil
}
