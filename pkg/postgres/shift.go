package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lucasmendes/plantao/pkg/db"
)

const shiftColumns = `
	id, person_id, partner_id, to_char(shift_date, 'YYYY-MM-DD'), weekday,
	slot_type, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), notes
`

// InsertGeneration writes a generation batch and its schedule-run record in
// a single transaction. Any unique-(shift_date, slot_type) violation rolls
// back the whole run, run record included.
func (d *DB) InsertGeneration(ctx context.Context, assignments []db.ShiftAssignment, run *db.ScheduleRun) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range assignments {
		if err := insertAssignment(ctx, tx, &a); err != nil {
			return err
		}
	}

	if err := insertScheduleRun(ctx, tx, run); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// InsertAssignment inserts a single shift assignment record
func (d *DB) InsertAssignment(ctx context.Context, assignment *db.ShiftAssignment) error {
	return insertAssignment(ctx, d.pool, assignment)
}

// execer covers both pool and transaction execution
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertAssignment(ctx context.Context, ex execer, assignment *db.ShiftAssignment) error {
	_, err := ex.Exec(ctx, `
		INSERT INTO shift_assignment
			(id, person_id, partner_id, shift_date, weekday, slot_type, start_time, end_time, notes)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7::time, $8::time, $9)
	`, assignment.ID, assignment.PersonID, nullable(assignment.PartnerID),
		assignment.ShiftDate, assignment.Weekday, assignment.SlotType,
		assignment.StartTime, assignment.EndTime, nullable(assignment.Notes))
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s %s", db.ErrDuplicateSlot, assignment.ShiftDate, assignment.SlotType)
	}
	if err != nil {
		return fmt.Errorf("failed to insert shift assignment: %w", err)
	}
	return nil
}

// GetAssignment retrieves a single shift assignment record
func (d *DB) GetAssignment(ctx context.Context, id string) (*db.ShiftAssignment, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shift_assignment WHERE id = $1`, id)

	a, err := scanAssignment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query shift assignment: %w", err)
	}
	return a, nil
}

// DeleteAssignment removes a shift assignment record
func (d *DB) DeleteAssignment(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM shift_assignment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// QueryAssignments retrieves shift assignments matching the filter, ordered
// by date then start time
func (d *DB) QueryAssignments(ctx context.Context, filter db.ShiftFilter) ([]db.ShiftAssignment, error) {
	query := `SELECT ` + shiftColumns + ` FROM shift_assignment`

	var conditions []string
	var args []any

	addCondition := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.From != "" {
		addCondition("shift_date >= $%d::date", filter.From)
	}
	if filter.To != "" {
		addCondition("shift_date <= $%d::date", filter.To)
	}
	if filter.PersonID != "" {
		addCondition("(person_id = $%[1]d OR partner_id = $%[1]d)", filter.PersonID)
	}
	if filter.Weekday != "" {
		addCondition("weekday = $%d", filter.Weekday)
	}
	if len(filter.SlotTypes) > 0 {
		addCondition("slot_type = ANY($%d)", filter.SlotTypes)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY shift_date, start_time, slot_type"

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.ShiftAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		assignments = append(assignments, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift assignments: %w", err)
	}

	return assignments, nil
}

// ReassignShift moves a single assignment to a new person
func (d *DB) ReassignShift(ctx context.Context, shiftID, newPersonID string) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE shift_assignment SET person_id = $2, updated_at = NOW() WHERE id = $1
	`, shiftID, newPersonID)
	if err != nil {
		return fmt.Errorf("failed to reassign shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// ExchangeOwners commits an accepted swap atomically: it locks the swap
// request and both shift rows, re-validates that the request is still
// pending and that each shift still belongs to the party recorded on it,
// exchanges the two person fields and moves the request to the given
// terminal status. Everything happens in one transaction so a concurrent
// reader never observes a partial exchange.
func (d *DB) ExchangeOwners(ctx context.Context, swapID, status, resolvedAt string) error {
	resolved, err := time.Parse(time.RFC3339, resolvedAt)
	if err != nil {
		return fmt.Errorf("invalid resolved_at timestamp: %w", err)
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var requesterID, requesterShiftID, targetID, targetShiftID, currentStatus string
	err = tx.QueryRow(ctx, `
		SELECT requester_id, requester_shift_id, target_id, target_shift_id, status
		FROM swap_request
		WHERE id = $1
		FOR UPDATE
	`, swapID).Scan(&requesterID, &requesterShiftID, &targetID, &targetShiftID, &currentStatus)
	if errors.Is(err, pgx.ErrNoRows) {
		return db.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock swap request: %w", err)
	}

	// A writer that resolved the request between our read and this lock must
	// not be overwritten; terminal states are final
	if currentStatus != statusPending {
		return db.ErrSwapNotPending
	}

	// Lock both shifts in a fixed order to avoid deadlocking with a
	// concurrent accept touching the same pair
	owners := make(map[string]string, 2)
	rows, err := tx.Query(ctx, `
		SELECT id, person_id
		FROM shift_assignment
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`, []string{requesterShiftID, targetShiftID})
	if err != nil {
		return fmt.Errorf("failed to lock shift assignments: %w", err)
	}
	for rows.Next() {
		var id, personID string
		if err := rows.Scan(&id, &personID); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan shift owner: %w", err)
		}
		owners[id] = personID
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating shift owners: %w", err)
	}

	if len(owners) != 2 {
		return db.ErrNotFound
	}
	if owners[requesterShiftID] != requesterID || owners[targetShiftID] != targetID {
		return db.ErrStaleSwap
	}

	if _, err := tx.Exec(ctx, `
		UPDATE shift_assignment SET person_id = $2, updated_at = NOW() WHERE id = $1
	`, requesterShiftID, targetID); err != nil {
		return fmt.Errorf("failed to reassign requester shift: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		UPDATE shift_assignment SET person_id = $2, updated_at = NOW() WHERE id = $1
	`, targetShiftID, requesterID); err != nil {
		return fmt.Errorf("failed to reassign target shift: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE swap_request SET status = $2, resolved_at = $3 WHERE id = $1
	`, swapID, status, resolved.UTC()); err != nil {
		return fmt.Errorf("failed to resolve swap request: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// rowScanner abstracts pgx.Row and pgx.Rows for scanAssignment
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssignment(row rowScanner) (*db.ShiftAssignment, error) {
	var a db.ShiftAssignment
	var partnerID, notes *string
	if err := row.Scan(&a.ID, &a.PersonID, &partnerID, &a.ShiftDate, &a.Weekday,
		&a.SlotType, &a.StartTime, &a.EndTime, &notes); err != nil {
		return nil, err
	}
	if partnerID != nil {
		a.PartnerID = *partnerID
	}
	if notes != nil {
		a.Notes = *notes
	}
	return &a, nil
}
