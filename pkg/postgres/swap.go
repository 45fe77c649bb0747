package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lucasmendes/plantao/pkg/db"
)

const swapColumns = `
	id, requester_id, requester_shift_id, target_id, target_shift_id,
	message, status, created_at, resolved_at
`

// statusPending is the one non-terminal swap status
const statusPending = "PENDENTE"

// InsertSwap inserts a new swap request record
func (d *DB) InsertSwap(ctx context.Context, request *db.SwapRequest) error {
	createdAt, err := time.Parse(time.RFC3339, request.CreatedAt)
	if err != nil {
		return fmt.Errorf("invalid created_at timestamp: %w", err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO swap_request
			(id, requester_id, requester_shift_id, target_id, target_shift_id, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, request.ID, request.RequesterID, request.RequesterShiftID,
		request.TargetID, request.TargetShiftID, nullable(request.Message),
		request.Status, createdAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert swap request: %w", err)
	}
	return nil
}

// GetSwap retrieves a single swap request record
func (d *DB) GetSwap(ctx context.Context, id string) (*db.SwapRequest, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+swapColumns+` FROM swap_request WHERE id = $1`, id)

	request, err := scanSwap(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query swap request: %w", err)
	}
	return request, nil
}

// GetSwapsByPerson retrieves swap requests where the person is requester or target
func (d *DB) GetSwapsByPerson(ctx context.Context, personID string) ([]db.SwapRequest, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+swapColumns+`
		FROM swap_request
		WHERE requester_id = $1 OR target_id = $1
		ORDER BY created_at DESC
	`, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to query swap requests: %w", err)
	}
	defer rows.Close()

	var requests []db.SwapRequest
	for rows.Next() {
		request, err := scanSwap(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan swap request: %w", err)
		}
		requests = append(requests, *request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating swap requests: %w", err)
	}

	return requests, nil
}

// HasPendingSwap reports whether a pending request already exists for the
// same shift pair
func (d *DB) HasPendingSwap(ctx context.Context, requesterShiftID, targetShiftID string) (bool, error) {
	var exists bool
	err := d.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM swap_request
			WHERE requester_shift_id = $1 AND target_shift_id = $2 AND status = $3
		)
	`, requesterShiftID, targetShiftID, statusPending).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check for pending swap: %w", err)
	}
	return exists, nil
}

// ResolveSwap moves a pending swap request to a terminal status and stamps
// it. Used for reject and cancel; accept goes through ExchangeOwners. The
// update is guarded on the pending status so a request another writer
// already resolved is never overwritten.
func (d *DB) ResolveSwap(ctx context.Context, id, status, resolvedAt string) error {
	resolved, err := time.Parse(time.RFC3339, resolvedAt)
	if err != nil {
		return fmt.Errorf("invalid resolved_at timestamp: %w", err)
	}

	tag, err := d.pool.Exec(ctx, `
		UPDATE swap_request SET status = $2, resolved_at = $3 WHERE id = $1 AND status = $4
	`, id, status, resolved.UTC(), statusPending)
	if err != nil {
		return fmt.Errorf("failed to resolve swap request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		err := d.pool.QueryRow(ctx, `
			SELECT EXISTS (SELECT 1 FROM swap_request WHERE id = $1)
		`, id).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check swap request: %w", err)
		}
		if !exists {
			return db.ErrNotFound
		}
		return db.ErrSwapNotPending
	}
	return nil
}

func scanSwap(row rowScanner) (*db.SwapRequest, error) {
	var r db.SwapRequest
	var message *string
	var createdAt time.Time
	var resolvedAt *time.Time
	if err := row.Scan(&r.ID, &r.RequesterID, &r.RequesterShiftID, &r.TargetID,
		&r.TargetShiftID, &message, &r.Status, &createdAt, &resolvedAt); err != nil {
		return nil, err
	}
	if message != nil {
		r.Message = *message
	}
	r.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	if resolvedAt != nil {
		r.ResolvedAt = resolvedAt.UTC().Format(time.RFC3339)
	}
	return &r, nil
}
