package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/lucasmendes/plantao/pkg/db"
)

// InsertNotification inserts a new notification record
func (d *DB) InsertNotification(ctx context.Context, notification *db.Notification) error {
	createdAt, err := time.Parse(time.RFC3339, notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("invalid created_at timestamp: %w", err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO notification (id, recipient_id, kind, title, body, swap_id, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, notification.ID, notification.RecipientID, notification.Kind,
		notification.Title, notification.Body, nullable(notification.SwapID),
		notification.Read, createdAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// GetNotificationsByRecipient retrieves a person's notifications, newest first
func (d *DB) GetNotificationsByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]db.Notification, error) {
	query := `
		SELECT id, recipient_id, kind, title, body, swap_id, read, created_at
		FROM notification
		WHERE recipient_id = $1
	`
	if unreadOnly {
		query += ` AND read = FALSE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := d.pool.Query(ctx, query, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []db.Notification
	for rows.Next() {
		var n db.Notification
		var swapID *string
		var createdAt time.Time
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Kind, &n.Title, &n.Body,
			&swapID, &n.Read, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		if swapID != nil {
			n.SwapID = *swapID
		}
		n.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, nil
}

// MarkNotificationRead flags a notification as read
func (d *DB) MarkNotificationRead(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `UPDATE notification SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
