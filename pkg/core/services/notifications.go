package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lucasmendes/plantao/pkg/db"
)

// ListNotifications returns a person's in-app notifications, newest first
func ListNotifications(ctx context.Context, store db.NotificationStore, logger *zap.Logger, recipientID string, unreadOnly bool) ([]db.Notification, error) {
	notifications, err := store.GetNotificationsByRecipient(ctx, recipientID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	logger.Debug("Notifications listed",
		zap.String("recipient_id", recipientID),
		zap.Int("count", len(notifications)))

	return notifications, nil
}

// MarkNotificationRead flags one notification as read
func MarkNotificationRead(ctx context.Context, store db.NotificationStore, logger *zap.Logger, notificationID string) error {
	if err := store.MarkNotificationRead(ctx, notificationID); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	logger.Debug("Notification marked read", zap.String("notification_id", notificationID))

	return nil
}

// ListSwaps returns swap requests where the person is requester or target
func ListSwaps(ctx context.Context, store db.SwapStore, logger *zap.Logger, personID string) ([]db.SwapRequest, error) {
	swaps, err := store.GetSwapsByPerson(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch swap requests: %w", err)
	}

	logger.Debug("Swap requests listed",
		zap.String("person_id", personID),
		zap.Int("count", len(swaps)))

	return swaps, nil
}
