// Package notify delivers swap-workflow notifications. The core emits
// model.Notification values; sinks decide how they reach people (in-app
// record, email). Delivery happens after the owning transaction commits and
// failures are reported to the caller to log, never to roll back.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lucasmendes/plantao/pkg/core/model"
	"github.com/lucasmendes/plantao/pkg/db"
)

// Sink consumes notifications emitted by the swap workflow
type Sink interface {
	Notify(ctx context.Context, notification model.Notification) error
}

// StoreSink persists notifications as in-app records
type StoreSink struct {
	store db.NotificationStore
}

// NewStoreSink creates a sink backed by the notification store
func NewStoreSink(store db.NotificationStore) *StoreSink {
	return &StoreSink{store: store}
}

// Notify writes the notification as an unread in-app record
func (s *StoreSink) Notify(ctx context.Context, notification model.Notification) error {
	record := &db.Notification{
		ID:          uuid.New().String(),
		RecipientID: notification.RecipientID,
		Kind:        string(notification.Kind),
		Title:       notification.Title,
		Body:        notification.Body,
		SwapID:      notification.SwapID,
		Read:        false,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.store.InsertNotification(ctx, record); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}
	return nil
}

// MultiSink fans a notification out to several sinks. Every sink is tried;
// errors are joined so one failing channel does not silence the others.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink creates a sink that delivers through all given sinks
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Notify delivers through every sink
func (m *MultiSink) Notify(ctx context.Context, notification model.Notification) error {
	var firstErr error
	for _, sink := range m.sinks {
		if err := sink.Notify(ctx, notification); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
