package notify

import (
	"context"
	"fmt"

	"github.com/lucasmendes/plantao/pkg/clients/gmailclient"
	"github.com/lucasmendes/plantao/pkg/core/model"
	"github.com/lucasmendes/plantao/pkg/db"
)

// EmailSink delivers notifications by email through the Gmail API.
// People without a registered email address are skipped silently.
type EmailSink struct {
	gmail  *gmailclient.Client
	people db.PersonStore
}

// NewEmailSink creates an email delivery sink
func NewEmailSink(gmail *gmailclient.Client, people db.PersonStore) *EmailSink {
	return &EmailSink{gmail: gmail, people: people}
}

// Notify emails the notification to its recipient
func (s *EmailSink) Notify(ctx context.Context, notification model.Notification) error {
	person, err := s.people.GetPerson(ctx, notification.RecipientID)
	if err != nil {
		return fmt.Errorf("failed to look up notification recipient: %w", err)
	}
	if person.Email == "" {
		return nil
	}

	if err := s.gmail.SendEmail(person.Email, notification.Title, notification.Body); err != nil {
		return fmt.Errorf("failed to email notification: %w", err)
	}
	return nil
}
