package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lucasmendes/plantao/pkg/core/model"
	"github.com/lucasmendes/plantao/pkg/db"
)

// RegisterPersonInput carries a new rotation participant
type RegisterPersonInput struct {
	FullName   string
	Role       model.Role
	Email      string
	Phone      string
	QueueOrder *int // nil appends to the end of the queue
}

// RegisterPerson adds a person to the roster. With no explicit queue order
// the person joins at the back of their role's queue.
func RegisterPerson(ctx context.Context, store db.PersonStore, logger *zap.Logger, input RegisterPersonInput) (*db.Person, error) {
	if input.FullName == "" {
		return nil, fmt.Errorf("full name is required")
	}
	if !input.Role.IsValid() {
		return nil, fmt.Errorf("unknown role %q", input.Role)
	}

	queueOrder := 0
	if input.QueueOrder != nil {
		queueOrder = *input.QueueOrder
	} else {
		existing, err := store.GetPeopleByRole(ctx, string(input.Role))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch people: %w", err)
		}
		for _, p := range existing {
			if p.QueueOrder >= queueOrder {
				queueOrder = p.QueueOrder + 1
			}
		}
	}

	person := &db.Person{
		ID:         uuid.New().String(),
		FullName:   input.FullName,
		Role:       string(input.Role),
		Email:      input.Email,
		Phone:      input.Phone,
		Active:     true,
		QueueOrder: queueOrder,
	}

	if err := store.InsertPerson(ctx, person); err != nil {
		return nil, fmt.Errorf("failed to insert person: %w", err)
	}

	logger.Info("Person registered",
		zap.String("person_id", person.ID),
		zap.String("role", person.Role),
		zap.Int("queue_order", person.QueueOrder))

	return person, nil
}

// DeactivatePerson removes a person from rotation without deleting their
// shift history
func DeactivatePerson(ctx context.Context, store db.PersonStore, logger *zap.Logger, personID string) error {
	person, err := store.GetPerson(ctx, personID)
	if err != nil {
		return fmt.Errorf("failed to load person: %w", err)
	}

	person.Active = false
	if err := store.UpdatePerson(ctx, person); err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}

	logger.Info("Person deactivated", zap.String("person_id", personID))

	return nil
}

// ListPeople returns people, optionally restricted to one role, in queue order
func ListPeople(ctx context.Context, store db.PersonStore, logger *zap.Logger, role model.Role) ([]db.Person, error) {
	var people []db.Person
	var err error

	if role != "" {
		people, err = store.GetPeopleByRole(ctx, string(role))
	} else {
		people, err = store.GetPeople(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch people: %w", err)
	}

	logger.Debug("People listed", zap.Int("count", len(people)))

	return people, nil
}

// UpdateQueueOrder changes a person's rank in the rotation queue
func UpdateQueueOrder(ctx context.Context, store db.PersonStore, logger *zap.Logger, personID string, queueOrder int) error {
	person, err := store.GetPerson(ctx, personID)
	if err != nil {
		return fmt.Errorf("failed to load person: %w", err)
	}

	person.QueueOrder = queueOrder
	if err := store.UpdatePerson(ctx, person); err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}

	logger.Info("Queue order updated",
		zap.String("person_id", personID),
		zap.Int("queue_order", queueOrder))

	return nil
}
