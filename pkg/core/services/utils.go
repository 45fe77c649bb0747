package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lucasmendes/plantao/pkg/core/model"
	"github.com/lucasmendes/plantao/pkg/core/swap"
	"github.com/lucasmendes/plantao/pkg/db"
	"github.com/lucasmendes/plantao/pkg/notify"
)

const dateLayout = "2006-01-02"

// roleForDomain maps a scheduling domain to the person role it rotates
func roleForDomain(domain model.Domain) model.Role {
	if domain == model.DomainTechnician {
		return model.RoleTechnician
	}
	return model.RoleCollaborator
}

// weekdayCode returns the stored weekday code for a slot (SAB or DOM)
func weekdayCode(slot model.SlotType) string {
	if slot.Weekday() == time.Sunday {
		return "DOM"
	}
	return "SAB"
}

// buildShiftRecord turns a generated assignment into a storage record,
// deriving weekday and times from the slot type
func buildShiftRecord(a model.Assignment) db.ShiftAssignment {
	start, end := a.Slot.Times()
	return db.ShiftAssignment{
		ID:        uuid.New().String(),
		PersonID:  a.PersonID,
		PartnerID: a.PartnerID,
		ShiftDate: a.Date.Format(dateLayout),
		Weekday:   weekdayCode(a.Slot),
		SlotType:  string(a.Slot),
		StartTime: start.String(),
		EndTime:   end.String(),
		Notes:     a.Notes,
	}
}

// dbPeopleToModel converts person records to domain people
func dbPeopleToModel(records []db.Person) []model.Person {
	people := make([]model.Person, len(records))
	for i, r := range records {
		people[i] = model.Person{
			ID:         r.ID,
			FullName:   r.FullName,
			Role:       model.Role(r.Role),
			Email:      r.Email,
			Phone:      r.Phone,
			Active:     r.Active,
			QueueOrder: r.QueueOrder,
		}
	}
	return people
}

// swapShiftSnapshot converts a shift record into the snapshot the swap state
// machine validates against
func swapShiftSnapshot(record *db.ShiftAssignment) (swap.Shift, error) {
	date, err := time.Parse(dateLayout, record.ShiftDate)
	if err != nil {
		return swap.Shift{}, fmt.Errorf("invalid shift date %q: %w", record.ShiftDate, err)
	}
	return swap.Shift{
		ID:       record.ID,
		PersonID: record.PersonID,
		Date:     date,
	}, nil
}

// swapRecordToRequest rebuilds the state machine value from a stored record
func swapRecordToRequest(record *db.SwapRequest) (*swap.Request, error) {
	createdAt, err := time.Parse(time.RFC3339, record.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid swap created_at %q: %w", record.CreatedAt, err)
	}

	request := &swap.Request{
		ID:               record.ID,
		RequesterID:      record.RequesterID,
		RequesterShiftID: record.RequesterShiftID,
		TargetID:         record.TargetID,
		TargetShiftID:    record.TargetShiftID,
		Message:          record.Message,
		Status:           model.SwapStatus(record.Status),
		CreatedAt:        createdAt,
	}

	if record.ResolvedAt != "" {
		resolvedAt, err := time.Parse(time.RFC3339, record.ResolvedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid swap resolved_at %q: %w", record.ResolvedAt, err)
		}
		request.ResolvedAt = resolvedAt
	}

	return request, nil
}

// emitNotification delivers through the sink, logging failures instead of
// failing the already-committed operation
func emitNotification(ctx context.Context, sink notify.Sink, logger *zap.Logger, notification model.Notification) {
	if sink == nil {
		return
	}
	if err := sink.Notify(ctx, notification); err != nil {
		logger.Warn("Failed to deliver notification",
			zap.String("recipient_id", notification.RecipientID),
			zap.String("kind", string(notification.Kind)),
			zap.Error(err))
	}
}
