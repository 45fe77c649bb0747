package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lucasmendes/plantao/pkg/core/model"
	"github.com/lucasmendes/plantao/pkg/db"
)

// AddShiftInput carries a manual shift registration
type AddShiftInput struct {
	PersonID  string
	PartnerID string
	Date      string // YYYY-MM-DD
	SlotType  model.SlotType
	Notes     string
}

// AddShift registers a single shift manually. Times and weekday derive from
// the slot type; the date must fall on the slot's weekday, and a partner is
// only accepted on the paired technician slot.
func AddShift(ctx context.Context, store db.ShiftStore, logger *zap.Logger, input AddShiftInput) (*db.ShiftAssignment, error) {
	logger.Info("Adding shift",
		zap.String("person_id", input.PersonID),
		zap.String("date", input.Date),
		zap.String("slot_type", string(input.SlotType)))

	if !input.SlotType.IsValid() {
		return nil, fmt.Errorf("unknown slot type %q", input.SlotType)
	}

	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}
	if !input.SlotType.MatchesDate(date) {
		return nil, fmt.Errorf("slot %s falls on %s, but %s is a %s",
			input.SlotType, input.SlotType.Weekday(), input.Date, date.Weekday())
	}

	if input.PartnerID != "" && !input.SlotType.Paired() {
		return nil, fmt.Errorf("slot %s does not take a second person", input.SlotType)
	}

	record := buildShiftRecord(model.Assignment{
		PersonID:  input.PersonID,
		PartnerID: input.PartnerID,
		Date:      date,
		Slot:      input.SlotType,
		Notes:     input.Notes,
	})

	if err := store.InsertAssignment(ctx, &record); err != nil {
		return nil, err
	}

	logger.Info("Shift added", zap.String("shift_id", record.ID))

	return &record, nil
}

// DeleteShift removes a shift assignment
func DeleteShift(ctx context.Context, store db.ShiftStore, logger *zap.Logger, shiftID string) error {
	logger.Info("Deleting shift", zap.String("shift_id", shiftID))

	if err := store.DeleteAssignment(ctx, shiftID); err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}

	return nil
}

// ReassignShift moves a shift to a new person outside the swap workflow
// (admin correction)
func ReassignShift(ctx context.Context, store db.ShiftStore, logger *zap.Logger, shiftID, newPersonID string) error {
	logger.Info("Reassigning shift", zap.String("shift_id", shiftID), zap.String("new_person_id", newPersonID))

	if err := store.ReassignShift(ctx, shiftID, newPersonID); err != nil {
		return fmt.Errorf("failed to reassign shift: %w", err)
	}

	return nil
}
