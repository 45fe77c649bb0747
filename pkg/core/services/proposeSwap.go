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

// SwapStore is the store surface the swap workflow needs
type SwapStore interface {
	db.PersonStore
	db.ShiftStore
	db.SwapStore
}

// ProposeSwapInput carries a new swap proposal
type ProposeSwapInput struct {
	CallerID         string
	RequesterShiftID string
	TargetShiftID    string
	Message          string
}

// ProposeSwap creates a pending swap request between two shifts and notifies
// the target person. The caller must own the requester shift.
func ProposeSwap(ctx context.Context, store SwapStore, sink notify.Sink, logger *zap.Logger, input ProposeSwapInput) (*db.SwapRequest, error) {
	logger.Info("Proposing shift swap",
		zap.String("caller_id", input.CallerID),
		zap.String("requester_shift_id", input.RequesterShiftID),
		zap.String("target_shift_id", input.TargetShiftID))

	requesterShiftRecord, err := store.GetAssignment(ctx, input.RequesterShiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to load requester shift: %w", err)
	}
	targetShiftRecord, err := store.GetAssignment(ctx, input.TargetShiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to load target shift: %w", err)
	}

	if requesterShiftRecord.PersonID != input.CallerID {
		return nil, swap.ErrNotAuthorized
	}

	requesterShift, err := swapShiftSnapshot(requesterShiftRecord)
	if err != nil {
		return nil, err
	}
	targetShift, err := swapShiftSnapshot(targetShiftRecord)
	if err != nil {
		return nil, err
	}

	hasDuplicate, err := store.HasPendingSwap(ctx, input.RequesterShiftID, input.TargetShiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate proposal: %w", err)
	}

	request, err := swap.NewRequest(uuid.New().String(), requesterShift, targetShift, input.Message, time.Now().UTC(), hasDuplicate)
	if err != nil {
		return nil, err
	}

	record := &db.SwapRequest{
		ID:               request.ID,
		RequesterID:      request.RequesterID,
		RequesterShiftID: request.RequesterShiftID,
		TargetID:         request.TargetID,
		TargetShiftID:    request.TargetShiftID,
		Message:          request.Message,
		Status:           string(request.Status),
		CreatedAt:        request.CreatedAt.Format(time.RFC3339),
	}
	if err := store.InsertSwap(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to insert swap request: %w", err)
	}

	logger.Info("Swap request created", zap.String("swap_id", record.ID))

	requester, err := store.GetPerson(ctx, request.RequesterID)
	if err != nil {
		logger.Warn("Failed to load requester for notification", zap.Error(err))
		return record, nil
	}

	emitNotification(ctx, sink, logger, notify.SwapRequested(
		record.ID,
		request.TargetID,
		requester.FullName,
		notify.ShiftSummary(model.SlotType(requesterShiftRecord.SlotType), requesterShiftRecord.ShiftDate),
		notify.ShiftSummary(model.SlotType(targetShiftRecord.SlotType), targetShiftRecord.ShiftDate),
		input.Message,
	))

	return record, nil
}
