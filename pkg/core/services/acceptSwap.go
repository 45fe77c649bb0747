package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lucasmendes/plantao/pkg/core/model"
	"github.com/lucasmendes/plantao/pkg/core/swap"
	"github.com/lucasmendes/plantao/pkg/db"
	"github.com/lucasmendes/plantao/pkg/notify"
)

// AcceptSwap resolves a pending swap as accepted: the two shifts exchange
// owners and the request is stamped, in one atomic commit. Only the target
// person may accept. The shift owners are re-validated both here and inside
// the commit, so a request whose shifts were reassigned elsewhere fails with
// swap.ErrStaleSwap instead of moving the wrong assignment.
func AcceptSwap(ctx context.Context, store SwapStore, sink notify.Sink, logger *zap.Logger, swapID, callerID string) error {
	logger.Info("Accepting shift swap", zap.String("swap_id", swapID), zap.String("caller_id", callerID))

	record, err := store.GetSwap(ctx, swapID)
	if err != nil {
		return fmt.Errorf("failed to load swap request: %w", err)
	}

	request, err := swapRecordToRequest(record)
	if err != nil {
		return err
	}

	requesterShiftRecord, err := store.GetAssignment(ctx, record.RequesterShiftID)
	if err != nil {
		return fmt.Errorf("failed to load requester shift: %w", err)
	}
	targetShiftRecord, err := store.GetAssignment(ctx, record.TargetShiftID)
	if err != nil {
		return fmt.Errorf("failed to load target shift: %w", err)
	}

	requesterShift, err := swapShiftSnapshot(requesterShiftRecord)
	if err != nil {
		return err
	}
	targetShift, err := swapShiftSnapshot(targetShiftRecord)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := request.Accept(callerID, requesterShift, targetShift, now); err != nil {
		return err
	}

	// The store re-checks the pending status and ownership under row locks;
	// this is the gate that holds against concurrent resolution or
	// reassignment
	err = store.ExchangeOwners(ctx, swapID, string(model.SwapAccepted), now.Format(time.RFC3339))
	if errors.Is(err, db.ErrSwapNotPending) {
		return swap.ErrNotPending
	}
	if errors.Is(err, db.ErrStaleSwap) {
		return swap.ErrStaleSwap
	}
	if err != nil {
		return fmt.Errorf("failed to commit swap: %w", err)
	}

	logger.Info("Swap accepted",
		zap.String("swap_id", swapID),
		zap.String("requester_shift_id", record.RequesterShiftID),
		zap.String("target_shift_id", record.TargetShiftID))

	target, err := store.GetPerson(ctx, record.TargetID)
	if err != nil {
		logger.Warn("Failed to load target for notification", zap.Error(err))
		return nil
	}

	emitNotification(ctx, sink, logger, notify.SwapAccepted(swapID, record.RequesterID, target.FullName))

	return nil
}
