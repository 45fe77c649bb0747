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

// RejectSwap resolves a pending swap as rejected and notifies the requester.
// Only the target person may reject.
func RejectSwap(ctx context.Context, store SwapStore, sink notify.Sink, logger *zap.Logger, swapID, callerID string) error {
	logger.Info("Rejecting shift swap", zap.String("swap_id", swapID), zap.String("caller_id", callerID))

	record, err := store.GetSwap(ctx, swapID)
	if err != nil {
		return fmt.Errorf("failed to load swap request: %w", err)
	}

	request, err := swapRecordToRequest(record)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := request.Reject(callerID, now); err != nil {
		return err
	}

	// Guarded on the pending status in the store, so a request resolved by a
	// concurrent writer since our read stays in its terminal state
	err = store.ResolveSwap(ctx, swapID, string(model.SwapRejected), now.Format(time.RFC3339))
	if errors.Is(err, db.ErrSwapNotPending) {
		return swap.ErrNotPending
	}
	if err != nil {
		return fmt.Errorf("failed to resolve swap request: %w", err)
	}

	logger.Info("Swap rejected", zap.String("swap_id", swapID))

	target, err := store.GetPerson(ctx, record.TargetID)
	if err != nil {
		logger.Warn("Failed to load target for notification", zap.Error(err))
		return nil
	}

	emitNotification(ctx, sink, logger, notify.SwapRejected(swapID, record.RequesterID, target.FullName))

	return nil
}

// CancelSwap withdraws a pending swap and notifies the target. Only the
// requester may cancel.
func CancelSwap(ctx context.Context, store SwapStore, sink notify.Sink, logger *zap.Logger, swapID, callerID string) error {
	logger.Info("Cancelling shift swap", zap.String("swap_id", swapID), zap.String("caller_id", callerID))

	record, err := store.GetSwap(ctx, swapID)
	if err != nil {
		return fmt.Errorf("failed to load swap request: %w", err)
	}

	request, err := swapRecordToRequest(record)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := request.Cancel(callerID, now); err != nil {
		return err
	}

	err = store.ResolveSwap(ctx, swapID, string(model.SwapCancelled), now.Format(time.RFC3339))
	if errors.Is(err, db.ErrSwapNotPending) {
		return swap.ErrNotPending
	}
	if err != nil {
		return fmt.Errorf("failed to resolve swap request: %w", err)
	}

	logger.Info("Swap cancelled", zap.String("swap_id", swapID))

	requester, err := store.GetPerson(ctx, record.RequesterID)
	if err != nil {
		logger.Warn("Failed to load requester for notification", zap.Error(err))
		return nil
	}

	emitNotification(ctx, sink, logger, notify.SwapCancelled(swapID, record.TargetID, requester.FullName))

	return nil
}
