// Package swap implements the shift-swap request state machine.
//
// A request moves PENDING -> {ACCEPTED, REJECTED, CANCELLED} and never
// leaves a terminal state. The package works on plain snapshot values so
// transitions can be validated without touching storage; callers are
// responsible for persisting an accepted exchange atomically.
package swap

import (
	"errors"
	"time"

	"github.com/lucasmendes/plantao/pkg/core/model"
)

var (
	// ErrSelfSwap is returned when both shifts belong to the same person
	ErrSelfSwap = errors.New("cannot propose a swap between shifts of the same person")

	// ErrPastShift is returned when the requester's shift date has already passed
	ErrPastShift = errors.New("cannot propose a swap for a past shift")

	// ErrDuplicateProposal is returned when an identical pending request exists
	ErrDuplicateProposal = errors.New("an identical pending swap request already exists")

	// ErrNotPending is returned on any transition out of a terminal state
	ErrNotPending = errors.New("swap request is not pending")

	// ErrNotAuthorized is returned when the caller is not the party allowed
	// to perform the transition
	ErrNotAuthorized = errors.New("caller is not authorized for this swap operation")

	// ErrStaleSwap is returned when a referenced shift changed owner between
	// proposal and acceptance
	ErrStaleSwap = errors.New("swap request references shifts that have been reassigned")
)

// Shift is the snapshot of a shift assignment the workflow needs: its
// identity, current owner and date.
type Shift struct {
	ID       string
	PersonID string
	Date     time.Time
}

// Request is a proposal to exchange the owners of two shift assignments
type Request struct {
	ID               string
	RequesterID      string
	RequesterShiftID string
	TargetID         string
	TargetShiftID    string
	Message          string
	Status           model.SwapStatus
	CreatedAt        time.Time
	ResolvedAt       time.Time
}

// NewRequest validates and creates a pending swap proposal. The caller
// supplies hasDuplicate from a lookup for a pending request with the same
// requester and shift pair.
func NewRequest(id string, requesterShift, targetShift Shift, message string, now time.Time, hasDuplicate bool) (*Request, error) {
	if requesterShift.PersonID == targetShift.PersonID {
		return nil, ErrSelfSwap
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if requesterShift.Date.Before(today) {
		return nil, ErrPastShift
	}

	if hasDuplicate {
		return nil, ErrDuplicateProposal
	}

	return &Request{
		ID:               id,
		RequesterID:      requesterShift.PersonID,
		RequesterShiftID: requesterShift.ID,
		TargetID:         targetShift.PersonID,
		TargetShiftID:    targetShift.ID,
		Message:          message,
		Status:           model.SwapPending,
		CreatedAt:        now,
	}, nil
}

// Accept resolves the request as accepted. Only the target person may
// accept. The current shift snapshots are re-validated against the parties
// recorded at proposal time: if either shift was reassigned in the meantime
// the request is stale and must not move the wrong assignment.
//
// On success the request is marked ACCEPTED; the caller commits the owner
// exchange and this status change as one atomic unit.
func (r *Request) Accept(callerID string, requesterShift, targetShift Shift, now time.Time) error {
	if r.Status != model.SwapPending {
		return ErrNotPending
	}
	if callerID != r.TargetID {
		return ErrNotAuthorized
	}
	if requesterShift.PersonID != r.RequesterID || targetShift.PersonID != r.TargetID {
		return ErrStaleSwap
	}

	r.Status = model.SwapAccepted
	r.ResolvedAt = now
	return nil
}

// Reject resolves the request as rejected. Only the target person may reject.
func (r *Request) Reject(callerID string, now time.Time) error {
	if r.Status != model.SwapPending {
		return ErrNotPending
	}
	if callerID != r.TargetID {
		return ErrNotAuthorized
	}

	r.Status = model.SwapRejected
	r.ResolvedAt = now
	return nil
}

// Cancel withdraws the request. Only the requester may cancel.
func (r *Request) Cancel(callerID string, now time.Time) error {
	if r.Status != model.SwapPending {
		return ErrNotPending
	}
	if callerID != r.RequesterID {
		return ErrNotAuthorized
	}

	r.Status = model.SwapCancelled
	r.ResolvedAt = now
	return nil
}
