package db

import "context"

// PersonStore defines the interface for person database operations
type PersonStore interface {
	GetPeople(ctx context.Context) ([]Person, error)
	GetPeopleByRole(ctx context.Context, role string) ([]Person, error)
	GetPerson(ctx context.Context, id string) (*Person, error)
	InsertPerson(ctx context.Context, person *Person) error
	UpdatePerson(ctx context.Context, person *Person) error
}

// ShiftStore defines the interface for shift assignment database operations.
// It owns the unique-(shift_date, slot_type) invariant.
type ShiftStore interface {
	// InsertGeneration writes a generation batch and its schedule-run record
	// in a single transaction; any constraint violation rolls back the whole
	// run, run record included, and surfaces ErrDuplicateSlot.
	InsertGeneration(ctx context.Context, assignments []ShiftAssignment, run *ScheduleRun) error

	InsertAssignment(ctx context.Context, assignment *ShiftAssignment) error
	GetAssignment(ctx context.Context, id string) (*ShiftAssignment, error)
	DeleteAssignment(ctx context.Context, id string) error
	QueryAssignments(ctx context.Context, filter ShiftFilter) ([]ShiftAssignment, error)

	// ReassignShift moves a single assignment to a new person
	ReassignShift(ctx context.Context, shiftID, newPersonID string) error

	// ExchangeOwners commits an accepted swap as one atomic unit: both shift
	// rows exchange their person while the swap request row moves to the
	// given terminal status and is stamped. A concurrent reader never
	// observes a partial exchange. Returns ErrSwapNotPending if the locked
	// request is no longer pending, and ErrStaleSwap if either shift no
	// longer belongs to the party recorded on the request.
	ExchangeOwners(ctx context.Context, swapID, status, resolvedAt string) error
}

// SwapStore defines the interface for swap request database operations
type SwapStore interface {
	InsertSwap(ctx context.Context, request *SwapRequest) error
	GetSwap(ctx context.Context, id string) (*SwapRequest, error)
	GetSwapsByPerson(ctx context.Context, personID string) ([]SwapRequest, error)
	HasPendingSwap(ctx context.Context, requesterShiftID, targetShiftID string) (bool, error)

	// ResolveSwap moves a pending request to a terminal status and stamps it.
	// Returns ErrSwapNotPending if another writer already resolved the
	// request, so a terminal request is never overwritten.
	ResolveSwap(ctx context.Context, id, status, resolvedAt string) error
}

// NotificationStore defines the interface for notification database operations
type NotificationStore interface {
	InsertNotification(ctx context.Context, notification *Notification) error
	GetNotificationsByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
}

// ScheduleRunStore defines the interface for schedule run records. Run
// records are written by ShiftStore.InsertGeneration alongside their batch.
type ScheduleRunStore interface {
	GetScheduleRuns(ctx context.Context) ([]ScheduleRun, error)
}

// Store aggregates every store interface the application needs
type Store interface {
	PersonStore
	ShiftStore
	SwapStore
	NotificationStore
	ScheduleRunStore
}
