package model

import "time"

// Role identifies which scheduling domain (or neither) a person belongs to.
// It is resolved once at the boundary and passed in explicitly; core logic
// never derives it from attached records.
type Role string

const (
	RoleCollaborator Role = "COLABORADOR"
	RoleTechnician   Role = "TECNICO"
	RoleAdmin        Role = "ADMIN"
)

func (r Role) IsValid() bool {
	return r == RoleCollaborator || r == RoleTechnician || r == RoleAdmin
}

// Person is a rotation participant (support collaborator or field technician)
type Person struct {
	ID         string
	FullName   string
	Role       Role
	Email      string
	Phone      string
	Active     bool
	QueueOrder int
}

// Assignment is one generated shift: a person covering a slot on a date.
// PartnerID is set only for the paired technician Saturday slot (the "dupla").
type Assignment struct {
	PersonID  string
	PartnerID string
	Date      time.Time
	Slot      SlotType
	Notes     string
}

// SwapStatus is the lifecycle state of a shift-swap request
type SwapStatus string

const (
	SwapPending   SwapStatus = "PENDENTE"
	SwapAccepted  SwapStatus = "ACEITA"
	SwapRejected  SwapStatus = "RECUSADA"
	SwapCancelled SwapStatus = "CANCELADA"
)

// IsTerminal reports whether no further transition is allowed
func (s SwapStatus) IsTerminal() bool {
	return s == SwapAccepted || s == SwapRejected || s == SwapCancelled
}

// NotificationKind classifies the swap-workflow event a notification reports
type NotificationKind string

const (
	KindSwapRequested NotificationKind = "TROCA_SOLICITADA"
	KindSwapAccepted  NotificationKind = "TROCA_ACEITA"
	KindSwapRejected  NotificationKind = "TROCA_RECUSADA"
	KindSwapCancelled NotificationKind = "TROCA_CANCELADA"
)

// Notification is an event emitted to a person as a side effect of a
// swap-request transition. Delivery is up to the notification sinks.
type Notification struct {
	RecipientID string
	Kind        NotificationKind
	Title       string
	Body        string
	SwapID      string
}
