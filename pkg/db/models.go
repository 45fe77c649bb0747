package db

// Person represents a database person record (collaborator, technician or admin)
type Person struct {
	ID         string
	FullName   string
	Role       string
	Email      string
	Phone      string
	Active     bool
	QueueOrder int
}

// ShiftAssignment represents a database shift assignment record.
// Weekday, StartTime and EndTime are derived from the slot type when the
// record is built; they are stored for querying and display only.
type ShiftAssignment struct {
	ID        string
	PersonID  string
	PartnerID string // dupla, paired technician Saturday slot only
	ShiftDate string // YYYY-MM-DD
	Weekday   string // SAB or DOM
	SlotType  string
	StartTime string // HH:MM
	EndTime   string // HH:MM
	Notes     string
}

// SwapRequest represents a database swap request record
type SwapRequest struct {
	ID               string
	RequesterID      string
	RequesterShiftID string
	TargetID         string
	TargetShiftID    string
	Message          string
	Status           string
	CreatedAt        string // RFC3339
	ResolvedAt       string // RFC3339, empty while pending
}

// Notification represents a database notification record
type Notification struct {
	ID          string
	RecipientID string
	Kind        string
	Title       string
	Body        string
	SwapID      string
	Read        bool
	CreatedAt   string // RFC3339
}

// ScheduleRun records one automatic generation run
type ScheduleRun struct {
	ID        string
	Domain    string
	StartDate string // YYYY-MM-DD
	Weeks     int
	CreatedBy string
	CreatedAt string // RFC3339
}

// ShiftFilter narrows QueryAssignments results. Zero values mean "no filter".
type ShiftFilter struct {
	From      string // YYYY-MM-DD inclusive
	To        string // YYYY-MM-DD inclusive
	PersonID  string // matches person or partner
	Weekday   string // SAB or DOM
	SlotTypes []string
}
