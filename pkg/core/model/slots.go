package model

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// Domain selects which slot calendar applies
type Domain string

const (
	DomainCollaborator Domain = "colaborador"
	DomainTechnician   Domain = "tecnico"
)

func (d Domain) IsValid() bool {
	return d == DomainCollaborator || d == DomainTechnician
}

// SlotType identifies a fixed weekly time window. The window's weekday and
// start/end times are derived from the type and are never edited directly.
type SlotType string

const (
	// Collaborator calendar: five slots across the weekend
	SlotSaturdayAfternoon SlotType = "SABADO_TARDE1"
	SlotSaturdayEvening   SlotType = "SABADO_TARDE2"
	SlotSundayMorning     SlotType = "DOMINGO_MANHA"
	SlotSundayAfternoon   SlotType = "DOMINGO_TARDE1"
	SlotSundayEvening     SlotType = "DOMINGO_TARDE2"

	// Technician calendar: paired Saturday and solo Sunday
	SlotTechSaturday SlotType = "TECNICO_SABADO"
	SlotTechSunday   SlotType = "TECNICO_DOMINGO"
)

// ClockTime is a wall-clock time of day within a slot window
type ClockTime struct {
	Hour   int
	Minute int
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// slotSpec fixes where in the weekend cycle a slot falls
type slotSpec struct {
	weekday time.Weekday
	start   ClockTime
	end     ClockTime
	paired  bool
	domain  Domain
}

var slotSpecs = map[SlotType]slotSpec{
	SlotSaturdayAfternoon: {time.Saturday, ClockTime{13, 0}, ClockTime{17, 0}, false, DomainCollaborator},
	SlotSaturdayEvening:   {time.Saturday, ClockTime{17, 0}, ClockTime{21, 0}, false, DomainCollaborator},
	SlotSundayMorning:     {time.Sunday, ClockTime{8, 0}, ClockTime{13, 0}, false, DomainCollaborator},
	SlotSundayAfternoon:   {time.Sunday, ClockTime{13, 0}, ClockTime{17, 0}, false, DomainCollaborator},
	SlotSundayEvening:     {time.Sunday, ClockTime{17, 0}, ClockTime{21, 0}, false, DomainCollaborator},
	SlotTechSaturday:      {time.Saturday, ClockTime{8, 0}, ClockTime{18, 0}, true, DomainTechnician},
	SlotTechSunday:        {time.Sunday, ClockTime{8, 0}, ClockTime{18, 0}, false, DomainTechnician},
}

// IsValid reports whether the slot type is known to either calendar
func (s SlotType) IsValid() bool {
	_, ok := slotSpecs[s]
	return ok
}

// Domain returns the calendar the slot belongs to
func (s SlotType) Domain() Domain {
	return slotSpecs[s].domain
}

// Weekday returns the weekday this slot must fall on
func (s SlotType) Weekday() time.Weekday {
	return slotSpecs[s].weekday
}

// Times returns the fixed start and end of the slot window
func (s SlotType) Times() (start, end ClockTime) {
	spec := slotSpecs[s]
	return spec.start, spec.end
}

// Paired reports whether the slot carries a second person (the dupla)
func (s SlotType) Paired() bool {
	return slotSpecs[s].paired
}

// MatchesDate reports whether the date falls on the slot's expected weekday
func (s SlotType) MatchesDate(date time.Time) bool {
	return date.Weekday() == s.Weekday()
}

// CollaboratorSlots returns the collaborator calendar slots in schedule order
func CollaboratorSlots() []SlotType {
	return []SlotType{
		SlotSaturdayAfternoon,
		SlotSaturdayEvening,
		SlotSundayMorning,
		SlotSundayAfternoon,
		SlotSundayEvening,
	}
}

// TechnicianSlots returns the technician calendar slots in schedule order
func TechnicianSlots() []SlotType {
	return []SlotType{SlotTechSaturday, SlotTechSunday}
}

// CycleDates enumerates the Saturday anchor of each weekly cycle, starting
// at start (which must itself be a Saturday).
func CycleDates(start time.Time, cycles int) ([]time.Time, error) {
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.WEEKLY,
		Count:   cycles,
		Byweekday: []rrule.Weekday{rrule.SA},
		Dtstart: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build cycle recurrence: %w", err)
	}
	return rule.All(), nil
}

// NextSaturday returns the next Saturday strictly after the given date.
// Used as the default start when generating a new schedule.
func NextSaturday(from time.Time) time.Time {
	normalized := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)

	daysUntil := (int(time.Saturday) - int(normalized.Weekday()) + 7) % 7
	if daysUntil == 0 {
		daysUntil = 7
	}
	return normalized.AddDate(0, 0, daysUntil)
}
