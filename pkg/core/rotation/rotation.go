package rotation

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/lucasmendes/plantao/pkg/core/model"
)

var (
	// ErrInsufficientRoster is returned when fewer than two active people
	// are available for rotation
	ErrInsufficientRoster = errors.New("at least 2 active people are required for rotation")

	// ErrInvalidRange is returned when the cycle count or start date does
	// not describe a usable generation window
	ErrInvalidRange = errors.New("invalid generation range")
)

// ActiveRoster filters to active people and orders them by queue position.
// Queue order ranks need not be contiguous; ties break on full name so the
// rotation stays deterministic.
func ActiveRoster(people []model.Person) []model.Person {
	roster := make([]model.Person, 0, len(people))
	for _, p := range people {
		if p.Active {
			roster = append(roster, p)
		}
	}

	sort.Slice(roster, func(i, j int) bool {
		if roster[i].QueueOrder != roster[j].QueueOrder {
			return roster[i].QueueOrder < roster[j].QueueOrder
		}
		return roster[i].FullName < roster[j].FullName
	})

	return roster
}

// StepCollaborator produces the five collaborator assignments for the cycle
// anchored at saturday, reading roles A/B/C from the roster at the given
// pointer. It returns the pointer for the next cycle.
//
// The pointer advances by 2, not 3: only the two primary weekend roles
// consume queue positions, so the Sunday-evening role drifts forward
// relative to the others across cycles. This matches the production rota
// behaviour and must not be changed.
func StepCollaborator(roster []model.Person, pointer int, saturday time.Time) ([]model.Assignment, int) {
	n := len(roster)
	sunday := saturday.AddDate(0, 0, 1)

	a := roster[pointer%n]
	b := roster[(pointer+1)%n]
	c := roster[(pointer+2)%n]

	assignments := []model.Assignment{
		{PersonID: a.ID, Date: saturday, Slot: model.SlotSaturdayAfternoon},
		{PersonID: b.ID, Date: saturday, Slot: model.SlotSaturdayEvening},
		{PersonID: b.ID, Date: sunday, Slot: model.SlotSundayMorning},
		{PersonID: a.ID, Date: sunday, Slot: model.SlotSundayAfternoon},
		{PersonID: c.ID, Date: sunday, Slot: model.SlotSundayEvening},
	}

	return assignments, pointer + 2
}

// StepTechnician produces the two technician assignments for the cycle
// anchored at saturday: a paired Saturday shift (principal + dupla) and a
// solo Sunday shift. The pointer advances by the three positions consumed.
func StepTechnician(roster []model.Person, pointer int, saturday time.Time) ([]model.Assignment, int) {
	n := len(roster)
	sunday := saturday.AddDate(0, 0, 1)

	principal := roster[pointer%n]
	dupla := roster[(pointer+1)%n]
	solo := roster[(pointer+2)%n]

	assignments := []model.Assignment{
		{PersonID: principal.ID, PartnerID: dupla.ID, Date: saturday, Slot: model.SlotTechSaturday},
		{PersonID: solo.ID, Date: sunday, Slot: model.SlotTechSunday},
	}

	return assignments, pointer + 3
}

// Generate runs the rotation for the given domain over cycles consecutive
// weekends starting at start, which must be a Saturday. The roster must
// already be active-filtered and queue-ordered (see ActiveRoster). It
// returns every assignment of the run plus the final pointer value.
//
// Generation is pure: nothing is written anywhere. Callers persist the
// returned batch as a single all-or-nothing unit.
func Generate(domain model.Domain, start time.Time, cycles int, roster []model.Person) ([]model.Assignment, int, error) {
	if !domain.IsValid() {
		return nil, 0, fmt.Errorf("unknown domain %q", domain)
	}
	if cycles < 1 {
		return nil, 0, fmt.Errorf("%w: cycle count must be at least 1, got %d", ErrInvalidRange, cycles)
	}
	if start.Weekday() != time.Saturday {
		return nil, 0, fmt.Errorf("%w: start date %s is not a Saturday", ErrInvalidRange, start.Format("2006-01-02"))
	}
	if len(roster) < 2 {
		return nil, 0, fmt.Errorf("%w: got %d", ErrInsufficientRoster, len(roster))
	}

	saturdays, err := model.CycleDates(start, cycles)
	if err != nil {
		return nil, 0, err
	}

	var assignments []model.Assignment
	pointer := 0

	for _, saturday := range saturdays {
		var cycleAssignments []model.Assignment
		switch domain {
		case model.DomainCollaborator:
			cycleAssignments, pointer = StepCollaborator(roster, pointer, saturday)
		case model.DomainTechnician:
			cycleAssignments, pointer = StepTechnician(roster, pointer, saturday)
		}
		assignments = append(assignments, cycleAssignments...)
	}

	return assignments, pointer, nil
}
