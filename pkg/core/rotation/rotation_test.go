package rotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasmendes/plantao/pkg/core/model"
)

// saturday is an arbitrary Saturday used as generation anchor
var saturday = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func testRoster(n int) []model.Person {
	names := []string{"Ana", "Bruno", "Carla", "Daniel", "Elisa", "Fabio"}
	roster := make([]model.Person, n)
	for i := 0; i < n; i++ {
		roster[i] = model.Person{
			ID:         names[i],
			FullName:   names[i],
			Role:       model.RoleCollaborator,
			Active:     true,
			QueueOrder: i,
		}
	}
	return roster
}

func TestActiveRoster_FiltersAndOrders(t *testing.T) {
	people := []model.Person{
		{ID: "c", FullName: "Carla", Active: true, QueueOrder: 7},
		{ID: "a", FullName: "Ana", Active: true, QueueOrder: 2},
		{ID: "x", FullName: "Xavier", Active: false, QueueOrder: 0},
		{ID: "b", FullName: "Bruno", Active: true, QueueOrder: 2},
	}

	roster := ActiveRoster(people)

	require.Len(t, roster, 3)
	// Non-contiguous queue orders keep their relative rank; ties break on name
	assert.Equal(t, "a", roster[0].ID)
	assert.Equal(t, "b", roster[1].ID)
	assert.Equal(t, "c", roster[2].ID)
}

func TestStepCollaborator_SingleCycle(t *testing.T) {
	roster := testRoster(3)

	assignments, next := StepCollaborator(roster, 0, saturday)

	require.Len(t, assignments, 5)
	sunday := saturday.AddDate(0, 0, 1)

	expected := []struct {
		person string
		date   time.Time
		slot   model.SlotType
	}{
		{"Ana", saturday, model.SlotSaturdayAfternoon},
		{"Bruno", saturday, model.SlotSaturdayEvening},
		{"Bruno", sunday, model.SlotSundayMorning},
		{"Ana", sunday, model.SlotSundayAfternoon},
		{"Carla", sunday, model.SlotSundayEvening},
	}
	for i, want := range expected {
		assert.Equal(t, want.person, assignments[i].PersonID, "slot %d", i)
		assert.Equal(t, want.date, assignments[i].Date, "slot %d", i)
		assert.Equal(t, want.slot, assignments[i].Slot, "slot %d", i)
	}

	// The pointer advances by the two primary roles, not three
	assert.Equal(t, 2, next)
}

func TestStepCollaborator_PointerAdvanceLaw(t *testing.T) {
	roster := testRoster(5)

	pointer := 0
	for cycle := 0; cycle < 10; cycle++ {
		anchor := saturday.AddDate(0, 0, 7*cycle)
		assignments, next := StepCollaborator(roster, pointer, anchor)

		// Role C of this cycle reads from pointer+2, regardless of wraparound
		assert.Equal(t, roster[(pointer+2)%len(roster)].ID, assignments[4].PersonID, "cycle %d", cycle)
		assert.Equal(t, pointer+2, next, "cycle %d", cycle)
		pointer = next
	}
}

func TestStepTechnician_SingleCycle(t *testing.T) {
	roster := testRoster(4)

	assignments, next := StepTechnician(roster, 0, saturday)

	require.Len(t, assignments, 2)
	assert.Equal(t, "Ana", assignments[0].PersonID)
	assert.Equal(t, "Bruno", assignments[0].PartnerID)
	assert.Equal(t, model.SlotTechSaturday, assignments[0].Slot)
	assert.Equal(t, saturday, assignments[0].Date)

	assert.Equal(t, "Carla", assignments[1].PersonID)
	assert.Empty(t, assignments[1].PartnerID)
	assert.Equal(t, model.SlotTechSunday, assignments[1].Slot)
	assert.Equal(t, saturday.AddDate(0, 0, 1), assignments[1].Date)

	assert.Equal(t, 3, next)
}

func TestGenerate_AssignmentCounts(t *testing.T) {
	tests := []struct {
		name     string
		domain   model.Domain
		cycles   int
		expected int
	}{
		{"collaborator 1 cycle", model.DomainCollaborator, 1, 5},
		{"collaborator 6 cycles", model.DomainCollaborator, 6, 30},
		{"technician 1 cycle", model.DomainTechnician, 1, 2},
		{"technician 8 cycles", model.DomainTechnician, 8, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assignments, _, err := Generate(tt.domain, saturday, tt.cycles, testRoster(4))
			require.NoError(t, err)
			assert.Len(t, assignments, tt.expected)

			// No two assignments share (date, slot)
			seen := make(map[string]bool)
			for _, a := range assignments {
				key := a.Date.Format("2006-01-02") + "/" + string(a.Slot)
				assert.False(t, seen[key], "duplicate slot %s", key)
				seen[key] = true
			}
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	first, firstPointer, err := Generate(model.DomainCollaborator, saturday, 8, testRoster(5))
	require.NoError(t, err)

	second, secondPointer, err := Generate(model.DomainCollaborator, saturday, 8, testRoster(5))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstPointer, secondPointer)
}

func TestGenerate_CollaboratorEndPointer(t *testing.T) {
	_, pointer, err := Generate(model.DomainCollaborator, saturday, 1, testRoster(3))
	require.NoError(t, err)
	assert.Equal(t, 2, pointer)

	_, pointer, err = Generate(model.DomainCollaborator, saturday, 7, testRoster(3))
	require.NoError(t, err)
	assert.Equal(t, 14, pointer)
}

func TestGenerate_TechnicianRotation(t *testing.T) {
	assignments, pointer, err := Generate(model.DomainTechnician, saturday, 2, testRoster(4))
	require.NoError(t, err)
	require.Len(t, assignments, 4)

	// Second cycle starts at pointer 3
	assert.Equal(t, "Daniel", assignments[2].PersonID)
	assert.Equal(t, "Ana", assignments[2].PartnerID)
	assert.Equal(t, "Bruno", assignments[3].PersonID)
	assert.Equal(t, 6, pointer)
}

func TestGenerate_RosterOfTwoWrapsAround(t *testing.T) {
	assignments, _, err := Generate(model.DomainCollaborator, saturday, 1, testRoster(2))
	require.NoError(t, err)
	require.Len(t, assignments, 5)

	// Role C wraps back onto the first person
	assert.Equal(t, "Ana", assignments[0].PersonID)
	assert.Equal(t, "Bruno", assignments[1].PersonID)
	assert.Equal(t, "Ana", assignments[4].PersonID)
}

func TestGenerate_InsufficientRoster(t *testing.T) {
	_, _, err := Generate(model.DomainCollaborator, saturday, 1, testRoster(1))
	assert.ErrorIs(t, err, ErrInsufficientRoster)

	_, _, err = Generate(model.DomainCollaborator, saturday, 1, nil)
	assert.ErrorIs(t, err, ErrInsufficientRoster)
}

func TestGenerate_InvalidRange(t *testing.T) {
	_, _, err := Generate(model.DomainCollaborator, saturday, 0, testRoster(3))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, _, err = Generate(model.DomainCollaborator, saturday, -2, testRoster(3))
	assert.ErrorIs(t, err, ErrInvalidRange)

	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	_, _, err = Generate(model.DomainCollaborator, monday, 1, testRoster(3))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestGenerate_ConsecutiveSaturdays(t *testing.T) {
	assignments, _, err := Generate(model.DomainCollaborator, saturday, 3, testRoster(3))
	require.NoError(t, err)

	for cycle := 0; cycle < 3; cycle++ {
		anchor := saturday.AddDate(0, 0, 7*cycle)
		assert.Equal(t, anchor, assignments[cycle*5].Date, "cycle %d anchor", cycle)
		assert.Equal(t, time.Saturday, assignments[cycle*5].Date.Weekday())
	}
}
