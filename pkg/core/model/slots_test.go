package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotTimes(t *testing.T) {
	tests := []struct {
		slot    SlotType
		weekday time.Weekday
		start   string
		end     string
	}{
		{SlotSaturdayAfternoon, time.Saturday, "13:00", "17:00"},
		{SlotSaturdayEvening, time.Saturday, "17:00", "21:00"},
		{SlotSundayMorning, time.Sunday, "08:00", "13:00"},
		{SlotSundayAfternoon, time.Sunday, "13:00", "17:00"},
		{SlotSundayEvening, time.Sunday, "17:00", "21:00"},
		{SlotTechSaturday, time.Saturday, "08:00", "18:00"},
		{SlotTechSunday, time.Sunday, "08:00", "18:00"},
	}

	for _, tt := range tests {
		t.Run(string(tt.slot), func(t *testing.T) {
			assert.True(t, tt.slot.IsValid())
			assert.Equal(t, tt.weekday, tt.slot.Weekday())

			start, end := tt.slot.Times()
			assert.Equal(t, tt.start, start.String())
			assert.Equal(t, tt.end, end.String())
		})
	}
}

func TestSlotDomains(t *testing.T) {
	for _, slot := range CollaboratorSlots() {
		assert.Equal(t, DomainCollaborator, slot.Domain(), string(slot))
		assert.False(t, slot.Paired(), string(slot))
	}
	for _, slot := range TechnicianSlots() {
		assert.Equal(t, DomainTechnician, slot.Domain(), string(slot))
	}

	assert.True(t, SlotTechSaturday.Paired())
	assert.False(t, SlotTechSunday.Paired())
}

func TestSlotTypeIsValid(t *testing.T) {
	assert.False(t, SlotType("SEGUNDA_MANHA").IsValid())
	assert.False(t, SlotType("").IsValid())
}

func TestMatchesDate(t *testing.T) {
	saturday := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	sunday := saturday.AddDate(0, 0, 1)

	assert.True(t, SlotSaturdayAfternoon.MatchesDate(saturday))
	assert.False(t, SlotSaturdayAfternoon.MatchesDate(sunday))
	assert.True(t, SlotSundayMorning.MatchesDate(sunday))
	assert.False(t, SlotSundayMorning.MatchesDate(saturday))
}

func TestCycleDates(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	dates, err := CycleDates(start, 4)
	require.NoError(t, err)
	require.Len(t, dates, 4)

	for i, date := range dates {
		assert.Equal(t, start.AddDate(0, 0, 7*i), date, "cycle %d", i)
		assert.Equal(t, time.Saturday, date.Weekday())
	}
}

func TestNextSaturday(t *testing.T) {
	tests := []struct {
		name     string
		from     time.Time
		expected time.Time
	}{
		{"from a wednesday", time.Date(2025, 2, 26, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"from a friday", time.Date(2025, 2, 28, 15, 30, 0, 0, time.UTC), time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"from a saturday skips to the next one", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)},
		{"from a sunday", time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextSaturday(tt.from))
		})
	}
}

func TestDomainIsValid(t *testing.T) {
	assert.True(t, DomainCollaborator.IsValid())
	assert.True(t, DomainTechnician.IsValid())
	assert.False(t, Domain("gerente").IsValid())
}
