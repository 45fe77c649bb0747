package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lucasmendes/plantao/pkg/core/model"
	"github.com/lucasmendes/plantao/pkg/db"
)

func TestViewSchedule_GroupsByWeek(t *testing.T) {
	store := newMockStore()
	// Two consecutive weekends
	store.addShift("s1", "ana", "2025-03-01", model.SlotSaturdayAfternoon)
	store.addShift("s2", "bruno", "2025-03-02", model.SlotSundayMorning)
	store.addShift("s3", "carla", "2025-03-08", model.SlotSaturdayAfternoon)

	groups, err := ViewSchedule(context.Background(), store, zap.NewNop(), db.ShiftFilter{
		From: "2025-03-01",
		To:   "2025-03-31",
	})

	require.NoError(t, err)
	require.Len(t, groups, 2)

	// A Saturday and its following Sunday share a group
	first := groups[0]
	assert.Equal(t, time.Date(2025, 2, 24, 0, 0, 0, 0, time.UTC), first.Start)
	assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), first.End)
	assert.Len(t, first.Shifts, 2)

	second := groups[1]
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), second.Start)
	assert.Len(t, second.Shifts, 1)

	// Groups are ordered by week start
	assert.True(t, first.Start.Before(second.Start))
}

func TestViewSchedule_PersonFilter(t *testing.T) {
	store := newMockStore()
	store.addShift("s1", "ana", "2025-03-01", model.SlotSaturdayAfternoon)
	store.addShift("s2", "bruno", "2025-03-01", model.SlotSaturdayEvening)

	groups, err := ViewSchedule(context.Background(), store, zap.NewNop(), db.ShiftFilter{
		From:     "2025-03-01",
		To:       "2025-03-02",
		PersonID: "ana",
	})

	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Shifts, 1)
	assert.Equal(t, "ana", groups[0].Shifts[0].PersonID)
}

func TestViewSchedule_EmptyRange(t *testing.T) {
	store := newMockStore()

	groups, err := ViewSchedule(context.Background(), store, zap.NewNop(), db.ShiftFilter{
		From: "2025-03-01",
		To:   "2025-03-31",
	})

	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestMondayOf(t *testing.T) {
	monday := time.Date(2025, 2, 24, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
	}{
		{"monday maps to itself", monday},
		{"saturday", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"sunday belongs to the preceding monday", time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, monday, mondayOf(tt.date))
		})
	}
}

func TestExportSchedule(t *testing.T) {
	store := newMockStore()
	store.addPerson("ana", "Ana Souza", model.RoleTechnician, 0)
	store.addPerson("bruno", "Bruno Lima", model.RoleTechnician, 1)
	store.addShift("s1", "ana", "2025-03-01", model.SlotTechSaturday)
	store.assignments["s1"].PartnerID = "bruno"

	rows, err := ExportSchedule(context.Background(), store, zap.NewNop(), db.ShiftFilter{
		From: "2025-03-01",
		To:   "2025-03-02",
	})

	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "2025-03-01", row.Date)
	assert.Equal(t, string(model.SlotTechSaturday), row.SlotType)
	assert.Equal(t, "08:00", row.StartTime)
	assert.Equal(t, "18:00", row.EndTime)
	assert.Equal(t, "Ana Souza", row.PersonName)
	assert.Equal(t, "Bruno Lima", row.PartnerName)
}
