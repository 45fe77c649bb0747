package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lucasmendes/plantao/pkg/core/model"
	"github.com/lucasmendes/plantao/pkg/db"
)

func TestAddShift(t *testing.T) {
	store := newMockStore()

	record, err := AddShift(context.Background(), store, zap.NewNop(), AddShiftInput{
		PersonID: "ana",
		Date:     "2025-03-01",
		SlotType: model.SlotSaturdayAfternoon,
		Notes:    "cobertura extra",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "ana", record.PersonID)
	assert.Equal(t, "2025-03-01", record.ShiftDate)
	assert.Equal(t, "SAB", record.Weekday)
	assert.Equal(t, "13:00", record.StartTime)
	assert.Equal(t, "17:00", record.EndTime)
	assert.Equal(t, "cobertura extra", record.Notes)

	_, ok := store.assignments[record.ID]
	assert.True(t, ok)
}

func TestAddShift_PairedSlotTakesPartner(t *testing.T) {
	store := newMockStore()

	record, err := AddShift(context.Background(), store, zap.NewNop(), AddShiftInput{
		PersonID:  "diego",
		PartnerID: "elisa",
		Date:      "2025-03-01",
		SlotType:  model.SlotTechSaturday,
	})

	require.NoError(t, err)
	assert.Equal(t, "elisa", record.PartnerID)
}

func TestAddShift_PartnerRejectedOnSoloSlot(t *testing.T) {
	store := newMockStore()

	_, err := AddShift(context.Background(), store, zap.NewNop(), AddShiftInput{
		PersonID:  "ana",
		PartnerID: "bruno",
		Date:      "2025-03-01",
		SlotType:  model.SlotSaturdayAfternoon,
	})

	assert.ErrorContains(t, err, "does not take a second person")
	assert.Empty(t, store.assignments)
}

func TestAddShift_WeekdayMismatch(t *testing.T) {
	store := newMockStore()

	// 2025-03-02 is a Sunday
	_, err := AddShift(context.Background(), store, zap.NewNop(), AddShiftInput{
		PersonID: "ana",
		Date:     "2025-03-02",
		SlotType: model.SlotSaturdayAfternoon,
	})

	assert.Error(t, err)
	assert.Empty(t, store.assignments)
}

func TestAddShift_UnknownSlot(t *testing.T) {
	store := newMockStore()

	_, err := AddShift(context.Background(), store, zap.NewNop(), AddShiftInput{
		PersonID: "ana",
		Date:     "2025-03-01",
		SlotType: model.SlotType("MADRUGADA"),
	})

	assert.ErrorContains(t, err, "unknown slot type")
}

func TestAddShift_DuplicateSlot(t *testing.T) {
	store := newMockStore()
	store.addShift("existing", "bruno", "2025-03-01", model.SlotSaturdayAfternoon)

	_, err := AddShift(context.Background(), store, zap.NewNop(), AddShiftInput{
		PersonID: "ana",
		Date:     "2025-03-01",
		SlotType: model.SlotSaturdayAfternoon,
	})

	assert.ErrorIs(t, err, db.ErrDuplicateSlot)
}

func TestDeleteShift(t *testing.T) {
	store := newMockStore()
	store.addShift("s1", "ana", "2025-03-01", model.SlotSaturdayAfternoon)

	err := DeleteShift(context.Background(), store, zap.NewNop(), "s1")

	require.NoError(t, err)
	assert.Empty(t, store.assignments)

	err = DeleteShift(context.Background(), store, zap.NewNop(), "s1")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestReassignShift(t *testing.T) {
	store := newMockStore()
	store.addShift("s1", "ana", "2025-03-01", model.SlotSaturdayAfternoon)

	err := ReassignShift(context.Background(), store, zap.NewNop(), "s1", "bruno")

	require.NoError(t, err)
	assert.Equal(t, "bruno", store.assignments["s1"].PersonID)
}
