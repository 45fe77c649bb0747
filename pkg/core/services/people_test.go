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

func TestRegisterPerson_AppendsToQueue(t *testing.T) {
	store := newMockStore()
	store.addPerson("ana", "Ana", model.RoleCollaborator, 0)
	store.addPerson("bruno", "Bruno", model.RoleCollaborator, 4)

	person, err := RegisterPerson(context.Background(), store, zap.NewNop(), RegisterPersonInput{
		FullName: "Carla",
		Role:     model.RoleCollaborator,
		Email:    "carla@example.com",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, person.ID)
	assert.Equal(t, 5, person.QueueOrder, "joins after the highest existing order")
	assert.True(t, person.Active)

	stored, err := store.GetPerson(context.Background(), person.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carla", stored.FullName)
}

func TestRegisterPerson_ExplicitQueueOrder(t *testing.T) {
	store := newMockStore()
	store.addPerson("ana", "Ana", model.RoleCollaborator, 3)

	order := 1
	person, err := RegisterPerson(context.Background(), store, zap.NewNop(), RegisterPersonInput{
		FullName:   "Bruno",
		Role:       model.RoleCollaborator,
		QueueOrder: &order,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, person.QueueOrder)
}

func TestRegisterPerson_QueuesArePerRole(t *testing.T) {
	store := newMockStore()
	store.addPerson("ana", "Ana", model.RoleCollaborator, 9)

	person, err := RegisterPerson(context.Background(), store, zap.NewNop(), RegisterPersonInput{
		FullName: "Diego",
		Role:     model.RoleTechnician,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, person.QueueOrder, "technician queue is independent")
}

func TestRegisterPerson_Validation(t *testing.T) {
	store := newMockStore()

	_, err := RegisterPerson(context.Background(), store, zap.NewNop(), RegisterPersonInput{
		Role: model.RoleCollaborator,
	})
	assert.ErrorContains(t, err, "full name is required")

	_, err = RegisterPerson(context.Background(), store, zap.NewNop(), RegisterPersonInput{
		FullName: "Ana",
		Role:     model.Role("gerente"),
	})
	assert.ErrorContains(t, err, "unknown role")
}

func TestDeactivatePerson(t *testing.T) {
	store := newMockStore()
	store.addPerson("ana", "Ana", model.RoleCollaborator, 0)

	err := DeactivatePerson(context.Background(), store, zap.NewNop(), "ana")

	require.NoError(t, err)
	assert.False(t, store.people["ana"].Active)

	err = DeactivatePerson(context.Background(), store, zap.NewNop(), "missing")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestListPeople(t *testing.T) {
	store := newMockStore()
	store.addPerson("ana", "Ana", model.RoleCollaborator, 0)
	store.addPerson("diego", "Diego", model.RoleTechnician, 0)

	all, err := ListPeople(context.Background(), store, zap.NewNop(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	technicians, err := ListPeople(context.Background(), store, zap.NewNop(), model.RoleTechnician)
	require.NoError(t, err)
	require.Len(t, technicians, 1)
	assert.Equal(t, "diego", technicians[0].ID)
}

func TestUpdateQueueOrder(t *testing.T) {
	store := newMockStore()
	store.addPerson("ana", "Ana", model.RoleCollaborator, 0)

	err := UpdateQueueOrder(context.Background(), store, zap.NewNop(), "ana", 7)

	require.NoError(t, err)
	assert.Equal(t, 7, store.people["ana"].QueueOrder)
}
