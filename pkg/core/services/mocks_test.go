package services

import (
	"context"
	"time"

	"github.com/lucasmendes/plantao/pkg/core/model"
	"github.com/lucasmendes/plantao/pkg/db"
)

// mockStore is an in-memory stand-in for the persistence layer. Error fields
// force a failure on the matching operation.
type mockStore struct {
	people      map[string]*db.Person
	assignments map[string]*db.ShiftAssignment
	swaps       map[string]*db.SwapRequest
	runs        []db.ScheduleRun

	pendingPair bool // HasPendingSwap answer

	insertedBatches [][]db.ShiftAssignment
	resolvedSwaps   []resolvedCall
	exchangedSwaps  []string

	insertGenerationErr error
	exchangeErr         error

	// afterGetSwap runs once after the next GetSwap, letting a test
	// interleave a concurrent writer between the read and the commit
	afterGetSwap func()
}

type resolvedCall struct {
	id     string
	status string
}

func newMockStore() *mockStore {
	return &mockStore{
		people:      make(map[string]*db.Person),
		assignments: make(map[string]*db.ShiftAssignment),
		swaps:       make(map[string]*db.SwapRequest),
	}
}

func (m *mockStore) GetPeople(ctx context.Context) ([]db.Person, error) {
	people := make([]db.Person, 0, len(m.people))
	for _, p := range m.people {
		people = append(people, *p)
	}
	return people, nil
}

func (m *mockStore) GetPeopleByRole(ctx context.Context, role string) ([]db.Person, error) {
	var people []db.Person
	for _, p := range m.people {
		if p.Role == role {
			people = append(people, *p)
		}
	}
	return people, nil
}

func (m *mockStore) GetPerson(ctx context.Context, id string) (*db.Person, error) {
	person, ok := m.people[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *person
	return &copied, nil
}

func (m *mockStore) InsertPerson(ctx context.Context, person *db.Person) error {
	copied := *person
	m.people[person.ID] = &copied
	return nil
}

func (m *mockStore) UpdatePerson(ctx context.Context, person *db.Person) error {
	if _, ok := m.people[person.ID]; !ok {
		return db.ErrNotFound
	}
	copied := *person
	m.people[person.ID] = &copied
	return nil
}

func (m *mockStore) InsertGeneration(ctx context.Context, assignments []db.ShiftAssignment, run *db.ScheduleRun) error {
	if m.insertGenerationErr != nil {
		return m.insertGenerationErr
	}
	m.insertedBatches = append(m.insertedBatches, assignments)
	for i := range assignments {
		copied := assignments[i]
		m.assignments[copied.ID] = &copied
	}
	m.runs = append(m.runs, *run)
	return nil
}

func (m *mockStore) InsertAssignment(ctx context.Context, assignment *db.ShiftAssignment) error {
	for _, existing := range m.assignments {
		if existing.ShiftDate == assignment.ShiftDate && existing.SlotType == assignment.SlotType {
			return db.ErrDuplicateSlot
		}
	}
	copied := *assignment
	m.assignments[assignment.ID] = &copied
	return nil
}

func (m *mockStore) GetAssignment(ctx context.Context, id string) (*db.ShiftAssignment, error) {
	assignment, ok := m.assignments[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *assignment
	return &copied, nil
}

func (m *mockStore) DeleteAssignment(ctx context.Context, id string) error {
	if _, ok := m.assignments[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.assignments, id)
	return nil
}

func (m *mockStore) QueryAssignments(ctx context.Context, filter db.ShiftFilter) ([]db.ShiftAssignment, error) {
	var results []db.ShiftAssignment
	for _, a := range m.assignments {
		if filter.From != "" && a.ShiftDate < filter.From {
			continue
		}
		if filter.To != "" && a.ShiftDate > filter.To {
			continue
		}
		if filter.PersonID != "" && a.PersonID != filter.PersonID && a.PartnerID != filter.PersonID {
			continue
		}
		results = append(results, *a)
	}
	return results, nil
}

func (m *mockStore) ReassignShift(ctx context.Context, shiftID, newPersonID string) error {
	assignment, ok := m.assignments[shiftID]
	if !ok {
		return db.ErrNotFound
	}
	assignment.PersonID = newPersonID
	return nil
}

func (m *mockStore) ExchangeOwners(ctx context.Context, swapID, status, resolvedAt string) error {
	if m.exchangeErr != nil {
		return m.exchangeErr
	}
	request, ok := m.swaps[swapID]
	if !ok {
		return db.ErrNotFound
	}
	if request.Status != string(model.SwapPending) {
		return db.ErrSwapNotPending
	}

	requesterShift := m.assignments[request.RequesterShiftID]
	targetShift := m.assignments[request.TargetShiftID]
	if requesterShift == nil || targetShift == nil {
		return db.ErrNotFound
	}
	if requesterShift.PersonID != request.RequesterID || targetShift.PersonID != request.TargetID {
		return db.ErrStaleSwap
	}

	requesterShift.PersonID, targetShift.PersonID = targetShift.PersonID, requesterShift.PersonID
	request.Status = status
	request.ResolvedAt = resolvedAt
	m.exchangedSwaps = append(m.exchangedSwaps, swapID)
	return nil
}

func (m *mockStore) InsertSwap(ctx context.Context, request *db.SwapRequest) error {
	copied := *request
	m.swaps[request.ID] = &copied
	return nil
}

func (m *mockStore) GetSwap(ctx context.Context, id string) (*db.SwapRequest, error) {
	request, ok := m.swaps[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *request
	if m.afterGetSwap != nil {
		hook := m.afterGetSwap
		m.afterGetSwap = nil
		hook()
	}
	return &copied, nil
}

func (m *mockStore) GetSwapsByPerson(ctx context.Context, personID string) ([]db.SwapRequest, error) {
	var results []db.SwapRequest
	for _, s := range m.swaps {
		if s.RequesterID == personID || s.TargetID == personID {
			results = append(results, *s)
		}
	}
	return results, nil
}

func (m *mockStore) HasPendingSwap(ctx context.Context, requesterShiftID, targetShiftID string) (bool, error) {
	return m.pendingPair, nil
}

func (m *mockStore) ResolveSwap(ctx context.Context, id, status, resolvedAt string) error {
	request, ok := m.swaps[id]
	if !ok {
		return db.ErrNotFound
	}
	if request.Status != string(model.SwapPending) {
		return db.ErrSwapNotPending
	}
	request.Status = status
	request.ResolvedAt = resolvedAt
	m.resolvedSwaps = append(m.resolvedSwaps, resolvedCall{id: id, status: status})
	return nil
}

func (m *mockStore) GetScheduleRuns(ctx context.Context) ([]db.ScheduleRun, error) {
	return m.runs, nil
}

// mockSink records delivered notifications
type mockSink struct {
	notifications []model.Notification
	err           error
}

func (s *mockSink) Notify(ctx context.Context, notification model.Notification) error {
	if s.err != nil {
		return s.err
	}
	s.notifications = append(s.notifications, notification)
	return nil
}

// addPerson seeds a person record
func (m *mockStore) addPerson(id, name string, role model.Role, queueOrder int) {
	m.people[id] = &db.Person{
		ID:         id,
		FullName:   name,
		Role:       string(role),
		Active:     true,
		QueueOrder: queueOrder,
	}
}

// addShift seeds a shift assignment, deriving stored fields from the slot
func (m *mockStore) addShift(id, personID, date string, slot model.SlotType) {
	start, end := slot.Times()
	weekday := "SAB"
	if slot.Weekday() == time.Sunday {
		weekday = "DOM"
	}
	m.assignments[id] = &db.ShiftAssignment{
		ID:        id,
		PersonID:  personID,
		ShiftDate: date,
		Weekday:   weekday,
		SlotType:  string(slot),
		StartTime: start.String(),
		EndTime:   end.String(),
	}
}
