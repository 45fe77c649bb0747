package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lucasmendes/plantao/pkg/core/model"
	"github.com/lucasmendes/plantao/pkg/core/rotation"
	"github.com/lucasmendes/plantao/pkg/db"
)

// GenerateScheduleStore is the store surface schedule generation needs
type GenerateScheduleStore interface {
	db.PersonStore
	db.ShiftStore
}

// GenerateScheduleInput carries the parameters of one generation run
type GenerateScheduleInput struct {
	Domain    model.Domain
	StartDate string // YYYY-MM-DD Saturday; empty means the next Saturday
	Weeks     int
	CreatedBy string
}

// GenerateScheduleResult reports what a generation run produced
type GenerateScheduleResult struct {
	Run         *db.ScheduleRun
	Assignments []db.ShiftAssignment
	EndPointer  int
}

// GenerateSchedule runs the round-robin rotation for a domain and persists
// the result. All assignments are computed in memory first and written as a
// single batch; a duplicate (date, slot) anywhere rolls the whole run back.
func GenerateSchedule(ctx context.Context, store GenerateScheduleStore, logger *zap.Logger, input GenerateScheduleInput) (*GenerateScheduleResult, error) {
	logger.Info("Generating schedule",
		zap.String("domain", string(input.Domain)),
		zap.String("start_date", input.StartDate),
		zap.Int("weeks", input.Weeks))

	var start time.Time
	if input.StartDate == "" {
		start = model.NextSaturday(time.Now())
		logger.Info("No start date given, using next Saturday", zap.String("start_date", start.Format(dateLayout)))
	} else {
		var err error
		start, err = time.Parse(dateLayout, input.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start date: %w", err)
		}
	}

	logger.Debug("Fetching roster", zap.String("role", string(roleForDomain(input.Domain))))
	records, err := store.GetPeopleByRole(ctx, string(roleForDomain(input.Domain)))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch people: %w", err)
	}

	roster := rotation.ActiveRoster(dbPeopleToModel(records))
	logger.Debug("Active roster assembled", zap.Int("size", len(roster)))

	assignments, endPointer, err := rotation.Generate(input.Domain, start, input.Weeks, roster)
	if err != nil {
		return nil, err
	}

	shiftRecords := make([]db.ShiftAssignment, len(assignments))
	for i, a := range assignments {
		shiftRecords[i] = buildShiftRecord(a)
	}

	run := &db.ScheduleRun{
		ID:        uuid.New().String(),
		Domain:    string(input.Domain),
		StartDate: start.Format(dateLayout),
		Weeks:     input.Weeks,
		CreatedBy: input.CreatedBy,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	// Batch and run record commit together, all or nothing
	if err := store.InsertGeneration(ctx, shiftRecords, run); err != nil {
		return nil, fmt.Errorf("failed to persist generated schedule: %w", err)
	}

	logger.Info("Schedule generated successfully",
		zap.String("run_id", run.ID),
		zap.Int("assignments", len(shiftRecords)),
		zap.Int("end_pointer", endPointer))

	return &GenerateScheduleResult{
		Run:         run,
		Assignments: shiftRecords,
		EndPointer:  endPointer,
	}, nil
}

// ListScheduleRuns returns past generation runs, newest first
func ListScheduleRuns(ctx context.Context, store db.ScheduleRunStore, logger *zap.Logger) ([]db.ScheduleRun, error) {
	runs, err := store.GetScheduleRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule runs: %w", err)
	}

	logger.Debug("Schedule runs listed", zap.Int("count", len(runs)))

	return runs, nil
}
