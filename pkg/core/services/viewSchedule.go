package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/lucasmendes/plantao/pkg/db"
)

// defaultWindowWeeks is the dashboard window when no date filter is given
const defaultWindowWeeks = 4

// WeekGroup is one calendar week of shifts, Monday through Sunday
type WeekGroup struct {
	Start  time.Time
	End    time.Time
	Shifts []db.ShiftAssignment
}

// ViewScheduleStore is the store surface schedule listing needs
type ViewScheduleStore interface {
	db.ShiftStore
	db.PersonStore
}

// ViewSchedule lists shift assignments grouped by week. With no From/To
// filter it shows the next few weeks from today. A Saturday and its
// following Sunday always land in the same group.
func ViewSchedule(ctx context.Context, store ViewScheduleStore, logger *zap.Logger, filter db.ShiftFilter) ([]WeekGroup, error) {
	if filter.From == "" && filter.To == "" {
		today := time.Now()
		filter.From = today.Format(dateLayout)
		filter.To = today.AddDate(0, 0, 7*defaultWindowWeeks).Format(dateLayout)
	}

	logger.Debug("Querying shift assignments",
		zap.String("from", filter.From),
		zap.String("to", filter.To),
		zap.String("person_id", filter.PersonID),
		zap.String("weekday", filter.Weekday))

	assignments, err := store.QueryAssignments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}

	groups := make(map[string]*WeekGroup)
	for _, a := range assignments {
		date, err := time.Parse(dateLayout, a.ShiftDate)
		if err != nil {
			return nil, fmt.Errorf("invalid shift date %q: %w", a.ShiftDate, err)
		}

		weekStart := mondayOf(date)
		key := weekStart.Format(dateLayout)

		group, ok := groups[key]
		if !ok {
			group = &WeekGroup{
				Start: weekStart,
				End:   weekStart.AddDate(0, 0, 6),
			}
			groups[key] = group
		}
		group.Shifts = append(group.Shifts, a)
	}

	result := make([]WeekGroup, 0, len(groups))
	for _, group := range groups {
		result = append(result, *group)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Start.Before(result[j].Start)
	})

	logger.Info("Schedule listed", zap.Int("shifts", len(assignments)), zap.Int("weeks", len(result)))

	return result, nil
}

// mondayOf returns the Monday starting the week that contains date
func mondayOf(date time.Time) time.Time {
	normalized := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(normalized.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return normalized.AddDate(0, 0, -offset)
}

// ExportRow is one schedule line prepared for the reporting layer, with
// person names resolved
type ExportRow struct {
	Date        string
	Weekday     string
	SlotType    string
	StartTime   string
	EndTime     string
	PersonName  string
	PartnerName string
	Notes       string
}

// ExportSchedule resolves a filtered shift range into report-ready rows.
// Rendering (PDF or otherwise) is up to the caller.
func ExportSchedule(ctx context.Context, store ViewScheduleStore, logger *zap.Logger, filter db.ShiftFilter) ([]ExportRow, error) {
	assignments, err := store.QueryAssignments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}

	people, err := store.GetPeople(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch people: %w", err)
	}
	names := make(map[string]string, len(people))
	for _, p := range people {
		names[p.ID] = p.FullName
	}

	rows := make([]ExportRow, len(assignments))
	for i, a := range assignments {
		rows[i] = ExportRow{
			Date:        a.ShiftDate,
			Weekday:     a.Weekday,
			SlotType:    a.SlotType,
			StartTime:   a.StartTime,
			EndTime:     a.EndTime,
			PersonName:  names[a.PersonID],
			PartnerName: names[a.PartnerID],
			Notes:       a.Notes,
		}
	}

	logger.Info("Schedule exported", zap.Int("rows", len(rows)))

	return rows, nil
}
