// internal/models/facilities.go
package models

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dbgen "github.com/codr1/Baseliner/internal/db/generated"
	"github.com/codr1/Baseliner/internal/facilities"
)

// LoadFacility reads a facility with its weekly slots and blackout dates.
func LoadFacility(ctx context.Context, q dbgen.Querier, id int64) (facilities.Facility, error) {
	row, err := q.GetFacility(ctx, id)
	if err != nil {
		return facilities.Facility{}, err
	}
	slots, err := q.ListFacilityTimeSlots(ctx, id)
	if err != nil {
		return facilities.Facility{}, fmt.Errorf("list time slots: %w", err)
	}
	dates, err := q.ListFacilityUnavailableDates(ctx, id)
	if err != nil {
		return facilities.Facility{}, fmt.Errorf("list unavailable dates: %w", err)
	}
	return FacilityFromRows(row, slots, dates)
}

func FacilityFromRows(row dbgen.Facility, slots []dbgen.FacilityTimeSlot, dates []dbgen.FacilityUnavailableDate) (facilities.Facility, error) {
	days := make(map[time.Weekday][]facilities.TimeSlot)
	for _, slot := range slots {
		day := time.Weekday(slot.DayOfWeek)
		days[day] = append(days[day], facilities.TimeSlot{
			Time:            slot.StartTime,
			AvailableCourts: int(slot.AvailableCourts),
		})
	}
	schedule, err := facilities.NewSchedule(days, int(row.TotalCourts))
	if err != nil {
		return facilities.Facility{}, fmt.Errorf("facility %d schedule: %w", row.ID, err)
	}

	unavailable := make(map[string]string, len(dates))
	for _, d := range dates {
		unavailable[d.UnavailableDate] = d.Reason
	}

	return facilities.Facility{
		ID:               row.ID,
		Name:             row.Name,
		ShortName:        row.ShortName,
		Location:         row.Location,
		TotalCourts:      int(row.TotalCourts),
		Schedule:         schedule,
		UnavailableDates: unavailable,
	}, nil
}

// ReplaceFacilitySchedule swaps the stored weekly slots for schedule. Callers
// should pass a transactional querier.
func ReplaceFacilitySchedule(ctx context.Context, q dbgen.Querier, facilityID int64, schedule facilities.Schedule) error {
	if err := q.DeleteFacilityTimeSlots(ctx, facilityID); err != nil {
		return fmt.Errorf("delete time slots: %w", err)
	}
	for _, day := range schedule {
		for _, slot := range day.Slots {
			if _, err := q.CreateFacilityTimeSlot(ctx, dbgen.CreateFacilityTimeSlotParams{
				FacilityID:      facilityID,
				DayOfWeek:       int64(day.Day),
				StartTime:       slot.Time,
				AvailableCourts: int64(slot.AvailableCourts),
			}); err != nil {
				return fmt.Errorf("create time slot %s %s: %w", day.Day, slot.Time, err)
			}
		}
	}
	return nil
}

// FacilityUsage counts lines of scheduled matches at the facility between
// start and end inclusive, leaving out excludeMatchID.
func FacilityUsage(ctx context.Context, q dbgen.Querier, facilityID int64, start, end time.Time, excludeMatchID int64) (facilities.Usage, error) {
	rows, err := q.ListFacilityLineUsage(ctx, dbgen.ListFacilityLineUsageParams{
		FacilityID:     sql.NullInt64{Int64: facilityID, Valid: true},
		StartDate:      sql.NullString{String: facilities.DateKey(start), Valid: true},
		EndDate:        sql.NullString{String: facilities.DateKey(end), Valid: true},
		ExcludeMatchID: excludeMatchID,
	})
	if err != nil {
		return nil, fmt.Errorf("list facility line usage: %w", err)
	}
	usage := facilities.NewUsage()
	for _, row := range rows {
		if !row.MatchDate.Valid {
			continue
		}
		usage.Add(row.MatchDate.String, row.StartTime, int(row.LineCount))
	}
	return usage, nil
}
