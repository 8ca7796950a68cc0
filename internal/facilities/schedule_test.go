package facilities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := ParseDate(raw)
	require.NoError(t, err)
	return d
}

func TestParseTimeOfDay(t *testing.T) {
	cases := map[string]string{
		"18:30":    "18:30",
		"08:00":    "08:00",
		"6:30 PM":  "18:30",
		"6:30pm":   "18:30",
		"09:15 am": "09:15",
		" 7:00 AM": "07:00",
	}
	for raw, want := range cases {
		got, err := ParseTimeOfDay(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, raw := range []string{"", "25:00", "noon", "6pm"} {
		_, err := ParseTimeOfDay(raw)
		assert.ErrorIs(t, err, ErrInvalidTime, raw)
	}
}

func TestNewScheduleNormalizesAndSorts(t *testing.T) {
	schedule, err := NewSchedule(map[time.Weekday][]TimeSlot{
		time.Monday: {
			{Time: "7:30 PM", AvailableCourts: 2},
			{Time: "18:00", AvailableCourts: 4},
			{Time: "20:30", AvailableCourts: 0},
		},
	}, 4)
	require.NoError(t, err)

	assert.Equal(t, []TimeSlot{
		{Time: "18:00", AvailableCourts: 4},
		{Time: "19:30", AvailableCourts: 2},
	}, schedule[time.Monday].Slots)
	assert.Empty(t, schedule[time.Tuesday].Slots)
	assert.Equal(t, time.Saturday, schedule[time.Saturday].Day)
	assert.Equal(t, NewWeekdays(time.Monday), schedule.OpenDays())
}

func TestNewScheduleRejectsBadSlots(t *testing.T) {
	_, err := NewSchedule(map[time.Weekday][]TimeSlot{
		time.Monday: {{Time: "18:00", AvailableCourts: 5}},
	}, 4)
	assert.ErrorIs(t, err, ErrCourtsOutOfRange)

	_, err = NewSchedule(map[time.Weekday][]TimeSlot{
		time.Monday: {{Time: "18:00", AvailableCourts: 1}, {Time: "6:00 PM", AvailableCourts: 2}},
	}, 4)
	assert.ErrorIs(t, err, ErrDuplicateSlot)

	_, err = NewSchedule(nil, 0)
	assert.Error(t, err)
}

func TestBlackoutOverridesWeeklySchedule(t *testing.T) {
	schedule, err := NewSchedule(map[time.Weekday][]TimeSlot{
		time.Saturday: {{Time: "09:00", AvailableCourts: 3}},
	}, 3)
	require.NoError(t, err)

	facility := Facility{
		TotalCourts:      3,
		Schedule:         schedule,
		UnavailableDates: map[string]string{"2025-06-14": "club tournament"},
	}

	open := mustDate(t, "2025-06-07")
	closed := mustDate(t, "2025-06-14")

	assert.Len(t, facility.SlotsOn(open), 1)
	assert.Equal(t, 3, facility.Capacity(open, "09:00"))
	assert.Equal(t, 0, facility.Capacity(open, "10:00"))

	assert.True(t, facility.IsUnavailable(closed))
	assert.Empty(t, facility.SlotsOn(closed))
	assert.Equal(t, 0, facility.Capacity(closed, "09:00"))
}

func TestAvailabilitySubtractsUsage(t *testing.T) {
	schedule, err := NewSchedule(map[time.Weekday][]TimeSlot{
		time.Tuesday: {{Time: "18:00", AvailableCourts: 4}, {Time: "19:30", AvailableCourts: 2}},
	}, 4)
	require.NoError(t, err)
	facility := Facility{TotalCourts: 4, Schedule: schedule}

	usage := NewUsage()
	usage.Add("2025-06-10", "18:00", 3)
	usage.Add("2025-06-10", "19:30", 5)

	got := facility.Availability(mustDate(t, "2025-06-10"), usage)
	assert.Equal(t, []SlotAvailability{
		{Time: "18:00", Capacity: 4, Used: 3, Free: 1},
		{Time: "19:30", Capacity: 2, Used: 5, Free: 0},
	}, got)
}

func TestUsageCloneIsIndependent(t *testing.T) {
	usage := NewUsage()
	usage.Add("2025-06-10", "18:00", 1)
	clone := usage.Clone()
	clone.Add("2025-06-10", "18:00", 2)

	assert.Equal(t, 1, usage.Lines("2025-06-10", "18:00"))
	assert.Equal(t, 3, clone.Lines("2025-06-10", "18:00"))

	var empty Usage
	assert.Equal(t, 0, empty.Lines("2025-06-10", "18:00"))
}

func TestScheduleOverbookedListsPlacementsThatNoLongerFit(t *testing.T) {
	schedule, err := NewSchedule(map[time.Weekday][]TimeSlot{
		time.Tuesday: {{Time: "18:00", AvailableCourts: 1}, {Time: "19:30", AvailableCourts: 2}},
	}, 4)
	require.NoError(t, err)

	usage := NewUsage()
	usage.Add("2025-06-17", "19:30", 2)
	usage.Add("2025-06-10", "18:00", 3)
	usage.Add("2025-06-10", "19:30", 2)
	usage.Add("2025-06-09", "18:00", 1)

	got := schedule.Overbooked(usage)
	assert.Equal(t, []Overbooking{
		{Date: "2025-06-09", Time: "18:00", Lines: 1, Capacity: 0},
		{Date: "2025-06-10", Time: "18:00", Lines: 3, Capacity: 1},
	}, got)
	assert.Equal(t, "2025-06-10 18:00 (3 lines, capacity 1)", got[1].String())

	assert.Empty(t, schedule.Overbooked(NewUsage()))
}

func TestWeekdays(t *testing.T) {
	days, err := ParseWeekdays("Wed, monday,,SAT")
	require.NoError(t, err)
	assert.True(t, days.Has(time.Monday))
	assert.True(t, days.Has(time.Wednesday))
	assert.True(t, days.Has(time.Saturday))
	assert.False(t, days.Has(time.Sunday))
	assert.Equal(t, "monday,wednesday,saturday", days.String())

	_, err = ParseWeekdays("funday")
	assert.Error(t, err)

	encoded, err := json.Marshal(days)
	require.NoError(t, err)
	assert.JSONEq(t, `["monday","wednesday","saturday"]`, string(encoded))

	var decoded Weekdays
	require.NoError(t, json.Unmarshal([]byte(`["tue","Thursday"]`), &decoded))
	assert.Equal(t, NewWeekdays(time.Tuesday, time.Thursday), decoded)

	assert.True(t, Weekdays(0).Empty())
	assert.Equal(t, "", Weekdays(0).String())
}
