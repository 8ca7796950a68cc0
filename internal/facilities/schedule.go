// Package facilities models a facility's weekly court availability: which
// times lines may start on each day of the week, how many courts are free at
// each of those times, and the dates on which the facility is closed.
package facilities

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidTime      = errors.New("time must be in HH:MM or H:MM AM/PM format")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrDuplicateSlot    = errors.New("duplicate time slot")
	ErrCourtsOutOfRange = errors.New("available courts out of range")
)

type TimeSlot struct {
	Time            string `json:"time"`
	AvailableCourts int    `json:"availableCourts"`
}

type DaySchedule struct {
	Day   time.Weekday `json:"-"`
	Slots []TimeSlot   `json:"slots"`
}

// Schedule holds one DaySchedule per weekday, indexed by time.Weekday.
type Schedule [7]DaySchedule

type Facility struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	ShortName   string   `json:"shortName"`
	Location    string   `json:"location"`
	TotalCourts int      `json:"totalCourts"`
	Schedule    Schedule `json:"schedule"`
	// UnavailableDates maps an ISO date to the reason the facility is closed.
	UnavailableDates map[string]string `json:"unavailableDates"`
}

// ParseTimeOfDay normalizes "18:30", "6:30 PM" or "6:30pm" to "18:30".
func ParseTimeOfDay(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidTime
	}
	if parsed, err := time.Parse("15:04", raw); err == nil {
		return parsed.Format("15:04"), nil
	}
	formats := []string{"3:04 PM", "03:04 PM", "3:04PM", "03:04PM"}
	for _, format := range formats {
		if parsed, err := time.Parse(format, strings.ToUpper(raw)); err == nil {
			return parsed.Format("15:04"), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTime, raw)
}

func ParseDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return parsed, nil
}

// DateKey formats the calendar day of t, ignoring its clock.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// TruncateDate drops the clock and moves the date to UTC so keys and weekday
// arithmetic agree.
func TruncateDate(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}

// NewSchedule validates and normalizes raw per-day slots. Slots with zero
// courts are dropped, times are normalized to HH:MM, and each day is sorted.
func NewSchedule(days map[time.Weekday][]TimeSlot, totalCourts int) (Schedule, error) {
	var schedule Schedule
	for day := time.Sunday; day <= time.Saturday; day++ {
		schedule[day].Day = day
	}
	if totalCourts <= 0 {
		return schedule, fmt.Errorf("total courts must be greater than 0")
	}

	for day, slots := range days {
		if day < time.Sunday || day > time.Saturday {
			return schedule, fmt.Errorf("invalid weekday %d", day)
		}
		seen := make(map[string]struct{}, len(slots))
		normalized := make([]TimeSlot, 0, len(slots))
		for _, slot := range slots {
			if slot.AvailableCourts == 0 {
				continue
			}
			if slot.AvailableCourts < 0 || slot.AvailableCourts > totalCourts {
				return schedule, fmt.Errorf("%w: %s %s has %d courts (facility has %d)", ErrCourtsOutOfRange, day, slot.Time, slot.AvailableCourts, totalCourts)
			}
			t, err := ParseTimeOfDay(slot.Time)
			if err != nil {
				return schedule, fmt.Errorf("%s: %w", day, err)
			}
			if _, dup := seen[t]; dup {
				return schedule, fmt.Errorf("%w: %s %s", ErrDuplicateSlot, day, t)
			}
			seen[t] = struct{}{}
			normalized = append(normalized, TimeSlot{Time: t, AvailableCourts: slot.AvailableCourts})
		}
		sort.Slice(normalized, func(i, j int) bool { return normalized[i].Time < normalized[j].Time })
		schedule[day].Slots = normalized
	}
	return schedule, nil
}

// Days returns the schedule keyed by weekday, the inverse of NewSchedule.
func (s Schedule) Days() map[time.Weekday][]TimeSlot {
	days := make(map[time.Weekday][]TimeSlot, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		if len(s[day].Slots) > 0 {
			days[day] = s[day].Slots
		}
	}
	return days
}

// OpenDays is the set of weekdays that have at least one slot.
func (s Schedule) OpenDays() Weekdays {
	var open Weekdays
	for day := time.Sunday; day <= time.Saturday; day++ {
		if len(s[day].Slots) > 0 {
			open = open.With(day)
		}
	}
	return open
}

func (f Facility) IsUnavailable(date time.Time) bool {
	_, closed := f.UnavailableDates[DateKey(date)]
	return closed
}

// SlotsOn returns the ordered slots for the date, or nil on a blackout date.
func (f Facility) SlotsOn(date time.Time) []TimeSlot {
	if f.IsUnavailable(date) {
		return nil
	}
	return f.Schedule[date.Weekday()].Slots
}

// Capacity is the number of courts available at a start time on date.
func (f Facility) Capacity(date time.Time, startTime string) int {
	for _, slot := range f.SlotsOn(date) {
		if slot.Time == startTime {
			return slot.AvailableCourts
		}
	}
	return 0
}

type SlotAvailability struct {
	Time     string `json:"time"`
	Capacity int    `json:"capacity"`
	Used     int    `json:"used"`
	Free     int    `json:"free"`
}

// Availability reports capacity, lines already started, and free courts for
// every slot on date.
func (f Facility) Availability(date time.Time, usage Usage) []SlotAvailability {
	slots := f.SlotsOn(date)
	result := make([]SlotAvailability, 0, len(slots))
	key := DateKey(date)
	for _, slot := range slots {
		used := usage.Lines(key, slot.Time)
		free := slot.AvailableCourts - used
		if free < 0 {
			free = 0
		}
		result = append(result, SlotAvailability{
			Time:     slot.Time,
			Capacity: slot.AvailableCourts,
			Used:     used,
			Free:     free,
		})
	}
	return result
}
