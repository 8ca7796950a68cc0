package facilities

import (
	"fmt"
	"sort"
)

type usageKey struct {
	date string
	time string
}

// Usage counts lines already starting at a facility, by date and start time.
type Usage map[usageKey]int

func NewUsage() Usage {
	return make(Usage)
}

func (u Usage) Add(date, startTime string, lines int) {
	if lines <= 0 {
		return
	}
	u[usageKey{date: date, time: startTime}] += lines
}

func (u Usage) Lines(date, startTime string) int {
	if u == nil {
		return 0
	}
	return u[usageKey{date: date, time: startTime}]
}

// Clone copies u so callers can add tentative lines without touching the original.
func (u Usage) Clone() Usage {
	out := make(Usage, len(u))
	for k, v := range u {
		out[k] = v
	}
	return out
}

// Overbooking is a start time where placed lines exceed the courts a
// schedule offers.
type Overbooking struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Lines    int    `json:"lines"`
	Capacity int    `json:"capacity"`
}

func (o Overbooking) String() string {
	return fmt.Sprintf("%s %s (%d lines, capacity %d)", o.Date, o.Time, o.Lines, o.Capacity)
}

// Overbooked checks every placement in u against the weekly schedule s.
// Blackout dates are not considered; placements on them are reported when the
// blackout is added.
func (s Schedule) Overbooked(u Usage) []Overbooking {
	var out []Overbooking
	for key, lines := range u {
		date, err := ParseDate(key.date)
		if err != nil {
			continue
		}
		capacity := 0
		for _, slot := range s[date.Weekday()].Slots {
			if slot.Time == key.time {
				capacity = slot.AvailableCourts
				break
			}
		}
		if lines > capacity {
			out = append(out, Overbooking{Date: key.date, Time: key.time, Lines: lines, Capacity: capacity})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out
}
