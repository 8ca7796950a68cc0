package facilities

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"sun":       time.Sunday,
	"monday":    time.Monday,
	"mon":       time.Monday,
	"tuesday":   time.Tuesday,
	"tue":       time.Tuesday,
	"tues":      time.Tuesday,
	"wednesday": time.Wednesday,
	"wed":       time.Wednesday,
	"thursday":  time.Thursday,
	"thu":       time.Thursday,
	"thur":      time.Thursday,
	"thurs":     time.Thursday,
	"friday":    time.Friday,
	"fri":       time.Friday,
	"saturday":  time.Saturday,
	"sat":       time.Saturday,
}

// ParseWeekday accepts full or abbreviated English day names in any case.
func ParseWeekday(raw string) (time.Weekday, error) {
	day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", raw)
	}
	return day, nil
}

// Weekdays is a set of days of the week.
type Weekdays uint8

func NewWeekdays(days ...time.Weekday) Weekdays {
	var set Weekdays
	for _, day := range days {
		set = set.With(day)
	}
	return set
}

// ParseWeekdays parses a comma separated list such as "monday,wed".
func ParseWeekdays(raw string) (Weekdays, error) {
	return ParseWeekdayList(strings.Split(raw, ","))
}

func ParseWeekdayList(names []string) (Weekdays, error) {
	var set Weekdays
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		day, err := ParseWeekday(name)
		if err != nil {
			return 0, err
		}
		set = set.With(day)
	}
	return set, nil
}

func (w Weekdays) With(day time.Weekday) Weekdays {
	return w | 1<<uint(day)
}

func (w Weekdays) Has(day time.Weekday) bool {
	return w&(1<<uint(day)) != 0
}

func (w Weekdays) Empty() bool {
	return w == 0
}

// Days returns the members ordered Sunday first.
func (w Weekdays) Days() []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		if w.Has(day) {
			days = append(days, day)
		}
	}
	return days
}

func (w Weekdays) Names() []string {
	names := make([]string, 0, 7)
	for _, day := range w.Days() {
		names = append(names, strings.ToLower(day.String()))
	}
	return names
}

// String is the storage form: lower-case names joined by commas.
func (w Weekdays) String() string {
	return strings.Join(w.Names(), ",")
}

func (w Weekdays) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Names())
}

func (w *Weekdays) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	parsed, err := ParseWeekdayList(names)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}
