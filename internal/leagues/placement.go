package leagues

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/codr1/Baseliner/internal/facilities"
)

var (
	ErrNoLines      = errors.New("at least one line time is required")
	ErrTooManyLines = errors.New("more line times than the league plays per match")
	ErrBlackoutDate = errors.New("facility is unavailable on that date")
	ErrUnknownSlot  = errors.New("facility has no slot at that time")
	ErrTeamConflict = errors.New("a team already plays another match on that date")
)

// CapacityError lists start times that would exceed the courts available.
type CapacityError struct {
	Times []string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("not enough courts at %s", strings.Join(e.Times, ", "))
}

type Placement struct {
	Match    Match
	Facility facilities.Facility
	Date     time.Time
	Times    []string
	// Usage holds lines of other matches at the facility.
	Usage     facilities.Usage
	BusyDates map[string]bool
}

// ValidatePlacement checks a requested date and set of line times for a match.
// It returns the normalized times sorted ascending, one per line.
func ValidatePlacement(p Placement) ([]string, error) {
	if len(p.Times) == 0 {
		return nil, ErrNoLines
	}
	if p.Match.ExpectedLines > 0 && len(p.Times) > p.Match.ExpectedLines {
		return nil, fmt.Errorf("%w: %d requested, %d expected", ErrTooManyLines, len(p.Times), p.Match.ExpectedLines)
	}

	times := make([]string, 0, len(p.Times))
	for _, raw := range p.Times {
		normalized, err := facilities.ParseTimeOfDay(raw)
		if err != nil {
			return nil, err
		}
		times = append(times, normalized)
	}
	sort.Strings(times)

	if p.Facility.IsUnavailable(p.Date) {
		return nil, ErrBlackoutDate
	}

	requested := make(map[string]int)
	for _, t := range times {
		requested[t]++
	}

	key := facilities.DateKey(p.Date)
	var over []string
	for _, t := range uniqueSorted(times) {
		capacity := p.Facility.Capacity(p.Date, t)
		if capacity == 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSlot, t)
		}
		if requested[t]+p.Usage.Lines(key, t) > capacity {
			over = append(over, t)
		}
	}
	if len(over) > 0 {
		return nil, &CapacityError{Times: over}
	}

	if p.BusyDates[key] {
		return nil, ErrTeamConflict
	}
	return times, nil
}

func uniqueSorted(sorted []string) []string {
	out := make([]string, 0, len(sorted))
	for i, v := range sorted {
		if i > 0 && sorted[i-1] == v {
			continue
		}
		out = append(out, v)
	}
	return out
}
