package leagues

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/codr1/Baseliner/internal/facilities"
)

var (
	ErrInvalidWindow = errors.New("window end must be on or after window start")
	ErrWindowTooLong = errors.New("window is longer than allowed")
)

// Window is an inclusive range of calendar dates.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// ResolveWindow builds the search window from optional start and end dates.
// A missing start means the day after now; a missing end covers defaultDays
// from the start.
func ResolveWindow(now time.Time, startRaw, endRaw string, defaultDays, maxDays int) (Window, error) {
	start := facilities.TruncateDate(now).AddDate(0, 0, 1)
	if strings.TrimSpace(startRaw) != "" {
		parsed, err := facilities.ParseDate(startRaw)
		if err != nil {
			return Window{}, fmt.Errorf("start: %w", err)
		}
		start = parsed
	}

	if defaultDays <= 0 {
		defaultDays = 1
	}
	end := start.AddDate(0, 0, defaultDays-1)
	if strings.TrimSpace(endRaw) != "" {
		parsed, err := facilities.ParseDate(endRaw)
		if err != nil {
			return Window{}, fmt.Errorf("end: %w", err)
		}
		end = parsed
	}

	w := Window{Start: start, End: end}
	if end.Before(start) {
		return Window{}, ErrInvalidWindow
	}
	if maxDays > 0 && w.Days() > maxDays {
		return Window{}, fmt.Errorf("%w: %d days exceeds %d", ErrWindowTooLong, w.Days(), maxDays)
	}
	return w, nil
}
