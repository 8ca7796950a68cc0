package export

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/codr1/Baseliner/internal/facilities"
	"github.com/codr1/Baseliner/internal/leagues"
)

const (
	icsDateTime = "20060102T150405"

	DefaultMatchDuration = 90 * time.Minute
)

// TeamCalendar builds an iCalendar document with one event per scheduled
// match of team. Times are floating local times at the facility.
func TeamCalendar(team leagues.Team, matches []leagues.Match, names Names, duration time.Duration, now time.Time) (string, error) {
	if duration <= 0 {
		duration = DefaultMatchDuration
	}

	cal := ics.NewCalendar()
	cal.SetProductId("-//Baseliner//League Schedule//EN")
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName(team.Name)

	for _, m := range matches {
		if !m.Involves(team.ID) || m.Date == "" || len(m.ScheduledTimes) == 0 {
			continue
		}
		start, end, err := matchSpan(m, duration)
		if err != nil {
			return "", fmt.Errorf("match %d: %w", m.ID, err)
		}

		event := cal.AddEvent(fmt.Sprintf("match-%d@baseliner", m.ID))
		event.SetDtStampTime(now)
		event.SetProperty(ics.ComponentPropertyDtStart, start.Format(icsDateTime))
		event.SetProperty(ics.ComponentPropertyDtEnd, end.Format(icsDateTime))
		event.SetSummary(fmt.Sprintf("%s vs %s", names.Team(m.HomeTeamID), names.Team(m.VisitorTeamID)))
		event.SetDescription(fmt.Sprintf("Round %d lines at %s", m.Round, strings.Join(m.ScheduledTimes, " and ")))
		if location := names.Facility(m.FacilityID); location != "" {
			event.SetLocation(location)
		}
	}

	return cal.Serialize(), nil
}

// matchSpan runs from the first line's start to the last line's start plus
// duration.
func matchSpan(m leagues.Match, duration time.Duration) (time.Time, time.Time, error) {
	date, err := facilities.ParseDate(m.Date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	first, last := m.ScheduledTimes[0], m.ScheduledTimes[0]
	for _, t := range m.ScheduledTimes[1:] {
		if t < first {
			first = t
		}
		if t > last {
			last = t
		}
	}
	start, err := atClock(date, first)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	lastStart, err := atClock(date, last)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, lastStart.Add(duration), nil
}

func atClock(date time.Time, hhmm string) (time.Time, error) {
	clock, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", facilities.ErrInvalidTime, hhmm)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC), nil
}
