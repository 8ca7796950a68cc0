// Package export renders league schedules for other tools: a CSV of every
// line in a league and an iCalendar feed per team.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/codr1/Baseliner/internal/leagues"
)

var linesHeader = []string{"league", "match_id", "round", "date", "time", "line", "facility", "home_team", "visitor_team"}

// Names resolves ids to display names for exported rows.
type Names struct {
	Teams      map[int64]string
	Facilities map[int64]string
}

func (n Names) Team(id int64) string {
	if name, ok := n.Teams[id]; ok {
		return name
	}
	return fmt.Sprintf("team %d", id)
}

func (n Names) Facility(id *int64) string {
	if id == nil {
		return ""
	}
	if name, ok := n.Facilities[*id]; ok {
		return name
	}
	return fmt.Sprintf("facility %d", *id)
}

type lineRow struct {
	match leagues.Match
	line  int
	time  string
}

// WriteLinesCSV writes one row per scheduled line ordered by date, time, match
// and line. Matches with nothing scheduled follow as a single row each with
// blank date, time, and line.
func WriteLinesCSV(w io.Writer, league leagues.League, matches []leagues.Match, names Names) error {
	var scheduled, unscheduled []lineRow
	for _, m := range matches {
		if m.Date == "" || len(m.ScheduledTimes) == 0 {
			unscheduled = append(unscheduled, lineRow{match: m})
			continue
		}
		for i, t := range m.ScheduledTimes {
			scheduled = append(scheduled, lineRow{match: m, line: i + 1, time: t})
		}
	}

	sort.SliceStable(scheduled, func(i, j int) bool {
		a, b := scheduled[i], scheduled[j]
		if a.match.Date != b.match.Date {
			return a.match.Date < b.match.Date
		}
		if a.time != b.time {
			return a.time < b.time
		}
		if a.match.ID != b.match.ID {
			return a.match.ID < b.match.ID
		}
		return a.line < b.line
	})
	sort.SliceStable(unscheduled, func(i, j int) bool {
		return unscheduled[i].match.ID < unscheduled[j].match.ID
	})

	cw := csv.NewWriter(w)
	if err := cw.Write(linesHeader); err != nil {
		return err
	}
	for _, row := range append(scheduled, unscheduled...) {
		line := ""
		if row.line > 0 {
			line = strconv.Itoa(row.line)
		}
		record := []string{
			league.Name,
			strconv.FormatInt(row.match.ID, 10),
			strconv.Itoa(row.match.Round),
			row.match.Date,
			row.time,
			line,
			names.Facility(row.match.FacilityID),
			names.Team(row.match.HomeTeamID),
			names.Team(row.match.VisitorTeamID),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
