// Package leagues holds the league scheduling rules: round-robin match
// generation with balanced home/away assignment, candidate date ranking for a
// match, placement validation against facility capacity, and fairness
// reporting.
package leagues

import (
	"github.com/codr1/Baseliner/internal/facilities"
)

type League struct {
	ID               int64               `json:"id"`
	Name             string              `json:"name"`
	Year             int                 `json:"year"`
	Section          string              `json:"section"`
	Region           string              `json:"region"`
	AgeGroup         string              `json:"ageGroup"`
	Division         string              `json:"division"`
	NumLinesPerMatch int                 `json:"numLinesPerMatch"`
	BackupDays       facilities.Weekdays `json:"backupDays"`
}

type Captain struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Team struct {
	ID             int64               `json:"id"`
	LeagueID       int64               `json:"leagueId"`
	Name           string              `json:"name"`
	Captain        Captain             `json:"captain"`
	HomeFacilityID *int64              `json:"homeFacilityId"`
	PreferredDays  facilities.Weekdays `json:"preferredDays"`
}

const (
	StatusUnscheduled = "unscheduled"
	StatusPartial     = "partial"
	StatusScheduled   = "scheduled"
)

type Match struct {
	ID            int64  `json:"id"`
	LeagueID      int64  `json:"leagueId"`
	HomeTeamID    int64  `json:"homeTeamId"`
	VisitorTeamID int64  `json:"visitorTeamId"`
	Round         int    `json:"round"`
	Date          string `json:"date,omitempty"`
	FacilityID    *int64 `json:"facilityId,omitempty"`
	// ScheduledTimes holds one start time per scheduled line, line 1 first.
	ScheduledTimes []string `json:"scheduledTimes"`
	ExpectedLines  int      `json:"expectedLines"`
}

func (m Match) NumScheduledLines() int {
	return len(m.ScheduledTimes)
}

// FullyScheduled is true once every expected line has a start time.
func (m Match) FullyScheduled() bool {
	return m.ExpectedLines > 0 && len(m.ScheduledTimes) == m.ExpectedLines
}

func (m Match) Status() string {
	switch {
	case len(m.ScheduledTimes) == 0:
		return StatusUnscheduled
	case m.FullyScheduled():
		return StatusScheduled
	default:
		return StatusPartial
	}
}

func (m Match) Involves(teamID int64) bool {
	return m.HomeTeamID == teamID || m.VisitorTeamID == teamID
}

func StatusAllowed(status string) bool {
	switch status {
	case StatusUnscheduled, StatusPartial, StatusScheduled:
		return true
	default:
		return false
	}
}
