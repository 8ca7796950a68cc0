// internal/models/views.go
package models

import (
	"context"
	"fmt"

	dbgen "github.com/codr1/Baseliner/internal/db/generated"
	"github.com/codr1/Baseliner/internal/export"
	"github.com/codr1/Baseliner/internal/leagues"
)

// MatchView is a match with its derived state and display names.
type MatchView struct {
	leagues.Match
	Status            string `json:"status"`
	NumScheduledLines int    `json:"numScheduledLines"`
	HomeTeam          string `json:"homeTeam"`
	VisitorTeam       string `json:"visitorTeam"`
	Facility          string `json:"facility,omitempty"`
}

func NewMatchView(m leagues.Match, names export.Names) MatchView {
	return MatchView{
		Match:             m,
		Status:            m.Status(),
		NumScheduledLines: m.NumScheduledLines(),
		HomeTeam:          names.Team(m.HomeTeamID),
		VisitorTeam:       names.Team(m.VisitorTeamID),
		Facility:          names.Facility(m.FacilityID),
	}
}

// LeagueNames resolves the team names of a league and every facility name.
func LeagueNames(ctx context.Context, q dbgen.Querier, leagueID int64) (export.Names, error) {
	teams, err := q.ListLeagueTeams(ctx, leagueID)
	if err != nil {
		return export.Names{}, fmt.Errorf("list league teams: %w", err)
	}
	rows, err := q.ListFacilities(ctx)
	if err != nil {
		return export.Names{}, fmt.Errorf("list facilities: %w", err)
	}

	names := export.Names{
		Teams:      make(map[int64]string, len(teams)),
		Facilities: make(map[int64]string, len(rows)),
	}
	for _, team := range teams {
		names.Teams[team.ID] = team.Name
	}
	for _, row := range rows {
		names.Facilities[row.ID] = row.Name
	}
	return names, nil
}
