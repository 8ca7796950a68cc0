// internal/models/leagues.go
package models

import (
	"context"
	"fmt"

	dbgen "github.com/codr1/Baseliner/internal/db/generated"
	"github.com/codr1/Baseliner/internal/facilities"
	"github.com/codr1/Baseliner/internal/leagues"
)

func LeagueFromRow(row dbgen.League) (leagues.League, error) {
	backup, err := facilities.ParseWeekdays(row.BackupDays)
	if err != nil {
		return leagues.League{}, fmt.Errorf("league %d backup days: %w", row.ID, err)
	}
	return leagues.League{
		ID:               row.ID,
		Name:             row.Name,
		Year:             int(row.Year),
		Section:          row.Section,
		Region:           row.Region,
		AgeGroup:         row.AgeGroup,
		Division:         row.Division,
		NumLinesPerMatch: int(row.NumLinesPerMatch),
		BackupDays:       backup,
	}, nil
}

func LoadLeague(ctx context.Context, q dbgen.Querier, id int64) (leagues.League, error) {
	row, err := q.GetLeague(ctx, id)
	if err != nil {
		return leagues.League{}, err
	}
	return LeagueFromRow(row)
}

func TeamFromRow(row dbgen.Team) (leagues.Team, error) {
	preferred, err := facilities.ParseWeekdays(row.PreferredDays)
	if err != nil {
		return leagues.Team{}, fmt.Errorf("team %d preferred days: %w", row.ID, err)
	}
	team := leagues.Team{
		ID:       row.ID,
		LeagueID: row.LeagueID,
		Name:     row.Name,
		Captain: leagues.Captain{
			Name:  row.CaptainName,
			Email: row.CaptainEmail,
			Phone: row.CaptainPhone,
		},
		PreferredDays: preferred,
	}
	if row.HomeFacilityID.Valid {
		id := row.HomeFacilityID.Int64
		team.HomeFacilityID = &id
	}
	return team, nil
}

func LoadTeam(ctx context.Context, q dbgen.Querier, id int64) (leagues.Team, error) {
	row, err := q.GetTeam(ctx, id)
	if err != nil {
		return leagues.Team{}, err
	}
	return TeamFromRow(row)
}

func ListLeagueTeams(ctx context.Context, q dbgen.Querier, leagueID int64) ([]leagues.Team, error) {
	rows, err := q.ListLeagueTeams(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	teams := make([]leagues.Team, 0, len(rows))
	for _, row := range rows {
		team, err := TeamFromRow(row)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, nil
}
