// internal/models/matches.go
package models

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dbgen "github.com/codr1/Baseliner/internal/db/generated"
	"github.com/codr1/Baseliner/internal/facilities"
	"github.com/codr1/Baseliner/internal/leagues"
)

func MatchFromRow(row dbgen.Match, lines []dbgen.MatchLine, expectedLines int) leagues.Match {
	match := leagues.Match{
		ID:             row.ID,
		LeagueID:       row.LeagueID,
		HomeTeamID:     row.HomeTeamID,
		VisitorTeamID:  row.VisitorTeamID,
		Round:          int(row.Round),
		ScheduledTimes: make([]string, 0, len(lines)),
		ExpectedLines:  expectedLines,
	}
	if row.MatchDate.Valid {
		match.Date = row.MatchDate.String
	}
	if row.FacilityID.Valid {
		id := row.FacilityID.Int64
		match.FacilityID = &id
	}
	for _, line := range lines {
		match.ScheduledTimes = append(match.ScheduledTimes, line.StartTime)
	}
	return match
}

// LoadMatch reads a match with its lines and the league it belongs to.
func LoadMatch(ctx context.Context, q dbgen.Querier, id int64) (leagues.Match, leagues.League, error) {
	row, err := q.GetMatch(ctx, id)
	if err != nil {
		return leagues.Match{}, leagues.League{}, err
	}
	league, err := LoadLeague(ctx, q, row.LeagueID)
	if err != nil {
		return leagues.Match{}, leagues.League{}, fmt.Errorf("load league: %w", err)
	}
	lines, err := q.ListMatchLines(ctx, id)
	if err != nil {
		return leagues.Match{}, leagues.League{}, fmt.Errorf("list match lines: %w", err)
	}
	return MatchFromRow(row, lines, league.NumLinesPerMatch), league, nil
}

func ListLeagueMatches(ctx context.Context, q dbgen.Querier, league leagues.League) ([]leagues.Match, error) {
	rows, err := q.ListLeagueMatches(ctx, league.ID)
	if err != nil {
		return nil, err
	}
	lines, err := q.ListLeagueMatchLines(ctx, league.ID)
	if err != nil {
		return nil, fmt.Errorf("list league match lines: %w", err)
	}
	byMatch := make(map[int64][]dbgen.MatchLine)
	for _, line := range lines {
		byMatch[line.MatchID] = append(byMatch[line.MatchID], line)
	}

	matches := make([]leagues.Match, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, MatchFromRow(row, byMatch[row.ID], league.NumLinesPerMatch))
	}
	return matches, nil
}

// ListTeamMatches returns the team's matches with their lines.
func ListTeamMatches(ctx context.Context, q dbgen.Querier, team leagues.Team, expectedLines int) ([]leagues.Match, error) {
	rows, err := q.ListTeamMatches(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	matches := make([]leagues.Match, 0, len(rows))
	for _, row := range rows {
		lines, err := q.ListMatchLines(ctx, row.ID)
		if err != nil {
			return nil, fmt.Errorf("list match lines: %w", err)
		}
		matches = append(matches, MatchFromRow(row, lines, expectedLines))
	}
	return matches, nil
}

// TeamBusyDates collects the dates on which either team of match plays some
// other match.
func TeamBusyDates(ctx context.Context, q dbgen.Querier, match leagues.Match) (map[string]bool, error) {
	busy := make(map[string]bool)
	for _, teamID := range []int64{match.HomeTeamID, match.VisitorTeamID} {
		dates, err := q.ListTeamMatchDates(ctx, dbgen.ListTeamMatchDatesParams{
			TeamID:         teamID,
			ExcludeMatchID: match.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("list team %d match dates: %w", teamID, err)
		}
		for _, d := range dates {
			if d.Valid {
				busy[d.String] = true
			}
		}
	}
	return busy, nil
}

// SaveMatchPlacement replaces any earlier placement of the match. times must
// already be validated; line numbers follow their order. Callers should pass a
// transactional querier.
func SaveMatchPlacement(ctx context.Context, q dbgen.Querier, matchID int64, date time.Time, facilityID int64, times []string) error {
	if err := q.DeleteMatchLines(ctx, matchID); err != nil {
		return fmt.Errorf("delete match lines: %w", err)
	}
	if _, err := q.SetMatchPlacement(ctx, dbgen.SetMatchPlacementParams{
		MatchDate:  sql.NullString{String: facilities.DateKey(date), Valid: true},
		FacilityID: sql.NullInt64{Int64: facilityID, Valid: true},
		ID:         matchID,
	}); err != nil {
		return fmt.Errorf("set match placement: %w", err)
	}
	for i, t := range times {
		if err := q.CreateMatchLine(ctx, dbgen.CreateMatchLineParams{
			MatchID:    matchID,
			LineNumber: int64(i + 1),
			StartTime:  t,
		}); err != nil {
			return fmt.Errorf("create line %d: %w", i+1, err)
		}
	}
	return nil
}

func ClearMatchPlacement(ctx context.Context, q dbgen.Querier, matchID int64) error {
	if err := q.DeleteMatchLines(ctx, matchID); err != nil {
		return fmt.Errorf("delete match lines: %w", err)
	}
	if _, err := q.ClearMatchPlacement(ctx, matchID); err != nil {
		return err
	}
	return nil
}
