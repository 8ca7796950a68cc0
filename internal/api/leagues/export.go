// internal/api/leagues/export.go
package leagues

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Baseliner/internal/api/apiutil"
	"github.com/codr1/Baseliner/internal/export"
	"github.com/codr1/Baseliner/internal/models"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-z0-9]+`)

// GET /api/v1/leagues/{id}/lines.csv
func HandleLeagueLinesCSV(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	league, ok := loadLeagueFromPath(ctx, w, r, q)
	if !ok {
		return
	}
	matches, err := models.ListLeagueMatches(ctx, q, league)
	if err != nil {
		logger.Error().Err(err).Int64("league_id", league.ID).Msg("Failed to list matches")
		http.Error(w, "Failed to export lines", http.StatusInternalServerError)
		return
	}
	names, err := models.LeagueNames(ctx, q, league.ID)
	if err != nil {
		logger.Error().Err(err).Int64("league_id", league.ID).Msg("Failed to load names")
		http.Error(w, "Failed to export lines", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteLinesCSV(&buf, league, matches, names); err != nil {
		logger.Error().Err(err).Int64("league_id", league.ID).Msg("Failed to write lines CSV")
		http.Error(w, "Failed to export lines", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-lines.csv"`, filenameSlug(league.Name)))
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Error().Err(err).Int64("league_id", league.ID).Msg("Failed to send lines CSV")
	}
}

// GET /api/v1/teams/{id}/calendar.ics
func HandleTeamCalendar(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	teamID, err := apiutil.PathID(r, teamIDPathKey)
	if err != nil {
		http.Error(w, "Invalid team ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	team, err := models.LoadTeam(ctx, q, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Team not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to fetch team")
		http.Error(w, "Failed to fetch team", http.StatusInternalServerError)
		return
	}
	league, err := models.LoadLeague(ctx, q, team.LeagueID)
	if err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to fetch team league")
		http.Error(w, "Failed to build calendar", http.StatusInternalServerError)
		return
	}
	matches, err := models.ListTeamMatches(ctx, q, team, league.NumLinesPerMatch)
	if err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to list team matches")
		http.Error(w, "Failed to build calendar", http.StatusInternalServerError)
		return
	}
	names, err := models.LeagueNames(ctx, q, league.ID)
	if err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to load names")
		http.Error(w, "Failed to build calendar", http.StatusInternalServerError)
		return
	}

	calendar, err := export.TeamCalendar(team, matches, names, matchDuration, nowFunc())
	if err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to build calendar")
		http.Error(w, "Failed to build calendar", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.ics"`, filenameSlug(team.Name)))
	if _, err := w.Write([]byte(calendar)); err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to send calendar")
	}
}

func filenameSlug(name string) string {
	slug := strings.Trim(unsafeFilenameChars.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if slug == "" {
		return "export"
	}
	return slug
}
