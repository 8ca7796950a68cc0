// internal/api/leagues/matches.go
package leagues

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Baseliner/internal/api/apiutil"
	"github.com/codr1/Baseliner/internal/api/htmx"
	appdb "github.com/codr1/Baseliner/internal/db"
	dbgen "github.com/codr1/Baseliner/internal/db/generated"
	"github.com/codr1/Baseliner/internal/leagues"
	"github.com/codr1/Baseliner/internal/models"
)

const statusFilterAll = "all"

type matchRequest struct {
	HomeTeamID    int64 `json:"homeTeamId"`
	VisitorTeamID int64 `json:"visitorTeamId"`
	Round         int   `json:"round"`
}

type generateRequest struct {
	Legs int `json:"legs"`
}

// GET /api/v1/leagues/{id}/matches?status=
func HandleListLeagueMatches(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	status := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))
	if status == "" {
		status = statusFilterAll
	}
	if status != statusFilterAll && !leagues.StatusAllowed(status) {
		http.Error(w, "status must be all, unscheduled, partial, or scheduled", http.StatusBadRequest)
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
		http.Error(w, "Failed to list matches", http.StatusInternalServerError)
		return
	}
	names, err := models.LeagueNames(ctx, q, league.ID)
	if err != nil {
		logger.Error().Err(err).Int64("league_id", league.ID).Msg("Failed to load names")
		http.Error(w, "Failed to list matches", http.StatusInternalServerError)
		return
	}

	views := make([]models.MatchView, 0, len(matches))
	for _, match := range matches {
		if status != statusFilterAll && match.Status() != status {
			continue
		}
		views = append(views, models.NewMatchView(match, names))
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, matchesListComponent(views), nil, "Failed to render matches list", "Failed to render list") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"leagueId": league.ID,
		"status":   status,
		"matches":  views,
	}); err != nil {
		logger.Error().Err(err).Int64("league_id", league.ID).Msg("Failed to write matches response")
	}
}

// POST /api/v1/leagues/{id}/matches
func HandleMatchCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	db := loadDB()
	if db == nil {
		logger.Error().Msg("Database not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		http.Error(w, "Invalid league ID", http.StatusBadRequest)
		return
	}

	req, err := decodeMatchRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.HomeTeamID <= 0 || req.VisitorTeamID <= 0 {
		http.Error(w, "home_team_id and visitor_team_id are required", http.StatusBadRequest)
		return
	}
	if req.HomeTeamID == req.VisitorTeamID {
		http.Error(w, "home and visitor teams must differ", http.StatusBadRequest)
		return
	}
	if req.Round < 0 {
		http.Error(w, "round must be 0 or greater", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	var created leagues.Match
	var view models.MatchView
	err = db.RunInTx(ctx, func(txdb *appdb.DB) error {
		qtx := txdb.Queries
		league, err := models.LoadLeague(ctx, qtx, leagueID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apiutil.HandlerError{Status: http.StatusNotFound, Message: "League not found", Err: err}
			}
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to fetch league", Err: err}
		}
		for _, teamID := range []int64{req.HomeTeamID, req.VisitorTeamID} {
			team, err := qtx.GetTeam(ctx, teamID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return apiutil.HandlerError{Status: http.StatusNotFound, Message: fmt.Sprintf("Team %d not found", teamID), Err: err}
				}
				return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to fetch team", Err: err}
			}
			if team.LeagueID != leagueID {
				return apiutil.HandlerError{Status: http.StatusBadRequest, Message: fmt.Sprintf("Team %d is not in this league", teamID)}
			}
		}

		row, err := qtx.CreateMatch(ctx, dbgen.CreateMatchParams{
			LeagueID:      leagueID,
			HomeTeamID:    req.HomeTeamID,
			VisitorTeamID: req.VisitorTeamID,
			Round:         int64(req.Round),
		})
		if err != nil {
			if apiutil.IsSQLiteCheckViolation(err) {
				return apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid match", Err: err}
			}
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to create match", Err: err}
		}
		created = models.MatchFromRow(row, nil, league.NumLinesPerMatch)

		lookup, err := models.LeagueNames(ctx, qtx, leagueID)
		if err != nil {
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to create match", Err: err}
		}
		view = models.NewMatchView(created, lookup)
		return nil
	})
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to create match")
		return
	}

	logger.Info().Int64("league_id", leagueID).Int64("match_id", created.ID).Msg("Match created")
	if err := apiutil.WriteJSON(w, http.StatusCreated, map[string]any{"match": view}); err != nil {
		logger.Error().Err(err).Int64("match_id", created.ID).Msg("Failed to write match response")
	}
}

// POST /api/v1/leagues/{id}/matches/generate
func HandleGenerateMatches(w http.ResponseWriter, r *http.Request) {
	handleMatchGeneration(w, r, false)
}

// POST /api/v1/leagues/{id}/matches/regenerate
func HandleRegenerateMatches(w http.ResponseWriter, r *http.Request) {
	handleMatchGeneration(w, r, true)
}

func handleMatchGeneration(w http.ResponseWriter, r *http.Request, regenerate bool) {
	logger := log.Ctx(r.Context())

	db := loadDB()
	if db == nil {
		logger.Error().Msg("Database not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		http.Error(w, "Invalid league ID", http.StatusBadRequest)
		return
	}

	req, err := decodeGenerateRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Legs == 0 {
		req.Legs = 1
	}
	if req.Legs != 1 && req.Legs != 2 {
		http.Error(w, leagues.ErrInvalidLegs.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	var (
		created []leagues.Match
		removed int64
		report  leagues.FairnessReport
	)
	err = db.RunInTx(ctx, func(txdb *appdb.DB) error {
		qtx := txdb.Queries
		league, err := models.LoadLeague(ctx, qtx, leagueID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apiutil.HandlerError{Status: http.StatusNotFound, Message: "League not found", Err: err}
			}
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to fetch league", Err: err}
		}

		if regenerate {
			removed, err = qtx.DeleteLeagueMatches(ctx, leagueID)
			if err != nil {
				return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to clear existing matches", Err: err}
			}
		} else {
			existing, err := qtx.ListLeagueMatches(ctx, leagueID)
			if err != nil {
				return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to list matches", Err: err}
			}
			if len(existing) > 0 {
				return apiutil.HandlerError{Status: http.StatusConflict, Message: "League already has matches; regenerate to replace them"}
			}
		}

		teams, err := models.ListLeagueTeams(ctx, qtx, leagueID)
		if err != nil {
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to list teams", Err: err}
		}
		if len(teams) < 2 {
			return apiutil.HandlerError{Status: http.StatusBadRequest, Message: "League needs at least two teams"}
		}

		fixtures, err := leagues.GenerateRoundRobin(teams, req.Legs)
		if err != nil {
			return apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err}
		}

		created = make([]leagues.Match, 0, len(fixtures))
		for _, fixture := range fixtures {
			row, err := qtx.CreateMatch(ctx, dbgen.CreateMatchParams{
				LeagueID:      leagueID,
				HomeTeamID:    fixture.HomeTeamID,
				VisitorTeamID: fixture.VisitorTeamID,
				Round:         int64(fixture.Round),
			})
			if err != nil {
				return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to create match", Err: err}
			}
			created = append(created, models.MatchFromRow(row, nil, league.NumLinesPerMatch))
		}
		report = leagues.BuildFairnessReport(teams, created)
		return nil
	})
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to generate matches")
		return
	}

	recorder.MatchesGenerated(len(created))
	logger.Info().
		Int64("league_id", leagueID).
		Int("legs", req.Legs).
		Int("matches", len(created)).
		Int64("removed", removed).
		Bool("regenerate", regenerate).
		Msg("League matches generated")

	if htmx.IsRequest(r) {
		headers := map[string]string{"HX-Trigger": "matches-changed"}
		if !apiutil.RenderHTMLComponent(r.Context(), w, fairnessComponent(report), headers, "Failed to render generated matches", "Failed to render matches") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, map[string]any{
		"leagueId": leagueID,
		"legs":     req.Legs,
		"removed":  removed,
		"matches":  created,
		"fairness": report,
	}); err != nil {
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to write generated matches response")
	}
}

// GET /api/v1/leagues/{id}/fairness
func HandleLeagueFairness(w http.ResponseWriter, r *http.Request) {
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
	teams, err := models.ListLeagueTeams(ctx, q, league.ID)
	if err != nil {
		logger.Error().Err(err).Int64("league_id", league.ID).Msg("Failed to list teams")
		http.Error(w, "Failed to build fairness report", http.StatusInternalServerError)
		return
	}
	matches, err := models.ListLeagueMatches(ctx, q, league)
	if err != nil {
		logger.Error().Err(err).Int64("league_id", league.ID).Msg("Failed to list matches")
		http.Error(w, "Failed to build fairness report", http.StatusInternalServerError)
		return
	}

	report := leagues.BuildFairnessReport(teams, matches)

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, fairnessComponent(report), nil, "Failed to render fairness report", "Failed to render report") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"leagueId": league.ID,
		"fairness": report,
	}); err != nil {
		logger.Error().Err(err).Int64("league_id", league.ID).Msg("Failed to write fairness response")
	}
}

func decodeMatchRequest(r *http.Request) (matchRequest, error) {
	if apiutil.IsJSONRequest(r) {
		var req matchRequest
		return req, apiutil.DecodeJSON(r, &req)
	}

	if err := r.ParseForm(); err != nil {
		return matchRequest{}, err
	}
	home, err := apiutil.ParsePositiveInt64Field(apiutil.FirstNonEmpty(r.FormValue("home_team_id"), r.FormValue("homeTeamId")), "home_team_id")
	if err != nil {
		return matchRequest{}, err
	}
	visitor, err := apiutil.ParsePositiveInt64Field(apiutil.FirstNonEmpty(r.FormValue("visitor_team_id"), r.FormValue("visitorTeamId")), "visitor_team_id")
	if err != nil {
		return matchRequest{}, err
	}
	round, err := parseOptionalInt(r.FormValue("round"), "round")
	if err != nil {
		return matchRequest{}, err
	}
	return matchRequest{HomeTeamID: home, VisitorTeamID: visitor, Round: round}, nil
}

// decodeGenerateRequest accepts an empty body, which means a single leg.
func decodeGenerateRequest(r *http.Request) (generateRequest, error) {
	if apiutil.IsJSONRequest(r) {
		if r.ContentLength == 0 {
			return generateRequest{}, nil
		}
		var req generateRequest
		return req, apiutil.DecodeJSON(r, &req)
	}

	if err := r.ParseForm(); err != nil {
		return generateRequest{}, err
	}
	legs, err := parseOptionalInt(r.FormValue("legs"), "legs")
	if err != nil {
		return generateRequest{}, err
	}
	return generateRequest{Legs: legs}, nil
}
