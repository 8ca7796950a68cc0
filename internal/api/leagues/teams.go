// internal/api/leagues/teams.go
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
	"github.com/codr1/Baseliner/internal/facilities"
	"github.com/codr1/Baseliner/internal/leagues"
	"github.com/codr1/Baseliner/internal/models"
)

type teamRequest struct {
	Name           string   `json:"name"`
	CaptainName    string   `json:"captainName"`
	CaptainEmail   string   `json:"captainEmail"`
	CaptainPhone   string   `json:"captainPhone"`
	HomeFacilityID *int64   `json:"homeFacilityId"`
	PreferredDays  []string `json:"preferredDays"`
}

type teamInput struct {
	Name           string
	Captain        leagues.Captain
	HomeFacilityID *int64
	PreferredDays  facilities.Weekdays
}

// GET /api/v1/leagues/{id}/teams
func HandleListLeagueTeams(w http.ResponseWriter, r *http.Request) {
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
		http.Error(w, "Failed to list teams", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, teamsListComponent(teams), nil, "Failed to render teams list", "Failed to render list") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"teams": teams}); err != nil {
		logger.Error().Err(err).Int64("league_id", league.ID).Msg("Failed to write teams response")
	}
}

// POST /api/v1/leagues/{id}/teams
func HandleTeamCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		http.Error(w, "Invalid league ID", http.StatusBadRequest)
		return
	}

	req, err := decodeTeamRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input, err := parseTeamRequest(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	row, err := q.CreateTeam(ctx, dbgen.CreateTeamParams{
		LeagueID:       leagueID,
		Name:           input.Name,
		CaptainName:    input.Captain.Name,
		CaptainEmail:   input.Captain.Email,
		CaptainPhone:   input.Captain.Phone,
		HomeFacilityID: apiutil.ToNullInt64(input.HomeFacilityID),
		PreferredDays:  input.PreferredDays.String(),
	})
	if err != nil {
		switch {
		case apiutil.IsSQLiteUniqueViolation(err):
			http.Error(w, "Team name already exists in this league", http.StatusConflict)
		case apiutil.IsSQLiteForeignKeyViolation(err):
			http.Error(w, "League or home facility not found", http.StatusNotFound)
		default:
			logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to create team")
			http.Error(w, "Failed to create team", http.StatusInternalServerError)
		}
		return
	}

	team, err := models.TeamFromRow(row)
	if err != nil {
		logger.Error().Err(err).Int64("team_id", row.ID).Msg("Failed to decode team")
		http.Error(w, "Failed to create team", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("league_id", leagueID).Int64("team_id", team.ID).Msg("Team created")
	writeTeam(w, r, team, http.StatusCreated)
}

// GET /api/v1/teams/{id}
func HandleTeamDetail(w http.ResponseWriter, r *http.Request) {
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

	writeTeam(w, r, team, http.StatusOK)
}

// PUT /api/v1/teams/{id}
func HandleTeamUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	db := loadDB()
	if db == nil {
		logger.Error().Msg("Database not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	teamID, err := apiutil.PathID(r, teamIDPathKey)
	if err != nil {
		http.Error(w, "Invalid team ID", http.StatusBadRequest)
		return
	}

	req, err := decodeTeamRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input, err := parseTeamRequest(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	var updated leagues.Team
	err = db.RunInTx(ctx, func(txdb *appdb.DB) error {
		qtx := txdb.Queries
		if _, err := qtx.GetTeam(ctx, teamID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apiutil.HandlerError{Status: http.StatusNotFound, Message: "Team not found", Err: err}
			}
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to fetch team", Err: err}
		}

		row, err := qtx.UpdateTeam(ctx, dbgen.UpdateTeamParams{
			Name:           input.Name,
			CaptainName:    input.Captain.Name,
			CaptainEmail:   input.Captain.Email,
			CaptainPhone:   input.Captain.Phone,
			HomeFacilityID: apiutil.ToNullInt64(input.HomeFacilityID),
			PreferredDays:  input.PreferredDays.String(),
			ID:             teamID,
		})
		if err != nil {
			switch {
			case apiutil.IsSQLiteUniqueViolation(err):
				return apiutil.HandlerError{Status: http.StatusConflict, Message: "Team name already exists in this league", Err: err}
			case apiutil.IsSQLiteForeignKeyViolation(err):
				return apiutil.HandlerError{Status: http.StatusNotFound, Message: "Home facility not found", Err: err}
			}
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to update team", Err: err}
		}
		updated, err = models.TeamFromRow(row)
		if err != nil {
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to update team", Err: err}
		}
		return nil
	})
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to update team")
		return
	}

	writeTeam(w, r, updated, http.StatusOK)
}

// DELETE /api/v1/teams/{id}
func HandleTeamDelete(w http.ResponseWriter, r *http.Request) {
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

	deleted, err := q.DeleteTeam(ctx, teamID)
	if err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to delete team")
		http.Error(w, "Failed to delete team", http.StatusInternalServerError)
		return
	}
	if deleted == 0 {
		http.Error(w, "Team not found", http.StatusNotFound)
		return
	}

	logger.Info().Int64("team_id", teamID).Msg("Team deleted with its matches")
	w.WriteHeader(http.StatusNoContent)
}

func writeTeam(w http.ResponseWriter, r *http.Request, team leagues.Team, status int) {
	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, teamDetailComponent(team), nil, "Failed to render team", "Failed to render team") {
			return
		}
		return
	}
	if err := apiutil.WriteJSON(w, status, map[string]any{"team": team}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("team_id", team.ID).Msg("Failed to write team response")
	}
}

func decodeTeamRequest(r *http.Request) (teamRequest, error) {
	if apiutil.IsJSONRequest(r) {
		var req teamRequest
		return req, apiutil.DecodeJSON(r, &req)
	}

	if err := r.ParseForm(); err != nil {
		return teamRequest{}, err
	}

	homeFacilityID, err := apiutil.ParseOptionalInt64Field(apiutil.FirstNonEmpty(r.FormValue("home_facility_id"), r.FormValue("homeFacilityId")), "home_facility_id")
	if err != nil {
		return teamRequest{}, err
	}

	return teamRequest{
		Name:           r.FormValue("name"),
		CaptainName:    apiutil.FirstNonEmpty(r.FormValue("captain_name"), r.FormValue("captainName")),
		CaptainEmail:   apiutil.FirstNonEmpty(r.FormValue("captain_email"), r.FormValue("captainEmail")),
		CaptainPhone:   apiutil.FirstNonEmpty(r.FormValue("captain_phone"), r.FormValue("captainPhone")),
		HomeFacilityID: homeFacilityID,
		PreferredDays:  formList(r, "preferred_days", "preferredDays"),
	}, nil
}

func parseTeamRequest(req teamRequest) (teamInput, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return teamInput{}, fmt.Errorf("name is required")
	}
	if req.HomeFacilityID != nil && *req.HomeFacilityID <= 0 {
		return teamInput{}, fmt.Errorf("home_facility_id must be greater than 0")
	}
	captain, err := leagues.NormalizeCaptain(leagues.Captain{
		Name:  req.CaptainName,
		Email: req.CaptainEmail,
		Phone: req.CaptainPhone,
	})
	if err != nil {
		return teamInput{}, err
	}
	preferred, err := facilities.ParseWeekdayList(req.PreferredDays)
	if err != nil {
		return teamInput{}, fmt.Errorf("preferred_days: %w", err)
	}
	return teamInput{
		Name:           name,
		Captain:        captain,
		HomeFacilityID: req.HomeFacilityID,
		PreferredDays:  preferred,
	}, nil
}
