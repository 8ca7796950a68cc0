// internal/api/leagues/handlers.go
package leagues

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Baseliner/internal/api/apiutil"
	"github.com/codr1/Baseliner/internal/api/htmx"
	appdb "github.com/codr1/Baseliner/internal/db"
	dbgen "github.com/codr1/Baseliner/internal/db/generated"
	"github.com/codr1/Baseliner/internal/facilities"
	"github.com/codr1/Baseliner/internal/leagues"
	"github.com/codr1/Baseliner/internal/metrics"
	"github.com/codr1/Baseliner/internal/models"
)

const (
	leagueQueryTimeout = 5 * time.Second
	leagueIDPathKey    = "id"
	teamIDPathKey      = "id"
	maxLinesPerMatch   = 9
)

var (
	queries       *dbgen.Queries
	database      *appdb.DB
	recorder      *metrics.Recorder
	matchDuration time.Duration
	nowFunc       = time.Now
)

// Options carries the collaborators league handlers need besides the store.
type Options struct {
	Recorder      *metrics.Recorder
	MatchDuration time.Duration
	Now           func() time.Time
}

type leagueRequest struct {
	Name             string   `json:"name"`
	Year             int      `json:"year"`
	Section          string   `json:"section"`
	Region           string   `json:"region"`
	AgeGroup         string   `json:"ageGroup"`
	Division         string   `json:"division"`
	NumLinesPerMatch int      `json:"numLinesPerMatch"`
	BackupDays       []string `json:"backupDays"`
}

type leagueInput struct {
	Name             string
	Year             int
	Section          string
	Region           string
	AgeGroup         string
	Division         string
	NumLinesPerMatch int
	BackupDays       facilities.Weekdays
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(db *appdb.DB, opts Options) {
	if db == nil {
		return
	}
	database = db
	queries = db.Queries
	recorder = opts.Recorder
	matchDuration = opts.MatchDuration
	if opts.Now != nil {
		nowFunc = opts.Now
	} else {
		nowFunc = time.Now
	}
}

// GET /api/v1/leagues
func HandleLeaguesList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	rows, err := q.ListLeagues(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list leagues")
		http.Error(w, "Failed to list leagues", http.StatusInternalServerError)
		return
	}
	list := make([]leagues.League, 0, len(rows))
	for _, row := range rows {
		league, err := models.LeagueFromRow(row)
		if err != nil {
			logger.Error().Err(err).Int64("league_id", row.ID).Msg("Failed to decode league")
			http.Error(w, "Failed to list leagues", http.StatusInternalServerError)
			return
		}
		list = append(list, league)
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, leaguesListComponent(list), nil, "Failed to render leagues list", "Failed to render list") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"leagues": list}); err != nil {
		logger.Error().Err(err).Msg("Failed to write leagues response")
	}
}

// POST /api/v1/leagues
func HandleLeagueCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	req, err := decodeLeagueRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input, err := parseLeagueRequest(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	row, err := q.CreateLeague(ctx, dbgen.CreateLeagueParams{
		Name:             input.Name,
		Year:             int64(input.Year),
		Section:          input.Section,
		Region:           input.Region,
		AgeGroup:         input.AgeGroup,
		Division:         input.Division,
		NumLinesPerMatch: int64(input.NumLinesPerMatch),
		BackupDays:       input.BackupDays.String(),
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create league")
		http.Error(w, "Failed to create league", http.StatusInternalServerError)
		return
	}

	league, err := models.LeagueFromRow(row)
	if err != nil {
		logger.Error().Err(err).Int64("league_id", row.ID).Msg("Failed to decode league")
		http.Error(w, "Failed to create league", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("league_id", league.ID).Str("name", league.Name).Msg("League created")
	writeLeague(w, r, league, http.StatusCreated)
}

// GET /api/v1/leagues/{id}
func HandleLeagueDetail(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	league, err := models.LoadLeague(ctx, q, leagueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "League not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to fetch league")
		http.Error(w, "Failed to fetch league", http.StatusInternalServerError)
		return
	}

	writeLeague(w, r, league, http.StatusOK)
}

// PUT /api/v1/leagues/{id}
func HandleLeagueUpdate(w http.ResponseWriter, r *http.Request) {
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

	req, err := decodeLeagueRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input, err := parseLeagueRequest(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	var updated leagues.League
	err = db.RunInTx(ctx, func(txdb *appdb.DB) error {
		qtx := txdb.Queries
		current, err := models.LoadLeague(ctx, qtx, leagueID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apiutil.HandlerError{Status: http.StatusNotFound, Message: "League not found", Err: err}
			}
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to fetch league", Err: err}
		}

		// Lowering the line count must not leave a match with more lines than expected.
		if input.NumLinesPerMatch < current.NumLinesPerMatch {
			matches, err := models.ListLeagueMatches(ctx, qtx, current)
			if err != nil {
				return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to list matches", Err: err}
			}
			for _, match := range matches {
				if match.NumScheduledLines() > input.NumLinesPerMatch {
					return apiutil.HandlerError{
						Status:  http.StatusConflict,
						Message: fmt.Sprintf("Match %d already has %d lines scheduled", match.ID, match.NumScheduledLines()),
					}
				}
			}
		}

		row, err := qtx.UpdateLeague(ctx, dbgen.UpdateLeagueParams{
			Name:             input.Name,
			Year:             int64(input.Year),
			Section:          input.Section,
			Region:           input.Region,
			AgeGroup:         input.AgeGroup,
			Division:         input.Division,
			NumLinesPerMatch: int64(input.NumLinesPerMatch),
			BackupDays:       input.BackupDays.String(),
			ID:               leagueID,
		})
		if err != nil {
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to update league", Err: err}
		}
		updated, err = models.LeagueFromRow(row)
		if err != nil {
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to update league", Err: err}
		}
		return nil
	})
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to update league")
		return
	}

	writeLeague(w, r, updated, http.StatusOK)
}

// DELETE /api/v1/leagues/{id}
func HandleLeagueDelete(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	deleted, err := q.DeleteLeague(ctx, leagueID)
	if err != nil {
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to delete league")
		http.Error(w, "Failed to delete league", http.StatusInternalServerError)
		return
	}
	if deleted == 0 {
		http.Error(w, "League not found", http.StatusNotFound)
		return
	}

	logger.Info().Int64("league_id", leagueID).Msg("League deleted")
	if htmx.IsRequest(r) {
		w.Header().Set("HX-Trigger", "leagues-changed")
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeLeague(w http.ResponseWriter, r *http.Request, league leagues.League, status int) {
	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, leagueDetailComponent(league), nil, "Failed to render league", "Failed to render league") {
			return
		}
		return
	}
	if err := apiutil.WriteJSON(w, status, map[string]any{"league": league}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("league_id", league.ID).Msg("Failed to write league response")
	}
}

func decodeLeagueRequest(r *http.Request) (leagueRequest, error) {
	if apiutil.IsJSONRequest(r) {
		var req leagueRequest
		return req, apiutil.DecodeJSON(r, &req)
	}

	if err := r.ParseForm(); err != nil {
		return leagueRequest{}, err
	}

	year, err := apiutil.ParsePositiveIntField(r.FormValue("year"), "year")
	if err != nil {
		return leagueRequest{}, err
	}
	lines, err := apiutil.ParsePositiveIntField(apiutil.FirstNonEmpty(r.FormValue("num_lines_per_match"), r.FormValue("numLinesPerMatch")), "num_lines_per_match")
	if err != nil {
		return leagueRequest{}, err
	}

	return leagueRequest{
		Name:             r.FormValue("name"),
		Year:             year,
		Section:          r.FormValue("section"),
		Region:           r.FormValue("region"),
		AgeGroup:         apiutil.FirstNonEmpty(r.FormValue("age_group"), r.FormValue("ageGroup")),
		Division:         r.FormValue("division"),
		NumLinesPerMatch: lines,
		BackupDays:       formList(r, "backup_days", "backupDays"),
	}, nil
}

func parseLeagueRequest(req leagueRequest) (leagueInput, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return leagueInput{}, fmt.Errorf("name is required")
	}
	if req.Year < 1900 || req.Year > 9999 {
		return leagueInput{}, fmt.Errorf("year must be a four digit year")
	}
	if req.NumLinesPerMatch < 1 || req.NumLinesPerMatch > maxLinesPerMatch {
		return leagueInput{}, fmt.Errorf("num_lines_per_match must be between 1 and %d", maxLinesPerMatch)
	}
	backup, err := facilities.ParseWeekdayList(req.BackupDays)
	if err != nil {
		return leagueInput{}, fmt.Errorf("backup_days: %w", err)
	}
	return leagueInput{
		Name:             name,
		Year:             req.Year,
		Section:          strings.TrimSpace(req.Section),
		Region:           strings.TrimSpace(req.Region),
		AgeGroup:         strings.TrimSpace(req.AgeGroup),
		Division:         strings.TrimSpace(req.Division),
		NumLinesPerMatch: req.NumLinesPerMatch,
		BackupDays:       backup,
	}, nil
}

// formList accepts repeated fields or a single comma separated value.
func formList(r *http.Request, keys ...string) []string {
	var out []string
	for _, key := range keys {
		for _, value := range r.Form[key] {
			out = append(out, apiutil.SplitList(value)...)
		}
	}
	return out
}

// loadLeagueFromPath loads the league named by the {id} path value, writing
// the error response itself when it fails.
func loadLeagueFromPath(ctx context.Context, w http.ResponseWriter, r *http.Request, q dbgen.Querier) (leagues.League, bool) {
	logger := log.Ctx(r.Context())

	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		http.Error(w, "Invalid league ID", http.StatusBadRequest)
		return leagues.League{}, false
	}
	league, err := models.LoadLeague(ctx, q, leagueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "League not found", http.StatusNotFound)
			return leagues.League{}, false
		}
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to fetch league")
		http.Error(w, "Failed to fetch league", http.StatusInternalServerError)
		return leagues.League{}, false
	}
	return league, true
}

func parseOptionalInt(raw string, field string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", field)
	}
	return value, nil
}

func loadQueries() *dbgen.Queries {
	return queries
}

func loadDB() *appdb.DB {
	return database
}
