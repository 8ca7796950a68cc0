// internal/api/matches/handlers.go
package matches

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
	"github.com/codr1/Baseliner/internal/config"
	appdb "github.com/codr1/Baseliner/internal/db"
	dbgen "github.com/codr1/Baseliner/internal/db/generated"
	"github.com/codr1/Baseliner/internal/email"
	"github.com/codr1/Baseliner/internal/facilities"
	"github.com/codr1/Baseliner/internal/leagues"
	"github.com/codr1/Baseliner/internal/metrics"
	"github.com/codr1/Baseliner/internal/models"
)

const (
	matchQueryTimeout = 5 * time.Second
	matchIDPathKey    = "id"
	maxCandidateLimit = 50
)

var (
	queries    *dbgen.Queries
	database   *appdb.DB
	recorder   *metrics.Recorder
	sender     email.EmailSender
	scheduling config.SchedulingConfig
	nowFunc    = time.Now
)

// Options carries the collaborators match handlers need besides the store.
type Options struct {
	Scheduling config.SchedulingConfig
	Recorder   *metrics.Recorder
	// Sender is nil when email is not configured.
	Sender email.EmailSender
	Now    func() time.Time
}

type scheduleRequest struct {
	Date       string   `json:"date"`
	FacilityID *int64   `json:"facilityId"`
	Times      []string `json:"times"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(db *appdb.DB, opts Options) {
	if db == nil {
		return
	}
	database = db
	queries = db.Queries
	recorder = opts.Recorder
	sender = opts.Sender
	scheduling = opts.Scheduling
	if opts.Now != nil {
		nowFunc = opts.Now
	} else {
		nowFunc = time.Now
	}
}

// GET /api/v1/matches/{id}
func HandleMatchDetail(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	matchID, err := apiutil.PathID(r, matchIDPathKey)
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	view, err := loadMatchView(ctx, q, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Match not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to fetch match")
		http.Error(w, "Failed to fetch match", http.StatusInternalServerError)
		return
	}

	writeMatch(w, r, view, http.StatusOK)
}

// DELETE /api/v1/matches/{id}
func HandleMatchDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	matchID, err := apiutil.PathID(r, matchIDPathKey)
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	deleted, err := q.DeleteMatch(ctx, matchID)
	if err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to delete match")
		http.Error(w, "Failed to delete match", http.StatusInternalServerError)
		return
	}
	if deleted == 0 {
		http.Error(w, "Match not found", http.StatusNotFound)
		return
	}

	logger.Info().Int64("match_id", matchID).Msg("Match deleted")
	if htmx.IsRequest(r) {
		w.Header().Set("HX-Trigger", "matches-changed")
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/matches/{id}/candidates?start=&end=&facility_id=&limit=&allow_split=
func HandleMatchCandidates(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	started := time.Now()

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	matchID, err := apiutil.PathID(r, matchIDPathKey)
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	query := r.URL.Query()
	facilityOverride, err := apiutil.ParseOptionalInt64Field(query.Get("facility_id"), "facility_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	limit, err := candidateLimit(query.Get("limit"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	allowSplit := scheduling.AllowSplitLines == nil || *scheduling.AllowSplitLines
	if raw := strings.TrimSpace(query.Get("allow_split")); raw != "" {
		allowSplit, err = strconv.ParseBool(raw)
		if err != nil {
			http.Error(w, "allow_split must be true or false", http.StatusBadRequest)
			return
		}
	}

	window, err := leagues.ResolveWindow(nowFunc(), query.Get("start"), query.Get("end"), scheduling.DefaultWindowDays, scheduling.MaxWindowDays)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	match, league, err := models.LoadMatch(ctx, q, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Match not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to fetch match")
		http.Error(w, "Failed to fetch match", http.StatusInternalServerError)
		return
	}
	home, visitor, err := loadMatchTeams(ctx, q, match)
	if err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to fetch match teams")
		http.Error(w, "Failed to fetch match teams", http.StatusInternalServerError)
		return
	}

	facilityID := facilityOverride
	if facilityID == nil {
		facilityID = home.HomeFacilityID
	}
	if facilityID == nil {
		http.Error(w, "Home team has no home facility; pass facility_id", http.StatusUnprocessableEntity)
		return
	}

	facility, err := models.LoadFacility(ctx, q, *facilityID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Facility not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("facility_id", *facilityID).Msg("Failed to fetch facility")
		http.Error(w, "Failed to fetch facility", http.StatusInternalServerError)
		return
	}
	usage, err := models.FacilityUsage(ctx, q, facility.ID, window.Start, window.End, match.ID)
	if err != nil {
		logger.Error().Err(err).Int64("facility_id", facility.ID).Msg("Failed to load facility usage")
		http.Error(w, "Failed to load facility usage", http.StatusInternalServerError)
		return
	}
	busy, err := models.TeamBusyDates(ctx, q, match)
	if err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to load team dates")
		http.Error(w, "Failed to load team dates", http.StatusInternalServerError)
		return
	}

	candidates, err := leagues.GenerateCandidates(leagues.CandidateRequest{
		League:     league,
		Home:       home,
		Visitor:    visitor,
		Facility:   facility,
		Usage:      usage,
		BusyDates:  busy,
		Window:     window,
		Weights:    weightsFromConfig(scheduling.Weights),
		AllowSplit: allowSplit,
		Limit:      limit,
	})
	if err != nil {
		recorder.CandidateSearch(metrics.OutcomeError, time.Since(started))
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to generate candidates")
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	outcome := metrics.OutcomeFound
	if len(candidates) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	recorder.CandidateSearch(outcome, time.Since(started))
	logger.Debug().
		Int64("match_id", matchID).
		Int64("facility_id", facility.ID).
		Int("window_days", window.Days()).
		Int("candidates", len(candidates)).
		Msg("Candidate dates generated")

	if htmx.IsRequest(r) {
		component := candidatesComponent(match, facility, candidates)
		if !apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render candidates", "Failed to render candidates") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"matchId":    match.ID,
		"facilityId": facility.ID,
		"window": map[string]string{
			"start": facilities.DateKey(window.Start),
			"end":   facilities.DateKey(window.End),
		},
		"allowSplit": allowSplit,
		"candidates": candidates,
	}); err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to write candidates response")
	}
}

// PUT /api/v1/matches/{id}/schedule
func HandleMatchSchedule(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	db := loadDB()
	if db == nil {
		logger.Error().Msg("Database not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	matchID, err := apiutil.PathID(r, matchIDPathKey)
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	req, err := decodeScheduleRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	date, err := facilities.ParseDate(req.Date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	var notice *email.Message
	var recipients []string
	err = db.RunInTx(ctx, func(txdb *appdb.DB) error {
		qtx := txdb.Queries
		match, league, err := models.LoadMatch(ctx, qtx, matchID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apiutil.HandlerError{Status: http.StatusNotFound, Message: "Match not found", Err: err}
			}
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to fetch match", Err: err}
		}
		home, visitor, err := loadMatchTeams(ctx, qtx, match)
		if err != nil {
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to fetch match teams", Err: err}
		}

		facilityID := req.FacilityID
		if facilityID == nil {
			facilityID = home.HomeFacilityID
		}
		if facilityID == nil {
			return apiutil.HandlerError{Status: http.StatusUnprocessableEntity, Message: "Home team has no home facility; pass facility_id"}
		}
		facility, err := models.LoadFacility(ctx, qtx, *facilityID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apiutil.HandlerError{Status: http.StatusNotFound, Message: "Facility not found", Err: err}
			}
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to fetch facility", Err: err}
		}

		usage, err := models.FacilityUsage(ctx, qtx, facility.ID, date, date, match.ID)
		if err != nil {
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to load facility usage", Err: err}
		}
		busy, err := models.TeamBusyDates(ctx, qtx, match)
		if err != nil {
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to load team dates", Err: err}
		}

		times, err := leagues.ValidatePlacement(leagues.Placement{
			Match:     match,
			Facility:  facility,
			Date:      date,
			Times:     req.Times,
			Usage:     usage,
			BusyDates: busy,
		})
		if err != nil {
			return placementError(err)
		}

		if err := models.SaveMatchPlacement(ctx, qtx, match.ID, date, facility.ID, times); err != nil {
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to save placement", Err: err}
		}

		msg := email.BuildMatchScheduled(email.MatchScheduledDetails{
			LeagueName:   league.Name,
			Round:        match.Round,
			HomeTeam:     home.Name,
			VisitorTeam:  visitor.Name,
			FacilityName: facility.Name,
			Location:     facility.Location,
			Date:         date,
			Times:        times,
			Expected:     match.ExpectedLines,
		})
		notice = &msg
		recipients = email.Recipients(home.Captain.Email, visitor.Captain.Email)
		return nil
	})
	if err != nil {
		var herr apiutil.HandlerError
		if errors.As(err, &herr) && herr.Status < http.StatusInternalServerError {
			recorder.Placement(metrics.OutcomeRejected)
		} else {
			recorder.Placement(metrics.OutcomeError)
		}
		apiutil.WriteHandlerError(w, r, err, "Failed to schedule match")
		return
	}
	recorder.Placement(metrics.OutcomeOK)

	q := loadQueries()
	view, err := loadMatchView(ctx, q, matchID)
	if err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to reload scheduled match")
		http.Error(w, "Failed to fetch match", http.StatusInternalServerError)
		return
	}

	logger.Info().
		Int64("match_id", matchID).
		Str("date", view.Date).
		Strs("times", view.ScheduledTimes).
		Str("status", view.Status).
		Msg("Match scheduled")

	if notice != nil {
		email.SendAsync(r.Context(), sender, recipients, *notice, logger)
	}

	writeMatch(w, r, view, http.StatusOK)
}

// DELETE /api/v1/matches/{id}/schedule
func HandleMatchUnschedule(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	db := loadDB()
	if db == nil {
		logger.Error().Msg("Database not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	matchID, err := apiutil.PathID(r, matchIDPathKey)
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	err = db.RunInTx(ctx, func(txdb *appdb.DB) error {
		if _, err := txdb.Queries.GetMatch(ctx, matchID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apiutil.HandlerError{Status: http.StatusNotFound, Message: "Match not found", Err: err}
			}
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to fetch match", Err: err}
		}
		if err := models.ClearMatchPlacement(ctx, txdb.Queries, matchID); err != nil {
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to clear placement", Err: err}
		}
		return nil
	})
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to unschedule match")
		return
	}

	view, err := loadMatchView(ctx, loadQueries(), matchID)
	if err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to reload match")
		http.Error(w, "Failed to fetch match", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("match_id", matchID).Msg("Match unscheduled")
	writeMatch(w, r, view, http.StatusOK)
}

// placementError maps a rejected placement to the response status.
func placementError(err error) error {
	var capacity *leagues.CapacityError
	switch {
	case errors.As(err, &capacity):
		return apiutil.HandlerError{Status: http.StatusConflict, Message: capacity.Error(), Err: err}
	case errors.Is(err, leagues.ErrTeamConflict):
		return apiutil.HandlerError{Status: http.StatusConflict, Message: err.Error(), Err: err}
	case errors.Is(err, leagues.ErrBlackoutDate), errors.Is(err, leagues.ErrUnknownSlot):
		return apiutil.HandlerError{Status: http.StatusUnprocessableEntity, Message: err.Error(), Err: err}
	default:
		return apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err}
	}
}

func loadMatchTeams(ctx context.Context, q dbgen.Querier, match leagues.Match) (leagues.Team, leagues.Team, error) {
	home, err := models.LoadTeam(ctx, q, match.HomeTeamID)
	if err != nil {
		return leagues.Team{}, leagues.Team{}, fmt.Errorf("load home team: %w", err)
	}
	visitor, err := models.LoadTeam(ctx, q, match.VisitorTeamID)
	if err != nil {
		return leagues.Team{}, leagues.Team{}, fmt.Errorf("load visitor team: %w", err)
	}
	return home, visitor, nil
}

func loadMatchView(ctx context.Context, q dbgen.Querier, matchID int64) (models.MatchView, error) {
	match, league, err := models.LoadMatch(ctx, q, matchID)
	if err != nil {
		return models.MatchView{}, err
	}
	names, err := models.LeagueNames(ctx, q, league.ID)
	if err != nil {
		return models.MatchView{}, err
	}
	return models.NewMatchView(match, names), nil
}

func writeMatch(w http.ResponseWriter, r *http.Request, view models.MatchView, status int) {
	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, matchDetailComponent(view), nil, "Failed to render match", "Failed to render match") {
			return
		}
		return
	}
	if err := apiutil.WriteJSON(w, status, map[string]any{"match": view}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("match_id", view.ID).Msg("Failed to write match response")
	}
}

func decodeScheduleRequest(r *http.Request) (scheduleRequest, error) {
	if apiutil.IsJSONRequest(r) {
		var req scheduleRequest
		return req, apiutil.DecodeJSON(r, &req)
	}

	if err := r.ParseForm(); err != nil {
		return scheduleRequest{}, err
	}
	facilityID, err := apiutil.ParseOptionalInt64Field(apiutil.FirstNonEmpty(r.FormValue("facility_id"), r.FormValue("facilityId")), "facility_id")
	if err != nil {
		return scheduleRequest{}, err
	}
	var times []string
	for _, value := range r.Form["times"] {
		times = append(times, apiutil.SplitList(value)...)
	}
	return scheduleRequest{
		Date:       r.FormValue("date"),
		FacilityID: facilityID,
		Times:      times,
	}, nil
}

func candidateLimit(raw string) (int, error) {
	limit := scheduling.MaxCandidates
	if strings.TrimSpace(raw) != "" {
		parsed, err := apiutil.ParsePositiveIntField(raw, "limit")
		if err != nil {
			return 0, err
		}
		limit = parsed
	}
	if limit <= 0 {
		limit = leagues.DefaultCandidateLimit
	}
	if limit > maxCandidateLimit {
		limit = maxCandidateLimit
	}
	return limit, nil
}

func weightsFromConfig(w *config.ScoringWeights) leagues.Weights {
	if w == nil {
		return leagues.DefaultWeights()
	}
	return leagues.Weights{
		Base:             w.Base,
		HomePreferred:    w.HomePreferred,
		VisitorPreferred: w.VisitorPreferred,
		BackupDay:        w.BackupDay,
		OffDay:           w.OffDay,
		SplitLine:        w.SplitLine,
		LeadDay:          w.LeadDay,
	}
}

func loadQueries() *dbgen.Queries {
	return queries
}

func loadDB() *appdb.DB {
	return database
}
