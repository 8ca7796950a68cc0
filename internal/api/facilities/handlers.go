// internal/api/facilities/handlers.go
package facilities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Baseliner/internal/api/apiutil"
	"github.com/codr1/Baseliner/internal/api/htmx"
	appdb "github.com/codr1/Baseliner/internal/db"
	dbgen "github.com/codr1/Baseliner/internal/db/generated"
	facilityschedule "github.com/codr1/Baseliner/internal/facilities"
	"github.com/codr1/Baseliner/internal/models"
)

const (
	facilityQueryTimeout = 5 * time.Second
	facilityIDPathKey    = "id"
	datePathKey          = "date"
)

var (
	queries  *dbgen.Queries
	database *appdb.DB
	nowFunc  = time.Now
)

// lastPlacementDate bounds the usage scan when checking a new schedule.
var lastPlacementDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

type slotRequest struct {
	Time            string `json:"time"`
	AvailableCourts int    `json:"availableCourts"`
}

type facilityRequest struct {
	Name        string                   `json:"name"`
	ShortName   string                   `json:"shortName"`
	Location    string                   `json:"location"`
	TotalCourts int                      `json:"totalCourts"`
	Schedule    map[string][]slotRequest `json:"schedule"`
}

type scheduleRequest struct {
	Schedule map[string][]slotRequest `json:"schedule"`
}

type unavailableDateRequest struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

type facilityInput struct {
	Name        string
	ShortName   string
	Location    string
	TotalCourts int
	Days        map[time.Weekday][]facilityschedule.TimeSlot
}

type unavailableDateResponse struct {
	Date   string `json:"date"`
	Reason string `json:"reason,omitempty"`
}

type facilityResponse struct {
	ID               int64                                  `json:"id"`
	Name             string                                 `json:"name"`
	ShortName        string                                 `json:"shortName"`
	Location         string                                 `json:"location"`
	TotalCourts      int                                    `json:"totalCourts"`
	Schedule         map[string][]facilityschedule.TimeSlot `json:"schedule"`
	UnavailableDates []unavailableDateResponse              `json:"unavailableDates"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(db *appdb.DB) {
	if db == nil {
		return
	}
	database = db
	queries = db.Queries
}

// GET /api/v1/facilities
func HandleFacilitiesList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), facilityQueryTimeout)
	defer cancel()

	rows, err := q.ListFacilities(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list facilities")
		http.Error(w, "Failed to list facilities", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, facilitiesListComponent(rows), nil, "Failed to render facilities list", "Failed to render list") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"facilities": rows}); err != nil {
		logger.Error().Err(err).Msg("Failed to write facilities response")
	}
}

// POST /api/v1/facilities
func HandleFacilityCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	db := loadDB()
	if db == nil {
		logger.Error().Msg("Database not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	req, err := decodeFacilityRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input, err := parseFacilityRequest(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	schedule, err := facilityschedule.NewSchedule(input.Days, input.TotalCourts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), facilityQueryTimeout)
	defer cancel()

	var facilityID int64
	err = db.RunInTx(ctx, func(txdb *appdb.DB) error {
		created, err := txdb.Queries.CreateFacility(ctx, dbgen.CreateFacilityParams{
			Name:        input.Name,
			ShortName:   input.ShortName,
			Location:    input.Location,
			TotalCourts: int64(input.TotalCourts),
		})
		if err != nil {
			if apiutil.IsSQLiteUniqueViolation(err) {
				return apiutil.HandlerError{Status: http.StatusConflict, Message: "Facility short name already exists", Err: err}
			}
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to create facility", Err: err}
		}
		facilityID = created.ID
		if err := models.ReplaceFacilitySchedule(ctx, txdb.Queries, created.ID, schedule); err != nil {
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to save facility schedule", Err: err}
		}
		return nil
	})
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to create facility")
		return
	}

	writeFacility(w, r, facilityID, http.StatusCreated)
}

// GET /api/v1/facilities/{id}
func HandleFacilityDetail(w http.ResponseWriter, r *http.Request) {
	facilityID, err := apiutil.PathID(r, facilityIDPathKey)
	if err != nil {
		http.Error(w, "Invalid facility ID", http.StatusBadRequest)
		return
	}
	writeFacility(w, r, facilityID, http.StatusOK)
}

// PUT /api/v1/facilities/{id}
func HandleFacilityUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	db := loadDB()
	if db == nil {
		logger.Error().Msg("Database not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	facilityID, err := apiutil.PathID(r, facilityIDPathKey)
	if err != nil {
		http.Error(w, "Invalid facility ID", http.StatusBadRequest)
		return
	}

	req, err := decodeFacilityRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input, err := parseFacilityRequest(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), facilityQueryTimeout)
	defer cancel()

	err = db.RunInTx(ctx, func(txdb *appdb.DB) error {
		qtx := txdb.Queries
		existing, err := models.LoadFacility(ctx, qtx, facilityID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apiutil.HandlerError{Status: http.StatusNotFound, Message: "Facility not found", Err: err}
			}
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to load facility", Err: err}
		}

		// Without a new schedule the stored slots must still fit the new court count.
		days := existing.Schedule.Days()
		if req.Schedule != nil {
			days = input.Days
		}
		schedule, err := facilityschedule.NewSchedule(days, input.TotalCourts)
		if err != nil {
			return apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err}
		}

		if _, err := qtx.UpdateFacility(ctx, dbgen.UpdateFacilityParams{
			Name:        input.Name,
			ShortName:   input.ShortName,
			Location:    input.Location,
			TotalCourts: int64(input.TotalCourts),
			ID:          facilityID,
		}); err != nil {
			if apiutil.IsSQLiteUniqueViolation(err) {
				return apiutil.HandlerError{Status: http.StatusConflict, Message: "Facility short name already exists", Err: err}
			}
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to update facility", Err: err}
		}
		if err := checkPlacedLines(ctx, qtx, facilityID, schedule); err != nil {
			return err
		}
		if req.Schedule != nil {
			if err := models.ReplaceFacilitySchedule(ctx, qtx, facilityID, schedule); err != nil {
				return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to save facility schedule", Err: err}
			}
		}
		return nil
	})
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to update facility")
		return
	}

	writeFacility(w, r, facilityID, http.StatusOK)
}

// DELETE /api/v1/facilities/{id}
func HandleFacilityDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	facilityID, err := apiutil.PathID(r, facilityIDPathKey)
	if err != nil {
		http.Error(w, "Invalid facility ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), facilityQueryTimeout)
	defer cancel()

	deleted, err := q.DeleteFacility(ctx, facilityID)
	if err != nil {
		if apiutil.IsSQLiteForeignKeyViolation(err) {
			http.Error(w, "Facility has scheduled matches", http.StatusConflict)
			return
		}
		logger.Error().Err(err).Int64("facility_id", facilityID).Msg("Failed to delete facility")
		http.Error(w, "Failed to delete facility", http.StatusInternalServerError)
		return
	}
	if deleted == 0 {
		http.Error(w, "Facility not found", http.StatusNotFound)
		return
	}

	if htmx.IsRequest(r) {
		w.Header().Set("HX-Trigger", "facilities-changed")
	}
	w.WriteHeader(http.StatusNoContent)
}

// PUT /api/v1/facilities/{id}/schedule
func HandleFacilityScheduleReplace(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	db := loadDB()
	if db == nil {
		logger.Error().Msg("Database not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	facilityID, err := apiutil.PathID(r, facilityIDPathKey)
	if err != nil {
		http.Error(w, "Invalid facility ID", http.StatusBadRequest)
		return
	}

	req, err := decodeScheduleRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	days, err := parseScheduleDays(req.Schedule)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), facilityQueryTimeout)
	defer cancel()

	err = db.RunInTx(ctx, func(txdb *appdb.DB) error {
		row, err := txdb.Queries.GetFacility(ctx, facilityID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apiutil.HandlerError{Status: http.StatusNotFound, Message: "Facility not found", Err: err}
			}
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to load facility", Err: err}
		}
		schedule, err := facilityschedule.NewSchedule(days, int(row.TotalCourts))
		if err != nil {
			return apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err}
		}
		if err := checkPlacedLines(ctx, txdb.Queries, facilityID, schedule); err != nil {
			return err
		}
		if err := models.ReplaceFacilitySchedule(ctx, txdb.Queries, facilityID, schedule); err != nil {
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to save facility schedule", Err: err}
		}
		return nil
	})
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to save facility schedule")
		return
	}

	logger.Info().Int64("facility_id", facilityID).Msg("Facility schedule replaced")
	writeFacility(w, r, facilityID, http.StatusOK)
}

// checkPlacedLines rejects a schedule that would leave lines placed from today
// onward without a court.
func checkPlacedLines(ctx context.Context, q dbgen.Querier, facilityID int64, schedule facilityschedule.Schedule) error {
	today := facilityschedule.TruncateDate(nowFunc())
	usage, err := models.FacilityUsage(ctx, q, facilityID, today, lastPlacementDate, 0)
	if err != nil {
		return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to check scheduled matches", Err: err}
	}
	overbooked := schedule.Overbooked(usage)
	if len(overbooked) == 0 {
		return nil
	}
	conflicts := make([]string, 0, len(overbooked))
	for _, o := range overbooked {
		conflicts = append(conflicts, o.String())
	}
	log.Ctx(ctx).Warn().
		Int64("facility_id", facilityID).
		Strs("conflicts", conflicts).
		Msg("Schedule change rejected by placed lines")
	return apiutil.HandlerError{
		Status:  http.StatusConflict,
		Message: "Schedule conflicts with scheduled lines: " + strings.Join(conflicts, "; "),
	}
}

// POST /api/v1/facilities/{id}/unavailable-dates
func HandleUnavailableDateAdd(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	facilityID, err := apiutil.PathID(r, facilityIDPathKey)
	if err != nil {
		http.Error(w, "Invalid facility ID", http.StatusBadRequest)
		return
	}

	req, err := decodeUnavailableDateRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	date, err := facilityschedule.ParseDate(req.Date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), facilityQueryTimeout)
	defer cancel()

	saved, err := q.UpsertFacilityUnavailableDate(ctx, dbgen.UpsertFacilityUnavailableDateParams{
		FacilityID:      facilityID,
		UnavailableDate: facilityschedule.DateKey(date),
		Reason:          strings.TrimSpace(req.Reason),
	})
	if err != nil {
		if apiutil.IsSQLiteForeignKeyViolation(err) {
			http.Error(w, "Facility not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("facility_id", facilityID).Msg("Failed to save unavailable date")
		http.Error(w, "Failed to save unavailable date", http.StatusInternalServerError)
		return
	}

	// Matches already placed on the date keep their placement; report them so
	// the caller can move them.
	usage, err := models.FacilityUsage(ctx, q, facilityID, date, date, 0)
	if err != nil {
		logger.Error().Err(err).Int64("facility_id", facilityID).Msg("Failed to check usage on unavailable date")
		http.Error(w, "Failed to check scheduled matches", http.StatusInternalServerError)
		return
	}
	affected := 0
	for _, n := range usage {
		affected += n
	}
	if affected > 0 {
		logger.Warn().Int64("facility_id", facilityID).Str("date", saved.UnavailableDate).Int("lines", affected).Msg("Unavailable date has scheduled lines")
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, map[string]any{
		"unavailableDate": unavailableDateResponse{Date: saved.UnavailableDate, Reason: saved.Reason},
		"affectedLines":   affected,
	}); err != nil {
		logger.Error().Err(err).Int64("facility_id", facilityID).Msg("Failed to write unavailable date response")
	}
}

// DELETE /api/v1/facilities/{id}/unavailable-dates/{date}
func HandleUnavailableDateDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	facilityID, err := apiutil.PathID(r, facilityIDPathKey)
	if err != nil {
		http.Error(w, "Invalid facility ID", http.StatusBadRequest)
		return
	}
	date, err := facilityschedule.ParseDate(r.PathValue(datePathKey))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), facilityQueryTimeout)
	defer cancel()

	deleted, err := q.DeleteFacilityUnavailableDate(ctx, dbgen.DeleteFacilityUnavailableDateParams{
		FacilityID:      facilityID,
		UnavailableDate: facilityschedule.DateKey(date),
	})
	if err != nil {
		logger.Error().Err(err).Int64("facility_id", facilityID).Msg("Failed to delete unavailable date")
		http.Error(w, "Failed to delete unavailable date", http.StatusInternalServerError)
		return
	}
	if deleted == 0 {
		http.Error(w, "Unavailable date not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/facilities/{id}/availability?date=YYYY-MM-DD
func HandleFacilityAvailability(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	facilityID, err := apiutil.PathID(r, facilityIDPathKey)
	if err != nil {
		http.Error(w, "Invalid facility ID", http.StatusBadRequest)
		return
	}
	date, err := facilityschedule.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), facilityQueryTimeout)
	defer cancel()

	facility, err := models.LoadFacility(ctx, q, facilityID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Facility not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("facility_id", facilityID).Msg("Failed to load facility")
		http.Error(w, "Failed to load facility", http.StatusInternalServerError)
		return
	}
	usage, err := models.FacilityUsage(ctx, q, facilityID, date, date, 0)
	if err != nil {
		logger.Error().Err(err).Int64("facility_id", facilityID).Msg("Failed to load facility usage")
		http.Error(w, "Failed to load facility usage", http.StatusInternalServerError)
		return
	}

	slots := facility.Availability(date, usage)
	reason, closed := facility.UnavailableDates[facilityschedule.DateKey(date)]

	if htmx.IsRequest(r) {
		component := availabilityComponent(facility, date, slots, closed, reason)
		if !apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render availability", "Failed to render availability") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"facilityId":  facilityID,
		"date":        facilityschedule.DateKey(date),
		"unavailable": closed,
		"reason":      reason,
		"slots":       slots,
	}); err != nil {
		logger.Error().Err(err).Int64("facility_id", facilityID).Msg("Failed to write availability response")
	}
}

func writeFacility(w http.ResponseWriter, r *http.Request, facilityID int64, status int) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), facilityQueryTimeout)
	defer cancel()

	facility, err := models.LoadFacility(ctx, q, facilityID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Facility not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("facility_id", facilityID).Msg("Failed to load facility")
		http.Error(w, "Failed to load facility", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		if !apiutil.RenderHTMLComponent(r.Context(), w, facilityDetailComponent(facility), nil, "Failed to render facility", "Failed to render facility") {
			return
		}
		return
	}

	if err := apiutil.WriteJSON(w, status, map[string]any{"facility": toFacilityResponse(facility)}); err != nil {
		logger.Error().Err(err).Int64("facility_id", facilityID).Msg("Failed to write facility response")
	}
}

func toFacilityResponse(f facilityschedule.Facility) facilityResponse {
	schedule := make(map[string][]facilityschedule.TimeSlot)
	for day, slots := range f.Schedule.Days() {
		schedule[strings.ToLower(day.String())] = slots
	}
	dates := make([]unavailableDateResponse, 0, len(f.UnavailableDates))
	for date, reason := range f.UnavailableDates {
		dates = append(dates, unavailableDateResponse{Date: date, Reason: reason})
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Date < dates[j].Date })

	return facilityResponse{
		ID:               f.ID,
		Name:             f.Name,
		ShortName:        f.ShortName,
		Location:         f.Location,
		TotalCourts:      f.TotalCourts,
		Schedule:         schedule,
		UnavailableDates: dates,
	}
}

func decodeFacilityRequest(r *http.Request) (facilityRequest, error) {
	if apiutil.IsJSONRequest(r) {
		var req facilityRequest
		return req, apiutil.DecodeJSON(r, &req)
	}

	if err := r.ParseForm(); err != nil {
		return facilityRequest{}, err
	}

	totalCourts, err := apiutil.ParsePositiveIntField(apiutil.FirstNonEmpty(r.FormValue("total_courts"), r.FormValue("totalCourts")), "total_courts")
	if err != nil {
		return facilityRequest{}, err
	}
	schedule, err := scheduleFromForm(r)
	if err != nil {
		return facilityRequest{}, err
	}

	return facilityRequest{
		Name:        r.FormValue("name"),
		ShortName:   apiutil.FirstNonEmpty(r.FormValue("short_name"), r.FormValue("shortName")),
		Location:    r.FormValue("location"),
		TotalCourts: totalCourts,
		Schedule:    schedule,
	}, nil
}

func decodeScheduleRequest(r *http.Request) (scheduleRequest, error) {
	if apiutil.IsJSONRequest(r) {
		var req scheduleRequest
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			return scheduleRequest{}, err
		}
		if req.Schedule == nil {
			req.Schedule = map[string][]slotRequest{}
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return scheduleRequest{}, err
	}
	schedule, err := scheduleFromForm(r)
	if err != nil {
		return scheduleRequest{}, err
	}
	if schedule == nil {
		schedule = map[string][]slotRequest{}
	}
	return scheduleRequest{Schedule: schedule}, nil
}

func decodeUnavailableDateRequest(r *http.Request) (unavailableDateRequest, error) {
	if apiutil.IsJSONRequest(r) {
		var req unavailableDateRequest
		return req, apiutil.DecodeJSON(r, &req)
	}
	if err := r.ParseForm(); err != nil {
		return unavailableDateRequest{}, err
	}
	return unavailableDateRequest{
		Date:   r.FormValue("date"),
		Reason: r.FormValue("reason"),
	}, nil
}

// scheduleFromForm reads one field per weekday, e.g. monday="18:00=3, 19:30=2".
// It returns nil when no weekday field is present.
func scheduleFromForm(r *http.Request) (map[string][]slotRequest, error) {
	var schedule map[string][]slotRequest
	for day := time.Sunday; day <= time.Saturday; day++ {
		name := strings.ToLower(day.String())
		if _, ok := r.Form[name]; !ok {
			continue
		}
		if schedule == nil {
			schedule = make(map[string][]slotRequest)
		}
		var slots []slotRequest
		for _, entry := range apiutil.SplitList(r.FormValue(name)) {
			clock, courts, ok := strings.Cut(entry, "=")
			if !ok {
				return nil, fmt.Errorf("%s: slot %q must be TIME=COURTS", name, entry)
			}
			n, err := strconv.Atoi(strings.TrimSpace(courts))
			if err != nil {
				return nil, fmt.Errorf("%s: courts for %q must be a number", name, strings.TrimSpace(clock))
			}
			slots = append(slots, slotRequest{Time: strings.TrimSpace(clock), AvailableCourts: n})
		}
		schedule[name] = slots
	}
	return schedule, nil
}

func parseFacilityRequest(req facilityRequest) (facilityInput, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return facilityInput{}, fmt.Errorf("name is required")
	}
	shortName := strings.TrimSpace(req.ShortName)
	if shortName == "" {
		return facilityInput{}, fmt.Errorf("short_name is required")
	}
	if req.TotalCourts <= 0 {
		return facilityInput{}, fmt.Errorf("total_courts must be greater than 0")
	}
	days, err := parseScheduleDays(req.Schedule)
	if err != nil {
		return facilityInput{}, err
	}
	return facilityInput{
		Name:        name,
		ShortName:   shortName,
		Location:    strings.TrimSpace(req.Location),
		TotalCourts: req.TotalCourts,
		Days:        days,
	}, nil
}

func parseScheduleDays(raw map[string][]slotRequest) (map[time.Weekday][]facilityschedule.TimeSlot, error) {
	days := make(map[time.Weekday][]facilityschedule.TimeSlot, len(raw))
	for name, slots := range raw {
		day, err := facilityschedule.ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		for _, slot := range slots {
			days[day] = append(days[day], facilityschedule.TimeSlot{
				Time:            slot.Time,
				AvailableCourts: slot.AvailableCourts,
			})
		}
	}
	return days, nil
}

func loadQueries() *dbgen.Queries {
	return queries
}

func loadDB() *appdb.DB {
	return database
}
