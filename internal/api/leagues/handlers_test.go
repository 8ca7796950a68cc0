package leagues

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	appdb "github.com/codr1/Baseliner/internal/db"
	dbgen "github.com/codr1/Baseliner/internal/db/generated"
	"github.com/codr1/Baseliner/internal/leagues"
	"github.com/codr1/Baseliner/internal/models"
	"github.com/codr1/Baseliner/internal/testutil"
)

func newJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func setupLeague(t *testing.T, teamNames ...string) (*appdb.DB, dbgen.League, []dbgen.Team) {
	t.Helper()

	database := testutil.NewTestDB(t)
	InitHandlers(database, Options{
		MatchDuration: 90 * time.Minute,
		Now:           func() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) },
	})

	ctx := context.Background()
	league, err := database.Queries.CreateLeague(ctx, dbgen.CreateLeagueParams{
		Name:             "Adult 40+ 3.5",
		Year:             2026,
		NumLinesPerMatch: 3,
		BackupDays:       "saturday",
	})
	if err != nil {
		t.Fatalf("create league: %v", err)
	}

	teams := make([]dbgen.Team, 0, len(teamNames))
	for _, name := range teamNames {
		team, err := database.Queries.CreateTeam(ctx, dbgen.CreateTeamParams{LeagueID: league.ID, Name: name})
		if err != nil {
			t.Fatalf("create team %s: %v", name, err)
		}
		teams = append(teams, team)
	}
	return database, league, teams
}

func TestHandleLeagueCreateValidatesLines(t *testing.T) {
	database := testutil.NewTestDB(t)
	InitHandlers(database, Options{})

	req := newJSONRequest(t, http.MethodPost, "/api/v1/leagues", map[string]any{
		"name":             "Mixed 18+",
		"year":             2026,
		"numLinesPerMatch": 0,
	})
	recorder := httptest.NewRecorder()
	HandleLeagueCreate(recorder, req)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", recorder.Code)
	}

	req = newJSONRequest(t, http.MethodPost, "/api/v1/leagues", map[string]any{
		"name":             "Mixed 18+",
		"year":             2026,
		"numLinesPerMatch": 3,
		"backupDays":       []string{"Sat", "sunday"},
	})
	recorder = httptest.NewRecorder()
	HandleLeagueCreate(recorder, req)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var resp struct {
		League struct {
			ID         int64    `json:"id"`
			BackupDays []string `json:"backupDays"`
		} `json:"league"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if strings.Join(resp.League.BackupDays, ",") != "sunday,saturday" {
		t.Fatalf("unexpected backup days %v", resp.League.BackupDays)
	}
}

func TestHandleTeamCreateNormalizesCaptain(t *testing.T) {
	_, league, _ := setupLeague(t)

	form := strings.NewReader("name=Net+Results&captain_name=+Pat+Lee+&captain_email=PAT%40Example.com&captain_phone=%28650%29+253-0000&preferred_days=monday%2Cwed")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/leagues/1/teams", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetPathValue("id", strconv.FormatInt(league.ID, 10))
	recorder := httptest.NewRecorder()
	HandleTeamCreate(recorder, req)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var resp struct {
		Team leagues.Team `json:"team"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Team.Captain.Name != "Pat Lee" || resp.Team.Captain.Email != "pat@example.com" {
		t.Fatalf("unexpected captain %+v", resp.Team.Captain)
	}
	if resp.Team.Captain.Phone != "+16502530000" {
		t.Fatalf("expected E.164 phone, got %q", resp.Team.Captain.Phone)
	}
	if !resp.Team.PreferredDays.Has(time.Monday) || !resp.Team.PreferredDays.Has(time.Wednesday) {
		t.Fatalf("unexpected preferred days %s", resp.Team.PreferredDays)
	}
}

func TestHandleTeamCreateDuplicateName(t *testing.T) {
	_, league, _ := setupLeague(t, "Aces")

	req := newJSONRequest(t, http.MethodPost, "/api/v1/leagues/1/teams", map[string]any{"name": "Aces"})
	req.SetPathValue("id", strconv.FormatInt(league.ID, 10))
	recorder := httptest.NewRecorder()
	HandleTeamCreate(recorder, req)

	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", recorder.Code)
	}
}

func TestHandleGenerateMatchesBalancesHomeAway(t *testing.T) {
	database, league, _ := setupLeague(t, "Aces", "Baseliners", "Drop Shots", "Lobs", "Volleys")
	leagueID := strconv.FormatInt(league.ID, 10)

	req := newJSONRequest(t, http.MethodPost, "/api/v1/leagues/"+leagueID+"/matches/generate", map[string]any{"legs": 1})
	req.SetPathValue("id", leagueID)
	recorder := httptest.NewRecorder()
	HandleGenerateMatches(recorder, req)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var resp struct {
		Matches  []leagues.Match        `json:"matches"`
		Fairness leagues.FairnessReport `json:"fairness"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Matches) != 10 {
		t.Fatalf("expected 10 matches for 5 teams, got %d", len(resp.Matches))
	}
	if !resp.Fairness.Balanced {
		t.Fatalf("expected balanced schedule, got %+v", resp.Fairness)
	}

	rows, err := database.Queries.ListLeagueMatches(context.Background(), league.ID)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(rows) != 10 {
		t.Fatalf("expected 10 stored matches, got %d", len(rows))
	}

	// A second generate must not duplicate the schedule.
	req = newJSONRequest(t, http.MethodPost, "/api/v1/leagues/"+leagueID+"/matches/generate", map[string]any{"legs": 1})
	req.SetPathValue("id", leagueID)
	recorder = httptest.NewRecorder()
	HandleGenerateMatches(recorder, req)
	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", recorder.Code)
	}
}

func TestHandleRegenerateMatchesReplacesSchedule(t *testing.T) {
	database, league, teams := setupLeague(t, "Aces", "Baseliners", "Drop Shots", "Lobs")
	ctx := context.Background()
	leagueID := strconv.FormatInt(league.ID, 10)

	stale, err := database.Queries.CreateMatch(ctx, dbgen.CreateMatchParams{
		LeagueID:      league.ID,
		HomeTeamID:    teams[0].ID,
		VisitorTeamID: teams[1].ID,
		Round:         9,
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}

	req := newJSONRequest(t, http.MethodPost, "/api/v1/leagues/"+leagueID+"/matches/regenerate", map[string]any{"legs": 2})
	req.SetPathValue("id", leagueID)
	recorder := httptest.NewRecorder()
	HandleRegenerateMatches(recorder, req)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	rows, err := database.Queries.ListLeagueMatches(ctx, league.ID)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(rows) != 12 {
		t.Fatalf("expected 12 matches for two legs of 4 teams, got %d", len(rows))
	}
	for _, row := range rows {
		if row.ID == stale.ID {
			t.Fatalf("expected stale match %d to be removed", stale.ID)
		}
		if row.Round < 1 || row.Round > 6 {
			t.Fatalf("unexpected round %d", row.Round)
		}
	}
}

func TestHandleGenerateMatchesNeedsTwoTeams(t *testing.T) {
	_, league, _ := setupLeague(t, "Aces")
	leagueID := strconv.FormatInt(league.ID, 10)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/leagues/"+leagueID+"/matches/generate", nil)
	req.SetPathValue("id", leagueID)
	recorder := httptest.NewRecorder()
	HandleGenerateMatches(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", recorder.Code)
	}
}

func TestHandleListLeagueMatchesFiltersByStatus(t *testing.T) {
	database, league, teams := setupLeague(t, "Aces", "Baseliners", "Lobs")
	ctx := context.Background()
	q := database.Queries

	facility, err := q.CreateFacility(ctx, dbgen.CreateFacilityParams{Name: "Riverside", ShortName: "RIV", TotalCourts: 4})
	if err != nil {
		t.Fatalf("create facility: %v", err)
	}
	var matchIDs []int64
	for _, pair := range [][2]int{{0, 1}, {1, 2}, {2, 0}} {
		row, err := q.CreateMatch(ctx, dbgen.CreateMatchParams{
			LeagueID:      league.ID,
			HomeTeamID:    teams[pair[0]].ID,
			VisitorTeamID: teams[pair[1]].ID,
			Round:         1,
		})
		if err != nil {
			t.Fatalf("create match: %v", err)
		}
		matchIDs = append(matchIDs, row.ID)
	}
	monday := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	if err := models.SaveMatchPlacement(ctx, q, matchIDs[0], monday, facility.ID, []string{"18:00", "18:00", "18:00"}); err != nil {
		t.Fatalf("save placement: %v", err)
	}
	tuesday := monday.AddDate(0, 0, 1)
	if err := models.SaveMatchPlacement(ctx, q, matchIDs[1], tuesday, facility.ID, []string{"18:00"}); err != nil {
		t.Fatalf("save placement: %v", err)
	}

	cases := map[string]int{
		"":            3,
		"all":         3,
		"scheduled":   1,
		"partial":     1,
		"unscheduled": 1,
	}
	for status, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/leagues/1/matches?status="+status, nil)
		req.SetPathValue("id", strconv.FormatInt(league.ID, 10))
		recorder := httptest.NewRecorder()
		HandleListLeagueMatches(recorder, req)
		if recorder.Code != http.StatusOK {
			t.Fatalf("status %q: expected 200, got %d", status, recorder.Code)
		}
		var resp struct {
			Matches []models.MatchView `json:"matches"`
		}
		if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp.Matches) != want {
			t.Fatalf("status %q: expected %d matches, got %d", status, want, len(resp.Matches))
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leagues/1/matches?status=done", nil)
	req.SetPathValue("id", strconv.FormatInt(league.ID, 10))
	recorder := httptest.NewRecorder()
	HandleListLeagueMatches(recorder, req)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown status, got %d", recorder.Code)
	}
}

func TestHandleLeagueUpdateRejectsFewerLinesThanScheduled(t *testing.T) {
	database, league, teams := setupLeague(t, "Aces", "Lobs")
	ctx := context.Background()
	q := database.Queries

	facility, err := q.CreateFacility(ctx, dbgen.CreateFacilityParams{Name: "Riverside", ShortName: "RIV", TotalCourts: 4})
	if err != nil {
		t.Fatalf("create facility: %v", err)
	}
	row, err := q.CreateMatch(ctx, dbgen.CreateMatchParams{LeagueID: league.ID, HomeTeamID: teams[0].ID, VisitorTeamID: teams[1].ID, Round: 1})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if err := models.SaveMatchPlacement(ctx, q, row.ID, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), facility.ID, []string{"18:00", "18:00", "19:30"}); err != nil {
		t.Fatalf("save placement: %v", err)
	}

	req := newJSONRequest(t, http.MethodPut, "/api/v1/leagues/1", map[string]any{
		"name":             league.Name,
		"year":             2026,
		"numLinesPerMatch": 2,
	})
	req.SetPathValue("id", strconv.FormatInt(league.ID, 10))
	recorder := httptest.NewRecorder()
	HandleLeagueUpdate(recorder, req)

	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d: %s", recorder.Code, recorder.Body.String())
	}
}

func TestHandleLeagueLinesCSV(t *testing.T) {
	database, league, teams := setupLeague(t, "Aces", "Lobs")
	ctx := context.Background()
	q := database.Queries

	facility, err := q.CreateFacility(ctx, dbgen.CreateFacilityParams{Name: "Riverside", ShortName: "RIV", TotalCourts: 4})
	if err != nil {
		t.Fatalf("create facility: %v", err)
	}
	first, err := q.CreateMatch(ctx, dbgen.CreateMatchParams{LeagueID: league.ID, HomeTeamID: teams[0].ID, VisitorTeamID: teams[1].ID, Round: 1})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if _, err := q.CreateMatch(ctx, dbgen.CreateMatchParams{LeagueID: league.ID, HomeTeamID: teams[1].ID, VisitorTeamID: teams[0].ID, Round: 2}); err != nil {
		t.Fatalf("create match: %v", err)
	}
	if err := models.SaveMatchPlacement(ctx, q, first.ID, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), facility.ID, []string{"18:00", "19:30"}); err != nil {
		t.Fatalf("save placement: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leagues/1/lines.csv", nil)
	req.SetPathValue("id", strconv.FormatInt(league.ID, 10))
	recorder := httptest.NewRecorder()
	HandleLeagueLinesCSV(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}
	if got := recorder.Header().Get("Content-Disposition"); !strings.Contains(got, "adult-40-3-5-lines.csv") {
		t.Fatalf("unexpected content disposition %q", got)
	}

	records, err := csv.NewReader(recorder.Body).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header, two lines, and one unscheduled row, got %d rows", len(records))
	}
	if records[1][4] != "18:00" || records[1][6] != "Riverside" || records[1][7] != "Aces" {
		t.Fatalf("unexpected first line %v", records[1])
	}
	if records[3][3] != "" || records[3][5] != "" {
		t.Fatalf("expected blank date and line for unscheduled match, got %v", records[3])
	}
}

func TestHandleTeamCalendar(t *testing.T) {
	database, league, teams := setupLeague(t, "Aces", "Lobs")
	ctx := context.Background()
	q := database.Queries

	facility, err := q.CreateFacility(ctx, dbgen.CreateFacilityParams{Name: "Riverside", ShortName: "RIV", TotalCourts: 4})
	if err != nil {
		t.Fatalf("create facility: %v", err)
	}
	row, err := q.CreateMatch(ctx, dbgen.CreateMatchParams{LeagueID: league.ID, HomeTeamID: teams[0].ID, VisitorTeamID: teams[1].ID, Round: 1})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if err := models.SaveMatchPlacement(ctx, q, row.ID, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), facility.ID, []string{"18:00", "19:30"}); err != nil {
		t.Fatalf("save placement: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/teams/1/calendar.ics", nil)
	req.SetPathValue("id", strconv.FormatInt(teams[1].ID, 10))
	recorder := httptest.NewRecorder()
	HandleTeamCalendar(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}
	body := recorder.Body.String()
	for _, want := range []string{"BEGIN:VCALENDAR", "DTSTART:20261019T180000", "DTEND:20261019T210000", "match-" + strconv.FormatInt(row.ID, 10) + "@baseliner"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected calendar to contain %q, got:\n%s", want, body)
		}
	}
}
