package leagues

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codr1/Baseliner/internal/facilities"
)

func mustDate(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := facilities.ParseDate(raw)
	require.NoError(t, err)
	return d
}

func testFacility(t *testing.T) facilities.Facility {
	t.Helper()
	schedule, err := facilities.NewSchedule(map[time.Weekday][]facilities.TimeSlot{
		time.Monday: {
			{Time: "18:00", AvailableCourts: 3},
			{Time: "19:30", AvailableCourts: 2},
		},
		time.Wednesday: {
			{Time: "18:00", AvailableCourts: 4},
		},
		time.Saturday: {
			{Time: "09:00", AvailableCourts: 1},
			{Time: "10:30", AvailableCourts: 2},
		},
	}, 4)
	require.NoError(t, err)
	return facilities.Facility{ID: 1, Name: "Riverside", TotalCourts: 4, Schedule: schedule}
}

// Window runs Monday 2026-10-19 through Sunday 2026-10-25.
func testCandidateRequest(t *testing.T) CandidateRequest {
	t.Helper()
	return CandidateRequest{
		League: League{
			ID:               1,
			NumLinesPerMatch: 3,
			BackupDays:       facilities.NewWeekdays(time.Saturday),
		},
		Home:       Team{ID: 10, PreferredDays: facilities.NewWeekdays(time.Monday)},
		Visitor:    Team{ID: 20, PreferredDays: facilities.NewWeekdays(time.Wednesday)},
		Facility:   testFacility(t),
		Usage:      facilities.NewUsage(),
		Window:     Window{Start: mustDate(t, "2026-10-19"), End: mustDate(t, "2026-10-25")},
		Weights:    DefaultWeights(),
		AllowSplit: true,
	}
}

func candidateDates(candidates []Candidate) []string {
	dates := make([]string, 0, len(candidates))
	for _, c := range candidates {
		dates = append(dates, c.Date)
	}
	return dates
}

func TestGenerateCandidatesRanksByScore(t *testing.T) {
	got, err := GenerateCandidates(testCandidateRequest(t))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, Candidate{
		Date:    "2026-10-19",
		Weekday: "monday",
		Times:   []string{"18:00", "18:00", "18:00"},
		Score:   130,
		Reasons: []string{"home team preferred day"},
	}, got[0])

	assert.Equal(t, "2026-10-21", got[1].Date)
	assert.Equal(t, 118, got[1].Score)
	assert.Equal(t, []string{"18:00", "18:00", "18:00"}, got[1].Times)

	assert.Equal(t, "2026-10-24", got[2].Date)
	assert.Equal(t, []string{"09:00", "10:30", "10:30"}, got[2].Times)
	assert.Equal(t, 70, got[2].Score)
	assert.Contains(t, got[2].Reasons, "league backup day")
	assert.Contains(t, got[2].Reasons, "lines split across 2 start times")
}

func TestGenerateCandidatesPenalizesOffDay(t *testing.T) {
	req := testCandidateRequest(t)
	schedule, err := facilities.NewSchedule(map[time.Weekday][]facilities.TimeSlot{
		time.Tuesday: {{Time: "18:00", AvailableCourts: 3}},
	}, 4)
	require.NoError(t, err)
	req.Facility.Schedule = schedule

	got, err := GenerateCandidates(req)
	require.NoError(t, err)
	require.Len(t, got, 1)

	w := DefaultWeights()
	assert.Equal(t, "2026-10-20", got[0].Date)
	assert.Equal(t, []string{"18:00", "18:00", "18:00"}, got[0].Times)
	assert.Equal(t, w.Base-w.OffDay-w.LeadDay, got[0].Score)
	assert.Equal(t, 59, got[0].Score)
	assert.Equal(t, []string{"not a preferred or backup day", "1 days after window start"}, got[0].Reasons)
}

func TestGenerateCandidatesSubtractsExistingUsage(t *testing.T) {
	req := testCandidateRequest(t)
	req.Usage.Add("2026-10-19", "18:00", 2)

	got, err := GenerateCandidates(req)
	require.NoError(t, err)
	require.NotEmpty(t, got)

	assert.Equal(t, "2026-10-19", got[0].Date)
	assert.Equal(t, []string{"18:00", "19:30", "19:30"}, got[0].Times)
	assert.Equal(t, 120, got[0].Score)
}

func TestGenerateCandidatesWithoutSplitting(t *testing.T) {
	req := testCandidateRequest(t)
	req.AllowSplit = false
	req.Usage.Add("2026-10-19", "18:00", 1)

	got, err := GenerateCandidates(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-10-21"}, candidateDates(got))
}

func TestGenerateCandidatesExcludesBlackoutAndBusyDates(t *testing.T) {
	req := testCandidateRequest(t)
	req.Facility.UnavailableDates = map[string]string{"2026-10-21": "resurfacing"}
	req.BusyDates = map[string]bool{"2026-10-19": true}

	got, err := GenerateCandidates(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-10-24"}, candidateDates(got))
}

func TestGenerateCandidatesBreaksTiesByDate(t *testing.T) {
	req := testCandidateRequest(t)
	req.Weights = Weights{Base: 50}

	got, err := GenerateCandidates(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-10-19", "2026-10-21", "2026-10-24"}, candidateDates(got))
	for _, c := range got {
		assert.Equal(t, 50, c.Score)
	}
}

func TestGenerateCandidatesAppliesLimit(t *testing.T) {
	req := testCandidateRequest(t)
	req.Limit = 1

	got, err := GenerateCandidates(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-10-19"}, candidateDates(got))
}

func TestGenerateCandidatesRejectsBadInput(t *testing.T) {
	req := testCandidateRequest(t)
	req.League.NumLinesPerMatch = 0
	_, err := GenerateCandidates(req)
	require.Error(t, err)

	req = testCandidateRequest(t)
	req.Window.Start, req.Window.End = req.Window.End, req.Window.Start
	_, err = GenerateCandidates(req)
	require.ErrorIs(t, err, ErrInvalidWindow)
}

func TestGenerateCandidatesSkipsDatesWithTooFewCourts(t *testing.T) {
	req := testCandidateRequest(t)
	req.League.NumLinesPerMatch = 5

	got, err := GenerateCandidates(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-10-19"}, candidateDates(got))
	assert.Equal(t, []string{"18:00", "18:00", "18:00", "19:30", "19:30"}, got[0].Times)
}

func TestResolveWindow(t *testing.T) {
	now := time.Date(2026, 10, 15, 10, 30, 0, 0, time.UTC)

	w, err := ResolveWindow(now, "", "", 28, 120)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-16", facilities.DateKey(w.Start))
	assert.Equal(t, "2026-11-12", facilities.DateKey(w.End))
	assert.Equal(t, 28, w.Days())

	w, err = ResolveWindow(now, "2026-11-01", "2026-11-03", 28, 120)
	require.NoError(t, err)
	assert.Equal(t, 3, w.Days())

	_, err = ResolveWindow(now, "2026-11-03", "2026-11-01", 28, 120)
	require.ErrorIs(t, err, ErrInvalidWindow)

	_, err = ResolveWindow(now, "2026-01-01", "2026-12-31", 28, 120)
	require.ErrorIs(t, err, ErrWindowTooLong)

	_, err = ResolveWindow(now, "11/01/2026", "", 28, 120)
	require.ErrorIs(t, err, facilities.ErrInvalidDate)
}
