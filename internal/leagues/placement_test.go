package leagues

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codr1/Baseliner/internal/facilities"
)

func testPlacement(t *testing.T, times ...string) Placement {
	t.Helper()
	return Placement{
		Match:    Match{ID: 7, HomeTeamID: 10, VisitorTeamID: 20, ExpectedLines: 3},
		Facility: testFacility(t),
		Date:     mustDate(t, "2026-10-19"),
		Times:    times,
		Usage:    facilities.NewUsage(),
	}
}

func TestValidatePlacementNormalizesTimes(t *testing.T) {
	got, err := ValidatePlacement(testPlacement(t, "7:30 PM", "6:00 pm", "18:00"))
	require.NoError(t, err)
	assert.Equal(t, []string{"18:00", "18:00", "19:30"}, got)
}

func TestValidatePlacementAllowsPartialSchedule(t *testing.T) {
	got, err := ValidatePlacement(testPlacement(t, "18:00"))
	require.NoError(t, err)
	assert.Equal(t, []string{"18:00"}, got)
}

func TestValidatePlacementRejectsLineCounts(t *testing.T) {
	_, err := ValidatePlacement(testPlacement(t))
	require.ErrorIs(t, err, ErrNoLines)

	_, err = ValidatePlacement(testPlacement(t, "18:00", "18:00", "19:30", "19:30"))
	require.ErrorIs(t, err, ErrTooManyLines)
}

func TestValidatePlacementRejectsBlackout(t *testing.T) {
	p := testPlacement(t, "18:00")
	p.Facility.UnavailableDates = map[string]string{"2026-10-19": ""}
	_, err := ValidatePlacement(p)
	require.ErrorIs(t, err, ErrBlackoutDate)
}

func TestValidatePlacementRejectsUnknownSlot(t *testing.T) {
	_, err := ValidatePlacement(testPlacement(t, "20:00"))
	require.ErrorIs(t, err, ErrUnknownSlot)

	_, err = ValidatePlacement(testPlacement(t, "25:00"))
	require.ErrorIs(t, err, facilities.ErrInvalidTime)
}

func TestValidatePlacementReportsCapacityConflicts(t *testing.T) {
	p := testPlacement(t, "18:00", "18:00", "19:30")
	p.Usage.Add("2026-10-19", "18:00", 2)
	p.Usage.Add("2026-10-19", "19:30", 1)

	_, err := ValidatePlacement(p)
	var capErr *CapacityError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, []string{"18:00"}, capErr.Times)
	assert.Contains(t, err.Error(), "18:00")
}

func TestValidatePlacementRejectsTeamConflict(t *testing.T) {
	p := testPlacement(t, "18:00")
	p.BusyDates = map[string]bool{"2026-10-19": true}
	_, err := ValidatePlacement(p)
	require.ErrorIs(t, err, ErrTeamConflict)
}

func TestMatchStatus(t *testing.T) {
	m := Match{ExpectedLines: 2}
	assert.Equal(t, StatusUnscheduled, m.Status())

	m.ScheduledTimes = []string{"18:00"}
	assert.Equal(t, StatusPartial, m.Status())
	assert.False(t, m.FullyScheduled())

	m.ScheduledTimes = append(m.ScheduledTimes, "18:00")
	assert.Equal(t, StatusScheduled, m.Status())
	assert.True(t, m.FullyScheduled())
	assert.Equal(t, 2, m.NumScheduledLines())
}
