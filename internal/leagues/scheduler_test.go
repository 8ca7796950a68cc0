package leagues

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTeams(n int) []Team {
	teams := make([]Team, n)
	for i := range teams {
		teams[i] = Team{ID: int64(100 + i)}
	}
	return teams
}

func TestGenerateRoundRobinSingleLeg(t *testing.T) {
	for n := 2; n <= 10; n++ {
		teams := makeTeams(n)
		fixtures, err := GenerateRoundRobin(teams, 1)
		require.NoError(t, err, "n=%d", n)
		require.Len(t, fixtures, n*(n-1)/2, "n=%d", n)

		wantRounds := n - 1
		if n%2 == 1 {
			wantRounds = n
		}

		type pairKey struct{ a, b int64 }
		pairs := make(map[pairKey]bool)
		playing := make(map[int]map[int64]bool)
		home := make(map[int64]int)
		away := make(map[int64]int)
		maxRound := 0
		for _, f := range fixtures {
			require.NotEqual(t, f.HomeTeamID, f.VisitorTeamID)
			a, b := f.HomeTeamID, f.VisitorTeamID
			if a > b {
				a, b = b, a
			}
			require.False(t, pairs[pairKey{a, b}], "n=%d pair %d-%d repeated", n, a, b)
			pairs[pairKey{a, b}] = true

			if playing[f.Round] == nil {
				playing[f.Round] = make(map[int64]bool)
			}
			require.False(t, playing[f.Round][f.HomeTeamID], "n=%d team plays twice in round %d", n, f.Round)
			require.False(t, playing[f.Round][f.VisitorTeamID], "n=%d team plays twice in round %d", n, f.Round)
			playing[f.Round][f.HomeTeamID] = true
			playing[f.Round][f.VisitorTeamID] = true

			home[f.HomeTeamID]++
			away[f.VisitorTeamID]++
			if f.Round > maxRound {
				maxRound = f.Round
			}
		}
		assert.Equal(t, wantRounds, maxRound, "n=%d", n)

		for _, team := range teams {
			diff := home[team.ID] - away[team.ID]
			assert.LessOrEqual(t, diff, 1, "n=%d team %d", n, team.ID)
			assert.GreaterOrEqual(t, diff, -1, "n=%d team %d", n, team.ID)
			assert.Equal(t, n-1, home[team.ID]+away[team.ID])
		}
	}
}

func TestGenerateRoundRobinSecondLegMirrorsFirst(t *testing.T) {
	teams := makeTeams(5)
	fixtures, err := GenerateRoundRobin(teams, 2)
	require.NoError(t, err)
	require.Len(t, fixtures, 20)

	first, second := fixtures[:10], fixtures[10:]
	for i := range first {
		assert.Equal(t, first[i].HomeTeamID, second[i].VisitorTeamID)
		assert.Equal(t, first[i].VisitorTeamID, second[i].HomeTeamID)
		assert.Equal(t, first[i].Round+5, second[i].Round)
	}

	report := BuildFairnessReport(teams, fixturesToMatches(fixtures))
	assert.True(t, report.Balanced)
	for _, row := range report.Teams {
		assert.Equal(t, 0, row.Diff)
		assert.Equal(t, 8, row.Total)
	}
}

func TestGenerateRoundRobinRejectsBadInput(t *testing.T) {
	_, err := GenerateRoundRobin(makeTeams(1), 1)
	require.Error(t, err)

	_, err = GenerateRoundRobin(makeTeams(4), 3)
	require.ErrorIs(t, err, ErrInvalidLegs)

	teams := makeTeams(3)
	teams[2].ID = teams[0].ID
	_, err = GenerateRoundRobin(teams, 1)
	require.Error(t, err)
}

func fixturesToMatches(fixtures []Fixture) []Match {
	matches := make([]Match, len(fixtures))
	for i, f := range fixtures {
		matches[i] = Match{HomeTeamID: f.HomeTeamID, VisitorTeamID: f.VisitorTeamID, Round: f.Round}
	}
	return matches
}
