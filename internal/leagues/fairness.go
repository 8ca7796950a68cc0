package leagues

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

type TeamBalance struct {
	TeamID   int64  `json:"teamId"`
	TeamName string `json:"teamName"`
	Home     int    `json:"home"`
	Away     int    `json:"away"`
	Total    int    `json:"total"`
	Diff     int    `json:"diff"`
}

type FairnessReport struct {
	Teams      []TeamBalance `json:"teams"`
	MeanDiff   float64       `json:"meanDiff"`
	StdDevDiff float64       `json:"stdDevDiff"`
	Balanced   bool          `json:"balanced"`
}

// BuildFairnessReport counts home and away matches per team. A league is
// balanced when no team's home and away counts differ by more than one.
func BuildFairnessReport(teams []Team, matches []Match) FairnessReport {
	index := make(map[int64]int, len(teams))
	rows := make([]TeamBalance, len(teams))
	for i, team := range teams {
		index[team.ID] = i
		rows[i] = TeamBalance{TeamID: team.ID, TeamName: team.Name}
	}

	for _, match := range matches {
		if i, ok := index[match.HomeTeamID]; ok {
			rows[i].Home++
		}
		if i, ok := index[match.VisitorTeamID]; ok {
			rows[i].Away++
		}
	}

	report := FairnessReport{Teams: rows, Balanced: true}
	diffs := make([]float64, len(rows))
	for i := range rows {
		rows[i].Total = rows[i].Home + rows[i].Away
		rows[i].Diff = rows[i].Home - rows[i].Away
		diffs[i] = float64(rows[i].Diff)
		if rows[i].Diff > 1 || rows[i].Diff < -1 {
			report.Balanced = false
		}
	}

	switch len(diffs) {
	case 0:
	case 1:
		report.MeanDiff = diffs[0]
	default:
		mean, std := stat.MeanStdDev(diffs, nil)
		if !math.IsNaN(mean) {
			report.MeanDiff = mean
		}
		if !math.IsNaN(std) {
			report.StdDevDiff = std
		}
	}
	return report
}
