// internal/api/leagues/html.go
package leagues

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/Baseliner/internal/leagues"
	"github.com/codr1/Baseliner/internal/models"
)

func leaguesListComponent(list []leagues.League) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildLeaguesListHTML(list))
		return err
	})
}

func leagueDetailComponent(league leagues.League) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildLeagueCardHTML(league))
		return err
	})
}

func teamsListComponent(teams []leagues.Team) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(teams) == 0 {
			_, err := io.WriteString(w, `<div class="rounded border border-dashed p-6 text-center text-sm text-gray-500">No teams yet.</div>`)
			return err
		}
		var builder strings.Builder
		builder.WriteString(`<div class="grid gap-3">`)
		for _, team := range teams {
			builder.WriteString(buildTeamCardHTML(team))
		}
		builder.WriteString(`</div>`)
		_, err := io.WriteString(w, builder.String())
		return err
	})
}

func teamDetailComponent(team leagues.Team) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildTeamCardHTML(team))
		return err
	})
}

func matchesListComponent(views []models.MatchView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildMatchesListHTML(views))
		return err
	})
}

func fairnessComponent(report leagues.FairnessReport) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildFairnessHTML(report))
		return err
	})
}

func buildLeaguesListHTML(list []leagues.League) string {
	if len(list) == 0 {
		return `<div class="rounded border border-dashed p-6 text-center text-sm text-gray-500">No leagues found.</div>`
	}

	var builder strings.Builder
	builder.WriteString(`<div class="grid gap-4">`)
	for _, league := range list {
		builder.WriteString(buildLeagueCardHTML(league))
	}
	builder.WriteString(`</div>`)
	return builder.String()
}

func buildLeagueCardHTML(league leagues.League) string {
	backup := "None"
	if !league.BackupDays.Empty() {
		backup = strings.Join(league.BackupDays.Names(), ", ")
	}
	division := strings.TrimSpace(strings.Join([]string{league.Section, league.Region, league.AgeGroup, league.Division}, " "))

	return fmt.Sprintf(
		`<div class="rounded border bg-white p-4 shadow-sm" data-league-id="%d">
			<div class="flex flex-wrap items-center justify-between gap-2">
				<div class="text-lg font-semibold text-gray-900">%s</div>
				<div class="text-xs text-gray-500">%d</div>
			</div>
			<dl class="mt-3 grid grid-cols-1 gap-2 text-sm text-gray-700 sm:grid-cols-2">
				<div class="flex items-center justify-between gap-4">
					<dt class="font-medium text-gray-600">Division</dt>
					<dd>%s</dd>
				</div>
				<div class="flex items-center justify-between gap-4">
					<dt class="font-medium text-gray-600">Lines per match</dt>
					<dd>%d</dd>
				</div>
				<div class="flex items-center justify-between gap-4">
					<dt class="font-medium text-gray-600">Backup days</dt>
					<dd>%s</dd>
				</div>
			</dl>
		</div>`,
		league.ID,
		html.EscapeString(league.Name),
		league.Year,
		html.EscapeString(division),
		league.NumLinesPerMatch,
		html.EscapeString(backup),
	)
}

func buildTeamCardHTML(team leagues.Team) string {
	preferred := "Any"
	if !team.PreferredDays.Empty() {
		preferred = strings.Join(team.PreferredDays.Names(), ", ")
	}
	captain := team.Captain.Name
	if team.Captain.Email != "" {
		captain = strings.TrimSpace(captain + " <" + team.Captain.Email + ">")
	}
	return fmt.Sprintf(
		`<div class="rounded border bg-white p-3" data-team-id="%d"><div class="font-medium text-gray-900">%s</div><div class="text-xs text-gray-600">Captain: %s</div><div class="text-xs text-gray-500">Prefers: %s</div></div>`,
		team.ID,
		html.EscapeString(team.Name),
		html.EscapeString(captain),
		html.EscapeString(preferred),
	)
}

func buildMatchesListHTML(views []models.MatchView) string {
	if len(views) == 0 {
		return `<div class="rounded border border-dashed p-6 text-center text-sm text-gray-500">No matches.</div>`
	}

	var builder strings.Builder
	builder.WriteString(`<table class="w-full text-sm"><thead><tr><th>Round</th><th class="text-left">Home</th><th class="text-left">Visitor</th><th>Date</th><th>Lines</th><th>Status</th></tr></thead><tbody>`)
	for _, view := range views {
		date := view.Date
		if date == "" {
			date = "-"
		}
		builder.WriteString(fmt.Sprintf(
			`<tr data-match-id="%d"><td class="text-center">%d</td><td>%s</td><td>%s</td><td class="text-center">%s</td><td class="text-center">%d/%d</td><td class="text-center">%s</td></tr>`,
			view.ID,
			view.Round,
			html.EscapeString(view.HomeTeam),
			html.EscapeString(view.VisitorTeam),
			html.EscapeString(date),
			view.NumScheduledLines,
			view.ExpectedLines,
			html.EscapeString(view.Status),
		))
	}
	builder.WriteString(`</tbody></table>`)
	return builder.String()
}

func buildFairnessHTML(report leagues.FairnessReport) string {
	var builder strings.Builder
	badge := `<span class="rounded bg-green-100 px-2 text-green-800">Balanced</span>`
	if !report.Balanced {
		badge = `<span class="rounded bg-amber-100 px-2 text-amber-800">Unbalanced</span>`
	}
	builder.WriteString(fmt.Sprintf(`<div class="space-y-2"><div class="flex items-center gap-2 text-sm">%s<span class="text-gray-500">mean %.2f, std dev %.2f</span></div>`, badge, report.MeanDiff, report.StdDevDiff))
	builder.WriteString(`<table class="w-full text-sm"><thead><tr><th class="text-left">Team</th><th>Home</th><th>Away</th><th>Total</th></tr></thead><tbody>`)
	for _, row := range report.Teams {
		builder.WriteString(fmt.Sprintf(
			`<tr data-team-id="%d"><td>%s</td><td class="text-center">%d</td><td class="text-center">%d</td><td class="text-center">%d</td></tr>`,
			row.TeamID, html.EscapeString(row.TeamName), row.Home, row.Away, row.Total,
		))
	}
	builder.WriteString(`</tbody></table></div>`)
	return builder.String()
}
