// internal/api/matches/html.go
package matches

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/Baseliner/internal/facilities"
	"github.com/codr1/Baseliner/internal/leagues"
	"github.com/codr1/Baseliner/internal/models"
)

func matchDetailComponent(view models.MatchView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildMatchCardHTML(view))
		return err
	})
}

func candidatesComponent(match leagues.Match, facility facilities.Facility, candidates []leagues.Candidate) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildCandidatesHTML(match, facility, candidates))
		return err
	})
}

func buildMatchCardHTML(view models.MatchView) string {
	when := "Not scheduled"
	if view.Date != "" {
		when = fmt.Sprintf("%s at %s (%s)", view.Date, view.Facility, strings.Join(view.ScheduledTimes, ", "))
	}
	return fmt.Sprintf(
		`<div class="rounded border bg-white p-4" data-match-id="%d">
			<div class="flex items-center justify-between">
				<div class="font-semibold text-gray-900">%s vs %s</div>
				<div class="text-xs text-gray-500">Round %d</div>
			</div>
			<div class="mt-2 text-sm text-gray-700">%s</div>
			<div class="mt-1 text-xs text-gray-500">%d of %d lines &middot; %s</div>
		</div>`,
		view.ID,
		html.EscapeString(view.HomeTeam),
		html.EscapeString(view.VisitorTeam),
		view.Round,
		html.EscapeString(when),
		view.NumScheduledLines,
		view.ExpectedLines,
		html.EscapeString(view.Status),
	)
}

func buildCandidatesHTML(match leagues.Match, facility facilities.Facility, candidates []leagues.Candidate) string {
	if len(candidates) == 0 {
		return fmt.Sprintf(
			`<div class="rounded border border-dashed p-6 text-center text-sm text-gray-500">No dates at %s fit every line.</div>`,
			html.EscapeString(facility.Name),
		)
	}

	var builder strings.Builder
	builder.WriteString(`<ol class="divide-y rounded border bg-white">`)
	for _, c := range candidates {
		vals := html.EscapeString(fmt.Sprintf(`{"date":%q,"facility_id":"%d","times":%q}`, c.Date, facility.ID, strings.Join(c.Times, ",")))

		builder.WriteString(fmt.Sprintf(
			`<li class="flex items-center justify-between gap-4 p-3" data-date="%s">
				<div>
					<div class="font-medium text-gray-900">%s %s</div>
					<div class="text-xs text-gray-600">%s</div>
					<div class="text-xs text-gray-400">%s</div>
				</div>
				<div class="flex items-center gap-3">
					<span class="text-sm font-semibold">%d</span>
					<button class="rounded bg-blue-600 px-3 py-1 text-xs text-white" hx-put="/api/v1/matches/%d/schedule" hx-vals="%s" hx-target="closest [data-match-id], #match-detail">Schedule</button>
				</div>
			</li>`,
			c.Date,
			html.EscapeString(c.Weekday),
			c.Date,
			html.EscapeString(strings.Join(c.Times, ", ")),
			html.EscapeString(strings.Join(c.Reasons, "; ")),
			c.Score,
			match.ID,
			vals,
		))
	}
	builder.WriteString(`</ol>`)
	return builder.String()
}
