// internal/api/facilities/html.go
package facilities

import (
	"context"
	"fmt"
	"html"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/a-h/templ"

	dbgen "github.com/codr1/Baseliner/internal/db/generated"
	facilityschedule "github.com/codr1/Baseliner/internal/facilities"
)

func facilitiesListComponent(rows []dbgen.Facility) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildFacilitiesListHTML(rows))
		return err
	})
}

func facilityDetailComponent(facility facilityschedule.Facility) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildFacilityDetailHTML(facility))
		return err
	})
}

func availabilityComponent(facility facilityschedule.Facility, date time.Time, slots []facilityschedule.SlotAvailability, closed bool, reason string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildAvailabilityHTML(facility, date, slots, closed, reason))
		return err
	})
}

func buildFacilitiesListHTML(rows []dbgen.Facility) string {
	if len(rows) == 0 {
		return `<div class="rounded border border-dashed p-6 text-center text-sm text-gray-500">No facilities found.</div>`
	}

	var builder strings.Builder
	builder.WriteString(`<ul class="divide-y rounded border bg-white">`)
	for _, row := range rows {
		builder.WriteString(fmt.Sprintf(
			`<li class="flex items-center justify-between p-3" data-facility-id="%d"><span class="font-medium text-gray-900">%s</span><span class="text-xs text-gray-500">%s &middot; %d courts</span></li>`,
			row.ID,
			html.EscapeString(row.Name),
			html.EscapeString(row.ShortName),
			row.TotalCourts,
		))
	}
	builder.WriteString(`</ul>`)
	return builder.String()
}

func buildFacilityDetailHTML(facility facilityschedule.Facility) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(
		`<div class="rounded border bg-white p-4 shadow-sm" data-facility-id="%d"><div class="flex items-center justify-between"><div class="text-lg font-semibold text-gray-900">%s</div><div class="text-xs text-gray-500">%s</div></div><div class="mt-1 text-sm text-gray-600">%s</div>`,
		facility.ID,
		html.EscapeString(facility.Name),
		html.EscapeString(facility.ShortName),
		html.EscapeString(facility.Location),
	))

	builder.WriteString(`<table class="mt-3 w-full text-sm"><tbody>`)
	for day := time.Sunday; day <= time.Saturday; day++ {
		slots := facility.Schedule[day].Slots
		parts := make([]string, 0, len(slots))
		for _, slot := range slots {
			parts = append(parts, fmt.Sprintf("%s (%d)", slot.Time, slot.AvailableCourts))
		}
		text := "Closed"
		if len(parts) > 0 {
			text = strings.Join(parts, ", ")
		}
		builder.WriteString(fmt.Sprintf(`<tr><th class="pr-4 text-left font-medium text-gray-600">%s</th><td>%s</td></tr>`, day, html.EscapeString(text)))
	}
	builder.WriteString(`</tbody></table>`)

	if len(facility.UnavailableDates) > 0 {
		dates := make([]string, 0, len(facility.UnavailableDates))
		for date := range facility.UnavailableDates {
			dates = append(dates, date)
		}
		sort.Strings(dates)
		builder.WriteString(`<ul class="mt-3 text-xs text-red-700">`)
		for _, date := range dates {
			label := date
			if reason := facility.UnavailableDates[date]; reason != "" {
				label += ": " + reason
			}
			builder.WriteString(`<li>` + html.EscapeString(label) + `</li>`)
		}
		builder.WriteString(`</ul>`)
	}
	builder.WriteString(`</div>`)
	return builder.String()
}

func buildAvailabilityHTML(facility facilityschedule.Facility, date time.Time, slots []facilityschedule.SlotAvailability, closed bool, reason string) string {
	heading := fmt.Sprintf("%s on %s", facility.Name, date.Format("Mon Jan 2, 2006"))
	if closed {
		message := "Closed"
		if reason != "" {
			message += ": " + reason
		}
		return fmt.Sprintf(
			`<div class="rounded border bg-white p-4"><div class="font-semibold">%s</div><p class="mt-2 text-sm text-red-700">%s</p></div>`,
			html.EscapeString(heading),
			html.EscapeString(message),
		)
	}
	if len(slots) == 0 {
		return fmt.Sprintf(
			`<div class="rounded border bg-white p-4"><div class="font-semibold">%s</div><p class="mt-2 text-sm text-gray-500">No time slots on this day.</p></div>`,
			html.EscapeString(heading),
		)
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(`<div class="rounded border bg-white p-4"><div class="font-semibold">%s</div>`, html.EscapeString(heading)))
	builder.WriteString(`<table class="mt-2 w-full text-sm"><thead><tr><th class="text-left">Time</th><th>Courts</th><th>Used</th><th>Free</th></tr></thead><tbody>`)
	for _, slot := range slots {
		rowClass := ""
		if slot.Free == 0 {
			rowClass = ` class="text-gray-400"`
		}
		builder.WriteString(fmt.Sprintf(
			`<tr%s data-time="%s"><td>%s</td><td class="text-center">%d</td><td class="text-center">%d</td><td class="text-center">%d</td></tr>`,
			rowClass, slot.Time, slot.Time, slot.Capacity, slot.Used, slot.Free,
		))
	}
	builder.WriteString(`</tbody></table></div>`)
	return builder.String()
}
