package email

import (
	"fmt"
	"strings"
	"time"
)

type Message struct {
	Subject string
	Body    string
}

type MatchScheduledDetails struct {
	LeagueName   string
	Round        int
	HomeTeam     string
	VisitorTeam  string
	FacilityName string
	Location     string
	Date         time.Time
	Times        []string
	Expected     int
}

func BuildMatchScheduled(d MatchScheduledDetails) Message {
	date := d.Date.Format("Monday, Jan 2, 2006")
	subject := fmt.Sprintf("%s: %s vs %s on %s", d.LeagueName, d.HomeTeam, d.VisitorTeam, d.Date.Format("Jan 2"))

	var b strings.Builder
	fmt.Fprintf(&b, "Your round %d match has been scheduled.\n\n", d.Round)
	fmt.Fprintf(&b, "Home: %s\n", d.HomeTeam)
	fmt.Fprintf(&b, "Visitor: %s\n", d.VisitorTeam)
	fmt.Fprintf(&b, "Date: %s\n", date)
	if d.Location != "" {
		fmt.Fprintf(&b, "Facility: %s (%s)\n", d.FacilityName, d.Location)
	} else {
		fmt.Fprintf(&b, "Facility: %s\n", d.FacilityName)
	}
	b.WriteString("\nLines:\n")
	for i, t := range d.Times {
		fmt.Fprintf(&b, "  Line %d: %s\n", i+1, formatClock(t))
	}
	if d.Expected > len(d.Times) {
		fmt.Fprintf(&b, "\n%d of %d lines are scheduled so far.\n", len(d.Times), d.Expected)
	}
	return Message{Subject: subject, Body: b.String()}
}

type DigestMatch struct {
	Round          int
	Opponent       string
	Home           bool
	ScheduledLines int
	ExpectedLines  int
}

// BuildUnscheduledDigest lists a team's matches that still need dates or lines.
func BuildUnscheduledDigest(leagueName, teamName, captainName string, matches []DigestMatch) Message {
	subject := fmt.Sprintf("%s: %d %s still to schedule", leagueName, len(matches), plural(len(matches), "match", "matches"))

	var b strings.Builder
	greeting := strings.TrimSpace(captainName)
	if greeting == "" {
		greeting = "Captain"
	}
	fmt.Fprintf(&b, "Hi %s,\n\n", greeting)
	fmt.Fprintf(&b, "%s has matches in %s that are not fully scheduled:\n\n", teamName, leagueName)
	for _, m := range matches {
		side := "at"
		if m.Home {
			side = "vs"
		}
		fmt.Fprintf(&b, "  Round %d %s %s: %d of %d lines scheduled\n", m.Round, side, m.Opponent, m.ScheduledLines, m.ExpectedLines)
	}
	return Message{Subject: subject, Body: b.String()}
}

func formatClock(hhmm string) string {
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		return hhmm
	}
	return parsed.Format("3:04 PM")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
