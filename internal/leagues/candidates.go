package leagues

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/codr1/Baseliner/internal/facilities"
)

// Weights are the terms of a candidate's score. Penalties are subtracted.
type Weights struct {
	Base             int `json:"base"`
	HomePreferred    int `json:"homePreferred"`
	VisitorPreferred int `json:"visitorPreferred"`
	BackupDay        int `json:"backupDay"`
	OffDay           int `json:"offDay"`
	SplitLine        int `json:"splitLine"`
	LeadDay          int `json:"leadDay"`
}

func DefaultWeights() Weights {
	return Weights{
		Base:             100,
		HomePreferred:    30,
		VisitorPreferred: 20,
		BackupDay:        15,
		OffDay:           40,
		SplitLine:        10,
		LeadDay:          1,
	}
}

const DefaultCandidateLimit = 10

// Candidate is a date on which every line of a match fits at the facility.
type Candidate struct {
	Date    string   `json:"date"`
	Weekday string   `json:"weekday"`
	Times   []string `json:"times"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

type CandidateRequest struct {
	League   League
	Home     Team
	Visitor  Team
	Facility facilities.Facility
	// Usage holds lines of other matches at the facility.
	Usage facilities.Usage
	// BusyDates are dates on which either team already plays another match.
	BusyDates  map[string]bool
	Window     Window
	Weights    Weights
	AllowSplit bool
	Limit      int
}

// GenerateCandidates walks the window and returns the best scoring dates for
// the match, highest score first.
func GenerateCandidates(req CandidateRequest) ([]Candidate, error) {
	lines := req.League.NumLinesPerMatch
	if lines < 1 {
		return nil, errors.New("league must play at least one line per match")
	}
	if req.Window.End.Before(req.Window.Start) {
		return nil, ErrInvalidWindow
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultCandidateLimit
	}

	start := facilities.TruncateDate(req.Window.Start)
	end := facilities.TruncateDate(req.Window.End)

	var candidates []Candidate
	for date, offset := start, 0; !date.After(end); date, offset = date.AddDate(0, 0, 1), offset+1 {
		key := facilities.DateKey(date)
		if req.BusyDates[key] {
			continue
		}
		// Blackout dates come back with no slots.
		available := req.Facility.Availability(date, req.Usage)
		if len(available) == 0 {
			continue
		}
		times, ok := allocateLines(available, lines, req.AllowSplit)
		if !ok {
			continue
		}
		score, reasons := scoreCandidate(req, date.Weekday(), times, offset)
		candidates = append(candidates, Candidate{
			Date:    key,
			Weekday: strings.ToLower(date.Weekday().String()),
			Times:   times,
			Score:   score,
			Reasons: reasons,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.Times[0] < b.Times[0]
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// allocateLines picks one start time per line. All lines start together when
// a single slot has room; otherwise lines fill slots in time order if
// splitting is allowed.
func allocateLines(slots []facilities.SlotAvailability, lines int, allowSplit bool) ([]string, bool) {
	for _, slot := range slots {
		if slot.Free >= lines {
			times := make([]string, lines)
			for i := range times {
				times[i] = slot.Time
			}
			return times, true
		}
	}
	if !allowSplit {
		return nil, false
	}

	times := make([]string, 0, lines)
	for _, slot := range slots {
		for n := 0; n < slot.Free && len(times) < lines; n++ {
			times = append(times, slot.Time)
		}
		if len(times) == lines {
			return times, true
		}
	}
	return nil, false
}

func scoreCandidate(req CandidateRequest, day time.Weekday, times []string, offset int) (int, []string) {
	w := req.Weights
	score := w.Base
	var reasons []string

	homePrefers := req.Home.PreferredDays.Has(day)
	visitorPrefers := req.Visitor.PreferredDays.Has(day)
	if homePrefers {
		score += w.HomePreferred
		reasons = append(reasons, "home team preferred day")
	}
	if visitorPrefers {
		score += w.VisitorPreferred
		reasons = append(reasons, "visitor team preferred day")
	}
	if !homePrefers && !visitorPrefers {
		if req.League.BackupDays.Has(day) {
			score -= w.BackupDay
			reasons = append(reasons, "league backup day")
		} else {
			score -= w.OffDay
			reasons = append(reasons, "not a preferred or backup day")
		}
	}

	if distinct := countDistinct(times); distinct > 1 {
		score -= w.SplitLine * (distinct - 1)
		reasons = append(reasons, fmt.Sprintf("lines split across %d start times", distinct))
	}
	if offset > 0 && w.LeadDay > 0 {
		score -= w.LeadDay * offset
		reasons = append(reasons, fmt.Sprintf("%d days after window start", offset))
	}
	return score, reasons
}

func countDistinct(times []string) int {
	seen := make(map[string]struct{}, len(times))
	for _, t := range times {
		seen[t] = struct{}{}
	}
	return len(seen)
}
