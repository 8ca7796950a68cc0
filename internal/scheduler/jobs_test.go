package scheduler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	dbgen "github.com/codr1/Baseliner/internal/db/generated"
	"github.com/codr1/Baseliner/internal/testutil"
)

type recordingSender struct {
	mu         sync.Mutex
	recipients []string
	bodies     []string
}

func (s *recordingSender) Send(_ context.Context, recipient, _, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipients = append(s.recipients, recipient)
	s.bodies = append(s.bodies, body)
	return nil
}

func TestSendUnscheduledDigests(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	q := database.Queries

	league, err := q.CreateLeague(ctx, dbgen.CreateLeagueParams{Name: "Adult 40+", Year: 2026, NumLinesPerMatch: 2})
	if err != nil {
		t.Fatalf("create league: %v", err)
	}
	home, err := q.CreateTeam(ctx, dbgen.CreateTeamParams{LeagueID: league.ID, Name: "Aces", CaptainName: "Pat", CaptainEmail: "pat@example.com"})
	if err != nil {
		t.Fatalf("create home: %v", err)
	}
	visitor, err := q.CreateTeam(ctx, dbgen.CreateTeamParams{LeagueID: league.ID, Name: "Lobs"})
	if err != nil {
		t.Fatalf("create visitor: %v", err)
	}
	if _, err := q.CreateMatch(ctx, dbgen.CreateMatchParams{LeagueID: league.ID, HomeTeamID: home.ID, VisitorTeamID: visitor.ID, Round: 1}); err != nil {
		t.Fatalf("create match: %v", err)
	}

	sender := &recordingSender{}
	sent, err := SendUnscheduledDigests(ctx, q, sender, nil)
	if err != nil {
		t.Fatalf("send digests: %v", err)
	}
	if sent != 1 {
		t.Fatalf("expected 1 digest (visitor has no captain email), got %d", sent)
	}
	if sender.recipients[0] != "pat@example.com" {
		t.Fatalf("unexpected recipient %q", sender.recipients[0])
	}
	if !strings.Contains(sender.bodies[0], "Round 1 vs Lobs: 0 of 2 lines scheduled") {
		t.Fatalf("unexpected digest body %q", sender.bodies[0])
	}
}

func TestPurgeBlackoutDates(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	q := database.Queries

	facility, err := q.CreateFacility(ctx, dbgen.CreateFacilityParams{Name: "Riverside", ShortName: "RIV", TotalCourts: 4})
	if err != nil {
		t.Fatalf("create facility: %v", err)
	}
	for _, date := range []string{"2026-08-01", "2026-09-20", "2026-11-01"} {
		if _, err := q.UpsertFacilityUnavailableDate(ctx, dbgen.UpsertFacilityUnavailableDateParams{
			FacilityID:      facility.ID,
			UnavailableDate: date,
		}); err != nil {
			t.Fatalf("insert blackout %s: %v", date, err)
		}
	}

	now := time.Date(2026, 10, 15, 3, 30, 0, 0, time.UTC)
	removed, err := PurgeBlackoutDates(ctx, q, now, 30)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed date, got %d", removed)
	}

	remaining, err := q.ListFacilityUnavailableDates(ctx, facility.ID)
	if err != nil {
		t.Fatalf("list remaining: %v", err)
	}
	if len(remaining) != 2 || remaining[0].UnavailableDate != "2026-09-20" {
		t.Fatalf("unexpected remaining dates: %+v", remaining)
	}
}

func TestServiceAddJobValidates(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("init scheduler: %v", err)
	}
	svc, err := ServiceInstance()
	if err != nil {
		t.Fatalf("service instance: %v", err)
	}

	if _, err := svc.AddJob(" ", "* * * * *", func() {}); !errors.Is(err, ErrEmptyJobName) {
		t.Fatalf("expected ErrEmptyJobName, got %v", err)
	}
	if _, err := svc.AddJob("noop", "", func() {}); !errors.Is(err, ErrEmptyCronExpr) {
		t.Fatalf("expected ErrEmptyCronExpr, got %v", err)
	}
	if _, err := svc.AddJob("noop", "not a cron", func() {}); err == nil {
		t.Fatal("expected invalid cron to fail")
	}
}
