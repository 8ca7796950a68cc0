package email

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

type sentEmail struct {
	recipient string
	subject   string
	body      string
	ctxErr    error
}

type fakeEmailSender struct {
	mu    sync.Mutex
	sent  []sentEmail
	fail  map[string]error
	delay time.Duration
	done  chan struct{}
}

func newFakeEmailSender() *fakeEmailSender {
	return &fakeEmailSender{done: make(chan struct{}, 8)}
}

func (f *fakeEmailSender) Send(ctx context.Context, recipient, subject, body string) error {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	f.sent = append(f.sent, sentEmail{recipient: recipient, subject: subject, body: body, ctxErr: ctx.Err()})
	f.mu.Unlock()
	select {
	case f.done <- struct{}{}:
	default:
	}
	return f.fail[recipient]
}

func (f *fakeEmailSender) snapshot() []sentEmail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentEmail(nil), f.sent...)
}

func waitForSends(t *testing.T, f *fakeEmailSender, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-f.done:
		case <-time.After(time.Second):
			t.Fatalf("expected %d sends, saw %d", n, i)
		}
	}
}

func TestRecipientsDeduplicates(t *testing.T) {
	got := Recipients(" Cap@Example.com", "", "cap@example.com", "other@example.com")
	if len(got) != 2 || got[0] != "cap@example.com" || got[1] != "other@example.com" {
		t.Fatalf("unexpected recipients: %v", got)
	}
}

func TestSendAsyncOutlivesCanceledRequest(t *testing.T) {
	sender := newFakeEmailSender()
	sender.delay = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	SendAsync(ctx, sender, []string{"home@example.com", "away@example.com"}, Message{Subject: "S", Body: "B"}, nil)
	cancel()

	waitForSends(t, sender, 2)
	for _, sent := range sender.snapshot() {
		if sent.ctxErr != nil {
			t.Fatalf("expected detached context, got %v", sent.ctxErr)
		}
	}
}

func TestSendAsyncSkipsEmptyMessages(t *testing.T) {
	sender := newFakeEmailSender()
	SendAsync(context.Background(), sender, []string{"home@example.com"}, Message{}, nil)
	SendAsync(context.Background(), sender, nil, Message{Subject: "S", Body: "B"}, nil)

	select {
	case <-sender.done:
		t.Fatal("expected no sends")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSendAllJoinsErrors(t *testing.T) {
	sender := newFakeEmailSender()
	boom := errors.New("boom")
	sender.fail = map[string]error{"bad@example.com": boom}

	err := SendAll(context.Background(), sender, []string{"good@example.com", "bad@example.com"}, Message{Subject: "S", Body: "B"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if len(sender.snapshot()) != 2 {
		t.Fatalf("expected both recipients attempted")
	}
}

func TestBuildMatchScheduled(t *testing.T) {
	msg := BuildMatchScheduled(MatchScheduledDetails{
		LeagueName:   "Adult 40+",
		Round:        2,
		HomeTeam:     "Aces",
		VisitorTeam:  "Lobs",
		FacilityName: "Riverside",
		Date:         time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		Times:        []string{"18:00", "19:30"},
		Expected:     3,
	})

	if msg.Subject != "Adult 40+: Aces vs Lobs on Oct 19" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	for _, want := range []string{"Monday, Oct 19, 2026", "Line 1: 6:00 PM", "Line 2: 7:30 PM", "2 of 3 lines"} {
		if !strings.Contains(msg.Body, want) {
			t.Fatalf("expected body to contain %q, got %q", want, msg.Body)
		}
	}
}

func TestBuildUnscheduledDigest(t *testing.T) {
	msg := BuildUnscheduledDigest("Adult 40+", "Aces", "", []DigestMatch{
		{Round: 1, Opponent: "Lobs", Home: true, ExpectedLines: 3},
	})
	if msg.Subject != "Adult 40+: 1 match still to schedule" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "Hi Captain") || !strings.Contains(msg.Body, "Round 1 vs Lobs: 0 of 3 lines scheduled") {
		t.Fatalf("unexpected body %q", msg.Body)
	}
}
