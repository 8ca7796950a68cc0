package apiutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func TestParseOptionalInt64Field(t *testing.T) {
	got, err := ParseOptionalInt64Field("  ", "facility_id")
	if err != nil || got != nil {
		t.Fatalf("expected nil for blank, got %v %v", got, err)
	}
	got, err = ParseOptionalInt64Field("42", "facility_id")
	if err != nil || got == nil || *got != 42 {
		t.Fatalf("expected 42, got %v %v", got, err)
	}
	if _, err := ParseOptionalInt64Field("-1", "facility_id"); err == nil {
		t.Fatal("expected error for negative id")
	}
}

func TestPathID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leagues/7", nil)
	req.SetPathValue("id", "7")
	id, err := PathID(req, "id")
	if err != nil || id != 7 {
		t.Fatalf("expected 7, got %d %v", id, err)
	}
	req.SetPathValue("id", "abc")
	if _, err := PathID(req, "id"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}

func TestWriteHandlerErrorUsesStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	err := fmt.Errorf("wrapped: %w", HandlerError{Status: http.StatusConflict, Message: "Already exists"})
	WriteHandlerError(rr, req, err, "Failed")
	if rr.Code != http.StatusConflict || !strings.Contains(rr.Body.String(), "Already exists") {
		t.Fatalf("unexpected response %d %q", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	WriteHandlerError(rr, req, errors.New("boom"), "Failed")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}

func TestRenderHTMLComponentBuffersFailures(t *testing.T) {
	failing := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, "<div>partial")
		return errors.New("render failed")
	})
	rr := httptest.NewRecorder()
	if RenderHTMLComponent(context.Background(), rr, failing, nil, "log", "Failed to render") {
		t.Fatal("expected render failure")
	}
	if strings.Contains(rr.Body.String(), "partial") {
		t.Fatalf("expected partial output to be discarded, got %q", rr.Body.String())
	}

	ok := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>ok</p>")
		return err
	})
	rr = httptest.NewRecorder()
	if !RenderHTMLComponent(context.Background(), rr, ok, map[string]string{"HX-Trigger": "refresh"}, "log", "Failed") {
		t.Fatal("expected render success")
	}
	if rr.Header().Get("HX-Trigger") != "refresh" || rr.Body.String() != "<p>ok</p>" {
		t.Fatalf("unexpected response headers=%v body=%q", rr.Header(), rr.Body.String())
	}
}

func TestIsJSONRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	if !IsJSONRequest(req) {
		t.Fatal("expected JSON request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if IsJSONRequest(req) {
		t.Fatal("expected form request")
	}
}
