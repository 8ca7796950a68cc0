// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/codr1/Baseliner/internal/api"
	"github.com/codr1/Baseliner/internal/api/facilities"
	"github.com/codr1/Baseliner/internal/api/leagues"
	"github.com/codr1/Baseliner/internal/api/matches"
	"github.com/codr1/Baseliner/internal/config"
	appdb "github.com/codr1/Baseliner/internal/db"
	"github.com/codr1/Baseliner/internal/email"
	"github.com/codr1/Baseliner/internal/metrics"
)

type serverDeps struct {
	recorder *metrics.Recorder
	sender   email.EmailSender
	now      func() time.Time
}

func newServer(cfg *config.Config, database *appdb.DB, deps serverDeps) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
		api.WithCORS(cfg.App.AllowedOrigins),
	)

	facilities.InitHandlers(database)
	leagues.InitHandlers(database, leagues.Options{
		Recorder:      deps.recorder,
		MatchDuration: time.Duration(cfg.Scheduling.MatchDurationMinutes) * time.Minute,
		Now:           deps.now,
	})
	matches.InitHandlers(database, matches.Options{
		Scheduling: cfg.Scheduling,
		Recorder:   deps.recorder,
		Sender:     deps.sender,
		Now:        deps.now,
	})

	registerRoutes(router, deps.recorder)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, recorder *metrics.Recorder) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if recorder != nil {
		mux.Handle("GET /metrics", recorder.Handler())
	}

	// Facility routes
	mux.HandleFunc("GET /api/v1/facilities", facilities.HandleFacilitiesList)
	mux.HandleFunc("POST /api/v1/facilities", facilities.HandleFacilityCreate)
	mux.HandleFunc("GET /api/v1/facilities/{id}", facilities.HandleFacilityDetail)
	mux.HandleFunc("PUT /api/v1/facilities/{id}", facilities.HandleFacilityUpdate)
	mux.HandleFunc("DELETE /api/v1/facilities/{id}", facilities.HandleFacilityDelete)
	mux.HandleFunc("PUT /api/v1/facilities/{id}/schedule", facilities.HandleFacilityScheduleReplace)
	mux.HandleFunc("POST /api/v1/facilities/{id}/unavailable-dates", facilities.HandleUnavailableDateAdd)
	mux.HandleFunc("DELETE /api/v1/facilities/{id}/unavailable-dates/{date}", facilities.HandleUnavailableDateDelete)
	mux.HandleFunc("GET /api/v1/facilities/{id}/availability", facilities.HandleFacilityAvailability)

	// League routes
	mux.HandleFunc("GET /api/v1/leagues", leagues.HandleLeaguesList)
	mux.HandleFunc("POST /api/v1/leagues", leagues.HandleLeagueCreate)
	mux.HandleFunc("GET /api/v1/leagues/{id}", leagues.HandleLeagueDetail)
	mux.HandleFunc("PUT /api/v1/leagues/{id}", leagues.HandleLeagueUpdate)
	mux.HandleFunc("DELETE /api/v1/leagues/{id}", leagues.HandleLeagueDelete)
	mux.HandleFunc("GET /api/v1/leagues/{id}/teams", leagues.HandleListLeagueTeams)
	mux.HandleFunc("POST /api/v1/leagues/{id}/teams", leagues.HandleTeamCreate)
	mux.HandleFunc("GET /api/v1/leagues/{id}/matches", leagues.HandleListLeagueMatches)
	mux.HandleFunc("POST /api/v1/leagues/{id}/matches", leagues.HandleMatchCreate)
	mux.HandleFunc("POST /api/v1/leagues/{id}/matches/generate", leagues.HandleGenerateMatches)
	mux.HandleFunc("POST /api/v1/leagues/{id}/matches/regenerate", leagues.HandleRegenerateMatches)
	mux.HandleFunc("GET /api/v1/leagues/{id}/fairness", leagues.HandleLeagueFairness)
	mux.HandleFunc("GET /api/v1/leagues/{id}/lines.csv", leagues.HandleLeagueLinesCSV)

	// Team routes
	mux.HandleFunc("GET /api/v1/teams/{id}", leagues.HandleTeamDetail)
	mux.HandleFunc("PUT /api/v1/teams/{id}", leagues.HandleTeamUpdate)
	mux.HandleFunc("DELETE /api/v1/teams/{id}", leagues.HandleTeamDelete)
	mux.HandleFunc("GET /api/v1/teams/{id}/calendar.ics", leagues.HandleTeamCalendar)

	// Match routes
	mux.HandleFunc("GET /api/v1/matches/{id}", matches.HandleMatchDetail)
	mux.HandleFunc("DELETE /api/v1/matches/{id}", matches.HandleMatchDelete)
	mux.HandleFunc("GET /api/v1/matches/{id}/candidates", matches.HandleMatchCandidates)
	mux.HandleFunc("PUT /api/v1/matches/{id}/schedule", matches.HandleMatchSchedule)
	mux.HandleFunc("DELETE /api/v1/matches/{id}/schedule", matches.HandleMatchUnschedule)
}
