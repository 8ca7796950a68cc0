package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/Baseliner/internal/db"
	dbgen "github.com/codr1/Baseliner/internal/db/generated"
	"github.com/codr1/Baseliner/internal/email"
	"github.com/codr1/Baseliner/internal/leagues"
	"github.com/codr1/Baseliner/internal/models"
)

const unscheduledDigestJobName = "unscheduled_match_digest"

// RegisterUnscheduledDigestJob emails each captain a list of their matches
// that are not fully scheduled.
func RegisterUnscheduledDigestJob(database *db.DB, sender email.EmailSender, cronExpr string) error {
	if database == nil {
		return fmt.Errorf("digest job requires database")
	}

	jobLogger := log.With().
		Str("component", "unscheduled_digest_job").
		Str("job_name", unscheduledDigestJobName).
		Str("cron", cronExpr).
		Logger()

	_, err := AddJob(unscheduledDigestJobName, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		if sender == nil {
			jobLogger.Debug().Msg("Digest job skipped: email client not configured")
			return
		}

		sent, err := SendUnscheduledDigests(ctx, database.Queries, sender, &jobLogger)
		if err != nil {
			jobLogger.Error().Err(err).Msg("Unscheduled digest failed")
			return
		}
		jobLogger.Info().Int("emails_sent", sent).Msg("Unscheduled digest finished")
	}, gocron.WithSingletonMode(gocron.LimitModeReschedule))
	if err != nil {
		return fmt.Errorf("add unscheduled digest job: %w", err)
	}
	return nil
}

// SendUnscheduledDigests walks every league and mails each captain whose team
// has matches still missing lines. It returns the number of emails sent.
func SendUnscheduledDigests(ctx context.Context, q dbgen.Querier, sender email.EmailSender, logger *zerolog.Logger) (int, error) {
	rows, err := q.ListLeagues(ctx)
	if err != nil {
		return 0, fmt.Errorf("list leagues: %w", err)
	}

	sent := 0
	for _, row := range rows {
		league, err := models.LeagueFromRow(row)
		if err != nil {
			return sent, err
		}
		teams, err := models.ListLeagueTeams(ctx, q, league.ID)
		if err != nil {
			return sent, fmt.Errorf("list teams for league %d: %w", league.ID, err)
		}
		matches, err := models.ListLeagueMatches(ctx, q, league)
		if err != nil {
			return sent, fmt.Errorf("list matches for league %d: %w", league.ID, err)
		}

		names := make(map[int64]string, len(teams))
		for _, team := range teams {
			names[team.ID] = team.Name
		}

		for _, team := range teams {
			if team.Captain.Email == "" {
				continue
			}
			pending := pendingMatches(team, matches, names)
			if len(pending) == 0 {
				continue
			}
			msg := email.BuildUnscheduledDigest(league.Name, team.Name, team.Captain.Name, pending)
			if err := sender.Send(ctx, team.Captain.Email, msg.Subject, msg.Body); err != nil {
				if logger != nil {
					logger.Error().Err(err).Int64("team_id", team.ID).Msg("Failed to send unscheduled digest")
				}
				continue
			}
			sent++
		}
	}
	return sent, nil
}

func pendingMatches(team leagues.Team, matches []leagues.Match, names map[int64]string) []email.DigestMatch {
	var pending []email.DigestMatch
	for _, m := range matches {
		if !m.Involves(team.ID) || m.FullyScheduled() {
			continue
		}
		opponent := m.VisitorTeamID
		if m.VisitorTeamID == team.ID {
			opponent = m.HomeTeamID
		}
		pending = append(pending, email.DigestMatch{
			Round:          m.Round,
			Opponent:       names[opponent],
			Home:           m.HomeTeamID == team.ID,
			ScheduledLines: m.NumScheduledLines(),
			ExpectedLines:  m.ExpectedLines,
		})
	}
	return pending
}
