package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"github.com/codr1/Baseliner/internal/db"
	dbgen "github.com/codr1/Baseliner/internal/db/generated"
	"github.com/codr1/Baseliner/internal/facilities"
)

const blackoutPurgeJobName = "blackout_purge"

// RegisterBlackoutPurgeJob drops facility blackout dates older than the
// retention period.
func RegisterBlackoutPurgeJob(database *db.DB, cronExpr string, retentionDays int) error {
	if database == nil {
		return fmt.Errorf("blackout purge job requires database")
	}

	jobLogger := log.With().
		Str("component", "blackout_purge_job").
		Str("job_name", blackoutPurgeJobName).
		Str("cron", cronExpr).
		Int("retention_days", retentionDays).
		Logger()

	_, err := AddJob(blackoutPurgeJobName, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		removed, err := PurgeBlackoutDates(ctx, database.Queries, time.Now(), retentionDays)
		if err != nil {
			jobLogger.Error().Err(err).Msg("Blackout purge failed")
			return
		}
		jobLogger.Info().Int64("removed", removed).Msg("Blackout purge finished")
	}, gocron.WithSingletonMode(gocron.LimitModeReschedule))
	if err != nil {
		return fmt.Errorf("add blackout purge job: %w", err)
	}
	return nil
}

func PurgeBlackoutDates(ctx context.Context, q dbgen.Querier, now time.Time, retentionDays int) (int64, error) {
	if retentionDays < 0 {
		retentionDays = 0
	}
	cutoff := facilities.TruncateDate(now).AddDate(0, 0, -retentionDays)
	removed, err := q.DeleteUnavailableDatesBefore(ctx, facilities.DateKey(cutoff))
	if err != nil {
		return 0, fmt.Errorf("delete unavailable dates: %w", err)
	}
	return removed, nil
}
