// cmd/server/root.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/Baseliner/internal/config"
	appdb "github.com/codr1/Baseliner/internal/db"
	"github.com/codr1/Baseliner/internal/email"
	"github.com/codr1/Baseliner/internal/metrics"
	"github.com/codr1/Baseliner/internal/scheduler"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "baseliner",
	Short:         "Tennis league scheduling service",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config/config.yaml", "configuration file")
	rootCmd.AddCommand(migrateCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	setupLogger(cfg.App.Environment, cfg.Features.EnableDebug)
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := appdb.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	var recorder *metrics.Recorder
	if cfg.Features.EnableMetrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		recorder, err = metrics.NewRecorder(reg)
		if err != nil {
			return fmt.Errorf("init metrics: %w", err)
		}
	}

	// Left as a nil interface when email is off so handlers skip sending.
	var sender email.EmailSender
	if cfg.Email.Enabled() {
		client, err := email.NewSESClient(ctx, cfg.Email)
		if err != nil {
			return fmt.Errorf("init email: %w", err)
		}
		sender = client
	} else {
		log.Info().Msg("Email not configured; notifications disabled")
	}

	if cfg.Features.EnableJobs {
		if err := startJobs(cfg, database, sender); err != nil {
			return err
		}
		defer func() {
			if err := scheduler.Stop(); err != nil {
				log.Error().Err(err).Msg("Failed to stop scheduler")
			}
		}()
	}

	server := newServer(cfg, database, serverDeps{recorder: recorder, sender: sender})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Str("environment", cfg.App.Environment).Msg("Starting server")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		timeout := time.Duration(cfg.App.ShutdownTimeoutSeconds) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func startJobs(cfg *config.Config, database *appdb.DB, sender email.EmailSender) error {
	if err := scheduler.Init(); err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	if err := scheduler.RegisterUnscheduledDigestJob(database, sender, cfg.Jobs.UnscheduledDigestCron); err != nil {
		return fmt.Errorf("register digest job: %w", err)
	}
	if err := scheduler.RegisterBlackoutPurgeJob(database, cfg.Jobs.BlackoutPurgeCron, cfg.Jobs.BlackoutRetentionDays); err != nil {
		return fmt.Errorf("register purge job: %w", err)
	}
	if err := scheduler.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	return nil
}
