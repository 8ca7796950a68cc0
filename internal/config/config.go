// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

// ScoringWeights tunes how candidate match dates are ranked.
type ScoringWeights struct {
	Base             int `yaml:"base"`
	HomePreferred    int `yaml:"home_preferred"`
	VisitorPreferred int `yaml:"visitor_preferred"`
	BackupDay        int `yaml:"backup_day"`
	OffDay           int `yaml:"off_day"`
	SplitLine        int `yaml:"split_line"`
	LeadDay          int `yaml:"lead_day"`
}

func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		Base:             100,
		HomePreferred:    30,
		VisitorPreferred: 20,
		BackupDay:        15,
		OffDay:           40,
		SplitLine:        10,
		LeadDay:          1,
	}
}

type SchedulingConfig struct {
	DefaultWindowDays    int             `yaml:"default_window_days"`
	MaxWindowDays        int             `yaml:"max_window_days"`
	MaxCandidates        int             `yaml:"max_candidates"`
	AllowSplitLines      *bool           `yaml:"allow_split_lines"`
	MatchDurationMinutes int             `yaml:"match_duration_minutes"`
	Weights              *ScoringWeights `yaml:"weights"`
}

type EmailConfig struct {
	Region          string `yaml:"region"`
	Sender          string `yaml:"sender"`
	AccessKeyID     string `yaml:"-"` // Loaded from environment
	SecretAccessKey string `yaml:"-"` // Loaded from environment
}

// Enabled reports whether enough settings are present to build an SES client.
func (c EmailConfig) Enabled() bool {
	return c.Region != "" && c.Sender != ""
}

type JobsConfig struct {
	UnscheduledDigestCron string `yaml:"unscheduled_digest_cron"`
	BlackoutPurgeCron     string `yaml:"blackout_purge_cron"`
	BlackoutRetentionDays int    `yaml:"blackout_retention_days"`
}

type Config struct {
	App struct {
		Name                   string   `yaml:"name"`
		Environment            string   `yaml:"environment"`
		Port                   int      `yaml:"port"`
		BaseURL                string   `yaml:"base_url"`
		AllowedOrigins         []string `yaml:"allowed_origins"`
		ShutdownTimeoutSeconds int      `yaml:"shutdown_timeout_seconds"`
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`

	Features struct {
		EnableMetrics bool `yaml:"enable_metrics"`
		EnableDebug   bool `yaml:"enable_debug"`
		EnableJobs    bool `yaml:"enable_jobs"`
	} `yaml:"features"`

	Scheduling SchedulingConfig `yaml:"scheduling"`
	Email      EmailConfig      `yaml:"email"`
	Jobs       JobsConfig       `yaml:"jobs"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// Secrets never live in the YAML file.
	cfg.Email.AccessKeyID = os.Getenv("AWS_SES_ACCESS_KEY_ID")
	cfg.Email.SecretAccessKey = os.Getenv("AWS_SES_SECRET_ACCESS_KEY")

	return cfg, nil
}

// Parse decodes YAML, applies defaults, and validates the result.
func Parse(data []byte) (*Config, error) {
	// Weights are decoded over the defaults so a partial block only
	// overrides the terms it names.
	weights := DefaultScoringWeights()
	var cfg Config
	cfg.Scheduling.Weights = &weights
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) SetDefaults() {
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.App.ShutdownTimeoutSeconds <= 0 {
		c.App.ShutdownTimeoutSeconds = 30
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}

	s := &c.Scheduling
	if s.DefaultWindowDays <= 0 {
		s.DefaultWindowDays = 28
	}
	if s.MaxWindowDays <= 0 {
		s.MaxWindowDays = 120
	}
	if s.MaxCandidates <= 0 {
		s.MaxCandidates = 10
	}
	if s.AllowSplitLines == nil {
		allow := true
		s.AllowSplitLines = &allow
	}
	if s.MatchDurationMinutes <= 0 {
		s.MatchDurationMinutes = 90
	}
	if s.Weights == nil {
		w := DefaultScoringWeights()
		s.Weights = &w
	}

	if c.Jobs.UnscheduledDigestCron == "" {
		c.Jobs.UnscheduledDigestCron = "0 8 * * 1"
	}
	if c.Jobs.BlackoutPurgeCron == "" {
		c.Jobs.BlackoutPurgeCron = "30 3 * * *"
	}
	if c.Jobs.BlackoutRetentionDays <= 0 {
		c.Jobs.BlackoutRetentionDays = 30
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Scheduling.DefaultWindowDays > c.Scheduling.MaxWindowDays {
		return fmt.Errorf("scheduling default_window_days must not exceed max_window_days")
	}
	if w := c.Scheduling.Weights; w != nil {
		if w.SplitLine < 0 || w.LeadDay < 0 || w.BackupDay < 0 || w.OffDay < 0 {
			return fmt.Errorf("scheduling penalty weights must be 0 or greater")
		}
	}

	if (c.Email.Region == "") != (c.Email.Sender == "") {
		return fmt.Errorf("email region and sender must be set together")
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	for name, expr := range map[string]string{
		"unscheduled_digest_cron": c.Jobs.UnscheduledDigestCron,
		"blackout_purge_cron":     c.Jobs.BlackoutPurgeCron,
	} {
		if _, err := parser.Parse(strings.TrimSpace(expr)); err != nil {
			return fmt.Errorf("jobs %s is invalid: %w", name, err)
		}
	}

	return nil
}
