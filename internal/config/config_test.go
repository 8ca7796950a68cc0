package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
app:
  name: "Baseliner"
  port: 8080
database:
  driver: "sqlite"
  filename: "data/baseliner.db"
`

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 30, cfg.App.ShutdownTimeoutSeconds)
	assert.Equal(t, 28, cfg.Scheduling.DefaultWindowDays)
	assert.Equal(t, 120, cfg.Scheduling.MaxWindowDays)
	assert.Equal(t, 10, cfg.Scheduling.MaxCandidates)
	require.NotNil(t, cfg.Scheduling.AllowSplitLines)
	assert.True(t, *cfg.Scheduling.AllowSplitLines)
	require.NotNil(t, cfg.Scheduling.Weights)
	assert.Equal(t, 100, cfg.Scheduling.Weights.Base)
	assert.Equal(t, "0 8 * * 1", cfg.Jobs.UnscheduledDigestCron)
	assert.False(t, cfg.Email.Enabled())
}

func TestParseKeepsExplicitSplitSetting(t *testing.T) {
	cfg, err := Parse([]byte(minimalConfig + `
scheduling:
  allow_split_lines: false
  max_candidates: 3
`))
	require.NoError(t, err)
	assert.False(t, *cfg.Scheduling.AllowSplitLines)
	assert.Equal(t, 3, cfg.Scheduling.MaxCandidates)
}

func TestParsePartialWeightsKeepsOtherDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalConfig + `
scheduling:
  weights:
    split_line: 5
    off_day: 0
`))
	require.NoError(t, err)
	require.NotNil(t, cfg.Scheduling.Weights)

	want := DefaultScoringWeights()
	want.SplitLine = 5
	want.OffDay = 0
	assert.Equal(t, want, *cfg.Scheduling.Weights)
}

func TestParseNullWeightsFallsBackToDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalConfig + `
scheduling:
  weights:
`))
	require.NoError(t, err)
	require.NotNil(t, cfg.Scheduling.Weights)
	assert.Equal(t, DefaultScoringWeights(), *cfg.Scheduling.Weights)
}

func TestParseRejectsInvalidCron(t *testing.T) {
	_, err := Parse([]byte(minimalConfig + `
jobs:
  blackout_purge_cron: "every night"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blackout_purge_cron")
}

func TestParseRejectsUnsupportedDriver(t *testing.T) {
	_, err := Parse([]byte(`
app:
  name: "Baseliner"
  port: 8080
database:
  driver: "postgres"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestParseRejectsHalfConfiguredEmail(t *testing.T) {
	_, err := Parse([]byte(minimalConfig + `
email:
  region: "us-east-1"
`))
	require.Error(t, err)
}

func TestLoadReadsSecretsFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalConfig+`
email:
  region: "us-east-1"
  sender: "league@example.com"
`), 0o644))

	t.Setenv("AWS_SES_ACCESS_KEY_ID", "key")
	t.Setenv("AWS_SES_SECRET_ACCESS_KEY", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Email.Enabled())
	assert.Equal(t, "key", cfg.Email.AccessKeyID)
	assert.Equal(t, "secret", cfg.Email.SecretAccessKey)
}
