package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/moodtracker-backend/internal/pkg/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "")
	t.Setenv("APP_TIMEZONE", "")

	cfg, err := LoadConfig(logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, "postgres", cfg.Database.Driver)
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9090"
access_token_ttl: 15m
timezone: Europe/Berlin
cors_origins:
  - https://mood.example.com
database:
  driver: sqlite
  sqlite_path: /tmp/mood.db
otel:
  enabled: true
  sample_ratio: 0.25
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7070")
	t.Setenv("REFRESH_TOKEN_TTL", "3600")
	t.Setenv("APP_TIMEZONE", "")

	cfg, err := LoadConfig(logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, "Europe/Berlin", cfg.Location.String())
	assert.Equal(t, []string{"https://mood.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, "sqlite", cfg.DBConfig().Driver)
	assert.Equal(t, "/tmp/mood.db", cfg.DBConfig().SQLitePath)
	assert.True(t, cfg.OtelConfig().Enabled)
	assert.InDelta(t, 0.25, cfg.OtelConfig().SampleRatio, 1e-9)
}

func TestLoadConfigRejectsBadTimezone(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("APP_TIMEZONE", "Mars/Olympus")

	_, err := LoadConfig(logger.Nop())
	require.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := LoadConfig(logger.Nop())
	require.Error(t, err)
}
