package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "medikita-platform", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, "https://api.xendit.co", cfg.Payment.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Identity.Timeout())
	assert.Equal(t, 10*time.Second, cfg.Payment.Timeout())
	assert.Equal(t, 5*time.Minute, cfg.Payment.ReconcileInterval)
	assert.Equal(t, "json", cfg.Logger.Encoding)
	assert.Equal(t, 2*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, 30, cfg.RateLimit.AuthPerMinute)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("IDENTITY_TIMEOUT_SECONDS", "2")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9999", cfg.App.Addr())
	assert.Equal(t, 2*time.Second, cfg.Identity.Timeout())
	assert.False(t, cfg.Postgres.RunMigrations)
}

func TestInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}
