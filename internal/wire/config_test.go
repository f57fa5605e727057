package wire

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hemotask")
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("MAX_ACTIVE_TASKS", "")
	t.Setenv("SWEEP_INTERVAL_SECONDS", "")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 3, cfg.MaxActiveTasks)
	assert.Equal(t, 30*time.Second, cfg.SweepInterval)
	assert.Equal(t, 10*time.Minute, cfg.IdempotencyTTL)
	assert.Equal(t, 250*time.Millisecond, cfg.SweepDebounce)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hemotask")
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MAX_ACTIVE_TASKS", "5")
	t.Setenv("SWEEP_INTERVAL_SECONDS", "10")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 5, cfg.MaxActiveTasks)
	assert.Equal(t, 10*time.Second, cfg.SweepInterval)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://localhost/hemotask")
	t.Setenv("LOG_LEVEL", "chatty")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "LOG_LEVEL")
}

func TestEnvHelpers_FallBackOnGarbage(t *testing.T) {
	t.Setenv("X_INT", "-4")
	t.Setenv("X_DUR", "soon")
	assert.Equal(t, 7, envInt("X_INT", 7))
	assert.Equal(t, time.Second, envDuration("X_DUR", time.Second))
}
