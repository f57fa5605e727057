package wire

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config is read from the environment once at startup.
type Config struct {
	DatabaseURL    string
	Port           string
	LogLevel       slog.Level
	RedisURL       string
	IdempotencyTTL time.Duration
	MaxActiveTasks int
	SweepInterval  time.Duration
	SweepDebounce  time.Duration
	DBMaxConns     int32
}

func LoadConfig() (Config, error) {
	cfg := Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		Port:           envString("PORT", "8080"),
		RedisURL:       os.Getenv("REDIS_URL"),
		IdempotencyTTL: envDuration("IDEMPOTENCY_TTL_SECONDS", 10*time.Minute),
		MaxActiveTasks: envInt("MAX_ACTIVE_TASKS", 3),
		SweepInterval:  envDuration("SWEEP_INTERVAL_SECONDS", 30*time.Second),
		SweepDebounce:  envMillis("SWEEP_DEBOUNCE_MS", 250*time.Millisecond),
		DBMaxConns:     int32(envInt("DB_MAX_CONNS", 0)),
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL not set")
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
		}
	}
	return cfg, nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// envInt falls back to defaultVal if the var is unset, invalid or negative.
func envInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return defaultVal
}

// envDuration reads an integer-seconds env var and returns a Duration.
// Falls back to defaultVal if the var is unset or invalid.
func envDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultVal
}

func envMillis(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return defaultVal
}
