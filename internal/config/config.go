package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	UpstreamBaseURL string
	UpstreamTimeout time.Duration
	SessionSecret   string
	StateDBPath     string
	AllowedOrigins  []string
	NotifyInterval  time.Duration
}

func Load() *Config {
	// Best-effort: .env is optional, real env vars win.
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8082"),
		UpstreamBaseURL: getEnv("UPSTREAM_BASE_URL", "http://localhost:8080/api"),
		UpstreamTimeout: getDuration("UPSTREAM_TIMEOUT", 15*time.Second),
		SessionSecret:   getEnv("SESSION_SECRET", "dev-secret-change-in-production"),
		StateDBPath:     getEnv("STATE_DB_PATH", "backoffice-state.db"),
		AllowedOrigins:  getList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		NotifyInterval:  getDuration("NOTIFY_INTERVAL", 30*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// Plain integers are treated as seconds.
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
