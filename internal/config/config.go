package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var ErrMissingListenAddr = errors.New("LISTEN_ADDR is required")

// Config is read from the environment. A missing OPENAI_API_KEY is not a
// startup error: the generation endpoints report it per request.
type Config struct {
	OpenAI  OpenAIConfig
	HTTP    HTTPConfig
	Session SessionConfig
	Log     LogConfig
}

type OpenAIConfig struct {
	APIKey        string
	BaseURL       string
	ClientTimeout time.Duration
}

type HTTPConfig struct {
	ListenAddr        string
	HealthPath        string
	MetricsPath       string
	CORSAllowOrigins  []string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

type SessionConfig struct {
	IdleTTL       time.Duration
	SweepInterval time.Duration
	MaxSessions   int
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		OpenAI: OpenAIConfig{
			APIKey:        mustEnv("OPENAI_API_KEY", ""),
			BaseURL:       mustEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			ClientTimeout: mustDuration("HTTP_TIMEOUT", 120*time.Second),
		},
		HTTP: HTTPConfig{
			ListenAddr:        mustEnv("LISTEN_ADDR", ":8080"),
			HealthPath:        mustEnv("HEALTH_PATH", "/healthz"),
			MetricsPath:       mustEnv("METRICS_PATH", "/metrics"),
			CORSAllowOrigins:  mustList("CORS_ALLOW_ORIGINS", []string{"*"}),
			ReadHeaderTimeout: mustDuration("READ_HEADER_TIMEOUT", 5*time.Second),
			ShutdownTimeout:   mustDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Session: SessionConfig{
			IdleTTL:       mustDuration("SESSION_IDLE_TTL", 2*time.Hour),
			SweepInterval: mustDuration("SESSION_SWEEP_INTERVAL", time.Minute),
			MaxSessions:   mustInt("SESSION_MAX", 1000),
		},
		Log: LogConfig{
			Level: strings.ToLower(mustEnv("LOG_LEVEL", "info")),
		},
	}

	if cfg.HTTP.ListenAddr == "" {
		return nil, ErrMissingListenAddr
	}
	for key, path := range map[string]string{"HEALTH_PATH": cfg.HTTP.HealthPath, "METRICS_PATH": cfg.HTTP.MetricsPath} {
		if !strings.HasPrefix(path, "/") {
			return nil, fmt.Errorf("%s must start with '/', got %q", key, path)
		}
	}
	return cfg, nil
}

// OpenAIConfigured reports whether an API key is present.
func (c *Config) OpenAIConfigured() bool {
	return strings.TrimSpace(c.OpenAI.APIKey) != ""
}

func mustEnv(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func mustInt(key string, def int) int {
	v := mustEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func mustDuration(key string, def time.Duration) time.Duration {
	v := mustEnv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func mustList(key string, def []string) []string {
	v := mustEnv(key, "")
	if v == "" {
		return def
	}
	out := make([]string, 0)
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
