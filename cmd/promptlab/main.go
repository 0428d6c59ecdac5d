package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"promptlab/internal/api"
	"promptlab/internal/config"
	"promptlab/internal/generator"
	"promptlab/internal/llm"
	"promptlab/internal/metrics"
	"promptlab/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setupLogger(cfg.Log.Level)
	log.Info().
		Str("addr", cfg.HTTP.ListenAddr).
		Str("openai_base_url", cfg.OpenAI.BaseURL).
		Bool("openai_configured", cfg.OpenAIConfigured()).
		Dur("session_idle_ttl", cfg.Session.IdleTTL).
		Int("max_sessions", cfg.Session.MaxSessions).
		Msg("starting promptlab")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	m := metrics.Global()

	var provider llm.Provider
	if cfg.OpenAIConfigured() {
		provider = llm.NewOpenAI(llm.Config{
			BaseURL:    cfg.OpenAI.BaseURL,
			APIKey:     cfg.OpenAI.APIKey,
			HTTPClient: &http.Client{Timeout: cfg.OpenAI.ClientTimeout},
		})
	} else {
		log.Warn().Msg("OPENAI_API_KEY is empty; generation endpoints will answer 500")
	}

	sessions := session.NewRegistry(cfg.Session.IdleTTL, cfg.Session.MaxSessions, m)
	go sessions.Run(ctx, cfg.Session.SweepInterval)

	server := api.New(api.Config{
		Generator: generator.New(generator.Config{
			Provider: provider,
			Logger:   log.Logger,
			Metrics:  m,
		}),
		Sessions:         sessions,
		Logger:           log.Logger,
		Metrics:          m,
		HealthPath:       cfg.HTTP.HealthPath,
		MetricsPath:      cfg.HTTP.MetricsPath,
		CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins,
	})

	errCh := make(chan error, 1)
	httpServer := &http.Server{
		Addr:              cfg.HTTP.ListenAddr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}
	go func() {
		log.Info().Str("addr", cfg.HTTP.ListenAddr).Msg("http server started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("runtime error")
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to stop http server")
	}

	log.Info().Msg("stopped")
}

func setupLogger(level string) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(parseLogLevel(level))
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
