package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"promptlab/internal/generator"
	"promptlab/internal/metrics"
	"promptlab/internal/session"
)

// SessionHeader selects the calling session; requests without it share the default one.
const SessionHeader = "X-Session-ID"

type Config struct {
	Generator        *generator.Service
	Sessions         *session.Registry
	Logger           zerolog.Logger
	Metrics          *metrics.Metrics
	HealthPath       string
	MetricsPath      string
	CORSAllowOrigins []string
}

type Server struct {
	echo     *echo.Echo
	gen      *generator.Service
	sessions *session.Registry
	logger   zerolog.Logger
	metrics  *metrics.Metrics
}

func New(cfg Config) *Server {
	m := cfg.Metrics
	if m == nil {
		m = metrics.Global()
	}
	if cfg.HealthPath == "" {
		cfg.HealthPath = "/healthz"
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}
	if len(cfg.CORSAllowOrigins) == 0 {
		cfg.CORSAllowOrigins = []string{"*"}
	}

	s := &Server{
		echo:     echo.New(),
		gen:      cfg.Generator,
		sessions: cfg.Sessions,
		logger:   cfg.Logger.With().Str("component", "api").Logger(),
		metrics:  m,
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:     true,
		LogURI:        true,
		LogRoutePath:  true,
		LogStatus:     true,
		LogLatency:    true,
		LogError:      true,
		HandleError:   true,
		LogValuesFunc: s.logRequest,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, SessionHeader},
	}))

	e.GET(cfg.HealthPath, func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET(cfg.MetricsPath, echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.POST("/company", s.inferCompany)
	api.POST("/topics", s.generateTopics)
	api.POST("/prompts", s.generatePrompts)

	api.GET("/session", s.getSession)
	api.PUT("/session/company", s.setCompany)
	api.PUT("/session/topics", s.setTopics)
	api.PUT("/session/prompts", s.setPrompts)
	api.POST("/session/prompts", s.addPrompts)
	api.PUT("/session/templates/:kind", s.updateTemplate)
	api.DELETE("/session/templates/:kind", s.resetTemplate)
	api.PATCH("/session/llm-settings", s.updateLLMSettings)
	api.POST("/session/reset", s.resetSession)
	api.GET("/defaults/templates", s.defaultTemplates)

	api.GET("/logs", s.listLogs)
	api.DELETE("/logs", s.clearLogs)

	return s
}

// Handler exposes the router for an http.Server.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) session(c echo.Context) (*session.Session, error) {
	sess, err := s.sessions.Get(strings.TrimSpace(c.Request().Header.Get(SessionHeader)))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	return sess, nil
}

func (s *Server) handleError(err error, c echo.Context) {
	code := http.StatusInternalServerError
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if he.Message != nil {
			msg = fmt.Sprint(he.Message)
		}
	}
	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, map[string]string{"error": msg})
}

func (s *Server) logRequest(c echo.Context, v middleware.RequestLoggerValues) error {
	route := v.RoutePath
	if route == "" {
		route = "unmatched"
	}
	s.metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(v.Status)).Inc()

	ev := s.logger.Info()
	if v.Status >= http.StatusInternalServerError {
		ev = s.logger.Error().Err(v.Error)
	} else if v.Status >= http.StatusBadRequest {
		ev = s.logger.Warn().Err(v.Error)
	}
	ev.Str("method", v.Method).
		Str("uri", v.URI).
		Int("status", v.Status).
		Dur("latency", v.Latency).
		Msg("http request")
	return nil
}
