package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"promptlab/internal/activity"
	"promptlab/internal/generator"
	"promptlab/internal/model"
	"promptlab/internal/session"
)

type topicsResponse struct {
	Topics []model.Topic `json:"topics"`
}

type promptsResponse struct {
	Prompts []model.Prompt `json:"prompts"`
}

func (s *Server) inferCompany(c echo.Context) error {
	var req generator.CompanyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	s.record(c, sess, activity.TypeRequest, req)

	company, err := s.gen.InferCompany(c.Request().Context(), req)
	if err != nil {
		return s.failed(c, sess, err, "Failed to fetch company info")
	}
	s.record(c, sess, activity.TypeResponse, company)
	return c.JSON(http.StatusOK, company)
}

func (s *Server) generateTopics(c echo.Context) error {
	var req generator.TopicsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	s.record(c, sess, activity.TypeRequest, req)

	topics, err := s.gen.GenerateTopics(c.Request().Context(), req)
	if err != nil {
		return s.failed(c, sess, err, "Failed to generate topics")
	}
	resp := topicsResponse{Topics: topics}
	s.record(c, sess, activity.TypeResponse, resp)
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) generatePrompts(c echo.Context) error {
	var req generator.PromptsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	s.record(c, sess, activity.TypeRequest, req)

	prompts, err := s.gen.GeneratePrompts(c.Request().Context(), req)
	if err != nil {
		return s.failed(c, sess, err, "Failed to generate prompts")
	}
	resp := promptsResponse{Prompts: prompts}
	s.record(c, sess, activity.TypeResponse, resp)
	return c.JSON(http.StatusOK, resp)
}

// failed logs err into the session and maps it to an HTTP error. Input
// problems are the caller's fault; everything else is reported as 500.
func (s *Server) failed(c echo.Context, sess *session.Session, err error, fallback string) error {
	msg := err.Error()
	if msg == "" {
		msg = fallback
	}
	s.record(c, sess, activity.TypeError, map[string]string{"error": msg})

	var verr *generator.ValidationError
	if errors.As(err, &verr) {
		return echo.NewHTTPError(http.StatusBadRequest, msg)
	}
	s.logger.Error().Err(err).Str("endpoint", c.Path()).Str("session", sess.ID).Msg("generation failed")
	return echo.NewHTTPError(http.StatusInternalServerError, msg).SetInternal(err)
}

func (s *Server) record(c echo.Context, sess *session.Session, typ activity.EntryType, data any) {
	s.sessions.Touch(sess)
	sess.Logs.Add(activity.Entry{Type: typ, Endpoint: c.Path(), Data: data})
}
