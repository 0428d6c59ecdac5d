package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"promptlab/internal/activity"
	"promptlab/internal/model"
	"promptlab/internal/prompts"
)

type templateBody struct {
	Text string `json:"text"`
}

type logsResponse struct {
	Logs []activity.Entry `json:"logs"`
}

func (s *Server) getSession(c echo.Context) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sess.State.Get())
}

func (s *Server) setCompany(c echo.Context) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	var company model.Company
	if err = c.Bind(&company); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.JSON(http.StatusOK, sess.State.SetCompany(company))
}

func (s *Server) setTopics(c echo.Context) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	var body topicsResponse
	if err = c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.JSON(http.StatusOK, sess.State.SetTopics(body.Topics))
}

func (s *Server) setPrompts(c echo.Context) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	var body promptsResponse
	if err = c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.JSON(http.StatusOK, sess.State.SetPrompts(body.Prompts))
}

func (s *Server) addPrompts(c echo.Context) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	var body promptsResponse
	if err = c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.JSON(http.StatusOK, sess.State.AddPrompts(body.Prompts))
}

func (s *Server) updateTemplate(c echo.Context) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	kind, ok := prompts.ParseKind(c.Param("kind"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown template "+c.Param("kind"))
	}
	var body templateBody
	if err = c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.JSON(http.StatusOK, sess.State.UpdateTemplate(kind, body.Text))
}

func (s *Server) resetTemplate(c echo.Context) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	kind, ok := prompts.ParseKind(c.Param("kind"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown template "+c.Param("kind"))
	}
	return c.JSON(http.StatusOK, sess.State.ResetTemplate(kind))
}

func (s *Server) updateLLMSettings(c echo.Context) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	var patch model.LLMSettings
	if err = c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err = patch.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, sess.State.UpdateLLMSettings(patch))
}

func (s *Server) resetSession(c echo.Context) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sess.State.Reset())
}

func (s *Server) defaultTemplates(c echo.Context) error {
	out := make(map[prompts.Kind]string, len(prompts.Kinds))
	for _, k := range prompts.Kinds {
		out[k] = prompts.Default(k)
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) listLogs(c echo.Context) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logsResponse{Logs: sess.Logs.Entries()})
}

func (s *Server) clearLogs(c echo.Context) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	sess.Logs.Clear()
	return c.NoContent(http.StatusNoContent)
}
