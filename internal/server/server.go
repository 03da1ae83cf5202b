// Package server exposes the screening agent over HTTP: trigger a run,
// inspect the discovered tool catalog, and list past runs, plus health and
// metrics endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/talentsift/talentsift/internal/agent"
	"github.com/talentsift/talentsift/internal/history"
	"github.com/talentsift/talentsift/internal/mcpclient"
)

// ToolSource lists the remote tool catalog.
type ToolSource interface {
	Tools(ctx context.Context) ([]mcpclient.ToolDescriptor, error)
}

// ScreeningRunner executes one full screening run.
type ScreeningRunner interface {
	Run(ctx context.Context, ref string) (agent.ReportOutcome, error)
}

// RunHistory lists past screening runs. A nil RunHistory means history is
// not configured.
type RunHistory interface {
	List(ctx context.Context) ([]history.Record, error)
}

type Server struct {
	tools   ToolSource
	runner  ScreeningRunner
	history RunHistory
	metrics http.Handler
	logger  *log.Logger
}

func New(tools ToolSource, runner ScreeningRunner, hist RunHistory, metrics http.Handler, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	}
	return &Server{tools: tools, runner: runner, history: hist, metrics: metrics, logger: logger}
}

// Run blocks serving the API on addr.
func (s *Server) Run(addr string) error {
	return s.routes().Start(addr)
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		s.logger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]any{"error": msg})
		}
	}

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	if s.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(s.metrics))
	}
	e.GET("/api/tools", s.listTools)
	e.POST("/api/screenings", s.runScreening)
	e.GET("/api/runs", s.listRuns)

	return e
}

func (s *Server) listTools(c echo.Context) error {
	tools, err := s.tools.Tools(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{"tools": tools})
}

type screeningRequest struct {
	JobDescription string `json:"job_description"`
}

func (s *Server) runScreening(c echo.Context) error {
	var req screeningRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if req.JobDescription == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "job_description is required")
	}
	outcome, err := s.runner.Run(c.Request().Context(), req.JobDescription)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{
		"run_id":        outcome.Report.RunID,
		"position":      outcome.Report.Position,
		"report_path":   outcome.Path,
		"candidates":    len(outcome.Report.Candidates),
		"average_score": outcome.Report.AverageScore,
		"top_candidate": outcome.Report.Top.Name,
	})
}

func (s *Server) listRuns(c echo.Context) error {
	if s.history == nil {
		return echo.NewHTTPError(http.StatusNotFound, "run history is not configured")
	}
	runs, err := s.history.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{"runs": runs})
}
