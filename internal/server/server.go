// Package server exposes the engine over HTTP. The engine itself owns
// no wire protocol; this wrapper exists so storyscope can run as a
// service next to an editor.
package server

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/vampirenirmal/storyscope/internal/domain/manuscript"
	"github.com/vampirenirmal/storyscope/internal/engine"
	"github.com/vampirenirmal/storyscope/internal/storage"
)

type Server struct {
	Echo     *echo.Echo
	engine   *engine.Engine
	reports  *storage.Reports
	validate *validator.Validate
}

// New wires routes onto a fresh echo instance. reports may be nil, in
// which case results are returned but not persisted.
func New(eng *engine.Engine, reports *storage.Reports) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	s := &Server{Echo: e, engine: eng, reports: reports, validate: validator.New()}
	e.GET("/healthz", s.health)
	e.POST("/analyze", s.analyze)
	e.GET("/reports", s.listReports)
	e.GET("/reports/:id", s.getReport)
	return s
}

func (s *Server) Start(addr string) error {
	return s.Echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Echo.Shutdown(ctx)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// analyze runs the full pipeline on the posted request. Analysis never
// fails on content, so the only error paths are a malformed body and
// report persistence.
func (s *Server) analyze(c echo.Context) error {
	var req manuscript.Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request: "+err.Error())
	}

	results := s.engine.Analyze(req)
	if s.reports != nil {
		if _, err := s.reports.Save(c.Request().Context(), results); err != nil {
			c.Logger().Warnf("report persistence failed: %v", err)
		}
	}
	return c.JSON(http.StatusOK, results)
}

func (s *Server) listReports(c echo.Context) error {
	if s.reports == nil {
		return c.JSON(http.StatusOK, []string{})
	}
	ids, err := s.reports.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "listing reports failed")
	}
	return c.JSON(http.StatusOK, ids)
}

func (s *Server) getReport(c echo.Context) error {
	if s.reports == nil {
		return echo.NewHTTPError(http.StatusNotFound, "report storage disabled")
	}
	results, err := s.reports.Load(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "report not found")
	}
	return c.JSON(http.StatusOK, results)
}
