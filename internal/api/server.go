// Package api serves the type checker over HTTP for callers that prefer a
// plain JSON API to the MCP stdio transport.
package api

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/pycheck/internal/checker"
	"github.com/pycheck/internal/diagnostics"
)

// Checker is the analysis surface the HTTP handlers are built on.
type Checker interface {
	Check(ctx context.Context, params checker.CheckParams) (diagnostics.CheckResult, error)
	ListFiles(ctx context.Context, ignorePatterns []string) ([]string, error)
	DefaultPageSize() int
}

// Server represents the API server
type Server struct {
	echo    *echo.Echo
	checker Checker
	port    int
	version string
}

// NewServer creates a new API server
func NewServer(c Checker, port int, ratePerSecond float64, version string) *Server {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if ratePerSecond > 0 {
		e.Use(middleware.RateLimiter(
			middleware.NewRateLimiterMemoryStore(rate.Limit(ratePerSecond))))
	}

	server := &Server{
		echo:    e,
		checker: c,
		port:    port,
		version: version,
	}

	// Setup routes
	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.health)

	v1 := s.echo.Group("/api/v1")
	v1.POST("/check", s.check)
	v1.GET("/files", s.listFiles)
}

// Start runs the server until an interrupt arrives, then shuts down
// gracefully.
func (s *Server) Start() error {
	go func() {
		addr := ":" + strconv.Itoa(s.port)
		if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.echo.Shutdown(ctx)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.version,
	})
}

// checkRequest mirrors the MCP tool arguments. Page and PageSize are
// pointers so an absent field gets the server default while an explicit
// out-of-range value is clamped by the pagination core.
type checkRequest struct {
	SeverityLevel  string   `json:"severity_level"`
	IgnorePatterns []string `json:"ignore_patterns"`
	Page           *int     `json:"page"`
	PageSize       *int     `json:"page_size"`
}

func (s *Server) check(c echo.Context) error {
	var req checkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	params := checker.CheckParams{
		SeverityLevel:  req.SeverityLevel,
		IgnorePatterns: req.IgnorePatterns,
		Page:           1,
		PageSize:       s.checker.DefaultPageSize(),
	}
	if req.Page != nil {
		params.Page = *req.Page
	}
	if req.PageSize != nil {
		params.PageSize = *req.PageSize
	}

	result, err := s.checker.Check(c.Request().Context(), params)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	return c.JSON(http.StatusOK, result)
}

func (s *Server) listFiles(c echo.Context) error {
	patterns := c.QueryParams()["ignore"]

	files, err := s.checker.ListFiles(c.Request().Context(), patterns)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	if files == nil {
		files = []string{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"files": files,
		"count": len(files),
	})
}
