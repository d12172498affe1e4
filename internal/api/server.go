package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bookexplorer/bookexplorer/internal/catalog"
	"github.com/bookexplorer/bookexplorer/internal/config"
	"github.com/bookexplorer/bookexplorer/internal/realtime"
	"github.com/bookexplorer/bookexplorer/internal/scheduler"
	"github.com/bookexplorer/bookexplorer/internal/view"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

const (
	Version = "1.0.0"

	shutdownTimeout = 10 * time.Second
)

// Catalog is the remote source the server's sessions read from
type Catalog interface {
	catalog.Catalog
	Test(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	config    *config.Config
	echo      *echo.Echo
	catalog   Catalog
	registry  *catalog.Registry
	hub       *realtime.Hub
	scheduler *scheduler.Scheduler
	templates *view.Templates
}

// NewServer creates a new server instance and registers its scheduled tasks
func NewServer(cfg *config.Config, cat Catalog, names catalog.LanguageNames, sched *scheduler.Scheduler) (*Server, error) {
	templates, err := view.ParseTemplates()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = &templateRenderer{templates: templates}

	s := &Server{
		config:    cfg,
		echo:      e,
		catalog:   cat,
		scheduler: sched,
		templates: templates,
	}

	s.hub = realtime.NewHub(s.handleMessage)
	s.registry = catalog.NewRegistry(cat, catalog.SessionOptions{
		Names:        names,
		DiscardStale: cfg.Session.DiscardStale,
		Listener:     s.onSessionChange,
	})
	// An open tab keeps its session however long it sits idle
	s.registry.KeepWhile(func(id string) bool {
		return s.hub.SessionClientCount(id) > 0
	})

	sched.AddTask(scheduler.SessionEvictionTask, cfg.Session.SweepInterval,
		scheduler.EvictIdleSessionsTask(s.registry, cfg.Session.IdleTTL))

	// Global Middleware
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())

	s.setupRoutes()

	return s, nil
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)

	// Page, socket and data routes all act on the caller's session
	s.echo.GET("/", s.index, s.sessionMiddleware)
	s.echo.GET("/ws", s.websocket, s.sessionMiddleware)

	api := s.echo.Group("/api/v1")
	api.GET("/books", s.getBooks, s.sessionMiddleware)
	api.GET("/languages", s.getLanguages, s.sessionMiddleware)
	api.GET("/system/status", s.getSystemStatus)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Registry returns the live session registry
func (s *Server) Registry() *catalog.Registry {
	return s.registry
}

// Run serves until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	go s.hub.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.config.ListenAddr).Msg("HTTP server listening")
		if err := s.echo.Start(s.config.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}

// healthCheck returns server health status. With ?deep=true the catalog is
// probed too.
func (s *Server) healthCheck(c echo.Context) error {
	if c.QueryParam("deep") == "true" {
		if err := s.catalog.Test(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status":  "degraded",
				"version": Version,
				"catalog": err.Error(),
			})
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": Version,
	})
}

// getSystemStatus reports live sessions, websocket clients and tasks
func (s *Server) getSystemStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"version":  Version,
		"sessions": s.registry.Len(),
		"clients":  s.hub.ClientCount(),
		"tasks":    s.scheduler.GetTasks(),
	})
}
