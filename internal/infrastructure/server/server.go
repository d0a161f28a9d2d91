package server

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/statefacts/core/docs"
	httpHandlers "github.com/statefacts/core/internal/adapters/http"
	"github.com/statefacts/core/internal/infrastructure/config"
	"github.com/statefacts/core/internal/infrastructure/logger"
	"github.com/statefacts/core/internal/infrastructure/metrics"
	"github.com/statefacts/core/internal/ports"
)

// Pinger reports whether the storage backend is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a health check function to Pinger
type PingFunc func(ctx context.Context) error

// Ping calls f(ctx)
func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Dependencies are the collaborators assembled by the startup sequence
type Dependencies struct {
	Catalog  ports.StateCatalog
	FunFacts ports.FunFactService
	Storage  Pinger
	// Metrics is nil when metrics are disabled
	Metrics *metrics.Metrics
}

// Server represents the HTTP server
type Server struct {
	echo     *echo.Echo
	config   *config.Config
	logger   *logger.Logger
	deps     Dependencies
	notFound *httpHandlers.NotFoundRenderer
}

// New creates a new server instance
func New(cfg *config.Config, deps Dependencies, appLogger *logger.Logger) (*Server, error) {
	if deps.Catalog == nil || deps.FunFacts == nil || deps.Storage == nil {
		return nil, errors.New("server: catalog, fun fact service and storage are required")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.App.Debug

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	s := &Server{
		echo:     e,
		config:   cfg,
		logger:   appLogger.WithComponent("server"),
		deps:     deps,
		notFound: httpHandlers.NewNotFoundRenderer(filepath.Join(cfg.Static.Dir, "error.html")),
	}

	e.HTTPErrorHandler = s.errorHandler

	s.setupMiddleware()
	s.setupRoutes(httpHandlers.NewStateHandler(deps.Catalog, deps.FunFacts, appLogger))

	return s, nil
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(stateHandler *httpHandlers.StateHandler) {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	if s.deps.Metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(s.deps.Metrics.Handler()))
	}

	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	s.echo.GET("/states", stateHandler.ListStates)

	stateGroup := s.echo.Group("/states/:state", stateHandler.StateLookup)
	stateGroup.GET("", stateHandler.GetState)
	stateGroup.GET("/capital", stateHandler.GetCapital)
	stateGroup.GET("/nickname", stateHandler.GetNickname)
	stateGroup.GET("/population", stateHandler.GetPopulation)
	stateGroup.GET("/admission", stateHandler.GetAdmission)
	stateGroup.GET("/funfact", stateHandler.GetRandomFunFact)
	stateGroup.POST("/funfact", stateHandler.CreateFunFacts)
	stateGroup.PATCH("/funfact", stateHandler.UpdateFunFact)
	stateGroup.DELETE("/funfact", stateHandler.DeleteFunFact)

	if s.config.Static.Dir != "" {
		s.echo.Static("/", s.config.Static.Dir)
	}
}

func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.deps.Storage.Ping(c.Request().Context()); err != nil {
		s.logger.WithError(err).Warn("Readiness check failed")
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "storage_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ready",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"storage": s.config.Storage.Driver,
		"version": s.config.App.Version,
	})
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// errorHandler renders errors returned from handlers and middleware
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if isRouteMiss(err) {
		if rerr := s.notFound.Render(c); rerr != nil {
			s.logger.WithError(rerr).Error("Error sending response")
		}
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		body := he.Message
		if msg, ok := he.Message.(string); ok {
			body = httpHandlers.MessageResponse{Message: msg}
		}
		s.send(c, he.Code, body)
		return
	}

	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	s.logger.WithRequestID(requestID).WithError(err).Errorw("Internal server error",
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
	)

	body := httpHandlers.ErrorResponse{
		Message:   http.StatusText(http.StatusInternalServerError),
		RequestID: requestID,
	}
	// development builds expose the cause
	if s.config.App.IsDevelopment() {
		body.Error = err.Error()
	}
	s.send(c, http.StatusInternalServerError, body)
}

func (s *Server) send(c echo.Context, code int, body interface{}) {
	var err error
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}
	if err != nil {
		s.logger.WithError(err).Error("Error sending response")
	}
}

// isRouteMiss reports the sentinel errors returned by the router and the
// static handler when nothing serves the request.
func isRouteMiss(err error) bool {
	return errors.Is(err, echo.ErrNotFound) || errors.Is(err, echo.ErrMethodNotAllowed)
}
