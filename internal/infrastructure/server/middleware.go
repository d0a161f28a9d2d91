package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	s.echo.Pre(middleware.RemoveTrailingSlash())

	s.echo.Use(middleware.Recover())

	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogRequestID: true,
		HandleError:  true,
		LogHeaders:   []string{echo.HeaderOrigin},
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			var origin string
			if o := values.Headers[echo.HeaderOrigin]; len(o) > 0 {
				origin = o[0]
			}

			latency := float64(values.Latency.Nanoseconds()) / 1000000
			if values.Error != nil && values.Status >= http.StatusInternalServerError {
				s.logger.WithRequestID(values.RequestID).WithError(values.Error).Errorw("HTTP request failed",
					"method", values.Method,
					"uri", values.URI,
					"status", values.Status,
					"latency_ms", latency,
				)
				return nil
			}

			s.logger.LogHTTPRequest(values.Method, values.URI, origin, values.RemoteIP, values.RequestID, values.Status, latency)
			return nil
		},
	}))

	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.config.Security.AllowedOrigins(),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPatch, http.MethodDelete},
	}))

	if s.config.Security.RateLimitRequests > 0 && s.config.Security.RateLimitWindow > 0 {
		perSecond := float64(s.config.Security.RateLimitRequests) / s.config.Security.RateLimitWindow.Seconds()
		s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(perSecond),
				Burst:     s.config.Security.RateLimitRequests,
				ExpiresIn: s.config.Security.RateLimitWindow,
			}),
			IdentifierExtractor: func(c echo.Context) (string, error) {
				return c.RealIP(), nil
			},
			ErrorHandler: func(c echo.Context, err error) error {
				return c.JSON(http.StatusForbidden, map[string]string{"message": "rate limit exceeded"})
			},
			DenyHandler: func(c echo.Context, identifier string, err error) error {
				s.logger.Warnw("Rate limit exceeded", "ip", identifier)
				return c.JSON(http.StatusTooManyRequests, map[string]string{"message": "rate limit exceeded"})
			},
		}))
	}

	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
	}))

	s.echo.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Timeout: s.config.Server.RequestTimeout,
	}))

	if s.deps.Metrics != nil {
		s.echo.Use(s.deps.Metrics.Middleware())
	}
}
