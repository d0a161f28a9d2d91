package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/statefacts/core/internal/domain/entities"
)

// Metrics holds the application's Prometheus collectors
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	mutationsTotal  *prometheus.CounterVec
	funFacts        prometheus.Gauge
}

// New creates and registers all collectors on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		mutationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "funfact_mutations_total",
				Help: "Fun fact writes by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		funFacts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "funfacts_stored",
			Help: "Fun facts currently held in the overlay",
		}),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.mutationsTotal,
		m.funFacts,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Middleware records request counts and latencies by route pattern
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			var he *echo.HTTPError
			if errors.As(err, &he) {
				status = he.Code
			} else if err != nil {
				status = http.StatusInternalServerError
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}

			m.requestsTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			m.requestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordMutation counts a fun fact write by outcome
func (m *Metrics) RecordMutation(operation string, err error) {
	m.mutationsTotal.WithLabelValues(operation, outcome(err)).Inc()
}

// SetFunFactCount updates the overlay size gauge
func (m *Metrics) SetFunFactCount(n int) {
	m.funFacts.Set(float64(n))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, entities.ErrNoFunFacts), errors.Is(err, entities.ErrFunFactIndexOutOfRange), errors.Is(err, entities.ErrStateNotFound):
		return "not_found"
	case errors.Is(err, entities.ErrVersionConflict):
		return "conflict"
	default:
		return "error"
	}
}
