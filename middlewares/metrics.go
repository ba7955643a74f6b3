package middlewares

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dmitrymomot/authgate/internal"
)

// Metrics holds the HTTP collectors.
type Metrics struct {
	inflight prometheus.Gauge
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the HTTP collectors on reg under namespace.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		inflight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "route"}),
	}
}

// Middleware records every request. The route label is the chi pattern, so
// ids never explode label cardinality. A request that panics through it is
// counted as a 500.
func (m *Metrics) Middleware() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			m.inflight.Inc()
			defer m.inflight.Dec()

			start := time.Now()
			panicked := true
			defer func() {
				status := http.StatusInternalServerError
				if !panicked {
					status = responseStatus(c, err)
				}
				m.observe(c, status, time.Since(start))
			}()

			err = next(c)
			panicked = false
			return err
		}
	}
}

func (m *Metrics) observe(c internal.Context, status int, elapsed time.Duration) {
	route := "unmatched"
	if rc := chi.RouteContext(c.Request().Context()); rc != nil && rc.RoutePattern() != "" {
		route = rc.RoutePattern()
	}

	method := c.Request().Method
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// responseStatus is the status sent, or the one an unrendered error maps to.
func responseStatus(c internal.Context, err error) int {
	if err == nil || c.Written() {
		return c.ResponseWriter().Status()
	}
	var sc internal.StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}
