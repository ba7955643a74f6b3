package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/internal"
	"github.com/dmitrymomot/authgate/middlewares"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := middlewares.NewMetrics(reg, "authgate")

	app := internal.New(
		internal.WithMiddleware(m.Middleware()),
		internal.WithHandlers(route{path: "/items/{id}", h: func(c internal.Context) error {
			if c.Param("id") == "missing" {
				return internal.ErrNotFound("")
			}
			return c.NoContent(http.StatusOK)
		}}),
	)

	for _, path := range []string{"/items/1", "/items/2", "/items/missing", "/nowhere"} {
		do(app, httptest.NewRequest(http.MethodGet, path, nil))
	}

	expected := `
# HELP authgate_http_requests_total Total number of HTTP requests handled.
# TYPE authgate_http_requests_total counter
authgate_http_requests_total{method="GET",route="/items/{id}",status="200"} 2
authgate_http_requests_total{method="GET",route="/items/{id}",status="404"} 1
authgate_http_requests_total{method="GET",route="unmatched",status="404"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "authgate_http_requests_total"))

	n, err := testutil.GatherAndCount(reg, "authgate_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMetricsCountsPanics(t *testing.T) {
	t.Parallel()

	orders := map[string]func(m *middlewares.Metrics) []internal.Middleware{
		"recover outside": func(m *middlewares.Metrics) []internal.Middleware {
			return []internal.Middleware{middlewares.Recover(middlewares.WithRecoverDisablePrintStack()), m.Middleware()}
		},
		"recover inside": func(m *middlewares.Metrics) []internal.Middleware {
			return []internal.Middleware{m.Middleware(), middlewares.Recover(middlewares.WithRecoverDisablePrintStack())}
		},
	}

	for name, chain := range orders {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			reg := prometheus.NewRegistry()
			m := middlewares.NewMetrics(reg, "authgate")
			app := internal.New(
				internal.WithMiddleware(chain(m)...),
				internal.WithHandlers(route{path: "/boom", h: func(c internal.Context) error {
					panic("nil map write")
				}}),
			)

			rec := do(app, httptest.NewRequest(http.MethodGet, "/boom", nil))
			require.Equal(t, http.StatusInternalServerError, rec.Code)

			expected := `
# HELP authgate_http_requests_total Total number of HTTP requests handled.
# TYPE authgate_http_requests_total counter
authgate_http_requests_total{method="GET",route="/boom",status="500"} 1
`
			require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "authgate_http_requests_total"))
		})
	}
}
