package internal_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/internal"
	"github.com/dmitrymomot/authgate/pkg/health"
)

// routes registers fn under GET path.
type routes map[string]internal.HandlerFunc

func (r routes) Routes(router internal.Router) {
	for path, h := range r {
		router.GET(path, h)
	}
}

type statusErr int

func (s statusErr) Error() string   { return fmt.Sprintf("status %d", int(s)) }
func (s statusErr) StatusCode() int { return int(s) }

var errStub = errors.New("stub: not implemented")

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) internal.Problem {
	t.Helper()
	var p internal.Problem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	return p
}

func TestAPIErrorHandler(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithErrorHandler(internal.APIErrorHandler(
			func(internal.Context) string { return "req-1" },
			internal.ErrorMapping{Err: errStub, Code: http.StatusNotImplemented},
		)),
		internal.WithHandlers(routes{
			"/http": func(c internal.Context) error {
				return internal.ErrBadRequest("tokenid is required", internal.WithErrorCode("missing_token_id"))
			},
			"/mapped": func(c internal.Context) error {
				return fmt.Errorf("wrapped: %w", errStub)
			},
			"/coder": func(c internal.Context) error {
				return statusErr(http.StatusGatewayTimeout)
			},
			"/plain": func(c internal.Context) error {
				return errors.New("db password is hunter2")
			},
			"/written": func(c internal.Context) error {
				_ = c.String(http.StatusAccepted, "partial")
				return errors.New("late")
			},
		}),
	)

	tests := []struct {
		path    string
		status  int
		message string
		code    string
	}{
		{"/http", http.StatusBadRequest, "tokenid is required", "missing_token_id"},
		{"/mapped", http.StatusNotImplemented, "Not Implemented", ""},
		{"/coder", http.StatusGatewayTimeout, "Gateway Timeout", ""},
		{"/plain", http.StatusInternalServerError, "Internal Server Error", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, tt.status, rec.Code)
			p := decodeProblem(t, rec)
			assert.Equal(t, tt.status, p.Status)
			assert.Equal(t, tt.message, p.Message)
			assert.Equal(t, tt.code, p.ErrorCode)
			assert.Equal(t, "req-1", p.RequestID)
		})
	}

	t.Run("written responses are left alone", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/written", nil))
		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, "partial", rec.Body.String())
	})

	t.Run("router 404 and 405 use the handler", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, http.StatusNotFound, decodeProblem(t, rec).Status)

		rec = httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/http", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestWithValue(t *testing.T) {
	t.Parallel()

	type key struct{}

	t.Run("shared by every request", func(t *testing.T) {
		t.Parallel()

		shared := &struct{ n int }{}
		var seen []any
		app := internal.New(
			internal.WithValue(key{}, shared),
			internal.WithHandlers(routes{"/": func(c internal.Context) error {
				seen = append(seen, c.Get(key{}))
				return c.NoContent(http.StatusNoContent)
			}}),
		)

		for range 2 {
			app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		}
		require.Len(t, seen, 2)
		assert.Same(t, shared, seen[0])
		assert.Same(t, shared, seen[1])
	})

	t.Run("visible to request context", func(t *testing.T) {
		t.Parallel()

		var got any
		app := internal.New(
			internal.WithValue(key{}, "v"),
			internal.WithHandlers(routes{"/": func(c internal.Context) error {
				got = c.Context().Value(key{})
				return c.NoContent(http.StatusNoContent)
			}}),
		)
		app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "v", got)
	})

	t.Run("binding twice panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			internal.New(
				internal.WithValue(key{}, 1),
				internal.WithValue(key{}, 2),
			)
		})
	})

	t.Run("nil value panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { internal.New(internal.WithValue(key{}, nil)) })
	})
}

func TestMiddlewareOrder(t *testing.T) {
	t.Parallel()

	var trace []string
	tag := func(name string) internal.Middleware {
		return func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				trace = append(trace, name)
				return next(c)
			}
		}
	}

	app := internal.New(
		internal.WithMiddleware(tag("global-1"), tag("global-2")),
		internal.WithHandlers(handlerFunc(func(r internal.Router) {
			r.GET("/", func(c internal.Context) error {
				trace = append(trace, "handler")
				return c.NoContent(http.StatusOK)
			}, tag("route-1"), tag("route-2"))
		})),
	)

	app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"global-1", "global-2", "route-1", "route-2", "handler"}, trace)
}

type handlerFunc func(internal.Router)

func (f handlerFunc) Routes(r internal.Router) { f(r) }

func TestMiddlewareContextPropagates(t *testing.T) {
	t.Parallel()

	type key struct{}
	app := internal.New(
		internal.WithMiddleware(func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				c.SetContext(context.WithValue(c.Context(), key{}, "tx"))
				return next(c)
			}
		}),
		internal.WithHandlers(routes{"/": func(c internal.Context) error {
			return c.String(http.StatusOK, internal.ContextValue[string](c, key{}))
		}}),
	)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "tx", rec.Body.String())
}

func TestHealthAndMounts(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithHealthChecks(health.Checks{
			"db": func(context.Context) error { return errors.New("down") },
		}),
		internal.WithMount("/metrics", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("up 1"))
		})),
	)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, "up 1", rec.Body.String())
}

func TestBindJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name string `json:"name"`
	}
	app := internal.New(internal.WithHandlers(handlerFunc(func(r internal.Router) {
		r.POST("/", func(c internal.Context) error {
			var p payload
			if err := c.BindJSON(&p); err != nil {
				return err
			}
			return c.String(http.StatusOK, p.Name)
		})
	})))

	for body, want := range map[string]int{
		`{"name":"x"}`:  http.StatusOK,
		``:              http.StatusBadRequest,
		`{"name":`:      http.StatusBadRequest,
		`{"unknown":1}`: http.StatusBadRequest,
	} {
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		assert.Equal(t, want, rec.Code, body)
	}
}
