package middlewares_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrymomot/authgate/internal"
)

type route struct {
	method string
	path   string
	h      internal.HandlerFunc
	mw     []internal.Middleware
}

func (r route) Routes(router internal.Router) {
	switch r.method {
	case http.MethodPost:
		router.POST(r.path, r.h, r.mw...)
	case http.MethodDelete:
		router.DELETE(r.path, r.h, r.mw...)
	default:
		router.GET(r.path, r.h, r.mw...)
	}
}

// newApp builds an App with global middleware mw and a single GET / route.
func newApp(t *testing.T, h internal.HandlerFunc, mw ...internal.Middleware) (*internal.App, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	app := internal.New(
		internal.WithLogger(slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))),
		internal.WithMiddleware(mw...),
		internal.WithHandlers(route{path: "/", h: h}),
	)
	return app, &logs
}

func do(app http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func get(app http.Handler) *httptest.ResponseRecorder {
	return do(app, httptest.NewRequest(http.MethodGet, "/", nil))
}

func newRequest(method string) *http.Request {
	return httptest.NewRequest(method, "/", nil)
}
