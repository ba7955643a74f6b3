package internal

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/authgate/pkg/health"
)

// Option configures the App.
type Option func(*App)

// WithMiddleware appends global middleware, applied in the given order.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers declaring explicit routes.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithControllers registers controllers for conventional dispatch.
func WithControllers(c ...Controller) Option {
	return func(a *App) {
		a.controllers = append(a.controllers, c...)
	}
}

// WithRouting selects the conventional routing strategy. Default: RoutingDefault.
func WithRouting(s RoutingStrategy) Option {
	return func(a *App) {
		a.routing = s
	}
}

// WithAPIPrefix changes the conventional route prefix. Default: "/api".
func WithAPIPrefix(prefix string) Option {
	return func(a *App) {
		prefix = "/" + strings.Trim(prefix, "/")
		if prefix != "/" {
			a.apiPrefix = prefix
		}
	}
}

// WithErrorHandler sets the process-wide error handler. Default: APIErrorHandler(nil).
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithValue binds value under key for every request; handlers read it with
// Get or ContextValue. Binding a nil value or the same key twice panics.
func WithValue(key, value any) Option {
	return func(a *App) {
		if value == nil {
			panic("authgate: nil value bound")
		}
		if _, ok := a.values[key]; ok {
			panic(fmt.Sprintf("authgate: value already bound for %T", key))
		}
		if a.values == nil {
			a.values = make(map[any]any)
		}
		a.values[key] = value
	}
}

// WithHealthChecks serves /health/live and /health/ready running checks.
func WithHealthChecks(checks health.Checks) Option {
	return func(a *App) {
		if a.health == nil {
			a.health = &healthConfig{checks: make(health.Checks, len(checks))}
		}
		for name, fn := range checks {
			a.health.checks[name] = fn
		}
	}
}

// WithMount attaches a plain http.Handler, such as a metrics endpoint.
func WithMount(pattern string, h http.Handler) Option {
	return func(a *App) {
		a.mounts = append(a.mounts, mount{handler: h, pattern: pattern})
	}
}

// WithLogger sets the logger used by Context and the runtime.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}
