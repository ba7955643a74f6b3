package internal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authgate/pkg/health"
	"github.com/dmitrymomot/authgate/pkg/logger"
)

const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second

	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// App is the configured HTTP application. It is immutable after New.
type App struct {
	router       chi.Router
	errorHandler ErrorHandler
	logger       *slog.Logger
	values       map[any]any
	health       *healthConfig
	routing      RoutingStrategy
	apiPrefix    string
	middlewares  []Middleware
	handlers     []Handler
	controllers  []Controller
	mounts       []mount
}

type mount struct {
	handler http.Handler
	pattern string
}

type healthConfig struct {
	checks health.Checks
}

// New builds the application. Registration order: global middleware,
// mounts, health endpoints, explicit handler routes, then the conventional
// controller route. Conflicting registrations panic.
func New(opts ...Option) *App {
	a := &App{
		router:    chi.NewRouter(),
		logger:    logger.NewNope(),
		apiPrefix: defaultAPIPrefix,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.errorHandler == nil {
		a.errorHandler = APIErrorHandler(nil)
	}

	a.setupRoutes()
	return a
}

// Router returns the underlying chi router.
func (a *App) Router() chi.Router {
	return a.router
}

// ServeHTTP makes the App an http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Routing returns the conventional routing strategy in effect.
func (a *App) Routing() RoutingStrategy {
	return a.routing
}

// Run serves the App on addr and blocks until the process is signalled or
// the base context is cancelled, then shuts down gracefully.
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if addr != "" {
		cfg.address = addr
	}
	if cfg.logger == nil {
		cfg.logger = a.logger
	}

	return runServer(runtimeConfig{
		handler:         a.router,
		address:         cfg.address,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

func (a *App) setupRoutes() {
	a.router.NotFound(a.wrapHandler(func(Context) error {
		return ErrNotFound("")
	}))
	a.router.MethodNotAllowed(a.wrapHandler(func(Context) error {
		return ErrMethodNotAllowed("")
	}))

	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	for _, m := range a.mounts {
		a.router.Mount(m.pattern, m.handler)
	}

	if a.health != nil {
		a.router.Get(defaultLivenessPath, health.LivenessHandler())
		a.router.Get(defaultReadinessPath, health.ReadinessHandler(a.health.checks, health.WithLogger(a.logger)))
	}

	r := &routerAdapter{router: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}

	if len(a.controllers) > 0 {
		conv := newConventionalRouter(a.routing, a.controllers)
		a.router.HandleFunc(a.apiPrefix+"/*", a.wrapHandler(conv.dispatch))
	}
}

// wrapHandler adapts a HandlerFunc to net/http, routing errors to the ErrorHandler.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

func (a *App) handleError(c Context, err error) {
	if c.Written() {
		c.LogWarn("error after response was written", slog.Any("error", err))
		return
	}
	if herr := a.errorHandler(c, err); herr != nil {
		c.LogError("error handler failed", slog.Any("error", herr))
		if !c.Written() {
			http.Error(c.Response(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

// adaptMiddleware converts a Middleware to chi's func(http.Handler) http.Handler.
func (a *App) adaptMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := newContext(w, r, a)
			h := mw(func(c Context) error {
				next.ServeHTTP(c.Response(), c.Request())
				return nil
			})
			if err := h(c); err != nil {
				a.handleError(c, err)
			}
		})
	}
}
