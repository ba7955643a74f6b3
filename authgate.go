package authgate

import (
	"github.com/dmitrymomot/authgate/internal"
	"github.com/dmitrymomot/authgate/pkg/security"
)

// Core types
type (
	// App is the configured HTTP application. Immutable after New.
	App = internal.App

	// Option configures the App.
	Option = internal.Option

	// RunOption configures Run.
	RunOption = internal.RunOption

	// Context is the per-request handle passed to handlers.
	Context = internal.Context

	// Router registers attribute routes.
	Router = internal.Router

	// Handler declares routes.
	Handler = internal.Handler

	// HandlerFunc handles a request and returns an error to the ErrorHandler.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc.
	Middleware = internal.Middleware

	// ErrorHandler renders errors returned by handlers.
	ErrorHandler = internal.ErrorHandler

	// ResponseWriter tracks status and bytes written.
	ResponseWriter = internal.ResponseWriter
)

// Conventional routing
type (
	Controller      = internal.Controller
	Namespaced      = internal.Namespaced
	Getter          = internal.Getter
	Poster          = internal.Poster
	Putter          = internal.Putter
	Deleter         = internal.Deleter
	RoutingStrategy = internal.RoutingStrategy
)

const (
	RoutingDefault   = internal.RoutingDefault
	RoutingNamespace = internal.RoutingNamespace
)

// Errors
type (
	HTTPError       = internal.HTTPError
	HTTPErrorOption = internal.HTTPErrorOption
	StatusCoder     = internal.StatusCoder
	ErrorMapping    = internal.ErrorMapping
	Problem         = internal.Problem
	RequestIDFunc   = internal.RequestIDFunc
)

// Extractors
type (
	Extractor       = internal.Extractor
	ExtractorSource = internal.ExtractorSource
)

var ErrUnknownRoutingStrategy = internal.ErrUnknownRoutingStrategy

// New creates an App. See the With* options.
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// ParseRoutingStrategy parses "default" or "namespace".
func ParseRoutingStrategy(s string) (RoutingStrategy, error) {
	return internal.ParseRoutingStrategy(s)
}

// App options
var (
	WithMiddleware      = internal.WithMiddleware
	WithHandlers        = internal.WithHandlers
	WithControllers     = internal.WithControllers
	WithRouting         = internal.WithRouting
	WithAPIPrefix       = internal.WithAPIPrefix
	WithErrorHandler    = internal.WithErrorHandler
	WithValue           = internal.WithValue
	WithHealthChecks    = internal.WithHealthChecks
	WithMount           = internal.WithMount
	WithLogger          = internal.WithLogger
)

// Run options
var (
	Logger          = internal.Logger
	ShutdownTimeout = internal.ShutdownTimeout
	StartupHook     = internal.StartupHook
	ShutdownHook    = internal.ShutdownHook
	WithContext     = internal.WithContext
)

// APIErrorHandler renders errors as JSON Problem bodies. Mappings are
// consulted with errors.Is after *HTTPError and before StatusCoder.
func APIErrorHandler(requestID RequestIDFunc, mappings ...ErrorMapping) ErrorHandler {
	return internal.APIErrorHandler(requestID, mappings...)
}

// HTTP errors
var (
	NewHTTPError          = internal.NewHTTPError
	WithDetail            = internal.WithDetail
	WithErrorCode         = internal.WithErrorCode
	WithRequestID         = internal.WithRequestID
	WithError             = internal.WithError
	ErrBadRequest         = internal.ErrBadRequest
	ErrUnauthorized       = internal.ErrUnauthorized
	ErrNotFound           = internal.ErrNotFound
	ErrMethodNotAllowed   = internal.ErrMethodNotAllowed
	ErrConflict           = internal.ErrConflict
	ErrInternal           = internal.ErrInternal
	ErrServiceUnavailable = internal.ErrServiceUnavailable
	AsHTTPError           = internal.AsHTTPError
)

// Extractor sources
var (
	NewExtractor    = internal.NewExtractor
	FromHeader      = internal.FromHeader
	FromQuery       = internal.FromQuery
	FromParam       = internal.FromParam
	FromBearerToken = internal.FromBearerToken
)

// ContextValue returns the value stored under key with Set, or the zero T.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

type securityKey struct{}

// WithSecurityCommand binds the security command shared by all requests.
// Binding twice panics.
func WithSecurityCommand(cmd security.Command) Option {
	if cmd == nil {
		panic("authgate: nil security command")
	}
	return internal.WithValue(securityKey{}, cmd)
}

// Security returns the command bound with WithSecurityCommand, nil if none.
func Security(c Context) security.Command {
	return internal.ContextValue[security.Command](c, securityKey{})
}
