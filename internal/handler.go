package internal

// Handler declares explicit routes on a router.
//
//	func (h *Tokens) Routes(r authgate.Router) {
//		r.GET("/api/refreshtokens", h.list)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc handles a request. A non-nil error is passed to the App's ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders an error returned by a handler or middleware.
type ErrorHandler func(Context, error) error
