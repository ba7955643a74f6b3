// Package middlewares provides the HTTP middleware authgate wires globally
// and per route.
//
// Recover and Timeout turn panics and deadline overruns into *PanicError and
// *TimeoutError, which carry their own status for the App's error handler.
// RequestID tags every request and, through RequestIDExtractor, every log
// line. JWT verifies bearer tokens and stores the claims. Tx runs a route
// inside a database transaction and exposes it to repositories through the
// request context. Metrics records Prometheus request counters and latencies.
//
// A typical global stack:
//
//	authgate.WithMiddleware(
//		middlewares.RequestID(),
//		middlewares.Recover(),
//		metrics.Middleware(),
//		middlewares.CORS(middlewares.WithAllowOrigins(origin)),
//		middlewares.Timeout(30*time.Second),
//	)
package middlewares
