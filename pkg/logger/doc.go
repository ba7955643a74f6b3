// Package logger builds slog loggers for authgate services.
//
// Loggers write JSON (or text, for local development) to stdout and can
// additionally forward warnings and errors to Sentry. Request-scoped values
// such as the request ID are attached through [ContextExtractor] functions,
// evaluated on every log call:
//
//	log := logger.New(logger.Config{Level: "debug"},
//		middlewares.RequestIDExtractor(),
//	)
//	log.InfoContext(ctx, "refresh token removed", slog.String("token_id", id))
//
// When [SentryConfig.DSN] is empty, [NewWithSentry] falls back to stdout only,
// so the same wiring runs in development and production.
package logger
