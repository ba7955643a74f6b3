package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/authgate/internal"
)

const DefaultTimeout = 30 * time.Second

// Timeout puts a deadline on the request context. Handlers observe it
// through the context they pass downstream; if the deadline is exceeded and
// nothing was written, a *TimeoutError is returned instead of the handler's
// own result.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			parent := c.Context()
			ctx, cancel := context.WithTimeout(parent, timeout)
			defer cancel()

			c.SetContext(ctx)
			err := next(c)
			c.SetContext(parent)

			if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Written() {
				c.LogWarn("request timeout", "timeout", timeout.String())
				return &TimeoutError{Duration: timeout}
			}
			return err
		}
	}
}
