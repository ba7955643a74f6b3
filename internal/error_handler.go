package internal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
)

// ErrorMapping maps a sentinel error (matched with errors.Is) to a status.
type ErrorMapping struct {
	Err     error
	Code    int
	Message string
}

// Problem is the JSON body written by APIErrorHandler.
type Problem struct {
	Message   string `json:"message"`
	Detail    string `json:"detail,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
	RequestID string `json:"requestId,omitempty"`
	Status    int    `json:"status"`
}

// RequestIDFunc returns the request id to echo in error bodies.
type RequestIDFunc func(Context) string

// APIErrorHandler returns the process-wide error handler. Resolution order:
// an HTTPError in the chain, then the first matching mapping, then an
// exceeded deadline as 503, then any StatusCoder, else 500. Server errors are logged and
// their messages are never rendered.
func APIErrorHandler(requestID RequestIDFunc, mappings ...ErrorMapping) ErrorHandler {
	return func(c Context, err error) error {
		p := resolveProblem(err, mappings)
		if requestID != nil && p.RequestID == "" {
			p.RequestID = requestID(c)
		}

		if p.Status >= http.StatusInternalServerError {
			c.LogError("request failed", slog.Int("status", p.Status), slog.Any("error", err))
		} else {
			c.LogDebug("request rejected", slog.Int("status", p.Status), slog.Any("error", err))
		}

		return c.JSON(p.Status, p)
	}
}

func resolveProblem(err error, mappings []ErrorMapping) Problem {
	if he := AsHTTPError(err); he != nil {
		return Problem{
			Status:    he.Code,
			Message:   he.Message,
			Detail:    he.Detail,
			ErrorCode: he.ErrorCode,
			RequestID: he.RequestID,
		}
	}

	for _, m := range mappings {
		if m.Err != nil && errors.Is(err, m.Err) {
			msg := m.Message
			if msg == "" {
				msg = http.StatusText(m.Code)
			}
			return Problem{Status: m.Code, Message: msg}
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Problem{Status: http.StatusServiceUnavailable, Message: http.StatusText(http.StatusServiceUnavailable)}
	}

	status := http.StatusInternalServerError
	var sc StatusCoder
	if errors.As(err, &sc) && sc.StatusCode() >= 400 {
		status = sc.StatusCode()
	}
	return Problem{Status: status, Message: http.StatusText(status)}
}
