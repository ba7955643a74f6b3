package handlers

import (
	"net/http"

	"github.com/dmitrymomot/authgate"
	"github.com/dmitrymomot/authgate/pkg/dbctx"
	"github.com/dmitrymomot/authgate/pkg/sample"
	"github.com/dmitrymomot/authgate/pkg/security"
)

// ErrorMappings maps domain errors raised under these handlers to HTTP
// responses. Pass them to authgate.APIErrorHandler.
func ErrorMappings() []authgate.ErrorMapping {
	return []authgate.ErrorMapping{
		{Err: sample.ErrNotImplemented, Code: http.StatusNotImplemented, Message: "not implemented"},
		{Err: sample.ErrNotFound, Code: http.StatusNotFound, Message: "sample not found"},
		{Err: security.ErrEmptyTokenID, Code: http.StatusBadRequest, Message: "token id is required"},
		{Err: security.ErrTokenNotFound, Code: http.StatusNotFound, Message: "refresh token not found"},
		{Err: security.ErrUserNotFound, Code: http.StatusNotFound, Message: "user not found"},
		{Err: dbctx.ErrNotRegistered, Code: http.StatusServiceUnavailable},
		{Err: dbctx.ErrFactoryFailed, Code: http.StatusServiceUnavailable},
	}
}

func errNoSecurityCommand() *authgate.HTTPError {
	return authgate.ErrServiceUnavailable("security command is not configured", authgate.WithErrorCode("no_security_command"))
}
