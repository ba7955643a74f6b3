package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/internal"
)

func TestHTTPError(t *testing.T) {
	t.Parallel()

	cause := errors.New("row missing")
	err := internal.ErrNotFound("token not found",
		internal.WithError(cause),
		internal.WithDetail("id=42"),
		internal.WithErrorCode("token_not_found"),
		internal.WithRequestID("r1"),
	)

	assert.Equal(t, "token not found", err.Error())
	assert.Equal(t, http.StatusNotFound, err.StatusCode())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "id=42", err.Detail)
	assert.Equal(t, "r1", err.RequestID)

	wrapped := fmt.Errorf("handler: %w", err)
	he := internal.AsHTTPError(wrapped)
	require.NotNil(t, he)
	assert.Equal(t, "token_not_found", he.ErrorCode)

	assert.Nil(t, internal.AsHTTPError(cause))
	assert.Equal(t, "Service Unavailable", internal.ErrServiceUnavailable("").Message)
}
