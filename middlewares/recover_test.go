package middlewares_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/internal"
	"github.com/dmitrymomot/authgate/middlewares"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("panic becomes 500", func(t *testing.T) {
		t.Parallel()

		app, logs := newApp(t, func(internal.Context) error { panic("boom") }, middlewares.Recover())
		rec := get(app)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "boom")
		assert.Contains(t, logs.String(), "panic recovered")
		assert.Contains(t, logs.String(), "stack")
	})

	t.Run("stack can be disabled", func(t *testing.T) {
		t.Parallel()

		app, logs := newApp(t, func(internal.Context) error { panic("boom") },
			middlewares.Recover(middlewares.WithRecoverDisablePrintStack()))
		get(app)
		assert.NotContains(t, logs.String(), "goroutine")
	})

	t.Run("returns PanicError to the caller", func(t *testing.T) {
		t.Parallel()

		h := middlewares.Recover()(func(internal.Context) error { panic(42) })
		var captured error
		app, _ := newApp(t, func(c internal.Context) error {
			captured = h(c)
			return nil
		})
		get(app)

		pe, ok := middlewares.AsPanicError(captured)
		require.True(t, ok)
		assert.Equal(t, 42, pe.Value)
		assert.NotEmpty(t, pe.Stack)
		assert.Equal(t, http.StatusInternalServerError, pe.StatusCode())
	})

	t.Run("errors pass through", func(t *testing.T) {
		t.Parallel()

		app, _ := newApp(t, func(internal.Context) error {
			return internal.ErrNotFound("")
		}, middlewares.Recover())
		assert.Equal(t, http.StatusNotFound, get(app).Code)

		_, ok := middlewares.AsPanicError(errors.New("x"))
		assert.False(t, ok)
	})
}
