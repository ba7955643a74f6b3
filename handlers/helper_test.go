package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate"
	"github.com/dmitrymomot/authgate/handlers"
	"github.com/dmitrymomot/authgate/pkg/security"
)

// fakeCommand is an in-memory security.Command.
type fakeCommand struct {
	mu      sync.Mutex
	tokens  []security.RefreshToken
	users   map[string]security.User
	removed []string
	err     error
}

func (f *fakeCommand) RefreshTokens(context.Context) ([]security.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.tokens, nil
}

func (f *fakeCommand) SaveRefreshToken(_ context.Context, t security.RefreshToken) (security.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, t)
	return t, nil
}

func (f *fakeCommand) RemoveRefreshToken(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for i, t := range f.tokens {
		if t.ID == id {
			f.tokens = append(f.tokens[:i], f.tokens[i+1:]...)
			f.removed = append(f.removed, id)
			return nil
		}
	}
	return security.ErrTokenNotFound
}

func (f *fakeCommand) UserDetails(_ context.Context, userID string) (security.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return security.User{}, security.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeCommand) PurgeExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func newApp(t *testing.T, cmd security.Command, opts ...authgate.Option) *authgate.App {
	t.Helper()
	base := []authgate.Option{
		authgate.WithErrorHandler(authgate.APIErrorHandler(nil, handlers.ErrorMappings()...)),
	}
	if cmd != nil {
		base = append(base, authgate.WithSecurityCommand(cmd))
	}
	return authgate.New(append(base, opts...)...)
}

func serve(app http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) authgate.Problem {
	t.Helper()
	var p authgate.Problem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	return p
}
