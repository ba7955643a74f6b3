package apiclient_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/authgate/pkg/apiclient"
	"github.com/dmitrymomot/authgate/pkg/settings"
)

type recorded struct {
	method    string
	uri       string
	auth      string
	userAgent string
}

// recordingServer answers every request with status and body and records it.
func recordingServer(t *testing.T, status int, body string) (*httptest.Server, func() []recorded) {
	t.Helper()

	var (
		mu   sync.Mutex
		reqs []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		reqs = append(reqs, recorded{
			method:    r.Method,
			uri:       r.URL.RequestURI(),
			auth:      r.Header.Get("Authorization"),
			userAgent: r.Header.Get("User-Agent"),
		})
		mu.Unlock()
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return srv, func() []recorded {
		mu.Lock()
		defer mu.Unlock()
		return append([]recorded(nil), reqs...)
	}
}

func settingsFor(base string) *settings.Settings {
	return &settings.Settings{APIServiceBaseURI: base}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestTokensManager_GetRefreshTokens(t *testing.T) {
	t.Parallel()

	t.Run("issues one GET and returns the response", func(t *testing.T) {
		t.Parallel()

		srv, requests := recordingServer(t, http.StatusOK, `[{"id":"1"}]`)
		m := apiclient.NewTokensManager(settingsFor(srv.URL + "/"))

		resp, err := m.GetRefreshTokens(context.Background())
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, `[{"id":"1"}]`, readBody(t, resp))

		reqs := requests()
		require.Len(t, reqs, 1)
		assert.Equal(t, http.MethodGet, reqs[0].method)
		assert.Equal(t, "/api/refreshtokens", reqs[0].uri)
	})

	t.Run("non-success status is returned unmodified", func(t *testing.T) {
		t.Parallel()

		srv, requests := recordingServer(t, http.StatusUnauthorized, `{"message":"denied"}`)
		m := apiclient.NewTokensManager(settingsFor(srv.URL + "/"))

		resp, err := m.GetRefreshTokens(context.Background())
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, `{"message":"denied"}`, readBody(t, resp))
		assert.Len(t, requests(), 1)
	})

	t.Run("base uri is captured at construction", func(t *testing.T) {
		t.Parallel()

		srv, requests := recordingServer(t, http.StatusOK, "")
		cfg := settingsFor(srv.URL + "/")
		m := apiclient.NewTokensManager(cfg)
		cfg.APIServiceBaseURI = "http://127.0.0.1:1/"

		resp, err := m.GetRefreshTokens(context.Background())
		require.NoError(t, err)
		_ = readBody(t, resp)
		assert.Len(t, requests(), 1)
	})

	t.Run("base uri is concatenated verbatim", func(t *testing.T) {
		t.Parallel()

		srv, requests := recordingServer(t, http.StatusOK, "")
		m := apiclient.NewTokensManager(settingsFor(srv.URL + "/v1"))

		resp, err := m.GetRefreshTokens(context.Background())
		require.NoError(t, err)
		_ = readBody(t, resp)
		assert.Equal(t, "/v1api/refreshtokens", requests()[0].uri)
	})

	t.Run("transport errors propagate", func(t *testing.T) {
		t.Parallel()

		srv, _ := recordingServer(t, http.StatusOK, "")
		srv.Close()
		m := apiclient.NewTokensManager(settingsFor(srv.URL + "/"))

		resp, err := m.GetRefreshTokens(context.Background())
		require.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestTokensManager_DeleteRefreshTokens(t *testing.T) {
	t.Parallel()

	t.Run("issues one DELETE with the token id", func(t *testing.T) {
		t.Parallel()

		srv, requests := recordingServer(t, http.StatusOK, "")
		m := apiclient.NewTokensManager(settingsFor(srv.URL + "/"))

		resp, err := m.DeleteRefreshTokens(context.Background(), "42")
		require.NoError(t, err)
		_ = readBody(t, resp)

		reqs := requests()
		require.Len(t, reqs, 1)
		assert.Equal(t, http.MethodDelete, reqs[0].method)
		assert.Equal(t, "/api/refreshtokens/?tokenid=42", reqs[0].uri)
	})

	t.Run("does not validate the token id", func(t *testing.T) {
		t.Parallel()

		srv, requests := recordingServer(t, http.StatusNotFound, "")
		m := apiclient.NewTokensManager(settingsFor(srv.URL + "/"))

		resp, err := m.DeleteRefreshTokens(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = readBody(t, resp)
		assert.Equal(t, "/api/refreshtokens/?tokenid=", requests()[0].uri)
	})
}

func TestUsers_GetUserDetails(t *testing.T) {
	t.Parallel()

	srv, requests := recordingServer(t, http.StatusOK, `{"userName":"alice"}`)
	u := apiclient.NewUsers(settingsFor(srv.URL+"/v1/"),
		apiclient.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "abc", TokenType: "Bearer"})),
		apiclient.WithUserAgent("authgate-test"),
	)

	resp, err := u.GetUserDetails(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"userName":"alice"}`, readBody(t, resp))

	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodGet, reqs[0].method)
	assert.Equal(t, "/v1/api/User/details", reqs[0].uri)
	assert.Equal(t, "Bearer abc", reqs[0].auth)
	assert.Equal(t, "authgate-test", reqs[0].userAgent)
}
