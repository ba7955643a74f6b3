package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/authgate/pkg/settings"
)

// TokensManager manages the refresh tokens issued by the API.
type TokensManager struct {
	endpoint
}

// NewTokensManager creates a TokensManager bound to s.APIServiceBaseURI.
// Later changes to s are not observed.
func NewTokensManager(s *settings.Settings, opts ...Option) *TokensManager {
	return &TokensManager{endpoint: newEndpoint(s.APIServiceBaseURI, opts...)}
}

// GetRefreshTokens issues GET {base}api/refreshtokens.
func (m *TokensManager) GetRefreshTokens(ctx context.Context) (*http.Response, error) {
	return m.do(ctx, http.MethodGet, "api/refreshtokens")
}

// DeleteRefreshTokens issues DELETE {base}api/refreshtokens/?tokenid={tokenID}.
// tokenID is sent as given, only query-escaped.
func (m *TokensManager) DeleteRefreshTokens(ctx context.Context, tokenID string) (*http.Response, error) {
	return m.do(ctx, http.MethodDelete, "api/refreshtokens/?tokenid="+url.QueryEscape(tokenID))
}
