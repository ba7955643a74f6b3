package apiclient

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/authgate/pkg/settings"
)

// Users reads account data of the authenticated user.
type Users struct {
	endpoint
}

// NewUsers creates a Users wrapper bound to s.APIServiceBaseURI.
func NewUsers(s *settings.Settings, opts ...Option) *Users {
	return &Users{endpoint: newEndpoint(s.APIServiceBaseURI, opts...)}
}

// GetUserDetails issues GET {base}api/User/details.
func (u *Users) GetUserDetails(ctx context.Context) (*http.Response, error) {
	return u.do(ctx, http.MethodGet, "api/User/details")
}
