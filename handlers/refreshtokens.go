package handlers

import (
	"net/http"

	"github.com/dmitrymomot/authgate"
	"github.com/dmitrymomot/authgate/middlewares"
	"github.com/dmitrymomot/authgate/pkg/db"
	"github.com/dmitrymomot/authgate/pkg/security"
)

// RefreshTokens serves /api/refreshtokens.
type RefreshTokens struct {
	mw      []authgate.Middleware
	delete  []authgate.Middleware
	listing bool
}

// RefreshTokensOption configures RefreshTokens.
type RefreshTokensOption func(*RefreshTokens)

// WithRefreshTokensMiddleware applies mw to every refresh token route.
func WithRefreshTokensMiddleware(mw ...authgate.Middleware) RefreshTokensOption {
	return func(h *RefreshTokens) {
		h.mw = append(h.mw, mw...)
	}
}

// WithDeleteInTx runs removals inside a transaction started on b.
func WithDeleteInTx(b db.TxBeginner) RefreshTokensOption {
	return func(h *RefreshTokens) {
		h.delete = append(h.delete, middlewares.Tx(b))
	}
}

// WithoutListing disables GET /api/refreshtokens.
func WithoutListing() RefreshTokensOption {
	return func(h *RefreshTokens) {
		h.listing = false
	}
}

// NewRefreshTokens creates the refresh tokens handler.
func NewRefreshTokens(opts ...RefreshTokensOption) *RefreshTokens {
	h := &RefreshTokens{listing: true}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes implements authgate.Handler.
func (h *RefreshTokens) Routes(r authgate.Router) {
	r.Route("/api/refreshtokens", func(r authgate.Router) {
		r.Use(h.mw...)
		if h.listing {
			r.GET("/", h.list)
		}
		r.DELETE("/", h.remove, h.delete...)
	})
}

func (h *RefreshTokens) list(c authgate.Context) error {
	cmd := authgate.Security(c)
	if cmd == nil {
		return errNoSecurityCommand()
	}

	tokens, err := cmd.RefreshTokens(c)
	if err != nil {
		return err
	}
	if tokens == nil {
		tokens = []security.RefreshToken{}
	}
	return c.JSON(http.StatusOK, tokens)
}

func (h *RefreshTokens) remove(c authgate.Context) error {
	cmd := authgate.Security(c)
	if cmd == nil {
		return errNoSecurityCommand()
	}

	id := c.Query("tokenid")
	if id == "" {
		return authgate.ErrBadRequest("tokenid is required", authgate.WithErrorCode("missing_token_id"))
	}

	if err := cmd.RemoveRefreshToken(c, id); err != nil {
		return err
	}

	c.LogInfo("refresh token removed", "token_id", id)
	return c.NoContent(http.StatusOK)
}
