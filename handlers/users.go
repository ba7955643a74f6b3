package handlers

import (
	"net/http"

	"github.com/dmitrymomot/authgate"
	"github.com/dmitrymomot/authgate/middlewares"
	"github.com/dmitrymomot/authgate/pkg/jwt"
)

// Users serves /api/User/details for the bearer token's subject.
type Users struct {
	jwt *jwt.Service
}

// NewUsers creates the user handler. Tokens are verified with svc.
func NewUsers(svc *jwt.Service) *Users {
	return &Users{jwt: svc}
}

// Routes implements authgate.Handler.
func (h *Users) Routes(r authgate.Router) {
	r.GET("/api/User/details", h.details, middlewares.JWT(h.jwt))
}

func (h *Users) details(c authgate.Context) error {
	cmd := authgate.Security(c)
	if cmd == nil {
		return errNoSecurityCommand()
	}

	user, err := cmd.UserDetails(c, c.UserID())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
