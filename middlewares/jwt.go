package middlewares

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/authgate/internal"
	"github.com/dmitrymomot/authgate/pkg/jwt"
	"github.com/dmitrymomot/authgate/pkg/logger"
)

// JWTOption configures JWT.
type JWTOption func(*internal.Extractor)

// WithJWTExtractor replaces the default bearer-header extractor.
func WithJWTExtractor(ext internal.Extractor) JWTOption {
	return func(e *internal.Extractor) {
		*e = ext
	}
}

// JWT verifies the request token with svc and stores the claims for
// Context.UserID and GetJWTClaims. Missing or invalid tokens are 401.
func JWT(svc *jwt.Service, opts ...JWTOption) internal.Middleware {
	ext := internal.NewExtractor(internal.FromBearerToken())
	for _, opt := range opts {
		opt(&ext)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			token, ok := ext.Extract(c)
			if !ok {
				return internal.ErrUnauthorized("missing authentication token", internal.WithErrorCode("missing_token"))
			}

			claims, err := svc.Parse(token)
			if err != nil {
				if errors.Is(err, jwt.ErrExpiredToken) {
					return internal.ErrUnauthorized("token expired", internal.WithErrorCode("token_expired"), internal.WithError(err))
				}
				return internal.ErrUnauthorized("invalid token", internal.WithErrorCode("invalid_token"), internal.WithError(err))
			}

			c.Set(internal.JWTClaimsKey{}, claims)
			return next(c)
		}
	}
}

// GetJWTClaims returns the verified claims, or nil outside JWT.
func GetJWTClaims(c internal.Context) *jwt.Claims {
	return internal.ContextValue[*jwt.Claims](c, internal.JWTClaimsKey{})
}

// UserIDExtractor adds "user_id" to log records of authenticated requests.
func UserIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if claims, ok := ctx.Value(internal.JWTClaimsKey{}).(*jwt.Claims); ok && claims != nil {
			return slog.String("user_id", claims.Subject), true
		}
		return slog.Attr{}, false
	}
}
