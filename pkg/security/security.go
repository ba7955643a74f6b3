package security

import (
	"context"
	"time"
)

// RefreshToken is an issued refresh token as listed to administrators.
type RefreshToken struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	ClientID  string    `json:"clientId"`
	IssuedAt  time.Time `json:"issuedUtc"`
	ExpiresAt time.Time `json:"expiresUtc"`
	// Protected is the serialized ticket and never leaves the server.
	Protected string `json:"-"`
}

// Expired reports whether the token is past its expiry at now.
func (t RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// User is the authenticated user's profile.
type User struct {
	ID        string    `json:"id"`
	UserName  string    `json:"userName"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
}

// Command is the security command bound once at startup and shared by all
// requests. Implementations must be safe for concurrent use.
type Command interface {
	RefreshTokens(ctx context.Context) ([]RefreshToken, error)
	SaveRefreshToken(ctx context.Context, token RefreshToken) (RefreshToken, error)
	RemoveRefreshToken(ctx context.Context, id string) error
	UserDetails(ctx context.Context, userID string) (User, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
