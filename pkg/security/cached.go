package security

import (
	"context"
	"time"

	"github.com/dmitrymomot/authgate/pkg/cache"
)

// Cached serves UserDetails from a cache and delegates everything else.
type Cached struct {
	Command
	users *cache.Loader[User]
}

// NewCached wraps next with a user-details cache of the given TTL.
func NewCached(next Command, c cache.Cache[User], ttl time.Duration) *Cached {
	return &Cached{Command: next, users: cache.NewLoader(c, ttl)}
}

func (c *Cached) UserDetails(ctx context.Context, userID string) (User, error) {
	return c.users.Get(ctx, userKey(userID), func(ctx context.Context) (User, error) {
		return c.Command.UserDetails(ctx, userID)
	})
}

func userKey(id string) string {
	return "user:" + id
}

var _ Command = (*Cached)(nil)
