package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/jwt"
	"github.com/dmitrymomot/authgate/pkg/security"
)

type issueCommand struct {
	security.Command
	users map[string]security.User
	saved []security.RefreshToken
	err   error
}

func (c *issueCommand) UserDetails(_ context.Context, id string) (security.User, error) {
	u, ok := c.users[id]
	if !ok {
		return security.User{}, security.ErrUserNotFound
	}
	return u, nil
}

func (c *issueCommand) SaveRefreshToken(_ context.Context, t security.RefreshToken) (security.RefreshToken, error) {
	if c.err != nil {
		return security.RefreshToken{}, c.err
	}
	t.ID = "rt-1"
	c.saved = append(c.saved, t)
	return t, nil
}

func TestIssueTokens(t *testing.T) {
	t.Parallel()

	svc, err := jwt.NewFromString("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	req := issueRequest{UserID: "u1", ClientID: "web", AccessTTL: time.Minute, RefreshTTL: 24 * time.Hour}

	t.Run("stores refresh token and signs access token", func(t *testing.T) {
		t.Parallel()
		cmd := &issueCommand{users: map[string]security.User{"u1": {ID: "u1"}}}

		issued, err := issueTokens(context.Background(), cmd, svc, req, now)
		require.NoError(t, err)

		require.Len(t, cmd.saved, 1)
		assert.Equal(t, "u1", cmd.saved[0].Subject)
		assert.Equal(t, "web", cmd.saved[0].ClientID)
		assert.Equal(t, now.Add(24*time.Hour), cmd.saved[0].ExpiresAt)
		assert.Equal(t, "rt-1", issued.RefreshToken)
		assert.Equal(t, now.Add(24*time.Hour), issued.ExpiresUtc)

		claims, err := svc.Parse(issued.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.Subject)
		assert.Equal(t, "web", claims.ClientID)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		cmd := &issueCommand{users: map[string]security.User{}}

		_, err := issueTokens(context.Background(), cmd, svc, req, now)
		require.ErrorIs(t, err, security.ErrUserNotFound)
		assert.Empty(t, cmd.saved)
	})

	t.Run("missing user id", func(t *testing.T) {
		t.Parallel()
		_, err := issueTokens(context.Background(), &issueCommand{}, svc, issueRequest{}, now)
		require.ErrorIs(t, err, errMissingUser)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		cmd := &issueCommand{users: map[string]security.User{"u1": {ID: "u1"}}, err: boom}

		_, err := issueTokens(context.Background(), cmd, svc, req, now)
		require.ErrorIs(t, err, boom)
	})
}
