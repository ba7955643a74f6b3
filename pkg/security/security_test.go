package security_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/cache"
	"github.com/dmitrymomot/authgate/pkg/db"
	"github.com/dmitrymomot/authgate/pkg/dbctx"
	"github.com/dmitrymomot/authgate/pkg/security"
)

// querier answers Exec with a fixed command tag and QueryRow with a fixed error.
type querier struct {
	name    string
	tag     string
	rowErr  error
	mu      sync.Mutex
	queries []string
}

func (q *querier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.record(sql)
	return pgconn.NewCommandTag(q.tag), nil
}

func (q *querier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not supported")
}

func (q *querier) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	q.record(sql)
	return row{err: q.rowErr}
}

func (q *querier) record(sql string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.queries = append(q.queries, sql)
}

func (q *querier) calls() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queries)
}

type row struct{ err error }

func (r row) Scan(...any) error { return r.err }

func newStore(t *testing.T, shared db.Querier) *security.Store {
	t.Helper()
	reg := dbctx.NewRegistry[db.Querier]()
	require.NoError(t, reg.RegisterInstance(dbctx.DefaultName, shared))
	return security.NewStore(dbctx.NewResolver(reg))
}

func TestStore(t *testing.T) {
	t.Parallel()

	t.Run("remove reports missing token", func(t *testing.T) {
		t.Parallel()

		s := newStore(t, &querier{tag: "DELETE 0"})
		require.ErrorIs(t, s.RemoveRefreshToken(context.Background(), "nope"), security.ErrTokenNotFound)
	})

	t.Run("remove succeeds", func(t *testing.T) {
		t.Parallel()

		s := newStore(t, &querier{tag: "DELETE 1"})
		require.NoError(t, s.RemoveRefreshToken(context.Background(), "42"))
	})

	t.Run("remove rejects empty id without a query", func(t *testing.T) {
		t.Parallel()

		q := &querier{tag: "DELETE 1"}
		s := newStore(t, q)
		require.ErrorIs(t, s.RemoveRefreshToken(context.Background(), ""), security.ErrEmptyTokenID)
		assert.Zero(t, q.calls())
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()

		s := newStore(t, &querier{rowErr: pgx.ErrNoRows})
		_, err := s.UserDetails(context.Background(), "u1")
		require.ErrorIs(t, err, security.ErrUserNotFound)
	})

	t.Run("context override wins over the shared handle", func(t *testing.T) {
		t.Parallel()

		shared := &querier{name: "shared", tag: "DELETE 3"}
		tx := &querier{name: "tx", tag: "DELETE 1"}
		s := newStore(t, shared)

		ctx := dbctx.WithHandle[db.Querier](context.Background(), tx)
		n, err := s.PurgeExpired(ctx, time.Now())
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		assert.Equal(t, 1, tx.calls())
		assert.Zero(t, shared.calls())
	})

	t.Run("save assigns id and issue time", func(t *testing.T) {
		t.Parallel()

		s := newStore(t, &querier{tag: "INSERT 0 1"})
		tok, err := s.SaveRefreshToken(context.Background(), security.RefreshToken{
			Subject:   "u1",
			ClientID:  "web",
			ExpiresAt: time.Now().Add(time.Hour),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, tok.ID)
		assert.False(t, tok.IssuedAt.IsZero())
	})

	t.Run("missing registration surfaces", func(t *testing.T) {
		t.Parallel()

		s := security.NewStore(dbctx.NewResolver(dbctx.NewRegistry[db.Querier]()))
		_, err := s.RefreshTokens(context.Background())
		require.ErrorIs(t, err, dbctx.ErrNotRegistered)
	})
}

func TestRefreshTokenExpired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	assert.True(t, security.RefreshToken{ExpiresAt: now}.Expired(now))
	assert.False(t, security.RefreshToken{ExpiresAt: now.Add(time.Second)}.Expired(now))
}

// command is an in-memory Command.
type command struct {
	security.Command
	userCalls atomic.Int32
	purged    atomic.Int64
	purgeErr  error
}

func (c *command) UserDetails(_ context.Context, id string) (security.User, error) {
	c.userCalls.Add(1)
	if id == "missing" {
		return security.User{}, security.ErrUserNotFound
	}
	return security.User{ID: id, UserName: "alice"}, nil
}

func (c *command) PurgeExpired(context.Context, time.Time) (int64, error) {
	if c.purgeErr != nil {
		return 0, c.purgeErr
	}
	c.purged.Add(2)
	return 2, nil
}

func TestCached(t *testing.T) {
	t.Parallel()

	t.Run("caches hits", func(t *testing.T) {
		t.Parallel()

		next := &command{}
		mem := cache.NewMemory[security.User]()
		defer mem.Close()
		c := security.NewCached(next, mem, time.Minute)

		for range 3 {
			u, err := c.UserDetails(context.Background(), "u1")
			require.NoError(t, err)
			assert.Equal(t, "alice", u.UserName)
		}
		assert.Equal(t, int32(1), next.userCalls.Load())
	})

	t.Run("does not cache misses", func(t *testing.T) {
		t.Parallel()

		next := &command{}
		mem := cache.NewMemory[security.User]()
		defer mem.Close()
		c := security.NewCached(next, mem, time.Minute)

		for range 2 {
			_, err := c.UserDetails(context.Background(), "missing")
			require.ErrorIs(t, err, security.ErrUserNotFound)
		}
		assert.Equal(t, int32(2), next.userCalls.Load())
	})
}

func TestPurgeJob(t *testing.T) {
	t.Parallel()

	t.Run("runs the purge", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		next := &command{}
		security.NewPurgeJob(next, slog.New(slog.NewJSONHandler(&buf, nil)), time.Second).Run()

		assert.Equal(t, int64(2), next.purged.Load())
		assert.Contains(t, buf.String(), "purged expired refresh tokens")
	})

	t.Run("logs failures", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		next := &command{purgeErr: errors.New("db down")}
		security.NewPurgeJob(next, slog.New(slog.NewJSONHandler(&buf, nil)), time.Second).Run()

		assert.Contains(t, buf.String(), "db down")
	})

	t.Run("schedules on a cron", func(t *testing.T) {
		t.Parallel()

		c := cron.New()
		id, err := security.Schedule(c, "@every 1h", security.NewPurgeJob(&command{}, nil, 0))
		require.NoError(t, err)
		assert.NotZero(t, id)

		_, err = security.Schedule(c, "not a spec", security.NewPurgeJob(&command{}, nil, 0))
		require.Error(t, err)
	})
}
