package security

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/authgate/pkg/db"
	"github.com/dmitrymomot/authgate/pkg/dbctx"
)

// Store is the Postgres-backed Command.
type Store struct {
	resolver *dbctx.Resolver[db.Querier]
	now      func() time.Time
}

// NewStore creates a Store resolving its handle through r.
func NewStore(r *dbctx.Resolver[db.Querier]) *Store {
	return &Store{resolver: r, now: time.Now}
}

const listRefreshTokens = `
SELECT id, subject, client_id, issued_at, expires_at, protected
FROM refresh_tokens
ORDER BY issued_at DESC, id`

func (s *Store) RefreshTokens(ctx context.Context) ([]RefreshToken, error) {
	q, err := s.resolver.Handle(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, listRefreshTokens)
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}

	tokens, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (RefreshToken, error) {
		var t RefreshToken
		err := row.Scan(&t.ID, &t.Subject, &t.ClientID, &t.IssuedAt, &t.ExpiresAt, &t.Protected)
		return t, err
	})
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	return tokens, nil
}

const insertRefreshToken = `
INSERT INTO refresh_tokens (id, subject, client_id, issued_at, expires_at, protected)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
    subject = EXCLUDED.subject,
    client_id = EXCLUDED.client_id,
    issued_at = EXCLUDED.issued_at,
    expires_at = EXCLUDED.expires_at,
    protected = EXCLUDED.protected`

// SaveRefreshToken upserts token, assigning a UUIDv7 id and the current issue
// time when they are empty.
func (s *Store) SaveRefreshToken(ctx context.Context, token RefreshToken) (RefreshToken, error) {
	if token.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return RefreshToken{}, err
		}
		token.ID = id.String()
	}
	if token.IssuedAt.IsZero() {
		token.IssuedAt = s.now().UTC()
	}

	q, err := s.resolver.Handle(ctx)
	if err != nil {
		return RefreshToken{}, err
	}

	if _, err := q.Exec(ctx, insertRefreshToken,
		token.ID, token.Subject, token.ClientID, token.IssuedAt, token.ExpiresAt, token.Protected,
	); err != nil {
		return RefreshToken{}, errors.Join(ErrQuery, err)
	}
	return token, nil
}

func (s *Store) RemoveRefreshToken(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyTokenID
	}

	q, err := s.resolver.Handle(ctx)
	if err != nil {
		return err
	}

	tag, err := q.Exec(ctx, `DELETE FROM refresh_tokens WHERE id = $1`, id)
	if err != nil {
		return errors.Join(ErrQuery, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTokenNotFound
	}
	return nil
}

func (s *Store) UserDetails(ctx context.Context, userID string) (User, error) {
	q, err := s.resolver.Handle(ctx)
	if err != nil {
		return User{}, err
	}

	var u User
	err = q.QueryRow(ctx,
		`SELECT id, user_name, email, full_name, created_at FROM users WHERE id = $1`, userID,
	).Scan(&u.ID, &u.UserName, &u.Email, &u.FullName, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, errors.Join(ErrQuery, err)
	}
	return u, nil
}

// PurgeExpired deletes tokens whose expiry is at or before now.
func (s *Store) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	q, err := s.resolver.Handle(ctx)
	if err != nil {
		return 0, err
	}

	tag, err := q.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, errors.Join(ErrQuery, err)
	}
	return tag.RowsAffected(), nil
}

var _ Command = (*Store)(nil)
