package sample

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/authgate/pkg/db"
	"github.com/dmitrymomot/authgate/pkg/dbctx"
)

// Postgres is the Repository backed by the samples table.
type Postgres struct {
	resolver *dbctx.Resolver[db.Querier]
}

// NewPostgres creates a repository resolving its handle through r.
func NewPostgres(r *dbctx.Resolver[db.Querier]) *Postgres {
	return &Postgres{resolver: r}
}

func (p *Postgres) Create(ctx context.Context, s Sample) (Sample, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	q, err := p.resolver.Handle(ctx)
	if err != nil {
		return Sample{}, err
	}
	err = q.QueryRow(ctx,
		`INSERT INTO samples (id, name) VALUES ($1, $2) RETURNING created_at, updated_at`,
		s.ID, s.Name,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return Sample{}, errors.Join(ErrQuery, err)
	}
	return s, nil
}

func (p *Postgres) Get(ctx context.Context, id string) (Sample, error) {
	q, err := p.resolver.Handle(ctx)
	if err != nil {
		return Sample{}, err
	}
	var s Sample
	err = q.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM samples WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Sample{}, ErrNotFound
	}
	if err != nil {
		return Sample{}, errors.Join(ErrQuery, err)
	}
	return s, nil
}

func (p *Postgres) Update(ctx context.Context, s Sample) (Sample, error) {
	q, err := p.resolver.Handle(ctx)
	if err != nil {
		return Sample{}, err
	}
	s.UpdatedAt = time.Now().UTC()
	err = q.QueryRow(ctx,
		`UPDATE samples SET name = $2, updated_at = $3 WHERE id = $1 RETURNING created_at`,
		s.ID, s.Name, s.UpdatedAt,
	).Scan(&s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Sample{}, ErrNotFound
	}
	if err != nil {
		return Sample{}, errors.Join(ErrQuery, err)
	}
	return s, nil
}

func (p *Postgres) Delete(ctx context.Context, id string) error {
	q, err := p.resolver.Handle(ctx)
	if err != nil {
		return err
	}
	tag, err := q.Exec(ctx, `DELETE FROM samples WHERE id = $1`, id)
	if err != nil {
		return errors.Join(ErrQuery, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repository = (*Postgres)(nil)
