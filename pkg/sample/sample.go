package sample

import (
	"context"
	"time"
)

// Sample is the entity managed by Manager.
type Sample struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Repository persists samples.
type Repository interface {
	Create(ctx context.Context, s Sample) (Sample, error)
	Get(ctx context.Context, id string) (Sample, error)
	Update(ctx context.Context, s Sample) (Sample, error)
	Delete(ctx context.Context, id string) error
}

// Manager is the CRUD surface for samples.
type Manager struct {
	repo Repository
}

// NewManager creates a Manager over repo.
func NewManager(repo Repository) *Manager {
	return &Manager{repo: repo}
}

func (m *Manager) Post(ctx context.Context, s Sample) (Sample, error) {
	return Sample{}, ErrNotImplemented
}

func (m *Manager) Get(ctx context.Context, id string) (Sample, error) {
	return Sample{}, ErrNotImplemented
}

func (m *Manager) Put(ctx context.Context, id string, s Sample) (Sample, error) {
	return Sample{}, ErrNotImplemented
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	return ErrNotImplemented
}
