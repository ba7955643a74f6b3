package sample_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/sample"
)

// spyRepo fails the test on any call.
type spyRepo struct {
	t *testing.T
}

func (r spyRepo) Create(context.Context, sample.Sample) (sample.Sample, error) {
	r.t.Error("repository must not be called: Create")
	return sample.Sample{}, nil
}

func (r spyRepo) Get(context.Context, string) (sample.Sample, error) {
	r.t.Error("repository must not be called: Get")
	return sample.Sample{}, nil
}

func (r spyRepo) Update(context.Context, sample.Sample) (sample.Sample, error) {
	r.t.Error("repository must not be called: Update")
	return sample.Sample{}, nil
}

func (r spyRepo) Delete(context.Context, string) error {
	r.t.Error("repository must not be called: Delete")
	return nil
}

func TestManager(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := sample.NewManager(spyRepo{t: t})

	t.Run("post", func(t *testing.T) {
		t.Parallel()

		got, err := m.Post(ctx, sample.Sample{Name: "x"})
		require.ErrorIs(t, err, sample.ErrNotImplemented)
		assert.Zero(t, got)
	})

	t.Run("get", func(t *testing.T) {
		t.Parallel()

		_, err := m.Get(ctx, "1")
		require.ErrorIs(t, err, sample.ErrNotImplemented)
	})

	t.Run("put", func(t *testing.T) {
		t.Parallel()

		_, err := m.Put(ctx, "1", sample.Sample{Name: "y"})
		require.ErrorIs(t, err, sample.ErrNotImplemented)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		require.ErrorIs(t, m.Delete(ctx, "1"), sample.ErrNotImplemented)
	})

	t.Run("nil repository", func(t *testing.T) {
		t.Parallel()

		require.ErrorIs(t, sample.NewManager(nil).Delete(ctx, ""), sample.ErrNotImplemented)
	})
}
