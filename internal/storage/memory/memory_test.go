package memory

import (
	"context"
	"moviedeck/proj/internal/storage"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Set(ctx, storage.KeyUsername, "ann"))
	require.NoError(t, s.Set(ctx, storage.ReviewKey("Dune"), "{}"))
	v, err := s.Get(ctx, storage.KeyUsername)
	require.NoError(t, err)
	assert.Equal(t, "ann", v)

	require.NoError(t, s.Set(ctx, storage.KeyUsername, "bob"))
	v, _ = s.Get(ctx, storage.KeyUsername)
	assert.Equal(t, "bob", v)

	require.NoError(t, s.Delete(ctx, storage.KeyUsername))
	require.NoError(t, s.Delete(ctx, storage.KeyUsername))
	_, err = s.Get(ctx, storage.KeyUsername)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Clear(ctx))
	assert.Equal(t, 0, s.Len())
}
