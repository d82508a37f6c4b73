package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSetGetDelete(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, store.Set(ctx, "k", "v", time.Minute))
	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", value)

	require.NoError(t, store.Delete(ctx, "k", "other"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryStoreExpiration(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "k", "v", time.Second))
	now = now.Add(2 * time.Second)

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)

	store.purge()
	store.mu.RLock()
	assert.Empty(t, store.items)
	store.mu.RUnlock()
}
