package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	id, err := store.Create(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	userID, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)

	require.NoError(t, store.Destroy(ctx, id))
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	// Destroy is idempotent.
	require.NoError(t, store.Destroy(ctx, id))
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	current := time.Now()
	store.now = func() time.Time { return current }

	id, err := store.Create(ctx, 7)
	require.NoError(t, err)

	// Activity within the window slides the deadline.
	current = current.Add(45 * time.Minute)
	_, err = store.Get(ctx, id)
	require.NoError(t, err)

	current = current.Add(45 * time.Minute)
	_, err = store.Get(ctx, id)
	require.NoError(t, err, "session refreshed by activity should still be live")

	current = current.Add(2 * time.Hour)
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDistinctIDs(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	first, err := store.Create(ctx, 1)
	require.NoError(t, err)
	second, err := store.Create(ctx, 1)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
