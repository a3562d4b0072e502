package cache

import (
	"context"
	"testing"
	"time"

	"github.com/eventnexus/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInMemoryIdempotencyStoreMarkProcessed(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	first, err := store.MarkProcessed(ctx, "evt_123", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	replay, err := store.MarkProcessed(ctx, "evt_123", time.Hour)
	require.NoError(t, err)
	assert.False(t, replay)

	other, err := store.MarkProcessed(ctx, "evt_456", time.Hour)
	require.NoError(t, err)
	assert.True(t, other)
	assert.Equal(t, 2, store.Size())
}

func TestInMemoryIdempotencyStoreForget(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	first, err := store.MarkProcessed(ctx, "evt_retry", time.Hour)
	require.NoError(t, err)
	require.True(t, first)

	require.NoError(t, store.Forget(ctx, "evt_retry"))

	again, err := store.MarkProcessed(ctx, "evt_retry", time.Hour)
	require.NoError(t, err)
	assert.True(t, again)

	assert.NoError(t, store.Forget(ctx, "evt_never_marked"))
}

func TestInMemoryIdempotencyStoreTTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	marked, err := store.MarkProcessed(ctx, "evt_short", 10*time.Millisecond)
	require.NoError(t, err)
	require.True(t, marked)

	time.Sleep(20 * time.Millisecond)

	again, err := store.MarkProcessed(ctx, "evt_short", time.Hour)
	require.NoError(t, err)
	assert.True(t, again)
}

func TestInMemoryIdempotencyStoreClose(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}

func TestNewIdempotencyStoreFallsBack(t *testing.T) {
	t.Run("disabled redis uses the in-process store", func(t *testing.T) {
		store := NewIdempotencyStore(config.RedisConfig{Enabled: false}, zap.NewNop())
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})

	t.Run("unreachable redis falls back", func(t *testing.T) {
		cfg := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}
		store := NewIdempotencyStore(cfg, zap.NewNop())
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})
}
