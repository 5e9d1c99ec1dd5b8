package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/joyability/pkg/config"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	now := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "a", "1", time.Minute))
	require.NoError(t, store.Set(ctx, "b", "2", 0))

	v, ok, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	now = now.Add(time.Hour)
	_, ok, _ = store.Get(ctx, "a")
	assert.False(t, ok, "expired key is invisible")
	_, ok, _ = store.Get(ctx, "b")
	assert.True(t, ok, "zero ttl never expires")

	store.removeExpired()
	store.mu.RLock()
	assert.Len(t, store.items, 1)
	store.mu.RUnlock()

	require.NoError(t, store.Delete(ctx, "b"))
	_, ok, _ = store.Get(ctx, "b")
	assert.False(t, ok)
}

func TestNewSelectsBackend(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{History: config.HistoryConfig{Backend: "memory"}}
	store, err := New(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
	store.Close()

	cfg.History = config.HistoryConfig{Backend: "sqlite", SQLitePath: t.TempDir() + "/kv.db"}
	store, err = New(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "k", "v", 0))
	store.Close()

	cfg.History = config.HistoryConfig{Backend: "etcd"}
	_, err = New(ctx, cfg, zap.NewNop())
	assert.Error(t, err)
}
