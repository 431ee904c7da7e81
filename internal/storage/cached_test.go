package storage_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/storage"
)

type mapCache struct {
	mu     sync.Mutex
	values map[string]string
	getErr error
	gets   int
}

func newMapCache() *mapCache {
	return &mapCache{values: make(map[string]string)}
}

func (c *mapCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.getErr != nil {
		return "", c.getErr
	}
	v, ok := c.values[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (c *mapCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func TestCachedStorage_InsertPopulatesCache(t *testing.T) {
	mem, _ := storage.CreateMemoryStorage()
	cache := newMapCache()
	s := storage.NewCachedStorage(mem, cache, time.Hour, zap.NewNop())
	ctx := context.Background()

	_, err := s.Insert(ctx, storage.URLRecord{Original: "https://example.com", Short: "Ab3dE9"})
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", cache.values["short:Ab3dE9"])
	assert.Equal(t, "Ab3dE9", cache.values["orig:https://example.com"])

	r, err := s.FindByShort(ctx, "Ab3dE9")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", r.Original)
}

func TestCachedStorage_MissFallsThroughAndFills(t *testing.T) {
	mem, _ := storage.CreateMemoryStorage()
	ctx := context.Background()
	_, err := mem.Insert(ctx, storage.URLRecord{Original: "https://example.com", Short: "Ab3dE9"})
	require.NoError(t, err)

	cache := newMapCache()
	s := storage.NewCachedStorage(mem, cache, time.Hour, zap.NewNop())

	r, err := s.FindByOriginal(ctx, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ab3dE9", r.Short)
	assert.Equal(t, "https://example.com", cache.values["short:Ab3dE9"])
}

func TestCachedStorage_AbsentIsNotCached(t *testing.T) {
	mem, _ := storage.CreateMemoryStorage()
	cache := newMapCache()
	s := storage.NewCachedStorage(mem, cache, time.Hour, zap.NewNop())
	ctx := context.Background()

	_, err := s.FindByShort(ctx, "Ab3dE9")
	require.ErrorIs(t, err, storage.ErrNotFound)
	assert.Empty(t, cache.values)

	_, err = s.Insert(ctx, storage.URLRecord{Original: "https://example.com", Short: "Ab3dE9"})
	require.NoError(t, err)

	r, err := s.FindByShort(ctx, "Ab3dE9")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", r.Original)
}

func TestCachedStorage_CacheFailureUsesBackend(t *testing.T) {
	mem, _ := storage.CreateMemoryStorage()
	ctx := context.Background()
	_, err := mem.Insert(ctx, storage.URLRecord{Original: "https://example.com", Short: "Ab3dE9"})
	require.NoError(t, err)

	cache := newMapCache()
	cache.getErr = errors.New("connection refused")
	s := storage.NewCachedStorage(mem, cache, time.Hour, zap.NewNop())

	r, err := s.FindByShort(ctx, "Ab3dE9")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", r.Original)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
