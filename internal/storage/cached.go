package storage

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

const (
	shortKeyPrefix    = "short:"
	originalKeyPrefix = "orig:"
)

// Backend is the set of operations CachedStorage forwards to.
type Backend interface {
	Insert(context.Context, URLRecord) (*URLRecord, error)
	FindByShort(context.Context, string) (*URLRecord, error)
	FindByOriginal(context.Context, string) (*URLRecord, error)
	Count(context.Context) (int, error)
	PingContext(context.Context) error
}

// CachedStorage puts a Cache in front of a Backend.
//
// Only found mappings are cached and they are written right after a
// successful Insert. Mappings never change once stored, so a cached entry can
// not go stale and a code inserted by this process is never reported missing.
// Cache failures are logged and the call falls through to the backend.
type CachedStorage struct {
	next   Backend
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedStorage(next Backend, cache Cache, ttl time.Duration, logger *zap.Logger) *CachedStorage {
	return &CachedStorage{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedStorage) Insert(ctx context.Context, record URLRecord) (*URLRecord, error) {
	r, err := c.next.Insert(ctx, record)
	if err != nil {
		return nil, err
	}

	c.remember(ctx, *r)
	return r, nil
}

func (c *CachedStorage) FindByShort(ctx context.Context, short string) (*URLRecord, error) {
	original, err := c.cache.Get(ctx, shortKeyPrefix+short)
	if err == nil {
		return &URLRecord{Original: original, Short: short}, nil
	}
	c.logMiss(err, short)

	r, err := c.next.FindByShort(ctx, short)
	if err != nil {
		return nil, err
	}

	c.remember(ctx, *r)
	return r, nil
}

func (c *CachedStorage) FindByOriginal(ctx context.Context, original string) (*URLRecord, error) {
	short, err := c.cache.Get(ctx, originalKeyPrefix+original)
	if err == nil {
		return &URLRecord{Original: original, Short: short}, nil
	}
	c.logMiss(err, original)

	r, err := c.next.FindByOriginal(ctx, original)
	if err != nil {
		return nil, err
	}

	c.remember(ctx, *r)
	return r, nil
}

func (c *CachedStorage) Count(ctx context.Context) (int, error) {
	return c.next.Count(ctx)
}

func (c *CachedStorage) PingContext(ctx context.Context) error {
	return c.next.PingContext(ctx)
}

func (c *CachedStorage) remember(ctx context.Context, r URLRecord) {
	if err := c.cache.Set(ctx, shortKeyPrefix+r.Short, r.Original, c.ttl); err != nil {
		c.logger.Warn("cache set failed", zap.String("short", r.Short), zap.Error(err))
	}
	if err := c.cache.Set(ctx, originalKeyPrefix+r.Original, r.Short, c.ttl); err != nil {
		c.logger.Warn("cache set failed", zap.String("original", r.Original), zap.Error(err))
	}
}

func (c *CachedStorage) logMiss(err error, key string) {
	if !errors.Is(err, ErrNotFound) {
		c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	}
}
