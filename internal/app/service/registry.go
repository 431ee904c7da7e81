// Package service implements the URL registry: shortening with dedup and
// collision handling, and resolution of short codes.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/metrics"
	"github.com/atinyakov/shortlink-registry/internal/storage"
)

const (
	raceRetries = 5
	raceBackoff = 5 * time.Millisecond
)

// Registry maps URLs to short codes and back. It holds no locks of its own:
// uniqueness is arbitrated by the store's Insert.
type Registry struct {
	store   Storage
	gen     CodeGenerator
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewRegistry(store Storage, gen CodeGenerator, m *metrics.Metrics, logger *zap.Logger) *Registry {
	return &Registry{
		store:   store,
		gen:     gen,
		metrics: m,
		logger:  logger,
	}
}

// Shorten returns the code bound to originalURL, creating the mapping if the
// URL has not been seen before. Concurrent calls for the same URL return the
// same code.
func (r *Registry) Shorten(ctx context.Context, originalURL string) (string, error) {
	if err := ValidateURL(originalURL); err != nil {
		return "", err
	}

	var code string
	backoff := retry.WithMaxRetries(raceRetries, retry.NewExponential(raceBackoff))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		c, created, err := r.shortenOnce(ctx, originalURL)
		if errors.Is(err, storage.ErrConflict) {
			r.metrics.InsertConflict()
			r.logger.Debug("lost insert race, retrying", zap.String("url", originalURL))
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}

		code = c
		if created {
			r.metrics.ShortenCreated()
		} else {
			r.metrics.ShortenDeduplicated()
		}
		return nil
	})

	if errors.Is(err, storage.ErrConflict) {
		return "", &StorageError{Op: "insert", Err: err}
	}
	if err != nil {
		return "", err
	}

	return code, nil
}

// shortenOnce runs one dedup lookup, candidate search and insert. A lost race
// comes back as storage.ErrConflict.
func (r *Registry) shortenOnce(ctx context.Context, originalURL string) (string, bool, error) {
	existing, err := r.store.FindByOriginal(ctx, originalURL)
	if err == nil {
		return existing.Short, false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return "", false, &StorageError{Op: "find by original", Err: err}
	}

	code, err := r.unusedCode(ctx)
	if err != nil {
		return "", false, err
	}

	_, err = r.store.Insert(ctx, storage.URLRecord{Original: originalURL, Short: code})
	if errors.Is(err, storage.ErrConflict) {
		return "", false, err
	}
	if err != nil {
		return "", false, &StorageError{Op: "insert", Err: err}
	}

	return code, true, nil
}

// unusedCode draws candidates until one is not stored yet. There is no
// attempt limit; the loop ends on success, an error or ctx cancellation.
func (r *Registry) unusedCode(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		code, err := r.gen.Generate()
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}

		_, err = r.store.FindByShort(ctx, code)
		if errors.Is(err, storage.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", &StorageError{Op: "find by short", Err: err}
		}

		r.metrics.CodeCollision()
		r.logger.Debug("code collision", zap.String("code", code))
	}
}

// Resolve returns the URL stored for shortCode. The lookup is exact and case
// sensitive.
func (r *Registry) Resolve(ctx context.Context, shortCode string) (string, error) {
	rec, err := r.store.FindByShort(ctx, shortCode)
	if errors.Is(err, storage.ErrNotFound) {
		r.metrics.Resolved(false)
		return "", ErrNotFound
	}
	if err != nil {
		return "", &StorageError{Op: "find by short", Err: err}
	}

	r.metrics.Resolved(true)
	return rec.Original, nil
}

// Stats returns the number of stored mappings.
func (r *Registry) Stats(ctx context.Context) (int, error) {
	n, err := r.store.Count(ctx)
	if err != nil {
		return 0, &StorageError{Op: "count", Err: err}
	}
	return n, nil
}

func (r *Registry) PingContext(ctx context.Context) error {
	return r.store.PingContext(ctx)
}
