// Package storage holds the URL mapping record, the backend-neutral storage
// errors and the in-process backends of the registry.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by lookups that match no mapping.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned by Insert when the original URL or the short code
	// is already stored.
	ErrConflict = errors.New("data conflict")
)

// Cache is a string key/value store used to front a backend.
// Get must return ErrNotFound on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
