package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidURL = errors.New("invalid url")
	ErrNotFound   = errors.New("short code not found")
)

// StorageError reports a failure of the underlying store that is not part of
// the normal dedup or collision flow.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
