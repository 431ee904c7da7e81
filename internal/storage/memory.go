package storage

import (
	"context"
	"errors"
	"sync"
)

// MemoryStorage keeps mappings in two indexes guarded by one lock, so both
// uniqueness constraints are checked and applied atomically on Insert.
type MemoryStorage struct {
	mu     sync.RWMutex
	lastID int64
	ltos   map[string]URLRecord
	stol   map[string]URLRecord
}

func CreateMemoryStorage() (*MemoryStorage, error) {
	return &MemoryStorage{
		ltos: make(map[string]URLRecord),
		stol: make(map[string]URLRecord),
	}, nil
}

// Insert stores the record and assigns its ID. It fails with ErrConflict if
// either the original URL or the short code is already taken.
func (m *MemoryStorage) Insert(_ context.Context, record URLRecord) (*URLRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.ltos[record.Original]; exists {
		return nil, ErrConflict
	}
	if _, exists := m.stol[record.Short]; exists {
		return nil, ErrConflict
	}

	m.lastID++
	record.ID = m.lastID

	m.ltos[record.Original] = record
	m.stol[record.Short] = record

	return &record, nil
}

func (m *MemoryStorage) FindByShort(_ context.Context, short string) (*URLRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if r, exists := m.stol[short]; exists {
		return &r, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryStorage) FindByOriginal(_ context.Context, long string) (*URLRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if r, exists := m.ltos[long]; exists {
		return &r, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryStorage) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.stol), nil
}

// PingContext reports that there is no external store to check.
func (m *MemoryStorage) PingContext(_ context.Context) error {
	return errors.ErrUnsupported
}
