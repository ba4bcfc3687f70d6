package visitor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store using in-memory storage. Suitable for tests
// and single-process deployments.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*Record
}

// NewMemoryStore creates an empty in-memory visitor store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[uuid.UUID]*Record)}
}

// FindByID retrieves a record by identifier.
func (m *MemoryStore) FindByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}

	recCopy := *rec
	return &recCopy, nil
}

// Save persists a copy of the record.
func (m *MemoryStore) Save(ctx context.Context, rec *Record) error {
	if rec == nil || rec.ID == uuid.Nil {
		return ErrNilRecord
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	recCopy := *rec
	recCopy.UpdatedAt = time.Now()
	m.records[rec.ID] = &recCopy
	return nil
}

// Decrement atomically consumes one unit of quota under the store lock.
func (m *MemoryStore) Decrement(ctx context.Context, id uuid.UUID) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}

	if rec.SessionsLeft > 0 {
		rec.SessionsLeft--
		rec.UpdatedAt = time.Now()
	}

	recCopy := *rec
	return &recCopy, nil
}
