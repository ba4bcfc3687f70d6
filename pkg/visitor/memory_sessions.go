package visitor

import "sync"

// MemorySessions is a concurrency-safe in-memory SessionStore. Each instance
// represents one browser session; the caller is responsible for keying
// instances per session (see cmd/guestpass-demo for an example).
type MemorySessions struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemorySessions creates an empty session store.
func NewMemorySessions() *MemorySessions {
	return &MemorySessions{values: make(map[string]string)}
}

func (m *MemorySessions) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemorySessions) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *MemorySessions) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}
