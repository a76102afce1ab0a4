package persistence

import (
	"sync"
)

// MemoryEngine is an in-memory implementation of Engine, used in tests and
// when persistence should be a no-op.
type MemoryEngine struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryEngine creates a new in-memory persistence engine
func NewMemoryEngine() *MemoryEngine {
	return &MemoryEngine{
		entries: make(map[string]string),
	}
}

func (m *MemoryEngine) Dump(entries map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]string, len(entries))
	for key, value := range entries {
		m.entries[key] = value
	}
	return nil
}

func (m *MemoryEngine) Load() (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make(map[string]string, len(m.entries))
	for key, value := range m.entries {
		entries[key] = value
	}
	return entries, nil
}

func (m *MemoryEngine) Close() error {
	return nil
}
