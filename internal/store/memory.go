package store

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process fallback used when Redis is unreachable at
// startup, and by tests. Expired entries are dropped lazily on read, so
// no background sweeper is needed. Not shared across replicas.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

// Save replaces the slot for (namespace, key) with a fresh value and TTL.
func (m *Memory) Save(ctx context.Context, namespace, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entryKey(namespace, key)] = memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Get returns the live value or ErrNotFound for absent and expired entries
// alike.
func (m *Memory) Get(ctx context.Context, namespace, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := entryKey(namespace, key)
	e, ok := m.entries[k]
	if !ok {
		return "", ErrNotFound
	}
	if time.Now().After(e.expiresAt) {
		delete(m.entries, k)
		return "", ErrNotFound
	}
	return e.value, nil
}

// Remove deletes the entry if present.
func (m *Memory) Remove(ctx context.Context, namespace, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, entryKey(namespace, key))
	return nil
}
