// Package session provides session-scoped key-value storage for visitor
// state. Keys live for the session TTL and vanish with it.
package session

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL is how long session keys live without being rewritten.
const DefaultTTL = 30 * time.Minute

// =============================================================================
// Store Interface
// =============================================================================

// Store is the session storage capability. A missing key reads as the empty
// string, not an error; errors are reserved for the backing store being
// unreachable.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// =============================================================================
// In-Memory Store
// =============================================================================

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore implements Store with a mutex-guarded map. Used in tests and
// single-node development; entries expire lazily on read.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

// Get returns the value for key, or empty string if absent or expired.
func (m *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", nil
	}
	if time.Now().After(e.expiresAt) {
		delete(m.entries, key)
		return "", nil
	}
	return e.value, nil
}

// Set stores value under key, refreshing its TTL.
func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(m.ttl),
	}
	return nil
}

// Purge drops expired entries. Callers may run it periodically; correctness
// does not depend on it.
func (m *MemoryStore) Purge() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for k, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, k)
		}
	}
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	return nil
}
