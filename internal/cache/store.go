// Package cache implements the read-through cache used by the public API and
// the dashboard. The store is key-addressable only: there is no pattern or
// tag based deletion, which is why invalidation enumerates known key sets and
// falls back to a full flush.
package cache

import (
	"sync"
	"time"
)

// Producer computes a cache value on miss. Results are already-serialized
// payloads so a hit can be written to the response without recomputation.
type Producer func() ([]byte, error)

// Store is the cache contract required by the rest of the system.
type Store interface {
	// Remember returns the cached value when present and unexpired,
	// otherwise calls producer, stores the result with ttl and returns it.
	Remember(key string, ttl time.Duration, producer Producer) ([]byte, error)

	// Forget drops a single key.
	Forget(key string) error

	// Flush drops everything.
	Flush() error
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// cleanupInterval paces the background sweep of expired entries. List keys
// are derived from client-chosen query parameters, so without the sweep the
// map would only shrink on invalidation flushes.
const cleanupInterval = time.Minute

// MemoryStore is a thread-safe in-process Store with per-key TTL. Expired
// entries are removed by a background sweep goroutine; Close stops it.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
	stopCh  chan struct{}
}

// NewMemoryStore creates an empty in-memory store and starts its sweep.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}
	go s.startCleanup()
	return s
}

func (s *MemoryStore) Remember(key string, ttl time.Duration, producer Producer) ([]byte, error) {
	s.mu.RLock()
	entry, exists := s.entries[key]
	s.mu.RUnlock()

	if exists && s.now().Before(entry.expiresAt) {
		return entry.value, nil
	}

	value, err := producer()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.entries[key] = memoryEntry{value: value, expiresAt: s.now().Add(ttl)}
	s.mu.Unlock()
	return value, nil
}

func (s *MemoryStore) Forget(key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Flush() error {
	s.mu.Lock()
	s.entries = make(map[string]memoryEntry)
	s.mu.Unlock()
	return nil
}

// Close stops the background sweep goroutine.
func (s *MemoryStore) Close() error {
	close(s.stopCh)
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) startCleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// sweep removes every expired entry.
func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
}
