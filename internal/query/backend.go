package query

import (
	"context"
	"sync"
	"time"
)

// Entry is one stored response.
type Entry struct {
	Key       string    `json:"key"`
	Resource  string    `json:"resource"`
	Payload   []byte    `json:"payload"`
	StoredAt  time.Time `json:"storedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (e Entry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Backend stores entries. Get reports found=false for a miss; expiry is
// checked by the cache, not the backend.
type Backend interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, entry Entry) error
	InvalidateResources(ctx context.Context, resources ...string) error
	InvalidateAll(ctx context.Context) error
}

// MemoryBackend keeps entries for the life of the process.
type MemoryBackend struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{entries: make(map[string]Entry)}
}

func (m *MemoryBackend) Get(_ context.Context, key string) (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, found := m.entries[key]
	return e, found, nil
}

func (m *MemoryBackend) Set(_ context.Context, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.Key] = entry
	return nil
}

func (m *MemoryBackend) InvalidateResources(_ context.Context, resources ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	drop := make(map[string]bool, len(resources))
	for _, r := range resources {
		drop[r] = true
	}
	for k, e := range m.entries {
		if drop[e.Resource] {
			delete(m.entries, k)
		}
	}
	return nil
}

func (m *MemoryBackend) InvalidateAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]Entry)
	return nil
}

func (m *MemoryBackend) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
