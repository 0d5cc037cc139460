package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count   int64
	resetAt time.Time
}

// MemoryStore keeps counters in process memory. Expired windows are removed
// by [MemoryStore.Cleanup], normally called from a periodic worker.
type MemoryStore struct {
	mu       sync.Mutex
	requests map[string]*window
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{requests: make(map[string]*window)}
}

func (m *MemoryStore) Increment(_ context.Context, key string, length time.Duration, now time.Time) (int64, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.requests[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(length)}
		m.requests[key] = w
	}
	w.count++

	return w.count, w.resetAt, nil
}

// Cleanup drops every window that ended before now and returns how many were
// removed.
func (m *MemoryStore) Cleanup(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, w := range m.requests {
		if !now.Before(w.resetAt) {
			delete(m.requests, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// DeleteExpired is [MemoryStore.Cleanup] in the shape the Postgres counter
// store exposes, so one janitor serves both.
func (m *MemoryStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	return int64(m.Cleanup(now)), nil
}
