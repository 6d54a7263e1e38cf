package cache

import (
	"context"
	"sync"
	"time"

	"github.com/pukadigital/content-hub/internal/models"
)

type memoryEntry struct {
	posts     []models.Post
	expiresAt time.Time
}

// Memory is an in-process Store guarded by a RWMutex. Concurrent misses
// for the same key may each trigger a fetch upstream; that is tolerated.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time

	hits    int64
	misses  int64
	expired int64
}

// NewMemory creates a memory cache with the given revalidation window.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]models.Post, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		m.misses++
		return nil, false
	}
	if m.now().After(entry.expiresAt) {
		delete(m.entries, key)
		m.expired++
		m.misses++
		return nil, false
	}

	m.hits++
	// Copy so callers can't mutate the cached slice.
	posts := make([]models.Post, len(entry.posts))
	copy(posts, entry.posts)
	return posts, true
}

func (m *Memory) Set(_ context.Context, key string, posts []models.Post) {
	stored := make([]models.Post, len(posts))
	copy(stored, posts)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{
		posts:     stored,
		expiresAt: m.now().Add(m.ttl),
	}
}

func (m *Memory) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Stats{
		Hits:    m.hits,
		Misses:  m.misses,
		Expired: m.expired,
		Entries: len(m.entries),
	}
}
