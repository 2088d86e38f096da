package presence

import (
	"context"
	"sync"
	"time"
)

// MemoryTracker is an in-memory Tracker for development and testing.
// Connection marks expire after the configured TTL, mirroring the Redis
// implementation's behavior.
type MemoryTracker struct {
	ttl     time.Duration
	entries map[string]time.Time
	mu      sync.RWMutex
}

// NewMemoryTracker creates an in-memory presence tracker. A non-positive TTL
// means marks never expire.
func NewMemoryTracker(ttl time.Duration) *MemoryTracker {
	return &MemoryTracker{
		ttl:     ttl,
		entries: make(map[string]time.Time),
	}
}

func (t *MemoryTracker) Connect(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrEmptyUserID
	}

	t.mu.Lock()
	t.entries[userID] = time.Now()
	t.mu.Unlock()
	return nil
}

func (t *MemoryTracker) Disconnect(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrEmptyUserID
	}

	t.mu.Lock()
	delete(t.entries, userID)
	t.mu.Unlock()
	return nil
}

func (t *MemoryTracker) IsOnline(ctx context.Context, userID string) bool {
	if userID == "" {
		return false
	}

	t.mu.RLock()
	at, ok := t.entries[userID]
	t.mu.RUnlock()

	if !ok {
		return false
	}
	if t.ttl > 0 && time.Since(at) > t.ttl {
		// Expired marks are purged lazily on lookup.
		t.mu.Lock()
		if cur, ok := t.entries[userID]; ok && cur.Equal(at) {
			delete(t.entries, userID)
		}
		t.mu.Unlock()
		return false
	}
	return true
}
