package cache

import (
	"sync"
	"time"
)

// DefaultCleanupInterval is how often MemoryStore drops expired keys
const DefaultCleanupInterval = 5 * time.Minute

// MemoryStore is a process-local key store with per-key expiry. It offers
// the two operations a lease needs: set-if-absent and delete-if-owned.
type MemoryStore struct {
	mu     sync.Mutex
	items  map[string]memoryItem
	now    func() time.Time
	stop   chan struct{}
	closed sync.Once
}

type memoryItem struct {
	value     string
	expiresAt time.Time
}

func (i memoryItem) live(now time.Time) bool {
	return now.Before(i.expiresAt)
}

// NewMemoryStore creates a store that sweeps expired keys every cleanupEvery.
// Call Close to stop the sweeping goroutine.
func NewMemoryStore(cleanupEvery time.Duration) *MemoryStore {
	store := &MemoryStore{
		items: make(map[string]memoryItem),
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	go store.cleanupExpired(cleanupEvery)
	return store
}

// SetNX stores value under key unless a live value is already there.
// It reports whether the value was stored.
func (ms *MemoryStore) SetNX(key, value string, ttl time.Duration) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	if item, ok := ms.items[key]; ok && item.live(now) {
		return false
	}
	ms.items[key] = memoryItem{value: value, expiresAt: now.Add(ttl)}
	return true
}

// Get returns the live value under key
func (ms *MemoryStore) Get(key string) (string, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	item, ok := ms.items[key]
	if !ok || !item.live(ms.now()) {
		return "", false
	}
	return item.value, true
}

// CompareAndDelete removes key only while it still holds value
func (ms *MemoryStore) CompareAndDelete(key, value string) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	item, ok := ms.items[key]
	if !ok || item.value != value || !item.live(ms.now()) {
		return false
	}
	delete(ms.items, key)
	return true
}

// Close stops the cleanup goroutine
func (ms *MemoryStore) Close() {
	ms.closed.Do(func() { close(ms.stop) })
}

func (ms *MemoryStore) cleanupExpired(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ms.stop:
			return
		case <-ticker.C:
			ms.mu.Lock()
			now := ms.now()
			for key, item := range ms.items {
				if !item.live(now) {
					delete(ms.items, key)
				}
			}
			ms.mu.Unlock()
		}
	}
}
