package cache

import (
	"context"
	"sync"
	"time"

	apporder "github.com/eventnexus/backend/internal/application/order"
)

const evictInterval = 5 * time.Minute

// InMemoryIdempotencyStore implements IdempotencyStore with a plain map.
// Suitable for single-instance deployments and testing.
type InMemoryIdempotencyStore struct {
	mu        sync.RWMutex
	deadlines map[string]time.Time
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewInMemoryIdempotencyStore creates an in-memory idempotency store and
// starts a background goroutine that evicts expired delivery IDs.
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	store := &InMemoryIdempotencyStore{
		deadlines: make(map[string]time.Time),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go store.evictLoop()
	return store
}

// MarkProcessed marks a delivery as processed with a TTL. Returns true if it
// was newly marked, false if it was already processed.
func (s *InMemoryIdempotencyStore) MarkProcessed(_ context.Context, deliveryID string, ttl time.Duration) (bool, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if deadline, seen := s.deadlines[deliveryID]; seen && now.Before(deadline) {
		return false, nil
	}
	s.deadlines[deliveryID] = now.Add(ttl)
	return true, nil
}

// Forget drops a delivery ID so a later MarkProcessed succeeds again.
func (s *InMemoryIdempotencyStore) Forget(_ context.Context, deliveryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.deadlines, deliveryID)
	return nil
}

// Size returns the number of tracked delivery IDs, expired or not.
func (s *InMemoryIdempotencyStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.deadlines)
}

// Close stops the eviction goroutine. Safe to call multiple times.
func (s *InMemoryIdempotencyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		<-s.done
	})
	return nil
}

func (s *InMemoryIdempotencyStore) evictLoop() {
	defer close(s.done)

	ticker := time.NewTicker(evictInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, deadline := range s.deadlines {
				if now.After(deadline) {
					delete(s.deadlines, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

var _ apporder.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
