package cart

import (
	"context"
	"sync"
)

// memoryStore keeps carts in process memory. Used in tests and when
// Redis is not configured; carts do not survive a restart.
type memoryStore struct {
	mu    sync.RWMutex
	carts map[string]Cart
}

// NewMemoryStore creates an in-memory cart store
func NewMemoryStore() *memoryStore {
	return &memoryStore{
		carts: make(map[string]Cart),
	}
}

// Get retrieves the cart for a key, or an empty cart when none is stored
func (s *memoryStore) Get(ctx context.Context, key string) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.carts[key]
	if !ok {
		return &Cart{}, nil
	}

	// Copy items so callers cannot mutate stored state
	cart := Cart{Items: make([]Item, len(stored.Items))}
	copy(cart.Items, stored.Items)

	return &cart, nil
}

// Save persists the cart for a key
func (s *memoryStore) Save(ctx context.Context, key string, cart *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := Cart{Items: make([]Item, len(cart.Items))}
	copy(stored.Items, cart.Items)
	s.carts[key] = stored

	return nil
}

// Delete removes the stored cart for a key
func (s *memoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, key)

	return nil
}
