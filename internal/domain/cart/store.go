package cart

import (
	"context"
	"sync"
)

// Store loads and saves session carts. Implementations decide durability:
// the in-memory store lives for the process, the Postgres store survives
// restarts. Load never fails on a missing session; it returns a fresh cart.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
}

// MemoryStore is a process-local Store guarded for concurrent HTTP access.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]*Cart)}
}

// Load returns a copy of the session's cart, or a fresh empty cart when the
// session has none yet.
func (s *MemoryStore) Load(_ context.Context, sessionID string) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.carts[sessionID]; ok {
		return c.Clone(), nil
	}
	return New(sessionID), nil
}

// Save stores a copy of the cart under its session ID.
func (s *MemoryStore) Save(_ context.Context, c *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[c.SessionID] = c.Clone()
	return nil
}
