// Package memory provides in-memory implementations of storage ports,
// used in tests and single-process deployments.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/minsu-kang/steamrec/ports"
)

// ExpiryStore is an in-memory implementation of ports.ExpiryStore.
// Expiry is evaluated against the injected clock, so tests can advance time
// without sleeping.
type ExpiryStore struct {
	clock ports.Clock

	mu      sync.RWMutex
	entries map[string]entry
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

// NewExpiryStore creates a new in-memory expiry store.
func NewExpiryStore(clock ports.Clock) *ExpiryStore {
	return &ExpiryStore{
		clock:   clock,
		entries: make(map[string]entry),
	}
}

// Get retrieves a value. Expired entries behave as absent.
func (s *ExpiryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || !s.clock.Now().Before(e.expiresAt) {
		return nil, false, nil
	}
	return e.value, true, nil
}

// SetWithTTL stores a value that expires after ttl.
func (s *ExpiryStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: value, expiresAt: s.clock.Now().Add(ttl)}
	return nil
}

// Has reports whether a live entry exists.
func (s *ExpiryStore) Has(ctx context.Context, key string) (bool, error) {
	_, ok, err := s.Get(ctx, key)
	return ok, err
}

// Sweep removes expired entries. Optional housekeeping; reads already treat
// expired entries as absent.
func (s *ExpiryStore) Sweep() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
		}
	}
}

// Len returns the number of stored entries, expired included (for testing).
func (s *ExpiryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Ensure interface compliance.
var _ ports.ExpiryStore = (*ExpiryStore)(nil)
