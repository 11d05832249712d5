package memory

import (
	"context"
	"sync"

	"github.com/minsu-kang/steamrec/domain/cooccur"
	"github.com/minsu-kang/steamrec/ports"
)

// CooccurrenceStore is an in-memory implementation of
// ports.CooccurrenceStore.
type CooccurrenceStore struct {
	mu     sync.RWMutex
	counts map[cooccur.PairKey]int64
}

// NewCooccurrenceStore creates an empty in-memory co-occurrence store.
func NewCooccurrenceStore() *CooccurrenceStore {
	return &CooccurrenceStore{counts: make(map[cooccur.PairKey]int64)}
}

// Add records a co-occurrence count for a pair (for seeding tests).
func (s *CooccurrenceStore) Add(a, b string, n int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[cooccur.NewPairKey(a, b)] = n
}

// Count returns the co-occurrence count for a pair.
func (s *CooccurrenceStore) Count(ctx context.Context, pair cooccur.PairKey) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.counts[pair]
	return n, ok, nil
}

// Ensure interface compliance.
var _ ports.CooccurrenceStore = (*CooccurrenceStore)(nil)
