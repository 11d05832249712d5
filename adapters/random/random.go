// Package random provides Rand implementations for sampling.
package random

import (
	"math/rand/v2"
	"sync"
)

// Seeded is a seedable randomness source. The same seed reproduces the same
// shuffle and draw sequence, which tests rely on.
type Seeded struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeeded creates a source from an explicit seed.
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{r: rand.New(rand.NewPCG(seed, 0))}
}

// NewSystem creates a source seeded from the runtime's entropy.
func NewSystem() *Seeded {
	return NewSeeded(rand.Uint64())
}

// IntN returns a uniform int in [0, n).
func (s *Seeded) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// Shuffle randomizes the order of n elements via swap.
func (s *Seeded) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r.Shuffle(n, swap)
}

// Fake is a deterministic source for testing: Shuffle leaves order
// untouched and IntN replays preset values.
type Fake struct {
	mu     sync.Mutex
	values []int
	index  int
}

// NewFake creates a fake source returning the given IntN values in order.
// Once exhausted it keeps returning zero.
func NewFake(values ...int) *Fake {
	return &Fake{values: values}
}

// IntN returns the next preset value modulo n.
func (f *Fake) IntN(n int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.index >= len(f.values) {
		return 0
	}
	v := f.values[f.index]
	f.index++
	if n > 0 {
		v %= n
	}
	return v
}

// Shuffle is a no-op so test inputs keep their order.
func (f *Fake) Shuffle(n int, swap func(i, j int)) {}
