// Package keylock provides per-key mutual exclusion over a fixed set of
// mutex stripes. Keys are mapped to stripes with FNV-1a, so two keys may
// share a stripe but one key always maps to the same one.
package keylock

import (
	"hash/fnv"
	"sync"
)

const defaultStripes = 64

// Striped serializes critical sections per key.
type Striped struct {
	stripes []sync.Mutex
}

// New creates a Striped lock with n stripes.
// If n <= 0, defaultStripes is used.
func New(n int) *Striped {
	if n <= 0 {
		n = defaultStripes
	}
	return &Striped{stripes: make([]sync.Mutex, n)}
}

// Lock acquires the stripe for key and returns its release function.
func (s *Striped) Lock(key string) (unlock func()) {
	m := &s.stripes[s.stripeIndex(key)]
	m.Lock()
	return m.Unlock
}

// Do runs fn while holding the stripe for key.
func (s *Striped) Do(key string, fn func() error) error {
	unlock := s.Lock(key)
	defer unlock()
	return fn()
}

// stripeIndex maps a key deterministically to a stripe index.
func (s *Striped) stripeIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(s.stripes)))
}
