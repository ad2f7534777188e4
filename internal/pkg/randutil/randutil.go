package randutil

import (
	"math/rand"
	"sync"
)

// lockedSource guards an underlying source with a mutex so a *rand.Rand built
// on it can be drawn from by concurrent request handlers. math/rand sources
// are not safe for concurrent use on their own.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source64
}

func (s *lockedSource) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Int63()
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

func (s *lockedSource) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seed)
}

// NewLockedRand returns a seeded *rand.Rand that is safe to share across
// goroutines. Sequential draws match rand.New(rand.NewSource(seed)) exactly.
func NewLockedRand(seed int64) *rand.Rand {
	return rand.New(&lockedSource{src: rand.NewSource(seed).(rand.Source64)})
}
