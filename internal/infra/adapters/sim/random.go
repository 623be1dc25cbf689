package sim

import (
	"math/rand"
	"sync"
	"time"

	"sonix-engine/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.RandomSource = (*LockedRand)(nil)

// LockedRand is the production randomness source. math/rand.Rand is not
// safe for concurrent use, so draws are serialized with a mutex.
type LockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewLockedRand() *LockedRand {
	return &LockedRand{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (r *LockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Float64()
}

func (r *LockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}
