package arena

import (
	"math"
	"sync"
)

// Pool is a thread-safe free-list of general-purpose Allocators, one per
// worker. A worker acquires an Allocator, fills it while parsing one
// program, and releases it back to the pool once the program (and
// everything derived from it) is no longer needed.
//
// Pool exclusively owns arenas that are not currently borrowed: a caller
// borrows one, fills it, and returns it. The free-list itself is guarded
// by a mutex, mirroring the RWMutex-guarded free-list gosonata's
// pkg/cache.Cache uses for its LRU entries.
type Pool struct {
	mu   sync.Mutex
	free []*Allocator
}

// NewPool creates an empty Pool. Arenas are created on demand rather than
// pre-allocated: Acquire pops a free one or constructs a new one.
func NewPool() *Pool {
	return &Pool{}
}

// Acquire pops an Allocator from the free-list, or constructs a new one
// if the pool is empty.
func (p *Pool) Acquire() *Allocator {
	p.mu.Lock()
	n := len(p.free)
	if n == 0 {
		p.mu.Unlock()
		return New()
	}
	a := p.free[n-1]
	p.free[n-1] = nil
	p.free = p.free[:n-1]
	p.mu.Unlock()
	return a
}

// Release resets arena's cursor and returns it to the free-list for
// reuse. The mutex is never held across the reset itself , only across the
// free-list mutation.
func (p *Pool) Release(a *Allocator) {
	a.Reset()
	p.mu.Lock()
	p.free = append(p.free, a)
	p.mu.Unlock()
}

// Len reports how many idle arenas are currently held by the pool.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// MaxAllocatorID is the largest id nextID can hand out before the
// monotonic counter would wrap.
const MaxAllocatorID = math.MaxUint32 - 1
