package circuitbreaker

import (
	"sync"
	"time"
)

// Registry holds one breaker per destination address, created lazily with
// a shared rejection limit and reset timeout.
type Registry struct {
	mutex    sync.RWMutex
	breakers map[string]*CircuitBreaker
	limit    int
	timeout  time.Duration
}

func NewRegistry(limit int, timeout time.Duration) *Registry {
	return &Registry{
		breakers: make(map[string]*CircuitBreaker),
		limit:    limit,
		timeout:  timeout,
	}
}

func (r *Registry) GetBreaker(addr string) *CircuitBreaker {
	r.mutex.RLock()
	cb, exists := r.breakers[addr]
	r.mutex.RUnlock()

	if exists {
		return cb
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	// Double-check: another goroutine may have created it
	if cb, exists = r.breakers[addr]; exists {
		return cb
	}

	cb = NewCircuitBreaker(r.limit, r.timeout)
	r.breakers[addr] = cb
	return cb
}

func (r *Registry) Reset() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.breakers = make(map[string]*CircuitBreaker)
}

func (r *Registry) Stats() map[string]State {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	stats := make(map[string]State, len(r.breakers))
	for addr, cb := range r.breakers {
		stats[addr] = cb.State()
	}
	return stats
}
