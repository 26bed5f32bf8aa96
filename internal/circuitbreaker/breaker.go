package circuitbreaker

import (
	"sync"
	"time"
)

type State int

const (
	StateClosed   State = iota // Normal operation
	StateOpen                  // Shedding attempts
	StateHalfOpen              // Probing with one attempt
)

// CircuitBreaker tracks consecutive admission rejections for a single
// destination. A destination that keeps answering TryAccept with false is
// saturated; opening the breaker lets the dispatcher skip it for a while
// instead of burning retry attempts on it.
type CircuitBreaker struct {
	mutex          sync.Mutex
	state          State
	rejections     int
	lastRejection  time.Time
	rejectionLimit int
	resetTimeout   time.Duration
}

func NewCircuitBreaker(limit int, timeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		state:          StateClosed,
		rejectionLimit: limit,
		resetTimeout:   timeout,
	}
}

// Allow reports whether an admission attempt against this destination
// should be made at all. An open breaker lets one probe through once the
// reset timeout has elapsed.
func (cb *CircuitBreaker) Allow() bool {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	switch cb.state {
	case StateClosed:
		return true
	case StateOpen:
		if time.Since(cb.lastRejection) >= cb.resetTimeout {
			cb.state = StateHalfOpen
			return true
		}

		return false
	case StateHalfOpen:
		return true
	default:
		return true
	}
}

// RecordRejection notes that the destination refused admission. Crossing
// the rejection limit opens the breaker, as does any rejection while
// probing half-open.
func (cb *CircuitBreaker) RecordRejection() {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	cb.rejections++
	cb.lastRejection = time.Now()

	if cb.state == StateHalfOpen {
		cb.state = StateOpen
	}

	if cb.rejections >= cb.rejectionLimit {
		cb.state = StateOpen
	}
}

// RecordAccept notes a successful admission and closes the breaker.
func (cb *CircuitBreaker) RecordAccept() {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	cb.rejections = 0
	cb.state = StateClosed
}

func (cb *CircuitBreaker) State() State {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return cb.state
}

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF-OPEN"
	default:
		return "UNKNOWN"
	}
}
