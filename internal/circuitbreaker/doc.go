// Package circuitbreaker implements the circuit breaker pattern over
// admission rejections.
//
// A breaker guards one destination. Repeated TryAccept rejections mean
// the destination is saturated; opening the breaker lets the dispatcher
// skip it for a while instead of spending retry attempts on it. It has
// three states:
//
//   - CLOSED: Normal operation, attempts pass through
//   - OPEN: Destination saturated, attempts shed
//   - HALF-OPEN: Probing whether capacity is back
//
// Usage:
//
//	registry := circuitbreaker.NewRegistry(5, 30*time.Second)
//	cb := registry.GetBreaker("192.168.0.1:9000")
//	if cb.Allow() {
//	    if dest.TryAccept() {
//	        cb.RecordAccept()
//	    } else {
//	        cb.RecordRejection()
//	    }
//	}
package circuitbreaker
