package destination

import (
	"sync"
)

// Destination represents a backend endpoint with a capacity threshold and
// a counter of requests currently being served.
type Destination struct {
	addr     string
	capacity int
	mutex    sync.Mutex
	load     int
}

// New creates a Destination for the given address.
// A capacity below 1 is clamped to 1.
func New(addr string, capacity int) *Destination {
	if capacity < 1 {
		capacity = 1
	}

	return &Destination{
		addr:     addr,
		capacity: capacity,
	}
}

// Addr returns the destination address. Addresses identify destinations
// throughout the routing layer.
func (d *Destination) Addr() string {
	return d.addr
}

// Capacity returns the maximum number of requests served at once.
func (d *Destination) Capacity() int {
	return d.capacity
}

// Load returns the number of requests currently being served.
func (d *Destination) Load() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.load
}

// TryAccept admits one request if there is spare capacity and reports
// whether the request was accepted. A full destination rejects with no
// state change; overload is a normal outcome, not an error.
func (d *Destination) TryAccept() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.load >= d.capacity {
		return false
	}

	d.load++
	return true
}

// Release marks one request as completed. Releasing at zero load is a
// no-op, so a duplicate release cannot drive the counter negative.
func (d *Destination) Release() {
	d.mutex.Lock()
	if d.load > 0 {
		d.load--
	}
	d.mutex.Unlock()
}
