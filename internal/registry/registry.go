package registry

import (
	"sort"
	"sync"

	"github.com/vatsal717/Load-Balancer-System/internal/destination"
	"github.com/vatsal717/Load-Balancer-System/internal/service"
)

// Registry owns every destination and service of the routing layer.
// Services reference destinations by address and routers reference
// services by name; the registry is the only place holding the objects,
// so removing an entry invalidates all handles to it at once.
type Registry struct {
	mutex        sync.RWMutex
	destinations map[string]*destination.Destination
	services     map[string]*service.Service
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		destinations: make(map[string]*destination.Destination),
		services:     make(map[string]*service.Service),
	}
}

// AddDestination registers a destination under its address. A destination
// with the same address keeps its existing entry (and live load counter);
// the return value reports whether the registry changed.
func (r *Registry) AddDestination(d *destination.Destination) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.destinations[d.Addr()]; exists {
		return false
	}

	r.destinations[d.Addr()] = d
	return true
}

// Destination resolves an address to its registered destination.
func (r *Registry) Destination(addr string) (*destination.Destination, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	d, ok := r.destinations[addr]
	return d, ok
}

// RemoveDestination deletes a destination. Services referencing the
// address keep their membership entry but stop resolving it.
func (r *Registry) RemoveDestination(addr string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.destinations[addr]; !exists {
		return false
	}

	delete(r.destinations, addr)
	return true
}

// Destinations returns all registered destinations sorted by address.
func (r *Registry) Destinations() []*destination.Destination {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	all := make([]*destination.Destination, 0, len(r.destinations))
	for _, d := range r.destinations {
		all = append(all, d)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Addr() < all[j].Addr() })
	return all
}

// AddService returns the service registered under name, creating it if
// necessary. The created service resolves its candidates through this
// registry.
func (r *Registry) AddService(name string) *service.Service {
	r.mutex.RLock()
	svc, exists := r.services[name]
	r.mutex.RUnlock()

	if exists {
		return svc
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	// Double-check: another goroutine may have created it
	if svc, exists = r.services[name]; exists {
		return svc
	}

	svc = service.New(name, r)
	r.services[name] = svc
	return svc
}

// RemoveService deletes a service. Routes bound to the name keep their
// binding but stop resolving until a service is registered under the
// name again.
func (r *Registry) RemoveService(name string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.services[name]; !exists {
		return false
	}

	delete(r.services, name)
	return true
}

// Service resolves a name to its registered service.
func (r *Registry) Service(name string) (*service.Service, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	svc, ok := r.services[name]
	return svc, ok
}

// Services returns all registered services sorted by name.
func (r *Registry) Services() []*service.Service {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	all := make([]*service.Service, 0, len(r.services))
	for _, svc := range r.services {
		all = append(all, svc)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Name() < all[j].Name() })
	return all
}
