package router

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vatsal717/Load-Balancer-System/internal/destination"
	"github.com/vatsal717/Load-Balancer-System/internal/policy"
	"github.com/vatsal717/Load-Balancer-System/internal/request"
	"github.com/vatsal717/Load-Balancer-System/internal/service"
)

// ErrUnknownRequestType is returned when a request's type has no service
// bound to it, or the bound service no longer exists.
var ErrUnknownRequestType = errors.New("no service registered for request type")

// ServiceLookup resolves service names to live services. The registry
// implements it.
type ServiceLookup interface {
	Service(name string) (*service.Service, bool)
}

// Router binds request types to services and delegates destination
// selection to its policy. Bindings hold the service name, not the
// service itself, so a service rebuilt under the same name is picked up
// on the next route.
type Router struct {
	policy   policy.Policy
	services ServiceLookup

	mutex  sync.RWMutex
	routes map[string]string
}

func New(pol policy.Policy, services ServiceLookup) *Router {
	return &Router{
		policy:   pol,
		services: services,
		routes:   make(map[string]string),
	}
}

// Policy returns the selection policy this router delegates to.
func (r *Router) Policy() policy.Policy {
	return r.policy
}

// RegisterService binds a request type to a service name. Re-registering
// a type replaces its previous binding.
func (r *Router) RegisterService(requestType, serviceName string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.routes[requestType] = serviceName
}

// UnregisterService removes a request type's binding. Unknown types are
// a no-op.
func (r *Router) UnregisterService(requestType string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.routes, requestType)
}

// ResolveCandidates returns the destinations of the service bound to the
// request type. A missing binding and a binding to a vanished service
// both report ErrUnknownRequestType.
func (r *Router) ResolveCandidates(requestType string) ([]*destination.Destination, error) {
	r.mutex.RLock()
	serviceName, ok := r.routes[requestType]
	r.mutex.RUnlock()

	if !ok {
		return nil, fmt.Errorf("request type %q: %w", requestType, ErrUnknownRequestType)
	}

	svc, ok := r.services.Service(serviceName)
	if !ok {
		return nil, fmt.Errorf("request type %q: %w", requestType, ErrUnknownRequestType)
	}

	return svc.Candidates(), nil
}

// Route resolves the request's candidate set and asks the policy to pick
// from it. Routing decides only; admitting the request at the chosen
// destination is the caller's next step.
func (r *Router) Route(req *request.Request) (*destination.Destination, error) {
	candidates, err := r.ResolveCandidates(req.Type)
	if err != nil {
		return nil, err
	}

	return r.policy.Select(req, candidates)
}
