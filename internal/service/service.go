package service

import (
	"sync"

	"github.com/vatsal717/Load-Balancer-System/internal/destination"
)

// DestinationLookup resolves a destination address to the live destination
// object, if one is registered. The configuration registry implements it.
type DestinationLookup interface {
	Destination(addr string) (*destination.Destination, bool)
}

// Service is a named group of interchangeable destinations for one request
// category. Membership is held as destination addresses, not object
// references, so removing a destination from the registry can never leave
// a service pointing at a dead object.
type Service struct {
	name   string
	lookup DestinationLookup

	mutex   sync.RWMutex
	order   []string
	members map[string]struct{}
}

// New creates an empty Service resolving candidates through lookup.
func New(name string, lookup DestinationLookup) *Service {
	return &Service{
		name:    name,
		lookup:  lookup,
		members: make(map[string]struct{}),
	}
}

// Name returns the service name.
func (s *Service) Name() string {
	return s.name
}

// AddCandidate inserts a destination address into the candidate set.
// Adding an address that is already a member is a no-op; the return value
// reports whether the set changed.
func (s *Service) AddCandidate(addr string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.members[addr]; ok {
		return false
	}

	s.members[addr] = struct{}{}
	s.order = append(s.order, addr)
	return true
}

// RemoveCandidate removes a destination address from the candidate set.
// Removing an absent address is a no-op; the return value reports whether
// the set changed.
func (s *Service) RemoveCandidate(addr string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.members[addr]; !ok {
		return false
	}

	delete(s.members, addr)
	for i, member := range s.order {
		if member == addr {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Candidates materializes the live destinations for this service, in the
// order candidates were added. Addresses the lookup no longer resolves are
// skipped, so a destination deleted from the registry silently drops out
// of every service that referenced it.
func (s *Service) Candidates() []*destination.Destination {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	candidates := make([]*destination.Destination, 0, len(s.order))

	for _, addr := range s.order {
		if d, ok := s.lookup.Destination(addr); ok {
			candidates = append(candidates, d)
		}
	}

	return candidates
}

// CandidateAddrs returns a copy of the raw membership, in insertion order,
// including addresses that do not currently resolve.
func (s *Service) CandidateAddrs() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	addrs := make([]string, len(s.order))
	copy(addrs, s.order)
	return addrs
}
