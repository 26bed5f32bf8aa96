package policy

import (
	"sync"

	"github.com/vatsal717/Load-Balancer-System/internal/destination"
	"github.com/vatsal717/Load-Balancer-System/internal/request"
)

// rotation is the ordered sequence captured on a request type's first
// selection, plus the cursor into it.
type rotation struct {
	seq  []*destination.Destination
	next int
}

type roundRobinPolicy struct {
	mutex     sync.Mutex
	rotations map[string]*rotation
}

// NewRoundRobinPolicy returns a policy that cycles through a request
// type's candidates in enumeration order. The sequence is captured the
// first time a request type is selected for. Membership changes after
// that are not reflected until the policy instance is replaced.
func NewRoundRobinPolicy() Policy {
	return &roundRobinPolicy{
		rotations: make(map[string]*rotation),
	}
}

func (r *roundRobinPolicy) Select(req *request.Request, candidates []*destination.Destination) (*destination.Destination, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	rot, ok := r.rotations[req.Type]
	if !ok {
		seq := make([]*destination.Destination, len(candidates))
		copy(seq, candidates)
		rot = &rotation{seq: seq}
		r.rotations[req.Type] = rot
	}

	chosen := rot.seq[rot.next]
	rot.next = (rot.next + 1) % len(rot.seq)

	return chosen, nil
}

func (r *roundRobinPolicy) Name() string {
	return "round-robin"
}
