package policy

import (
	"math"

	"github.com/vatsal717/Load-Balancer-System/internal/destination"
	"github.com/vatsal717/Load-Balancer-System/internal/request"
)

type leastLoadedPolicy struct{}

// NewLeastLoadedPolicy returns a policy that picks the destination with
// the fewest requests in flight. Ties go to the earliest candidate in
// enumeration order.
func NewLeastLoadedPolicy() Policy {
	return &leastLoadedPolicy{}
}

func (l *leastLoadedPolicy) Select(_ *request.Request, candidates []*destination.Destination) (*destination.Destination, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	var chosen *destination.Destination
	bestLoad := math.MaxInt

	for _, d := range candidates {
		if load := d.Load(); load < bestLoad {
			bestLoad = load
			chosen = d
		}
	}

	return chosen, nil
}

func (l *leastLoadedPolicy) Name() string {
	return "least-loaded"
}
