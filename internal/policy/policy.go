package policy

import (
	"errors"

	"github.com/vatsal717/Load-Balancer-System/internal/destination"
	"github.com/vatsal717/Load-Balancer-System/internal/request"
)

// ErrNoCandidates is returned when a policy is asked to select from an
// empty candidate set.
var ErrNoCandidates = errors.New("no candidates available")

// Policy picks one destination from a request's candidate set.
//
// Policies only decide. They never call TryAccept and never touch load
// state, so a caller whose pick rejects the request must re-invoke
// selection or fail the request itself.
type Policy interface {
	Select(req *request.Request, candidates []*destination.Destination) (*destination.Destination, error)
	Name() string
}
