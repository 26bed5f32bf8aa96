package policy

import (
	"hash/crc32"
	"sort"

	"github.com/vatsal717/Load-Balancer-System/internal/destination"
	"github.com/vatsal717/Load-Balancer-System/internal/request"
)

type hashRoutedPolicy struct{}

// NewHashRoutedPolicy returns a policy that maps a request id to a fixed
// destination for as long as the candidate set is unchanged. Candidates
// are enumerated in address order so the mapping does not depend on how
// the caller happens to order the set. Changing membership may remap any
// id; no continuity is promised across set changes.
func NewHashRoutedPolicy() Policy {
	return &hashRoutedPolicy{}
}

func (h *hashRoutedPolicy) Select(req *request.Request, candidates []*destination.Destination) (*destination.Destination, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	ordered := make([]*destination.Destination, len(candidates))
	copy(ordered, candidates)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Addr() < ordered[j].Addr()
	})

	hash := crc32.ChecksumIEEE([]byte(req.ID))
	return ordered[hash%uint32(len(ordered))], nil
}

func (h *hashRoutedPolicy) Name() string {
	return "hash-routed"
}
