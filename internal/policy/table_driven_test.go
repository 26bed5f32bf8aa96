package policy_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vatsal717/Load-Balancer-System/internal/destination"
	"github.com/vatsal717/Load-Balancer-System/internal/policy"
	"github.com/vatsal717/Load-Balancer-System/internal/request"
)

// Demonstrate Go table-driven testing best practice using Ginkgo's DescribeTable
var _ = Describe("Table-Driven Policy Tests", func() {
	DescribeTable("All policies can be instantiated",
		func(createPol func() policy.Policy, name string) {
			pol := createPol()
			Expect(pol).NotTo(BeNil())
			Expect(pol.Name()).To(Equal(name))
		},
		Entry("Least Loaded", func() policy.Policy { return policy.NewLeastLoadedPolicy() }, "least-loaded"),
		Entry("Hash Routed", func() policy.Policy { return policy.NewHashRoutedPolicy() }, "hash-routed"),
		Entry("Round Robin", func() policy.Policy { return policy.NewRoundRobinPolicy() }, "round-robin"),
	)

	DescribeTable("All policies select from the candidate set",
		func(createPol func() policy.Policy) {
			pol := createPol()
			candidates := []*destination.Destination{
				destination.New("192.168.0.1:9000", 12),
				destination.New("192.168.0.2:9000", 20),
				destination.New("192.168.0.3:9000", 15),
			}

			selected, err := pol.Select(request.New("REQ1", "http", nil), candidates)
			Expect(err).NotTo(HaveOccurred())
			Expect(candidates).To(ContainElement(selected))
		},
		Entry("Least Loaded", func() policy.Policy { return policy.NewLeastLoadedPolicy() }),
		Entry("Hash Routed", func() policy.Policy { return policy.NewHashRoutedPolicy() }),
		Entry("Round Robin", func() policy.Policy { return policy.NewRoundRobinPolicy() }),
	)

	DescribeTable("All policies report ErrNoCandidates on an empty set",
		func(createPol func() policy.Policy) {
			pol := createPol()

			_, err := pol.Select(request.New("REQ1", "http", nil), nil)
			Expect(errors.Is(err, policy.ErrNoCandidates)).To(BeTrue())
		},
		Entry("Least Loaded", func() policy.Policy { return policy.NewLeastLoadedPolicy() }),
		Entry("Hash Routed", func() policy.Policy { return policy.NewHashRoutedPolicy() }),
		Entry("Round Robin", func() policy.Policy { return policy.NewRoundRobinPolicy() }),
	)
})
