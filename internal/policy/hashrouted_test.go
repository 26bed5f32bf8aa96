package policy_test

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vatsal717/Load-Balancer-System/internal/destination"
	"github.com/vatsal717/Load-Balancer-System/internal/policy"
	"github.com/vatsal717/Load-Balancer-System/internal/request"
)

var _ = Describe("HashRouted", func() {
	var (
		pol        policy.Policy
		candidates []*destination.Destination
	)

	BeforeEach(func() {
		pol = policy.NewHashRoutedPolicy()
		candidates = []*destination.Destination{
			destination.New("192.168.0.1:9000", 12),
			destination.New("192.168.0.2:9000", 20),
			destination.New("192.168.0.3:9000", 15),
		}
	})

	Describe("Select", func() {
		It("should map the same request id to the same destination", func() {
			first, err := pol.Select(request.New("REQ42", "http", nil), candidates)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 10; i++ {
				again, err := pol.Select(request.New("REQ42", "http", nil), candidates)
				Expect(err).NotTo(HaveOccurred())
				Expect(again).To(Equal(first))
			}
		})

		It("should not depend on the order of the candidate slice", func() {
			first, err := pol.Select(request.New("REQ42", "http", nil), candidates)
			Expect(err).NotTo(HaveOccurred())

			reversed := []*destination.Destination{candidates[2], candidates[1], candidates[0]}
			again, err := pol.Select(request.New("REQ42", "http", nil), reversed)
			Expect(err).NotTo(HaveOccurred())
			Expect(again).To(Equal(first))
		})

		It("should ignore load when picking", func() {
			first, err := pol.Select(request.New("REQ42", "http", nil), candidates)
			Expect(err).NotTo(HaveOccurred())
			Expect(first.TryAccept()).To(BeTrue())

			again, err := pol.Select(request.New("REQ42", "http", nil), candidates)
			Expect(err).NotTo(HaveOccurred())
			Expect(again).To(Equal(first))
		})

		It("should spread distinct ids across destinations", func() {
			seen := make(map[string]bool)

			for i := 0; i < 50; i++ {
				selected, err := pol.Select(request.New(fmt.Sprintf("REQ%d", i), "http", nil), candidates)
				Expect(err).NotTo(HaveOccurred())
				seen[selected.Addr()] = true
			}

			Expect(len(seen)).To(BeNumerically(">=", 2))
		})

		It("should fail with ErrNoCandidates for an empty set", func() {
			_, err := pol.Select(request.New("REQ42", "http", nil), nil)
			Expect(errors.Is(err, policy.ErrNoCandidates)).To(BeTrue())
		})
	})

	Describe("Name", func() {
		It("should report hash-routed", func() {
			Expect(pol.Name()).To(Equal("hash-routed"))
		})
	})
})
