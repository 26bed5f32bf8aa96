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

var _ = Describe("RoundRobin", func() {
	var (
		pol        policy.Policy
		candidates []*destination.Destination
	)

	BeforeEach(func() {
		pol = policy.NewRoundRobinPolicy()
		candidates = []*destination.Destination{
			destination.New("192.168.0.1:9000", 12),
			destination.New("192.168.0.2:9000", 20),
			destination.New("192.168.0.3:9000", 15),
		}
	})

	Describe("Select", func() {
		It("should cycle through candidates in order", func() {
			expected := []*destination.Destination{
				candidates[0], candidates[1], candidates[2],
				candidates[0], candidates[1], candidates[2],
			}

			for i, want := range expected {
				selected, err := pol.Select(request.New(fmt.Sprintf("REQ%d", i+1), "http", nil), candidates)
				Expect(err).NotTo(HaveOccurred())
				Expect(selected).To(Equal(want))
			}
		})

		It("should distribute selections evenly", func() {
			counts := make(map[string]int)

			for i := 0; i < 300; i++ {
				selected, err := pol.Select(request.New(fmt.Sprintf("REQ%d", i), "http", nil), candidates)
				Expect(err).NotTo(HaveOccurred())
				counts[selected.Addr()]++
			}

			Expect(counts["192.168.0.1:9000"]).To(Equal(100))
			Expect(counts["192.168.0.2:9000"]).To(Equal(100))
			Expect(counts["192.168.0.3:9000"]).To(Equal(100))
		})

		It("should keep the sequence captured on first selection", func() {
			_, err := pol.Select(request.New("REQ1", "http", nil), candidates[:2])
			Expect(err).NotTo(HaveOccurred())

			// A destination added after the rotation was captured is not
			// part of it until the policy instance is replaced.
			for i := 0; i < 4; i++ {
				selected, err := pol.Select(request.New("REQ2", "http", nil), candidates)
				Expect(err).NotTo(HaveOccurred())
				Expect(selected).NotTo(Equal(candidates[2]))
			}
		})

		It("should capture the current membership for a fresh request type", func() {
			_, err := pol.Select(request.New("REQ1", "http", nil), candidates[:2])
			Expect(err).NotTo(HaveOccurred())

			seen := make(map[string]bool)
			for i := 0; i < 3; i++ {
				selected, err := pol.Select(request.New("REQ2", "grpc", nil), candidates)
				Expect(err).NotTo(HaveOccurred())
				seen[selected.Addr()] = true
			}
			Expect(seen).To(HaveKey(candidates[2].Addr()))
		})

		It("should keep an independent cursor per request type", func() {
			first, err := pol.Select(request.New("REQ1", "http", nil), candidates)
			Expect(err).NotTo(HaveOccurred())
			Expect(first).To(Equal(candidates[0]))

			other, err := pol.Select(request.New("REQ2", "grpc", nil), candidates)
			Expect(err).NotTo(HaveOccurred())
			Expect(other).To(Equal(candidates[0]))

			next, err := pol.Select(request.New("REQ3", "http", nil), candidates)
			Expect(err).NotTo(HaveOccurred())
			Expect(next).To(Equal(candidates[1]))
		})

		It("should fail with ErrNoCandidates for an empty set", func() {
			_, err := pol.Select(request.New("REQ1", "http", nil), nil)
			Expect(errors.Is(err, policy.ErrNoCandidates)).To(BeTrue())
		})

		It("should fail for an empty set even after a rotation exists", func() {
			_, err := pol.Select(request.New("REQ1", "http", nil), candidates)
			Expect(err).NotTo(HaveOccurred())

			_, err = pol.Select(request.New("REQ2", "http", nil), nil)
			Expect(errors.Is(err, policy.ErrNoCandidates)).To(BeTrue())
		})

		It("should not capture a rotation from a failed empty selection", func() {
			_, err := pol.Select(request.New("REQ1", "http", nil), nil)
			Expect(errors.Is(err, policy.ErrNoCandidates)).To(BeTrue())

			selected, err := pol.Select(request.New("REQ2", "http", nil), candidates)
			Expect(err).NotTo(HaveOccurred())
			Expect(selected).To(Equal(candidates[0]))
		})
	})

	Describe("Name", func() {
		It("should report round-robin", func() {
			Expect(pol.Name()).To(Equal("round-robin"))
		})
	})
})
