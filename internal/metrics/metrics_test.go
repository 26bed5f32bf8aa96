package metrics_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vatsal717/Load-Balancer-System/internal/metrics"
)

var _ = Describe("Metrics", func() {
	var m *metrics.Metrics

	BeforeEach(func() {
		m = metrics.NewMetrics()
	})

	Describe("NewMetrics", func() {
		It("should create a new metrics instance", func() {
			Expect(m).NotTo(BeNil())
		})
	})

	Describe("RecordDecision", func() {
		It("should count decisions for a destination", func() {
			m.RecordDecision("192.168.0.1:9000", "http", time.Microsecond)
			m.RecordDecision("192.168.0.1:9000", "http", time.Microsecond)

			snap := m.Snapshot("round-robin")
			Expect(snap.TotalDecisions).To(Equal(int64(2)))
			Expect(snap.Destinations["192.168.0.1:9000"].Decisions).To(Equal(int64(2)))
		})

		It("should track multiple destinations separately", func() {
			m.RecordDecision("192.168.0.1:9000", "http", time.Microsecond)
			m.RecordDecision("192.168.0.2:9000", "http", time.Microsecond)
			m.RecordDecision("192.168.0.1:9000", "http", time.Microsecond)

			snap := m.Snapshot("round-robin")
			Expect(snap.TotalDecisions).To(Equal(int64(3)))
			Expect(snap.Destinations["192.168.0.1:9000"].Decisions).To(Equal(int64(2)))
			Expect(snap.Destinations["192.168.0.2:9000"].Decisions).To(Equal(int64(1)))
		})

		It("should count decisions per request type", func() {
			m.RecordDecision("192.168.0.1:9000", "http", time.Microsecond)
			m.RecordDecision("192.168.0.2:9000", "http", time.Microsecond)
			m.RecordDecision("192.168.0.1:9000", "grpc", time.Microsecond)

			snap := m.Snapshot("round-robin")
			Expect(snap.RequestTypes["http"]).To(Equal(int64(2)))
			Expect(snap.RequestTypes["grpc"]).To(Equal(int64(1)))
		})

		It("should calculate percentiles correctly", func() {
			for i := 1; i <= 100; i++ {
				m.RecordDecision("192.168.0.1:9000", "http", time.Duration(i)*time.Millisecond)
			}

			snap := m.Snapshot("round-robin")
			destination := snap.Destinations["192.168.0.1:9000"]

			Expect(destination.P50Decision).To(BeNumerically("~", 50*time.Millisecond, 1*time.Millisecond))
			Expect(destination.P95Decision).To(BeNumerically("~", 95*time.Millisecond, 1*time.Millisecond))
			Expect(destination.P99Decision).To(BeNumerically("~", 99*time.Millisecond, 1*time.Millisecond))
		})

		It("should limit stored decision latencies to 1000", func() {
			for i := 1; i <= 1500; i++ {
				m.RecordDecision("192.168.0.1:9000", "http", time.Duration(i)*time.Millisecond)
			}

			snap := m.Snapshot("round-robin")
			destination := snap.Destinations["192.168.0.1:9000"]

			Expect(destination.AvgDecision).To(BeNumerically(">", 500*time.Millisecond))
		})
	})

	Describe("Admission counters", func() {
		It("should track accepted admissions", func() {
			m.RecordAccepted("192.168.0.1:9000")
			m.RecordAccepted("192.168.0.1:9000")
			m.RecordAccepted("192.168.0.2:9000")

			snap := m.Snapshot("round-robin")
			Expect(snap.Destinations["192.168.0.1:9000"].Accepted).To(Equal(int64(2)))
			Expect(snap.Destinations["192.168.0.2:9000"].Accepted).To(Equal(int64(1)))
		})

		It("should track rejected admissions", func() {
			m.RecordRejected("192.168.0.1:9000")

			snap := m.Snapshot("round-robin")
			Expect(snap.Destinations["192.168.0.1:9000"].Rejected).To(Equal(int64(1)))
		})

		It("should track shed attempts", func() {
			m.RecordShed("192.168.0.1:9000")
			m.RecordShed("192.168.0.1:9000")

			snap := m.Snapshot("round-robin")
			Expect(snap.Destinations["192.168.0.1:9000"].Shed).To(Equal(int64(2)))
		})

		It("should track released requests", func() {
			m.RecordReleased("192.168.0.1:9000")

			snap := m.Snapshot("round-robin")
			Expect(snap.Destinations["192.168.0.1:9000"].Released).To(Equal(int64(1)))
		})
	})

	Describe("Snapshot", func() {
		It("should return a snapshot with the policy name", func() {
			m.RecordDecision("192.168.0.1:9000", "http", time.Microsecond)

			snap := m.Snapshot("least-loaded")
			Expect(snap.Policy).To(Equal("least-loaded"))
		})

		It("should include uptime", func() {
			time.Sleep(10 * time.Millisecond)

			snap := m.Snapshot("round-robin")
			Expect(snap.Uptime).To(BeNumerically(">", 0))
		})

		It("should handle empty metrics", func() {
			snap := m.Snapshot("round-robin")

			Expect(snap.TotalDecisions).To(Equal(int64(0)))
			Expect(snap.Destinations).To(BeEmpty())
		})

		It("should return independent snapshots", func() {
			m.RecordDecision("192.168.0.1:9000", "http", time.Microsecond)

			snap1 := m.Snapshot("round-robin")
			m.RecordDecision("192.168.0.1:9000", "http", time.Microsecond)
			snap2 := m.Snapshot("round-robin")

			Expect(snap1.TotalDecisions).To(Equal(int64(1)))
			Expect(snap2.TotalDecisions).To(Equal(int64(2)))
		})
	})
})
