package metrics

import (
	"sort"
	"sync"
	"time"
)

type Metrics struct {
	mutex         sync.RWMutex
	decisions     map[string]int64
	accepted      map[string]int64
	rejected      map[string]int64
	shed          map[string]int64
	released      map[string]int64
	requestTypes  map[string]int64
	decisionTimes map[string][]time.Duration
	startTime     time.Time
}

type Snapshot struct {
	TotalDecisions int64                         `json:"total_decisions"`
	Uptime         time.Duration                 `json:"uptime"`
	Policy         string                        `json:"policy"`
	RequestTypes   map[string]int64              `json:"request_types"`
	Destinations   map[string]DestinationMetrics `json:"destinations"`
}

type DestinationMetrics struct {
	Decisions   int64         `json:"decisions"`
	Accepted    int64         `json:"accepted"`
	Rejected    int64         `json:"rejected"`
	Shed        int64         `json:"shed"`
	Released    int64         `json:"released"`
	AvgDecision time.Duration `json:"avg_decision"`
	P50Decision time.Duration `json:"p50_decision"`
	P95Decision time.Duration `json:"p95_decision"`
	P99Decision time.Duration `json:"p99_decision"`
}

func NewMetrics() *Metrics {
	return &Metrics{
		decisions:     make(map[string]int64),
		accepted:      make(map[string]int64),
		rejected:      make(map[string]int64),
		shed:          make(map[string]int64),
		released:      make(map[string]int64),
		requestTypes:  make(map[string]int64),
		decisionTimes: make(map[string][]time.Duration),
		startTime:     time.Now(),
	}
}

func (m *Metrics) RecordDecision(destination, requestType string, latency time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.decisions[destination]++
	m.requestTypes[requestType]++

	m.decisionTimes[destination] = append(m.decisionTimes[destination], latency)

	if len(m.decisionTimes[destination]) > 1000 {
		m.decisionTimes[destination] = m.decisionTimes[destination][1:]
	}
}

func (m *Metrics) RecordAccepted(destination string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.accepted[destination]++
}

func (m *Metrics) RecordRejected(destination string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.rejected[destination]++
}

func (m *Metrics) RecordShed(destination string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.shed[destination]++
}

func (m *Metrics) RecordReleased(destination string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.released[destination]++
}

func (m *Metrics) Snapshot(policy string) Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := Snapshot{
		Uptime:       time.Since(m.startTime),
		Policy:       policy,
		RequestTypes: make(map[string]int64, len(m.requestTypes)),
		Destinations: make(map[string]DestinationMetrics),
	}

	for requestType, count := range m.requestTypes {
		snap.RequestTypes[requestType] = count
	}

	// Collect all destination addresses seen by any counter
	allDestinations := make(map[string]bool)
	for destination := range m.decisions {
		allDestinations[destination] = true
	}
	for destination := range m.accepted {
		allDestinations[destination] = true
	}
	for destination := range m.rejected {
		allDestinations[destination] = true
	}
	for destination := range m.shed {
		allDestinations[destination] = true
	}
	for destination := range m.released {
		allDestinations[destination] = true
	}

	for destination := range allDestinations {
		snap.TotalDecisions += m.decisions[destination]

		dm := DestinationMetrics{
			Decisions: m.decisions[destination],
			Accepted:  m.accepted[destination],
			Rejected:  m.rejected[destination],
			Shed:      m.shed[destination],
			Released:  m.released[destination],
		}

		latencies := m.decisionTimes[destination]
		if len(latencies) > 0 {
			sorted := make([]time.Duration, len(latencies))
			copy(sorted, latencies)
			sort.Slice(sorted, func(i, j int) bool {
				return sorted[i] < sorted[j]
			})

			dm.AvgDecision = average(sorted)
			dm.P50Decision = percentile(sorted, 0.50)
			dm.P95Decision = percentile(sorted, 0.95)
			dm.P99Decision = percentile(sorted, 0.99)
		}

		snap.Destinations[destination] = dm
	}

	return snap
}

func average(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}

	return sum / time.Duration(len(durations))
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}
