// Package metrics provides real-time metrics collection for the routing
// layer.
//
// It uses a channel-based event pipeline to asynchronously collect:
//   - Routing decisions per destination and per request type
//   - Admission outcomes (accepted, rejected, shed by a breaker)
//   - Release counts as requests complete
//   - Decision latencies with percentile calculations (P50, P95, P99)
//
// The collector runs in a dedicated goroutine and processes events without
// blocking the dispatch path. Events are sent via buffered channels with
// non-blocking semantics to prevent performance degradation under load.
//
// Example usage:
//
//	collector := metrics.NewCollector(1000, logger)
//	collector.Start(ctx)
//
//	// Emit events during dispatch
//	collector.EventChannel() <- metrics.MetricEvent{
//		Type:        metrics.EventRouteDecided,
//		Destination: "192.168.0.1:9000",
//		RequestType: "http",
//		Duration:    150 * time.Microsecond,
//	}
//
//	// Get metrics snapshot
//	snapshot := collector.Snapshot("round-robin")
//
// The package provides thread-safe metrics storage using sync.RWMutex and
// supports graceful shutdown with event draining to prevent data loss.
package metrics
