package metrics

import (
	"context"
	"log/slog"
	"time"
)

type EventType string

const (
	EventRouteDecided      EventType = "route_decided"
	EventAdmissionAccepted EventType = "admission_accepted"
	EventAdmissionRejected EventType = "admission_rejected"
	EventAttemptShed       EventType = "attempt_shed"
	EventRequestReleased   EventType = "request_released"
)

type MetricEvent struct {
	Type        EventType
	Timestamp   time.Time
	Destination string
	RequestType string
	Duration    time.Duration
}

type Collector struct {
	eventCh chan MetricEvent
	metrics *Metrics
	logger  *slog.Logger
}

func NewCollector(bufferSize int, logger *slog.Logger) *Collector {
	return &Collector{
		eventCh: make(chan MetricEvent, bufferSize),
		metrics: NewMetrics(),
		logger:  logger,
	}
}

func (c *Collector) EventChannel() chan<- MetricEvent {
	return c.eventCh
}

func (c *Collector) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Collector) run(ctx context.Context) {
	c.logger.Info("Metrics collector started")
	defer c.logger.Info("Metrics collector stopped")

	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		case <-ctx.Done():
			// Drain remaining events before shutdown
			c.drain()
			return
		}
	}
}

func (c *Collector) processEvent(event MetricEvent) {
	switch event.Type {
	case EventRouteDecided:
		c.metrics.RecordDecision(event.Destination, event.RequestType, event.Duration)

	case EventAdmissionAccepted:
		c.metrics.RecordAccepted(event.Destination)

	case EventAdmissionRejected:
		c.metrics.RecordRejected(event.Destination)

	case EventAttemptShed:
		c.metrics.RecordShed(event.Destination)

	case EventRequestReleased:
		c.metrics.RecordReleased(event.Destination)
	}
}

func (c *Collector) drain() {
	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		default:
			return
		}
	}
}

func (c *Collector) Snapshot(policy string) Snapshot {
	return c.metrics.Snapshot(policy)
}
