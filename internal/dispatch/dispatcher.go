package dispatch

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vatsal717/Load-Balancer-System/internal/circuitbreaker"
	"github.com/vatsal717/Load-Balancer-System/internal/destination"
	"github.com/vatsal717/Load-Balancer-System/internal/metrics"
	"github.com/vatsal717/Load-Balancer-System/internal/request"
	"github.com/vatsal717/Load-Balancer-System/internal/router"
)

// ErrNoCapacity is returned when every dispatch attempt ended with the
// chosen destination refusing admission.
var ErrNoCapacity = errors.New("no destination accepted the request")

type Dispatcher struct {
	logger      *slog.Logger
	router      *router.Router
	breakers    *circuitbreaker.Registry
	collector   *metrics.Collector
	maxAttempts int
}

// NewDispatcher wires routing, admission, breakers and metrics into one
// dispatch path. breakers and collector may be nil; dispatch then runs
// without shedding or event emission. maxAttempts below 1 is treated
// as 1.
func NewDispatcher(logger *slog.Logger, rtr *router.Router, breakers *circuitbreaker.Registry, collector *metrics.Collector, maxAttempts int) *Dispatcher {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &Dispatcher{
		logger:      logger,
		router:      rtr,
		breakers:    breakers,
		collector:   collector,
		maxAttempts: maxAttempts,
	}
}

// Dispatch routes the request and admits it at the chosen destination.
// A rejected admission consumes one attempt and routes again; selection
// state such as a round robin cursor advances with each attempt. On
// success the request holds one unit of the destination's capacity until
// Complete is called.
//
// Routing errors are terminal. Only rejected or shed attempts are
// retried, and exhausting the attempt budget reports ErrNoCapacity.
func (d *Dispatcher) Dispatch(req *request.Request) (*destination.Destination, error) {
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		start := time.Now()

		dest, err := d.router.Route(req)
		if err != nil {
			d.logger.Warn("Routing failed",
				slog.String("request_id", req.ID),
				slog.String("request_type", req.Type),
				slog.String("error", err.Error()))
			return nil, err
		}

		d.emitEvent(metrics.MetricEvent{
			Type:        metrics.EventRouteDecided,
			Timestamp:   time.Now(),
			Destination: dest.Addr(),
			RequestType: req.Type,
			Duration:    time.Since(start),
		})

		var cb *circuitbreaker.CircuitBreaker
		if d.breakers != nil {
			cb = d.breakers.GetBreaker(dest.Addr())
			if !cb.Allow() {
				d.logger.Info("Attempt shed by circuit breaker",
					slog.String("request_id", req.ID),
					slog.String("destination", dest.Addr()),
					slog.Int("attempt", attempt))

				d.emitEvent(metrics.MetricEvent{
					Type:        metrics.EventAttemptShed,
					Timestamp:   time.Now(),
					Destination: dest.Addr(),
					RequestType: req.Type,
				})
				continue
			}
		}

		if dest.TryAccept() {
			if cb != nil {
				cb.RecordAccept()
			}

			d.emitEvent(metrics.MetricEvent{
				Type:        metrics.EventAdmissionAccepted,
				Timestamp:   time.Now(),
				Destination: dest.Addr(),
				RequestType: req.Type,
			})

			d.logger.Info("Request admitted",
				slog.String("request_id", req.ID),
				slog.String("destination", dest.Addr()),
				slog.Int("attempt", attempt))

			return dest, nil
		}

		if cb != nil {
			cb.RecordRejection()
		}

		d.emitEvent(metrics.MetricEvent{
			Type:        metrics.EventAdmissionRejected,
			Timestamp:   time.Now(),
			Destination: dest.Addr(),
			RequestType: req.Type,
		})

		d.logger.Info("Destination at capacity",
			slog.String("request_id", req.ID),
			slog.String("destination", dest.Addr()),
			slog.Int("attempt", attempt))
	}

	d.logger.Warn("Dispatch exhausted attempts",
		slog.String("request_id", req.ID),
		slog.String("request_type", req.Type),
		slog.Int("max_attempts", d.maxAttempts))

	return nil, fmt.Errorf("request %q after %d attempts: %w", req.ID, d.maxAttempts, ErrNoCapacity)
}

// Complete releases the capacity unit held by a dispatched request.
func (d *Dispatcher) Complete(req *request.Request, dest *destination.Destination) {
	dest.Release()

	d.emitEvent(metrics.MetricEvent{
		Type:        metrics.EventRequestReleased,
		Timestamp:   time.Now(),
		Destination: dest.Addr(),
		RequestType: req.Type,
	})

	d.logger.Info("Request released",
		slog.String("request_id", req.ID),
		slog.String("destination", dest.Addr()))
}

func (d *Dispatcher) emitEvent(event metrics.MetricEvent) {
	if d.collector == nil {
		return
	}

	select {
	case d.collector.EventChannel() <- event:
	default:
	}
}
