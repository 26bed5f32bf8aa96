package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/vatsal717/Load-Balancer-System/config"
	"github.com/vatsal717/Load-Balancer-System/internal/circuitbreaker"
	"github.com/vatsal717/Load-Balancer-System/internal/dispatch"
	"github.com/vatsal717/Load-Balancer-System/internal/metrics"
	"github.com/vatsal717/Load-Balancer-System/internal/registry"
	"github.com/vatsal717/Load-Balancer-System/internal/request"
)

// runWorkload pushes a paced stream of synthetic requests through the
// configured policy and prints a metrics snapshot when done. Each worker
// holds its admission briefly so concurrent load is visible to the
// policies.
func runWorkload(ctx context.Context, log *slog.Logger, cfg *config.Config, reg *registry.Registry, breakers *circuitbreaker.Registry, collector *metrics.Collector) {
	pol := createPolicy(log, cfg.Policy.Type)
	rtr := buildRouter(pol, reg, cfg)
	dispatcher := dispatch.NewDispatcher(log, rtr, breakers, collector, cfg.Dispatch.MaxAttempts)

	log.Info("Starting workload",
		slog.Int("requests", cfg.Workload.Requests),
		slog.Float64("rate", cfg.Workload.Rate),
		slog.Int("concurrency", cfg.Workload.Concurrency),
		slog.String("policy", pol.Name()))

	hold := cfg.Workload.HoldDuration()
	limiter := rate.NewLimiter(rate.Limit(cfg.Workload.Rate), 1)

	jobs := make(chan *request.Request)

	var dispatched, failed atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < cfg.Workload.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for req := range jobs {
				dest, err := dispatcher.Dispatch(req)
				if err != nil {
					failed.Add(1)
					continue
				}

				dispatched.Add(1)
				time.Sleep(hold)
				dispatcher.Complete(req, dest)
			}
		}()
	}

feed:
	for i := 1; i <= cfg.Workload.Requests; i++ {
		if err := limiter.Wait(ctx); err != nil {
			break
		}

		req := request.New(fmt.Sprintf("REQ%d", i), cfg.Workload.RequestType, nil)

		select {
		case jobs <- req:
		case <-ctx.Done():
			break feed
		}
	}

	close(jobs)
	wg.Wait()

	// Let the collector absorb the tail of in-flight events
	time.Sleep(50 * time.Millisecond)

	log.Info("Workload complete",
		slog.Int64("dispatched", dispatched.Load()),
		slog.Int64("failed", failed.Load()))

	if err := collector.WriteSnapshot(os.Stdout, pol.Name()); err != nil {
		log.Error("Failed to write metrics snapshot", slog.Any("err", err))
	}
}
