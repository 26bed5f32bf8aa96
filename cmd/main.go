package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vatsal717/Load-Balancer-System/config"
	"github.com/vatsal717/Load-Balancer-System/internal/circuitbreaker"
	"github.com/vatsal717/Load-Balancer-System/internal/destination"
	"github.com/vatsal717/Load-Balancer-System/internal/metrics"
	"github.com/vatsal717/Load-Balancer-System/internal/policy"
	"github.com/vatsal717/Load-Balancer-System/internal/registry"
	"github.com/vatsal717/Load-Balancer-System/internal/router"
	"github.com/vatsal717/Load-Balancer-System/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, true, cfg.Driver.Environment)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg := buildRegistry(cfg)
	log.Info("Initialized routing registry",
		slog.Int("destinations", len(reg.Destinations())),
		slog.Int("services", len(reg.Services())))

	var breakers *circuitbreaker.Registry
	if cfg.Breaker.Enabled {
		breakers = circuitbreaker.NewRegistry(cfg.Breaker.RejectionLimit, cfg.Breaker.ResetTimeoutDuration())
	}

	collector := metrics.NewCollector(cfg.Metrics.BufferSize, log)
	collector.Start(ctx)

	switch cfg.Driver.Mode {
	case config.ModeWorkload:
		runWorkload(ctx, log, cfg, reg, breakers, collector)
	default:
		runConsole(ctx, log, cfg, reg, breakers, collector)
	}

	log.Info("Shutting down gracefully...")
}

// buildRegistry materializes the configured destinations and services.
// Config validation has already checked addresses, capacities and the
// service membership references.
func buildRegistry(cfg *config.Config) *registry.Registry {
	reg := registry.New()

	for _, dc := range cfg.Destinations {
		reg.AddDestination(destination.New(dc.Address, dc.Capacity))
	}

	for _, sc := range cfg.Services {
		svc := reg.AddService(sc.Name)
		for _, addr := range sc.Destinations {
			svc.AddCandidate(addr)
		}
	}

	return reg
}

// buildRouter creates a router over the shared registry with the
// configured request type bindings.
func buildRouter(pol policy.Policy, reg *registry.Registry, cfg *config.Config) *router.Router {
	rtr := router.New(pol, reg)

	for _, rc := range cfg.Routes {
		rtr.RegisterService(rc.RequestType, rc.Service)
	}

	return rtr
}

func createPolicy(logger *slog.Logger, policyType string) policy.Policy {
	switch policyType {
	case "least-loaded":
		return policy.NewLeastLoadedPolicy()
	case "hash-routed":
		return policy.NewHashRoutedPolicy()
	case "round-robin":
		return policy.NewRoundRobinPolicy()
	default:
		logger.Warn("Unknown policy, defaulting to round-robin", slog.String("requested", policyType))
		return policy.NewRoundRobinPolicy()
	}
}
