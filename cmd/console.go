package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/vatsal717/Load-Balancer-System/config"
	"github.com/vatsal717/Load-Balancer-System/internal/circuitbreaker"
	"github.com/vatsal717/Load-Balancer-System/internal/dispatch"
	"github.com/vatsal717/Load-Balancer-System/internal/metrics"
	"github.com/vatsal717/Load-Balancer-System/internal/registry"
	"github.com/vatsal717/Load-Balancer-System/internal/request"
)

// runConsole drives dispatch interactively. Each iteration picks the
// balancing policy for one request. All policies share the registry, so
// load accumulates in one place no matter which policy admitted the
// request, and the round robin cursor keeps its position between turns.
func runConsole(ctx context.Context, log *slog.Logger, cfg *config.Config, reg *registry.Registry, breakers *circuitbreaker.Registry, collector *metrics.Collector) {
	dispatchers := make(map[string]*dispatch.Dispatcher)
	for _, name := range []string{"least-loaded", "hash-routed", "round-robin"} {
		rtr := buildRouter(createPolicy(log, name), reg, cfg)
		dispatchers[name] = dispatch.NewDispatcher(log, rtr, breakers, collector, cfg.Dispatch.MaxAttempts)
	}

	requestType := cfg.Routes[0].RequestType

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	seq := 0
	for {
		printMenu()

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			return
		case line, ok = <-lines:
			if !ok {
				return
			}
		}

		var policyName string
		switch strings.TrimSpace(line) {
		case "1":
			policyName = "least-loaded"
		case "2":
			policyName = "hash-routed"
		case "3":
			policyName = "round-robin"
		case "4":
			return
		default:
			fmt.Println("Unknown option")
			continue
		}

		seq++
		req := request.New(fmt.Sprintf("REQ%d", seq), requestType, nil)

		dest, err := dispatchers[policyName].Dispatch(req)
		if err != nil {
			fmt.Printf("Request %s could not be dispatched: %v\n", req.ID, err)
			continue
		}

		fmt.Printf("Request %s routed to %s (%s)\n", req.ID, dest.Addr(), policyName)
		printStatus(reg)

		dispatchers[policyName].Complete(req, dest)
	}
}

func printMenu() {
	fmt.Println()
	fmt.Println("Select balancing policy:")
	fmt.Println("  1. Least Loaded")
	fmt.Println("  2. Hash Routed")
	fmt.Println("  3. Round Robin")
	fmt.Println("  4. Exit")
	fmt.Print("> ")
}

func printStatus(reg *registry.Registry) {
	for _, d := range reg.Destinations() {
		fmt.Printf("  %s load %d/%d\n", d.Addr(), d.Load(), d.Capacity())
	}
}
