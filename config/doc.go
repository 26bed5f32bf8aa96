// Package config handles loading and parsing of configuration from YAML
// files and environment variables. It defines the application configuration
// structure including destinations with their capacities, services, route
// bindings, policy selection, dispatch retry limits, and workload settings.
package config
