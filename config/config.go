package config

import (
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"
)

const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

const (
	ModeConsole  = "console"
	ModeWorkload = "workload"
)

type DriverConfig struct {
	Mode        string `mapstructure:"mode"`
	Environment string `mapstructure:"environment"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type PolicyConfig struct {
	Type string `mapstructure:"type"`
}

type DispatchConfig struct {
	MaxAttempts int `mapstructure:"max_attempts"`
}

type BreakerConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	RejectionLimit int    `mapstructure:"rejection_limit"`
	ResetTimeout   string `mapstructure:"reset_timeout"`
}

type MetricsConfig struct {
	BufferSize int `mapstructure:"buffer_size"`
}

type DestinationConfig struct {
	Address  string `mapstructure:"address"`
	Capacity int    `mapstructure:"capacity"`
}

type ServiceConfig struct {
	Name         string   `mapstructure:"name"`
	Destinations []string `mapstructure:"destinations"`
}

type RouteConfig struct {
	RequestType string `mapstructure:"request_type"`
	Service     string `mapstructure:"service"`
}

type WorkloadConfig struct {
	Requests    int     `mapstructure:"requests"`
	Rate        float64 `mapstructure:"rate"`
	Concurrency int     `mapstructure:"concurrency"`
	RequestType string  `mapstructure:"request_type"`
	Hold        string  `mapstructure:"hold"`
}

type Config struct {
	Driver       DriverConfig        `mapstructure:"driver"`
	Logging      LoggingConfig       `mapstructure:"logging"`
	Policy       PolicyConfig        `mapstructure:"policy"`
	Dispatch     DispatchConfig      `mapstructure:"dispatch"`
	Breaker      BreakerConfig       `mapstructure:"breaker"`
	Metrics      MetricsConfig       `mapstructure:"metrics"`
	Destinations []DestinationConfig `mapstructure:"destinations"`
	Services     []ServiceConfig     `mapstructure:"services"`
	Routes       []RouteConfig       `mapstructure:"routes"`
	Workload     WorkloadConfig      `mapstructure:"workload"`
}

func Load() (*Config, error) {
	viper.SetDefault("driver.mode", ModeConsole)
	viper.SetDefault("driver.environment", EnvDev)
	viper.SetDefault("logging.level", LogLevelInfo)
	viper.SetDefault("policy.type", "round-robin")
	viper.SetDefault("dispatch.max_attempts", 3)
	viper.SetDefault("breaker.enabled", true)
	viper.SetDefault("breaker.rejection_limit", 5)
	viper.SetDefault("breaker.reset_timeout", "30s")
	viper.SetDefault("metrics.buffer_size", 1000)
	viper.SetDefault("workload.requests", 100)
	viper.SetDefault("workload.rate", 50.0)
	viper.SetDefault("workload.concurrency", 4)
	viper.SetDefault("workload.request_type", "http")
	viper.SetDefault("workload.hold", "5ms")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("failed to read config file", slog.String("error", err.Error()))
			return nil, err
		}
		slog.Error("config file not found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", slog.String("file", viper.ConfigFileUsed()))
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		slog.Error("failed to unmarshal config", slog.String("error", err.Error()))
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Driver,
			validation.Required,
			validation.By(func(value interface{}) error {
				dc, ok := value.(DriverConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a DriverConfig")
				}
				return validation.ValidateStruct(&dc,
					validation.Field(&dc.Mode,
						validation.Required,
						validation.In(ModeConsole, ModeWorkload),
					),
					validation.Field(&dc.Environment,
						validation.Required,
						validation.In(EnvDev, EnvStaging, EnvProd),
					),
				)
			}),
		),
		validation.Field(&c.Logging,
			validation.Required,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.Level,
						validation.Required,
						validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
					),
				)
			}),
		),
		validation.Field(&c.Policy,
			validation.Required,
			validation.By(func(value interface{}) error {
				pc, ok := value.(PolicyConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a PolicyConfig")
				}
				return validation.ValidateStruct(&pc,
					validation.Field(&pc.Type,
						validation.Required,
						validation.In("least-loaded", "hash-routed", "round-robin"),
					),
				)
			}),
		),
		validation.Field(&c.Dispatch,
			validation.Required,
			validation.By(func(value interface{}) error {
				dc, ok := value.(DispatchConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a DispatchConfig")
				}
				return validation.ValidateStruct(&dc,
					validation.Field(&dc.MaxAttempts,
						validation.Required,
						validation.Min(1),
					),
				)
			}),
		),
		validation.Field(&c.Breaker,
			validation.By(func(value interface{}) error {
				bc, ok := value.(BreakerConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a BreakerConfig")
				}
				return validation.ValidateStruct(&bc,
					validation.Field(&bc.RejectionLimit,
						validation.Required,
						validation.Min(1),
					),
					validation.Field(&bc.ResetTimeout,
						validation.Required,
						validation.By(validateDuration),
					),
				)
			}),
		),
		validation.Field(&c.Metrics,
			validation.Required,
			validation.By(func(value interface{}) error {
				mc, ok := value.(MetricsConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a MetricsConfig")
				}
				return validation.ValidateStruct(&mc,
					validation.Field(&mc.BufferSize,
						validation.Required,
						validation.Min(1),
					),
				)
			}),
		),
		validation.Field(&c.Destinations,
			validation.Required,
			validation.Length(1, 0),
			validation.Each(validation.By(validateDestinationConfig)),
		),
		validation.Field(&c.Services,
			validation.Required,
			validation.Length(1, 0),
			validation.Each(validation.By(validateServiceConfig)),
		),
		validation.Field(&c.Routes,
			validation.Required,
			validation.Length(1, 0),
			validation.Each(validation.By(validateRouteConfig)),
		),
		validation.Field(&c.Workload,
			validation.By(func(value interface{}) error {
				wc, ok := value.(WorkloadConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a WorkloadConfig")
				}
				return validation.ValidateStruct(&wc,
					validation.Field(&wc.Requests,
						validation.Required,
						validation.Min(1),
					),
					validation.Field(&wc.Rate,
						validation.Required,
						validation.Min(0.0).Exclusive(),
					),
					validation.Field(&wc.Concurrency,
						validation.Required,
						validation.Min(1),
					),
					validation.Field(&wc.RequestType,
						validation.Required,
					),
					validation.Field(&wc.Hold,
						validation.Required,
						validation.By(validateDuration),
					),
				)
			}),
		),
	)
	if err != nil {
		return err
	}

	return c.validateReferences()
}

// validateReferences checks the cross-section links: services may only
// name configured destinations, routes may only name configured services,
// and addresses, service names and request types must be unique.
func (c *Config) validateReferences() error {
	addresses := make(map[string]bool, len(c.Destinations))
	for _, dc := range c.Destinations {
		if addresses[dc.Address] {
			return validation.NewError("validation_duplicate_destination",
				fmt.Sprintf("duplicate destination address %q", dc.Address))
		}
		addresses[dc.Address] = true
	}

	names := make(map[string]bool, len(c.Services))
	for _, sc := range c.Services {
		if names[sc.Name] {
			return validation.NewError("validation_duplicate_service",
				fmt.Sprintf("duplicate service name %q", sc.Name))
		}
		names[sc.Name] = true

		for _, addr := range sc.Destinations {
			if !addresses[addr] {
				return validation.NewError("validation_unknown_destination",
					fmt.Sprintf("service %q references unknown destination %q", sc.Name, addr))
			}
		}
	}

	requestTypes := make(map[string]bool, len(c.Routes))
	for _, rc := range c.Routes {
		if requestTypes[rc.RequestType] {
			return validation.NewError("validation_duplicate_route",
				fmt.Sprintf("duplicate route for request type %q", rc.RequestType))
		}
		requestTypes[rc.RequestType] = true

		if !names[rc.Service] {
			return validation.NewError("validation_unknown_service",
				fmt.Sprintf("route %q references unknown service %q", rc.RequestType, rc.Service))
		}
	}

	return nil
}

// ResetTimeoutDuration returns the parsed reset timeout. Validation
// guarantees the string parses; the zero duration is returned otherwise.
func (b BreakerConfig) ResetTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(b.ResetTimeout)
	if err != nil {
		return 0
	}
	return d
}

// HoldDuration returns how long a workload worker keeps its admission
// before releasing it. The zero duration is returned for an unvalidated
// value.
func (w WorkloadConfig) HoldDuration() time.Duration {
	d, err := time.ParseDuration(w.Hold)
	if err != nil {
		return 0
	}
	return d
}

func validateHostPort(value interface{}) error {
	addr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return validation.NewError("validation_invalid_hostport", "must be in host:port format")
	}

	if port == "" {
		return validation.NewError("validation_invalid_port", "port cannot be empty")
	}

	if host != "" {
		if err := is.Host.Validate(host); err != nil {
			return validation.NewError("validation_invalid_host", "invalid host")
		}
	}

	return nil
}

func validateDuration(value interface{}) error {
	durationStr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	if _, err := time.ParseDuration(durationStr); err != nil {
		return validation.NewError("validation_invalid_duration", "must be a valid duration (e.g., 2s, 5m, 1h)")
	}

	return nil
}

func validateDestinationConfig(value interface{}) error {
	dc, ok := value.(DestinationConfig)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a DestinationConfig")
	}

	if err := validateHostPort(dc.Address); err != nil {
		return err
	}

	if dc.Capacity < 1 {
		return validation.NewError("validation_invalid_capacity", "capacity must be at least 1")
	}

	return nil
}

func validateServiceConfig(value interface{}) error {
	sc, ok := value.(ServiceConfig)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a ServiceConfig")
	}

	if sc.Name == "" {
		return validation.NewError("validation_empty_name", "service name cannot be empty")
	}

	if len(sc.Destinations) == 0 {
		return validation.NewError("validation_empty_service",
			fmt.Sprintf("service %q must list at least one destination", sc.Name))
	}

	return nil
}

func validateRouteConfig(value interface{}) error {
	rc, ok := value.(RouteConfig)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a RouteConfig")
	}

	if rc.RequestType == "" {
		return validation.NewError("validation_empty_request_type", "route request type cannot be empty")
	}

	if rc.Service == "" {
		return validation.NewError("validation_empty_service_name", "route service name cannot be empty")
	}

	return nil
}
