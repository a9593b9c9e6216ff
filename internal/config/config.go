// Package config loads this module's layered configuration: defaults,
// then a base file, then an environment-specific file, then environment
// variables, matching the precedence the teacher's loader established.
package config

import (
	"fmt"
	"time"
)

// Environment names a deployment tier.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Config is the root configuration tree for a traverse-server process.
type Config struct {
	Environment Environment `yaml:"environment"`

	Server      Server      `yaml:"server"`
	Traversal   Traversal   `yaml:"traversal"`
	Resilience  Resilience  `yaml:"resilience"`
	Observability Observability `yaml:"observability"`

	LoadedFrom []string `yaml:"-"`
}

// Server configures the HTTP demo server.
type Server struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Traversal configures default strategy and expansion parameters applied
// when a request does not override them.
type Traversal struct {
	DefaultStrategy string        `yaml:"default_strategy"` // "eager", "scored", "mmr"
	StartK          int           `yaml:"start_k"`
	AdjacentK       int           `yaml:"adjacent_k"`
	SelectK         int           `yaml:"select_k"`
	MaxDepth        int           `yaml:"max_depth"`
	MaxTraverse     int           `yaml:"max_traverse"`
	MMRLambda       float64       `yaml:"mmr_lambda"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
}

// Resilience configures the circuit breaker guarding adapter calls.
type Resilience struct {
	MaxRequests uint32        `yaml:"max_requests"`
	Interval    time.Duration `yaml:"interval"`
	Timeout     time.Duration `yaml:"timeout"`
	FailureRate float64       `yaml:"failure_ratio"`
}

// Observability configures logging and tracing.
type Observability struct {
	LogLevel        string  `yaml:"log_level"`
	MetricsNamespace string `yaml:"metrics_namespace"`
	TracingEnabled  bool    `yaml:"tracing_enabled"`
	TraceSampleRate float64 `yaml:"trace_sample_rate"`
}

// Validate checks invariants a hand-edited or env-overridden config might
// violate before the process starts serving traffic.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	if c.Traversal.StartK < 0 || c.Traversal.AdjacentK < 0 || c.Traversal.SelectK < 0 {
		return fmt.Errorf("config: traversal k-parameters must be non-negative")
	}
	if c.Traversal.MaxDepth < 0 {
		return fmt.Errorf("config: traversal.max_depth must be non-negative")
	}
	if c.Traversal.MMRLambda < 0 || c.Traversal.MMRLambda > 1 {
		return fmt.Errorf("config: traversal.mmr_lambda must be in [0,1]")
	}
	if c.Resilience.FailureRate <= 0 || c.Resilience.FailureRate > 1 {
		return fmt.Errorf("config: resilience.failure_ratio must be in (0,1]")
	}
	switch c.Traversal.DefaultStrategy {
	case "eager", "scored", "mmr":
	default:
		return fmt.Errorf("config: traversal.default_strategy %q not recognized", c.Traversal.DefaultStrategy)
	}
	return nil
}

func (c *Config) applyEnvironmentDefaults() {
	if c.Environment == Production {
		c.Observability.LogLevel = "info"
		if c.Observability.TraceSampleRate == 0 {
			c.Observability.TraceSampleRate = 0.1
		}
	} else if c.Observability.TraceSampleRate == 0 {
		c.Observability.TraceSampleRate = 1.0
	}
}
