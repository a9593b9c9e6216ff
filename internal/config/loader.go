package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader assembles a Config from a base file, an environment-specific
// overlay, and environment variables, in that priority order.
type Loader struct {
	basePath    string
	environment Environment
	sources     []string
}

// NewLoader builds a Loader rooted at basePath (defaulting to "config")
// for the given environment.
func NewLoader(basePath string, env Environment) *Loader {
	if basePath == "" {
		basePath = "config"
	}
	if env == "" {
		env = Development
	}
	return &Loader{basePath: basePath, environment: env}
}

// Load runs the full precedence chain: defaults, base.yaml,
// <environment>.yaml, then environment variables.
func (l *Loader) Load() (*Config, error) {
	cfg := defaultConfig(l.environment)
	l.sources = append(l.sources, "defaults")

	if err := l.loadFile("base", cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load base config: %w", err)
	}

	envFile := strings.ToLower(string(l.environment))
	if err := l.loadFile(envFile, cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load %s config: %w", envFile, err)
	}

	l.loadEnvironmentVariables(cfg)
	l.sources = append(l.sources, "environment")

	cfg.LoadedFrom = l.sources
	cfg.applyEnvironmentDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (l *Loader) loadFile(name string, cfg *Config) error {
	path := filepath.Join(l.basePath, name+".yaml")
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	l.sources = append(l.sources, path)
	return nil
}

func (l *Loader) loadEnvironmentVariables(cfg *Config) {
	if v := os.Getenv("GRAPHTRAVERSE_SERVER_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("GRAPHTRAVERSE_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("GRAPHTRAVERSE_STRATEGY"); v != "" {
		cfg.Traversal.DefaultStrategy = v
	}
	if v := os.Getenv("GRAPHTRAVERSE_LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("GRAPHTRAVERSE_TRACING_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Observability.TracingEnabled = b
		}
	}
}

func defaultConfig(env Environment) *Config {
	return &Config{
		Environment: env,
		Server: Server{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Traversal: Traversal{
			DefaultStrategy: "eager",
			StartK:          4,
			AdjacentK:       10,
			SelectK:         10,
			MaxDepth:        3,
			MaxTraverse:     0,
			MMRLambda:       0.5,
			RequestTimeout:  10 * time.Second,
		},
		Resilience: Resilience{
			MaxRequests: 3,
			Interval:    30 * time.Second,
			Timeout:     10 * time.Second,
			FailureRate: 0.5,
		},
		Observability: Observability{
			LogLevel:         "info",
			MetricsNamespace: "graphtraverse",
			TracingEnabled:   true,
			TraceSampleRate:  1.0,
		},
	}
}

// Load is a convenience wrapper reading GRAPHTRAVERSE_ENV (defaulting to
// "development") and delegating to a Loader rooted at "config".
func Load() (*Config, error) {
	env := Environment(os.Getenv("GRAPHTRAVERSE_ENV"))
	if env == "" {
		env = Development
	}
	return NewLoader("config", env).Load()
}
