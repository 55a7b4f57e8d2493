package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "reago.yaml"

	// DefaultAddr is the default inspector listen address.
	DefaultAddr = "localhost:7979"

	// DefaultNamespace is the default Prometheus metric namespace.
	DefaultNamespace = "reago"

	// DefaultTracer is the default OpenTelemetry tracer name.
	DefaultTracer = "reago"

	// DefaultBenchProfile is the bench profile used when none is set.
	DefaultBenchProfile = "standard"
)

// Config represents the complete reago.yaml configuration.
type Config struct {
	// Inspector contains inspector server configuration.
	Inspector InspectorConfig `yaml:"inspector,omitempty"`

	// Telemetry contains metrics and tracing configuration.
	Telemetry TelemetryConfig `yaml:"telemetry,omitempty"`

	// Bench contains benchmark command configuration.
	Bench BenchConfig `yaml:"bench,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// InspectorConfig contains inspector server settings.
type InspectorConfig struct {
	// Enabled starts the inspector HTTP server.
	Enabled bool `yaml:"enabled,omitempty"`

	// Addr is the host:port the inspector listens on.
	Addr string `yaml:"addr,omitempty"`
}

// TelemetryConfig contains observability settings.
type TelemetryConfig struct {
	// Metrics enables Prometheus counters for runtime activity.
	Metrics bool `yaml:"metrics,omitempty"`

	// Tracing enables OpenTelemetry spans for propagation passes.
	Tracing bool `yaml:"tracing,omitempty"`

	// Namespace is the Prometheus metric namespace.
	Namespace string `yaml:"namespace,omitempty"`

	// Tracer is the OpenTelemetry tracer name.
	Tracer string `yaml:"tracer,omitempty"`
}

// BenchConfig contains benchmark settings.
type BenchConfig struct {
	// Profile selects a built-in workload: fast, standard, or stress.
	Profile string `yaml:"profile,omitempty"`

	// Signals overrides the profile's signal count when non-zero.
	Signals int `yaml:"signals,omitempty"`

	// Depth overrides the profile's memo chain depth when non-zero.
	Depth int `yaml:"depth,omitempty"`

	// Fanout overrides the profile's effects-per-memo when non-zero.
	Fanout int `yaml:"fanout,omitempty"`

	// Writes overrides the profile's write count when non-zero.
	Writes int `yaml:"writes,omitempty"`

	// JSON emits results as JSON instead of the human-readable table.
	JSON bool `yaml:"json,omitempty"`
}

// New creates a Config with all defaults applied.
func New() *Config {
	return &Config{
		Inspector: InspectorConfig{
			Enabled: true,
			Addr:    DefaultAddr,
		},
		Telemetry: TelemetryConfig{
			Metrics:   true,
			Tracing:   false,
			Namespace: DefaultNamespace,
			Tracer:    DefaultTracer,
		},
		Bench: BenchConfig{
			Profile: DefaultBenchProfile,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for reago.yaml in the directory. A missing file yields
// the defaults, not an error.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields. Booleans
// keep whatever the file says; yaml cannot distinguish false from
// absent, so flags default off when the section is present.
func (c *Config) applyDefaults() {
	if c.Inspector.Addr == "" {
		c.Inspector.Addr = DefaultAddr
	}
	if c.Telemetry.Namespace == "" {
		c.Telemetry.Namespace = DefaultNamespace
	}
	if c.Telemetry.Tracer == "" {
		c.Telemetry.Tracer = DefaultTracer
	}
	if c.Bench.Profile == "" {
		c.Bench.Profile = DefaultBenchProfile
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Bench.Profile {
	case "fast", "standard", "stress":
	default:
		return fmt.Errorf("unknown bench profile %q (use fast, standard, or stress)", c.Bench.Profile)
	}
	if c.Bench.Signals < 0 || c.Bench.Depth < 0 || c.Bench.Fanout < 0 || c.Bench.Writes < 0 {
		return fmt.Errorf("bench overrides must not be negative")
	}
	return nil
}

// Exists reports whether a reago.yaml is present in the directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
