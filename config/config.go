// Package config provides configuration loading and access for body plan
// growth, mutation and persistence.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Seed       int64            `yaml:"seed" env:"BODYPLAN_SEED"`
	Growth     GrowthConfig     `yaml:"growth"`
	Mutation   MutationConfig   `yaml:"mutation"`
	Population PopulationConfig `yaml:"population"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Storage    StorageConfig    `yaml:"storage"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// GrowthConfig holds random tree growth parameters.
type GrowthConfig struct {
	MaxDepth int `yaml:"max_depth" env:"BODYPLAN_MAX_DEPTH"`
	// Exclusive bound on children per segment
	MaxChildren int `yaml:"max_children"`
	// Raw dimension genes of grown segments
	StickDims [3]float64 `yaml:"stick_dims"`
	// Probability a grown joint is rotational
	RotationalChance float64 `yaml:"rotational_chance"`
}

// MutationConfig holds mutation parameters.
type MutationConfig struct {
	Rate      float64 `yaml:"rate" env:"BODYPLAN_MUTATION_RATE"`             // Per-gene mutation probability
	MaxOffset float64 `yaml:"max_offset" env:"BODYPLAN_MUTATION_MAX_OFFSET"` // Uniform offset bound on raw genes
	Workers   int     `yaml:"workers"`                                       // Parallel workers (1 = sequential)
}

// PopulationConfig holds population management parameters.
type PopulationConfig struct {
	Size        int `yaml:"size" env:"BODYPLAN_POPULATION_SIZE"`
	Generations int `yaml:"generations" env:"BODYPLAN_GENERATIONS"`
}

// SpawnConfig holds realization parameters for the ECS spawner.
type SpawnConfig struct {
	Height  float64      `yaml:"height"`  // Root spawn height on y
	Spacing float64      `yaml:"spacing"` // Distance between creatures along x
	Palette [][3]float64 `yaml:"palette"` // Colours by segment depth
	Ground  [3]float64   `yaml:"ground"`  // Ground colour
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	LogEvery int `yaml:"log_every"` // Generations between stats log lines
}

// StorageConfig selects the population store.
type StorageConfig struct {
	Backend string `yaml:"backend" env:"BODYPLAN_STORE"`   // memory or sqlite
	Path    string `yaml:"path" env:"BODYPLAN_STORE_PATH"` // sqlite database path
	Name    string `yaml:"name"`                           // Population name within the store
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ParallelMutation bool // Mutation.Workers > 1
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults,
// then applies BODYPLAN_* environment overrides.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Growth.MaxDepth < 0:
		return fmt.Errorf("growth.max_depth must be >= 0, got %d", c.Growth.MaxDepth)
	case c.Growth.MaxChildren < 0:
		return fmt.Errorf("growth.max_children must be >= 0, got %d", c.Growth.MaxChildren)
	case c.Mutation.Rate < 0 || c.Mutation.Rate > 1:
		return fmt.Errorf("mutation.rate must be in [0,1], got %v", c.Mutation.Rate)
	case c.Mutation.MaxOffset < 0 || c.Mutation.MaxOffset > 1:
		return fmt.Errorf("mutation.max_offset must be in [0,1], got %v", c.Mutation.MaxOffset)
	case c.Population.Size < 0:
		return fmt.Errorf("population.size must be >= 0, got %d", c.Population.Size)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Mutation.Workers < 1 {
		c.Mutation.Workers = 1
	}
	c.Derived.ParallelMutation = c.Mutation.Workers > 1

	if c.Telemetry.LogEvery < 1 {
		c.Telemetry.LogEvery = 1
	}
	if len(c.Spawn.Palette) == 0 {
		c.Spawn.Palette = [][3]float64{{0.6, 0.8, 0.2}}
	}
	if c.Storage.Name == "" {
		c.Storage.Name = "default"
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
