// Package config loads, validates and defaults queuenet simulation
// configurations. The core engine never sees a raw file: it consumes only
// configurations that passed this package's validation.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSeed seeds runs whose configuration does not pin one.
const DefaultSeed int64 = 42

// probSumTolerance absorbs float accumulation error in per-source
// probability sums.
const probSumTolerance = 1e-9

// ValidationError reports a configuration field that failed validation.
// The parse-versus-validate split matters to callers: parse failures wrap
// the YAML error, validation failures are always a *ValidationError.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("'%s': %s", e.Field, e.Reason)
}

// QueueConfig describes one G/G/c/K station. Departure bounds are required;
// absent capacity means unbounded; absent arrival bounds leave the
// zero-width sentinel meaning "no direct external inflow".
type QueueConfig struct {
	Servers          int      `yaml:"servers"`
	Capacity         *int     `yaml:"capacity,omitempty"`
	MinArrivalTime   float64  `yaml:"min_arrival_time,omitempty"`
	MaxArrivalTime   float64  `yaml:"max_arrival_time,omitempty"`
	MinDepartureTime *float64 `yaml:"min_departure_time"`
	MaxDepartureTime *float64 `yaml:"max_departure_time"`
}

// EdgeConfig is one probabilistic routing edge between queue list indices.
type EdgeConfig struct {
	Source      int     `yaml:"source"`
	Target      int     `yaml:"target"`
	Probability float64 `yaml:"probability"`
}

// Config is the full simulation configuration file.
type Config struct {
	// Seed pins the random stream. Zero or absent selects DefaultSeed.
	Seed            int64         `yaml:"seed,omitempty"`
	MaxRandoms      uint64        `yaml:"max_randoms"`
	InitArrivalTime *float64      `yaml:"init_arrival_time"`
	Queues          []QueueConfig `yaml:"queues"`
	Network         []EdgeConfig  `yaml:"network"`
}

// Load reads, parses, defaults and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes raw YAML with strict field checking (typos must cause
// errors), applies defaults, then validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills the optional fields that are not naturally defaulted
// by their zero value. Absent arrival bounds already decode to the
// zero-width sentinel and absent capacity stays nil (unbounded), so only
// the seed needs a hand.
func (c *Config) ApplyDefaults() {
	if c.Seed == 0 {
		c.Seed = DefaultSeed
	}
}

// Validate checks every field against the engine's input contract. The
// first violation is returned as a *ValidationError naming the field.
func (c *Config) Validate() error {
	if c.MaxRandoms == 0 {
		return &ValidationError{Field: "max_randoms", Reason: "must be a positive integer"}
	}
	if c.InitArrivalTime == nil {
		return &ValidationError{Field: "init_arrival_time", Reason: "missing required field in configuration file"}
	}
	if *c.InitArrivalTime < 0 {
		return &ValidationError{Field: "init_arrival_time", Reason: "must be a non-negative number"}
	}
	if len(c.Queues) == 0 {
		return &ValidationError{Field: "queues", Reason: "no queues defined in the configuration file"}
	}
	for i := range c.Queues {
		if err := c.Queues[i].validate(i); err != nil {
			return err
		}
	}

	sums := make([]float64, len(c.Queues))
	for i, ec := range c.Network {
		prefix := fmt.Sprintf("network[%d]", i)
		if ec.Source < 0 || ec.Source >= len(c.Queues) {
			return &ValidationError{Field: prefix + ".source", Reason: "must be a valid queue index"}
		}
		if ec.Target < 0 || ec.Target >= len(c.Queues) {
			return &ValidationError{Field: prefix + ".target", Reason: "must be a valid queue index"}
		}
		if ec.Probability < 0 || ec.Probability > 1 {
			return &ValidationError{Field: prefix + ".probability", Reason: "probability must be between 0.0 and 1.0"}
		}
		sums[ec.Source] += ec.Probability
	}
	// The sum may fall short of 1: the remainder is the probability of
	// leaving the network after service.
	for src, sum := range sums {
		if sum > 1+probSumTolerance {
			return &ValidationError{
				Field:  "network",
				Reason: fmt.Sprintf("total probability from queue %d is %.2f, must not exceed 1 (100%%)", src, sum),
			}
		}
	}
	return nil
}

func (qc *QueueConfig) validate(idx int) error {
	prefix := fmt.Sprintf("queues[%d]", idx)
	if qc.Servers < 1 {
		return &ValidationError{Field: prefix + ".servers", Reason: "must be a positive integer"}
	}
	if qc.Capacity != nil && *qc.Capacity < 1 {
		return &ValidationError{Field: prefix + ".capacity", Reason: "must be a positive integer when present"}
	}
	if qc.MinDepartureTime == nil {
		return &ValidationError{Field: prefix + ".min_departure_time", Reason: "missing required field in queue configuration"}
	}
	if qc.MaxDepartureTime == nil {
		return &ValidationError{Field: prefix + ".max_departure_time", Reason: "missing required field in queue configuration"}
	}
	if *qc.MinDepartureTime < 0 || *qc.MaxDepartureTime < 0 {
		return &ValidationError{Field: prefix + ".min_departure_time", Reason: "departure times must be non-negative"}
	}
	if *qc.MinDepartureTime > *qc.MaxDepartureTime {
		return &ValidationError{Field: prefix + ".min_departure_time", Reason: "must not exceed max_departure_time"}
	}
	if qc.MinArrivalTime < 0 || qc.MaxArrivalTime < 0 {
		return &ValidationError{Field: prefix + ".min_arrival_time", Reason: "arrival times must be non-negative"}
	}
	if qc.MinArrivalTime > qc.MaxArrivalTime {
		return &ValidationError{Field: prefix + ".min_arrival_time", Reason: "must not exceed max_arrival_time"}
	}
	return nil
}
