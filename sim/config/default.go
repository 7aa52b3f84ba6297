package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFilename is where generated configurations land by default.
const DefaultFilename = "configs.yaml"

// Default returns the canonical three-queue example configuration: an
// entry queue with external arrivals feeding two downstream queues.
func Default() *Config {
	return &Config{
		Seed:            DefaultSeed,
		MaxRandoms:      100_000,
		InitArrivalTime: fptr(2.0),
		Queues: []QueueConfig{
			{
				Servers:          2,
				Capacity:         iptr(5),
				MinArrivalTime:   1.5,
				MaxArrivalTime:   2.0,
				MinDepartureTime: fptr(2.0),
				MaxDepartureTime: fptr(5.0),
			},
			{
				Servers:          1,
				Capacity:         iptr(3),
				MinDepartureTime: fptr(3.5),
				MaxDepartureTime: fptr(5.0),
			},
			{
				Servers:          1,
				Capacity:         iptr(2),
				MinDepartureTime: fptr(2.0),
				MaxDepartureTime: fptr(4.0),
			},
		},
		Network: []EdgeConfig{
			{Source: 0, Target: 1, Probability: 0.5},
			{Source: 0, Target: 2, Probability: 0.3},
			{Source: 1, Target: 2, Probability: 0.6},
		},
	}
}

// WriteDefault writes the default configuration as YAML to path, refusing
// to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists, refusing to overwrite", path)
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshaling default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

func fptr(v float64) *float64 { return &v }

func iptr(v int) *int { return &v }
