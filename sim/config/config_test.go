package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validYAML is a minimal configuration exercising every field once.
const validYAML = `
seed: 7
max_randoms: 500
init_arrival_time: 2.0
queues:
  - servers: 2
    capacity: 5
    min_arrival_time: 1.5
    max_arrival_time: 2.0
    min_departure_time: 2.0
    max_departure_time: 5.0
  - servers: 1
    min_departure_time: 3.5
    max_departure_time: 5.0
network:
  - source: 0
    target: 1
    probability: 0.5
`

func TestParse_ValidConfig(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, uint64(500), cfg.MaxRandoms)
	require.NotNil(t, cfg.InitArrivalTime)
	assert.Equal(t, 2.0, *cfg.InitArrivalTime)
	require.Len(t, cfg.Queues, 2)

	q0 := cfg.Queues[0]
	assert.Equal(t, 2, q0.Servers)
	require.NotNil(t, q0.Capacity)
	assert.Equal(t, 5, *q0.Capacity)
	assert.Equal(t, 1.5, q0.MinArrivalTime)
	require.NotNil(t, q0.MinDepartureTime)
	assert.Equal(t, 2.0, *q0.MinDepartureTime)

	// Queue 1 omits capacity (unbounded) and arrivals (no external inflow).
	q1 := cfg.Queues[1]
	assert.Nil(t, q1.Capacity)
	assert.Equal(t, 0.0, q1.MinArrivalTime)
	assert.Equal(t, 0.0, q1.MaxArrivalTime)

	require.Len(t, cfg.Network, 1)
	assert.Equal(t, EdgeConfig{Source: 0, Target: 1, Probability: 0.5}, cfg.Network[0])
}

func TestParse_UnknownFieldRejected(t *testing.T) {
	// Typos must fail loudly instead of silently running with defaults.
	bad := `
max_randoms: 100
init_arrival_time: 1.0
max_rando: 5
queues:
  - servers: 1
    min_departure_time: 1.0
    max_departure_time: 2.0
`
	_, err := Parse([]byte(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config YAML")
	assert.Contains(t, err.Error(), "max_rando")
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("queues: ["))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config YAML")
}

func TestParse_SeedDefaultsWhenAbsent(t *testing.T) {
	yamlNoSeed := `
max_randoms: 100
init_arrival_time: 1.0
queues:
  - servers: 1
    min_departure_time: 1.0
    max_departure_time: 2.0
`
	cfg, err := Parse([]byte(yamlNoSeed))
	require.NoError(t, err)
	assert.Equal(t, DefaultSeed, cfg.Seed)
}

func TestValidate_FieldErrors(t *testing.T) {
	base := func() *Config {
		cfg := Default()
		cfg.MaxRandoms = 100
		return cfg
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:      "zero max_randoms",
			mutate:    func(c *Config) { c.MaxRandoms = 0 },
			wantField: "max_randoms",
		},
		{
			name:      "missing init_arrival_time",
			mutate:    func(c *Config) { c.InitArrivalTime = nil },
			wantField: "init_arrival_time",
		},
		{
			name:      "negative init_arrival_time",
			mutate:    func(c *Config) { c.InitArrivalTime = fptr(-1) },
			wantField: "init_arrival_time",
		},
		{
			name:      "no queues",
			mutate:    func(c *Config) { c.Queues = nil; c.Network = nil },
			wantField: "queues",
		},
		{
			name:      "zero servers",
			mutate:    func(c *Config) { c.Queues[1].Servers = 0 },
			wantField: "queues[1].servers",
		},
		{
			name:      "zero capacity",
			mutate:    func(c *Config) { c.Queues[0].Capacity = iptr(0) },
			wantField: "queues[0].capacity",
		},
		{
			name:      "missing min_departure_time",
			mutate:    func(c *Config) { c.Queues[0].MinDepartureTime = nil },
			wantField: "queues[0].min_departure_time",
		},
		{
			name:      "missing max_departure_time",
			mutate:    func(c *Config) { c.Queues[0].MaxDepartureTime = nil },
			wantField: "queues[0].max_departure_time",
		},
		{
			name:      "negative departure time",
			mutate:    func(c *Config) { c.Queues[0].MinDepartureTime = fptr(-2) },
			wantField: "queues[0].min_departure_time",
		},
		{
			name: "inverted departure interval",
			mutate: func(c *Config) {
				c.Queues[0].MinDepartureTime = fptr(5)
				c.Queues[0].MaxDepartureTime = fptr(2)
			},
			wantField: "queues[0].min_departure_time",
		},
		{
			name:      "negative arrival time",
			mutate:    func(c *Config) { c.Queues[0].MinArrivalTime = -1 },
			wantField: "queues[0].min_arrival_time",
		},
		{
			name: "inverted arrival interval",
			mutate: func(c *Config) {
				c.Queues[0].MinArrivalTime = 3
				c.Queues[0].MaxArrivalTime = 1
			},
			wantField: "queues[0].min_arrival_time",
		},
		{
			name:      "edge source out of range",
			mutate:    func(c *Config) { c.Network[0].Source = 9 },
			wantField: "network[0].source",
		},
		{
			name:      "edge source negative",
			mutate:    func(c *Config) { c.Network[0].Source = -1 },
			wantField: "network[0].source",
		},
		{
			name:      "edge target out of range",
			mutate:    func(c *Config) { c.Network[0].Target = 9 },
			wantField: "network[0].target",
		},
		{
			name:      "probability above one",
			mutate:    func(c *Config) { c.Network[0].Probability = 1.5 },
			wantField: "network[0].probability",
		},
		{
			name:      "probability negative",
			mutate:    func(c *Config) { c.Network[1].Probability = -0.2 },
			wantField: "network[1].probability",
		},
		{
			name: "per-source sum above one",
			mutate: func(c *Config) {
				c.Network[0].Probability = 0.6
				c.Network[1].Probability = 0.5
			},
			wantField: "network",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "error type = %T, want *ValidationError", err)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestValidate_PartialRoutingMassAllowed(t *testing.T) {
	// Outgoing probabilities may sum below 1; the remainder leaves the
	// network after service.
	cfg := Default()
	require.NoError(t, cfg.Validate())
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Field: "max_randoms", Reason: "must be a positive integer"}
	assert.Equal(t, "'max_randoms': must be a positive integer", err.Error())
}

// === Load Tests ===

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validYAML), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Len(t, cfg.Queues, 2)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

// === Default Tests ===

func TestDefault_Validates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultSeed, cfg.Seed)
	assert.Equal(t, uint64(100_000), cfg.MaxRandoms)
	require.Len(t, cfg.Queues, 3)
	require.Len(t, cfg.Network, 3)

	// Only the entry queue has external inflow.
	assert.Equal(t, 1.5, cfg.Queues[0].MinArrivalTime)
	assert.Equal(t, 0.0, cfg.Queues[1].MinArrivalTime)
	assert.Equal(t, 0.0, cfg.Queues[2].MinArrivalTime)
}

func TestWriteDefault_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs.yaml")
	require.NoError(t, WriteDefault(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)
}

func TestWriteDefault_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keep me"), 0644))

	err := WriteDefault(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to overwrite")

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "keep me", string(data), "existing file must be untouched")
}
