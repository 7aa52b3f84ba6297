package replicate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"
)

// NodeSummary aggregates one queue across replications.
type NodeSummary struct {
	ID            int     `yaml:"id" json:"id"`
	MeanLosses    float64 `yaml:"mean_losses" json:"mean_losses"`
	StdDevLosses  float64 `yaml:"stddev_losses" json:"stddev_losses"`
	MeanOccupancy float64 `yaml:"mean_occupancy" json:"mean_occupancy"`
}

// Summary aggregates a replication sweep.
type Summary struct {
	Count       int           `yaml:"count" json:"count"`
	MeanClock   float64       `yaml:"mean_clock" json:"mean_clock"`
	StdDevClock float64       `yaml:"stddev_clock" json:"stddev_clock"`
	Queues      []NodeSummary `yaml:"queues" json:"queues"`
}

// Summarize aggregates per-replication outcomes: mean and standard
// deviation of the final clock and of each queue's losses, plus the mean
// of each queue's time-weighted mean occupancy. Safe for empty input.
func Summarize(runs []RunResult) *Summary {
	sum := &Summary{Count: len(runs)}
	if len(runs) == 0 {
		return sum
	}

	clocks := make([]float64, 0, len(runs))
	for _, r := range runs {
		clocks = append(clocks, r.Results.Clock)
	}
	sum.MeanClock = stat.Mean(clocks, nil)
	sum.StdDevClock = stdDev(clocks)

	for n := range runs[0].Results.Nodes {
		losses := make([]float64, 0, len(runs))
		occs := make([]float64, 0, len(runs))
		for _, r := range runs {
			ns := r.Results.Nodes[n]
			losses = append(losses, float64(ns.Losses))
			occs = append(occs, meanOccupancy(ns.Histogram, r.Results.Clock))
		}
		sum.Queues = append(sum.Queues, NodeSummary{
			ID:            n,
			MeanLosses:    stat.Mean(losses, nil),
			StdDevLosses:  stdDev(losses),
			MeanOccupancy: stat.Mean(occs, nil),
		})
	}
	return sum
}

// Save writes the summary to a file, choosing the encoding by extension:
// .yaml/.yml or .json.
func (s *Summary) Save(path string) error {
	var (
		data []byte
		err  error
	)
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(s)
	case ".json":
		data, err = json.MarshalIndent(s, "", "  ")
	default:
		return fmt.Errorf("unsupported summary file extension %q (want .yaml, .yml or .json)", ext)
	}
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// stdDev is the sample standard deviation, defined as 0 for a single
// observation instead of gonum's NaN.
func stdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}

// meanOccupancy is the time-weighted mean occupancy of one histogram.
func meanOccupancy(hist []float64, clock float64) float64 {
	if clock <= 0 || len(hist) == 0 {
		return 0
	}
	levels := make([]float64, len(hist))
	for i := range hist {
		levels[i] = float64(i)
	}
	return stat.Mean(levels, hist)
}
