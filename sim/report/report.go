// Package report derives the printable digest of a simulation run and
// renders or serializes it. All probability math lives here, not in the
// engine: the engine hands over raw histograms and the final clock.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/queuenet-sim/queuenet-sim/sim"
)

// LevelStat is one occupancy level of one queue: the simulated time spent
// at that level and the derived steady-state probability.
type LevelStat struct {
	Level       int     `yaml:"level" json:"level"`
	Time        float64 `yaml:"time" json:"time"`
	Probability float64 `yaml:"probability" json:"probability"`
}

// QueueReport is the derived view of one queue node.
type QueueReport struct {
	ID            int          `yaml:"id" json:"id"`
	Signature     string       `yaml:"signature" json:"signature"`
	Servers       int          `yaml:"servers" json:"servers"`
	Capacity      int          `yaml:"capacity" json:"capacity"`
	Arrival       sim.Interval `yaml:"arrival" json:"arrival"`
	Departure     sim.Interval `yaml:"departure" json:"departure"`
	Levels        []LevelStat  `yaml:"levels" json:"levels"`
	MeanOccupancy float64      `yaml:"mean_occupancy" json:"mean_occupancy"`
	Utilization   float64      `yaml:"utilization" json:"utilization"`
	Losses        uint64       `yaml:"losses" json:"losses"`
}

// Report is the full digest of one run.
type Report struct {
	Seed        int64         `yaml:"seed" json:"seed"`
	Clock       float64       `yaml:"clock" json:"clock"`
	Draws       uint64        `yaml:"draws" json:"draws"`
	MaxDraws    uint64        `yaml:"max_draws" json:"max_draws"`
	Drained     bool          `yaml:"drained" json:"drained"`
	TotalLosses uint64        `yaml:"total_losses" json:"total_losses"`
	Queues      []QueueReport `yaml:"queues" json:"queues"`
}

// Build derives the digest from raw results: per-level probabilities
// (time at level / clock), time-weighted mean occupancy, and a server
// utilization estimate per queue.
func Build(res *sim.Results) *Report {
	rep := &Report{
		Seed:     res.Seed,
		Clock:    res.Clock,
		Draws:    res.Draws,
		MaxDraws: res.MaxDraws,
		Drained:  res.Drained,
		Queues:   make([]QueueReport, 0, len(res.Nodes)),
	}
	for _, node := range res.Nodes {
		qr := buildQueue(node, res.Clock)
		rep.TotalLosses += qr.Losses
		rep.Queues = append(rep.Queues, qr)
	}
	return rep
}

func buildQueue(node sim.NodeStats, clock float64) QueueReport {
	hist := node.Histogram
	if node.Capacity == sim.InfiniteCapacity {
		// Unbounded queues grow their histogram on demand; drop trailing
		// levels that accumulated no time.
		for len(hist) > 0 && hist[len(hist)-1] == 0 {
			hist = hist[:len(hist)-1]
		}
	}

	qr := QueueReport{
		ID:        int(node.ID),
		Signature: signature(node),
		Servers:   node.Servers,
		Capacity:  node.Capacity,
		Arrival:   node.Arrival,
		Departure: node.Departure,
		Losses:    node.Losses,
		Levels:    make([]LevelStat, 0, len(hist)),
	}

	levels := make([]float64, 0, len(hist))
	weights := make([]float64, 0, len(hist))
	busyTime := 0.0
	for level, t := range hist {
		prob := 0.0
		if clock > 0 {
			prob = t / clock
		}
		qr.Levels = append(qr.Levels, LevelStat{Level: level, Time: t, Probability: prob})
		levels = append(levels, float64(level))
		weights = append(weights, t)
		// A level occupies min(level, servers) servers; the rest wait.
		busyTime += float64(min(level, node.Servers)) * t
	}
	if clock > 0 {
		qr.MeanOccupancy = stat.Mean(levels, weights)
		qr.Utilization = busyTime / (float64(node.Servers) * clock)
	}
	return qr
}

// signature renders the Kendall notation of a node: G/G/c for unbounded
// queues, G/G/c/K for finite ones.
func signature(node sim.NodeStats) string {
	if node.Capacity == sim.InfiniteCapacity {
		return fmt.Sprintf("G/G/%d", node.Servers)
	}
	return fmt.Sprintf("G/G/%d/%d", node.Servers, node.Capacity)
}

// Save writes the report to a file, choosing the encoding by extension:
// .yaml/.yml or .json.
func (r *Report) Save(path string) error {
	var (
		data []byte
		err  error
	)
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(r)
	case ".json":
		data, err = json.MarshalIndent(r, "", "  ")
	default:
		return fmt.Errorf("unsupported report file extension %q (want .yaml, .yml or .json)", ext)
	}
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
