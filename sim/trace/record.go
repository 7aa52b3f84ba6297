// Package trace provides event-dispatch trace recording for simulation runs.
// This package has no dependencies on sim/ — it stores pure data types, so
// the engine can import it without a cycle.
package trace

// Record captures a single dispatched event in dispatch order.
type Record struct {
	Seq    uint64  `yaml:"seq" json:"seq"`
	Time   float64 `yaml:"time" json:"time"`
	Kind   string  `yaml:"kind" json:"kind"`
	Source int     `yaml:"source" json:"source"` // -1 means exterior
	Target int     `yaml:"target" json:"target"` // -1 means exterior
}
