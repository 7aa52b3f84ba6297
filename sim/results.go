package sim

// NodeStats is the read-only snapshot of one queue node after a run.
type NodeStats struct {
	ID        NodeID    `yaml:"id" json:"id"`
	Capacity  int       `yaml:"capacity" json:"capacity"`
	Servers   int       `yaml:"servers" json:"servers"`
	Arrival   Interval  `yaml:"arrival" json:"arrival"`
	Departure Interval  `yaml:"departure" json:"departure"`
	Histogram []float64 `yaml:"histogram" json:"histogram"`
	Losses    uint64    `yaml:"losses" json:"losses"`
}

// Results is the full outcome of one run: pure data, handed to the
// reporting layer. Occupancy probabilities (histogram level / clock) are
// derived there, not here.
type Results struct {
	Seed     int64       `yaml:"seed" json:"seed"`
	MaxDraws uint64      `yaml:"max_draws" json:"max_draws"`
	Draws    uint64      `yaml:"draws" json:"draws"`
	Clock    float64     `yaml:"clock" json:"clock"`
	Drained  bool        `yaml:"drained" json:"drained"`
	Nodes    []NodeStats `yaml:"queues" json:"queues"`
}

// Results snapshots the simulator's accumulated state. Histograms are
// copied so the snapshot stays stable even if the caller reuses or
// inspects the network afterward.
func (s *Simulator) Results() *Results {
	res := &Results{
		Seed:     s.Seed,
		MaxDraws: s.MaxDraws,
		Draws:    s.Rand.Draws(),
		Clock:    s.Clock,
		Drained:  s.Drained,
		Nodes:    make([]NodeStats, 0, s.Network.Len()),
	}
	for _, node := range s.Network.Nodes() {
		hist := make([]float64, len(node.Histogram))
		copy(hist, node.Histogram)
		res.Nodes = append(res.Nodes, NodeStats{
			ID:        node.ID,
			Capacity:  node.Capacity,
			Servers:   node.Servers,
			Arrival:   node.Arrival,
			Departure: node.Departure,
			Histogram: hist,
			Losses:    node.Losses,
		})
	}
	return res
}
