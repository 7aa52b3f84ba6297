package config

import (
	"github.com/queuenet-sim/queuenet-sim/sim"
)

// BuildNetwork converts a validated configuration into the engine's node
// and edge specs and assembles the network. Queue ids are the configuration
// list indices; edge declaration order is preserved because routing is
// order-sensitive.
func BuildNetwork(cfg *Config) (*sim.Network, error) {
	nodes := make([]sim.NodeSpec, 0, len(cfg.Queues))
	for _, qc := range cfg.Queues {
		capacity := sim.InfiniteCapacity
		if qc.Capacity != nil {
			capacity = *qc.Capacity
		}
		arrival, err := sim.NewInterval(qc.MinArrivalTime, qc.MaxArrivalTime)
		if err != nil {
			return nil, err
		}
		departure, err := sim.NewInterval(*qc.MinDepartureTime, *qc.MaxDepartureTime)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, sim.NodeSpec{
			Servers:   qc.Servers,
			Capacity:  capacity,
			Arrival:   arrival,
			Departure: departure,
		})
	}

	edges := make([]sim.EdgeSpec, 0, len(cfg.Network))
	for _, ec := range cfg.Network {
		edges = append(edges, sim.EdgeSpec{
			Source:      sim.NodeID(ec.Source),
			Target:      sim.NodeID(ec.Target),
			Probability: ec.Probability,
		})
	}

	return sim.NewNetwork(nodes, edges)
}

// BuildSimulator assembles a ready-to-run simulator from a validated
// configuration: fresh network, fresh stream, primed scheduler.
func BuildSimulator(cfg *Config) (*sim.Simulator, error) {
	network, err := BuildNetwork(cfg)
	if err != nil {
		return nil, err
	}
	return sim.NewSimulator(network, cfg.Seed, cfg.MaxRandoms, *cfg.InitArrivalTime), nil
}
