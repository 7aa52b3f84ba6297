// Implements the QueueNode, the per-queue state the driver mutates during
// dispatch: occupancy, the time-weighted occupancy histogram, loss counts,
// and the outgoing routing table.

package sim

import "fmt"

// InfiniteCapacity marks a queue node that never rejects an admission.
const InfiniteCapacity = -1

// RoutingEdge is one outgoing edge of a queue node: the probability that a
// client completing service there moves on to Target. A node's edges are
// kept in configuration declaration order — routing is order-sensitive at
// probability boundaries, so the order must never be normalized or sorted.
type RoutingEdge struct {
	Target      NodeID
	Probability float64
}

// QueueNode is one G/G/c/K station: c = Servers, K = Capacity. Topology and
// intervals are fixed at construction; Occupancy, Histogram and Losses are
// mutated exclusively by the driver during a run and are read-only
// afterward for reporting.
type QueueNode struct {
	ID       NodeID
	Capacity int // InfiniteCapacity or >= 1
	Servers  int

	// Arrival is the uniform support for external inter-arrival times.
	// The zero-width [0,0] sentinel means the node has no direct external
	// inflow: clients only reach it through passages.
	Arrival   Interval
	Departure Interval

	// Occupancy counts clients present, in service or waiting.
	// Invariant: 0 <= Occupancy <= Capacity at all times.
	Occupancy int

	// Histogram[level] is the cumulative simulated time the node spent at
	// that occupancy level. len == Capacity+1 for finite nodes; grown on
	// demand for infinite ones. Entries sum to the final clock once a run
	// completes.
	Histogram []float64

	// Losses counts arrivals rejected because the node was at capacity.
	Losses uint64

	Routing []RoutingEdge
}

// NewQueueNode builds a node from an already-validated spec, re-checking
// only the structural invariants (positive capacity and servers,
// non-inverted intervals) and failing fast with a descriptive error.
func NewQueueNode(id NodeID, spec NodeSpec) (*QueueNode, error) {
	if spec.Servers < 1 {
		return nil, fmt.Errorf("queue %d: servers must be >= 1, got %d", id, spec.Servers)
	}
	if spec.Capacity != InfiniteCapacity && spec.Capacity < 1 {
		return nil, fmt.Errorf("queue %d: capacity must be >= 1 or InfiniteCapacity, got %d", id, spec.Capacity)
	}
	if spec.Arrival.Min > spec.Arrival.Max {
		return nil, fmt.Errorf("queue %d: arrival interval min %v exceeds max %v", id, spec.Arrival.Min, spec.Arrival.Max)
	}
	if spec.Departure.Min > spec.Departure.Max {
		return nil, fmt.Errorf("queue %d: departure interval min %v exceeds max %v", id, spec.Departure.Min, spec.Departure.Max)
	}

	n := &QueueNode{
		ID:        id,
		Capacity:  spec.Capacity,
		Servers:   spec.Servers,
		Arrival:   spec.Arrival,
		Departure: spec.Departure,
	}
	if spec.Capacity != InfiniteCapacity {
		// One bucket per reachable occupancy level, zero through capacity.
		n.Histogram = make([]float64, spec.Capacity+1)
	}
	return n, nil
}

// ChooseNextHop decides where a client entering service here will go when
// its service completes. It draws one normalized value and walks the edges
// in declaration order, accumulating probability; the first edge whose
// accumulated sum exceeds the draw wins. When no edge wins — including the
// no-edges case — the client is bound for Exterior. Always consumes exactly
// one draw.
func (n *QueueNode) ChooseNextHop(r *RandomStream) NodeID {
	draw := r.NextNormalized()
	acc := 0.0
	for _, edge := range n.Routing {
		acc += edge.Probability
		if draw < acc {
			return edge.Target
		}
	}
	return Exterior
}

// isFull reports whether an admission right now would be rejected.
func (n *QueueNode) isFull() bool {
	return n.Capacity != InfiniteCapacity && n.Occupancy >= n.Capacity
}

// accumulate credits elapsed simulated time to the node's current occupancy
// level, growing the histogram when an infinite-capacity node reaches a
// level it has never seen.
func (n *QueueNode) accumulate(elapsed float64) {
	for len(n.Histogram) <= n.Occupancy {
		n.Histogram = append(n.Histogram, 0)
	}
	n.Histogram[n.Occupancy] += elapsed
}

func (n *QueueNode) String() string {
	if n.Capacity == InfiniteCapacity {
		return fmt.Sprintf("%s G/G/%d", n.ID, n.Servers)
	}
	return fmt.Sprintf("%s G/G/%d/%d", n.ID, n.Servers, n.Capacity)
}
