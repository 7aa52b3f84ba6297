package sim

import "fmt"

// probabilitySumTolerance absorbs float accumulation error when checking
// that a node's outgoing probabilities sum to at most 1.
const probabilitySumTolerance = 1e-9

// NodeSpec carries the validated per-queue parameters a Network is built
// from. Capacity uses InfiniteCapacity for uncapped nodes.
type NodeSpec struct {
	Servers   int
	Capacity  int
	Arrival   Interval
	Departure Interval
}

// EdgeSpec is one validated routing edge between two queue ids.
type EdgeSpec struct {
	Source      NodeID
	Target      NodeID
	Probability float64
}

// Network is the set of queue nodes plus the routing edges embedded in
// them, indexed by NodeID in construction order. Topology is immutable
// after construction; only per-node mutable state changes during a run.
type Network struct {
	nodes []*QueueNode
}

// NewNetwork builds the node set and attaches routing edges, assigning ids
// by list position. It re-checks the invariants the configuration layer is
// supposed to have established: at least one node, edge endpoints in range,
// probabilities in [0,1], and per-source probability sums <= 1.
func NewNetwork(nodes []NodeSpec, edges []EdgeSpec) (*Network, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("network needs at least one queue node")
	}

	nw := &Network{nodes: make([]*QueueNode, 0, len(nodes))}
	for i, spec := range nodes {
		node, err := NewQueueNode(NodeID(i), spec)
		if err != nil {
			return nil, err
		}
		nw.nodes = append(nw.nodes, node)
	}

	for i, edge := range edges {
		if edge.Source < 0 || int(edge.Source) >= len(nodes) {
			return nil, fmt.Errorf("edge %d: source %d is not a valid queue id", i, edge.Source)
		}
		if edge.Target < 0 || int(edge.Target) >= len(nodes) {
			return nil, fmt.Errorf("edge %d: target %d is not a valid queue id", i, edge.Target)
		}
		if edge.Probability < 0 || edge.Probability > 1 {
			return nil, fmt.Errorf("edge %d: probability %v outside [0, 1]", i, edge.Probability)
		}
		src := nw.nodes[edge.Source]
		src.Routing = append(src.Routing, RoutingEdge{
			Target:      edge.Target,
			Probability: edge.Probability,
		})
	}

	for _, node := range nw.nodes {
		sum := 0.0
		for _, edge := range node.Routing {
			sum += edge.Probability
		}
		if sum > 1+probabilitySumTolerance {
			return nil, fmt.Errorf("%s: outgoing probabilities sum to %v, must be <= 1", node.ID, sum)
		}
	}

	return nw, nil
}

// Node returns the queue node with the given id. Ids are minted at
// construction; an id outside [0, Len) is a caller bug.
func (nw *Network) Node(id NodeID) *QueueNode {
	return nw.nodes[id]
}

// Len returns the number of queue nodes.
func (nw *Network) Len() int {
	return len(nw.nodes)
}

// Nodes returns the nodes in id order. The slice is the network's own;
// callers must treat it as read-only.
func (nw *Network) Nodes() []*QueueNode {
	return nw.nodes
}
