package sim

import (
	"strings"
	"testing"
)

// === Network Tests ===

func twoNodeSpecs() []NodeSpec {
	return []NodeSpec{
		{Servers: 2, Capacity: 5, Arrival: Interval{Min: 1.5, Max: 2.0}, Departure: Interval{Min: 2.0, Max: 5.0}},
		{Servers: 1, Capacity: 3, Departure: Interval{Min: 3.5, Max: 5.0}},
	}
}

func TestNewNetwork_AssignsIDsByListOrder(t *testing.T) {
	// BDD: Node ids are list positions, zero-based
	nw, err := NewNetwork(twoNodeSpecs(), nil)
	if err != nil {
		t.Fatalf("NewNetwork returned error: %v", err)
	}

	if nw.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", nw.Len())
	}
	for i, node := range nw.Nodes() {
		if node.ID != NodeID(i) {
			t.Errorf("node %d has id %d, want %d", i, node.ID, i)
		}
	}
	if nw.Node(1).Servers != 1 {
		t.Errorf("Node(1).Servers = %d, want 1", nw.Node(1).Servers)
	}
}

func TestNewNetwork_AttachesEdgesInDeclarationOrder(t *testing.T) {
	edges := []EdgeSpec{
		{Source: 0, Target: 1, Probability: 0.5},
		{Source: 0, Target: 0, Probability: 0.3},
	}
	nw, err := NewNetwork(twoNodeSpecs(), edges)
	if err != nil {
		t.Fatalf("NewNetwork returned error: %v", err)
	}

	routing := nw.Node(0).Routing
	if len(routing) != 2 {
		t.Fatalf("node 0 routing length = %d, want 2", len(routing))
	}
	if routing[0].Target != 1 || routing[0].Probability != 0.5 {
		t.Errorf("routing[0] = %+v, want target 1 probability 0.5", routing[0])
	}
	if routing[1].Target != 0 || routing[1].Probability != 0.3 {
		t.Errorf("routing[1] = %+v, want target 0 probability 0.3", routing[1])
	}
	if len(nw.Node(1).Routing) != 0 {
		t.Errorf("node 1 routing length = %d, want 0", len(nw.Node(1).Routing))
	}
}

func TestNewNetwork_Validation(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []NodeSpec
		edges   []EdgeSpec
		wantErr string
	}{
		{
			name:    "no nodes",
			nodes:   nil,
			wantErr: "at least one queue node",
		},
		{
			name:    "source out of range",
			nodes:   twoNodeSpecs(),
			edges:   []EdgeSpec{{Source: 5, Target: 1, Probability: 0.5}},
			wantErr: "source 5 is not a valid queue id",
		},
		{
			name:    "negative source",
			nodes:   twoNodeSpecs(),
			edges:   []EdgeSpec{{Source: -1, Target: 1, Probability: 0.5}},
			wantErr: "source -1 is not a valid queue id",
		},
		{
			name:    "target out of range",
			nodes:   twoNodeSpecs(),
			edges:   []EdgeSpec{{Source: 0, Target: 2, Probability: 0.5}},
			wantErr: "target 2 is not a valid queue id",
		},
		{
			name:    "probability above one",
			nodes:   twoNodeSpecs(),
			edges:   []EdgeSpec{{Source: 0, Target: 1, Probability: 1.5}},
			wantErr: "outside [0, 1]",
		},
		{
			name:    "negative probability",
			nodes:   twoNodeSpecs(),
			edges:   []EdgeSpec{{Source: 0, Target: 1, Probability: -0.1}},
			wantErr: "outside [0, 1]",
		},
		{
			name:  "per-source sum above one",
			nodes: twoNodeSpecs(),
			edges: []EdgeSpec{
				{Source: 0, Target: 1, Probability: 0.6},
				{Source: 0, Target: 0, Probability: 0.5},
			},
			wantErr: "sum to",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNetwork(tt.nodes, tt.edges)
			if err == nil {
				t.Fatal("NewNetwork succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewNetwork_ProbabilitySumTolerance(t *testing.T) {
	// BDD: Sums within epsilon of 1 pass; anything clearly above fails
	exact := []EdgeSpec{
		{Source: 0, Target: 1, Probability: 0.5},
		{Source: 0, Target: 0, Probability: 0.5},
	}
	if _, err := NewNetwork(twoNodeSpecs(), exact); err != nil {
		t.Errorf("sum exactly 1 rejected: %v", err)
	}

	withinEps := []EdgeSpec{
		{Source: 0, Target: 1, Probability: 0.5},
		{Source: 0, Target: 0, Probability: 0.5 + 5e-10},
	}
	if _, err := NewNetwork(twoNodeSpecs(), withinEps); err != nil {
		t.Errorf("sum within tolerance rejected: %v", err)
	}

	beyondEps := []EdgeSpec{
		{Source: 0, Target: 1, Probability: 0.5},
		{Source: 0, Target: 0, Probability: 0.51},
	}
	if _, err := NewNetwork(twoNodeSpecs(), beyondEps); err == nil {
		t.Error("sum 1.01 accepted, want error")
	}
}

func TestNewNetwork_PropagatesNodeErrors(t *testing.T) {
	nodes := []NodeSpec{{Servers: 0, Capacity: 5, Departure: Interval{Min: 1, Max: 2}}}
	_, err := NewNetwork(nodes, nil)
	if err == nil {
		t.Fatal("NewNetwork accepted zero-server node, want error")
	}
	if !strings.Contains(err.Error(), "servers must be >= 1") {
		t.Errorf("error = %q, want node validation message", err)
	}
}
