package sim

import "fmt"

// NodeID identifies a queue node within a network. Valid ids are the
// 0-based indices assigned at network construction, in configuration
// order, so ids are reproducible across process restarts.
type NodeID int

// Exterior is the sentinel NodeID for "outside the network": the source of
// every external arrival and the destination of every client that leaves
// for good. Distinct from all valid queue ids.
const Exterior NodeID = -1

func (id NodeID) String() string {
	if id == Exterior {
		return "EXTERIOR"
	}
	return fmt.Sprintf("queue-%d", id)
}

// EventKind discriminates the three transitions the driver dispatches on.
type EventKind int

const (
	// KindArrival is an external client entering the network (source is
	// always Exterior). Arrival events are the only ones that re-arm the
	// external inflow.
	KindArrival EventKind = iota

	// KindPassage is a service completion whose freed client moves on to
	// another node in the network.
	KindPassage

	// KindDeparture is a service completion whose freed client leaves the
	// network (target is always Exterior).
	KindDeparture
)

func (k EventKind) String() string {
	switch k {
	case KindArrival:
		return "ARRIVAL"
	case KindPassage:
		return "PASSAGE"
	case KindDeparture:
		return "DEPARTURE"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is an immutable dispatch record. Total order is by Time alone:
// Kind, Source and Target carry payload and never participate in ordering.
// Ties are broken by scheduler insertion sequence, which keeps dispatch
// deterministic without making the payload comparable.
type Event struct {
	Time   float64
	Kind   EventKind
	Source NodeID
	Target NodeID
}

func (e Event) String() string {
	return fmt.Sprintf("%s(%s -> %s) at %v", e.Kind, e.Source, e.Target, e.Time)
}
