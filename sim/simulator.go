// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/queuenet-sim/queuenet-sim/sim/trace"
)

// Simulator is the driver of one simulation run. It exclusively owns the
// clock, the network's mutable state, the scheduler, and the random stream
// for the duration of the run — there is no package-level state, so any
// number of Simulators can run concurrently as long as each has its own
// Network.
//
// The run is one tight synchronous dispatch loop. Termination is bounded by
// work performed (random draws), not by simulated or wall-clock time.
type Simulator struct {
	Clock    float64
	Network  *Network
	Events   *EventScheduler
	Rand     *RandomStream
	Seed     int64
	MaxDraws uint64

	// Drained records that the scheduler emptied before the draw budget
	// was exhausted, generally a sign of an absorbing topology.
	Drained bool

	// Trace, when non-nil, records every dispatched event.
	Trace *trace.Trace

	ran bool
}

// NewSimulator wires a single run: a fresh stream seeded with seed, a
// scheduler primed with the first external arrival into queue 0 at
// initArrival, and the network whose mutable state this run will own.
// The same Network must never be given to two simulators at once.
func NewSimulator(network *Network, seed int64, maxDraws uint64, initArrival float64) *Simulator {
	s := &Simulator{
		Network:  network,
		Events:   NewEventScheduler(),
		Rand:     NewRandomStream(seed),
		Seed:     seed,
		MaxDraws: maxDraws,
	}
	s.Events.Schedule(Event{
		Time:   initArrival,
		Kind:   KindArrival,
		Source: Exterior,
		Target: 0,
	})
	return s
}

// Run executes the dispatch loop until the draw budget is exhausted or the
// scheduler empties, then returns the accumulated results. The budget is
// checked between events only: a handler finishes all of its own draws even
// when it crosses the budget mid-flight. A Simulator is single-use; calling
// Run twice panics.
func (s *Simulator) Run() *Results {
	if s.ran {
		panic("simulator: Run called twice on a single-use Simulator")
	}
	s.ran = true

	logrus.Infof("starting run: %d queues, seed %d, draw budget %d", s.Network.Len(), s.Seed, s.MaxDraws)

	for s.Rand.Draws() < s.MaxDraws {
		ev, ok := s.Events.PopNext()
		if !ok {
			logrus.Warnf("ran out of events at clock %.4f with %d of %d draws consumed", s.Clock, s.Rand.Draws(), s.MaxDraws)
			s.Drained = true
			break
		}
		s.dispatch(ev)
	}

	logrus.Infof("run ended at clock %.4f after %d draws", s.Clock, s.Rand.Draws())
	return s.Results()
}

// dispatch routes one event to its handler by kind.
func (s *Simulator) dispatch(ev Event) {
	if s.Trace != nil {
		s.Trace.RecordDispatch(ev.Time, ev.Kind.String(), int(ev.Source), int(ev.Target))
	}
	logrus.Debugf("[clock %10.4f] dispatching %s", ev.Time, ev)

	switch ev.Kind {
	case KindArrival:
		s.handleArrival(ev)
	case KindPassage:
		s.handlePassage(ev)
	case KindDeparture:
		s.handleDeparture(ev)
	default:
		panic(fmt.Sprintf("dispatch on unknown event kind %d", int(ev.Kind)))
	}
}

// advanceClock credits the interval since the previous event to EVERY
// node's histogram at its current occupancy, then moves the clock forward.
// Crediting every node, not just the event's, is what makes each node's
// histogram sum to the final clock. Panics when an event would move the
// clock backwards.
func (s *Simulator) advanceClock(ev Event) {
	if ev.Time < s.Clock {
		panic(fmt.Sprintf("clock went backwards: %v < %v", ev.Time, s.Clock))
	}
	elapsed := ev.Time - s.Clock
	for _, node := range s.Network.Nodes() {
		node.accumulate(elapsed)
	}
	s.Clock = ev.Time
}

// handleArrival processes an external client reaching ev.Target. Arrivals
// are the only events that re-arm the exterior inflow.
func (s *Simulator) handleArrival(ev Event) {
	if ev.Kind != KindArrival {
		panic(fmt.Sprintf("handleArrival invoked with %s event", ev.Kind))
	}
	s.advanceClock(ev)

	target := s.Network.Node(ev.Target)

	// Schedule the next external arrival before the admission decision so
	// a full node keeps receiving (and losing) clients. Nodes with the
	// zero-width arrival sentinel have no inflow to re-arm.
	if !target.Arrival.IsZero() {
		s.Events.Schedule(Event{
			Time:   s.Clock + target.Arrival.Sample(s.Rand),
			Kind:   KindArrival,
			Source: Exterior,
			Target: ev.Target,
		})
	}

	s.admit(target)
}

// handleDeparture processes a service completion whose client leaves the
// network.
func (s *Simulator) handleDeparture(ev Event) {
	if ev.Kind != KindDeparture {
		panic(fmt.Sprintf("handleDeparture invoked with %s event", ev.Kind))
	}
	s.advanceClock(ev)
	s.release(s.Network.Node(ev.Source))
}

// handlePassage processes a service completion whose client moves to
// another node: the source side frees a server exactly like a departure,
// the target side admits exactly like an arrival minus the inflow re-arm.
// The clock is advanced once, shared by both sides.
func (s *Simulator) handlePassage(ev Event) {
	if ev.Kind != KindPassage {
		panic(fmt.Sprintf("handlePassage invoked with %s event", ev.Kind))
	}
	s.advanceClock(ev)
	s.release(s.Network.Node(ev.Source))
	s.admit(s.Network.Node(ev.Target))
}

// admit brings one client into node, or counts a loss when the node is at
// capacity. A client that finds a free server enters service immediately;
// otherwise it waits and nothing further is scheduled now.
func (s *Simulator) admit(node *QueueNode) {
	if node.isFull() {
		node.Losses++
		return
	}
	node.Occupancy++
	if node.Occupancy > node.Servers {
		return
	}
	s.scheduleServiceCompletion(node)
}

// release frees one server at node after a service completion. When
// clients were waiting, the head of the line enters service now.
func (s *Simulator) release(node *QueueNode) {
	node.Occupancy--
	if node.Occupancy < node.Servers {
		return
	}
	s.scheduleServiceCompletion(node)
}

// scheduleServiceCompletion starts service for one client at node. The
// destination is decided now, at service start, and baked into the
// completion event: Exterior makes it a DEPARTURE, a queue id a PASSAGE.
// The routing draw comes before the service-time draw; the draw order is
// part of the reproducibility contract.
func (s *Simulator) scheduleServiceCompletion(node *QueueNode) {
	hop := node.ChooseNextHop(s.Rand)
	kind := KindPassage
	if hop == Exterior {
		kind = KindDeparture
	}
	s.Events.Schedule(Event{
		Time:   s.Clock + node.Departure.Sample(s.Rand),
		Kind:   kind,
		Source: node.ID,
		Target: hop,
	})
}
