package sim

import "container/heap"

// scheduledEvent pairs an Event with its insertion sequence number. The
// sequence is the deterministic tie-breaker for events sharing a timestamp.
type scheduledEvent struct {
	event Event
	seq   uint64
}

// EventScheduler is a priority queue of pending events with deterministic
// ordering: time ascending, ties broken by insertion order. It holds an
// unbounded number of events and is structurally agnostic to the driver's
// clock — scheduling an event in the past is accepted here; monotonicity of
// processed time is the driver's invariant, not the scheduler's.
//
// Thread-safety: NOT goroutine-safe. Exclusively owned by one Simulator.
type EventScheduler struct {
	events  []scheduledEvent
	nextSeq uint64
}

// NewEventScheduler creates an empty scheduler.
func NewEventScheduler() *EventScheduler {
	s := &EventScheduler{
		events: make([]scheduledEvent, 0),
	}
	heap.Init(s)
	return s
}

// Len implements heap.Interface
func (s *EventScheduler) Len() int {
	return len(s.events)
}

// Less implements heap.Interface with deterministic ordering
// Order by: time → insertion sequence
func (s *EventScheduler) Less(i, j int) bool {
	ei, ej := s.events[i], s.events[j]

	// Primary: time (lower first)
	if ei.event.Time != ej.event.Time {
		return ei.event.Time < ej.event.Time
	}

	// Secondary: insertion sequence (lower first, deterministic tie-breaker)
	return ei.seq < ej.seq
}

// Swap implements heap.Interface
func (s *EventScheduler) Swap(i, j int) {
	s.events[i], s.events[j] = s.events[j], s.events[i]
}

// Push implements heap.Interface
func (s *EventScheduler) Push(x interface{}) {
	s.events = append(s.events, x.(scheduledEvent))
}

// Pop implements heap.Interface
func (s *EventScheduler) Pop() interface{} {
	old := s.events
	n := len(old)
	item := old[n-1]
	s.events = old[0 : n-1]
	return item
}

// Schedule adds an event in O(log n).
func (s *EventScheduler) Schedule(e Event) {
	heap.Push(s, scheduledEvent{event: e, seq: s.nextSeq})
	s.nextSeq++
}

// PopNext removes and returns the minimum-time event. The second return is
// false when no events remain.
func (s *EventScheduler) PopNext() (Event, bool) {
	if s.Len() == 0 {
		return Event{}, false
	}
	return heap.Pop(s).(scheduledEvent).event, true
}

// Peek returns the minimum-time event without removing it.
func (s *EventScheduler) Peek() (Event, bool) {
	if s.Len() == 0 {
		return Event{}, false
	}
	return s.events[0].event, true
}
