// Package sim provides the core discrete-event simulation engine for queuenet.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - event.go: the Event record (arrival, passage, departure) and node identifiers
//   - queue.go: per-queue state (occupancy, time-weighted histogram, losses) and routing
//   - simulator.go: the dispatch loop, the clock, and the event-kind state machine
//
// # Architecture
//
// The sim package owns everything that must be reproducible: the seeded
// random stream (rng.go), the time-ordered scheduler (scheduler.go), and the
// network of queue nodes (network.go). A Simulator ties the three together
// for exactly one run; nothing is shared across runs. Collaborators live in
// sub-packages:
//   - sim/config/: YAML configuration loading, validation, and defaults
//   - sim/report/: terminal rendering and serialization of run results
//   - sim/replicate/: independent replications with derived seeds
//   - sim/trace/: dispatch trace recording
//
// # Determinism
//
// Two simulators constructed with the same network parameters and the same
// seed MUST produce bit-for-bit identical event sequences, histograms, and
// loss counts. The random stream is a fixed linear congruential recurrence,
// the scheduler breaks timestamp ties by insertion order, and the run length
// is bounded by the number of random draws consumed rather than by wall
// clock, so results never depend on the host.
package sim
