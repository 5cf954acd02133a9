// Package kmc provides the core engine for Kinetic Monte Carlo lattice
// simulations: a dense 3D site grid with optional periodic boundaries, a
// population of mobile objects, and a pending-event sequence advanced with
// the First Reaction Method.
//
// # Reading Guide
//
// Start with these three files to understand the kernel:
//   - lattice.go: site indexing, periodic wrap, and minimum-image arithmetic
//   - event.go: the Event capability set and wait-time sampling
//   - simulation.go: the engine owning lattice, objects, events, and RNG
//
// # Architecture
//
// The engine is domain-agnostic. Concrete object and event kinds live in
// domain packages that embed ObjectBase/EventBase and implement the Object
// and Event interfaces; the engine never interprets the kind. Drivers run
// the loop themselves: ChooseNextEvent, IncrementTime, then dispatch to
// domain logic that calls MoveObject, RemoveObject, SetEvent, or AddObject.
// The engine enforces the occupancy and bookkeeping invariants on each call.
//
// Handles (ObjectRef, EventRef) are non-owning generational indices into
// engine-owned arenas; they stay valid across unrelated insertions and
// removals and go stale when their object is removed.
//
// Cross-rank reductions over worker groups live in the kmc/mpi sub-package.
package kmc
