package kmc

import "math"

// EventRef is a non-owning generational handle to a slot in the engine's
// event sequence. The zero value is nil.
type EventRef struct {
	idx int
	gen uint32
}

// IsNil reports whether the handle has never been bound to a slot.
func (r EventRef) IsNil() bool {
	return r.gen == 0
}

// Event is the capability set every pending event exposes to the engine. The
// engine treats all events uniformly for selection; CalculateEvent is the
// domain hook that populates the destination and the sampled wait time.
type Event interface {
	DestCoords() Coord
	SetDestCoords(Coord)
	WaitTime() float64
	SetWaitTime(float64)
	ObjectRef() ObjectRef
	SetObjectRef(ObjectRef)
	TargetRef() ObjectRef
	SetTargetRef(ObjectRef)
	Name() string
	CalculateEvent(dest Coord, rate float64)
}

const eventName = "Event"

// EventBase carries the state common to all event kinds and implements First
// Reaction Method sampling. Concrete kinds embed it and either use the
// default CalculateEvent or override it, routing all randomness through the
// engine's Rand01.
type EventBase struct {
	sim      *Simulation
	waitTime float64
	dest     Coord
	object   ObjectRef
	target   ObjectRef
}

// NewEventBase returns the common event state bound to the engine whose RNG
// the event samples from.
func NewEventBase(sim *Simulation) EventBase {
	return EventBase{sim: sim}
}

// DestCoords returns the lattice cell the event will act at.
func (e *EventBase) DestCoords() Coord { return e.dest }

// SetDestCoords updates the destination cell.
func (e *EventBase) SetDestCoords(c Coord) { e.dest = c }

// WaitTime returns the sampled firing time. The engine compares wait times
// directly when selecting the next event.
func (e *EventBase) WaitTime() float64 { return e.waitTime }

// SetWaitTime overrides the sampled firing time.
func (e *EventBase) SetWaitTime(t float64) { e.waitTime = t }

// ObjectRef returns the handle of the acting object.
func (e *EventBase) ObjectRef() ObjectRef { return e.object }

// SetObjectRef binds the acting object.
func (e *EventBase) SetObjectRef(ref ObjectRef) { e.object = ref }

// TargetRef returns the handle of the optional target object.
func (e *EventBase) TargetRef() ObjectRef { return e.target }

// SetTargetRef binds the optional target object.
func (e *EventBase) SetTargetRef(ref ObjectRef) { e.target = ref }

// Name returns the polymorphic kind name.
func (e *EventBase) Name() string { return eventName }

// CalculateEvent sets the destination and samples the wait time with the
// First Reaction Method: t = -ln(u)/rate for uniform u in (0,1].
func (e *EventBase) CalculateEvent(dest Coord, rate float64) {
	e.dest = dest
	e.waitTime = -math.Log(e.Rand01()) / rate
}

// Rand01 draws a uniform double in (0,1] from the engine's event stream.
func (e *EventBase) Rand01() float64 {
	return e.sim.Rand01()
}
