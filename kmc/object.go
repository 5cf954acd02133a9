package kmc

// ObjectRef is a non-owning generational handle to an object in the engine's
// object set. The zero value is nil. Handles are comparable and survive
// unrelated insertions and removals.
type ObjectRef struct {
	idx int
	gen uint32
}

// IsNil reports whether the handle has never been bound to an object.
func (r ObjectRef) IsNil() bool {
	return r.gen == 0
}

// Object is the capability set every mobile object exposes to the engine.
// Concrete kinds embed ObjectBase and add their own state; the engine never
// interprets the kind.
type Object interface {
	ID() int
	Coords() Coord
	SetCoords(Coord)
	EventRef() EventRef
	SetEventRef(EventRef)
	Name() string
	CreationTime() float64
}

const objectName = "Object"

// ObjectBase carries the state common to all object kinds: a stable id, the
// current lattice position, the creation time, and the handle of the event
// slot the engine allocated for it.
type ObjectBase struct {
	id      int
	coords  Coord
	created float64
	event   EventRef
}

// NewObjectBase returns the common object state for a concrete kind created
// at the given simulation time.
func NewObjectBase(id int, coords Coord, created float64) ObjectBase {
	return ObjectBase{id: id, coords: coords, created: created}
}

// ID returns the stable object identifier.
func (o *ObjectBase) ID() int { return o.id }

// Coords returns the current lattice position.
func (o *ObjectBase) Coords() Coord { return o.coords }

// SetCoords updates the lattice position. Driver code must not call this
// directly; position changes go through Simulation.MoveObject.
func (o *ObjectBase) SetCoords(c Coord) { o.coords = c }

// EventRef returns the handle of the object's pending event slot.
func (o *ObjectBase) EventRef() EventRef { return o.event }

// SetEventRef binds the object to its event slot.
func (o *ObjectBase) SetEventRef(ref EventRef) { o.event = ref }

// Name returns the polymorphic kind name.
func (o *ObjectBase) Name() string { return objectName }

// CreationTime returns the simulation time the object was created at.
func (o *ObjectBase) CreationTime() float64 { return o.created }
