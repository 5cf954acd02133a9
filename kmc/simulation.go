package kmc

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

// Simulation is the engine: it owns the lattice, the object set, the pending
// event sequence, and the deterministic RNG streams. All mutation of those
// containers goes through its methods; domain code holds only the non-owning
// handles returned by them.
//
// Each instance is single-threaded. Every live object has exactly one event
// slot; a slot holds nil between insertion and the first SetEvent.
type Simulation struct {
	params Parameters
	id     int

	simTime         float64
	nObjects        int
	nObjectsCreated int
	nEventsExecuted int

	lattice     *Lattice
	objects     arena[Object]
	objectOrder []ObjectRef
	events      arena[Event]
	eventOrder  []EventRef

	rng        *PartitionedRNG
	engineRand *rand.Rand
	eventRand  *rand.Rand

	// clock supplies wallclock seconds for seeding; injectable for tests.
	clock func() int64
}

// NewSimulation returns an engine seeded from the system wallclock on
// Initialize. Call SetClock before Initialize to pin the seed.
func NewSimulation() *Simulation {
	return &Simulation{
		clock: func() int64 { return time.Now().Unix() },
	}
}

// SetClock replaces the wallclock source used for RNG seeding. The same
// clock value with the same id yields an identical trajectory.
func (s *Simulation) SetClock(clock func() int64) {
	s.clock = clock
}

// Initialize resets the engine: time zero, empty collections, a fresh
// lattice, and RNG streams reseeded from wallclock*(id+1).
func (s *Simulation) Initialize(params Parameters, id int) error {
	if err := params.Validate(); err != nil {
		return err
	}
	s.params = params
	s.id = id
	s.simTime = 0
	s.nObjects = 0
	s.nObjectsCreated = 0
	s.nEventsExecuted = 0
	s.objects.reset()
	s.events.reset()
	s.objectOrder = nil
	s.eventOrder = nil
	s.lattice = NewLattice(params)
	s.rng = NewPartitionedRNG(s.clock() * int64(id+1))
	s.engineRand = s.rng.ForSubsystem(SubsystemEngine)
	s.eventRand = s.rng.ForSubsystem(SubsystemEvent)
	return nil
}

// AddObject inserts an object at its current coordinates, allocates its
// event slot (initially nil), and marks the site occupied. Fails with
// ErrOccupancyViolation when the site already holds an object; counters are
// untouched on failure.
func (s *Simulation) AddObject(obj Object) (ObjectRef, error) {
	site, err := s.lattice.Site(obj.Coords())
	if err != nil {
		return ObjectRef{}, err
	}
	if site.Occupied() {
		return ObjectRef{}, fmt.Errorf("%w: cannot add %s at occupied site %v", ErrOccupancyViolation, obj.Name(), obj.Coords())
	}
	evIdx, evGen := s.events.insert(nil)
	evRef := EventRef{idx: evIdx, gen: evGen}
	obj.SetEventRef(evRef)
	s.eventOrder = append(s.eventOrder, evRef)

	idx, gen := s.objects.insert(obj)
	ref := ObjectRef{idx: idx, gen: gen}
	s.objectOrder = append(s.objectOrder, ref)
	site.SetOccupied(ref)

	s.nObjects++
	s.nObjectsCreated++
	s.nEventsExecuted++
	return ref, nil
}

// AddEvent appends an event not tied to an object and returns its slot.
func (s *Simulation) AddEvent(evt Event) EventRef {
	idx, gen := s.events.insert(evt)
	ref := EventRef{idx: idx, gen: gen}
	s.eventOrder = append(s.eventOrder, ref)
	return ref
}

// SetEvent replaces the pending event at ref. The previously held event is
// dropped. Fails with ErrInvalidArgument for a stale handle.
func (s *Simulation) SetEvent(ref EventRef, evt Event) error {
	if !s.events.set(ref.idx, ref.gen, evt) {
		return fmt.Errorf("%w: stale event handle", ErrInvalidArgument)
	}
	return nil
}

// Event returns the pending event at ref, or nil for a stale handle or an
// unfilled slot.
func (s *Simulation) Event(ref EventRef) Event {
	evt, ok := s.events.get(ref.idx, ref.gen)
	if !ok {
		return nil
	}
	return evt
}

// Object returns the object at ref, or nil for a stale handle.
func (s *Simulation) Object(ref ObjectRef) Object {
	obj, ok := s.objects.get(ref.idx, ref.gen)
	if !ok {
		return nil
	}
	return obj
}

// Objects returns the live object handles in insertion order.
func (s *Simulation) Objects() []ObjectRef {
	out := make([]ObjectRef, len(s.objectOrder))
	copy(out, s.objectOrder)
	return out
}

// ChooseNextEvent scans the event sequence and returns the slot with the
// minimum wait time. Ties resolve to the earliest-inserted slot. Fails with
// ErrEmptyEventSet when no slot holds an event.
func (s *Simulation) ChooseNextEvent() (EventRef, error) {
	logrus.Debugf("sim %d: %d slots in the event queue", s.id, len(s.eventOrder))
	var best EventRef
	var bestEvt Event
	for _, ref := range s.eventOrder {
		evt, ok := s.events.get(ref.idx, ref.gen)
		if !ok || evt == nil {
			continue
		}
		if bestEvt == nil || evt.WaitTime() < bestEvt.WaitTime() {
			best = ref
			bestEvt = evt
		}
	}
	if bestEvt == nil {
		return EventRef{}, fmt.Errorf("%w: no pending events", ErrEmptyEventSet)
	}
	return best, nil
}

// MoveObject relocates an object: clears occupancy at its current site, sets
// the new coordinates, and occupies the destination, which must be free.
func (s *Simulation) MoveObject(ref ObjectRef, dest Coord) error {
	obj := s.Object(ref)
	if obj == nil {
		return fmt.Errorf("%w: stale object handle", ErrInvalidArgument)
	}
	destSite, err := s.lattice.Site(dest)
	if err != nil {
		return err
	}
	if destSite.Occupied() && destSite.Object() != ref {
		return fmt.Errorf("%w: cannot move %s %d onto occupied site %v", ErrOccupancyViolation, obj.Name(), obj.ID(), dest)
	}
	curSite, err := s.lattice.Site(obj.Coords())
	if err != nil {
		return err
	}
	curSite.ClearOccupancy()
	obj.SetCoords(dest)
	destSite.SetOccupied(ref)
	s.nEventsExecuted++
	return nil
}

// RemoveObject removes an object and its event slot and clears its site.
// Handles held by domain code to the removed object become stale.
func (s *Simulation) RemoveObject(ref ObjectRef) error {
	obj := s.Object(ref)
	if obj == nil {
		return fmt.Errorf("%w: stale object handle", ErrInvalidArgument)
	}
	site, err := s.lattice.Site(obj.Coords())
	if err != nil {
		return err
	}
	site.ClearOccupancy()

	evRef := obj.EventRef()
	s.events.remove(evRef.idx, evRef.gen)
	s.eventOrder = removeRef(s.eventOrder, evRef)
	s.objects.remove(ref.idx, ref.gen)
	s.objectOrder = removeRef(s.objectOrder, ref)

	s.nObjects--
	s.nEventsExecuted++
	return nil
}

func removeRef[T comparable](refs []T, ref T) []T {
	for i, r := range refs {
		if r == ref {
			return append(refs[:i], refs[i+1:]...)
		}
	}
	return refs
}

// FindRecalcNeighbors returns every live object within the recalc cutoff of
// center under the minimum-image convention, in iteration order of the
// object set. The squared lattice distance is compared against the squared
// integer cutoff (recalc_cutoff/unit_size)^2.
func (s *Simulation) FindRecalcNeighbors(center Coord) []ObjectRef {
	cutoffLat := s.params.RecalcCutoff / s.params.UnitSize
	cutoffSq := int(cutoffLat * cutoffLat)
	neighbors := make([]ObjectRef, 0, 10)
	for _, ref := range s.objectOrder {
		obj, ok := s.objects.get(ref.idx, ref.gen)
		if !ok {
			continue
		}
		if s.lattice.MinImageDistSq(center, obj.Coords()) <= cutoffSq {
			neighbors = append(neighbors, ref)
		}
	}
	return neighbors
}

// RemoveObjectRefDuplicates dedups a caller-constructed handle list,
// preserving first occurrence.
func (s *Simulation) RemoveObjectRefDuplicates(refs []ObjectRef) []ObjectRef {
	seen := make(map[ObjectRef]struct{}, len(refs))
	out := refs[:0]
	for _, ref := range refs {
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}

// RandomCoords returns a uniformly random lattice cell drawn from the
// engine stream.
func (s *Simulation) RandomCoords() Coord {
	return s.lattice.RandomCoords(s.engineRand)
}

// Rand01 draws a uniform double in (0,1] from the event stream. All domain
// event sampling must route through this to preserve reproducibility.
func (s *Simulation) Rand01() float64 {
	return 1.0 - s.eventRand.Float64()
}

// IsOccupied reports whether the site at c holds an object.
func (s *Simulation) IsOccupied(c Coord) (bool, error) {
	site, err := s.lattice.Site(c)
	if err != nil {
		return false, err
	}
	return site.Occupied(), nil
}

// Site returns the site at c.
func (s *Simulation) Site(c Coord) (*Site, error) {
	return s.lattice.Site(c)
}

// SiteCount returns the total number of lattice sites.
func (s *Simulation) SiteCount() int {
	return s.lattice.SiteCount()
}

// Lattice returns the engine-owned lattice.
func (s *Simulation) Lattice() *Lattice {
	return s.lattice
}

// ID returns the simulation identifier.
func (s *Simulation) ID() int { return s.id }

// Time returns the simulation clock.
func (s *Simulation) Time() float64 { return s.simTime }

// Temperature returns the configured temperature in K.
func (s *Simulation) Temperature() float64 { return s.params.Temperature }

// UnitSize returns the physical length per lattice unit.
func (s *Simulation) UnitSize() float64 { return s.params.UnitSize }

// RecalcEnabled reports whether event recalculation is configured.
func (s *Simulation) RecalcEnabled() bool { return s.params.EnableRecalc }

// NumObjects returns the current live object count.
func (s *Simulation) NumObjects() int { return s.nObjects }

// NumObjectsCreated returns the total number of objects ever inserted.
func (s *Simulation) NumObjectsCreated() int { return s.nObjectsCreated }

// NumEventsExecuted returns the executed-event counter.
func (s *Simulation) NumEventsExecuted() int { return s.nEventsExecuted }

// IncrementTime advances the simulation clock by the selected event's wait
// time. Called by the driver after ChooseNextEvent.
func (s *Simulation) IncrementTime(dt float64) {
	s.simTime += dt
}

// LogMsg appends msg verbatim to the configured log sink when logging is
// enabled. Writes are best-effort: a failed write is reported but does not
// abort the simulation.
func (s *Simulation) LogMsg(msg string) {
	if !s.params.EnableLogging || s.params.Logfile == nil {
		return
	}
	if _, err := fmt.Fprint(s.params.Logfile, msg); err != nil {
		logrus.Warnf("sim %d: log sink write failed: %v", s.id, err)
	}
}
