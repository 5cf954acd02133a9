// Package walk is a minimal domain built on the kmc engine: identical
// walkers hop between nearest-neighbor lattice sites at a fixed attempt
// rate. It is the reference for how driver code wires concrete object and
// event kinds into the framework.
package walk

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/1713175349/KMC-Lattice/kmc"
)

// Walker is a mobile object with no state beyond the common base.
type Walker struct {
	kmc.ObjectBase
}

// NewWalker creates a walker with the given id at the given site.
func NewWalker(id int, coords kmc.Coord, created float64) *Walker {
	return &Walker{ObjectBase: kmc.NewObjectBase(id, coords, created)}
}

// Name returns the object kind name.
func (w *Walker) Name() string { return "Walker" }

// HopEvent moves its acting walker to an adjacent free site. The wait time
// is sampled by the base First Reaction Method implementation.
type HopEvent struct {
	kmc.EventBase
}

// NewHopEvent creates a hop event sampling from sim's RNG.
func NewHopEvent(sim *kmc.Simulation) *HopEvent {
	return &HopEvent{EventBase: kmc.NewEventBase(sim)}
}

// Name returns the event kind name.
func (e *HopEvent) Name() string { return "Hop" }

// steps are the six nearest-neighbor displacements.
var steps = [6][3]int{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// Config sets up a random-walk run.
type Config struct {
	NumWalkers int
	// HopRate is the attempt rate per open neighbor direction, in 1/s.
	HopRate float64
	// Clock overrides the wallclock used for RNG seeding when non-nil.
	Clock func() int64
}

// Model owns a simulation populated with walkers and drives the event loop.
type Model struct {
	sim *kmc.Simulation
	cfg Config
}

// NewModel initializes a simulation with cfg.NumWalkers walkers on randomly
// chosen free sites and a pending hop event for each.
func NewModel(params kmc.Parameters, cfg Config, id int) (*Model, error) {
	if cfg.NumWalkers < 1 || cfg.HopRate <= 0 {
		return nil, fmt.Errorf("%w: need at least one walker and a positive hop rate", kmc.ErrInvalidArgument)
	}
	sim := kmc.NewSimulation()
	if cfg.Clock != nil {
		sim.SetClock(cfg.Clock)
	}
	if err := sim.Initialize(params, id); err != nil {
		return nil, err
	}
	if cfg.NumWalkers > sim.SiteCount() {
		return nil, fmt.Errorf("%w: %d walkers exceed %d sites", kmc.ErrInvalidArgument, cfg.NumWalkers, sim.SiteCount())
	}
	m := &Model{sim: sim, cfg: cfg}
	for i := 0; i < cfg.NumWalkers; i++ {
		coords := sim.RandomCoords()
		for {
			occupied, err := sim.IsOccupied(coords)
			if err == nil && !occupied {
				break
			}
			coords = sim.RandomCoords()
		}
		if _, err := sim.AddObject(NewWalker(i, coords, sim.Time())); err != nil {
			return nil, err
		}
		sim.LogMsg(fmt.Sprintf("created Walker %d at %v\n", i, coords))
	}
	for _, ref := range sim.Objects() {
		m.calcHopEvent(ref)
	}
	return m, nil
}

// Sim exposes the underlying simulation for inspection.
func (m *Model) Sim() *kmc.Simulation { return m.sim }

// calcHopEvent refills the walker's event slot with a fresh hop. The total
// rate scales with the number of open neighbor directions; a boxed-in
// walker gets an infinite wait, so it is selected only when every walker
// is boxed in (Step then fails).
func (m *Model) calcHopEvent(ref kmc.ObjectRef) {
	obj := m.sim.Object(ref)
	if obj == nil {
		return
	}
	lat := m.sim.Lattice()
	open := make([]kmc.Coord, 0, len(steps))
	for _, st := range steps {
		dest, ok := lat.StepDest(obj.Coords(), st[0], st[1], st[2])
		if !ok {
			continue
		}
		if occupied, err := m.sim.IsOccupied(dest); err != nil || occupied {
			continue
		}
		open = append(open, dest)
	}
	evt := NewHopEvent(m.sim)
	evt.SetObjectRef(ref)
	if len(open) == 0 {
		evt.SetDestCoords(obj.Coords())
		evt.SetWaitTime(math.Inf(1))
	} else {
		dest := open[int(evt.Rand01()*float64(len(open)))%len(open)]
		evt.CalculateEvent(dest, m.cfg.HopRate*float64(len(open)))
	}
	m.sim.SetEvent(obj.EventRef(), evt)
}

// Step selects and executes the next hop: advance the clock, move the
// walker, then recompute events for every object inside the recalc
// neighborhood of both endpoints (or just the mover when recalc is off).
func (m *Model) Step() error {
	ref, err := m.sim.ChooseNextEvent()
	if err != nil {
		return err
	}
	evt := m.sim.Event(ref)
	if math.IsInf(evt.WaitTime(), 1) {
		return fmt.Errorf("%w: all walkers are blocked", kmc.ErrEmptyEventSet)
	}
	m.sim.IncrementTime(evt.WaitTime())

	objRef := evt.ObjectRef()
	obj := m.sim.Object(objRef)
	src := obj.Coords()
	dest := evt.DestCoords()
	if err := m.sim.MoveObject(objRef, dest); err != nil {
		// Without recalc the destination may have been taken since the hop
		// was sampled; draw a fresh hop and let the clock stand.
		if errors.Is(err, kmc.ErrOccupancyViolation) {
			m.calcHopEvent(objRef)
			return nil
		}
		return err
	}
	m.sim.LogMsg(fmt.Sprintf("t=%g Walker %d hopped %v -> %v\n", m.sim.Time(), obj.ID(), src, dest))

	var stale []kmc.ObjectRef
	if m.sim.RecalcEnabled() {
		stale = append(m.sim.FindRecalcNeighbors(src), m.sim.FindRecalcNeighbors(dest)...)
		stale = m.sim.RemoveObjectRefDuplicates(stale)
	} else {
		stale = []kmc.ObjectRef{objRef}
	}
	for _, r := range stale {
		m.calcHopEvent(r)
	}
	return nil
}

// Run executes n hops and reports the reached simulation time.
func (m *Model) Run(n int) error {
	for i := 0; i < n; i++ {
		if err := m.Step(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	logrus.Infof("sim %d: executed %d events, t=%g s", m.sim.ID(), m.sim.NumEventsExecuted(), m.sim.Time())
	return nil
}
