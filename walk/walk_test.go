package walk

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1713175349/KMC-Lattice/kmc"
)

func testParams() kmc.Parameters {
	return kmc.Parameters{
		EnablePeriodicX: true,
		EnablePeriodicY: true,
		EnablePeriodicZ: true,
		Length:          10,
		Width:           10,
		Height:          10,
		UnitSize:        1.0,
		Temperature:     300,
		EnableRecalc:    true,
		RecalcCutoff:    2.0,
	}
}

func fixedClock(sec int64) func() int64 {
	return func() int64 { return sec }
}

func newTestModel(t *testing.T, params kmc.Parameters, cfg Config, id int) *Model {
	t.Helper()
	if cfg.Clock == nil {
		cfg.Clock = fixedClock(42)
	}
	m, err := NewModel(params, cfg, id)
	require.NoError(t, err)
	return m
}

func walkerCoords(m *Model) []kmc.Coord {
	sim := m.Sim()
	coords := make([]kmc.Coord, 0, sim.NumObjects())
	for _, ref := range sim.Objects() {
		coords = append(coords, sim.Object(ref).Coords())
	}
	return coords
}

func TestNewModel_PlacesWalkersOnFreeSites(t *testing.T) {
	m := newTestModel(t, testParams(), Config{NumWalkers: 20, HopRate: 1.0}, 0)
	sim := m.Sim()
	assert.Equal(t, 20, sim.NumObjects())
	assert.Equal(t, 20, sim.NumObjectsCreated())

	seen := make(map[kmc.Coord]bool)
	for _, c := range walkerCoords(m) {
		require.False(t, seen[c], "two walkers share %v", c)
		seen[c] = true
		occupied, err := sim.IsOccupied(c)
		require.NoError(t, err)
		assert.True(t, occupied)
	}

	// Every walker has a pending hop.
	_, err := sim.ChooseNextEvent()
	require.NoError(t, err)
}

func TestNewModel_RejectsBadConfig(t *testing.T) {
	_, err := NewModel(testParams(), Config{NumWalkers: 0, HopRate: 1.0, Clock: fixedClock(1)}, 0)
	assert.True(t, errors.Is(err, kmc.ErrInvalidArgument))

	_, err = NewModel(testParams(), Config{NumWalkers: 5, HopRate: 0, Clock: fixedClock(1)}, 0)
	assert.True(t, errors.Is(err, kmc.ErrInvalidArgument))

	params := testParams()
	params.Length, params.Width, params.Height = 2, 2, 2
	_, err = NewModel(params, Config{NumWalkers: 9, HopRate: 1.0, Clock: fixedClock(1)}, 0)
	assert.True(t, errors.Is(err, kmc.ErrInvalidArgument), "more walkers than sites")
}

func TestRun_PreservesInvariants(t *testing.T) {
	m := newTestModel(t, testParams(), Config{NumWalkers: 30, HopRate: 1.0}, 0)
	sim := m.Sim()

	prevTime := sim.Time()
	for i := 0; i < 100; i++ {
		require.NoError(t, m.Step())
		require.GreaterOrEqual(t, sim.Time(), prevTime, "time is monotonic")
		prevTime = sim.Time()
	}
	assert.Equal(t, 30, sim.NumObjects(), "hops never change the population")

	seen := make(map[kmc.Coord]bool)
	for _, c := range walkerCoords(m) {
		require.False(t, seen[c], "two walkers share %v after running", c)
		seen[c] = true
	}
	assert.Greater(t, sim.Time(), 0.0)
}

func TestRun_Deterministic(t *testing.T) {
	run := func() ([]kmc.Coord, float64) {
		m := newTestModel(t, testParams(), Config{NumWalkers: 15, HopRate: 1.0, Clock: fixedClock(99)}, 4)
		require.NoError(t, m.Run(200))
		coords := walkerCoords(m)
		sort.Slice(coords, func(i, j int) bool {
			return m.Sim().Lattice().SiteIndex(coords[i]) < m.Sim().Lattice().SiteIndex(coords[j])
		})
		return coords, m.Sim().Time()
	}
	coordsA, timeA := run()
	coordsB, timeB := run()
	assert.Equal(t, coordsA, coordsB, "same seed and id reproduce the trajectory")
	assert.Equal(t, timeA, timeB)
}

func TestStep_BlockedWalker(t *testing.T) {
	params := testParams()
	params.EnablePeriodicX = false
	params.EnablePeriodicY = false
	params.EnablePeriodicZ = false
	params.Length, params.Width, params.Height = 1, 1, 1

	m := newTestModel(t, params, Config{NumWalkers: 1, HopRate: 1.0}, 0)
	err := m.Step()
	require.Error(t, err)
	assert.True(t, errors.Is(err, kmc.ErrEmptyEventSet))
}

func TestWalkerAndHopEvent_Names(t *testing.T) {
	w := NewWalker(0, kmc.Coord{}, 0)
	assert.Equal(t, "Walker", w.Name())

	sim := kmc.NewSimulation()
	sim.SetClock(fixedClock(1))
	require.NoError(t, sim.Initialize(testParams(), 0))
	e := NewHopEvent(sim)
	assert.Equal(t, "Hop", e.Name())
}
