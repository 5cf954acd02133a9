package kmc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() Parameters {
	return Parameters{
		Length:       10,
		Width:        10,
		Height:       10,
		UnitSize:     1.0,
		Temperature:  300,
		EnableRecalc: true,
		RecalcCutoff: 3.0,
	}
}

func TestWrapDelta_KeepsResultInRange(t *testing.T) {
	const extent = 10
	for pos := 0; pos < extent; pos++ {
		for step := -2 * extent; step <= 2*extent; step++ {
			adj := WrapDelta(pos, step, extent, true)
			got := pos + step + adj
			// A single wrap only covers steps within one period.
			if pos+step >= -extent && pos+step < 2*extent {
				if got < 0 || got >= extent {
					t.Fatalf("WrapDelta(%d,%d): result %d outside [0,%d)", pos, step, got, extent)
				}
			}
		}
	}
}

func TestWrapDelta_NonPeriodicIsZero(t *testing.T) {
	assert.Equal(t, 0, WrapDelta(0, -1, 10, false))
	assert.Equal(t, 0, WrapDelta(9, 1, 10, false))
	assert.Equal(t, 0, WrapDelta(5, 2, 10, false))
}

func TestMinImageDelta(t *testing.T) {
	// |delta| beyond half the extent folds back by one period.
	assert.Equal(t, -10, MinImageDelta(9, 10, true))
	assert.Equal(t, -10, MinImageDelta(-9, 10, true))
	assert.Equal(t, 0, MinImageDelta(5, 10, true))
	assert.Equal(t, 0, MinImageDelta(9, 10, false))

	// The magnitude of the folded distance never exceeds extent/2.
	for d := -9; d <= 9; d++ {
		dist := abs(d) + MinImageDelta(d, 10, true)
		if dist < -5 || dist > 5 {
			t.Fatalf("min-image distance for delta %d is %d", d, dist)
		}
	}
}

func TestSiteIndex_Bijection(t *testing.T) {
	params := testParams()
	params.Length, params.Width, params.Height = 4, 5, 6
	lat := NewLattice(params)
	seen := make(map[int]bool, lat.SiteCount())
	for x := 0; x < 4; x++ {
		for y := 0; y < 5; y++ {
			for z := 0; z < 6; z++ {
				idx := lat.SiteIndex(Coord{x, y, z})
				if idx < 0 || idx >= lat.SiteCount() {
					t.Fatalf("index %d for (%d,%d,%d) outside [0,%d)", idx, x, y, z, lat.SiteCount())
				}
				if seen[idx] {
					t.Fatalf("index %d hit twice", idx)
				}
				seen[idx] = true
			}
		}
	}
	assert.Len(t, seen, 120)
}

func TestLattice_SiteOutOfRange(t *testing.T) {
	lat := NewLattice(testParams())
	_, err := lat.Site(Coord{-1, 0, 0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = lat.Site(Coord{0, 10, 0})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestLattice_StepDest(t *testing.T) {
	params := testParams()
	params.EnablePeriodicX = true
	lat := NewLattice(params)

	dest, ok := lat.StepDest(Coord{9, 5, 5}, 1, 0, 0)
	require.True(t, ok)
	assert.Equal(t, Coord{0, 5, 5}, dest, "periodic x wraps around")

	_, ok = lat.StepDest(Coord{5, 9, 5}, 0, 1, 0)
	assert.False(t, ok, "non-periodic y falls off the edge")
}

func TestLattice_MinImageDistSq(t *testing.T) {
	params := testParams()
	lat := NewLattice(params)
	// Without wrap the corners are far apart.
	assert.Equal(t, 3*81, lat.MinImageDistSq(Coord{0, 0, 0}, Coord{9, 9, 9}))

	params.EnablePeriodicX = true
	params.EnablePeriodicY = true
	params.EnablePeriodicZ = true
	lat = NewLattice(params)
	// Under full wrap the corners are nearest images, distance sqrt(3).
	assert.Equal(t, 3, lat.MinImageDistSq(Coord{0, 0, 0}, Coord{9, 9, 9}))
}

func TestSite_Occupancy(t *testing.T) {
	var s Site
	assert.False(t, s.Occupied())

	ref := ObjectRef{idx: 3, gen: 1}
	require.NoError(t, s.SetOccupied(ref))
	assert.True(t, s.Occupied())
	assert.Equal(t, ref, s.Object())

	err := s.SetOccupied(ObjectRef{idx: 4, gen: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOccupancyViolation))

	s.ClearOccupancy()
	assert.False(t, s.Occupied())
	s.ClearOccupancy() // clearing an empty site is a no-op
	assert.False(t, s.Occupied())
}
