package kmc

import "fmt"

// Coord names a cell on the 3D lattice.
type Coord struct {
	X, Y, Z int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// WrapDelta returns the adjustment to add to pos+step so the result lands
// inside [0, extent) on a periodic axis. On a non-periodic axis the
// adjustment is always 0 and the caller handles out-of-range destinations.
func WrapDelta(pos, step, extent int, periodic bool) int {
	if !periodic {
		return 0
	}
	if pos+step < 0 {
		return extent
	}
	if pos+step >= extent {
		return -extent
	}
	return 0
}

// MinImageDelta returns the adjustment to add to |delta| to obtain the
// minimum-image distance along one axis. For a periodic axis the
// adjustment is -extent whenever |delta| exceeds extent/2; otherwise 0.
// A folded sum is negative (|delta|-extent); its magnitude is the distance.
func MinImageDelta(delta, extent int, periodic bool) int {
	if !periodic {
		return 0
	}
	if abs(delta) > extent/2 {
		return -extent
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
