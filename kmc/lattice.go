package kmc

import (
	"fmt"
	"math/rand"
)

// Lattice is the dense 3D site grid. Sites are stored in a contiguous slice
// indexed by SiteIndex; periodic wrap is configured per axis.
type Lattice struct {
	length, width, height           int
	periodicX, periodicY, periodicZ bool
	sites                           []Site
}

// NewLattice allocates the site grid described by params. Params must have
// been validated.
func NewLattice(params Parameters) *Lattice {
	return &Lattice{
		length:    params.Length,
		width:     params.Width,
		height:    params.Height,
		periodicX: params.EnablePeriodicX,
		periodicY: params.EnablePeriodicY,
		periodicZ: params.EnablePeriodicZ,
		sites:     make([]Site, params.Length*params.Width*params.Height),
	}
}

// SiteIndex maps a coordinate to its position in the site slice.
// The mapping is a bijection onto [0, L*W*H) over in-range coordinates.
func (l *Lattice) SiteIndex(c Coord) int {
	return c.X*l.width*l.height + c.Y*l.height + c.Z
}

// Site returns the site at the given coordinate, or ErrInvalidArgument when
// the coordinate is out of range.
func (l *Lattice) Site(c Coord) (*Site, error) {
	if !l.InBounds(c) {
		return nil, fmt.Errorf("%w: coords %v outside %dx%dx%d lattice", ErrInvalidArgument, c, l.length, l.width, l.height)
	}
	return &l.sites[l.SiteIndex(c)], nil
}

// InBounds reports whether c lies in [0,L)x[0,W)x[0,H).
func (l *Lattice) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < l.length &&
		c.Y >= 0 && c.Y < l.width &&
		c.Z >= 0 && c.Z < l.height
}

// SiteCount returns the total number of lattice sites.
func (l *Lattice) SiteCount() int {
	return l.length * l.width * l.height
}

// Length returns the lattice extent along x.
func (l *Lattice) Length() int { return l.length }

// Width returns the lattice extent along y.
func (l *Lattice) Width() int { return l.width }

// Height returns the lattice extent along z.
func (l *Lattice) Height() int { return l.height }

// WrapDX returns the periodic adjustment for a step of dx from x.
func (l *Lattice) WrapDX(x, dx int) int {
	return WrapDelta(x, dx, l.length, l.periodicX)
}

// WrapDY returns the periodic adjustment for a step of dy from y.
func (l *Lattice) WrapDY(y, dy int) int {
	return WrapDelta(y, dy, l.width, l.periodicY)
}

// WrapDZ returns the periodic adjustment for a step of dz from z.
func (l *Lattice) WrapDZ(z, dz int) int {
	return WrapDelta(z, dz, l.height, l.periodicZ)
}

// StepDest applies a (dx,dy,dz) step to c with periodic wrap. The second
// return value is false when the destination falls off a non-periodic edge.
func (l *Lattice) StepDest(c Coord, dx, dy, dz int) (Coord, bool) {
	dest := Coord{
		X: c.X + dx + l.WrapDX(c.X, dx),
		Y: c.Y + dy + l.WrapDY(c.Y, dy),
		Z: c.Z + dz + l.WrapDZ(c.Z, dz),
	}
	return dest, l.InBounds(dest)
}

// MinImageDistSq returns the squared minimum-image lattice distance between
// two coordinates under the enabled periodic axes.
func (l *Lattice) MinImageDistSq(a, b Coord) int {
	dx := abs(b.X-a.X) + MinImageDelta(b.X-a.X, l.length, l.periodicX)
	dy := abs(b.Y-a.Y) + MinImageDelta(b.Y-a.Y, l.width, l.periodicY)
	dz := abs(b.Z-a.Z) + MinImageDelta(b.Z-a.Z, l.height, l.periodicZ)
	return dx*dx + dy*dy + dz*dz
}

// RandomCoords draws a uniformly random cell using three independent
// uniform-integer draws from rng.
func (l *Lattice) RandomCoords(rng *rand.Rand) Coord {
	return Coord{
		X: rng.Intn(l.length),
		Y: rng.Intn(l.width),
		Z: rng.Intn(l.height),
	}
}
