package kmc

import "fmt"

// Site is one cell of the lattice. When occupied it carries a non-owning
// handle to the resident object.
type Site struct {
	occupied bool
	object   ObjectRef
}

// Occupied reports whether an object resides on the site.
func (s *Site) Occupied() bool {
	return s.occupied
}

// Object returns the handle of the resident object. The zero handle is
// returned for an empty site.
func (s *Site) Object() ObjectRef {
	return s.object
}

// SetOccupied marks the site occupied by the given object. Setting an
// already-occupied site is an occupancy violation.
func (s *Site) SetOccupied(ref ObjectRef) error {
	if s.occupied {
		return fmt.Errorf("%w: site already occupied", ErrOccupancyViolation)
	}
	s.occupied = true
	s.object = ref
	return nil
}

// ClearOccupancy empties the site. Clearing an empty site is a no-op.
func (s *Site) ClearOccupancy() {
	s.occupied = false
	s.object = ObjectRef{}
}
