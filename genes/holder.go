package genes

import "fmt"

// Holder exposes an ordered set of genes through a flat index space.
type Holder interface {
	Count() int
	At(i int) (*Param, error)
}

// Set3 is three genes of the same kind addressed as x, y, z.
type Set3 struct {
	X, Y, Z Param
}

// NewSet3 returns a set of kind with the given raw values.
func NewSet3(kind Kind, x, y, z float64) Set3 {
	return Set3{
		X: New(kind, x),
		Y: New(kind, y),
		Z: New(kind, z),
	}
}

// Count always returns 3.
func (s *Set3) Count() int { return 3 }

// At returns x, y or z for indices 0, 1 and 2.
func (s *Set3) At(i int) (*Param, error) {
	switch i {
	case 0:
		return &s.X, nil
	case 1:
		return &s.Y, nil
	case 2:
		return &s.Z, nil
	}
	return nil, fmt.Errorf("%w: %d not in [0,3)", ErrIndexOutOfRange, i)
}

// Scaled returns the three scaled values.
func (s Set3) Scaled() (x, y, z float64) {
	return s.X.Scaled(), s.Y.Scaled(), s.Z.Scaled()
}

// Raw returns the three raw values.
func (s Set3) Raw() [3]float64 {
	return [3]float64{s.X.Value, s.Y.Value, s.Z.Value}
}
