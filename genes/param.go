// Package genes provides normalized, ranged gene values and the holder
// abstraction the mutation engine works through.
package genes

import (
	"errors"
	"fmt"
	"math"
)

// ErrIndexOutOfRange is returned when a gene index is outside a holder's count.
var ErrIndexOutOfRange = errors.New("gene index out of range")

// Kind is the semantic role of a gene. The role fixes the real-world range.
type Kind uint8

const (
	Unranged  Kind = iota // raw value is used as is
	Dimension             // cuboid edge length
	FaceIndex             // which face of the parent a child attaches to
	FaceCoord             // coordinate on a parent face
	Rotation              // euler angle relative to the parent
	Torque                // actuated joint torque limit
	MaxSpeed              // actuated joint speed limit
)

var kindRanges = [...][2]float64{
	Unranged:  {0, 1},
	Dimension: {0.1, 10.0},
	FaceIndex: {0, 1},
	FaceCoord: {-1, 1},
	Rotation:  {0, math.Pi},
	Torque:    {0, 100},
	MaxSpeed:  {0, 10},
}

var kindNames = [...]string{
	Unranged:  "unranged",
	Dimension: "dimension",
	FaceIndex: "face_index",
	FaceCoord: "face_coord",
	Rotation:  "rotation",
	Torque:    "torque",
	MaxSpeed:  "max_speed",
}

// Range returns the (min, max) interval a raw value of 0..1 maps onto.
func (k Kind) Range() (min, max float64) {
	if int(k) >= len(kindRanges) {
		return 0, 1
	}
	r := kindRanges[k]
	return r[0], r[1]
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Param is a single gene: a raw value in [0,1] plus its role.
type Param struct {
	Kind  Kind
	Value float64
}

// New returns a gene of the given kind with raw clamped into [0,1].
func New(kind Kind, raw float64) Param {
	p := Param{Kind: kind}
	p.Set(raw)
	return p
}

// Get returns the raw value.
func (p Param) Get() float64 {
	return p.Value
}

// Set stores raw clamped into [0,1]. NaN is stored as 0.
func (p *Param) Set(raw float64) {
	p.Value = Clamp01(raw)
}

// Add offsets the raw value and clamps the result.
func (p *Param) Add(offset float64) {
	p.Set(p.Value + offset)
}

// Range returns the scaling interval of the gene's kind.
func (p Param) Range() (min, max float64) {
	return p.Kind.Range()
}

// Scaled maps the raw value onto the gene's range.
func (p Param) Scaled() float64 {
	min, max := p.Kind.Range()
	return min + (max-min)*p.Value
}

// Index resolves the raw value onto one of count discrete slots.
// Returns 0 when count < 1.
func (p Param) Index(count int) int {
	if count < 1 {
		return 0
	}
	i := int(math.Floor(p.Value * float64(count)))
	if i < 0 {
		return 0
	}
	if i > count-1 {
		return count - 1
	}
	return i
}

// Clamp01 clamps v into [0,1], mapping NaN to 0.
func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
