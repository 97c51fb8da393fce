// Package body describes creature body plans as trees of gene-driven
// segments joined by joints, and the operations that grow, mutate and
// realize them.
package body

import (
	"fmt"

	"github.com/pthm-cable/bodyplan/genes"
)

// CuboidFaces is the number of faces a child can attach to on a cuboid.
const CuboidFaces = 6

// Shape identifies the segment variant.
type Shape uint8

const (
	Cuboid Shape = iota
)

var shapeNames = map[Shape]string{
	Cuboid: "cuboid",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("shape(%d)", uint8(s))
}

// ParseShape returns the shape with the given name.
func ParseShape(name string) (Shape, bool) {
	for s, n := range shapeNames {
		if n == name {
			return s, true
		}
	}
	return 0, false
}

// Attachment places a child on a face of its parent: which face, and a
// 2D coordinate on that face.
type Attachment struct {
	Face genes.Param
	U    genes.Param
	V    genes.Param
}

// Segment is one rigid element of a body plan.
// Position is relative to a parent face rather than an absolute offset,
// since an offset is meaningless without both parent and own dimensions.
type Segment struct {
	Shape Shape
	Dims  genes.Set3
	Pos   Attachment
	Rot   genes.Set3
}

// slot resolves one flat gene index of a shape to its field.
type slot func(*Segment) *genes.Param

// layouts maps each shape to its flat gene layout.
var layouts = map[Shape][]slot{
	Cuboid: {
		func(s *Segment) *genes.Param { return &s.Dims.X },
		func(s *Segment) *genes.Param { return &s.Dims.Y },
		func(s *Segment) *genes.Param { return &s.Dims.Z },
		func(s *Segment) *genes.Param { return &s.Pos.Face },
		func(s *Segment) *genes.Param { return &s.Pos.U },
		func(s *Segment) *genes.Param { return &s.Pos.V },
		func(s *Segment) *genes.Param { return &s.Rot.X },
		func(s *Segment) *genes.Param { return &s.Rot.Y },
		func(s *Segment) *genes.Param { return &s.Rot.Z },
	},
}

// NewCuboid builds a cuboid from raw gene values. pos is (face, u, v).
func NewCuboid(dims, pos, rot [3]float64) Segment {
	return Segment{
		Shape: Cuboid,
		Dims:  genes.NewSet3(genes.Dimension, dims[0], dims[1], dims[2]),
		Pos: Attachment{
			Face: genes.New(genes.FaceIndex, pos[0]),
			U:    genes.New(genes.FaceCoord, pos[1]),
			V:    genes.New(genes.FaceCoord, pos[2]),
		},
		Rot: genes.NewSet3(genes.Rotation, rot[0], rot[1], rot[2]),
	}
}

// Count returns the number of genes in the segment's layout.
func (s *Segment) Count() int {
	return len(layouts[s.Shape])
}

// ParamCount is an alias for Count.
func (s *Segment) ParamCount() int {
	return s.Count()
}

// At returns the gene at flat index i.
func (s *Segment) At(i int) (*genes.Param, error) {
	layout := layouts[s.Shape]
	if i < 0 || i >= len(layout) {
		return nil, fmt.Errorf("%w: %d not in [0,%d) for %s", genes.ErrIndexOutOfRange, i, len(layout), s.Shape)
	}
	return layout[i](s), nil
}

// Raw returns every gene's raw value in flat index order.
func (s *Segment) Raw() []float64 {
	layout := layouts[s.Shape]
	raw := make([]float64, len(layout))
	for i, get := range layout {
		raw[i] = get(s).Value
	}
	return raw
}

// SetRaw assigns raw values in flat index order. The slice length must
// match the layout.
func (s *Segment) SetRaw(raw []float64) error {
	layout := layouts[s.Shape]
	if len(raw) != len(layout) {
		return fmt.Errorf("%w: %d values for %d %s genes", genes.ErrIndexOutOfRange, len(raw), len(layout), s.Shape)
	}
	for i, get := range layout {
		get(s).Set(raw[i])
	}
	return nil
}

// Size returns the scaled edge lengths.
func (s *Segment) Size() (x, y, z float64) {
	return s.Dims.Scaled()
}

// Face returns the parent face index this segment attaches to.
func (s *Segment) Face(faces int) int {
	return s.Pos.Face.Index(faces)
}

// FaceCoords returns the scaled attachment coordinates in [-1,1].
func (s *Segment) FaceCoords() (u, v float64) {
	return s.Pos.U.Scaled(), s.Pos.V.Scaled()
}

// Angles returns the scaled euler rotation in radians.
func (s *Segment) Angles() (x, y, z float64) {
	return s.Rot.Scaled()
}
