package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bodyplan/components"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max r3.Vec
}

func (b AABB) extend(o AABB) AABB {
	return AABB{
		Min: r3.Vec{X: math.Min(b.Min.X, o.Min.X), Y: math.Min(b.Min.Y, o.Min.Y), Z: math.Min(b.Min.Z, o.Min.Z)},
		Max: r3.Vec{X: math.Max(b.Max.X, o.Max.X), Y: math.Max(b.Max.Y, o.Max.Y), Z: math.Max(b.Max.Z, o.Max.Z)},
	}
}

// Size returns the box's edge lengths.
func (b AABB) Size() r3.Vec {
	return r3.Sub(b.Max, b.Min)
}

// SegmentBounds returns the world AABB of an oriented cuboid.
func SegmentBounds(xf components.Transform, half r3.Vec) AABB {
	ex := xf.Orientation.Rotate(r3.Vec{X: half.X})
	ey := xf.Orientation.Rotate(r3.Vec{Y: half.Y})
	ez := xf.Orientation.Rotate(r3.Vec{Z: half.Z})
	reach := r3.Vec{
		X: math.Abs(ex.X) + math.Abs(ey.X) + math.Abs(ez.X),
		Y: math.Abs(ex.Y) + math.Abs(ey.Y) + math.Abs(ez.Y),
		Z: math.Abs(ex.Z) + math.Abs(ey.Z) + math.Abs(ez.Z),
	}
	return AABB{Min: r3.Sub(xf.Center, reach), Max: r3.Add(xf.Center, reach)}
}

// BoundsSystem aggregates segment bounds per tree.
type BoundsSystem struct {
	filter ecs.Filter2[components.Segment, components.Transform]
}

// NewBoundsSystem creates a bounds system for w.
func NewBoundsSystem(w *ecs.World) *BoundsSystem {
	return &BoundsSystem{
		filter: *ecs.NewFilter2[components.Segment, components.Transform](w),
	}
}

// Update returns the bounds of every tree, keyed by tree index.
func (s *BoundsSystem) Update() map[int]AABB {
	out := make(map[int]AABB)
	query := s.filter.Query()
	for query.Next() {
		seg, xf := query.Get()
		b := SegmentBounds(*xf, seg.HalfExtents)
		if prev, ok := out[seg.Tree]; ok {
			b = prev.extend(b)
		}
		out[seg.Tree] = b
	}
	return out
}

// Settle shifts every tree vertically so its lowest point rests on y=0.
func (s *BoundsSystem) Settle() {
	bounds := s.Update()
	query := s.filter.Query()
	for query.Next() {
		seg, xf := query.Get()
		if b, ok := bounds[seg.Tree]; ok {
			xf.Center.Y -= b.Min.Y
		}
	}
}
