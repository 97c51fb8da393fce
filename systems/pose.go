package systems

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bodyplan/body"
	"github.com/pthm-cable/bodyplan/components"
)

// Identity is the rotation that leaves vectors unchanged.
var Identity = r3.Rotation{Real: 1}

var (
	axisX = r3.Vec{X: 1}
	axisY = r3.Vec{Y: 1}
	axisZ = r3.Vec{Z: 1}
)

// cuboidFace describes one face of a unit cuboid: the outward normal and
// the two tangent axes spanned by the face coordinates.
type cuboidFace struct {
	normal, u, v r3.Vec
}

// Faces in attachment order: +x, -x, +y, -y, +z, -z.
var cuboidFaces = [body.CuboidFaces]cuboidFace{
	{normal: axisX, u: axisY, v: axisZ},
	{normal: r3.Scale(-1, axisX), u: axisY, v: axisZ},
	{normal: axisY, u: axisX, v: axisZ},
	{normal: r3.Scale(-1, axisY), u: axisX, v: axisZ},
	{normal: axisZ, u: axisX, v: axisY},
	{normal: r3.Scale(-1, axisZ), u: axisX, v: axisY},
}

// HalfExtents returns half the scaled dimensions of seg.
func HalfExtents(seg *body.Segment) r3.Vec {
	x, y, z := seg.Size()
	return r3.Vec{X: x / 2, Y: y / 2, Z: z / 2}
}

// Compose returns the rotation applying b first, then a.
func Compose(a, b r3.Rotation) r3.Rotation {
	return r3.Rotation(quat.Mul(quat.Number(a), quat.Number(b)))
}

// EulerRotation rotates about x, then y, then z.
func EulerRotation(x, y, z float64) r3.Rotation {
	rx := r3.NewRotation(x, axisX)
	ry := r3.NewRotation(y, axisY)
	rz := r3.NewRotation(z, axisZ)
	return Compose(rz, Compose(ry, rx))
}

// dot picks the component of h along a unit axis.
func dot(h, axis r3.Vec) float64 {
	return math.Abs(h.X*axis.X) + math.Abs(h.Y*axis.Y) + math.Abs(h.Z*axis.Z)
}

// Pose resolves a child's world transform from its parent's transform and
// half extents. The child sits on face seg.Face(6) of the parent at the
// scaled face coordinates, pushed out along the face normal by its own
// half extent on that axis.
func Pose(parent components.Transform, parentHalf r3.Vec, seg *body.Segment) components.Transform {
	face := cuboidFaces[seg.Face(body.CuboidFaces)]
	u, v := seg.FaceCoords()
	half := HalfExtents(seg)

	local := r3.Add(
		r3.Scale(dot(parentHalf, face.normal), face.normal),
		r3.Add(
			r3.Scale(u*dot(parentHalf, face.u), face.u),
			r3.Scale(v*dot(parentHalf, face.v), face.v),
		),
	)
	local = r3.Add(local, r3.Scale(dot(half, face.normal), face.normal))

	ax, ay, az := seg.Angles()
	return components.Transform{
		Center:      r3.Add(parent.Center, parent.Orientation.Rotate(local)),
		Orientation: Compose(parent.Orientation, EulerRotation(ax, ay, az)),
	}
}

// RootPose places a root segment at origin with its own rotation genes.
func RootPose(origin r3.Vec, seg *body.Segment) components.Transform {
	ax, ay, az := seg.Angles()
	return components.Transform{
		Center:      origin,
		Orientation: EulerRotation(ax, ay, az),
	}
}
