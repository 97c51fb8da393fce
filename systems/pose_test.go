package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bodyplan/body"
	"github.com/pthm-cable/bodyplan/components"
)

const eps = 1e-9

func near(a, b r3.Vec) bool {
	return r3.Norm(r3.Sub(a, b)) < eps
}

// faceRaw returns a face gene value selecting face f of six.
func faceRaw(f int) float64 {
	return (float64(f) + 0.5) / body.CuboidFaces
}

func TestEulerRotationIdentity(t *testing.T) {
	p := r3.Vec{X: 1, Y: 2, Z: 3}
	if got := EulerRotation(0, 0, 0).Rotate(p); !near(got, p) {
		t.Errorf("zero euler rotated %v to %v", p, got)
	}
}

func TestEulerRotationQuarterTurn(t *testing.T) {
	got := EulerRotation(0, 0, math.Pi/2).Rotate(r3.Vec{X: 1})
	if !near(got, r3.Vec{Y: 1}) {
		t.Errorf("quarter turn about z gave %v, want (0,1,0)", got)
	}
	// x first, then z: y -> z -> z
	got = EulerRotation(math.Pi/2, 0, math.Pi/2).Rotate(r3.Vec{Y: 1})
	if !near(got, r3.Vec{Z: 1}) {
		t.Errorf("x then z turn gave %v, want (0,0,1)", got)
	}
}

func TestPoseFaces(t *testing.T) {
	parent := components.Transform{Center: r3.Vec{Y: 10}, Orientation: Identity}
	parentHalf := r3.Vec{X: 1, Y: 2, Z: 3}

	tests := []struct {
		face int
		want r3.Vec
	}{
		{0, r3.Vec{X: 1 + 0.5, Y: 10}},
		{1, r3.Vec{X: -1 - 0.5, Y: 10}},
		{2, r3.Vec{Y: 10 + 2 + 0.5}},
		{3, r3.Vec{Y: 10 - 2 - 0.5}},
		{4, r3.Vec{Y: 10, Z: 3 + 0.5}},
		{5, r3.Vec{Y: 10, Z: -3 - 0.5}},
	}

	for _, tt := range tests {
		// raw (1-0.1)/9.9 scales a dimension to exactly 1
		d := 0.9 / 9.9
		seg := body.NewCuboid([3]float64{d, d, d}, [3]float64{faceRaw(tt.face), 0.5, 0.5}, [3]float64{})
		got := Pose(parent, parentHalf, &seg)
		if !near(got.Center, tt.want) {
			t.Errorf("face %d: center %v, want %v", tt.face, got.Center, tt.want)
		}
	}
}

func TestPoseFaceCoords(t *testing.T) {
	parent := components.Transform{Orientation: Identity}
	parentHalf := r3.Vec{X: 1, Y: 2, Z: 3}
	d := 0.9 / 9.9
	// +x face, u = 1 (y), v = -1 (z)
	seg := body.NewCuboid([3]float64{d, d, d}, [3]float64{faceRaw(0), 1, 0}, [3]float64{})
	got := Pose(parent, parentHalf, &seg)
	want := r3.Vec{X: 1.5, Y: 2, Z: -3}
	if !near(got.Center, want) {
		t.Errorf("center %v, want %v", got.Center, want)
	}
}

func TestPoseFollowsParentOrientation(t *testing.T) {
	parent := components.Transform{Orientation: EulerRotation(0, 0, math.Pi/2)}
	d := 0.9 / 9.9
	seg := body.NewCuboid([3]float64{d, d, d}, [3]float64{faceRaw(0), 0.5, 0.5}, [3]float64{})
	got := Pose(parent, r3.Vec{X: 1, Y: 1, Z: 1}, &seg)
	// +x of a parent turned a quarter about z points along world +y
	if !near(got.Center, r3.Vec{Y: 1.5}) {
		t.Errorf("center %v, want (0,1.5,0)", got.Center)
	}
	if !near(got.Orientation.Rotate(r3.Vec{X: 1}), r3.Vec{Y: 1}) {
		t.Error("child did not inherit parent orientation")
	}
}
