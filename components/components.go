// Package components defines ECS components for realized body segments.
package components

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bodyplan/body"
)

// Segment identifies a realized segment and its size.
type Segment struct {
	Tree        int    // Index of the tree within its population
	Order       int    // Realization order within the tree, root = 0
	Depth       int    // Edges from the root
	HalfExtents r3.Vec // Half of the scaled cuboid dimensions
}

// Transform is a segment's world pose.
type Transform struct {
	Center      r3.Vec
	Orientation r3.Rotation
}

// Link records how a segment attaches to its parent.
type Link struct {
	Parent   ecs.Entity // Zero for roots
	Joint    body.JointKind
	Grounded bool // Root attached to the world
}

// Colour is the display colour handed to renderers.
type Colour struct {
	R, G, B float32
}

// ColourFrom converts a config triple.
func ColourFrom(c [3]float64) Colour {
	return Colour{R: float32(c[0]), G: float32(c[1]), B: float32(c[2])}
}
