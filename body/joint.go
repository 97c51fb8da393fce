package body

import (
	"fmt"

	"github.com/pthm-cable/bodyplan/genes"
)

// JointKind describes how a child attaches to its parent.
type JointKind uint8

const (
	// Ground is the synthetic attachment of a root to the world.
	Ground JointKind = iota
	// Fixed welds a child rigidly to its parent.
	Fixed
	// Rotational is an actuated hinge limited by torque and speed genes.
	Rotational
)

var jointNames = map[JointKind]string{
	Ground:     "ground",
	Fixed:      "fixed",
	Rotational: "rotational",
}

func (k JointKind) String() string {
	if name, ok := jointNames[k]; ok {
		return name
	}
	return fmt.Sprintf("joint(%d)", uint8(k))
}

// ParseJointKind returns the joint kind with the given name.
func ParseJointKind(name string) (JointKind, bool) {
	for k, n := range jointNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Joint labels a tree edge. Torque and MaxSpeed are only meaningful for
// Rotational joints.
type Joint struct {
	Kind     JointKind
	Torque   genes.Param
	MaxSpeed genes.Param
}

// GroundJoint returns the root attachment.
func GroundJoint() Joint {
	return Joint{Kind: Ground}
}

// FixedJoint returns a rigid weld.
func FixedJoint() Joint {
	return Joint{Kind: Fixed}
}

// RotationalJoint returns an actuated hinge with raw torque and speed genes.
func RotationalJoint(torque, maxSpeed float64) Joint {
	return Joint{
		Kind:     Rotational,
		Torque:   genes.New(genes.Torque, torque),
		MaxSpeed: genes.New(genes.MaxSpeed, maxSpeed),
	}
}

// Equal reports whether two joints have the same kind and, for actuated
// joints, the same raw genes.
func (j Joint) Equal(o Joint) bool {
	if j.Kind != o.Kind {
		return false
	}
	if j.Kind != Rotational {
		return true
	}
	return j.Torque.Value == o.Torque.Value && j.MaxSpeed.Value == o.MaxSpeed.Value
}
