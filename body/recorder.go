package body

import (
	"fmt"
	"strings"
)

// Visit is one NewSegment call seen by a Recorder.
type Visit struct {
	ID     int
	Parent int
	Joint  JointKind
	Shape  Shape
}

// Recorder is a Realizer that assigns sequential ids starting at 1 and
// records every call. The synthetic root handle is 0.
type Recorder struct {
	Visits []Visit
	last   int
}

// Root returns handle 0 attached to the ground.
func (r *Recorder) Root() (int, Joint) {
	return 0, GroundJoint()
}

// NewSegment records the call and returns the next id.
func (r *Recorder) NewSegment(seg *Segment, parent int, parentJoint Joint) int {
	r.last++
	r.Visits = append(r.Visits, Visit{
		ID:     r.last,
		Parent: parent,
		Joint:  parentJoint.Kind,
		Shape:  seg.Shape,
	})
	return r.last
}

// String renders the visits indented by depth.
func (r *Recorder) String() string {
	depth := map[int]int{0: -1}
	var b strings.Builder
	for _, v := range r.Visits {
		d := depth[v.Parent] + 1
		depth[v.ID] = d
		fmt.Fprintf(&b, "%s#%d %s via %s\n", strings.Repeat("  ", d), v.ID, v.Shape, v.Joint)
	}
	return b.String()
}
