package body

import "fmt"

// Realizer turns a tree into consumer-specific objects. NewSegment is
// called exactly once per node, parents before children, and the handle
// it returns is passed on as the parent handle of that node's children.
type Realizer[H any] interface {
	// Root supplies the synthetic parent of the root segment.
	Root() (H, Joint)
	NewSegment(seg *Segment, parent H, parentJoint Joint) H
}

type frame[H any] struct {
	id     NodeID
	parent H
	joint  Joint
}

// Realize walks t depth first, children in insertion order, handing every
// segment to r.
func Realize[H any](t *Tree, r Realizer[H]) error {
	if t.Len() == 0 {
		return fmt.Errorf("realize: %w: empty tree", ErrInvalidNode)
	}
	handle, joint := r.Root()
	stack := []frame[H]{{id: t.Root(), parent: handle, joint: joint}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[f.id]
		h := r.NewSegment(&n.segment, f.parent, f.joint)

		// push in reverse so the first child is visited first
		for i := len(n.children) - 1; i >= 0; i-- {
			c := n.children[i]
			stack = append(stack, frame[H]{id: c, parent: h, joint: t.nodes[c].joint})
		}
	}
	return nil
}
