package body

import (
	"errors"
	"fmt"
)

// ErrInvalidNode is returned when a node id does not belong to the tree.
var ErrInvalidNode = errors.New("invalid node")

// NodeID addresses a node within one tree. IDs are stable for the life of
// the tree and assigned in insertion order; the root is always 0.
type NodeID int

// NoParent is the parent id recorded for the root.
const NoParent NodeID = -1

// Edge is a child together with the joint attaching it to its parent.
type Edge struct {
	Child NodeID
	Joint Joint
}

type node struct {
	segment  Segment
	parent   NodeID
	joint    Joint // incoming joint; Ground for the root
	children []NodeID
}

// Tree is a rooted tree of segments. It owns its nodes exclusively.
type Tree struct {
	nodes []node
}

// WithRoot creates a single-node tree.
func WithRoot(root Segment) *Tree {
	return &Tree{
		nodes: []node{{segment: root, parent: NoParent, joint: GroundJoint()}},
	}
}

// Root returns the root's id.
func (t *Tree) Root() NodeID {
	return 0
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Edges returns the number of parent/child links.
func (t *Tree) Edges() int {
	if len(t.nodes) == 0 {
		return 0
	}
	return len(t.nodes) - 1
}

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

func (t *Tree) check(id NodeID) error {
	if !t.valid(id) {
		return fmt.Errorf("%w: %d not in tree of %d nodes", ErrInvalidNode, id, len(t.nodes))
	}
	return nil
}

// AddChild appends seg as a child of parent attached by joint.
func (t *Tree) AddChild(parent NodeID, seg Segment, joint Joint) (NodeID, error) {
	if err := t.check(parent); err != nil {
		return NoParent, fmt.Errorf("add child: %w", err)
	}
	// TODO: enforce a per-segment child limit once consumers agree on one.
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{segment: seg, parent: parent, joint: joint})
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id, nil
}

// Children returns the direct children of id in insertion order.
func (t *Tree) Children(id NodeID) ([]Edge, error) {
	if err := t.check(id); err != nil {
		return nil, fmt.Errorf("children: %w", err)
	}
	kids := t.nodes[id].children
	edges := make([]Edge, len(kids))
	for i, c := range kids {
		edges[i] = Edge{Child: c, Joint: t.nodes[c].joint}
	}
	return edges, nil
}

// Parent returns the parent of id and the joint attaching id to it.
// ok is false for the root.
func (t *Tree) Parent(id NodeID) (parent NodeID, joint Joint, ok bool, err error) {
	if err := t.check(id); err != nil {
		return NoParent, Joint{}, false, fmt.Errorf("parent: %w", err)
	}
	n := t.nodes[id]
	return n.parent, n.joint, n.parent != NoParent, nil
}

// Segment returns the segment stored at id. The pointer stays valid until
// the next AddChild.
func (t *Tree) Segment(id NodeID) (*Segment, error) {
	if err := t.check(id); err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}
	return &t.nodes[id].segment, nil
}

// Depth returns the number of edges between the root and id.
func (t *Tree) Depth(id NodeID) (int, error) {
	if err := t.check(id); err != nil {
		return 0, fmt.Errorf("depth: %w", err)
	}
	d := 0
	for t.nodes[id].parent != NoParent {
		id = t.nodes[id].parent
		d++
	}
	return d, nil
}

// Height returns the longest root-to-leaf path in edges.
func (t *Tree) Height() int {
	// parents always precede children, so one forward pass suffices
	depth := make([]int, len(t.nodes))
	h := 0
	for i := 1; i < len(t.nodes); i++ {
		depth[i] = depth[t.nodes[i].parent] + 1
		if depth[i] > h {
			h = depth[i]
		}
	}
	return h
}

// Validate checks the tree invariants: a single root at id 0, every other
// node's parent precedes it, and child lists agree with parent links.
func (t *Tree) Validate() error {
	if len(t.nodes) == 0 {
		return fmt.Errorf("%w: empty tree", ErrInvalidNode)
	}
	if t.nodes[0].parent != NoParent {
		return fmt.Errorf("%w: root has parent %d", ErrInvalidNode, t.nodes[0].parent)
	}
	listed := make([]int, len(t.nodes))
	for i, n := range t.nodes {
		for _, c := range n.children {
			if !t.valid(c) || t.nodes[c].parent != NodeID(i) {
				return fmt.Errorf("%w: node %d lists %d as child", ErrInvalidNode, i, c)
			}
			listed[c]++
		}
		if i == 0 {
			continue
		}
		if n.parent < 0 || int(n.parent) >= i {
			return fmt.Errorf("%w: node %d has parent %d", ErrInvalidNode, i, n.parent)
		}
	}
	for i := 1; i < len(listed); i++ {
		if listed[i] != 1 {
			return fmt.Errorf("%w: node %d listed %d times", ErrInvalidNode, i, listed[i])
		}
	}
	return nil
}

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	c := &Tree{nodes: make([]node, len(t.nodes))}
	for i, n := range t.nodes {
		n.children = append([]NodeID(nil), n.children...)
		c.nodes[i] = n
	}
	return c
}

// Equal reports structural equality: same topology, same insertion order,
// same raw genes and same joints.
func Equal(a, b *Tree) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.nodes {
		na, nb := &a.nodes[i], &b.nodes[i]
		if na.parent != nb.parent || !na.joint.Equal(nb.joint) {
			return false
		}
		if len(na.children) != len(nb.children) {
			return false
		}
		for j := range na.children {
			if na.children[j] != nb.children[j] {
				return false
			}
		}
		if na.segment.Shape != nb.segment.Shape {
			return false
		}
		ra, rb := na.segment.Raw(), nb.segment.Raw()
		for j := range ra {
			if ra[j] != rb[j] {
				return false
			}
		}
	}
	return true
}
