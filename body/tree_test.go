package body

import (
	"errors"
	"math/rand"
	"testing"
)

func cube() Segment {
	// raw 0.5 scales to 5.05; close enough to a 5x5x5 block
	return NewCuboid([3]float64{0.5, 0.5, 0.5}, [3]float64{}, [3]float64{})
}

func TestWithRoot(t *testing.T) {
	tree := WithRoot(cube())
	if tree.Len() != 1 || tree.Edges() != 0 {
		t.Fatalf("Len, Edges = %d, %d; want 1, 0", tree.Len(), tree.Edges())
	}
	_, joint, ok, err := tree.Parent(tree.Root())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("root reports a parent")
	}
	if joint.Kind != Ground {
		t.Errorf("root joint = %v, want ground", joint.Kind)
	}
	if err := tree.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestAddChildInvalidParent(t *testing.T) {
	tree := WithRoot(cube())
	for _, id := range []NodeID{-1, 1, 42} {
		if _, err := tree.AddChild(id, cube(), FixedJoint()); !errors.Is(err, ErrInvalidNode) {
			t.Errorf("AddChild(%d) error = %v, want ErrInvalidNode", id, err)
		}
	}
	if tree.Len() != 1 {
		t.Errorf("failed AddChild changed Len to %d", tree.Len())
	}
	if _, err := tree.Children(7); !errors.Is(err, ErrInvalidNode) {
		t.Errorf("Children(7) error = %v, want ErrInvalidNode", err)
	}
	if _, err := tree.Segment(7); !errors.Is(err, ErrInvalidNode) {
		t.Errorf("Segment(7) error = %v, want ErrInvalidNode", err)
	}
}

func TestChildrenInsertionOrder(t *testing.T) {
	tree := WithRoot(cube())
	root := tree.Root()
	var want []NodeID
	for i := 0; i < 5; i++ {
		joint := FixedJoint()
		if i%2 == 1 {
			joint = RotationalJoint(0.5, 0.5)
		}
		id, err := tree.AddChild(root, cube(), joint)
		if err != nil {
			t.Fatal(err)
		}
		want = append(want, id)
	}
	grandchild, err := tree.AddChild(want[2], cube(), FixedJoint())
	if err != nil {
		t.Fatal(err)
	}

	for call := 0; call < 3; call++ {
		edges, err := tree.Children(root)
		if err != nil {
			t.Fatal(err)
		}
		if len(edges) != len(want) {
			t.Fatalf("got %d children, want %d", len(edges), len(want))
		}
		for i, e := range edges {
			if e.Child != want[i] {
				t.Errorf("call %d: child %d = %d, want %d", call, i, e.Child, want[i])
			}
			parent, _, ok, err := tree.Parent(e.Child)
			if err != nil || !ok || parent != root {
				t.Errorf("Parent(%d) = %d, %v, %v", e.Child, parent, ok, err)
			}
			wantKind := Fixed
			if i%2 == 1 {
				wantKind = Rotational
			}
			if e.Joint.Kind != wantKind {
				t.Errorf("edge %d joint = %v, want %v", i, e.Joint.Kind, wantKind)
			}
		}
	}

	edges, _ := tree.Children(want[2])
	if len(edges) != 1 || edges[0].Child != grandchild {
		t.Errorf("Children(%d) = %+v, want only %d", want[2], edges, grandchild)
	}
	if d, _ := tree.Depth(grandchild); d != 2 {
		t.Errorf("Depth(grandchild) = %d, want 2", d)
	}
	if tree.Height() != 2 {
		t.Errorf("Height() = %d, want 2", tree.Height())
	}
}

func TestSingleRootInGrownTrees(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		tree := GrowRandomTree(rng, 4)
		if err := tree.Validate(); err != nil {
			t.Fatalf("tree %d: %v", i, err)
		}
		roots := 0
		for id := 0; id < tree.Len(); id++ {
			parent, _, ok, err := tree.Parent(NodeID(id))
			if err != nil {
				t.Fatal(err)
			}
			if !ok {
				roots++
				continue
			}
			edges, _ := tree.Children(parent)
			found := false
			for _, e := range edges {
				found = found || e.Child == NodeID(id)
			}
			if !found {
				t.Errorf("tree %d: node %d missing from its parent's children", i, id)
			}
		}
		if roots != 1 {
			t.Errorf("tree %d has %d roots", i, roots)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	tree := GrowRandomTree(rand.New(rand.NewSource(9)), 3)
	c := tree.Clone()
	if !Equal(tree, c) {
		t.Fatal("clone not equal to original")
	}
	if err := MutateTree(c, rand.New(rand.NewSource(1)), 1, 1); err != nil {
		t.Fatal(err)
	}
	if Equal(tree, c) {
		t.Error("mutating the clone changed nothing or changed the original")
	}
	if _, err := c.AddChild(c.Root(), cube(), FixedJoint()); err != nil {
		t.Fatal(err)
	}
	if tree.Len() == c.Len() {
		t.Error("AddChild on clone grew the original")
	}
}
