package systems

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bodyplan/body"
	"github.com/pthm-cable/bodyplan/components"
)

// Spawner realizes body trees as ECS entities, one per segment.
// It implements body.Realizer[ecs.Entity].
type Spawner struct {
	mapper *ecs.Map4[
		components.Segment,
		components.Transform,
		components.Link,
		components.Colour,
	]
	segMap *ecs.Map[components.Segment]
	xfMap  *ecs.Map[components.Transform]

	palette []components.Colour
	ground  components.Colour

	// per-tree state
	tree   int
	order  int
	origin r3.Vec
}

// NewSpawner creates a spawner for w. Segments are coloured by depth,
// cycling through palette; roots use the first entry.
func NewSpawner(w *ecs.World, palette [][3]float64, ground [3]float64) *Spawner {
	s := &Spawner{
		mapper: ecs.NewMap4[
			components.Segment,
			components.Transform,
			components.Link,
			components.Colour,
		](w),
		segMap: ecs.NewMap[components.Segment](w),
		xfMap:  ecs.NewMap[components.Transform](w),
		ground: components.ColourFrom(ground),
	}
	for _, c := range palette {
		s.palette = append(s.palette, components.ColourFrom(c))
	}
	if len(s.palette) == 0 {
		s.palette = []components.Colour{{R: 0.6, G: 0.8, B: 0.2}}
	}
	return s
}

// Ground returns the ground colour for renderers.
func (s *Spawner) Ground() components.Colour {
	return s.ground
}

// Begin prepares the spawner for the next tree, rooted at origin.
func (s *Spawner) Begin(tree int, origin r3.Vec) {
	s.tree = tree
	s.order = 0
	s.origin = origin
}

// Root attaches the root segment to the world.
func (s *Spawner) Root() (ecs.Entity, body.Joint) {
	return ecs.Entity{}, body.GroundJoint()
}

// NewSegment creates the entity for seg below parent.
func (s *Spawner) NewSegment(seg *body.Segment, parent ecs.Entity, parentJoint body.Joint) ecs.Entity {
	half := HalfExtents(seg)
	info := components.Segment{
		Tree:        s.tree,
		Order:       s.order,
		HalfExtents: half,
	}
	link := components.Link{Parent: parent, Joint: parentJoint.Kind}

	var xf components.Transform
	if parent == (ecs.Entity{}) {
		xf = RootPose(s.origin, seg)
		link.Grounded = true
	} else {
		pSeg := s.segMap.Get(parent)
		pXf := s.xfMap.Get(parent)
		xf = Pose(*pXf, pSeg.HalfExtents, seg)
		info.Depth = pSeg.Depth + 1
	}
	colour := s.palette[info.Depth%len(s.palette)]
	s.order++

	return s.mapper.NewEntity(&info, &xf, &link, &colour)
}

// SpawnPopulation realizes every tree, spacing roots along x at the given
// height. Returns the root entity of each tree.
func SpawnPopulation(s *Spawner, pop body.Population, height, spacing float64) ([]ecs.Entity, error) {
	roots := make([]ecs.Entity, 0, len(pop))
	for i, t := range pop {
		s.Begin(i, r3.Vec{X: float64(i) * spacing, Y: height})
		first := &rootCapture{Realizer: s}
		if err := body.Realize[ecs.Entity](t, first); err != nil {
			return roots, fmt.Errorf("spawn tree %d: %w", i, err)
		}
		roots = append(roots, first.root)
	}
	return roots, nil
}

// rootCapture remembers the first entity the wrapped realizer returns.
type rootCapture struct {
	body.Realizer[ecs.Entity]
	root ecs.Entity
	seen bool
}

func (r *rootCapture) NewSegment(seg *body.Segment, parent ecs.Entity, j body.Joint) ecs.Entity {
	e := r.Realizer.NewSegment(seg, parent, j)
	if !r.seen {
		r.root, r.seen = e, true
	}
	return e
}
