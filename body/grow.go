package body

import "math/rand"

// Growth defaults.
const (
	DefaultMaxChildren      = 3
	DefaultRotationalChance = 0.5
)

// DefaultStickDims are the raw dimension genes of grown segments: narrow
// and elongated along y.
var DefaultStickDims = [3]float64{0.04, 0.7, 0.04}

// Grower builds random trees for seeding a population.
type Grower struct {
	Rng *rand.Rand

	// MaxChildren is the exclusive upper bound on children per node.
	MaxChildren int
	// StickDims are the raw dimension genes every grown segment starts with.
	StickDims [3]float64
	// RotationalChance is the probability a grown edge is Rotational
	// rather than Fixed.
	RotationalChance float64
}

// NewGrower returns a grower with the default policy.
func NewGrower(rng *rand.Rand) *Grower {
	return &Grower{
		Rng:              rng,
		MaxChildren:      DefaultMaxChildren,
		StickDims:        DefaultStickDims,
		RotationalChance: DefaultRotationalChance,
	}
}

// GrowRandomTree grows a tree with the default policy.
func GrowRandomTree(rng *rand.Rand, maxDepth int) *Tree {
	return NewGrower(rng).Grow(maxDepth)
}

// Grow builds a tree no deeper than maxDepth edges.
func (g *Grower) Grow(maxDepth int) *Tree {
	t := WithRoot(g.segment())
	g.grow(t, t.Root(), maxDepth)
	return t
}

// GrowPopulation grows n independent trees.
func (g *Grower) GrowPopulation(n, maxDepth int) Population {
	pop := make(Population, 0, n)
	for i := 0; i < n; i++ {
		pop = append(pop, g.Grow(maxDepth))
	}
	return pop
}

func (g *Grower) grow(t *Tree, at NodeID, depth int) {
	if depth <= 0 || g.MaxChildren <= 0 {
		return
	}
	n := g.Rng.Intn(g.MaxChildren)
	for i := 0; i < n; i++ {
		child, err := t.AddChild(at, g.segment(), g.joint())
		if err != nil {
			// at always comes from this tree
			panic(err)
		}
		g.grow(t, child, depth-1)
	}
}

func (g *Grower) segment() Segment {
	r := g.Rng.Float64
	return NewCuboid(
		g.StickDims,
		[3]float64{r(), r(), r()},
		[3]float64{r(), r(), r()},
	)
}

func (g *Grower) joint() Joint {
	if g.Rng.Float64() < g.RotationalChance {
		return RotationalJoint(g.Rng.Float64(), g.Rng.Float64())
	}
	return FixedJoint()
}
