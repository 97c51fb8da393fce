package genes

import (
	"fmt"
	"math/rand"
)

// Generator produces offsets to add to raw gene values. Offsets are
// expected in [-1,1]; results are clamped regardless.
type Generator interface {
	Offset() float64
}

// RandomGenerator is the sparse uniform mutation policy: with probability
// Rate an offset is drawn uniformly in [-Max, Max], otherwise 0.
type RandomGenerator struct {
	rng  *rand.Rand
	Rate float64
	Max  float64
}

// NewRandomGenerator returns a generator drawing from rng. Rate and max
// are clamped into [0,1].
func NewRandomGenerator(rng *rand.Rand, rate, max float64) *RandomGenerator {
	return &RandomGenerator{
		rng:  rng,
		Rate: Clamp01(rate),
		Max:  Clamp01(max),
	}
}

// Offset draws the next offset.
func (g *RandomGenerator) Offset() float64 {
	if g.rng.Float64() >= g.Rate {
		return 0
	}
	return (g.rng.Float64()*2 - 1) * g.Max
}

// Mutate adds one generator draw to every gene of h.
func Mutate(h Holder, g Generator) error {
	n := h.Count()
	for i := 0; i < n; i++ {
		p, err := h.At(i)
		if err != nil {
			return fmt.Errorf("mutating gene %d of %d: %w", i, n, err)
		}
		p.Add(g.Offset())
	}
	return nil
}
