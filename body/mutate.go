package body

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/pthm-cable/bodyplan/genes"
)

// Mutate perturbs every gene of every segment with one draw from g each.
// Topology and joints are left untouched.
func (t *Tree) Mutate(g genes.Generator) error {
	for i := range t.nodes {
		if err := genes.Mutate(&t.nodes[i].segment, g); err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
	}
	return nil
}

// MutateTree applies the sparse uniform policy: each gene moves by a
// uniform draw in [-maxOffset, maxOffset] with probability rate.
func MutateTree(t *Tree, rng *rand.Rand, rate, maxOffset float64) error {
	return t.Mutate(genes.NewRandomGenerator(rng, rate, maxOffset))
}

// Mutate applies MutateTree to every tree with a shared rng.
func (p Population) Mutate(rng *rand.Rand, rate, maxOffset float64) error {
	g := genes.NewRandomGenerator(rng, rate, maxOffset)
	for i, t := range p {
		if err := t.Mutate(g); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return nil
}

// MutateParallel splits the population across workers. Each worker owns a
// contiguous run of trees and an rng seeded from seed and its index, so
// results depend only on seed and workers.
func (p Population) MutateParallel(seed int64, workers int, rate, maxOffset float64) error {
	if workers < 1 {
		workers = 1
	}
	if workers > len(p) {
		workers = len(p)
	}
	if workers == 0 {
		return nil
	}

	chunk := (len(p) + workers - 1) / workers
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := min(start+chunk, len(p))
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed + int64(w)*7919))
			errs[w] = p[start:end].Mutate(rng, rate, maxOffset)
		}(w, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
