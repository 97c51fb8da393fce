package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/bodyplan/body"
	"github.com/pthm-cable/bodyplan/config"
	"github.com/pthm-cable/bodyplan/telemetry"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Population.Size = 6
	cfg.Growth.MaxDepth = 2
	return cfg
}

func TestGameGrowsPopulation(t *testing.T) {
	cfg := testConfig(t)
	g, err := NewGameWithOptions(Options{Config: cfg, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Unload()

	if len(g.Population()) != 6 {
		t.Fatalf("population size = %d, want 6", len(g.Population()))
	}
	for i, tree := range g.Population() {
		if tree.Height() > 2 {
			t.Errorf("tree %d height %d exceeds max depth", i, tree.Height())
		}
	}
}

func TestGameRunIsDeterministic(t *testing.T) {
	for _, workers := range []int{1, 3} {
		cfg := testConfig(t)
		cfg.Mutation.Workers = workers
		cfg.Derived.ParallelMutation = workers > 1

		run := func() body.Population {
			g, err := NewGameWithOptions(Options{Config: cfg, Seed: 11})
			if err != nil {
				t.Fatal(err)
			}
			defer g.Unload()
			if err := g.Run(5); err != nil {
				t.Fatal(err)
			}
			if g.Generation() != 5 {
				t.Fatalf("generation = %d, want 5", g.Generation())
			}
			return g.Population()
		}

		if !run().Equal(run()) {
			t.Errorf("workers=%d: same seed produced different populations", workers)
		}
	}
}

func TestGameKeepsSuppliedPopulation(t *testing.T) {
	cfg := testConfig(t)
	cfg.Mutation.Rate = 1
	start := body.Population{body.WithRoot(body.NewCuboid([3]float64{0.5, 0.5, 0.5}, [3]float64{}, [3]float64{}))}
	before := start.Clone()

	g, err := NewGameWithOptions(Options{Config: cfg, Seed: 2, Population: start})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Unload()
	if err := g.Step(); err != nil {
		t.Fatal(err)
	}

	if len(g.Population()) != 1 || g.Population()[0].Len() != 1 {
		t.Fatal("mutation changed the population's topology")
	}
	if g.Population().Equal(before) {
		t.Error("rate 1 mutation left every gene unchanged")
	}
}

func TestGameStatsCallback(t *testing.T) {
	cfg := testConfig(t)
	g, err := NewGameWithOptions(Options{Config: cfg, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Unload()

	var seen []telemetry.GenerationStats
	g.SetStatsCallback(func(s telemetry.GenerationStats) { seen = append(seen, s) })
	if err := g.Run(3); err != nil {
		t.Fatal(err)
	}

	if len(seen) != 3 {
		t.Fatalf("callback saw %d generations, want 3", len(seen))
	}
	for i, s := range seen {
		if s.Generation != i+1 || s.Trees != 6 {
			t.Errorf("stats %d = gen %d trees %d", i, s.Generation, s.Trees)
		}
		if s.RawMin < 0 || s.RawMax > 1 {
			t.Errorf("raw genes escaped [0,1]: [%v, %v]", s.RawMin, s.RawMax)
		}
	}
}

func TestGameRealize(t *testing.T) {
	cfg := testConfig(t)
	g, err := NewGameWithOptions(Options{Config: cfg, Seed: 4, Realize: true})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Unload()
	if err := g.Step(); err != nil {
		t.Fatal(err)
	}

	if g.World() == nil {
		t.Fatal("no world after realize")
	}
	bounds := g.Bounds()
	if len(bounds) != 6 {
		t.Fatalf("bounds for %d trees, want 6", len(bounds))
	}
	for i, b := range bounds {
		if b.Min.Y < -1e-9 || b.Min.Y > 1e-9 {
			t.Errorf("tree %d not settled: min y = %v", i, b.Min.Y)
		}
	}
}

func TestGameOutputDir(t *testing.T) {
	cfg := testConfig(t)
	dir := filepath.Join(t.TempDir(), "out")
	g, err := NewGameWithOptions(Options{Config: cfg, Seed: 5, OutputDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Run(2); err != nil {
		t.Fatal(err)
	}
	g.Unload()

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "generations.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if n := len(strings.Split(strings.TrimSpace(string(data)), "\n")); n != 3 {
		t.Errorf("generations.csv has %d lines, want 3", n)
	}
	pop, err := body.LoadPopulation(filepath.Join(dir, "population.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !pop.Equal(g.Population()) {
		t.Error("population.json differs from the final population")
	}
}
