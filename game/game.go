// Package game drives a population through generations of mutation,
// recording telemetry and optionally realizing each generation into an
// ECS world.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bodyplan/body"
	"github.com/pthm-cable/bodyplan/config"
	"github.com/pthm-cable/bodyplan/systems"
	"github.com/pthm-cable/bodyplan/telemetry"
)

// Options configures a run.
type Options struct {
	Config     *config.Config  // nil uses config.Cfg()
	Seed       int64           // RNG seed
	Population body.Population // starting population, nil grows a fresh one
	LogStats   bool            // log generation stats via slog
	OutputDir  string          // CSV and config output, empty disables
	Realize    bool            // spawn every logged generation into an ECS world
}

// Game holds the evolving population and its instrumentation.
type Game struct {
	cfg        *config.Config
	rng        *rand.Rand
	seed       int64
	pop        body.Population
	generation int

	// Realization, rebuilt on each realize
	world   *ecs.World
	spawner *systems.Spawner
	bounds  map[int]systems.AABB
	realize bool

	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.GenerationStats)
}

// NewGameWithOptions sets up a run. The starting population is grown from
// the growth config unless opts supplies one.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	g := &Game{
		cfg:           cfg,
		rng:           rand.New(rand.NewSource(opts.Seed)),
		seed:          opts.Seed,
		pop:           opts.Population,
		realize:       opts.Realize,
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.LogEvery),
		logStats:      opts.LogStats,
	}

	if g.pop == nil {
		g.pop = g.grower().GrowPopulation(cfg.Population.Size, cfg.Growth.MaxDepth)
	}
	for i, t := range g.pop {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config: %w", err)
	}

	return g, nil
}

func (g *Game) grower() *body.Grower {
	gr := body.NewGrower(g.rng)
	gr.MaxChildren = g.cfg.Growth.MaxChildren
	gr.StickDims = g.cfg.Growth.StickDims
	gr.RotationalChance = g.cfg.Growth.RotationalChance
	return gr
}

// SetStatsCallback registers fn to receive every generation's stats.
func (g *Game) SetStatsCallback(fn func(telemetry.GenerationStats)) {
	g.statsCallback = fn
}

// Population returns the current population.
func (g *Game) Population() body.Population {
	return g.pop
}

// Generation returns the number of completed generations.
func (g *Game) Generation() int {
	return g.generation
}

// World returns the ECS world of the last realization, or nil.
func (g *Game) World() *ecs.World {
	return g.world
}

// Bounds returns per-tree bounds from the last realization.
func (g *Game) Bounds() map[int]systems.AABB {
	return g.bounds
}

// Step mutates the population once and records the generation.
func (g *Game) Step() error {
	g.perfCollector.StartGeneration()

	g.perfCollector.StartPhase(telemetry.PhaseMutate)
	if err := g.mutate(); err != nil {
		return fmt.Errorf("generation %d: %w", g.generation+1, err)
	}
	g.generation++

	g.perfCollector.StartPhase(telemetry.PhaseStats)
	stats := telemetry.ComputeGenerationStats(g.generation, g.pop)

	logged := g.generation%max(1, g.cfg.Telemetry.LogEvery) == 0
	if g.realize && logged {
		g.perfCollector.StartPhase(telemetry.PhaseRealize)
		if err := g.Realize(); err != nil {
			return fmt.Errorf("generation %d: %w", g.generation, err)
		}
	}

	g.perfCollector.StartPhase(telemetry.PhaseOutput)
	g.flushTelemetry(stats, logged)
	g.perfCollector.EndGeneration()
	return nil
}

// Run steps n generations.
func (g *Game) Run(n int) error {
	for i := 0; i < n; i++ {
		if err := g.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) mutate() error {
	m := g.cfg.Mutation
	if g.cfg.Derived.ParallelMutation {
		// reseeded every generation; results depend on seed and worker count
		return g.pop.MutateParallel(g.seed+int64(g.generation)*104729, m.Workers, m.Rate, m.MaxOffset)
	}
	return g.pop.Mutate(g.rng, m.Rate, m.MaxOffset)
}

// Realize spawns the current population into a fresh ECS world, settles
// every tree onto the ground and records its bounds.
func (g *Game) Realize() error {
	sc := g.cfg.Spawn
	g.world = ecs.NewWorld()
	g.spawner = systems.NewSpawner(g.world, sc.Palette, sc.Ground)
	if _, err := systems.SpawnPopulation(g.spawner, g.pop, sc.Height, sc.Spacing); err != nil {
		return fmt.Errorf("realize: %w", err)
	}

	bounds := systems.NewBoundsSystem(g.world)
	bounds.Settle()
	g.bounds = bounds.Update()
	return nil
}

// Unload writes the final population to the output directory and closes
// output files.
func (g *Game) Unload() {
	if err := g.outputManager.WritePopulation(g.pop); err != nil {
		slog.Error("failed to write population", "error", err)
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
