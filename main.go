package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/bodyplan/body"
	"github.com/pthm-cable/bodyplan/config"
	"github.com/pthm-cable/bodyplan/game"
	"github.com/pthm-cable/bodyplan/storage"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config seed, then time-based)")
	generations := flag.Int("generations", -1, "Generations to mutate (-1 = use config)")
	inPath := flag.String("in", "", "Population JSON to start from (empty = grow a new one)")
	outPath := flag.String("out", "", "Write the final population JSON here")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	storeKind := flag.String("store", "", "Population store: memory or sqlite (empty = use config)")
	storePath := flag.String("store-path", "", "SQLite database path (empty = use config)")
	realize := flag.Bool("realize", false, "Spawn logged generations into an ECS world")
	quiet := flag.Bool("quiet", false, "Suppress per-generation stats")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	gens := cfg.Population.Generations
	if *generations >= 0 {
		gens = *generations
	}
	if *storeKind != "" {
		cfg.Storage.Backend = *storeKind
	}
	if *storePath != "" {
		cfg.Storage.Path = *storePath
	}

	var start body.Population
	if *inPath != "" {
		pop, err := body.LoadPopulation(*inPath)
		if err != nil {
			slog.Error("failed to load population", "path", *inPath, "error", err)
			os.Exit(1)
		}
		start = pop
		slog.Info("loaded population", "path", *inPath, "trees", len(pop))
	}

	g, err := game.NewGameWithOptions(game.Options{
		Config:     cfg,
		Seed:       rngSeed,
		Population: start,
		LogStats:   !*quiet,
		OutputDir:  *outputDir,
		Realize:    *realize,
	})
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	slog.Info("starting run",
		"seed", rngSeed,
		"generations", gens,
		"trees", len(g.Population()),
		"workers", cfg.Mutation.Workers,
	)

	if err := g.Run(gens); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}

	if *outPath != "" {
		if err := body.SavePopulation(*outPath, g.Population()); err != nil {
			slog.Error("failed to save population", "path", *outPath, "error", err)
			os.Exit(1)
		}
		slog.Info("saved population", "path", *outPath)
	}

	if err := persist(context.Background(), cfg.Storage, g.Population()); err != nil {
		slog.Error("failed to store population", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}
}

// persist saves pop under the configured name. The memory backend only
// lives for the process, so it is skipped.
func persist(ctx context.Context, sc config.StorageConfig, pop body.Population) error {
	if sc.Backend == "" || sc.Backend == "memory" {
		return nil
	}
	store, err := storage.NewStore(sc.Backend, sc.Path)
	if err != nil {
		return err
	}
	defer storage.CloseIfSupported(store)

	if err := store.Init(ctx); err != nil {
		return err
	}
	if err := store.SavePopulation(ctx, sc.Name, pop); err != nil {
		return err
	}
	names, err := store.ListPopulations(ctx)
	if err != nil {
		return err
	}
	slog.Info("stored population", "backend", sc.Backend, "name", sc.Name, "stored", len(names))
	return nil
}
