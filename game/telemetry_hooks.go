package game

import (
	"log/slog"

	"github.com/pthm-cable/bodyplan/telemetry"
)

// flushTelemetry hands stats to the callback and CSV output, and logs them
// on logged generations.
func (g *Game) flushTelemetry(stats telemetry.GenerationStats, logged bool) {
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats && logged {
		slog.Info("generation", "stats", stats, "perf", g.perfCollector.Stats())
		if g.bounds != nil {
			g.logBounds()
		}
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteGeneration(stats); err != nil {
			slog.Error("failed to write generation", "error", err)
		}
		if err := g.outputManager.WritePerf(g.perfCollector.Stats(), stats.Generation); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

func (g *Game) logBounds() {
	var tallest, widest float64
	for _, b := range g.bounds {
		size := b.Size()
		tallest = max(tallest, size.Y)
		widest = max(widest, size.X, size.Z)
	}
	slog.Info("realized",
		"generation", g.generation,
		"trees", len(g.bounds),
		"tallest", tallest,
		"widest", widest,
	)
}
