package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spacemadness/physics"
	"github.com/pthm-cable/spacemadness/telemetry"
)

// flushTelemetry closes the stats window once it has elapsed.
func (a *App) flushTelemetry() {
	if !a.logStats || !a.collector.ShouldFlush() {
		return
	}

	stats := a.collector.Flush(a.tick, a.WorldSample())
	perfStats := a.perf.Stats()

	stats.LogStats()
	perfStats.LogStats()

	if a.output != nil {
		if err := a.output.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := a.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// WorldSample reports entity and physics totals plus the speed of every
// dynamic body.
func (a *App) WorldSample() telemetry.WorldSample {
	sample := telemetry.WorldSample{
		Entities:  len(a.order),
		Bodies:    a.Physics.Bodies(),
		Colliders: a.Physics.Colliders(),
	}
	for _, id := range a.order {
		body, ok := a.RigidBody(id)
		if !ok || body.Type() != physics.Dynamic {
			continue
		}
		sample.Speeds = append(sample.Speeds, r2.Norm(body.LinearVelocity()))
	}
	return sample
}
