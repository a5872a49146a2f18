package telemetry

// Collector accumulates scheduler and lifecycle events within wall-clock
// windows and produces WindowStats.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartTick uint64
	elapsed         float64

	// Event counters for current window
	frames        int
	ticksRun      int
	ticksDropped  int
	clampedFrames int
	pausedFrames  int
	spawns        int
	despawns      int
	tileBlits     int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in wall-clock seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 10
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// RecordFrame records one frame's scheduler outcome.
func (c *Collector) RecordFrame(frameDelta float64, ticks, dropped int, paused bool) {
	c.elapsed += frameDelta
	c.frames++
	c.ticksRun += ticks
	c.ticksDropped += dropped
	if dropped > 0 {
		c.clampedFrames++
	}
	if paused {
		c.pausedFrames++
	}
}

// RecordSpawn records an entity spawn.
func (c *Collector) RecordSpawn() {
	c.spawns++
}

// RecordDespawn records an entity despawn.
func (c *Collector) RecordDespawn() {
	c.despawns++
}

// RecordTileBlits records tile images copied to a surface.
func (c *Collector) RecordTileBlits(n int) {
	c.tileBlits += n
}

// ShouldFlush returns true once the window has elapsed.
func (c *Collector) ShouldFlush() bool {
	return c.elapsed >= c.windowDurationSec
}

// WorldSample holds end-of-window world totals supplied by the caller.
type WorldSample struct {
	Entities  int
	Bodies    int
	Colliders int
	Speeds    []float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick uint64, world WorldSample) WindowStats {
	mean, p50, p90, max := ComputeSpeedStats(world.Speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		WallTimeSec:     c.elapsed,

		Frames:        c.frames,
		TicksRun:      c.ticksRun,
		TicksDropped:  c.ticksDropped,
		ClampedFrames: c.clampedFrames,
		PausedFrames:  c.pausedFrames,

		Spawns:    c.spawns,
		Despawns:  c.despawns,
		TileBlits: c.tileBlits,

		Entities:  world.Entities,
		Bodies:    world.Bodies,
		Colliders: world.Colliders,

		SpeedMean: mean,
		SpeedP50:  p50,
		SpeedP90:  p90,
		SpeedMax:  max,
	}

	// Reset for next window
	*c = Collector{windowDurationSec: c.windowDurationSec, windowStartTick: currentTick}

	return stats
}

// WindowDurationSec returns the window length in seconds.
func (c *Collector) WindowDurationSec() float64 {
	return c.windowDurationSec
}
