package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated simulation counters for a time window.
type WindowStats struct {
	WindowStartTick uint64  `csv:"-"`
	WindowEndTick   uint64  `csv:"window_end"`
	WallTimeSec     float64 `csv:"wall_time"`

	// Scheduler activity during window
	Frames        int `csv:"frames"`
	TicksRun      int `csv:"ticks_run"`
	TicksDropped  int `csv:"ticks_dropped"`
	ClampedFrames int `csv:"clamped_frames"`
	PausedFrames  int `csv:"paused_frames"`

	// Entity lifecycle during window
	Spawns   int `csv:"spawns"`
	Despawns int `csv:"despawns"`

	// Tile map sync during window
	TileBlits int `csv:"tile_blits"`

	// World size at window end
	Entities  int `csv:"entities"`
	Bodies    int `csv:"bodies"`
	Colliders int `csv:"colliders"`

	// Body speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeSpeedStats calculates mean, median, p90 and max of body speeds.
func ComputeSpeedStats(values []float64) (mean, p50, p90, max float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)
	max = sorted[n-1]

	return mean, p50, p90, max
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartTick),
		slog.Uint64("window_end", s.WindowEndTick),
		slog.Float64("wall_time", s.WallTimeSec),
		slog.Int("frames", s.Frames),
		slog.Int("ticks_run", s.TicksRun),
		slog.Int("ticks_dropped", s.TicksDropped),
		slog.Int("clamped_frames", s.ClampedFrames),
		slog.Int("paused_frames", s.PausedFrames),
		slog.Int("spawns", s.Spawns),
		slog.Int("despawns", s.Despawns),
		slog.Int("tile_blits", s.TileBlits),
		slog.Int("entities", s.Entities),
		slog.Int("bodies", s.Bodies),
		slog.Int("colliders", s.Colliders),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("speed_max", s.SpeedMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"wall_time", s.WallTimeSec,
		"frames", s.Frames,
		"ticks_run", s.TicksRun,
		"ticks_dropped", s.TicksDropped,
		"clamped_frames", s.ClampedFrames,
		"paused_frames", s.PausedFrames,
		"spawns", s.Spawns,
		"despawns", s.Despawns,
		"tile_blits", s.TileBlits,
		"entities", s.Entities,
		"bodies", s.Bodies,
		"colliders", s.Colliders,
		"speed_mean", s.SpeedMean,
		"speed_p90", s.SpeedP90,
	)
}
