package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for one frame.
const (
	PhaseInput         = "input"
	PhaseFixedUpdate   = "fixed_update"
	PhasePhysicsUpdate = "physics_update"
	PhasePhysicsStep   = "physics_step"
	PhaseFrameUpdate   = "frame_update"
	PhaseDraw          = "draw"
	PhaseDebug         = "debug"
)

// Phases lists every phase in execution order.
var Phases = []string{
	PhaseInput, PhaseFixedUpdate, PhasePhysicsUpdate, PhasePhysicsStep,
	PhaseFrameUpdate, PhaseDraw, PhaseDebug,
}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Ticks         int
	Phases        map[string]time.Duration
}

// PerfCollector tracks frame timing over a rolling window.
// Phases are re-entrant: a phase entered once per tick accumulates.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	// Wall-clock interval between presented frames
	lastFrameTime time.Time
	frameInterval time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to aggregate over.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, ending the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes timing the current frame and records the sample.
func (p *PerfCollector) EndFrame(ticks int) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Ticks:         ticks,
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
	p.lastPhase = ""
}

// RecordFrame records the wall-clock interval since the previous call.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameInterval = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Frame work timing
	AvgFrameDuration time.Duration
	MinFrameDuration time.Duration
	MaxFrameDuration time.Duration
	StdFrameDuration time.Duration
	P50FrameDuration time.Duration
	P99FrameDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total frame time
	PhasePct map[string]float64

	// Mean simulation ticks run per frame
	TicksPerFrame float64

	// Presentation rate
	FrameInterval time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.frameInterval > 0 {
		fps = float64(time.Second) / float64(p.frameInterval)
	}

	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg:      make(map[string]time.Duration),
			PhasePct:      make(map[string]float64),
			FrameInterval: p.frameInterval,
			FPS:           fps,
		}
	}

	durations := make([]float64, p.sampleCount)
	ticks := make([]float64, p.sampleCount)
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		durations[i] = float64(s.FrameDuration)
		ticks[i] = float64(s.Ticks)
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	mean, std := stat.MeanStdDev(durations, nil)
	if p.sampleCount < 2 {
		std = 0
	}
	sort.Float64s(durations)

	avgFrame := time.Duration(mean)
	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avgFrame > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avgFrame) * 100
		}
	}

	return PerfStats{
		AvgFrameDuration: avgFrame,
		MinFrameDuration: time.Duration(durations[0]),
		MaxFrameDuration: time.Duration(durations[len(durations)-1]),
		StdFrameDuration: time.Duration(std),
		P50FrameDuration: time.Duration(stat.Quantile(0.5, stat.Empirical, durations, nil)),
		P99FrameDuration: time.Duration(stat.Quantile(0.99, stat.Empirical, durations, nil)),
		PhaseAvg:         phaseAvg,
		PhasePct:         phasePct,
		TicksPerFrame:    stat.Mean(ticks, nil),
		FrameInterval:    p.frameInterval,
		FPS:              fps,
	}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_frame_us", s.AvgFrameDuration.Microseconds(),
		"p99_frame_us", s.P99FrameDuration.Microseconds(),
		"max_frame_us", s.MaxFrameDuration.Microseconds(),
		"ticks_per_frame", s.TicksPerFrame,
	}

	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}

	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrameDuration.Microseconds()),
		slog.Int64("std_frame_us", s.StdFrameDuration.Microseconds()),
		slog.Int64("p50_frame_us", s.P50FrameDuration.Microseconds()),
		slog.Int64("p99_frame_us", s.P99FrameDuration.Microseconds()),
		slog.Float64("ticks_per_frame", s.TicksPerFrame),
	}

	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	for phase, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(phase+"_pct", pct))
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	RunID            string  `csv:"run_id"`
	WindowEnd        uint64  `csv:"window_end"`
	AvgFrameUS       int64   `csv:"avg_frame_us"`
	StdFrameUS       int64   `csv:"std_frame_us"`
	P50FrameUS       int64   `csv:"p50_frame_us"`
	P99FrameUS       int64   `csv:"p99_frame_us"`
	MaxFrameUS       int64   `csv:"max_frame_us"`
	TicksPerFrame    float64 `csv:"ticks_per_frame"`
	FPS              float64 `csv:"fps"`
	InputPct         float64 `csv:"input_pct"`
	FixedUpdatePct   float64 `csv:"fixed_update_pct"`
	PhysicsUpdatePct float64 `csv:"physics_update_pct"`
	PhysicsStepPct   float64 `csv:"physics_step_pct"`
	FrameUpdatePct   float64 `csv:"frame_update_pct"`
	DrawPct          float64 `csv:"draw_pct"`
	DebugPct         float64 `csv:"debug_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(runID string, windowEnd uint64) PerfStatsCSV {
	return PerfStatsCSV{
		RunID:            runID,
		WindowEnd:        windowEnd,
		AvgFrameUS:       s.AvgFrameDuration.Microseconds(),
		StdFrameUS:       s.StdFrameDuration.Microseconds(),
		P50FrameUS:       s.P50FrameDuration.Microseconds(),
		P99FrameUS:       s.P99FrameDuration.Microseconds(),
		MaxFrameUS:       s.MaxFrameDuration.Microseconds(),
		TicksPerFrame:    s.TicksPerFrame,
		FPS:              s.FPS,
		InputPct:         s.PhasePct[PhaseInput],
		FixedUpdatePct:   s.PhasePct[PhaseFixedUpdate],
		PhysicsUpdatePct: s.PhasePct[PhasePhysicsUpdate],
		PhysicsStepPct:   s.PhasePct[PhasePhysicsStep],
		FrameUpdatePct:   s.PhasePct[PhaseFrameUpdate],
		DrawPct:          s.PhasePct[PhaseDraw],
		DebugPct:         s.PhasePct[PhaseDebug],
	}
}
