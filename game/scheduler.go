package game

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/spacemadness/input"
	"github.com/pthm-cable/spacemadness/telemetry"
)

// Frame runs one presentation frame: refresh input, react to the pause and
// debug toggles, run the owed ticks, run the frame phase, then draw.
// Returns the number of ticks run.
func (a *App) Frame(dt float64, src input.Source, canvas Canvas) int {
	a.perf.RecordFrame()
	a.perf.StartFrame()

	a.perf.StartPhase(telemetry.PhaseInput)
	a.Keybinds.Update(src)
	screen := a.Keybinds.Screen()
	if screen.X > 0 && screen.Y > 0 {
		a.Camera.Resize(screen.X, screen.Y)
	}
	if a.Input(input.Pause).IsJustPressed() {
		a.TogglePause()
	}
	if a.Input(input.Debug).IsJustPressed() {
		a.ToggleDebug()
	}

	ticks := a.Advance(dt)

	a.canvas = canvas
	a.perf.StartPhase(telemetry.PhaseFrameUpdate)
	a.dispatch(phaseFrame)

	if canvas != nil {
		a.perf.StartPhase(telemetry.PhaseDraw)
		canvas.BeginWorld(a.Camera)
		a.drawEntities(canvas)
		if a.debug {
			a.perf.StartPhase(telemetry.PhaseDebug)
			a.drawDebug(canvas)
		}
		canvas.EndWorld()
	}
	a.canvas = nil

	a.frame++
	a.perf.EndFrame(ticks)
	a.collector.RecordFrame(dt, ticks, a.lastDropped, a.paused)
	a.flushTelemetry()
	return ticks
}

// Advance converts frame time into fixed ticks. The accumulator gains
// dt * ticks_per_second; floor(accumulator) ticks are owed, at most the
// per-frame cap run. Afterwards only the fractional part is carried, so
// owed ticks beyond the cap are dropped rather than caught up later.
// While paused the owed ticks are consumed without running.
func (a *App) Advance(dt float64) int {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}
	a.accumulator += dt * a.ticksPerSecond

	// Clamp in float so huge frame times cannot overflow the conversion.
	owed := math.Floor(a.accumulator)
	run := int(math.Min(owed, float64(a.maxTicks)))

	dropped := 0
	if !a.paused && owed > float64(run) {
		dropped = int(math.Min(owed-float64(run), math.MaxInt32))
		a.droppedTicks += uint64(dropped)
		slog.Debug("tick_clamp",
			"owed_ticks", owed,
			"run_ticks", run,
			"dropped_ticks", dropped,
			"tick", a.tick,
		)
	}

	ran := 0
	for i := 0; i < run; i++ {
		if a.paused {
			continue
		}
		a.step()
		ran++
	}

	a.accumulator = math.Mod(a.accumulator, 1)
	a.lastTicks, a.lastDropped = ran, dropped
	return ran
}

// step runs one tick: fixed phase, physics phase, then one physics step.
func (a *App) step() {
	a.perf.StartPhase(telemetry.PhaseFixedUpdate)
	a.dispatch(phaseFixed)

	a.perf.StartPhase(telemetry.PhasePhysicsUpdate)
	a.dispatch(phasePhysics)

	a.perf.StartPhase(telemetry.PhasePhysicsStep)
	a.Physics.Step()
	a.tick++
}
