// Package game runs the simulation: a fixed-tick scheduler driving an
// entity arena whose behaviors are dispatched in three phases around a
// single physics step per tick.
package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spacemadness/camera"
	"github.com/pthm-cable/spacemadness/components"
	"github.com/pthm-cable/spacemadness/config"
	"github.com/pthm-cable/spacemadness/input"
	"github.com/pthm-cable/spacemadness/physics"
	"github.com/pthm-cable/spacemadness/telemetry"
)

// App is the shared context every component phase receives. It owns the
// camera, input state, physics world and entity arena.
type App struct {
	cfg *config.Config

	Camera   *camera.Camera
	Keybinds *input.Keybinds
	Physics  *physics.World

	// Entity arena
	store     *ecs.World
	entityMap *ecs.Map4[components.Sprite, components.PhysicsRef, components.Tag, behaviors]
	spriteMap *ecs.Map1[components.Sprite]
	refMap    *ecs.Map1[components.PhysicsRef]
	tagMap    *ecs.Map1[components.Tag]
	behavMap  *ecs.Map1[behaviors]

	// Dispatch order, and changes deferred until the current pass ends
	order          []EntityID
	pendingSpawn   []EntityID
	pendingDespawn []EntityID
	dispatching    bool
	nextID         uint32

	// Scheduler state
	ticksPerSecond float64
	maxTicks       int
	accumulator    float64
	tick           uint64
	frame          uint64
	droppedTicks   uint64
	lastTicks      int
	lastDropped    int
	paused         bool
	debug          bool

	// Canvas for the frame in progress; nil outside Frame
	canvas Canvas

	// Telemetry
	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool
}

// New creates an empty simulation from configuration.
func New(cfg *config.Config) (*App, error) {
	kb := input.NewKeybinds()
	bindings := []struct {
		action input.Action
		names  []string
	}{
		{input.Boost, cfg.Keys.Boost},
		{input.Slow, cfg.Keys.Slow},
		{input.Pause, cfg.Keys.Pause},
		{input.Debug, cfg.Keys.Debug},
	}
	for _, b := range bindings {
		if err := kb.BindNames(b.action, b.names); err != nil {
			return nil, fmt.Errorf("configuring keys: %w", err)
		}
	}

	cam := camera.New(float64(cfg.Screen.Width), float64(cfg.Screen.Height), cfg.Camera.ViewHeight)
	if cfg.Camera.MinViewHeight > 0 {
		cam.MinViewHeight = cfg.Camera.MinViewHeight
	}
	if cfg.Camera.MaxViewHeight > 0 {
		cam.MaxViewHeight = cfg.Camera.MaxViewHeight
	}

	world := physics.New(physics.Settings{
		Gravity:    r2.Vec{X: cfg.Physics.GravityX, Y: cfg.Physics.GravityY},
		Iterations: cfg.Physics.Iterations,
		Damping:    cfg.Physics.Damping,
		TimeStep:   cfg.Derived.FixedDeltaTime,
	})

	store := ecs.NewWorld()
	a := &App{
		cfg:      cfg,
		Camera:   cam,
		Keybinds: kb,
		Physics:  world,
		store:    store,
		entityMap: ecs.NewMap4[
			components.Sprite,
			components.PhysicsRef,
			components.Tag,
			behaviors,
		](store),
		spriteMap:      ecs.NewMap1[components.Sprite](store),
		refMap:         ecs.NewMap1[components.PhysicsRef](store),
		tagMap:         ecs.NewMap1[components.Tag](store),
		behavMap:       ecs.NewMap1[behaviors](store),
		ticksPerSecond: cfg.Sim.TicksPerSecond,
		maxTicks:       cfg.Sim.MaxTicksPerFrame,
		perf:           telemetry.NewPerfCollector(cfg.Telemetry.Window),
		collector:      telemetry.NewCollector(cfg.Telemetry.LogInterval),
		logStats:       cfg.Telemetry.LogInterval > 0,
	}
	return a, nil
}

// Config returns the configuration the app was built with.
func (a *App) Config() *config.Config { return a.cfg }

// SetOutput enables CSV output of telemetry windows.
func (a *App) SetOutput(om *telemetry.OutputManager) { a.output = om }

// Perf returns the frame timing collector.
func (a *App) Perf() *telemetry.PerfCollector { return a.perf }

// Input returns the press state of an action for the current frame.
func (a *App) Input(action input.Action) input.PressedState {
	return a.Keybinds.Get(action)
}

// PointerWorld returns the pointer position mapped into world space.
func (a *App) PointerWorld() r2.Vec {
	return a.Camera.ScreenToWorld(a.Keybinds.Pointer())
}

// Tick returns the number of simulation ticks run so far.
func (a *App) Tick() uint64 { return a.tick }

// FrameCount returns the number of frames run so far.
func (a *App) FrameCount() uint64 { return a.frame }

// Paused reports whether ticks are being skipped.
func (a *App) Paused() bool { return a.paused }

// Debug reports whether the debug overlay is drawn.
func (a *App) Debug() bool { return a.debug }

// TogglePause flips the paused state.
func (a *App) TogglePause() {
	a.paused = !a.paused
	slog.Info("pause_toggled", "paused", a.paused, "tick", a.tick)
}

// ToggleDebug flips the debug overlay.
func (a *App) ToggleDebug() {
	a.debug = !a.debug
	slog.Info("debug_toggled", "debug", a.debug, "tick", a.tick)
}

// Accumulator returns the owed fraction of a tick carried to the next frame.
func (a *App) Accumulator() float64 { return a.accumulator }

// DroppedTicks returns how many owed ticks the per-frame cap has discarded.
func (a *App) DroppedTicks() uint64 { return a.droppedTicks }

// LastFrame returns the ticks run and dropped by the most recent Advance.
func (a *App) LastFrame() (ticks, dropped int) { return a.lastTicks, a.lastDropped }
