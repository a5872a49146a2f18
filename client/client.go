// Package client runs the simulation in a raylib window: it feeds frame
// time and input to the game, draws the world and overlays on top.
package client

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/spacemadness/game"
	"github.com/pthm-cable/spacemadness/inspector"
	"github.com/pthm-cable/spacemadness/renderer"
	"github.com/pthm-cable/spacemadness/ui"
)

// Background color behind the world.
var spaceColor = rl.Color{R: 10, G: 10, B: 18, A: 255}

const controlsLegend = "[W] Boost  [S] Brake  [Esc] Pause  [F3] Debug  [Wheel/+/-] Zoom  [Home] Reset  [Tab] Panels  [F11] Fullscreen"

// Client owns the window-side state around a game.App.
type Client struct {
	app   *game.App
	scene *game.Scene

	textures *renderer.TextureStore
	canvas   *renderer.Canvas
	input    renderer.Input

	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	controls  *ui.ControlsPanel
	inspector *inspector.Inspector

	showPanels   bool
	screenWidth  int32
	screenHeight int32
}

// New builds the scene. The raylib window must already be open.
func New(app *game.App) (*Client, error) {
	textures := renderer.NewTextureStore()
	scene, err := game.NewScene(app, textures)
	if err != nil {
		textures.Unload()
		return nil, fmt.Errorf("building scene: %w", err)
	}

	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	c := &Client{
		app:          app,
		scene:        scene,
		textures:     textures,
		canvas:       renderer.NewCanvas(textures),
		hud:          ui.NewHUD(),
		perfPanel:    ui.NewPerfPanel(10, 150, 300),
		controls:     ui.NewControlsPanel(10, h-160, 260),
		inspector:    inspector.New(w),
		showPanels:   true,
		screenWidth:  w,
		screenHeight: h,
	}
	return c, nil
}

// Run loops until the window closes or maxTicks ticks have run.
func (c *Client) Run(maxTicks uint64) {
	for !rl.WindowShouldClose() {
		c.Update()

		if maxTicks > 0 && c.app.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", c.app.Tick())
			return
		}
	}
}

// Update runs one frame: window input, the simulation frame, then overlays.
func (c *Client) Update() {
	c.handleInput()

	rl.BeginDrawing()
	rl.ClearBackground(spaceColor)

	c.app.Frame(float64(rl.GetFrameTime()), c.input, c.canvas)
	c.drawOverlays()

	rl.EndDrawing()
}

func (c *Client) drawOverlays() {
	c.hud.Draw(ui.HUDData{
		Title:        c.app.Config().Screen.Title,
		Tick:         c.app.Tick(),
		Frame:        c.app.FrameCount(),
		FPS:          rl.GetFPS(),
		Entities:     len(c.app.Entities()),
		Bodies:       c.app.Physics.Bodies(),
		Colliders:    c.app.Physics.Colliders(),
		DroppedTicks: c.app.DroppedTicks(),
		Paused:       c.app.Paused(),
		Debug:        c.app.Debug(),
		ViewHeight:   c.app.Camera.ViewHeight,
	})
	c.hud.DrawControls(c.screenHeight, controlsLegend)

	if !c.showPanels {
		return
	}
	if c.app.Debug() {
		c.perfPanel.Draw(c.app.Perf().Stats())
	}
	c.handleControl(c.controls.Draw(ui.ControlsState{Paused: c.app.Paused(), Debug: c.app.Debug()}))
	c.inspector.Draw(c.app)
}

func (c *Client) handleControl(action ui.ControlAction) {
	switch action {
	case ui.ActionTogglePause:
		c.app.TogglePause()
	case ui.ActionToggleDebug:
		c.app.ToggleDebug()
	case ui.ActionZoomIn:
		c.app.Camera.ZoomBy(1.25)
	case ui.ActionZoomOut:
		c.app.Camera.ZoomBy(0.8)
	case ui.ActionResetView:
		c.app.Camera.Reset()
	}
}

// Unload frees GPU resources.
func (c *Client) Unload() {
	c.textures.Unload()
}

// Scene returns the entities the client spawned.
func (c *Client) Scene() *game.Scene { return c.scene }
