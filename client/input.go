package client

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes window-level keys and the mouse. Simulation actions
// go through the game's keybinds instead.
func (c *Client) handleInput() {
	c.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		c.showPanels = !c.showPanels
	}

	c.handleCameraInput()

	if c.showPanels {
		c.inspector.HandleInput(c.app)
	}
}

// handleResize moves screen-anchored panels after a window resize. The
// camera follows the window size through the game's input source.
func (c *Client) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if w == c.screenWidth && h == c.screenHeight {
		return
	}
	c.screenWidth, c.screenHeight = w, h
	c.controls.SetPosition(10, h-160)
	c.inspector.Resize(w)
}

// handleCameraInput processes zoom controls.
func (c *Client) handleCameraInput() {
	cam := c.app.Camera

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		cam.ZoomBy(1 + float64(wheel)*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		cam.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		cam.Reset()
	}
}
