package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlAction is a request made through the controls panel.
type ControlAction int

const (
	ActionNone ControlAction = iota
	ActionTogglePause
	ActionToggleDebug
	ActionZoomIn
	ActionZoomOut
	ActionResetView
)

// ControlsState is what the panel shows.
type ControlsState struct {
	Paused bool
	Debug  bool
}

// ControlsPanel renders clickable buttons mirroring the keyboard toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the buttons and returns the one clicked this frame.
func (c *ControlsPanel) Draw(state ControlsState) ControlAction {
	if !c.visible {
		return ActionNone
	}
	r := c.renderer
	pad := r.Theme.Padding
	const buttonH = 24

	r.DrawPanel(c.x, c.y, c.width, buttonH*3+pad*4+r.Theme.LineHeight)
	rl.DrawText("Controls", c.x+pad, c.y+pad, 16, rl.White)

	x := float32(c.x + pad)
	y := float32(c.y + pad + r.Theme.LineHeight + 4)
	full := float32(c.width - pad*2)
	half := (full - float32(pad)) / 2

	action := ActionNone
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: buttonH}, toggleText(state.Paused, "Resume", "Pause")) {
		action = ActionTogglePause
	}
	if gui.Button(rl.Rectangle{X: x + half + float32(pad), Y: y, Width: half, Height: buttonH}, toggleText(state.Debug, "Hide Debug", "Show Debug")) {
		action = ActionToggleDebug
	}
	y += buttonH + float32(pad)

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: buttonH}, "Zoom In") {
		action = ActionZoomIn
	}
	if gui.Button(rl.Rectangle{X: x + half + float32(pad), Y: y, Width: half, Height: buttonH}, "Zoom Out") {
		action = ActionZoomOut
	}
	y += buttonH + float32(pad)

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: full, Height: buttonH}, "Reset View") {
		action = ActionResetView
	}
	return action
}

func toggleText(on bool, whenOn, whenOff string) string {
	if on {
		return whenOn
	}
	return whenOff
}
