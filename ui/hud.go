package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/spacemadness/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Tick         uint64
	Frame        uint64
	FPS          int32
	Entities     int
	Bodies       int
	Colliders    int
	DroppedTicks uint64
	Paused       bool
	Debug        bool
	ViewHeight   float64
}

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Lines returns the HUD text, one entry per row.
func (h *HUD) Lines(data HUDData) []string {
	status := "Running"
	if data.Paused {
		status = "PAUSED"
	}
	if data.Debug {
		status += " | Debug"
	}
	return []string{
		data.Title,
		fmt.Sprintf("Entities: %d | Bodies: %d | Colliders: %d", data.Entities, data.Bodies, data.Colliders),
		fmt.Sprintf("Tick: %d | Frame: %d | FPS: %d | Dropped: %d", data.Tick, data.Frame, data.FPS, data.DroppedTicks),
		fmt.Sprintf("View: %.0f units", data.ViewHeight),
		status,
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	lines := h.Lines(data)
	rl.DrawText(lines[0], 10, 10, 20, rl.White)
	y := int32(35)
	for _, line := range lines[1 : len(lines)-1] {
		rl.DrawText(line, 10, y, 16, rl.LightGray)
		y += 20
	}
	rl.DrawText(lines[len(lines)-1], 10, y, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders frame phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	pad := r.Theme.Padding
	height := r.Theme.LineHeight*int32(len(telemetry.Phases)+4) + pad*2
	r.DrawPanel(p.x, p.y, p.width, height)

	x, y := p.x+pad, p.y+pad
	inner := p.width - pad*2
	y = r.DrawSectionHeader(x, y, "Frame Timing")
	y = r.DrawLabelValue(x, y, "Frame", fmt.Sprintf("%s (p99 %s)",
		stats.AvgFrameDuration.Round(time.Microsecond), stats.P99FrameDuration.Round(time.Microsecond)))
	y = r.DrawLabelValue(x, y, "Ticks/frame", fmt.Sprintf("%.2f | %.0f fps", stats.TicksPerFrame, stats.FPS))

	for _, phase := range telemetry.Phases {
		pct := stats.PhasePct[phase] / 100
		y = r.DrawBar(x, y, phase, pct, 0.2, percent(pct), inner)
	}
}
