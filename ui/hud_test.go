package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHUDLines(t *testing.T) {
	h := NewHUD()
	lines := h.Lines(HUDData{
		Title:        "Space Madness 404",
		Tick:         120,
		Frame:        90,
		FPS:          144,
		Entities:     3,
		Bodies:       3,
		Colliders:    4,
		DroppedTicks: 55,
		ViewHeight:   128,
	})

	require.Len(t, lines, 5)
	assert.Equal(t, "Space Madness 404", lines[0])
	assert.Equal(t, "Entities: 3 | Bodies: 3 | Colliders: 4", lines[1])
	assert.Equal(t, "Tick: 120 | Frame: 90 | FPS: 144 | Dropped: 55", lines[2])
	assert.Equal(t, "View: 128 units", lines[3])
	assert.Equal(t, "Running", lines[4])
}

func TestHUDStatus(t *testing.T) {
	h := NewHUD()
	lines := h.Lines(HUDData{Paused: true, Debug: true})
	assert.Equal(t, "PAUSED | Debug", lines[len(lines)-1])
}

func TestToggleText(t *testing.T) {
	assert.Equal(t, "Resume", toggleText(true, "Resume", "Pause"))
	assert.Equal(t, "Pause", toggleText(false, "Resume", "Pause"))
	assert.Equal(t, " 12.5%", percent(0.125))
}
