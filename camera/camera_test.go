package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestNew(t *testing.T) {
	cam := New(1280, 720, 128)

	if cam.Target != (r2.Vec{}) {
		t.Errorf("expected camera at origin, got %v", cam.Target)
	}
	if cam.Zoom != 720.0/128.0 {
		t.Errorf("expected zoom %f, got %f", 720.0/128.0, cam.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720, 128)
	cam.LookAt(r2.Vec{X: 40, Y: -3})

	// Target should map to screen center
	s := cam.WorldToScreen(r2.Vec{X: 40, Y: -3})
	if math.Abs(s.X-640) > 0.01 || math.Abs(s.Y-360) > 0.01 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", s.X, s.Y)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 128)
	cam.LookAt(r2.Vec{X: -64, Y: 12})

	testCases := []r2.Vec{
		{X: 640, Y: 360},  // center
		{X: 100, Y: 100},  // top-left
		{X: 1200, Y: 600}, // near bottom-right
	}

	for _, tc := range testCases {
		w := cam.ScreenToWorld(tc)
		s := cam.WorldToScreen(w)
		if math.Abs(s.X-tc.X) > 0.01 || math.Abs(s.Y-tc.Y) > 0.01 {
			t.Errorf("roundtrip failed: %v -> %v -> %v", tc, w, s)
		}
	}
}

func TestScreenToWorldScale(t *testing.T) {
	cam := New(1280, 720, 128)

	// Top edge of the window is half the view height above the target
	w := cam.ScreenToWorld(r2.Vec{X: 640, Y: 0})
	if math.Abs(w.Y+64) > 1e-9 {
		t.Errorf("expected y=-64 at top edge, got %f", w.Y)
	}
}

func TestResizeKeepsViewHeight(t *testing.T) {
	cam := New(1280, 720, 128)
	cam.Resize(1920, 1080)

	if cam.ViewHeight != 128 {
		t.Errorf("expected view height 128, got %f", cam.ViewHeight)
	}
	if cam.Zoom != 1080.0/128.0 {
		t.Errorf("expected zoom %f, got %f", 1080.0/128.0, cam.Zoom)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 128)

	cam.ZoomBy(100) // Past max magnification
	if cam.ViewHeight != 32 {
		t.Errorf("expected view height clamped to 32, got %f", cam.ViewHeight)
	}

	cam.ZoomBy(0.001) // Past min magnification
	if cam.ViewHeight != 512 {
		t.Errorf("expected view height clamped to 512, got %f", cam.ViewHeight)
	}

	cam.ZoomBy(0) // Ignored
	if cam.ViewHeight != 512 {
		t.Errorf("expected zero factor to be ignored, got %f", cam.ViewHeight)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 128)

	// Visible half extents: (1280/5.625/2, 64) = (~113.8, 64)
	if !cam.IsVisible(r2.Vec{}, 1) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(r2.Vec{X: 300, Y: 300}, 10) {
		t.Error("far point should not be visible")
	}
	if !cam.IsVisible(r2.Vec{Y: 70}, 8) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestVisibleWorldBounds(t *testing.T) {
	cam := New(1280, 720, 128)
	cam.LookAt(r2.Vec{X: 10, Y: 10})

	min, max := cam.VisibleWorldBounds()
	if math.Abs(min.Y+54) > 1e-9 || math.Abs(max.Y-74) > 1e-9 {
		t.Errorf("expected y bounds [-54, 74], got [%f, %f]", min.Y, max.Y)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, 128)
	cam.LookAt(r2.Vec{X: 500, Y: 500})
	cam.ZoomBy(2)

	cam.Reset()

	if cam.Target != (r2.Vec{}) {
		t.Errorf("expected target at origin, got %v", cam.Target)
	}
	if cam.ViewHeight != 128 {
		t.Errorf("expected view height 128, got %f", cam.ViewHeight)
	}
}
