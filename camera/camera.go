// Package camera provides a 2D camera that looks at a world-space target.
package camera

import "gonum.org/v1/gonum/spatial/r2"

// Camera maps between world space and window pixels.
// The visible world height is fixed; the width follows the window aspect.
type Camera struct {
	// Target is the world point drawn at the viewport center
	Target r2.Vec

	// Zoom is screen pixels per world unit, derived from ViewHeight
	Zoom float64

	// ViewHeight is how many world units fit top to bottom
	ViewHeight float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// View height constraints
	MinViewHeight, MaxViewHeight float64

	home float64
}

// New creates a camera at the world origin showing viewHeight world units.
func New(viewportW, viewportH, viewHeight float64) *Camera {
	c := &Camera{
		ViewHeight:    viewHeight,
		ViewportW:     viewportW,
		ViewportH:     viewportH,
		MinViewHeight: viewHeight / 4,
		MaxViewHeight: viewHeight * 4,
		home:          viewHeight,
	}
	c.updateZoom()
	return c
}

// LookAt moves the camera so target sits at the viewport center.
func (c *Camera) LookAt(target r2.Vec) {
	c.Target = target
}

// WorldToScreen converts world coordinates to window pixels.
func (c *Camera) WorldToScreen(w r2.Vec) r2.Vec {
	d := r2.Scale(c.Zoom, r2.Sub(w, c.Target))
	return r2.Vec{X: c.ViewportW/2 + d.X, Y: c.ViewportH/2 + d.Y}
}

// ScreenToWorld converts window pixels to world coordinates.
func (c *Camera) ScreenToWorld(s r2.Vec) r2.Vec {
	d := r2.Vec{X: s.X - c.ViewportW/2, Y: s.Y - c.ViewportH/2}
	return r2.Add(c.Target, r2.Scale(1/c.Zoom, d))
}

// IsVisible returns true if a circle at p with the given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(p r2.Vec, radius float64) bool {
	d := r2.Sub(p, c.Target)
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return abs(d.X) <= halfW && abs(d.Y) <= halfH
}

// Resize updates viewport dimensions, keeping the visible world height.
func (c *Camera) Resize(viewportW, viewportH float64) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.updateZoom()
}

// SetViewHeight sets the visible world height, clamped to min/max.
func (c *Camera) SetViewHeight(h float64) {
	c.ViewHeight = clamp(h, c.MinViewHeight, c.MaxViewHeight)
	c.updateZoom()
}

// ZoomBy magnifies the view by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	c.SetViewHeight(c.ViewHeight / factor)
}

// Reset returns the camera to the origin and its initial view height.
func (c *Camera) Reset() {
	c.Target = r2.Vec{}
	c.ViewHeight = c.home
	c.updateZoom()
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (min, max r2.Vec) {
	half := r2.Vec{X: c.ViewportW / (2 * c.Zoom), Y: c.ViewportH / (2 * c.Zoom)}
	return r2.Sub(c.Target, half), r2.Add(c.Target, half)
}

func (c *Camera) updateZoom() {
	if c.ViewHeight <= 0 || c.ViewportH <= 0 {
		c.Zoom = 1
		return
	}
	c.Zoom = c.ViewportH / c.ViewHeight
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
