package game

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spacemadness/camera"
	"github.com/pthm-cable/spacemadness/components"
	"github.com/pthm-cable/spacemadness/tilemap"
)

// Canvas is the presentation surface a frame draws on. Coordinates between
// BeginWorld and EndWorld are world units.
type Canvas interface {
	BeginWorld(cam *camera.Camera)
	EndWorld()

	// DrawSprite draws a texture of the given world size rotated by angle
	// radians around position; anchor is the sprite-local point placed on
	// position.
	DrawSprite(tex components.TextureID, position, size, anchor r2.Vec, angle float64)
	DrawLine(a, b r2.Vec, thickness float64, c color.RGBA)

	// TileSurface returns a writable view of a texture's pixels.
	TileSurface(tex components.TextureID) tilemap.Surface
}

// Debug overlay colors.
var (
	colliderColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	positionColor = color.RGBA{R: 0, G: 228, B: 48, A: 255}
	velocityColor = color.RGBA{R: 230, G: 41, B: 55, A: 255}
)

// drawEntities draws every sprite, each followed by its components' Draw.
func (a *App) drawEntities(canvas Canvas) {
	for _, id := range a.order {
		body, ok := a.RigidBody(id)
		if !ok {
			continue
		}
		sprite := a.spriteMap.Get(id.e)
		if sprite.Texture != 0 {
			canvas.DrawSprite(sprite.Texture, body.Position(), sprite.Size, sprite.Anchor(), body.Angle())
		}
		for _, c := range a.behavMap.Get(id.e).list {
			if d, ok := c.(Drawer); ok {
				d.Draw(id, a, canvas)
			}
		}
	}
}

// drawDebug outlines colliders and marks each body's origin and velocity.
func (a *App) drawDebug(canvas Canvas) {
	for _, id := range a.order {
		ref, ok := a.PhysicsRef(id)
		if !ok || !a.Physics.Contains(ref.Body) {
			continue
		}
		for _, ch := range a.Physics.CollidersOf(ref.Body) {
			drawCollider(canvas, a.Physics.Collider(ch).WorldPieces())
		}

		body := a.Physics.Body(ref.Body)
		drawMarker(canvas, body.Position(), 0.8, 0.2, positionColor)
		drawVelocityMarker(canvas, body.CenterOfMass(), r2.Scale(0.1, body.LinearVelocity()), 1.0, 0.2, velocityColor)
	}
}

func drawCollider(canvas Canvas, pieces [][]r2.Vec) {
	for _, points := range pieces {
		for _, p := range points {
			drawMarker(canvas, p, 0.5, 0.1, colliderColor)
		}
		for i := range points {
			canvas.DrawLine(points[i], points[(i+1)%len(points)], 0.1, colliderColor)
		}
	}
}

// drawMarker draws a plus sign.
func drawMarker(canvas Canvas, p r2.Vec, radius, bold float64, c color.RGBA) {
	canvas.DrawLine(r2.Vec{X: p.X + radius, Y: p.Y}, r2.Vec{X: p.X - radius, Y: p.Y}, bold, c)
	canvas.DrawLine(r2.Vec{X: p.X, Y: p.Y + radius}, r2.Vec{X: p.X, Y: p.Y - radius}, bold, c)
}

// drawVelocityMarker draws a plus sign whose arms stretch along v.
func drawVelocityMarker(canvas Canvas, p, v r2.Vec, radius, bold float64, c color.RGBA) {
	canvas.DrawLine(
		r2.Vec{X: p.X + math.Min(v.X, 0) - radius, Y: p.Y},
		r2.Vec{X: p.X + math.Max(v.X, 0) + radius, Y: p.Y},
		bold, c,
	)
	canvas.DrawLine(
		r2.Vec{X: p.X, Y: p.Y + math.Min(v.Y, 0) - radius},
		r2.Vec{X: p.X, Y: p.Y + math.Max(v.Y, 0) + radius},
		bold, c,
	)
}
