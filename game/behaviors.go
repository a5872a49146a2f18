package game

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spacemadness/input"
	"github.com/pthm-cable/spacemadness/physics"
	"github.com/pthm-cable/spacemadness/tilemap"
)

// CameraFollow points the camera at its entity's center of mass once per
// frame. When several entities follow, the last in entity order wins.
type CameraFollow struct{}

func (*CameraFollow) component() {}

// FrameUpdate moves the camera.
func (*CameraFollow) FrameUpdate(self EntityID, app *App) {
	body, ok := app.RigidBody(self)
	if !ok {
		return
	}
	app.Camera.LookAt(body.CenterOfMass())
}

// Motion thrusts along the heading while Boost is held and scales velocity
// by Brake while Slow is held.
type Motion struct {
	Power   float64 `inspect:"label,fmt:%.0f"` // Impulse per tick
	Brake   float64 `inspect:"label,fmt:%.3f"` // Velocity factor per tick, in (0, 1)
	Emitter r2.Vec  `inspect:"vec,fmt:%.1f"`   // Body-local exhaust point
}

func (*Motion) component() {}

// Half-extent of the exhaust streak around the emitter.
var (
	exhaustUp   = r2.Vec{X: 0, Y: 2}
	exhaustBack = r2.Vec{X: 0.05, Y: 0}
)

// PhysicsUpdate applies thrust and braking.
func (m *Motion) PhysicsUpdate(self EntityID, app *App) {
	if app.Input(input.Boost).IsPressed() {
		body, ok := app.RigidBody(self)
		if !ok {
			return
		}
		body.ApplyImpulse(r2.Scale(m.Power, body.Heading()))
	}
	if app.Input(input.Slow).IsPressed() {
		body, ok := app.RigidBody(self)
		if !ok {
			return
		}
		body.SetLinearVelocity(r2.Scale(m.Brake, body.LinearVelocity()))
	}
}

// Draw renders the exhaust streak while boosting.
func (m *Motion) Draw(self EntityID, app *App, canvas Canvas) {
	if !app.Input(input.Boost).IsPressed() {
		return
	}
	body, ok := app.RigidBody(self)
	if !ok {
		return
	}
	a := body.Transform(r2.Sub(r2.Add(m.Emitter, exhaustUp), exhaustBack))
	b := body.Transform(r2.Sub(r2.Sub(m.Emitter, exhaustUp), exhaustBack))
	canvas.DrawLine(a, b, 0.1, color.RGBA{R: 255, G: 255, B: 255, A: 255})
}

// FaceMouse turns its entity toward the pointer with a damped torque
// impulse: (Gain*error - angular velocity) * inertia / (|Gain*error| + 1).
type FaceMouse struct {
	Gain float64 `inspect:"label,fmt:%.2f"` // Zero means 1
}

func (*FaceMouse) component() {}

// PhysicsUpdate applies the steering impulse.
func (f *FaceMouse) PhysicsUpdate(self EntityID, app *App) {
	body, ok := app.RigidBody(self)
	if !ok {
		return
	}
	angle := SteeringError(body.Heading(), body.Position(), app.PointerWorld())
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return
	}
	gain := f.Gain
	if gain == 0 {
		gain = 1
	}
	angle *= gain

	inertia := body.AngularInertia()
	velocity := body.AngularVelocity()
	body.ApplyTorqueImpulse((angle - velocity) * inertia / (math.Abs(angle) + 1))
}

// SteeringError returns the signed angle in (-pi, pi] from heading to the
// direction from position toward target. It is NaN when target equals
// position.
func SteeringError(heading, position, target r2.Vec) float64 {
	d := r2.Sub(target, position)
	if r2.Norm(d) == 0 {
		return math.NaN()
	}
	dir := r2.Unit(d)
	return math.Atan2(r2.Cross(heading, dir), r2.Dot(heading, dir))
}

// TileMap owns a tile grid drawn into its entity's texture. Once per frame
// it flushes the dirty cells: their images go to the texture and their
// colliders on the entity's body are rebuilt.
type TileMap struct {
	Map *tilemap.TileMap `inspect:"skip"`

	texelSize int
	colliders map[tilemap.Coord]physics.ColliderHandle
}

func (*TileMap) component() {}

// NewTileMap wraps a grid whose tiles are texelSize world units wide.
func NewTileMap(m *tilemap.TileMap, texelSize int) *TileMap {
	return &TileMap{
		Map:       m,
		texelSize: texelSize,
		colliders: make(map[tilemap.Coord]physics.ColliderHandle),
	}
}

// FrameUpdate syncs dirty tiles. Without a canvas the cells stay dirty.
func (t *TileMap) FrameUpdate(self EntityID, app *App) {
	if app.canvas == nil || t.Map.Dirty() == 0 {
		return
	}
	sprite := app.Sprite(self)
	ref, ok := app.PhysicsRef(self)
	if sprite == nil || !ok {
		return
	}
	surface := app.canvas.TileSurface(sprite.Texture)

	blits := 0
	t.Map.Drain(func(c tilemap.Coord, tile tilemap.Tile) {
		if t.Map.BlitTile(surface, c, tile) {
			blits++
		}
		t.syncCollider(app.Physics, ref.Body, c, tile)
	})
	app.collector.RecordTileBlits(blits)
}

// Colliders returns the number of per-tile colliders currently attached.
func (t *TileMap) Colliders() int { return len(t.colliders) }

func (t *TileMap) syncCollider(w *physics.World, body physics.BodyHandle, c tilemap.Coord, tile tilemap.Tile) {
	if old, ok := t.colliders[c]; ok {
		w.RemoveCollider(old)
		delete(t.colliders, c)
	}
	piece, ok := tile.Type.Collider(c, t.texelSize)
	if !ok {
		return
	}
	t.colliders[c] = w.AttachCollider(body, physics.DefaultColliderDef(physics.Single(piece)))
}
