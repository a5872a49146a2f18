package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"gonum.org/v1/gonum/spatial/r2"
)

// RigidBody is a short-lived view of a body resolved from a handle.
// Resolve it again on every access rather than keeping it across ticks.
type RigidBody struct {
	b *cp.Body
}

// Type returns the body type.
func (r RigidBody) Type() BodyType {
	switch r.b.GetType() {
	case cp.BODY_STATIC:
		return Static
	case cp.BODY_KINEMATIC:
		return Kinematic
	}
	return Dynamic
}

// Position returns the body origin in world space.
func (r RigidBody) Position() r2.Vec { return fromCP(r.b.Position()) }

// SetPosition teleports the body origin.
func (r RigidBody) SetPosition(p r2.Vec) {
	r.b.SetPosition(toCP(p))
	r.b.Activate()
}

// Angle returns the rotation in radians.
func (r RigidBody) Angle() float64 { return r.b.Angle() }

// SetAngle sets the rotation in radians.
func (r RigidBody) SetAngle(a float64) {
	r.b.SetAngle(a)
	r.b.Activate()
}

// Heading returns the unit vector the body's local +X axis points along.
func (r RigidBody) Heading() r2.Vec {
	a := r.b.Angle()
	return r2.Vec{X: math.Cos(a), Y: math.Sin(a)}
}

// LinearVelocity returns the velocity of the center of mass.
func (r RigidBody) LinearVelocity() r2.Vec { return fromCP(r.b.Velocity()) }

// SetLinearVelocity overwrites the linear velocity.
func (r RigidBody) SetLinearVelocity(v r2.Vec) {
	if r.b.GetType() == cp.BODY_STATIC {
		return
	}
	r.b.SetVelocityVector(toCP(v))
	r.b.Activate()
}

// AngularVelocity returns the angular velocity in radians per second.
func (r RigidBody) AngularVelocity() float64 { return r.b.AngularVelocity() }

// SetAngularVelocity overwrites the angular velocity.
func (r RigidBody) SetAngularVelocity(w float64) {
	if r.b.GetType() == cp.BODY_STATIC {
		return
	}
	r.b.SetAngularVelocity(w)
	r.b.Activate()
}

// Mass returns the body mass, or 0 for bodies that impulses cannot move.
func (r RigidBody) Mass() float64 {
	if !r.movable() {
		return 0
	}
	return r.b.Mass()
}

// AngularInertia returns the effective moment of inertia, or 0 for bodies
// that impulses cannot move.
func (r RigidBody) AngularInertia() float64 {
	if !r.movable() {
		return 0
	}
	return r.b.Moment()
}

// CenterOfMass returns the center of mass in world space.
func (r RigidBody) CenterOfMass() r2.Vec {
	return fromCP(r.b.LocalToWorld(r.b.CenterOfGravity()))
}

// ApplyImpulse applies a linear impulse through the center of mass.
func (r RigidBody) ApplyImpulse(j r2.Vec) {
	if !r.movable() {
		return
	}
	r.b.ApplyImpulseAtWorldPoint(toCP(j), r.b.LocalToWorld(r.b.CenterOfGravity()))
}

// ApplyTorqueImpulse changes angular velocity by j / inertia.
func (r RigidBody) ApplyTorqueImpulse(j float64) {
	if !r.movable() {
		return
	}
	r.b.SetAngularVelocity(r.b.AngularVelocity() + j/r.b.Moment())
	r.b.Activate()
}

// Transform maps a body-local point into world space.
func (r RigidBody) Transform(local r2.Vec) r2.Vec {
	return fromCP(r.b.LocalToWorld(toCP(local)))
}

func (r RigidBody) movable() bool {
	if r.b.GetType() != cp.BODY_DYNAMIC {
		return false
	}
	m, i := r.b.Mass(), r.b.Moment()
	return m > 0 && i > 0 && !math.IsInf(m, 0) && !math.IsInf(i, 0)
}

// Collider is a view of a collider resolved from a handle.
type Collider struct {
	owner BodyHandle
	shape Shape
	body  *cp.Body
}

// Body returns the handle of the body the collider is attached to.
func (c Collider) Body() BodyHandle { return c.owner }

// Shape returns the collider's local shape.
func (c Collider) Shape() Shape { return c.shape }

// WorldPieces returns each convex piece as a vertex loop in world space.
func (c Collider) WorldPieces() [][]r2.Vec {
	out := make([][]r2.Vec, 0, c.shape.Len())
	for _, piece := range c.shape.pieces {
		loop := make([]r2.Vec, len(piece.verts))
		for i, v := range piece.verts {
			loop[i] = fromCP(c.body.LocalToWorld(toCP(v)))
		}
		out = append(out, loop)
	}
	return out
}

func toCP(v r2.Vec) cp.Vector { return cp.Vector{X: v.X, Y: v.Y} }

func fromCP(v cp.Vector) r2.Vec { return r2.Vec{X: v.X, Y: v.Y} }
