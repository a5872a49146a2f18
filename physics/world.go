// Package physics owns rigid bodies and colliders and steps the simulation.
// Callers hold opaque handles; the World is the only owner of physics data.
package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// BodyType selects how a body participates in the simulation.
type BodyType uint8

const (
	Dynamic BodyType = iota
	Kinematic
	Static
)

func (t BodyType) String() string {
	switch t {
	case Dynamic:
		return "dynamic"
	case Kinematic:
		return "kinematic"
	case Static:
		return "static"
	}
	return fmt.Sprintf("body_type(%d)", uint8(t))
}

// BodyDef describes a rigid body to register.
type BodyDef struct {
	Type            BodyType
	Position        r2.Vec
	Angle           float64
	LinearVelocity  r2.Vec
	AngularVelocity float64
}

// ColliderDef describes a collider to attach to a body.
// Mass of dynamic bodies is derived from Density times piece area.
type ColliderDef struct {
	Shape      Shape
	Density    float64
	Friction   float64
	Elasticity float64
}

// DefaultColliderDef returns a unit-density collider for the shape.
func DefaultColliderDef(shape Shape) ColliderDef {
	return ColliderDef{Shape: shape, Density: 1, Friction: 0.5}
}

// Settings configures the engine.
type Settings struct {
	Gravity    r2.Vec
	Iterations int
	Damping    float64 // Fraction of velocity kept per second
	TimeStep   float64 // Seconds advanced by every Step
}

// BodyHandle is an opaque, stable reference to a rigid body.
// The zero value never resolves.
type BodyHandle struct{ e ecs.Entity }

// ColliderHandle is an opaque, stable reference to a collider.
// The zero value never resolves.
type ColliderHandle struct{ e ecs.Entity }

// IsZero reports whether the handle was never assigned.
func (h BodyHandle) IsZero() bool { return h.e.IsZero() }

// IsZero reports whether the handle was never assigned.
func (h ColliderHandle) IsZero() bool { return h.e.IsZero() }

type bodySlot struct {
	body      *cp.Body
	colliders []ColliderHandle
}

type colliderSlot struct {
	owner  BodyHandle
	shapes []*cp.Shape
	shape  Shape
}

// World is the single authority over rigid-body and collider lifetime.
// Handles are generational: a removed handle never aliases a later one.
type World struct {
	space    *cp.Space
	timeStep float64

	store     *ecs.World
	bodies    *ecs.Map1[bodySlot]
	colliders *ecs.Map1[colliderSlot]

	bodyCount     int
	colliderCount int
	steps         uint64
}

// New creates an empty physics world.
func New(s Settings) *World {
	if s.TimeStep <= 0 {
		s.TimeStep = 1.0 / 60.0
	}
	space := cp.NewSpace()
	space.SetGravity(toCP(s.Gravity))
	if s.Iterations > 0 {
		space.Iterations = uint(s.Iterations)
	}
	if s.Damping > 0 {
		space.SetDamping(s.Damping)
	}

	store := ecs.NewWorld()
	return &World{
		space:     space,
		timeStep:  s.TimeStep,
		store:     store,
		bodies:    ecs.NewMap1[bodySlot](store),
		colliders: ecs.NewMap1[colliderSlot](store),
	}
}

// TimeStep returns the fixed step length in seconds.
func (w *World) TimeStep() float64 { return w.timeStep }

// Steps returns how many times Step has run.
func (w *World) Steps() uint64 { return w.steps }

// Bodies returns the number of live rigid bodies.
func (w *World) Bodies() int { return w.bodyCount }

// Colliders returns the number of live colliders.
func (w *World) Colliders() int { return w.colliderCount }

// AddRigidBody registers a body and its collider. The collider is attached
// to the body.
func (w *World) AddRigidBody(def BodyDef, collider ColliderDef) (BodyHandle, ColliderHandle) {
	var body *cp.Body
	switch def.Type {
	case Static:
		body = cp.NewStaticBody()
	case Kinematic:
		body = cp.NewKinematicBody()
	default:
		// Mass and moment accumulate from collider density.
		body = cp.NewBody(0, 0)
	}
	body.SetPosition(toCP(def.Position))
	body.SetAngle(def.Angle)
	w.space.AddBody(body)
	if def.Type != Static {
		body.SetVelocityVector(toCP(def.LinearVelocity))
		body.SetAngularVelocity(def.AngularVelocity)
	}

	bh := BodyHandle{e: w.bodies.NewEntity(&bodySlot{body: body})}
	w.bodyCount++

	ch := w.AttachCollider(bh, collider)
	return bh, ch
}

// AttachCollider adds another collider to an existing body.
func (w *World) AttachCollider(bh BodyHandle, def ColliderDef) ColliderHandle {
	slot := w.bodySlot(bh)

	shapes := make([]*cp.Shape, 0, def.Shape.Len())
	for _, piece := range def.Shape.Pieces() {
		verts := make([]cp.Vector, piece.Len())
		for i, v := range piece.verts {
			verts[i] = toCP(v)
		}
		shape := cp.NewPolyShape(slot.body, len(verts), verts, cp.NewTransformIdentity(), 0)
		shape.SetFriction(def.Friction)
		shape.SetElasticity(def.Elasticity)
		w.space.AddShape(shape)
		if slot.body.GetType() == cp.BODY_DYNAMIC && def.Density > 0 {
			shape.SetDensity(def.Density)
		}
		shapes = append(shapes, shape)
	}

	ch := ColliderHandle{e: w.colliders.NewEntity(&colliderSlot{owner: bh, shapes: shapes, shape: def.Shape})}
	// Re-fetch: creating an entity may move component storage.
	slot = w.bodySlot(bh)
	slot.colliders = append(slot.colliders, ch)
	w.colliderCount++
	return ch
}

// RemoveCollider detaches and releases a collider.
func (w *World) RemoveCollider(ch ColliderHandle) {
	cs := w.colliderSlot(ch)
	for _, shape := range cs.shapes {
		w.space.RemoveShape(shape)
	}
	if owner, ok := w.lookupBodySlot(cs.owner); ok {
		for i, h := range owner.colliders {
			if h == ch {
				owner.colliders = append(owner.colliders[:i], owner.colliders[i+1:]...)
				break
			}
		}
	}
	w.store.RemoveEntity(ch.e)
	w.colliderCount--
}

// RemoveRigidBody releases a body and every collider attached to it.
func (w *World) RemoveRigidBody(bh BodyHandle) {
	slot := w.bodySlot(bh)
	attached := append([]ColliderHandle(nil), slot.colliders...)
	for _, ch := range attached {
		w.RemoveCollider(ch)
	}
	slot = w.bodySlot(bh)
	w.space.RemoveBody(slot.body)
	w.store.RemoveEntity(bh.e)
	w.bodyCount--
}

// Step advances the simulation by exactly one fixed time step.
func (w *World) Step() {
	w.space.Step(w.timeStep)
	w.steps++
}

// Body resolves a handle. Panics if the handle is stale or was never issued:
// that is a lifecycle bug in the caller, not a runtime condition.
func (w *World) Body(bh BodyHandle) RigidBody {
	return RigidBody{b: w.bodySlot(bh).body}
}

// LookupBody resolves a handle, reporting false instead of panicking.
func (w *World) LookupBody(bh BodyHandle) (RigidBody, bool) {
	slot, ok := w.lookupBodySlot(bh)
	if !ok {
		return RigidBody{}, false
	}
	return RigidBody{b: slot.body}, true
}

// Contains reports whether a body handle is live.
func (w *World) Contains(bh BodyHandle) bool {
	_, ok := w.lookupBodySlot(bh)
	return ok
}

// Collider resolves a collider handle. Panics on a stale handle.
func (w *World) Collider(ch ColliderHandle) Collider {
	cs := w.colliderSlot(ch)
	return Collider{owner: cs.owner, shape: cs.shape, body: w.bodySlot(cs.owner).body}
}

// CollidersOf returns the handles of every collider attached to a body.
func (w *World) CollidersOf(bh BodyHandle) []ColliderHandle {
	return append([]ColliderHandle(nil), w.bodySlot(bh).colliders...)
}

func (w *World) lookupBodySlot(bh BodyHandle) (*bodySlot, bool) {
	if bh.e.IsZero() || !w.store.Alive(bh.e) || !w.bodies.HasAll(bh.e) {
		return nil, false
	}
	return w.bodies.Get(bh.e), true
}

func (w *World) bodySlot(bh BodyHandle) *bodySlot {
	slot, ok := w.lookupBodySlot(bh)
	if !ok {
		panic(fmt.Sprintf("physics: stale or unknown body handle %v", bh.e))
	}
	return slot
}

func (w *World) colliderSlot(ch ColliderHandle) *colliderSlot {
	if ch.e.IsZero() || !w.store.Alive(ch.e) || !w.colliders.HasAll(ch.e) {
		panic(fmt.Sprintf("physics: stale or unknown collider handle %v", ch.e))
	}
	return w.colliders.Get(ch.e)
}
