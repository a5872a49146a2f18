// Package components defines the per-entity data stored in the ECS arena.
// Behavior lives in the game package; these are plain values.
package components

import (
	"github.com/pthm-cable/spacemadness/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// TextureID names a texture owned by the presentation layer. Zero is none.
type TextureID uint32

// Sprite is how an entity is presented.
type Sprite struct {
	Texture TextureID `inspect:"label"`
	Size    r2.Vec    `inspect:"vec,fmt:%.1f"` // World units
	Offset  r2.Vec    `inspect:"vec,fmt:%.2f"` // Normalized anchor inside the sprite
}

// Anchor returns the anchor point in sprite-local world units.
func (s Sprite) Anchor() r2.Vec {
	return r2.Vec{X: s.Size.X * s.Offset.X, Y: s.Size.Y * s.Offset.Y}
}

// PhysicsRef holds the handles of the body and primary collider the physics
// world owns for an entity.
type PhysicsRef struct {
	Body     physics.BodyHandle     `inspect:"skip"`
	Collider physics.ColliderHandle `inspect:"skip"`
}

// Tag labels an entity for logs and the debug panel.
type Tag struct {
	Name string `inspect:"label"`
	ID   uint32 `inspect:"label"`
}
