package game

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spacemadness/components"
	"github.com/pthm-cable/spacemadness/physics"
)

// EntityID addresses an entity in the arena. IDs are generational: a
// despawned ID never resolves again, even after its slot is reused.
type EntityID struct{ e ecs.Entity }

func (id EntityID) String() string { return fmt.Sprintf("%d.%d", id.e.ID(), id.e.Gen()) }

// LogValue implements slog.LogValuer.
func (id EntityID) LogValue() slog.Value { return slog.StringValue(id.String()) }

// behaviors is the ordered component list of one entity.
type behaviors struct {
	list []Component
}

// EntityDef describes an entity to spawn.
type EntityDef struct {
	Name       string
	Body       physics.BodyDef
	Collider   physics.ColliderDef
	Texture    components.TextureID
	Size       r2.Vec // World units
	Offset     r2.Vec // Normalized anchor inside the sprite
	Components []Component
}

// Spawn registers the entity's body and collider with the physics world and
// adds it to the arena. An entity spawned while a phase is being dispatched
// joins the dispatch order once that pass ends.
func (a *App) Spawn(def EntityDef) EntityID {
	bh, ch := a.Physics.AddRigidBody(def.Body, def.Collider)

	a.nextID++
	sprite := components.Sprite{Texture: def.Texture, Size: def.Size, Offset: def.Offset}
	ref := components.PhysicsRef{Body: bh, Collider: ch}
	tag := components.Tag{Name: def.Name, ID: a.nextID}
	beh := behaviors{list: slices.Clone(def.Components)}

	id := EntityID{e: a.entityMap.NewEntity(&sprite, &ref, &tag, &beh)}
	if a.dispatching {
		a.pendingSpawn = append(a.pendingSpawn, id)
	} else {
		a.order = append(a.order, id)
	}

	a.collector.RecordSpawn()
	slog.Debug("entity_spawned", "entity", id, "name", def.Name, "body_type", def.Body.Type.String())
	return id
}

// Despawn removes an entity and releases its physics handles. During a
// phase pass the removal waits until the pass ends, so the entity still
// receives the remaining calls of that pass. Returns false if the entity
// is not live or is already queued.
func (a *App) Despawn(id EntityID) bool {
	if !a.Alive(id) || slices.Contains(a.pendingDespawn, id) {
		return false
	}
	if a.dispatching {
		a.pendingDespawn = append(a.pendingDespawn, id)
		return true
	}
	a.remove(id)
	return true
}

// Alive reports whether id resolves to a live entity.
func (a *App) Alive(id EntityID) bool {
	return !id.e.IsZero() && a.store.Alive(id.e) && a.behavMap.HasAll(id.e)
}

// Entities returns the live entities in dispatch order.
func (a *App) Entities() []EntityID {
	return slices.Clone(a.order)
}

// Sprite returns the entity's presentation state, or nil if it is not live.
// The pointer is valid until the next Spawn.
func (a *App) Sprite(id EntityID) *components.Sprite {
	if !a.Alive(id) {
		return nil
	}
	return a.spriteMap.Get(id.e)
}

// Tag returns the entity's label, or false if it is not live.
func (a *App) Tag(id EntityID) (components.Tag, bool) {
	if !a.Alive(id) {
		return components.Tag{}, false
	}
	return *a.tagMap.Get(id.e), true
}

// PhysicsRef returns the entity's physics handles, or false if it is not live.
func (a *App) PhysicsRef(id EntityID) (components.PhysicsRef, bool) {
	if !a.Alive(id) {
		return components.PhysicsRef{}, false
	}
	return *a.refMap.Get(id.e), true
}

// Components returns the entity's component list, or nil if it is not live.
func (a *App) Components(id EntityID) []Component {
	if !a.Alive(id) {
		return nil
	}
	return a.behavMap.Get(id.e).list
}

// RigidBody resolves the entity's body afresh. Returns false if the entity
// is not live.
func (a *App) RigidBody(id EntityID) (physics.RigidBody, bool) {
	ref, ok := a.PhysicsRef(id)
	if !ok {
		return physics.RigidBody{}, false
	}
	return a.Physics.LookupBody(ref.Body)
}

// FindByName returns the first live entity with the given name.
func (a *App) FindByName(name string) (EntityID, bool) {
	for _, id := range a.order {
		if tag, ok := a.Tag(id); ok && tag.Name == name {
			return id, true
		}
	}
	return EntityID{}, false
}

// remove releases every resource of a live entity.
func (a *App) remove(id EntityID) {
	ref := *a.refMap.Get(id.e)
	tag := *a.tagMap.Get(id.e)

	// Removing the body also removes every collider attached to it.
	a.Physics.RemoveRigidBody(ref.Body)
	a.store.RemoveEntity(id.e)
	a.order = slices.DeleteFunc(a.order, func(o EntityID) bool { return o == id })

	a.collector.RecordDespawn()
	slog.Debug("entity_despawned", "entity", id, "name", tag.Name)
}

// flushPending applies spawns and despawns deferred during a pass.
func (a *App) flushPending() {
	if a.dispatching {
		return
	}
	a.order = append(a.order, a.pendingSpawn...)
	a.pendingSpawn = a.pendingSpawn[:0]

	despawn := a.pendingDespawn
	a.pendingDespawn = nil
	for _, id := range despawn {
		if a.Alive(id) {
			a.remove(id)
		}
	}
}
