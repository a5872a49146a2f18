package game

// Component is one behavior attached to an entity. The set of variants is
// closed: CameraFollow, Motion, FaceMouse and TileMap.
//
// A variant takes part in a phase by implementing that phase's interface;
// phases it does not implement are no-ops. Every call receives the owning
// entity's ID and the shared App. Resolve the entity's state through the
// App on each call instead of caching it across calls.
type Component interface {
	component()
}

// FixedUpdater runs once per tick, before PhysicsUpdater.
type FixedUpdater interface {
	FixedUpdate(self EntityID, app *App)
}

// PhysicsUpdater runs once per tick, after every FixedUpdater and before
// the physics step.
type PhysicsUpdater interface {
	PhysicsUpdate(self EntityID, app *App)
}

// FrameUpdater runs once per frame after all of the frame's ticks, even
// while paused.
type FrameUpdater interface {
	FrameUpdate(self EntityID, app *App)
}

// Drawer runs right after its entity's sprite is drawn.
type Drawer interface {
	Draw(self EntityID, app *App, canvas Canvas)
}

type phase uint8

const (
	phaseFixed phase = iota
	phasePhysics
	phaseFrame
)

// dispatch calls one phase on every component of every entity, one call at
// a time in entity order then component order. Spawns and despawns made
// during the pass apply when it ends.
func (a *App) dispatch(p phase) {
	a.dispatching = true
	defer func() {
		a.dispatching = false
		a.flushPending()
	}()

	for _, id := range a.order {
		if !a.Alive(id) {
			continue
		}
		for _, c := range a.behavMap.Get(id.e).list {
			switch p {
			case phaseFixed:
				if u, ok := c.(FixedUpdater); ok {
					u.FixedUpdate(id, a)
				}
			case phasePhysics:
				if u, ok := c.(PhysicsUpdater); ok {
					u.PhysicsUpdate(id, a)
				}
			case phaseFrame:
				if u, ok := c.(FrameUpdater); ok {
					u.FrameUpdate(id, a)
				}
			}
		}
	}
}
