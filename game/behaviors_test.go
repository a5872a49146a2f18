package game

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spacemadness/input"
	"github.com/pthm-cable/spacemadness/physics"
	"github.com/pthm-cable/spacemadness/tilemap"
)

func TestSteeringError(t *testing.T) {
	east := r2.Vec{X: 1}
	tests := []struct {
		name    string
		heading r2.Vec
		target  r2.Vec
		want    float64
	}{
		{"ahead", east, r2.Vec{X: 5}, 0},
		{"left", east, r2.Vec{Y: 5}, math.Pi / 2},
		{"right", east, r2.Vec{Y: -5}, -math.Pi / 2},
		{"behind", east, r2.Vec{X: -5}, math.Pi},
		{"rotated heading", r2.Vec{Y: 1}, r2.Vec{X: 3}, -math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SteeringError(tt.heading, r2.Vec{}, tt.target)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	assert.True(t, math.IsNaN(SteeringError(east, r2.Vec{X: 2}, r2.Vec{X: 2})))
}

// pointAt sets the pointer to the screen pixel over a world point, with the
// camera at its initial origin target.
func pointAt(app *App, src *fakeSource, world r2.Vec) {
	src.pointer = app.Camera.WorldToScreen(world)
	app.Keybinds.Update(src)
}

func TestFaceMouseNoTorqueAtOwnPosition(t *testing.T) {
	app := newTestApp(t, nil)
	f := &FaceMouse{Gain: math.Pi}
	id := spawnBox(app, "ship", r2Zero, f)
	pointAt(app, newFakeSource(), r2Zero)

	f.PhysicsUpdate(id, app)

	body, _ := app.RigidBody(id)
	assert.Equal(t, 0.0, body.AngularVelocity())
}

func TestFaceMouseTurnsTowardPointer(t *testing.T) {
	app := newTestApp(t, nil)
	f := &FaceMouse{Gain: 1}
	id := spawnBox(app, "ship", r2Zero, f)
	pointAt(app, newFakeSource(), r2.Vec{Y: 10})

	f.PhysicsUpdate(id, app)

	body, _ := app.RigidBody(id)
	want := (math.Pi / 2) / (math.Pi/2 + 1)
	assert.InDelta(t, want, body.AngularVelocity(), 1e-6)
}

func TestFaceMouseGainScalesErrorBeforeDamping(t *testing.T) {
	app := newTestApp(t, nil)
	f := &FaceMouse{Gain: 2}
	id := spawnBox(app, "ship", r2Zero, f)
	pointAt(app, newFakeSource(), r2.Vec{Y: 10})

	f.PhysicsUpdate(id, app)

	body, _ := app.RigidBody(id)
	assert.InDelta(t, math.Pi/(math.Pi+1), body.AngularVelocity(), 1e-6)
}

func TestFaceMouseDampsWhenAligned(t *testing.T) {
	app := newTestApp(t, nil)
	f := &FaceMouse{Gain: 1}
	id := spawnBox(app, "ship", r2Zero, f)
	body, _ := app.RigidBody(id)
	body.SetAngularVelocity(2)
	pointAt(app, newFakeSource(), r2.Vec{X: 10})

	f.PhysicsUpdate(id, app)

	// error 0: impulse -2 * inertia over 1 cancels the spin.
	assert.InDelta(t, 0.0, body.AngularVelocity(), 1e-9)
}

func TestMotionBoostAndSlow(t *testing.T) {
	app := newTestApp(t, nil)
	m := &Motion{Power: 100, Brake: 0.5, Emitter: r2.Vec{X: -1}}
	id := spawnBox(app, "ship", r2Zero, m)
	body, _ := app.RigidBody(id)
	require.InDelta(t, 4.0, body.Mass(), 1e-9)

	src := newFakeSource()
	src.down[input.Key('W')] = true
	app.Keybinds.Update(src)
	m.PhysicsUpdate(id, app)
	assert.InDelta(t, 25.0, body.LinearVelocity().X, 1e-9)
	assert.InDelta(t, 0.0, body.LinearVelocity().Y, 1e-9)

	canvas := &fakeCanvas{}
	m.Draw(id, app, canvas)
	require.Len(t, canvas.lines, 1)
	assert.InDelta(t, -1.05, canvas.lines[0].a.X, 1e-9)
	assert.InDelta(t, 2.0, canvas.lines[0].a.Y, 1e-9)
	assert.InDelta(t, -2.0, canvas.lines[0].b.Y, 1e-9)

	src.down[input.Key('W')] = false
	src.down[input.Key('S')] = true
	app.Keybinds.Update(src)
	m.PhysicsUpdate(id, app)
	assert.InDelta(t, 12.5, body.LinearVelocity().X, 1e-9)

	canvas = &fakeCanvas{}
	m.Draw(id, app, canvas)
	assert.Empty(t, canvas.lines)
}

func TestMotionIdleLeavesVelocity(t *testing.T) {
	app := newTestApp(t, nil)
	m := &Motion{Power: 100, Brake: 0.5}
	id := spawnBox(app, "ship", r2Zero, m)
	body, _ := app.RigidBody(id)
	body.SetLinearVelocity(r2.Vec{X: 3})

	app.Keybinds.Update(newFakeSource())
	m.PhysicsUpdate(id, app)

	assert.Equal(t, r2.Vec{X: 3}, body.LinearVelocity())
}

func TestCameraFollowTracksCenterOfMass(t *testing.T) {
	app := newTestApp(t, nil)
	id := spawnBox(app, "ship", r2.Vec{X: 7, Y: -3}, &CameraFollow{})

	app.Frame(0, newFakeSource(), nil)

	body, _ := app.RigidBody(id)
	assert.InDelta(t, body.CenterOfMass().X, app.Camera.Target.X, 1e-9)
	assert.InDelta(t, body.CenterOfMass().Y, app.Camera.Target.Y, 1e-9)
	assert.InDelta(t, 7.0, app.Camera.Target.X, 1e-9)
}

func TestCameraFollowLastWins(t *testing.T) {
	app := newTestApp(t, nil)
	spawnBox(app, "first", r2.Vec{X: 1}, &CameraFollow{})
	spawnBox(app, "second", r2.Vec{X: 9}, &CameraFollow{})

	app.Frame(0, newFakeSource(), nil)

	assert.InDelta(t, 9.0, app.Camera.Target.X, 1e-9)
}

func newTestTiles(t *testing.T, w, h int) *tilemap.TileMap {
	t.Helper()
	catalog, err := tilemap.LoadCatalog(func(string) (*tilemap.Image, error) {
		return tilemap.NewImage(16, 16), nil
	}, 16)
	require.NoError(t, err)
	m, err := tilemap.New(w, h, catalog)
	require.NoError(t, err)
	return m
}

func TestTileMapFlushesDirtyCells(t *testing.T) {
	app := newTestApp(t, nil)
	grid := newTestTiles(t, 16, 16)
	tiles := NewTileMap(grid, 8)
	id := app.Spawn(EntityDef{
		Name:       "map",
		Body:       physics.BodyDef{Type: physics.Static, Position: r2.Vec{X: -64, Y: -64}},
		Texture:    5,
		Size:       r2.Vec{X: 128, Y: 128},
		Components: []Component{tiles},
	})
	ref, _ := app.PhysicsRef(id)
	src := newFakeSource()

	grid.Set(tilemap.Coord{X: 1, Y: 1}, tilemap.Tile{Type: tilemap.Wall})

	// Without a canvas the cell stays dirty.
	app.Frame(0, src, nil)
	assert.Equal(t, 1, grid.Dirty())

	canvas := &fakeCanvas{}
	app.Frame(0, src, canvas)
	require.Len(t, canvas.blits, 1)
	assert.Equal(t, blit{tex: 5, dst: image.Rect(16, 16, 32, 32)}, canvas.blits[0])
	assert.Equal(t, 0, grid.Dirty())
	assert.Equal(t, 1, tiles.Colliders())
	assert.Len(t, app.Physics.CollidersOf(ref.Body), 2)

	canvas = &fakeCanvas{}
	app.Frame(0, src, canvas)
	assert.Empty(t, canvas.blits)

	// Clearing the cell removes its collider; Empty has no image to blit.
	grid.Set(tilemap.Coord{X: 1, Y: 1}, tilemap.Tile{Type: tilemap.Empty})
	app.Frame(0, src, canvas)
	assert.Empty(t, canvas.blits)
	assert.Equal(t, 0, tiles.Colliders())
	assert.Len(t, app.Physics.CollidersOf(ref.Body), 1)
}

func TestTileMapColliderFollowsBody(t *testing.T) {
	app := newTestApp(t, nil)
	grid := newTestTiles(t, 4, 4)
	tiles := NewTileMap(grid, 8)
	id := app.Spawn(EntityDef{
		Name:       "map",
		Body:       physics.BodyDef{Type: physics.Static, Position: r2.Vec{X: -64, Y: -64}},
		Texture:    5,
		Components: []Component{tiles},
	})
	ref, _ := app.PhysicsRef(id)

	grid.Set(tilemap.Coord{X: 2, Y: 0}, tilemap.Tile{Type: tilemap.Wall})
	app.Frame(0, newFakeSource(), &fakeCanvas{})

	handles := app.Physics.CollidersOf(ref.Body)
	require.Len(t, handles, 2)
	pieces := app.Physics.Collider(handles[1]).WorldPieces()
	require.Len(t, pieces, 1)

	minX, minY := math.Inf(1), math.Inf(1)
	for _, p := range pieces[0] {
		minX, minY = math.Min(minX, p.X), math.Min(minY, p.Y)
	}
	assert.InDelta(t, -48.0, minX, 1e-9)
	assert.InDelta(t, -64.0, minY, 1e-9)
}
