package game

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spacemadness/camera"
	"github.com/pthm-cable/spacemadness/components"
	"github.com/pthm-cable/spacemadness/config"
	"github.com/pthm-cable/spacemadness/input"
	"github.com/pthm-cable/spacemadness/physics"
	"github.com/pthm-cable/spacemadness/tilemap"
)

func newTestApp(t *testing.T, tweak func(*config.Config)) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Telemetry.LogInterval = 0
	if tweak != nil {
		tweak(cfg)
	}
	cfg.Derived.FixedDeltaTime = 1 / cfg.Sim.TicksPerSecond
	app, err := New(cfg)
	require.NoError(t, err)
	return app
}

// fakeSource is a scripted input device.
type fakeSource struct {
	down    map[input.Key]bool
	pointer r2.Vec
	screen  r2.Vec
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		down:    make(map[input.Key]bool),
		pointer: r2.Vec{X: 640, Y: 360},
		screen:  r2.Vec{X: 1280, Y: 720},
	}
}

func (s *fakeSource) IsKeyDown(k input.Key) bool { return s.down[k] }
func (s *fakeSource) PointerPosition() r2.Vec    { return s.pointer }
func (s *fakeSource) ScreenSize() r2.Vec         { return s.screen }

type drawnSprite struct {
	tex      components.TextureID
	position r2.Vec
	angle    float64
}

type drawnLine struct {
	a, b  r2.Vec
	color color.RGBA
}

type blit struct {
	tex components.TextureID
	dst image.Rectangle
}

// fakeCanvas records every draw call.
type fakeCanvas struct {
	begun   int
	ended   int
	sprites []drawnSprite
	lines   []drawnLine
	blits   []blit
}

func (c *fakeCanvas) BeginWorld(*camera.Camera) { c.begun++ }
func (c *fakeCanvas) EndWorld()                 { c.ended++ }

func (c *fakeCanvas) DrawSprite(tex components.TextureID, position, _, _ r2.Vec, angle float64) {
	c.sprites = append(c.sprites, drawnSprite{tex: tex, position: position, angle: angle})
}

func (c *fakeCanvas) DrawLine(a, b r2.Vec, _ float64, col color.RGBA) {
	c.lines = append(c.lines, drawnLine{a: a, b: b, color: col})
}

func (c *fakeCanvas) TileSurface(tex components.TextureID) tilemap.Surface {
	return surfaceFunc(func(_ *tilemap.Image, dst image.Rectangle) {
		c.blits = append(c.blits, blit{tex: tex, dst: dst})
	})
}

func (c *fakeCanvas) linesOf(col color.RGBA) int {
	n := 0
	for _, l := range c.lines {
		if l.color == col {
			n++
		}
	}
	return n
}

type surfaceFunc func(img *tilemap.Image, dst image.Rectangle)

func (f surfaceFunc) Blit(img *tilemap.Image, dst image.Rectangle) { f(img, dst) }

// fakeAssets hands out sequential texture IDs.
type fakeAssets struct {
	next     components.TextureID
	shipPx   r2.Vec
	created  map[components.TextureID]image.Point
	images   []string
	failLoad bool
}

func newFakeAssets() *fakeAssets {
	return &fakeAssets{shipPx: r2.Vec{X: 32, Y: 32}, created: make(map[components.TextureID]image.Point)}
}

func (f *fakeAssets) LoadTexture(path string) (components.TextureID, r2.Vec, error) {
	if f.failLoad {
		return 0, r2.Vec{}, fmt.Errorf("open %s: no such file", path)
	}
	f.next++
	return f.next, f.shipPx, nil
}

func (f *fakeAssets) NewTexture(w, h int) components.TextureID {
	f.next++
	f.created[f.next] = image.Pt(w, h)
	return f.next
}

func (f *fakeAssets) LoadImage(path string) (*tilemap.Image, error) {
	f.images = append(f.images, path)
	return tilemap.NewImage(32, 32), nil
}

// recorder logs every phase call it receives.
type recorder struct {
	name string
	log  *[]string
}

func (*recorder) component() {}

func (r *recorder) FixedUpdate(EntityID, *App)   { *r.log = append(*r.log, r.name+":fixed") }
func (r *recorder) PhysicsUpdate(EntityID, *App) { *r.log = append(*r.log, r.name+":physics") }
func (r *recorder) FrameUpdate(EntityID, *App)   { *r.log = append(*r.log, r.name+":frame") }

// hook runs a function during the fixed phase.
type hook struct {
	fixed func(self EntityID, app *App)
}

func (*hook) component() {}

func (h *hook) FixedUpdate(self EntityID, app *App) {
	if h.fixed != nil {
		h.fixed(self, app)
	}
}

func box(half float64) physics.Shape {
	return physics.Single(physics.Rect(r2.Vec{X: -half, Y: -half}, r2.Vec{X: half, Y: half}))
}

// spawnStatic adds an entity with a static body and no colliders.
func spawnStatic(app *App, name string, comps ...Component) EntityID {
	return app.Spawn(EntityDef{
		Name:       name,
		Body:       physics.BodyDef{Type: physics.Static},
		Components: comps,
	})
}

// spawnBox adds a dynamic 2x2 box of mass 4 at position.
func spawnBox(app *App, name string, position r2.Vec, comps ...Component) EntityID {
	return app.Spawn(EntityDef{
		Name:       name,
		Body:       physics.BodyDef{Type: physics.Dynamic, Position: position},
		Collider:   physics.DefaultColliderDef(box(1)),
		Texture:    1,
		Size:       r2.Vec{X: 2, Y: 2},
		Offset:     r2.Vec{X: 0.5, Y: 0.5},
		Components: comps,
	})
}
