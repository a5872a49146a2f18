package renderer

import (
	"image"
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spacemadness/camera"
	"github.com/pthm-cable/spacemadness/components"
	"github.com/pthm-cable/spacemadness/tilemap"
)

// Canvas draws world-space primitives through a raylib 2D camera.
type Canvas struct {
	store *TextureStore
}

// NewCanvas creates a canvas drawing textures from store.
func NewCanvas(store *TextureStore) *Canvas {
	return &Canvas{store: store}
}

// Camera2D converts the world camera into raylib's.
func Camera2D(cam *camera.Camera) rl.Camera2D {
	return rl.Camera2D{
		Offset: rl.Vector2{X: float32(cam.ViewportW / 2), Y: float32(cam.ViewportH / 2)},
		Target: vec(cam.Target),
		Zoom:   float32(cam.Zoom),
	}
}

// BeginWorld starts world-space drawing.
func (c *Canvas) BeginWorld(cam *camera.Camera) {
	rl.BeginMode2D(Camera2D(cam))
}

// EndWorld returns to screen-space drawing.
func (c *Canvas) EndWorld() {
	rl.EndMode2D()
}

// DrawSprite draws a whole texture scaled to size, rotated about anchor.
func (c *Canvas) DrawSprite(id components.TextureID, position, size, anchor r2.Vec, angle float64) {
	tex, ok := c.store.Get(id)
	if !ok {
		return
	}
	src := rl.Rectangle{Width: float32(tex.Width), Height: float32(tex.Height)}
	dst := rl.Rectangle{
		X:      float32(position.X),
		Y:      float32(position.Y),
		Width:  float32(size.X),
		Height: float32(size.Y),
	}
	rl.DrawTexturePro(tex, src, dst, vec(anchor), float32(angle*180/math.Pi), rl.White)
}

// DrawLine draws a segment thickness world units wide.
func (c *Canvas) DrawLine(a, b r2.Vec, thickness float64, col color.RGBA) {
	rl.DrawLineEx(vec(a), vec(b), float32(thickness), col)
}

// TileSurface returns a blit target over a texture's pixels.
func (c *Canvas) TileSurface(id components.TextureID) tilemap.Surface {
	tex, ok := c.store.Get(id)
	if !ok {
		return discard{}
	}
	return textureSurface{tex: tex}
}

type discard struct{}

func (discard) Blit(*tilemap.Image, image.Rectangle) {}

func vec(v r2.Vec) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}
