// Package renderer draws the simulation with raylib. It implements the
// game's Canvas, the scene's Assets and the input Source.
package renderer

import (
	"fmt"
	"image"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spacemadness/components"
	"github.com/pthm-cable/spacemadness/tilemap"
)

// TextureStore owns every GPU texture handed out by ID.
// Must be used after the raylib window is created.
type TextureStore struct {
	textures map[components.TextureID]rl.Texture2D
	next     components.TextureID
}

// NewTextureStore creates an empty store.
func NewTextureStore() *TextureStore {
	return &TextureStore{textures: make(map[components.TextureID]rl.Texture2D)}
}

func (s *TextureStore) add(tex rl.Texture2D) components.TextureID {
	s.next++
	s.textures[s.next] = tex
	return s.next
}

// Get returns the texture for an ID.
func (s *TextureStore) Get(id components.TextureID) (rl.Texture2D, bool) {
	tex, ok := s.textures[id]
	return tex, ok
}

// LoadTexture uploads an image file and returns its ID and pixel size.
func (s *TextureStore) LoadTexture(path string) (components.TextureID, r2.Vec, error) {
	tex := rl.LoadTexture(path)
	if tex.ID == 0 {
		return 0, r2.Vec{}, fmt.Errorf("loading texture %s", path)
	}
	rl.SetTextureFilter(tex, rl.FilterPoint)
	slog.Debug("texture_loaded", "path", path, "width", tex.Width, "height", tex.Height)
	return s.add(tex), r2.Vec{X: float64(tex.Width), Y: float64(tex.Height)}, nil
}

// NewTexture creates a transparent texture of the given pixel size.
func (s *TextureStore) NewTexture(width, height int) components.TextureID {
	img := rl.GenImageColor(width, height, rl.Blank)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(tex, rl.FilterPoint)
	return s.add(tex)
}

// LoadImage reads an image file into CPU memory for tile blits.
func (s *TextureStore) LoadImage(path string) (*tilemap.Image, error) {
	img := rl.LoadImage(path)
	if img == nil || img.Width == 0 {
		return nil, fmt.Errorf("loading image %s", path)
	}
	defer rl.UnloadImage(img)

	colors := rl.LoadImageColors(img)
	defer rl.UnloadImageColors(colors)
	out := tilemap.NewImage(int(img.Width), int(img.Height))
	copy(out.Pixels, colors)
	return out, nil
}

// Unload frees every texture.
func (s *TextureStore) Unload() {
	for id, tex := range s.textures {
		rl.UnloadTexture(tex)
		delete(s.textures, id)
	}
}

// textureSurface writes tile images into part of a texture.
type textureSurface struct {
	tex rl.Texture2D
}

// Blit uploads img into the dst pixel rectangle.
func (t textureSurface) Blit(img *tilemap.Image, dst image.Rectangle) {
	if img == nil || len(img.Pixels) != dst.Dx()*dst.Dy() {
		return
	}
	rec := rl.Rectangle{
		X:      float32(dst.Min.X),
		Y:      float32(dst.Min.Y),
		Width:  float32(dst.Dx()),
		Height: float32(dst.Dy()),
	}
	rl.UpdateTextureRec(t.tex, rec, img.Pixels)
}
