package tilemap

import (
	"fmt"
	"image"
	"image/color"

	"github.com/pthm-cable/spacemadness/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// TileType tags a cell. Its position in Types indexes the Catalog.
type TileType uint8

const (
	Empty TileType = iota
	Wall
)

// Types lists every tile type in catalog order.
var Types = [...]TileType{Empty, Wall}

func (t TileType) String() string {
	switch t {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	}
	return fmt.Sprintf("tile_type(%d)", uint8(t))
}

// ImageName returns the asset key of the type's source image, or "" if the
// type is never drawn.
func (t TileType) ImageName() string {
	switch t {
	case Wall:
		return "wall"
	}
	return ""
}

// Solid reports whether the type contributes a collider.
func (t TileType) Solid() bool {
	return t == Wall
}

// Collider returns the type's collision piece for a tile at c, in the map
// body's local space, or false if the type has none.
func (t TileType) Collider(c Coord, texelSize int) (physics.Convex, bool) {
	if !t.Solid() {
		return physics.Convex{}, false
	}
	s := float64(texelSize)
	min := r2.Vec{X: float64(c.X) * s, Y: float64(c.Y) * s}
	return physics.Rect(min, r2.Add(min, r2.Vec{X: s, Y: s})), true
}

// Tile is one grid cell.
type Tile struct {
	Type TileType
}

// Coord addresses a cell; X is the column and Y the row.
type Coord struct {
	X, Y int
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Image is a decoded RGBA image, row-major.
type Image struct {
	Width, Height int
	Pixels        []color.RGBA
}

// NewImage allocates a transparent image.
func NewImage(w, h int) *Image {
	return &Image{Width: w, Height: h, Pixels: make([]color.RGBA, w*h)}
}

// FromImage converts any image.Image.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	img := NewImage(b.Dx(), b.Dy())
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			img.Pixels[y*img.Width+x] = color.RGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
		}
	}
	return img
}

// Sub copies the part of the image inside r. Pixels outside the source
// stay transparent.
func (m *Image) Sub(r image.Rectangle) *Image {
	out := NewImage(r.Dx(), r.Dy())
	for y := 0; y < out.Height; y++ {
		sy := r.Min.Y + y
		if sy < 0 || sy >= m.Height {
			continue
		}
		for x := 0; x < out.Width; x++ {
			sx := r.Min.X + x
			if sx < 0 || sx >= m.Width {
				continue
			}
			out.Pixels[y*out.Width+x] = m.Pixels[sy*m.Width+sx]
		}
	}
	return out
}

// ImageLoader loads the source image registered under an asset key.
type ImageLoader func(name string) (*Image, error)

// Catalog holds one optional source image per TileType, cropped to a tile.
type Catalog struct {
	images    [len(Types)]*Image
	pixelSize int
}

// LoadCatalog loads the image of every type that has one and crops it to
// pixelSize x pixelSize.
func LoadCatalog(load ImageLoader, pixelSize int) (*Catalog, error) {
	if pixelSize <= 0 {
		return nil, fmt.Errorf("%w: pixel size %d", ErrInvalidSize, pixelSize)
	}
	c := &Catalog{pixelSize: pixelSize}
	for _, t := range Types {
		name := t.ImageName()
		if name == "" {
			continue
		}
		img, err := load(name)
		if err != nil {
			return nil, fmt.Errorf("loading %s tile image: %w", t, err)
		}
		c.images[t] = img.Sub(image.Rect(0, 0, pixelSize, pixelSize))
	}
	return c, nil
}

// Image returns the source image for a type, or nil if it has none.
func (c *Catalog) Image(t TileType) *Image {
	if c == nil || int(t) >= len(c.images) {
		return nil
	}
	return c.images[t]
}

// PixelSize returns the edge of one tile in texture pixels.
func (c *Catalog) PixelSize() int { return c.pixelSize }
