// Package tilemap implements a fixed-size grid of typed tiles that tracks
// which cells changed since the last flush to a presentation surface.
package tilemap

import (
	"errors"
	"fmt"
	"image"
	"sort"
)

// ErrInvalidSize is returned for non-positive map or tile sizes.
var ErrInvalidSize = errors.New("tilemap: size must be positive")

// Surface receives partial image writes addressed in texture pixels.
type Surface interface {
	Blit(img *Image, dst image.Rectangle)
}

// TileMap is a width x height grid stored column-major: contents[x][y].
type TileMap struct {
	contents [][]Tile
	dirty    map[Coord]struct{}
	catalog  *Catalog
}

// New creates a map with every cell Empty and nothing dirty.
func New(width, height int, catalog *Catalog) (*TileMap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, width, height)
	}
	contents := make([][]Tile, width)
	for x := range contents {
		contents[x] = make([]Tile, height)
	}
	return &TileMap{
		contents: contents,
		dirty:    make(map[Coord]struct{}),
		catalog:  catalog,
	}, nil
}

// Size returns (width, height). Every column has the same length.
func (m *TileMap) Size() (int, int) {
	return len(m.contents), len(m.contents[0])
}

// InBounds reports whether c lies inside the grid.
func (m *TileMap) InBounds(c Coord) bool {
	w, h := m.Size()
	return c.X >= 0 && c.X < w && c.Y >= 0 && c.Y < h
}

// Get returns the tile at c, or false if c is outside the grid.
func (m *TileMap) Get(c Coord) (Tile, bool) {
	if !m.InBounds(c) {
		return Tile{}, false
	}
	return m.contents[c.X][c.Y], true
}

// GetMut returns a pointer to the tile at c, or nil if c is outside the grid.
// Writes through the pointer are not tracked; follow them with MarkDirty.
func (m *TileMap) GetMut(c Coord) *Tile {
	if !m.InBounds(c) {
		return nil
	}
	return &m.contents[c.X][c.Y]
}

// Set writes the tile at c and marks it dirty. Returns false, changing
// nothing, if c is outside the grid.
func (m *TileMap) Set(c Coord, t Tile) bool {
	p := m.GetMut(c)
	if p == nil {
		return false
	}
	*p = t
	m.dirty[c] = struct{}{}
	return true
}

// MarkDirty queues c for the next flush without changing it. Returns false
// if c is outside the grid on either axis.
func (m *TileMap) MarkDirty(c Coord) bool {
	if !m.InBounds(c) {
		return false
	}
	m.dirty[c] = struct{}{}
	return true
}

// Fill sets every in-bounds cell of r, given in tile coordinates, and
// returns how many cells were written.
func (m *TileMap) Fill(r image.Rectangle, t Tile) int {
	w, h := m.Size()
	r = r.Intersect(image.Rect(0, 0, w, h))
	n := 0
	for x := r.Min.X; x < r.Max.X; x++ {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			m.Set(Coord{X: x, Y: y}, t)
			n++
		}
	}
	return n
}

// Dirty returns the number of cells waiting for a flush.
func (m *TileMap) Dirty() int { return len(m.dirty) }

// IsDirty reports whether c is waiting for a flush.
func (m *TileMap) IsDirty(c Coord) bool {
	_, ok := m.dirty[c]
	return ok
}

// Drain calls fn once per dirty cell in row-major order, then clears the
// dirty set. fn must not mutate the map.
func (m *TileMap) Drain(fn func(Coord, Tile)) {
	coords := make([]Coord, 0, len(m.dirty))
	for c := range m.dirty {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})
	clear(m.dirty)
	for _, c := range coords {
		fn(c, m.contents[c.X][c.Y])
	}
}

// FlushToSurface copies each dirty tile's image to the surface at
// coord * PixelSize and clears the dirty set. Types with no image are
// skipped. Returns the number of blits.
func (m *TileMap) FlushToSurface(s Surface) int {
	blits := 0
	m.Drain(func(c Coord, t Tile) {
		if m.BlitTile(s, c, t) {
			blits++
		}
	})
	return blits
}

// PixelSize returns the tile edge in texture pixels, or 0 without a catalog.
func (m *TileMap) PixelSize() int {
	if m.catalog == nil {
		return 0
	}
	return m.catalog.PixelSize()
}

// PixelBounds returns the surface rectangle covered by the tile at c.
func (m *TileMap) PixelBounds(c Coord) image.Rectangle {
	p := m.PixelSize()
	return image.Rect(c.X*p, c.Y*p, (c.X+1)*p, (c.Y+1)*p)
}

// BlitTile copies the image of t to the surface region of c. Returns false
// if the type has no image.
func (m *TileMap) BlitTile(s Surface, c Coord, t Tile) bool {
	img := m.catalog.Image(t.Type)
	if img == nil {
		return false
	}
	s.Blit(img, m.PixelBounds(c))
	return true
}
