package tilemap

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSurface struct {
	blits []image.Rectangle
}

func (r *recordingSurface) Blit(img *Image, dst image.Rectangle) {
	r.blits = append(r.blits, dst)
}

func solidLoader(size int) ImageLoader {
	return func(name string) (*Image, error) {
		img := NewImage(size, size)
		for i := range img.Pixels {
			img.Pixels[i] = color.RGBA{R: 200, A: 255}
		}
		return img, nil
	}
}

func newTestMap(t *testing.T, w, h int) *TileMap {
	t.Helper()
	cat, err := LoadCatalog(solidLoader(16), 16)
	require.NoError(t, err)
	m, err := New(w, h, cat)
	require.NoError(t, err)
	return m
}

func TestNewRejectsBadSize(t *testing.T) {
	for _, size := range [][2]int{{0, 4}, {4, 0}, {-1, -1}} {
		_, err := New(size[0], size[1], nil)
		assert.ErrorIs(t, err, ErrInvalidSize, "size %v", size)
	}
}

func TestNewStartsEmptyAndClean(t *testing.T) {
	m := newTestMap(t, 3, 5)
	w, h := m.Size()
	assert.Equal(t, 3, w)
	assert.Equal(t, 5, h)
	assert.Equal(t, 0, m.Dirty())

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			tile, ok := m.Get(Coord{X: x, Y: y})
			require.True(t, ok)
			assert.Equal(t, Empty, tile.Type)
		}
	}
}

func TestOutOfRangeIsNoOp(t *testing.T) {
	m := newTestMap(t, 16, 16)
	outside := []Coord{{X: -1, Y: 0}, {X: 16, Y: 0}, {X: 0, Y: 16}, {X: 3, Y: -2}, {X: 16, Y: 16}}

	for _, c := range outside {
		_, ok := m.Get(c)
		assert.False(t, ok, "get %v", c)
		assert.Nil(t, m.GetMut(c), "get_mut %v", c)
		assert.False(t, m.Set(c, Tile{Type: Wall}), "set %v", c)
		assert.False(t, m.MarkDirty(c), "mark_dirty %v", c)
	}
	assert.Equal(t, 0, m.Dirty())
}

func TestMarkDirtyChecksEachAxis(t *testing.T) {
	m := newTestMap(t, 4, 4)

	// Out of range on one axis only must still be rejected.
	assert.False(t, m.MarkDirty(Coord{X: 10, Y: 1}))
	assert.False(t, m.MarkDirty(Coord{X: 1, Y: 10}))
	assert.True(t, m.MarkDirty(Coord{X: 1, Y: 1}))
	assert.Equal(t, 1, m.Dirty())
}

func TestSetFlushScenario(t *testing.T) {
	m := newTestMap(t, 16, 16)
	require.True(t, m.Set(Coord{X: 1, Y: 1}, Tile{Type: Wall}))
	assert.Equal(t, 1, m.Dirty())

	surf := &recordingSurface{}
	n := m.FlushToSurface(surf)

	assert.Equal(t, 1, n)
	require.Len(t, surf.blits, 1)
	assert.Equal(t, image.Rect(16, 16, 32, 32), surf.blits[0])
	assert.Equal(t, 0, m.Dirty())

	// Nothing changed since the last flush.
	assert.Equal(t, 0, m.FlushToSurface(surf))
	assert.Len(t, surf.blits, 1)
}

func TestFlushSkipsImagelessTypes(t *testing.T) {
	m := newTestMap(t, 4, 4)
	m.Set(Coord{X: 0, Y: 0}, Tile{Type: Empty})
	m.Set(Coord{X: 2, Y: 3}, Tile{Type: Wall})

	surf := &recordingSurface{}
	assert.Equal(t, 1, m.FlushToSurface(surf))
	assert.Equal(t, []image.Rectangle{image.Rect(32, 48, 48, 64)}, surf.blits)
	assert.Equal(t, 0, m.Dirty())
}

func TestSetSameCellTwiceBlitsOnce(t *testing.T) {
	m := newTestMap(t, 4, 4)
	c := Coord{X: 3, Y: 0}
	m.Set(c, Tile{Type: Wall})
	m.Set(c, Tile{Type: Wall})
	m.MarkDirty(c)

	surf := &recordingSurface{}
	assert.Equal(t, 1, m.FlushToSurface(surf))
}

func TestGetMutThenMarkDirty(t *testing.T) {
	m := newTestMap(t, 4, 4)
	c := Coord{X: 2, Y: 2}

	m.GetMut(c).Type = Wall
	assert.False(t, m.IsDirty(c))

	m.MarkDirty(c)
	assert.True(t, m.IsDirty(c))

	tile, _ := m.Get(c)
	assert.Equal(t, Wall, tile.Type)
}

func TestDrainOrderAndClear(t *testing.T) {
	m := newTestMap(t, 4, 4)
	m.Set(Coord{X: 3, Y: 1}, Tile{Type: Wall})
	m.Set(Coord{X: 0, Y: 2}, Tile{Type: Wall})
	m.Set(Coord{X: 1, Y: 1}, Tile{Type: Empty})

	var seen []Coord
	m.Drain(func(c Coord, _ Tile) { seen = append(seen, c) })

	assert.Equal(t, []Coord{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 0, Y: 2}}, seen)
	assert.Equal(t, 0, m.Dirty())
}

func TestFillClipsToGrid(t *testing.T) {
	m := newTestMap(t, 4, 4)
	n := m.Fill(image.Rect(2, 2, 10, 10), Tile{Type: Wall})
	assert.Equal(t, 4, n)
	assert.Equal(t, 4, m.Dirty())
}

func TestLoadCatalog(t *testing.T) {
	var names []string
	cat, err := LoadCatalog(func(name string) (*Image, error) {
		names = append(names, name)
		return NewImage(32, 32), nil
	}, 16)
	require.NoError(t, err)

	assert.Equal(t, []string{"wall"}, names)
	assert.Nil(t, cat.Image(Empty))
	require.NotNil(t, cat.Image(Wall))
	assert.Equal(t, 16, cat.Image(Wall).Width)

	boom := errors.New("boom")
	_, err = LoadCatalog(func(string) (*Image, error) { return nil, boom }, 16)
	assert.ErrorIs(t, err, boom)
}

func TestImageSub(t *testing.T) {
	img := NewImage(2, 2)
	img.Pixels[3] = color.RGBA{G: 9, A: 255}

	sub := img.Sub(image.Rect(1, 1, 3, 3))
	assert.Equal(t, 2, sub.Width)
	assert.Equal(t, color.RGBA{G: 9, A: 255}, sub.Pixels[0])
	assert.Equal(t, color.RGBA{}, sub.Pixels[3])
}

func TestTileCollider(t *testing.T) {
	_, ok := Empty.Collider(Coord{X: 1, Y: 1}, 8)
	assert.False(t, ok)

	piece, ok := Wall.Collider(Coord{X: 1, Y: 2}, 8)
	require.True(t, ok)
	assert.InDelta(t, 64.0, piece.Area(), 1e-9)
	for _, v := range piece.Verts() {
		assert.True(t, v.X >= 8 && v.X <= 16 && v.Y >= 16 && v.Y <= 24, "vertex %v", v)
	}
}
