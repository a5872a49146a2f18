package game

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spacemadness/components"
	"github.com/pthm-cable/spacemadness/physics"
	"github.com/pthm-cable/spacemadness/tilemap"
)

// Assets loads and creates textures for the scene.
type Assets interface {
	// LoadTexture loads an image file as a texture and returns its size in pixels.
	LoadTexture(path string) (components.TextureID, r2.Vec, error)
	// NewTexture creates a blank, transparent texture.
	NewTexture(width, height int) components.TextureID
	// LoadImage decodes an image file for CPU-side blits.
	LoadImage(path string) (*tilemap.Image, error)
}

// Scene entity names.
const (
	PlayerName = "player"
	DroneName  = "drone"
	MapName    = "map"
)

const (
	noiseScale = 0.35 // Noise samples per tile
	clearance  = 24.0 // World units kept free of walls around spawn points
)

// Scene holds the entities NewScene created.
type Scene struct {
	Player EntityID
	Drone  EntityID
	Map    EntityID
	Tiles  *TileMap
}

// ShipShape returns the ship hull as four convex pieces, nose along +X.
func ShipShape() physics.Shape {
	return physics.Compound(
		physics.MustConvex(
			r2.Vec{X: -3, Y: 2}, r2.Vec{X: -4, Y: 3}, r2.Vec{X: -8, Y: 3},
			r2.Vec{X: -8, Y: -3}, r2.Vec{X: -4, Y: -3}, r2.Vec{X: -3, Y: -2},
		),
		physics.MustConvex(
			r2.Vec{X: -2, Y: 4}, r2.Vec{X: -3, Y: 3}, r2.Vec{X: -3, Y: -3}, r2.Vec{X: -2, Y: -4},
		),
		physics.MustConvex(
			r2.Vec{X: 4, Y: 3}, r2.Vec{X: -1, Y: 8}, r2.Vec{X: -2, Y: 8},
			r2.Vec{X: -2, Y: -8}, r2.Vec{X: -1, Y: -8}, r2.Vec{X: 4, Y: -3},
		),
		physics.MustConvex(
			r2.Vec{X: 8, Y: 1}, r2.Vec{X: 6, Y: 3}, r2.Vec{X: 4, Y: 3},
			r2.Vec{X: 4, Y: -3}, r2.Vec{X: 6, Y: -3}, r2.Vec{X: 8, Y: -1},
		),
	)
}

// NewScene spawns the startup scene: the player ship, a passive drone ship
// and a tile map with noise-scattered walls.
func NewScene(a *App, assets Assets) (*Scene, error) {
	cfg := a.cfg
	scale := float64(cfg.Tiles.PixelScale)

	shipTex, shipPx, err := assets.LoadTexture(cfg.Assets.Ship)
	if err != nil {
		return nil, fmt.Errorf("loading ship texture: %w", err)
	}
	shipSize := r2.Scale(1/scale, shipPx)
	center := r2.Vec{X: 0.5, Y: 0.5}

	catalog, err := tilemap.LoadCatalog(func(name string) (*tilemap.Image, error) {
		path, ok := tileImagePath(cfg.Assets.Wall, name)
		if !ok {
			return nil, fmt.Errorf("no asset configured for tile image %q", name)
		}
		return assets.LoadImage(path)
	}, cfg.Derived.TilePixelSize)
	if err != nil {
		return nil, err
	}

	s := &Scene{}
	s.Player = a.Spawn(EntityDef{
		Name:     PlayerName,
		Body:     physics.BodyDef{Type: physics.Dynamic},
		Collider: physics.DefaultColliderDef(ShipShape()),
		Texture:  shipTex,
		Size:     shipSize,
		Offset:   center,
		Components: []Component{
			&FaceMouse{Gain: math.Pi},
			&Motion{Power: cfg.Scene.ShipPower, Brake: cfg.Scene.ShipBrake, Emitter: r2.Vec{X: -8}},
			&CameraFollow{},
		},
	})

	dronePos := r2.Vec{X: 40}
	s.Drone = a.Spawn(EntityDef{
		Name:     DroneName,
		Body:     physics.BodyDef{Type: physics.Dynamic, Position: dronePos},
		Collider: physics.DefaultColliderDef(ShipShape()),
		Texture:  shipTex,
		Size:     shipSize,
		Offset:   center,
	})

	grid, err := tilemap.New(cfg.Scene.MapWidth, cfg.Scene.MapHeight, catalog)
	if err != nil {
		return nil, fmt.Errorf("creating tile map: %w", err)
	}
	origin := r2.Vec{X: cfg.Scene.MapOriginX, Y: cfg.Scene.MapOriginY}
	walls := scatterWalls(grid, cfg.Scene.Seed, cfg.Scene.WallDensity, origin, cfg.Tiles.TexelSize,
		[]r2.Vec{{}, dronePos})
	grid.Set(tilemap.Coord{X: 1, Y: 1}, tilemap.Tile{Type: tilemap.Wall})

	px := cfg.Derived.TilePixelSize
	s.Tiles = NewTileMap(grid, cfg.Tiles.TexelSize)
	s.Map = a.Spawn(EntityDef{
		Name:       MapName,
		Body:       physics.BodyDef{Type: physics.Static, Position: origin},
		Collider:   physics.ColliderDef{},
		Texture:    assets.NewTexture(cfg.Scene.MapWidth*px, cfg.Scene.MapHeight*px),
		Size:       r2.Vec{X: float64(cfg.Scene.MapWidth * cfg.Tiles.TexelSize), Y: float64(cfg.Scene.MapHeight * cfg.Tiles.TexelSize)},
		Components: []Component{s.Tiles},
	})

	slog.Info("scene_created",
		"seed", cfg.Scene.Seed,
		"map_width", cfg.Scene.MapWidth,
		"map_height", cfg.Scene.MapHeight,
		"walls", walls+1,
		"entities", len(a.order),
	)
	return s, nil
}

// tileImagePath maps a tile image key to its configured file.
func tileImagePath(wall, name string) (string, bool) {
	switch name {
	case "wall":
		return wall, wall != ""
	}
	return "", false
}

// scatterWalls sets Wall on cells where normalized simplex noise exceeds
// threshold, leaving cells near keepClear empty. A threshold of 0 or less
// disables scattering. Returns the number of walls placed.
func scatterWalls(m *tilemap.TileMap, seed int64, threshold float64, origin r2.Vec, texelSize int, keepClear []r2.Vec) int {
	if threshold <= 0 {
		return 0
	}
	noise := opensimplex.New(seed)
	w, h := m.Size()
	s := float64(texelSize)

	placed := 0
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			n := (noise.Eval2(float64(x)*noiseScale, float64(y)*noiseScale) + 1) / 2
			if n <= threshold {
				continue
			}
			cellCenter := r2.Add(origin, r2.Vec{X: (float64(x) + 0.5) * s, Y: (float64(y) + 0.5) * s})
			if nearAny(cellCenter, keepClear, clearance) {
				continue
			}
			m.Set(tilemap.Coord{X: x, Y: y}, tilemap.Tile{Type: tilemap.Wall})
			placed++
		}
	}
	return placed
}

func nearAny(p r2.Vec, points []r2.Vec, radius float64) bool {
	for _, q := range points {
		if r2.Norm(r2.Sub(p, q)) < radius {
			return true
		}
	}
	return false
}
