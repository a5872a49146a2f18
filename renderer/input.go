package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spacemadness/input"
)

// Input polls raylib's keyboard, mouse and window state.
type Input struct{}

func (Input) IsKeyDown(key input.Key) bool { return rl.IsKeyDown(int32(key)) }

func (Input) PointerPosition() r2.Vec {
	m := rl.GetMousePosition()
	return r2.Vec{X: float64(m.X), Y: float64(m.Y)}
}

func (Input) ScreenSize() r2.Vec {
	return r2.Vec{X: float64(rl.GetScreenWidth()), Y: float64(rl.GetScreenHeight())}
}
