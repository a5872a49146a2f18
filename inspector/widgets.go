package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Widget colors
var (
	ColorBarBg       = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill     = rl.Color{R: 100, G: 180, B: 100, A: 255}
	ColorBarLow      = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorText        = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorAngleBg     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorAngleNeedle = rl.Color{R: 255, G: 200, B: 100, A: 255}
	ColorBoolOn      = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff     = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

const (
	rowHeight   = 18
	angleSize   = 32
	valueOffset = 110
)

// FieldHeight returns the vertical space DrawField uses for f.
func FieldHeight(f Field) int32 {
	if f.Widget == WidgetAngle {
		return angleSize + 4
	}
	return rowHeight
}

// DrawField renders a field and returns the height used.
func DrawField(x, y int32, f Field) int32 {
	switch f.Widget {
	case WidgetBar:
		return drawBar(x, y, f)
	case WidgetAngle:
		if v, ok := FloatValue(f.Value); ok {
			return drawAngle(x, y, f.Name, v)
		}
	case WidgetBool:
		if v, ok := f.Value.(bool); ok {
			return drawBool(x, y, f.Name, v)
		}
	}
	rl.DrawText(f.Name, x, y, 14, ColorTextDim)
	rl.DrawText(f.Format(), x+valueOffset, y, 14, ColorText)
	return rowHeight
}

func drawBar(x, y int32, f Field) int32 {
	const barWidth, barHeight = 100, 14
	ratio := f.Fraction()

	rl.DrawText(f.Name, x, y, 14, ColorTextDim)
	barX := x + valueOffset
	rl.DrawRectangle(barX, y, barWidth, barHeight, ColorBarBg)
	fill := ColorBarFill
	if ratio < 0.3 {
		fill = ColorBarLow
	}
	rl.DrawRectangle(barX, y, int32(barWidth*ratio), barHeight, fill)
	rl.DrawText(f.Format(), barX+barWidth+5, y, 14, ColorTextDim)
	return rowHeight
}

// drawAngle renders a compass needle.
func drawAngle(x, y int32, name string, radians float64) int32 {
	cx := x + valueOffset + angleSize/2
	cy := y + angleSize/2

	rl.DrawText(name, x, y+angleSize/2-7, 14, ColorTextDim)
	rl.DrawCircle(cx, cy, angleSize/2, ColorAngleBg)
	rl.DrawCircleLines(cx, cy, angleSize/2, ColorTextDim)

	needle := float64(angleSize/2 - 3)
	rl.DrawLineEx(
		rl.Vector2{X: float32(cx), Y: float32(cy)},
		rl.Vector2{X: float32(float64(cx) + needle*math.Cos(radians)), Y: float32(float64(cy) + needle*math.Sin(radians))},
		2,
		ColorAngleNeedle,
	)
	rl.DrawText(fmt.Sprintf("%.0f°", radians*180/math.Pi), x+valueOffset+angleSize+5, y+angleSize/2-7, 14, ColorTextDim)
	return angleSize + 4
}

func drawBool(x, y int32, name string, value bool) int32 {
	const size = 14
	rl.DrawText(name, x, y, 14, ColorTextDim)

	c, text := ColorBoolOff, "OFF"
	if value {
		c, text = ColorBoolOn, "ON"
	}
	rl.DrawRectangle(x+valueOffset, y, size, size, c)
	rl.DrawText(text, x+valueOffset+size+5, y, 14, c)
	return rowHeight
}
