package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/thrust/camera"
	"github.com/pthm-cable/thrust/vec"
)

// GridRenderer draws a world-aligned grid so motion is visible when the
// camera follows the player.
type GridRenderer struct {
	spacing   float64
	baseColor rl.Color
	lineColor rl.Color
	axisColor rl.Color
}

// NewGridRenderer creates a grid with the given world spacing.
func NewGridRenderer(spacing float64, baseR, baseG, baseB uint8) *GridRenderer {
	if spacing <= 0 {
		spacing = 100
	}
	base := rl.NewColor(baseR, baseG, baseB, 255)
	return &GridRenderer{
		spacing:   spacing,
		baseColor: base,
		lineColor: rl.Fade(rl.RayWhite, 0.08),
		axisColor: rl.Fade(rl.RayWhite, 0.25),
	}
}

// Draw clears the screen and draws the grid lines visible through cam.
func (b *GridRenderer) Draw(cam *camera.Camera) {
	rl.ClearBackground(b.baseColor)

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()

	for x := math.Floor(minX/b.spacing) * b.spacing; x <= maxX; x += b.spacing {
		b.line(cam, vec.New(x, minY), vec.New(x, maxY), x == 0)
	}
	for y := math.Floor(minY/b.spacing) * b.spacing; y <= maxY; y += b.spacing {
		b.line(cam, vec.New(minX, y), vec.New(maxX, y), y == 0)
	}
}

func (b *GridRenderer) line(cam *camera.Camera, from, to vec.Vec2, axis bool) {
	x0, y0 := cam.WorldToScreen(from)
	x1, y1 := cam.WorldToScreen(to)
	col := b.lineColor
	if axis {
		col = b.axisColor
	}
	rl.DrawLineV(rl.NewVector2(float32(x0), float32(y0)), rl.NewVector2(float32(x1), float32(y1)), col)
}
