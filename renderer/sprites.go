// Package renderer draws the arena with raylib. It is only used in windowed
// mode; the simulation itself never issues draw calls.
package renderer

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/thrust/camera"
	"github.com/pthm-cable/thrust/components"
	"github.com/pthm-cable/thrust/entity"
)

// SpriteRenderer owns loaded textures and draws entity views.
// It implements game.SpriteLoader.
type SpriteRenderer struct {
	textures map[uint32]rl.Texture2D
	tint     rl.Color
}

// NewSpriteRenderer creates an empty renderer. Textures can only be loaded
// after the raylib window exists.
func NewSpriteRenderer() *SpriteRenderer {
	return &SpriteRenderer{
		textures: make(map[uint32]rl.Texture2D),
		tint:     rl.White,
	}
}

// LoadSprite loads asset as a texture and sizes the sprite so its width is
// size pixels, keeping the texture's aspect ratio.
func (r *SpriteRenderer) LoadSprite(asset string, size float64) (components.Sprite, error) {
	if size <= 0 {
		return components.Sprite{}, fmt.Errorf("sprite %q: size must be positive, got %v", asset, size)
	}

	tex := rl.LoadTexture(asset)
	if !rl.IsTextureValid(tex) || tex.Width == 0 || tex.Height == 0 {
		return components.Sprite{}, fmt.Errorf("loading texture %q: not a readable image", asset)
	}
	r.textures[tex.ID] = tex

	return components.Sprite{
		Handle: tex.ID,
		Asset:  asset,
		Width:  size,
		Height: size * float64(tex.Height) / float64(tex.Width),
	}, nil
}

// Draw renders every visible view through the camera.
func (r *SpriteRenderer) Draw(views []entity.View, cam *camera.Camera) {
	for _, v := range views {
		half := math.Max(v.Sprite.Width, v.Sprite.Height) / 2
		if !cam.IsVisible(v.Transform.Position, half) {
			continue
		}

		sx, sy := cam.WorldToScreen(v.Transform.Position)
		w := float32(v.Sprite.Width * v.Transform.Scale.X * cam.Zoom)
		h := float32(v.Sprite.Height * v.Transform.Scale.Y * cam.Zoom)
		heading := headingOf(v)

		tex, ok := r.textures[v.Sprite.Handle]
		if !ok {
			drawOrientedTriangle(float32(sx), float32(sy), float32(heading), w/3, rl.SkyBlue)
			continue
		}

		src := rl.NewRectangle(0, 0, float32(tex.Width), float32(tex.Height))
		dst := rl.NewRectangle(float32(sx), float32(sy), w, h)
		origin := rl.NewVector2(w/2, h/2)
		rl.DrawTexturePro(tex, src, dst, origin, float32(heading*180/math.Pi), r.tint)
	}
}

// headingOf returns the direction of travel, or the transform's rotation when
// the entity is at rest.
func headingOf(v entity.View) float64 {
	if angle, ok := v.Velocity.Heading(); ok {
		return angle
	}
	return v.Transform.Rotation
}

// Unload frees all textures.
func (r *SpriteRenderer) Unload() {
	for id, tex := range r.textures {
		rl.UnloadTexture(tex)
		delete(r.textures, id)
	}
}

// drawOrientedTriangle draws a triangle pointing in the heading direction.
// Used for sprites without a texture.
func drawOrientedTriangle(x, y, heading, radius float32, color rl.Color) {
	cos := float32(math.Cos(float64(heading)))
	sin := float32(math.Sin(float64(heading)))

	front := rl.Vector2{X: x + cos*radius*1.5, Y: y + sin*radius*1.5}

	backAngle := float64(heading) + math.Pi*0.8
	backLeft := rl.Vector2{X: x + float32(math.Cos(backAngle))*radius, Y: y + float32(math.Sin(backAngle))*radius}

	backAngle = float64(heading) - math.Pi*0.8
	backRight := rl.Vector2{X: x + float32(math.Cos(backAngle))*radius, Y: y + float32(math.Sin(backAngle))*radius}

	// DrawTriangle requires counter-clockwise winding
	rl.DrawTriangle(front, backRight, backLeft, color)
	rl.DrawTriangleLines(front, backLeft, backRight, rl.White)
}
