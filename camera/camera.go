// Package camera provides a 2D camera that follows the player through an
// unbounded arena.
package camera

import (
	"github.com/pthm-cable/thrust/vec"
)

// Camera controls the viewport into the arena.
type Camera struct {
	// Center is the camera center in world coordinates
	Center vec.Vec2

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Zoom constraints
	MinZoom, MaxZoom float64

	// Smoothing is the fraction of the gap to the target closed per Follow
	// call. 1 snaps; 0 freezes the camera.
	Smoothing float64
}

// New creates a camera centered on the origin with 1:1 zoom.
func New(viewportW, viewportH float64) *Camera {
	return &Camera{
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinZoom:   0.25,
		MaxZoom:   4.0,
		Smoothing: 1.0,
	}
}

// WorldToScreen converts a world position to screen coordinates.
func (c *Camera) WorldToScreen(p vec.Vec2) (sx, sy float64) {
	d := p.Sub(c.Center).Scale(c.Zoom)
	return c.ViewportW/2 + d.X, c.ViewportH/2 + d.Y
}

// ScreenToWorld converts screen coordinates to a world position.
func (c *Camera) ScreenToWorld(sx, sy float64) vec.Vec2 {
	d := vec.New(sx-c.ViewportW/2, sy-c.ViewportH/2).Scale(1 / c.Zoom)
	return c.Center.Add(d)
}

// IsVisible returns true if a box of the given half-size centered at p
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(p vec.Vec2, halfSize float64) bool {
	d := p.Sub(c.Center)
	halfW := c.ViewportW/(2*c.Zoom) + halfSize
	halfH := c.ViewportH/(2*c.Zoom) + halfSize
	return vec.AbsX(d) <= halfW && vec.AbsY(d) <= halfH
}

// Follow moves the camera toward target by the smoothing fraction.
func (c *Camera) Follow(target vec.Vec2) {
	s := clamp(c.Smoothing, 0, 1)
	c.Center = c.Center.Add(target.Sub(c.Center).Scale(s))
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float64) {
	c.Center = c.Center.Add(vec.New(dx, dy).Scale(1 / c.Zoom))
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the origin at 1:1 zoom.
func (c *Camera) Reset() {
	c.Center = vec.Origin()
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float64) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	return c.Center.X - halfW, c.Center.Y - halfH, c.Center.X + halfW, c.Center.Y + halfH
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
