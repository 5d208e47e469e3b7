// Package components defines the ECS components stored for every entity.
package components

import (
	"github.com/pthm-cable/thrust/vec"
)

// Transform accumulates an entity's placement in the arena.
// The simulation core only ever translates it; rendering reads it as a whole.
type Transform struct {
	Position vec.Vec2 `inspect:"label"`
	Rotation float64  `inspect:"angle"` // radians
	Scale    vec.Vec2 `inspect:"skip"`
}

// Identity returns a transform at the origin with unit scale.
func Identity() Transform {
	return Transform{Scale: vec.New(1, 1)}
}

// Scaled returns t with its scale multiplied by (sx, sy).
func (t Transform) Scaled(sx, sy float64) Transform {
	t.Scale = vec.New(t.Scale.X*sx, t.Scale.Y*sy)
	return t
}

// Translate moves t by (dx, dy) in world space. Successive calls add up.
func (t Transform) Translate(dx, dy float64) Transform {
	t.Position = t.Position.Add(vec.New(dx, dy))
	return t
}

// Velocity is the per-tick displacement of an entity.
type Velocity struct {
	vec.Vec2 `inspect:"label"`
}

// Acceleration is the per-second change applied to Velocity.
type Acceleration struct {
	vec.Vec2 `inspect:"label"`
}
