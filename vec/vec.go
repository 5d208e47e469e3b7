// Package vec provides the 2D vector algebra used by the simulation core.
//
// Vec2 is a value type: every operation returns a new vector and leaves the
// receiver untouched.
package vec

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Epsilon is the float64 machine epsilon. Magnitudes below it are treated as zero.
const Epsilon = 2.220446049250313e-16

const twoPi = 2 * math.Pi

// Vec2 is a geometric vector of two real components.
type Vec2 struct {
	X, Y float64
}

// New creates a vector from its components.
func New(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Origin returns the zero vector.
func Origin() Vec2 {
	return Vec2{}
}

// FromAngle returns the unit vector pointing at angle (radians).
// Angles grow clockwise on screen: 0 is right, Pi/2 is down.
func FromAngle(angle float64) Vec2 {
	return Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
}

func (v Vec2) toR2() r2.Vec { return r2.Vec{X: v.X, Y: v.Y} }

func fromR2(p r2.Vec) Vec2 { return Vec2{X: p.X, Y: p.Y} }

// Magnitude returns the Euclidean length of v.
func (v Vec2) Magnitude() float64 {
	return r2.Norm(v.toR2())
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return fromR2(r2.Add(v.toR2(), o.toR2()))
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return fromR2(r2.Sub(v.toR2(), o.toR2()))
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return fromR2(r2.Scale(s, v.toR2()))
}

// IsZero reports whether v is shorter than Epsilon.
func (v Vec2) IsZero() bool {
	return v.Magnitude() < Epsilon
}

// Direction returns the unit vector pointing the same way as v.
// A (near-)zero vector has no direction and yields the zero vector.
func (v Vec2) Direction() Vec2 {
	mag := v.Magnitude()
	if mag < Epsilon {
		return Origin()
	}
	return v.Scale(1 / mag)
}

// DirectionAngle returns the angle of v in [0, 2*Pi).
// The second result is false when v is (near-)zero.
func (v Vec2) DirectionAngle() (float64, bool) {
	if v.Magnitude() < Epsilon {
		return 0, false
	}

	x, y := v.X, v.Y
	if x == 0 {
		x = 0 // drop the sign of -0 so y/x is +Inf or -Inf as expected
	}

	t := math.Atan(y / x)
	var a float64
	switch {
	case x >= 0 && y >= 0:
		a = t
	case x < 0 && y >= 0:
		a = math.Pi/2 - t
	case x < 0 && y < 0:
		a = math.Pi + t
	default:
		a = twoPi + t
	}

	// 2*Pi + (-tiny) can round up to 2*Pi.
	if a >= twoPi {
		a -= twoPi
	}
	return a, true
}

// Heading returns the geometric angle of v in [0, 2*Pi), the way it should
// be drawn. Unlike DirectionAngle it is exact in every quadrant.
// The second result is false when v is (near-)zero.
func (v Vec2) Heading() (float64, bool) {
	if v.Magnitude() < Epsilon {
		return 0, false
	}
	a := math.Atan2(v.Y, v.X)
	if a < 0 {
		a += twoPi
	}
	if a >= twoPi {
		a -= twoPi
	}
	return a, true
}

// ChangeMagnitude returns a vector pointing like v with length m.
// A zero vector is stretched along the positive X axis.
func (v Vec2) ChangeMagnitude(m float64) Vec2 {
	dir := v.Direction()
	if dir.IsZero() {
		dir = Vec2{X: 1}
	}
	return dir.Scale(m)
}

// ChangeDirection rotates v to point at angle, preserving its length.
func (v Vec2) ChangeDirection(angle float64) Vec2 {
	return FromAngle(angle).Scale(v.Magnitude())
}

// ClampMagnitude rescales v so its length lies in [min, max].
func (v Vec2) ClampMagnitude(min, max float64) Vec2 {
	return v.ClampOn(Magnitude, min, max)
}

// ClampOn rescales v when measure(v) falls outside [min, max].
// Only the length changes; the direction is kept.
func (v Vec2) ClampOn(measure func(Vec2) float64, min, max float64) Vec2 {
	switch m := measure(v); {
	case m < min:
		return v.ChangeMagnitude(min)
	case m > max:
		return v.ChangeMagnitude(max)
	default:
		return v
	}
}

// WithMin snaps v to the origin when it is shorter than min.
func (v Vec2) WithMin(min float64) Vec2 {
	if v.Magnitude() < min {
		return Origin()
	}
	return v
}

// Magnitude is the length measure for ClampOn.
func Magnitude(v Vec2) float64 { return v.Magnitude() }

// AbsX measures the horizontal extent of v.
func AbsX(v Vec2) float64 { return math.Abs(v.X) }

// AbsY measures the vertical extent of v.
func AbsY(v Vec2) float64 { return math.Abs(v.Y) }

// ApproxEqual reports whether v and o differ by at most tol on each axis.
func (v Vec2) ApproxEqual(o Vec2, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol && math.Abs(v.Y-o.Y) <= tol
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%.4g, %.4g)", v.X, v.Y)
}

// LogValue implements slog.LogValuer.
func (v Vec2) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("x", v.X),
		slog.Float64("y", v.Y),
	)
}
