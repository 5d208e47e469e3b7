// Package systems contains the per-tick simulation systems.
package systems

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pthm-cable/thrust/entity"
	"github.com/pthm-cable/thrust/vec"
)

// ErrCollisionsNotImplemented is returned when collision handling is enabled.
var ErrCollisionsNotImplemented = errors.New("collision detection not implemented")

// ClampMode selects how velocity is limited.
type ClampMode int

const (
	// ClampMagnitude limits the length of the velocity vector.
	ClampMagnitude ClampMode = iota
	// ClampAxis limits |x| and then |y| independently.
	ClampAxis
)

func (m ClampMode) String() string {
	switch m {
	case ClampMagnitude:
		return "magnitude"
	case ClampAxis:
		return "axis"
	default:
		return fmt.Sprintf("ClampMode(%d)", int(m))
	}
}

// ParseClampMode parses "magnitude" or "axis".
func ParseClampMode(s string) (ClampMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "magnitude":
		return ClampMagnitude, nil
	case "axis":
		return ClampAxis, nil
	default:
		return 0, fmt.Errorf("unknown clamp mode %q", s)
	}
}

// PhysicsParams are the tunables of the integrator.
type PhysicsParams struct {
	Friction    float64   // per-tick velocity multiplier in (0, 1]
	MinVelocity float64   // clamp floor
	MaxVelocity float64   // clamp ceiling
	RestSpeed   float64   // speeds below this snap to zero; 0 disables
	Clamp       ClampMode

	// Collisions enables the collision pass after integration. The pass is
	// not implemented: with Collisions set, the first UpdateAll moves every
	// entity and then returns ErrCollisionsNotImplemented.
	Collisions bool
}

// DefaultPhysicsParams returns the stock tuning.
func DefaultPhysicsParams() PhysicsParams {
	return PhysicsParams{
		Friction:    0.95,
		MinVelocity: 0,
		MaxVelocity: 100,
		Clamp:       ClampMagnitude,
	}
}

// PhysicsSystem integrates acceleration into velocity and velocity into
// position once per tick.
type PhysicsSystem struct {
	params PhysicsParams
}

// NewPhysicsSystem creates a new physics system.
func NewPhysicsSystem(p PhysicsParams) *PhysicsSystem {
	return &PhysicsSystem{params: p}
}

// Params returns the current tuning.
func (s *PhysicsSystem) Params() PhysicsParams {
	return s.params
}

// Validate checks the parameters for consistency.
func (s *PhysicsSystem) Validate() error {
	p := s.params
	if !(p.Friction > 0 && p.Friction <= 1) {
		return fmt.Errorf("friction %v outside (0, 1]", p.Friction)
	}
	if p.MinVelocity < 0 {
		return fmt.Errorf("min velocity %v is negative", p.MinVelocity)
	}
	if p.MaxVelocity < p.MinVelocity {
		return fmt.Errorf("max velocity %v below min velocity %v", p.MaxVelocity, p.MinVelocity)
	}
	if p.RestSpeed < 0 {
		return fmt.Errorf("rest speed %v is negative", p.RestSpeed)
	}
	if p.Clamp != ClampMagnitude && p.Clamp != ClampAxis {
		return fmt.Errorf("invalid clamp mode %v", p.Clamp)
	}
	return nil
}

// Velocity returns the velocity after one tick of dt seconds under acc.
func (s *PhysicsSystem) Velocity(vel, acc vec.Vec2, dt float64) vec.Vec2 {
	p := s.params
	v := vel.Add(acc.Scale(dt)).Scale(p.Friction)

	switch p.Clamp {
	case ClampAxis:
		v = v.ClampOn(vec.AbsX, p.MinVelocity, p.MaxVelocity)
		v = v.ClampOn(vec.AbsY, p.MinVelocity, p.MaxVelocity)
	default:
		v = v.ClampMagnitude(p.MinVelocity, p.MaxVelocity)
	}

	if p.RestSpeed > 0 {
		v = v.WithMin(p.RestSpeed)
	}
	return v
}

// UpdateAll advances every entity in registry order by dt.
func (s *PhysicsSystem) UpdateAll(r *entity.Registry, dt time.Duration) error {
	secs := dt.Seconds()

	r.Each(func(i entity.Index, ref entity.Ref) {
		v := s.Velocity(ref.Velocity.Vec2, ref.Acceleration.Vec2, secs)
		ref.Velocity.Vec2 = v
		*ref.Transform = ref.Transform.Translate(v.X, v.Y)

		slog.Debug("integrated",
			"index", int(i),
			"acc", ref.Acceleration.Vec2,
			"vel", v,
			"pos", ref.Transform.Position,
		)
	})

	if s.params.Collisions {
		return s.updateCollisions(r)
	}
	return nil
}

func (s *PhysicsSystem) updateCollisions(r *entity.Registry) error {
	return fmt.Errorf("resolving %d entities: %w", r.Len(), ErrCollisionsNotImplemented)
}
