// Package action turns input events into commands and applies them to the
// player entity.
package action

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/thrust/entity"
	"github.com/pthm-cable/thrust/flags"
	"github.com/pthm-cable/thrust/input"
	"github.com/pthm-cable/thrust/vec"
)

// Action is a control command targeting the player's acceleration.
// The set of variants is closed: SetAccelerationDirection and
// SetAccelerationMagnitude.
type Action interface {
	apply(acc vec.Vec2) vec.Vec2
	String() string
}

// SetAccelerationDirection points the acceleration at Angle (radians),
// keeping its magnitude.
type SetAccelerationDirection struct {
	Angle float64
}

func (a SetAccelerationDirection) apply(acc vec.Vec2) vec.Vec2 {
	return acc.ChangeDirection(a.Angle)
}

func (a SetAccelerationDirection) String() string {
	return fmt.Sprintf("SetAccelerationDirection(%.4f)", a.Angle)
}

// SetAccelerationMagnitude sets the acceleration length to Value, keeping its
// direction. From rest the acceleration points along +X.
type SetAccelerationMagnitude struct {
	Value float64
}

func (a SetAccelerationMagnitude) apply(acc vec.Vec2) vec.Vec2 {
	return acc.ChangeMagnitude(a.Value)
}

func (a SetAccelerationMagnitude) String() string {
	return fmt.Sprintf("SetAccelerationMagnitude(%.4f)", a.Value)
}

var (
	// ErrNoPlayer is returned when no entity carries the Player flag.
	ErrNoPlayer = errors.New("no player entity")
	// ErrAmbiguousPlayer is returned when several entities carry the Player flag.
	ErrAmbiguousPlayer = errors.New("more than one player entity")
)

// AmbiguousPlayerError lists the conflicting player entities.
type AmbiguousPlayerError struct {
	Matches []entity.Index
}

func (e *AmbiguousPlayerError) Error() string {
	return fmt.Sprintf("%v: indices %v", ErrAmbiguousPlayer, e.Matches)
}

func (e *AmbiguousPlayerError) Unwrap() error {
	return ErrAmbiguousPlayer
}

// FromEvent converts one input event into commands.
//
// A directional key-down yields a magnitude change to playerAcc followed by a
// direction change. Any key-up yields a magnitude change to zero. Everything
// else yields nothing.
func FromEvent(e input.Event, playerAcc float64) []Action {
	switch e.Kind {
	case input.Pressed:
		angle, ok := input.Angle(e.Key)
		if !ok {
			return nil
		}
		return []Action{
			SetAccelerationMagnitude{Value: playerAcc},
			SetAccelerationDirection{Angle: angle},
		}
	case input.Released:
		return []Action{SetAccelerationMagnitude{Value: 0}}
	default:
		return nil
	}
}

// Player returns the index of the single Player entity in r.
func Player(r *entity.Registry) (entity.Index, error) {
	matches := r.WithFlags(flags.Player)
	switch len(matches) {
	case 0:
		return 0, ErrNoPlayer
	case 1:
		return matches[0], nil
	default:
		return 0, &AmbiguousPlayerError{Matches: matches}
	}
}

// Perform applies a to the player's acceleration. Nothing else on the entity
// is touched.
func Perform(a Action, r *entity.Registry) error {
	idx, err := Player(r)
	if err != nil {
		return fmt.Errorf("performing %v: %w", a, err)
	}

	ref := r.AtMut(idx)
	ref.Acceleration.Vec2 = a.apply(ref.Acceleration.Vec2)

	slog.Debug("player acceleration changed",
		"action", a.String(),
		"acc", ref.Acceleration.Vec2,
	)
	return nil
}

// Dispatch converts e and performs its commands in order, stopping at the
// first failure. It returns how many commands were applied.
func Dispatch(e input.Event, playerAcc float64, r *entity.Registry) (int, error) {
	applied := 0
	for _, a := range FromEvent(e, playerAcc) {
		if err := Perform(a, r); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}
