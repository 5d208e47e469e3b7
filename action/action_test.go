package action

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/thrust/components"
	"github.com/pthm-cable/thrust/entity"
	"github.com/pthm-cable/thrust/flags"
	"github.com/pthm-cable/thrust/input"
	"github.com/pthm-cable/thrust/vec"
)

const playerAcc = 10.0

func newRegistry() *entity.Registry {
	return entity.New(entity.Entity{Transform: components.Identity()})
}

func TestFromEventDirectionalKeyDown(t *testing.T) {
	got := FromEvent(input.Press(input.KeyRight), playerAcc)
	if len(got) != 2 {
		t.Fatalf("expected 2 actions, got %v", got)
	}
	if got[0] != (SetAccelerationMagnitude{Value: playerAcc}) {
		t.Errorf("first action = %v, want SetAccelerationMagnitude(%v)", got[0], playerAcc)
	}
	if got[1] != (SetAccelerationDirection{Angle: 0}) {
		t.Errorf("second action = %v, want SetAccelerationDirection(0)", got[1])
	}

	down := FromEvent(input.Press(input.KeyDown), playerAcc)
	if len(down) != 2 || down[1] != (SetAccelerationDirection{Angle: math.Pi / 2}) {
		t.Errorf("Down key-down = %v", down)
	}
}

func TestFromEventKeyUp(t *testing.T) {
	for _, k := range []input.Key{input.KeyLeft, input.KeyReturn, input.KeyOther} {
		got := FromEvent(input.Release(k), playerAcc)
		if len(got) != 1 || got[0] != (SetAccelerationMagnitude{Value: 0}) {
			t.Errorf("key-up %v = %v, want [SetAccelerationMagnitude(0)]", k, got)
		}
	}
}

func TestFromEventIgnored(t *testing.T) {
	for _, e := range []input.Event{
		input.Press(input.KeyOther),
		input.Press(input.KeyReturn),
		input.Close(),
	} {
		if got := FromEvent(e, playerAcc); len(got) != 0 {
			t.Errorf("FromEvent(%v) = %v, want none", e, got)
		}
	}
}

func TestPerformFromRest(t *testing.T) {
	r := newRegistry()

	if _, err := Dispatch(input.Press(input.KeyDown), playerAcc, r); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	acc := r.At(0).Acceleration
	if !acc.ApproxEqual(vec.New(0, playerAcc), 1e-9) {
		t.Errorf("acceleration after Down = %v, want (0, %v)", acc, playerAcc)
	}

	if _, err := Dispatch(input.Release(input.KeyDown), playerAcc, r); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if acc := r.At(0).Acceleration; acc.Magnitude() != 0 {
		t.Errorf("acceleration after key-up = %v, want zero", acc)
	}
}

func TestPerformPreservesMagnitudeAndDirection(t *testing.T) {
	r := newRegistry()
	r.AtMut(0).Acceleration.Vec2 = vec.New(3, 4)

	if err := Perform(SetAccelerationDirection{Angle: math.Pi}, r); err != nil {
		t.Fatalf("Perform failed: %v", err)
	}
	if acc := r.At(0).Acceleration; !acc.ApproxEqual(vec.New(-5, 0), 1e-9) {
		t.Errorf("after direction change acc = %v, want (-5, 0)", acc)
	}

	if err := Perform(SetAccelerationMagnitude{Value: 2}, r); err != nil {
		t.Fatalf("Perform failed: %v", err)
	}
	if acc := r.At(0).Acceleration; !acc.ApproxEqual(vec.New(-2, 0), 1e-9) {
		t.Errorf("after magnitude change acc = %v, want (-2, 0)", acc)
	}
}

func TestPerformTouchesOnlyAcceleration(t *testing.T) {
	r := newRegistry()
	ref := r.AtMut(0)
	ref.Velocity.Vec2 = vec.New(1, 1)
	ref.Transform.Position = vec.New(5, 5)

	if _, err := Dispatch(input.Press(input.KeyLeft), playerAcc, r); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	p := r.At(0)
	if p.Velocity != vec.New(1, 1) || p.Transform.Position != vec.New(5, 5) {
		t.Errorf("Perform changed velocity or transform: %+v", p)
	}
}

func TestPerformTargetsPlayerOnly(t *testing.T) {
	r := newRegistry()
	other := r.Spawn(entity.Entity{Flags: flags.Obstacle, Transform: components.Identity()})

	if _, err := Dispatch(input.Press(input.KeyRight), playerAcc, r); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if acc := r.At(other).Acceleration; acc != vec.Origin() {
		t.Errorf("non-player acceleration changed: %v", acc)
	}
}

func TestPerformFailsWithTwoPlayers(t *testing.T) {
	r := newRegistry()
	second := r.Spawn(entity.Entity{Flags: flags.Player | flags.Decoration})

	err := Perform(SetAccelerationMagnitude{Value: 1}, r)
	if !errors.Is(err, ErrAmbiguousPlayer) {
		t.Fatalf("expected ErrAmbiguousPlayer, got %v", err)
	}
	var amb *AmbiguousPlayerError
	if !errors.As(err, &amb) {
		t.Fatalf("expected *AmbiguousPlayerError, got %T", err)
	}
	if len(amb.Matches) != 2 || amb.Matches[0] != 0 || amb.Matches[1] != second {
		t.Errorf("matches = %v", amb.Matches)
	}

	// Neither candidate was touched.
	for _, idx := range amb.Matches {
		if acc := r.At(idx).Acceleration; acc != vec.Origin() {
			t.Errorf("entity %d acceleration changed to %v", idx, acc)
		}
	}
}

func TestPerformFailsWithoutPlayer(t *testing.T) {
	r := entity.NewEmpty()
	r.Spawn(entity.Entity{Flags: flags.Obstacle})

	if err := Perform(SetAccelerationDirection{Angle: 1}, r); !errors.Is(err, ErrNoPlayer) {
		t.Errorf("expected ErrNoPlayer, got %v", err)
	}
}

func TestDispatchStopsAtFirstError(t *testing.T) {
	r := entity.NewEmpty()
	n, err := Dispatch(input.Press(input.KeyUp), playerAcc, r)
	if err == nil || n != 0 {
		t.Errorf("Dispatch = %d, %v; want 0 and an error", n, err)
	}
}
