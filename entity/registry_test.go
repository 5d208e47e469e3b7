package entity

import (
	"errors"
	"testing"

	"github.com/pthm-cable/thrust/components"
	"github.com/pthm-cable/thrust/flags"
	"github.com/pthm-cable/thrust/vec"
)

func ship() Entity {
	return Entity{
		Sprite:    components.Sprite{Handle: 1, Asset: "assets/ship.png", Width: 100, Height: 100},
		Transform: components.Identity(),
	}
}

func TestNewSpawnsSinglePlayer(t *testing.T) {
	e := ship()
	e.Velocity = vec.New(3, 3)
	e.Acceleration = vec.New(1, 0)
	r := New(e)

	if r.Len() != 1 {
		t.Fatalf("expected 1 entity, got %d", r.Len())
	}
	players := r.WithFlags(flags.Player)
	if len(players) != 1 || players[0] != 0 {
		t.Fatalf("expected player at index 0, got %v", players)
	}

	p := r.At(0)
	if p.Velocity != vec.Origin() || p.Acceleration != vec.Origin() {
		t.Errorf("player should start at rest, got vel=%v acc=%v", p.Velocity, p.Acceleration)
	}
	if p.Sprite.Asset != "assets/ship.png" {
		t.Errorf("sprite not stored: %+v", p.Sprite)
	}
}

func TestSpawnReturnsPreAppendLength(t *testing.T) {
	r := NewEmpty()
	for want := 0; want < 5; want++ {
		if got := r.Spawn(ship()); got != Index(want) {
			t.Errorf("Spawn #%d returned %d", want, got)
		}
	}
	if r.Len() != 5 {
		t.Errorf("expected 5 entities, got %d", r.Len())
	}
}

func TestIndicesStayValidAfterSpawn(t *testing.T) {
	r := New(ship())
	r.AtMut(0).Transform.Position = vec.New(42, 7)

	for i := 0; i < 100; i++ {
		e := ship()
		e.Transform = e.Transform.Translate(float64(i), 0)
		r.Spawn(e)
	}

	if got := r.At(0).Transform.Position; got != vec.New(42, 7) {
		t.Errorf("player moved after spawns: %v", got)
	}
	if got := r.At(51).Transform.Position; got != vec.New(50, 0) {
		t.Errorf("entity 51 at %v, want (50, 0)", got)
	}
}

func TestWithFlagsIntersectsInOrder(t *testing.T) {
	r := NewEmpty()

	spawn := func(f flags.Flags) Index {
		e := ship()
		e.Flags = f
		return r.Spawn(e)
	}

	a := spawn(flags.Obstacle)
	spawn(flags.Decoration)
	c := spawn(flags.Player | flags.Obstacle)
	d := spawn(flags.Projectile)
	spawn(flags.None)

	got := r.WithFlags(flags.Obstacle | flags.Projectile)
	want := []Index{a, c, d}
	if len(got) != len(want) {
		t.Fatalf("WithFlags = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("WithFlags[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	if got := r.WithFlags(flags.None); len(got) != 0 {
		t.Errorf("empty mask matched %v", got)
	}
}

func TestAtMutWritesThrough(t *testing.T) {
	r := New(ship())

	ref := r.AtMut(0)
	ref.Acceleration.Vec2 = vec.New(10, 0)
	ref.Velocity.Vec2 = vec.New(1, 2)

	got := r.At(0)
	if got.Acceleration != vec.New(10, 0) || got.Velocity != vec.New(1, 2) {
		t.Errorf("writes through Ref not visible: %+v", got)
	}

	// At returns a copy.
	copyOf := r.At(0)
	copyOf.Velocity = vec.New(99, 99)
	if r.At(0).Velocity == copyOf.Velocity {
		t.Error("At must return a copy")
	}
}

func TestOutOfRangePanics(t *testing.T) {
	r := New(ship())

	for _, idx := range []Index{1, 7, -1} {
		func() {
			defer func() {
				rec := recover()
				if rec == nil {
					t.Errorf("At(%d) did not panic", idx)
					return
				}
				err, ok := rec.(error)
				var ie *IndexError
				if !ok || !errors.As(err, &ie) {
					t.Errorf("At(%d) panicked with %v, want *IndexError", idx, rec)
					return
				}
				if ie.Index != idx || ie.Len != 1 {
					t.Errorf("IndexError = %+v", ie)
				}
			}()
			r.At(idx)
		}()
	}
}

func TestViewsInRegistryOrder(t *testing.T) {
	r := New(ship())
	second := ship()
	second.Sprite.Handle = 2
	second.Velocity = vec.New(0, 4)
	r.Spawn(second)

	views := r.Views()
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
	if views[0].Index != 0 || views[1].Index != 1 {
		t.Errorf("views out of order: %+v", views)
	}
	if views[1].Sprite.Handle != 2 || views[1].Velocity != vec.New(0, 4) {
		t.Errorf("second view wrong: %+v", views[1])
	}
}
