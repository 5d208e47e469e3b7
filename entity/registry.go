// Package entity holds the append-only entity registry of the arena.
//
// Components live in an ark ECS world; the registry adds a stable,
// insertion-ordered index on top so that callers can refer to entities by
// position and iterate them in spawn order.
package entity

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/thrust/components"
	"github.com/pthm-cable/thrust/flags"
	"github.com/pthm-cable/thrust/vec"
)

// Index is a stable handle into the registry. Once returned by Spawn it stays
// valid for the lifetime of the registry.
type Index int

// Entity is the value form of an entity, used for spawning and reading.
type Entity struct {
	Sprite       components.Sprite
	Transform    components.Transform
	Velocity     vec.Vec2
	Acceleration vec.Vec2
	Flags        flags.Flags
}

// Ref gives mutable access to an entity's components.
// The pointers stay valid until the next Spawn.
type Ref struct {
	Sprite       *components.Sprite
	Transform    *components.Transform
	Velocity     *components.Velocity
	Acceleration *components.Acceleration
	Tags         *components.Tags
}

// View is the read-only part of an entity the renderer needs.
type View struct {
	Index     Index
	Sprite    components.Sprite
	Transform components.Transform
	Velocity  vec.Vec2
}

// IndexError is the panic value for out-of-range accesses.
type IndexError struct {
	Index Index
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("entity index %d out of range [0, %d)", e.Index, e.Len)
}

// Registry stores entities in spawn order.
type Registry struct {
	world  *ecs.World
	mapper *ecs.Map5[
		components.Sprite,
		components.Transform,
		components.Velocity,
		components.Acceleration,
		components.Tags,
	]
	tagMap *ecs.Map1[components.Tags]

	order []ecs.Entity
}

// NewEmpty creates a registry with no entities.
func NewEmpty() *Registry {
	world := ecs.NewWorld()
	return &Registry{
		world: world,
		mapper: ecs.NewMap5[
			components.Sprite,
			components.Transform,
			components.Velocity,
			components.Acceleration,
			components.Tags,
		](world),
		tagMap: ecs.NewMap1[components.Tags](world),
	}
}

// New creates a registry holding a single player entity.
// The Player flag is set on player and its motion is reset to rest.
func New(player Entity) *Registry {
	r := NewEmpty()
	player.Flags = player.Flags.Add(flags.Player)
	player.Velocity = vec.Origin()
	player.Acceleration = vec.Origin()
	r.Spawn(player)
	return r
}

// Spawn appends e and returns its index, which equals the previous length.
// It does not check the single-player invariant; see action.Perform.
func (r *Registry) Spawn(e Entity) Index {
	idx := Index(len(r.order))

	sprite := e.Sprite
	transform := e.Transform
	vel := components.Velocity{Vec2: e.Velocity}
	acc := components.Acceleration{Vec2: e.Acceleration}
	tags := components.Tags{Flags: e.Flags}

	r.order = append(r.order, r.mapper.NewEntity(&sprite, &transform, &vel, &acc, &tags))

	slog.Debug("spawned entity", "index", int(idx), "flags", e.Flags.String())
	return idx
}

// Len returns the number of entities.
func (r *Registry) Len() int {
	return len(r.order)
}

// WithFlags returns, in registry order, every entity sharing a tag with mask.
func (r *Registry) WithFlags(mask flags.Flags) []Index {
	var out []Index
	for i, e := range r.order {
		if r.tagMap.Get(e).Flags.Has(mask) {
			out = append(out, Index(i))
		}
	}
	return out
}

// At returns a copy of the entity at idx. It panics with *IndexError if idx
// is out of range.
func (r *Registry) At(idx Index) Entity {
	ref := r.AtMut(idx)
	return Entity{
		Sprite:       *ref.Sprite,
		Transform:    *ref.Transform,
		Velocity:     ref.Velocity.Vec2,
		Acceleration: ref.Acceleration.Vec2,
		Flags:        ref.Tags.Flags,
	}
}

// AtMut returns mutable access to the entity at idx. It panics with
// *IndexError if idx is out of range.
func (r *Registry) AtMut(idx Index) Ref {
	e := r.handle(idx)
	sprite, transform, vel, acc, tags := r.mapper.Get(e)
	return Ref{
		Sprite:       sprite,
		Transform:    transform,
		Velocity:     vel,
		Acceleration: acc,
		Tags:         tags,
	}
}

// Each calls fn for every entity in registry order.
// fn must not spawn entities.
func (r *Registry) Each(fn func(Index, Ref)) {
	for i, e := range r.order {
		sprite, transform, vel, acc, tags := r.mapper.Get(e)
		fn(Index(i), Ref{
			Sprite:       sprite,
			Transform:    transform,
			Velocity:     vel,
			Acceleration: acc,
			Tags:         tags,
		})
	}
}

// Views returns a read-only snapshot of every entity for drawing.
func (r *Registry) Views() []View {
	views := make([]View, 0, len(r.order))
	r.Each(func(i Index, ref Ref) {
		views = append(views, View{
			Index:     i,
			Sprite:    *ref.Sprite,
			Transform: *ref.Transform,
			Velocity:  ref.Velocity.Vec2,
		})
	})
	return views
}

func (r *Registry) handle(idx Index) ecs.Entity {
	if idx < 0 || int(idx) >= len(r.order) {
		panic(&IndexError{Index: idx, Len: len(r.order)})
	}
	return r.order[idx]
}
