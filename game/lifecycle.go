package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/thrust/components"
	"github.com/pthm-cable/thrust/config"
	"github.com/pthm-cable/thrust/entity"
	"github.com/pthm-cable/thrust/vec"
)

// SpriteLoader resolves an asset path to a drawable sprite of the given size.
type SpriteLoader interface {
	LoadSprite(asset string, size float64) (components.Sprite, error)
}

// HeadlessLoader produces sprites without touching the filesystem or GPU.
type HeadlessLoader struct{}

// LoadSprite returns an unbound sprite of the requested size.
func (HeadlessLoader) LoadSprite(asset string, size float64) (components.Sprite, error) {
	if size <= 0 {
		return components.Sprite{}, fmt.Errorf("sprite %q: size must be positive, got %v", asset, size)
	}
	return components.Sprite{Asset: asset, Width: size, Height: size}, nil
}

// newArena builds the registry and spawns the player from cfg.
func newArena(cfg *config.Config, loader SpriteLoader) (*entity.Registry, error) {
	sprite, err := loader.LoadSprite(cfg.Player.Asset, cfg.Player.SpriteSize)
	if err != nil {
		return nil, fmt.Errorf("loading player sprite: %w", err)
	}

	transform := components.Identity().Translate(cfg.Player.SpawnX, cfg.Player.SpawnY)

	r := entity.New(entity.Entity{
		Sprite:    sprite,
		Transform: transform,
		Flags:     cfg.Derived.PlayerFlags,
	})

	slog.Info("arena ready",
		"player_asset", sprite.Asset,
		"sprite_size", cfg.Player.SpriteSize,
		"spawn", vec.New(cfg.Player.SpawnX, cfg.Player.SpawnY),
		"flags", cfg.Derived.PlayerFlags.String(),
	)
	return r, nil
}

// Close flushes buffered telemetry, including a final partial stats window.
// It does not close the output manager, which belongs to the caller.
func (g *Game) Close() error {
	if g.collector.Pending() > 0 {
		if err := g.flushWindow(); err != nil {
			return err
		}
	}
	return g.flushTrace()
}
