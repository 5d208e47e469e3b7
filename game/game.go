// Package game drives the per-frame simulation: input dispatch, kinematics,
// and telemetry, in that order.
package game

import (
	"fmt"

	"github.com/pthm-cable/thrust/action"
	"github.com/pthm-cable/thrust/config"
	"github.com/pthm-cable/thrust/entity"
	"github.com/pthm-cable/thrust/systems"
	"github.com/pthm-cable/thrust/telemetry"
)

// Options configures a new Game.
type Options struct {
	Config *config.Config // nil uses the embedded defaults
	Loader SpriteLoader   // nil uses HeadlessLoader
	Output *telemetry.OutputManager

	// StatsCallback, if set, receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
	// LogStats logs stats and perf windows via slog.
	LogStats bool
}

// Game holds the complete simulation state.
type Game struct {
	cfg *config.Config

	registry  *entity.Registry
	player    entity.Index
	physics   *systems.PhysicsSystem
	playerAcc float64

	perf          *telemetry.PerfCollector
	collector     *telemetry.Collector
	trace         *telemetry.TraceRecorder // nil when tracing is off
	bookmarks     *telemetry.BookmarkDetector
	marked        []telemetry.Bookmark
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	logStats      bool

	tick int
}

// bookmarkHistory is the number of stats windows the bookmark detector
// averages over.
const bookmarkHistory = 10

// NewGame builds the arena with its player entity. Sprite loading and
// physics validation errors are returned before any state is created.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	loader := opts.Loader
	if loader == nil {
		loader = HeadlessLoader{}
	}

	params, err := physicsParams(cfg)
	if err != nil {
		return nil, err
	}
	physics := systems.NewPhysicsSystem(params)
	if err := physics.Validate(); err != nil {
		return nil, fmt.Errorf("physics config: %w", err)
	}

	registry, err := newArena(cfg, loader)
	if err != nil {
		return nil, err
	}
	player, err := action.Player(registry)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:           cfg,
		registry:      registry,
		player:        player,
		physics:       physics,
		playerAcc:     cfg.Player.Acceleration,
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.DT, params.MaxVelocity),
		bookmarks:     telemetry.NewBookmarkDetector(bookmarkHistory),
		outputManager: opts.Output,
		statsCallback: opts.StatsCallback,
		logStats:      opts.LogStats,
	}
	if cfg.Telemetry.Trace {
		g.trace = telemetry.NewTraceRecorder()
	}
	return g, nil
}

func physicsParams(cfg *config.Config) (systems.PhysicsParams, error) {
	clamp, err := systems.ParseClampMode(cfg.Physics.Clamp)
	if err != nil {
		return systems.PhysicsParams{}, fmt.Errorf("physics.clamp: %w", err)
	}
	return systems.PhysicsParams{
		Friction:    cfg.Physics.Friction,
		MinVelocity: cfg.Physics.MinVelocity,
		MaxVelocity: cfg.Physics.MaxVelocity,
		RestSpeed:   cfg.Physics.RestSpeed,
		Clamp:       clamp,
		Collisions:  cfg.Physics.Collisions,
	}, nil
}

// Views returns a read-only snapshot of every entity for drawing.
func (g *Game) Views() []entity.View {
	return g.registry.Views()
}

// Bookmarks returns every bookmark detected so far, oldest first.
func (g *Game) Bookmarks() []telemetry.Bookmark {
	return g.marked
}

// Player returns a copy of the player entity.
func (g *Game) Player() entity.Entity {
	return g.registry.At(g.player)
}

// PlayerIndex returns the registry index of the player entity.
func (g *Game) PlayerIndex() entity.Index {
	return g.player
}

// Registry exposes the entity store.
func (g *Game) Registry() *entity.Registry {
	return g.registry
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() int {
	return g.tick
}

// Config returns the configuration the game was built with.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Perf returns the frame timing collector.
func (g *Game) Perf() *telemetry.PerfCollector {
	return g.perf
}

// PhysicsParams returns the current integrator tuning.
func (g *Game) PhysicsParams() systems.PhysicsParams {
	return g.physics.Params()
}

// SetPhysicsParams replaces the integrator tuning if p is valid.
func (g *Game) SetPhysicsParams(p systems.PhysicsParams) error {
	next := systems.NewPhysicsSystem(p)
	if err := next.Validate(); err != nil {
		return err
	}
	g.physics = next
	return nil
}

// PlayerAcceleration returns the magnitude applied on key-down.
func (g *Game) PlayerAcceleration() float64 {
	return g.playerAcc
}

// SetPlayerAcceleration changes the magnitude applied on later key-downs.
func (g *Game) SetPlayerAcceleration(a float64) {
	g.playerAcc = a
}
