// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/thrust/flags"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Input     InputConfig     `yaml:"input"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Camera    CameraConfig    `yaml:"camera"`
	Tune      TuneConfig      `yaml:"tune"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// PhysicsConfig holds integrator parameters.
type PhysicsConfig struct {
	DT          float64 `yaml:"dt"`           // Fixed tick length in seconds (headless and tuning)
	Friction    float64 `yaml:"friction"`     // Per-tick velocity multiplier in (0, 1]
	MinVelocity float64 `yaml:"min_velocity"` // Clamp floor
	MaxVelocity float64 `yaml:"max_velocity"` // Clamp ceiling
	RestSpeed   float64 `yaml:"rest_speed"`   // Snap to zero below this speed (0 = off)
	Clamp       string  `yaml:"clamp"`        // "magnitude" or "axis"
	Collisions  bool    `yaml:"collisions"`   // Collision pass (not implemented)
}

// PlayerConfig holds player construction and control parameters.
type PlayerConfig struct {
	Acceleration float64 `yaml:"acceleration"` // Magnitude applied on key-down
	SpriteSize   float64 `yaml:"sprite_size"`  // Drawn size in pixels
	Asset        string  `yaml:"asset"`
	SpawnX       float64 `yaml:"spawn_x"`
	SpawnY       float64 `yaml:"spawn_y"`
	Flags        string  `yaml:"flags"` // Extra tags besides PLAYER, e.g. "decoration"
}

// InputConfig holds input source settings.
type InputConfig struct {
	Script string `yaml:"script"` // CSV replay script (empty = keyboard)
}

// TelemetryConfig holds telemetry and logging parameters.
type TelemetryConfig struct {
	StatsWindow         int    `yaml:"stats_window"`          // Ticks per stats window
	PerfCollectorWindow int    `yaml:"perf_collector_window"` // Ticks for rolling perf average
	Trace               bool   `yaml:"trace"`                 // Record per-tick trace rows
	OutputDir           string `yaml:"output_dir"`            // Empty = no file output
}

// CameraConfig holds viewport parameters.
type CameraConfig struct {
	Follow    bool    `yaml:"follow"`
	Zoom      float64 `yaml:"zoom"`
	MinZoom   float64 `yaml:"min_zoom"`
	MaxZoom   float64 `yaml:"max_zoom"`
	Smoothing float64 `yaml:"smoothing"` // Fraction of the gap closed per frame (1 = snap)
}

// TuneConfig holds the targets for cmd/tune.
type TuneConfig struct {
	TargetSpeed     float64 `yaml:"target_speed"`      // Desired cruise speed
	TargetTicks     int     `yaml:"target_ticks"`      // Ticks to reach 90% of target speed
	Ticks           int     `yaml:"ticks"`             // Ticks simulated per evaluation
	AccelerationMin float64 `yaml:"acceleration_min"`
	AccelerationMax float64 `yaml:"acceleration_max"`
	FrictionMin     float64 `yaml:"friction_min"`
	FrictionMax     float64 `yaml:"friction_max"`
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	DT          time.Duration
	PlayerFlags flags.Flags // Always includes flags.Player
	ScreenW32   float32
	ScreenH32   float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit loads configuration and panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration.
// Panics if Init has not been called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load reads configuration from a file, merging with embedded defaults.
// If path is empty, only defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived calculates derived values from the loaded config.
func (c *Config) computeDerived() error {
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT)
	}
	c.Derived.DT = time.Duration(c.Physics.DT * float64(time.Second))

	extra, err := flags.Parse(c.Player.Flags)
	if err != nil {
		return fmt.Errorf("player.flags: %w", err)
	}
	c.Derived.PlayerFlags = extra.Add(flags.Player)

	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	if c.Telemetry.StatsWindow <= 0 {
		c.Telemetry.StatsWindow = 1
	}
	if c.Telemetry.PerfCollectorWindow <= 0 {
		c.Telemetry.PerfCollectorWindow = 1
	}
	return nil
}

// WriteYAML writes the config to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
