package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/thrust/camera"
	"github.com/pthm-cable/thrust/config"
	"github.com/pthm-cable/thrust/game"
	"github.com/pthm-cable/thrust/input"
	"github.com/pthm-cable/thrust/inspector"
	"github.com/pthm-cable/thrust/renderer"
	"github.com/pthm-cable/thrust/telemetry"
	"github.com/pthm-cable/thrust/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	scriptPath := flag.String("script", "", "CSV input script to replay (empty = use config)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot (empty = use config)")

	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q\n", *logLevel)
		os.Exit(2)
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *scriptPath != "" {
		cfg.Input.Script = *scriptPath
	}
	if *outputDir != "" {
		cfg.Telemetry.OutputDir = *outputDir
	}

	out, err := telemetry.NewOutputManager(cfg.Telemetry.OutputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	opts := game.Options{
		Config:   cfg,
		Output:   out,
		LogStats: *logStats,
	}

	if *headless {
		err = runHeadless(cfg, opts, *maxTicks)
	} else {
		err = runWindowed(cfg, opts, *maxTicks)
	}
	if cerr := out.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("closing output: %w", cerr)
	}
	if err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless replays the configured script with the fixed config dt.
// Without a script the player idles until maxTicks.
func runHeadless(cfg *config.Config, opts game.Options, maxTicks int) error {
	script, err := loadScript(cfg.Input.Script)
	if err != nil {
		return err
	}
	if cfg.Input.Script == "" && maxTicks <= 0 {
		return fmt.Errorf("headless run without a script needs -max-ticks")
	}

	g, err := game.NewGame(opts)
	if err != nil {
		return err
	}

	slog.Info("starting headless simulation",
		"script", cfg.Input.Script,
		"max_ticks", maxTicks,
		"dt", cfg.Derived.DT,
	)
	return g.RunHeadless(input.NewScriptSource(script), maxTicks)
}

func loadScript(path string) (*input.Script, error) {
	if path == "" {
		return input.NewScript(nil)
	}
	return input.LoadScript(path)
}

// runWindowed opens a raylib window and drives the game with the keyboard,
// plus the configured script if any.
func runWindowed(cfg *config.Config, opts game.Options, maxTicks int) error {
	script, err := loadScript(cfg.Input.Script)
	if err != nil {
		return err
	}
	replay := input.NewScriptSource(script)

	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	sprites := renderer.NewSpriteRenderer()
	defer sprites.Unload()
	opts.Loader = sprites

	g, err := game.NewGame(opts)
	if err != nil {
		return err
	}

	kb := renderer.NewKeyboard()
	grid := renderer.NewGridRenderer(100, 18, 22, 30)

	cam := camera.New(float64(cfg.Screen.Width), float64(cfg.Screen.Height))
	cam.MinZoom = cfg.Camera.MinZoom
	cam.MaxZoom = cfg.Camera.MaxZoom
	cam.SetZoom(cfg.Camera.Zoom)
	cam.Smoothing = cfg.Camera.Smoothing

	overlays := ui.NewOverlayRegistry()
	hud := ui.NewHUD()
	perfPanel := ui.NewPerfPanel(10, 0)
	controls := ui.NewControlsPanel(0, 10, 180)
	tuning := ui.NewTuningPanel(0, 10, 280, ui.TuningRanges{
		Friction:     ui.SliderRange{Min: float32(cfg.Tune.FrictionMin), Max: float32(cfg.Tune.FrictionMax)},
		Acceleration: ui.SliderRange{Min: float32(cfg.Tune.AccelerationMin), Max: float32(cfg.Tune.AccelerationMax)},
		MaxVelocity:  ui.SliderRange{Min: 1, Max: float32(cfg.Physics.MaxVelocity * 4)},
		RestSpeed:    ui.SliderRange{Min: 0, Max: 5},
	})
	ins := inspector.NewInspector(int32(cfg.Screen.Width), int32(cfg.Screen.Height))
	ins.Select(g.PlayerIndex())

	layout := func(w, h int32) {
		cam.Resize(float64(w), float64(h))
		ins.Resize(w)
		tuning.SetPosition(w-290, 10)
		controls.SetPosition(w-190, h-200)
		perfPanel.SetPosition(10, h-120)
	}
	layout(int32(cfg.Screen.Width), int32(cfg.Screen.Height))

	draw := func() {
		views := g.Views()
		if cfg.Camera.Follow {
			cam.Follow(g.Player().Transform.Position)
		}

		rl.BeginDrawing()
		if overlays.IsEnabled(ui.OverlayGrid) {
			grid.Draw(cam)
		} else {
			rl.ClearBackground(rl.Black)
		}
		sprites.Draw(views, cam)

		if overlays.IsEnabled(ui.OverlayInspector) {
			ins.DrawSelectionHighlight(views, cam)
			ins.Draw(g.Registry(), g.PhysicsParams().MaxVelocity)
		}
		if overlays.IsEnabled(ui.OverlayHUD) {
			hud.Draw(ui.HUDData{
				Title:        cfg.Screen.Title,
				Tick:         g.Tick(),
				FPS:          rl.GetFPS(),
				Entities:     g.Registry().Len(),
				Player:       g.Player(),
				Params:       g.PhysicsParams(),
				Acceleration: g.PlayerAcceleration(),
			})
		}
		if overlays.IsEnabled(ui.OverlayTuning) {
			tuning.Draw(g)
		}
		if overlays.IsEnabled(ui.OverlayPerf) {
			perfPanel.Draw(g.Perf().Stats())
		}
		if overlays.IsEnabled(ui.OverlayFPS) {
			rl.DrawFPS(int32(cam.ViewportW)-90, int32(cam.ViewportH)-30)
		}
		controls.Draw(overlays)
		hud.DrawControls(int32(cam.ViewportH), "Arrows: thrust | Enter: quit | Click: inspect | Wheel: zoom")
		rl.EndDrawing()
	}

	slog.Info("starting windowed simulation", "width", cfg.Screen.Width, "height", cfg.Screen.Height)

	start := time.Now()
	for {
		if rl.IsWindowResized() {
			layout(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
		}
		overlays.HandleInput()
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			cam.ZoomBy(1 + 0.1*float64(wheel))
		}
		if overlays.IsEnabled(ui.OverlayInspector) {
			ins.HandleInput(g.Views(), cam)
		}

		dt := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
		if dt <= 0 {
			dt = cfg.Derived.DT
		}

		events := append([]input.Event(nil), replay.Poll()...)
		events = append(events, kb.Poll()...)
		quit, err := g.Frame(events, dt, draw)
		if err != nil {
			return err
		}
		if quit {
			slog.Info("quit requested", "tick", g.Tick())
			break
		}
		if maxTicks > 0 && g.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
	}

	slog.Info("window closed", "ticks", g.Tick(), "wall", time.Since(start).Round(time.Millisecond))
	return g.Close()
}
