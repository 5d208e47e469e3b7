package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pthm-cable/thrust/flags"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults failed: %v", err)
	}

	if cfg.Physics.Friction != 0.95 {
		t.Errorf("friction = %v, want 0.95", cfg.Physics.Friction)
	}
	if cfg.Physics.MaxVelocity != 100 || cfg.Physics.MinVelocity != 0 {
		t.Errorf("velocity clamp = [%v, %v], want [0, 100]", cfg.Physics.MinVelocity, cfg.Physics.MaxVelocity)
	}
	if cfg.Player.Acceleration != 10 {
		t.Errorf("player acceleration = %v, want 10", cfg.Player.Acceleration)
	}
	if cfg.Player.SpriteSize != 100 || cfg.Player.Asset != "assets/ship.png" {
		t.Errorf("player sprite = %v %q", cfg.Player.SpriteSize, cfg.Player.Asset)
	}
	if cfg.Screen.TargetFPS != 30 {
		t.Errorf("target fps = %d, want 30", cfg.Screen.TargetFPS)
	}
	if cfg.Physics.Collisions {
		t.Error("collisions should be off by default")
	}
}

func TestDerived(t *testing.T) {
	cfg := Default()

	if d := cfg.Derived.DT; d < 16*time.Millisecond || d > 17*time.Millisecond {
		t.Errorf("derived dt = %v, want ~16.7ms", d)
	}
	if cfg.Derived.PlayerFlags != flags.Player {
		t.Errorf("player flags = %v, want PLAYER", cfg.Derived.PlayerFlags)
	}
	if cfg.Derived.ScreenW32 != float32(cfg.Screen.Width) {
		t.Errorf("ScreenW32 = %v", cfg.Derived.ScreenW32)
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "override.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing override: %v", err)
	}
	return path
}

func TestOverrideMergesWithDefaults(t *testing.T) {
	path := writeFile(t, `
physics:
  friction: 0.8
  clamp: axis
player:
  flags: decoration
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Physics.Friction != 0.8 || cfg.Physics.Clamp != "axis" {
		t.Errorf("override not applied: %+v", cfg.Physics)
	}
	if cfg.Physics.MaxVelocity != 100 {
		t.Errorf("unrelated default lost: max_velocity = %v", cfg.Physics.MaxVelocity)
	}
	if cfg.Derived.PlayerFlags != flags.Player|flags.Decoration {
		t.Errorf("player flags = %v, want PLAYER|DECORATION", cfg.Derived.PlayerFlags)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "physics: [unclosed"},
		{"zero dt", "physics:\n  dt: 0\n"},
		{"unknown flag", "player:\n  flags: wizard\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Player.Acceleration = 42
	cfg.Physics.Friction = 0.9

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if back.Player.Acceleration != 42 || back.Physics.Friction != 0.9 {
		t.Errorf("round trip lost values: acc=%v friction=%v", back.Player.Acceleration, back.Physics.Friction)
	}
}

func TestCfgAfterInit(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if Cfg().Player.Acceleration != 10 {
		t.Errorf("Cfg() not populated")
	}
}
