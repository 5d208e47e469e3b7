package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/thrust/vec"
)

func TestNew(t *testing.T) {
	cam := New(1280, 720)

	if cam.Center != vec.Origin() {
		t.Errorf("expected camera at origin, got %v", cam.Center)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720)
	cam.Center = vec.New(500, -200)

	sx, sy := cam.WorldToScreen(vec.New(500, -200))
	if math.Abs(sx-640) > 0.01 || math.Abs(sy-360) > 0.01 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720)
	cam.Center = vec.New(-3000, 42)
	cam.SetZoom(2.5)

	testCases := []struct{ sx, sy float64 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		w := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(w)
		if math.Abs(sx-tc.sx) > 0.01 || math.Abs(sy-tc.sy) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> %v -> (%f,%f)", tc.sx, tc.sy, w, sx, sy)
		}
	}
}

func TestFollow(t *testing.T) {
	cam := New(1280, 720)

	cam.Follow(vec.New(100, 50))
	if cam.Center != vec.New(100, 50) {
		t.Errorf("snap follow = %v, want (100, 50)", cam.Center)
	}

	cam.Smoothing = 0.5
	cam.Follow(vec.New(200, 50))
	if cam.Center != vec.New(150, 50) {
		t.Errorf("smoothed follow = %v, want (150, 50)", cam.Center)
	}

	cam.Smoothing = 0
	cam.Follow(vec.New(1e6, 1e6))
	if cam.Center != vec.New(150, 50) {
		t.Errorf("frozen camera moved to %v", cam.Center)
	}
}

func TestPanScalesWithZoom(t *testing.T) {
	cam := New(1280, 720)
	cam.SetZoom(2)

	cam.Pan(100, -40)
	if cam.Center != vec.New(50, -20) {
		t.Errorf("pan = %v, want (50, -20)", cam.Center)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720)

	cam.SetZoom(10)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom should clamp to max %f, got %f", cam.MaxZoom, cam.Zoom)
	}

	cam.SetZoom(0.01)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("zoom should clamp to min %f, got %f", cam.MinZoom, cam.Zoom)
	}

	cam.Zoom = 1
	cam.ZoomBy(2)
	if cam.Zoom != 2 {
		t.Errorf("ZoomBy(2) = %f, want 2", cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720)

	if !cam.IsVisible(vec.Origin(), 0) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(vec.New(700, 0), 50) {
		t.Error("point beyond the right edge plus margin should be culled")
	}
	if !cam.IsVisible(vec.New(680, 0), 50) {
		t.Error("sprite overlapping the right edge should be visible")
	}

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if minX != -640 || maxX != 640 || minY != -360 || maxY != 360 {
		t.Errorf("bounds = (%v, %v, %v, %v)", minX, minY, maxX, maxY)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720)
	cam.Center = vec.New(9, 9)
	cam.Zoom = 3

	cam.Reset()
	if cam.Center != vec.Origin() || cam.Zoom != 1 {
		t.Errorf("reset = %v @ %f", cam.Center, cam.Zoom)
	}
}
