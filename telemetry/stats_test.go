package telemetry

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/thrust/vec"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestSpeedStats(t *testing.T) {
	mean, std, max, p50, p90 := SpeedStats([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	if mean != 5 {
		t.Errorf("mean = %v, want 5", mean)
	}
	if math.Abs(std-2) > 1e-12 {
		t.Errorf("population std = %v, want 2", std)
	}
	if max != 9 {
		t.Errorf("max = %v, want 9", max)
	}
	if p50 != 4.5 {
		t.Errorf("p50 = %v, want 4.5", p50)
	}
	if math.Abs(p90-7.6) > 1e-9 {
		t.Errorf("p90 = %v, want 7.6", p90)
	}

	if m, s, x, a, b := SpeedStats(nil); m != 0 || s != 0 || x != 0 || a != 0 || b != 0 {
		t.Error("empty input should return all zeros")
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(3, 500*time.Millisecond, 10)
	if c.WindowDurationTicks() != 3 {
		t.Fatalf("window = %d", c.WindowDurationTicks())
	}

	// Three ticks moving right: speeds 1, 2, 10 (clamped).
	pos := vec.Origin()
	for tick, v := range []vec.Vec2{vec.New(1, 0), vec.New(2, 0), vec.New(10, 0)} {
		pos = pos.Add(v)
		acc := vec.New(1, 0)
		if tick == 2 {
			acc = vec.Origin()
		}
		c.Record(pos, v, acc)
		if c.ShouldFlush(tick+1) != (tick == 2) {
			t.Errorf("ShouldFlush(%d) wrong", tick+1)
		}
	}

	s := c.Flush(3)
	if s.WindowStartTick != 0 || s.WindowEndTick != 3 || s.Ticks != 3 {
		t.Errorf("window bounds = %+v", s)
	}
	if s.SimTimeSec != 1.5 {
		t.Errorf("sim time = %v, want 1.5", s.SimTimeSec)
	}
	if s.Distance != 13 || s.Displacement != 13 {
		t.Errorf("distance %v displacement %v, want 13", s.Distance, s.Displacement)
	}
	if s.ThrustTicks != 2 || s.ClampedTicks != 1 {
		t.Errorf("thrust %d clamped %d", s.ThrustTicks, s.ClampedTicks)
	}
	if s.PosX != 13 || s.PosY != 0 || s.SpeedMax != 10 {
		t.Errorf("end state = %+v", s)
	}

	// The next window starts fresh at the previous end position.
	c.Record(pos.Add(vec.New(0, 3)), vec.New(0, 3), vec.Origin())
	next := c.Flush(4)
	if next.WindowStartTick != 3 || next.Ticks != 1 || next.Displacement != 3 {
		t.Errorf("second window = %+v", next)
	}
}
