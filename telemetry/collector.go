package telemetry

import (
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/thrust/vec"
)

// Collector accumulates player motion within tick windows and produces
// WindowStats.
type Collector struct {
	windowTicks int
	dt          time.Duration
	maxVelocity float64

	windowStartTick int
	startPos        vec.Vec2
	lastPos         vec.Vec2
	started         bool

	speeds       []float64
	thrustTicks  int
	clampedTicks int
}

// NewCollector creates a new stats collector.
// windowTicks: ticks per window; dt: simulated time per tick;
// maxVelocity: the clamp ceiling, used to count clamped ticks.
func NewCollector(windowTicks int, dt time.Duration, maxVelocity float64) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks: windowTicks,
		dt:          dt,
		maxVelocity: maxVelocity,
		speeds:      make([]float64, 0, windowTicks),
	}
}

// Record adds one tick of player state. pos is the position after the tick.
func (c *Collector) Record(pos, vel, acc vec.Vec2) {
	if !c.started {
		c.startPos = pos.Sub(vel)
		c.started = true
	}
	c.lastPos = pos

	speed := vel.Magnitude()
	c.speeds = append(c.speeds, speed)
	if !acc.IsZero() {
		c.thrustTicks++
	}
	if c.maxVelocity > 0 && speed >= c.maxVelocity-1e-9 {
		c.clampedTicks++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int) WindowStats {
	mean, std, max, p50, p90 := SpeedStats(c.speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt.Seconds(),
		Ticks:           len(c.speeds),

		SpeedMean: mean,
		SpeedStd:  std,
		SpeedMax:  max,
		SpeedP50:  p50,
		SpeedP90:  p90,

		Distance:     floats.Sum(c.speeds),
		Displacement: c.lastPos.Sub(c.startPos).Magnitude(),

		ThrustTicks:  c.thrustTicks,
		ClampedTicks: c.clampedTicks,

		PosX: c.lastPos.X,
		PosY: c.lastPos.Y,
	}

	// Reset for next window; the next one starts where this one ended.
	c.windowStartTick = currentTick
	c.startPos = c.lastPos
	c.speeds = c.speeds[:0]
	c.thrustTicks = 0
	c.clampedTicks = 0

	return stats
}

// Pending returns the number of ticks recorded since the last flush.
func (c *Collector) Pending() int {
	return len(c.speeds)
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int {
	return c.windowTicks
}
