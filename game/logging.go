package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/thrust/telemetry"
)

// logPerfStats logs performance statistics for the window ending now.
func (g *Game) logPerfStats(s telemetry.PerfStats) {
	slog.Info("perf", "tick", g.tick, "stats", s)
}

// logSummary logs the end-of-run player state.
func (g *Game) logSummary(wall time.Duration) {
	p := g.Player()
	simTime := time.Duration(g.tick) * g.cfg.Derived.DT

	slog.Info("run finished",
		"ticks", g.tick,
		"sim_time", simTime.Round(time.Millisecond).String(),
		"wall_time", wall.Round(time.Millisecond).String(),
		"pos", p.Transform.Position,
		"vel", p.Velocity,
		"speed", p.Velocity.Magnitude(),
		"output_dir", g.outputManager.Dir(),
	)
}
