package game

import (
	"log/slog"

	"github.com/pthm-cable/thrust/entity"
	"github.com/pthm-cable/thrust/telemetry"
)

// record samples the post-tick state into the stats collector and trace.
func (g *Game) record() {
	p := g.registry.At(g.player)
	g.collector.Record(p.Transform.Position, p.Velocity, p.Acceleration)

	if g.trace == nil {
		return
	}
	g.registry.Each(func(i entity.Index, ref entity.Ref) {
		g.trace.Record(telemetry.NewTraceRow(
			g.tick, int(i),
			ref.Transform.Position,
			ref.Velocity.Vec2,
			ref.Acceleration.Vec2,
		))
	})
}

// flushTelemetry emits a stats window when one is complete.
func (g *Game) flushTelemetry() error {
	if !g.collector.ShouldFlush(g.tick) {
		return nil
	}
	if err := g.flushWindow(); err != nil {
		return err
	}
	return g.flushTrace()
}

func (g *Game) flushWindow() error {
	stats := g.collector.Flush(g.tick)
	perfStats := g.perf.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		g.logPerfStats(perfStats)
	}

	for _, b := range g.bookmarks.Check(stats) {
		b.LogBookmark()
		g.marked = append(g.marked, b)
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		return err
	}
	return g.outputManager.WritePerf(perfStats, stats.WindowEndTick)
}

func (g *Game) flushTrace() error {
	if g.trace == nil {
		return nil
	}
	rows := g.trace.Drain()
	if err := g.outputManager.WriteTrace(rows); err != nil {
		return err
	}
	slog.Debug("trace flushed", "rows", len(rows), "total", g.trace.Total())
	return nil
}
