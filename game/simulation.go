package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/thrust/input"
	"github.com/pthm-cable/thrust/telemetry"
)

// Step runs one frame without drawing: every event is dispatched in order,
// then one kinematics pass runs with dt. quit reports a close request seen
// during the frame; the frame still completes.
func (g *Game) Step(events []input.Event, dt time.Duration) (quit bool, err error) {
	return g.Frame(events, dt, nil)
}

// Frame is Step with a draw callback run after kinematics, timed as the
// render phase.
func (g *Game) Frame(events []input.Event, dt time.Duration, draw func()) (quit bool, err error) {
	g.perf.StartTick()

	// 1. Input
	g.perf.StartPhase(telemetry.PhaseInput)
	quit, err = g.dispatch(events)
	if err != nil {
		g.perf.EndTick()
		return quit, fmt.Errorf("tick %d: %w", g.tick, err)
	}

	// 2. Kinematics
	g.perf.StartPhase(telemetry.PhaseKinematics)
	if err := g.physics.UpdateAll(g.registry, dt); err != nil {
		g.perf.EndTick()
		return quit, fmt.Errorf("tick %d: %w", g.tick, err)
	}
	g.tick++

	// 3. Render
	if draw != nil {
		g.perf.StartPhase(telemetry.PhaseRender)
		draw()
		g.perf.RecordFrame()
	}

	// 4. Trace and stats
	g.perf.StartPhase(telemetry.PhaseTrace)
	g.record()
	g.perf.EndTick()

	if err := g.flushTelemetry(); err != nil {
		return quit, err
	}
	return quit, nil
}

// RunHeadless steps the simulation with the configured fixed dt until src
// requests a quit or maxTicks frames have run. maxTicks <= 0 means no limit.
func (g *Game) RunHeadless(src input.Source, maxTicks int) error {
	dt := g.cfg.Derived.DT
	start := time.Now()

	for maxTicks <= 0 || g.tick < maxTicks {
		quit, err := g.Step(src.Poll(), dt)
		if err != nil {
			return err
		}
		if quit {
			slog.Info("quit requested", "tick", g.tick)
			break
		}
	}

	if err := g.Close(); err != nil {
		return err
	}
	g.logSummary(time.Since(start))
	return nil
}
