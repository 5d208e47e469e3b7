package main

import (
	"math"

	"github.com/pthm-cable/thrust/config"
	"github.com/pthm-cable/thrust/game"
	"github.com/pthm-cable/thrust/input"
	"github.com/pthm-cable/thrust/telemetry"
)

// failedFitness scores a run that could not be built or stepped.
const failedFitness = 1e6

// steadinessWeight scales the speed wobble of the final stats window.
const steadinessWeight = 0.1

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	baseConfig  *config.Config
	targetSpeed float64
	targetTicks int
	ticks       int

	last runResult // result of the most recent Evaluate call
}

// runResult holds the results from a single simulation run.
type runResult struct {
	speeds      []float64               // player speed after each tick
	windowStats []telemetry.WindowStats // collected via StatsCallback each window
	err         error
}

// NewFitnessEvaluator creates a new evaluator using the tune section of baseCfg.
func NewFitnessEvaluator(params *ParamVector, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		baseConfig:  baseCfg,
		targetSpeed: baseCfg.Tune.TargetSpeed,
		targetTicks: baseCfg.Tune.TargetTicks,
		ticks:       baseCfg.Tune.Ticks,
	}
}

// Evaluate computes fitness for raw parameter values (lower = better).
// The player holds the right arrow from the first tick; the score is the
// squared relative error of the rise time to 90% of the target speed plus
// that of the final speed, plus a small penalty for speed wobble.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	fe.last = fe.runSimulation(x)
	if fe.last.err != nil {
		return failedFitness
	}
	return fe.computeFitness(fe.last)
}

// LastRise returns the rise tick and final speed of the most recent run.
// rise is -1 when the run never reached 90% of the target speed.
func (fe *FitnessEvaluator) LastRise() (rise int, terminal float64) {
	r := fe.last
	if len(r.speeds) == 0 {
		return -1, 0
	}
	rise, ok := riseTicks(r.speeds, 0.9*fe.targetSpeed)
	if !ok {
		rise = -1
	}
	return rise, r.speeds[len(r.speeds)-1]
}

// runSimulation executes a single headless simulation run.
func (fe *FitnessEvaluator) runSimulation(x []float64) runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	result := runResult{speeds: make([]float64, 0, fe.ticks)}

	g, err := game.NewGame(game.Options{
		Config: cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		result.err = err
		return result
	}

	hold := []input.Event{input.Press(input.KeyRight)}
	for tick := 0; tick < fe.ticks; tick++ {
		var events []input.Event
		if tick == 0 {
			events = hold
		}
		if _, err := g.Step(events, cfg.Derived.DT); err != nil {
			result.err = err
			return result
		}
		result.speeds = append(result.speeds, g.Player().Velocity.Magnitude())
	}
	if err := g.Close(); err != nil {
		result.err = err
	}
	return result
}

// copyConfig returns a copy of the base config with file output disabled.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Telemetry.Trace = false
	cfg.Telemetry.OutputDir = ""
	cfg.Input.Script = ""
	return &cfg
}

// computeFitness calculates the scalar fitness (lower = better).
func (fe *FitnessEvaluator) computeFitness(r runResult) float64 {
	if len(r.speeds) == 0 || fe.targetSpeed <= 0 || fe.targetTicks <= 0 {
		return failedFitness
	}

	rise, ok := riseTicks(r.speeds, 0.9*fe.targetSpeed)
	if !ok {
		rise = 2 * len(r.speeds)
	}
	riseErr := float64(rise-fe.targetTicks) / float64(fe.targetTicks)

	terminal := r.speeds[len(r.speeds)-1]
	speedErr := (terminal - fe.targetSpeed) / fe.targetSpeed

	return riseErr*riseErr + speedErr*speedErr + steadinessWeight*steadiness(r.windowStats)
}

// riseTicks returns the number of ticks until speed first reaches threshold.
func riseTicks(speeds []float64, threshold float64) (int, bool) {
	for i, s := range speeds {
		if s >= threshold {
			return i + 1, true
		}
	}
	return 0, false
}

// steadiness is the coefficient of variation of speed in the last window.
func steadiness(windows []telemetry.WindowStats) float64 {
	if len(windows) == 0 {
		return 0
	}
	w := windows[len(windows)-1]
	if w.SpeedMean == 0 {
		return 0
	}
	return math.Abs(w.SpeedStd / w.SpeedMean)
}
