// Package main searches player acceleration and friction so that the player
// reaches a target cruise speed within a target number of ticks.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/thrust/config"
)

// EvalRow is one line of the evaluation log.
type EvalRow struct {
	Eval          int     `csv:"eval"`
	Fitness       float64 `csv:"fitness"`
	Acceleration  float64 `csv:"acceleration"`
	Friction      float64 `csv:"friction"`
	RiseTicks     int     `csv:"rise_ticks"`
	TerminalSpeed float64 `csv:"terminal_speed"`
}

// evalLog appends rows to a CSV file, writing the header once.
type evalLog struct {
	f             *os.File
	headerWritten bool
}

func (l *evalLog) write(row EvalRow) error {
	rows := []EvalRow{row}
	if !l.headerWritten {
		l.headerWritten = true
		return gocsv.Marshal(rows, l.f)
	}
	return gocsv.MarshalWithoutHeaders(rows, l.f)
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	targetSpeed := flag.Float64("target-speed", 0, "Cruise speed to reach (0 = use config)")
	targetTicks := flag.Int("target-ticks", 0, "Ticks to reach 90% of cruise speed (0 = use config)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()
	if *targetSpeed > 0 {
		baseCfg.Tune.TargetSpeed = *targetSpeed
	}
	if *targetTicks > 0 {
		baseCfg.Tune.TargetTicks = *targetTicks
	}
	if baseCfg.Tune.Ticks < baseCfg.Tune.TargetTicks {
		log.Fatalf("tune.ticks (%d) must cover tune.target_ticks (%d)", baseCfg.Tune.Ticks, baseCfg.Tune.TargetTicks)
	}

	params := NewParamVector(baseCfg)
	evaluator := NewFitnessEvaluator(params, baseCfg)

	dim := params.Dim()
	initX := params.Normalize(params.DefaultVector())

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()
	evals := &evalLog{f: logFile}

	evalCount := 0
	bestFitness := failedFitness
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			// Out-of-range points are clamped, so the simplex sees the
			// value actually simulated.
			clamped := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(clamped)
			evalCount++

			if fitness < bestFitness || bestParams == nil {
				bestFitness = fitness
				bestParams = clamped
			}

			rise, terminal := evaluator.LastRise()
			if err := evals.write(EvalRow{
				Eval:          evalCount,
				Fitness:       fitness,
				Acceleration:  clamped[0],
				Friction:      clamped[1],
				RiseTicks:     rise,
				TerminalSpeed: terminal,
			}); err != nil {
				log.Printf("failed to write log row: %v", err)
			}

			elapsed := time.Since(startTime)
			fmt.Printf("Eval %d/%d: fitness=%.5f rise=%d terminal=%.3f (best=%.5f) | elapsed: %s\n",
				evalCount, *maxEvals, fitness, rise, terminal, bestFitness, formatDuration(elapsed))

			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
	}
	method := &optimize.NelderMead{
		SimplexSize: 0.2,
	}

	fmt.Printf("Starting Nelder-Mead search over %d parameters, max_evals=%d\n", dim, *maxEvals)
	fmt.Printf("Target: speed %.2f within %d ticks, %d ticks per run\n",
		baseCfg.Tune.TargetSpeed, baseCfg.Tune.TargetTicks, baseCfg.Tune.Ticks)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluation completed")
	}

	totalTime := time.Since(startTime)
	fmt.Printf("\nSearch complete after %d evaluations in %s\n", evalCount, formatDuration(totalTime))
	fmt.Printf("Best fitness: %.6f\n", bestFitness)

	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s (%s): %.6f\n", spec.Name, spec.Path, bestParams[i])
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
