package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated player motion statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int     `csv:"-"`
	WindowEndTick   int     `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Ticks           int     `csv:"ticks"`

	// Speed distribution (per-tick displacement length)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedMax  float64 `csv:"speed_max"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	Distance     float64 `csv:"distance"`     // Path length travelled
	Displacement float64 `csv:"displacement"` // Straight-line start to end

	ThrustTicks  int `csv:"thrust_ticks"`  // Ticks with non-zero acceleration
	ClampedTicks int `csv:"clamped_ticks"` // Ticks at the velocity ceiling

	PosX float64 `csv:"pos_x"`
	PosY float64 `csv:"pos_y"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// SpeedStats summarises per-tick speeds.
func SpeedStats(speeds []float64) (mean, std, max, p50, p90 float64) {
	if len(speeds) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(speeds, nil)
	max = floats.Max(speeds)

	sorted := make([]float64, len(speeds))
	copy(sorted, speeds)
	sort.Float64s(sorted)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, max, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("distance", s.Distance),
		slog.Float64("displacement", s.Displacement),
		slog.Int("thrust_ticks", s.ThrustTicks),
		slog.Int("clamped_ticks", s.ClampedTicks),
		slog.Float64("pos_x", s.PosX),
		slog.Float64("pos_y", s.PosY),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
