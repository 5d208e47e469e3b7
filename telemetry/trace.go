package telemetry

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/thrust/vec"
)

// TraceRow is one entity's state after one tick.
type TraceRow struct {
	Tick   int     `csv:"tick"`
	Entity int     `csv:"entity"`
	X      float64 `csv:"x"`
	Y      float64 `csv:"y"`
	VX     float64 `csv:"vx"`
	VY     float64 `csv:"vy"`
	AX     float64 `csv:"ax"`
	AY     float64 `csv:"ay"`
	Speed  float64 `csv:"speed"`
}

// NewTraceRow builds a row from an entity's post-tick state.
func NewTraceRow(tick, entity int, pos, vel, acc vec.Vec2) TraceRow {
	return TraceRow{
		Tick:   tick,
		Entity: entity,
		X:      pos.X,
		Y:      pos.Y,
		VX:     vel.X,
		VY:     vel.Y,
		AX:     acc.X,
		AY:     acc.Y,
		Speed:  vel.Magnitude(),
	}
}

// Position returns the row's position as a vector.
func (r TraceRow) Position() vec.Vec2 { return vec.New(r.X, r.Y) }

// Velocity returns the row's velocity as a vector.
func (r TraceRow) Velocity() vec.Vec2 { return vec.New(r.VX, r.VY) }

// TraceRecorder buffers trace rows between flushes.
type TraceRecorder struct {
	pending []TraceRow
	total   int
}

// NewTraceRecorder creates an empty recorder.
func NewTraceRecorder() *TraceRecorder {
	return &TraceRecorder{}
}

// Record buffers one row.
func (t *TraceRecorder) Record(row TraceRow) {
	t.pending = append(t.pending, row)
	t.total++
}

// Drain returns the buffered rows and clears the buffer.
func (t *TraceRecorder) Drain() []TraceRow {
	rows := t.pending
	t.pending = nil
	return rows
}

// Total returns the number of rows recorded since creation.
func (t *TraceRecorder) Total() int {
	return t.total
}

// ReadTrace parses a trace.csv stream.
func ReadTrace(r io.Reader) ([]TraceRow, error) {
	var rows []TraceRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("parsing trace: %w", err)
	}
	return rows, nil
}
