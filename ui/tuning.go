package ui

import (
	"fmt"
	"log/slog"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/thrust/systems"
)

// Tunable is the live-adjustable part of a running game.
type Tunable interface {
	PhysicsParams() systems.PhysicsParams
	SetPhysicsParams(systems.PhysicsParams) error
	PlayerAcceleration() float64
	SetPlayerAcceleration(float64)
}

// TuningValues are the slider positions of the tuning panel.
type TuningValues struct {
	Friction     float32
	Acceleration float32
	MaxVelocity  float32
	RestSpeed    float32
}

// SliderRange bounds one slider.
type SliderRange struct {
	Min, Max float32
}

// TuningRanges bounds every slider of the tuning panel.
type TuningRanges struct {
	Friction     SliderRange
	Acceleration SliderRange
	MaxVelocity  SliderRange
	RestSpeed    SliderRange
}

// ReadTuning captures the current values of t.
func ReadTuning(t Tunable) TuningValues {
	p := t.PhysicsParams()
	return TuningValues{
		Friction:     float32(p.Friction),
		Acceleration: float32(t.PlayerAcceleration()),
		MaxVelocity:  float32(p.MaxVelocity),
		RestSpeed:    float32(p.RestSpeed),
	}
}

// ApplyTuning writes the fields of next that differ from cur into t.
// Unchanged fields keep their full-precision value.
func ApplyTuning(t Tunable, cur, next TuningValues) error {
	if next.Acceleration != cur.Acceleration {
		t.SetPlayerAcceleration(float64(next.Acceleration))
	}

	p := t.PhysicsParams()
	changed := false
	if next.Friction != cur.Friction {
		p.Friction = float64(next.Friction)
		changed = true
	}
	if next.MaxVelocity != cur.MaxVelocity {
		p.MaxVelocity = float64(next.MaxVelocity)
		changed = true
	}
	if next.RestSpeed != cur.RestSpeed {
		p.RestSpeed = float64(next.RestSpeed)
		changed = true
	}
	if !changed {
		return nil
	}
	if err := t.SetPhysicsParams(p); err != nil {
		return fmt.Errorf("applying tuning: %w", err)
	}
	return nil
}

// TuningPanel renders raygui sliders bound to a Tunable.
type TuningPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	ranges   TuningRanges
	initial  *TuningValues
}

// NewTuningPanel creates a tuning panel with the given slider bounds.
func NewTuningPanel(x, y, width int32, ranges TuningRanges) *TuningPanel {
	return &TuningPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		ranges:   ranges,
	}
}

// SetPosition updates the panel position.
func (p *TuningPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the sliders and applies any change to t.
func (p *TuningPanel) Draw(t Tunable) {
	cur := ReadTuning(t)
	if p.initial == nil {
		start := cur
		p.initial = &start
	}
	next := cur

	r := p.renderer
	padding := r.Theme.Padding
	panelHeight := int32(4*40 + 30 + 40 + padding*2)
	r.DrawPanel(p.x, p.y, p.width, panelHeight)

	x := float32(p.x + padding)
	y := float32(p.y + padding)
	sliderWidth := float32(p.width - padding*2 - 60)

	rl.DrawText("Tuning", int32(x), int32(y), 16, rl.White)
	y += 30

	slider := func(label string, value float32, rng SliderRange) float32 {
		rl.DrawText(label, int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
		y += 14
		v := gui.SliderBar(
			rl.Rectangle{X: x, Y: y, Width: sliderWidth, Height: 16},
			"", "",
			value, rng.Min, rng.Max,
		)
		rl.DrawText(fmt.Sprintf("%.3g", v), int32(x+sliderWidth+8), int32(y+2), r.Theme.FontSize, r.Theme.ValueColor)
		y += 26
		return v
	}

	next.Friction = slider("Friction", cur.Friction, p.ranges.Friction)
	next.Acceleration = slider("Acceleration", cur.Acceleration, p.ranges.Acceleration)
	next.MaxVelocity = slider("Max velocity", cur.MaxVelocity, p.ranges.MaxVelocity)
	next.RestSpeed = slider("Rest speed", cur.RestSpeed, p.ranges.RestSpeed)

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 120, Height: 26}, "Reset") {
		next = *p.initial
	}

	if err := ApplyTuning(t, cur, next); err != nil {
		slog.Warn("tuning rejected", "error", err)
	}
}
