package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/thrust/entity"
	"github.com/pthm-cable/thrust/systems"
	"github.com/pthm-cable/thrust/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Tick         int
	FPS          int32
	Entities     int
	Player       entity.Entity
	Params       systems.PhysicsParams
	Acceleration float64
}

func hudData(data any) HUDData {
	d, _ := data.(HUDData)
	return d
}

// StatusSections describes the player and physics rows of the HUD panel.
var StatusSections = []SectionDescriptor{
	{
		ID:    "player",
		Title: "Player",
		Fields: []FieldDescriptor{
			{
				ID: "position", Label: "Position", Widget: WidgetText,
				TextGetter: func(d any) string { return hudData(d).Player.Transform.Position.String() },
			},
			{
				ID: "velocity", Label: "Velocity", Widget: WidgetText,
				TextGetter: func(d any) string { return hudData(d).Player.Velocity.String() },
			},
			{ID: "speed_gap", Widget: WidgetSpacer},
			{
				ID: "speed", Label: "Speed", Widget: WidgetText, Format: "%.3f",
				Getter: func(d any) float32 { return float32(hudData(d).Player.Velocity.Magnitude()) },
			},
			{
				ID: "speed_share", Label: "Of max", Widget: WidgetBar,
				Getter: func(d any) float32 {
					h := hudData(d)
					if h.Params.MaxVelocity <= 0 {
						return 0
					}
					return float32(h.Player.Velocity.Magnitude() / h.Params.MaxVelocity)
				},
			},
			{
				ID: "vx", Label: "Vx", Widget: WidgetCenteredBar, Range: CenteredRange(1),
				Getter: func(d any) float32 { return normalizedAxis(hudData(d), hudData(d).Player.Velocity.X) },
			},
			{
				ID: "vy", Label: "Vy", Widget: WidgetCenteredBar, Range: CenteredRange(1),
				Getter: func(d any) float32 { return normalizedAxis(hudData(d), hudData(d).Player.Velocity.Y) },
			},
			{ID: "input", Label: "Input", Widget: WidgetSection},
			{
				ID: "thrust", Label: "Thrust", Widget: WidgetText,
				TextGetter: func(d any) string { return hudData(d).Player.Acceleration.String() },
			},
		},
	},
	{
		ID:    "physics",
		Title: "Physics",
		Fields: []FieldDescriptor{
			{
				ID: "friction", Label: "Friction", Widget: WidgetText, Format: "%.3f",
				Getter: func(d any) float32 { return float32(hudData(d).Params.Friction) },
			},
			{
				ID: "max", Label: "Max vel", Widget: WidgetText, Format: "%.1f",
				Getter: func(d any) float32 { return float32(hudData(d).Params.MaxVelocity) },
			},
			{
				ID: "clamp", Label: "Clamp", Widget: WidgetText,
				TextGetter: func(d any) string { return hudData(d).Params.Clamp.String() },
			},
			{
				ID: "collisions", Label: "Collide", Widget: WidgetText,
				TextGetter: func(d any) string { return onOff(hudData(d).Params.Collisions) },
			},
			{ID: "accel_gap", Widget: WidgetSpacer},
			{
				ID: "accel", Label: "Accel", Widget: WidgetText, Format: "%.1f",
				Getter: func(d any) float32 { return float32(hudData(d).Acceleration) },
			},
		},
	},
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func normalizedAxis(h HUDData, v float64) float32 {
	if h.Params.MaxVelocity <= 0 {
		return 0
	}
	return float32(v / h.Params.MaxVelocity)
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		width:    260,
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | FPS: %d | Entities: %d", data.Tick, data.FPS, data.Entities),
		10, 35, 16, rl.LightGray,
	)

	r := h.renderer
	padding := r.Theme.Padding
	x, y := int32(10), int32(60)

	height := padding * 2
	for _, sd := range StatusSections {
		height += r.SectionHeight(sd, data)
	}
	r.DrawPanel(x, y, h.width, height)

	y += padding
	for _, sd := range StatusSections {
		y = r.DrawSection(x+padding, y, sd, data, h.width-padding*2)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the frame phase breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Frame Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s (max %s)",
		stats.AvgTickDuration.Round(time.Microsecond),
		stats.MaxTickDuration.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range telemetry.Phases {
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", phase, stats.PhaseAvg[phase].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
