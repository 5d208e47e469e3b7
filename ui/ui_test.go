package ui

import (
	"errors"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/thrust/entity"
	"github.com/pthm-cable/thrust/systems"
	"github.com/pthm-cable/thrust/vec"
)

func TestOverlayDefaultsAndExclusivity(t *testing.T) {
	reg := NewOverlayRegistry()

	if !reg.IsEnabled(OverlayHUD) || !reg.IsEnabled(OverlayInspector) {
		t.Fatal("status and inspector should start enabled")
	}
	if reg.IsEnabled(OverlayTuning) {
		t.Fatal("tuning should start hidden")
	}

	id, on, ok := reg.HandleKeyPress(rl.KeyF2)
	if !ok || id != OverlayTuning || !on {
		t.Fatalf("F2 = %q, %v, %v", id, on, ok)
	}
	if reg.IsEnabled(OverlayInspector) {
		t.Error("enabling tuning should hide the inspector")
	}

	if _, _, ok := reg.HandleKeyPress(rl.KeyA); ok {
		t.Error("unbound key toggled an overlay")
	}
	if reg.Toggle("missing") {
		t.Error("unknown overlay reported enabled")
	}
}

func TestOverlayCategories(t *testing.T) {
	reg := NewOverlayRegistry()
	cats := reg.Categories()
	if len(cats) != 2 || cats[0] != "panels" || cats[1] != "debug" {
		t.Errorf("categories = %v", cats)
	}
	if n := len(reg.ByCategory("panels")); n != 3 {
		t.Errorf("panels = %d, want 3", n)
	}
}

type fakeTunable struct {
	params  systems.PhysicsParams
	acc     float64
	setCall int
}

func (f *fakeTunable) PhysicsParams() systems.PhysicsParams { return f.params }

func (f *fakeTunable) SetPhysicsParams(p systems.PhysicsParams) error {
	f.setCall++
	if p.Friction <= 0 || p.Friction > 1 {
		return errors.New("bad friction")
	}
	f.params = p
	return nil
}

func (f *fakeTunable) PlayerAcceleration() float64     { return f.acc }
func (f *fakeTunable) SetPlayerAcceleration(a float64) { f.acc = a }

func TestApplyTuningOnlyWritesChanges(t *testing.T) {
	ft := &fakeTunable{params: systems.DefaultPhysicsParams(), acc: 10}
	cur := ReadTuning(ft)

	if err := ApplyTuning(ft, cur, cur); err != nil {
		t.Fatal(err)
	}
	if ft.setCall != 0 {
		t.Errorf("unchanged values called SetPhysicsParams %d times", ft.setCall)
	}
	if ft.params.Friction != 0.95 {
		t.Errorf("friction lost precision: %v", ft.params.Friction)
	}

	next := cur
	next.Acceleration = 25
	next.MaxVelocity = 50
	if err := ApplyTuning(ft, cur, next); err != nil {
		t.Fatal(err)
	}
	if ft.acc != 25 || ft.params.MaxVelocity != 50 {
		t.Errorf("applied acc=%v max=%v", ft.acc, ft.params.MaxVelocity)
	}
	if ft.params.Friction != 0.95 {
		t.Errorf("untouched friction changed to %v", ft.params.Friction)
	}

	bad := ReadTuning(ft)
	bad.Friction = 0
	if err := ApplyTuning(ft, ReadTuning(ft), bad); err == nil {
		t.Error("expected rejected friction")
	}
}

func TestStatusSections(t *testing.T) {
	data := HUDData{
		Player: entity.Entity{Velocity: vec.New(30, -40)},
		Params: systems.DefaultPhysicsParams(),
	}

	fields := map[string]FieldDescriptor{}
	for _, sd := range StatusSections {
		for _, fd := range sd.Fields {
			fields[fd.ID] = fd
		}
	}

	if got := fields["speed"].Getter(data); got != 50 {
		t.Errorf("speed = %v, want 50", got)
	}
	if got := fields["speed_share"].Getter(data); got != 0.5 {
		t.Errorf("speed share = %v, want 0.5", got)
	}
	if got := fields["vy"].Getter(data); got != -0.4 {
		t.Errorf("vy = %v, want -0.4", got)
	}
	if got := fieldText(fields["clamp"], data); got != "magnitude" {
		t.Errorf("clamp text = %q", got)
	}
	if got := fieldText(fields["friction"], data); got != "0.950" {
		t.Errorf("friction text = %q", got)
	}
	if got := fieldText(fields["collisions"], data); got != "off" {
		t.Errorf("collisions text = %q", got)
	}
}

func TestStatusSectionsLayout(t *testing.T) {
	r := NewRenderer()
	lh := r.Theme.LineHeight

	widgets := map[WidgetType]int{}
	for _, sd := range StatusSections {
		for _, fd := range sd.Fields {
			widgets[fd.Widget]++
		}
	}
	if widgets[WidgetSection] != 1 || widgets[WidgetSpacer] != 2 {
		t.Errorf("section rows = %d, spacers = %d; want 1 and 2", widgets[WidgetSection], widgets[WidgetSpacer])
	}

	// Title, position, velocity, gap, speed, share bar, two axis bars,
	// input header, thrust.
	want := lh + 2*lh + 6 + lh + 3*(lh+2) + lh + lh + 4
	if got := r.SectionHeight(StatusSections[0], HUDData{}); got != want {
		t.Errorf("player section height = %d, want %d", got, want)
	}
}

func TestSectionHeight(t *testing.T) {
	r := NewRenderer()
	sd := SectionDescriptor{
		Title: "S",
		Fields: []FieldDescriptor{
			{Widget: WidgetText},
			{Widget: WidgetBar},
			{Widget: WidgetSpacer},
			{Widget: WidgetText, Visible: func(any) bool { return false }},
		},
	}
	lh := r.Theme.LineHeight
	want := lh + lh + (lh + 2) + 6 + 4
	if got := r.SectionHeight(sd, nil); got != want {
		t.Errorf("height = %d, want %d", got, want)
	}

	sd.Visible = func(any) bool { return false }
	if got := r.SectionHeight(sd, nil); got != 0 {
		t.Errorf("hidden section height = %d", got)
	}
}
