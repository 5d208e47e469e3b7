package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayHUD       OverlayID = "hud"
	OverlayPerf      OverlayID = "perf"
	OverlayTuning    OverlayID = "tuning"
	OverlayInspector OverlayID = "inspector"
	OverlayGrid      OverlayID = "grid"
	OverlayFPS       OverlayID = "fps"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID        OverlayID   // Unique identifier
	Name      string      // Display name
	Key       int32       // Keyboard key to toggle (0 = no key)
	KeyLabel  string      // Key label for display (e.g., "F1")
	Category  string      // Grouping (e.g., "panels", "debug")
	Default   bool        // Enabled at startup
	Exclusive []OverlayID // Other overlays to disable when this is enabled
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID: OverlayHUD, Name: "Status", Key: rl.KeyF1, KeyLabel: "F1",
		Category: "panels", Default: true,
	})
	r.Register(OverlayDescriptor{
		ID: OverlayTuning, Name: "Tuning", Key: rl.KeyF2, KeyLabel: "F2",
		Category: "panels", Exclusive: []OverlayID{OverlayInspector},
	})
	r.Register(OverlayDescriptor{
		ID: OverlayInspector, Name: "Inspector", Key: rl.KeyF3, KeyLabel: "F3",
		Category: "panels", Default: true, Exclusive: []OverlayID{OverlayTuning},
	})
	r.Register(OverlayDescriptor{
		ID: OverlayPerf, Name: "Performance", Key: rl.KeyF4, KeyLabel: "F4",
		Category: "debug",
	})
	r.Register(OverlayDescriptor{
		ID: OverlayGrid, Name: "Grid", Key: rl.KeyF5, KeyLabel: "F5",
		Category: "debug", Default: true,
	})
	r.Register(OverlayDescriptor{
		ID: OverlayFPS, Name: "FPS", Key: rl.KeyF6, KeyLabel: "F6",
		Category: "debug",
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and handles exclusivity.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	next := !r.enabled[id]
	r.SetEnabled(id, next)
	return next
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}

	r.enabled[id] = enabled
	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeyPress checks if a key corresponds to an overlay toggle.
// Returns the overlay ID and new state if a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}

// HandleInput toggles every overlay whose key went down this frame.
// It polls key state rather than the key queue, which the keyboard source
// drains.
func (r *OverlayRegistry) HandleInput() {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			r.HandleKeyPress(desc.Key)
		}
	}
}
