package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/thrust/input"
)

var trackedKeys = []struct {
	raylib int32
	key    input.Key
}{
	{rl.KeyUp, input.KeyUp},
	{rl.KeyDown, input.KeyDown},
	{rl.KeyLeft, input.KeyLeft},
	{rl.KeyRight, input.KeyRight},
	{rl.KeyEnter, input.KeyReturn},
	{rl.KeyKpEnter, input.KeyReturn},
}

// Keyboard polls raylib for key and window events. It implements input.Source.
type Keyboard struct {
	// other holds unrecognized keys that are down, so their release is still
	// reported.
	other map[int32]struct{}
}

// NewKeyboard creates a keyboard source. The raylib window must exist.
func NewKeyboard() *Keyboard {
	// Quitting is handled through input events, not raylib's exit key.
	rl.SetExitKey(rl.KeyNull)
	return &Keyboard{other: make(map[int32]struct{})}
}

// Poll returns this frame's events: tracked key presses and releases,
// releases of any other key, and a close request.
func (k *Keyboard) Poll() []input.Event {
	var events []input.Event

	for _, t := range trackedKeys {
		if rl.IsKeyPressed(t.raylib) {
			events = append(events, input.Press(t.key))
		}
		if rl.IsKeyReleased(t.raylib) {
			events = append(events, input.Release(t.key))
		}
	}

	for code := rl.GetKeyPressed(); code != 0; code = rl.GetKeyPressed() {
		if !isTracked(code) {
			k.other[code] = struct{}{}
			events = append(events, input.Press(input.KeyOther))
		}
	}
	for code := range k.other {
		if rl.IsKeyReleased(code) {
			delete(k.other, code)
			events = append(events, input.Release(input.KeyOther))
		}
	}

	if rl.WindowShouldClose() {
		events = append(events, input.Close())
	}
	return events
}

func isTracked(code int32) bool {
	for _, t := range trackedKeys {
		if t.raylib == code {
			return true
		}
	}
	return false
}
