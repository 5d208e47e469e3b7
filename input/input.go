// Package input defines the abstract input events consumed by the simulation.
//
// Frontends translate their native events (raylib key polling, a replay
// script) into Events; nothing downstream knows where they came from.
package input

import (
	"fmt"
	"math"
	"strings"
)

// Kind is the type of an input event.
type Kind uint8

const (
	Pressed  Kind = iota // key went down
	Released             // key went up
	Closed               // window close request
)

// Key identifies a recognized key. Anything else maps to KeyOther.
type Key uint8

const (
	KeyOther Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyReturn
)

// Event is a single discrete input event.
type Event struct {
	Kind Kind
	Key  Key
}

// Press returns a key-down event.
func Press(k Key) Event { return Event{Kind: Pressed, Key: k} }

// Release returns a key-up event.
func Release(k Key) Event { return Event{Kind: Released, Key: k} }

// Close returns a window close event.
func Close() Event { return Event{Kind: Closed} }

// Quits reports whether the event ends the run: a close request or Return.
func (e Event) Quits() bool {
	return e.Kind == Closed || (e.Kind == Pressed && e.Key == KeyReturn)
}

// Angle maps a directional key to its heading in radians, using screen
// coordinates (y grows downward): Right=0, Down=Pi/2, Left=Pi, Up=3Pi/2.
func Angle(k Key) (float64, bool) {
	switch k {
	case KeyRight:
		return 0, true
	case KeyDown:
		return math.Pi / 2, true
	case KeyLeft:
		return math.Pi, true
	case KeyUp:
		return 3 * math.Pi / 2, true
	default:
		return 0, false
	}
}

var kindNames = [...]string{Pressed: "pressed", Released: "released", Closed: "closed"}

var keyNames = [...]string{
	KeyOther:  "other",
	KeyUp:     "up",
	KeyDown:   "down",
	KeyLeft:   "left",
	KeyRight:  "right",
	KeyReturn: "return",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("key(%d)", k)
}

func (e Event) String() string {
	if e.Kind == Closed {
		return "closed"
	}
	return e.Kind.String() + ":" + e.Key.String()
}

// ParseKind parses a kind name; "down"/"up" are accepted as aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pressed", "press", "down":
		return Pressed, nil
	case "released", "release", "up":
		return Released, nil
	case "closed", "close":
		return Closed, nil
	}
	return 0, fmt.Errorf("unknown event kind %q", s)
}

// ParseKey parses a key name. Unknown names map to KeyOther, mirroring how
// unrecognized keys behave at runtime.
func ParseKey(s string) Key {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range keyNames {
		if name == s {
			return Key(k)
		}
	}
	if s == "enter" {
		return KeyReturn
	}
	return KeyOther
}

// Source yields the events available for the current frame.
type Source interface {
	Poll() []Event
}
