// Package flags defines the capability tags carried by every entity.
package flags

import (
	"fmt"
	"strings"
)

// Flags is a set of capability tags. Several tags may be set at once.
type Flags uint32

const (
	// Player marks the entity driven by input. At most one should exist.
	Player Flags = 1 << iota
	Projectile
	Obstacle
	Decoration

	// None is the empty set.
	None Flags = 0
)

var names = []struct {
	flag Flags
	name string
}{
	{Player, "PLAYER"},
	{Projectile, "PROJECTILE"},
	{Obstacle, "OBSTACLE"},
	{Decoration, "DECORATION"},
}

// Has reports whether f and mask share at least one tag.
func (f Flags) Has(mask Flags) bool {
	return f&mask != 0
}

// Add returns f with the tags in other set.
func (f Flags) Add(other Flags) Flags {
	return f | other
}

// Remove returns f with the tags in other cleared.
func (f Flags) Remove(other Flags) Flags {
	return f &^ other
}

func (f Flags) String() string {
	if f == None {
		return "NONE"
	}
	var parts []string
	rest := f
	for _, n := range names {
		if f.Has(n.flag) {
			parts = append(parts, n.name)
			rest = rest.Remove(n.flag)
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// Parse reads a "|"-separated list of tag names, case-insensitive.
// An empty string or "NONE" yields None.
func Parse(s string) (Flags, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return None, nil
	}

	var f Flags
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		found := false
		for _, n := range names {
			if strings.EqualFold(part, n.name) {
				f = f.Add(n.flag)
				found = true
				break
			}
		}
		if !found {
			return None, fmt.Errorf("unknown flag %q", part)
		}
	}
	return f, nil
}

// MarshalText implements encoding.TextMarshaler, so flags read and write as
// names in YAML and CSV.
func (f Flags) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Flags) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
