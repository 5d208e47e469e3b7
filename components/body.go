package components

import "github.com/pthm-cable/thrust/flags"

// Sprite is the drawable handle of an entity. The core never looks inside it;
// the renderer maps Handle to a loaded texture.
type Sprite struct {
	Handle uint32  `inspect:"skip"`
	Asset  string  `inspect:"label"`
	Width  float64 `inspect:"label,fmt:%.0f"` // drawn size in world units
	Height float64 `inspect:"label,fmt:%.0f"`
}

// Tags holds the capability flags of an entity.
type Tags struct {
	Flags flags.Flags `inspect:"label"`
}
