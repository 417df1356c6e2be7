package rules

import (
	"fmt"

	"github.com/pkg/errors"
)

// Color is an RGB display color.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string { return c.Hex() }

// MarshalText lets colors appear as hex strings in JSON.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText parses a #rrggbb string.
func (c *Color) UnmarshalText(text []byte) error {
	var r, g, b uint8
	if len(text) != 7 {
		return errors.Errorf("invalid color %q", text)
	}
	if _, err := fmt.Sscanf(string(text), "#%02x%02x%02x", &r, &g, &b); err != nil {
		return errors.Wrapf(err, "invalid color %q", text)
	}
	*c = Color{R: r, G: g, B: b}
	return nil
}

// Display colors.
var (
	Black   = Color{}
	White   = Color{R: 255, G: 255, B: 255}
	Red     = Color{R: 255}
	Green   = Color{G: 255}
	Blue    = Color{B: 255}
	Yellow  = Color{R: 255, G: 255}
	Cyan    = Color{G: 255, B: 255}
	Magenta = Color{R: 255, B: 255}
	Orange  = Color{R: 255, G: 128}
	Violet  = Color{R: 128, B: 255}
)

// Colors used by the arena.
var (
	FruitColor      = Red
	BackgroundColor = Black
)

// Palette is the ordered set of snake colors, assigned round-robin to roster
// slots.
type Palette []Color

// DefaultPalette starts with green, the single-player snake color.
var DefaultPalette = Palette{
	Green,
	Blue,
	Yellow,
	Cyan,
	Magenta,
	Orange,
	White,
	Violet,
}

// At returns the color for roster index i.
func (p Palette) At(i int) Color {
	if len(p) == 0 {
		return Green
	}
	return p[i%len(p)]
}
