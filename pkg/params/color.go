package params

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var (
	White = Color{R: 0xff, G: 0xff, B: 0xff}
	Black = Color{}
)

func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Color is an opaque RGB value as picked by a hex color input.
type Color struct {
	R, G, B uint8
}

// NRGBA returns the color with the given alpha in [0,1].
func (c Color) NRGBA(alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(clamp(alpha, 0, 1)*255 + 0.5)}
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c *Color) Set(s string) error {
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c *Color) Type() string {
	return "color"
}
