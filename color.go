package inkwell

import (
	"fmt"
	"image/color"
	"math"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	return RGBA{
		R: float64(r) / 65535,
		G: float64(g) / 65535,
		B: float64(b) / 65535,
		A: float64(a) / 65535,
	}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// WithAlpha returns the color with the alpha component replaced.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = a
	return c
}

// CSS returns the color formatted for SVG/CSS attributes,
// "#rrggbb" when fully opaque, "rgba(r,g,b,a)" otherwise.
func (c RGBA) CSS() string {
	if c.A >= 1.0 {
		return fmt.Sprintf("#%02x%02x%02x",
			uint8(clamp255(c.R*255)), uint8(clamp255(c.G*255)), uint8(clamp255(c.B*255)))
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)",
		uint8(clamp255(c.R*255)), uint8(clamp255(c.G*255)), uint8(clamp255(c.B*255)), c.A)
}

// Luma returns the relative luminance of the color in [0, 1].
func (c RGBA) Luma() float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// InvertedBrightness returns the color with its brightness inverted while
// keeping the hue, used for dark-mode friendly "optimize printing" output.
func (c RGBA) InvertedBrightness() RGBA {
	max := math.Max(c.R, math.Max(c.G, c.B))
	min := math.Min(c.R, math.Min(c.G, c.B))
	shift := 1.0 - max - min
	return RGBA{R: c.R + shift, G: c.G + shift, B: c.B + shift, A: c.A}
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// Common colors.
var (
	Black       = RGBA{0, 0, 0, 1}
	White       = RGBA{1, 1, 1, 1}
	Transparent = RGBA{0, 0, 0, 0}
)
