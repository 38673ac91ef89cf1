package strokes

import "github.com/gogpu/inkwell"

// Style holds the visual style of brush and shape strokes.
type Style struct {
	// Width is the stroke width in document units.
	Width float64 `json:"width"`
	// Color is the stroke color.
	Color inkwell.RGBA `json:"color"`
	// Fill is the fill color for closed shapes. A fully transparent fill
	// means no fill.
	Fill inkwell.RGBA `json:"fill"`
	// PressureSensitive selects pressure-dependent width for brush paths.
	PressureSensitive bool `json:"pressure_sensitive"`
}

// DefaultStyle returns a 2px solid black style without fill.
func DefaultStyle() Style {
	return Style{
		Width: 2.0,
		Color: inkwell.Black,
		Fill:  inkwell.Transparent,
	}
}

// TextStyle holds the visual style of text strokes.
type TextStyle struct {
	// FontSize in document units.
	FontSize float64 `json:"font_size"`
	// Color of the glyphs.
	Color inkwell.RGBA `json:"color"`
	// LineSpacing as a factor of the font size.
	LineSpacing float64 `json:"line_spacing"`
	// MaxWidth constrains line width when positive; text wraps at word
	// boundaries. Zero means unconstrained.
	MaxWidth float64 `json:"max_width"`
}

// DefaultTextStyle returns 32px black text with 1.2 line spacing.
func DefaultTextStyle() TextStyle {
	return TextStyle{
		FontSize:    32.0,
		Color:       inkwell.Black,
		LineSpacing: 1.2,
	}
}

// lineHeight returns the vertical advance per line.
func (s TextStyle) lineHeight() float64 {
	spacing := s.LineSpacing
	if spacing <= 0 {
		spacing = 1.2
	}
	return s.FontSize * spacing
}
