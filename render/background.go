package render

import (
	"fmt"
	"strings"

	"github.com/gogpu/inkwell"
)

// PatternStyle enumerates background patterns.
type PatternStyle string

const (
	PatternNone  PatternStyle = "none"
	PatternLines PatternStyle = "lines"
	PatternGrid  PatternStyle = "grid"
	PatternDots  PatternStyle = "dots"
)

// Background is the page background: a base color and an optional pattern.
// It travels with stroke content payloads so a paste target can restore
// the source page's look.
type Background struct {
	Color        inkwell.RGBA  `json:"color"`
	Pattern      PatternStyle  `json:"pattern"`
	PatternSize  inkwell.Point `json:"pattern_size"`
	PatternColor inkwell.RGBA  `json:"pattern_color"`
}

// DefaultBackground returns a plain white background with a light grid.
func DefaultBackground() Background {
	return Background{
		Color:        inkwell.White,
		Pattern:      PatternGrid,
		PatternSize:  inkwell.Pt(32, 32),
		PatternColor: inkwell.RGB(0.75, 0.82, 0.93),
	}
}

// GenSVG renders the background for the given region as an SVG fragment.
func (b Background) GenSVG(bounds inkwell.AABB) SVG {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<rect x="%.3f" y="%.3f" width="%.3f" height="%.3f" fill="%s"/>`,
		bounds.Min.X, bounds.Min.Y, bounds.Width(), bounds.Height(), b.Color.CSS())

	sw := b.PatternSize.X
	sh := b.PatternSize.Y
	if b.Pattern != PatternNone && sw > 1 && sh > 1 {
		stroke := b.PatternColor.CSS()
		switch b.Pattern {
		case PatternLines:
			for y := bounds.Min.Y + sh; y < bounds.Max.Y; y += sh {
				fmt.Fprintf(&sb, `<line x1="%.3f" y1="%.3f" x2="%.3f" y2="%.3f" stroke="%s" stroke-width="1"/>`,
					bounds.Min.X, y, bounds.Max.X, y, stroke)
			}
		case PatternGrid:
			for y := bounds.Min.Y + sh; y < bounds.Max.Y; y += sh {
				fmt.Fprintf(&sb, `<line x1="%.3f" y1="%.3f" x2="%.3f" y2="%.3f" stroke="%s" stroke-width="1"/>`,
					bounds.Min.X, y, bounds.Max.X, y, stroke)
			}
			for x := bounds.Min.X + sw; x < bounds.Max.X; x += sw {
				fmt.Fprintf(&sb, `<line x1="%.3f" y1="%.3f" x2="%.3f" y2="%.3f" stroke="%s" stroke-width="1"/>`,
					x, bounds.Min.Y, x, bounds.Max.Y, stroke)
			}
		case PatternDots:
			for y := bounds.Min.Y + sh; y < bounds.Max.Y; y += sh {
				for x := bounds.Min.X + sw; x < bounds.Max.X; x += sw {
					fmt.Fprintf(&sb, `<circle cx="%.3f" cy="%.3f" r="1.2" fill="%s"/>`,
						x, y, stroke)
				}
			}
		}
	}
	return SVG{Data: sb.String(), Bounds: bounds}
}
