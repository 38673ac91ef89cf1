package strokes

import (
	"encoding/json"

	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/render"
)

// StrokeContent is a self-contained bundle of strokes, used as the payload
// of cut, copy and paste operations.
type StrokeContent struct {
	Strokes []Stroke
	// Bounds encloses all strokes, nil when the content is empty.
	Bounds *inkwell.AABB
	// Background optionally snapshots the source page background, so the
	// paste target can restore the source document's look.
	Background *render.Background
}

// NewStrokeContent bundles deep copies of the given strokes.
func NewStrokeContent(strokes []Stroke) StrokeContent {
	c := StrokeContent{Strokes: make([]Stroke, 0, len(strokes))}
	bounds := inkwell.InvalidAABB()
	for _, s := range strokes {
		c.Strokes = append(c.Strokes, s.Clone())
		bounds = bounds.Merge(s.Bounds())
	}
	if bounds.Valid() {
		c.Bounds = &bounds
	}
	return c
}

// GenSVG renders the content as a standalone SVG document, for example for
// the clipboard.
func (c StrokeContent) GenSVG() (render.SVG, error) {
	frags := make([]render.SVG, 0, len(c.Strokes))
	for _, s := range c.Strokes {
		svg, err := s.GenSVG()
		if err != nil {
			return render.SVG{}, err
		}
		frags = append(frags, svg)
	}
	merged := render.MergeSVGs(frags)
	return render.SVG{Data: merged.WrapRoot(), Bounds: merged.Bounds}, nil
}

type strokeContentJSON struct {
	Strokes    []json.RawMessage  `json:"strokes"`
	Bounds     *inkwell.AABB      `json:"bounds,omitempty"`
	Background *render.Background `json:"background,omitempty"`
}

// MarshalJSON encodes each stroke through the tagged union codec.
func (c StrokeContent) MarshalJSON() ([]byte, error) {
	out := strokeContentJSON{
		Strokes:    make([]json.RawMessage, 0, len(c.Strokes)),
		Bounds:     c.Bounds,
		Background: c.Background,
	}
	for _, s := range c.Strokes {
		b, err := MarshalStroke(s)
		if err != nil {
			return nil, err
		}
		out.Strokes = append(out.Strokes, b)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes each stroke through the tagged union codec.
func (c *StrokeContent) UnmarshalJSON(b []byte) error {
	var in strokeContentJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	c.Strokes = make([]Stroke, 0, len(in.Strokes))
	for _, raw := range in.Strokes {
		s, err := UnmarshalStroke(raw)
		if err != nil {
			return err
		}
		c.Strokes = append(c.Strokes, s)
	}
	c.Bounds = in.Bounds
	c.Background = in.Background
	return nil
}
