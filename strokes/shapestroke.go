package strokes

import (
	"fmt"
	"math"

	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/render"
)

// ShapeKind enumerates the geometric shapes a ShapeStroke draws.
type ShapeKind string

const (
	ShapeLine      ShapeKind = "line"
	ShapeRectangle ShapeKind = "rectangle"
	ShapeEllipse   ShapeKind = "ellipse"
)

// ShapeStroke is a geometric shape with a stroke-and-fill style.
// The shape is defined in a local, axis-aligned frame (Local) and placed in
// the document by Transform, so rotation never degrades the geometry.
type ShapeStroke struct {
	Kind      ShapeKind         `json:"kind"`
	Local     inkwell.AABB      `json:"local"`
	Transform inkwell.Transform `json:"transform"`
	Style     Style             `json:"style"`

	hitboxes []inkwell.AABB
}

// NewShapeStroke creates a shape stroke covering the given document bounds.
func NewShapeStroke(kind ShapeKind, bounds inkwell.AABB, style Style) *ShapeStroke {
	s := &ShapeStroke{
		Kind:      kind,
		Local:     inkwell.AABB{Max: bounds.Extents()},
		Transform: inkwell.Translation(bounds.Min),
		Style:     style,
	}
	s.UpdateGeometry()
	return s
}

// Bounds returns the transformed shape bounds padded by half the stroke
// width.
func (s *ShapeStroke) Bounds() inkwell.AABB {
	pad := s.Style.Width / 2 * math.Max(1, s.Transform.ScaleFactors().X)
	return s.Transform.ApplyAABB(s.Local).Extended(inkwell.Pt(pad, pad))
}

// Hitboxes returns the cached perimeter hitboxes.
func (s *ShapeStroke) Hitboxes() []inkwell.AABB {
	return s.hitboxes
}

// perimeterPoints samples the shape outline in local coordinates.
func (s *ShapeStroke) perimeterPoints() []inkwell.Point {
	l := s.Local
	switch s.Kind {
	case ShapeLine:
		const splits = 8
		pts := make([]inkwell.Point, 0, splits+1)
		for i := 0; i <= splits; i++ {
			pts = append(pts, l.Min.Lerp(l.Max, float64(i)/splits))
		}
		return pts
	case ShapeEllipse:
		const splits = 16
		c := l.Center()
		rx, ry := l.Width()/2, l.Height()/2
		pts := make([]inkwell.Point, 0, splits+1)
		for i := 0; i <= splits; i++ {
			a := 2 * math.Pi * float64(i) / splits
			pts = append(pts, inkwell.Pt(c.X+rx*math.Cos(a), c.Y+ry*math.Sin(a)))
		}
		return pts
	default: // rectangle
		corners := []inkwell.Point{
			l.Min,
			{X: l.Max.X, Y: l.Min.Y},
			l.Max,
			{X: l.Min.X, Y: l.Max.Y},
			l.Min,
		}
		const perEdge = 4
		pts := make([]inkwell.Point, 0, 4*perEdge+1)
		for i := 0; i < 4; i++ {
			for j := 0; j < perEdge; j++ {
				pts = append(pts, corners[i].Lerp(corners[i+1], float64(j)/perEdge))
			}
		}
		pts = append(pts, l.Min)
		return pts
	}
}

// UpdateGeometry rebuilds the cached outline hitboxes.
func (s *ShapeStroke) UpdateGeometry() {
	pts := s.perimeterPoints()
	pad := s.Style.Width / 2
	s.hitboxes = s.hitboxes[:0]
	for i := 1; i < len(pts); i++ {
		a := s.Transform.Apply(pts[i-1])
		b := s.Transform.Apply(pts[i])
		s.hitboxes = append(s.hitboxes, inkwell.NewAABB(a, b).Extended(inkwell.Pt(pad, pad)))
	}
}

// Translate moves the shape by the offset.
func (s *ShapeStroke) Translate(offset inkwell.Point) {
	s.Transform = inkwell.Translation(offset).Mul(s.Transform)
	s.UpdateGeometry()
}

// Rotate rotates the shape by angle (radians) about center.
func (s *ShapeStroke) Rotate(angle float64, center inkwell.Point) {
	s.Transform = inkwell.RotationAbout(angle, center).Mul(s.Transform)
	s.UpdateGeometry()
}

// Scale scales the shape about the document origin.
func (s *ShapeStroke) Scale(scale inkwell.Point) {
	s.Transform = inkwell.Scaling(scale).Mul(s.Transform)
	s.UpdateGeometry()
}

// Clone returns a deep copy.
func (s *ShapeStroke) Clone() Stroke {
	out := &ShapeStroke{Kind: s.Kind, Local: s.Local, Transform: s.Transform, Style: s.Style}
	out.UpdateGeometry()
	return out
}

// GenSVG generates the shape as an SVG fragment in document space.
func (s *ShapeStroke) GenSVG() (render.SVG, error) {
	fill := "none"
	if s.Style.Fill.A > 0 {
		fill = s.Style.Fill.CSS()
	}
	style := fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="%.3f"`,
		fill, s.Style.Color.CSS(), s.Style.Width)
	tf := render.TransformAttr(s.Transform)

	var data string
	l := s.Local
	switch s.Kind {
	case ShapeLine:
		data = fmt.Sprintf(
			`<line x1="%.3f" y1="%.3f" x2="%.3f" y2="%.3f" %s transform="%s"/>`,
			l.Min.X, l.Min.Y, l.Max.X, l.Max.Y, style, tf)
	case ShapeEllipse:
		c := l.Center()
		data = fmt.Sprintf(
			`<ellipse cx="%.3f" cy="%.3f" rx="%.3f" ry="%.3f" %s transform="%s"/>`,
			c.X, c.Y, l.Width()/2, l.Height()/2, style, tf)
	case ShapeRectangle:
		data = fmt.Sprintf(
			`<rect x="%.3f" y="%.3f" width="%.3f" height="%.3f" %s transform="%s"/>`,
			l.Min.X, l.Min.Y, l.Width(), l.Height(), style, tf)
	default:
		return render.SVG{}, fmt.Errorf("strokes: unknown shape kind %q", s.Kind)
	}

	return render.SVG{Data: data, Bounds: s.Bounds()}, nil
}

// GenImages rasterizes the shape for the viewport. Shapes are always a
// single image; their bounds stay modest compared to brush paths.
func (s *ShapeStroke) GenImages(viewport inkwell.AABB, imageScale float64) (render.GeneratedImages, error) {
	svg, err := s.GenSVG()
	if err != nil {
		return render.GeneratedImages{}, err
	}
	bounds := s.Bounds()
	if viewport.Contains(bounds) {
		img, err := render.RasterizeSVG(svg, imageScale)
		if err != nil {
			if err == render.ErrNoContent {
				return render.Full(nil), nil
			}
			return render.GeneratedImages{}, err
		}
		return render.Full([]render.Image{img}), nil
	}

	img, err := render.RasterizeSVGClipped(svg, viewport, imageScale)
	if err != nil {
		if err == render.ErrNoContent {
			return render.PartialInViewport(nil, viewport), nil
		}
		return render.GeneratedImages{}, err
	}
	return render.PartialInViewport([]render.Image{img}, viewport), nil
}
