package engine

import (
	"math"

	"github.com/google/uuid"

	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/render"
	"github.com/gogpu/inkwell/store"
)

// Layout controls how the document grows.
type Layout string

const (
	// LayoutFixedSize keeps the document at exactly its configured pages.
	LayoutFixedSize Layout = "fixed-size"
	// LayoutContinuousVertical grows the document downwards as content
	// is added.
	LayoutContinuousVertical Layout = "continuous-vertical"
	// LayoutInfinite grows the document in every direction.
	LayoutInfinite Layout = "infinite"
)

// Format is the page format in document units at 96 DPI.
type Format struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Dpi    float64 `json:"dpi"`
}

// DefaultFormat returns A4 portrait at 96 DPI.
func DefaultFormat() Format {
	return Format{Width: 793.7, Height: 1122.5, Dpi: 96.0}
}

// Document is the page model: identity, extents, format and background.
type Document struct {
	ID         uuid.UUID         `json:"id"`
	X          float64           `json:"x"`
	Y          float64           `json:"y"`
	Width      float64           `json:"width"`
	Height     float64           `json:"height"`
	Format     Format            `json:"format"`
	Background render.Background `json:"background"`
	Layout     Layout            `json:"layout"`
}

// NewDocument creates a one-page document in the default format.
func NewDocument() *Document {
	format := DefaultFormat()
	return &Document{
		ID:         uuid.New(),
		Width:      format.Width,
		Height:     format.Height,
		Format:     format,
		Background: render.DefaultBackground(),
		Layout:     LayoutContinuousVertical,
	}
}

// Bounds returns the document extents.
func (d *Document) Bounds() inkwell.AABB {
	return inkwell.AABB{
		Min: inkwell.Pt(d.X, d.Y),
		Max: inkwell.Pt(d.X+d.Width, d.Y+d.Height),
	}
}

// PagesBounds splits the document into format-sized pages, row by row.
func (d *Document) PagesBounds() []inkwell.AABB {
	if d.Format.Width <= 0 || d.Format.Height <= 0 {
		return []inkwell.AABB{d.Bounds()}
	}
	var pages []inkwell.AABB
	for y := d.Y; y < d.Y+d.Height-1e-9; y += d.Format.Height {
		for x := d.X; x < d.X+d.Width-1e-9; x += d.Format.Width {
			pages = append(pages, inkwell.AABB{
				Min: inkwell.Pt(x, y),
				Max: inkwell.Pt(x+d.Format.Width, y+d.Format.Height),
			})
		}
	}
	return pages
}

// PagesBoundsWithContent returns the pages that contain stroke content.
func (d *Document) PagesBoundsWithContent(s *store.StrokeStore) []inkwell.AABB {
	var pages []inkwell.AABB
	for _, page := range d.PagesBounds() {
		if len(s.StrokeKeysAsRenderedIntersectingBounds(page)) > 0 {
			pages = append(pages, page)
		}
	}
	return pages
}

// ResizeToFitContent grows or shrinks the document to snugly contain the
// content, padded to whole pages. An empty store resets to a single page.
func (d *Document) ResizeToFitContent(s *store.StrokeStore) {
	keys := s.StrokeKeysAsRendered()
	bounds, ok := s.BoundsForStrokes(keys)
	if !ok {
		d.X, d.Y = 0, 0
		d.Width, d.Height = d.Format.Width, d.Format.Height
		return
	}

	switch d.Layout {
	case LayoutInfinite:
		margin := d.Format.Width / 2
		d.X = bounds.Min.X - margin
		d.Y = bounds.Min.Y - margin
		d.Width = bounds.Width() + 2*margin
		d.Height = bounds.Height() + 2*margin
	default:
		d.X, d.Y = 0, 0
		d.Width = d.Format.Width
		pagesDown := math.Ceil(math.Max(bounds.Max.Y, 1) / d.Format.Height)
		if pagesDown < 1 {
			pagesDown = 1
		}
		d.Height = pagesDown * d.Format.Height
	}
}

// ExpandForPoint grows the document so the point lies inside it, following
// the layout rules. Fixed-size documents never grow.
func (d *Document) ExpandForPoint(p inkwell.Point) {
	switch d.Layout {
	case LayoutFixedSize:
		return
	case LayoutContinuousVertical:
		for p.Y > d.Y+d.Height {
			d.Height += d.Format.Height
		}
	case LayoutInfinite:
		if d.Bounds().ContainsPoint(p) {
			return
		}
		margin := inkwell.Pt(d.Format.Width/2, d.Format.Width/2)
		b := d.Bounds().TakePoint(p.Sub(margin)).TakePoint(p.Add(margin))
		d.X, d.Y = b.Min.X, b.Min.Y
		d.Width, d.Height = b.Width(), b.Height()
	}
}
