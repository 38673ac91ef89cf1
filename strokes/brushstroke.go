package strokes

import (
	"fmt"
	"strings"

	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/render"
)

// imagesStrokeWidthBoundsThreshold is the ratio of stroke width to either
// bounds axis above which the stroke is rasterized as a single image.
const imagesStrokeWidthBoundsThreshold = 0.2

// BrushStroke is a freehand pen path with a brush style.
type BrushStroke struct {
	Path  PenPath `json:"path"`
	Style Style   `json:"style"`

	// hitboxes are rebuilt on geometry changes; the path can have many,
	// so they are cached rather than recomputed per query.
	hitboxes []inkwell.AABB
}

// NewBrushStroke creates a brush stroke from a pen path and style.
func NewBrushStroke(path PenPath, style Style) *BrushStroke {
	b := &BrushStroke{Path: path, Style: style}
	b.UpdateGeometry()
	return b
}

// ReplacePath swaps the stroke's path, rebuilding derived geometry.
func (b *BrushStroke) ReplacePath(path PenPath) {
	b.Path = path
	b.UpdateGeometry()
}

// Bounds returns the path bounds padded by half the stroke width.
func (b *BrushStroke) Bounds() inkwell.AABB {
	pad := b.Style.Width / 2
	return b.Path.Bounds().Extended(inkwell.Pt(pad, pad))
}

// Hitboxes returns the cached per-segment hitboxes.
func (b *BrushStroke) Hitboxes() []inkwell.AABB {
	return b.hitboxes
}

// UpdateGeometry rebuilds the cached segment hitboxes.
func (b *BrushStroke) UpdateGeometry() {
	b.hitboxes = b.Path.SegmentHitboxes(b.Style.Width / 2)
}

// Translate moves the stroke geometry by the offset.
func (b *BrushStroke) Translate(offset inkwell.Point) {
	b.Path.Translate(offset)
	b.UpdateGeometry()
}

// Rotate rotates the stroke geometry by angle (radians) about center.
func (b *BrushStroke) Rotate(angle float64, center inkwell.Point) {
	b.Path.Rotate(angle, center)
	b.UpdateGeometry()
}

// Scale scales the stroke geometry about the document origin.
// The stroke width follows the mean axis scale so the stroke thickens and
// thins with its geometry.
func (b *BrushStroke) Scale(scale inkwell.Point) {
	b.Path.Scale(scale)
	b.Style.Width *= (scale.X + scale.Y) / 2
	b.UpdateGeometry()
}

// Clone returns a deep copy.
func (b *BrushStroke) Clone() Stroke {
	out := &BrushStroke{Path: b.Path.Clone(), Style: b.Style}
	out.UpdateGeometry()
	return out
}

// GenSVG generates the whole path as a single SVG fragment.
func (b *BrushStroke) GenSVG() (render.SVG, error) {
	return render.SVG{
		Data:   b.pathSVGData(b.Path),
		Bounds: b.Bounds(),
	}, nil
}

func (b *BrushStroke) pathSVGData(p PenPath) string {
	if b.Style.PressureSensitive {
		return b.pressurePathSVGData(p)
	}
	var d strings.Builder
	fmt.Fprintf(&d, "M %.3f %.3f", p.Start.Pos.X, p.Start.Pos.Y)
	for _, s := range p.Segments {
		fmt.Fprintf(&d, " L %.3f %.3f", s.End.Pos.X, s.End.Pos.Y)
	}
	return fmt.Sprintf(
		`<path d="%s" fill="none" stroke="%s" stroke-width="%.3f" stroke-linecap="round" stroke-linejoin="round"/>`,
		d.String(), b.Style.Color.CSS(), b.Style.Width,
	)
}

// pressurePathSVGData emits one path per segment, each with the width the
// pressure profile gives for the mean pressure of its endpoints. Round caps
// blend the joints between segments of different width.
func (b *BrushStroke) pressurePathSVGData(p PenPath) string {
	var sb strings.Builder
	color := b.Style.Color.CSS()
	prev := p.Start
	for _, s := range p.Segments {
		w := widthForPressure(b.Style.Width, (prev.Pressure+s.End.Pressure)/2)
		fmt.Fprintf(&sb,
			`<path d="M %.3f %.3f L %.3f %.3f" fill="none" stroke="%s" stroke-width="%.3f" stroke-linecap="round"/>`,
			prev.Pos.X, prev.Pos.Y, s.End.Pos.X, s.End.Pos.Y, color, w,
		)
		prev = s.End
	}
	return sb.String()
}

// segmentSVG generates a fragment for segments [from, to) including the
// joining element before from, so consecutive tiles overlap seamlessly.
func (b *BrushStroke) segmentSVG(from, to int) render.SVG {
	elements := b.Path.Elements()
	sub, _ := PenPathFromElements(elements[from : to+1])
	pad := b.Style.Width / 2
	return render.SVG{
		Data:   b.pathSVGData(sub),
		Bounds: sub.Bounds().Extended(inkwell.Pt(pad, pad)),
	}
}

// GenImages rasterizes the stroke for the viewport.
//
// Small strokes become a single image; long strokes are split into
// per-segment tiles so incremental append during active drawing only
// touches the newest tiles.
func (b *BrushStroke) GenImages(viewport inkwell.AABB, imageScale float64) (render.GeneratedImages, error) {
	bounds := b.Bounds()
	partial := !viewport.Contains(bounds)

	target := viewport.Intersection(bounds)
	if !target.Valid() {
		return render.PartialInViewport(nil, viewport), nil
	}

	extents := target.Extents()
	singleImage := (extents.X < render.ImagesSizeThreshold/imageScale &&
		extents.Y < render.ImagesSizeThreshold/imageScale) ||
		b.Style.Width > imagesStrokeWidthBoundsThreshold*extents.X ||
		b.Style.Width > imagesStrokeWidthBoundsThreshold*extents.Y

	var images []render.Image
	if singleImage {
		svg, err := b.GenSVG()
		if err != nil {
			return render.GeneratedImages{}, err
		}
		img, err := render.RasterizeSVGClipped(svg, target, imageScale)
		if err != nil && err != render.ErrNoContent {
			return render.GeneratedImages{}, err
		}
		if err == nil {
			images = append(images, img)
		}
	} else {
		for i := 0; i < b.Path.Len(); i++ {
			seg := b.segmentSVG(i, i+1)
			if !seg.Bounds.Intersects(viewport) {
				continue
			}
			img, err := render.RasterizeSVG(seg, imageScale)
			if err != nil {
				if err == render.ErrNoContent {
					continue
				}
				return render.GeneratedImages{}, err
			}
			images = append(images, img)
		}
	}

	if partial {
		return render.PartialInViewport(images, viewport), nil
	}
	return render.Full(images), nil
}

// GenImageForLastSegments rasterizes only the newest n segments as one
// appendable image. Returns false when the path has no segments.
//
// Re-rasterizing a long path from scratch on every pointer-motion event is
// the most latency-sensitive path in the system; appending only the newest
// tiles keeps active drawing cheap.
func (b *BrushStroke) GenImageForLastSegments(n int, imageScale float64) (render.Image, bool, error) {
	total := b.Path.Len()
	if total == 0 || n <= 0 {
		return render.Image{}, false, nil
	}
	from := total - n
	if from < 0 {
		from = 0
	}
	svg := b.segmentSVG(from, total)
	img, err := render.RasterizeSVG(svg, imageScale)
	if err != nil {
		if err == render.ErrNoContent {
			return render.Image{}, false, nil
		}
		return render.Image{}, false, err
	}
	return img, true, nil
}
