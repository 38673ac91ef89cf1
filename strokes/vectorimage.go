package strokes

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/render"
)

// VectorImage is an imported SVG document placed in the document by a
// transformable rectangle. The SVG source is kept verbatim so exports stay
// lossless; rasterization stretches it into the rectangle.
type VectorImage struct {
	SVGData string `json:"svg_data"`
	// IntrinsicSize is the natural size of the SVG document in document
	// units, used as the viewBox when embedding.
	IntrinsicSize inkwell.Point `json:"intrinsic_size"`
	Rect          render.Rect   `json:"rect"`
}

// NewVectorImage places the SVG with its intrinsic size at pos.
func NewVectorImage(svgData string, intrinsicSize, pos inkwell.Point) *VectorImage {
	return &VectorImage{
		SVGData:       svgData,
		IntrinsicSize: intrinsicSize,
		Rect: render.Rect{
			HalfExtents: intrinsicSize.Mul(0.5),
			Transform:   inkwell.Translation(pos.Add(intrinsicSize.Mul(0.5))),
		},
	}
}

// Bounds returns the transformed rectangle bounds.
func (v *VectorImage) Bounds() inkwell.AABB {
	return v.Rect.Bounds()
}

// Hitboxes returns the whole bounds as a single hitbox.
func (v *VectorImage) Hitboxes() []inkwell.AABB {
	return []inkwell.AABB{v.Bounds()}
}

// UpdateGeometry is a no-op, the rectangle is the geometry.
func (v *VectorImage) UpdateGeometry() {}

// Translate moves the image by the offset.
func (v *VectorImage) Translate(offset inkwell.Point) {
	v.Rect.Translate(offset)
}

// Rotate rotates the image by angle (radians) about center.
func (v *VectorImage) Rotate(angle float64, center inkwell.Point) {
	v.Rect.Rotate(angle, center)
}

// Scale scales the image about the document origin.
func (v *VectorImage) Scale(scale inkwell.Point) {
	v.Rect.Scale(scale)
}

// Clone returns a deep copy.
func (v *VectorImage) Clone() Stroke {
	out := *v
	return &out
}

// GenSVG embeds the SVG document inside a positioned group.
func (v *VectorImage) GenSVG() (render.SVG, error) {
	inner := stripXMLDecl(v.SVGData)
	iw, ih := v.IntrinsicSize.X, v.IntrinsicSize.Y
	if iw <= 0 || ih <= 0 {
		return render.SVG{}, fmt.Errorf("strokes: vector image has no intrinsic size")
	}
	he := v.Rect.HalfExtents
	data := fmt.Sprintf(
		`<g transform="%s"><svg x="%.3f" y="%.3f" width="%.3f" height="%.3f" viewBox="0 0 %.3f %.3f" preserveAspectRatio="none">%s</svg></g>`,
		render.TransformAttr(v.Rect.Transform),
		-he.X, -he.Y, he.X*2, he.Y*2, iw, ih, inner)
	return render.SVG{Data: data, Bounds: v.Bounds()}, nil
}

// GenImages rasterizes the SVG document into a single tile carrying the
// rectangle transform, so rotated images reuse the same pixels.
func (v *VectorImage) GenImages(viewport inkwell.AABB, imageScale float64) (render.GeneratedImages, error) {
	bounds := v.Bounds()
	if !viewport.Intersects(bounds) {
		return render.PartialInViewport(nil, viewport), nil
	}

	pxW := int(math.Ceil(v.Rect.HalfExtents.X * 2 * imageScale))
	pxH := int(math.Ceil(v.Rect.HalfExtents.Y * 2 * imageScale))
	rgba, err := render.RasterizeSVGDocument(v.SVGData, pxW, pxH)
	if err != nil {
		if err == render.ErrNoContent {
			return render.Full(nil), nil
		}
		return render.GeneratedImages{}, err
	}

	img := render.Image{
		Data:        rgba.Pix,
		PixelWidth:  pxW,
		PixelHeight: pxH,
		Rect:        v.Rect,
	}
	if viewport.Contains(bounds) {
		return render.Full([]render.Image{img}), nil
	}
	return render.PartialInViewport([]render.Image{img}, viewport), nil
}

// stripXMLDecl removes a leading xml declaration so the document can be
// embedded inside another SVG element.
func stripXMLDecl(data string) string {
	trimmed := strings.TrimSpace(data)
	if strings.HasPrefix(trimmed, "<?xml") {
		if i := strings.Index(trimmed, "?>"); i >= 0 {
			return strings.TrimSpace(trimmed[i+2:])
		}
	}
	return trimmed
}
