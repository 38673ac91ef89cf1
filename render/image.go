package render

import (
	"errors"
	"image"

	"github.com/gogpu/inkwell"
)

// Rect is a positioned, transformable rectangle in document space.
// The rectangle spans [-HalfExtents, HalfExtents] in its local frame and is
// placed by Transform. Keeping the full affine transform (instead of an
// AABB) is what lets cached images follow rotations of their stroke.
type Rect struct {
	HalfExtents inkwell.Point     `json:"half_extents"`
	Transform   inkwell.Transform `json:"transform"`
}

// RectFromAABB creates an axis-aligned Rect covering the given bounds.
func RectFromAABB(b inkwell.AABB) Rect {
	return Rect{
		HalfExtents: b.Extents().Mul(0.5),
		Transform:   inkwell.Translation(b.Center()),
	}
}

// Bounds returns the AABB of the transformed rectangle.
func (r Rect) Bounds() inkwell.AABB {
	local := inkwell.AABB{Min: r.HalfExtents.Neg(), Max: r.HalfExtents}
	return r.Transform.ApplyAABB(local)
}

// Translate moves the rectangle by the offset.
func (r *Rect) Translate(offset inkwell.Point) {
	r.Transform = inkwell.Translation(offset).Mul(r.Transform)
}

// Rotate rotates the rectangle by angle (radians) about center.
func (r *Rect) Rotate(angle float64, center inkwell.Point) {
	r.Transform = inkwell.RotationAbout(angle, center).Mul(r.Transform)
}

// Scale scales the rectangle about the document origin.
func (r *Rect) Scale(scale inkwell.Point) {
	r.Transform = inkwell.Scaling(scale).Mul(r.Transform)
}

// Image is a positioned bitmap tile in document space.
// Pixel data is premultiplied RGBA, 4 bytes per pixel.
type Image struct {
	// Data holds the raw pixel data.
	Data []uint8
	// PixelWidth and PixelHeight are the dimensions of the pixel buffer.
	PixelWidth  int
	PixelHeight int
	// Rect places the tile in document space.
	Rect Rect
}

// ErrImageDims is returned when pixel data does not match the declared
// dimensions.
var ErrImageDims = errors.New("render: image data does not match dimensions")

// FromRGBA wraps a standard RGBA image as a tile covering the given
// document bounds.
func FromRGBA(img *image.RGBA, bounds inkwell.AABB) Image {
	return Image{
		Data:        img.Pix,
		PixelWidth:  img.Rect.Dx(),
		PixelHeight: img.Rect.Dy(),
		Rect:        RectFromAABB(bounds),
	}
}

// ToRGBA returns the tile's pixels as a standard RGBA image.
// The pixel data is shared, not copied.
func (i Image) ToRGBA() (*image.RGBA, error) {
	if len(i.Data) != i.PixelWidth*i.PixelHeight*4 {
		return nil, ErrImageDims
	}
	return &image.RGBA{
		Pix:    i.Data,
		Stride: i.PixelWidth * 4,
		Rect:   image.Rect(0, 0, i.PixelWidth, i.PixelHeight),
	}, nil
}

// Translate moves the tile by the offset in document space.
func (i *Image) Translate(offset inkwell.Point) {
	i.Rect.Translate(offset)
}

// Rotate rotates the tile by angle (radians) about center.
func (i *Image) Rotate(angle float64, center inkwell.Point) {
	i.Rect.Rotate(angle, center)
}

// Scale scales the tile about the document origin.
func (i *Image) Scale(scale inkwell.Point) {
	i.Rect.Scale(scale)
}

// GeneratedImages is the result of rasterizing a stroke.
// When Viewport is non-nil the images only cover the stroke within that
// region and are valid only while the current viewport stays inside it.
type GeneratedImages struct {
	Images   []Image
	Viewport *inkwell.AABB
}

// Full wraps images that cover the whole stroke, valid at any viewport.
func Full(images []Image) GeneratedImages {
	return GeneratedImages{Images: images}
}

// PartialInViewport wraps images that only cover the stroke within viewport.
func PartialInViewport(images []Image, viewport inkwell.AABB) GeneratedImages {
	return GeneratedImages{Images: images, Viewport: &viewport}
}

// Partial reports whether the images are viewport-scoped.
func (g GeneratedImages) Partial() bool {
	return g.Viewport != nil
}
