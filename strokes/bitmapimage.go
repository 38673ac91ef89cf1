package strokes

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/render"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// BitmapImage is an imported raster image (PNG or JPEG) placed in the
// document by a transformable rectangle. The encoded bytes are kept so
// exports embed the original data instead of a re-encode.
type BitmapImage struct {
	// Data holds the original encoded image bytes.
	Data []byte `json:"data"`
	// Format is the sniffed encoding, "png" or "jpeg".
	Format string      `json:"format"`
	Rect   render.Rect `json:"rect"`

	decoded *image.RGBA
}

// NewBitmapImage decodes the encoded bytes and places the image at pos at
// its natural pixel size.
func NewBitmapImage(data []byte, pos inkwell.Point) (*BitmapImage, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("strokes: decoding bitmap image: %w", err)
	}
	size := inkwell.Pt(float64(img.Bounds().Dx()), float64(img.Bounds().Dy()))
	b := &BitmapImage{
		Data:   data,
		Format: format,
		Rect: render.Rect{
			HalfExtents: size.Mul(0.5),
			Transform:   inkwell.Translation(pos.Add(size.Mul(0.5))),
		},
		decoded: toRGBA(img),
	}
	return b, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Rect, img, img.Bounds().Min, draw.Src)
	return out
}

// Bounds returns the transformed rectangle bounds.
func (b *BitmapImage) Bounds() inkwell.AABB {
	return b.Rect.Bounds()
}

// Hitboxes returns the whole bounds as a single hitbox.
func (b *BitmapImage) Hitboxes() []inkwell.AABB {
	return []inkwell.AABB{b.Bounds()}
}

// UpdateGeometry re-decodes the pixel data if it was dropped, for example
// after deserialization.
func (b *BitmapImage) UpdateGeometry() {
	if b.decoded != nil {
		return
	}
	img, _, err := image.Decode(bytes.NewReader(b.Data))
	if err != nil {
		inkwell.Logger().Warn("bitmap image re-decode failed", "error", err)
		return
	}
	b.decoded = toRGBA(img)
}

// Translate moves the image by the offset.
func (b *BitmapImage) Translate(offset inkwell.Point) {
	b.Rect.Translate(offset)
}

// Rotate rotates the image by angle (radians) about center.
func (b *BitmapImage) Rotate(angle float64, center inkwell.Point) {
	b.Rect.Rotate(angle, center)
}

// Scale scales the image about the document origin.
func (b *BitmapImage) Scale(scale inkwell.Point) {
	b.Rect.Scale(scale)
}

// Clone returns a deep copy. The encoded bytes and decoded pixels are
// shared, both are immutable after construction.
func (b *BitmapImage) Clone() Stroke {
	out := *b
	return &out
}

// GenSVG embeds the encoded bytes as a data URI inside a positioned group.
func (b *BitmapImage) GenSVG() (render.SVG, error) {
	mime := "image/png"
	if b.Format == "jpeg" {
		mime = "image/jpeg"
	}
	he := b.Rect.HalfExtents
	data := fmt.Sprintf(
		`<g transform="%s"><image x="%.3f" y="%.3f" width="%.3f" height="%.3f" preserveAspectRatio="none" href="data:%s;base64,%s"/></g>`,
		render.TransformAttr(b.Rect.Transform),
		-he.X, -he.Y, he.X*2, he.Y*2,
		mime, base64.StdEncoding.EncodeToString(b.Data))
	return render.SVG{Data: data, Bounds: b.Bounds()}, nil
}

// GenImages resamples the decoded pixels into a single tile carrying the
// rectangle transform.
func (b *BitmapImage) GenImages(viewport inkwell.AABB, imageScale float64) (render.GeneratedImages, error) {
	bounds := b.Bounds()
	if !viewport.Intersects(bounds) {
		return render.PartialInViewport(nil, viewport), nil
	}
	if b.decoded == nil {
		b.UpdateGeometry()
	}
	if b.decoded == nil {
		return render.GeneratedImages{}, fmt.Errorf("strokes: bitmap image has no pixel data")
	}

	pxW := int(b.Rect.HalfExtents.X*2*imageScale) + 1
	pxH := int(b.Rect.HalfExtents.Y*2*imageScale) + 1
	src := b.decoded
	dst := image.NewRGBA(image.Rect(0, 0, pxW, pxH))
	sx := float64(pxW) / float64(src.Rect.Dx())
	sy := float64(pxH) / float64(src.Rect.Dy())
	xdraw.CatmullRom.Transform(dst, f64.Aff3{
		sx, 0, -float64(src.Rect.Min.X) * sx,
		0, sy, -float64(src.Rect.Min.Y) * sy,
	}, src, src.Rect, xdraw.Src, nil)

	img := render.Image{
		Data:        dst.Pix,
		PixelWidth:  pxW,
		PixelHeight: pxH,
		Rect:        b.Rect,
	}
	if viewport.Contains(bounds) {
		return render.Full([]render.Image{img}), nil
	}
	return render.PartialInViewport([]render.Image{img}, viewport), nil
}
