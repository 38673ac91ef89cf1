package render

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/inkwell"
)

// CompositeImages draws the tiles, in order, onto a pixel buffer covering
// the given document bounds at the given image scale. Tiles are mapped
// through their full affine rect transform, so rotated cached images
// composite correctly.
func CompositeImages(images []Image, bounds inkwell.AABB, imageScale float64, background inkwell.RGBA) (*image.RGBA, error) {
	pxW := int(bounds.Width()*imageScale + 0.5)
	pxH := int(bounds.Height()*imageScale + 0.5)
	if pxW <= 0 || pxH <= 0 {
		return nil, ErrNoContent
	}
	if pxW*pxH > maxImagePixels {
		return nil, fmt.Errorf("render: composite target %dx%d exceeds pixel budget", pxW, pxH)
	}

	dst := image.NewRGBA(image.Rect(0, 0, pxW, pxH))
	if background.A > 0 {
		xdraw.Draw(dst, dst.Bounds(), image.NewUniform(background.Color()), image.Point{}, xdraw.Src)
	}

	for _, tile := range images {
		src, err := tile.ToRGBA()
		if err != nil {
			return nil, err
		}
		if tile.PixelWidth == 0 || tile.PixelHeight == 0 {
			continue
		}

		// tile pixel -> local doc -> document -> dst pixel
		sx := 2 * tile.Rect.HalfExtents.X / float64(tile.PixelWidth)
		sy := 2 * tile.Rect.HalfExtents.Y / float64(tile.PixelHeight)
		toLocal := inkwell.Translation(tile.Rect.HalfExtents.Neg()).
			Mul(inkwell.Scaling(inkwell.Pt(sx, sy)))
		toDst := inkwell.Scaling(inkwell.Pt(imageScale, imageScale)).
			Mul(inkwell.Translation(bounds.Min.Neg()))
		m := toDst.Mul(tile.Rect.Transform).Mul(toLocal)

		xdraw.CatmullRom.Transform(dst,
			f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F},
			src, src.Bounds(), xdraw.Over, nil)
	}

	return dst, nil
}
