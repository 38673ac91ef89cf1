package render

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/gogpu/inkwell"
)

// ErrNoContent is returned when the rasterization target has no area, for
// example a stroke fully outside the requested viewport.
var ErrNoContent = errors.New("render: no content at this viewport")

// RasterizeSVG rasterizes the SVG fragment into a single positioned tile
// covering its bounds, at the given image scale (pixels per document unit).
func RasterizeSVG(svg SVG, imageScale float64) (Image, error) {
	return rasterizeSVGInto(svg, svg.Bounds, imageScale)
}

// RasterizeSVGClipped rasterizes only the part of the fragment inside the
// clip bounds. Returns ErrNoContent when fragment and clip do not overlap.
func RasterizeSVGClipped(svg SVG, clip inkwell.AABB, imageScale float64) (Image, error) {
	target := svg.Bounds.Intersection(clip)
	if !target.Valid() {
		return Image{}, ErrNoContent
	}
	return rasterizeSVGInto(svg, target, imageScale)
}

// RasterizeSVGDocument rasterizes a complete standalone SVG document into a
// pixel buffer of the given dimensions, stretching the document to fill it.
func RasterizeSVGDocument(data string, pxW, pxH int) (*image.RGBA, error) {
	if pxW <= 0 || pxH <= 0 {
		return nil, ErrNoContent
	}
	if pxW*pxH > maxImagePixels {
		return nil, fmt.Errorf("render: rasterization target %dx%d exceeds pixel budget", pxW, pxH)
	}
	icon, err := oksvg.ReadIconStream(strings.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("render: parsing svg document: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, pxW, pxH))
	scanner := rasterx.NewScannerGV(pxW, pxH, img, img.Bounds())
	dasher := rasterx.NewDasher(pxW, pxH, scanner)

	icon.SetTarget(0, 0, float64(pxW), float64(pxH))
	icon.Draw(dasher, 1.0)
	return img, nil
}

func rasterizeSVGInto(svg SVG, target inkwell.AABB, imageScale float64) (Image, error) {
	if imageScale <= 0 {
		return Image{}, fmt.Errorf("render: invalid image scale %v", imageScale)
	}
	// A dot or an axis-aligned line has a degenerate extent; grow the
	// target to at least one pixel so it still rasterizes.
	target = target.EnsureMinExtents(1.0 / imageScale)
	pxW := int(math.Ceil(target.Width() * imageScale))
	pxH := int(math.Ceil(target.Height() * imageScale))
	if pxW <= 0 || pxH <= 0 {
		return Image{}, ErrNoContent
	}
	if pxW*pxH > maxImagePixels {
		return Image{}, fmt.Errorf("render: rasterization target %dx%d exceeds pixel budget", pxW, pxH)
	}

	doc := svg.wrapForTarget(target, pxW, pxH)
	icon, err := oksvg.ReadIconStream(strings.NewReader(doc))
	if err != nil {
		return Image{}, fmt.Errorf("render: parsing svg fragment: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, pxW, pxH))
	scanner := rasterx.NewScannerGV(pxW, pxH, img, img.Bounds())
	dasher := rasterx.NewDasher(pxW, pxH, scanner)

	icon.SetTarget(0, 0, float64(pxW), float64(pxH))
	icon.Draw(dasher, 1.0)

	return FromRGBA(img, target), nil
}
