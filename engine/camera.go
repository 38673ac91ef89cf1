package engine

import "github.com/gogpu/inkwell"

// Zoom limits.
const (
	ZoomMin = 0.05
	ZoomMax = 40.0
)

// Camera maps between document space and surface space. Offset and Size
// are in surface coordinates, the viewport they describe shrinks as the
// zoom grows.
type Camera struct {
	Offset inkwell.Point
	Size   inkwell.Point
	Zoom   float64
	// ScaleFactor is the surface's device pixel ratio.
	ScaleFactor float64
}

// NewCamera returns a camera at the origin with zoom 1.
func NewCamera(size inkwell.Point) Camera {
	return Camera{Size: size, Zoom: 1.0, ScaleFactor: 1.0}
}

// SetZoom sets the zoom, clamped to the limits.
func (c *Camera) SetZoom(zoom float64) {
	if zoom < ZoomMin {
		zoom = ZoomMin
	}
	if zoom > ZoomMax {
		zoom = ZoomMax
	}
	c.Zoom = zoom
}

// Viewport returns the visible region in document coordinates.
func (c Camera) Viewport() inkwell.AABB {
	inv := 1.0 / c.Zoom
	return inkwell.AABB{
		Min: c.Offset.Mul(inv),
		Max: c.Offset.Add(c.Size).Mul(inv),
	}
}

// ImageScale is the pixel density strokes should be rasterized at so they
// stay sharp at the current zoom on the current surface.
func (c Camera) ImageScale() float64 {
	return c.Zoom * c.ScaleFactor
}

// Transform maps document coordinates to surface coordinates.
func (c Camera) Transform() inkwell.Transform {
	return inkwell.Translation(c.Offset.Neg()).Mul(inkwell.Scaling(inkwell.Pt(c.Zoom, c.Zoom)))
}
