package inkwell

import "math"

// AABB is an axis-aligned bounding box, described by its minimum and
// maximum corners. The zero value is an empty box at the origin.
type AABB struct {
	Min, Max Point
}

// NewAABB creates an AABB from two corner points, normalizing the order
// so that Min is the component-wise minimum.
func NewAABB(a, b Point) AABB {
	return AABB{Min: a.Min(b), Max: a.Max(b)}
}

// InvalidAABB returns a box that is smaller than any point, suitable as the
// identity element for Merge folds.
func InvalidAABB() AABB {
	return AABB{
		Min: Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// Valid reports whether the box has non-negative extents.
func (b AABB) Valid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y
}

// Width returns the horizontal extent of the box.
func (b AABB) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the vertical extent of the box.
func (b AABB) Height() float64 { return b.Max.Y - b.Min.Y }

// Extents returns the width and height of the box as a vector.
func (b AABB) Extents() Point {
	return Point{X: b.Width(), Y: b.Height()}
}

// Center returns the center point of the box.
func (b AABB) Center() Point {
	return Point{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Merge returns the smallest box containing both b and other.
func (b AABB) Merge(other AABB) AABB {
	return AABB{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// TakePoint returns the smallest box containing b and the given point.
func (b AABB) TakePoint(p Point) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Contains reports whether other is fully inside b (inclusive).
func (b AABB) Contains(other AABB) bool {
	return b.Min.X <= other.Min.X && b.Min.Y <= other.Min.Y &&
		b.Max.X >= other.Max.X && b.Max.Y >= other.Max.Y
}

// ContainsPoint reports whether the point lies inside b (inclusive).
func (b AABB) ContainsPoint(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Intersects reports whether b and other overlap (inclusive).
func (b AABB) Intersects(other AABB) bool {
	return b.Min.X <= other.Max.X && b.Max.X >= other.Min.X &&
		b.Min.Y <= other.Max.Y && b.Max.Y >= other.Min.Y
}

// Intersection returns the overlapping region of b and other.
// The result is invalid if the boxes do not intersect.
func (b AABB) Intersection(other AABB) AABB {
	return AABB{Min: b.Min.Max(other.Min), Max: b.Max.Min(other.Max)}
}

// Translated returns the box moved by the given offset.
func (b AABB) Translated(offset Point) AABB {
	return AABB{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

// Extended returns the box grown by the given margin on every side.
func (b AABB) Extended(margin Point) AABB {
	return AABB{Min: b.Min.Sub(margin), Max: b.Max.Add(margin)}
}

// ExtendedByFactor returns the box grown on every side by its own extents
// multiplied with the factor. A factor of 1.0 extends the box by its own
// size in every direction.
func (b AABB) ExtendedByFactor(factor float64) AABB {
	return b.Extended(b.Extents().Mul(factor))
}

// Tightened returns the box shrunk by the given margin on every side.
func (b AABB) Tightened(margin float64) AABB {
	return b.Extended(Point{X: -margin, Y: -margin})
}

// EnsureMinExtents returns the box grown, centered, so that both extents
// are at least min. Degenerate (zero-area) bounds break spatial queries and
// rasterization target sizing.
func (b AABB) EnsureMinExtents(min float64) AABB {
	out := b
	if out.Width() < min {
		pad := (min - out.Width()) / 2
		out.Min.X -= pad
		out.Max.X += pad
	}
	if out.Height() < min {
		pad := (min - out.Height()) / 2
		out.Min.Y -= pad
		out.Max.Y += pad
	}
	return out
}
