package inkwell

import "math"

// Transform represents a 2D affine transformation.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Transform struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation.
func Identity() Transform {
	return Transform{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translation creates a translation transform.
func Translation(offset Point) Transform {
	return Transform{
		A: 1, B: 0, C: offset.X,
		D: 0, E: 1, F: offset.Y,
	}
}

// Scaling creates a scaling transform about the origin.
func Scaling(scale Point) Transform {
	return Transform{
		A: scale.X, B: 0, C: 0,
		D: 0, E: scale.Y, F: 0,
	}
}

// Rotation creates a rotation transform about the origin (angle in radians).
func Rotation(angle float64) Transform {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Transform{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// RotationAbout creates a rotation transform about the given center.
func RotationAbout(angle float64, center Point) Transform {
	return Translation(center).Mul(Rotation(angle)).Mul(Translation(center.Neg()))
}

// ScalingAbout creates a scaling transform about the given pivot,
// defined as translate(-pivot), scale, translate(pivot).
func ScalingAbout(scale Point, pivot Point) Transform {
	return Translation(pivot).Mul(Scaling(scale)).Mul(Translation(pivot.Neg()))
}

// Mul composes two transforms (t applied after other).
func (t Transform) Mul(other Transform) Transform {
	return Transform{
		A: t.A*other.A + t.B*other.D,
		B: t.A*other.B + t.B*other.E,
		C: t.A*other.C + t.B*other.F + t.C,
		D: t.D*other.A + t.E*other.D,
		E: t.D*other.B + t.E*other.E,
		F: t.D*other.C + t.E*other.F + t.F,
	}
}

// Apply applies the transformation to a point.
func (t Transform) Apply(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// ApplyVector applies the transformation to a vector (no translation).
func (t Transform) ApplyVector(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y,
		Y: t.D*p.X + t.E*p.Y,
	}
}

// ApplyAABB returns the AABB of the box's four transformed corners.
func (t Transform) ApplyAABB(b AABB) AABB {
	c0 := t.Apply(b.Min)
	c1 := t.Apply(Point{X: b.Max.X, Y: b.Min.Y})
	c2 := t.Apply(b.Max)
	c3 := t.Apply(Point{X: b.Min.X, Y: b.Max.Y})
	return AABB{
		Min: c0.Min(c1).Min(c2).Min(c3),
		Max: c0.Max(c1).Max(c2).Max(c3),
	}
}

// Invert returns the inverse transform.
// Returns the identity transform if the transform is not invertible.
func (t Transform) Invert() Transform {
	det := t.A*t.E - t.B*t.D
	if math.Abs(det) < 1e-10 {
		return Identity()
	}

	invDet := 1.0 / det
	return Transform{
		A: t.E * invDet,
		B: -t.B * invDet,
		C: (t.B*t.F - t.C*t.E) * invDet,
		D: -t.D * invDet,
		E: t.A * invDet,
		F: (t.C*t.D - t.A*t.F) * invDet,
	}
}

// IsIdentity returns true if the transform is the identity.
func (t Transform) IsIdentity() bool {
	return t.A == 1 && t.B == 0 && t.C == 0 &&
		t.D == 0 && t.E == 1 && t.F == 0
}

// ScaleFactors returns the lengths of the transformed unit vectors,
// the effective scale applied along each axis.
func (t Transform) ScaleFactors() Point {
	return Point{
		X: math.Hypot(t.A, t.D),
		Y: math.Hypot(t.B, t.E),
	}
}
