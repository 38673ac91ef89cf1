package inkwell

import (
	"math"
	"testing"
)

func transformsAlmostEqual(a, b Transform) bool {
	const eps = 1e-9
	return math.Abs(a.A-b.A) < eps && math.Abs(a.B-b.B) < eps &&
		math.Abs(a.C-b.C) < eps && math.Abs(a.D-b.D) < eps &&
		math.Abs(a.E-b.E) < eps && math.Abs(a.F-b.F) < eps
}

func pointsAlmostEqual(a, b Point) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestTransformApply(t *testing.T) {
	tests := []struct {
		name string
		m    Transform
		p    Point
		want Point
	}{
		{"identity", Identity(), Pt(3, 4), Pt(3, 4)},
		{"translation", Translation(Pt(10, -5)), Pt(3, 4), Pt(13, -1)},
		{"scaling", Scaling(Pt(2, 3)), Pt(3, 4), Pt(6, 12)},
		{"rotation 90deg", Rotation(math.Pi / 2), Pt(1, 0), Pt(0, 1)},
		{"rotation 180deg", Rotation(math.Pi), Pt(1, 0), Pt(-1, 0)},
		{"rotation about center", RotationAbout(math.Pi, Pt(5, 5)), Pt(0, 0), Pt(10, 10)},
		{"scaling about pivot", ScalingAbout(Pt(2, 2), Pt(10, 10)), Pt(5, 5), Pt(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Apply(tt.p); !pointsAlmostEqual(got, tt.want) {
				t.Errorf("Apply(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestTransformApplyVectorIgnoresTranslation(t *testing.T) {
	m := Translation(Pt(100, 100)).Mul(Scaling(Pt(2, 2)))
	if got := m.ApplyVector(Pt(3, 4)); !pointsAlmostEqual(got, Pt(6, 8)) {
		t.Errorf("ApplyVector = %v, want (6,8)", got)
	}
}

func TestTransformMulOrder(t *testing.T) {
	// Mul composes right to left: the right operand applies first.
	m := Translation(Pt(10, 0)).Mul(Scaling(Pt(2, 2)))
	if got := m.Apply(Pt(1, 1)); !pointsAlmostEqual(got, Pt(12, 2)) {
		t.Errorf("T.Mul(S).Apply((1,1)) = %v, want (12,2)", got)
	}

	m = Scaling(Pt(2, 2)).Mul(Translation(Pt(10, 0)))
	if got := m.Apply(Pt(1, 1)); !pointsAlmostEqual(got, Pt(22, 2)) {
		t.Errorf("S.Mul(T).Apply((1,1)) = %v, want (22,2)", got)
	}
}

func TestTransformInvert(t *testing.T) {
	tests := []struct {
		name string
		m    Transform
	}{
		{"identity", Identity()},
		{"translation", Translation(Pt(7, -3))},
		{"scaling", Scaling(Pt(2, 0.5))},
		{"rotation", Rotation(0.7)},
		{"composed", Translation(Pt(5, 5)).Mul(Rotation(1.1)).Mul(Scaling(Pt(3, 2)))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Mul(tt.m.Invert())
			if !transformsAlmostEqual(got, Identity()) {
				t.Errorf("m * m^-1 = %+v, want identity", got)
			}
		})
	}
}

func TestTransformInvertSingular(t *testing.T) {
	if got := Scaling(Pt(0, 0)).Invert(); !got.IsIdentity() {
		t.Errorf("Invert of singular transform = %+v, want identity", got)
	}
}

func TestTransformApplyAABB(t *testing.T) {
	b := NewAABB(Pt(0, 0), Pt(10, 10))

	got := Rotation(math.Pi / 2).ApplyAABB(b)
	want := NewAABB(Pt(-10, 0), Pt(0, 10))
	if !pointsAlmostEqual(got.Min, want.Min) || !pointsAlmostEqual(got.Max, want.Max) {
		t.Errorf("rotated box = %v, want %v", got, want)
	}

	got = Rotation(math.Pi / 4).ApplyAABB(b)
	if w := got.Width(); math.Abs(w-10*math.Sqrt2) > 1e-9 {
		t.Errorf("45deg rotated box width = %v, want %v", w, 10*math.Sqrt2)
	}
}

func TestTransformScaleFactors(t *testing.T) {
	m := Rotation(0.3).Mul(Scaling(Pt(2, 5)))
	got := m.ScaleFactors()
	if !pointsAlmostEqual(got, Pt(2, 5)) {
		t.Errorf("ScaleFactors() = %v, want (2,5)", got)
	}
}
