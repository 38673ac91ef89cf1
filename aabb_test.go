package inkwell

import (
	"testing"
)

func TestNewAABBNormalizesCorners(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want AABB
	}{
		{"ordered", Pt(0, 0), Pt(10, 20), AABB{Min: Pt(0, 0), Max: Pt(10, 20)}},
		{"swapped", Pt(10, 20), Pt(0, 0), AABB{Min: Pt(0, 0), Max: Pt(10, 20)}},
		{"mixed", Pt(10, 0), Pt(0, 20), AABB{Min: Pt(0, 0), Max: Pt(10, 20)}},
		{"degenerate", Pt(5, 5), Pt(5, 5), AABB{Min: Pt(5, 5), Max: Pt(5, 5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewAABB(tt.a, tt.b); got != tt.want {
				t.Errorf("NewAABB(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestAABBMergeAndTakePoint(t *testing.T) {
	b := NewAABB(Pt(0, 0), Pt(10, 10))

	merged := b.Merge(NewAABB(Pt(5, -5), Pt(20, 5)))
	if want := NewAABB(Pt(0, -5), Pt(20, 10)); merged != want {
		t.Errorf("Merge = %v, want %v", merged, want)
	}

	taken := b.TakePoint(Pt(-3, 15))
	if want := NewAABB(Pt(-3, 0), Pt(10, 15)); taken != want {
		t.Errorf("TakePoint = %v, want %v", taken, want)
	}

	// InvalidAABB is the identity element for Merge.
	if got := InvalidAABB().Merge(b); got != b {
		t.Errorf("InvalidAABB().Merge(b) = %v, want %v", got, b)
	}
	if InvalidAABB().Valid() {
		t.Error("InvalidAABB().Valid() = true, want false")
	}
}

func TestAABBContainsIntersects(t *testing.T) {
	outer := NewAABB(Pt(0, 0), Pt(100, 100))
	tests := []struct {
		name       string
		other      AABB
		contains   bool
		intersects bool
	}{
		{"inner", NewAABB(Pt(10, 10), Pt(20, 20)), true, true},
		{"itself", outer, true, true},
		{"overlapping", NewAABB(Pt(50, 50), Pt(150, 150)), false, true},
		{"touching edge", NewAABB(Pt(100, 0), Pt(120, 100)), false, true},
		{"disjoint", NewAABB(Pt(200, 200), Pt(300, 300)), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outer.Contains(tt.other); got != tt.contains {
				t.Errorf("Contains(%v) = %v, want %v", tt.other, got, tt.contains)
			}
			if got := outer.Intersects(tt.other); got != tt.intersects {
				t.Errorf("Intersects(%v) = %v, want %v", tt.other, got, tt.intersects)
			}
		})
	}
}

func TestAABBExtendedByFactor(t *testing.T) {
	b := NewAABB(Pt(0, 0), Pt(10, 20))
	got := b.ExtendedByFactor(0.5)
	want := NewAABB(Pt(-5, -10), Pt(15, 30))
	if got != want {
		t.Errorf("ExtendedByFactor(0.5) = %v, want %v", got, want)
	}
}

func TestAABBEnsureMinExtents(t *testing.T) {
	tests := []struct {
		name string
		b    AABB
		min  float64
		want AABB
	}{
		{"already large enough", NewAABB(Pt(0, 0), Pt(10, 10)), 2, NewAABB(Pt(0, 0), Pt(10, 10))},
		{"zero width", NewAABB(Pt(5, 0), Pt(5, 10)), 2, NewAABB(Pt(4, 0), Pt(6, 10))},
		{"point", NewAABB(Pt(3, 3), Pt(3, 3)), 4, NewAABB(Pt(1, 1), Pt(5, 5))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.EnsureMinExtents(tt.min); got != tt.want {
				t.Errorf("EnsureMinExtents(%v) = %v, want %v", tt.min, got, tt.want)
			}
		})
	}
}

func TestAABBCenterExtents(t *testing.T) {
	b := NewAABB(Pt(-10, 0), Pt(30, 20))
	if got := b.Center(); got != Pt(10, 10) {
		t.Errorf("Center() = %v, want (10,10)", got)
	}
	if got := b.Extents(); got != Pt(40, 20) {
		t.Errorf("Extents() = %v, want (40,20)", got)
	}
	if b.Width() != 40 || b.Height() != 20 {
		t.Errorf("Width/Height = %v/%v, want 40/20", b.Width(), b.Height())
	}
}

func TestAABBIntersectionDisjointIsInvalid(t *testing.T) {
	a := NewAABB(Pt(0, 0), Pt(10, 10))
	b := NewAABB(Pt(20, 20), Pt(30, 30))
	if got := a.Intersection(b); got.Valid() {
		t.Errorf("Intersection of disjoint boxes = %v, want invalid", got)
	}
	c := NewAABB(Pt(5, 5), Pt(30, 30))
	if got, want := a.Intersection(c), NewAABB(Pt(5, 5), Pt(10, 10)); got != want {
		t.Errorf("Intersection = %v, want %v", got, want)
	}
}

func TestPointOps(t *testing.T) {
	p := Pt(3, 4)
	if got := p.Length(); got != 5 {
		t.Errorf("Length() = %v, want 5", got)
	}
	if got := p.Distance(Pt(0, 0)); got != 5 {
		t.Errorf("Distance(origin) = %v, want 5", got)
	}
	if got := p.Dot(Pt(2, -1)); got != 2 {
		t.Errorf("Dot = %v, want 2", got)
	}
	if got := p.Cross(Pt(1, 0)); got != -4 {
		t.Errorf("Cross = %v, want -4", got)
	}
	if got := p.Lerp(Pt(5, 8), 0.5); got != Pt(4, 6) {
		t.Errorf("Lerp = %v, want (4,6)", got)
	}
	if got := Pt(3, -4).Min(Pt(-3, 4)); got != Pt(-3, -4) {
		t.Errorf("Min = %v, want (-3,-4)", got)
	}
	if got := Pt(3, -4).Max(Pt(-3, 4)); got != Pt(3, 4) {
		t.Errorf("Max = %v, want (3,4)", got)
	}
	if got := p.Neg().Add(p); got != Pt(0, 0) {
		t.Errorf("Neg().Add(p) = %v, want origin", got)
	}
}
