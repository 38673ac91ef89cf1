package strokes

import (
	"math"
	"testing"

	"github.com/gogpu/inkwell"
)

func linePath(pts ...inkwell.Point) PenPath {
	elems := make([]Element, 0, len(pts))
	for _, p := range pts {
		elems = append(elems, NewElement(p, 0.5))
	}
	path, ok := PenPathFromElements(elems)
	if !ok {
		panic("penpath_test: need at least two elements")
	}
	return path
}

func TestPenPathBounds(t *testing.T) {
	p := linePath(inkwell.Pt(10, 20), inkwell.Pt(30, 5), inkwell.Pt(15, 40))
	b := p.Bounds()
	want := inkwell.AABB{Min: inkwell.Pt(10, 5), Max: inkwell.Pt(30, 40)}
	if b != want {
		t.Errorf("Bounds() = %+v, want %+v", b, want)
	}
}

func TestPenPathHitTest(t *testing.T) {
	p := linePath(
		inkwell.Pt(0, 0),
		inkwell.Pt(10, 0),
		inkwell.Pt(20, 0),
		inkwell.Pt(30, 0),
	)

	tests := []struct {
		name string
		hit  inkwell.AABB
		want []int
	}{
		{
			name: "first segment only",
			hit:  inkwell.AABB{Min: inkwell.Pt(2, -1), Max: inkwell.Pt(8, 1)},
			want: []int{0},
		},
		{
			name: "spanning two segments",
			hit:  inkwell.AABB{Min: inkwell.Pt(8, -1), Max: inkwell.Pt(22, 1)},
			want: []int{0, 1, 2},
		},
		{
			name: "miss above the path",
			hit:  inkwell.AABB{Min: inkwell.Pt(5, 10), Max: inkwell.Pt(25, 20)},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.HitTest(tt.hit, 0.5)
			if len(got) != len(tt.want) {
				t.Fatalf("HitTest() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("HitTest() = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestPenPathHitTestAscending(t *testing.T) {
	p := linePath(
		inkwell.Pt(0, 0), inkwell.Pt(5, 0), inkwell.Pt(10, 0),
		inkwell.Pt(15, 0), inkwell.Pt(20, 0),
	)
	got := p.HitTest(p.Bounds().Extended(inkwell.Pt(1, 1)), 0)
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("hit indices not strictly ascending: %v", got)
		}
	}
	if len(got) != p.Len() {
		t.Errorf("hit over full bounds returned %d segments, want %d", len(got), p.Len())
	}
}

func TestPenPathTransforms(t *testing.T) {
	p := linePath(inkwell.Pt(0, 0), inkwell.Pt(10, 0))

	p.Translate(inkwell.Pt(5, 5))
	if got := p.Start.Pos; got != inkwell.Pt(5, 5) {
		t.Errorf("after Translate start = %v, want (5,5)", got)
	}

	p.Scale(inkwell.Pt(2, 2))
	if got := p.Segments[0].End.Pos; got != inkwell.Pt(30, 10) {
		t.Errorf("after Scale end = %v, want (30,10)", got)
	}

	q := linePath(inkwell.Pt(10, 0), inkwell.Pt(20, 0))
	q.Rotate(math.Pi/2, inkwell.Pt(10, 0))
	end := q.Segments[0].End.Pos
	if math.Abs(end.X-10) > 1e-9 || math.Abs(end.Y-10) > 1e-9 {
		t.Errorf("after Rotate end = %v, want (10,10)", end)
	}
}

func TestPenPathCloneIsIndependent(t *testing.T) {
	p := linePath(inkwell.Pt(0, 0), inkwell.Pt(10, 0))
	q := p.Clone()
	q.Translate(inkwell.Pt(100, 100))
	if p.Start.Pos != inkwell.Pt(0, 0) {
		t.Errorf("mutating clone moved original start to %v", p.Start.Pos)
	}
}
