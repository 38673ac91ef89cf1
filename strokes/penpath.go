package strokes

import (
	"math"

	"github.com/gogpu/inkwell"
)

// Element is a single input sample on a pen path: a position plus the pen
// pressure at that position in [0, 1].
type Element struct {
	Pos      inkwell.Point `json:"pos"`
	Pressure float64       `json:"pressure"`
}

// NewElement creates an element at the given position with pressure.
func NewElement(pos inkwell.Point, pressure float64) Element {
	return Element{Pos: pos, Pressure: pressure}
}

// Segment is one piece of a pen path, ending at End. The segment start is
// the end of the previous segment (or the path start for the first one).
type Segment struct {
	End Element `json:"end"`
}

// PenPath is a polyline pen path: a start element followed by segments.
// Curve evaluation is the concern of the geometry producers; paths arriving
// here are already flattened.
type PenPath struct {
	Start    Element   `json:"start"`
	Segments []Segment `json:"segments"`
}

// NewPenPath creates a path with only a start element.
func NewPenPath(start Element) PenPath {
	return PenPath{Start: start}
}

// NewPenPathWithSegments creates a path from a start element and segments.
func NewPenPathWithSegments(start Element, segments []Segment) PenPath {
	return PenPath{Start: start, Segments: segments}
}

// PenPathFromElements builds a path from a list of elements.
// Returns false when the list is empty.
func PenPathFromElements(elements []Element) (PenPath, bool) {
	if len(elements) == 0 {
		return PenPath{}, false
	}
	p := PenPath{Start: elements[0]}
	for _, e := range elements[1:] {
		p.Segments = append(p.Segments, Segment{End: e})
	}
	return p, true
}

// Elements returns the path as a flat element list, start included.
func (p PenPath) Elements() []Element {
	out := make([]Element, 0, len(p.Segments)+1)
	out = append(out, p.Start)
	for _, s := range p.Segments {
		out = append(out, s.End)
	}
	return out
}

// Clone returns a deep copy of the path.
func (p PenPath) Clone() PenPath {
	segments := make([]Segment, len(p.Segments))
	copy(segments, p.Segments)
	return PenPath{Start: p.Start, Segments: segments}
}

// Bounds returns the AABB of all path positions, without stroke width.
func (p PenPath) Bounds() inkwell.AABB {
	b := inkwell.AABB{Min: p.Start.Pos, Max: p.Start.Pos}
	for _, s := range p.Segments {
		b = b.TakePoint(s.End.Pos)
	}
	return b
}

// SegmentHitboxes returns one AABB per segment, each padded by pad on every
// side. Used both for stroke hitboxes and for eraser hit testing.
func (p PenPath) SegmentHitboxes(pad float64) []inkwell.AABB {
	out := make([]inkwell.AABB, 0, len(p.Segments))
	prev := p.Start
	for _, s := range p.Segments {
		b := inkwell.NewAABB(prev.Pos, s.End.Pos).Extended(inkwell.Pt(pad, pad))
		out = append(out, b)
		prev = s.End
	}
	return out
}

// HitTest returns the indices of segments whose hitboxes, loosened by the
// given padding, intersect the hit bounds. Indices are strictly ascending.
func (p PenPath) HitTest(hit inkwell.AABB, loosened float64) []int {
	var out []int
	for i, hb := range p.SegmentHitboxes(loosened) {
		if hb.Intersects(hit) {
			out = append(out, i)
		}
	}
	return out
}

// Translate moves every element by the offset.
func (p *PenPath) Translate(offset inkwell.Point) {
	p.Start.Pos = p.Start.Pos.Add(offset)
	for i := range p.Segments {
		p.Segments[i].End.Pos = p.Segments[i].End.Pos.Add(offset)
	}
}

// Rotate rotates every element by angle (radians) about center.
func (p *PenPath) Rotate(angle float64, center inkwell.Point) {
	t := inkwell.RotationAbout(angle, center)
	p.Start.Pos = t.Apply(p.Start.Pos)
	for i := range p.Segments {
		p.Segments[i].End.Pos = t.Apply(p.Segments[i].End.Pos)
	}
}

// Scale scales every element about the document origin.
func (p *PenPath) Scale(scale inkwell.Point) {
	p.Start.Pos = p.Start.Pos.MulPointwise(scale)
	for i := range p.Segments {
		p.Segments[i].End.Pos = p.Segments[i].End.Pos.MulPointwise(scale)
	}
}

// Len returns the number of segments.
func (p PenPath) Len() int { return len(p.Segments) }

// ApproxLength returns the summed segment lengths.
func (p PenPath) ApproxLength() float64 {
	var total float64
	prev := p.Start
	for _, s := range p.Segments {
		total += prev.Pos.Distance(s.End.Pos)
		prev = s.End
	}
	return total
}

// widthForPressure maps a base stroke width and a pressure sample to the
// effective width at that sample.
func widthForPressure(base, pressure float64) float64 {
	if pressure <= 0 {
		pressure = 0.5
	}
	return math.Max(base*pressure, base*0.1)
}
