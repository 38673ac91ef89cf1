package store

import "github.com/gogpu/inkwell"

// Geometry predicates for the polygon hit queries. Polygons come from
// selector tools and are treated as closed (last vertex connects to the
// first).

func pointInPolygon(p inkwell.Point, poly []inkwell.Point) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

func segmentsIntersect(p1, p2, q1, q2 inkwell.Point) bool {
	d1 := q2.Sub(q1).Cross(p1.Sub(q1))
	d2 := q2.Sub(q1).Cross(p2.Sub(q1))
	d3 := p2.Sub(p1).Cross(q1.Sub(p1))
	d4 := p2.Sub(p1).Cross(q2.Sub(p1))
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	onSegment := func(a, b, c inkwell.Point) bool {
		return c.X >= min(a.X, b.X) && c.X <= max(a.X, b.X) &&
			c.Y >= min(a.Y, b.Y) && c.Y <= max(a.Y, b.Y)
	}
	switch {
	case d1 == 0 && onSegment(q1, q2, p1):
		return true
	case d2 == 0 && onSegment(q1, q2, p2):
		return true
	case d3 == 0 && onSegment(p1, p2, q1):
		return true
	case d4 == 0 && onSegment(p1, p2, q2):
		return true
	}
	return false
}

func segmentIntersectsAABB(a, b inkwell.Point, box inkwell.AABB) bool {
	if box.ContainsPoint(a) || box.ContainsPoint(b) {
		return true
	}
	corners := boxCorners(box)
	for i := 0; i < 4; i++ {
		if segmentsIntersect(a, b, corners[i], corners[(i+1)%4]) {
			return true
		}
	}
	return false
}

func boxCorners(box inkwell.AABB) [4]inkwell.Point {
	return [4]inkwell.Point{
		box.Min,
		{X: box.Max.X, Y: box.Min.Y},
		box.Max,
		{X: box.Min.X, Y: box.Max.Y},
	}
}

// polygonContainsAABB reports whether the box lies fully inside the polygon.
func polygonContainsAABB(poly []inkwell.Point, box inkwell.AABB) bool {
	if len(poly) < 3 {
		return false
	}
	for _, c := range boxCorners(box) {
		if !pointInPolygon(c, poly) {
			return false
		}
	}
	// All corners inside, but a polygon edge may still cut through.
	n := len(poly)
	for i := 0; i < n; i++ {
		if segmentIntersectsAABB(poly[i], poly[(i+1)%n], box) {
			return false
		}
	}
	return true
}

// polygonIntersectsAABB reports whether the polygon and box overlap at all.
func polygonIntersectsAABB(poly []inkwell.Point, box inkwell.AABB) bool {
	if len(poly) < 3 {
		return false
	}
	for _, p := range poly {
		if box.ContainsPoint(p) {
			return true
		}
	}
	for _, c := range boxCorners(box) {
		if pointInPolygon(c, poly) {
			return true
		}
	}
	n := len(poly)
	for i := 0; i < n; i++ {
		if segmentIntersectsAABB(poly[i], poly[(i+1)%n], box) {
			return true
		}
	}
	return false
}

// polylineIntersectsAABB reports whether an open polyline crosses the box.
func polylineIntersectsAABB(line []inkwell.Point, box inkwell.AABB) bool {
	if len(line) == 1 {
		return box.ContainsPoint(line[0])
	}
	for i := 1; i < len(line); i++ {
		if segmentIntersectsAABB(line[i-1], line[i], box) {
			return true
		}
	}
	return false
}

func polygonBounds(poly []inkwell.Point) inkwell.AABB {
	b := inkwell.InvalidAABB()
	for _, p := range poly {
		b = b.TakePoint(p)
	}
	return b
}
