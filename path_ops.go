package shapefield

import "math"

// Geometry queries over paths: containment under both fill rules,
// bounding boxes, flattening, and arc-length measurement. These are the
// capabilities the samplers are built on, so a replacement backend only
// has to reproduce this surface.

// FillRule selects the containment rule used when sampling a fill
// region.
type FillRule int

const (
	// FillNonZero retains points whose winding number is non-zero.
	FillNonZero FillRule = iota
	// FillEvenOdd retains points crossed an odd number of times.
	FillEvenOdd
)

// flattenTolerance is the default maximum distance between a curve and
// its line approximation, in user-space units.
const flattenTolerance = 0.1

// eachFillSegment walks the path as line segments for containment
// testing. Curves are adaptively flattened, and every subpath is
// implicitly closed: fill regions treat an open contour as if a closing
// segment were present, matching SVG fill semantics.
func (p *Path) eachFillSegment(fn func(a, b Point)) {
	var current, start Point
	started := false

	closeSubpath := func() {
		if started && current != start {
			fn(current, start)
		}
	}

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			closeSubpath()
			start = e.Point
			current = e.Point
			started = true
		case LineTo:
			fn(current, e.Point)
			current = e.Point
		case QuadTo:
			flattenQuad(QuadBez{current, e.Control, e.Point}, flattenTolerance, current, fn)
			current = e.Point
		case CubicTo:
			flattenCubic(CubicBez{current, e.Control1, e.Control2, e.Point}, flattenTolerance, current, fn)
			current = e.Point
		case Close:
			if current != start {
				fn(current, start)
			}
			current = start
		}
	}
	closeSubpath()
}

// flattenQuad recursively subdivides q until flat, emitting segments.
// prev is the running start point of the next emitted segment.
func flattenQuad(q QuadBez, tolerance float64, prev Point, fn func(a, b Point)) {
	if q.flatness() <= tolerance*tolerance {
		fn(prev, q.P2)
		return
	}
	q1, q2 := q.Subdivide()
	flattenQuad(q1, tolerance, prev, fn)
	flattenQuad(q2, tolerance, q1.P2, fn)
}

// flattenCubic recursively subdivides c until flat, emitting segments.
func flattenCubic(c CubicBez, tolerance float64, prev Point, fn func(a, b Point)) {
	if c.flatness() <= 16*tolerance*tolerance {
		fn(prev, c.P3)
		return
	}
	c1, c2 := c.Subdivide()
	flattenCubic(c1, tolerance, prev, fn)
	flattenCubic(c2, tolerance, c1.P3, fn)
}

// Winding returns the winding number of pt relative to the path,
// computed by ray casting with a horizontal ray to the right.
// 0 means outside under the non-zero rule.
func (p *Path) Winding(pt Point) int {
	winding := 0
	p.eachFillSegment(func(a, b Point) {
		winding += lineWinding(a, b, pt)
	})
	return winding
}

// Crossings returns the number of times a rightward horizontal ray from
// pt crosses the path. Odd means inside under the even-odd rule.
func (p *Path) Crossings(pt Point) int {
	crossings := 0
	p.eachFillSegment(func(a, b Point) {
		if lineWinding(a, b, pt) != 0 {
			crossings++
		}
	})
	return crossings
}

// Contains tests whether pt lies inside the path's fill region under
// the given rule.
func (p *Path) Contains(pt Point, rule FillRule) bool {
	if rule == FillEvenOdd {
		return p.Crossings(pt)%2 == 1
	}
	return p.Winding(pt) != 0
}

// lineWinding computes the winding contribution of segment a-b for a
// rightward ray from pt: +1 for an upward crossing left of the segment,
// -1 for a downward crossing right of it.
func lineWinding(a, b, pt Point) int {
	if a.Y <= pt.Y && b.Y > pt.Y {
		if isLeft(a, b, pt) > 0 {
			return 1
		}
	} else if a.Y > pt.Y && b.Y <= pt.Y {
		if isLeft(a, b, pt) < 0 {
			return -1
		}
	}
	return 0
}

// isLeft returns positive if pt is left of the infinite line a-b,
// negative if right, zero if on it.
func isLeft(a, b, pt Point) float64 {
	return (b.X-a.X)*(pt.Y-a.Y) - (pt.X-a.X)*(b.Y-a.Y)
}

// BoundingBox returns the tight axis-aligned bounding box of the path,
// using curve extrema rather than control-point hulls.
func (p *Path) BoundingBox() Rect {
	if len(p.elements) == 0 {
		return Rect{}
	}

	bbox := Rect{
		Min: Point{X: math.MaxFloat64, Y: math.MaxFloat64},
		Max: Point{X: -math.MaxFloat64, Y: -math.MaxFloat64},
	}
	var current Point

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			bbox = bbox.expand(e.Point)
			current = e.Point
		case LineTo:
			bbox = bbox.expand(e.Point)
			current = e.Point
		case QuadTo:
			bbox = bbox.Union(QuadBez{current, e.Control, e.Point}.BoundingBox())
			current = e.Point
		case CubicTo:
			bbox = bbox.Union(CubicBez{current, e.Control1, e.Control2, e.Point}.BoundingBox())
			current = e.Point
		case Close:
			// adds no new points
		}
	}

	if bbox.Min.X == math.MaxFloat64 {
		return Rect{}
	}
	return bbox
}

// Polylines flattens the path into one point sequence per subpath.
// Closed subpaths repeat their starting point at the end. tolerance <= 0
// selects the default.
func (p *Path) Polylines(tolerance float64) [][]Point {
	if tolerance <= 0 {
		tolerance = flattenTolerance
	}

	var result [][]Point
	var current, start Point
	var line []Point

	flush := func() {
		if len(line) > 1 {
			result = append(result, line)
		}
		line = nil
	}
	emit := func(_, b Point) {
		line = append(line, b)
	}

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			flush()
			line = append(line, e.Point)
			start = e.Point
			current = e.Point
		case LineTo:
			line = append(line, e.Point)
			current = e.Point
		case QuadTo:
			flattenQuad(QuadBez{current, e.Control, e.Point}, tolerance, current, emit)
			current = e.Point
		case CubicTo:
			flattenCubic(CubicBez{current, e.Control1, e.Control2, e.Point}, tolerance, current, emit)
			current = e.Point
		case Close:
			if current != start {
				line = append(line, start)
			}
			current = start
		}
	}
	flush()
	return result
}

// PathMeasure caches a flattened form of a path with cumulative arc
// lengths, answering length and point-at-distance queries. Build one
// per path and reuse it; construction is the expensive part.
type PathMeasure struct {
	polylines  [][]Point
	cumulative [][]float64 // per polyline, running length at each vertex
	total      float64
}

// Measure flattens the path for arc-length queries. tolerance <= 0
// selects the default.
func (p *Path) Measure(tolerance float64) *PathMeasure {
	polys := p.Polylines(tolerance)
	m := &PathMeasure{polylines: polys}
	for _, poly := range polys {
		cum := make([]float64, len(poly))
		for i := 1; i < len(poly); i++ {
			cum[i] = cum[i-1] + poly[i-1].Distance(poly[i])
		}
		m.cumulative = append(m.cumulative, cum)
		if len(cum) > 0 {
			m.total += cum[len(cum)-1]
		}
	}
	return m
}

// Length returns the total arc length across all subpaths.
func (m *PathMeasure) Length() float64 {
	return m.total
}

// Subpaths returns the number of flattened subpaths.
func (m *PathMeasure) Subpaths() int {
	return len(m.polylines)
}

// SubpathLength returns the arc length of subpath i.
func (m *PathMeasure) SubpathLength(i int) float64 {
	cum := m.cumulative[i]
	if len(cum) == 0 {
		return 0
	}
	return cum[len(cum)-1]
}

// PointAt returns the point at the given arc-length distance from the
// start of subpath i. Distances beyond the subpath length clamp to its
// endpoint.
func (m *PathMeasure) PointAt(i int, dist float64) Point {
	poly := m.polylines[i]
	cum := m.cumulative[i]
	if dist <= 0 {
		return poly[0]
	}
	if dist >= cum[len(cum)-1] {
		return poly[len(poly)-1]
	}

	// Binary search for the containing segment.
	lo, hi := 1, len(cum)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if cum[mid] < dist {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	segLen := cum[lo] - cum[lo-1]
	if segLen == 0 {
		return poly[lo]
	}
	t := (dist - cum[lo-1]) / segLen
	return poly[lo-1].Lerp(poly[lo], t)
}
